package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/award-search/internal/model"
)

func selection(code string, t model.SearchType) model.AirportSelection {
	return model.AirportSelection{Code: code, Type: t, SelectedAt: time.Now()}
}

func codes(list []model.AirportSelection) []string {
	res := make([]string, 0, len(list))
	for _, item := range list {
		res = append(res, item.Code)
	}
	return res
}

func TestMemoryStore_AirportsNewestFirstDeduplicated(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.AppendAirport(ctx, "c1", selection("JFK", model.SearchTypeOrigin)))
	require.NoError(t, s.AppendAirport(ctx, "c1", selection("LAX", model.SearchTypeOrigin)))
	require.NoError(t, s.AppendAirport(ctx, "c1", selection("JFK", model.SearchTypeOrigin)))
	require.NoError(t, s.AppendAirport(ctx, "c1", selection("NRT", model.SearchTypeDestination)))

	origins, err := s.RecentAirports(ctx, "c1", model.SearchTypeOrigin)
	require.NoError(t, err)
	assert.Equal(t, []string{"JFK", "LAX"}, codes(origins))

	destinations, err := s.RecentAirports(ctx, "c1", model.SearchTypeDestination)
	require.NoError(t, err)
	assert.Equal(t, []string{"NRT"}, codes(destinations))

	other, err := s.RecentAirports(ctx, "c2", model.SearchTypeOrigin)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestMemoryStore_AirportsCapped(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, code := range []string{"AAA", "BBB", "CCC", "DDD", "EEE", "FFF", "GGG"} {
		require.NoError(t, s.AppendAirport(ctx, "c1", selection(code, model.SearchTypeOrigin)))
	}

	list, err := s.RecentAirports(ctx, "c1", model.SearchTypeOrigin)
	require.NoError(t, err)
	assert.Equal(t, []string{"GGG", "FFF", "EEE", "DDD", "CCC"}, codes(list))

	require.NoError(t, s.ClearAirports(ctx, "c1"))
	list, err = s.RecentAirports(ctx, "c1", model.SearchTypeOrigin)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryStore_RepeatedTripMovesToFront(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first := model.SearchHistoryEntry{ID: "1", Origin: "JFK", Destination: "NRT", DepartureDate: "2025-06-01"}
	other := model.SearchHistoryEntry{ID: "2", Origin: "SFO", Destination: "HND", DepartureDate: "2025-06-01"}
	repeat := model.SearchHistoryEntry{ID: "3", Origin: "JFK", Destination: "NRT", DepartureDate: "2025-06-01", CabinClass: model.CabinFirst}
	roundTrip := model.SearchHistoryEntry{ID: "4", Origin: "JFK", Destination: "NRT", DepartureDate: "2025-06-01", ReturnDate: "2025-06-10"}

	require.NoError(t, s.AppendSearch(ctx, "c1", first))
	require.NoError(t, s.AppendSearch(ctx, "c1", other))
	require.NoError(t, s.AppendSearch(ctx, "c1", repeat))

	list, err := s.RecentSearches(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "3", list[0].ID)
	assert.Equal(t, model.CabinFirst, list[0].CabinClass)
	assert.Equal(t, "2", list[1].ID)

	found, err := s.SearchByID(ctx, "c1", "3")
	require.NoError(t, err)
	assert.Equal(t, "NRT", found.Destination)

	_, err = s.SearchByID(ctx, "c1", "1")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.SearchByID(ctx, "c2", "3")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.AppendSearch(ctx, "c1", roundTrip))
	list, err = s.RecentSearches(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "4", list[0].ID)
}

func TestPushSearch_Replaced(t *testing.T) {
	entry := model.SearchHistoryEntry{ID: "1", Origin: "JFK", Destination: "NRT", DepartureDate: "2025-06-01"}

	list, replaced := PushSearch(nil, entry, MaxSearchHistory)
	assert.False(t, replaced)

	entry.ID = "2"
	list, replaced = PushSearch(list, entry, MaxSearchHistory)
	assert.True(t, replaced)
	require.Len(t, list, 1)
	assert.Equal(t, "2", list[0].ID)
}

func TestMemoryStore_EvictsLeastRecentClient(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStoreWithLimit(2)

	tick := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	require.NoError(t, s.AppendAirport(ctx, "c1", selection("JFK", model.SearchTypeOrigin)))
	require.NoError(t, s.AppendAirport(ctx, "c2", selection("LAX", model.SearchTypeOrigin)))
	require.NoError(t, s.AppendAirport(ctx, "c1", selection("SFO", model.SearchTypeOrigin)))
	require.NoError(t, s.AppendAirport(ctx, "c3", selection("NRT", model.SearchTypeOrigin)))

	assert.Equal(t, 2, s.Len())

	list, err := s.RecentAirports(ctx, "c2", model.SearchTypeOrigin)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = s.RecentAirports(ctx, "c1", model.SearchTypeOrigin)
	require.NoError(t, err)
	assert.Equal(t, []string{"SFO", "JFK"}, codes(list))
}

func TestMemoryStore_SearchesEvictOldest(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for i := 0; i < MaxSearchHistory+3; i++ {
		require.NoError(t, s.AppendSearch(ctx, "c1", model.SearchHistoryEntry{
			ID:            fmt.Sprint(i),
			Origin:        "SFO",
			Destination:   "HND",
			DepartureDate: fmt.Sprintf("2025-07-%02d", i+1),
		}))
	}

	list, err := s.RecentSearches(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, list, MaxSearchHistory)
	assert.Equal(t, fmt.Sprint(MaxSearchHistory+2), list[0].ID)
	assert.Equal(t, "3", list[len(list)-1].ID)

	require.NoError(t, s.ClearSearches(ctx, "c1"))
	list, err = s.RecentSearches(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryStore_EmptyClientID(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.RecentSearches(context.Background(), "")
	require.ErrorIs(t, err, ErrEmptyClientID)

	err = s.AppendAirport(context.Background(), "", selection("JFK", model.SearchTypeOrigin))
	require.ErrorIs(t, err, ErrEmptyClientID)
}
