package airport

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mmeshcher/award-search/internal/history"
	"github.com/mmeshcher/award-search/internal/model"
	"github.com/mmeshcher/award-search/internal/suggest"
)

type stubSource struct {
	mu      sync.Mutex
	calls   []string
	results []model.AirportRecord
	err     error
}

func (s *stubSource) Search(_ context.Context, query string, _ int) ([]model.AirportRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, query)
	return s.results, s.err
}

func newTestSuggester(remote Source) *Suggester {
	return NewSuggester(NewDirectory(Fallback()), Options{}, history.NewMemoryStore(), remote, 0, zap.NewNop())
}

func suggestionCodes(list []Suggestion) []string {
	res := make([]string, 0, len(list))
	for _, s := range list {
		res = append(res, s.IATA)
	}
	return res
}

func TestSuggester_ShortQueryReturnsRecent(t *testing.T) {
	ctx := context.Background()
	s := newTestSuggester(nil)

	res, err := s.Suggest(ctx, "c1", "", model.SearchTypeOrigin)
	require.NoError(t, err)
	assert.Empty(t, res)

	_, err = s.RecordSelection(ctx, "c1", model.SearchTypeOrigin, model.AirportRecord{IATA: "nrt"})
	require.NoError(t, err)
	_, err = s.RecordSelection(ctx, "c1", model.SearchTypeOrigin, model.AirportRecord{IATA: "SFO"})
	require.NoError(t, err)

	res, err = s.Suggest(ctx, "c1", "", model.SearchTypeOrigin)
	require.NoError(t, err)
	assert.Equal(t, []string{"SFO", "NRT"}, suggestionCodes(res))
	assert.True(t, res[0].Recent)
	assert.NotNil(t, res[0].Coordinates)

	res, err = s.Suggest(ctx, "c1", "", model.SearchTypeDestination)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestSuggester_RecentMatchesFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestSuggester(nil)

	_, err := s.RecordSelection(ctx, "c1", model.SearchTypeDestination, model.AirportRecord{IATA: "NRT"})
	require.NoError(t, err)
	_, err = s.RecordSelection(ctx, "c1", model.SearchTypeDestination, model.AirportRecord{IATA: "LHR"})
	require.NoError(t, err)

	res, err := s.Suggest(ctx, "c1", "tokyo", model.SearchTypeDestination)
	require.NoError(t, err)
	assert.Equal(t, []string{"NRT", "HND"}, suggestionCodes(res))
	assert.True(t, res[0].Recent)
	assert.False(t, res[1].Recent)
}

func TestSuggester_RecordUnknownAirport(t *testing.T) {
	ctx := context.Background()
	s := newTestSuggester(nil)

	_, err := s.RecordSelection(ctx, "c1", model.SearchTypeOrigin, model.AirportRecord{IATA: "QQQ"})
	require.ErrorIs(t, err, ErrUnknownAirport)

	sel, err := s.RecordSelection(ctx, "c1", model.SearchTypeOrigin, model.AirportRecord{IATA: "qqq", Name: "Remote Field", City: "Somewhere"})
	require.NoError(t, err)
	assert.Equal(t, "QQQ", sel.Code)

	recent, err := s.Recent(ctx, "c1", model.SearchTypeOrigin)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "Remote Field", recent[0].Name)

	_, err = s.RecordSelection(ctx, "c1", model.SearchType("via"), model.AirportRecord{IATA: "JFK"})
	require.ErrorIs(t, err, ErrInvalidSearchType)

	require.NoError(t, s.ClearRecent(ctx, "c1"))
	recent, err = s.Recent(ctx, "c1", model.SearchTypeOrigin)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestSuggester_RemoteSource(t *testing.T) {
	remote := &stubSource{results: []model.AirportRecord{{IATA: "ITM", Name: "Osaka Itami", City: "Osaka"}}}
	s := newTestSuggester(remote)

	res, err := s.Suggest(context.Background(), "c1", " osaka ", model.SearchTypeOrigin)
	require.NoError(t, err)
	assert.Equal(t, []string{"ITM"}, suggestionCodes(res))
	assert.Equal(t, []string{"osaka"}, remote.calls)
}

func TestSuggester_RemoteFailureFallsBack(t *testing.T) {
	remote := &stubSource{err: errors.New("boom")}
	s := newTestSuggester(remote)

	res, err := s.Suggest(context.Background(), "c1", "tokyo", model.SearchTypeOrigin)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"HND", "NRT"}, suggestionCodes(res))
}

func TestSuggester_SupersededRemoteLookup(t *testing.T) {
	remote := &stubSource{results: []model.AirportRecord{{IATA: "HND", Name: "Tokyo Haneda Airport", City: "Tokyo"}}}
	s := NewSuggester(NewDirectory(Fallback()), Options{}, history.NewMemoryStore(), remote, 50*time.Millisecond, zap.NewNop())

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = s.Suggest(context.Background(), "c1", "to", model.SearchTypeOrigin)
	}()

	time.Sleep(10 * time.Millisecond)
	res, err := s.Suggest(context.Background(), "c1", "tokyo", model.SearchTypeOrigin)
	wg.Wait()

	require.NoError(t, err)
	assert.Equal(t, []string{"HND"}, suggestionCodes(res))
	require.ErrorIs(t, firstErr, suggest.ErrSuperseded)
	assert.Equal(t, []string{"tokyo"}, remote.calls)
}

func TestSuggester_InvalidType(t *testing.T) {
	s := newTestSuggester(nil)

	_, err := s.Suggest(context.Background(), "c1", "tokyo", model.SearchType(""))
	require.ErrorIs(t, err, ErrInvalidSearchType)
}
