package airport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteSource_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/airports/search" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "osaka" {
			t.Fatalf("unexpected query: %s", got)
		}
		if got := r.URL.Query().Get("limit"); got != "2" {
			t.Fatalf("unexpected limit: %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"airports":[
			{"iata":"kix","icao":"RJBB","name":"Kansai International Airport","city":"Osaka","country":"JP","latitude":"34.4347","longitude":135.244},
			{"iata":"","name":"No code"},
			{"iata":"ITM","name":"Osaka International Airport","city":"Osaka","country":"JP","latitude":null,"longitude":null},
			{"iata":"UKB","name":"Kobe Airport","city":"Kobe","country":"JP"}
		]}`))
	}))
	defer srv.Close()

	src := NewRemoteSource(srv.URL + "/")
	res, err := src.Search(context.Background(), "osaka", 2)
	require.NoError(t, err)
	require.Len(t, res, 2)

	assert.Equal(t, "KIX", res[0].IATA)
	assert.Equal(t, "RJBB", res[0].ICAO)
	require.NotNil(t, res[0].Coordinates)
	assert.InDelta(t, 34.4347, res[0].Coordinates.Lat, 1e-9)
	assert.InDelta(t, 135.244, res[0].Coordinates.Lon, 1e-9)

	assert.Equal(t, "ITM", res[1].IATA)
	assert.Nil(t, res[1].Coordinates)
}

func TestRemoteSource_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewRemoteSource(srv.URL).Search(context.Background(), "tokyo", 10)
	require.Error(t, err)

	var nilSource *RemoteSource
	_, err = nilSource.Search(context.Background(), "tokyo", 10)
	require.Error(t, err)
}
