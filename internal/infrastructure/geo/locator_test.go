package geo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"eko_market/internal/infrastructure/geo"
)

func TestLocate(t *testing.T) {
	rq := require.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rq.Equal("/json/41.58.0.1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"lat":6.45,"lon":3.39}`))
	}))
	defer ts.Close()

	locator := geo.NewLocator(ts.URL, ts.Client())

	coord := locator.Locate(context.Background(), "41.58.0.1")
	rq.InDelta(6.45, coord.Lat, 1e-9)
	rq.InDelta(3.39, coord.Lng, 1e-9)
}

func TestLocateOutOfBoundsFallsBack(t *testing.T) {
	rq := require.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"lat":51.5,"lon":-0.12}`)) // London
	}))
	defer ts.Close()

	locator := geo.NewLocator(ts.URL, ts.Client())

	coord := locator.Locate(context.Background(), "81.2.69.1")
	rq.InDelta(6.5933, coord.Lat, 1e-9)
	rq.InDelta(3.3359, coord.Lng, 1e-9)
}

func TestLocateLookupErrorFallsBack(t *testing.T) {
	rq := require.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	ts.Close() // refuse connections

	locator := geo.NewLocator(ts.URL, nil)

	coord := locator.Locate(context.Background(), "41.58.0.1")
	rq.InDelta(6.5933, coord.Lat, 1e-9)
	rq.InDelta(3.3359, coord.Lng, 1e-9)
}

func TestLocateCachesLookups(t *testing.T) {
	rq := require.New(t)

	var calls int

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"lat":6.45,"lon":3.39}`))
	}))
	defer ts.Close()

	locator := geo.NewLocator(ts.URL, ts.Client())

	first := locator.Locate(context.Background(), "41.58.0.1")
	second := locator.Locate(context.Background(), "41.58.0.1")

	rq.Equal(first, second)
	rq.Equal(1, calls)
}
