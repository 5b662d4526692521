package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"travel-assistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewService(srv.URL, srv.Client(), zap.NewNop())
}

func TestLookupResolvesCoordinates(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Berlin", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"52.5170365","lon":"13.3888599","display_name":"Berlin, Germany"}]`))
	})

	coords, err := svc.Lookup(context.Background(), "Berlin")
	require.NoError(t, err)
	assert.InDelta(t, 52.5170365, coords.Lat, 1e-9)
	assert.InDelta(t, 13.3888599, coords.Lon, 1e-9)
}

func TestLookupEmptyResultSet(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := svc.Lookup(context.Background(), "Nowhereville XYZ")
	assert.ErrorIs(t, err, models.ErrPlaceNotFound)
}

func TestLookupBlankInput(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider must not be called for blank input")
	})

	_, err := svc.Lookup(context.Background(), "   ")
	assert.ErrorIs(t, err, models.ErrPlaceNotFound)
}

func TestLookupProviderError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := svc.Lookup(context.Background(), "Berlin")
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrPlaceNotFound)
}
