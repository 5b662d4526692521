package knowledge

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"travel-assistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeWiki answers search and page queries the way a MediaWiki API does.
func fakeWiki(t *testing.T, searchJSON string, pages map[string]string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/w/api.php", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "query", q.Get("action"))
		w.Header().Set("Content-Type", "application/json")

		if q.Get("list") == "search" {
			_, _ = w.Write([]byte(searchJSON))
			return
		}

		id := q.Get("pageids")
		body, ok := pages[id]
		if !ok {
			_, _ = w.Write([]byte(`{"query":{"pages":{}}}`))
			return
		}
		_, _ = fmt.Fprintf(w, `{"query":{"pages":{%q:%s}}}`, id, body)
	}
}

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewService(srv.URL, srv.Client(), zap.NewNop())
}

func TestPopularPlacesRankedAndCapped(t *testing.T) {
	search := `{"query":{"search":[
		{"title":"Brandenburg Gate","pageid":1},
		{"title":"Museum Island","pageid":2},
		{"title":"Reichstag","pageid":3},
		{"title":"East Side Gallery","pageid":4},
		{"title":"Berlin Cathedral","pageid":5}
	]}}`
	pages := map[string]string{}
	for i := 1; i <= 5; i++ {
		pages[fmt.Sprint(i)] = fmt.Sprintf(
			`{"pageid":%d,"title":"Place %d","extract":"About place %d.","fullurl":"https://wiki.test/%d"}`,
			i, i, i, i)
	}

	svc := newTestService(t, fakeWiki(t, search, pages))

	places, err := svc.PopularPlaces(context.Background(), "Berlin")
	require.NoError(t, err)
	require.Len(t, places, 5)

	// Provider ranking order is preserved.
	assert.Equal(t, "Brandenburg Gate", places[0].Title)
	assert.Equal(t, "Berlin Cathedral", places[4].Title)
	assert.Equal(t, "About place 1.", places[0].Description)
	assert.Equal(t, "https://wiki.test/1", places[0].URL)
}

func TestPopularPlacesEmptySearch(t *testing.T) {
	svc := newTestService(t, fakeWiki(t, `{"query":{"search":[]}}`, nil))

	_, err := svc.PopularPlaces(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, models.ErrPageNotFound)
}

func TestPopularPlacesSummaryFailureIsFailure(t *testing.T) {
	calls := 0
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("list") == "search" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"query":{"search":[{"title":"X","pageid":9}]}}`))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := svc.PopularPlaces(context.Background(), "Berlin")
	require.Error(t, err)
	assert.GreaterOrEqual(t, calls, 2)
}

func TestHistoricalInfo(t *testing.T) {
	search := `{"query":{"search":[{"title":"Berlin","pageid":42}]}}`
	pages := map[string]string{
		"42": `{"pageid":42,"title":"Berlin","extract":"Berlin's documented history began in the 13th century.","fullurl":"https://wiki.test/Berlin","canonicalurl":"https://wiki.test/canonical/Berlin"}`,
	}

	svc := newTestService(t, fakeWiki(t, search, pages))

	info, err := svc.HistoricalInfo(context.Background(), "Berlin")
	require.NoError(t, err)
	assert.Equal(t, "Berlin's documented history began in the 13th century.", info.Summary)
	assert.Equal(t, "https://wiki.test/canonical/Berlin", info.Source)
}

func TestHistoricalInfoNoPage(t *testing.T) {
	svc := newTestService(t, fakeWiki(t, `{"query":{"search":[]}}`, nil))

	_, err := svc.HistoricalInfo(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, models.ErrPageNotFound)
}

func TestTruncate(t *testing.T) {
	long := ""
	for i := 0; i < 40; i++ {
		long += "0123456789"
	}
	got := truncate(long, descriptionLimit)
	assert.Len(t, got, descriptionLimit+3)
	assert.True(t, len(got) < len(long))
	assert.Equal(t, "short", truncate("  short  ", descriptionLimit))
}
