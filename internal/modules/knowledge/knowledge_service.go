package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"travel-assistant/internal/models"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// maxPopularPlaces caps how many search hits are expanded into places.
const maxPopularPlaces = 5

// descriptionLimit keeps popular-place descriptions chat-sized.
const descriptionLimit = 300

// ServiceInterface covers both knowledge-base lookups: notable places near
// a destination and the destination's historical summary.
type ServiceInterface interface {
	PopularPlaces(ctx context.Context, destination string) ([]models.PopularPlace, error)
	HistoricalInfo(ctx context.Context, destination string) (*models.HistoricalInfo, error)
}

// Service is a client for a MediaWiki-compatible search + summary API.
type Service struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewService creates a new knowledge-base service.
func NewService(baseURL string, client *http.Client, logger *zap.Logger) *Service {
	return &Service{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

type searchHit struct {
	Title  string `json:"title"`
	PageID int    `json:"pageid"`
}

type searchResponse struct {
	Query struct {
		Search []searchHit `json:"search"`
	} `json:"query"`
}

type page struct {
	PageID       int    `json:"pageid"`
	Title        string `json:"title"`
	Extract      string `json:"extract"`
	FullURL      string `json:"fullurl"`
	CanonicalURL string `json:"canonicalurl"`
}

type pagesResponse struct {
	Query struct {
		Pages map[string]page `json:"pages"`
	} `json:"query"`
}

// PopularPlaces searches for notable/tourist places around the destination
// and fetches a summary for each of the top hits, preserving the provider's
// ranking order. Empty search results yield models.ErrPageNotFound.
func (s *Service) PopularPlaces(ctx context.Context, destination string) ([]models.PopularPlace, error) {
	hits, err := s.search(ctx, "tourist attractions in "+destination, maxPopularPlaces)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, models.ErrPageNotFound
	}

	hits = lo.Subset(hits, 0, maxPopularPlaces)
	places := make([]models.PopularPlace, 0, len(hits))
	for _, hit := range hits {
		p, err := s.fetchPage(ctx, hit.PageID, url.Values{
			"prop":        {"extracts|info"},
			"exintro":     {"1"},
			"explaintext": {"1"},
			"inprop":      {"url"},
		})
		if err != nil {
			return nil, fmt.Errorf("knowledge: summary for %q: %w", hit.Title, err)
		}
		places = append(places, models.PopularPlace{
			Title:       hit.Title,
			Description: truncate(p.Extract, descriptionLimit),
			URL:         pageLink(p),
		})
	}

	return places, nil
}

// HistoricalInfo finds the best-matching page for the destination, then
// fetches its introductory extract and canonical URL in two further lookups
// keyed by the page identifier returned from the search step.
func (s *Service) HistoricalInfo(ctx context.Context, destination string) (*models.HistoricalInfo, error) {
	hits, err := s.search(ctx, destination, 1)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		s.logger.Warn("no knowledge page for destination", zap.String("destination", destination))
		return nil, models.ErrPageNotFound
	}

	id := hits[0].PageID

	extracted, err := s.fetchPage(ctx, id, url.Values{
		"prop":        {"extracts"},
		"exintro":     {"1"},
		"explaintext": {"1"},
	})
	if err != nil {
		return nil, fmt.Errorf("knowledge: extract for page %d: %w", id, err)
	}

	info, err := s.fetchPage(ctx, id, url.Values{
		"prop":   {"info"},
		"inprop": {"url"},
	})
	if err != nil {
		return nil, fmt.Errorf("knowledge: url for page %d: %w", id, err)
	}

	return &models.HistoricalInfo{
		Summary: strings.TrimSpace(extracted.Extract),
		Source:  pageLink(info),
	}, nil
}

// search runs a ranked full-text search and returns up to limit hits.
func (s *Service) search(ctx context.Context, query string, limit int) ([]searchHit, error) {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {strconv.Itoa(limit)},
		"format":   {"json"},
	}

	var decoded searchResponse
	if err := s.get(ctx, params, &decoded); err != nil {
		return nil, fmt.Errorf("knowledge: search %q: %w", query, err)
	}

	return decoded.Query.Search, nil
}

// fetchPage queries a single page by id with the given prop parameters.
func (s *Service) fetchPage(ctx context.Context, pageID int, params url.Values) (page, error) {
	params.Set("action", "query")
	params.Set("pageids", strconv.Itoa(pageID))
	params.Set("format", "json")

	var decoded pagesResponse
	if err := s.get(ctx, params, &decoded); err != nil {
		return page{}, err
	}

	p, ok := decoded.Query.Pages[strconv.Itoa(pageID)]
	if !ok {
		return page{}, models.ErrPageNotFound
	}
	return p, nil
}

func (s *Service) get(ctx context.Context, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/w/api.php", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// pageLink prefers the canonical URL, falling back to the full URL.
func pageLink(p page) string {
	if p.CanonicalURL != "" {
		return p.CanonicalURL
	}
	return p.FullURL
}

func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	return strings.TrimSpace(s[:limit]) + "..."
}
