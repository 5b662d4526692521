package travel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"travel-assistant/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	plan *models.TravelPlan
	err  error
}

func (s *stubService) Plan(_ context.Context, _ models.PlanRequest) (*models.TravelPlan, error) {
	return s.plan, s.err
}

func (s *stubService) PlanText(_ context.Context, _ models.PlanRequest) string {
	return ""
}

func performRequest(t *testing.T, svc ServiceInterface, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/travel/plan", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHandler(svc)
	require.NoError(t, h.CreatePlan(c))
	return rec
}

func TestCreatePlanSuccess(t *testing.T) {
	plan := &models.TravelPlan{Duration: "2 minutes", Distance: "1.50 km"}
	rec := performRequest(t, &stubService{plan: plan}, `{"origin":"Berlin","destination":"Paris"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got models.TravelPlan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "2 minutes", got.Duration)
	assert.Equal(t, "1.50 km", got.Distance)
}

func TestCreatePlanValidation(t *testing.T) {
	rec := performRequest(t, &stubService{}, `{"origin":"Berlin"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatePlanFatalFailures(t *testing.T) {
	rec := performRequest(t, &stubService{err: models.ErrNoRoutes}, `{"origin":"Berlin","destination":"Paris"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "No routes found. Please check the origin and destination.")

	rec = performRequest(t, &stubService{err: models.ErrCoordinatesNotFound}, `{"origin":"Berlin","destination":"Paris"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to get coordinates for origin or destination.")
}

func TestCreatePlanUnsupportedMode(t *testing.T) {
	rec := performRequest(t, &stubService{err: models.ErrUnsupportedTravelMode},
		`{"origin":"Berlin","destination":"Paris","travel_mode":"teleport"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
