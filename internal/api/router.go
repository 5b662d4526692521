package api

import (
	"net/http"

	"travel-assistant/internal/modules/assistant"
	"travel-assistant/internal/modules/travel"

	"github.com/labstack/echo/v4"
)

// SetupRoutes sets up all the API endpoints for the application.
func SetupRoutes(
	e *echo.Echo,
	travelHandler *travel.Handler,
	assistantHandler *assistant.Handler,
) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Welcome to the Travel Assistant!"})
	})

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	apiGroup := e.Group("/api")
	{
		// The chat endpoint streams the assistant reply as SSE.
		apiGroup.POST("/chat", assistantHandler.Chat)

		// Direct access to the aggregation pipeline for non-chat clients.
		apiGroup.POST("/travel/plan", travelHandler.CreatePlan)
	}
}
