package assistant

import (
	"encoding/json"
	"fmt"
	"net/http"
	"travel-assistant/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handler exposes the chat assistant over server-sent events.
type Handler struct {
	service  ServiceInterface
	validate *validator.Validate
}

// NewHandler creates a new assistant handler.
func NewHandler(service ServiceInterface) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

// Chat handles POST /api/chat. The reply is streamed as SSE data events,
// each carrying a JSON object with a "content" delta, terminated by a
// [DONE] event.
func (h *Handler) Chat(c echo.Context) error {
	var req models.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	send := func(delta string) error {
		payload, err := json.Marshal(map[string]string{"content": delta})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(res, "data: %s\n\n", payload); err != nil {
			return err
		}
		res.Flush()
		return nil
	}

	if err := h.service.StreamReply(c.Request().Context(), req.Messages, send); err != nil {
		// Headers are already out, so the failure is reported in-stream.
		c.Logger().Error("Handler.Chat: ", err)
		fmt.Fprint(res, "event: error\ndata: {\"message\":\"The assistant is currently unavailable.\"}\n\n")
		res.Flush()
		return nil
	}

	fmt.Fprint(res, "data: [DONE]\n\n")
	res.Flush()
	return nil
}
