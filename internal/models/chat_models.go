package models

// ChatMessage is one turn of the conversation as sent by the browser UI.
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" validate:"required,min=1,dive"`
}

// ErrorResponse is the generic JSON error body returned by handlers.
type ErrorResponse struct {
	Message string `json:"message"`
}
