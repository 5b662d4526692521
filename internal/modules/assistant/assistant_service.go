package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"travel-assistant/internal/models"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"
)

const toolGetRoute = "get_route"

// maxHistory bounds how much of the conversation is forwarded to the model.
const maxHistory = 20

const systemPrompt = "You are a travel-planning assistant. When the user asks how to get " +
	"from one place to another, call the get_route tool and present its result " +
	"to the user, keeping the plan's structure and all links intact. Answer " +
	"other travel questions from your own knowledge, concisely."

// RoutePlanner is the tool backend: it builds the travel plan and renders
// it as text, returning a plain-text explanation on failure.
type RoutePlanner interface {
	PlanText(ctx context.Context, req models.PlanRequest) string
}

// ServiceInterface defines the contract for the chat assistant.
type ServiceInterface interface {
	StreamReply(ctx context.Context, messages []models.ChatMessage, send func(delta string) error) error
}

// Service orchestrates the LLM conversation: it declares the get_route
// tool, runs the tool round, and streams the final completion through the
// send callback. All protocol and retry concerns live in the SDK.
type Service struct {
	client       openai.Client
	model        string
	allowedModes []string
	planner      RoutePlanner
	logger       *zap.Logger
}

// NewService creates a new assistant service.
func NewService(apiKey, model string, allowedModes []string, planner RoutePlanner, logger *zap.Logger) *Service {
	return &Service{
		client:       openai.NewClient(option.WithAPIKey(apiKey)),
		model:        model,
		allowedModes: allowedModes,
		planner:      planner,
		logger:       logger,
	}
}

// StreamReply forwards the conversation to the model. If the model requests
// the get_route tool, the tool results are appended and the follow-up
// completion is streamed; otherwise the direct answer is sent whole.
func (s *Service) StreamReply(ctx context.Context, messages []models.ChatMessage, send func(delta string) error) error {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(s.model),
		Messages: buildMessages(messages),
		Tools:    []openai.ChatCompletionToolParam{s.routeTool()},
	}

	completion, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return fmt.Errorf("assistant: chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return errors.New("assistant: completion returned no choices")
	}

	msg := completion.Choices[0].Message
	if len(msg.ToolCalls) == 0 {
		if msg.Content == "" {
			return errors.New("assistant: completion returned an empty message")
		}
		return send(msg.Content)
	}

	params.Messages = append(params.Messages, msg.ToParam())
	for _, call := range msg.ToolCalls {
		result := s.dispatchTool(ctx, call.Function.Name, call.Function.Arguments)
		params.Messages = append(params.Messages, openai.ToolMessage(result, call.ID))
	}

	stream := s.client.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close()

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		if err := send(delta); err != nil {
			return err
		}
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("assistant: stream completion: %w", err)
	}

	return nil
}

// dispatchTool parses the model's tool arguments and runs the planner.
// Every failure mode returns explanation text for the model to relay;
// nothing here may abort the conversation.
func (s *Service) dispatchTool(ctx context.Context, name, rawArgs string) string {
	if name != toolGetRoute {
		s.logger.Warn("model requested unknown tool", zap.String("tool", name))
		return fmt.Sprintf("Unknown tool %q.", name)
	}

	var args struct {
		Origin      string `json:"origin"`
		Destination string `json:"destination"`
		TravelMode  string `json:"travel_mode"`
	}
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		s.logger.Warn("malformed tool arguments", zap.Error(err))
		return "The route request could not be understood."
	}
	if args.Origin == "" || args.Destination == "" {
		return "Both an origin and a destination are required."
	}

	return s.planner.PlanText(ctx, models.PlanRequest{
		Origin:      args.Origin,
		Destination: args.Destination,
		TravelMode:  args.TravelMode,
	})
}

// routeTool declares the single tool exposed to the model. The travel-mode
// enumeration mirrors the configured modes.
func (s *Service) routeTool() openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name: toolGetRoute,
			Description: openai.String("Build a complete travel plan between two places: route with " +
				"turn-by-turn directions, historical background, popular places, and hotel recommendations."),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"origin": map[string]any{
						"type":        "string",
						"description": "Free-text name of the starting location",
					},
					"destination": map[string]any{
						"type":        "string",
						"description": "Free-text name of the destination",
					},
					"travel_mode": map[string]any{
						"type": "string",
						"enum": s.allowedModes,
					},
				},
				"required": []string{"origin", "destination"},
			},
		},
	}
}

// buildMessages prepends the system prompt and forwards the last maxHistory
// user/assistant turns, dropping empty or foreign-role entries.
func buildMessages(history []models.ChatMessage) []openai.ChatCompletionMessageParamUnion {
	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}

	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	out = append(out, openai.SystemMessage(systemPrompt))
	for _, m := range history {
		if m.Content == "" {
			continue
		}
		switch m.Role {
		case "user":
			out = append(out, openai.UserMessage(m.Content))
		case "assistant":
			out = append(out, openai.AssistantMessage(m.Content))
		}
	}
	return out
}
