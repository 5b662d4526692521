package assistant

import (
	"context"
	"fmt"
	"testing"
	"travel-assistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePlanner struct {
	lastReq models.PlanRequest
	reply   string
}

func (f *fakePlanner) PlanText(_ context.Context, req models.PlanRequest) string {
	f.lastReq = req
	return f.reply
}

func newTestService(planner RoutePlanner) *Service {
	return NewService("test-key", "gpt-4o-mini", []string{"driving", "walking", "cycling"}, planner, zap.NewNop())
}

func TestDispatchToolRunsPlanner(t *testing.T) {
	planner := &fakePlanner{reply: "Here is your travel plan from Berlin to Paris:"}
	svc := newTestService(planner)

	result := svc.dispatchTool(context.Background(), toolGetRoute,
		`{"origin":"Berlin","destination":"Paris","travel_mode":"walking"}`)

	assert.Equal(t, planner.reply, result)
	assert.Equal(t, models.PlanRequest{
		Origin:      "Berlin",
		Destination: "Paris",
		TravelMode:  "walking",
	}, planner.lastReq)
}

func TestDispatchToolUnknownTool(t *testing.T) {
	svc := newTestService(&fakePlanner{})

	result := svc.dispatchTool(context.Background(), "book_flight", `{}`)
	assert.Contains(t, result, "Unknown tool")
}

func TestDispatchToolMalformedArguments(t *testing.T) {
	svc := newTestService(&fakePlanner{})

	result := svc.dispatchTool(context.Background(), toolGetRoute, `{"origin":`)
	assert.Equal(t, "The route request could not be understood.", result)
}

func TestDispatchToolMissingArguments(t *testing.T) {
	svc := newTestService(&fakePlanner{})

	result := svc.dispatchTool(context.Background(), toolGetRoute, `{"origin":"Berlin"}`)
	assert.Equal(t, "Both an origin and a destination are required.", result)
}

func TestBuildMessagesFiltersAndTruncates(t *testing.T) {
	history := make([]models.ChatMessage, 0, maxHistory+10)
	for i := 0; i < maxHistory+10; i++ {
		history = append(history, models.ChatMessage{Role: "user", Content: fmt.Sprintf("message %d", i)})
	}
	history = append(history,
		models.ChatMessage{Role: "tool", Content: "ignored"},
		models.ChatMessage{Role: "user", Content: ""},
	)

	msgs := buildMessages(history)

	// System prompt plus the last maxHistory entries, minus the two dropped.
	require.Len(t, msgs, 1+maxHistory-2)
	assert.NotNil(t, msgs[0].OfSystem)
	assert.NotNil(t, msgs[1].OfUser)
}

func TestRouteToolDeclaresConfiguredModes(t *testing.T) {
	svc := newTestService(&fakePlanner{})

	tool := svc.routeTool()
	assert.Equal(t, toolGetRoute, tool.Function.Name)

	props, ok := tool.Function.Parameters["properties"].(map[string]any)
	require.True(t, ok)
	mode, ok := props["travel_mode"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"driving", "walking", "cycling"}, mode["enum"])
}
