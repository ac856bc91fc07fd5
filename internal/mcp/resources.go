package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

var resRecentWorkouts = mcp.NewResource(
	"gymbro://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("The ten most recent finished workout sessions with their exercises and sets"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	sessions, err := h.ds.History(ctx, 10)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(sessions)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
