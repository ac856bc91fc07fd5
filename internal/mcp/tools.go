package mcp

import (
	"context"
	"time"

	"github.com/claude/gymbro/internal/models"
	"github.com/claude/gymbro/internal/stats"
	"github.com/mark3labs/mcp-go/mcp"
)

// historyLimit matches the server's stats read window.
const historyLimit = 100

// --- Tool definitions ---

var toolGetWorkoutStats = mcp.NewTool("get_workout_stats",
	mcp.WithDescription("Get overall workout statistics: totals (workouts, duration, sets, reps, weight), current streak, and workouts this week/month."),
)

var toolGetProgress = mcp.NewTool("get_progress",
	mcp.WithDescription("Get the daily training-volume progress series for the trailing 30 days. Each point has total volume (weight×reps), sets, reps, and workout duration."),
)

var toolGetExerciseProgress = mcp.NewTool("get_exercise_progress",
	mcp.WithDescription("Get per-exercise progress over the most recent 20 sessions: max weight, volume, reps, and sets per session, grouped by exercise name."),
	mcp.WithString("exercise", mcp.Description("Optional exercise name filter (exact match)")),
)

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List finished workout sessions, newest first, with exercises and sets."),
	mcp.WithNumber("limit", mcp.Description("Maximum sessions to return. Defaults to 20.")),
)

var toolListTemplates = mcp.NewTool("list_templates",
	mcp.WithDescription("List workout templates (name, description, exercises with target sets and rep ranges, favorite flag)."),
)

// --- Handlers ---

func (h *handlers) getWorkoutStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := h.ds.History(ctx, historyLimit)
	if err != nil {
		h.log.Error("mcp get_workout_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats.Compute(sessions, time.Now()))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getProgress(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := h.ds.History(ctx, historyLimit)
	if err != nil {
		h.log.Error("mcp get_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats.ProgressSeries(sessions, time.Now()))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := h.ds.History(ctx, historyLimit)
	if err != nil {
		h.log.Error("mcp get_exercise_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	progress := stats.ExerciseProgress(sessions)
	if filter := req.GetString("exercise", ""); filter != "" {
		if series, ok := progress[filter]; ok {
			progress = map[string][]models.ExerciseProgress{filter: series}
		} else {
			progress = nil
		}
	}

	result, err := mcp.NewToolResultJSON(progress)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 20)
	if limit < 1 {
		limit = 20
	}

	sessions, err := h.ds.History(ctx, limit)
	if err != nil {
		h.log.Error("mcp list_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listTemplates(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templates, err := h.ds.Templates(ctx)
	if err != nil {
		h.log.Error("mcp list_templates", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(templates)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
