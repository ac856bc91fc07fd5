package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/gymbro/internal/models"
)

// Result summarizes one export run.
type Result struct {
	Fetched int
	Written int
	Skipped int
}

// Run writes one JSON file per not-yet-exported session into outDir and
// records each write in the state database. In dry-run mode nothing is
// written or recorded.
func Run(ctx context.Context, client *Client, state *StateDB, outDir string, limit int, dryRun bool, log *slog.Logger) (*Result, error) {
	sessions, err := client.History(ctx, limit)
	if err != nil {
		return nil, err
	}

	result := &Result{Fetched: len(sessions)}

	if !dryRun {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output dir %s: %w", outDir, err)
		}
	}

	for _, session := range sessions {
		exported, err := state.IsExported(session.ID)
		if err != nil {
			return result, fmt.Errorf("checking state for %s: %w", session.ID, err)
		}
		if exported {
			result.Skipped++
			continue
		}

		path := filepath.Join(outDir, fileName(session))
		if dryRun {
			log.Info("would export", "session_id", session.ID, "path", path)
			result.Written++
			continue
		}

		data, err := json.MarshalIndent(session, "", "  ")
		if err != nil {
			return result, fmt.Errorf("encoding session %s: %w", session.ID, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return result, fmt.Errorf("writing %s: %w", path, err)
		}
		if err := state.MarkExported(session.ID, path); err != nil {
			return result, fmt.Errorf("recording export of %s: %w", session.ID, err)
		}
		log.Info("exported", "session_id", session.ID, "path", path)
		result.Written++
	}

	return result, nil
}

func fileName(s models.WorkoutSession) string {
	return fmt.Sprintf("workout-%s-%s.json", s.StartTime.Format("2006-01-02"), s.ID)
}
