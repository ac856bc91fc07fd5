package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/claude/gymbro/internal/models"
)

// PutSession upserts a workout session document by id. The start time and
// active flag are lifted into columns for querying; the full session lives in
// the doc column.
func (db *DB) PutSession(ctx context.Context, session models.WorkoutSession) error {
	doc, err := json.Marshal(session.ToDocument())
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	_, err = db.Pool.Exec(ctx,
		`INSERT INTO workout_sessions (id, user_id, start_time, is_active, doc)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE
			SET start_time = EXCLUDED.start_time,
			    is_active = EXCLUDED.is_active,
			    doc = EXCLUDED.doc`,
		session.ID, session.UserID, session.StartTime, session.IsActive, doc)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

// QuerySessions retrieves a user's finished sessions, newest first. Malformed
// documents are logged and dropped rather than failing the whole query.
func (db *DB) QuerySessions(ctx context.Context, userID string, limit int, log *slog.Logger) ([]models.WorkoutSession, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, doc FROM workout_sessions
		 WHERE user_id = $1 AND is_active = FALSE
		 ORDER BY start_time DESC
		 LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutSession
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}

		var doc models.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			log.Warn("dropping malformed session document", "session_id", id, "error", err)
			continue
		}
		session, err := models.SessionFromDocument(doc)
		if err != nil {
			log.Warn("dropping malformed session document", "session_id", id, "error", err)
			continue
		}
		result = append(result, session)
	}
	return result, rows.Err()
}

// DeleteSession removes a session by id, scoped to the owning user.
func (db *DB) DeleteSession(ctx context.Context, userID, sessionID string) error {
	_, err := db.Pool.Exec(ctx,
		`DELETE FROM workout_sessions WHERE id = $1 AND user_id = $2`,
		sessionID, userID)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
