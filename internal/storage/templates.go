package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/claude/gymbro/internal/models"
)

// PutTemplate upserts a workout template document by id.
func (db *DB) PutTemplate(ctx context.Context, userID string, tpl models.WorkoutTemplate) error {
	doc, err := json.Marshal(tpl.ToDocument())
	if err != nil {
		return fmt.Errorf("encoding template: %w", err)
	}

	_, err = db.Pool.Exec(ctx,
		`INSERT INTO workout_templates (id, user_id, created_at, doc)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc`,
		tpl.ID, userID, tpl.CreatedAt, doc)
	if err != nil {
		return fmt.Errorf("inserting template: %w", err)
	}
	return nil
}

// QueryTemplates retrieves a user's templates, newest first, dropping
// malformed documents.
func (db *DB) QueryTemplates(ctx context.Context, userID string, log *slog.Logger) ([]models.WorkoutTemplate, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, doc FROM workout_templates
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutTemplate
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}

		var doc models.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			log.Warn("dropping malformed template document", "template_id", id, "error", err)
			continue
		}
		tpl, err := models.TemplateFromDocument(doc)
		if err != nil {
			log.Warn("dropping malformed template document", "template_id", id, "error", err)
			continue
		}
		result = append(result, tpl)
	}
	return result, rows.Err()
}

// DeleteTemplate removes a template by id, scoped to the owning user.
func (db *DB) DeleteTemplate(ctx context.Context, userID, templateID string) error {
	_, err := db.Pool.Exec(ctx,
		`DELETE FROM workout_templates WHERE id = $1 AND user_id = $2`,
		templateID, userID)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	return nil
}
