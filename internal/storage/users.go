package storage

import "context"

// GetOrCreateUser upserts a user by Tailscale login name. Updates last_seen
// and display_name on each call. The login doubles as the user id that
// session and template documents are keyed by.
func (db *DB) GetOrCreateUser(ctx context.Context, login, displayName string) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO users (login, display_name)
		VALUES ($1, $2)
		ON CONFLICT (login) DO UPDATE
			SET last_seen = NOW(), display_name = COALESCE(NULLIF($2, ''), users.display_name)
	`, login, displayName)
	return err
}
