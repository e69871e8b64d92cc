package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"compta/internal/core"
	"compta/internal/ledger"
)

// Setting looks up a stored value, falling back to the compile-time
// defaults when the key is absent from storage.
func (r *Repository) Setting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key=?`, key).Scan(&value)
	switch {
	case err == nil:
		return value, nil
	case errors.Is(err, sql.ErrNoRows):
		if def, ok := ledger.DefaultSettings[key]; ok {
			return def, nil
		}
		return "", fmt.Errorf("setting %q: %w", key, core.ErrNotFound)
	default:
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
}

func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO settings(key, value) VALUES(?, ?)`, key, value); err != nil {
		return writeError("set setting", err)
	}
	return nil
}

// ExportSettings materializes the full merged view: every stored key plus
// every default key, stored values winning. Round-tripping through
// backup/restore is therefore lossless.
func (r *Repository) ExportSettings(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("export settings: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string, len(ledger.DefaultSettings)+1)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for k, v := range ledger.DefaultSettings {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out, nil
}

// ImportSettings writes every pair in one durable unit.
func (r *Repository) ImportSettings(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import settings: %w", err)
	}
	defer dbtx.Rollback()

	for k, v := range values {
		if _, err := dbtx.ExecContext(ctx,
			`INSERT OR REPLACE INTO settings(key, value) VALUES(?, ?)`, k, v); err != nil {
			return writeError("import setting", err)
		}
	}

	if err := dbtx.Commit(); err != nil {
		return fmt.Errorf("commit import settings: %w", err)
	}
	return nil
}
