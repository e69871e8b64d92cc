package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"compta/internal/core"
)

func (r *Repository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, kind FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Kind); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) CreateCategory(ctx context.Context, name string, kind core.CategoryKind) (int64, error) {
	c := core.Category{Name: name, Kind: kind}
	if err := c.Validate(); err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO categories(name, kind) VALUES(?, ?)`, name, string(kind))
	if err != nil {
		return 0, writeError("create category", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create category id: %w", err)
	}

	slog.InfoContext(ctx, "Category created", "id", id, "name", name, "kind", kind)
	return id, nil
}

// DeleteCategory is a hard delete. Transactions still referencing the
// category keep their category_id and resolve to an empty name in joined
// reads; deleting an absent id is a no-op.
func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id=?`, id); err != nil {
		return writeError("delete category", err)
	}
	slog.InfoContext(ctx, "Category deleted", "id", id)
	return nil
}

func (r *Repository) ListCounterparties(ctx context.Context) ([]core.Counterparty, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, COALESCE(kind, '') FROM counterparties ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list counterparties: %w", err)
	}
	defer rows.Close()

	var out []core.Counterparty
	for rows.Next() {
		var c core.Counterparty
		if err := rows.Scan(&c.ID, &c.Name, &c.Kind); err != nil {
			return nil, fmt.Errorf("scan counterparty: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) UpsertCounterparty(ctx context.Context, name, kind string) (int64, error) {
	if name == "" {
		return 0, core.ErrEmptyName
	}

	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM counterparties WHERE name=? LIMIT 1`, name).Scan(&id)
	switch {
	case err == nil:
		if _, err := r.db.ExecContext(ctx, `UPDATE counterparties SET kind=? WHERE id=?`, nullString(kind), id); err != nil {
			return 0, writeError("update counterparty", err)
		}
		return id, nil
	case errors.Is(err, sql.ErrNoRows):
		res, err := r.db.ExecContext(ctx, `INSERT INTO counterparties(name, kind) VALUES(?, ?)`, name, nullString(kind))
		if err != nil {
			return 0, writeError("insert counterparty", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("insert counterparty id: %w", err)
		}
		slog.InfoContext(ctx, "Counterparty created", "id", id, "name", name)
		return id, nil
	default:
		return 0, fmt.Errorf("lookup counterparty: %w", err)
	}
}
