package brand

import (
	"context"
	"database/sql"
	"fmt"
)

type Repository interface {
	GetBrands(ctx context.Context) ([]*Brand, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetBrands(ctx context.Context) ([]*Brand, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT b.id, b.name FROM brands b ORDER BY b.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var brands []*Brand
	for rows.Next() {
		var b Brand
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		brands = append(brands, &b)
	}

	return brands, rows.Err()
}
