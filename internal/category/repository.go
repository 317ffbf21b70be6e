package category

import (
	"context"
	"database/sql"
	"fmt"

	"wholesale-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetCategories(ctx context.Context) ([]*Category, error)
	GetSubcategoriesByCategoryIDs(ctx context.Context, categoryIDs []int) (map[int][]*Subcategory, error)
	GetAllSubcategories(ctx context.Context) ([]*Subcategory, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCategories(ctx context.Context) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetCategories"),
	)

	rows, err := r.db.QueryContext(ctx, `SELECT c.id, c.name FROM categories c ORDER BY c.name ASC`)
	if err != nil {
		log.Error("DB query failed GetCategories", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		categories = append(categories, &c)
	}

	return categories, rows.Err()
}

func (r *repository) GetSubcategoriesByCategoryIDs(ctx context.Context, categoryIDs []int) (map[int][]*Subcategory, error) {
	query := `
		SELECT s.id, s.category_id, s.name
		FROM subcategories s
		WHERE s.category_id = ANY($1)
		ORDER BY s.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(categoryIDs))
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	grouped := make(map[int][]*Subcategory, len(categoryIDs))
	for rows.Next() {
		var s Subcategory
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		grouped[s.CategoryID] = append(grouped[s.CategoryID], &s)
	}

	return grouped, rows.Err()
}

func (r *repository) GetAllSubcategories(ctx context.Context) ([]*Subcategory, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT s.id, s.category_id, s.name FROM subcategories s ORDER BY s.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var subcategories []*Subcategory
	for rows.Next() {
		var s Subcategory
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		subcategories = append(subcategories, &s)
	}

	return subcategories, rows.Err()
}
