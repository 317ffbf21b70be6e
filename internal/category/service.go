package category

import (
	"context"

	"wholesale-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the facet-vocabulary reads for categories.
type Service interface {
	GetCategories(ctx context.Context) ([]*Category, error)
	GetAllSubcategories(ctx context.Context) ([]*Subcategory, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetCategories retrieves all categories with their subcategories attached,
// fetched in one bulk query rather than per category.
func (s *service) GetCategories(ctx context.Context) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetCategories"),
	)

	categories, err := s.repo.GetCategories(ctx)
	if err != nil {
		log.Error("failed to get categories", zap.Error(err))
		return nil, err
	}

	if len(categories) == 0 {
		return []*Category{}, nil
	}

	categoryIDs := make([]int, 0, len(categories))
	for _, c := range categories {
		categoryIDs = append(categoryIDs, c.ID)
	}

	grouped, err := s.repo.GetSubcategoriesByCategoryIDs(ctx, categoryIDs)
	if err != nil {
		log.Error("failed to get subcategories by category ids", zap.Error(err))
		return nil, err
	}

	for _, c := range categories {
		c.Subcategories = grouped[c.ID]
		if c.Subcategories == nil {
			c.Subcategories = []*Subcategory{}
		}
	}

	log.Info("GetCategories success", zap.Int("count", len(categories)))
	return categories, nil
}

func (s *service) GetAllSubcategories(ctx context.Context) ([]*Subcategory, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetAllSubcategories"),
	)

	subcategories, err := s.repo.GetAllSubcategories(ctx)
	if err != nil {
		log.Error("failed to get subcategories", zap.Error(err))
		return nil, err
	}

	log.Info("GetAllSubcategories success", zap.Int("count", len(subcategories)))
	return subcategories, nil
}
