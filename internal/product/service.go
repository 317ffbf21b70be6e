package product

import (
	"context"
	"time"

	"wholesale-be/internal/logger"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

type ListResult struct {
	Items      []*Product
	TotalCount *int
}

type Service interface {
	List(ctx context.Context, f Filter) (*ListResult, error)
	GetByItem(ctx context.Context, item string) (*Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*Product, error)
	ShelfLabel(ctx context.Context, item string) ([]byte, error)
}

type service struct {
	repo         Repository
	imageBaseURL string
}

func NewService(repo Repository, imageBaseURL string) Service {
	return &service{repo: repo, imageBaseURL: imageBaseURL}
}

func (s *service) List(ctx context.Context, f Filter) (*ListResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "List"),
	)

	start := time.Now()

	f.Normalize()

	log.Debug("product list requested",
		zap.Int("page", f.Page),
		zap.Int("limit", f.Limit),
		zap.Bool("include_count", f.IncludeCount),
		zap.Any("filters", map[string]any{
			"search":        f.Search,
			"categories":    f.Categories,
			"subcategories": f.Subcategories,
			"brands":        f.Brands,
			"pmp":           f.PMP,
			"promotion":     f.Promotion,
			"clearance":     f.Clearance,
		}),
	)

	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		log.Error("failed to fetch product list",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	for _, p := range items {
		s.decorate(p)
	}

	fields := []zap.Field{
		zap.Int("count", len(items)),
		zap.Int("page", f.Page),
		zap.Duration("duration", time.Since(start)),
	}
	if total != nil {
		fields = append(fields, zap.Int("total", *total))
	}
	log.Info("product list success", fields...)

	return &ListResult{Items: items, TotalCount: total}, nil
}

func (s *service) GetByItem(ctx context.Context, item string) (*Product, error) {
	p, err := s.repo.GetByItem(ctx, item)
	if err != nil {
		return nil, err
	}
	s.decorate(p)
	return p, nil
}

func (s *service) GetByBarcode(ctx context.Context, barcode string) (*Product, error) {
	p, err := s.repo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	s.decorate(p)
	return p, nil
}

// ShelfLabel renders a QR of the SKU for warehouse shelf edge labels, so
// pickers can scan straight into the by-barcode lookup.
func (s *service) ShelfLabel(ctx context.Context, item string) ([]byte, error) {
	if _, err := s.repo.GetByItem(ctx, item); err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(item, qrcode.Medium, 256)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to encode shelf label",
			zap.String("item", item),
			zap.Error(err),
		)
		return nil, err
	}
	return png, nil
}

func (s *service) decorate(p *Product) {
	p.ImageURL = ImageURL(s.imageBaseURL, p.Item)
}
