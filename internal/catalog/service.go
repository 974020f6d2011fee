package catalog

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/karimbenali/boucherie-backend/pkg/db/models"
	"github.com/karimbenali/boucherie-backend/pkg/kv"
	"github.com/karimbenali/boucherie-backend/pkg/logger"
	"github.com/karimbenali/boucherie-backend/pkg/metrics"
)

type productLister interface {
	List(ctx context.Context) ([]models.Product, error)
}

type categoryLister interface {
	List(ctx context.Context) ([]models.Category, error)
}

// Service loads the storefront catalog, degrading onto the cached snapshot
// when the database is unreachable.
type Service interface {
	Load(ctx context.Context) (Catalog, error)
	SaveSnapshot(ctx context.Context, data Catalog) error
}

type service struct {
	products    productLister
	categories  categoryLister
	snapshots   kv.Store
	snapshotKey string
	metrics     *metrics.StorefrontMetrics
	logg        *logger.Logger
}

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Products    productLister
	Categories  categoryLister
	Snapshots   kv.Store
	SnapshotKey string
	Metrics     *metrics.StorefrontMetrics
	Logger      *logger.Logger
}

// NewService builds the catalog loader.
func NewService(params ServiceParams) (Service, error) {
	if params.Products == nil {
		return nil, errors.New("product repo required")
	}
	if params.Categories == nil {
		return nil, errors.New("category repo required")
	}
	if params.Snapshots == nil {
		return nil, errors.New("snapshot store required")
	}
	if params.SnapshotKey == "" {
		return nil, errors.New("snapshot key required")
	}
	return &service{
		products:    params.Products,
		categories:  params.Categories,
		snapshots:   params.Snapshots,
		snapshotKey: params.SnapshotKey,
		metrics:     params.Metrics,
		logg:        params.Logger,
	}, nil
}

// Load fetches products and categories concurrently and maps them into the
// storefront shapes. When either fetch fails the previously cached snapshot
// is served instead; with no snapshot the catalog is empty, never an error.
func (s *service) Load(ctx context.Context) (Catalog, error) {
	var (
		productRows  []models.Product
		categoryRows []models.Category
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		rows, err := s.products.List(groupCtx)
		productRows = rows
		return err
	})
	group.Go(func() error {
		rows, err := s.categories.List(groupCtx)
		categoryRows = rows
		return err
	})

	if err := group.Wait(); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "catalog fetch failed, serving cached snapshot", err)
		}
		return s.loadSnapshot(ctx), nil
	}

	data := Catalog{
		Products:   make([]ProductDTO, 0, len(productRows)),
		Categories: make([]CategoryDTO, 0, len(categoryRows)),
	}
	for _, row := range productRows {
		data.Products = append(data.Products, ToProductDTO(row))
	}
	for _, row := range categoryRows {
		data.Categories = append(data.Categories, ToCategoryDTO(row))
	}
	return data, nil
}

// SaveSnapshot caches the dataset the loader falls back to. Written by the
// admin flow after every full re-fetch.
func (s *service) SaveSnapshot(ctx context.Context, data Catalog) error {
	return s.snapshots.SetJSON(ctx, s.snapshotKey, data)
}

func (s *service) loadSnapshot(ctx context.Context) Catalog {
	s.metrics.IncSnapshotFallback()

	var data Catalog
	err := s.snapshots.GetJSON(ctx, s.snapshotKey, &data)
	switch {
	case err == nil:
		return data
	case errors.Is(err, kv.ErrNotFound):
		return Catalog{}
	default:
		if s.logg != nil {
			s.logg.Warn(ctx, "catalog snapshot unreadable, serving empty catalog")
		}
		return Catalog{}
	}
}
