package admin

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karimbenali/boucherie-backend/internal/catalog"
	"github.com/karimbenali/boucherie-backend/internal/orders"
	"github.com/karimbenali/boucherie-backend/pkg/db"
	"github.com/karimbenali/boucherie-backend/pkg/db/models"
	"github.com/karimbenali/boucherie-backend/pkg/enums"
	"github.com/karimbenali/boucherie-backend/pkg/errors"
	"github.com/karimbenali/boucherie-backend/pkg/logger"
)

// DefaultProductImageURL fills in for products created without a picture.
const DefaultProductImageURL = "https://images.unsplash.com/photo-1546833999-b9f581a1996d?w=400&h=300&fit=crop"

type categoryRepo interface {
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepo interface {
	List(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderRepo interface {
	List(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error)
	MarkPaid(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

type snapshotWriter interface {
	SaveSnapshot(ctx context.Context, data catalog.Catalog) error
}

// Service backs the admin dashboard. It keeps the last loaded dataset in
// memory; reference and duplicate checks run against that copy, the way
// the dashboard operator sees the data, not against a fresh query.
type Service interface {
	LoadAll(ctx context.Context) (Data, error)
	CreateCategory(ctx context.Context, input CategoryInput) (Data, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) (Data, error)
	CreateProduct(ctx context.Context, input ProductInput) (Data, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (Data, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) (Data, error)
	SetOrderStatus(ctx context.Context, id uuid.UUID, status string) (Data, error)
	MarkOrderPaid(ctx context.Context, id uuid.UUID) (Data, error)
	Dashboard(ctx context.Context) (Dashboard, error)
}

type service struct {
	categories categoryRepo
	products   productRepo
	orders     orderRepo
	snapshots  snapshotWriter
	logg       *logger.Logger

	mu    sync.RWMutex
	cache Data
}

// ServiceParams groups dependencies for the admin service.
type ServiceParams struct {
	Categories categoryRepo
	Products   productRepo
	Orders     orderRepo
	Snapshots  snapshotWriter
	Logger     *logger.Logger
}

// NewService builds the admin dashboard service.
func NewService(params ServiceParams) (Service, error) {
	if params.Categories == nil {
		return nil, stderrors.New("category repo required")
	}
	if params.Products == nil {
		return nil, stderrors.New("product repo required")
	}
	if params.Orders == nil {
		return nil, stderrors.New("order repo required")
	}
	if params.Snapshots == nil {
		return nil, stderrors.New("snapshot writer required")
	}
	return &service{
		categories: params.Categories,
		products:   params.Products,
		orders:     params.Orders,
		snapshots:  params.Snapshots,
		logg:       params.Logger,
	}, nil
}

// LoadAll re-fetches all three collections, refreshes the in-memory copy
// and rewrites the storefront catalog snapshot.
func (s *service) LoadAll(ctx context.Context) (Data, error) {
	categoryRows, err := s.categories.List(ctx)
	if err != nil {
		return Data{}, errors.Wrap(errors.CodeDependency, err, "failed to load categories")
	}
	productRows, err := s.products.List(ctx)
	if err != nil {
		return Data{}, errors.Wrap(errors.CodeDependency, err, "failed to load products")
	}
	orderRows, err := s.orders.List(ctx)
	if err != nil {
		return Data{}, errors.Wrap(errors.CodeDependency, err, "failed to load orders")
	}

	data := Data{
		Categories: make([]catalog.CategoryDTO, 0, len(categoryRows)),
		Products:   make([]catalog.ProductDTO, 0, len(productRows)),
		Orders:     make([]orders.OrderDTO, 0, len(orderRows)),
	}
	for _, row := range categoryRows {
		data.Categories = append(data.Categories, catalog.ToCategoryDTO(row))
	}
	for _, row := range productRows {
		data.Products = append(data.Products, catalog.ToProductDTO(row))
	}
	for _, row := range orderRows {
		data.Orders = append(data.Orders, orders.ToOrderDTO(row))
	}

	s.mu.Lock()
	s.cache = data
	s.mu.Unlock()

	if err := s.snapshots.SaveSnapshot(ctx, catalog.Catalog{
		Products:   data.Products,
		Categories: data.Categories,
	}); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "failed to rewrite catalog snapshot")
	}
	return data, nil
}

// CreateCategory inserts a category after refusing duplicates. The
// duplicate check is case-insensitive and runs against the loaded set.
func (s *service) CreateCategory(ctx context.Context, input CategoryInput) (Data, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Data{}, errors.New(errors.CodeValidation, "category name is required")
	}

	if _, err := s.loaded(ctx); err != nil {
		return Data{}, err
	}
	s.mu.RLock()
	for _, existing := range s.cache.Categories {
		if strings.EqualFold(existing.Name, name) {
			s.mu.RUnlock()
			return Data{}, errors.New(errors.CodeConflict, "a category with this name already exists")
		}
	}
	s.mu.RUnlock()

	if _, err := s.categories.Create(ctx, &models.Category{Name: name}); err != nil {
		if db.IsUniqueViolation(err, "categories_name_lower_idx") {
			return Data{}, errors.Wrap(errors.CodeConflict, err, "a category with this name already exists")
		}
		return Data{}, errors.Wrap(errors.CodeDependency, err, "failed to create category")
	}
	return s.LoadAll(ctx)
}

// DeleteCategory removes a category unless any loaded product still points
// at it; a referenced category is refused without touching the database.
func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) (Data, error) {
	if _, err := s.loaded(ctx); err != nil {
		return Data{}, err
	}
	s.mu.RLock()
	for _, p := range s.cache.Products {
		if p.CategoryID == id {
			s.mu.RUnlock()
			return Data{}, errors.New(errors.CodeStateConflict, "category still has products assigned to it")
		}
	}
	s.mu.RUnlock()

	if err := s.categories.Delete(ctx, id); err != nil {
		return Data{}, errors.Wrap(errors.CodeDependency, err, "failed to delete category")
	}
	return s.LoadAll(ctx)
}

// CreateProduct validates and inserts a product, applying the default
// image when none is supplied.
func (s *service) CreateProduct(ctx context.Context, input ProductInput) (Data, error) {
	row, err := productFromInput(input)
	if err != nil {
		return Data{}, err
	}
	if _, err := s.products.Create(ctx, row); err != nil {
		return Data{}, errors.Wrap(errors.CodeDependency, err, "failed to create product")
	}
	return s.LoadAll(ctx)
}

// UpdateProduct overwrites an existing product with the validated input.
func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (Data, error) {
	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		return Data{}, errors.Wrap(errors.CodeNotFound, err, "product not found")
	}
	row, err := productFromInput(input)
	if err != nil {
		return Data{}, err
	}
	row.ID = existing.ID
	row.CreatedAt = existing.CreatedAt
	if _, err := s.products.Update(ctx, row); err != nil {
		return Data{}, errors.Wrap(errors.CodeDependency, err, "failed to update product")
	}
	return s.LoadAll(ctx)
}

// DeleteProduct removes a product.
func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) (Data, error) {
	if err := s.products.Delete(ctx, id); err != nil {
		return Data{}, errors.Wrap(errors.CodeDependency, err, "failed to delete product")
	}
	return s.LoadAll(ctx)
}

// SetOrderStatus moves an order through the pickup lifecycle.
func (s *service) SetOrderStatus(ctx context.Context, id uuid.UUID, status string) (Data, error) {
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return Data{}, errors.Wrap(errors.CodeValidation, err, "invalid order status")
	}
	if _, err := s.orders.UpdateStatus(ctx, id, parsed); err != nil {
		return Data{}, errors.Wrap(errors.CodeDependency, err, "failed to update order status")
	}
	return s.LoadAll(ctx)
}

// MarkOrderPaid flags an order as paid.
func (s *service) MarkOrderPaid(ctx context.Context, id uuid.UUID) (Data, error) {
	if _, err := s.orders.MarkPaid(ctx, id); err != nil {
		return Data{}, errors.Wrap(errors.CodeDependency, err, "failed to mark order as paid")
	}
	return s.LoadAll(ctx)
}

// Dashboard re-fetches everything and derives the headline aggregates.
func (s *service) Dashboard(ctx context.Context) (Dashboard, error) {
	data, err := s.LoadAll(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{Data: data, Aggregates: Aggregate(data.Orders)}, nil
}

// Aggregate derives the dashboard numbers: picked-up orders count as
// completed, everything else as pending, and revenue sums the totals of
// paid orders only.
func Aggregate(orderSet []orders.OrderDTO) Aggregates {
	agg := Aggregates{TotalRevenue: decimal.Zero}
	for _, o := range orderSet {
		if o.Status.IsCompleted() {
			agg.CompletedOrders++
		} else {
			agg.PendingOrders++
		}
		if o.Paid {
			agg.TotalRevenue = agg.TotalRevenue.Add(o.Total)
		}
	}
	return agg
}

// loaded makes sure the in-memory copy exists before a check runs against
// it, loading once on first use.
func (s *service) loaded(ctx context.Context) (Data, error) {
	s.mu.RLock()
	cached := s.cache
	s.mu.RUnlock()
	if cached.Categories != nil || cached.Products != nil || cached.Orders != nil {
		return cached, nil
	}
	return s.LoadAll(ctx)
}

func productFromInput(input ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New(errors.CodeValidation, "product name is required")
	}
	price, err := decimal.NewFromString(strings.TrimSpace(input.PricePerKG))
	if err != nil {
		return nil, errors.Wrap(errors.CodeValidation, err, "price must be a decimal number")
	}
	if !price.IsPositive() {
		return nil, errors.New(errors.CodeValidation, "price must be greater than zero")
	}
	if input.StockKG < 0 {
		return nil, errors.New(errors.CodeValidation, "stock cannot be negative")
	}
	categoryID, err := uuid.Parse(input.CategoryID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeValidation, err, "invalid category id")
	}
	imageURL := strings.TrimSpace(input.ImageURL)
	if imageURL == "" {
		imageURL = DefaultProductImageURL
	}
	return &models.Product{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		PricePerKG:  price,
		CategoryID:  categoryID,
		ImageURL:    imageURL,
		StockKG:     input.StockKG,
		Featured:    input.Featured,
	}, nil
}
