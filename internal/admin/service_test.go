package admin

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karimbenali/boucherie-backend/internal/catalog"
	"github.com/karimbenali/boucherie-backend/internal/orders"
	"github.com/karimbenali/boucherie-backend/pkg/db/models"
	"github.com/karimbenali/boucherie-backend/pkg/enums"
	pkgerrors "github.com/karimbenali/boucherie-backend/pkg/errors"
)

type stubCategoryRepo struct {
	mu      sync.Mutex
	rows    []models.Category
	created []models.Category
	deleted []uuid.UUID
}

func (s *stubCategoryRepo) List(context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Category(nil), s.rows...), nil
}

func (s *stubCategoryRepo) Create(_ context.Context, category *models.Category) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category.ID = uuid.New()
	s.rows = append(s.rows, *category)
	s.created = append(s.created, *category)
	return category, nil
}

func (s *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, id)
	kept := s.rows[:0]
	for _, row := range s.rows {
		if row.ID != id {
			kept = append(kept, row)
		}
	}
	s.rows = kept
	return nil
}

type stubProductRepo struct {
	rows    []models.Product
	created []models.Product
	updated []models.Product
	deleted []uuid.UUID
}

func (s *stubProductRepo) List(context.Context) ([]models.Product, error) {
	return append([]models.Product(nil), s.rows...), nil
}

func (s *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	for _, row := range s.rows {
		if row.ID == id {
			found := row
			return &found, nil
		}
	}
	return nil, errors.New("record not found")
}

func (s *stubProductRepo) Create(_ context.Context, product *models.Product) (*models.Product, error) {
	product.ID = uuid.New()
	s.rows = append(s.rows, *product)
	s.created = append(s.created, *product)
	return product, nil
}

func (s *stubProductRepo) Update(_ context.Context, product *models.Product) (*models.Product, error) {
	s.updated = append(s.updated, *product)
	for i, row := range s.rows {
		if row.ID == product.ID {
			s.rows[i] = *product
		}
	}
	return product, nil
}

func (s *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubOrderRepo struct {
	rows []models.Order
}

func (s *stubOrderRepo) List(context.Context) ([]models.Order, error) {
	return append([]models.Order(nil), s.rows...), nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i].Status = status
			return &s.rows[i], nil
		}
	}
	return nil, errors.New("record not found")
}

func (s *stubOrderRepo) MarkPaid(_ context.Context, id uuid.UUID) (*models.Order, error) {
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i].Paid = true
			return &s.rows[i], nil
		}
	}
	return nil, errors.New("record not found")
}

type stubSnapshots struct {
	mu    sync.Mutex
	saved []catalog.Catalog
}

func (s *stubSnapshots) SaveSnapshot(_ context.Context, data catalog.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, data)
	return nil
}

type adminFixture struct {
	categories *stubCategoryRepo
	products   *stubProductRepo
	orders     *stubOrderRepo
	snapshots  *stubSnapshots
	svc        Service
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	f := &adminFixture{
		categories: &stubCategoryRepo{},
		products:   &stubProductRepo{},
		orders:     &stubOrderRepo{},
		snapshots:  &stubSnapshots{},
	}
	svc, err := NewService(ServiceParams{
		Categories: f.categories,
		Products:   f.products,
		Orders:     f.orders,
		Snapshots:  f.snapshots,
	})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	f.svc = svc
	return f
}

func TestLoadAllRewritesSnapshot(t *testing.T) {
	f := newAdminFixture(t)
	f.categories.rows = []models.Category{{ID: uuid.New(), Name: "boeuf"}}
	f.products.rows = []models.Product{{ID: uuid.New(), Name: "entrecote", PricePerKG: decimal.RequireFromString("28.90")}}

	data, err := f.svc.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(data.Categories) != 1 || len(data.Products) != 1 {
		t.Fatalf("unexpected dataset: %+v", data)
	}
	if len(f.snapshots.saved) != 1 {
		t.Fatalf("expected one snapshot rewrite, got %d", len(f.snapshots.saved))
	}
	if len(f.snapshots.saved[0].Products) != 1 {
		t.Fatalf("snapshot missing products: %+v", f.snapshots.saved[0])
	}
}

func TestCreateCategoryRefusesDuplicatesCaseInsensitive(t *testing.T) {
	f := newAdminFixture(t)
	f.categories.rows = []models.Category{{ID: uuid.New(), Name: "Boeuf"}}

	_, err := f.svc.CreateCategory(context.Background(), CategoryInput{Name: "  boeuf "})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(f.categories.created) != 0 {
		t.Fatal("duplicate must not reach the repository")
	}

	data, err := f.svc.CreateCategory(context.Background(), CategoryInput{Name: "Agneau"})
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if len(data.Categories) != 2 {
		t.Fatalf("expected refreshed dataset with 2 categories, got %d", len(data.Categories))
	}
}

func TestCreateCategoryRequiresName(t *testing.T) {
	f := newAdminFixture(t)
	_, err := f.svc.CreateCategory(context.Background(), CategoryInput{Name: "   "})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteCategoryRefusedWhileReferenced(t *testing.T) {
	f := newAdminFixture(t)
	categoryID := uuid.New()
	f.categories.rows = []models.Category{{ID: categoryID, Name: "boeuf"}}
	f.products.rows = []models.Product{{ID: uuid.New(), Name: "entrecote", CategoryID: categoryID}}

	_, err := f.svc.DeleteCategory(context.Background(), categoryID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if len(f.categories.deleted) != 0 {
		t.Fatal("a referenced category must be refused before any delete call")
	}
}

func TestDeleteCategoryUnreferencedSucceeds(t *testing.T) {
	f := newAdminFixture(t)
	categoryID := uuid.New()
	f.categories.rows = []models.Category{{ID: categoryID, Name: "boeuf"}}

	data, err := f.svc.DeleteCategory(context.Background(), categoryID)
	if err != nil {
		t.Fatalf("DeleteCategory failed: %v", err)
	}
	if len(f.categories.deleted) != 1 {
		t.Fatal("expected one delete call")
	}
	if len(data.Categories) != 0 {
		t.Fatalf("refreshed dataset should be empty, got %+v", data.Categories)
	}
}

func TestCreateProductValidation(t *testing.T) {
	f := newAdminFixture(t)
	categoryID := uuid.New()

	cases := []ProductInput{
		{Name: "", PricePerKG: "10.00", CategoryID: categoryID.String()},
		{Name: "entrecote", PricePerKG: "abc", CategoryID: categoryID.String()},
		{Name: "entrecote", PricePerKG: "0", CategoryID: categoryID.String()},
		{Name: "entrecote", PricePerKG: "-2", CategoryID: categoryID.String()},
		{Name: "entrecote", PricePerKG: "10.00", CategoryID: categoryID.String(), StockKG: -1},
		{Name: "entrecote", PricePerKG: "10.00", CategoryID: "not-a-uuid"},
	}
	for _, input := range cases {
		_, err := f.svc.CreateProduct(context.Background(), input)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %+v, got %v", input, err)
		}
	}
	if len(f.products.created) != 0 {
		t.Fatal("invalid products must not reach the repository")
	}
}

func TestCreateProductAppliesDefaultImage(t *testing.T) {
	f := newAdminFixture(t)

	_, err := f.svc.CreateProduct(context.Background(), ProductInput{
		Name:       "entrecote",
		PricePerKG: "28.90",
		CategoryID: uuid.NewString(),
		StockKG:    5,
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if got := f.products.created[0].ImageURL; got != DefaultProductImageURL {
		t.Fatalf("expected default image, got %q", got)
	}
}

func TestUpdateProductKeepsIdentity(t *testing.T) {
	f := newAdminFixture(t)
	existing := models.Product{ID: uuid.New(), Name: "entrecote", PricePerKG: decimal.RequireFromString("28.90")}
	f.products.rows = []models.Product{existing}

	_, err := f.svc.UpdateProduct(context.Background(), existing.ID, ProductInput{
		Name:       "cote de boeuf",
		PricePerKG: "31.00",
		CategoryID: uuid.NewString(),
		ImageURL:   "https://example.com/cote.jpg",
	})
	if err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}
	if got := f.products.updated[0]; got.ID != existing.ID || got.Name != "cote de boeuf" {
		t.Fatalf("update lost identity: %+v", got)
	}
}

func TestSetOrderStatusValidatesStatus(t *testing.T) {
	f := newAdminFixture(t)
	order := models.Order{ID: uuid.New(), Status: enums.OrderStatusPending}
	f.orders.rows = []models.Order{order}

	_, err := f.svc.SetOrderStatus(context.Background(), order.ID, "shipped")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	data, err := f.svc.SetOrderStatus(context.Background(), order.ID, "ready")
	if err != nil {
		t.Fatalf("SetOrderStatus failed: %v", err)
	}
	if data.Orders[0].Status != enums.OrderStatusReady {
		t.Fatalf("status not updated: %+v", data.Orders[0])
	}
}

func TestAggregate(t *testing.T) {
	set := []orders.OrderDTO{
		{Status: enums.OrderStatusPending, Paid: true, Total: decimal.RequireFromString("33.00")},
		{Status: enums.OrderStatusInPreparation, Paid: false, Total: decimal.RequireFromString("10.00")},
		{Status: enums.OrderStatusReady, Paid: true, Total: decimal.RequireFromString("7.50")},
		{Status: enums.OrderStatusPickedUp, Paid: true, Total: decimal.RequireFromString("20.00")},
	}

	agg := Aggregate(set)
	if agg.CompletedOrders != 1 {
		t.Fatalf("only picked_up counts as completed, got %d", agg.CompletedOrders)
	}
	if agg.PendingOrders != 3 {
		t.Fatalf("expected 3 pending, got %d", agg.PendingOrders)
	}
	if want := decimal.RequireFromString("60.50"); !agg.TotalRevenue.Equal(want) {
		t.Fatalf("revenue = %s, want %s", agg.TotalRevenue, want)
	}
}

func TestDashboardDerivesAggregates(t *testing.T) {
	f := newAdminFixture(t)
	f.orders.rows = []models.Order{
		{ID: uuid.New(), Status: enums.OrderStatusPending, Paid: true, Total: decimal.RequireFromString("33.00")},
		{ID: uuid.New(), Status: enums.OrderStatusPickedUp, Paid: true, Total: decimal.RequireFromString("12.00")},
	}

	dashboard, err := f.svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if dashboard.Aggregates.PendingOrders != 1 || dashboard.Aggregates.CompletedOrders != 1 {
		t.Fatalf("unexpected aggregates: %+v", dashboard.Aggregates)
	}
	if want := decimal.RequireFromString("45.00"); !dashboard.Aggregates.TotalRevenue.Equal(want) {
		t.Fatalf("revenue = %s, want %s", dashboard.Aggregates.TotalRevenue, want)
	}
}
