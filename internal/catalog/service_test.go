package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karimbenali/boucherie-backend/pkg/db/models"
	"github.com/karimbenali/boucherie-backend/pkg/kv"
)

type stubProductRepo struct {
	rows []models.Product
	err  error
}

func (s *stubProductRepo) List(context.Context) ([]models.Product, error) {
	return s.rows, s.err
}

type stubCategoryRepo struct {
	rows []models.Category
	err  error
}

func (s *stubCategoryRepo) List(context.Context) ([]models.Category, error) {
	return s.rows, s.err
}

func newTestService(t *testing.T, products *stubProductRepo, categories *stubCategoryRepo, snapshots kv.Store) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Products:    products,
		Categories:  categories,
		Snapshots:   snapshots,
		SnapshotKey: "snapshot:catalog",
	})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func TestLoadMapsRows(t *testing.T) {
	category := models.Category{ID: uuid.New(), Name: "boeuf"}
	row := models.Product{
		ID:         uuid.New(),
		Name:       "entrecote",
		PricePerKG: decimal.RequireFromString("28.90"),
		CategoryID: category.ID,
		StockKG:    12,
		Featured:   true,
	}
	svc := newTestService(t,
		&stubProductRepo{rows: []models.Product{row}},
		&stubCategoryRepo{rows: []models.Category{category}},
		kv.NewMemoryStore(),
	)

	data, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(data.Products) != 1 || len(data.Categories) != 1 {
		t.Fatalf("unexpected dataset: %+v", data)
	}
	got := data.Products[0]
	if got.ID != row.ID || got.Name != "entrecote" || !got.Featured || got.StockKG != 12 {
		t.Fatalf("product not mapped: %+v", got)
	}
	if data.Categories[0].Name != "boeuf" {
		t.Fatalf("category not mapped: %+v", data.Categories[0])
	}
}

func TestLoadFallsBackToSnapshot(t *testing.T) {
	ctx := context.Background()
	snapshots := kv.NewMemoryStore()

	cached := Catalog{
		Products:   []ProductDTO{{ID: uuid.New(), Name: "merguez"}},
		Categories: []CategoryDTO{{ID: uuid.New(), Name: "agneau"}},
	}
	if err := snapshots.SetJSON(ctx, "snapshot:catalog", cached); err != nil {
		t.Fatalf("seeding snapshot failed: %v", err)
	}

	svc := newTestService(t,
		&stubProductRepo{err: errors.New("db down")},
		&stubCategoryRepo{},
		snapshots,
	)

	data, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("fallback load should not error: %v", err)
	}
	if len(data.Products) != 1 || data.Products[0].Name != "merguez" {
		t.Fatalf("expected cached products, got %+v", data.Products)
	}
}

func TestLoadWithoutSnapshotYieldsEmptyCatalog(t *testing.T) {
	svc := newTestService(t,
		&stubProductRepo{},
		&stubCategoryRepo{err: errors.New("db down")},
		kv.NewMemoryStore(),
	)

	data, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("expected empty catalog, got error: %v", err)
	}
	if len(data.Products) != 0 || len(data.Categories) != 0 {
		t.Fatalf("expected empty catalog, got %+v", data)
	}
}

func TestSaveSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	snapshots := kv.NewMemoryStore()
	svc := newTestService(t, &stubProductRepo{err: errors.New("db down")}, &stubCategoryRepo{}, snapshots)

	saved := Catalog{Products: []ProductDTO{{ID: uuid.New(), Name: "cote de boeuf"}}}
	if err := svc.SaveSnapshot(ctx, saved); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	data, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(data.Products) != 1 || data.Products[0].Name != "cote de boeuf" {
		t.Fatalf("snapshot not readable back: %+v", data)
	}
}

func TestFilterByCategory(t *testing.T) {
	beef := uuid.New()
	lamb := uuid.New()
	products := []ProductDTO{
		{ID: uuid.New(), Name: "entrecote", CategoryID: beef},
		{ID: uuid.New(), Name: "gigot", CategoryID: lamb},
		{ID: uuid.New(), Name: "bavette", CategoryID: beef},
	}

	if got := FilterByCategory(products, AllCategories); len(got) != 3 {
		t.Fatalf("sentinel should return everything, got %d", len(got))
	}
	if got := FilterByCategory(products, ""); len(got) != 3 {
		t.Fatalf("empty filter should return everything, got %d", len(got))
	}

	got := FilterByCategory(products, beef.String())
	if len(got) != 2 {
		t.Fatalf("expected 2 beef products, got %d", len(got))
	}
	for _, p := range got {
		if p.CategoryID != beef {
			t.Fatalf("wrong category in filtered set: %+v", p)
		}
	}
	if len(products) != 3 {
		t.Fatal("input slice must not be mutated")
	}

	if got := FilterByCategory(products, uuid.NewString()); len(got) != 0 {
		t.Fatalf("unknown category should match nothing, got %d", len(got))
	}
}
