package repository

import (
	"context"
	"testing"

	"github.com/hitoshi/storeman/internal/model"
)

func ptrFloat(v float64) *float64 { return &v }

func seedProducts(t *testing.T, repo *SQLiteProductRepo) {
	t.Helper()
	ctx := context.Background()
	products := []*model.Product{
		{Name: "Widget", Description: "A widget", Price: 9.99},
		{Name: "Gadget", Description: "A gadget", Price: 24.50},
		{Name: "Anvil", Description: "Heavy", Price: 120.00},
	}
	for _, p := range products {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("failed to create product: %v", err)
		}
	}
}

// 挿入した商品が同じ値で読み戻せることを検証
func TestSQLiteProductRepo_CreateAndFindByID(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLiteProductRepo(db)
	ctx := context.Background()

	product := &model.Product{Name: "Widget", Description: "A widget", Price: 9.99}
	if err := repo.Create(ctx, product); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if product.ID == 0 {
		t.Fatal("ID should be assigned after Create")
	}

	got, err := repo.FindByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got == nil {
		t.Fatal("product should be found")
	}
	if got.Name != "Widget" {
		t.Errorf("name = %q, want Widget", got.Name)
	}
	if got.Description != "A widget" {
		t.Errorf("description = %q, want A widget", got.Description)
	}
	if got.Price != 9.99 {
		t.Errorf("price = %v, want 9.99", got.Price)
	}
}

func TestSQLiteProductRepo_FindByID_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLiteProductRepo(db)

	got, err := repo.FindByID(context.Background(), 999)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing product, got %+v", got)
	}
}

func TestSQLiteProductRepo_ListSorted(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLiteProductRepo(db)
	seedProducts(t, repo)
	ctx := context.Background()

	tests := []struct {
		name string
		opts ProductListOptions
		want []string
	}{
		{
			name: "no options returns all in ID order",
			opts: ProductListOptions{},
			want: []string{"Widget", "Gadget", "Anvil"},
		},
		{
			name: "sort by price ascending",
			opts: ProductListOptions{SortBy: "price"},
			want: []string{"Widget", "Gadget", "Anvil"},
		},
		{
			name: "sort by price descending",
			opts: ProductListOptions{SortBy: "price", Desc: true},
			want: []string{"Anvil", "Gadget", "Widget"},
		},
		{
			name: "sort by name",
			opts: ProductListOptions{SortBy: "name"},
			want: []string{"Anvil", "Gadget", "Widget"},
		},
		{
			name: "min price filter",
			opts: ProductListOptions{MinPrice: ptrFloat(10)},
			want: []string{"Gadget", "Anvil"},
		},
		{
			name: "max price filter",
			opts: ProductListOptions{MaxPrice: ptrFloat(25)},
			want: []string{"Widget", "Gadget"},
		},
		{
			name: "min and max combined",
			opts: ProductListOptions{MinPrice: ptrFloat(10), MaxPrice: ptrFloat(25)},
			want: []string{"Gadget"},
		},
		{
			name: "unknown sort key falls back to ID order",
			opts: ProductListOptions{SortBy: "sneaky; DROP TABLE products"},
			want: []string{"Widget", "Gadget", "Anvil"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := repo.ListSorted(ctx, tt.opts)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(products) != len(tt.want) {
				t.Fatalf("product count = %d, want %d", len(products), len(tt.want))
			}
			for i, name := range tt.want {
				if products[i].Name != name {
					t.Errorf("products[%d].Name = %q, want %q", i, products[i].Name, name)
				}
			}
		})
	}
}

func TestSQLiteProductRepo_Update(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLiteProductRepo(db)
	ctx := context.Background()

	product := &model.Product{Name: "Widget", Description: "A widget", Price: 9.99}
	if err := repo.Create(ctx, product); err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	product.Price = 14.99
	product.Description = "An improved widget"
	if err := repo.Update(ctx, product); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got, err := repo.FindByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("failed to find product: %v", err)
	}
	if got.Price != 14.99 {
		t.Errorf("price = %v, want 14.99", got.Price)
	}
	if got.Description != "An improved widget" {
		t.Errorf("description = %q, want An improved widget", got.Description)
	}
}

func TestSQLiteProductRepo_DeleteByID(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLiteProductRepo(db)
	ctx := context.Background()

	product := &model.Product{Name: "Widget", Description: "A widget", Price: 9.99}
	if err := repo.Create(ctx, product); err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	if err := repo.DeleteByID(ctx, product.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got, err := repo.FindByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("failed to find product: %v", err)
	}
	if got != nil {
		t.Errorf("product should be deleted, got %+v", got)
	}
}
