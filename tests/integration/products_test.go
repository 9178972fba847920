package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sunleaf/sunleaf-api/internal/database"
	"github.com/sunleaf/sunleaf-api/internal/models"
	"github.com/sunleaf/sunleaf-api/internal/store"
)

func TestListProductsFilters(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	seed := []store.NewProduct{
		{Name: "Ethiopian Arabica", Description: "fruity single-origin beans", Price: decimal.NewFromFloat(15.99), Category: models.CategoryCoffee, Stock: 50},
		{Name: "Colombian Dark Roast", Description: "rich and bold", Price: decimal.NewFromFloat(12.99), Category: models.CategoryCoffee, Stock: 40},
		{Name: "Green Tea Sencha", Description: "traditional japanese tea", Price: decimal.NewFromFloat(8.99), Category: models.CategoryTea, Stock: 60},
		{Name: "Belgian Chocolate Truffles", Description: "handcrafted dark chocolate", Price: decimal.NewFromFloat(18.99), Category: models.CategorySweets, Stock: 30},
	}
	for _, p := range seed {
		if _, err := store.CreateProduct(ctx, db, p); err != nil {
			t.Fatalf("Create product %s: %v", p.Name, err)
		}
	}

	page, err := store.ListProducts(ctx, db, store.ProductFilter{})
	if err != nil {
		t.Fatalf("List all products: %v", err)
	}
	if page.Total != 4 || len(page.Products) != 4 {
		t.Errorf("Expected 4 products, got total=%d len=%d", page.Total, len(page.Products))
	}
	if page.Limit != 20 || page.Offset != 0 {
		t.Errorf("Expected defaulted limit=20 offset=0, got %d/%d", page.Limit, page.Offset)
	}

	page, err = store.ListProducts(ctx, db, store.ProductFilter{Category: models.CategoryCoffee})
	if err != nil {
		t.Fatalf("List coffee: %v", err)
	}
	if page.Total != 2 {
		t.Errorf("Expected 2 coffee products, got %d", page.Total)
	}

	// Search is a case-insensitive substring match over name and description.
	page, err = store.ListProducts(ctx, db, store.ProductFilter{Search: "CHOCOLATE"})
	if err != nil {
		t.Fatalf("Search products: %v", err)
	}
	if page.Total != 1 || page.Products[0].Name != "Belgian Chocolate Truffles" {
		t.Errorf("Expected the truffles, got %+v", page.Products)
	}

	page, err = store.ListProducts(ctx, db, store.ProductFilter{Search: "single-origin"})
	if err != nil {
		t.Fatalf("Search by description: %v", err)
	}
	if page.Total != 1 {
		t.Errorf("Expected 1 match on description, got %d", page.Total)
	}

	page, err = store.ListProducts(ctx, db, store.ProductFilter{Category: models.CategoryCoffee, Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("List paged: %v", err)
	}
	if page.Total != 2 || len(page.Products) != 1 {
		t.Errorf("Expected total 2 with 1 item on the page, got total=%d len=%d", page.Total, len(page.Products))
	}
}

func TestGetProductNotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := store.GetProduct(context.Background(), db, "00000000-0000-0000-0000-000000000000")
	if !errors.Is(err, database.ErrProductNotFound) {
		t.Errorf("Expected product not found, got: %v", err)
	}
}

func TestUpdateProductPartial(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	product := createTestProduct(t, db, "Partial Roast", 10.00, 5)

	newStock := 99
	updated, err := store.UpdateProduct(ctx, db, product.ID, store.ProductUpdate{Stock: &newStock})
	if err != nil {
		t.Fatalf("Update product: %v", err)
	}

	if updated.Stock != 99 {
		t.Errorf("Expected stock 99, got %d", updated.Stock)
	}
	if updated.Name != "Partial Roast" || !updated.Price.Equal(decimal.NewFromFloat(10.00)) {
		t.Errorf("Untouched fields changed: %+v", updated)
	}
}

func TestDeleteProduct(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	product := createTestProduct(t, db, "Doomed Blend", 5.00, 1)

	if err := store.DeleteProduct(ctx, db, product.ID); err != nil {
		t.Fatalf("Delete product: %v", err)
	}

	if _, err := store.GetProduct(ctx, db, product.ID); !errors.Is(err, database.ErrProductNotFound) {
		t.Errorf("Expected product gone, got: %v", err)
	}

	if err := store.DeleteProduct(ctx, db, product.ID); !errors.Is(err, database.ErrProductNotFound) {
		t.Errorf("Expected not found on double delete, got: %v", err)
	}
}
