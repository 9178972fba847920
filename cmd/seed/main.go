// Command seed loads the development dataset: the admin account, a starter
// catalog, and the stock promo codes. Safe to re-run; existing rows are left
// alone.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sunleaf/sunleaf-api/internal/auth"
	"github.com/sunleaf/sunleaf-api/internal/config"
	"github.com/sunleaf/sunleaf-api/internal/database"
	"github.com/sunleaf/sunleaf-api/internal/models"
	"github.com/sunleaf/sunleaf-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("Connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	if err := seedAdmin(ctx, db, cfg); err != nil {
		log.Fatalf("Seed admin: %v", err)
	}
	if err := seedProducts(ctx, db); err != nil {
		log.Fatalf("Seed products: %v", err)
	}
	if err := seedPromoCodes(ctx, db); err != nil {
		log.Fatalf("Seed promo codes: %v", err)
	}

	log.Println("Seeding complete")
}

func seedAdmin(ctx context.Context, db *sql.DB, cfg *config.Config) error {
	const adminEmail = "admin@sunleaf.com"

	_, err := store.GetUserByEmail(ctx, db, adminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, database.ErrUserNotFound) {
		return err
	}

	hash, err := auth.NewManager(cfg.Auth).HashPassword("admin123")
	if err != nil {
		return err
	}

	_, err = store.CreateUser(ctx, db, adminEmail, hash, "Admin User", models.RoleAdmin)
	if err != nil {
		return err
	}

	log.Printf("Admin user created: %s", adminEmail)
	return nil
}

func seedProducts(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []store.NewProduct{
		{
			Name:        "Ethiopian Arabica",
			Description: "Premium single-origin coffee beans with fruity notes",
			Price:       decimal.NewFromFloat(15.99),
			Category:    models.CategoryCoffee,
			ImageURL:    "https://images.unsplash.com/photo-1559056199-641a0ac8b55e?w=400",
			Stock:       50,
		},
		{
			Name:        "Colombian Dark Roast",
			Description: "Rich and bold dark roast coffee",
			Price:       decimal.NewFromFloat(12.99),
			Category:    models.CategoryCoffee,
			ImageURL:    "https://images.unsplash.com/photo-1514432324607-a09d9b4aefdd?w=400",
			Stock:       40,
		},
		{
			Name:        "Green Tea Sencha",
			Description: "Traditional Japanese green tea",
			Price:       decimal.NewFromFloat(8.99),
			Category:    models.CategoryTea,
			ImageURL:    "https://images.unsplash.com/photo-1564890369478-c89ca6d9cde9?w=400",
			Stock:       60,
		},
		{
			Name:        "Earl Grey Classic",
			Description: "Black tea with bergamot flavor",
			Price:       decimal.NewFromFloat(7.49),
			Category:    models.CategoryTea,
			ImageURL:    "https://images.unsplash.com/photo-1597318128159-f6803674e6c6?w=400",
			Stock:       55,
		},
		{
			Name:        "Belgian Chocolate Truffles",
			Description: "Handcrafted dark chocolate truffles",
			Price:       decimal.NewFromFloat(18.99),
			Category:    models.CategorySweets,
			ImageURL:    "https://images.unsplash.com/photo-1511381939415-e44015466834?w=400",
			Stock:       30,
		},
		{
			Name:        "Honey Almond Cookies",
			Description: "Crunchy cookies with honey and almonds",
			Price:       decimal.NewFromFloat(6.99),
			Category:    models.CategorySweets,
			ImageURL:    "https://images.unsplash.com/photo-1558961363-fa8fdf82db35?w=400",
			Stock:       45,
		},
	}

	for _, p := range products {
		if _, err := store.CreateProduct(ctx, db, p); err != nil {
			return err
		}
	}

	log.Printf("%d products created", len(products))
	return nil
}

func seedPromoCodes(ctx context.Context, db *sql.DB) error {
	expiry := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	promos := []store.NewPromoCode{
		{
			Code:     "WELCOME10",
			Discount: decimal.NewFromInt(10),
			Type:     models.PromoTypePercentage,
		},
		{
			Code:        "SUMMER50",
			Discount:    decimal.NewFromInt(50),
			Type:        models.PromoTypeFixed,
			MinPurchase: decimal.NewFromInt(500),
			MaxUses:     100,
			ExpiresAt:   &expiry,
		},
		{
			Code:        "FREESHIP",
			Discount:    decimal.NewFromInt(50),
			Type:        models.PromoTypeFixed,
			MinPurchase: decimal.NewFromInt(300),
		},
	}

	created := 0
	for _, p := range promos {
		_, err := store.GetPromoCodeByCode(ctx, db, p.Code)
		if err == nil {
			continue
		}
		if !errors.Is(err, database.ErrPromoNotFound) {
			return err
		}
		if _, err := store.CreatePromoCode(ctx, db, p); err != nil {
			return err
		}
		created++
	}

	if created > 0 {
		log.Printf("%d promo codes created", created)
	}
	return nil
}
