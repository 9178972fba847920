package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sunleaf/sunleaf-api/internal/database"
	"github.com/sunleaf/sunleaf-api/internal/models"
)

const dialectPostgres = "postgres"

// validUUID reports whether id can reach a uuid column without tripping a
// cast error. Malformed ids are treated as plain lookup misses.
func validUUID(id string) bool {
	return uuid.Validate(id) == nil
}

var productColumns = []any{
	"id", "name", "description", "price", "category", "image_url", "stock",
	"created_at", "updated_at",
}

type ProductFilter struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}

type ProductPage struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}

func scanProduct(row interface{ Scan(...any) error }, p *models.Product) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.ImageURL,
		&p.Stock,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

// ListProducts returns the page of products matching the optional category
// and case-insensitive name/description search, newest first, plus the total
// count under the same filter.
func ListProducts(ctx context.Context, db *sql.DB, filter ProductFilter) (*ProductPage, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	base := goqu.Dialect(dialectPostgres).From("products")
	if filter.Category != "" {
		base = base.Where(goqu.C("category").Eq(filter.Category))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where(goqu.Or(
			goqu.C("name").ILike(pattern),
			goqu.C("description").ILike(pattern),
		))
	}

	countSQL, countArgs, err := base.Select(goqu.COUNT("*")).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	if err := db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	listSQL, listArgs, err := base.
		Select(productColumns...).
		Order(goqu.C("created_at").Desc()).
		Limit(uint(filter.Limit)).
		Offset(uint(filter.Offset)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := db.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return &ProductPage{
		Products: products,
		Total:    total,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}, nil
}

func GetProduct(ctx context.Context, db *sql.DB, id string) (*models.Product, error) {
	if !validUUID(id) {
		return nil, database.ErrProductNotFound
	}

	product := &models.Product{}

	query := `
		SELECT id, name, description, price, category, image_url, stock, created_at, updated_at
		FROM products
		WHERE id = $1`

	err := scanProduct(db.QueryRowContext(ctx, query, id), product)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}

type NewProduct struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	ImageURL    string
	Stock       int
}

func CreateProduct(ctx context.Context, db *sql.DB, req NewProduct) (*models.Product, error) {
	product := &models.Product{}

	query := `
		INSERT INTO products (id, name, description, price, category, image_url, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, name, description, price, category, image_url, stock, created_at, updated_at`

	err := scanProduct(db.QueryRowContext(ctx, query,
		uuid.NewString(), req.Name, req.Description, req.Price, req.Category, req.ImageURL, req.Stock,
	), product)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return product, nil
}

// ProductUpdate carries the optional fields of a partial product update;
// nil fields are left unchanged.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
	ImageURL    *string
	Stock       *int
}

func UpdateProduct(ctx context.Context, db *sql.DB, id string, upd ProductUpdate) (*models.Product, error) {
	if !validUUID(id) {
		return nil, database.ErrProductNotFound
	}

	record := goqu.Record{"updated_at": goqu.L("NOW()")}
	if upd.Name != nil {
		record["name"] = *upd.Name
	}
	if upd.Description != nil {
		record["description"] = *upd.Description
	}
	if upd.Price != nil {
		record["price"] = *upd.Price
	}
	if upd.Category != nil {
		record["category"] = *upd.Category
	}
	if upd.ImageURL != nil {
		record["image_url"] = *upd.ImageURL
	}
	if upd.Stock != nil {
		record["stock"] = *upd.Stock
	}

	query, args, err := goqu.Dialect(dialectPostgres).
		Update("products").
		Set(record).
		Where(goqu.C("id").Eq(id)).
		Returning(productColumns...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build update query: %w", err)
	}

	product := &models.Product{}
	if err := scanProduct(db.QueryRowContext(ctx, query, args...), product); err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	return product, nil
}

func DeleteProduct(ctx context.Context, db *sql.DB, id string) error {
	if !validUUID(id) {
		return database.ErrProductNotFound
	}

	result, err := db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return database.ErrProductNotFound
	}

	return nil
}

// DecrementStock takes qty units off a product's stock inside tx. The
// stock >= qty guard makes the check and the decrement one atomic statement;
// zero affected rows means the stock is insufficient.
func DecrementStock(ctx context.Context, tx *sql.Tx, productID string, qty int) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE products
		 SET stock = stock - $1,
		     updated_at = NOW()
		 WHERE id = $2
		   AND stock >= $1`,
		qty, productID)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return database.ErrInsufficientStock
	}

	return nil
}
