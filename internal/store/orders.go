package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sunleaf/sunleaf-api/internal/database"
	"github.com/sunleaf/sunleaf-api/internal/models"
)

type CreateOrderRequest struct {
	UserID          string
	Items           []OrderItemRequest
	ShippingAddress string
	ShippingCity    string
	ShippingZip     string
	Phone           string
}

type OrderItemRequest struct {
	ProductID string
	Quantity  int
}

// InsufficientStockError names the product that could not cover the
// requested quantity. It unwraps to database.ErrInsufficientStock.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.ProductName)
}

func (e *InsufficientStockError) Unwrap() error {
	return database.ErrInsufficientStock
}

var ErrEmptyOrder = errors.New("order must contain at least one item")

func generateOrderNumber() string {
	return fmt.Sprintf("ORD-%d", time.Now().UnixNano())
}

// CreateOrder places an order: it validates the requested items against the
// catalog, prices them at the product's current price, persists the order
// with its line items, and decrements stock. The whole flow runs in one
// retried serializable transaction so concurrent placements against the same
// product cannot both pass the stock check.
func CreateOrder(ctx context.Context, db *sql.DB, req CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	var order *models.Order

	err := database.WithRetry(ctx, db, database.TxOptions{
		IsolationLevel: sql.LevelSerializable,
		MaxRetries:     3,
	}, func(tx *sql.Tx) error {
		productIDs := make([]string, 0, len(req.Items))
		seen := make(map[string]bool, len(req.Items))
		for _, item := range req.Items {
			if !validUUID(item.ProductID) {
				return fmt.Errorf("one or more products not found: %w", database.ErrProductNotFound)
			}
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				productIDs = append(productIDs, item.ProductID)
			}
		}

		rows, err := tx.QueryContext(ctx,
			`SELECT id, name, price, stock FROM products WHERE id = ANY($1::uuid[])`,
			pq.Array(productIDs))
		if err != nil {
			return fmt.Errorf("load products: %w", err)
		}

		type productInfo struct {
			name  string
			price decimal.Decimal
			stock int
		}
		products := make(map[string]productInfo, len(productIDs))
		for rows.Next() {
			var id string
			var info productInfo
			if err := rows.Scan(&id, &info.name, &info.price, &info.stock); err != nil {
				rows.Close()
				return fmt.Errorf("scan product: %w", err)
			}
			products[id] = info
		}
		// The rows must be closed before any further statement on this tx.
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("rows error: %w", err)
		}

		if len(products) != len(productIDs) {
			return fmt.Errorf("one or more products not found: %w", database.ErrProductNotFound)
		}

		total := decimal.Zero
		for _, item := range req.Items {
			info := products[item.ProductID]
			if info.stock < item.Quantity {
				return &InsufficientStockError{ProductName: info.name}
			}
			total = total.Add(info.price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		orderID := uuid.NewString()
		created := &models.Order{
			ID:              orderID,
			UserID:          req.UserID,
			OrderNumber:     generateOrderNumber(),
			Status:          models.OrderStatusPending,
			Total:           total,
			ShippingAddress: req.ShippingAddress,
			ShippingCity:    req.ShippingCity,
			ShippingZip:     req.ShippingZip,
			Phone:           req.Phone,
		}

		err = tx.QueryRowContext(ctx,
			`INSERT INTO orders (id, user_id, order_number, status, total, shipping_address, shipping_city, shipping_zip, phone, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
			 RETURNING created_at, updated_at`,
			orderID, req.UserID, created.OrderNumber, created.Status, total,
			req.ShippingAddress, req.ShippingCity, req.ShippingZip, req.Phone,
		).Scan(&created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, item := range req.Items {
			info := products[item.ProductID]
			orderItem := models.OrderItem{
				ID:          uuid.NewString(),
				OrderID:     orderID,
				ProductID:   item.ProductID,
				ProductName: info.name,
				Quantity:    item.Quantity,
				Price:       info.price,
			}

			err = tx.QueryRowContext(ctx,
				`INSERT INTO order_items (id, order_id, product_id, quantity, price, created_at)
				 VALUES ($1, $2, $3, $4, $5, NOW())
				 RETURNING created_at`,
				orderItem.ID, orderID, item.ProductID, item.Quantity, info.price,
			).Scan(&orderItem.CreatedAt)
			if err != nil {
				return fmt.Errorf("create order item: %w", err)
			}

			created.Items = append(created.Items, orderItem)
		}

		for _, item := range req.Items {
			if err := DecrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, database.ErrInsufficientStock) {
					return &InsufficientStockError{ProductName: products[item.ProductID].name}
				}
				return err
			}
		}

		order = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	return order, nil
}

func GetOrder(ctx context.Context, db *sql.DB, id string) (*models.Order, error) {
	if !validUUID(id) {
		return nil, database.ErrOrderNotFound
	}

	order := &models.Order{}

	query := `
		SELECT id, user_id, order_number, status, total, shipping_address, shipping_city, shipping_zip, phone, created_at, updated_at
		FROM orders
		WHERE id = $1`

	err := db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.OrderNumber,
		&order.Status,
		&order.Total,
		&order.ShippingAddress,
		&order.ShippingCity,
		&order.ShippingZip,
		&order.Phone,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	items, err := loadOrderItems(ctx, db, []string{id})
	if err != nil {
		return nil, err
	}
	order.Items = items[id]

	return order, nil
}

func loadOrderItems(ctx context.Context, db *sql.DB, orderIDs []string) (map[string][]models.OrderItem, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.quantity, oi.price, oi.created_at
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1::uuid[])
		ORDER BY oi.created_at`

	rows, err := db.QueryContext(ctx, query, pq.Array(orderIDs))
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]models.OrderItem)
	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.Price,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return items, nil
}

// ListOrdersByUser returns the user's orders, newest first, with items.
func ListOrdersByUser(ctx context.Context, db *sql.DB, userID string) ([]models.Order, error) {
	query := `
		SELECT id, user_id, order_number, status, total, shipping_address, shipping_city, shipping_zip, phone, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`

	return listOrders(ctx, db, query, userID)
}

// ListAllOrders returns every order, newest first, with items and the owning
// user's summary. Admin use.
func ListAllOrders(ctx context.Context, db *sql.DB) ([]models.Order, error) {
	query := `
		SELECT o.id, o.user_id, o.order_number, o.status, o.total, o.shipping_address, o.shipping_city, o.shipping_zip, o.phone, o.created_at, o.updated_at,
		       u.id, u.name, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		var user models.UserSummary
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.OrderNumber,
			&order.Status,
			&order.Total,
			&order.ShippingAddress,
			&order.ShippingCity,
			&order.ShippingZip,
			&order.Phone,
			&order.CreatedAt,
			&order.UpdatedAt,
			&user.ID,
			&user.Name,
			&user.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		order.User = &user
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return attachItems(ctx, db, orders)
}

func listOrders(ctx context.Context, db *sql.DB, query string, args ...any) ([]models.Order, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.OrderNumber,
			&order.Status,
			&order.Total,
			&order.ShippingAddress,
			&order.ShippingCity,
			&order.ShippingZip,
			&order.Phone,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return attachItems(ctx, db, orders)
}

func attachItems(ctx context.Context, db *sql.DB, orders []models.Order) ([]models.Order, error) {
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	items, err := loadOrderItems(ctx, db, ids)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}

	return orders, nil
}

// UpdateOrderStatus sets the order's status directly. The caller is expected
// to have validated status against the enumerated values; there is no
// transition guard and CANCELLED does not restock.
func UpdateOrderStatus(ctx context.Context, db *sql.DB, id, status string) (*models.Order, error) {
	if !validUUID(id) {
		return nil, database.ErrOrderNotFound
	}

	order := &models.Order{}

	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, user_id, order_number, status, total, shipping_address, shipping_city, shipping_zip, phone, created_at, updated_at`

	err := db.QueryRowContext(ctx, query, status, id).Scan(
		&order.ID,
		&order.UserID,
		&order.OrderNumber,
		&order.Status,
		&order.Total,
		&order.ShippingAddress,
		&order.ShippingCity,
		&order.ShippingZip,
		&order.Phone,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}

	return order, nil
}

// StoreStats is the admin dashboard summary.
type StoreStats struct {
	TotalProducts int64           `json:"totalProducts"`
	TotalOrders   int64           `json:"totalOrders"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalUsers    int64           `json:"totalUsers"`
}

func GetStoreStats(ctx context.Context, db *sql.DB) (*StoreStats, error) {
	stats := &StoreStats{}

	query := `
		SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM orders),
			(SELECT COALESCE(SUM(total), 0) FROM orders),
			(SELECT COUNT(*) FROM users)`

	err := db.QueryRowContext(ctx, query).Scan(
		&stats.TotalProducts,
		&stats.TotalOrders,
		&stats.TotalRevenue,
		&stats.TotalUsers,
	)
	if err != nil {
		return nil, fmt.Errorf("get store stats: %w", err)
	}

	return stats, nil
}
