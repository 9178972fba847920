package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl"`
	Stock       int             `json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

const (
	CategoryCoffee = "COFFEE"
	CategoryTea    = "TEA"
	CategorySweets = "SWEETS"
)

func IsValidCategory(c string) bool {
	switch c {
	case CategoryCoffee, CategoryTea, CategorySweets:
		return true
	}
	return false
}

type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	OrderNumber     string          `json:"order_number"`
	Status          string          `json:"status"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress string          `json:"shippingAddress"`
	ShippingCity    string          `json:"shippingCity"`
	ShippingZip     string          `json:"shippingZip"`
	Phone           string          `json:"phone"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Items           []OrderItem     `json:"items,omitempty"`
	User            *UserSummary    `json:"user,omitempty"`
}

type OrderItem struct {
	ID          string `json:"id"`
	OrderID     string `json:"order_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity"`
	// Price is the unit price snapshotted at placement time.
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

// UserSummary is the reduced user shape embedded in order and review payloads.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserSummaryWithRole is the user shape returned by register and login.
type UserSummaryWithRole struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
)

func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type PromoCode struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Discount    decimal.Decimal `json:"discount"`
	Type        string          `json:"type"`
	MinPurchase decimal.Decimal `json:"minPurchase"`
	// MaxUses of 0 means unlimited.
	MaxUses   int        `json:"maxUses"`
	UsedCount int        `json:"usedCount"`
	IsActive  bool       `json:"isActive"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

const (
	PromoTypePercentage = "PERCENTAGE"
	PromoTypeFixed      = "FIXED"
)

func IsValidPromoType(t string) bool {
	return t == PromoTypePercentage || t == PromoTypeFixed
}

type Review struct {
	ID        string       `json:"id"`
	ProductID string       `json:"product_id"`
	UserID    string       `json:"user_id"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment"`
	Helpful   int          `json:"helpful"`
	CreatedAt time.Time    `json:"created_at"`
	User      *UserSummary `json:"user,omitempty"`
}

// ReviewStats aggregates a product's reviews: total count, average rating
// rounded to one decimal place (0 when there are no reviews), and a count
// per star value 1..5.
type ReviewStats struct {
	Total         int         `json:"total"`
	AverageRating float64     `json:"averageRating"`
	Distribution  map[int]int `json:"distribution"`
}
