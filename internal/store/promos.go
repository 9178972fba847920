package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sunleaf/sunleaf-api/internal/database"
	"github.com/sunleaf/sunleaf-api/internal/models"
	"github.com/sunleaf/sunleaf-api/internal/pricing"
)

const promoSelect = `
	SELECT id, code, discount, type, min_purchase, max_uses, used_count, is_active, expires_at, created_at
	FROM promo_codes`

func scanPromo(row interface{ Scan(...any) error }, p *models.PromoCode) error {
	return row.Scan(
		&p.ID,
		&p.Code,
		&p.Discount,
		&p.Type,
		&p.MinPurchase,
		&p.MaxUses,
		&p.UsedCount,
		&p.IsActive,
		&p.ExpiresAt,
		&p.CreatedAt,
	)
}

// GetPromoCodeByCode looks up a promo code. Codes are stored uppercase and
// matched case-insensitively.
func GetPromoCodeByCode(ctx context.Context, db *sql.DB, code string) (*models.PromoCode, error) {
	promo := &models.PromoCode{}

	err := scanPromo(db.QueryRowContext(ctx, promoSelect+` WHERE code = $1`, strings.ToUpper(code)), promo)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrPromoNotFound
		}
		return nil, fmt.Errorf("get promo code: %w", err)
	}

	return promo, nil
}

// PromoValidation is the result of checking a code against a subtotal.
type PromoValidation struct {
	Valid          bool            `json:"valid"`
	Code           string          `json:"code"`
	Discount       decimal.Decimal `json:"discount"`
	Type           string          `json:"type"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
}

// ValidatePromoCode looks the code up and evaluates its eligibility rules
// against the subtotal, returning the computed discount amount.
func ValidatePromoCode(ctx context.Context, db *sql.DB, code string, subtotal decimal.Decimal) (*PromoValidation, error) {
	promo, err := GetPromoCodeByCode(ctx, db, code)
	if err != nil {
		return nil, err
	}

	amount, err := pricing.Evaluate(promo, subtotal, time.Now())
	if err != nil {
		return nil, err
	}

	return &PromoValidation{
		Valid:          true,
		Code:           promo.Code,
		Discount:       promo.Discount,
		Type:           promo.Type,
		DiscountAmount: amount,
	}, nil
}

// ApplyPromoCode increments the code's usage count. The eligibility re-check
// lives in the same statement as the increment, so a code can never be
// applied past its usage cap, past expiry, or while inactive.
func ApplyPromoCode(ctx context.Context, db *sql.DB, code string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE promo_codes
		 SET used_count = used_count + 1
		 WHERE code = $1
		   AND is_active
		   AND (expires_at IS NULL OR expires_at > NOW())
		   AND (max_uses = 0 OR used_count < max_uses)`,
		strings.ToUpper(code))
	if err != nil {
		return fmt.Errorf("apply promo code: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected > 0 {
		return nil
	}

	// Nothing matched; find out why for a precise error.
	promo, err := GetPromoCodeByCode(ctx, db, code)
	if err != nil {
		return err
	}

	switch {
	case !promo.IsActive:
		return pricing.ErrInactive
	case promo.ExpiresAt != nil && promo.ExpiresAt.Before(time.Now()):
		return pricing.ErrExpired
	default:
		return database.ErrPromoExhausted
	}
}

type NewPromoCode struct {
	Code        string
	Discount    decimal.Decimal
	Type        string
	MinPurchase decimal.Decimal
	MaxUses     int
	ExpiresAt   *time.Time
}

func CreatePromoCode(ctx context.Context, db *sql.DB, req NewPromoCode) (*models.PromoCode, error) {
	promo := &models.PromoCode{}

	query := `
		INSERT INTO promo_codes (id, code, discount, type, min_purchase, max_uses, used_count, is_active, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, TRUE, $7, NOW())
		RETURNING id, code, discount, type, min_purchase, max_uses, used_count, is_active, expires_at, created_at`

	err := scanPromo(db.QueryRowContext(ctx, query,
		uuid.NewString(), strings.ToUpper(req.Code), req.Discount, req.Type, req.MinPurchase, req.MaxUses, req.ExpiresAt,
	), promo)
	if err != nil {
		return nil, fmt.Errorf("create promo code: %w", err)
	}

	return promo, nil
}

func ListPromoCodes(ctx context.Context, db *sql.DB) ([]models.PromoCode, error) {
	rows, err := db.QueryContext(ctx, promoSelect+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list promo codes: %w", err)
	}
	defer rows.Close()

	var promos []models.PromoCode
	for rows.Next() {
		var promo models.PromoCode
		if err := scanPromo(rows, &promo); err != nil {
			return nil, fmt.Errorf("scan promo code: %w", err)
		}
		promos = append(promos, promo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return promos, nil
}

func DeletePromoCode(ctx context.Context, db *sql.DB, id string) error {
	if !validUUID(id) {
		return database.ErrPromoNotFound
	}

	result, err := db.ExecContext(ctx, `DELETE FROM promo_codes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete promo code: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return database.ErrPromoNotFound
	}

	return nil
}

// TogglePromoCode flips the code's active flag and returns the updated row.
func TogglePromoCode(ctx context.Context, db *sql.DB, id string) (*models.PromoCode, error) {
	if !validUUID(id) {
		return nil, database.ErrPromoNotFound
	}

	promo := &models.PromoCode{}

	query := `
		UPDATE promo_codes
		SET is_active = NOT is_active
		WHERE id = $1
		RETURNING id, code, discount, type, min_purchase, max_uses, used_count, is_active, expires_at, created_at`

	err := scanPromo(db.QueryRowContext(ctx, query, id), promo)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrPromoNotFound
		}
		return nil, fmt.Errorf("toggle promo code: %w", err)
	}

	return promo, nil
}
