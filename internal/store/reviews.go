package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/sunleaf/sunleaf-api/internal/database"
	"github.com/sunleaf/sunleaf-api/internal/models"
)

// CreateReview records a user's review of a product. One review per
// (user, product) pair: the lookup gives the friendly error, and the unique
// constraint on (user_id, product_id) is the backstop under concurrent
// submissions.
func CreateReview(ctx context.Context, db *sql.DB, userID, productID string, rating int, comment string) (*models.Review, error) {
	if !validUUID(productID) {
		return nil, database.ErrProductNotFound
	}

	var productExists bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&productExists)
	if err != nil {
		return nil, fmt.Errorf("check product exists: %w", err)
	}
	if !productExists {
		return nil, database.ErrProductNotFound
	}

	var alreadyReviewed bool
	err = db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM reviews WHERE user_id = $1 AND product_id = $2)`,
		userID, productID).Scan(&alreadyReviewed)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if alreadyReviewed {
		return nil, database.ErrDuplicateReview
	}

	review := &models.Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
	}

	err = db.QueryRowContext(ctx,
		`INSERT INTO reviews (id, product_id, user_id, rating, comment, helpful, created_at)
		 VALUES ($1, $2, $3, $4, $5, 0, NOW())
		 RETURNING created_at`,
		review.ID, productID, userID, rating, comment,
	).Scan(&review.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, database.ErrDuplicateReview
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	user := &models.UserSummary{}
	err = db.QueryRowContext(ctx,
		`SELECT id, name, email FROM users WHERE id = $1`, userID,
	).Scan(&user.ID, &user.Name, &user.Email)
	if err != nil {
		return nil, fmt.Errorf("load reviewer: %w", err)
	}
	review.User = user

	return review, nil
}

// ComputeReviewStats turns a per-star count into the aggregate stats shape:
// total, arithmetic-mean rating rounded to one decimal place (0 with no
// reviews), and the full 1..5 distribution with zero-filled buckets.
func ComputeReviewStats(counts map[int]int) models.ReviewStats {
	stats := models.ReviewStats{Distribution: make(map[int]int, 5)}

	sum := 0
	for star := 1; star <= 5; star++ {
		n := counts[star]
		stats.Distribution[star] = n
		stats.Total += n
		sum += star * n
	}

	if stats.Total > 0 {
		avg := float64(sum) / float64(stats.Total)
		stats.AverageRating = math.Round(avg*10) / 10
	}

	return stats
}

// ListProductReviews returns a product's reviews, newest first, each with
// the reviewer's summary, plus the aggregated stats.
func ListProductReviews(ctx context.Context, db *sql.DB, productID string) ([]models.Review, models.ReviewStats, error) {
	if !validUUID(productID) {
		return []models.Review{}, ComputeReviewStats(nil), nil
	}

	query := `
		SELECT r.id, r.product_id, r.user_id, r.rating, r.comment, r.helpful, r.created_at,
		       u.id, u.name, u.email
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC`

	rows, err := db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, models.ReviewStats{}, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	counts := make(map[int]int, 5)
	for rows.Next() {
		var review models.Review
		var user models.UserSummary
		err := rows.Scan(
			&review.ID,
			&review.ProductID,
			&review.UserID,
			&review.Rating,
			&review.Comment,
			&review.Helpful,
			&review.CreatedAt,
			&user.ID,
			&user.Name,
			&user.Email,
		)
		if err != nil {
			return nil, models.ReviewStats{}, fmt.Errorf("scan review: %w", err)
		}
		review.User = &user
		reviews = append(reviews, review)
		counts[review.Rating]++
	}

	if err := rows.Err(); err != nil {
		return nil, models.ReviewStats{}, fmt.Errorf("rows error: %w", err)
	}

	return reviews, ComputeReviewStats(counts), nil
}

// MarkReviewHelpful bumps the helpful counter. There is no dedup; repeated
// calls keep counting.
func MarkReviewHelpful(ctx context.Context, db *sql.DB, id string) (*models.Review, error) {
	if !validUUID(id) {
		return nil, database.ErrReviewNotFound
	}

	review := &models.Review{}

	query := `
		UPDATE reviews
		SET helpful = helpful + 1
		WHERE id = $1
		RETURNING id, product_id, user_id, rating, comment, helpful, created_at`

	err := db.QueryRowContext(ctx, query, id).Scan(
		&review.ID,
		&review.ProductID,
		&review.UserID,
		&review.Rating,
		&review.Comment,
		&review.Helpful,
		&review.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrReviewNotFound
		}
		return nil, fmt.Errorf("mark review helpful: %w", err)
	}

	return review, nil
}

func GetReview(ctx context.Context, db *sql.DB, id string) (*models.Review, error) {
	if !validUUID(id) {
		return nil, database.ErrReviewNotFound
	}

	review := &models.Review{}

	query := `
		SELECT id, product_id, user_id, rating, comment, helpful, created_at
		FROM reviews
		WHERE id = $1`

	err := db.QueryRowContext(ctx, query, id).Scan(
		&review.ID,
		&review.ProductID,
		&review.UserID,
		&review.Rating,
		&review.Comment,
		&review.Helpful,
		&review.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrReviewNotFound
		}
		return nil, fmt.Errorf("get review: %w", err)
	}

	return review, nil
}

func DeleteReview(ctx context.Context, db *sql.DB, id string) error {
	if !validUUID(id) {
		return database.ErrReviewNotFound
	}

	result, err := db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return database.ErrReviewNotFound
	}

	return nil
}
