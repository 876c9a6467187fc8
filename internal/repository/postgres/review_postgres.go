package postgres

import (
	"context"
	"database/sql"

	"cardsapi/internal/model"
	"cardsapi/internal/repository"
)

// ReviewPostgres is a PostgreSQL implementation of repository.ReviewRepository.
type ReviewPostgres struct {
	db *sql.DB
}

// NewReviewPostgres creates a new ReviewPostgres repository.
func NewReviewPostgres(db *sql.DB) *ReviewPostgres {
	return &ReviewPostgres{db: db}
}

var _ repository.ReviewRepository = (*ReviewPostgres)(nil)

// Create inserts a review row and returns the stored record.
func (r *ReviewPostgres) Create(ctx context.Context, rv *model.Review) (*model.Review, error) {
	const q = `
		INSERT INTO reviews (phone, text, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, phone, text, created_at
	`
	var out model.Review
	if err := r.db.QueryRowContext(ctx, q, rv.Phone, rv.Text, rv.CreatedAt).Scan(
		&out.ID,
		&out.Phone,
		&out.Text,
		&out.CreatedAt,
	); err != nil {
		return nil, repository.Wrap("insert review", err)
	}
	return &out, nil
}

// List returns all reviews, newest first. id breaks ties between equal timestamps.
func (r *ReviewPostgres) List(ctx context.Context) ([]model.Review, error) {
	const q = `
		SELECT id, phone, text, created_at
		FROM reviews
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, repository.Wrap("list reviews", err)
	}
	defer rows.Close()

	items := make([]model.Review, 0)
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.Phone, &rv.Text, &rv.CreatedAt); err != nil {
			return nil, repository.Wrap("list reviews", err)
		}
		items = append(items, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.Wrap("list reviews", err)
	}
	return items, nil
}
