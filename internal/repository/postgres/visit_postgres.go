package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cardsapi/internal/model"
	"cardsapi/internal/repository"
)

// VisitPostgres is a PostgreSQL implementation of repository.VisitRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type VisitPostgres struct {
	db *sql.DB
	q  querier
}

// NewVisitPostgres creates a new VisitPostgres repository.
func NewVisitPostgres(db *sql.DB) *VisitPostgres {
	return &VisitPostgres{db: db, q: db}
}

var _ repository.VisitRepository = (*VisitPostgres)(nil)

// First returns an arbitrary first row; the query deliberately has no ORDER BY.
func (r *VisitPostgres) First(ctx context.Context) (model.Visit, bool, error) {
	const q = `
		SELECT id, counter, text, last_entered
		FROM enterence
		LIMIT 1
	`
	var v model.Visit
	err := r.q.QueryRowContext(ctx, q).Scan(&v.ID, &v.Counter, &v.Text, &v.LastEntered)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Visit{}, false, nil
	}
	if err != nil {
		return model.Visit{}, false, repository.Wrap("first visit", err)
	}
	return v, true, nil
}

// Create inserts a visit row and returns the stored record.
func (r *VisitPostgres) Create(ctx context.Context, v *model.Visit) (*model.Visit, error) {
	const q = `
		INSERT INTO enterence (counter, text, last_entered)
		VALUES ($1, $2, $3)
		RETURNING id, counter, text, last_entered
	`
	var out model.Visit
	if err := r.q.QueryRowContext(ctx, q, v.Counter, v.Text, v.LastEntered).Scan(
		&out.ID,
		&out.Counter,
		&out.Text,
		&out.LastEntered,
	); err != nil {
		return nil, repository.Wrap("insert visit", err)
	}
	return &out, nil
}

// List returns every visit row in storage order.
func (r *VisitPostgres) List(ctx context.Context) ([]model.Visit, error) {
	const q = `SELECT id, counter, text, last_entered FROM enterence`
	rows, err := r.q.QueryContext(ctx, q)
	if err != nil {
		return nil, repository.Wrap("list visits", err)
	}
	defer rows.Close()

	items := make([]model.Visit, 0)
	for rows.Next() {
		var v model.Visit
		if err := rows.Scan(&v.ID, &v.Counter, &v.Text, &v.LastEntered); err != nil {
			return nil, repository.Wrap("list visits", err)
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.Wrap("list visits", err)
	}
	return items, nil
}

// InTx runs fn against a copy of the repository bound to one transaction.
// Nested calls reuse the enclosing transaction.
func (r *VisitPostgres) InTx(ctx context.Context, fn func(repository.VisitRepository) error) error {
	if _, inTx := r.q.(*sql.Tx); inTx {
		return fn(r)
	}
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		return fn(&VisitPostgres{db: r.db, q: tx})
	})
	var se *repository.StorageError
	if err != nil && !errors.As(err, &se) {
		return repository.Wrap("visit tx", err)
	}
	return err
}
