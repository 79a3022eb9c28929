package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danacastroman/app-vestidos/services/api/internal/domain"
)

// RentalRepository owns the rentals table. The item row lock taken by
// GetItemForUpdate serializes bookings per item; the schema's exclusion
// constraint enforces the no-overlap invariant at the storage layer as well.
type RentalRepository struct {
	pool *pgxpool.Pool
}

func NewRentalRepository(pool *pgxpool.Pool) *RentalRepository {
	return &RentalRepository{pool: pool}
}

func (r *RentalRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

const itemColumns = `id, name, category, sizes, colors, style, price_per_day`

func (r *RentalRepository) GetItem(ctx context.Context, itemID int64) (domain.Item, error) {
	return r.getItem(ctx, itemID, false)
}

func (r *RentalRepository) GetItemForUpdate(ctx context.Context, itemID int64) (domain.Item, error) {
	return r.getItem(ctx, itemID, true)
}

func (r *RentalRepository) getItem(ctx context.Context, itemID int64, forUpdate bool) (domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var item domain.Item
	err := r.queryRow(ctx, query, itemID).Scan(
		&item.ID, &item.Name, &item.Category, &item.Sizes, &item.Colors, &item.Style, &item.PricePerDay,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Item{}, domain.ErrItemNotFound
		}
		return domain.Item{}, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (r *RentalRepository) ListActiveRanges(ctx context.Context, itemID int64) ([]domain.DateRange, error) {
	const query = `
SELECT start_date, end_date
FROM rentals
WHERE item_id = $1 AND status = 'active'
ORDER BY start_date`

	rows, err := r.query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list active ranges: %w", err)
	}
	defer rows.Close()

	out := make([]domain.DateRange, 0)
	for rows.Next() {
		var dr domain.DateRange
		if err := rows.Scan(&dr.Start, &dr.End); err != nil {
			return nil, fmt.Errorf("scan range: %w", err)
		}
		out = append(out, dr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active ranges: %w", err)
	}
	return out, nil
}

func (r *RentalRepository) HasActiveOverlap(ctx context.Context, itemID int64, period domain.DateRange) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1 FROM rentals
	WHERE item_id = $1 AND status = 'active'
	AND start_date < $3 AND end_date > $2
)`

	var taken bool
	if err := r.queryRow(ctx, query, itemID, period.Start, period.End).Scan(&taken); err != nil {
		return false, fmt.Errorf("check overlap: %w", err)
	}
	return taken, nil
}

func (r *RentalRepository) CreateRental(ctx context.Context, rental domain.Rental) (domain.Rental, error) {
	const stmt = `
INSERT INTO rentals (item_id, start_date, end_date, customer_name, customer_email, customer_phone, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

	err := r.queryRow(ctx, stmt,
		rental.ItemID,
		rental.Start,
		rental.End,
		rental.Customer.Name,
		rental.Customer.Email,
		rental.Customer.Phone,
		rental.Status,
		rental.CreatedAt,
	).Scan(&rental.ID)
	if err != nil {
		if isExclusionViolation(err) {
			return domain.Rental{}, domain.ErrRangeConflict
		}
		return domain.Rental{}, fmt.Errorf("create rental: %w", err)
	}
	return rental, nil
}

const rentalColumns = `id, item_id, start_date, end_date, customer_name, customer_email, customer_phone, status, created_at`

func (r *RentalRepository) GetRentalForUpdate(ctx context.Context, rentalID int64) (domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1 FOR UPDATE`

	var rental domain.Rental
	err := r.queryRow(ctx, query, rentalID).Scan(
		&rental.ID, &rental.ItemID, &rental.Start, &rental.End,
		&rental.Customer.Name, &rental.Customer.Email, &rental.Customer.Phone,
		&rental.Status, &rental.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Rental{}, domain.ErrRentalNotFound
		}
		return domain.Rental{}, fmt.Errorf("get rental: %w", err)
	}
	return rental, nil
}

func (r *RentalRepository) UpdateRentalStatus(ctx context.Context, rentalID int64, status domain.RentalStatus) error {
	const stmt = `UPDATE rentals SET status = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, rentalID, status)
	if err != nil {
		return fmt.Errorf("update rental status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRentalNotFound
	}
	return nil
}

func (r *RentalRepository) ListRentals(ctx context.Context) ([]domain.RentalSummary, error) {
	const query = `
SELECT r.id, r.item_id, r.start_date, r.end_date,
	r.customer_name, r.customer_email, r.customer_phone,
	r.status, r.created_at, i.name
FROM rentals r
JOIN items i ON i.id = r.item_id
ORDER BY r.created_at DESC, r.id DESC`

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	defer rows.Close()

	out := make([]domain.RentalSummary, 0)
	for rows.Next() {
		var s domain.RentalSummary
		if err := rows.Scan(
			&s.ID, &s.ItemID, &s.Start, &s.End,
			&s.Customer.Name, &s.Customer.Email, &s.Customer.Phone,
			&s.Status, &s.CreatedAt, &s.ItemName,
		); err != nil {
			return nil, fmt.Errorf("scan rental: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	return out, nil
}

func (r *RentalRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *RentalRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *RentalRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
