package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danacastroman/app-vestidos/services/api/internal/app"
	"github.com/danacastroman/app-vestidos/services/api/internal/domain"
)

// CatalogRepository reads the items table. The catalog is managed outside
// this service, so there are no writes here.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) GetItem(ctx context.Context, itemID int64) (domain.Item, error) {
	const query = `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	var item domain.Item
	err := r.pool.QueryRow(ctx, query, itemID).Scan(
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

func (r *CatalogRepository) ListItems(ctx context.Context, filter app.CatalogFilter) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Query != "" {
		p := arg("%" + filter.Query + "%")
		conds = append(conds, fmt.Sprintf("(name ILIKE %s OR category ILIKE %s OR style ILIKE %s)", p, p, p))
	}
	if filter.Category != "" {
		conds = append(conds, fmt.Sprintf("category ILIKE %s", arg(filter.Category)))
	}
	if filter.Style != "" {
		conds = append(conds, fmt.Sprintf("style ILIKE %s", arg(filter.Style)))
	}
	if filter.Size != "" {
		conds = append(conds, fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(sizes) s WHERE s ILIKE %s)", arg(filter.Size)))
	}
	if filter.Color != "" {
		conds = append(conds, fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(colors) c WHERE c ILIKE %s)", arg(filter.Color)))
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Item, 0)
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Category, &item.Sizes, &item.Colors, &item.Style, &item.PricePerDay,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return out, nil
}
