// Package memory implements the reservation store on process memory. It
// serves the service test suites and the STORAGE=memory dev mode, and holds
// the same no-overlap invariant as the Postgres schema, using a lock registry
// keyed by item id instead of row locks.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/danacastroman/app-vestidos/services/api/internal/app"
	"github.com/danacastroman/app-vestidos/services/api/internal/domain"
)

type Store struct {
	mu           sync.Mutex
	items        map[int64]domain.Item
	rentals      map[int64]domain.Rental
	nextRentalID int64
	locks        map[int64]*sync.Mutex
}

func NewStore(items ...domain.Item) *Store {
	s := &Store{
		items:        make(map[int64]domain.Item, len(items)),
		rentals:      make(map[int64]domain.Rental),
		nextRentalID: 1,
		locks:        make(map[int64]*sync.Mutex),
	}
	for _, item := range items {
		s.items[item.ID] = item
	}
	return s
}

// tx tracks the per-item locks held by one WithTx scope, carried through the
// context the way the Postgres store carries its pgx transaction.
type txKey struct{}

type txState struct {
	held  map[int64]*sync.Mutex
	order []int64
}

func txFromContext(ctx context.Context) *txState {
	tx, _ := ctx.Value(txKey{}).(*txState)
	return tx
}

// WithTx runs fn with a lock scope. Locks taken by *ForUpdate calls inside fn
// are released when fn returns. Mutations are applied immediately, so every
// caller orders its writes after all checks that could still fail.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	tx := &txState{held: make(map[int64]*sync.Mutex)}
	defer func() {
		for i := len(tx.order) - 1; i >= 0; i-- {
			tx.held[tx.order[i]].Unlock()
		}
	}()
	return fn(context.WithValue(ctx, txKey{}, tx))
}

func (s *Store) itemLock(itemID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	mu, ok := s.locks[itemID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[itemID] = mu
	}
	return mu
}

// lockItem acquires the item's mutex for the current tx scope, once.
func (s *Store) lockItem(ctx context.Context, itemID int64) {
	tx := txFromContext(ctx)
	if tx == nil {
		return
	}
	if _, held := tx.held[itemID]; held {
		return
	}
	mu := s.itemLock(itemID)
	mu.Lock()
	tx.held[itemID] = mu
	tx.order = append(tx.order, itemID)
}

func (s *Store) GetItem(_ context.Context, itemID int64) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[itemID]
	if !ok {
		return domain.Item{}, domain.ErrItemNotFound
	}
	return item, nil
}

func (s *Store) GetItemForUpdate(ctx context.Context, itemID int64) (domain.Item, error) {
	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return domain.Item{}, err
	}
	s.lockItem(ctx, itemID)
	return item, nil
}

func (s *Store) ListItems(_ context.Context, filter app.CatalogFilter) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Item, 0, len(s.items))
	for _, item := range s.items {
		if matches(item, filter) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func matches(item domain.Item, f app.CatalogFilter) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(item.Name), q) &&
			!strings.Contains(strings.ToLower(item.Category), q) &&
			!strings.Contains(strings.ToLower(item.Style), q) {
			return false
		}
	}
	if f.Category != "" && !strings.EqualFold(item.Category, f.Category) {
		return false
	}
	if f.Style != "" && !strings.EqualFold(item.Style, f.Style) {
		return false
	}
	if f.Size != "" && !containsFold(item.Sizes, f.Size) {
		return false
	}
	if f.Color != "" && !containsFold(item.Colors, f.Color) {
		return false
	}
	return true
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

func (s *Store) ListActiveRanges(_ context.Context, itemID int64) ([]domain.DateRange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.DateRange, 0)
	for _, r := range s.rentals {
		if r.ItemID == itemID && r.Status == domain.RentalStatusActive {
			out = append(out, r.Period())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (s *Store) HasActiveOverlap(_ context.Context, itemID int64, period domain.DateRange) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.rentals {
		if r.ItemID == itemID && r.Status == domain.RentalStatusActive && r.Period().Overlaps(period) {
			return true, nil
		}
	}
	return false, nil
}

// CreateRental inserts the rental and enforces the no-overlap invariant
// itself, mirroring the exclusion constraint in the Postgres schema.
func (s *Store) CreateRental(_ context.Context, rental domain.Rental) (domain.Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.rentals {
		if r.ItemID == rental.ItemID && r.Status == domain.RentalStatusActive && r.Period().Overlaps(rental.Period()) {
			return domain.Rental{}, domain.ErrRangeConflict
		}
	}

	rental.ID = s.nextRentalID
	s.nextRentalID++
	s.rentals[rental.ID] = rental
	return rental, nil
}

func (s *Store) GetRentalForUpdate(ctx context.Context, rentalID int64) (domain.Rental, error) {
	s.mu.Lock()
	rental, ok := s.rentals[rentalID]
	s.mu.Unlock()
	if !ok {
		return domain.Rental{}, domain.ErrRentalNotFound
	}
	// Cancellation and booking contend on the same item's occupancy.
	s.lockItem(ctx, rental.ItemID)

	// The snapshot above may predate a writer that held the item lock, so
	// re-read once the lock is ours, like a FOR UPDATE re-read.
	s.mu.Lock()
	rental, ok = s.rentals[rentalID]
	s.mu.Unlock()
	if !ok {
		return domain.Rental{}, domain.ErrRentalNotFound
	}
	return rental, nil
}

func (s *Store) UpdateRentalStatus(_ context.Context, rentalID int64, status domain.RentalStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rental, ok := s.rentals[rentalID]
	if !ok {
		return domain.ErrRentalNotFound
	}
	rental.Status = status
	s.rentals[rentalID] = rental
	return nil
}

func (s *Store) ListRentals(_ context.Context) ([]domain.RentalSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.RentalSummary, 0, len(s.rentals))
	for _, r := range s.rentals {
		summary := domain.RentalSummary{Rental: r}
		if item, ok := s.items[r.ItemID]; ok {
			summary.ItemName = item.Name
		}
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
