package app

import (
	"context"

	"github.com/danacastroman/app-vestidos/services/api/internal/domain"
)

type AvailabilityRepository interface {
	ListActiveRanges(ctx context.Context, itemID int64) ([]domain.DateRange, error)
	HasActiveOverlap(ctx context.Context, itemID int64, period domain.DateRange) (bool, error)
}

// AvailabilityService answers read-only occupancy questions for an item.
type AvailabilityService struct {
	repo AvailabilityRepository
}

func NewAvailabilityService(repo AvailabilityRepository) *AvailabilityService {
	return &AvailabilityService{repo: repo}
}

// Occupied returns every active rental range for the item, ordered by start
// date. An unknown item yields an empty sequence, not an error: absence of
// bookings is a valid answer.
func (s *AvailabilityService) Occupied(ctx context.Context, itemID int64) ([]domain.DateRange, error) {
	return s.repo.ListActiveRanges(ctx, itemID)
}

// Overlaps reports whether any active rental for the item intersects the
// period, under half-open semantics.
func (s *AvailabilityService) Overlaps(ctx context.Context, itemID int64, period domain.DateRange) (bool, error) {
	return s.repo.HasActiveOverlap(ctx, itemID, period)
}
