package app

import (
	"context"

	"github.com/danacastroman/app-vestidos/services/api/internal/domain"
)

type AdminRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetRentalForUpdate(ctx context.Context, rentalID int64) (domain.Rental, error)
	UpdateRentalStatus(ctx context.Context, rentalID int64, status domain.RentalStatus) error
	ListRentals(ctx context.Context) ([]domain.RentalSummary, error)
}

// AdminService backs the admin dashboard: rental listing and cancellation.
// Authorization happens at the transport boundary; these methods assume the
// caller already holds an admin session.
type AdminService struct {
	repo AdminRepository
}

func NewAdminService(repo AdminRepository) *AdminService {
	return &AdminService{repo: repo}
}

// CancelRental transitions an active rental to cancelled. The transition is
// one-way: an unknown id and an already-cancelled rental are both reported as
// not found, so repeated cancels are safe but visible as such. The rental's
// dates stop counting toward the item's occupancy immediately.
func (s *AdminService) CancelRental(ctx context.Context, rentalID int64) (domain.Rental, error) {
	var result domain.Rental

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		rental, err := s.repo.GetRentalForUpdate(txCtx, rentalID)
		if err != nil {
			return err
		}
		if rental.Status != domain.RentalStatusActive {
			return domain.ErrRentalNotFound
		}
		if err := s.repo.UpdateRentalStatus(txCtx, rentalID, domain.RentalStatusCancelled); err != nil {
			return err
		}
		rental.Status = domain.RentalStatusCancelled
		result = rental
		return nil
	})
	if err != nil {
		return domain.Rental{}, err
	}
	return result, nil
}

// ListRentals returns every rental, newest first, with item names for display.
func (s *AdminService) ListRentals(ctx context.Context) ([]domain.RentalSummary, error) {
	return s.repo.ListRentals(ctx)
}
