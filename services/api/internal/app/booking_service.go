package app

import (
	"context"

	"github.com/danacastroman/app-vestidos/services/api/internal/clock"
	"github.com/danacastroman/app-vestidos/services/api/internal/domain"
)

// BookingRepository is the storage surface the booking flow needs. WithTx and
// GetItemForUpdate together give per-item serialization: the overlap check and
// the insert run as one atomic unit against other bookings on the same item,
// while bookings on different items proceed in parallel.
type BookingRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetItem(ctx context.Context, itemID int64) (domain.Item, error)
	GetItemForUpdate(ctx context.Context, itemID int64) (domain.Item, error)
	HasActiveOverlap(ctx context.Context, itemID int64, period domain.DateRange) (bool, error)
	CreateRental(ctx context.Context, rental domain.Rental) (domain.Rental, error)
}

// TokenGuard is the anti-forgery check guarding public bookings. Valid peeks
// without side effects; Consume is an atomic check-and-set that succeeds at
// most once per issued token.
type TokenGuard interface {
	Valid(token string, itemID int64) bool
	Consume(token string, itemID int64) bool
}

type BookingService struct {
	repo   BookingRepository
	tokens TokenGuard
	clock  clock.Clock
}

func NewBookingService(repo BookingRepository, tokens TokenGuard, clk clock.Clock) *BookingService {
	return &BookingService{
		repo:   repo,
		tokens: tokens,
		clock:  clk,
	}
}

type CreateRentalInput struct {
	ItemID   int64
	Start    string
	End      string
	Token    string
	Customer domain.Customer
}

// CreateRental validates and books a reservation. Failures are reported in a
// fixed order: unknown item, then token, then date format, then range
// ordering, then availability, then customer fields. The token check precedes
// all content validation so an unauthenticated probe learns nothing about
// date handling, and a rejected request leaves both the store and the token's
// consumption state untouched.
func (s *BookingService) CreateRental(ctx context.Context, in CreateRentalInput) (domain.Rental, error) {
	if _, err := s.repo.GetItem(ctx, in.ItemID); err != nil {
		return domain.Rental{}, err
	}
	if !s.tokens.Valid(in.Token, in.ItemID) {
		return domain.Rental{}, domain.ErrInvalidToken
	}

	period, err := domain.NewDateRange(in.Start, in.End)
	if err != nil {
		return domain.Rental{}, err
	}

	now := s.clock.Now()
	var result domain.Rental

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetItemForUpdate(txCtx, in.ItemID); err != nil {
			return err
		}

		taken, err := s.repo.HasActiveOverlap(txCtx, in.ItemID, period)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrRangeConflict
		}

		if err := in.Customer.Validate(); err != nil {
			return err
		}

		// Consumption happens inside the per-item critical section so two
		// concurrent requests cannot both ride the same single-use token.
		if !s.tokens.Consume(in.Token, in.ItemID) {
			return domain.ErrInvalidToken
		}

		rental := domain.Rental{
			ItemID:    in.ItemID,
			Start:     period.Start,
			End:       period.End,
			Customer:  in.Customer,
			Status:    domain.RentalStatusActive,
			CreatedAt: now,
		}
		created, err := s.repo.CreateRental(txCtx, rental)
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	if err != nil {
		return domain.Rental{}, err
	}
	return result, nil
}
