package domain

import (
	"strings"
	"time"
)

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCancelled RentalStatus = "cancelled"
)

// Rental reserves an item for a half-open date range [Start, End).
type Rental struct {
	ID        int64
	ItemID    int64
	Start     time.Time
	End       time.Time
	Customer  Customer
	Status    RentalStatus
	CreatedAt time.Time
}

// Period returns the rental's occupied range.
func (r Rental) Period() DateRange {
	return DateRange{Start: r.Start, End: r.End}
}

// RentalSummary is a rental joined with its item's name, for admin listings.
type RentalSummary struct {
	Rental
	ItemName string
}

// Customer holds the contact fields captured with a booking. The values are
// opaque; only presence is validated.
type Customer struct {
	Name  string
	Email string
	Phone string
}

func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" ||
		strings.TrimSpace(c.Email) == "" ||
		strings.TrimSpace(c.Phone) == "" {
		return ErrInvalidCustomer
	}
	return nil
}
