package domain

import "errors"

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrRentalNotFound    = errors.New("rental not found")
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrInvalidDateRange  = errors.New("end date must be after start date")
	ErrInvalidCustomer   = errors.New("name, email and phone are required")
	ErrInvalidToken      = errors.New("invalid or missing CSRF token")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrRangeConflict     = errors.New("item is not available for the requested dates")
)
