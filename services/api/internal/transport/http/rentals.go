package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/danacastroman/app-vestidos/services/api/internal/app"
	"github.com/danacastroman/app-vestidos/services/api/internal/domain"
)

// RentalCreator is the minimal interface needed to book a rental.
type RentalCreator interface {
	CreateRental(ctx context.Context, in app.CreateRentalInput) (domain.Rental, error)
}

// HandleCreateRental returns an HTTP handler for booking a rental.
func HandleCreateRental(svc RentalCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createRentalRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.ItemID <= 0 {
			writeError(w, http.StatusBadRequest, codeInvalidID, "itemId is required")
			return
		}

		rental, err := svc.CreateRental(r.Context(), app.CreateRentalInput{
			ItemID: req.ItemID,
			Start:  req.Start,
			End:    req.End,
			Token:  req.CSRF,
			Customer: domain.Customer{
				Name:  req.Name,
				Email: req.Email,
				Phone: req.Phone,
			},
		})
		if err != nil {
			switch err {
			case domain.ErrItemNotFound:
				writeError(w, http.StatusNotFound, codeItemNotFound, err.Error())
			case domain.ErrInvalidToken:
				writeError(w, http.StatusBadRequest, codeInvalidToken, err.Error())
			case domain.ErrInvalidDateFormat:
				writeError(w, http.StatusBadRequest, codeInvalidDateFormat, err.Error())
			case domain.ErrInvalidDateRange:
				writeError(w, http.StatusBadRequest, codeInvalidDateRange, err.Error())
			case domain.ErrInvalidCustomer:
				writeError(w, http.StatusBadRequest, codeInvalidCustomer, err.Error())
			case domain.ErrRangeConflict:
				writeError(w, http.StatusConflict, codeRangeConflict, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, rentalResponse{
			ID:     rental.ID,
			ItemID: rental.ItemID,
			Start:  rental.Start.Format(domain.DateLayout),
			End:    rental.End.Format(domain.DateLayout),
			Status: string(rental.Status),
		})
	}
}

type createRentalRequest struct {
	ItemID int64  `json:"itemId"`
	CSRF   string `json:"csrf"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

type rentalResponse struct {
	ID     int64  `json:"id"`
	ItemID int64  `json:"itemId"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Status string `json:"status"`
}
