package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danacastroman/app-vestidos/services/api/internal/domain"
)

// AdminRentalService is the minimal interface needed for the back office.
type AdminRentalService interface {
	ListRentals(ctx context.Context) ([]domain.RentalSummary, error)
	CancelRental(ctx context.Context, rentalID int64) (domain.Rental, error)
}

// HandleAdminRentals returns an HTTP handler for listing all rentals.
func HandleAdminRentals(svc AdminRentalService, sessions SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		if !requireSession(w, r, sessions) {
			return
		}

		summaries, err := svc.ListRentals(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		resp := make([]adminRentalResponse, 0, len(summaries))
		for _, s := range summaries {
			resp = append(resp, adminRentalResponse{
				ID:        s.ID,
				ItemID:    s.ItemID,
				ItemName:  s.ItemName,
				Start:     s.Start.Format(domain.DateLayout),
				End:       s.End.Format(domain.DateLayout),
				Name:      s.Customer.Name,
				Email:     s.Customer.Email,
				Phone:     s.Customer.Phone,
				Status:    string(s.Status),
				CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleAdminCancelRental returns an HTTP handler for
// POST /api/admin/rentals/{id}/cancel.
func HandleAdminCancelRental(svc AdminRentalService, sessions SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rentalID, ok := parseCancelPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		if !requireSession(w, r, sessions) {
			return
		}

		if _, err := svc.CancelRental(r.Context(), rentalID); err != nil {
			if err == domain.ErrRentalNotFound {
				writeError(w, http.StatusNotFound, codeRentalNotFound, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}

type adminRentalResponse struct {
	ID        int64  `json:"id"`
	ItemID    int64  `json:"itemId"`
	ItemName  string `json:"itemName"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

func parseCancelPath(path string) (int64, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 5 {
		return 0, false
	}
	if parts[0] != "api" || parts[1] != "admin" || parts[2] != "rentals" || parts[4] != "cancel" {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
