package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/danacastroman/app-vestidos/services/api/internal/app"
	"github.com/danacastroman/app-vestidos/services/api/internal/domain"
)

// CatalogReader is the minimal interface needed for the public catalog.
type CatalogReader interface {
	GetItem(ctx context.Context, itemID int64) (domain.Item, error)
	ListItems(ctx context.Context, filter app.CatalogFilter) ([]domain.Item, error)
}

// TokenIssuer mints a fresh single-use booking token for an item.
type TokenIssuer interface {
	Issue(itemID int64) string
}

// AvailabilityReader lists the occupied date ranges for an item.
type AvailabilityReader interface {
	Occupied(ctx context.Context, itemID int64) ([]domain.DateRange, error)
}

// HandleListItems returns an HTTP handler for listing the catalog with
// optional filters taken from the query string.
func HandleListItems(catalog CatalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		q := r.URL.Query()
		filter := app.CatalogFilter{
			Query:    strings.TrimSpace(q.Get("q")),
			Category: strings.TrimSpace(q.Get("category")),
			Size:     strings.TrimSpace(q.Get("size")),
			Color:    strings.TrimSpace(q.Get("color")),
			Style:    strings.TrimSpace(q.Get("style")),
		}

		items, err := catalog.ListItems(r.Context(), filter)
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		resp := make([]itemResponse, 0, len(items))
		for _, item := range items {
			resp = append(resp, newItemResponse(item))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleItem dispatches /api/items/{id} and /api/items/{id}/availability.
// The detail response carries a freshly issued booking token so the rental
// form can post it back.
func HandleItem(catalog CatalogReader, availability AvailabilityReader, tokens TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, rest, ok := parseItemPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		switch rest {
		case "":
			item, err := catalog.GetItem(r.Context(), itemID)
			if err != nil {
				if err == domain.ErrItemNotFound {
					writeError(w, http.StatusNotFound, codeItemNotFound, err.Error())
					return
				}
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			writeJSON(w, http.StatusOK, itemDetailResponse{
				itemResponse: newItemResponse(item),
				CSRF:         tokens.Issue(item.ID),
			})
		case "availability":
			// Unknown items 404 here even though the availability engine
			// itself treats them as having no bookings.
			if _, err := catalog.GetItem(r.Context(), itemID); err != nil {
				if err == domain.ErrItemNotFound {
					writeError(w, http.StatusNotFound, codeItemNotFound, err.Error())
					return
				}
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			ranges, err := availability.Occupied(r.Context(), itemID)
			if err != nil {
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			resp := availabilityResponse{Rentals: make([]rangeResponse, 0, len(ranges))}
			for _, dr := range ranges {
				resp.Rentals = append(resp.Rentals, rangeResponse{
					Start: dr.Start.Format(domain.DateLayout),
					End:   dr.End.Format(domain.DateLayout),
				})
			}
			writeJSON(w, http.StatusOK, resp)
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

type itemResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	Style       string   `json:"style"`
	PricePerDay float64  `json:"pricePerDay"`
}

func newItemResponse(item domain.Item) itemResponse {
	return itemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Category:    item.Category,
		Sizes:       item.Sizes,
		Colors:      item.Colors,
		Style:       item.Style,
		PricePerDay: item.PricePerDay,
	}
}

type itemDetailResponse struct {
	itemResponse
	CSRF string `json:"csrf"`
}

type rangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type availabilityResponse struct {
	Rentals []rangeResponse `json:"rentals"`
}

// parseItemPath splits /api/items/{id}[/rest] into the item id and the
// remainder after it.
func parseItemPath(path string) (int64, string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 3 || parts[0] != "api" || parts[1] != "items" {
		return 0, "", false
	}
	id, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || id <= 0 {
		return 0, "", false
	}
	return id, strings.Join(parts[3:], "/"), true
}
