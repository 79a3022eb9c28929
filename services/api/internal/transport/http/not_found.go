package http

import "net/http"

// NotFoundHandler is the mux fallback for paths outside the /api surface. It
// answers with the same coded JSON error shape the API handlers use.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})
}
