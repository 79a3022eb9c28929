package http

import (
	stdhttp "net/http"
)

// HealthHandler answers liveness probes for the rental API with a plain "ok",
// independent of the storage backend's state.
func HealthHandler(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(stdhttp.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
