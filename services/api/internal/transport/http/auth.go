package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/danacastroman/app-vestidos/services/api/internal/auth"
	"github.com/danacastroman/app-vestidos/services/api/internal/domain"
)

// SessionManager issues and verifies admin session tokens.
type SessionManager interface {
	Login(user, password string) (string, error)
	Verify(token string) bool
}

// HandleAdminLogin returns an HTTP handler that exchanges operator
// credentials for a session cookie.
func HandleAdminLogin(sessions SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req loginRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		token, err := sessions.Login(req.User, req.Password)
		if err != nil {
			if err == domain.ErrUnauthorized {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     auth.CookieName,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}

// HandleAdminLogout clears the session cookie. The signed token simply stops
// being presented; there is no server-side session store to purge.
func HandleAdminLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     auth.CookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
		})
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}

type loginRequest struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// requireSession rejects requests without a live admin session cookie.
func requireSession(w http.ResponseWriter, r *http.Request, sessions SessionManager) bool {
	cookie, err := r.Cookie(auth.CookieName)
	if err != nil || !sessions.Verify(cookie.Value) {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, domain.ErrUnauthorized.Error())
		return false
	}
	return true
}
