package admin

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Vasu1712/zenith-backend/internal/auth"
	"github.com/Vasu1712/zenith-backend/internal/middleware"
	"github.com/Vasu1712/zenith-backend/internal/models"
	"github.com/Vasu1712/zenith-backend/internal/registration"
	"github.com/Vasu1712/zenith-backend/internal/scene"
	"github.com/Vasu1712/zenith-backend/internal/ws"
)

// AdminHandler serves the admin login and the protected admin views.
type AdminHandler struct {
	Gate    *auth.Gate
	Service *registration.Service
	Hub     *ws.Hub
	// SecureCookie marks the session cookie Secure; set it behind TLS.
	SecureCookie bool
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RegistrationsResponse lists stored registrations, oldest first.
type RegistrationsResponse struct {
	Registrations []*models.Registration `json:"registrations"`
}

// StatsResponse summarises registrations and live background viewers.
type StatsResponse struct {
	Registrations int64              `json:"registrations"`
	Connected     int                `json:"connected"`
	Viewers       map[scene.Page]int `json:"viewers"`
}

// maxLoginBytes bounds the login body.
const maxLoginBytes = 4 << 10

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func message(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// Login exchanges the admin credentials for a session token, returned in
// the body and as an HttpOnly cookie.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxLoginBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			message(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		message(w, http.StatusBadRequest, "Invalid request body")
		log.Printf("[Admin] Error decoding login body: %v", err)
		return
	}

	sess, err := h.Gate.Authenticate(req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		message(w, http.StatusUnauthorized, "Invalid email or password")
		return
	case errors.Is(err, auth.ErrMissingConfiguration):
		log.Printf("[Admin] login unavailable: %v", err)
		message(w, http.StatusInternalServerError, "Authentication is not configured")
		return
	case err != nil:
		log.Printf("[Admin] login failed: %v", err)
		message(w, http.StatusInternalServerError, "Authentication failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, LoginResponse{Token: sess.Token, ExpiresAt: sess.ExpiresAt})
}

// Logout clears the session cookie. Tokens are stateless, so a copied
// bearer token stays valid until it expires.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	message(w, http.StatusOK, "Logged out")
}

// Session describes the caller's admin session.
func (h *AdminHandler) Session(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		message(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	res := map[string]any{
		"email": claims.Email,
		"role":  claims.Role,
	}
	if claims.ExpiresAt != nil {
		res["expiresAt"] = claims.ExpiresAt.Time
	}
	writeJSON(w, http.StatusOK, res)
}

// ListRegistrations returns every stored registration.
func (h *AdminHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	recs, err := h.Service.List(r.Context())
	if err != nil {
		log.Printf("[Admin] Error listing registrations: %v", err)
		message(w, http.StatusInternalServerError, "Error listing registrations")
		return
	}
	if recs == nil {
		recs = []*models.Registration{}
	}
	writeJSON(w, http.StatusOK, RegistrationsResponse{Registrations: recs})
	log.Printf("[Admin] Listed %d registrations", len(recs))
}

// Stats reports the registration count and live viewers per page.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	n, err := h.Service.Count(r.Context())
	if err != nil {
		log.Printf("[Admin] Error counting registrations: %v", err)
		message(w, http.StatusInternalServerError, "Error counting registrations")
		return
	}
	res := StatsResponse{Registrations: n, Viewers: map[scene.Page]int{}}
	if h.Hub != nil {
		res.Connected = h.Hub.Connected()
		res.Viewers = h.Hub.ActiveViewers()
	}
	writeJSON(w, http.StatusOK, res)
}
