package admin

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Vasu1712/zenith-backend/internal/middleware"
)

// RegisterAdminRoutes registers login/logout and the admin views, which
// require a valid admin session.
func RegisterAdminRoutes(r *mux.Router, handler *AdminHandler) {
	r.HandleFunc("/api/v1/admin/login", handler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/admin/logout", handler.Logout).Methods(http.MethodPost)

	protected := r.PathPrefix("/api/v1/admin").Subrouter()
	protected.Use(middleware.RequireAdmin(handler.Gate))
	protected.HandleFunc("/session", handler.Session).Methods(http.MethodGet)
	protected.HandleFunc("/registrations", handler.ListRegistrations).Methods(http.MethodGet)
	protected.HandleFunc("/stats", handler.Stats).Methods(http.MethodGet)
}
