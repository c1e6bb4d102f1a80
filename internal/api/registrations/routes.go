package registrations

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRegistrationRoutes registers the public registration endpoint.
func RegisterRegistrationRoutes(r *mux.Router, handler *RegistrationHandler) {
	r.HandleFunc("/api/v1/registrations", handler.CreateRegistration).Methods(http.MethodPost)
}
