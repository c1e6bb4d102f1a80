package registrations

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Vasu1712/zenith-backend/internal/registration"
)

// RegistrationHandler accepts registration form submissions.
type RegistrationHandler struct {
	Service *registration.Service
}

// maxBodyBytes bounds a submitted form. A real form is well under 1 KiB.
const maxBodyBytes = 16 << 10

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// CreateRegistration stores one submitted form. The store is called at
// most once per request.
func (h *RegistrationHandler) CreateRegistration(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var form registration.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"message": "Request body too large"})
			log.Printf("[Registration] Rejected body over %d bytes", tooLarge.Limit)
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		log.Printf("[Registration] Error decoding request body: %v", err)
		return
	}

	rec, err := h.Service.Register(r.Context(), form)
	if err != nil {
		var verr *registration.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": verr.Error(), "field": verr.Field})
			return
		}
		log.Printf("[Registration] Error creating registration: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Error creating registration"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "Registration successful",
		"id":      rec.ID,
	})
}
