// Package server assembles the HTTP surface.
package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Vasu1712/zenith-backend/internal/api/admin"
	"github.com/Vasu1712/zenith-backend/internal/api/registrations"
	"github.com/Vasu1712/zenith-backend/internal/api/scenes"
	"github.com/Vasu1712/zenith-backend/internal/auth"
	"github.com/Vasu1712/zenith-backend/internal/middleware"
	"github.com/Vasu1712/zenith-backend/internal/registration"
	"github.com/Vasu1712/zenith-backend/internal/render"
	"github.com/Vasu1712/zenith-backend/internal/scene"
	"github.com/Vasu1712/zenith-backend/internal/ws"
)

// Deps are the collaborators the router needs.
type Deps struct {
	Registry      *scene.Registry
	Hub           *ws.Hub
	Service       *registration.Service
	Gate          *auth.Gate
	RenderOptions render.Options
	CORSOrigin    string
	SecureCookie  bool
}

// NewRouter wires every route. CORS and request logging wrap the router
// itself so preflight requests are answered before route matching.
func NewRouter(d Deps) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	scenes.RegisterSceneRoutes(r, scenes.NewSceneHandler(d.Registry, d.Hub, d.RenderOptions, d.CORSOrigin))
	registrations.RegisterRegistrationRoutes(r, &registrations.RegistrationHandler{Service: d.Service})
	admin.RegisterAdminRoutes(r, &admin.AdminHandler{
		Gate:         d.Gate,
		Service:      d.Service,
		Hub:          d.Hub,
		SecureCookie: d.SecureCookie,
	})

	return middleware.CORS(d.CORSOrigin)(middleware.Logging(r))
}
