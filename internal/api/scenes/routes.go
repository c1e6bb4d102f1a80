package scenes

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSceneRoutes registers the scene descriptor API and the
// background stream.
func RegisterSceneRoutes(r *mux.Router, handler *SceneHandler) {
	api := r.PathPrefix("/api/v1/scenes").Subrouter()
	api.HandleFunc("", handler.ListScenes).Methods(http.MethodGet)
	// resolve must be registered before the {page} pattern.
	api.HandleFunc("/resolve", handler.ResolveScene).Methods(http.MethodGet)
	api.HandleFunc("/{page}", handler.GetScene).Methods(http.MethodGet)

	r.HandleFunc("/ws/background", handler.ServeWS)
}
