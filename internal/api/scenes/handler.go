package scenes

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/patrickmn/go-cache"

	"github.com/Vasu1712/zenith-backend/internal/render"
	"github.com/Vasu1712/zenith-backend/internal/scene"
	"github.com/Vasu1712/zenith-backend/internal/ws"
)

// SceneHandler serves background descriptors and the background stream.
type SceneHandler struct {
	Registry *scene.Registry
	Hub      *ws.Hub
	// Cache holds encoded descriptor responses. The table never changes at
	// runtime, so entries only expire to bound memory.
	Cache         *cache.Cache
	RenderOptions render.Options
	// AllowedOrigin may open the background stream in addition to the
	// server's own origin.
	AllowedOrigin string
}

// NewSceneHandler returns a handler with a fresh response cache.
func NewSceneHandler(registry *scene.Registry, hub *ws.Hub, opts render.Options, origin string) *SceneHandler {
	return &SceneHandler{
		Registry:      registry,
		Hub:           hub,
		Cache:         cache.New(10*time.Minute, 20*time.Minute),
		RenderOptions: opts,
		AllowedOrigin: origin,
	}
}

// Background pairs a page with its descriptor, or null when it has none.
type Background struct {
	Path       string            `json:"path,omitempty"`
	Page       scene.Page        `json:"page"`
	Background *scene.Descriptor `json:"background"`
}

func (h *SceneHandler) background(p scene.Page) Background {
	res := Background{Page: p}
	if d, ok := h.Registry.Lookup(p); ok {
		res.Background = &d
	}
	return res
}

// writeCached encodes v once per key and serves the cached bytes after.
func (h *SceneHandler) writeCached(w http.ResponseWriter, key string, v func() any) {
	var body []byte
	if h.Cache != nil {
		if cached, ok := h.Cache.Get(key); ok {
			body = cached.([]byte)
		}
	}
	if body == nil {
		var err error
		body, err = json.Marshal(v())
		if err != nil {
			http.Error(w, "Failed to encode scene", http.StatusInternalServerError)
			log.Printf("[Scene] encode %s: %v", key, err)
			return
		}
		if h.Cache != nil {
			h.Cache.Set(key, body, cache.DefaultExpiration)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// ListScenes returns every page's descriptor in page order.
func (h *SceneHandler) ListScenes(w http.ResponseWriter, r *http.Request) {
	h.writeCached(w, "scenes:all", func() any {
		return h.Registry.All()
	})
}

// GetScene returns the descriptor for the page named in the route. A page
// without a background is not an error: the response carries a null
// background.
func (h *SceneHandler) GetScene(w http.ResponseWriter, r *http.Request) {
	p := scene.Page(mux.Vars(r)["page"])
	if !p.Valid() {
		// Not cached: the key would come straight from the caller.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(h.background(p))
		return
	}
	h.writeCached(w, "scenes:page:"+string(p), func() any {
		return h.background(p)
	})
}

// ResolveScene maps a route path (?path=/about) to its background.
func (h *SceneHandler) ResolveScene(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, "path is required as a query parameter (e.g., ?path=/about)", http.StatusBadRequest)
		return
	}
	p, _ := scene.PageFromPath(path)
	res := h.background(p)
	res.Path = path

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(res)
}

func (h *SceneHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == h.AllowedOrigin {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

// ServeWS upgrades to the background stream. Each connection gets its own
// background session; ?path= performs the first navigation immediately.
func (h *SceneHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Scene] Failed to upgrade WebSocket: %v", err)
		return
	}

	client := ws.NewClient(conn, h.Hub, h.Registry, h.RenderOptions)
	select {
	case h.Hub.Register <- client:
	case <-h.Hub.Done():
		conn.Close()
		return
	}
	log.Printf("[Scene] background client %s connected", client.ID)

	go client.WritePump()
	if path := r.URL.Query().Get("path"); path != "" {
		client.Navigate(path)
	}
	go client.ReadPump()
}
