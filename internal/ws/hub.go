package ws

import (
	"context"
	"log"
	"sync"

	"github.com/Vasu1712/zenith-backend/internal/scene"
)

// Visit records a client moving to a page. An empty Page means the client
// is on a route without a background.
type Visit struct {
	Client *Client
	Page   scene.Page
}

// Hub tracks connected background viewers per page.
type Hub struct {
	Clients    map[*Client]scene.Page
	Register   chan *Client
	Unregister chan *Client
	Navigate   chan Visit
	mu         sync.RWMutex
	done       chan struct{}
	stopped    chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]scene.Page),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Navigate:   make(chan Visit),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

// Run processes hub events until ctx is cancelled, then closes every
// client still connected.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return
		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client] = ""
			h.mu.Unlock()
		case client := <-h.Unregister:
			h.mu.Lock()
			delete(h.Clients, client)
			h.mu.Unlock()
		case v := <-h.Navigate:
			h.mu.Lock()
			if _, ok := h.Clients[v.Client]; ok {
				h.Clients[v.Client] = v.Page
			}
			h.mu.Unlock()
		}
	}
}

// closeAll closes the remaining clients. Done is already closed, so their
// Close does not wait on Unregister.
func (h *Hub) closeAll() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.Clients))
	for c := range h.Clients {
		clients = append(clients, c)
	}
	h.Clients = make(map[*Client]scene.Page)
	h.mu.Unlock()

	for _, c := range clients {
		c.Close()
	}
	if len(clients) > 0 {
		log.Printf("[WS] hub stopped, closed %d clients", len(clients))
	}
}

// Done is closed once the hub stops accepting events.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Stopped is closed once Run has closed every client and returned.
func (h *Hub) Stopped() <-chan struct{} {
	return h.stopped
}

// Connected returns the number of registered clients.
func (h *Hub) Connected() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Clients)
}

// ActiveViewers counts connected clients per page. Every enumerated page
// is present, with zero when nobody is viewing it.
func (h *Hub) ActiveViewers() map[scene.Page]int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(map[scene.Page]int, len(scene.Pages()))
	for _, p := range scene.Pages() {
		out[p] = 0
	}
	for _, p := range h.Clients {
		if p != "" {
			out[p]++
		}
	}
	return out
}
