package ws

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Vasu1712/zenith-backend/internal/background"
	"github.com/Vasu1712/zenith-backend/internal/render"
	"github.com/Vasu1712/zenith-backend/internal/scene"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 64
)

// ErrClosed is returned by mount operations after the connection is gone.
var ErrClosed = errors.New("websocket client closed")

// Inbound is a message from the page.
type Inbound struct {
	Type       string  `json:"type"`
	Path       string  `json:"path,omitempty"`
	Width      int     `json:"width,omitempty"`
	Height     int     `json:"height,omitempty"`
	PixelRatio float32 `json:"pixelRatio,omitempty"`
}

// Outbound is a message to the page. Exactly one payload field is set.
type Outbound struct {
	Type      string            `json:"type"`
	Snapshot  *render.Snapshot  `json:"snapshot,omitempty"`
	Frame     *render.Frame     `json:"frame,omitempty"`
	SurfaceID string            `json:"surfaceId,omitempty"`
	State     *background.State `json:"state,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// Client is one page view's background session. It is the render.Mount
// for that view: snapshots, frames and detaches are queued on Send and
// written by WritePump.
type Client struct {
	ID   string
	Send chan []byte
	Conn *websocket.Conn

	hub       *Hub
	bg        *background.Controller
	mu        sync.Mutex
	vp        render.Viewport
	listeners map[int]func(render.Viewport)
	nextID    int
	closed    chan struct{}
	closeOnce sync.Once
}

// NewClient wires a connection to its own background controller.
func NewClient(conn *websocket.Conn, hub *Hub, registry *scene.Registry, opts render.Options) *Client {
	c := &Client{
		ID:        uuid.NewString(),
		Send:      make(chan []byte, sendBuffer),
		Conn:      conn,
		hub:       hub,
		vp:        render.DefaultViewport,
		listeners: make(map[int]func(render.Viewport)),
		closed:    make(chan struct{}),
	}
	c.bg = background.New(registry, c, opts)
	return c
}

// Viewport implements render.Mount.
func (c *Client) Viewport() render.Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vp
}

// Attach implements render.Mount. It blocks until the snapshot is queued.
func (c *Client) Attach(s render.Snapshot) error {
	return c.queue(Outbound{Type: "attach", Snapshot: &s}, true)
}

// Present implements render.Mount. Frames are dropped when the write
// queue is full; the next frame supersedes them.
func (c *Client) Present(f render.Frame) error {
	return c.queue(Outbound{Type: "frame", Frame: &f}, false)
}

// Detach implements render.Mount.
func (c *Client) Detach(surfaceID string) {
	if err := c.queue(Outbound{Type: "detach", SurfaceID: surfaceID}, true); err != nil && !errors.Is(err, ErrClosed) {
		log.Printf("[WS] detach %s for client %s: %v", surfaceID, c.ID, err)
	}
}

// OnResize implements render.Mount.
func (c *Client) OnResize(fn func(render.Viewport)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

func (c *Client) queue(msg Outbound, wait bool) error {
	select {
	case <-c.closed:
		return ErrClosed
	default:
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if wait {
		select {
		case c.Send <- data:
			return nil
		case <-c.closed:
			return ErrClosed
		}
	}
	select {
	case c.Send <- data:
	case <-c.closed:
		return ErrClosed
	default:
	}
	return nil
}

// resize records the page's new size and notifies listeners outside the lock.
func (c *Client) resize(vp render.Viewport) {
	c.mu.Lock()
	c.vp = vp
	fns := make([]func(render.Viewport), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(vp)
	}
}

// Navigate moves the session to path and reports the new page to the hub.
func (c *Client) Navigate(path string) background.State {
	st := c.bg.Navigate(path)
	select {
	case c.hub.Navigate <- Visit{Client: c, Page: st.Page}:
	case <-c.hub.Done():
	}
	if err := c.queue(Outbound{Type: "state", State: &st}, true); err != nil && !errors.Is(err, ErrClosed) {
		log.Printf("[WS] state for client %s: %v", c.ID, err)
	}
	return st
}

func (c *Client) handle(in Inbound) {
	switch in.Type {
	case "navigate":
		c.Navigate(in.Path)
	case "resize":
		c.resize(render.Viewport{Width: in.Width, Height: in.Height, PixelRatio: in.PixelRatio})
	default:
		_ = c.queue(Outbound{Type: "error", Error: "unknown message type " + in.Type}, false)
	}
}

// ReadPump consumes page messages until the connection fails, then tears
// the session down: the background is disposed before the client leaves
// the hub.
func (c *Client) ReadPump() {
	defer c.Close()

	c.Conn.SetReadLimit(maxMessageSize)
	for {
		var in Inbound
		if err := c.Conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] read error for client %s: %v", c.ID, err)
			}
			return
		}
		c.handle(in)
	}
}

// WritePump writes queued messages until the client closes.
func (c *Client) WritePump() {
	defer c.Conn.Close()
	for {
		select {
		case msg := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("[WS] write error for client %s: %v", c.ID, err)
				go c.Close()
				return
			}
		case <-c.closed:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// Close stops the pumps, disposes the background and leaves the hub. It
// is idempotent. c.closed is closed first so that mount calls made during
// disposal cannot block on a write queue nobody drains.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		c.bg.Close()
		select {
		case c.hub.Unregister <- c:
		case <-c.hub.Done():
		}
		if c.Conn != nil {
			c.Conn.Close()
		}
		log.Printf("[WS] client %s closed", c.ID)
	})
}

// State returns the session's background state.
func (c *Client) State() background.State {
	return c.bg.State()
}
