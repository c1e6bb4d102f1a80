// Package background keeps the decorative background of one page view in
// step with navigation: at most one surface is mounted at a time, and the
// previous one is always disposed before the next is constructed.
package background

import (
	"log"
	"sync"

	"github.com/Vasu1712/zenith-backend/internal/render"
	"github.com/Vasu1712/zenith-backend/internal/scene"
)

// State is a snapshot of the controller's state machine.
type State struct {
	Mounted bool       `json:"mounted"`
	Page    scene.Page `json:"page,omitempty"`
	Surface string     `json:"surface,omitempty"`
}

// Controller selects and mounts the background for the current page.
type Controller struct {
	mu       sync.Mutex
	registry *scene.Registry
	mount    render.Mount
	opts     render.Options
	current  *render.Controller
	closed   bool
}

// New returns an Unmounted controller drawing into mount.
func New(registry *scene.Registry, mount render.Mount, opts render.Options) *Controller {
	return &Controller{
		registry: registry,
		mount:    mount,
		opts:     opts,
	}
}

// Navigate reacts to a route change. The current surface is disposed before
// the next one is constructed; a page without a background, a missing mount
// or a construction error leaves the controller Unmounted. Navigating to the
// page that is already mounted keeps the running surface.
func (c *Controller) Navigate(path string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return State{}
	}

	desc, ok := c.registry.Resolve(path)
	if ok && c.current != nil && c.current.Descriptor().Page == desc.Page {
		return c.state()
	}

	if c.current != nil {
		c.current.Dispose()
		c.current = nil
	}
	if !ok {
		return State{}
	}

	next, err := render.New(desc, c.mount, c.opts)
	if err != nil {
		log.Printf("[Background] mount %s for %s: %v", desc.Page, path, err)
		return State{}
	}
	if next == nil {
		return State{}
	}
	next.Start()
	c.current = next
	return c.state()
}

// State reports whether a surface is mounted and for which page.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state()
}

func (c *Controller) state() State {
	if c.current == nil {
		return State{}
	}
	return State{
		Mounted: true,
		Page:    c.current.Descriptor().Page,
		Surface: c.current.SurfaceID(),
	}
}

// Close disposes the mounted surface. Further navigation is ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.current != nil {
		c.current.Dispose()
		c.current = nil
	}
}
