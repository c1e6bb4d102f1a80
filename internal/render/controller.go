package render

import (
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Vasu1712/zenith-backend/internal/scene"
)

// DefaultFrameInterval is one frame at 30fps.
const DefaultFrameInterval = time.Second / 30

// Options tunes a Controller. The zero value is usable.
type Options struct {
	// FrameInterval is the time between frame callbacks.
	FrameInterval time.Duration
	// NewTicker creates the loop's ticker. Defaults to NewTimeTicker.
	NewTicker func(time.Duration) Ticker
	// Seed makes buffer generation reproducible. Zero picks a random seed.
	Seed uint64
}

func (o Options) withDefaults() Options {
	if o.FrameInterval <= 0 {
		o.FrameInterval = DefaultFrameInterval
	}
	if o.NewTicker == nil {
		o.NewTicker = NewTimeTicker
	}
	if o.Seed == 0 {
		o.Seed = rand.Uint64()
	}
	return o
}

// Controller owns one Surface from construction to disposal.
type Controller struct {
	mu        sync.Mutex
	desc      scene.Descriptor
	mount     Mount
	opts      Options
	surface   *Surface
	clock     FrameClock
	animate   animateFunc
	loop      *Loop
	unresize  func()
	attached  bool
	disposed  bool
	presentOK bool
}

// New constructs the surface for desc and attaches it to mount. A nil mount
// is not an error: New returns a nil Controller, whose methods are no-ops.
// If construction fails after resources were acquired they are released
// before the error is returned.
func New(desc scene.Descriptor, mount Mount, opts Options) (c *Controller, err error) {
	if mount == nil {
		return nil, nil
	}
	opts = opts.withDefaults()

	build, err := recipeFor(desc.Kind)
	if err != nil {
		return nil, err
	}

	vp := mount.Viewport()
	if vp.Width <= 0 || vp.Height <= 0 {
		vp = DefaultViewport
	}
	c = &Controller{
		desc:      desc,
		mount:     mount,
		opts:      opts,
		surface:   newSurface(desc, vp),
		presentOK: true,
	}
	defer func() {
		if err != nil {
			c.Dispose()
			c = nil
		}
	}()

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	c.animate, err = build(c.surface, desc, rng)
	if err != nil {
		return c, fmt.Errorf("build %s scene: %w", desc.Kind, err)
	}
	c.apply()

	c.unresize = mount.OnResize(c.Resize)
	if err = mount.Attach(c.surface.snapshot()); err != nil {
		return c, fmt.Errorf("attach %s surface: %w", desc.Page, err)
	}
	c.attached = true

	log.Printf("[Render] constructed %s surface %s (%d vertices)", desc.Page, c.surface.ID, c.surface.VertexCount())
	return c, nil
}

// Start arms the animation loop. Calling it again, or after Dispose, does
// nothing.
func (c *Controller) Start() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed || c.loop != nil {
		return
	}
	c.loop = startLoop(c.opts.NewTicker(c.opts.FrameInterval), c.step)
}

// step is one frame callback: advance the clock, apply the periodic
// transforms and present the frame.
func (c *Controller) step() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.clock.Advance()
	c.apply()
	f := c.surface.frame(c.clock, c.clock.Time(c.desc.Motion.Step))
	c.mu.Unlock()

	if err := c.mount.Present(f); err != nil {
		c.mu.Lock()
		if c.presentOK {
			log.Printf("[Render] present %s frame %d: %v", c.desc.Page, f.Seq, err)
		}
		c.presentOK = false
		c.mu.Unlock()
		return
	}
	c.mu.Lock()
	c.presentOK = true
	c.mu.Unlock()
}

func (c *Controller) apply() {
	n := c.clock.Value()
	if c.animate != nil {
		c.animate(c.surface, n)
	}
	if c.surface.Orbit != nil {
		c.surface.Orbit.update(&c.surface.Camera, n)
	}
}

// Resize updates the camera aspect and drawable size. Buffers are kept.
func (c *Controller) Resize(vp Viewport) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.surface.resize(vp)
}

// Dispose cancels the animation loop, removes the resize listener,
// detaches the drawable and releases the surface's buffers. Once it
// returns no further frame is presented. It is idempotent.
func (c *Controller) Dispose() {
	if c == nil {
		return
	}
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	loop := c.loop
	c.loop = nil
	c.mu.Unlock()

	if loop != nil {
		loop.Cancel()
	}

	// The mount's own locks may be held while it calls Resize, so it is
	// never called back into with c.mu held.
	c.mu.Lock()
	unresize, attached := c.unresize, c.attached
	c.unresize, c.attached = nil, false
	c.mu.Unlock()

	if unresize != nil {
		unresize()
	}
	if attached {
		c.mount.Detach(c.surface.ID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.surface.release()
	log.Printf("[Render] disposed %s surface %s after %d frames", c.desc.Page, c.surface.ID, c.clock.Value())
}

// Descriptor returns the descriptor the surface was built from.
func (c *Controller) Descriptor() scene.Descriptor {
	if c == nil {
		return scene.Descriptor{}
	}
	return c.desc
}

// SurfaceID returns the id of the owned surface.
func (c *Controller) SurfaceID() string {
	if c == nil || c.surface == nil {
		return ""
	}
	return c.surface.ID
}

// Frames returns the current Frame Clock value.
func (c *Controller) Frames() uint64 {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clock.Value()
}

// Running reports whether the animation loop is armed.
func (c *Controller) Running() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loop != nil && c.loop.Armed()
}

// Disposed reports whether Dispose has run.
func (c *Controller) Disposed() bool {
	if c == nil {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// Surface exposes the owned surface for inspection. Callers must not keep
// it past Dispose.
func (c *Controller) Surface() *Surface {
	if c == nil {
		return nil
	}
	return c.surface
}
