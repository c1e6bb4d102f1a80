package render

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// recordingMount is an in-memory Mount that records every call.
type recordingMount struct {
	mu          sync.Mutex
	vp          Viewport
	attachErr   error
	snapshots   []Snapshot
	frames      []Frame
	attached    map[string]bool
	maxAttached int
	detached    []string
	late        int
	listeners   map[int]func(Viewport)
	nextID      int
}

func newRecordingMount() *recordingMount {
	return &recordingMount{
		vp:        Viewport{Width: 800, Height: 600, PixelRatio: 1},
		attached:  make(map[string]bool),
		listeners: make(map[int]func(Viewport)),
	}
}

func (m *recordingMount) Viewport() Viewport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vp
}

func (m *recordingMount) Attach(s Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.attachErr != nil {
		return m.attachErr
	}
	m.snapshots = append(m.snapshots, s)
	m.attached[s.SurfaceID] = true
	if len(m.attached) > m.maxAttached {
		m.maxAttached = len(m.attached)
	}
	return nil
}

func (m *recordingMount) Present(f Frame) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.attached[f.SurfaceID] {
		m.late++
		return errors.New("frame for detached surface")
	}
	m.frames = append(m.frames, f)
	return nil
}

func (m *recordingMount) Detach(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.attached, id)
	m.detached = append(m.detached, id)
}

func (m *recordingMount) OnResize(fn func(Viewport)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// resize notifies listeners the way a browser resize event would.
func (m *recordingMount) resize(vp Viewport) {
	m.mu.Lock()
	m.vp = vp
	fns := make([]func(Viewport), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()
	for _, fn := range fns {
		fn(vp)
	}
}

func (m *recordingMount) frameCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.frames)
}

func (m *recordingMount) listenerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.listeners)
}

func (m *recordingMount) attachedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.attached)
}

// manualTicker delivers ticks only when the test calls tick.
type manualTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func newManualTicker() *manualTicker {
	return &manualTicker{ch: make(chan time.Time)}
}

func (t *manualTicker) C() <-chan time.Time { return t.ch }
func (t *manualTicker) Stop()               { t.stopped.Store(true) }

// tick hands one tick to the loop, reporting false if nothing received it
// within the timeout.
func (t *manualTicker) tick(timeout time.Duration) bool {
	select {
	case t.ch <- time.Now():
		return true
	case <-time.After(timeout):
		return false
	}
}

func manualOptions(t *manualTicker) Options {
	return Options{
		Seed:      42,
		NewTicker: func(time.Duration) Ticker { return t },
	}
}
