package render

// Mount is the container a surface draws into. A websocket session is the
// production mount; tests use an in-memory recorder.
//
// Attach receives the snapshot once per surface, Present receives one Frame
// per animation callback and Detach removes the drawable. OnResize
// registers a listener and returns the function that removes it.
type Mount interface {
	Viewport() Viewport
	Attach(Snapshot) error
	Present(Frame) error
	Detach(surfaceID string)
	OnResize(func(Viewport)) (remove func())
}
