package render

import (
	"github.com/google/uuid"

	"github.com/Vasu1712/zenith-backend/internal/scene"
)

const maxPixelRatio = 2

// Viewport is the drawable's size in CSS pixels.
type Viewport struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	PixelRatio float32 `json:"pixelRatio"`
}

// DefaultViewport is used until the mount reports its real size.
var DefaultViewport = Viewport{Width: 1280, Height: 720, PixelRatio: 1}

// Transform places a node. Opacity is only meaningful for materials that fade.
type Transform struct {
	Position Vec3    `json:"position"`
	Rotation Vec3    `json:"rotation"`
	Scale    Vec3    `json:"scale"`
	Opacity  float32 `json:"opacity"`
}

func identity() Transform {
	return Transform{Scale: Vec3{X: 1, Y: 1, Z: 1}, Opacity: 1}
}

// Camera is a perspective camera.
type Camera struct {
	FOV      float32 `json:"fov"`
	Aspect   float32 `json:"aspect"`
	Near     float32 `json:"near"`
	Far      float32 `json:"far"`
	Position Vec3    `json:"position"`
	Target   Vec3    `json:"target"`
}

// Light kinds.
const (
	LightAmbient     = "ambient"
	LightDirectional = "directional"
	LightSpot        = "spot"
)

// Light is one scene light. Lights that move are also tracked as nodes.
type Light struct {
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	Color     RGB     `json:"color"`
	Intensity float32 `json:"intensity"`
	Position  Vec3    `json:"position"`
	Angle     float32 `json:"angle,omitempty"`
}

// Points is a point-cloud buffer. Colors and Sizes are optional per-vertex
// attributes; when absent the material Color and Size apply.
type Points struct {
	Name      string    `json:"name"`
	Positions []float32 `json:"positions"`
	Colors    []float32 `json:"colors,omitempty"`
	Sizes     []float32 `json:"sizes,omitempty"`
	Color     RGB       `json:"color"`
	Size      float32   `json:"size"`
	Additive  bool      `json:"additive,omitempty"`
	Transform Transform `json:"transform"`
}

// Count returns the number of vertices in the buffer.
func (p *Points) Count() int {
	return len(p.Positions) / 3
}

// Grid is a line grid on the XZ plane.
type Grid struct {
	Name        string    `json:"name"`
	Size        float32   `json:"size"`
	Divisions   int       `json:"divisions"`
	CenterColor RGB       `json:"centerColor"`
	LineColor   RGB       `json:"lineColor"`
	Transform   Transform `json:"transform"`
}

// Primitive shapes a mesh can use.
const (
	ShapeCone   = "cone"
	ShapeBox    = "box"
	ShapeSphere = "sphere"
	ShapeGroup  = "group"
)

// Mesh is a primitive shape or a group of child meshes.
type Mesh struct {
	Name      string    `json:"name"`
	Shape     string    `json:"shape"`
	Params    []float32 `json:"params,omitempty"`
	Color     RGB       `json:"color"`
	Shininess float32   `json:"shininess,omitempty"`
	Transform Transform `json:"transform"`
	Children  []*Mesh   `json:"children,omitempty"`
}

// Fog is exponential-squared fog.
type Fog struct {
	Color   RGB     `json:"color"`
	Density float32 `json:"density"`
}

// Surface is the live graphics state for one mounted background. It is
// owned by exactly one Controller.
type Surface struct {
	ID         string
	Page       scene.Page
	Viewport   Viewport
	ClearColor *RGB
	Fog        *Fog
	Camera     Camera
	Orbit      *Orbit
	Lights     []*Light
	Points     []*Points
	Grids      []*Grid
	Meshes     []*Mesh

	nodes    []node
	released bool
}

type node struct {
	name string
	t    *Transform
}

func newSurface(d scene.Descriptor, vp Viewport) *Surface {
	s := &Surface{
		ID:   uuid.NewString(),
		Page: d.Page,
		Camera: Camera{
			FOV:      d.Camera.FOV,
			Near:     d.Camera.Near,
			Far:      d.Camera.Far,
			Position: vec(d.Camera.Position),
		},
	}
	s.resize(vp)
	return s
}

// track registers a transform that is reported in every frame.
func (s *Surface) track(name string, t *Transform) {
	s.nodes = append(s.nodes, node{name: name, t: t})
}

func (s *Surface) addPoints(p *Points) *Points {
	s.Points = append(s.Points, p)
	s.track(p.Name, &p.Transform)
	return p
}

func (s *Surface) addGrid(g *Grid) *Grid {
	s.Grids = append(s.Grids, g)
	s.track(g.Name, &g.Transform)
	return g
}

func (s *Surface) addMesh(m *Mesh) *Mesh {
	s.Meshes = append(s.Meshes, m)
	s.track(m.Name, &m.Transform)
	return m
}

func (s *Surface) addLight(l *Light) *Light {
	s.Lights = append(s.Lights, l)
	return l
}

// resize updates the camera aspect and drawable size without touching buffers.
func (s *Surface) resize(vp Viewport) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return
	}
	if vp.PixelRatio <= 0 {
		vp.PixelRatio = 1
	}
	if vp.PixelRatio > maxPixelRatio {
		vp.PixelRatio = maxPixelRatio
	}
	s.Viewport = vp
	s.Camera.Aspect = float32(vp.Width) / float32(vp.Height)
}

// VertexCount is the total number of point vertices held by the surface.
func (s *Surface) VertexCount() int {
	n := 0
	for _, p := range s.Points {
		n += p.Count()
	}
	return n
}

// Released reports whether the surface's buffers have been freed.
func (s *Surface) Released() bool {
	return s.released
}

// release drops every buffer and node reference. Safe to call twice.
func (s *Surface) release() {
	if s.released {
		return
	}
	for _, p := range s.Points {
		p.Positions, p.Colors, p.Sizes = nil, nil, nil
	}
	s.Points, s.Grids, s.Meshes, s.Lights = nil, nil, nil, nil
	s.nodes = nil
	s.Orbit = nil
	s.released = true
}

// Snapshot is the full description sent to the mount when the surface is attached.
type Snapshot struct {
	SurfaceID  string     `json:"surfaceId"`
	Page       scene.Page `json:"page"`
	Viewport   Viewport   `json:"viewport"`
	ClearColor *RGB       `json:"clearColor,omitempty"`
	Fog        *Fog       `json:"fog,omitempty"`
	Camera     Camera     `json:"camera"`
	Lights     []*Light   `json:"lights"`
	Points     []*Points  `json:"points"`
	Grids      []*Grid    `json:"grids"`
	Meshes     []*Mesh    `json:"meshes"`
}

func (s *Surface) snapshot() Snapshot {
	return Snapshot{
		SurfaceID:  s.ID,
		Page:       s.Page,
		Viewport:   s.Viewport,
		ClearColor: s.ClearColor,
		Fog:        s.Fog,
		Camera:     s.Camera,
		Lights:     s.Lights,
		Points:     s.Points,
		Grids:      s.Grids,
		Meshes:     s.Meshes,
	}
}

// Frame is the per-frame payload: the clock value, shader time and every
// tracked node's transform.
type Frame struct {
	SurfaceID  string               `json:"surfaceId"`
	Seq        uint64               `json:"seq"`
	Time       float32              `json:"time"`
	Camera     Camera               `json:"camera"`
	Lights     map[string]Vec3      `json:"lights,omitempty"`
	Transforms map[string]Transform `json:"transforms"`
}

func (s *Surface) frame(clock FrameClock, t float32) Frame {
	f := Frame{
		SurfaceID:  s.ID,
		Seq:        clock.Value(),
		Time:       t,
		Camera:     s.Camera,
		Transforms: make(map[string]Transform, len(s.nodes)),
	}
	for _, n := range s.nodes {
		f.Transforms[n.name] = *n.t
	}
	for _, l := range s.Lights {
		if l.Kind == LightSpot {
			if f.Lights == nil {
				f.Lights = make(map[string]Vec3)
			}
			f.Lights[l.Name] = l.Position
		}
	}
	return f
}
