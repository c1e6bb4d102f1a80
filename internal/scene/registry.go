package scene

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var defaultCamera = Camera{FOV: 75, Near: 0.1, Far: 1000}

// Registry maps pages to their background recipes. The zero value has no
// entries; use NewRegistry for the site's table.
type Registry struct {
	descriptors map[Page]Descriptor
}

// NewRegistry returns the registry holding the canonical background for
// every page in Pages.
func NewRegistry() *Registry {
	r := &Registry{descriptors: make(map[Page]Descriptor)}
	for _, d := range []Descriptor{home(), about(), events(), sponsors(), register()} {
		r.descriptors[d.Page] = d
	}
	return r
}

// Lookup returns the descriptor for p. The boolean is false when the page
// has no background.
func (r *Registry) Lookup(p Page) (Descriptor, bool) {
	if r == nil {
		return Descriptor{}, false
	}
	d, ok := r.descriptors[p]
	if !ok {
		return Descriptor{}, false
	}
	return d.Clone(), true
}

// Resolve looks up the background for a route path.
func (r *Registry) Resolve(path string) (Descriptor, bool) {
	p, ok := PageFromPath(path)
	if !ok {
		return Descriptor{}, false
	}
	return r.Lookup(p)
}

// All returns every descriptor in page order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, 0, len(Pages()))
	for _, p := range Pages() {
		if d, ok := r.Lookup(p); ok {
			out = append(out, d)
		}
	}
	return out
}

// Validate checks that every colour in the table parses and that every
// palette's weights sum to one.
func (r *Registry) Validate() error {
	for _, d := range r.All() {
		colors := []string{d.ClearColor}
		if d.Fog != nil {
			colors = append(colors, d.Fog.Color)
		}
		if d.Grid != nil {
			colors = append(colors, d.Grid.CenterColor, d.Grid.LineColor)
		}
		if d.Spotlight != nil {
			colors = append(colors, d.Spotlight.Color)
		}
		var total float64
		for _, s := range d.Palette {
			colors = append(colors, s.Color)
			total += float64(s.Weight)
		}
		for _, c := range colors {
			if c == "" {
				continue
			}
			if _, err := colorful.Hex(c); err != nil {
				return fmt.Errorf("scene %s: color %q: %w", d.Page, c, err)
			}
		}
		if len(d.Palette) > 0 && math.Abs(total-1) > 1e-3 {
			return fmt.Errorf("scene %s: palette weights sum to %.3f", d.Page, total)
		}
	}
	return nil
}

func home() Descriptor {
	cam := defaultCamera
	cam.Position = Vec3{X: 5, Y: 5, Z: 15}
	return Descriptor{
		Page:          PageHome,
		Kind:          KindStarfield,
		ParticleCount: 10000,
		Spread:        2000,
		Depth:         2000,
		ParticleSize:  0.1,
		Palette:       []Swatch{{Color: "#ffffff", Weight: 1}},
		Camera:        cam,
		Orbit:         &Orbit{AutoRotateSpeed: 0.5, DampingFactor: 0.05},
		Ships: []Ship{
			{Position: Vec3{X: -10, Y: 0, Z: -5}, Heading: 0.2},
			{Position: Vec3{X: 10, Y: 2, Z: -8}, Heading: -0.3},
			{Position: Vec3{X: 0, Y: -3, Z: -12}, Heading: 0.1},
		},
		Motion: Motion{Step: 0.001, SpinY: 0.0002, ObjectSpin: 0.001, BobAmplitude: 1},
	}
}

func about() Descriptor {
	return Descriptor{
		Page:   PageAbout,
		Kind:   KindGrid,
		Fog:    &Fog{Color: "#000000", Density: 0.035},
		Camera: defaultCamera,
		Grid: &Grid{
			Size:        200,
			Divisions:   50,
			CenterColor: "#00fff9",
			LineColor:   "#00fff9",
			Height:      -5,
		},
		Motion: Motion{Step: 0.01, ScrollPerTick: 0.02},
	}
}

func events() Descriptor {
	return Descriptor{
		Page:          PageEvents,
		Kind:          KindParticles,
		ParticleCount: 5000,
		Spread:        100,
		ParticleSize:  0.1,
		Palette:       []Swatch{{Color: "#ff2e88", Weight: 1}},
		Camera:        defaultCamera,
		Motion:        Motion{Step: 0.01, SpinY: 0.0003},
	}
}

func sponsors() Descriptor {
	cam := defaultCamera
	cam.Position = Vec3{Z: 15}
	return Descriptor{
		Page:          PageSponsors,
		Kind:          KindCyberspace,
		ParticleCount: 5000,
		Spread:        100,
		ParticleSize:  2,
		Palette: []Swatch{
			{Color: "#ff3380", Weight: 0.3},
			{Color: "#00ffe6", Weight: 0.3},
			{Color: "#8000ff", Weight: 0.4},
		},
		ClearColor: "#0a001f",
		Fog:        &Fog{Color: "#0a001f", Density: 0.0015},
		Camera:     cam,
		Orbit:      &Orbit{AutoRotateSpeed: 2, DampingFactor: 0.05},
		Grid: &Grid{
			Size:        200,
			Divisions:   50,
			CenterColor: "#ff1493",
			LineColor:   "#00ffff",
			Height:      -30,
		},
		Spotlight: &Spotlight{
			Color:     "#ff1493",
			Intensity: 1,
			Position:  Vec3{X: -50, Y: 50, Z: -50},
			Angle:     0.3,
		},
		Motion: Motion{
			Step:        0.01,
			SpinX:       0.0002,
			SpinY:       0.0005,
			WobbleAmp:   0.5,
			SweepAmp:    50,
			OpacityBase: 0.5,
			OpacityAmp:  0.2,
		},
	}
}

func register() Descriptor {
	cam := defaultCamera
	cam.Position = Vec3{Z: 12}
	return Descriptor{
		Page:    PageRegister,
		Kind:    KindHelix,
		Palette: []Swatch{{Color: "#00fff9", Weight: 1}},
		Camera:  cam,
		Helix: &Helix{
			Pairs:        50,
			Radius:       3,
			Pitch:        0.3,
			SphereRadius: 0.2,
			Offset:       -10,
		},
		Motion: Motion{Step: 0.01, SpinY: 0.005, BobAmplitude: 0.5},
	}
}
