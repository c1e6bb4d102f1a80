package render

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/Vasu1712/zenith-backend/internal/scene"
)

// animateFunc applies a scene's periodic transforms for frame n. Every
// transform is a pure function of n so motion never accumulates error.
type animateFunc func(s *Surface, n uint64)

// recipe builds a surface's contents for one scene kind and returns the
// matching animation.
type recipe func(s *Surface, d scene.Descriptor, rng *rand.Rand) (animateFunc, error)

var recipes = map[scene.Kind]recipe{
	scene.KindStarfield:  buildStarfield,
	scene.KindGrid:       buildGrid,
	scene.KindParticles:  buildParticles,
	scene.KindCyberspace: buildCyberspace,
	scene.KindHelix:      buildHelix,
}

// ErrUnknownKind is returned when a descriptor names no registered recipe.
var ErrUnknownKind = errors.New("unknown scene kind")

func recipeFor(k scene.Kind) (recipe, error) {
	r, ok := recipes[k]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, k)
	}
	return r, nil
}

type swatch struct {
	color  RGB
	weight float32
}

func parsePalette(p []scene.Swatch) ([]swatch, error) {
	if len(p) == 0 {
		return nil, errors.New("empty palette")
	}
	out := make([]swatch, 0, len(p))
	for _, s := range p {
		c, err := parseColor(s.Color)
		if err != nil {
			return nil, err
		}
		out = append(out, swatch{color: c, weight: s.Weight})
	}
	return out, nil
}

// pick chooses a colour with probability proportional to its weight.
func pick(rng *rand.Rand, palette []swatch) RGB {
	r := rng.Float32()
	var acc float32
	for _, s := range palette {
		acc += s.weight
		if r < acc {
			return s.color
		}
	}
	return palette[len(palette)-1].color
}

// cube fills count positions uniformly in a cube of the given edge length
// centred on the origin.
func cube(rng *rand.Rand, count int, edge float32) []float32 {
	pos := make([]float32, count*3)
	for i := range pos {
		pos[i] = (rng.Float32() - 0.5) * edge
	}
	return pos
}

func applyFog(s *Surface, f *scene.Fog) error {
	if f == nil {
		return nil
	}
	c, err := parseColor(f.Color)
	if err != nil {
		return err
	}
	s.Fog = &Fog{Color: c, Density: f.Density}
	return nil
}

func newGrid(name string, g *scene.Grid) (*Grid, error) {
	center, err := parseColor(g.CenterColor)
	if err != nil {
		return nil, err
	}
	line, err := parseColor(g.LineColor)
	if err != nil {
		return nil, err
	}
	t := identity()
	t.Position.Y = g.Height
	return &Grid{
		Name:        name,
		Size:        g.Size,
		Divisions:   g.Divisions,
		CenterColor: center,
		LineColor:   line,
		Transform:   t,
	}, nil
}
