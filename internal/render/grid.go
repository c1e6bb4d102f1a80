package render

import (
	"errors"
	"math"
	"math/rand/v2"

	"github.com/Vasu1712/zenith-backend/internal/scene"
)

func buildGrid(s *Surface, d scene.Descriptor, _ *rand.Rand) (animateFunc, error) {
	if d.Grid == nil {
		return nil, errors.New("grid scene without grid")
	}
	if err := applyFog(s, d.Fog); err != nil {
		return nil, err
	}
	grid, err := newGrid("grid", d.Grid)
	if err != nil {
		return nil, err
	}
	s.addGrid(grid)

	cell := float64(d.Grid.Size)
	if d.Grid.Divisions > 0 {
		cell /= float64(d.Grid.Divisions)
	}
	scroll := float64(d.Motion.ScrollPerTick)
	return func(s *Surface, n uint64) {
		// The grid repeats every cell, so scrolling modulo one cell is seamless.
		grid.Transform.Position.Z = float32(math.Mod(float64(n)*scroll, cell))
	}, nil
}
