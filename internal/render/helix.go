package render

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/Vasu1712/zenith-backend/internal/scene"
)

func buildHelix(s *Surface, d scene.Descriptor, _ *rand.Rand) (animateFunc, error) {
	h := d.Helix
	if h == nil {
		return nil, errors.New("helix scene without helix")
	}
	palette, err := parsePalette(d.Palette)
	if err != nil {
		return nil, err
	}

	group := &Mesh{
		Name:      "helix",
		Shape:     ShapeGroup,
		Transform: identity(),
		Children:  make([]*Mesh, 0, h.Pairs*2),
	}
	for i := 0; i < h.Pairs; i++ {
		t := float32(i) * h.Pitch
		for strand, phase := range []float32{0, math32.Pi} {
			sphere := &Mesh{
				Name:      fmt.Sprintf("helix/%d/%d", i, strand),
				Shape:     ShapeSphere,
				Params:    []float32{h.SphereRadius},
				Color:     palette[0].color,
				Transform: identity(),
			}
			sphere.Transform.Position = Vec3{
				X: math32.Cos(t+phase) * h.Radius,
				Y: t + h.Offset,
				Z: math32.Sin(t+phase) * h.Radius,
			}
			group.Children = append(group.Children, sphere)
		}
	}
	s.addMesh(group)

	m := d.Motion
	return func(s *Surface, n uint64) {
		group.Transform.Rotation.Y = angleAt(n, m.SpinY)
		group.Transform.Position.Y = oscillate(0, m.BobAmplitude, angleAt(n, m.Step))
	}, nil
}
