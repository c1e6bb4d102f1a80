package render

import (
	"fmt"
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/Vasu1712/zenith-backend/internal/scene"
)

var (
	shipBody    = RGB{0.2, 0.4, 1}
	shipWings   = RGB{1, 0.2, 0.4}
	shipCockpit = RGB{0.4, 0.2, 1}
	white       = RGB{1, 1, 1}
)

const shipScale = 0.5

func buildStarfield(s *Surface, d scene.Descriptor, rng *rand.Rand) (animateFunc, error) {
	palette, err := parsePalette(d.Palette)
	if err != nil {
		return nil, err
	}

	s.addLight(&Light{Name: "ambient", Kind: LightAmbient, Color: white, Intensity: 0.5})
	s.addLight(&Light{
		Name:      "sun",
		Kind:      LightDirectional,
		Color:     white,
		Intensity: 1,
		Position:  Vec3{X: 5, Y: 5, Z: 5},
	})

	pos := make([]float32, d.ParticleCount*3)
	for i := 0; i < d.ParticleCount; i++ {
		pos[i*3] = (rng.Float32() - 0.5) * d.Spread
		pos[i*3+1] = (rng.Float32() - 0.5) * d.Spread
		pos[i*3+2] = -rng.Float32() * d.Depth
	}
	stars := s.addPoints(&Points{
		Name:      "stars",
		Positions: pos,
		Color:     palette[0].color,
		Size:      d.ParticleSize,
		Transform: identity(),
	})

	ships := make([]*Mesh, 0, len(d.Ships))
	for i, sh := range d.Ships {
		ship := spaceship(fmt.Sprintf("ship-%d", i))
		ship.Transform.Position = vec(sh.Position)
		ship.Transform.Rotation.Y = sh.Heading
		ships = append(ships, s.addMesh(ship))
	}

	s.Orbit = newOrbit(d.Orbit, s.Camera)

	m := d.Motion
	return func(s *Surface, n uint64) {
		stars.Transform.Rotation.Y = angleAt(n, m.SpinY)

		phase := angleAt(n, m.Step)
		spin := angleAt(n, m.ObjectSpin)
		for i, ship := range ships {
			base := d.Ships[i]
			ship.Transform.Position.Y = oscillate(base.Position.Y, m.BobAmplitude, phase+float32(i))
			ship.Transform.Rotation.Y = wrapAngle(base.Heading + spin)
		}
	}, nil
}

// spaceship assembles the stylised ship: a cone body, box wings and a
// sphere cockpit.
func spaceship(name string) *Mesh {
	body := &Mesh{
		Name:      name + "/body",
		Shape:     ShapeCone,
		Params:    []float32{1, 4, 8},
		Color:     shipBody,
		Shininess: 100,
		Transform: identity(),
	}
	body.Transform.Rotation.X = math32.Pi / 2

	wings := &Mesh{
		Name:      name + "/wings",
		Shape:     ShapeBox,
		Params:    []float32{4, 0.1, 1},
		Color:     shipWings,
		Shininess: 100,
		Transform: identity(),
	}
	wings.Transform.Position.Z = -1

	cockpit := &Mesh{
		Name:      name + "/cockpit",
		Shape:     ShapeSphere,
		Params:    []float32{0.5, 16, 16},
		Color:     shipCockpit,
		Shininess: 100,
		Transform: identity(),
	}
	cockpit.Transform.Position.Z = 1

	group := &Mesh{
		Name:      name,
		Shape:     ShapeGroup,
		Transform: identity(),
		Children:  []*Mesh{body, wings, cockpit},
	}
	group.Transform.Scale = Vec3{X: shipScale, Y: shipScale, Z: shipScale}
	return group
}
