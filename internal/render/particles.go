package render

import (
	"errors"
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/Vasu1712/zenith-backend/internal/scene"
)

func buildParticles(s *Surface, d scene.Descriptor, rng *rand.Rand) (animateFunc, error) {
	palette, err := parsePalette(d.Palette)
	if err != nil {
		return nil, err
	}
	if err := applyFog(s, d.Fog); err != nil {
		return nil, err
	}

	cloud := s.addPoints(&Points{
		Name:      "particles",
		Positions: cube(rng, d.ParticleCount, d.Spread),
		Color:     palette[0].color,
		Size:      d.ParticleSize,
		Transform: identity(),
	})

	spin := d.Motion.SpinY
	return func(s *Surface, n uint64) {
		cloud.Transform.Rotation.Y = angleAt(n, spin)
	}, nil
}

// buildCyberspace is the sponsors scene: a multi-coloured additive particle
// cloud over a neon grid, lit by a sweeping spotlight, seen from an
// orbiting camera.
func buildCyberspace(s *Surface, d scene.Descriptor, rng *rand.Rand) (animateFunc, error) {
	if d.Grid == nil || d.Spotlight == nil {
		return nil, errors.New("cyberspace scene needs a grid and a spotlight")
	}
	palette, err := parsePalette(d.Palette)
	if err != nil {
		return nil, err
	}
	if d.ClearColor != "" {
		c, err := parseColor(d.ClearColor)
		if err != nil {
			return nil, err
		}
		s.ClearColor = &c
	}
	if err := applyFog(s, d.Fog); err != nil {
		return nil, err
	}

	sizes := make([]float32, d.ParticleCount)
	colors := make([]float32, d.ParticleCount*3)
	for i := range sizes {
		sizes[i] = rng.Float32() * d.ParticleSize
		c := pick(rng, palette)
		copy(colors[i*3:], c[:])
	}
	cloud := s.addPoints(&Points{
		Name:      "particles",
		Positions: cube(rng, d.ParticleCount, d.Spread),
		Colors:    colors,
		Sizes:     sizes,
		Size:      d.ParticleSize,
		Additive:  true,
		Transform: identity(),
	})

	grid, err := newGrid("grid", d.Grid)
	if err != nil {
		return nil, err
	}
	s.addGrid(grid)

	spotColor, err := parseColor(d.Spotlight.Color)
	if err != nil {
		return nil, err
	}
	spot := s.addLight(&Light{
		Name:      "spot",
		Kind:      LightSpot,
		Color:     spotColor,
		Intensity: d.Spotlight.Intensity,
		Position:  vec(d.Spotlight.Position),
		Angle:     d.Spotlight.Angle,
	})

	s.Orbit = newOrbit(d.Orbit, s.Camera)

	m := d.Motion
	return func(s *Surface, n uint64) {
		cloud.Transform.Rotation.Y = angleAt(n, m.SpinY)
		cloud.Transform.Rotation.X = angleAt(n, m.SpinX)
		spot.Position.X = m.SweepAmp * math32.Sin(angleAt(n, m.Step*0.5))
		grid.Transform.Opacity = oscillate(m.OpacityBase, m.OpacityAmp, angleAt(n, m.Step))
	}, nil
}
