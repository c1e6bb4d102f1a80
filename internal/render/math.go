package render

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/Vasu1712/zenith-backend/internal/scene"
)

const twoPi = 2 * math32.Pi

// Vec3 is a position, scale or euler rotation in scene units.
type Vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

func vec(v scene.Vec3) Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// Length returns the euclidean length of v.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// rotateY rotates v about the Y axis by angle radians.
func (v Vec3) rotateY(angle float32) Vec3 {
	s, c := math32.Sincos(angle)
	return Vec3{
		X: v.X*c + v.Z*s,
		Y: v.Y,
		Z: -v.X*s + v.Z*c,
	}
}

// wrapAngle folds a into [0, 2π).
func wrapAngle(a float32) float32 {
	a = math32.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	if a >= twoPi {
		a = 0
	}
	return a
}

// angleAt returns n·rate wrapped to [0, 2π). The product is taken in
// float64 so long-running loops keep their precision.
func angleAt(n uint64, rate float32) float32 {
	return wrapAngle(float32(math.Mod(float64(n)*float64(rate), 2*math.Pi)))
}

// oscillate is base + amp·sin(phase); its distance from base never exceeds |amp|.
func oscillate(base, amp, phase float32) float32 {
	return base + amp*math32.Sin(phase)
}

// RGB is a linear colour triple in [0,1].
type RGB [3]float32

func parseColor(hex string) (RGB, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	c = c.Clamped()
	return RGB{float32(c.R), float32(c.G), float32(c.B)}, nil
}
