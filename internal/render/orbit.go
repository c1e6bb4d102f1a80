package render

import "github.com/Vasu1712/zenith-backend/internal/scene"

// framesPerSecond is the refresh rate auto-rotate speeds are defined
// against: a speed of 2 completes one orbit every 30 seconds at 60fps.
const framesPerSecond = 60

// Orbit auto-rotates the camera around its target at a fixed radius.
type Orbit struct {
	AutoRotateSpeed float32 `json:"autoRotateSpeed"`
	DampingFactor   float32 `json:"dampingFactor"`
	EnableZoom      bool    `json:"enableZoom"`

	offset Vec3
}

func newOrbit(o *scene.Orbit, cam Camera) *Orbit {
	if o == nil {
		return nil
	}
	return &Orbit{
		AutoRotateSpeed: o.AutoRotateSpeed,
		DampingFactor:   o.DampingFactor,
		EnableZoom:      o.EnableZoom,
		offset: Vec3{
			X: cam.Position.X - cam.Target.X,
			Y: cam.Position.Y - cam.Target.Y,
			Z: cam.Position.Z - cam.Target.Z,
		},
	}
}

// Angle returns the orbit angle after n frames, wrapped to [0, 2π).
func (o *Orbit) Angle(n uint64) float32 {
	return angleAt(n, twoPi/framesPerSecond/framesPerSecond*o.AutoRotateSpeed)
}

// update places the camera on the orbit for frame n.
func (o *Orbit) update(cam *Camera, n uint64) {
	p := o.offset.rotateY(o.Angle(n))
	cam.Position = Vec3{
		X: cam.Target.X + p.X,
		Y: cam.Target.Y + p.Y,
		Z: cam.Target.Z + p.Z,
	}
}
