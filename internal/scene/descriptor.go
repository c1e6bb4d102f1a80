package scene

// Kind is the construction recipe a descriptor selects.
type Kind string

const (
	KindStarfield  Kind = "starfield"
	KindGrid       Kind = "grid"
	KindParticles  Kind = "particles"
	KindCyberspace Kind = "cyberspace"
	KindHelix      Kind = "helix"
)

// Vec3 is a position in scene units.
type Vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Camera holds the perspective camera's initial placement.
type Camera struct {
	FOV      float32 `json:"fov"`
	Near     float32 `json:"near"`
	Far      float32 `json:"far"`
	Position Vec3    `json:"position"`
}

// Orbit configures the auto-rotating camera-follow controller.
type Orbit struct {
	AutoRotateSpeed float32 `json:"autoRotateSpeed"`
	DampingFactor   float32 `json:"dampingFactor"`
	EnableZoom      bool    `json:"enableZoom"`
}

// Fog is exponential-squared fog.
type Fog struct {
	Color   string  `json:"color"`
	Density float32 `json:"density"`
}

// Grid is a flat line grid laid out on the XZ plane.
type Grid struct {
	Size        float32 `json:"size"`
	Divisions   int     `json:"divisions"`
	CenterColor string  `json:"centerColor"`
	LineColor   string  `json:"lineColor"`
	Height      float32 `json:"height"`
}

// Swatch is one palette entry with the probability of a particle picking it.
// Weights of a palette sum to 1.
type Swatch struct {
	Color  string  `json:"color"`
	Weight float32 `json:"weight"`
}

// Ship places one stylised spaceship in the home scene.
type Ship struct {
	Position Vec3    `json:"position"`
	Heading  float32 `json:"heading"`
}

// Spotlight is a coloured cone light.
type Spotlight struct {
	Color     string  `json:"color"`
	Intensity float32 `json:"intensity"`
	Position  Vec3    `json:"position"`
	Angle     float32 `json:"angle"`
}

// Helix describes the register page's double helix of spheres.
type Helix struct {
	Pairs        int     `json:"pairs"`
	Radius       float32 `json:"radius"`
	Pitch        float32 `json:"pitch"`
	SphereRadius float32 `json:"sphereRadius"`
	Offset       float32 `json:"offset"`
}

// Motion holds the periodic-animation parameters. Step converts frame
// counts into shader time; spins are radians per frame; amplitudes bound
// every oscillating offset.
type Motion struct {
	Step          float32 `json:"step"`
	SpinX         float32 `json:"spinX"`
	SpinY         float32 `json:"spinY"`
	ObjectSpin    float32 `json:"objectSpin"`
	BobAmplitude  float32 `json:"bobAmplitude"`
	WobbleAmp     float32 `json:"wobbleAmplitude"`
	SweepAmp      float32 `json:"sweepAmplitude"`
	OpacityBase   float32 `json:"opacityBase"`
	OpacityAmp    float32 `json:"opacityAmplitude"`
	ScrollPerTick float32 `json:"scrollPerTick"`
}

// Descriptor is the immutable recipe for one page's background.
type Descriptor struct {
	Page          Page       `json:"page"`
	Kind          Kind       `json:"kind"`
	ParticleCount int        `json:"particleCount"`
	Spread        float32    `json:"spread"`
	Depth         float32    `json:"depth,omitempty"`
	ParticleSize  float32    `json:"particleSize"`
	Palette       []Swatch   `json:"palette"`
	ClearColor    string     `json:"clearColor,omitempty"`
	Fog           *Fog       `json:"fog,omitempty"`
	Camera        Camera     `json:"camera"`
	Orbit         *Orbit     `json:"orbit,omitempty"`
	Grid          *Grid      `json:"grid,omitempty"`
	Ships         []Ship     `json:"ships,omitempty"`
	Spotlight     *Spotlight `json:"spotlight,omitempty"`
	Helix         *Helix     `json:"helix,omitempty"`
	Motion        Motion     `json:"motion"`
}

// Clone returns a deep copy so callers cannot mutate the registry's table.
func (d Descriptor) Clone() Descriptor {
	out := d
	out.Palette = append([]Swatch(nil), d.Palette...)
	out.Ships = append([]Ship(nil), d.Ships...)
	if d.Fog != nil {
		fog := *d.Fog
		out.Fog = &fog
	}
	if d.Orbit != nil {
		orbit := *d.Orbit
		out.Orbit = &orbit
	}
	if d.Grid != nil {
		grid := *d.Grid
		out.Grid = &grid
	}
	if d.Spotlight != nil {
		spot := *d.Spotlight
		out.Spotlight = &spot
	}
	if d.Helix != nil {
		helix := *d.Helix
		out.Helix = &helix
	}
	return out
}
