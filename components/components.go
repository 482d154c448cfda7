// Package components defines ECS components for the simulation.
package components

// Facing is the horizontal direction an entity looks towards.
type Facing uint8

const (
	FacingLeft Facing = iota
	FacingRight
)

func (f Facing) String() string {
	if f == FacingRight {
		return "right"
	}
	return "left"
}

// MarshalText implements encoding.TextMarshaler.
func (f Facing) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// Identity is attached to every entity.
type Identity struct {
	ID   uint64
	Kind Kind
}

// Body holds the top-left corner of the entity's box in world units.
type Body struct {
	X, Y   float64
	Size   Size
	Facing Facing
}

// Lifespan tracks aging. Entities with Mortal=false never expire.
type Lifespan struct {
	Age    float64 // ms
	MaxAge float64 // ms
	Mortal bool
}

// Material holds what other entities can do with this one.
type Material struct {
	FoodValue   int
	CanWalkOver bool
	Renewable   bool
}

// Vitals is attached to animals only.
type Vitals struct {
	Hunger float64 `json:"hunger"` // 0 = sated
	Thirst float64 `json:"thirst"` // 0 = hydrated
	Health float64 `json:"health"`
	Speed  float64 `json:"speed"`
}

// Drive holds an animal's movement goal and mating state. Attached to animals only.
type Drive struct {
	TargetX   float64 `json:"target_x"`
	TargetY   float64 `json:"target_y"`
	HasTarget bool    `json:"has_target"`

	LastReproduction float64 `json:"last_reproduction"` // elapsed ms
	HasReproduced    bool    `json:"has_reproduced"`

	// Set during a tick, consumed and cleared before it ends.
	ShouldReproduce bool   `json:"should_reproduce"`
	Partner         uint64 `json:"partner,omitempty"`
}

// SetTarget points the drive at (x, y).
func (d *Drive) SetTarget(x, y float64) {
	d.TargetX, d.TargetY, d.HasTarget = x, y, true
}

// ClearReproduction drops the transient mating flags.
func (d *Drive) ClearReproduction() {
	d.ShouldReproduce = false
	d.Partner = 0
}
