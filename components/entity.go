package components

import (
	"cmp"
	"slices"
)

// Entity is a flat, copyable view of one entity's components. The engine
// hands these out as read-only snapshots; Vitals and Drive are nil for
// anything that is not an animal.
type Entity struct {
	ID       uint64   `json:"id"`
	Kind     Kind     `json:"type"`
	Category Category `json:"category"`
	Size     Size     `json:"size"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Facing   Facing   `json:"direction"`

	Age    float64 `json:"age"`
	MaxAge float64 `json:"max_age,omitempty"`
	Mortal bool    `json:"-"`

	FoodValue   int  `json:"food_value,omitempty"`
	CanWalkOver bool `json:"can_walk_over"`
	Renewable   bool `json:"renewable,omitempty"`

	Vitals *Vitals `json:"vitals,omitempty"`
	Drive  *Drive  `json:"drive,omitempty"`
}

// Edge returns the bounding box edge length.
func (e *Entity) Edge() float64 { return e.Size.Edge() }

// Center returns the center of the bounding box.
func (e *Entity) Center() (float64, float64) {
	half := e.Size.Edge() / 2
	return e.X + half, e.Y + half
}

// IsAnimal reports whether the entity is an animal.
func (e *Entity) IsAnimal() bool { return e.Kind.IsAnimal() }

// Expired reports whether the entity has outlived its maximum age.
func (e *Entity) Expired() bool { return e.Mortal && e.Age > e.MaxAge }

// Clone returns a deep copy, so the copy's Vitals and Drive can be modified
// without touching the original.
func (e Entity) Clone() Entity {
	if e.Vitals != nil {
		v := *e.Vitals
		e.Vitals = &v
	}
	if e.Drive != nil {
		d := *e.Drive
		e.Drive = &d
	}
	return e
}

// Assemble builds a view from stored components. vitals and drive may be nil.
func Assemble(id *Identity, body *Body, life *Lifespan, mat *Material, vitals *Vitals, drive *Drive) Entity {
	e := Entity{
		ID:          id.ID,
		Kind:        id.Kind,
		Category:    id.Kind.Category(),
		Size:        body.Size,
		X:           body.X,
		Y:           body.Y,
		Facing:      body.Facing,
		Age:         life.Age,
		MaxAge:      life.MaxAge,
		Mortal:      life.Mortal,
		FoodValue:   mat.FoodValue,
		CanWalkOver: mat.CanWalkOver,
		Renewable:   mat.Renewable,
	}
	if vitals != nil {
		v := *vitals
		e.Vitals = &v
	}
	if drive != nil {
		d := *drive
		e.Drive = &d
	}
	return e
}

// Parts splits a view back into its stored components.
func (e *Entity) Parts() (Identity, Body, Lifespan, Material) {
	return Identity{ID: e.ID, Kind: e.Kind},
		Body{X: e.X, Y: e.Y, Size: e.Size, Facing: e.Facing},
		Lifespan{Age: e.Age, MaxAge: e.MaxAge, Mortal: e.Mortal},
		Material{FoodValue: e.FoodValue, CanWalkOver: e.CanWalkOver, Renewable: e.Renewable}
}

// SortForDrawing returns a copy ordered lakes first, then by ascending y.
func SortForDrawing(entities []Entity) []Entity {
	out := slices.Clone(entities)
	slices.SortStableFunc(out, func(a, b Entity) int {
		aLake, bLake := a.Kind == KindLake, b.Kind == KindLake
		switch {
		case aLake && !bLake:
			return -1
		case !aLake && bLake:
			return 1
		}
		return cmp.Compare(a.Y, b.Y)
	})
	return out
}
