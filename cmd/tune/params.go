package main

import (
	"github.com/pthm-cable/ecosim/config"
)

// ParamSpec defines a single tunable setting.
type ParamSpec struct {
	Name string
	Min  float64
	Max  float64

	field func(*config.Settings) *float64
}

// ParamVector holds the set of all tunable settings.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable settings. The bounds
// are the settings' accepted ranges.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "grass_spawn_rate", Min: 0.1, Max: 1, field: func(s *config.Settings) *float64 { return &s.GrassSpawnRate }},
			{Name: "insect_spawn_rate", Min: 0.1, Max: 1, field: func(s *config.Settings) *float64 { return &s.InsectSpawnRate }},
			{Name: "grass_freshness", Min: 5000, Max: 30000, field: func(s *config.Settings) *float64 { return &s.GrassFreshness }},
			{Name: "insect_lifespan", Min: 3000, Max: 20000, field: func(s *config.Settings) *float64 { return &s.InsectLifespan }},
			{Name: "carcass_freshness", Min: 5000, Max: 20000, field: func(s *config.Settings) *float64 { return &s.CarcassFreshness }},
			{Name: "mushroom_chance", Min: 0, Max: 1, field: func(s *config.Settings) *float64 { return &s.MushroomChance }},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// FromSettings reads the parameter values out of s.
func (pv *ParamVector) FromSettings(s config.Settings) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = *spec.field(&s)
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// Apply writes clamped parameter values into s.
func (pv *ParamVector) Apply(s *config.Settings, values []float64) {
	for i, v := range pv.Clamp(values) {
		*pv.Specs[i].field(s) = v
	}
}
