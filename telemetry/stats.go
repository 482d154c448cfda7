package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/ecosim/components"
)

// SimulationStats holds population counts for one committed tick. It is
// derived from the entity set and never mutated on its own.
type SimulationStats struct {
	Plants       int `csv:"plants" json:"plants"`
	Animals      int `csv:"animals" json:"animals"`
	Carnivores   int `csv:"carnivores" json:"carnivores"`
	Herbivores   int `csv:"herbivores" json:"herbivores"`
	Insectivores int `csv:"insectivores" json:"insectivores"`
	Scavengers   int `csv:"scavengers" json:"scavengers"`
	Insects      int `csv:"insects" json:"insects"`
}

// Tally counts the entities by stats category. Insects count as animals.
func Tally(entities []components.Entity) SimulationStats {
	var s SimulationStats
	for i := range entities {
		e := &entities[i]
		switch e.Category {
		case components.CategoryPlant:
			s.Plants++
		case components.CategoryAnimal:
			s.Animals++
		}
		switch {
		case e.Kind.IsCarnivore():
			s.Carnivores++
		case e.Kind.IsHerbivore():
			s.Herbivores++
		case e.Kind == components.KindInsectivore:
			s.Insectivores++
		case e.Kind == components.KindScavenger:
			s.Scavengers++
		case e.Kind == components.KindInsect:
			s.Insects++
		}
	}
	return s
}

// Series names one stats column and how to read it.
type Series struct {
	Name string
	Get  func(SimulationStats) int
}

// AllSeries lists every stats column in output order.
var AllSeries = []Series{
	{"plants", func(s SimulationStats) int { return s.Plants }},
	{"animals", func(s SimulationStats) int { return s.Animals }},
	{"carnivores", func(s SimulationStats) int { return s.Carnivores }},
	{"herbivores", func(s SimulationStats) int { return s.Herbivores }},
	{"insectivores", func(s SimulationStats) int { return s.Insectivores }},
	{"scavengers", func(s SimulationStats) int { return s.Scavengers }},
	{"insects", func(s SimulationStats) int { return s.Insects }},
}

// Maxima returns the per-category maximum over history. With an empty
// history the final stats stand in for the maxima.
func Maxima(history []SimulationStats, final SimulationStats) SimulationStats {
	if len(history) == 0 {
		return final
	}
	m := history[0]
	for _, s := range history[1:] {
		m.Plants = max(m.Plants, s.Plants)
		m.Animals = max(m.Animals, s.Animals)
		m.Carnivores = max(m.Carnivores, s.Carnivores)
		m.Herbivores = max(m.Herbivores, s.Herbivores)
		m.Insectivores = max(m.Insectivores, s.Insectivores)
		m.Scavengers = max(m.Scavengers, s.Scavengers)
		m.Insects = max(m.Insects, s.Insects)
	}
	return m
}

// LogValue implements slog.LogValuer for structured logging.
func (s SimulationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("plants", s.Plants),
		slog.Int("animals", s.Animals),
		slog.Int("carnivores", s.Carnivores),
		slog.Int("herbivores", s.Herbivores),
		slog.Int("insectivores", s.Insectivores),
		slog.Int("scavengers", s.Scavengers),
		slog.Int("insects", s.Insects),
	)
}
