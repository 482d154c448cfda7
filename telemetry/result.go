package telemetry

import (
	"time"

	"github.com/pthm-cable/ecosim/config"
)

// EndReason says why a run terminated.
type EndReason string

const (
	ReasonAnimalsExtinct    EndReason = "all animals extinct"
	ReasonTimeLimit         EndReason = "time limit reached"
	ReasonHerbivoresExtinct EndReason = "all herbivores extinct"
	ReasonCarnivoresExtinct EndReason = "all carnivores extinct"
	ReasonManual            EndReason = "manually ended"
)

// SimulationResult is the record of a finished run. It is produced once and
// not modified afterwards.
type SimulationResult struct {
	RunID          string          `json:"run_id"`
	Seed           int64           `json:"seed"`
	StartTime      time.Time       `json:"start_time"`
	EndTime        time.Time       `json:"end_time"`
	DurationMS     float64         `json:"duration_ms"` // simulated, paused time excluded
	Ticks          int             `json:"ticks"`
	EndReason      EndReason       `json:"end_reason"`
	FinalStats     SimulationStats `json:"final_stats"`
	MaxPopulations SimulationStats `json:"max_populations"`
	InitialAnimals int             `json:"initial_animals"`
	Settings       config.Settings `json:"settings"`

	Health             HealthReport             `json:"health"`
	Summary            map[string]SeriesSummary `json:"summary,omitempty"`
	PlacementFallbacks int                      `json:"placement_fallbacks"`
	Bookmarks          []Bookmark               `json:"bookmarks,omitempty"`
}

// Complete derives the maxima, health report and population summary from
// the run's stats history.
func (r *SimulationResult) Complete(history []SimulationStats) {
	r.MaxPopulations = Maxima(history, r.FinalStats)
	r.Health = Assess(r.FinalStats, r.MaxPopulations, r.InitialAnimals, r.DurationMS)
	r.Summary = Summarize(history)
}

// Duration returns the simulated run length.
func (r *SimulationResult) Duration() time.Duration {
	return time.Duration(r.DurationMS * float64(time.Millisecond))
}
