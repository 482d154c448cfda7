package telemetry

import "log/slog"

// FullRunMS is the run length that earns a full duration score.
const FullRunMS = 600000.0

// HealthStatus grades an ecosystem at the end of a run.
type HealthStatus string

const (
	StatusHealthy  HealthStatus = "healthy"
	StatusStable   HealthStatus = "stable"
	StatusUnstable HealthStatus = "unstable"
	StatusCritical HealthStatus = "critical"
)

// HealthReport scores how balanced and resilient a finished run was. All
// scores are percentages.
type HealthReport struct {
	Status        HealthStatus `json:"status"`
	Overall       float64      `json:"overall"`
	BalanceScore  float64      `json:"balance_score"`
	DurationScore float64      `json:"duration_score"`
	SurvivalScore float64      `json:"survival_score"`
	GrowthRate    float64      `json:"growth_rate"`
	SurvivalRate  float64      `json:"survival_rate"`
}

// band is an acceptable share range and the penalty for leaving it.
type band struct {
	lo, hi  float64
	penalty float64
}

var (
	carnivoreBand   = band{0.1, 0.3, 20}
	herbivoreBand   = band{0.5, 0.9, 20}
	insectivoreBand = band{0.05, 0.2, 10}
	plantRatioBand  = band{1, 10, 20}
)

func (b band) apply(v float64) float64 {
	if v < b.lo || v > b.hi {
		return b.penalty
	}
	return 0
}

// BalanceScore rates the final species mix. Scavengers do not take part.
func BalanceScore(final SimulationStats) float64 {
	total := float64(final.Carnivores + final.Herbivores + final.Insectivores + final.Insects)
	if total == 0 {
		return 0
	}

	score := 100.0
	score -= carnivoreBand.apply(float64(final.Carnivores) / total)
	score -= herbivoreBand.apply(float64(final.Herbivores) / total)
	score -= insectivoreBand.apply(float64(final.Insectivores) / total)
	score -= plantRatioBand.apply(float64(final.Plants) / total)
	return max(0, score)
}

// Assess grades a finished run.
func Assess(final, maxima SimulationStats, initialAnimals int, durationMS float64) HealthReport {
	r := HealthReport{
		BalanceScore:  BalanceScore(final),
		DurationScore: min(100, durationMS/FullRunMS*100),
		SurvivalScore: float64(final.Animals) / float64(max(maxima.Animals, 1)) * 100,
	}
	r.Overall = 0.4*r.BalanceScore + 0.4*r.SurvivalScore + 0.2*r.DurationScore

	switch {
	case r.BalanceScore < 30 || r.SurvivalScore < 20:
		r.Status = StatusCritical
	case r.Overall >= 85:
		r.Status = StatusHealthy
	case r.Overall >= 65:
		r.Status = StatusStable
	case r.Overall >= 40:
		r.Status = StatusUnstable
	default:
		r.Status = StatusCritical
	}

	if initialAnimals > 0 {
		r.GrowthRate = float64(maxima.Animals-initialAnimals) / float64(initialAnimals) * 100
	}
	if maxima.Animals > 0 {
		r.SurvivalRate = float64(final.Animals) / float64(maxima.Animals) * 100
	}
	return r
}

// LogValue implements slog.LogValuer for structured logging.
func (r HealthReport) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("status", string(r.Status)),
		slog.Float64("overall", r.Overall),
		slog.Float64("balance_score", r.BalanceScore),
		slog.Float64("duration_score", r.DurationScore),
		slog.Float64("survival_score", r.SurvivalScore),
		slog.Float64("growth_rate", r.GrowthRate),
		slog.Float64("survival_rate", r.SurvivalRate),
	)
}
