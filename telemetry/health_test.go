package telemetry

import (
	"math"
	"testing"
)

func TestAssess(t *testing.T) {
	balanced := SimulationStats{Plants: 40, Animals: 20, Carnivores: 4, Herbivores: 14, Insectivores: 2}

	tests := []struct {
		name       string
		final      SimulationStats
		maxima     SimulationStats
		initial    int
		durationMS float64
		want       HealthReport
	}{
		{
			name:       "healthy full run",
			final:      balanced,
			maxima:     SimulationStats{Animals: 20},
			initial:    10,
			durationMS: 600000,
			want: HealthReport{
				Status: StatusHealthy, Overall: 100,
				BalanceScore: 100, DurationScore: 100, SurvivalScore: 100,
				GrowthRate: 100, SurvivalRate: 100,
			},
		},
		{
			name:       "duration capped",
			final:      balanced,
			maxima:     SimulationStats{Animals: 20},
			initial:    20,
			durationMS: 900000,
			want: HealthReport{
				Status: StatusHealthy, Overall: 100,
				BalanceScore: 100, DurationScore: 100, SurvivalScore: 100,
				GrowthRate: 0, SurvivalRate: 100,
			},
		},
		{
			name:       "stable with too many plants",
			final:      SimulationStats{Plants: 300, Animals: 20, Carnivores: 4, Herbivores: 14, Insectivores: 2},
			maxima:     SimulationStats{Animals: 20},
			initial:    20,
			durationMS: 0,
			want: HealthReport{
				Status: StatusStable, Overall: 72,
				BalanceScore: 80, DurationScore: 0, SurvivalScore: 100,
				SurvivalRate: 100,
			},
		},
		{
			name:       "unstable",
			final:      SimulationStats{Plants: 5, Animals: 20, Carnivores: 10, Herbivores: 10},
			maxima:     SimulationStats{Animals: 40},
			initial:    0,
			durationMS: 300000,
			want: HealthReport{
				Status: StatusUnstable, Overall: 50,
				BalanceScore: 50, DurationScore: 50, SurvivalScore: 50,
				SurvivalRate: 50,
			},
		},
		{
			name:       "collapsed survival is critical",
			final:      SimulationStats{Plants: 4, Animals: 1, Herbivores: 1},
			maxima:     SimulationStats{Animals: 10},
			initial:    5,
			durationMS: 600000,
			want: HealthReport{
				Status: StatusCritical, Overall: 0.4*50 + 0.4*10 + 0.2*100,
				BalanceScore: 50, DurationScore: 100, SurvivalScore: 10,
				GrowthRate: 100, SurvivalRate: 10,
			},
		},
		{
			name:       "no animals",
			final:      SimulationStats{Plants: 12},
			maxima:     SimulationStats{},
			initial:    0,
			durationMS: 60000,
			want: HealthReport{
				Status: StatusCritical, Overall: 2,
				DurationScore: 10,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Assess(tt.final, tt.maxima, tt.initial, tt.durationMS)
			if got.Status != tt.want.Status {
				t.Errorf("status = %v, want %v", got.Status, tt.want.Status)
			}
			checks := []struct {
				field     string
				got, want float64
			}{
				{"overall", got.Overall, tt.want.Overall},
				{"balance", got.BalanceScore, tt.want.BalanceScore},
				{"duration", got.DurationScore, tt.want.DurationScore},
				{"survival", got.SurvivalScore, tt.want.SurvivalScore},
				{"growth", got.GrowthRate, tt.want.GrowthRate},
				{"survival rate", got.SurvivalRate, tt.want.SurvivalRate},
			}
			for _, c := range checks {
				if math.Abs(c.got-c.want) > 1e-9 {
					t.Errorf("%s = %v, want %v", c.field, c.got, c.want)
				}
			}
		})
	}
}

func TestBalanceIgnoresScavengers(t *testing.T) {
	base := SimulationStats{Plants: 40, Carnivores: 4, Herbivores: 14, Insectivores: 2}
	withScavengers := base
	withScavengers.Scavengers = 50

	if BalanceScore(base) != BalanceScore(withScavengers) {
		t.Error("scavengers changed the balance score")
	}
}
