package main

import (
	"context"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/ecosim/config"
	"github.com/pthm-cable/ecosim/game"
	"github.com/pthm-cable/ecosim/telemetry"
)

// FitnessEvaluator runs headless simulations and scores them.
type FitnessEvaluator struct {
	params *ParamVector
	seeds  []int64
	base   *config.Config

	mu          sync.Mutex
	bestFitness float64
	bestResult  *telemetry.SimulationResult
	last        evaluation
}

// evaluation summarizes one Evaluate call.
type evaluation struct {
	health     float64 // mean overall health
	durationMS float64 // mean run length
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, seeds []int64, base *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		seeds:       seeds,
		base:        base,
		bestFitness: math.Inf(1),
	}
}

// Evaluate computes fitness for raw parameter values (lower = better): the
// negated mean overall health over all seeds.
func (fe *FitnessEvaluator) Evaluate(ctx context.Context, x []float64) float64 {
	settings := fe.base.Settings
	fe.params.Apply(&settings, x)

	results := make([]*telemetry.SimulationResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = fe.runSimulation(ctx, settings, seed)
		}()
	}
	wg.Wait()

	health := make([]float64, len(results))
	durations := make([]float64, len(results))
	best := results[0]
	for i, r := range results {
		health[i] = r.Health.Overall
		durations[i] = r.DurationMS
		if r.Health.Overall > best.Health.Overall {
			best = r
		}
	}
	fitness := -stat.Mean(health, nil)

	fe.mu.Lock()
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
		fe.bestResult = best
	}
	fe.last = evaluation{health: -fitness, durationMS: stat.Mean(durations, nil)}
	fe.mu.Unlock()

	return fitness
}

// Last returns the summary of the most recent evaluation.
func (fe *FitnessEvaluator) Last() evaluation {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// BestResult returns the best single run seen so far.
func (fe *FitnessEvaluator) BestResult() *telemetry.SimulationResult {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestResult
}

// runSimulation plays one run to its end on simulated time.
func (fe *FitnessEvaluator) runSimulation(ctx context.Context, settings config.Settings, seed int64) *telemetry.SimulationResult {
	opts := game.OptionsFromConfig(fe.base, seed)
	opts.Settings = settings
	opts.LogStats = false

	clock := &game.SteppedTime{}
	opts.Time = clock

	g := game.New(opts)
	return game.NewRunner(g, math.MaxInt).RunFast(ctx, clock)
}
