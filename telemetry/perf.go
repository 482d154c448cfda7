package telemetry

import (
	"log/slog"
	"time"
)

// Phase identifies one step of a simulation tick.
type Phase uint8

const (
	PhaseSpawn        Phase = iota // periodic grass and insect spawning
	PhaseAdvance                   // aging, lifecycle, vitals and behavior
	PhaseCommit                    // applying staged removals and additions
	PhaseReproduction              // resolving mating pairs
	PhaseStats                     // stats, history and telemetry
	numPhases
)

var phaseNames = [numPhases]string{"spawn", "advance", "commit", "reproduction", "stats"}

func (p Phase) String() string {
	if p < numPhases {
		return phaseNames[p]
	}
	return "unknown"
}

// perfSample holds timing data for a single tick.
type perfSample struct {
	tick   time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector tracks tick timing over a rolling window of ticks.
type PerfCollector struct {
	samples []perfSample
	next    int
	count   int

	current    perfSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{samples: make([]perfSample, windowSize)}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = perfSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase, p.phaseStart, p.inPhase = phase, now, true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
		p.inPhase = false
	}
}

// EndTick finishes timing the current tick and stores the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.current.tick = now.Sub(p.tickStart)

	p.samples[p.next] = p.current
	p.next = (p.next + 1) % len(p.samples)
	p.count = min(p.count+1, len(p.samples))
}

// PerfStats holds timing averaged over the collector's window.
type PerfStats struct {
	AvgTick        time.Duration
	MinTick        time.Duration
	MaxTick        time.Duration
	PhaseAvg       [numPhases]time.Duration
	PhasePct       [numPhases]float64
	TicksPerSecond float64
}

// Stats aggregates the samples currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	if p.count == 0 {
		return s
	}

	var total time.Duration
	var phaseSum [numPhases]time.Duration
	for i := range p.count {
		sample := &p.samples[i]
		total += sample.tick
		if i == 0 || sample.tick < s.MinTick {
			s.MinTick = sample.tick
		}
		s.MaxTick = max(s.MaxTick, sample.tick)
		for ph, d := range sample.phases {
			phaseSum[ph] += d
		}
	}

	n := time.Duration(p.count)
	s.AvgTick = total / n
	for ph := range phaseSum {
		s.PhaseAvg[ph] = phaseSum[ph] / n
		if s.AvgTick > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / float64(s.AvgTick) * 100
		}
	}
	if s.AvgTick > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTick)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("min_tick_us", s.MinTick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	for ph := range numPhases {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is the perf.csv row.
type PerfStatsCSV struct {
	Tick            int     `csv:"tick"`
	AvgTickUS       int64   `csv:"avg_tick_us"`
	MinTickUS       int64   `csv:"min_tick_us"`
	MaxTickUS       int64   `csv:"max_tick_us"`
	TicksPerSec     float64 `csv:"ticks_per_sec"`
	SpawnPct        float64 `csv:"spawn_pct"`
	AdvancePct      float64 `csv:"advance_pct"`
	CommitPct       float64 `csv:"commit_pct"`
	ReproductionPct float64 `csv:"reproduction_pct"`
	StatsPct        float64 `csv:"stats_pct"`
}

// ToCSV flattens the stats for CSV export.
func (s PerfStats) ToCSV(tick int) PerfStatsCSV {
	return PerfStatsCSV{
		Tick:            tick,
		AvgTickUS:       s.AvgTick.Microseconds(),
		MinTickUS:       s.MinTick.Microseconds(),
		MaxTickUS:       s.MaxTick.Microseconds(),
		TicksPerSec:     s.TicksPerSecond,
		SpawnPct:        s.PhasePct[PhaseSpawn],
		AdvancePct:      s.PhasePct[PhaseAdvance],
		CommitPct:       s.PhasePct[PhaseCommit],
		ReproductionPct: s.PhasePct[PhaseReproduction],
		StatsPct:        s.PhasePct[PhaseStats],
	}
}
