package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for range 5 {
		pc.StartTick()
		pc.StartPhase(PhaseAdvance)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseCommit)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTick <= 0 {
		t.Error("expected positive average tick duration")
	}
	if stats.PhaseAvg[PhaseAdvance] <= 0 {
		t.Error("expected advance phase to be tracked")
	}
	if stats.PhaseAvg[PhaseCommit] < 200*time.Microsecond {
		t.Errorf("commit phase = %v, want at least the sleep time", stats.PhaseAvg[PhaseCommit])
	}
	if stats.PhaseAvg[PhaseSpawn] != 0 {
		t.Error("untouched phase should stay at zero")
	}
	if stats.MinTick > stats.AvgTick || stats.AvgTick > stats.MaxTick {
		t.Errorf("expected min <= avg <= max, got %v %v %v", stats.MinTick, stats.AvgTick, stats.MaxTick)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for range 10 {
		pc.StartTick()
		pc.StartPhase(PhaseStats)
		pc.EndTick()
	}

	if pc.count != 5 {
		t.Errorf("expected 5 samples in window, got %d", pc.count)
	}
	if stats := pc.Stats(); stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollector_Empty(t *testing.T) {
	stats := NewPerfCollector(0).Stats()
	if stats.AvgTick != 0 || stats.TicksPerSecond != 0 {
		t.Errorf("empty collector should report zeros, got %+v", stats)
	}
}

func TestPerfStatsCSV(t *testing.T) {
	var s PerfStats
	s.AvgTick = 250 * time.Microsecond
	s.PhasePct[PhaseReproduction] = 12.5

	row := s.ToCSV(42)
	if row.Tick != 42 || row.AvgTickUS != 250 || row.ReproductionPct != 12.5 {
		t.Errorf("unexpected row %+v", row)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseReproduction.String() != "reproduction" {
		t.Errorf("got %q", PhaseReproduction.String())
	}
	if Phase(200).String() != "unknown" {
		t.Errorf("got %q", Phase(200).String())
	}
}
