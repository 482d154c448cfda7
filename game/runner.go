package game

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/systems"
	"github.com/pthm-cable/ecosim/telemetry"
)

// Frame is a read-only picture of a committed tick, safe to share across
// goroutines.
type Frame struct {
	RunID     string                    `json:"run_id"`
	Tick      int                       `json:"tick"`
	ElapsedMS float64                   `json:"elapsed_ms"`
	Running   bool                      `json:"running"`
	Paused    bool                      `json:"paused"`
	Stats     telemetry.SimulationStats `json:"stats"`
	Entities  []components.Entity       `json:"entities"` // lakes first, then by y
}

// Observer receives frames and the final result from a Runner. Calls come
// from the runner's goroutine and must not block.
type Observer interface {
	OnFrame(*Frame)
	OnResult(*telemetry.SimulationResult)
}

// tickPeriod is the wall-clock pace of a real-time run.
const tickPeriod = time.Second / systems.TickRate

type commandKind uint8

const (
	cmdPause commandKind = iota
	cmdResume
	cmdStop
)

type command struct {
	kind   commandKind
	reason telemetry.EndReason
}

// Runner drives a Game from its own goroutine. Other goroutines control it
// through Pause, Resume and Stop and read it through Frame and Result.
type Runner struct {
	game      *Game
	stride    int
	observers []Observer

	commands chan command
	done     chan struct{}
	frame    atomic.Pointer[Frame]
	result   atomic.Pointer[telemetry.SimulationResult]
}

// NewRunner creates a runner publishing a frame every stride ticks.
func NewRunner(g *Game, stride int) *Runner {
	return &Runner{
		game:     g,
		stride:   max(stride, 1),
		commands: make(chan command, 8),
		done:     make(chan struct{}),
	}
}

// Observe registers an observer. Must be called before Run.
func (r *Runner) Observe(o Observer) {
	r.observers = append(r.observers, o)
}

// Run starts the game and ticks it at TickRate until it ends or ctx is
// cancelled, which counts as a manual stop.
func (r *Runner) Run(ctx context.Context) *telemetry.SimulationResult {
	ticker := time.NewTicker(tickPeriod)
	defer ticker.Stop()
	return r.loop(ctx, ticker.C, nil)
}

// RunFast ticks as fast as possible, advancing clock by one tick interval
// per tick. The game must have been created with clock as its time source.
func (r *Runner) RunFast(ctx context.Context, clock *SteppedTime) *telemetry.SimulationResult {
	return r.loop(ctx, nil, clock)
}

func (r *Runner) loop(ctx context.Context, pace <-chan time.Time, stepped *SteppedTime) *telemetry.SimulationResult {
	defer close(r.done)

	g := r.game
	g.Start()
	r.publish()

	for g.IsRunning() {
		if pace == nil && !g.IsPaused() {
			select {
			case <-ctx.Done():
				g.Stop("")
			case cmd := <-r.commands:
				r.apply(cmd)
			default:
				stepped.Advance(systems.TickInterval)
				r.step()
			}
			continue
		}

		// A nil pace blocks, so a paused fast run waits for a command.
		select {
		case <-ctx.Done():
			g.Stop("")
		case cmd := <-r.commands:
			r.apply(cmd)
		case <-pace:
			r.step()
		}
	}

	res := g.Result()
	r.result.Store(res)
	r.publish()
	for _, o := range r.observers {
		o.OnResult(res)
	}
	return res
}

func (r *Runner) step() {
	if r.game.Tick() && r.game.TickCount()%r.stride == 0 {
		r.publish()
	}
}

func (r *Runner) apply(cmd command) {
	switch cmd.kind {
	case cmdPause:
		r.game.Pause()
	case cmdResume:
		r.game.Resume()
	case cmdStop:
		r.game.Stop(cmd.reason)
		return
	}
	r.publish()
}

// publish stores a frame of the current state and passes it to observers.
func (r *Runner) publish() {
	g := r.game
	f := &Frame{
		RunID:     g.RunID(),
		Tick:      g.TickCount(),
		ElapsedMS: g.Elapsed(),
		Running:   g.IsRunning(),
		Paused:    g.IsPaused(),
		Stats:     g.Stats(),
		Entities:  g.Sorted(),
	}
	r.frame.Store(f)
	for _, o := range r.observers {
		o.OnFrame(f)
	}
}

func (r *Runner) send(cmd command) {
	select {
	case r.commands <- cmd:
	case <-r.done:
	}
}

// Pause asks the runner to pause the game.
func (r *Runner) Pause() { r.send(command{kind: cmdPause}) }

// Resume asks the runner to resume the game.
func (r *Runner) Resume() { r.send(command{kind: cmdResume}) }

// Stop asks the runner to end the game with reason ("" = manually ended).
func (r *Runner) Stop(reason telemetry.EndReason) {
	r.send(command{kind: cmdStop, reason: reason})
}

// Frame returns the latest published frame, or nil before the first.
func (r *Runner) Frame() *Frame { return r.frame.Load() }

// Result returns the run result once the run has ended.
func (r *Runner) Result() *telemetry.SimulationResult { return r.result.Load() }

// Done is closed when the run loop exits.
func (r *Runner) Done() <-chan struct{} { return r.done }
