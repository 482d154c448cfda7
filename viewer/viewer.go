// Package viewer draws a running simulation in a raylib window.
package viewer

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ecosim/camera"
	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/config"
	"github.com/pthm-cable/ecosim/game"
	"github.com/pthm-cable/ecosim/systems"
	"github.com/pthm-cable/ecosim/telemetry"
	"github.com/pthm-cable/ecosim/ui"
)

const hudHeight = 80

// Viewer reads frames from a Runner and sends it the user's commands. The
// runner ticks on its own goroutine; the viewer only draws.
type Viewer struct {
	runner *game.Runner
	width  float32 // window size in pixels
	height float32
	fps    int
	cam    *camera.Camera
	ui     *ui.Renderer

	resultHidden bool
}

// New creates a viewer for runner.
func New(runner *game.Runner, cfg *config.Config) *Viewer {
	w, h := cfg.Derived.ScreenW32, cfg.Derived.ScreenH32
	return &Viewer{
		runner: runner,
		width:  w,
		height: h,
		fps:    cfg.Screen.TargetFPS,
		cam:    camera.New(w, h-hudHeight, systems.WorldSize, systems.WorldSize),
		ui:     ui.NewRenderer(),
	}
}

// Run opens the window and draws until it is closed. Closing the window
// ends a run that is still going.
func (v *Viewer) Run() {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(v.width), int32(v.height), "Ecosystem Simulator")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(v.fps))

	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			v.resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
		}
		frame := v.runner.Frame()
		v.handleInput(frame)

		rl.BeginDrawing()
		rl.ClearBackground(background)
		if frame != nil {
			v.drawWorld(frame)
			v.drawHUD(frame)
			if res := v.runner.Result(); res != nil && !v.resultHidden {
				v.drawResult(res)
			}
		} else {
			rl.DrawText("starting...", 10, 10, 20, rl.RayWhite)
		}
		rl.EndDrawing()
	}

	v.runner.Stop("")
	<-v.runner.Done()
}

// resize follows the window size. The world view keeps everything below the HUD.
func (v *Viewer) resize(w, h float32) {
	v.width, v.height = w, max(h, hudHeight+1)
	v.cam.Resize(v.width, v.height-hudHeight)
}

func (v *Viewer) handleInput(frame *game.Frame) {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.cam.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		v.cam.Pan(-d.X, -d.Y)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		v.cam.Reset()
	}
	if rl.IsKeyPressed(rl.KeySpace) && frame != nil && frame.Running {
		v.togglePause(frame)
	}
}

func (v *Viewer) togglePause(frame *game.Frame) {
	if frame.Paused {
		v.runner.Resume()
	} else {
		v.runner.Pause()
	}
}

// worldPoint maps the mouse into world space. ok is false outside the map.
func (v *Viewer) worldPoint() (x, y float64, ok bool) {
	m := rl.GetMousePosition()
	if m.Y < hudHeight {
		return 0, 0, false
	}
	wx, wy := v.cam.ScreenToWorld(m.X, m.Y-hudHeight)
	return float64(wx), float64(wy), true
}

func (v *Viewer) drawWorld(frame *game.Frame) {
	rl.BeginScissorMode(0, hudHeight, int32(v.width), int32(v.height)-hudHeight)
	defer rl.EndScissorMode()

	for i := range frame.Entities {
		e := &frame.Entities[i]
		edge := float32(e.Edge())
		if !v.cam.IsVisible(float32(e.X), float32(e.Y), edge) {
			continue
		}
		sx, sy := v.cam.WorldToScreen(float32(e.X), float32(e.Y))
		rect := rl.Rectangle{X: sx, Y: sy + hudHeight, Width: edge * v.cam.Zoom, Height: edge * v.cam.Zoom}
		color := kindColor(e.Kind)

		switch {
		case e.Kind == components.KindLake:
			rl.DrawRectangleRounded(rect, 0.5, 8, color)
		case e.IsAnimal():
			rl.DrawRectangleRec(rect, color)
			rl.DrawRectangleLinesEx(rect, 1, rl.Black)
			drawFacing(rect, e.Facing)
		default:
			rl.DrawRectangleRec(rect, color)
		}
	}

	if wx, wy, ok := v.worldPoint(); ok {
		if e, found := hitTest(frame.Entities, wx, wy); found {
			v.drawTooltip(&e)
		}
	}
}

// drawFacing marks the side the animal looks towards.
func drawFacing(rect rl.Rectangle, f components.Facing) {
	eye := rect.Width / 6
	x := rect.X + eye
	if f == components.FacingRight {
		x = rect.X + rect.Width - 2*eye
	}
	rl.DrawRectangleRec(rl.Rectangle{X: x, Y: rect.Y + eye, Width: eye, Height: eye}, rl.Black)
}

func (v *Viewer) drawTooltip(e *components.Entity) {
	fields := components.Describe(e)
	t := v.ui.Theme
	width := int32(220)
	height := t.Padding*2 + t.LineHeight + 2 + v.ui.FieldsHeight(fields)
	if e.Vitals != nil {
		height += 2 * (t.LineHeight + 2)
	}

	m := rl.GetMousePosition()
	x := min(int32(m.X)+16, int32(v.width)-width)
	y := min(int32(m.Y)+16, int32(v.height)-height)

	v.ui.DrawPanel(x, y, width, height)
	cy := v.ui.DrawSectionHeader(x+t.Padding, y+t.Padding, e.Kind.String())
	cy = v.ui.DrawFields(x+t.Padding, cy, fields, width-2*t.Padding)

	if vt := e.Vitals; vt != nil {
		inner := width - 2*t.Padding
		cy = v.ui.DrawThresholdBar(x+t.Padding, cy, "Starving", fmt.Sprintf("%.0f", vt.Hunger),
			vt.Hunger, 0, systems.StarvationThreshold, inner)
		v.ui.DrawThresholdBar(x+t.Padding, cy, "Parched", fmt.Sprintf("%.0f", vt.Thirst),
			vt.Thirst, 0, systems.DehydrationThreshold, inner)
	}
}

func (v *Viewer) drawHUD(frame *game.Frame) {
	w := int32(v.width)
	v.ui.DrawPanel(0, 0, w, hudHeight)

	s := frame.Stats
	rl.DrawText(fmt.Sprintf("Plants %d   Animals %d   Carnivores %d   Herbivores %d",
		s.Plants, s.Animals, s.Carnivores, s.Herbivores), 10, 10, 16, rl.RayWhite)
	rl.DrawText(fmt.Sprintf("Insectivores %d   Scavengers %d   Insects %d",
		s.Insectivores, s.Scavengers, s.Insects), 10, 32, 16, rl.RayWhite)

	status := formatElapsed(frame.ElapsedMS)
	if frame.Paused {
		status += "  PAUSED"
	}
	rl.DrawText(fmt.Sprintf("%s   tick %d   fps %d", status, frame.Tick, rl.GetFPS()), 10, 54, 14, rl.Yellow)

	if !frame.Running {
		return
	}
	label := "Pause"
	if frame.Paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: float32(w - 250), Y: 22, Width: 110, Height: 32}, label) {
		v.togglePause(frame)
	}
	if gui.Button(rl.Rectangle{X: float32(w - 130), Y: 22, Width: 120, Height: 32}, "End Simulation") {
		v.runner.Stop("")
	}
}

func (v *Viewer) drawResult(res *telemetry.SimulationResult) {
	const width, height = 440, 360
	t := v.ui.Theme
	x := (int32(v.width) - width) / 2
	y := (int32(v.height) - height) / 2
	v.ui.DrawPanel(x, y, width, height)

	lx := x + t.Padding*2
	ly := v.ui.DrawSectionHeader(lx, y+t.Padding*2, "Simulation Results")
	ly = v.ui.DrawLabelValue(lx, ly, "Ended", string(res.EndReason))
	ly = v.ui.DrawLabelValue(lx, ly, "Duration", formatElapsed(res.DurationMS))
	ly = v.ui.DrawLabelValue(lx, ly, "Ticks", fmt.Sprint(res.Ticks))
	ly += t.LineHeight / 2

	h := res.Health
	ly = v.ui.DrawSectionHeader(lx, ly, "Ecosystem Health")
	ly = v.ui.DrawLabelValue(lx, ly, "Status", string(h.Status))
	ly = v.ui.DrawLabelValue(lx, ly, "Overall", fmt.Sprintf("%.0f%%", h.Overall))
	ly = v.ui.DrawLabelValue(lx, ly, "Balance", fmt.Sprintf("%.0f%%", h.BalanceScore))
	ly = v.ui.DrawLabelValue(lx, ly, "Survival", fmt.Sprintf("%.0f%%", h.SurvivalScore))
	ly = v.ui.DrawLabelValue(lx, ly, "Growth", fmt.Sprintf("%+.0f%%", h.GrowthRate))
	ly += t.LineHeight / 2

	m, f := res.MaxPopulations, res.FinalStats
	ly = v.ui.DrawSectionHeader(lx, ly, "Populations (max / final)")
	ly = v.ui.DrawLabelValue(lx, ly, "Animals", fmt.Sprintf("%d / %d", m.Animals, f.Animals))
	ly = v.ui.DrawLabelValue(lx, ly, "Carnivores", fmt.Sprintf("%d / %d", m.Carnivores, f.Carnivores))
	ly = v.ui.DrawLabelValue(lx, ly, "Herbivores", fmt.Sprintf("%d / %d", m.Herbivores, f.Herbivores))
	v.ui.DrawLabelValue(lx, ly, "Plants", fmt.Sprintf("%d / %d", m.Plants, f.Plants))

	if gui.Button(rl.Rectangle{X: float32(x + width - 110), Y: float32(y + height - 46), Width: 90, Height: 30}, "Close") {
		v.resultHidden = true
	}
}

// hitTest returns the topmost entity under (x, y). entities is in draw
// order, so the last match wins.
func hitTest(entities []components.Entity, x, y float64) (components.Entity, bool) {
	for i := len(entities) - 1; i >= 0; i-- {
		e := entities[i]
		edge := e.Edge()
		if x >= e.X && x <= e.X+edge && y >= e.Y && y <= e.Y+edge {
			return e, true
		}
	}
	return components.Entity{}, false
}

// formatElapsed renders ms as m:ss.
func formatElapsed(ms float64) string {
	sec := int(ms / 1000)
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}
