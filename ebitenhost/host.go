// Package ebitenhost runs a motion.Orchestrator inside an Ebitengine game
// loop. It maps mouse wheel, cursor, touch, and navigation keys onto the
// orchestrator's host input, ticks it once per Update, and offers helpers
// to paint elements with their animated transforms.
package ebitenhost

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/motion"
)

// RunConfig configures the window and input mapping for Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int

	// ClearColor fills the screen before Draw.
	ClearColor Color
	// WheelStep is the scroll distance in pixels per wheel notch. Zero means 60.
	WheelStep float64
	// GlideFrequency and GlideDamping shape PageUp/PageDown/Home/End glides.
	// Zero means 6 and 1 (critically damped).
	GlideFrequency float64
	GlideDamping   float64
	// ShowFPS draws the current FPS and TPS in the top-left corner.
	ShowFPS bool
	// ScreenshotDir receives PNGs queued with Screenshot or by a script's
	// screenshot steps. Zero means "screenshots".
	ScreenshotDir string

	// Update runs after input mapping and before the orchestrator ticks.
	Update func() error
	// Draw paints the frame. It only runs on frames where something moved.
	Draw func(screen *ebiten.Image)
}

// Host is the running game. It is passed to RunConfig callbacks through
// Current while Run is active.
type Host struct {
	g *game
}

// Screenshot queues a labeled capture of the next painted frame. It is
// installed as the orchestrator's capture handler while Run is active.
func (h *Host) Screenshot(label string) {
	h.g.screenshotQueue = append(h.g.screenshotQueue, label)
	h.g.dirty = true
}

var current *Host

// Current returns the host started by Run, or nil.
func Current() *Host {
	return current
}

type game struct {
	orch *motion.Orchestrator
	cfg  RunConfig

	dirty           bool
	pointerInside   bool
	pressed         bool
	touches         []ebiten.TouchID
	screenshotQueue []string

	fps        *ebiten.Image
	fpsElapsed float64
}

// Run opens a window and drives o until the window closes or a callback
// returns an error. The viewport is resized to the window.
func Run(o *motion.Orchestrator, cfg RunConfig) error {
	if o == nil {
		return fmt.Errorf("ebitenhost: nil orchestrator")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("ebitenhost: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.WheelStep == 0 {
		cfg.WheelStep = 60
	}
	if cfg.GlideFrequency == 0 {
		cfg.GlideFrequency = 6
	}
	if cfg.GlideDamping == 0 {
		cfg.GlideDamping = 1
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}

	g := &game{orch: o, cfg: cfg, dirty: true}
	current = &Host{g: g}
	o.SetCaptureFunc(current.Screenshot)
	defer func() {
		o.SetCaptureFunc(nil)
		current = nil
	}()

	// Paint one more frame whenever the clock goes idle so the settled
	// state is what stays on screen.
	clock := o.Clock()
	prev := clock.OnScheduleChange
	clock.OnScheduleChange = func(scheduled bool) {
		g.dirty = true
		if prev != nil {
			prev(scheduled)
		}
	}
	defer func() { clock.OnScheduleChange = prev }()

	o.SetViewportSize(float64(cfg.Width), float64(cfg.Height))

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetScreenClearedEveryFrame(false)
	return ebiten.RunGame(g)
}

func (g *game) Update() error {
	if g.mapInput() {
		g.dirty = true
	}
	if g.cfg.Update != nil {
		if err := g.cfg.Update(); err != nil {
			return err
		}
	}
	clock := g.orch.Clock()
	if clock.Scheduled() || g.orch.PendingInjections() > 0 {
		g.dirty = true
	}
	g.orch.Update(1.0 / float64(ebiten.TPS()))
	if g.cfg.ShowFPS {
		g.fpsElapsed += 1.0 / float64(ebiten.TPS())
	}
	return nil
}

// mapInput feeds wheel, pointer, buttons, touch, and keys to the orchestrator. It
// reports whether anything was delivered.
func (g *game) mapInput() bool {
	o := g.orch
	changed := false

	if _, wy := ebiten.Wheel(); wy != 0 {
		o.ScrollBy(0, -wy*g.cfg.WheelStep)
		changed = true
	}

	// Touch takes priority over the cursor: the first finger is the pointer.
	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	var px, py int
	inside := false
	if len(g.touches) > 0 {
		px, py = ebiten.TouchPosition(g.touches[0])
		inside = true
	} else if ebiten.IsFocused() {
		px, py = ebiten.CursorPosition()
		inside = image.Pt(px, py).In(image.Rect(0, 0, g.cfg.Width, g.cfg.Height))
	}
	if inside {
		o.PointerMove(float64(px), float64(py))
		changed = true
	} else if g.pointerInside {
		o.PointerLeave()
		changed = true
	}
	g.pointerInside = inside

	pressed := inside && (len(g.touches) > 0 || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	if pressed != g.pressed {
		o.PointerPress(pressed)
		g.pressed = pressed
		changed = true
	}

	if vp := o.Viewport(); vp != nil {
		target, ok := vp.ScrollY, false
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
			target, ok = vp.ScrollY+vp.Height*0.9, true
		case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
			target, ok = vp.ScrollY-vp.Height*0.9, true
		case inpututil.IsKeyJustPressed(ebiten.KeyHome):
			target, ok = 0, true
		case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
			target, ok = vp.MaxScrollY(), true
		}
		if ok {
			o.GlideTo(target, g.cfg.GlideFrequency, g.cfg.GlideDamping)
			changed = true
		}
	}
	return changed
}

func (g *game) Draw(screen *ebiten.Image) {
	if !g.dirty && !(g.cfg.ShowFPS && g.fpsElapsed >= 0.5) {
		return
	}
	g.dirty = false
	screen.Fill(g.cfg.ClearColor.rgba())
	if g.cfg.Draw != nil {
		g.cfg.Draw(screen)
	}
	if g.cfg.ShowFPS {
		g.drawFPS(screen)
	}
	g.flushScreenshots(screen)
}

// drawFPS refreshes the FPS readout every ~0.5 seconds and draws it on top.
func (g *game) drawFPS(screen *ebiten.Image) {
	if g.fps == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		g.fps = ebiten.NewImage(100, 32)
		g.fpsElapsed = 0.5
	}
	if g.fpsElapsed >= 0.5 {
		g.fpsElapsed = 0
		g.fps.Clear()
		g.fps.Fill(Color{0, 0, 0, 0.5}.rgba())
		ebitenutil.DebugPrint(g.fps, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	screen.DrawImage(g.fps, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.cfg.Width || outsideHeight != g.cfg.Height {
		g.cfg.Width, g.cfg.Height = outsideWidth, outsideHeight
		g.orch.SetViewportSize(float64(outsideWidth), float64(outsideHeight))
		g.dirty = true
	}
	return outsideWidth, outsideHeight
}
