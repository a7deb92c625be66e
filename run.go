package kamilo

// run.go wires an Engine, a gfx.EbitenDevice, and a gfx.DrawList into an
// ebiten.Game so a host application can hand control to [ebiten.RunGame]
// without building the glue itself. Grounded on the teacher's scene.go
// (Run/gameShell: window setup, ebiten.RunGame, the Update/Draw/Layout
// delegation shape) generalized from a single fixed Scene driving a
// Scene.Update/Scene.Draw pair to an Engine driving its own phase-ordered
// Tick/RenderBuild/RenderFlush/Present split.

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/kazikikaziki/kamilo/gfx"
)

// RunConfig configures [Run]'s window and game loop, mirroring the
// teacher's own RunConfig (scene.go).
type RunConfig struct {
	// Title sets the window title. Ignored on platforms without one.
	Title string
	// Width and Height set the window size in device-independent pixels.
	// Zero defaults to 640x480.
	Width, Height int
	// TickFlags are passed to every Engine.Tick call (spec 4.F's
	// dont-care-enable / dont-care-paused / enter-only tick flags).
	TickFlags TickFlags
}

// Run creates an ebiten.Game around e, installs screen as device's render
// target before every Draw, and flushes list to device once per frame
// between RenderBuild and RenderFlush. It returns when ebiten.RunGame
// returns, which happens either on a host-level error or once e.PostExit
// has been observed.
func Run(e *Engine, device *gfx.EbitenDevice, list *gfx.DrawList, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w == 0 {
		w = 640
	}
	if h == 0 {
		h = 480
	}
	ebiten.SetWindowSize(w, h)
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	g := &gameShell{engine: e, device: device, list: list, w: w, h: h, flags: cfg.TickFlags}
	return ebiten.RunGame(g)
}

// gameShell implements ebiten.Game by delegating to an Engine. Grounded on
// the teacher's identically-named gameShell (scene.go).
type gameShell struct {
	engine *Engine
	device *gfx.EbitenDevice
	list   *gfx.DrawList
	w, h   int
	flags  TickFlags
}

// Update checks the exit latch first: once e.PostExit has been called it
// returns ebiten.Termination without ticking, which stops ebiten.RunGame
// from inside Update. Otherwise it advances the engine by one tick.
func (g *gameShell) Update() error {
	if g.engine.ExitRequested() {
		return ebiten.Termination
	}
	dt := 1.0 / float64(ebiten.TPS())
	g.engine.Tick(dt, g.flags)
	return nil
}

// Draw binds screen as the frame's render target (and as the draw-list's
// screen source, so screen-texture shaders can snapshot it), walks the
// tree to build the draw-list, flushes it to the device, and runs the
// deferred-destruction sweep (spec 4.F steps 5-8).
func (g *gameShell) Draw(screen *ebiten.Image) {
	g.device.SetScreen(screen)
	g.device.BeginScene()
	g.list.Reset()
	g.list.SetScreenSource(g.device.ScreenTexture())
	g.engine.RenderBuild()
	g.list.Draw(g.device)
	g.engine.RenderFlush()
	g.device.EndScene()
	g.device.Present()
	g.engine.Present()
}

// Layout reports the fixed logical screen size chosen at Run time.
func (g *gameShell) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w, g.h
}
