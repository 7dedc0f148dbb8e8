package snake

import (
	"fmt"
	"time"

	"github.com/vovakirdan/drift-snake/internal/config"
	"github.com/vovakirdan/drift-snake/internal/core"
)

// hudHeight is the number of rows above the board.
const hudHeight = 1

// FrameObserver is told about every frame the simulation actually steps.
type FrameObserver func(in core.InputFrame, dt time.Duration)

// Game adapts the simulation to a frame-driven platform. It owns the clock
// and the screen layout; all rules live in Step.
type Game struct {
	rules  config.SnakeConfig
	state  *State
	events []Event
	now    time.Duration
	onStep FrameObserver

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a game with the given rules. Call Reset before stepping.
func New(rules config.SnakeConfig) *Game {
	return &Game{rules: rules}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Drift Snake"
}

// Rules returns the rules the game was created with.
func (g *Game) Rules() config.SnakeConfig {
	return g.rules
}

// Reset starts a fresh run seeded from cfg.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.state = NewState(g.rules, cfg.Seed)
	g.events = nil
	g.now = 0
	g.SetScreenSize(cfg.ScreenW, cfg.ScreenH)
}

// Observe registers fn to receive every stepped frame, e.g. for recording.
// fn gets its own copy of the frame and may keep it.
func (g *Game) Observe(fn FrameObserver) {
	g.onStep = fn
}

// SetScreenSize updates the layout without touching the run.
func (g *Game) SetScreenSize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < g.rules.Board.Width+2 || h < g.rules.Board.Height+2+hudHeight
}

// MinScreenSize returns the smallest terminal that fits the board.
func (g *Game) MinScreenSize() (w, h int) {
	return g.rules.Board.Width + 2, g.rules.Board.Height + 2 + hudHeight
}

// Step advances the game by one frame of length dt.
// The clock is frozen while the window is too small to show the board.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	g.events = g.events[:0]
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if g.onStep != nil {
		g.onStep(in.Clone(), dt)
	}
	g.now += dt
	g.events = append(g.events, Step(g.state, InputFromFrame(in), Frame{Now: g.now, Elapsed: dt})...)
	return core.StepResult{State: g.State(), Events: len(g.events)}
}

// Events returns the events emitted by the last Step.
// The slice is reused on the next Step.
func (g *Game) Events() []Event {
	return g.events
}

// Snapshot returns the current board for rendering or verification.
func (g *Game) Snapshot() Snapshot {
	return g.state.Snapshot()
}

// Autopilot returns an input frame steering the snake towards the food.
func (g *Game) Autopilot() core.InputFrame {
	f := core.NewInputFrame()
	if g.state.Run == GameOver {
		f.Set(core.ActionRestart)
		return f
	}
	if d := Steer(g.state); d != DirNone {
		f.Set(d.Action())
	}
	return f
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:       g.state.Score,
		GameOver:    g.state.Run == GameOver,
		Paused:      g.state.Run == Paused,
		PowerActive: g.state.PowerActive,
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		w, h := g.MinScreenSize()
		mid := dst.Height() / 2
		dst.DrawTextCentered(mid-1, "Window too small", core.ColorYellow)
		dst.DrawTextCentered(mid+1, fmt.Sprintf("Need %dx%d", w, h), core.ColorGray)
		return
	}

	snap := g.state.Snapshot()
	g.renderHUD(dst, snap)

	boardW, boardH := g.rules.Board.Width, g.rules.Board.Height
	offX := (dst.Width() - boardW - 2) / 2
	offY := hudHeight

	// Border colour doubles as the boost signal
	border := core.ColorBorder
	if snap.PowerActive {
		border = core.ColorBorderBoost
	}
	dst.DrawBox(core.NewRect(offX, offY, boardW+2, boardH+2), border)

	cell := func(p core.Point, r rune, c core.Color) {
		dst.SetColored(offX+1+p.X, offY+1+p.Y, r, c)
	}

	for _, o := range snap.Obstacles {
		cell(o.Cell, '#', core.ColorObstacle)
	}
	for _, p := range snap.PowerUps {
		cell(p, '+', core.ColorPowerUp)
	}
	if snap.HasFood {
		cell(snap.Food, '*', core.ColorFood)
	}
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			cell(snap.Snake[i], 'O', core.ColorSnakeHead)
		} else {
			cell(snap.Snake[i], 'o', core.ColorSnakeBody)
		}
	}

	switch snap.Run {
	case GameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score %d - Space to restart", snap.Score))
	case Paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the status line above the board.
func (g *Game) renderHUD(dst *core.Screen, snap Snapshot) {
	hud := fmt.Sprintf(" Score: %d  Length: %d  Speed: %dms", snap.Score, len(snap.Snake), snap.Interval.Milliseconds())
	dst.DrawText(0, 0, hud)
	if snap.PowerActive {
		boost := fmt.Sprintf("BOOST %.1fs ", snap.PowerRemaining.Seconds())
		dst.DrawTextColored(dst.Width()-len(boost), 0, boost, core.ColorPowerUp)
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	boxH := 5
	r := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)
	dst.FillRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, core.ColorWhite)
	dst.DrawTextCentered(r.Y+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(r.Y+3, line2, core.ColorDefault)
}
