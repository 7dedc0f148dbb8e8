package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/drift-snake/internal/core"
	"github.com/vovakirdan/drift-snake/internal/games/snake"
	"github.com/vovakirdan/drift-snake/internal/replay"
	"github.com/vovakirdan/drift-snake/internal/storage"
)

// footerHeight is the number of rows reserved for the help line.
const footerHeight = 1

// Options configures a play session.
type Options struct {
	Runtime core.RuntimeConfig
	Store   *storage.Store // Optional; required when Record is set
	Record  bool
	Logger  *log.Logger
}

// Model is the Bubble Tea model for a play session.
type Model struct {
	game       *snake.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	recorder   *replay.Recorder
	store      *storage.Store
	logger     *log.Logger
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *snake.Game, opts Options) Model {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-footerHeight, 0)),
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		store:      opts.Store,
		logger:     logger,
	}
	m.help.Width = cfg.ScreenW

	// The game must exist before the first tick, so reset here rather than in Init
	m.game.Reset(core.RuntimeConfig{
		ScreenW:  cfg.ScreenW,
		ScreenH:  cfg.ScreenH - footerHeight,
		TickRate: cfg.TickRate,
		Seed:     cfg.Seed,
	})
	if opts.Record && opts.Store != nil {
		m.recorder = replay.NewRecorder(game.Rules(), cfg.Seed)
		m.game.Observe(m.recorder.Record)
	}
	m.gameState = m.game.State()

	logger.Info("run started", "game", game.Title(), "seed", cfg.Seed, "record", m.recorder != nil)
	return m
}

// Init names the terminal window and starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(m.game.Title()),
		tickCmd(m.config.TickRate),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey records actions for the next frame.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize keeps the run going and only moves the layout.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	h := max(msg.Height-footerHeight, 0)
	m.screen.Resize(msg.Width, h)
	m.game.SetScreenSize(msg.Width, h)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick runs one simulation frame with the real elapsed time.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameDelta(m.lastTick, now, m.config.TickRate)
	m.lastTick = now

	result := m.game.Step(m.inputFrame, dt)
	m.gameState = result.State
	m.logEvents()

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// logEvents reports run lifecycle events from the last frame.
func (m Model) logEvents() {
	for _, e := range m.game.Events() {
		switch ev := e.(type) {
		case snake.GameEnded:
			m.logger.Info("game over", "score", ev.Score, "cause", ev.Cause)
		case snake.Restarted:
			m.logger.Info("run restarted")
		case snake.PowerUpCollected:
			m.logger.Debug("power-up collected", "cell", ev.Cell, "score", ev.Score)
		case snake.PowerUpExpired:
			m.logger.Debug("power-up expired")
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	footer := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys))
	return RenderScreen(m.screen) + "\n" + footer
}

// finish seals and stores the recording, if one is running.
func (m Model) finish() (*replay.Recording, error) {
	if m.recorder == nil || m.recorder.Len() == 0 {
		return nil, nil
	}
	rec := m.recorder.Finish(m.game.Snapshot())
	if err := m.store.SaveRecording(rec); err != nil {
		return nil, err
	}
	m.logger.Info("recording saved", "id", rec.ID, "frames", len(rec.Frames), "score", rec.Score)
	return rec, nil
}

// Run starts the Bubble Tea program and returns the saved recording, if any.
func Run(game *snake.Game, opts Options) (*replay.Recording, error) {
	model := NewModel(game, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := final.(Model)
	if !ok {
		return nil, nil
	}
	return m.finish()
}
