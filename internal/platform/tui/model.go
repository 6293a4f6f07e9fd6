package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// ScoreSaver stores finished games. *storage.Store implements it.
type ScoreSaver interface {
	SaveGame(rec storage.GameRecord) (string, error)
}

// Publisher receives live snapshots for spectators.
type Publisher interface {
	Publish(gameID, player string, snap snake.Snapshot)
	Finish(gameID string)
}

// ModelOption customizes a Model.
type ModelOption func(*Model)

// WithLogger sets the logger used for game events.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithPublisher streams snapshots of every game to p.
func WithPublisher(p Publisher) ModelOption {
	return func(m *Model) {
		m.publisher = p
	}
}

// WithClock sets the time source for game durations and the turn cooldown.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// Embedded makes Escape return to the enclosing menu instead of quitting.
func Embedded() ModelOption {
	return func(m *Model) {
		m.embedded = true
	}
}

// Model is the Bubble Tea model for one player's snake games.
type Model struct {
	engine    *snake.Engine
	painter   *snake.Painter
	screen    *core.Screen
	store     ScoreSaver
	publisher Publisher
	logger    *log.Logger
	keyMapper *KeyMapper
	help      help.Model
	config    core.RuntimeConfig
	now       func() time.Time

	gameTimer  Timer
	blinkTimer Timer

	gameID     string
	startedAt  time.Time
	confirming bool   // play-again dialog is open
	savedID    string // record ID of the last saved game
	embedded   bool
	quitting   bool
	backToMenu bool
}

// NewModel creates a model and starts the first game. store may be nil.
func NewModel(cfg config.SnakeConfig, rt core.RuntimeConfig, store ScoreSaver, opts ...ModelOption) Model {
	m := Model{
		painter:   snake.NewPainter(cfg.Blink.Step),
		screen:    core.NewScreen(rt.ScreenW, max(rt.ScreenH-1, 0)),
		store:     store,
		logger:    log.New(io.Discard),
		keyMapper: NewKeyMapper(),
		help:      help.New(),
		config:    rt,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}

	// Use time-based seed if not specified
	seed := rt.Seed
	if seed == 0 {
		seed = m.now().UnixNano()
	}
	m.engine = snake.New(cfg.EngineConfig(), snake.WithSeed(seed), snake.WithClock(m.now))

	m.gameTimer = NewTimer(GameTimer, m.engine.Interval())
	m.blinkTimer = NewTimer(BlinkTimer, cfg.BlinkInterval())
	m.help.Width = rt.ScreenW
	m.beginGame()

	return m
}

// Init schedules the first ticks of both timers.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.gameTimer.Next(), m.blinkTimer.Next())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 0))
		m.help.Width = msg.Width
		return m, nil

	case TimerMsg:
		return m.handleTimer(msg)
	}

	return m, nil
}

// handleTimer dispatches a timer message to its handler. Messages from a
// stopped timer run are dropped.
func (m Model) handleTimer(msg TimerMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.gameTimer.Handles(msg):
		return m.handleGameTick()
	case m.blinkTimer.Handles(msg):
		m.painter.AdvanceBlink()
		return m, m.blinkTimer.Next()
	}
	return m, nil
}

// handleGameTick advances the engine and reschedules the game timer at the
// engine's current speed.
func (m Model) handleGameTick() (tea.Model, tea.Cmd) {
	res := m.engine.Tick()
	if res.Ended {
		m.finishGame()
		return m, nil
	}

	if res.Ate {
		m.logger.Debug("food eaten",
			"points", res.Points,
			"score", m.engine.Stats().Score,
			"length", m.engine.Len(),
			"interval", m.engine.Interval(),
		)
	}
	m.publish()

	m.gameTimer.SetInterval(m.engine.Interval())
	return m, m.gameTimer.Next()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		return m.quit()
	}

	if m.confirming {
		switch action {
		case core.ActionConfirm:
			return m.restart()
		case core.ActionDecline, core.ActionExit:
			// Leave the final board on screen; Space starts a new game.
			m.confirming = false
		}
		return m, nil
	}

	switch action {
	case core.ActionExit:
		m.stopTimers()
		if m.embedded {
			m.finishPublishing()
			m.backToMenu = true
			return m, nil
		}
		return m.quit()

	case core.ActionStartPause:
		if m.engine.Status() == snake.StatusEnded {
			return m.restart()
		}
		m.engine.TogglePause()
		m.publish()
		if m.engine.Status() == snake.StatusPaused {
			m.stopTimers()
			return m, nil
		}
		return m, m.startTimers()

	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		if dir, ok := snake.DirectionFor(action); ok {
			m.engine.SetDirection(dir)
		}
	}

	return m, nil
}

// restart begins a new game and restarts both timers.
func (m Model) restart() (tea.Model, tea.Cmd) {
	m.finishPublishing()
	m.engine.Reset()
	m.beginGame()
	return m, m.startTimers()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.stopTimers()
	m.finishPublishing()
	m.quitting = true
	return m, tea.Quit
}

// beginGame assigns an ID to the engine's current game and publishes it.
func (m *Model) beginGame() {
	m.gameID = uuid.NewString()
	m.startedAt = m.now()
	m.confirming = false
	m.logger.Info("game started", "game", m.gameID, "player", m.config.Player)

	// A board too small for any food ends before the first tick.
	if m.engine.Status() == snake.StatusEnded {
		m.finishGame()
		return
	}
	m.publish()
}

// finishGame stops the timers, records the score and opens the play-again
// dialog.
func (m *Model) finishGame() {
	m.stopTimers()
	m.confirming = true

	stats := m.engine.Stats()
	reason := m.engine.EndReason()
	m.logger.Info("game over",
		"game", m.gameID,
		"player", m.config.Player,
		"score", stats.Score,
		"reason", reason,
		"length", m.engine.Len(),
	)
	m.publish()

	if m.store == nil {
		return
	}
	id, err := m.store.SaveGame(storage.GameRecord{
		ID:         m.gameID,
		Player:     m.config.Player,
		Score:      stats.Score,
		FoodEaten:  stats.FoodEaten,
		Length:     m.engine.Len(),
		SpeedLevel: m.engine.SpeedLevel(),
		EndReason:  reason.String(),
		Duration:   m.now().Sub(m.startedAt),
		Rows:       m.engine.Rows(),
		Cols:       m.engine.Cols(),
	})
	if err != nil {
		m.logger.Warn("could not save score", "error", err)
		return
	}
	m.savedID = id
}

func (m *Model) startTimers() tea.Cmd {
	m.gameTimer.SetInterval(m.engine.Interval())
	return tea.Batch(m.gameTimer.Start(), m.blinkTimer.Start())
}

func (m *Model) stopTimers() {
	m.gameTimer.Stop()
	m.blinkTimer.Stop()
}

func (m *Model) publish() {
	if m.publisher != nil {
		m.publisher.Publish(m.gameID, m.config.Player, m.engine.Snapshot())
	}
}

func (m *Model) finishPublishing() {
	if m.publisher != nil {
		m.publisher.Finish(m.gameID)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.painter.Render(m.screen, m.engine)
	if m.confirming {
		snake.DrawOverlay(m.screen, m.endTitle(), "Start a new game? (y/n)")
	}

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

func (m Model) endTitle() string {
	score := m.engine.Stats().Score
	if m.engine.EndReason().Won() {
		return fmt.Sprintf("Board cleared! Score: %d", score)
	}
	return fmt.Sprintf("Game over! Score: %d", score)
}

// Engine returns the engine driven by this model.
func (m Model) Engine() *snake.Engine {
	return m.engine
}

// GameID returns the ID of the current game.
func (m Model) GameID() string {
	return m.gameID
}

// SavedID returns the record ID of the last stored game, or "".
func (m Model) SavedID() string {
	return m.savedID
}

// Confirming reports whether the play-again dialog is open.
func (m Model) Confirming() bool {
	return m.confirming
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a local Bubble Tea program with a fresh model.
func Run(cfg config.SnakeConfig, rt core.RuntimeConfig, store ScoreSaver, opts ...ModelOption) error {
	model := NewModel(cfg, rt, store, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
