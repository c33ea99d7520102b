package tui

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bmson/dtmf/internal/config"
	"github.com/bmson/dtmf/internal/dial"
	"github.com/bmson/dtmf/internal/keypad"
	"github.com/bmson/dtmf/internal/player"
	"github.com/bmson/dtmf/internal/wave"
)

// State represents the dialpad state.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StateError
)

// Messages sent through the Bubble Tea update loop.

type PlaybackDoneMsg struct{}

type PlaybackErrorMsg struct {
	Err error
}

type SavedMsg struct {
	Path string
}

type SaveErrorMsg struct {
	Err error
}

type errorTimeoutMsg struct{}

// maxNumberLen bounds the dialed number so the pad line never wraps.
const maxNumberLen = 40

// Model is the Bubble Tea model for the dialpad.
type Model struct {
	State     State
	Number    []keypad.Key
	LastSaved string
	LastError string
	Config    *config.Config
	Dialer    *dial.Dialer
	Player    player.Player
	Logger    *log.Logger
	Theme     Theme
}

// NewModel creates a dialpad model.
func NewModel(cfg *config.Config, d *dial.Dialer, p player.Player, logger *log.Logger) Model {
	return Model{
		State:  StateIdle,
		Config: cfg,
		Dialer: d,
		Player: p,
		Logger: logger,
		Theme:  LoadTheme(cfg.Theme),
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and transitions state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit

		case "backspace":
			if len(m.Number) > 0 {
				m.Number = m.Number[:len(m.Number)-1]
			}
			return m, nil

		case "enter":
			if m.State != StatePlaying && len(m.Number) > 0 {
				m.State = StatePlaying
				m.LastError = ""
				return m, m.playCmd(string(m.Number))
			}
			return m, nil

		case "ctrl+s":
			if len(m.Number) > 0 {
				return m, m.saveCmd(string(m.Number))
			}
			return m, nil

		case "tab":
			m.Theme = NextTheme(m.Theme.Name)
			return m, nil

		default:
			// Only literal key presses dial. Named keys ("up",
			// "shift+tab") stringify to their name, whose letters
			// would otherwise normalize as E.161 digits.
			if msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace {
				return m, nil
			}
			// Anything that normalizes to DTMF symbols is appended;
			// everything else is dropped, same as the dialer itself.
			for _, k := range keypad.Normalize(msg.String()) {
				if len(m.Number) < maxNumberLen {
					m.Number = append(m.Number, k)
				}
			}
			return m, nil
		}

	case PlaybackDoneMsg:
		m.State = StateIdle
		return m, nil

	case PlaybackErrorMsg:
		m.State = StateError
		m.LastError = msg.Err.Error()
		return m, scheduleErrorTimeout()

	case SavedMsg:
		m.LastSaved = msg.Path
		m.Logger.Printf("saved %s", msg.Path)
		return m, nil

	case SaveErrorMsg:
		m.State = StateError
		m.LastError = msg.Err.Error()
		return m, scheduleErrorTimeout()

	case errorTimeoutMsg:
		if m.State == StateError {
			m.State = StateIdle
			m.LastError = ""
		}
	}

	return m, nil
}

func (m Model) playCmd(number string) tea.Cmd {
	dialer := m.Dialer
	p := m.Player
	logger := m.Logger
	return func() tea.Msg {
		ctx := context.Background()
		blob, err := dialer.Create(ctx, number)
		if err != nil {
			return PlaybackErrorMsg{Err: err}
		}
		if p == nil {
			return PlaybackDoneMsg{}
		}
		logger.Printf("playing %q (%d bytes)", number, len(blob))
		if err := p.Play(ctx, blob); err != nil {
			return PlaybackErrorMsg{Err: fmt.Errorf("playback: %w", err)}
		}
		return PlaybackDoneMsg{}
	}
}

func (m Model) saveCmd(number string) tea.Cmd {
	dialer := m.Dialer
	outRate := m.Config.Audio.OutputSampleRate
	dir := m.Config.Output.Dir
	return func() tea.Msg {
		ctx := context.Background()
		blob, err := dialer.Create(ctx, number)
		if err != nil {
			return SaveErrorMsg{Err: err}
		}
		if outRate != 0 && outRate != dial.SampleRate {
			blob, err = wave.ConvertRate(blob, outRate)
			if err != nil {
				return SaveErrorMsg{Err: err}
			}
		}

		path := filepath.Join(dir, saveName(number))
		if err := os.WriteFile(path, blob, 0o644); err != nil {
			return SaveErrorMsg{Err: fmt.Errorf("write %s: %w", path, err)}
		}
		return SavedMsg{Path: path}
	}
}

// saveName builds a filesystem-safe file name for a dialed number.
func saveName(number string) string {
	safe := make([]rune, 0, len(number))
	for _, r := range number {
		switch r {
		case '*':
			safe = append(safe, 's')
		case '#':
			safe = append(safe, 'p')
		case ' ':
			safe = append(safe, '_')
		default:
			safe = append(safe, r)
		}
	}
	return fmt.Sprintf("dtmf-%s-%s.wav", string(safe), time.Now().Format("20060102-150405"))
}

func scheduleErrorTimeout() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return errorTimeoutMsg{}
	})
}
