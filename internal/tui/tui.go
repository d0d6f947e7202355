// Package tui provides a Bubble Tea terminal user interface for the player.
package tui

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/bandcamp-player/internal/library"
	"github.com/handiism/bandcamp-player/internal/model"
	"github.com/handiism/bandcamp-player/internal/player"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	trackStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	coverBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			MarginRight(2)
)

// maxLogs is the number of log lines kept on screen.
const maxLogs = 5

// Sender delivers commands to the player controller.
type Sender interface {
	Send(cmd player.Command) bool
}

// CoverFunc loads the cover of a track scaled to fit width x height pixels.
type CoverFunc func(ctx context.Context, track model.Track, width, height int) (image.Image, error)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   library.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	ctx      context.Context
	player   Sender
	events   <-chan player.Event
	loadArt  CoverFunc
	keys     keyMap
	help     help.Model
	progress progress.Model
	logs     []LogEntry

	tracks        []model.Track
	track         model.Track
	index         int
	loaded        bool
	duration      float64
	durationLabel string
	position      float64
	positionLabel string
	icon          player.Icon
	volume        float64
	muted         bool

	coverSize int
	cover     string

	width int
}

// NewModel creates a new TUI model. Events must be the channel the
// controller publishes to; tracks is the playlist shown below the player.
func NewModel(ctx context.Context, sender Sender, events <-chan player.Event, tracks []model.Track, loadArt CoverFunc, coverSize int) Model {
	prog := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	prog.Width = 50

	return Model{
		ctx:           ctx,
		player:        sender,
		events:        events,
		loadArt:       loadArt,
		keys:          defaultKeyMap(),
		help:          help.New(),
		progress:      prog,
		tracks:        tracks,
		positionLabel: model.FormatTime(0),
		durationLabel: model.FormatTime(0),
		icon:          player.IconPlay,
		coverSize:     coverSize,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Message types
type (
	// EventMsg carries a controller event into the update loop.
	EventMsg struct {
		Event player.Event
	}

	// CoverMsg is sent when a cover finished loading.
	CoverMsg struct {
		FileID string
		Image  image.Image
		Err    error
	}
)

func waitForEvent(events <-chan player.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return nil
		}
		return EventMsg{Event: e}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case EventMsg:
		cmd := m.applyEvent(msg.Event)
		return m, tea.Batch(cmd, waitForEvent(m.events))

	case CoverMsg:
		if msg.FileID != m.track.FileID {
			return m, nil
		}
		if msg.Err != nil {
			m.addLog(fmt.Sprintf("No cover for %s: %v", m.track.Title, msg.Err), library.LevelVerbose)
			return m, nil
		}
		m.cover = renderCover(msg.Image)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.player.Send(player.Quit{})
		return m, tea.Quit
	case key.Matches(msg, m.keys.PlayPause):
		m.player.Send(player.TogglePlayPause{})
	case key.Matches(msg, m.keys.Next):
		m.player.Send(player.Next{})
	case key.Matches(msg, m.keys.Previous):
		m.player.Send(player.Previous{})
	case key.Matches(msg, m.keys.Forward):
		if m.loaded {
			m.player.Send(player.Seek{Seconds: m.position + SeekStep})
		}
	case key.Matches(msg, m.keys.Back):
		if m.loaded {
			m.player.Send(player.Seek{Seconds: m.position - SeekStep})
		}
	case key.Matches(msg, m.keys.VolumeUp):
		m.player.Send(player.VolumeUp{})
	case key.Matches(msg, m.keys.VolumeDown):
		m.player.Send(player.VolumeDown{})
	case key.Matches(msg, m.keys.Mute):
		m.player.Send(player.ToggleMute{})
	case key.Matches(msg, m.keys.Select):
		m.player.Send(player.Select{Index: int(msg.String()[0]-'1')})
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) applyEvent(e player.Event) tea.Cmd {
	switch e := e.(type) {
	case player.TrackLoaded:
		m.track = e.Track
		m.index = e.Index
		m.loaded = true
		m.duration = e.Duration
		m.durationLabel = e.DurationLabel
		m.cover = ""
		m.addLog(fmt.Sprintf("Playing %s (%s)", e.Track.DisplayName(), e.DurationLabel), library.LevelInfo)
		return m.fetchCover(e.Track)

	case player.Progress:
		m.position = e.Position
		m.positionLabel = e.Label

	case player.Transport:
		m.icon = e.Icon

	case player.LoadFailed:
		m.track = e.Track
		m.index = e.Index
		m.loaded = false
		m.duration = 0
		m.durationLabel = model.FormatTime(0)
		m.position = 0
		m.positionLabel = model.FormatTime(0)
		m.cover = ""
		m.addLog(fmt.Sprintf("Cannot play %s: %v", e.Track.DisplayName(), e.Err), library.LevelError)

	case player.VolumeChanged:
		m.volume = e.Level
		m.muted = e.Muted
	}
	return nil
}

func (m Model) fetchCover(track model.Track) tea.Cmd {
	if m.loadArt == nil || !track.HasCover() || m.coverSize <= 0 {
		return nil
	}
	ctx, loadArt, size := m.ctx, m.loadArt, m.coverSize
	return func() tea.Msg {
		img, err := loadArt(ctx, track, size, size)
		return CoverMsg{FileID: track.FileID, Image: img, Err: err}
	}
}

func (m *Model) addLog(message string, level library.ProgressLevel) {
	m.logs = append(m.logs, LogEntry{Message: message, Level: level})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("♫ Player"))
	b.WriteString("\n")

	info := m.viewInfo()
	if m.coverSize > 0 {
		cover := m.cover
		if cover == "" {
			cover = placeholderCover(m.coverSize)
		}
		info = lipgloss.JoinHorizontal(lipgloss.Top, coverBoxStyle.Render(cover), info)
	}
	b.WriteString(info)
	b.WriteString("\n\n")

	b.WriteString(m.viewTransport())
	b.WriteString("\n\n")

	b.WriteString(m.viewPlaylist())
	b.WriteString("\n")

	if len(m.logs) > 0 {
		b.WriteString(m.renderLogs())
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) viewInfo() string {
	var b strings.Builder

	title := m.track.Title
	if title == "" {
		title = "Nothing loaded"
	}
	b.WriteString(trackStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(m.track.Artist))
	b.WriteString("\n\n")
	if len(m.tracks) > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("Track %d/%d", m.index+1, len(m.tracks))))
	}
	return b.String()
}

func (m Model) viewTransport() string {
	var percent float64
	if m.duration > 0 {
		percent = m.position / m.duration
	}

	volume := fmt.Sprintf("vol %+.1f", m.volume)
	if m.muted {
		volume = "muted"
	}

	return fmt.Sprintf("%s\n%s %s / %s   %s",
		m.progress.ViewAs(percent),
		m.icon,
		m.positionLabel,
		m.durationLabel,
		dimStyle.Render(volume),
	)
}

func (m Model) viewPlaylist() string {
	var b strings.Builder
	for i, t := range m.tracks {
		line := fmt.Sprintf("%d. %s", i+1, t.DisplayName())
		if i == m.index {
			b.WriteString(successStyle.Render("♪ " + line))
		} else {
			b.WriteString(dimStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case library.LevelError:
			style = errorStyle
			prefix = "✗"
		case library.LevelWarning:
			style = warningStyle
			prefix = "!"
		case library.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case library.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

// Run starts the TUI application and returns when the user quits.
func Run(ctx context.Context, sender Sender, events <-chan player.Event, tracks []model.Track, loadArt CoverFunc, coverSize int) error {
	p := tea.NewProgram(
		NewModel(ctx, sender, events, tracks, loadArt, coverSize),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
