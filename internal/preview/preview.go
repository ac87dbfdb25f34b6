package preview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mgpai22/srtplay/internal/session"
	"github.com/mgpai22/srtplay/internal/subtitle"
)

const (
	tickInterval = 100 * time.Millisecond
	seekStep     = 5.0
	// playback stops this long after the last caption ends
	tailSeconds = 1.0
)

var (
	captionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Align(lipgloss.Center)
	clockStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#93C5FD"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
)

type Options struct {
	Start float64 // seconds
	Speed float64
}

// Model plays a caption sequence against a wall clock. Every tick is a
// time-update signal for the session.
type Model struct {
	session  *session.Session
	position float64
	speed    float64
	end      float64
	playing  bool
	lastTick time.Time
	caption  string
	width    int
	height   int
	finished bool
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func NewModel(sess *session.Session, opts Options) Model {
	speed := opts.Speed
	if speed <= 0 {
		speed = 1
	}
	start := opts.Start
	if start < 0 {
		start = 0
	}

	m := Model{
		session:  sess,
		position: start,
		speed:    speed,
		end:      subtitle.LastEnd(sess.Captions()) + tailSeconds,
		playing:  true,
	}
	m.caption = sess.OnTimeAdvance(m.position)
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
			m.lastTick = time.Time{}
		case "left", "h":
			m.seek(-seekStep)
		case "right", "l":
			m.seek(seekStep)
		}
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		if m.playing && !m.lastTick.IsZero() {
			m.position += now.Sub(m.lastTick).Seconds() * m.speed
			m.caption = m.session.OnTimeAdvance(m.position)
		}
		if m.playing {
			m.lastTick = now
		}
		if m.position >= m.end {
			m.finished = true
			return m, tea.Quit
		}
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m *Model) seek(delta float64) {
	m.position += delta
	if m.position < 0 {
		m.position = 0
	}
	m.caption = m.session.OnTimeAdvance(m.position)
}

func (m Model) View() string {
	var view strings.Builder

	state := "playing"
	if !m.playing {
		state = "paused"
	}
	view.WriteString(clockStyle.Render(fmt.Sprintf("%s / %s  %s",
		formatClock(m.position), formatClock(m.end), state)))
	view.WriteString("\n\n")

	// reserve the same height whether or not a caption is shown
	caption := m.caption
	if caption == "" {
		caption = " "
	}
	style := captionStyle
	if m.width > 0 {
		style = style.Width(m.width)
	}
	view.WriteString(style.Render(caption))
	view.WriteString("\n\n")
	view.WriteString(helpStyle.Render("[space] play/pause • [←/→] seek 5s • [q] quit"))
	view.WriteString("\n")

	return view.String()
}

// Position returns the playback clock in seconds.
func (m Model) Position() float64 {
	return m.position
}

// Caption returns the caption currently displayed.
func (m Model) Caption() string {
	return m.caption
}

func formatClock(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

// Run plays the session's captions in the terminal until the last
// caption ends, the user quits, or ctx is cancelled.
func Run(ctx context.Context, sess *session.Session, opts Options) error {
	p := tea.NewProgram(NewModel(sess, opts), tea.WithContext(ctx))
	_, err := p.Run()
	return exitError(err)
}

// a program stopped through its context is a normal exit
func exitError(err error) error {
	if err == nil || errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return fmt.Errorf("preview failed: %w", err)
}
