package preview

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgpai22/srtplay/internal/session"
	"github.com/mgpai22/srtplay/internal/subtitle"
)

const sample = "1\n00:00:01,000 --> 00:00:03,000\nHello\n\n2\n00:00:05,000 --> 00:00:07,000\nWorld"

func newModel(t *testing.T, opts Options) Model {
	t.Helper()
	sess := session.New(nil)
	sess.Load(subtitle.Parse(sample))
	return NewModel(sess, opts)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestTicksAdvanceCaption(t *testing.T) {
	m := newModel(t, Options{})
	assert.Equal(t, "", m.Caption())

	base := time.Unix(1000, 0)
	m, _ = update(t, m, tickMsg(base))
	assert.Zero(t, m.Position())

	m, cmd := update(t, m, tickMsg(base.Add(2*time.Second)))
	assert.InDelta(t, 2.0, m.Position(), 1e-9)
	assert.Equal(t, "Hello", m.Caption())
	assert.NotNil(t, cmd)

	m, _ = update(t, m, tickMsg(base.Add(4*time.Second)))
	assert.Equal(t, "", m.Caption())

	m, _ = update(t, m, tickMsg(base.Add(6*time.Second)))
	assert.Equal(t, "World", m.Caption())
}

func TestSpeedAndStart(t *testing.T) {
	m := newModel(t, Options{Start: 1, Speed: 2})
	assert.Equal(t, "Hello", m.Caption())

	base := time.Unix(0, 0)
	m, _ = update(t, m, tickMsg(base))
	m, _ = update(t, m, tickMsg(base.Add(2*time.Second)))
	assert.InDelta(t, 5.0, m.Position(), 1e-9)
	assert.Equal(t, "World", m.Caption())
}

func TestPauseStopsClock(t *testing.T) {
	m := newModel(t, Options{})
	base := time.Unix(0, 0)
	m, _ = update(t, m, tickMsg(base))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = update(t, m, tickMsg(base.Add(3*time.Second)))
	assert.Zero(t, m.Position())
	assert.Contains(t, m.View(), "paused")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = update(t, m, tickMsg(base.Add(4*time.Second)))
	m, _ = update(t, m, tickMsg(base.Add(6*time.Second)))
	assert.InDelta(t, 2.0, m.Position(), 1e-9)
}

func TestSeek(t *testing.T) {
	m := newModel(t, Options{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 5.0, m.Position())
	assert.Equal(t, "World", m.Caption())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Zero(t, m.Position())
	assert.Equal(t, "", m.Caption())
}

func TestQuitAfterLastCaption(t *testing.T) {
	m := newModel(t, Options{Start: 7.5})
	base := time.Unix(0, 0)
	m, _ = update(t, m, tickMsg(base))
	m, cmd := update(t, m, tickMsg(base.Add(time.Second)))

	require.NotNil(t, cmd)
	assert.True(t, m.finished)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestQuitKey(t *testing.T) {
	m := newModel(t, Options{})
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "01:02:03", formatClock(3723.5))
	assert.Equal(t, "00:00:00", formatClock(0))
}

func TestExitError(t *testing.T) {
	assert.NoError(t, exitError(nil))
	assert.NoError(t, exitError(tea.ErrProgramKilled))
	assert.NoError(t, exitError(fmt.Errorf("%w: %w", tea.ErrProgramKilled, context.Canceled)))

	boom := errors.New("tty unavailable")
	err := exitError(boom)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "preview failed")
}
