package session

import (
	"errors"
	"sync"

	"github.com/mgpai22/srtplay/internal/logging"
	"github.com/mgpai22/srtplay/internal/subtitle"
)

// ErrMissingInputs is returned by Submit when either the video or a
// non-empty caption sequence is missing. Its message is shown to the user.
var ErrMissingInputs = errors.New("Please upload both a video file and an SRT subtitle file.")

// View is the page section currently shown to the user.
type View string

const (
	ViewSetup    View = "setup"
	ViewPlayback View = "playback"
)

// VideoSource references the loaded video. Path is where the bytes live;
// Name is what the user picked.
type VideoSource struct {
	Name     string  `json:"name"`
	Path     string  `json:"-"`
	Duration float64 `json:"duration,omitempty"`
}

// Snapshot is a read-only view of the session for status reporting.
type Snapshot struct {
	View         View         `json:"view"`
	Video        *VideoSource `json:"video,omitempty"`
	CaptionCount int          `json:"captionCount"`
}

// Session owns the caption sequence of the current playback. The sequence
// is replaced wholesale by Load and never mutated in place.
type Session struct {
	mu       sync.RWMutex
	captions []subtitle.Caption
	video    *VideoSource
	view     View
	logger   *logging.Logger
}

func New(logger *logging.Logger) *Session {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Session{
		view:   ViewSetup,
		logger: logger,
	}
}

// Load replaces the caption sequence. The slice is copied.
func (s *Session) Load(captions []subtitle.Caption) {
	seq := make([]subtitle.Caption, len(captions))
	copy(seq, captions)

	inert := 0
	for _, c := range seq {
		if c.Inert() {
			inert++
		}
	}

	s.mu.Lock()
	s.captions = seq
	s.mu.Unlock()

	s.logger.Infow("Captions loaded",
		"count", len(seq),
		"inert", inert,
	)
}

// Captions returns the current sequence. Callers must not modify it.
func (s *Session) Captions() []subtitle.Caption {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.captions
}

// Query returns the caption active at t.
func (s *Session) Query(t float64) (subtitle.Caption, bool) {
	return subtitle.FindActive(s.Captions(), t)
}

// OnTimeAdvance is invoked on every time-update signal and returns the
// text to display, or "" when no caption is active.
func (s *Session) OnTimeAdvance(t float64) string {
	return subtitle.ActiveText(s.Captions(), t)
}

func (s *Session) SetVideo(v VideoSource) {
	s.mu.Lock()
	s.video = &v
	s.mu.Unlock()

	s.logger.Infow("Video loaded",
		"name", v.Name,
		"duration", v.Duration,
	)
}

func (s *Session) Video() (VideoSource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.video == nil {
		return VideoSource{}, false
	}
	return *s.video, true
}

// Submit moves the session from setup to playback. Without a video and
// at least one caption it returns ErrMissingInputs and stays in setup.
func (s *Session) Submit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.video == nil || len(s.captions) == 0 {
		s.logger.Debugw("Submit rejected",
			"has_video", s.video != nil,
			"captions", len(s.captions),
		)
		return ErrMissingInputs
	}
	s.view = ViewPlayback
	return nil
}

func (s *Session) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		View:         s.view,
		CaptionCount: len(s.captions),
	}
	if s.video != nil {
		v := *s.video
		snap.Video = &v
	}
	return snap
}
