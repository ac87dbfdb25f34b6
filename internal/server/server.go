package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/mgpai22/srtplay/internal/config"
	"github.com/mgpai22/srtplay/internal/logging"
	"github.com/mgpai22/srtplay/internal/media"
	"github.com/mgpai22/srtplay/internal/session"
	"github.com/mgpai22/srtplay/internal/subtitle"
)

const shutdownTimeout = 5 * time.Second

// Server is the web playback surface around a single session.
type Server struct {
	cfg       *config.Config
	session   *session.Session
	processor media.Processor
	logger    *logging.Logger
	title     string
}

// New creates a server. processor may be nil, in which case uploaded
// videos are accepted without probing.
func New(
	cfg *config.Config,
	sess *session.Session,
	processor media.Processor,
	logger *logging.Logger,
) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Server{
		cfg:       cfg,
		session:   sess,
		processor: processor,
		logger:    logger,
		title:     "srtplay",
	}
}

// SetTitle changes the page title.
func (s *Server) SetTitle(title string) {
	s.title = title
}

// Handler builds the router with logging and CORS applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/style.css", s.handleStatic(STYLE, "text/css")).Methods(http.MethodGet)
	r.HandleFunc("/script.js", s.handleStatic(SCRIPT, "application/javascript")).Methods(http.MethodGet)
	r.HandleFunc("/socket", s.handleSocket)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	api.HandleFunc("/video", s.handleVideoUpload).Methods(http.MethodPost)
	api.HandleFunc("/video", s.handleVideoStream).Methods(http.MethodGet, http.MethodHead)
	api.HandleFunc("/subtitles", s.handleSubtitlesUpload).Methods(http.MethodPost)
	api.HandleFunc("/submit", s.handleSubmit).Methods(http.MethodPost)
	api.HandleFunc("/caption", s.handleCaption).Methods(http.MethodGet)
	api.HandleFunc("/captions.vtt", s.handleCaptionsVTT).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return corsHandler.Handler(r)
}

// LoadVideo registers a video already on disk, probing it when possible.
func (s *Server) LoadVideo(ctx context.Context, path string) error {
	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to open video: %w", err)
	}
	if stat.IsDir() {
		return fmt.Errorf("video path is a directory: %s", path)
	}
	if !media.IsVideoFile(path) {
		s.logger.Warnw("Unrecognized video extension", "path", path)
	}

	s.session.SetVideo(s.describeVideo(ctx, filepath.Base(path), path))
	return nil
}

// LoadSubtitles parses an SRT file from disk into the session.
func (s *Server) LoadSubtitles(path string) error {
	captions, err := subtitle.Open(path)
	if err != nil {
		return err
	}
	s.session.Load(captions)
	return nil
}

func (s *Server) describeVideo(ctx context.Context, name, path string) session.VideoSource {
	v := session.VideoSource{Name: name, Path: path}
	if s.processor == nil {
		return v
	}

	info, err := s.processor.Probe(ctx, path)
	if err != nil {
		s.logger.Warnw("Could not probe video, continuing without metadata",
			"path", path,
			"error", err,
		)
		return v
	}

	s.logger.Debugw("Probed video",
		"codec", info.Codec,
		"width", info.Width,
		"height", info.Height,
		"subtitle_streams", info.SubtitleStreams,
	)
	v.Duration = info.Duration
	return v
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}

	url := "http://" + ln.Addr().String()
	s.logger.Infow("Serving player", "url", url)

	if s.cfg.OpenBrowser {
		if err := startBrowser(s.cfg.Browser, url); err != nil {
			s.logger.Warnw("Could not start browser", "error", err)
		}
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Infow("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
