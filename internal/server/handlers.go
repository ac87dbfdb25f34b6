package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"math"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mgpai22/srtplay/internal/media"
	"github.com/mgpai22/srtplay/internal/session"
	"github.com/mgpai22/srtplay/internal/subtitle"
)

var indexTemplate = template.Must(template.New("index").Parse(INDEX))

type captionResponse struct {
	Time float64 `json:"time"`
	Text string  `json:"text"`
}

type subtitlesResponse struct {
	Count int `json:"count"`
	Inert int `json:"inert"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// GET /
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, map[string]string{"title": s.title}); err != nil {
		s.logger.Errorw("Failed to render page", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleStatic(body, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = io.WriteString(w, body)
	}
}

// GET /api/state
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

// POST /api/video, multipart field "video"
func (s *Server) handleVideoUpload(w http.ResponseWriter, r *http.Request) {
	if limit := s.cfg.MaxUploadBytes(); limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}

	part, err := findPart(r, "video")
	if err != nil {
		s.logger.Warnw("Video upload rejected", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer part.Close()

	name := filepath.Base(part.FileName())
	if name == "." || name == string(filepath.Separator) {
		name = "video"
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0755); err != nil {
		s.logger.Errorw("Failed to create upload directory", "dir", s.cfg.UploadDir, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store video")
		return
	}

	dest := filepath.Join(s.cfg.UploadDir, "video"+strings.ToLower(filepath.Ext(name)))
	if err := saveUpload(part, dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "video exceeds upload limit")
			return
		}
		s.logger.Errorw("Failed to store video", "dest", dest, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store video")
		return
	}

	if old, ok := s.session.Video(); ok && old.Path != dest &&
		filepath.Dir(old.Path) == filepath.Clean(s.cfg.UploadDir) {
		_ = os.Remove(old.Path)
	}

	v := s.describeVideo(r.Context(), name, dest)
	s.session.SetVideo(v)
	writeJSON(w, http.StatusOK, v)
}

// POST /api/subtitles, multipart field "subtitles" or a raw text body
func (s *Server) handleSubtitlesUpload(w http.ResponseWriter, r *http.Request) {
	var src io.Reader = r.Body
	if isMultipart(r) {
		part, err := findPart(r, "subtitles")
		if err != nil {
			s.logger.Warnw("Subtitle upload rejected", "error", err)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		defer part.Close()
		src = part
	}

	captions, err := subtitle.Read(src)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.session.Load(captions)

	resp := subtitlesResponse{Count: len(captions)}
	for _, c := range captions {
		if c.Inert() {
			resp.Inert++
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// POST /api/submit
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Submit(); err != nil {
		if errors.Is(err, session.ErrMissingInputs) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]session.View{"view": s.session.View()})
}

// GET /api/video
func (s *Server) handleVideoStream(w http.ResponseWriter, r *http.Request) {
	v, ok := s.session.Video()
	if !ok {
		writeError(w, http.StatusNotFound, "no video loaded")
		return
	}

	file, err := os.Open(v.Path)
	if err != nil {
		s.logger.Errorw("Failed to open video", "path", v.Path, "error", err)
		writeError(w, http.StatusNotFound, "video file not found")
		return
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get file info")
		return
	}

	w.Header().Set("Content-Type", media.ContentType(v.Name))
	http.ServeContent(w, r, v.Name, stat.ModTime(), file)
}

// GET /api/caption?t=seconds
func (s *Server) handleCaption(w http.ResponseWriter, r *http.Request) {
	t, err := parseTime(r.URL.Query().Get("t"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, captionResponse{Time: t, Text: s.session.OnTimeAdvance(t)})
}

// GET /api/captions.vtt
func (s *Server) handleCaptionsVTT(w http.ResponseWriter, r *http.Request) {
	writer, err := subtitle.NewWriter(subtitle.FormatVTT)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := writer.Write(&buf, s.session.Captions()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/vtt; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func parseTime(raw string) (float64, error) {
	if raw == "" {
		return 0, errors.New("missing time parameter")
	}
	t, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(t) || math.IsInf(t, 0) {
		return 0, fmt.Errorf("invalid time %q", raw)
	}
	return t, nil
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && strings.HasPrefix(mediaType, "multipart/")
}

// findPart streams the multipart body up to the named file field.
func findPart(r *http.Request, field string) (*multipart.Part, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("expected multipart upload: %w", err)
	}
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			return nil, fmt.Errorf("missing %q file", field)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read upload: %w", err)
		}
		if part.FormName() == field {
			return part, nil
		}
		part.Close()
	}
}

func saveUpload(src io.Reader, dest string) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".upload-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, dest)
}
