package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// timeUpdate is sent by the page on every media timeupdate event.
type timeUpdate struct {
	Time float64 `json:"time"`
}

// GET /socket: each incoming time update is answered with the caption
// active at that time.
func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already written an error response
		s.logger.Warnw("Websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	if err := s.serveTimeUpdates(conn); err != nil {
		s.logger.Debugw("Websocket closed", "error", err)
	}
}

func (s *Server) serveTimeUpdates(conn *websocket.Conn) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}

		var msg timeUpdate
		if err := json.Unmarshal(data, &msg); err != nil {
			// malformed updates are ignored, the subscription stays open
			continue
		}

		resp := captionResponse{Time: msg.Time, Text: s.session.OnTimeAdvance(msg.Time)}
		if err := conn.WriteJSON(resp); err != nil {
			return err
		}
	}
}
