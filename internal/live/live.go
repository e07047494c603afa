// Package live runs calculations over a websocket connection. Each request
// message is answered with one reply carrying the same id.
package live

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"ShaftGear/internal/calc/dispatch"
	"ShaftGear/internal/calcerr"
	"ShaftGear/internal/httpx"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 64 << 10
	sendBuffer     = 16
)

// Request is a client message.
type Request struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Reply answers the Request with the same ID.
type Reply struct {
	ID         string              `json:"id"`
	Type       string              `json:"type"`
	OK         bool                `json:"ok"`
	Result     any                 `json:"result,omitempty"`
	Error      string              `json:"error,omitempty"`
	Violations []calcerr.Violation `json:"violations,omitempty"`
}

type Server struct {
	Calc     *dispatch.Calculator
	upgrader websocket.Upgrader
}

func NewServer(calc *dispatch.Calculator) *Server {
	return &Server{
		Calc: calc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// hub owns one connection: the read loop calculates, the write loop is the
// only writer.
type hub struct {
	conn *websocket.Conn
	send chan Reply
	log  logrus.FieldLogger
}

// ServeWS upgrades the request and serves calculation messages until the
// client disconnects.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	log := httpx.Logger(r.Context())
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	h := &hub{conn: conn, send: make(chan Reply, sendBuffer), log: log}
	log.Info("websocket connected")

	done := make(chan struct{})
	go func() {
		h.handleResponse()
		close(done)
	}()
	h.handleRequest(s.Calc)
	close(h.send)
	<-done
	conn.Close()
	log.Info("websocket closed")
}

func (h *hub) handleRequest(calc *dispatch.Calculator) {
	h.conn.SetReadLimit(maxMessageSize)
	h.conn.SetReadDeadline(time.Now().Add(pongWait))
	h.conn.SetPongHandler(func(string) error {
		return h.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := h.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithError(err).Warn("websocket read failed")
			}
			return
		}
		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			h.send <- Reply{Error: "message is not a valid request"}
			continue
		}
		h.send <- answer(calc, req)
	}
}

func answer(calc *dispatch.Calculator, req Request) Reply {
	reply := Reply{ID: req.ID, Type: req.Type}
	result, err := calc.Run(req.Type, req.Payload)
	if err != nil {
		reply.Error = httpx.SafeMessage(err)
		reply.Violations = calcerr.Violations(err)
		return reply
	}
	reply.OK = true
	reply.Result = result
	return reply
}

func (h *hub) handleResponse() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case reply, ok := <-h.send:
			h.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				h.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := h.conn.WriteJSON(reply); err != nil {
				h.log.WithError(err).Warn("websocket write failed")
				h.conn.Close()
				for range h.send {
				}
				return
			}
		case <-ticker.C:
			h.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := h.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.conn.Close()
				for range h.send {
				}
				return
			}
		}
	}
}
