package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kapu/meal-browser-go/internal/app"
	"github.com/kapu/meal-browser-go/internal/constants"
	"github.com/kapu/meal-browser-go/internal/domain"
	"github.com/kapu/meal-browser-go/internal/form"
	"github.com/kapu/meal-browser-go/internal/nav"
	"go.uber.org/zap"
)

// Patch operations sent to the browser shim.
const (
	OpReplace = "replace"
	OpLoading = "loading"
	OpOverlay = "overlay"
	OpNav     = "nav"
	OpForm    = "form"
)

// Patch is one server to browser update.
type Patch struct {
	Op      string       `json:"op"`
	Region  string       `json:"region,omitempty"`
	HTML    *string      `json:"html,omitempty"`
	Visible *bool        `json:"visible,omitempty"`
	Nav     *nav.State   `json:"nav,omitempty"`
	Form    *form.Result `json:"form,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// wsSurface draws on the browser page behind one websocket. Writes are
// serialized; gorilla allows one concurrent writer.
type wsSurface struct {
	conn         *websocket.Conn
	mu           sync.Mutex
	writeTimeout time.Duration
}

var _ app.Surface = (*wsSurface)(nil)

func newWSSurface(conn *websocket.Conn, writeTimeout time.Duration) *wsSurface {
	return &wsSurface{conn: conn, writeTimeout: writeTimeout}
}

func (ws *wsSurface) send(p Patch) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode patch: %w", err)
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.writeTimeout > 0 {
		_ = ws.conn.SetWriteDeadline(time.Now().Add(ws.writeTimeout))
	}
	return ws.conn.WriteMessage(websocket.TextMessage, data)
}

func (ws *wsSurface) Replace(region, markup string) error {
	return ws.send(Patch{Op: OpReplace, Region: region, HTML: &markup})
}

func (ws *wsSurface) SetLoading(visible bool) error {
	return ws.send(Patch{Op: OpLoading, Visible: &visible})
}

func (ws *wsSurface) HideOverlay() error {
	hidden := false
	return ws.send(Patch{Op: OpOverlay, Visible: &hidden})
}

func (ws *wsSurface) ApplyNav(state nav.State) error {
	return ws.send(Patch{Op: OpNav, Nav: &state})
}

func (ws *wsSurface) ApplyForm(result form.Result) error {
	return ws.send(Patch{Op: OpForm, Form: &result})
}

// handleWebSocket runs one browser session for the lifetime of the socket.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	wsCfg := constants.WebSocketConfig
	conn.SetReadLimit(wsCfg.ReadLimitBytes)
	// the server's read deadline survives the hijack; pongs keep the socket alive
	_ = conn.SetReadDeadline(time.Now().Add(wsCfg.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsCfg.PongWait))
	})

	s.track(conn, true)
	defer s.track(conn, false)
	defer conn.Close()

	activeSessions.Inc()
	defer activeSessions.Dec()

	surface := newWSSurface(conn, wsCfg.WriteTimeout)
	session := s.sessions.NewSession(r.Context(), surface)
	defer session.Close()

	logger := s.logger.With(
		zap.String("session", session.ID()),
		zap.String("request_id", RequestID(r.Context())),
	)
	logger.Info("Session opened", zap.String("remote", r.RemoteAddr))
	defer logger.Info("Session closed")

	stopPing := make(chan struct{})
	defer close(stopPing)
	go s.pingLoop(conn, wsCfg.PingInterval, wsCfg.WriteTimeout, stopPing)

	session.Bootstrap()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			dataStr := string(data)
			if len(dataStr) > 200 {
				dataStr = dataStr[:200]
			}
			logger.Warn("Failed to parse client message",
				zap.Error(err),
				zap.String("data", dataStr),
			)
			continue
		}

		clientActionsTotal.WithLabelValues(actionLabel(msg.Action)).Inc()
		session.Handle(&msg)
	}
}

func (s *Server) pingLoop(conn *websocket.Conn, interval, writeTimeout time.Duration, stop <-chan struct{}) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			deadline := time.Now().Add(writeTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

func (s *Server) track(conn *websocket.Conn, open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if open {
		s.conns[conn] = struct{}{}
		return
	}
	delete(s.conns, conn)
}

// closeSessions ends every open socket so their sessions shut down.
func (s *Server) closeSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		_ = conn.Close()
	}
}

// actionLabel bounds metric cardinality to known actions.
func actionLabel(action string) string {
	switch action {
	case domain.ActionSearchName, domain.ActionSearchLetter, domain.ActionCategory,
		domain.ActionArea, domain.ActionIngredient, domain.ActionMeal,
		domain.ActionNavToggle, domain.ActionNavLink, domain.ActionLogo,
		domain.ActionFormInput, domain.ActionFormSubmit:
		return action
	default:
		return "unknown"
	}
}
