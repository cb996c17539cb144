// Package gateway exposes a suggest.Engine over the wire protocol in
// a WebSocket message loop for submit/feed/reset/ping, and a REST
// endpoint for reading and replacing the engine's configuration.
package gateway

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/toolsuggest/core/internal/logger"
	"github.com/toolsuggest/core/pkg/config"
	"github.com/toolsuggest/core/pkg/suggest"
)

var log = logger.New("gateway")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Gateway owns the live engine plus the metrics and config-replacement
// plumbing around it. Config replacement reinitializes the engine and
// clears every session — this side effect is documented, logged,
// and counted, never silent.
type Gateway struct {
	mu     sync.RWMutex
	engine *suggest.Engine
	cfg    *config.Config

	metrics *Metrics
}

// New builds a Gateway around an already-constructed engine and the config
// it was built from.
func New(engine *suggest.Engine, cfg *config.Config) *Gateway {
	return &Gateway{engine: engine, cfg: cfg, metrics: newMetrics()}
}

// currentEngine returns the live engine under a read lock, so a config
// reinit never races a connection mid-request.
func (g *Gateway) currentEngine() *suggest.Engine {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.engine
}

// Reinit swaps in an already constructed engine and the config it was built
// from. The new engine starts with no sessions, so every existing session is
// dropped, per the documented PUT /config side effect.
func (g *Gateway) Reinit(engine *suggest.Engine, cfg *config.Config) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.engine = engine
	g.cfg = cfg
	g.metrics.reinitTotal.Inc()
	log.Infof("gateway reinitialized: sessions cleared, catalog size %d", engine.CatalogSize())
}

// ServeWS upgrades the request to a WebSocket and runs the per-connection
// message loop until the client disconnects. A frame that fails to decode as
// JSON is answered with an error frame and the loop continues.
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debugf("session %s: connection closed: %v", sessionID, err)
			}
			return
		}
		var msg InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			g.metrics.malformedTotal.Inc()
			g.send(conn, OutboundMessage{Type: MsgError, Error: "malformed message: " + err.Error()})
			continue
		}
		g.handleMessage(conn, sessionID, msg)
	}
}

func (g *Gateway) handleMessage(conn *websocket.Conn, sessionID string, msg InboundMessage) {
	if msg.SessionID != "" {
		sessionID = msg.SessionID
	}

	engine := g.currentEngine()
	timer := prometheus.NewTimer(g.metrics.latency.WithLabelValues(msg.Type))
	defer timer.ObserveDuration()

	switch msg.Type {
	case MsgSubmit:
		g.reply(conn, sessionID, engine.Submit(msg.Text, sessionID))
	case MsgFeed:
		g.reply(conn, sessionID, engine.Feed(msg.Delta, sessionID))
	case MsgReset:
		engine.Reset(sessionID)
	case MsgPing:
		g.send(conn, OutboundMessage{Type: MsgPong, Timestamp: float64(time.Now().UnixMilli())})
	default:
		g.metrics.malformedTotal.Inc()
		g.send(conn, OutboundMessage{Type: MsgError, Error: "unknown message type: " + msg.Type})
	}
}

func (g *Gateway) reply(conn *websocket.Conn, sessionID string, results []suggest.Suggestion) {
	g.send(conn, OutboundMessage{
		Type:        MsgSuggestions,
		SessionID:   sessionID,
		Suggestions: toWire(results),
	})
}

func (g *Gateway) send(conn *websocket.Conn, msg OutboundMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Errorf("websocket write failed: %v", err)
	}
}

func toWire(results []suggest.Suggestion) []SuggestionWire {
	out := make([]SuggestionWire, len(results))
	for i, s := range results {
		out[i] = SuggestionWire{
			ID:                s.ID,
			Kind:              s.Kind,
			Score:             s.Score,
			Label:             s.Label,
			Reason:            s.Reason,
			ArgumentsTemplate: s.ArgumentsTemplate,
		}
		out[i].Metadata.Tags = s.Metadata.Tags
	}
	return out
}

// SessionCount exposes the live engine's session count for /config status
// reporting.
func (g *Gateway) SessionCount() int {
	return g.currentEngine().SessionCount()
}

// CatalogSize exposes the live engine's catalog size for /config status
// reporting.
func (g *Gateway) CatalogSize() int {
	return g.currentEngine().CatalogSize()
}

// Config returns the config the live engine was built from.
func (g *Gateway) Config() *config.Config {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cfg
}
