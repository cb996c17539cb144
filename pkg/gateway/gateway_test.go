package gateway

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/toolsuggest/core/pkg/config"
	"github.com/toolsuggest/core/pkg/suggest"
)

func newTestGateway(t *testing.T) (*Gateway, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tools := []suggest.ToolSpec{
		{Name: "export_csv", Description: "Export data to CSV format", Keywords: []string{"export", "csv"}},
	}
	engine, err := suggest.NewEngine(tools, suggest.DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	gw := New(engine, config.DefaultConfig())
	srv := httptest.NewServer(gw.Router())
	t.Cleanup(srv.Close)
	return gw, srv
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWebSocketSubmitReturnsSuggestions(t *testing.T) {
	_, srv := newTestGateway(t)
	conn := dialWS(t, srv)

	if err := conn.WriteJSON(InboundMessage{Type: MsgSubmit, SessionID: "s1", Text: "export data to csv"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var out OutboundMessage
	if err := conn.ReadJSON(&out); err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.Type != MsgSuggestions || len(out.Suggestions) == 0 || out.Suggestions[0].ID != "export_csv" {
		t.Errorf("got %+v, want export_csv suggestion", out)
	}
}

func TestWebSocketPingPong(t *testing.T) {
	_, srv := newTestGateway(t)
	conn := dialWS(t, srv)

	if err := conn.WriteJSON(InboundMessage{Type: MsgPing, SessionID: "s1", Timestamp: 123}); err != nil {
		t.Fatalf("write: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var out OutboundMessage
	if err := conn.ReadJSON(&out); err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.Type != MsgPong {
		t.Errorf("type = %q, want pong", out.Type)
	}
}

func TestWebSocketUnknownTypeReturnsError(t *testing.T) {
	_, srv := newTestGateway(t)
	conn := dialWS(t, srv)

	if err := conn.WriteJSON(InboundMessage{Type: "bogus", SessionID: "s1"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var out OutboundMessage
	if err := conn.ReadJSON(&out); err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.Type != MsgError {
		t.Errorf("type = %q, want error", out.Type)
	}
}

func TestGetConfigReturnsCurrentConfig(t *testing.T) {
	gw, srv := newTestGateway(t)
	_ = gw
	resp, err := srv.Client().Get(srv.URL + "/config")
	if err != nil {
		t.Fatalf("GET /config: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
