package server

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danmuck/asayer/internal/capability"
	"github.com/danmuck/asayer/internal/testutil/testlog"
	"github.com/danmuck/asayer/internal/tracker"
	"github.com/danmuck/asayer/internal/transport"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func newSink(t *testing.T) *Sink {
	t.Helper()
	testlog.Start(t)
	gin.SetMode(gin.TestMode)
	return Appear("127.0.0.1:0", "X-Session-Id", []string{"http://localhost:3000"}, zerolog.Nop())
}

func TestEchoReturnsSessionAndBody(t *testing.T) {
	s := newSink(t)
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("hi"))
	req.Header.Set("X-Session-Id", "sess-1")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status=%d", rec.Code)
	}
	var echo Echo
	if err := json.Unmarshal(rec.Body.Bytes(), &echo); err != nil {
		t.Fatalf("decode echo: %v", err)
	}
	if echo.SessionID != "sess-1" || echo.Body != "hi" || echo.Method != http.MethodPost {
		t.Fatalf("unexpected echo=%+v", echo)
	}
}

func TestCORSPreflightAllowsSessionHeader(t *testing.T) {
	s := newSink(t)
	req := httptest.NewRequest(http.MethodOptions, "/echo", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "X-Session-Id")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	allowed := strings.ToLower(rec.Header().Get("Access-Control-Allow-Headers"))
	if !strings.Contains(allowed, "x-session-id") {
		t.Fatalf("session header not allowed: %q (status=%d)", allowed, rec.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	s := newSink(t)
	for _, path := range []string{"/health", "/metrics"} {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, rec.Code)
		}
	}
}

func TestTrackerFetchAgainstSink(t *testing.T) {
	s := newSink(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go s.ServeListener(ln)
	t.Cleanup(func() { s.Shutdown() })

	mem := transport.NewMemory()
	c, err := tracker.NewClient(mem.Bundle(), tracker.WithEnvironment(capability.Full()), tracker.WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	c.Init(tracker.Options{SiteID: 1})
	mem.SetSession("sess-live")

	req, _ := http.NewRequest(http.MethodPost, "http://"+ln.Addr().String()+"/echo", strings.NewReader("payload"))
	resp, err := c.Fetch(req)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	var echo Echo
	if err := json.Unmarshal(data, &echo); err != nil {
		t.Fatalf("decode echo: %v", err)
	}
	if echo.SessionID != "sess-live" || echo.Body != "payload" {
		t.Fatalf("unexpected echo=%+v", echo)
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(mem.Events()) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	events := mem.Events()
	if len(events) != 1 || events[0].Name != tracker.FetchEventName {
		t.Fatalf("unexpected events=%+v", events)
	}
}
