package http

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/http/handlers"
	"github.com/preston-bernstein/scoreboard-service/internal/metrics"
	"github.com/preston-bernstein/scoreboard-service/internal/notify"
	"github.com/preston-bernstein/scoreboard-service/internal/store"
)

func newTestRouter(push nethttp.Handler, origins []string) nethttp.Handler {
	h := handlers.NewHandler(store.NewMemoryStore(), []games.League{games.LeagueNHL}, nil, nil)
	return NewRouter(RouterConfig{Handler: h, Push: push, Recorder: metrics.NewRecorder(), CORSOrigins: origins})
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router := newTestRouter(nil, nil)

	cases := map[string]int{
		"/health":                nethttp.StatusOK,
		"/ready":                 nethttp.StatusOK,
		"/leagues":               nethttp.StatusOK,
		"/leagues/nhl/games":     nethttp.StatusOK,
		"/leagues/cricket/games": nethttp.StatusNotFound,
		"/ws":                    nethttp.StatusNotFound,
		"/does-not-exist":        nethttp.StatusNotFound,
	}

	for path, expected := range cases {
		req := httptest.NewRequest(nethttp.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != expected {
			t.Fatalf("route %s expected status %d, got %d", path, expected, rr.Code)
		}
		if rr.Header().Get("X-Request-ID") == "" {
			t.Fatalf("route %s missing X-Request-ID", path)
		}
	}
}

func TestRouterRejectsWrongMethod(t *testing.T) {
	router := newTestRouter(nil, nil)
	req := httptest.NewRequest(nethttp.MethodPost, "/leagues", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != nethttp.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "method not allowed") {
		t.Fatalf("expected json error body, got %s", rr.Body.String())
	}
}

func TestRouterAnswersCORSPreflight(t *testing.T) {
	router := newTestRouter(nil, []string{"https://scores.example"})

	req := httptest.NewRequest(nethttp.MethodOptions, "/leagues", nil)
	req.Header.Set("Origin", "https://scores.example")
	req.Header.Set("Access-Control-Request-Method", nethttp.MethodGet)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://scores.example" {
		t.Fatalf("expected allowed origin echoed, got %q", got)
	}
}

func TestRouterUpgradesWebsocketThroughMiddleware(t *testing.T) {
	hub := notify.NewHub(nil, nil)
	srv := httptest.NewServer(newTestRouter(hub, nil))
	defer srv.Close()
	defer hub.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?league=nhl"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for registration")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := hub.Publish(context.Background(), games.NewNotification(games.LeagueNHL, []games.Game{{ID: "g1"}})); err != nil {
		t.Fatalf("publish: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var n games.Notification
	if err := conn.ReadJSON(&n); err != nil {
		t.Fatalf("read: %v", err)
	}
	if n.Count != 1 {
		t.Fatalf("expected pushed notification, got %+v", n)
	}
}
