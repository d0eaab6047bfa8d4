package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/teststubs"
)

func TestFanoutPublishesToEverySink(t *testing.T) {
	failing := &teststubs.StubSink{Err: errors.New("down")}
	ok := &teststubs.StubSink{}
	f := NewFanout(failing, nil, ok)

	err := f.Publish(context.Background(), games.NewNotification(games.LeagueNHL, nil))
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Fatalf("expected joined sink error, got %v", err)
	}
	if len(ok.Published()) != 1 {
		t.Fatalf("expected later sink still published")
	}
	if len(f) != 2 {
		t.Fatalf("expected nil sink dropped, got %d", len(f))
	}
}

type fakeStream struct {
	args []*redis.XAddArgs
	err  error
}

func (f *fakeStream) XAdd(_ context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.args = append(f.args, a)
	return redis.NewStringResult("1-0", f.err)
}

func TestRedisPublisherWritesPerLeagueStream(t *testing.T) {
	stream := &fakeStream{}
	p := NewRedisPublisher(stream, "scores.updates")

	n := games.NewNotification(games.LeagueOlympicWHockey, []games.Game{{ID: "W1"}})
	n.Provider = "thesportsdb"
	if err := p.Publish(context.Background(), n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stream.args) != 1 {
		t.Fatalf("expected one XADD, got %d", len(stream.args))
	}
	got := stream.args[0]
	if got.Stream != "scores.updates.olympic_whockey" {
		t.Fatalf("unexpected stream %q", got.Stream)
	}
	values, ok := got.Values.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected values type %T", got.Values)
	}
	if values["count"] != "1" || values["provider"] != "thesportsdb" || values["degraded"] != "false" {
		t.Fatalf("unexpected values %v", values)
	}
	var back games.Notification
	if err := json.Unmarshal([]byte(values["data"].(string)), &back); err != nil || back.Games[0].ID != "W1" {
		t.Fatalf("expected notification payload, got %v err %v", values["data"], err)
	}
}

func TestRedisPublisherWrapsErrors(t *testing.T) {
	p := NewRedisPublisher(&fakeStream{err: errors.New("connection refused")}, "s")
	err := p.Publish(context.Background(), games.NewNotification(games.LeagueMLB, nil))
	if err == nil || !strings.Contains(err.Error(), "s.mlb") {
		t.Fatalf("expected wrapped error naming the stream, got %v", err)
	}
}

func dialHub(t *testing.T, h *Hub, query string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	deadline := time.Now().Add(time.Second)
	for h.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for registration")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func TestHubPushesFilteredNotifications(t *testing.T) {
	h := NewHub(nil, nil)
	conn := dialHub(t, h, "?league=nhl")

	ctx := context.Background()
	if err := h.Publish(ctx, games.NewNotification(games.LeagueNBA, nil)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := h.Publish(ctx, games.NewNotification(games.LeagueNHL, []games.Game{{ID: "g1"}})); err != nil {
		t.Fatalf("publish: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var n games.Notification
	if err := conn.ReadJSON(&n); err != nil {
		t.Fatalf("read: %v", err)
	}
	if n.League != games.LeagueNHL || n.Count != 1 {
		t.Fatalf("expected only the nhl notification, got %+v", n)
	}
}

func TestHubRejectsUnknownLeagueFilter(t *testing.T) {
	h := NewHub(nil, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ws?league=cricket", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHubCloseDisconnectsClients(t *testing.T) {
	h := NewHub(nil, []string{"*"})
	conn := dialHub(t, h, "")

	h.Close()
	if h.ClientCount() != 0 {
		t.Fatalf("expected clients cleared")
	}
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("expected connection closed")
	}
	if err := h.Publish(context.Background(), games.NewNotification(games.LeagueNHL, nil)); err != nil {
		t.Fatalf("publish after close should be a no-op, got %v", err)
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://scores.example/"})
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Origin", "https://scores.example")
	if !check(req) {
		t.Fatalf("expected configured origin accepted")
	}
	req.Header.Set("Origin", "https://evil.example")
	if check(req) {
		t.Fatalf("expected other origin rejected")
	}
}

func TestClientSendAfterCloseIsDropped(t *testing.T) {
	c := newClient("c1", nil, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.trySend([]byte("x"))
			}
		}()
	}
	c.close()
	wg.Wait()
	c.close()

	if !c.trySend([]byte("late")) {
		t.Fatalf("expected send to a closed client to be dropped, not reported as full")
	}
	for range c.send {
	}
}
