package thesportsdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/normalize"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
)

func TestFetchGamesFiltersDivisionAndUsesToday(t *testing.T) {
	var path, day string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		day = r.URL.Query().Get("d")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"events":[
			{"idEvent":"1","strSport":"Ice Hockey","strLeague":"Olympics Ice Hockey Women","strHomeTeam":"Canada","strAwayTeam":"Finland"},
			{"idEvent":"2","strSport":"Ice Hockey","strLeague":"Olympics Ice Hockey Men","strHomeTeam":"Sweden","strAwayTeam":"Latvia"}
		]}`))
	}))
	defer srv.Close()

	p := New(normalize.DivisionWomen, Config{BaseURL: srv.URL + "/api/v1/json", APIKey: "k1"})
	p.now = func() time.Time { return time.Date(2026, 2, 15, 1, 0, 0, 0, time.UTC) }

	list, err := p.FetchGames(context.Background(), providers.Request{League: games.LeagueOlympicWHockey})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if path != "/api/v1/json/k1/eventsday.php" || day != "2026-02-15" {
		t.Fatalf("unexpected request %s d=%s", path, day)
	}
	if len(list) != 1 || list[0].Home.Code3 != "CAN" || list[0].League != games.LeagueOlympicWHockey {
		t.Fatalf("unexpected games %+v", list)
	}
}

func TestFetchGamesNullEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"events":null}`))
	}))
	defer srv.Close()

	list, err := New(normalize.DivisionMen, Config{BaseURL: srv.URL}).FetchGames(context.Background(), providers.Request{League: games.LeagueOlympicMHockey})
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty result, got %v %v", list, err)
	}
}
