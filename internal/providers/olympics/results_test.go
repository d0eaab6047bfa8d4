package olympics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/normalize"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
	"github.com/preston-bernstein/scoreboard-service/internal/timeutil"
)

const units = `{"units":[
	{"id":"M1","discipline":"Ice Hockey","gender":"M","startDate":"2026-02-14T20:10:00Z","status":"FINISHED",
	 "competitors":[{"noc":"CAN","results":{"mark":"5"}},{"noc":"SUI","results":{"mark":"0"}}]},
	{"id":"M2","discipline":"Ice Hockey","gender":"M","startDate":"2026-02-16T12:10:00Z",
	 "competitors":[{"noc":"USA"},{"noc":"GER"}]},
	{"id":"W1","discipline":"Ice Hockey","gender":"W","startDate":"2026-02-14T16:40:00Z",
	 "competitors":[{"noc":"FIN"},{"noc":"SWE"}]}
]}`

func page(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Origin") == "" || r.Header.Get("Referer") == "" {
			t.Errorf("expected browser headers, got %v", r.Header)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func day(t *testing.T, iso string) timeutil.TargetDate {
	t.Helper()
	d, err := timeutil.ParseDate(iso)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return timeutil.NewTargetDate(d)
}

func TestResultsFromNextData(t *testing.T) {
	srv := page(t, `<html><head><script id="__NEXT_DATA__" type="application/json">{"props":{"pageProps":`+units+`}}</script></head></html>`)
	p := NewResults(normalize.DivisionMen, ResultsConfig{URL: srv.URL + "/results"})

	list, err := p.FetchGames(context.Background(), providers.Request{League: games.LeagueOlympicMHockey, Date: day(t, "2026-02-14")})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(list) != 1 || list[0].ID != "M1" || list[0].Home.Code3 != "CAN" || list[0].Status.State != games.StateFinal {
		t.Fatalf("expected only the men's game on the requested day, got %+v", list)
	}
}

func TestResultsFromInitialState(t *testing.T) {
	html := `<html><body><script>var x = 1;</script><script>window.__INITIAL_STATE__ = ` + units + `; window.other = {"a":"}"};</script></body></html>`
	srv := page(t, html)
	p := NewResults(normalize.DivisionWomen, ResultsConfig{URL: srv.URL})

	list, err := p.FetchGames(context.Background(), providers.Request{League: games.LeagueOlympicWHockey})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(list) != 1 || list[0].ID != "W1" {
		t.Fatalf("unexpected games %+v", list)
	}
}

func TestResultsWithoutMarkersIsEmpty(t *testing.T) {
	srv := page(t, `<html><body><p>Results coming soon</p></body></html>`)
	list, err := NewResults(normalize.DivisionMen, ResultsConfig{URL: srv.URL}).FetchGames(context.Background(), providers.Request{League: games.LeagueOlympicMHockey})
	if err != nil || len(list) != 0 {
		t.Fatalf("expected no games and no error, got %v %v", list, err)
	}
}

func TestResultsMalformedStateIsParseError(t *testing.T) {
	srv := page(t, `<script id="__NEXT_DATA__">{"props":</script>`)
	_, err := NewResults(normalize.DivisionMen, ResultsConfig{URL: srv.URL}).FetchGames(context.Background(), providers.Request{})
	if providers.Classify(err) != providers.KindParse {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestResultsFiltersByLocalDate(t *testing.T) {
	srv := page(t, `<script id="__NEXT_DATA__">`+units+`</script>`)
	rome, _ := time.LoadLocation("Europe/Rome")
	p := NewResults(normalize.DivisionMen, ResultsConfig{URL: srv.URL, Location: rome})

	list, _ := p.FetchGames(context.Background(), providers.Request{League: games.LeagueOlympicMHockey, Date: day(t, "2026-02-16")})
	if len(list) != 1 || list[0].ID != "M2" {
		t.Fatalf("unexpected games %+v", list)
	}
}

func TestBalancedObjectHonorsStrings(t *testing.T) {
	got := balancedObject(` = {"a":"}{","b":{"c":"\"}"}}; trailing`)
	if got != `{"a":"}{","b":{"c":"\"}"}}` {
		t.Fatalf("unexpected %q", got)
	}
	if balancedObject("no object") != "" || balancedObject("{unterminated") != "" {
		t.Fatalf("expected empty for missing or unterminated objects")
	}
}

func TestPlaceholdersAreEmpty(t *testing.T) {
	for _, p := range []providers.Provider{NewOlympicsCom(), NewIIHF(), NewWikipediaFinals()} {
		list, err := p.FetchGames(context.Background(), providers.Request{League: games.LeagueOlympicMHockey})
		if err != nil || len(list) != 0 {
			t.Fatalf("%s: expected empty result, got %v %v", p.Name(), list, err)
		}
	}
}
