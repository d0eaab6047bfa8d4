package olympics

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/logging"
	"github.com/preston-bernstein/scoreboard-service/internal/normalize"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
)

const (
	DefaultResultsURL = "https://www.olympics.com/en/milano-cortina-2026/results/ice-hockey"
	ResultsName       = "olympic-results"

	initialStateMarker = "window.__INITIAL_STATE__"
)

var errNoEmbeddedState = errors.New("no embedded state")

// ResultsConfig controls the results-page scrape.
type ResultsConfig struct {
	URL      string
	Client   *providers.HTTPClient
	Logger   *slog.Logger
	Location *time.Location
}

// ResultsProvider scrapes the JSON state a results page embeds for client hydration.
type ResultsProvider struct {
	division normalize.Division
	pageURL  string
	client   *providers.HTTPClient
	logger   *slog.Logger
	loc      *time.Location
	now      func() time.Time
}

// NewResults constructs the scrape for one division.
func NewResults(division normalize.Division, cfg ResultsConfig) *ResultsProvider {
	page := cfg.URL
	if page == "" {
		page = DefaultResultsURL
	}
	client := cfg.Client
	if client == nil {
		client = providers.NewHTTPClient(nil, 0)
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &ResultsProvider{
		division: division,
		pageURL:  page,
		client:   client,
		logger:   cfg.Logger,
		loc:      loc,
		now:      time.Now,
	}
}

func (p *ResultsProvider) Name() string { return ResultsName }

// FetchGames returns the division's games scheduled on the requested local date. A page
// without either embedded state marker yields no games.
func (p *ResultsProvider) FetchGames(ctx context.Context, req providers.Request) ([]games.Game, error) {
	body, err := p.client.GetHTML(ctx, ResultsName, p.pageURL, providers.BrowserHeaders(origin(p.pageURL)))
	if err != nil {
		return nil, err
	}

	payload, err := embeddedState(body)
	if errors.Is(err, errNoEmbeddedState) {
		providers.LogStage(ctx, logging.FromContext(ctx, p.logger), slog.LevelInfo, p, req, "results page has no embedded state")
		return nil, nil
	}
	if err != nil {
		return nil, &providers.ParseError{Provider: ResultsName, Err: err}
	}

	meta := normalize.Meta{League: req.League, Provider: ResultsName, FetchedAt: p.now()}
	all := normalize.ResultsEntries(payload, meta, p.division)
	if !req.HasDate() {
		return all, nil
	}
	out := make([]games.Game, 0, len(all))
	for _, g := range all {
		if start, ok := g.StartTime(); !ok || start.In(p.loc).Format("2006-01-02") == req.Date.ISO {
			out = append(out, g)
		}
	}
	return out, nil
}

// embeddedState extracts the page-data script (__NEXT_DATA__) or, failing that, the object
// assigned to window.__INITIAL_STATE__.
func embeddedState(page []byte) (any, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	if data := strings.TrimSpace(doc.Find("script#__NEXT_DATA__").First().Text()); data != "" {
		var payload any
		if err := json.Unmarshal([]byte(data), &payload); err != nil {
			return nil, fmt.Errorf("decode __NEXT_DATA__: %w", err)
		}
		return payload, nil
	}

	var blob string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if idx := strings.Index(text, initialStateMarker); idx >= 0 {
			blob = balancedObject(text[idx+len(initialStateMarker):])
			return false
		}
		return true
	})
	if blob == "" {
		return nil, errNoEmbeddedState
	}
	var payload any
	if err := json.Unmarshal([]byte(blob), &payload); err != nil {
		return nil, fmt.Errorf("decode %s: %w", initialStateMarker, err)
	}
	return payload, nil
}

// balancedObject returns the first {...} literal in s, honoring JSON string escapes.
func balancedObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

func origin(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Scheme + "://" + u.Host
}
