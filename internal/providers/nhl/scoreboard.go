package nhl

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/logging"
	"github.com/preston-bernstein/scoreboard-service/internal/normalize"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
)

// ScoreboardProvider reads api-web.nhle.com. It tries the date-scoped score feed first and
// falls back to the "now" feed when that fails or is empty.
type ScoreboardProvider struct {
	base
}

// NewScoreboard constructs the api-web scoreboard provider.
func NewScoreboard(cfg Config) *ScoreboardProvider {
	return &ScoreboardProvider{base: newBase(cfg, ScoreboardBaseURL)}
}

func (p *ScoreboardProvider) Name() string { return ScoreboardName }

func (p *ScoreboardProvider) FetchGames(ctx context.Context, req providers.Request) ([]games.Game, error) {
	var dateErr error
	if req.HasDate() {
		list, err := p.fetch(ctx, req, p.baseURL+"/score/"+req.Date.ISO)
		if err == nil && len(list) > 0 {
			return list, nil
		}
		dateErr = err
		providers.LogStage(ctx, logging.FromContext(ctx, p.logger), slog.LevelInfo, p, req,
			"nhl dated scoreboard empty, trying now feed", "error", err)
	}

	list, err := p.fetch(ctx, req, p.baseURL+"/score/now")
	if err != nil {
		if dateErr != nil {
			return nil, dateErr
		}
		return nil, err
	}
	return list, nil
}

func (p *ScoreboardProvider) fetch(ctx context.Context, req providers.Request, target string) ([]games.Game, error) {
	payload, err := p.client.GetJSON(ctx, ScoreboardName, target, webHeaders())
	if err != nil {
		return nil, err
	}
	return normalize.NHLScoreboardGames(payload, p.meta(req, ScoreboardName)), nil
}

// Hydrate fills missing shots on goal for started games from the per-game boxscore.
// Failures are logged and leave the game unchanged.
func (p *ScoreboardProvider) Hydrate(ctx context.Context, list []games.Game) []games.Game {
	logger := logging.FromContext(ctx, p.logger)
	out := make([]games.Game, len(list))
	copy(out, list)
	for i, g := range out {
		if g.Status.State == games.StatePre || (g.Home.Shots != nil && g.Away.Shots != nil) {
			continue
		}
		payload, err := p.client.GetJSON(ctx, ScoreboardName, p.baseURL+"/gamecenter/"+g.ID+"/boxscore", webHeaders())
		if err != nil {
			logging.Warn(logger, "nhl boxscore hydration failed",
				logging.FieldProvider, ScoreboardName,
				"game_id", g.ID,
				logging.FieldErrorKind, string(providers.Classify(err)),
				"error", err,
			)
			continue
		}
		home, away := normalize.BoxscoreShots(payload)
		if out[i].Home.Shots == nil {
			out[i].Home.Shots = home
		}
		if out[i].Away.Shots == nil {
			out[i].Away.Shots = away
		}
	}
	return out
}
