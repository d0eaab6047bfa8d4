package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
)

// ErrNoLeagues is returned when the league selection resolves to nothing to poll.
var ErrNoLeagues = errors.New("config: no leagues selected")

// Config holds runtime configuration for the service.
type Config struct {
	Port              string
	PollInterval      Duration
	Leagues           []games.League
	Timezone          string
	Location          *time.Location
	ProviderCacheTTL  Duration
	HTTPTimeout       Duration
	RetryAttempts     int
	OlympicResultsURL string
	CORSOrigins       []string
	Redis             RedisConfig
	Metrics           MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
// An empty league selection or an unknown timezone is an error rather than a silent default.
func Load() (Config, error) {
	leagues, err := ParseLeagues(envOrDefault(envLeagues, defaultLeagues))
	if err != nil {
		return Config{}, err
	}

	tz := envOrDefault(envTimezone, defaultTimezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Config{}, fmt.Errorf("config: invalid %s %q: %w", envTimezone, tz, err)
	}

	return Config{
		Port:              envOrDefault(envPort, defaultPort),
		PollInterval:      atLeast(durationEnvOrDefault(envPollInterval, defaultPollInterval), minPollInterval),
		Leagues:           leagues,
		Timezone:          tz,
		Location:          loc,
		ProviderCacheTTL:  atLeast(durationEnvOrDefault(envProviderCacheTTL, defaultCacheTTL), minCacheTTL),
		HTTPTimeout:       durationEnvOrDefault(envHTTPTimeout, defaultHTTPTimeout),
		RetryAttempts:     intEnvOrDefault(envRetryAttempts, defaultRetryAttempts),
		OlympicResultsURL: envOrDefault(envOlympicResultsURL, defaultOlympicResultsURL),
		CORSOrigins:       splitList(envOrDefault(envCORSOrigins, defaultCORSOrigins)),
		Redis:             loadRedis(),
		Metrics:           loadMetrics(),
	}, nil
}

// ParseLeagues accepts a single league, a comma separated list, or "all".
// Duplicates are dropped; the result keeps the canonical polling order.
func ParseLeagues(raw string) ([]games.League, error) {
	items := splitList(raw)
	if len(items) == 0 {
		return nil, ErrNoLeagues
	}

	selected := make(map[games.League]bool, len(items))
	for _, item := range items {
		if strings.EqualFold(item, "all") {
			for _, l := range games.AllLeagues {
				selected[l] = true
			}
			continue
		}
		league, err := games.ParseLeague(item)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", envLeagues, err)
		}
		selected[league] = true
	}

	out := make([]games.League, 0, len(selected))
	for _, l := range games.AllLeagues {
		if selected[l] {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoLeagues
	}
	return out, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atLeast(v, min Duration) Duration {
	if v < min {
		return min
	}
	return v
}
