package config

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected defaults to load, got %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.PollInterval != defaultPollInterval {
		t.Fatalf("expected default poll interval %s, got %s", defaultPollInterval, cfg.PollInterval)
	}
	if !reflect.DeepEqual(cfg.Leagues, games.AllLeagues) {
		t.Fatalf("expected all leagues by default, got %v", cfg.Leagues)
	}
	if cfg.Location == nil || cfg.Location.String() != defaultTimezone {
		t.Fatalf("expected default timezone %s, got %v", defaultTimezone, cfg.Location)
	}
	if cfg.ProviderCacheTTL != defaultCacheTTL {
		t.Fatalf("expected default cache ttl %s, got %s", defaultCacheTTL, cfg.ProviderCacheTTL)
	}
	if cfg.Redis.Addr != "" {
		t.Fatalf("expected redis sink disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envPort, "5000")
	t.Setenv(envPollInterval, "45s")
	t.Setenv(envLeagues, "nfl, nhl")
	t.Setenv(envTimezone, "Europe/Rome")
	t.Setenv(envProviderCacheTTL, "30s")
	t.Setenv(envRedisAddr, "localhost:6379")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.PollInterval != 45*time.Second {
		t.Fatalf("expected poll interval 45s, got %s", cfg.PollInterval)
	}
	if !reflect.DeepEqual(cfg.Leagues, []games.League{games.LeagueNHL, games.LeagueNFL}) {
		t.Fatalf("expected canonical order nhl,nfl got %v", cfg.Leagues)
	}
	if cfg.Timezone != "Europe/Rome" {
		t.Fatalf("expected timezone override, got %s", cfg.Timezone)
	}
	if cfg.ProviderCacheTTL != 30*time.Second {
		t.Fatalf("expected cache ttl 30s, got %s", cfg.ProviderCacheTTL)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.StreamPrefix != defaultStreamPrefix {
		t.Fatalf("unexpected redis config %+v", cfg.Redis)
	}
}

func TestLoadClampsMinimums(t *testing.T) {
	t.Setenv(envPollInterval, "2s")
	t.Setenv(envProviderCacheTTL, "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if cfg.PollInterval != minPollInterval {
		t.Fatalf("expected poll interval clamped to %s, got %s", minPollInterval, cfg.PollInterval)
	}
	if cfg.ProviderCacheTTL != minCacheTTL {
		t.Fatalf("expected cache ttl clamped to %s, got %s", minCacheTTL, cfg.ProviderCacheTTL)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv(envPollInterval, "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if cfg.PollInterval != defaultPollInterval {
		t.Fatalf("expected default poll interval on invalid value, got %s", cfg.PollInterval)
	}
}

func TestLoadRejectsEmptyLeagueSelection(t *testing.T) {
	t.Setenv(envLeagues, " , ")

	if _, err := Load(); !errors.Is(err, ErrNoLeagues) {
		t.Fatalf("expected ErrNoLeagues, got %v", err)
	}
}

func TestLoadRejectsUnknownLeague(t *testing.T) {
	t.Setenv(envLeagues, "nhl,curling")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown league")
	}
}

func TestLoadRejectsInvalidTimezone(t *testing.T) {
	t.Setenv(envTimezone, "Not/AZone")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}

func TestParseLeaguesAllAndSingle(t *testing.T) {
	single, err := ParseLeagues("olympic_whockey")
	if err != nil || len(single) != 1 || single[0] != games.LeagueOlympicWHockey {
		t.Fatalf("unexpected single selection %v %v", single, err)
	}
	mixed, err := ParseLeagues("nba,ALL,nba")
	if err != nil || len(mixed) != len(games.AllLeagues) {
		t.Fatalf("expected all leagues once, got %v %v", mixed, err)
	}
}
