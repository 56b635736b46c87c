package sync

import (
	"context"

	"matchday-companion/internal/cache"
	"matchday-companion/internal/domain/fixtures"
	"matchday-companion/internal/domain/leaderboard"
)

// Source reports where a read was ultimately served from, for status
// messaging in the UI.
type Source string

const (
	SourceServer Source = "server"
	SourceCache  Source = "cache"
	SourceSeed   Source = "seed"
)

// FixturesResult carries a fixture listing and its provenance.
type FixturesResult struct {
	Fixtures []fixtures.Fixture `json:"fixtures"`
	Source   Source             `json:"source"`
}

// FetchUpcomingFixtures returns upcoming matches, preferring the server.
// On a successful fetch the cached collection is replaced wholesale. On any
// failure the cache is served instead, and on a cold offline start the
// built-in seed set keeps the first paint non-empty. This never fails.
func (e *Engine) FetchUpcomingFixtures(ctx context.Context) FixturesResult {
	return e.fetchFixtures(ctx, cache.KeyUpcomingMatches, e.api.UpcomingMatches, true)
}

// FetchPastFixtures returns completed matches with the same server-then-cache
// degradation. There is no seed for results: an empty history renders empty.
func (e *Engine) FetchPastFixtures(ctx context.Context) FixturesResult {
	return e.fetchFixtures(ctx, cache.KeyPastMatches, e.api.PastMatches, false)
}

func (e *Engine) fetchFixtures(ctx context.Context, key string, fetch func(context.Context) ([]fixtures.Fixture, error), seedFallback bool) FixturesResult {
	fetched, err := fetch(ctx)
	if err == nil {
		if cacheErr := e.cache.ReplaceFixtures(key, fetched); cacheErr != nil {
			e.logError("caching fixtures failed", cacheErr, "key", key)
		}
		return FixturesResult{Fixtures: fetched, Source: SourceServer}
	}

	e.logWarn("fixture fetch failed, serving cache", "key", key, "error", err)
	e.recorder.RecordCacheFallback(key)

	cached, ok, cacheErr := e.cache.Fixtures(key)
	if cacheErr != nil {
		e.logError("reading cached fixtures failed", cacheErr, "key", key)
	}
	if ok {
		return FixturesResult{Fixtures: cached, Source: SourceCache}
	}
	if seedFallback {
		return FixturesResult{Fixtures: fixtures.Seed(e.now()), Source: SourceSeed}
	}
	return FixturesResult{Fixtures: []fixtures.Fixture{}, Source: SourceCache}
}

// LeaderboardResult carries the standings and their provenance.
type LeaderboardResult struct {
	Entries []leaderboard.Entry `json:"entries"`
	Source  Source              `json:"source"`
}

// FetchLeaderboard returns the contest standings with a simple cache
// fallback.
func (e *Engine) FetchLeaderboard(ctx context.Context) LeaderboardResult {
	entries, err := e.api.Leaderboard(ctx)
	if err == nil {
		if cacheErr := e.cache.ReplaceLeaderboard(entries); cacheErr != nil {
			e.logError("caching leaderboard failed", cacheErr)
		}
		return LeaderboardResult{Entries: entries, Source: SourceServer}
	}

	e.logWarn("leaderboard fetch failed, serving cache", "error", err)
	e.recorder.RecordCacheFallback(cache.KeyLeaderboard)

	cached, ok, cacheErr := e.cache.Leaderboard()
	if cacheErr != nil {
		e.logError("reading cached leaderboard failed", cacheErr)
	}
	if !ok {
		cached = []leaderboard.Entry{}
	}
	return LeaderboardResult{Entries: cached, Source: SourceCache}
}
