// Package analytics holds the per-analysis query builders over the
// player_season_stats warehouse table: expected goals, shot quality, and
// replacement value. Each builder is a pure function of (store, filters)
// and returns a table; derived labels are computed in Go from the
// aggregated rows.
package analytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/nwsl-data/nwsl-analytics/warehouse"
)

// Calculator analyzes expected goals patterns: which players and teams
// convert chances above or below their xG.
type Calculator struct {
	store warehouse.Store
}

// NewCalculator creates an expected goals calculator over the given store
func NewCalculator(store warehouse.Store) *Calculator {
	return &Calculator{store: store}
}

// PlayerFilter narrows a player xG analysis
type PlayerFilter struct {
	Season     string
	PlayerName string
	Team       string
}

func buildPlayerXGQuery(f PlayerFilter) (string, []interface{}) {
	var b strings.Builder
	args := []interface{}{f.Season}

	b.WriteString(`SELECT player_name, team, season, position,
		goals, assists,
		expected_goals, non_penalty_xg, expected_assists,
		minutes_played, nineties,
		goals_per_90, xg_per_90,
		CASE WHEN expected_goals > 0 THEN goals / expected_goals ELSE NULL END AS goal_conversion_rate,
		CASE WHEN expected_assists > 0 THEN assists / expected_assists ELSE NULL END AS assist_conversion_rate,
		goals - expected_goals AS goals_vs_expected,
		assists - expected_assists AS assists_vs_expected
	FROM player_season_stats
	WHERE season = $1`)

	if f.PlayerName != "" {
		args = append(args, "%"+strings.ToLower(f.PlayerName)+"%")
		fmt.Fprintf(&b, " AND LOWER(player_name) LIKE $%d", len(args))
	}
	if f.Team != "" {
		args = append(args, f.Team)
		fmt.Fprintf(&b, " AND team = $%d", len(args))
	}

	b.WriteString(" ORDER BY expected_goals DESC, goals DESC")
	return b.String(), args
}

// PlayerAnalysis returns per-player xG efficiency rows for a season
func (c *Calculator) PlayerAnalysis(ctx context.Context, f PlayerFilter) (*warehouse.Table, error) {
	sql, args := buildPlayerXGQuery(f)
	return c.store.Query(ctx, sql, args...)
}

// Overperformers finds players whose goals diverge most from their xG.
// Players below the minutes floor or with trivial xG are excluded; the
// 0.5 xG floor filters out noise from tiny samples.
func (c *Calculator) Overperformers(ctx context.Context, season string, minMinutes int) (*warehouse.Table, error) {
	return c.store.Query(ctx, `SELECT player_name, team, position,
		minutes_played,
		goals AS actual_goals,
		expected_goals,
		goals - expected_goals AS goals_vs_expected,
		CASE WHEN expected_goals > 0 THEN goals / expected_goals ELSE NULL END AS conversion_rate
	FROM player_season_stats
	WHERE season = $1 AND minutes_played >= $2 AND expected_goals > 0.5
	ORDER BY goals_vs_expected DESC`, season, minMinutes)
}

// TeamEfficiency aggregates xG conversion up to team level
func (c *Calculator) TeamEfficiency(ctx context.Context, season string) (*warehouse.Table, error) {
	return c.store.Query(ctx, `SELECT team AS team_name,
		COUNT(*) AS squad_size,
		SUM(goals) AS total_goals,
		SUM(expected_goals) AS total_xg,
		SUM(goals) / NULLIF(SUM(expected_goals), 0) AS team_conversion_rate,
		SUM(goals) - SUM(expected_goals) AS goals_vs_expected,
		COUNT(CASE WHEN goals >= 5 THEN 1 END) AS goalscorers_5plus
	FROM player_season_stats
	WHERE season = $1
	GROUP BY team
	ORDER BY total_xg DESC`, season)
}

// LeaguePatterns computes league-wide goal generation rates for a season
func (c *Calculator) LeaguePatterns(ctx context.Context, season string) (*warehouse.Table, error) {
	return c.store.Query(ctx, `SELECT
		COUNT(*) AS total_players,
		SUM(goals) AS total_goals,
		SUM(expected_goals) AS total_expected_goals,
		SUM(minutes_played) AS total_minutes,
		SUM(goals) * 90.0 / NULLIF(SUM(minutes_played), 0) AS league_goals_per_90,
		SUM(expected_goals) * 90.0 / NULLIF(SUM(minutes_played), 0) AS league_xg_per_90,
		SUM(goals) / NULLIF(SUM(expected_goals), 0) AS league_conversion_rate
	FROM player_season_stats
	WHERE season = $1`, season)
}

// PerformanceCategory classifies a player's goals-vs-expected differential
func PerformanceCategory(goalsVsExpected float64) string {
	switch {
	case goalsVsExpected >= 2:
		return "Major Overperformer"
	case goalsVsExpected >= 1:
		return "Overperformer"
	case goalsVsExpected <= -2:
		return "Major Underperformer"
	case goalsVsExpected <= -1:
		return "Underperformer"
	default:
		return "Expected"
	}
}

// SignificanceLevel gives a rough statistical weight to an xG differential
func SignificanceLevel(expectedGoals, goalsVsExpected float64) string {
	abs := goalsVsExpected
	if abs < 0 {
		abs = -abs
	}
	switch {
	case expectedGoals >= 3 && abs >= 2:
		return "Significant"
	case expectedGoals >= 1.5 && abs >= 1:
		return "Moderate"
	default:
		return "Minimal"
	}
}
