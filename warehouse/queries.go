package warehouse

import (
	"context"
	"fmt"
	"strings"
)

// Query builders for the basic statistics tools. Each builder returns a
// parameterized sql string plus its bound arguments; user input never gets
// spliced into the statement text.

// PlayerStatsFilter narrows a player statistics query
type PlayerStatsFilter struct {
	Season     string
	PlayerName string
	TeamName   string
	Limit      int
}

func buildPlayerStatsQuery(f PlayerStatsFilter) (string, []interface{}) {
	var b strings.Builder
	args := []interface{}{f.Season}

	b.WriteString(`SELECT player_name, team, goals, assists, minutes_played,
		expected_goals, expected_assists
	FROM player_season_stats
	WHERE season = $1`)

	if f.PlayerName != "" {
		args = append(args, "%"+strings.ToLower(f.PlayerName)+"%")
		fmt.Fprintf(&b, " AND LOWER(player_name) LIKE $%d", len(args))
	}
	if f.TeamName != "" {
		args = append(args, f.TeamName)
		fmt.Fprintf(&b, " AND team = $%d", len(args))
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit)
	fmt.Fprintf(&b, " ORDER BY goals DESC LIMIT $%d", len(args))

	return b.String(), args
}

// PlayerStats returns per-player totals for a season, optionally narrowed
// by player name substring and team
func PlayerStats(ctx context.Context, s Store, f PlayerStatsFilter) (*Table, error) {
	sql, args := buildPlayerStatsQuery(f)
	return s.Query(ctx, sql, args...)
}

// TeamStatsFilter narrows a team statistics query
type TeamStatsFilter struct {
	Season   string
	TeamName string
}

func buildTeamStatsQuery(f TeamStatsFilter) (string, []interface{}) {
	var b strings.Builder
	args := []interface{}{f.Season}

	b.WriteString(`SELECT team,
		SUM(goals) AS total_goals,
		SUM(assists) AS total_assists,
		SUM(expected_goals) AS total_xg,
		COUNT(*) AS squad_size
	FROM player_season_stats
	WHERE season = $1`)

	if f.TeamName != "" {
		args = append(args, f.TeamName)
		fmt.Fprintf(&b, " AND team = $%d", len(args))
	}

	b.WriteString(" GROUP BY team ORDER BY total_goals DESC")
	return b.String(), args
}

// TeamStats aggregates player rows up to team totals for a season
func TeamStats(ctx context.Context, s Store, f TeamStatsFilter) (*Table, error) {
	sql, args := buildTeamStatsQuery(f)
	return s.Query(ctx, sql, args...)
}

// Standings ranks teams by goals scored for a season
func Standings(ctx context.Context, s Store, season string) (*Table, error) {
	return s.Query(ctx, `SELECT team,
		SUM(goals) AS goals_for,
		COUNT(*) AS squad_size
	FROM player_season_stats
	WHERE season = $1
	GROUP BY team
	ORDER BY goals_for DESC`, season)
}

// MatchResultsFilter narrows a match results query
type MatchResultsFilter struct {
	Season   string
	TeamName string
	Limit    int
}

func buildMatchResultsQuery(f MatchResultsFilter) (string, []interface{}) {
	var b strings.Builder
	args := []interface{}{f.Season}

	b.WriteString(`SELECT match_date, home_team, away_team, home_goals, away_goals, attendance
	FROM matches
	WHERE season = $1`)

	if f.TeamName != "" {
		args = append(args, f.TeamName)
		fmt.Fprintf(&b, " AND (home_team = $%d OR away_team = $%d)", len(args), len(args))
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	args = append(args, limit)
	fmt.Fprintf(&b, " ORDER BY match_date DESC LIMIT $%d", len(args))

	return b.String(), args
}

// MatchResults returns recent match results for a season
func MatchResults(ctx context.Context, s Store, f MatchResultsFilter) (*Table, error) {
	sql, args := buildMatchResultsQuery(f)
	return s.Query(ctx, sql, args...)
}

// RosterFilter narrows a player roster query
type RosterFilter struct {
	PlayerName  string
	Position    string
	Nationality string
	TeamName    string
	Limit       int
}

func buildRosterQuery(f RosterFilter) (string, []interface{}) {
	var b strings.Builder
	var args []interface{}

	b.WriteString(`SELECT DISTINCT player_name, team, position, nationality
	FROM player_season_stats
	WHERE 1=1`)

	if f.PlayerName != "" {
		args = append(args, "%"+strings.ToLower(f.PlayerName)+"%")
		fmt.Fprintf(&b, " AND LOWER(player_name) LIKE $%d", len(args))
	}
	if f.Position != "" {
		args = append(args, f.Position)
		fmt.Fprintf(&b, " AND position = $%d", len(args))
	}
	if f.Nationality != "" {
		args = append(args, f.Nationality)
		fmt.Fprintf(&b, " AND nationality = $%d", len(args))
	}
	if f.TeamName != "" {
		args = append(args, f.TeamName)
		fmt.Fprintf(&b, " AND team = $%d", len(args))
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	fmt.Fprintf(&b, " ORDER BY player_name LIMIT $%d", len(args))

	return b.String(), args
}

// Roster lists distinct players matching the filter
func Roster(ctx context.Context, s Store, f RosterFilter) (*Table, error) {
	sql, args := buildRosterQuery(f)
	return s.Query(ctx, sql, args...)
}

// Teams lists every team present in the warehouse with its all-time squad
// size
func Teams(ctx context.Context, s Store) (*Table, error) {
	return s.Query(ctx, `SELECT team, COUNT(DISTINCT player_name) AS squad_size
	FROM player_season_stats
	GROUP BY team
	ORDER BY team`)
}

// TeamsForSeason lists the distinct team names for one season
func TeamsForSeason(ctx context.Context, s Store, season string) (*Table, error) {
	return s.Query(ctx, `SELECT DISTINCT team
	FROM player_season_stats
	WHERE season = $1
	ORDER BY team`, season)
}

// Correlations computes league-wide goal/xG and assist/xA correlations for
// players above a minutes threshold
func Correlations(ctx context.Context, s Store, season string, minMinutes int) (*Table, error) {
	return s.Query(ctx, `SELECT
		CORR(goals, expected_goals) AS goals_xg_correlation,
		CORR(assists, expected_assists) AS assists_xa_correlation,
		COUNT(*) AS sample_size
	FROM player_season_stats
	WHERE season = $1 AND minutes_played > $2`, season, minMinutes)
}

// MatchOutcomeCorrelations relates scoring and attendance at the match
// level for a season
func MatchOutcomeCorrelations(ctx context.Context, s Store, season string) (*Table, error) {
	return s.Query(ctx, `SELECT
		CORR(home_goals, away_goals) AS home_away_goals_correlation,
		CORR(home_goals + away_goals, attendance) AS goals_attendance_correlation,
		AVG(home_goals + away_goals) AS avg_total_goals,
		COUNT(*) AS sample_size
	FROM matches
	WHERE season = $1`, season)
}

// rawDataTables maps the get_raw_data data_type enum to warehouse tables.
// Columns are fixed per table; only bound parameters vary.
var rawDataTables = map[string]string{
	"player_stats": `SELECT player_name, team, season, position, goals, assists,
		minutes_played, expected_goals, expected_assists
	FROM player_season_stats WHERE season = $1 ORDER BY goals DESC LIMIT $2`,
	"squad_stats": `SELECT team, COUNT(*) AS players, SUM(goals) AS goals,
		SUM(assists) AS assists, SUM(expected_goals) AS xg, SUM(minutes_played) AS minutes
	FROM player_season_stats WHERE season = $1 GROUP BY team ORDER BY goals DESC LIMIT $2`,
	"games": `SELECT match_date, home_team, away_team, home_goals, away_goals, attendance
	FROM matches WHERE season = $1 ORDER BY match_date LIMIT $2`,
	"team_info": `SELECT DISTINCT team FROM player_season_stats WHERE season = $1 ORDER BY team LIMIT $2`,
}

// RawData runs the fixed statement for one of the raw data types. The
// data_type value is a catalog enum, never free text.
func RawData(ctx context.Context, s Store, dataType, season string, limit int) (*Table, error) {
	sql, ok := rawDataTables[dataType]
	if !ok {
		return nil, fmt.Errorf("unknown data type %q", dataType)
	}
	if limit <= 0 {
		limit = 50
	}
	return s.Query(ctx, sql, season, limit)
}
