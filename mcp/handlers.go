package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/nwsl-data/nwsl-analytics/analytics"
	"github.com/nwsl-data/nwsl-analytics/warehouse"
)

// Tool handlers. Each one owns its formatting; backend failures come back
// as descriptive text so the protocol layer only ever sees a result.

func (s *Server) handleRawData(ctx context.Context, args map[string]interface{}) (string, error) {
	season := argString(args, "season")
	if season == "" {
		return seasonRequired, nil
	}
	dataType := argString(args, "data_type")
	limit := argInt(args, "limit", 50)

	table, err := warehouse.RawData(ctx, s.store, dataType, season, limit)
	if err != nil {
		return queryFailed("Raw data query", err), nil
	}
	title := fmt.Sprintf("NWSL %s, %s season", dataType, season)
	return formatRawTable(title, table), nil
}

func (s *Server) handlePlayerStats(ctx context.Context, args map[string]interface{}) (string, error) {
	season := argString(args, "season")
	if season == "" {
		return seasonRequired, nil
	}

	table, err := warehouse.PlayerStats(ctx, s.store, warehouse.PlayerStatsFilter{
		Season:     season,
		PlayerName: argString(args, "player_name"),
		TeamName:   s.normalizeTeam(argString(args, "team_name")),
		Limit:      argInt(args, "limit", 20),
	})
	if err != nil {
		return queryFailed("Player stats query", err), nil
	}
	if table.Empty() {
		return noData("players", season), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "NWSL Player Statistics, %s season (%d players):\n\n", season, table.Len())
	for i := 0; i < table.Len(); i++ {
		name, _ := table.String(i, "player_name")
		team, _ := table.String(i, "team")
		goals, gok := table.Int(i, "goals")
		assists, aok := table.Int(i, "assists")
		minutes, mok := table.Int(i, "minutes_played")
		xg, xgok := table.Float(i, "expected_goals")
		xa, xaok := table.Float(i, "expected_assists")
		fmt.Fprintf(&b, "• %s (%s): %s goals, %s assists, %s minutes | xG %s, xA %s\n",
			name, team, fmtCount(goals, gok), fmtCount(assists, aok), fmtCount(minutes, mok),
			fmtXG(xg, xgok), fmtXG(xa, xaok))
	}
	return b.String(), nil
}

func (s *Server) handleTeamStats(ctx context.Context, args map[string]interface{}) (string, error) {
	season := argString(args, "season")
	if season == "" {
		return seasonRequired, nil
	}

	table, err := warehouse.TeamStats(ctx, s.store, warehouse.TeamStatsFilter{
		Season:   season,
		TeamName: s.normalizeTeam(argString(args, "team_name")),
	})
	if err != nil {
		return queryFailed("Team stats query", err), nil
	}
	if table.Empty() {
		return noData("teams", season), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "NWSL Team Statistics, %s season:\n\n", season)
	for i := 0; i < table.Len(); i++ {
		team, _ := table.String(i, "team")
		goals, gok := table.Int(i, "total_goals")
		assists, aok := table.Int(i, "total_assists")
		xg, xgok := table.Float(i, "total_xg")
		squad, sok := table.Int(i, "squad_size")
		fmt.Fprintf(&b, "• %s: %s goals, %s assists, xG %s, %s players\n",
			team, fmtCount(goals, gok), fmtCount(assists, aok), fmtXG(xg, xgok), fmtCount(squad, sok))
	}
	return b.String(), nil
}

func (s *Server) handleStandings(ctx context.Context, args map[string]interface{}) (string, error) {
	season := argString(args, "season")
	if season == "" {
		return seasonRequired, nil
	}

	table, err := warehouse.Standings(ctx, s.store, season)
	if err != nil {
		return queryFailed("Standings query", err), nil
	}
	if table.Empty() {
		return noData("standings", season), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "NWSL Standings by goals scored, %s season:\n\n", season)
	for i := 0; i < table.Len(); i++ {
		team, _ := table.String(i, "team")
		goals, gok := table.Int(i, "goals_for")
		squad, sok := table.Int(i, "squad_size")
		fmt.Fprintf(&b, "%d. %s — %s goals (%s players)\n",
			i+1, team, fmtCount(goals, gok), fmtCount(squad, sok))
	}
	return b.String(), nil
}

func (s *Server) handleMatchResults(ctx context.Context, args map[string]interface{}) (string, error) {
	season := argString(args, "season")
	if season == "" {
		return seasonRequired, nil
	}

	table, err := warehouse.MatchResults(ctx, s.store, warehouse.MatchResultsFilter{
		Season:   season,
		TeamName: s.normalizeTeam(argString(args, "team_name")),
		Limit:    argInt(args, "limit", 10),
	})
	if err != nil {
		return queryFailed("Match results query", err), nil
	}
	if table.Empty() {
		return noData("matches", season), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "NWSL Match Results, %s season (%d matches):\n\n", season, table.Len())
	for i := 0; i < table.Len(); i++ {
		home, _ := table.String(i, "home_team")
		away, _ := table.String(i, "away_team")
		hg, hok := table.Int(i, "home_goals")
		ag, aok := table.Int(i, "away_goals")
		att, attok := table.Int(i, "attendance")
		fmt.Fprintf(&b, "• %s: %s %s - %s %s (attendance: %s)\n",
			formatCell(table.Get(i, "match_date")), home, fmtCount(hg, hok),
			fmtCount(ag, aok), away, fmtCount(att, attok))
	}
	return b.String(), nil
}

func (s *Server) handleRoster(ctx context.Context, args map[string]interface{}) (string, error) {
	table, err := warehouse.Roster(ctx, s.store, warehouse.RosterFilter{
		PlayerName:  argString(args, "player_name"),
		Position:    argString(args, "position"),
		Nationality: argString(args, "nationality"),
		TeamName:    s.normalizeTeam(argString(args, "team_name")),
		Limit:       argInt(args, "limit", 50),
	})
	if err != nil {
		return queryFailed("Roster query", err), nil
	}
	if table.Empty() {
		return "No players found matching those filters.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "NWSL Players (%d matching):\n\n", table.Len())
	for i := 0; i < table.Len(); i++ {
		name, _ := table.String(i, "player_name")
		team, _ := table.String(i, "team")
		fmt.Fprintf(&b, "• %s — %s, %s, %s\n", name, team,
			formatCell(table.Get(i, "position")), formatCell(table.Get(i, "nationality")))
	}
	return b.String(), nil
}

func (s *Server) handleAnalyzePlayer(ctx context.Context, args map[string]interface{}) (string, error) {
	season := argString(args, "season")
	if season == "" {
		return seasonRequired, nil
	}
	playerName := argString(args, "player_name")

	table, err := s.xg.PlayerAnalysis(ctx, analytics.PlayerFilter{
		Season:     season,
		PlayerName: playerName,
	})
	if err != nil {
		return queryFailed("Player analysis", err), nil
	}
	if table.Empty() {
		return fmt.Sprintf("No data found for player '%s' in the %s season.", playerName, season), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Performance Analysis: %s season\n\n", season)
	for i := 0; i < table.Len(); i++ {
		name, _ := table.String(i, "player_name")
		team, _ := table.String(i, "team")
		goals, gok := table.Int(i, "goals")
		assists, aok := table.Int(i, "assists")
		minutes, mok := table.Int(i, "minutes_played")
		xg, xgok := table.Float(i, "expected_goals")
		xa, xaok := table.Float(i, "expected_assists")
		gve, gveok := table.Float(i, "goals_vs_expected")
		conv, convok := table.Float(i, "goal_conversion_rate")

		fmt.Fprintf(&b, "%s (%s):\n", name, team)
		fmt.Fprintf(&b, "  Output: %s goals, %s assists in %s minutes\n",
			fmtCount(goals, gok), fmtCount(assists, aok), fmtCount(minutes, mok))
		fmt.Fprintf(&b, "  Expected: xG %s, xA %s\n", fmtXG(xg, xgok), fmtXG(xa, xaok))
		fmt.Fprintf(&b, "  Conversion rate: %s\n", fmtRatio(conv, convok))
		if gveok {
			fmt.Fprintf(&b, "  Goals vs expected: %+.1f (%s, %s significance)\n",
				gve, analytics.PerformanceCategory(gve),
				strings.ToLower(analytics.SignificanceLevel(xg, gve)))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func (s *Server) handleAnalyzeTeam(ctx context.Context, args map[string]interface{}) (string, error) {
	season := argString(args, "season")
	if season == "" {
		return seasonRequired, nil
	}
	teamName := s.normalizeTeam(argString(args, "team_name"))

	totals, err := warehouse.TeamStats(ctx, s.store, warehouse.TeamStatsFilter{
		Season:   season,
		TeamName: teamName,
	})
	if err != nil {
		return queryFailed("Team analysis", err), nil
	}
	if totals.Empty() {
		return fmt.Sprintf("No data found for team '%s' in the %s season.", teamName, season), nil
	}

	goals, gok := totals.Int(0, "total_goals")
	assists, aok := totals.Int(0, "total_assists")
	xg, xgok := totals.Float(0, "total_xg")
	squad, sok := totals.Int(0, "squad_size")

	var b strings.Builder
	fmt.Fprintf(&b, "Team Analysis: %s, %s season\n\n", teamName, season)
	fmt.Fprintf(&b, "Totals: %s goals, %s assists, xG %s across %s players\n",
		fmtCount(goals, gok), fmtCount(assists, aok), fmtXG(xg, xgok), fmtCount(squad, sok))
	if gok && xgok && xg > 0 {
		conv := float64(goals) / xg
		fmt.Fprintf(&b, "Finishing: conversion rate %.2f (%s)\n",
			conv, analytics.TeamFinishing(conv))
	}

	scorers, err := warehouse.PlayerStats(ctx, s.store, warehouse.PlayerStatsFilter{
		Season:   season,
		TeamName: teamName,
		Limit:    5,
	})
	if err == nil && !scorers.Empty() {
		b.WriteString("\nTop scorers:\n")
		for i := 0; i < scorers.Len(); i++ {
			name, _ := scorers.String(i, "player_name")
			pg, pgok := scorers.Int(i, "goals")
			pa, paok := scorers.Int(i, "assists")
			fmt.Fprintf(&b, "• %s: %s goals, %s assists\n",
				name, fmtCount(pg, pgok), fmtCount(pa, paok))
		}
	}
	return b.String(), nil
}

func (s *Server) handleCorrelations(ctx context.Context, args map[string]interface{}) (string, error) {
	season := argString(args, "season")
	if season == "" {
		return seasonRequired, nil
	}
	analysisType := argString(args, "analysis_type")
	focus := argString(args, "metric_focus")

	var b strings.Builder
	fmt.Fprintf(&b, "Correlation Analysis (%s), %s season", analysisType, season)
	if focus != "" {
		fmt.Fprintf(&b, " — focus: %s", focus)
	}
	b.WriteString("\n\n")

	if analysisType == "match_outcomes" {
		table, err := warehouse.MatchOutcomeCorrelations(ctx, s.store, season)
		if err != nil {
			return queryFailed("Correlation analysis", err), nil
		}
		if table.Empty() {
			return noData("matches", season), nil
		}
		hag, hok := table.Float(0, "home_away_goals_correlation")
		gac, gok := table.Float(0, "goals_attendance_correlation")
		avg, avgok := table.Float(0, "avg_total_goals")
		n, nok := table.Int(0, "sample_size")
		fmt.Fprintf(&b, "• Home vs away goals: %s\n", fmtRatio(hag, hok))
		fmt.Fprintf(&b, "• Total goals vs attendance: %s\n", fmtRatio(gac, gok))
		fmt.Fprintf(&b, "• Average total goals per match: %s\n", fmtRatio(avg, avgok))
		fmt.Fprintf(&b, "• Sample size: %s matches\n", fmtCount(n, nok))
		return b.String(), nil
	}

	table, err := warehouse.Correlations(ctx, s.store, season, s.minMinutes)
	if err != nil {
		return queryFailed("Correlation analysis", err), nil
	}
	if table.Empty() {
		return noData("qualifying players", season), nil
	}
	gx, gok := table.Float(0, "goals_xg_correlation")
	ax, aok := table.Float(0, "assists_xa_correlation")
	n, nok := table.Int(0, "sample_size")
	fmt.Fprintf(&b, "• Goals vs expected goals: %s\n", fmtRatio(gx, gok))
	fmt.Fprintf(&b, "• Assists vs expected assists: %s\n", fmtRatio(ax, aok))
	fmt.Fprintf(&b, "• Sample size: %s players with %d+ minutes\n", fmtCount(n, nok), s.minMinutes)
	return b.String(), nil
}

func (s *Server) handleCompareTeams(ctx context.Context, args map[string]interface{}) (string, error) {
	season := argString(args, "season")
	if season == "" {
		return seasonRequired, nil
	}
	team1 := s.normalizeTeam(argString(args, "team1"))
	team2 := s.normalizeTeam(argString(args, "team2"))

	table, err := warehouse.TeamStats(ctx, s.store, warehouse.TeamStatsFilter{Season: season})
	if err != nil {
		return queryFailed("Team comparison", err), nil
	}

	row := func(team string) (int, bool) {
		for i := 0; i < table.Len(); i++ {
			if name, _ := table.String(i, "team"); name == team {
				return i, true
			}
		}
		return 0, false
	}

	i1, ok1 := row(team1)
	i2, ok2 := row(team2)
	if !ok1 {
		return fmt.Sprintf("No data found for team '%s' in the %s season.", team1, season), nil
	}
	if !ok2 {
		return fmt.Sprintf("No data found for team '%s' in the %s season.", team2, season), nil
	}

	line := func(i int) string {
		team, _ := table.String(i, "team")
		goals, gok := table.Int(i, "total_goals")
		assists, aok := table.Int(i, "total_assists")
		xg, xgok := table.Float(i, "total_xg")
		squad, sok := table.Int(i, "squad_size")
		return fmt.Sprintf("%s: %s goals, %s assists, xG %s, %s players",
			team, fmtCount(goals, gok), fmtCount(assists, aok), fmtXG(xg, xgok), fmtCount(squad, sok))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Team Comparison, %s season:\n\n", season)
	fmt.Fprintf(&b, "• %s\n• %s\n", line(i1), line(i2))

	g1, _ := table.Int(i1, "total_goals")
	g2, _ := table.Int(i2, "total_goals")
	switch {
	case g1 > g2:
		fmt.Fprintf(&b, "\n%s outscored %s by %d goals.\n", team1, team2, g1-g2)
	case g2 > g1:
		fmt.Fprintf(&b, "\n%s outscored %s by %d goals.\n", team2, team1, g2-g1)
	default:
		fmt.Fprintf(&b, "\nBoth teams scored %d goals.\n", g1)
	}
	return b.String(), nil
}

func (s *Server) handleXGAnalysis(ctx context.Context, args map[string]interface{}) (string, error) {
	season := argString(args, "season")
	if season == "" {
		return seasonRequired, nil
	}
	analysisType := argString(args, "analysis_type")

	switch analysisType {
	case "player_xg":
		table, err := s.xg.PlayerAnalysis(ctx, analytics.PlayerFilter{
			Season:     season,
			PlayerName: argString(args, "player_name"),
			Team:       s.normalizeTeam(argString(args, "team")),
		})
		if err != nil {
			return queryFailed("xG analysis", err), nil
		}
		if table.Empty() {
			return noData("players", season), nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Expected Goals Analysis, %s season:\n\n", season)
		limit := table.Len()
		if limit > 15 {
			limit = 15
		}
		for i := 0; i < limit; i++ {
			name, _ := table.String(i, "player_name")
			team, _ := table.String(i, "team")
			goals, gok := table.Int(i, "goals")
			xg, xgok := table.Float(i, "expected_goals")
			gve, gveok := table.Float(i, "goals_vs_expected")
			label := "n/a"
			if gveok {
				label = analytics.PerformanceCategory(gve)
			}
			fmt.Fprintf(&b, "• %s (%s): %s goals vs xG %s — %s\n",
				name, team, fmtCount(goals, gok), fmtXG(xg, xgok), label)
		}
		return b.String(), nil

	case "overperformers":
		minMinutes := argInt(args, "min_minutes", 900)
		table, err := s.xg.Overperformers(ctx, season, minMinutes)
		if err != nil {
			return queryFailed("xG analysis", err), nil
		}
		if table.Empty() {
			return noData("qualifying players", season), nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "xG Overperformers and Underperformers, %s season (%d+ minutes):\n\n", season, minMinutes)
		for i := 0; i < table.Len(); i++ {
			name, _ := table.String(i, "player_name")
			team, _ := table.String(i, "team")
			goals, gok := table.Int(i, "actual_goals")
			xg, xgok := table.Float(i, "expected_goals")
			gve, gveok := table.Float(i, "goals_vs_expected")
			conv, convok := table.Float(i, "conversion_rate")
			label := "n/a"
			if gveok {
				label = analytics.PerformanceCategory(gve)
			}
			fmt.Fprintf(&b, "• %s (%s): %s goals vs xG %s, conversion %s — %s\n",
				name, team, fmtCount(goals, gok), fmtXG(xg, xgok), fmtRatio(conv, convok), label)
		}
		return b.String(), nil

	case "team_efficiency":
		table, err := s.xg.TeamEfficiency(ctx, season)
		if err != nil {
			return queryFailed("xG analysis", err), nil
		}
		if table.Empty() {
			return noData("teams", season), nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Team xG Efficiency, %s season:\n\n", season)
		for i := 0; i < table.Len(); i++ {
			team, _ := table.String(i, "team_name")
			goals, gok := table.Int(i, "total_goals")
			xg, xgok := table.Float(i, "total_xg")
			conv, convok := table.Float(i, "team_conversion_rate")
			fmt.Fprintf(&b, "• %s: %s goals from xG %s (conversion %s)\n",
				team, fmtCount(goals, gok), fmtXG(xg, xgok), fmtRatio(conv, convok))
		}
		return b.String(), nil

	case "league_patterns":
		table, err := s.xg.LeaguePatterns(ctx, season)
		if err != nil {
			return queryFailed("xG analysis", err), nil
		}
		if table.Empty() {
			return noData("league data", season), nil
		}
		players, pok := table.Int(0, "total_players")
		goals, gok := table.Int(0, "total_goals")
		xg, xgok := table.Float(0, "total_expected_goals")
		g90, g90ok := table.Float(0, "league_goals_per_90")
		xg90, xg90ok := table.Float(0, "league_xg_per_90")
		conv, convok := table.Float(0, "league_conversion_rate")

		var b strings.Builder
		fmt.Fprintf(&b, "League xG Patterns, %s season:\n\n", season)
		fmt.Fprintf(&b, "• Players: %s\n", fmtCount(players, pok))
		fmt.Fprintf(&b, "• Total goals: %s from xG %s\n", fmtCount(goals, gok), fmtXG(xg, xgok))
		fmt.Fprintf(&b, "• League rates per 90: %s goals, %s xG\n", fmtRatio(g90, g90ok), fmtRatio(xg90, xg90ok))
		fmt.Fprintf(&b, "• League conversion rate: %s\n", fmtRatio(conv, convok))
		return b.String(), nil

	default:
		return fmt.Sprintf("Unknown xG analysis type: %s", analysisType), nil
	}
}

func (s *Server) handleShotAnalysis(ctx context.Context, args map[string]interface{}) (string, error) {
	season := argString(args, "season")
	if season == "" {
		return seasonRequired, nil
	}
	analysisType := argString(args, "analysis_type")
	minMinutes := argInt(args, "min_minutes", 450)

	switch analysisType {
	case "player_profiles":
		table, err := s.shots.ShootingProfiles(ctx, season, minMinutes)
		if err != nil {
			return queryFailed("Shot quality analysis", err), nil
		}
		if table.Empty() {
			return noData("qualifying shooters", season), nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Shot Quality Profiles, %s season (%d+ minutes):\n\n", season, minMinutes)
		for i := 0; i < table.Len(); i++ {
			name, _ := table.String(i, "player_name")
			team, _ := table.String(i, "team")
			xg90, xg90ok := table.Float(i, "xg_per_90")
			conv, convok := table.Float(i, "shot_conversion_rate")
			fmt.Fprintf(&b, "• %s (%s): xG/90 %s (%s), conversion %s (%s)\n",
				name, team, fmtRatio(xg90, xg90ok), analytics.ShooterType(xg90),
				fmtRatio(conv, convok), analytics.FinishingQuality(conv, convok))
		}
		return b.String(), nil

	case "positional_patterns":
		table, err := s.shots.PositionalPatterns(ctx, season)
		if err != nil {
			return queryFailed("Shot quality analysis", err), nil
		}
		if table.Empty() {
			return noData("positional data", season), nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Positional Shooting Patterns, %s season:\n\n", season)
		for i := 0; i < table.Len(); i++ {
			pos, _ := table.String(i, "position_group")
			players, pok := table.Int(i, "players")
			xg90, xg90ok := table.Float(i, "avg_xg_per_90")
			conv, convok := table.Float(i, "position_conversion_rate")
			fmt.Fprintf(&b, "• %s: %s players, avg xG/90 %s, conversion %s\n",
				pos, fmtCount(players, pok), fmtRatio(xg90, xg90ok), fmtRatio(conv, convok))
		}
		return b.String(), nil

	case "quality_leaders":
		minShots := argFloat(args, "min_shots", 2.0)
		table, err := s.shots.QualityLeaders(ctx, season, minShots)
		if err != nil {
			return queryFailed("Shot quality analysis", err), nil
		}
		if table.Empty() {
			return noData("quality leaders", season), nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Shot Quality Leaders, %s season (min xG %.1f):\n\n", season, minShots)
		for i := 0; i < table.Len(); i++ {
			name, _ := table.String(i, "player_name")
			team, _ := table.String(i, "team")
			xg, xgok := table.Float(i, "total_xg")
			xg90, _ := table.Float(i, "xg_per_90")
			perShot, psok := table.Float(i, "estimated_xg_per_shot")
			fmt.Fprintf(&b, "• %s (%s): total xG %s, est. xG/shot %s (%s)\n",
				name, team, fmtXG(xg, xgok), fmtRatio(perShot, psok), analytics.VolumeCategory(xg90))
		}
		return b.String(), nil

	case "team_styles":
		table, err := s.shots.TeamStyles(ctx, season)
		if err != nil {
			return queryFailed("Shot quality analysis", err), nil
		}
		if table.Empty() {
			return noData("team shooting data", season), nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Team Attacking Styles, %s season:\n\n", season)
		for i := 0; i < table.Len(); i++ {
			team, _ := table.String(i, "team_name")
			xg, xgok := table.Float(i, "team_total_xg")
			conv, convok := table.Float(i, "team_conversion_rate")
			regular, _ := table.Int(i, "regular_shooters")
			high, _ := table.Int(i, "high_volume_shooters")
			top, _ := table.Float(i, "top_shooter_xg_per_90")
			fmt.Fprintf(&b, "• %s: xG %s, conversion %s (%s) — %s\n",
				team, fmtXG(xg, xgok), fmtRatio(conv, convok),
				analytics.TeamFinishing(conv), analytics.AttackingStyle(regular, high, top))
		}
		return b.String(), nil

	default:
		return fmt.Sprintf("Unknown shot quality analysis type: %s", analysisType), nil
	}
}

func (s *Server) handleWARAnalysis(ctx context.Context, args map[string]interface{}) (string, error) {
	season := argString(args, "season")
	if season == "" {
		return seasonRequired, nil
	}
	analysisType := argString(args, "analysis_type")
	minMinutes := argInt(args, "min_minutes", 450)

	switch analysisType {
	case "replacement_baselines":
		table, err := s.war.Baselines(ctx, season, minMinutes)
		if err != nil {
			return queryFailed("Replacement value analysis", err), nil
		}
		if table.Empty() {
			return noData("qualifying players", season), nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Replacement Level Baselines, %s season (%d+ minutes):\n\n", season, minMinutes)
		for i := 0; i < table.Len(); i++ {
			pos, _ := table.String(i, "position_group")
			n, nok := table.Int(i, "total_players")
			goals, gok := table.Float(i, "replacement_goals_per_90")
			assists, aok := table.Float(i, "replacement_assists_per_90")
			contrib, cok := table.Float(i, "replacement_contribution_per_90")
			fmt.Fprintf(&b, "• %s (%s players): %s goals/90, %s assists/90, %s contributions/90\n",
				pos, fmtCount(n, nok), fmtRatio(goals, gok), fmtRatio(assists, aok), fmtRatio(contrib, cok))
		}
		return b.String(), nil

	case "player_war":
		players, err := s.war.PlayerWAR(ctx, season, minMinutes)
		if err != nil {
			return queryFailed("Replacement value analysis", err), nil
		}
		if len(players) == 0 {
			return noData("qualifying players", season), nil
		}
		limit := len(players)
		if limit > 20 {
			limit = 20
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Wins Above Replacement, %s season (%d+ minutes):\n\n", season, minMinutes)
		for i := 0; i < limit; i++ {
			p := players[i]
			fmt.Fprintf(&b, "%d. %s (%s, %s): %.2f WAR — %s\n",
				i+1, p.PlayerName, p.Team, p.PositionGroup, p.WAR, p.ValueTier)
		}
		if omitted := len(players) - limit; omitted > 0 {
			fmt.Fprintf(&b, "\n... %d more players omitted.\n", omitted)
		}
		return b.String(), nil

	case "team_construction":
		teams, err := s.war.RosterConstruction(ctx, season, minMinutes)
		if err != nil {
			return queryFailed("Replacement value analysis", err), nil
		}
		if len(teams) == 0 {
			return noData("teams", season), nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Roster Construction, %s season:\n\n", season)
		for _, tc := range teams {
			fmt.Fprintf(&b, "• %s: %.2f total WAR across %d players (avg %.2f) — %s\n",
				tc.Team, tc.TotalWAR, tc.SquadDepth, tc.AvgWAR, tc.RosterStyle)
		}
		return b.String(), nil

	case "undervalued_players":
		minWAR := argFloat(args, "min_war", 0.5)
		players, err := s.war.Undervalued(ctx, season, minMinutes, minWAR)
		if err != nil {
			return queryFailed("Replacement value analysis", err), nil
		}
		if len(players) == 0 {
			return fmt.Sprintf("No players clear %.1f WAR in the %s season.", minWAR, season), nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Players Above %.1f WAR, %s season:\n\n", minWAR, season)
		for _, p := range players {
			fmt.Fprintf(&b, "• %s (%s): %.2f WAR in %.0f minutes — %s\n",
				p.PlayerName, p.Team, p.WAR, p.MinutesPlayed, p.ValueTier)
		}
		return b.String(), nil

	default:
		return fmt.Sprintf("Unknown replacement value analysis type: %s", analysisType), nil
	}
}
