package analytics

import (
	"context"
	"sort"

	"github.com/nwsl-data/nwsl-analytics/warehouse"
)

// Estimator computes player value above replacement level. Replacement
// level is the per-position contribution rate at a low percentile of
// players with meaningful minutes; value above it converts to wins at
// roughly ten goal contributions per win.
type Estimator struct {
	store warehouse.Store
}

// NewEstimator creates a replacement value estimator over the given store
func NewEstimator(store warehouse.Store) *Estimator {
	return &Estimator{store: store}
}

// replacementPercentile is the within-position percentile treated as
// freely available talent
const replacementPercentile = 0.30

// winsPerContribution converts goal contributions above replacement into
// wins
const winsPerContribution = 0.1

// Baselines returns per-position replacement level contribution rates for
// players above the minutes floor
func (e *Estimator) Baselines(ctx context.Context, season string, minMinutes int) (*warehouse.Table, error) {
	return e.store.Query(ctx, `WITH rates AS (
		SELECT
			CASE
				WHEN position LIKE '%FW%' THEN 'forward'
				WHEN position LIKE '%MF%' THEN 'midfielder'
				WHEN position LIKE '%DF%' THEN 'defender'
				WHEN position LIKE '%GK%' THEN 'goalkeeper'
				ELSE 'other'
			END AS position_group,
			goals_per_90, assists_per_90, xg_per_90,
			goals_per_90 + assists_per_90 AS contribution_per_90
		FROM player_season_stats
		WHERE season = $1 AND minutes_played >= $2 AND position IS NOT NULL
	)
	SELECT position_group,
		COUNT(*) AS total_players,
		PERCENTILE_CONT($3) WITHIN GROUP (ORDER BY goals_per_90) AS replacement_goals_per_90,
		PERCENTILE_CONT($3) WITHIN GROUP (ORDER BY assists_per_90) AS replacement_assists_per_90,
		PERCENTILE_CONT($3) WITHIN GROUP (ORDER BY xg_per_90) AS replacement_xg_per_90,
		PERCENTILE_CONT($3) WITHIN GROUP (ORDER BY contribution_per_90) AS replacement_contribution_per_90
	FROM rates
	WHERE position_group != 'other'
	GROUP BY position_group
	ORDER BY position_group`, season, minMinutes, replacementPercentile)
}

// PlayerValue is one player's value above replacement estimate
type PlayerValue struct {
	PlayerName       string
	Team             string
	PositionGroup    string
	MinutesPlayed    float64
	Nineties         float64
	ContributionP90  float64
	ValueAboveRepl   float64
	WAR              float64
	WARPer90         float64
	ValueTier        string
}

// PlayerWAR estimates wins above replacement for every qualifying player
// in a season. The heavy lifting is a single aggregate query; tiering is
// done in Go over the resulting rows.
func (e *Estimator) PlayerWAR(ctx context.Context, season string, minMinutes int) ([]PlayerValue, error) {
	table, err := e.store.Query(ctx, `WITH players AS (
		SELECT player_name, team,
			CASE
				WHEN position LIKE '%FW%' THEN 'forward'
				WHEN position LIKE '%MF%' THEN 'midfielder'
				WHEN position LIKE '%DF%' THEN 'defender'
				WHEN position LIKE '%GK%' THEN 'goalkeeper'
				ELSE 'other'
			END AS position_group,
			minutes_played, nineties,
			goals_per_90, assists_per_90, xg_per_90,
			(yellow_cards * 0.1 + red_cards * 0.5) / NULLIF(nineties, 0) AS discipline_penalty_per_90,
			goals_per_90 + assists_per_90 AS contribution_per_90
		FROM player_season_stats
		WHERE season = $1 AND minutes_played >= $2 AND position IS NOT NULL
	), baselines AS (
		SELECT position_group,
			PERCENTILE_CONT($3) WITHIN GROUP (ORDER BY goals_per_90) AS repl_goals,
			PERCENTILE_CONT($3) WITHIN GROUP (ORDER BY assists_per_90) AS repl_assists,
			PERCENTILE_CONT($3) WITHIN GROUP (ORDER BY xg_per_90) AS repl_xg
		FROM players
		GROUP BY position_group
	)
	SELECT p.player_name, p.team, p.position_group,
		p.minutes_played, p.nineties, p.contribution_per_90,
		((p.goals_per_90 - b.repl_goals) * 1.0 +
		 (p.assists_per_90 - b.repl_assists) * 0.7 +
		 (p.xg_per_90 - b.repl_xg) * 0.3) * p.nineties
		 - COALESCE(p.discipline_penalty_per_90, 0) * p.nineties AS value_above_replacement
	FROM players p
	JOIN baselines b ON b.position_group = p.position_group
	WHERE p.position_group != 'other'
	ORDER BY value_above_replacement DESC`, season, minMinutes, replacementPercentile)
	if err != nil {
		return nil, err
	}

	values := make([]PlayerValue, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		name, _ := table.String(i, "player_name")
		team, _ := table.String(i, "team")
		pos, _ := table.String(i, "position_group")
		minutes, _ := table.Float(i, "minutes_played")
		nineties, _ := table.Float(i, "nineties")
		contrib, _ := table.Float(i, "contribution_per_90")
		vam, _ := table.Float(i, "value_above_replacement")

		pv := PlayerValue{
			PlayerName:      name,
			Team:            team,
			PositionGroup:   pos,
			MinutesPlayed:   minutes,
			Nineties:        nineties,
			ContributionP90: contrib,
			ValueAboveRepl:  vam,
			WAR:             vam * winsPerContribution,
		}
		if nineties > 0 {
			pv.WARPer90 = pv.WAR / nineties
		}
		values = append(values, pv)
	}

	assignValueTiers(values)
	return values, nil
}

// assignValueTiers ranks players by value above replacement and labels
// them by percentile band
func assignValueTiers(values []PlayerValue) {
	if len(values) == 0 {
		return
	}

	ranked := make([]int, len(values))
	for i := range ranked {
		ranked[i] = i
	}
	sort.Slice(ranked, func(a, b int) bool {
		return values[ranked[a]].ValueAboveRepl < values[ranked[b]].ValueAboveRepl
	})

	n := float64(len(values))
	for rank, idx := range ranked {
		pct := float64(rank+1) / n
		values[idx].ValueTier = ValueTier(pct)
	}
}

// ValueTier labels a value-above-replacement percentile
func ValueTier(percentile float64) string {
	switch {
	case percentile > 0.9:
		return "Elite"
	case percentile > 0.75:
		return "Above Average"
	case percentile > 0.5:
		return "Average"
	case percentile > 0.25:
		return "Replacement Level"
	default:
		return "Below Replacement"
	}
}

// TeamConstruction aggregates player WAR up to roster level
type TeamConstruction struct {
	Team        string
	TotalWAR    float64
	AvgWAR      float64
	SquadDepth  int
	StarPower   float64
	RosterStyle string
}

// RosterConstruction analyzes how each team assembles value: stars versus
// depth
func (e *Estimator) RosterConstruction(ctx context.Context, season string, minMinutes int) ([]TeamConstruction, error) {
	players, err := e.PlayerWAR(ctx, season, minMinutes)
	if err != nil {
		return nil, err
	}

	byTeam := map[string]*TeamConstruction{}
	for _, p := range players {
		tc, ok := byTeam[p.Team]
		if !ok {
			tc = &TeamConstruction{Team: p.Team}
			byTeam[p.Team] = tc
		}
		tc.TotalWAR += p.WAR
		tc.SquadDepth++
		if p.ContributionP90 > tc.StarPower {
			tc.StarPower = p.ContributionP90
		}
	}

	teams := make([]TeamConstruction, 0, len(byTeam))
	for _, tc := range byTeam {
		if tc.SquadDepth > 0 {
			tc.AvgWAR = tc.TotalWAR / float64(tc.SquadDepth)
		}
		tc.RosterStyle = RosterStyle(tc.StarPower, tc.TotalWAR)
		teams = append(teams, *tc)
	}
	sort.Slice(teams, func(a, b int) bool { return teams[a].TotalWAR > teams[b].TotalWAR })
	return teams, nil
}

// RosterStyle classifies roster construction from star power and total WAR
func RosterStyle(starPower, totalWAR float64) string {
	switch {
	case starPower >= 1.5 && totalWAR >= 5:
		return "Star-Driven Championship"
	case totalWAR >= 4:
		return "High Value Roster"
	case totalWAR >= 1:
		return "Above Average Roster"
	default:
		return "Below Average Roster"
	}
}

// Undervalued filters the WAR table down to players clearing a minimum WAR
func (e *Estimator) Undervalued(ctx context.Context, season string, minMinutes int, minWAR float64) ([]PlayerValue, error) {
	players, err := e.PlayerWAR(ctx, season, minMinutes)
	if err != nil {
		return nil, err
	}

	out := players[:0:0]
	for _, p := range players {
		if p.WAR >= minWAR {
			out = append(out, p)
		}
	}
	return out, nil
}
