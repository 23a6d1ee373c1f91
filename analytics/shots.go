package analytics

import (
	"context"

	"github.com/nwsl-data/nwsl-analytics/warehouse"
)

// Profiler breaks shooting down by volume, quality, and position to
// understand where goals come from.
type Profiler struct {
	store warehouse.Store
}

// NewProfiler creates a shot quality profiler over the given store
func NewProfiler(store warehouse.Store) *Profiler {
	return &Profiler{store: store}
}

// ShootingProfiles returns per-player shooting rows for players above the
// minutes floor, ranked by shot volume then finishing
func (p *Profiler) ShootingProfiles(ctx context.Context, season string, minMinutes int) (*warehouse.Table, error) {
	return p.store.Query(ctx, `SELECT player_name, team, position,
		minutes_played, nineties,
		goals, expected_goals, non_penalty_xg,
		goals_per_90, xg_per_90,
		CASE WHEN expected_goals > 0 THEN goals / expected_goals ELSE NULL END AS shot_conversion_rate,
		goals - expected_goals AS goals_vs_expected,
		expected_goals - non_penalty_xg AS penalty_xg_value
	FROM player_season_stats
	WHERE season = $1 AND minutes_played >= $2 AND expected_goals > 0
	ORDER BY xg_per_90 DESC, shot_conversion_rate DESC`, season, minMinutes)
}

// PositionalPatterns aggregates shooting rates by position group
func (p *Profiler) PositionalPatterns(ctx context.Context, season string) (*warehouse.Table, error) {
	return p.store.Query(ctx, `SELECT
		CASE
			WHEN position LIKE '%FW%' THEN 'forward'
			WHEN position LIKE '%MF%' THEN 'midfielder'
			WHEN position LIKE '%DF%' THEN 'defender'
			WHEN position LIKE '%GK%' THEN 'goalkeeper'
			ELSE 'other'
		END AS position_group,
		COUNT(*) AS players,
		AVG(xg_per_90) AS avg_xg_per_90,
		SUM(goals) AS total_goals,
		SUM(expected_goals) AS total_xg,
		SUM(goals) / NULLIF(SUM(expected_goals), 0) AS position_conversion_rate
	FROM player_season_stats
	WHERE season = $1 AND minutes_played >= 90
	GROUP BY position_group
	ORDER BY avg_xg_per_90 DESC`, season)
}

// QualityLeaders finds players generating the highest quality chances.
// minShots filters on estimated shots per 90 via the xG volume proxy.
func (p *Profiler) QualityLeaders(ctx context.Context, season string, minShots float64) (*warehouse.Table, error) {
	return p.store.Query(ctx, `SELECT player_name, team, position,
		minutes_played,
		expected_goals AS total_xg,
		xg_per_90,
		CASE WHEN xg_per_90 > 0 AND minutes_played >= 90
			THEN expected_goals / (xg_per_90 * minutes_played / 90.0)
			ELSE NULL
		END AS estimated_xg_per_shot,
		goals,
		CASE WHEN expected_goals > 0 THEN goals / expected_goals ELSE NULL END AS conversion_rate,
		goals - expected_goals AS goals_vs_expected
	FROM player_season_stats
	WHERE season = $1 AND expected_goals >= $2
	ORDER BY estimated_xg_per_shot DESC NULLS LAST`, season, minShots)
}

// TeamStyles aggregates shooting distribution into team-level style rows
func (p *Profiler) TeamStyles(ctx context.Context, season string) (*warehouse.Table, error) {
	return p.store.Query(ctx, `SELECT team AS team_name,
		COUNT(*) AS squad_shooters,
		SUM(expected_goals) AS team_total_xg,
		SUM(goals) AS team_total_goals,
		AVG(xg_per_90) AS avg_player_xg_per_90,
		MAX(xg_per_90) AS top_shooter_xg_per_90,
		SUM(goals) / NULLIF(SUM(expected_goals), 0) AS team_conversion_rate,
		COUNT(CASE WHEN xg_per_90 >= 0.3 THEN 1 END) AS regular_shooters,
		COUNT(CASE WHEN xg_per_90 >= 0.6 THEN 1 END) AS high_volume_shooters
	FROM player_season_stats
	WHERE season = $1 AND minutes_played >= 90
	GROUP BY team
	ORDER BY team_total_xg DESC`, season)
}

// ShooterType classifies shot volume from xG per 90
func ShooterType(xgPer90 float64) string {
	switch {
	case xgPer90 >= 0.5:
		return "High Volume Shooter"
	case xgPer90 >= 0.25:
		return "Medium Volume Shooter"
	case xgPer90 > 0:
		return "Low Volume Shooter"
	default:
		return "Non-Shooter"
	}
}

// FinishingQuality classifies a conversion rate (goals / xG)
func FinishingQuality(conversionRate float64, hasShotData bool) string {
	if !hasShotData {
		return "No Shot Data"
	}
	switch {
	case conversionRate >= 1.5:
		return "Clinical Finisher"
	case conversionRate >= 1.1:
		return "Above Average Finisher"
	case conversionRate >= 0.9:
		return "Average Finisher"
	default:
		return "Below Average Finisher"
	}
}

// VolumeCategory classifies shot volume for the quality leaders view
func VolumeCategory(xgPer90 float64) string {
	switch {
	case xgPer90 >= 0.6:
		return "Very High Volume"
	case xgPer90 >= 0.4:
		return "High Volume"
	case xgPer90 >= 0.2:
		return "Medium Volume"
	default:
		return "Low Volume"
	}
}

// AttackingStyle classifies how a team distributes its shooting
func AttackingStyle(regularShooters, highVolumeShooters int64, topShooterXGPer90 float64) string {
	switch {
	case regularShooters >= 8:
		return "Distributed Attack"
	case highVolumeShooters >= 3:
		return "Multiple Threat Attack"
	case topShooterXGPer90 >= 1.0:
		return "Star-Driven Attack"
	default:
		return "Conservative Attack"
	}
}

// TeamFinishing classifies team-level conversion
func TeamFinishing(conversionRate float64) string {
	switch {
	case conversionRate >= 1.2:
		return "Clinical"
	case conversionRate >= 1.0:
		return "Efficient"
	case conversionRate >= 0.9:
		return "Average"
	default:
		return "Wasteful"
	}
}
