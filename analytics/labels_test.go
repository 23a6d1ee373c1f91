package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerformanceCategory(t *testing.T) {
	assert.Equal(t, "Major Overperformer", PerformanceCategory(2.4))
	assert.Equal(t, "Overperformer", PerformanceCategory(1.0))
	assert.Equal(t, "Expected", PerformanceCategory(0.3))
	assert.Equal(t, "Expected", PerformanceCategory(-0.9))
	assert.Equal(t, "Underperformer", PerformanceCategory(-1.2))
	assert.Equal(t, "Major Underperformer", PerformanceCategory(-2.0))
}

func TestSignificanceLevel(t *testing.T) {
	assert.Equal(t, "Significant", SignificanceLevel(4.2, 2.5))
	assert.Equal(t, "Significant", SignificanceLevel(3.0, -2.0))
	assert.Equal(t, "Moderate", SignificanceLevel(2.0, 1.1))
	assert.Equal(t, "Minimal", SignificanceLevel(1.0, 0.5))
}

func TestShooterType(t *testing.T) {
	assert.Equal(t, "High Volume Shooter", ShooterType(0.62))
	assert.Equal(t, "Medium Volume Shooter", ShooterType(0.3))
	assert.Equal(t, "Low Volume Shooter", ShooterType(0.1))
	assert.Equal(t, "Non-Shooter", ShooterType(0))
}

func TestFinishingQuality(t *testing.T) {
	assert.Equal(t, "No Shot Data", FinishingQuality(0, false))
	assert.Equal(t, "Clinical Finisher", FinishingQuality(1.6, true))
	assert.Equal(t, "Above Average Finisher", FinishingQuality(1.2, true))
	assert.Equal(t, "Average Finisher", FinishingQuality(0.95, true))
	assert.Equal(t, "Below Average Finisher", FinishingQuality(0.6, true))
}

func TestVolumeCategory(t *testing.T) {
	assert.Equal(t, "Very High Volume", VolumeCategory(0.7))
	assert.Equal(t, "High Volume", VolumeCategory(0.45))
	assert.Equal(t, "Medium Volume", VolumeCategory(0.25))
	assert.Equal(t, "Low Volume", VolumeCategory(0.05))
}

func TestAttackingStyle(t *testing.T) {
	assert.Equal(t, "Distributed Attack", AttackingStyle(9, 0, 0.2))
	assert.Equal(t, "Multiple Threat Attack", AttackingStyle(4, 3, 0.2))
	assert.Equal(t, "Star-Driven Attack", AttackingStyle(2, 1, 1.1))
	assert.Equal(t, "Conservative Attack", AttackingStyle(2, 1, 0.4))
}

func TestTeamFinishing(t *testing.T) {
	assert.Equal(t, "Clinical", TeamFinishing(1.25))
	assert.Equal(t, "Efficient", TeamFinishing(1.05))
	assert.Equal(t, "Average", TeamFinishing(0.92))
	assert.Equal(t, "Wasteful", TeamFinishing(0.7))
}

func TestValueTier(t *testing.T) {
	assert.Equal(t, "Elite", ValueTier(0.95))
	assert.Equal(t, "Above Average", ValueTier(0.8))
	assert.Equal(t, "Average", ValueTier(0.6))
	assert.Equal(t, "Replacement Level", ValueTier(0.3))
	assert.Equal(t, "Below Replacement", ValueTier(0.1))
}

func TestRosterStyle(t *testing.T) {
	assert.Equal(t, "Star-Driven Championship", RosterStyle(1.6, 5.5))
	assert.Equal(t, "High Value Roster", RosterStyle(1.0, 4.2))
	assert.Equal(t, "Above Average Roster", RosterStyle(0.8, 1.5))
	assert.Equal(t, "Below Average Roster", RosterStyle(0.5, 0.2))
}

func TestBuildPlayerXGQuery(t *testing.T) {
	sql, args := buildPlayerXGQuery(PlayerFilter{Season: "2024", PlayerName: "Kerr", Team: "Current"})
	assert.Contains(t, sql, "season = $1")
	assert.Contains(t, sql, "LOWER(player_name) LIKE $2")
	assert.Contains(t, sql, "team = $3")
	assert.Equal(t, []interface{}{"2024", "%kerr%", "Current"}, args)
}

func TestAssignValueTiers(t *testing.T) {
	values := []PlayerValue{
		{PlayerName: "a", ValueAboveRepl: 10},
		{PlayerName: "b", ValueAboveRepl: 5},
		{PlayerName: "c", ValueAboveRepl: 1},
		{PlayerName: "d", ValueAboveRepl: -2},
	}
	assignValueTiers(values)

	assert.Equal(t, "Elite", values[0].ValueTier)
	assert.Equal(t, "Below Replacement", values[3].ValueTier)
}
