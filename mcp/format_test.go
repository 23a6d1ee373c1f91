package mcp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nwsl-data/nwsl-analytics/warehouse"
)

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "n/a", formatCell(nil))
	assert.Equal(t, "n/a", formatCell(""))
	assert.Equal(t, "Thorns", formatCell("Thorns"))
	assert.Equal(t, "12", formatCell(float64(12)))
	assert.Equal(t, "0.85", formatCell(0.85))
	assert.Equal(t, "2024-06-01", formatCell(time.Date(2024, 6, 1, 19, 0, 0, 0, time.UTC)))
}

func TestFmtHelpers(t *testing.T) {
	assert.Equal(t, "0.92", fmtRatio(0.915, true))
	assert.Equal(t, "n/a", fmtRatio(0, false))
	assert.Equal(t, "45.2", fmtXG(45.21, true))
	assert.Equal(t, "n/a", fmtXG(0, false))
	assert.Equal(t, "7", fmtCount(7, true))
	assert.Equal(t, "n/a", fmtCount(0, false))
}

func TestFormatRawTableTruncates(t *testing.T) {
	table := &warehouse.Table{Columns: []string{"team", "goals"}}
	for i := 0; i < 60; i++ {
		table.Rows = append(table.Rows, []interface{}{"Spirit", int64(i)})
	}

	out := formatRawTable("player_stats, 2024 season", table)
	assert.Contains(t, out, "60 rows")
	assert.Contains(t, out, "10 more rows omitted")
}

func TestFormatRawTableEmpty(t *testing.T) {
	out := formatRawTable("games, 2021 season", &warehouse.Table{Columns: []string{"team"}})
	assert.Equal(t, "No data found for games, 2021 season.", out)
}
