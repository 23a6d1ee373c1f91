package mcp

import (
	"fmt"
	"strings"
	"time"

	"github.com/nwsl-data/nwsl-analytics/warehouse"
)

// rawRowLimit caps how many rows the raw data tool renders before
// switching to an omitted-count note
const rawRowLimit = 50

// formatCell renders one table value for display. SQL NULL becomes "n/a".
func formatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "n/a"
	case string:
		if val == "" {
			return "n/a"
		}
		return val
	case []byte:
		return string(val)
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%.2f", val)
	case float32:
		return formatCell(float64(val))
	case time.Time:
		return val.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// fmtRatio renders conversion rates and similar ratios to two decimals
func fmtRatio(v float64, ok bool) string {
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

// fmtXG renders xG-style totals to one decimal
func fmtXG(v float64, ok bool) string {
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", v)
}

// fmtCount renders integral counts, falling back to "n/a" for NULL
func fmtCount(v int64, ok bool) string {
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%d", v)
}

// formatRawTable renders a query result as an aligned-ish text table. Past
// rawRowLimit rows it stops and appends how many rows were omitted.
func formatRawTable(title string, t *warehouse.Table) string {
	if t.Empty() {
		return fmt.Sprintf("No data found for %s.", title)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d rows):\n\n", title, t.Len())
	b.WriteString(strings.Join(t.Columns, " | "))
	b.WriteString("\n")

	shown := t.Len()
	if shown > rawRowLimit {
		shown = rawRowLimit
	}
	for i := 0; i < shown; i++ {
		cells := make([]string, len(t.Rows[i]))
		for j, v := range t.Rows[i] {
			cells[j] = formatCell(v)
		}
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString("\n")
	}
	if omitted := t.Len() - shown; omitted > 0 {
		fmt.Fprintf(&b, "\n... %d more rows omitted.\n", omitted)
	}
	return b.String()
}

// queryFailed is the standard backend-failure text. Store errors never
// become protocol errors; they come back as readable tool output.
func queryFailed(operation string, err error) string {
	return fmt.Sprintf("%s failed: %v", operation, err)
}

// noData is the standard empty-result text
func noData(what, season string) string {
	if season == "" {
		return fmt.Sprintf("No data found for %s.", what)
	}
	return fmt.Sprintf("No data found for %s in the %s season.", what, season)
}

// seasonRequired guards handlers against a missing season even though the
// schema already marks it required
const seasonRequired = "Error: Season parameter is required. Please specify a season (e.g., '2025', '2024', '2023')"
