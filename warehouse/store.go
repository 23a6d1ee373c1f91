package warehouse

import "context"

// Store is the read contract the protocol adapter and analytics builders
// depend on. Every query is parameterized: the sql string carries $n
// placeholders and user-supplied values travel only through args.
//
// Implementations must be safe for concurrent use; each call supplies its
// own statement and consumes its own result set.
type Store interface {
	Query(ctx context.Context, sql string, args ...interface{}) (*Table, error)
}

// PlayerSeasonStat is one warehouse row of per-player per-season statistics,
// the shape produced by the ingestion job and consumed by every analysis
// query.
type PlayerSeasonStat struct {
	PlayerName          string
	Team                string
	Season              string
	Position            string
	Age                 int
	Nationality         string
	Goals               int
	Assists             int
	MinutesPlayed       int
	Nineties            float64
	ExpectedGoals       float64
	NonPenaltyXG        float64
	ExpectedAssists     float64
	GoalsPer90          float64
	AssistsPer90        float64
	XGPer90             float64
	XAGPer90            float64
	PenaltiesScored     int
	PenaltiesAttempted  int
	YellowCards         int
	RedCards            int
	ProgressiveCarries  int
	ProgressivePasses   int
}
