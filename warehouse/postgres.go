package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// Postgres is the warehouse client backed by a Postgres-compatible database.
// Constructed once at startup and shared by all in-flight requests.
type Postgres struct {
	db  *sql.DB
	log *logrus.Logger
}

var _ Store = (*Postgres)(nil)

// NewPostgres opens a pooled connection to the warehouse and verifies it
// with a ping
func NewPostgres(databaseURL string, log *logrus.Logger) (*Postgres, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(50)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Warehouse connection established")

	return &Postgres{db: db, log: log}, nil
}

// Query runs a parameterized read query and scans the full result set into
// a Table
func (p *Postgres) Query(ctx context.Context, query string, args ...interface{}) (*Table, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	table := &Table{Columns: cols}
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		table.Rows = append(table.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}

	return table, nil
}

// Ping probes warehouse connectivity
func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Close releases the connection pool
func (p *Postgres) Close() error {
	return p.db.Close()
}

// AppendPlayerSeasonStats appends ingested rows to the player_season_stats
// table. This is the single write path in the service; it runs only from
// the offline ingestion job, never from a tool call.
func (p *Postgres) AppendPlayerSeasonStats(ctx context.Context, stats []PlayerSeasonStat) error {
	if len(stats) == 0 {
		return nil
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO player_season_stats (
			player_name, team, season, position, age, nationality,
			goals, assists, minutes_played, nineties,
			expected_goals, non_penalty_xg, expected_assists,
			goals_per_90, assists_per_90, xg_per_90, xag_per_90,
			penalties_scored, penalties_attempted,
			yellow_cards, red_cards,
			progressive_carries, progressive_passes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		          $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range stats {
		_, err := stmt.ExecContext(ctx,
			s.PlayerName, s.Team, s.Season, s.Position, s.Age, s.Nationality,
			s.Goals, s.Assists, s.MinutesPlayed, s.Nineties,
			s.ExpectedGoals, s.NonPenaltyXG, s.ExpectedAssists,
			s.GoalsPer90, s.AssistsPer90, s.XGPer90, s.XAGPer90,
			s.PenaltiesScored, s.PenaltiesAttempted,
			s.YellowCards, s.RedCards,
			s.ProgressiveCarries, s.ProgressivePasses,
		)
		if err != nil {
			return fmt.Errorf("failed to insert row for %s: %w", s.PlayerName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	p.log.WithFields(logrus.Fields{"rows": len(stats)}).Info("Appended player season stats")
	return nil
}
