package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/nwsl-data/nwsl-analytics/warehouse"
)

// ASAClient pulls xG data from an American Soccer Analysis style API. It
// serves as the fallback source when the primary feed is unavailable.
type ASAClient struct {
	http    *retryablehttp.Client
	limiter *rate.Limiter
	log     *logrus.Logger
	baseURL string
}

// NewASAClient creates a client paced at one request per interval
func NewASAClient(baseURL string, interval time.Duration, log *logrus.Logger) *ASAClient {
	if interval <= 0 {
		interval = 3 * time.Second
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil

	return &ASAClient{
		http:    client,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		log:     log,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type asaPlayerXG struct {
	PlayerName    string  `json:"player_name"`
	TeamName      string  `json:"team_name"`
	Position      string  `json:"general_position"`
	Minutes       float64 `json:"minutes_played"`
	Goals         float64 `json:"goals"`
	PrimaryAssist float64 `json:"primary_assists"`
	XGoals        float64 `json:"xgoals"`
	XAssists      float64 `json:"xassists"`
}

// PlayerXGoals fetches per-player xG rows for a season and reshapes them
// into warehouse form. The ASA feed carries a narrower column set than the
// primary source; missing fields are left zero.
func (c *ASAClient) PlayerXGoals(ctx context.Context, season string) ([]warehouse.PlayerSeasonStat, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	query := url.Values{"season_name": {season}}
	u := c.baseURL + "/nwsl/players/xgoals?" + query.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("xgoals request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from xgoals", resp.StatusCode)
	}

	var rows []asaPlayerXG
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode xgoals response: %w", err)
	}

	stats := make([]warehouse.PlayerSeasonStat, 0, len(rows))
	for _, row := range rows {
		stat := warehouse.PlayerSeasonStat{
			PlayerName:      row.PlayerName,
			Team:            row.TeamName,
			Season:          season,
			Position:        row.Position,
			Goals:           int(row.Goals),
			Assists:         int(row.PrimaryAssist),
			MinutesPlayed:   int(row.Minutes),
			ExpectedGoals:   row.XGoals,
			ExpectedAssists: row.XAssists,
		}
		if stat.MinutesPlayed > 0 {
			stat.Nineties = float64(stat.MinutesPlayed) / 90.0
			stat.GoalsPer90 = float64(stat.Goals) / stat.Nineties
			stat.AssistsPer90 = float64(stat.Assists) / stat.Nineties
			stat.XGPer90 = stat.ExpectedGoals / stat.Nineties
			stat.XAGPer90 = stat.ExpectedAssists / stat.Nineties
		}
		stats = append(stats, stat)
	}

	c.log.WithFields(logrus.Fields{
		"season":  season,
		"players": len(stats),
	}).Info("fetched player xgoals from fallback source")
	return stats, nil
}
