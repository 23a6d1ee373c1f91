// Package ingest loads player season statistics from external stats APIs
// into the warehouse. It runs as an offline job, never alongside itself.
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

// countryCandidates are tried in order during league discovery. The API
// has renamed the United States entry across versions.
var countryCandidates = []string{"USA", "United States", "United States of America"}

// FBrefClient pulls aggregated player season stats from an FBref-style
// stats API
type FBrefClient struct {
	http    *retryablehttp.Client
	limiter *rate.Limiter
	log     *logrus.Logger
	baseURL string
	apiKey  string
}

// NewFBrefClient creates a client paced at one request per interval; the
// upstream enforces a strict 6 second spacing on free keys
func NewFBrefClient(baseURL, apiKey string, interval time.Duration, log *logrus.Logger) *FBrefClient {
	if interval <= 0 {
		interval = 6 * time.Second
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil

	return &FBrefClient{
		http:    client,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		log:     log,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

func (c *FBrefClient) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

type countriesResponse struct {
	Data []struct {
		Name        string `json:"country"`
		CountryCode string `json:"country_code"`
	} `json:"data"`
}

type leaguesResponse struct {
	Data []struct {
		LeagueType string `json:"league_type"`
		Leagues    []struct {
			LeagueID   int    `json:"league_id"`
			LeagueName string `json:"competition_name"`
		} `json:"leagues"`
	} `json:"data"`
}

// DiscoverLeague finds the NWSL league id by walking the country and
// league catalogs. Every candidate that was tried and skipped is logged so
// a misconfigured upstream cannot silently match the wrong competition.
func (c *FBrefClient) DiscoverLeague(ctx context.Context) (int, error) {
	var countries countriesResponse
	if err := c.get(ctx, "/countries", nil, &countries); err != nil {
		return 0, fmt.Errorf("country lookup failed: %w", err)
	}

	countryCode := ""
	for _, candidate := range countryCandidates {
		for _, country := range countries.Data {
			if strings.EqualFold(country.Name, candidate) {
				countryCode = country.CountryCode
				break
			}
		}
		if countryCode != "" {
			if candidate != countryCandidates[0] {
				c.log.WithFields(logrus.Fields{
					"matched":  candidate,
					"expected": countryCandidates[0],
				}).Warn("country matched under a fallback name")
			}
			break
		}
		c.log.WithField("candidate", candidate).Info("country candidate not found, trying next")
	}
	if countryCode == "" {
		return 0, fmt.Errorf("no country entry matched any of %v", countryCandidates)
	}

	var leagues leaguesResponse
	query := url.Values{"country_code": {countryCode}}
	if err := c.get(ctx, "/leagues", query, &leagues); err != nil {
		return 0, fmt.Errorf("league lookup failed: %w", err)
	}

	for _, group := range leagues.Data {
		for _, league := range group.Leagues {
			if strings.Contains(strings.ToLower(league.LeagueName), "nwsl") {
				c.log.WithFields(logrus.Fields{
					"league_id":   league.LeagueID,
					"league_name": league.LeagueName,
					"league_type": group.LeagueType,
				}).Info("discovered NWSL league")
				return league.LeagueID, nil
			}
		}
	}
	return 0, fmt.Errorf("no league containing 'nwsl' found for country code %s", countryCode)
}

type playerStatsResponse struct {
	Players []struct {
		MetaData struct {
			PlayerName  string `json:"player_name"`
			Age         int    `json:"age"`
			Nationality string `json:"player_country_code"`
		} `json:"meta_data"`
		Stats struct {
			Stats struct {
				Team          string  `json:"team_name"`
				Position      string  `json:"positions"`
				Goals         float64 `json:"gls"`
				Assists       float64 `json:"ast"`
				MinutesPlayed float64 `json:"min"`
				Nineties      float64 `json:"nineties"`
				ExpectedGoals float64 `json:"xg"`
				NonPenaltyXG  float64 `json:"npxg"`
				ExpectedAG    float64 `json:"xag"`
				PensScored    float64 `json:"pk"`
				PensAttempted float64 `json:"pk_att"`
				YellowCards   float64 `json:"crd_y"`
				RedCards      float64 `json:"crd_r"`
				ProgCarries   float64 `json:"prg_c"`
				ProgPasses    float64 `json:"prg_p"`
			} `json:"stats"`
		} `json:"stats"`
	} `json:"players"`
}

// PlayerSeasonStats fetches one season of aggregated player stats for a
// league and reshapes the rows into warehouse form
func (c *FBrefClient) PlayerSeasonStats(ctx context.Context, leagueID int, season string) ([]warehouse.PlayerSeasonStat, error) {
	query := url.Values{
		"league_id": {fmt.Sprintf("%d", leagueID)},
		"season_id": {season},
	}
	var resp playerStatsResponse
	if err := c.get(ctx, "/player-season-stats", query, &resp); err != nil {
		return nil, err
	}

	stats := make([]warehouse.PlayerSeasonStat, 0, len(resp.Players))
	for _, p := range resp.Players {
		row := p.Stats.Stats
		stat := warehouse.PlayerSeasonStat{
			PlayerName:         p.MetaData.PlayerName,
			Team:               row.Team,
			Season:             season,
			Position:           row.Position,
			Age:                p.MetaData.Age,
			Nationality:        p.MetaData.Nationality,
			Goals:              int(row.Goals),
			Assists:            int(row.Assists),
			MinutesPlayed:      int(row.MinutesPlayed),
			Nineties:           row.Nineties,
			ExpectedGoals:      row.ExpectedGoals,
			NonPenaltyXG:       row.NonPenaltyXG,
			ExpectedAssists:    row.ExpectedAG,
			PenaltiesScored:    int(row.PensScored),
			PenaltiesAttempted: int(row.PensAttempted),
			YellowCards:        int(row.YellowCards),
			RedCards:           int(row.RedCards),
			ProgressiveCarries: int(row.ProgCarries),
			ProgressivePasses:  int(row.ProgPasses),
		}
		if stat.Nineties == 0 && stat.MinutesPlayed > 0 {
			stat.Nineties = float64(stat.MinutesPlayed) / 90.0
		}
		if stat.Nineties > 0 {
			stat.GoalsPer90 = float64(stat.Goals) / stat.Nineties
			stat.AssistsPer90 = float64(stat.Assists) / stat.Nineties
			stat.XGPer90 = stat.ExpectedGoals / stat.Nineties
			stat.XAGPer90 = stat.ExpectedAssists / stat.Nineties
		}
		stats = append(stats, stat)
	}
	return stats, nil
}
