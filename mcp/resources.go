package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nwsl-data/nwsl-analytics/jsonrpc"
	"github.com/nwsl-data/nwsl-analytics/warehouse"
)

// Resource URIs follow nwsl://<topic>[/<season>]. Season-scoped resources
// are advertised once per configured season.

func (s *Server) resourceCatalog() []Resource {
	resources := []Resource{
		{
			URI:         "nwsl://seasons",
			Name:        "Available Seasons",
			Description: "Seasons with data loaded in the statistics warehouse",
			MimeType:    "text/plain",
		},
	}
	for _, season := range s.seasons {
		resources = append(resources,
			Resource{
				URI:         "nwsl://teams/" + season,
				Name:        fmt.Sprintf("Teams (%s)", season),
				Description: fmt.Sprintf("NWSL teams competing in the %s season", season),
				MimeType:    "text/plain",
			},
			Resource{
				URI:         "nwsl://stats/summary/" + season,
				Name:        fmt.Sprintf("Season Summary (%s)", season),
				Description: fmt.Sprintf("League-wide statistical summary for the %s season", season),
				MimeType:    "text/plain",
			},
			Resource{
				URI:         "nwsl://standings/" + season,
				Name:        fmt.Sprintf("Standings (%s)", season),
				Description: fmt.Sprintf("Teams ranked by goals scored in the %s season", season),
				MimeType:    "text/plain",
			},
		)
	}
	return resources
}

func (s *Server) handleResourcesList(request jsonrpc.Request) jsonrpc.Response {
	return jsonrpc.NewResponse(request.Id, ResourcesListResponse{Resources: s.resourceCatalog()}, nil)
}

func (s *Server) handleResourcesRead(ctx context.Context, request jsonrpc.Request) jsonrpc.Response {
	var params ResourceReadParams
	if err := json.Unmarshal(request.Params, &params); err != nil {
		return jsonrpc.NewResponse(request.Id, nil,
			jsonrpc.NewErrorf(jsonrpc.ErrInvalidParams, "invalid resource read params: %v", err))
	}

	text, ok := s.readResource(ctx, params.URI)
	if !ok {
		return jsonrpc.NewResponse(request.Id, nil,
			jsonrpc.NewErrorf(jsonrpc.ErrInvalidParams, "Unknown resource: %s", params.URI))
	}

	return jsonrpc.NewResponse(request.Id, ResourceReadResponse{
		Contents: []ResourceContents{{URI: params.URI, MimeType: "text/plain", Text: text}},
	}, nil)
}

// readResource resolves one URI to its text. Store failures become error
// text inside the contents rather than protocol errors; only an unknown
// URI shape is rejected.
func (s *Server) readResource(ctx context.Context, uri string) (string, bool) {
	readCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	if uri == "nwsl://seasons" {
		var b strings.Builder
		b.WriteString("NWSL seasons with data available:\n\n")
		for _, season := range s.seasons {
			fmt.Fprintf(&b, "• %s\n", season)
		}
		b.WriteString("\nPass one of these as the season argument to any statistics tool.")
		return b.String(), true
	}

	if season, ok := strings.CutPrefix(uri, "nwsl://teams/"); ok {
		table, err := warehouse.TeamsForSeason(readCtx, s.store, season)
		if err != nil {
			return queryFailed("Teams resource", err), true
		}
		if table.Empty() {
			return noData("teams", season), true
		}
		var b strings.Builder
		fmt.Fprintf(&b, "NWSL teams, %s season:\n\n", season)
		for i := 0; i < table.Len(); i++ {
			team, _ := table.String(i, "team")
			fmt.Fprintf(&b, "• %s\n", team)
		}
		return b.String(), true
	}

	if season, ok := strings.CutPrefix(uri, "nwsl://stats/summary/"); ok {
		table, err := s.xg.LeaguePatterns(readCtx, season)
		if err != nil {
			return queryFailed("Season summary resource", err), true
		}
		if table.Empty() {
			return noData("league data", season), true
		}
		players, pok := table.Int(0, "total_players")
		goals, gok := table.Int(0, "total_goals")
		xg, xgok := table.Float(0, "total_expected_goals")
		conv, convok := table.Float(0, "league_conversion_rate")
		return fmt.Sprintf("NWSL %s season summary: %s players, %s goals from xG %s, league conversion rate %s.",
			season, fmtCount(players, pok), fmtCount(goals, gok), fmtXG(xg, xgok), fmtRatio(conv, convok)), true
	}

	if season, ok := strings.CutPrefix(uri, "nwsl://standings/"); ok {
		table, err := warehouse.Standings(readCtx, s.store, season)
		if err != nil {
			return queryFailed("Standings resource", err), true
		}
		if table.Empty() {
			return noData("standings", season), true
		}
		var b strings.Builder
		fmt.Fprintf(&b, "NWSL standings by goals scored, %s season:\n\n", season)
		for i := 0; i < table.Len(); i++ {
			team, _ := table.String(i, "team")
			goals, gok := table.Int(i, "goals_for")
			fmt.Fprintf(&b, "%d. %s — %s goals\n", i+1, team, fmtCount(goals, gok))
		}
		return b.String(), true
	}

	return "", false
}
