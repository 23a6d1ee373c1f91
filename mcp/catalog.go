package mcp

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// toolHandler executes one validated tool call. The returned string is the
// user-facing text; a non-nil error is a protocol-level failure. Backend
// failures never surface as errors here — handlers fold them into the text
// so one failed analysis cannot abort a request batch.
type toolHandler func(ctx context.Context, args map[string]interface{}) (string, error)

// toolEntry binds a descriptor, its resolved schema, and its handler. The
// catalog is the single source of truth for what tools exist.
type toolEntry struct {
	tool     Tool
	resolved *jsonschema.Resolved
	handler  toolHandler
}

const seasonPattern = "^20[0-9]{2}$"

func fptr(v float64) *float64 { return &v }

func seasonProperty() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: "Season year (e.g., '2024')",
		Pattern:     seasonPattern,
	}
}

func limitProperty(desc string, max float64) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "integer",
		Description: desc,
		Minimum:     fptr(1),
		Maximum:     fptr(max),
	}
}

// buildCatalog declares every tool the server exposes, in one place, keyed
// by name. Called once from NewServer; the result is read-only afterwards.
func buildCatalog(s *Server) ([]toolEntry, error) {
	entries := []toolEntry{
		{
			tool: Tool{
				Name:        "get_raw_data",
				Title:       "NWSL Raw Data Access",
				Description: "Get raw statistical data including squad stats, player stats, games data, and team info from NWSL seasons.",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"data_type": {
							Type:        "string",
							Description: "Type of data to retrieve",
							Enum:        []interface{}{"squad_stats", "player_stats", "games", "team_info"},
						},
						"season": seasonProperty(),
						"limit":  limitProperty("Optional: Limit number of rows returned (default: 50)", 1000),
					},
					Required: []string{"data_type", "season"},
				},
			},
			handler: s.handleRawData,
		},
		{
			tool: Tool{
				Name:        "get_player_stats",
				Title:       "Player Statistics",
				Description: "Get comprehensive player statistics with search by name/team. Returns goals, assists, minutes, and performance metrics.",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"season":      seasonProperty(),
						"player_name": {Type: "string", Description: "Optional: Search for specific player by name (partial matches allowed)"},
						"team_name":   {Type: "string", Description: "Optional: Filter by team name (e.g., 'North Carolina Courage')"},
						"limit":       limitProperty("Number of players to return (default: 20)", 100),
					},
					Required: []string{"season"},
				},
			},
			handler: s.handlePlayerStats,
		},
		{
			tool: Tool{
				Name:        "get_team_stats",
				Title:       "Team Statistics",
				Description: "Get comprehensive team statistics including goals, xG, and squad size.",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"season":    seasonProperty(),
						"team_name": {Type: "string", Description: "Optional: Filter by specific team name"},
					},
					Required: []string{"season"},
				},
			},
			handler: s.handleTeamStats,
		},
		{
			tool: Tool{
				Name:        "get_standings",
				Title:       "League Standings",
				Description: "Get league standings ranked by goals scored.",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"season": seasonProperty(),
					},
					Required: []string{"season"},
				},
			},
			handler: s.handleStandings,
		},
		{
			tool: Tool{
				Name:        "get_match_results",
				Title:       "Match Results",
				Description: "Get recent match results with scores and attendance.",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"season":    seasonProperty(),
						"team_name": {Type: "string", Description: "Optional: Filter by specific team"},
						"limit":     limitProperty("Number of matches to return (default: 10)", 50),
					},
					Required: []string{"season"},
				},
			},
			handler: s.handleMatchResults,
		},
		{
			tool: Tool{
				Name:        "get_player_roster",
				Title:       "Player Roster",
				Description: "List NWSL players filtered by name, position, nationality, or team.",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"player_name": {Type: "string", Description: "Optional: Search by player name"},
						"position":    {Type: "string", Description: "Optional: Filter by position code (e.g., 'FW')"},
						"nationality": {Type: "string", Description: "Optional: Filter by nationality"},
						"team_name":   {Type: "string", Description: "Optional: Filter by team"},
						"limit":       limitProperty("Number of players to return (default: 50)", 200),
					},
				},
			},
			handler: s.handleRoster,
		},
		{
			tool: Tool{
				Name:        "analyze_player_performance",
				Title:       "Advanced Player Analysis",
				Description: "Deep analysis of player performance including efficiency metrics and xG analysis.",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"player_name": {Type: "string", Description: "Name of the player to analyze"},
						"season":      seasonProperty(),
					},
					Required: []string{"player_name", "season"},
				},
			},
			handler: s.handleAnalyzePlayer,
		},
		{
			tool: Tool{
				Name:        "analyze_team_performance",
				Title:       "Advanced Team Analysis",
				Description: "Deep analysis of team performance including efficiency metrics and comparative analysis.",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"team_name": {Type: "string", Description: "Name of the team to analyze"},
						"season":    seasonProperty(),
					},
					Required: []string{"team_name", "season"},
				},
			},
			handler: s.handleAnalyzeTeam,
		},
		{
			tool: Tool{
				Name:        "find_correlations",
				Title:       "Statistical Correlations",
				Description: "Find statistical correlations in team/player performance to uncover what drives success.",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"analysis_type": {
							Type:        "string",
							Description: "Type of correlation analysis",
							Enum:        []interface{}{"team_performance", "player_performance", "match_outcomes"},
						},
						"season":       seasonProperty(),
						"metric_focus": {Type: "string", Description: "Optional: Focus on specific metrics (e.g., 'goals', 'xG')"},
					},
					Required: []string{"analysis_type", "season"},
				},
			},
			handler: s.handleCorrelations,
		},
		{
			tool: Tool{
				Name:        "compare_teams",
				Title:       "Team Comparison",
				Description: "Compare two teams across goals, xG, and squad composition.",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"team1":  {Type: "string", Description: "First team to compare"},
						"team2":  {Type: "string", Description: "Second team to compare"},
						"season": seasonProperty(),
					},
					Required: []string{"team1", "team2", "season"},
				},
			},
			handler: s.handleCompareTeams,
		},
		{
			tool: Tool{
				Name:        "expected_goals_analysis",
				Title:       "Expected Goals Calculator",
				Description: "Analyze expected goals patterns: xG efficiency, overperformers, and goal generation patterns.",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"analysis_type": {
							Type:        "string",
							Description: "Type of xG analysis to perform",
							Enum:        []interface{}{"player_xg", "league_patterns", "overperformers", "team_efficiency"},
						},
						"season":      seasonProperty(),
						"player_name": {Type: "string", Description: "Specific player name (optional)"},
						"team":        {Type: "string", Description: "Specific team (optional)"},
						"min_minutes": limitProperty("Minimum minutes played (default: 450)", 4000),
					},
					Required: []string{"analysis_type", "season"},
				},
			},
			handler: s.handleXGAnalysis,
		},
		{
			tool: Tool{
				Name:        "shot_quality_analysis",
				Title:       "Shot Quality Profiler",
				Description: "Analyze shot quality and finishing patterns by volume, quality, position, and conversion rate.",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"analysis_type": {
							Type:        "string",
							Description: "Type of shot quality analysis",
							Enum:        []interface{}{"player_profiles", "positional_patterns", "quality_leaders", "team_styles"},
						},
						"season":      seasonProperty(),
						"min_minutes": limitProperty("Minimum minutes played (default: 450)", 4000),
						"min_shots":   {Type: "number", Description: "Minimum xG volume for quality leaders (default: 2.0)", Minimum: fptr(0)},
					},
					Required: []string{"analysis_type", "season"},
				},
			},
			handler: s.handleShotAnalysis,
		},
		{
			tool: Tool{
				Name:        "replacement_value_analysis",
				Title:       "Replacement Value Estimator (WAR)",
				Description: "Calculate player value above replacement level: WAR estimates and roster construction analysis.",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"analysis_type": {
							Type:        "string",
							Description: "Type of replacement value analysis",
							Enum:        []interface{}{"replacement_baselines", "player_war", "team_construction", "undervalued_players"},
						},
						"season":      seasonProperty(),
						"min_minutes": limitProperty("Minimum minutes played (default: 450)", 4000),
						"min_war":     {Type: "number", Description: "Minimum WAR for undervalued players (default: 0.5)", Minimum: fptr(0)},
					},
					Required: []string{"analysis_type", "season"},
				},
			},
			handler: s.handleWARAnalysis,
		},
	}

	seen := map[string]bool{}
	for i := range entries {
		name := entries[i].tool.Name
		if seen[name] {
			return nil, fmt.Errorf("duplicate tool name %q in catalog", name)
		}
		seen[name] = true

		resolved, err := entries[i].tool.InputSchema.Resolve(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve schema for %q: %w", name, err)
		}
		entries[i].resolved = resolved
	}

	return entries, nil
}

// argument accessors: tool arguments arrive as generic JSON values, already
// schema-validated, so coercion here is shape bookkeeping rather than
// validation

func argString(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func argInt(args map[string]interface{}, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}

func argFloat(args map[string]interface{}, key string, def float64) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return def
	}
}
