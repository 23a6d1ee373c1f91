package mcp

import (
	"encoding/json"
	"strings"

	"github.com/nwsl-data/nwsl-analytics/jsonrpc"
)

// promptTemplate pairs a prompt descriptor with its message template.
// Placeholders use {name} syntax and are substituted from the request
// arguments.
type promptTemplate struct {
	prompt   Prompt
	template string
}

var promptCatalog = []promptTemplate{
	{
		prompt: Prompt{
			Name:        "analyze-team-performance",
			Description: "Guided analysis of one team's season: totals, finishing, and top contributors",
			Arguments: []PromptArgument{
				{Name: "team", Description: "Team to analyze", Required: true},
				{Name: "season", Description: "Season year (e.g., '2024')", Required: true},
			},
		},
		template: "Analyze {team}'s performance in the {season} NWSL season. " +
			"Use the analyze_team_performance tool to get their totals and finishing quality, " +
			"then use expected_goals_analysis with analysis_type 'team_efficiency' to compare " +
			"their xG conversion against the rest of the league. Summarize their attacking " +
			"identity and name their most important players.",
	},
	{
		prompt: Prompt{
			Name:        "compare-teams",
			Description: "Head-to-head statistical comparison of two teams",
			Arguments: []PromptArgument{
				{Name: "team1", Description: "First team", Required: true},
				{Name: "team2", Description: "Second team", Required: true},
				{Name: "season", Description: "Season year (e.g., '2024')", Required: true},
			},
		},
		template: "Compare {team1} and {team2} in the {season} NWSL season. " +
			"Start with the compare_teams tool for the headline numbers, then use " +
			"get_player_stats filtered by each team to contrast their key players. " +
			"Conclude with which side has been stronger and why.",
	},
	{
		prompt: Prompt{
			Name:        "season-recap",
			Description: "Full-season narrative: standings, standout performers, and xG storylines",
			Arguments: []PromptArgument{
				{Name: "season", Description: "Season year (e.g., '2024')", Required: true},
			},
		},
		template: "Write a recap of the {season} NWSL season. Use get_standings for the " +
			"goals table, get_player_stats for the leading scorers, and " +
			"expected_goals_analysis with analysis_type 'overperformers' to find the " +
			"players who beat or fell short of their xG. Weave these into a short narrative.",
	},
	{
		prompt: Prompt{
			Name:        "nwsl-research-assistant",
			Description: "Open-ended research assistant over the NWSL statistics warehouse",
			Arguments: []PromptArgument{
				{Name: "question", Description: "The research question to investigate", Required: true},
			},
		},
		template: "You are a soccer analytics researcher with access to an NWSL statistics " +
			"warehouse. Investigate the following question using the available tools, " +
			"citing the specific numbers you retrieve: {question}",
	},
}

func (s *Server) handlePromptsList(request jsonrpc.Request) jsonrpc.Response {
	prompts := make([]Prompt, len(promptCatalog))
	for i, entry := range promptCatalog {
		prompts[i] = entry.prompt
	}
	return jsonrpc.NewResponse(request.Id, PromptsListResponse{Prompts: prompts}, nil)
}

func (s *Server) handlePromptsGet(request jsonrpc.Request) jsonrpc.Response {
	var params PromptGetParams
	if err := json.Unmarshal(request.Params, &params); err != nil {
		return jsonrpc.NewResponse(request.Id, nil,
			jsonrpc.NewErrorf(jsonrpc.ErrInvalidParams, "invalid prompt get params: %v", err))
	}

	for _, entry := range promptCatalog {
		if entry.prompt.Name != params.Name {
			continue
		}

		for _, arg := range entry.prompt.Arguments {
			if arg.Required && params.Arguments[arg.Name] == "" {
				return jsonrpc.NewResponse(request.Id, nil,
					jsonrpc.NewErrorf(jsonrpc.ErrInvalidParams, "missing required argument %q for prompt %s", arg.Name, params.Name))
			}
		}

		text := entry.template
		for name, value := range params.Arguments {
			text = strings.ReplaceAll(text, "{"+name+"}", value)
		}

		return jsonrpc.NewResponse(request.Id, PromptGetResponse{
			Description: entry.prompt.Description,
			Messages: []PromptMessage{
				{Role: "user", Content: Content{Type: "text", Text: text}},
			},
		}, nil)
	}

	return jsonrpc.NewResponse(request.Id, nil,
		jsonrpc.NewErrorf(jsonrpc.ErrInvalidParams, "Unknown prompt: %s", params.Name))
}
