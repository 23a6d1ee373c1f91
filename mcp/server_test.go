package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwsl-data/nwsl-analytics/jsonrpc"
	"github.com/nwsl-data/nwsl-analytics/warehouse"
)

// fakeStore returns a canned table or error for every query and records
// what was asked of it
type fakeStore struct {
	table   *warehouse.Table
	err     error
	queries []string
	args    [][]interface{}
}

func (f *fakeStore) Query(ctx context.Context, sql string, args ...interface{}) (*warehouse.Table, error) {
	f.queries = append(f.queries, sql)
	f.args = append(f.args, args)
	if f.err != nil {
		return nil, f.err
	}
	return f.table, nil
}

func newTestServer(t *testing.T, store warehouse.Store) *Server {
	t.Helper()
	s, err := NewServer(store, Options{})
	require.NoError(t, err)
	return s
}

func callTool(t *testing.T, s *Server, name string, args map[string]interface{}, id interface{}) jsonrpc.Response {
	t.Helper()
	params, err := json.Marshal(ToolCallParams{Name: name, Arguments: args})
	require.NoError(t, err)
	return s.Handle(context.Background(), jsonrpc.NewRequest("tools/call", params, id))
}

func resultText(t *testing.T, resp jsonrpc.Response) string {
	t.Helper()
	require.Nil(t, resp.Error)
	result, ok := resp.Result.(ToolCallResult)
	require.True(t, ok, "result should be a tool call result")
	require.Len(t, result.Content, 1)
	assert.Equal(t, "text", result.Content[0].Type)
	return result.Content[0].Text
}

func TestInitializeSucceedsWithUnreachableStore(t *testing.T) {
	s := newTestServer(t, &fakeStore{err: errors.New("connection refused")})

	resp := s.Handle(context.Background(), jsonrpc.NewRequest("initialize", nil, 1))
	require.Nil(t, resp.Error)

	result, ok := resp.Result.(InitializeResult)
	require.True(t, ok)
	assert.Equal(t, ProtocolVersion, result.ProtocolVersion)
	assert.Equal(t, "nwsl-analytics", result.ServerInfo.Name)
}

func TestToolsListNamesAreUnique(t *testing.T) {
	s := newTestServer(t, &fakeStore{})

	resp := s.Handle(context.Background(), jsonrpc.NewRequest("tools/list", nil, 1))
	require.Nil(t, resp.Error)

	result, ok := resp.Result.(ToolsListResponse)
	require.True(t, ok)
	assert.Len(t, result.Tools, 13)

	seen := map[string]bool{}
	for _, tool := range result.Tools {
		assert.False(t, seen[tool.Name], "duplicate tool %s", tool.Name)
		seen[tool.Name] = true
		assert.NotEmpty(t, tool.Description)
		require.NotNil(t, tool.InputSchema, "tool %s has no schema", tool.Name)
	}
}

func TestUnknownMethodReturnsMethodNotFound(t *testing.T) {
	s := newTestServer(t, &fakeStore{})

	resp := s.Handle(context.Background(), jsonrpc.NewRequest("tools/frobnicate", nil, 4))
	require.NotNil(t, resp.Error)
	assert.Equal(t, jsonrpc.ErrMethodNotFound, resp.Error.Code)
}

func TestUnknownToolReturnsInvalidParams(t *testing.T) {
	s := newTestServer(t, &fakeStore{})

	resp := callTool(t, s, "get_tarot_reading", map[string]interface{}{"season": "2024"}, 1)
	require.NotNil(t, resp.Error)
	assert.Equal(t, jsonrpc.ErrInvalidParams, resp.Error.Code)
	assert.Contains(t, resp.Error.Data, "Unknown tool: get_tarot_reading")
}

func TestMissingRequiredSeasonRejected(t *testing.T) {
	s := newTestServer(t, &fakeStore{})

	resp := callTool(t, s, "get_player_stats", map[string]interface{}{}, 2)
	require.NotNil(t, resp.Error)
	assert.Equal(t, jsonrpc.ErrInvalidParams, resp.Error.Code)
}

func TestSeasonGuardText(t *testing.T) {
	s := newTestServer(t, &fakeStore{})

	text, err := s.handlePlayerStats(context.Background(), map[string]interface{}{"season": ""})
	require.NoError(t, err)
	assert.Contains(t, text, "Season parameter is required")
}

func TestTeamStatsFormatting(t *testing.T) {
	store := &fakeStore{table: &warehouse.Table{
		Columns: []string{"team", "total_goals", "total_assists", "total_xg", "squad_size"},
		Rows: [][]interface{}{
			{"Current", int64(50), int64(34), 45.2, int64(28)},
		},
	}}
	s := newTestServer(t, store)

	text := resultText(t, callTool(t, s, "get_team_stats", map[string]interface{}{"season": "2024"}, 1))
	assert.Contains(t, text, "Current")
	assert.Contains(t, text, "50")
	assert.Contains(t, text, "45.2")
}

func TestStoreErrorBecomesTextResult(t *testing.T) {
	s := newTestServer(t, &fakeStore{err: errors.New("relation does not exist")})

	text := resultText(t, callTool(t, s, "get_standings", map[string]interface{}{"season": "2024"}, 7))
	assert.Contains(t, text, "failed")
	assert.Contains(t, text, "relation does not exist")
}

func TestEmptyResultGetsDescriptiveText(t *testing.T) {
	s := newTestServer(t, &fakeStore{table: &warehouse.Table{Columns: []string{"team"}}})

	text := resultText(t, callTool(t, s, "get_team_stats", map[string]interface{}{"season": "2021"}, 1))
	assert.Contains(t, text, "No data found")
	assert.Contains(t, text, "2021")
}

func TestToolCallIsIdempotent(t *testing.T) {
	store := &fakeStore{table: &warehouse.Table{
		Columns: []string{"team", "goals_for", "squad_size"},
		Rows: [][]interface{}{
			{"Pride", int64(55), int64(26)},
			{"Spirit", int64(51), int64(27)},
		},
	}}
	s := newTestServer(t, store)

	args := map[string]interface{}{"season": "2024"}
	first := resultText(t, callTool(t, s, "get_standings", args, 1))
	second := resultText(t, callTool(t, s, "get_standings", args, 2))
	assert.Equal(t, first, second)
}

func TestRequestIDRoundTrip(t *testing.T) {
	s := newTestServer(t, &fakeStore{})

	for _, id := range []interface{}{"abc", 42, nil} {
		resp := s.Handle(context.Background(), jsonrpc.NewRequest("tools/list", nil, id))
		data, err := json.Marshal(resp)
		require.NoError(t, err)

		var envelope map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &envelope))

		want, err := json.Marshal(id)
		require.NoError(t, err)
		assert.JSONEq(t, string(want), string(envelope["id"]))
	}
}

func TestTeamAliasNormalization(t *testing.T) {
	store := &fakeStore{table: &warehouse.Table{Columns: []string{"team"}}}
	s := newTestServer(t, store)

	callTool(t, s, "get_team_stats", map[string]interface{}{
		"season":    "2024",
		"team_name": "Kansas City Current",
	}, 1)

	require.NotEmpty(t, store.args)
	assert.Contains(t, store.args[0], "Current")
}

func TestInvalidJSONRPCVersionRejected(t *testing.T) {
	s := newTestServer(t, &fakeStore{})

	resp := s.Handle(context.Background(), jsonrpc.Request{Version: "1.0", Method: "tools/list", Id: 1})
	require.NotNil(t, resp.Error)
	assert.Equal(t, jsonrpc.ErrInvalidRequest, resp.Error.Code)
}

func TestSeasonPatternEnforced(t *testing.T) {
	s := newTestServer(t, &fakeStore{})

	resp := callTool(t, s, "get_standings", map[string]interface{}{"season": "'); DROP TABLE players;--"}, 1)
	require.NotNil(t, resp.Error)
	assert.Equal(t, jsonrpc.ErrInvalidParams, resp.Error.Code)
}

func TestResourcesListAndStaticRead(t *testing.T) {
	s := newTestServer(t, &fakeStore{err: errors.New("store down")})

	listResp := s.Handle(context.Background(), jsonrpc.NewRequest("resources/list", nil, 1))
	require.Nil(t, listResp.Error)
	list, ok := listResp.Result.(ResourcesListResponse)
	require.True(t, ok)
	assert.NotEmpty(t, list.Resources)

	params, _ := json.Marshal(ResourceReadParams{URI: "nwsl://seasons"})
	readResp := s.Handle(context.Background(), jsonrpc.NewRequest("resources/read", params, 2))
	require.Nil(t, readResp.Error)
	read, ok := readResp.Result.(ResourceReadResponse)
	require.True(t, ok)
	require.Len(t, read.Contents, 1)
	assert.NotEmpty(t, read.Contents[0].Text)
}

func TestResourceReadUnknownURI(t *testing.T) {
	s := newTestServer(t, &fakeStore{})

	params, _ := json.Marshal(ResourceReadParams{URI: "nwsl://referees"})
	resp := s.Handle(context.Background(), jsonrpc.NewRequest("resources/read", params, 3))
	require.NotNil(t, resp.Error)
	assert.Equal(t, jsonrpc.ErrInvalidParams, resp.Error.Code)
}

func TestResourceReadStoreFailureBecomesText(t *testing.T) {
	s := newTestServer(t, &fakeStore{err: errors.New("timeout")})

	params, _ := json.Marshal(ResourceReadParams{URI: "nwsl://teams/2024"})
	resp := s.Handle(context.Background(), jsonrpc.NewRequest("resources/read", params, 4))
	require.Nil(t, resp.Error)
	read, ok := resp.Result.(ResourceReadResponse)
	require.True(t, ok)
	require.Len(t, read.Contents, 1)
	assert.Contains(t, read.Contents[0].Text, "failed")
}

func TestPromptsGetSubstitutesArguments(t *testing.T) {
	s := newTestServer(t, &fakeStore{})

	params, _ := json.Marshal(PromptGetParams{
		Name: "compare-teams",
		Arguments: map[string]string{
			"team1":  "Thorns",
			"team2":  "Reign",
			"season": "2024",
		},
	})
	resp := s.Handle(context.Background(), jsonrpc.NewRequest("prompts/get", params, 5))
	require.Nil(t, resp.Error)

	result, ok := resp.Result.(PromptGetResponse)
	require.True(t, ok)
	require.Len(t, result.Messages, 1)
	assert.Contains(t, result.Messages[0].Content.Text, "Thorns")
	assert.Contains(t, result.Messages[0].Content.Text, "Reign")
	assert.Contains(t, result.Messages[0].Content.Text, "2024")
	assert.NotContains(t, result.Messages[0].Content.Text, "{team1}")
}

func TestPromptsGetUnknownPrompt(t *testing.T) {
	s := newTestServer(t, &fakeStore{})

	params, _ := json.Marshal(PromptGetParams{Name: "write-a-sonnet"})
	resp := s.Handle(context.Background(), jsonrpc.NewRequest("prompts/get", params, 6))
	require.NotNil(t, resp.Error)
	assert.Equal(t, jsonrpc.ErrInvalidParams, resp.Error.Code)
}

func TestPromptsGetMissingRequiredArgument(t *testing.T) {
	s := newTestServer(t, &fakeStore{})

	params, _ := json.Marshal(PromptGetParams{Name: "season-recap"})
	resp := s.Handle(context.Background(), jsonrpc.NewRequest("prompts/get", params, 7))
	require.NotNil(t, resp.Error)
	assert.Equal(t, jsonrpc.ErrInvalidParams, resp.Error.Code)
}
