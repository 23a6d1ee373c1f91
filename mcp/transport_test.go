package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwsl-data/nwsl-analytics/jsonrpc"
)

func TestTransportHandlesRequests(t *testing.T) {
	s := newTestServer(t, &fakeStore{})

	in := strings.NewReader(`{"jsonrpc":"2.0","method":"tools/list","id":1}` + "\n")
	var out, errOut bytes.Buffer

	transport := NewStdioTransport(s, in, &out, &errOut)
	require.NoError(t, transport.Run(context.Background()))

	var resp struct {
		Jsonrpc string `json:"jsonrpc"`
		Result  struct {
			Tools []json.RawMessage `json:"tools"`
		} `json:"result"`
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "2.0", resp.Jsonrpc)
	assert.Equal(t, 1, resp.ID)
	assert.Len(t, resp.Result.Tools, 13)
	assert.Empty(t, errOut.String())
}

func TestTransportParseError(t *testing.T) {
	s := newTestServer(t, &fakeStore{})

	in := strings.NewReader("this is not json\n")
	var out, errOut bytes.Buffer

	transport := NewStdioTransport(s, in, &out, &errOut)
	require.NoError(t, transport.Run(context.Background()))

	var resp struct {
		Error *jsonrpc.Error  `json:"error"`
		ID    json.RawMessage `json:"id"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, jsonrpc.ErrParse, resp.Error.Code)
	assert.JSONEq(t, "null", string(resp.ID))
}

func TestTransportSkipsBlankLines(t *testing.T) {
	s := newTestServer(t, &fakeStore{})

	in := strings.NewReader("\n\n" + `{"jsonrpc":"2.0","method":"ping","id":"p1"}` + "\n")
	var out, errOut bytes.Buffer

	transport := NewStdioTransport(s, in, &out, &errOut)
	require.NoError(t, transport.Run(context.Background()))

	assert.Equal(t, 1, strings.Count(out.String(), "\n"))
	assert.Contains(t, out.String(), `"p1"`)
}
