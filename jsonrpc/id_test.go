package jsonrpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{"string", `"abc-123"`, `"abc-123"`},
		{"integer", `42`, `42`},
		{"fraction", `1.5`, `1.5`},
		{"null", `null`, `null`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var id ID
			require.NoError(t, json.Unmarshal([]byte(tc.in), &id))

			data, err := json.Marshal(id)
			require.NoError(t, err)
			assert.JSONEq(t, tc.out, string(data))
		})
	}
}

func TestIDRejectsNonScalar(t *testing.T) {
	var id ID
	assert.Error(t, json.Unmarshal([]byte(`{"nested":true}`), &id))
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &id))
}

func TestNewIDNilIsAllowed(t *testing.T) {
	id, err := NewID(nil)
	require.NoError(t, err)
	assert.True(t, id.IsNil())

	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestNewErrorMessages(t *testing.T) {
	assert.Equal(t, "Method not found", NewError(ErrMethodNotFound, nil).Message)
	assert.Equal(t, "Parse error", NewError(ErrParse, nil).Message)
	assert.Equal(t, "Server error", NewError(ErrorCode(-32050), nil).Message)
	assert.Equal(t, "Unknown error", NewError(ErrorCode(-1), nil).Message)

	e := NewErrorf(ErrInvalidParams, "missing required field %q", "season")
	assert.Equal(t, "Invalid params", e.Message)
	assert.Equal(t, `missing required field "season"`, e.Data)
}
