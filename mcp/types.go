// Package mcp implements the protocol adapter: a JSON-RPC method router
// exposing NWSL analytics as schema-described tools, plus the resource and
// prompt catalogs of the MCP lifecycle.
package mcp

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// ProtocolVersion is the MCP protocol revision this server speaks
const ProtocolVersion = "2024-11-05"

// Tool describes one callable operation: its unique name and the JSON
// Schema its arguments must satisfy
type Tool struct {
	Name        string             `json:"name"`
	Title       string             `json:"title,omitempty"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

// ToolsListResponse represents the response for the tools/list method
type ToolsListResponse struct {
	Tools []Tool `json:"tools"`
}

// ToolCallParams represents the parameters for the tools/call method
type ToolCallParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// Content is one block of tool output. Only text content is produced.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolCallResult represents the result of a tool call
type ToolCallResult struct {
	Content []Content `json:"content"`
}

// NewTextResult wraps a text block in the tool call result contract
func NewTextResult(text string) ToolCallResult {
	return ToolCallResult{Content: []Content{{Type: "text", Text: text}}}
}

// ServerInfo identifies this server during capability negotiation
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Capabilities advertises which method families the server supports
type Capabilities struct {
	Tools     struct{} `json:"tools"`
	Resources struct{} `json:"resources"`
	Prompts   struct{} `json:"prompts"`
}

// InitializeParams represents the client side of capability negotiation
type InitializeParams struct {
	ProtocolVersion string                 `json:"protocolVersion,omitempty"`
	Capabilities    map[string]interface{} `json:"capabilities,omitempty"`
	ClientInfo      struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"clientInfo,omitempty"`
}

// InitializeResult represents the response for the initialize method
type InitializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
	Capabilities    Capabilities `json:"capabilities"`
}

// Resource describes one readable resource URI
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MimeType    string `json:"mimeType"`
}

// ResourcesListResponse represents the response for the resources/list method
type ResourcesListResponse struct {
	Resources []Resource `json:"resources"`
}

// ResourceReadParams represents the parameters for the resources/read method
type ResourceReadParams struct {
	URI string `json:"uri"`
}

// ResourceContents is one block of resource content
type ResourceContents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
}

// ResourceReadResponse represents the response for the resources/read method
type ResourceReadResponse struct {
	Contents []ResourceContents `json:"contents"`
}

// PromptArgument describes one argument a prompt template accepts
type PromptArgument struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Prompt describes one prompt template
type Prompt struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Arguments   []PromptArgument `json:"arguments"`
}

// PromptsListResponse represents the response for the prompts/list method
type PromptsListResponse struct {
	Prompts []Prompt `json:"prompts"`
}

// PromptGetParams represents the parameters for the prompts/get method
type PromptGetParams struct {
	Name      string            `json:"name"`
	Arguments map[string]string `json:"arguments"`
}

// PromptMessage is one message in a rendered prompt
type PromptMessage struct {
	Role    string  `json:"role"`
	Content Content `json:"content"`
}

// PromptGetResponse represents the response for the prompts/get method
type PromptGetResponse struct {
	Description string          `json:"description"`
	Messages    []PromptMessage `json:"messages"`
}
