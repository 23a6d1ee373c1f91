package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nwsl-data/nwsl-analytics/analytics"
	"github.com/nwsl-data/nwsl-analytics/jsonrpc"
	"github.com/nwsl-data/nwsl-analytics/warehouse"
)

// Options configures a Server. Zero values fall back to sensible defaults
// so tests can construct a server from a store alone.
type Options struct {
	Name         string
	Version      string
	Log          *logrus.Logger
	QueryTimeout time.Duration
	Seasons      []string
	MinMinutes   int
	Aliases      *warehouse.AliasSet
}

// Server routes JSON-RPC methods to the tool catalog, resources, and
// prompts. It holds no per-request state: the store handle and catalog are
// shared read-only across concurrent calls.
type Server struct {
	store        warehouse.Store
	log          *logrus.Logger
	info         ServerInfo
	queryTimeout time.Duration
	seasons      []string
	minMinutes   int
	aliases      *warehouse.AliasSet

	catalog []toolEntry
	byName  map[string]*toolEntry

	xg    *analytics.Calculator
	shots *analytics.Profiler
	war   *analytics.Estimator
}

var _ jsonrpc.Handler = &Server{}

// NewServer builds the protocol adapter over a store. The store is not
// touched here: initialize must succeed even when the warehouse is down.
func NewServer(store warehouse.Store, opts Options) (*Server, error) {
	if opts.Name == "" {
		opts.Name = "nwsl-analytics"
	}
	if opts.Version == "" {
		opts.Version = "1.0.0"
	}
	if opts.Log == nil {
		opts.Log = logrus.New()
	}
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = 30 * time.Second
	}
	if len(opts.Seasons) == 0 {
		opts.Seasons = []string{"2025", "2024", "2023"}
	}
	if opts.MinMinutes <= 0 {
		opts.MinMinutes = 450
	}
	if opts.Aliases == nil {
		opts.Aliases = warehouse.NewAliasSet()
	}

	s := &Server{
		store:        store,
		log:          opts.Log,
		info:         ServerInfo{Name: opts.Name, Version: opts.Version},
		queryTimeout: opts.QueryTimeout,
		seasons:      opts.Seasons,
		minMinutes:   opts.MinMinutes,
		aliases:      opts.Aliases,
		xg:           analytics.NewCalculator(store),
		shots:        analytics.NewProfiler(store),
		war:          analytics.NewEstimator(store),
	}

	catalog, err := buildCatalog(s)
	if err != nil {
		return nil, err
	}
	s.catalog = catalog
	s.byName = make(map[string]*toolEntry, len(catalog))
	for i := range catalog {
		s.byName[catalog[i].tool.Name] = &catalog[i]
	}
	return s, nil
}

// Handle dispatches a single JSON-RPC request and always echoes its id
func (s *Server) Handle(ctx context.Context, request jsonrpc.Request) jsonrpc.Response {
	if request.Version != jsonrpc.Version {
		return jsonrpc.NewResponse(request.Id, nil,
			jsonrpc.NewErrorf(jsonrpc.ErrInvalidRequest, "unsupported jsonrpc version %q", request.Version))
	}

	switch request.Method {
	case "initialize":
		return s.handleInitialize(request)
	case "notifications/initialized", "ping":
		return jsonrpc.NewResponse(request.Id, struct{}{}, nil)
	case "tools/list":
		return s.handleToolsList(request)
	case "tools/call":
		return s.handleToolsCall(ctx, request)
	case "resources/list":
		return s.handleResourcesList(request)
	case "resources/read":
		return s.handleResourcesRead(ctx, request)
	case "prompts/list":
		return s.handlePromptsList(request)
	case "prompts/get":
		return s.handlePromptsGet(request)
	default:
		return jsonrpc.NewResponse(request.Id, nil,
			jsonrpc.NewErrorf(jsonrpc.ErrMethodNotFound, "Method not found: %s", request.Method))
	}
}

func (s *Server) handleInitialize(request jsonrpc.Request) jsonrpc.Response {
	var params InitializeParams
	if len(request.Params) > 0 {
		if err := json.Unmarshal(request.Params, &params); err != nil {
			return jsonrpc.NewResponse(request.Id, nil,
				jsonrpc.NewErrorf(jsonrpc.ErrInvalidParams, "invalid initialize params: %v", err))
		}
	}

	s.log.WithFields(logrus.Fields{
		"client":  params.ClientInfo.Name,
		"version": params.ProtocolVersion,
	}).Info("client initialized")

	return jsonrpc.NewResponse(request.Id, InitializeResult{
		ProtocolVersion: ProtocolVersion,
		ServerInfo:      s.info,
		Capabilities:    Capabilities{},
	}, nil)
}

func (s *Server) handleToolsList(request jsonrpc.Request) jsonrpc.Response {
	tools := make([]Tool, len(s.catalog))
	for i, entry := range s.catalog {
		tools[i] = entry.tool
	}
	return jsonrpc.NewResponse(request.Id, ToolsListResponse{Tools: tools}, nil)
}

func (s *Server) handleToolsCall(ctx context.Context, request jsonrpc.Request) jsonrpc.Response {
	var params ToolCallParams
	if err := json.Unmarshal(request.Params, &params); err != nil {
		return jsonrpc.NewResponse(request.Id, nil,
			jsonrpc.NewErrorf(jsonrpc.ErrInvalidParams, "invalid tool call params: %v", err))
	}

	entry, ok := s.byName[params.Name]
	if !ok {
		return jsonrpc.NewResponse(request.Id, nil,
			jsonrpc.NewErrorf(jsonrpc.ErrInvalidParams, "Unknown tool: %s", params.Name))
	}

	args := params.Arguments
	if args == nil {
		args = map[string]interface{}{}
	}
	if err := entry.resolved.Validate(args); err != nil {
		return jsonrpc.NewResponse(request.Id, nil,
			jsonrpc.NewErrorf(jsonrpc.ErrInvalidParams, "invalid arguments for %s: %v", params.Name, err))
	}

	callCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	start := time.Now()
	text, err := entry.handler(callCtx, args)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"tool":  params.Name,
			"error": err,
		}).Error("tool call failed")
		return jsonrpc.NewResponse(request.Id, nil,
			jsonrpc.NewErrorf(jsonrpc.ErrInternal, "%v", err))
	}

	s.log.WithFields(logrus.Fields{
		"tool":     params.Name,
		"duration": time.Since(start).String(),
	}).Debug("tool call completed")

	return jsonrpc.NewResponse(request.Id, NewTextResult(text), nil)
}

// normalizeTeam resolves a user-supplied team name against the alias table
func (s *Server) normalizeTeam(name string) string {
	if name == "" {
		return ""
	}
	return s.aliases.Normalize(name)
}
