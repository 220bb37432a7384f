package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	agentkit "github.com/agentkit-go/agentkit"
	"github.com/agentkit-go/agentkit/agent"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// toolkit wires an MCP server into the agent.Toolkit contract so a run can
// hydrate remote tools on demand.
type toolkit[C any] struct {
	init MCPInit[C]
}

// NewMCPToolkit returns an agent.Toolkit that sources tools from a Model
// Context Protocol server. init can inspect the bound context value (e.g.
// pull user-specific auth) before the session connects.
func NewMCPToolkit[C any](init MCPInit[C]) agent.Toolkit[C] {
	return &toolkit[C]{init: init}
}

func (t *toolkit[C]) CreateSession(ctx context.Context, contextVal C) (agent.ToolkitSession[C], error) {
	params, err := t.init(ctx, contextVal)
	if err != nil {
		return nil, fmt.Errorf("resolve MCP params: %w", err)
	}
	if params.isZero() {
		return nil, errors.New("mcp params missing variant")
	}

	return newToolkitSession[C](ctx, params)
}

// toolkitSession bridges one MCP client session into the agent runtime.
type toolkitSession[C any] struct {
	client    *mcp.Client
	transport mcp.Transport
	session   *mcp.ClientSession

	mu sync.RWMutex
	// tools is the latest snapshot surfaced to the agent runtime.
	tools []agent.AgentTool[C]
	// toolListErr records the error from the last background discovery
	// attempt, surfaced to the caller on the next Tools() call instead of
	// panicking.
	toolListErr error
}

func newToolkitSession[C any](ctx context.Context, params MCPParams) (*toolkitSession[C], error) {
	transport, err := buildTransport(params)
	if err != nil {
		return nil, err
	}
	s := &toolkitSession[C]{
		transport: transport,
		tools:     make([]agent.AgentTool[C], 0),
	}
	clientOpts := &mcp.ClientOptions{
		ToolListChangedHandler: func(ctx context.Context, _ *mcp.ToolListChangedRequest) {
			_ = s.reloadTools(ctx)
		},
	}
	s.client = mcp.NewClient(&mcp.Implementation{Name: "agentkit-go", Version: "0.1.0"}, clientOpts)

	if err := s.initialize(ctx); err != nil {
		_ = s.Close(ctx)
		return nil, err
	}

	return s, nil
}

func (s *toolkitSession[C]) initialize(ctx context.Context) error {
	// mcp.ClientSession keeps using the connect-time context for its whole
	// lifetime, so it must outlive the ctx passed to this call.
	clientSession, err := s.client.Connect(context.Background(), s.transport, nil)
	if err != nil {
		return fmt.Errorf("connect MCP client: %w", err)
	}
	s.session = clientSession

	return s.reloadTools(ctx)
}

// SystemPrompt keeps parity with the Toolkit contract; MCP has no
// instruction concept, so this always returns nil.
func (s *toolkitSession[C]) SystemPrompt() *string {
	return nil
}

// Tools returns the latest cached tool list, surfacing a background
// discovery failure as an error rather than panicking.
func (s *toolkitSession[C]) Tools() ([]agent.AgentTool[C], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.toolListErr != nil {
		return nil, fmt.Errorf("mcp tool discovery failed: %w", s.toolListErr)
	}

	out := make([]agent.AgentTool[C], len(s.tools))
	copy(out, s.tools)
	return out, nil
}

func (s *toolkitSession[C]) Close(ctx context.Context) error {
	if s.session != nil {
		if err := s.session.Close(); err != nil {
			return fmt.Errorf("close MCP session: %w", err)
		}
	}
	return nil
}

func (s *toolkitSession[C]) reloadTools(ctx context.Context) error {
	if s.session == nil {
		return fmt.Errorf("mcp session not initialised")
	}

	tools, err := s.fetchTools(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.toolListErr = err
		return err
	}

	s.tools = tools
	s.toolListErr = nil
	return nil
}

func (s *toolkitSession[C]) fetchTools(ctx context.Context) ([]agent.AgentTool[C], error) {
	var (
		cursor    *string
		collected []agent.AgentTool[C]
	)

	for {
		var params *mcp.ListToolsParams
		if cursor != nil {
			params = &mcp.ListToolsParams{Cursor: *cursor}
		}

		result, err := s.session.ListTools(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("list MCP tools: %w", err)
		}

		for _, tool := range result.Tools {
			agentTool, convErr := s.toAgentTool(tool)
			if convErr != nil {
				return nil, convErr
			}
			collected = append(collected, agentTool)
		}

		if result.NextCursor == "" {
			break
		}
		cursor = &result.NextCursor
	}

	return collected, nil
}

func (s *toolkitSession[C]) toAgentTool(tool *mcp.Tool) (agent.AgentTool[C], error) {
	schema := agentkit.JSONSchema{}
	if tool.InputSchema != nil {
		raw, err := json.Marshal(tool.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("serialise MCP tool schema for %s: %w", tool.Name, err)
		}
		if err := json.Unmarshal(raw, &schema); err != nil {
			return nil, fmt.Errorf("decode MCP tool schema for %s: %w", tool.Name, err)
		}
	}

	return &agentTool[C]{
		session:     s.session,
		name:        tool.Name,
		description: tool.Description,
		parameters:  schema,
	}, nil
}

type agentTool[C any] struct {
	session     *mcp.ClientSession
	name        string
	description string
	parameters  agentkit.JSONSchema
}

func (t *agentTool[C]) Name() string { return t.name }

func (t *agentTool[C]) Description() string { return t.description }

func (t *agentTool[C]) Parameters() agentkit.JSONSchema { return t.parameters }

// Execute forwards the call to the MCP server and adapts the response
// into agentkit Parts.
func (t *agentTool[C]) Execute(ctx context.Context, params json.RawMessage, _ C, _ *agent.RunState) (agent.AgentToolResult, error) {
	var arguments map[string]any
	if len(params) == 0 {
		arguments = map[string]any{}
	} else if err := json.Unmarshal(params, &arguments); err != nil {
		return agent.AgentToolResult{}, fmt.Errorf("decode MCP tool args for %s: %w", t.name, err)
	}

	result, err := t.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      t.name,
		Arguments: arguments,
	})
	if err != nil {
		return agent.AgentToolResult{}, fmt.Errorf("call MCP tool %s: %w", t.name, err)
	}

	parts, err := convertMCPContentToParts(result.Content)
	if err != nil {
		return agent.AgentToolResult{}, err
	}

	return agent.AgentToolResult{Content: parts, IsError: result.IsError}, nil
}
