// Package mcp implements agent.Toolkit on top of the Model Context
// Protocol, hydrating an agent's tool set from a remote MCP server over
// stdio or streamable HTTP.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// MCPInit resolves per-session MCP server configuration. Use
// StaticMCPInit for a fixed target, or supply a resolver that inspects
// the bound context value, e.g. to inject user-specific credentials.
type MCPInit[C any] func(ctx context.Context, contextVal C) (MCPParams, error)

// StaticMCPInit returns an MCPInit that always yields the same params.
func StaticMCPInit[C any](params MCPParams) MCPInit[C] {
	return func(context.Context, C) (MCPParams, error) {
		return params, nil
	}
}

// MCPParams describes how to reach an MCP server. Exactly one variant is
// set.
type MCPParams struct {
	stdio          *MCPStdioParams
	streamableHTTP *MCPStreamableHTTPParams
}

// MCPStdioParams launches a local MCP server over stdio.
type MCPStdioParams struct {
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
}

// MCPStreamableHTTPParams connects to a remote MCP server using the
// streamable HTTP transport.
type MCPStreamableHTTPParams struct {
	URL string `json:"url"`
	// Authorization, if set, is sent as a bearer token; OAuth flows are not
	// handled automatically.
	Authorization string `json:"authorization,omitempty"`
}

const (
	paramTypeStdio          = "stdio"
	paramTypeStreamableHTTP = "streamable-http"
)

func NewMCPStdioParams(command string, args []string) MCPParams {
	return MCPParams{stdio: &MCPStdioParams{Command: command, Args: args}}
}

func NewMCPStreamableHTTPParams(url, authorization string) MCPParams {
	return MCPParams{streamableHTTP: &MCPStreamableHTTPParams{URL: url, Authorization: authorization}}
}

func (p MCPParams) StdioParams() (*MCPStdioParams, bool) {
	if p.stdio == nil {
		return nil, false
	}
	return p.stdio, true
}

func (p MCPParams) StreamableHTTPParams() (*MCPStreamableHTTPParams, bool) {
	if p.streamableHTTP == nil {
		return nil, false
	}
	return p.streamableHTTP, true
}

func (p MCPParams) isZero() bool {
	return p.stdio == nil && p.streamableHTTP == nil
}

func (p MCPParams) MarshalJSON() ([]byte, error) {
	switch {
	case p.stdio != nil:
		return json.Marshal(struct {
			Type string `json:"type"`
			*MCPStdioParams
		}{Type: paramTypeStdio, MCPStdioParams: p.stdio})
	case p.streamableHTTP != nil:
		return json.Marshal(struct {
			Type string `json:"type"`
			*MCPStreamableHTTPParams
		}{Type: paramTypeStreamableHTTP, MCPStreamableHTTPParams: p.streamableHTTP})
	default:
		return nil, errors.New("mcp params missing variant")
	}
}

func (p *MCPParams) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("decode MCP params discriminator: %w", err)
	}

	switch probe.Type {
	case paramTypeStdio:
		var payload struct {
			*MCPStdioParams
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("decode MCP stdio params: %w", err)
		}
		if payload.MCPStdioParams == nil || payload.Command == "" {
			return errors.New("mcp stdio params missing command")
		}
		p.stdio = payload.MCPStdioParams
		p.streamableHTTP = nil
		return nil
	case paramTypeStreamableHTTP:
		var payload struct {
			*MCPStreamableHTTPParams
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("decode MCP streamable-http params: %w", err)
		}
		if payload.MCPStreamableHTTPParams == nil || payload.URL == "" {
			return errors.New("mcp streamable-http params missing url")
		}
		p.streamableHTTP = payload.MCPStreamableHTTPParams
		p.stdio = nil
		return nil
	default:
		return fmt.Errorf("unknown mcp params type %q", probe.Type)
	}
}
