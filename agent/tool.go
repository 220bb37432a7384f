package agent

import (
	"context"
	"encoding/json"

	agentkit "github.com/agentkit-go/agentkit"
)

// AgentTool is a tool the agent can call to perform a task. Any type
// implementing this interface can be registered with WithTools or served
// dynamically by a Toolkit.
type AgentTool[C any] interface {
	Name() string
	Description() string
	// Parameters is the JSON schema of the arguments this tool accepts; its
	// root type must be "object".
	Parameters() agentkit.JSONSchema
	// Execute runs the tool. If it returns an error, the run is interrupted
	// and the error propagated; to report a tool-level failure to the model
	// instead, return an AgentToolResult with IsError set and a nil error.
	Execute(ctx context.Context, params json.RawMessage, contextVal C, runState *RunState) (AgentToolResult, error)
}

// AgentToolResult is the outcome of one tool execution.
type AgentToolResult struct {
	Content []agentkit.Part `json:"content"`
	IsError bool            `json:"is_error"`
}
