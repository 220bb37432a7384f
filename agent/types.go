package agent

import (
	"encoding/json"

	agentkit "github.com/agentkit-go/agentkit"
	"github.com/agentkit-go/agentkit/utils/stream"
)

// AgentItem is one entry in a run's item history: a conversation message,
// a raw model response, or an individual tool call result. Exactly one
// field is non-nil.
type AgentItem struct {
	Message *agentkit.Message       `json:"message,omitempty"`
	Model   *AgentItemModelResponse `json:"model,omitempty"`
	Tool    *AgentItemTool          `json:"tool,omitempty"`
}

// AgentItemModelResponse wraps a raw ModelResponse as an AgentItem.
type AgentItemModelResponse struct {
	*agentkit.ModelResponse
}

// AgentItemTool records the execution of one tool call: its input
// arguments, the resulting content, and whether execution failed.
type AgentItemTool struct {
	ToolCallID string          `json:"tool_call_id"`
	ToolName   string          `json:"tool_name"`
	Input      json.RawMessage `json:"input"`
	Output     []agentkit.Part `json:"output"`
	IsError    bool            `json:"is_error"`
}

// AgentRequest is the input to a one-shot Agent.Run / Agent.RunStream
// call: the bound context value and the items to seed the run with.
type AgentRequest[C any] struct {
	Context C
	Input   []AgentItem
}

// AgentResponse is the final result of a run: the last turn's content
// plus the complete list of items generated during the run.
type AgentResponse struct {
	Content []agentkit.Part `json:"content"`
	Output  []AgentItem     `json:"output"`
}

// AgentStreamItemEvent reports a newly appended AgentItem along with its
// index in the run's output list.
type AgentStreamItemEvent struct {
	Index int       `json:"index"`
	Item  AgentItem `json:"item"`
}

// AgentStreamEvent is one event of a streaming run. Exactly one field is
// non-nil: a raw model partial, a completed item, or the final response.
type AgentStreamEvent struct {
	Partial  *agentkit.PartialModelResponse `json:"partial,omitempty"`
	Item     *AgentStreamItemEvent          `json:"item,omitempty"`
	Response *AgentResponse                 `json:"response,omitempty"`
}

// AgentStream is the stream of events produced by a streaming run.
type AgentStream = stream.Stream[*AgentStreamEvent]
