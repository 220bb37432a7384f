package agent

import (
	"encoding/json"

	agentkit "github.com/agentkit-go/agentkit"
)

func NewAgentItemMessage(message agentkit.Message) AgentItem {
	return AgentItem{Message: &message}
}

func NewAgentItemModelResponse(response agentkit.ModelResponse) AgentItem {
	return AgentItem{Model: &AgentItemModelResponse{ModelResponse: &response}}
}

func NewAgentItemTool(toolCallID, toolName string, input json.RawMessage, output []agentkit.Part, isError bool) AgentItem {
	return AgentItem{Tool: &AgentItemTool{
		ToolCallID: toolCallID,
		ToolName:   toolName,
		Input:      input,
		Output:     output,
		IsError:    isError,
	}}
}

func NewAgentStreamItemEvent(index int, item AgentItem) *AgentStreamEvent {
	return &AgentStreamEvent{Item: &AgentStreamItemEvent{Index: index, Item: item}}
}

func NewAgentStreamEventPartial(partial *agentkit.PartialModelResponse) *AgentStreamEvent {
	return &AgentStreamEvent{Partial: partial}
}

func NewAgentStreamEventResponse(response *AgentResponse) *AgentStreamEvent {
	return &AgentStreamEvent{Response: response}
}
