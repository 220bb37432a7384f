package agent_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	agentkit "github.com/agentkit-go/agentkit"
	"github.com/agentkit-go/agentkit/agent"
	"github.com/agentkit-go/agentkit/agentkittest"
	"github.com/google/go-cmp/cmp"
)

var errTestToolkitInit = errors.New("toolkit init failed")

// MockAgentTool implements agent.AgentTool for testing.
type MockAgentTool[C any] struct {
	name        string
	description string
	parameters  agentkit.JSONSchema
	executeFunc func(ctx context.Context, params json.RawMessage, contextVal C, runState *agent.RunState) (agent.AgentToolResult, error)
	LastArgs    json.RawMessage
	LastContext C
	AllCalls    []json.RawMessage
}

func NewMockTool[C any](name string, result agent.AgentToolResult, executeFunc func(ctx context.Context, params json.RawMessage, contextVal C, runState *agent.RunState) (agent.AgentToolResult, error)) *MockAgentTool[C] {
	if executeFunc == nil {
		executeFunc = func(ctx context.Context, params json.RawMessage, contextVal C, runState *agent.RunState) (agent.AgentToolResult, error) {
			return result, nil
		}
	}
	return &MockAgentTool[C]{
		name:        name,
		description: "Mock tool " + name,
		parameters: agentkit.JSONSchema{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
		executeFunc: executeFunc,
	}
}

func (tool *MockAgentTool[C]) Name() string { return tool.name }

func (tool *MockAgentTool[C]) Description() string { return tool.description }

func (tool *MockAgentTool[C]) Parameters() agentkit.JSONSchema { return tool.parameters }

func (tool *MockAgentTool[C]) Execute(ctx context.Context, params json.RawMessage, contextVal C, runState *agent.RunState) (agent.AgentToolResult, error) {
	tool.LastArgs = params
	tool.LastContext = contextVal
	tool.AllCalls = append(tool.AllCalls, params)
	return tool.executeFunc(ctx, params, contextVal, runState)
}

type mockToolkit[C any] struct {
	createFn func(ctx context.Context, contextVal C) (agent.ToolkitSession[C], error)
}

func (m *mockToolkit[C]) CreateSession(ctx context.Context, contextVal C) (agent.ToolkitSession[C], error) {
	return m.createFn(ctx, contextVal)
}

type mockToolkitSession[C any] struct {
	systemPrompt      *string
	tools             []agent.AgentTool[C]
	toolsErr          error
	systemPromptCalls int
	toolsCalls        int
	closeCalls        int
	closeErr          error
}

func (m *mockToolkitSession[C]) SystemPrompt() *string {
	m.systemPromptCalls++
	return m.systemPrompt
}

func (m *mockToolkitSession[C]) Tools() ([]agent.AgentTool[C], error) {
	m.toolsCalls++
	if m.toolsErr != nil {
		return nil, m.toolsErr
	}
	return m.tools, nil
}

func (m *mockToolkitSession[C]) Close(context.Context) error {
	m.closeCalls++
	return m.closeErr
}

func mustNewRunSession[C any](t *testing.T, params *agent.AgentParams[C], contextVal C) *agent.RunSession[C] {
	t.Helper()
	session, err := agent.NewRunSession(t.Context(), params, contextVal)
	if err != nil {
		t.Fatalf("failed to create run session: %v", err)
	}
	return session
}

func TestRun_ReturnsResponse_NoToolCall(t *testing.T) {
	model := agentkittest.NewMockLanguageModel()
	model.EnqueueGenerateResult(
		agentkittest.NewMockGenerateResultResponse(agentkit.ModelResponse{
			Content: []agentkit.Part{agentkit.NewTextPart("Hi!")},
		}),
	)

	session := mustNewRunSession(
		t,
		&agent.AgentParams[map[string]interface{}]{
			Name:           "test_agent",
			Model:          model,
			ResponseFormat: agentkit.NewResponseFormatText(),
			MaxTurns:       10,
		},
		map[string]interface{}{},
	)

	response, err := session.Run(t.Context(), agent.RunSessionRequest{
		Input: []agent.AgentItem{
			agent.NewAgentItemMessage(agentkit.NewUserMessage(agentkit.NewTextPart("Hello!"))),
		},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := &agent.AgentResponse{
		Content: []agentkit.Part{agentkit.NewTextPart("Hi!")},
		Output: []agent.AgentItem{
			agent.NewAgentItemModelResponse(agentkit.ModelResponse{
				Content: []agentkit.Part{agentkit.NewTextPart("Hi!")},
			}),
		},
	}

	if diff := cmp.Diff(expected, response); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_ExecutesSingleToolCallAndReturnsResponse(t *testing.T) {
	toolResult := agent.AgentToolResult{Content: []agentkit.Part{agentkit.NewTextPart("Tool result")}}
	tool := NewMockTool[map[string]interface{}]("test_tool", toolResult, nil)

	model := agentkittest.NewMockLanguageModel()
	model.EnqueueGenerateResult(
		agentkittest.NewMockGenerateResultResponse(agentkit.ModelResponse{
			Content: []agentkit.Part{agentkit.NewToolCallPart("call_1", "test_tool", json.RawMessage(`{"param":"value"}`))},
			Usage:   &agentkit.ModelUsage{InputTokens: 1000, OutputTokens: 50},
		}),
	)
	model.EnqueueGenerateResult(
		agentkittest.NewMockGenerateResultResponse(agentkit.ModelResponse{
			Content: []agentkit.Part{agentkit.NewTextPart("Final response")},
		}),
	)

	session := mustNewRunSession(
		t,
		&agent.AgentParams[map[string]interface{}]{
			Name:           "test_agent",
			Model:          model,
			Tools:          []agent.AgentTool[map[string]interface{}]{tool},
			ResponseFormat: agentkit.NewResponseFormatText(),
			MaxTurns:       10,
		},
		map[string]interface{}{"testContext": true},
	)

	response, err := session.Run(t.Context(), agent.RunSessionRequest{
		Input: []agent.AgentItem{
			agent.NewAgentItemMessage(agentkit.NewUserMessage(agentkit.NewTextPart("Use the tool"))),
		},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var args map[string]interface{}
	if err := json.Unmarshal(tool.LastArgs, &args); err != nil {
		t.Fatalf("failed to unmarshal tool args: %v", err)
	}
	if args["param"] != "value" {
		t.Errorf("expected param=value, got param=%v", args["param"])
	}
	if testCtx, ok := tool.LastContext["testContext"].(bool); !ok || !testCtx {
		t.Errorf("expected testContext=true, got %v", tool.LastContext)
	}

	expected := &agent.AgentResponse{
		Content: []agentkit.Part{agentkit.NewTextPart("Final response")},
		Output: []agent.AgentItem{
			agent.NewAgentItemModelResponse(agentkit.ModelResponse{
				Content: []agentkit.Part{agentkit.NewToolCallPart("call_1", "test_tool", json.RawMessage(`{"param":"value"}`))},
				Usage:   &agentkit.ModelUsage{InputTokens: 1000, OutputTokens: 50},
			}),
			agent.NewAgentItemTool("call_1", "test_tool", json.RawMessage(`{"param":"value"}`), []agentkit.Part{agentkit.NewTextPart("Tool result")}, false),
			agent.NewAgentItemModelResponse(agentkit.ModelResponse{
				Content: []agentkit.Part{agentkit.NewTextPart("Final response")},
			}),
		},
	}

	if diff := cmp.Diff(expected, response); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_ExecutesMultipleToolCallsConcurrentlyInOrder(t *testing.T) {
	tool1 := NewMockTool[map[string]interface{}]("tool_1", agent.AgentToolResult{Content: []agentkit.Part{agentkit.NewTextPart("Tool 1 result")}}, nil)
	tool2 := NewMockTool[map[string]interface{}]("tool_2", agent.AgentToolResult{Content: []agentkit.Part{agentkit.NewTextPart("Tool 2 result")}}, nil)

	model := agentkittest.NewMockLanguageModel()
	model.EnqueueGenerateResult(
		agentkittest.NewMockGenerateResultResponse(agentkit.ModelResponse{
			Content: []agentkit.Part{
				agentkit.NewToolCallPart("call_1", "tool_1", json.RawMessage(`{"param":"value1"}`)),
				agentkit.NewToolCallPart("call_2", "tool_2", json.RawMessage(`{"param":"value2"}`)),
			},
		}),
	)
	model.EnqueueGenerateResult(
		agentkittest.NewMockGenerateResultResponse(agentkit.ModelResponse{
			Content: []agentkit.Part{agentkit.NewTextPart("Processed both tools")},
		}),
	)

	session := mustNewRunSession(
		t,
		&agent.AgentParams[map[string]interface{}]{
			Name:           "test_agent",
			Model:          model,
			Tools:          []agent.AgentTool[map[string]interface{}]{tool1, tool2},
			ResponseFormat: agentkit.NewResponseFormatText(),
			MaxTurns:       10,
		},
		map[string]interface{}{},
	)

	response, err := session.Run(t.Context(), agent.RunSessionRequest{
		Input: []agent.AgentItem{
			agent.NewAgentItemMessage(agentkit.NewUserMessage(agentkit.NewTextPart("Use both tools"))),
		},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Both tools run concurrently, but items must still surface in
	// call-emission order regardless of which execution finishes first.
	expected := &agent.AgentResponse{
		Content: []agentkit.Part{agentkit.NewTextPart("Processed both tools")},
		Output: []agent.AgentItem{
			agent.NewAgentItemModelResponse(agentkit.ModelResponse{
				Content: []agentkit.Part{
					agentkit.NewToolCallPart("call_1", "tool_1", json.RawMessage(`{"param":"value1"}`)),
					agentkit.NewToolCallPart("call_2", "tool_2", json.RawMessage(`{"param":"value2"}`)),
				},
			}),
			agent.NewAgentItemTool("call_1", "tool_1", json.RawMessage(`{"param":"value1"}`), []agentkit.Part{agentkit.NewTextPart("Tool 1 result")}, false),
			agent.NewAgentItemTool("call_2", "tool_2", json.RawMessage(`{"param":"value2"}`), []agentkit.Part{agentkit.NewTextPart("Tool 2 result")}, false),
			agent.NewAgentItemModelResponse(agentkit.ModelResponse{
				Content: []agentkit.Part{agentkit.NewTextPart("Processed both tools")},
			}),
		},
	}

	if diff := cmp.Diff(expected, response); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_ThrowsAgentMaxTurnsExceededError(t *testing.T) {
	tool := NewMockTool[map[string]interface{}]("test_tool", agent.AgentToolResult{Content: []agentkit.Part{agentkit.NewTextPart("Tool result")}}, nil)

	model := agentkittest.NewMockLanguageModel()
	for _, callID := range []string{"call_1", "call_2", "call_3"} {
		model.EnqueueGenerateResult(
			agentkittest.NewMockGenerateResultResponse(agentkit.ModelResponse{
				Content: []agentkit.Part{agentkit.NewToolCallPart(callID, "test_tool", json.RawMessage(`{}`))},
			}),
		)
	}

	session := mustNewRunSession(
		t,
		&agent.AgentParams[map[string]interface{}]{
			Name:     "test_agent",
			Model:    model,
			Tools:    []agent.AgentTool[map[string]interface{}]{tool},
			MaxTurns: 2,
		},
		map[string]interface{}{},
	)

	_, err := session.Run(t.Context(), agent.RunSessionRequest{
		Input: []agent.AgentItem{
			agent.NewAgentItemMessage(agentkit.NewUserMessage(agentkit.NewTextPart("Keep using tools"))),
		},
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var agentErr *agent.AgentError
	if !errors.As(err, &agentErr) {
		t.Fatalf("expected AgentError, got %T", err)
	}
	if agentErr.Kind != agent.AgentErrorKindMaxTurnsExceeded {
		t.Errorf("expected max turns exceeded error, got %s", agentErr.Kind)
	}
}

func TestRun_ThrowsAgentInvariantError_WhenToolNotFound(t *testing.T) {
	model := agentkittest.NewMockLanguageModel()
	model.EnqueueGenerateResult(
		agentkittest.NewMockGenerateResultResponse(agentkit.ModelResponse{
			Content: []agentkit.Part{agentkit.NewToolCallPart("call_1", "non_existent_tool", json.RawMessage(`{}`))},
		}),
	)

	session := mustNewRunSession(
		t,
		&agent.AgentParams[map[string]interface{}]{
			Name:     "test_agent",
			Model:    model,
			MaxTurns: 10,
		},
		map[string]interface{}{},
	)

	_, err := session.Run(t.Context(), agent.RunSessionRequest{
		Input: []agent.AgentItem{
			agent.NewAgentItemMessage(agentkit.NewUserMessage(agentkit.NewTextPart("Use a tool"))),
		},
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var agentErr *agent.AgentError
	if !errors.As(err, &agentErr) {
		t.Fatalf("expected AgentError, got %T", err)
	}
	if agentErr.Kind != agent.InvariantErrorKind {
		t.Errorf("expected invariant error, got %s", agentErr.Kind)
	}
}

func TestRun_ThrowsAgentToolExecutionError_WhenToolExecutionFails(t *testing.T) {
	tool := NewMockTool("failing_tool", agent.AgentToolResult{}, func(ctx context.Context, params json.RawMessage, contextVal map[string]interface{}, runState *agent.RunState) (agent.AgentToolResult, error) {
		return agent.AgentToolResult{}, errors.New("tool execution failed")
	})

	model := agentkittest.NewMockLanguageModel()
	model.EnqueueGenerateResult(
		agentkittest.NewMockGenerateResultResponse(agentkit.ModelResponse{
			Content: []agentkit.Part{agentkit.NewToolCallPart("call_1", "failing_tool", json.RawMessage(`{}`))},
		}),
	)

	session := mustNewRunSession(
		t,
		&agent.AgentParams[map[string]interface{}]{
			Name:     "test_agent",
			Model:    model,
			Tools:    []agent.AgentTool[map[string]interface{}]{tool},
			MaxTurns: 10,
		},
		map[string]interface{}{},
	)

	_, err := session.Run(t.Context(), agent.RunSessionRequest{
		Input: []agent.AgentItem{
			agent.NewAgentItemMessage(agentkit.NewUserMessage(agentkit.NewTextPart("Use the tool"))),
		},
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var agentErr *agent.AgentError
	if !errors.As(err, &agentErr) {
		t.Fatalf("expected AgentError, got %T", err)
	}
	if agentErr.Kind != agent.ToolExecutionErrorKind {
		t.Errorf("expected tool execution error, got %s", agentErr.Kind)
	}
}

func TestRun_HandlesToolReturningErrorResult(t *testing.T) {
	toolResult := agent.AgentToolResult{Content: []agentkit.Part{agentkit.NewTextPart("Error: Invalid parameters")}, IsError: true}
	tool := NewMockTool[map[string]interface{}]("test_tool", toolResult, nil)

	model := agentkittest.NewMockLanguageModel()
	model.EnqueueGenerateResult(
		agentkittest.NewMockGenerateResultResponse(agentkit.ModelResponse{
			Content: []agentkit.Part{agentkit.NewToolCallPart("call_1", "test_tool", json.RawMessage(`{"invalid":true}`))},
		}),
	)
	model.EnqueueGenerateResult(
		agentkittest.NewMockGenerateResultResponse(agentkit.ModelResponse{
			Content: []agentkit.Part{agentkit.NewTextPart("Handled the error")},
		}),
	)

	session := mustNewRunSession(
		t,
		&agent.AgentParams[map[string]interface{}]{
			Name:     "test_agent",
			Model:    model,
			Tools:    []agent.AgentTool[map[string]interface{}]{tool},
			MaxTurns: 10,
		},
		map[string]interface{}{},
	)

	response, err := session.Run(t.Context(), agent.RunSessionRequest{
		Input: []agent.AgentItem{
			agent.NewAgentItemMessage(agentkit.NewUserMessage(agentkit.NewTextPart("Use the tool"))),
		},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, item := range response.Output {
		if item.Tool != nil && !item.Tool.IsError {
			t.Fatalf("expected tool item to carry IsError=true, got %+v", item.Tool)
		}
	}
}

func TestRun_MergesToolkitPromptsAndTools(t *testing.T) {
	type customerContext struct {
		Customer string
	}

	model := agentkittest.NewMockLanguageModel()
	model.EnqueueGenerateResult(
		agentkittest.NewMockGenerateResultResponse(agentkit.ModelResponse{
			Content: []agentkit.Part{agentkit.NewToolCallPart("call-1", "lookup-order", json.RawMessage(`{"orderId":"123"}`))},
		}),
	)
	model.EnqueueGenerateResult(
		agentkittest.NewMockGenerateResultResponse(agentkit.ModelResponse{
			Content: []agentkit.Part{agentkit.NewTextPart("Order ready")},
		}),
	)

	var executedTurn uint
	dynamicTool := NewMockTool[customerContext](
		"lookup-order",
		agent.AgentToolResult{},
		func(ctx context.Context, params json.RawMessage, contextVal customerContext, runState *agent.RunState) (agent.AgentToolResult, error) {
			var args map[string]string
			if err := json.Unmarshal(params, &args); err != nil {
				return agent.AgentToolResult{}, err
			}
			executedTurn = runState.CurrentTurn
			text := "Order " + args["orderId"] + " ready for " + contextVal.Customer
			return agent.AgentToolResult{Content: []agentkit.Part{agentkit.NewTextPart(text)}}, nil
		},
	)

	toolkitPrompt := "Toolkit prompt"
	session := &mockToolkitSession[customerContext]{systemPrompt: &toolkitPrompt, tools: []agent.AgentTool[customerContext]{dynamicTool}}
	toolkit := &mockToolkit[customerContext]{
		createFn: func(ctx context.Context, contextVal customerContext) (agent.ToolkitSession[customerContext], error) {
			return session, nil
		},
	}

	ctxVal := customerContext{Customer: "Ada"}
	runSession := mustNewRunSession(
		t,
		&agent.AgentParams[customerContext]{
			Name:           "toolkit-agent",
			Model:          model,
			Toolkits:       []agent.Toolkit[customerContext]{toolkit},
			ResponseFormat: agentkit.NewResponseFormatText(),
			MaxTurns:       10,
		},
		ctxVal,
	)

	response, err := runSession.Run(t.Context(), agent.RunSessionRequest{
		Input: []agent.AgentItem{agent.NewAgentItemMessage(agentkit.NewUserMessage(agentkit.NewTextPart("Status?")))},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if executedTurn != 1 {
		t.Fatalf("expected execution on turn 1, got %d", executedTurn)
	}

	inputs := model.TrackedGenerateInputs()
	if len(inputs) != 2 {
		t.Fatalf("expected 2 tracked generate inputs, got %d", len(inputs))
	}
	for _, input := range inputs {
		if input.SystemPrompt == nil || *input.SystemPrompt != toolkitPrompt {
			t.Fatalf("unexpected system prompt: %v", input.SystemPrompt)
		}
	}

	expected := &agent.AgentResponse{
		Content: []agentkit.Part{agentkit.NewTextPart("Order ready")},
		Output: []agent.AgentItem{
			agent.NewAgentItemModelResponse(agentkit.ModelResponse{
				Content: []agentkit.Part{agentkit.NewToolCallPart("call-1", "lookup-order", json.RawMessage(`{"orderId":"123"}`))},
			}),
			agent.NewAgentItemTool("call-1", "lookup-order", json.RawMessage(`{"orderId":"123"}`), []agentkit.Part{agentkit.NewTextPart("Order 123 ready for Ada")}, false),
			agent.NewAgentItemModelResponse(agentkit.ModelResponse{
				Content: []agentkit.Part{agentkit.NewTextPart("Order ready")},
			}),
		},
	}
	if diff := cmp.Diff(expected, response); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}

	if err := runSession.Close(t.Context()); err != nil {
		t.Fatalf("expected no close error, got %v", err)
	}
	if session.closeCalls != 1 {
		t.Fatalf("expected toolkit close once, got %d", session.closeCalls)
	}
}

func TestRun_SurfacesToolkitDiscoveryFailureAsInvariantNotPanic(t *testing.T) {
	type ctxType struct{}

	model := agentkittest.NewMockLanguageModel()
	session := &mockToolkitSession[ctxType]{toolsErr: errors.New("background discovery failed")}
	toolkit := &mockToolkit[ctxType]{
		createFn: func(ctx context.Context, contextVal ctxType) (agent.ToolkitSession[ctxType], error) {
			return session, nil
		},
	}

	runSession := mustNewRunSession(
		t,
		&agent.AgentParams[ctxType]{
			Name:     "test_agent",
			Model:    model,
			Toolkits: []agent.Toolkit[ctxType]{toolkit},
			MaxTurns: 10,
		},
		ctxType{},
	)

	_, err := runSession.Run(t.Context(), agent.RunSessionRequest{
		Input: []agent.AgentItem{agent.NewAgentItemMessage(agentkit.NewUserMessage(agentkit.NewTextPart("Hello")))},
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var agentErr *agent.AgentError
	if !errors.As(err, &agentErr) || agentErr.Kind != agent.InvariantErrorKind {
		t.Fatalf("expected invariant error surfacing the discovery failure, got %v", err)
	}
}

func TestRunStream_StreamsResponse_NoToolCall(t *testing.T) {
	model := agentkittest.NewMockLanguageModel()
	model.EnqueueStreamResult(
		agentkittest.NewMockStreamResultPartials([]agentkit.PartialModelResponse{
			{Delta: &agentkit.ContentDelta{Index: 0, Part: agentkit.PartDelta{TextPartDelta: &agentkit.TextPartDelta{Text: "Hel"}}}},
			{Delta: &agentkit.ContentDelta{Index: 0, Part: agentkit.PartDelta{TextPartDelta: &agentkit.TextPartDelta{Text: "lo!"}}}},
		}),
	)

	session := mustNewRunSession(
		t,
		&agent.AgentParams[map[string]interface{}]{
			Name:           "test_agent",
			Model:          model,
			ResponseFormat: agentkit.NewResponseFormatText(),
			MaxTurns:       10,
		},
		map[string]interface{}{},
	)

	s, err := session.RunStream(t.Context(), agent.RunSessionRequest{
		Input: []agent.AgentItem{agent.NewAgentItemMessage(agentkit.NewUserMessage(agentkit.NewTextPart("Hi")))},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var events []*agent.AgentStreamEvent
	for s.Next() {
		events = append(events, s.Current())
	}
	if err := s.Err(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(events) != 4 {
		t.Fatalf("expected 4 events (2 partials + model item + response), got %d", len(events))
	}
	last := events[len(events)-1]
	if last.Response == nil || len(last.Response.Content) != 1 || last.Response.Content[0].TextPart.Text != "Hello!" {
		t.Fatalf("unexpected final response: %+v", last.Response)
	}
}

func TestRunStream_ThrowsErrorWhenMaxTurnsExceeded(t *testing.T) {
	tool := NewMockTool[map[string]interface{}]("test_tool", agent.AgentToolResult{Content: []agentkit.Part{agentkit.NewTextPart("Tool result")}}, nil)

	model := agentkittest.NewMockLanguageModel()
	for _, callID := range []string{"call_1", "call_2", "call_3"} {
		model.EnqueueStreamResult(
			agentkittest.NewMockStreamResultPartials([]agentkit.PartialModelResponse{
				{Delta: &agentkit.ContentDelta{Index: 0, Part: agentkit.PartDelta{ToolCallPartDelta: &agentkit.ToolCallPartDelta{
					ToolCallID: ptrStr(callID),
					ToolName:   ptrStr("test_tool"),
					Args:       ptrStr("{}"),
				}}}},
			}),
		)
	}

	session := mustNewRunSession(
		t,
		&agent.AgentParams[map[string]interface{}]{
			Name:     "test_agent",
			Model:    model,
			Tools:    []agent.AgentTool[map[string]interface{}]{tool},
			MaxTurns: 2,
		},
		map[string]interface{}{},
	)

	s, err := session.RunStream(t.Context(), agent.RunSessionRequest{
		Input: []agent.AgentItem{agent.NewAgentItemMessage(agentkit.NewUserMessage(agentkit.NewTextPart("Keep using tools")))},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for s.Next() {
	}
	err = s.Err()
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var agentErr *agent.AgentError
	if !errors.As(err, &agentErr) || agentErr.Kind != agent.AgentErrorKindMaxTurnsExceeded {
		t.Fatalf("expected max turns exceeded error, got %v", err)
	}
}

func TestRun_CloseCleansUpSessionResources(t *testing.T) {
	model := agentkittest.NewMockLanguageModel()
	model.EnqueueGenerateResult(
		agentkittest.NewMockGenerateResultResponse(agentkit.ModelResponse{
			Content: []agentkit.Part{agentkit.NewTextPart("Response")},
		}),
	)

	session := mustNewRunSession(
		t,
		&agent.AgentParams[map[string]interface{}]{
			Name:     "test_agent",
			Model:    model,
			MaxTurns: 10,
		},
		map[string]interface{}{},
	)

	_, err := session.Run(t.Context(), agent.RunSessionRequest{
		Input: []agent.AgentItem{agent.NewAgentItemMessage(agentkit.NewUserMessage(agentkit.NewTextPart("Hello")))},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := session.Close(t.Context()); err != nil {
		t.Fatalf("expected no close error, got %v", err)
	}

	_, err = session.Run(t.Context(), agent.RunSessionRequest{
		Input: []agent.AgentItem{agent.NewAgentItemMessage(agentkit.NewUserMessage(agentkit.NewTextPart("Hello again")))},
	})
	if err == nil {
		t.Fatal("expected error when running after close, got nil")
	}

	var agentErr *agent.AgentError
	if !errors.As(err, &agentErr) || agentErr.Kind != agent.InvariantErrorKind {
		t.Fatalf("expected invariant error after close, got %v", err)
	}
}

func ptrStr(s string) *string { return &s }
