package agent_test

import (
	"context"
	"testing"

	agentkit "github.com/agentkit-go/agentkit"
	"github.com/agentkit-go/agentkit/agent"
	"github.com/agentkit-go/agentkit/agentkittest"
	"github.com/google/go-cmp/cmp"
)

func TestAgent_Run(t *testing.T) {
	t.Run("creates session, runs, and closes", func(t *testing.T) {
		model := agentkittest.NewMockLanguageModel()
		model.EnqueueGenerateResult(
			agentkittest.NewMockGenerateResultResponse(agentkit.ModelResponse{
				Content: []agentkit.Part{agentkit.NewTextPart("Mock response")},
			}),
		)
		a := agent.NewAgent[map[string]interface{}]("test-agent", model)

		response, err := a.Run(context.Background(), agent.AgentRequest[map[string]interface{}]{
			Context: map[string]interface{}{},
			Input: []agent.AgentItem{
				agent.NewAgentItemMessage(agentkit.NewUserMessage(agentkit.NewTextPart("Hello"))),
			},
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		expected := &agent.AgentResponse{
			Content: []agentkit.Part{agentkit.NewTextPart("Mock response")},
			Output: []agent.AgentItem{
				agent.NewAgentItemModelResponse(agentkit.ModelResponse{
					Content: []agentkit.Part{agentkit.NewTextPart("Mock response")},
				}),
			},
		}

		if diff := cmp.Diff(expected, response); diff != "" {
			t.Errorf("response mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestAgent_RunStream(t *testing.T) {
	t.Run("creates session, streams, and closes", func(t *testing.T) {
		model := agentkittest.NewMockLanguageModel()
		model.EnqueueStreamResult(
			agentkittest.NewMockStreamResultPartials([]agentkit.PartialModelResponse{
				{Delta: &agentkit.ContentDelta{Index: 0, Part: agentkit.PartDelta{TextPartDelta: &agentkit.TextPartDelta{Text: "Mock"}}}},
			}),
		)
		a := agent.NewAgent[map[string]interface{}]("test-agent", model)

		s, err := a.RunStream(context.Background(), agent.AgentRequest[map[string]interface{}]{
			Context: map[string]interface{}{},
			Input: []agent.AgentItem{
				agent.NewAgentItemMessage(agentkit.NewUserMessage(agentkit.NewTextPart("Hello"))),
			},
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

		expected := []*agent.AgentStreamEvent{
			{Partial: &agentkit.PartialModelResponse{
				Delta: &agentkit.ContentDelta{Index: 0, Part: agentkit.PartDelta{TextPartDelta: &agentkit.TextPartDelta{Text: "Mock"}}},
			}},
			agent.NewAgentStreamItemEvent(0, agent.NewAgentItemModelResponse(agentkit.ModelResponse{
				Content: []agentkit.Part{agentkit.NewTextPart("Mock")},
			})),
			{Response: &agent.AgentResponse{
				Content: []agentkit.Part{agentkit.NewTextPart("Mock")},
				Output: []agent.AgentItem{
					agent.NewAgentItemModelResponse(agentkit.ModelResponse{
						Content: []agentkit.Part{agentkit.NewTextPart("Mock")},
					}),
				},
			}},
		}

		if diff := cmp.Diff(expected, events); diff != "" {
			t.Errorf("stream events mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestAgent_RunPropagatesInitError(t *testing.T) {
	model := agentkittest.NewMockLanguageModel()
	failingToolkit := &mockToolkit[map[string]interface{}]{
		createFn: func(ctx context.Context, contextVal map[string]interface{}) (agent.ToolkitSession[map[string]interface{}], error) {
			return nil, errTestToolkitInit
		},
	}

	a := agent.NewAgent[map[string]interface{}]("test-agent", model, agent.WithToolkits[map[string]interface{}](failingToolkit))

	_, err := a.Run(context.Background(), agent.AgentRequest[map[string]interface{}]{
		Context: map[string]interface{}{},
		Input: []agent.AgentItem{
			agent.NewAgentItemMessage(agentkit.NewUserMessage(agentkit.NewTextPart("Hello"))),
		},
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
