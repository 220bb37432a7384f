package agent

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	agentkit "github.com/agentkit-go/agentkit"
	"github.com/agentkit-go/agentkit/utils/ptr"
	"github.com/agentkit-go/agentkit/utils/stream"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RunSession drives one or more runs of an agent against a bound context
// value. It resolves instructions and toolkit sessions once, on creation,
// and must be closed to release any toolkit-held resources.
//
// A session is not safe to use for two concurrent runs, but RunState
// itself serializes the internal bookkeeping a single run performs.
type RunSession[C any] struct {
	// ID identifies this session for log correlation across its turns and
	// concurrent tool calls.
	ID                 string
	params             *AgentParams[C]
	contextVal         C
	staticSystemPrompt *string
	staticTools        []AgentTool[C]
	toolkitSessions    []ToolkitSession[C]
	initialized        bool
}

// NewRunSession creates a session, resolving instructions and toolkit
// sessions before returning.
func NewRunSession[C any](ctx context.Context, params *AgentParams[C], contextVal C) (*RunSession[C], error) {
	session := &RunSession[C]{
		ID:          uuid.NewString(),
		params:      params,
		contextVal:  contextVal,
		staticTools: append([]AgentTool[C]{}, params.Tools...),
	}
	if err := session.initialize(ctx); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *RunSession[C]) initialize(ctx context.Context) error {
	if len(s.params.Instructions) > 0 {
		prompt := getPrompt(s.params.Instructions, s.contextVal)
		s.staticSystemPrompt = &prompt
	}

	if len(s.params.Toolkits) > 0 {
		sessions := make([]ToolkitSession[C], len(s.params.Toolkits))
		g, gctx := errgroup.WithContext(ctx)
		for i, toolkit := range s.params.Toolkits {
			g.Go(func() error {
				toolkitSession, err := toolkit.CreateSession(gctx, s.contextVal)
				if err != nil {
					return fmt.Errorf("toolkit[%d].CreateSession: %w", i, err)
				}
				sessions[i] = toolkitSession
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return NewInitError(err)
		}
		s.toolkitSessions = sessions
	}

	s.initialized = true
	return nil
}

// process flow:
//
//  1. Peek the latest run item to locate assistant content.
//     1a. Tail is a user message -> emit Next. Go to 3.
//     1b. Tail is a tool result -> gather processed ids, backtrack to the
//     originating assistant/model content. Go to 2.
//     1c. Tail is an assistant/model item -> use its content. Go to 2.
//  2. Scan the assistant content for tool calls.
//     2a. Unprocessed tool calls remain -> execute them concurrently,
//     emit each Item in call-emission order, then emit Next. Go to 3.
//     2b. No tool calls -> emit Response. Go to 4.
//  3. Outer loop: bump the turn, refresh params, request a model
//     response, append it, then re-enter step 1.
//  4. Return the final response to the caller.
func (s *RunSession[C]) process(ctx context.Context, runState *RunState, tools []AgentTool[C]) *stream.Stream[ProcessEvents] {
	currCh := make(chan ProcessEvents)
	errCh := make(chan error, 1)

	go func() {
		defer close(currCh)
		defer close(errCh)

		allItems := runState.Items()
		if len(allItems) == 0 {
			errCh <- NewInvariantError("no items in the run state")
			return
		}

		lastItem := allItems[len(allItems)-1]

		var content []agentkit.Part
		processedToolCallIDs := make(map[string]struct{})

		switch {
		case lastItem.Model != nil:
			content = lastItem.Model.Content
		case lastItem.Message != nil:
			switch {
			case lastItem.Message.AssistantMessage != nil:
				content = lastItem.Message.AssistantMessage.Content
			case lastItem.Message.UserMessage != nil:
				currCh <- ProcessEvents{Next: &struct{}{}}
				return
			case lastItem.Message.ToolMessage != nil:
				for _, part := range lastItem.Message.ToolMessage.Content {
					if part.ToolResultPart != nil {
						processedToolCallIDs[part.ToolResultPart.ToolCallID] = struct{}{}
					}
				}

				if len(allItems) < 2 {
					errCh <- NewInvariantError("no preceding assistant content found before tool results")
					return
				}

				previousItem := allItems[len(allItems)-2]
				switch {
				case previousItem.Model != nil:
					content = previousItem.Model.Content
				case previousItem.Message != nil && previousItem.Message.AssistantMessage != nil:
					content = previousItem.Message.AssistantMessage.Content
				default:
					errCh <- NewInvariantError("expected a model item or assistant message before tool results")
					return
				}
			default:
				errCh <- NewInvariantError("unsupported message role in run state")
				return
			}
		case lastItem.Tool != nil:
			for i := len(allItems) - 1; i >= 0; i-- {
				item := allItems[i]

				switch {
				case item.Tool != nil:
					processedToolCallIDs[item.Tool.ToolCallID] = struct{}{}
					continue
				case item.Model != nil:
					content = item.Model.Content
				case item.Message != nil && item.Message.ToolMessage != nil:
					for _, part := range item.Message.ToolMessage.Content {
						if part.ToolResultPart != nil {
							processedToolCallIDs[part.ToolResultPart.ToolCallID] = struct{}{}
						}
					}
					continue
				case item.Message != nil && item.Message.AssistantMessage != nil:
					content = item.Message.AssistantMessage.Content
				case item.Message != nil && item.Message.UserMessage != nil:
					errCh <- NewInvariantError("expected a model item or assistant message before tool results")
					return
				default:
					errCh <- NewInvariantError("invalid item type in run state")
					return
				}
				break
			}

			if content == nil {
				errCh <- NewInvariantError("no model or assistant message found before tool results")
				return
			}
		default:
			errCh <- NewInvariantError("unsupported item type in run state")
			return
		}

		if len(content) == 0 {
			errCh <- NewInvariantError("no assistant content found to process")
			return
		}

		var toolCallParts []*agentkit.ToolCallPart
		for _, part := range content {
			if part.ToolCallPart != nil {
				toolCallParts = append(toolCallParts, part.ToolCallPart)
			}
		}

		if len(toolCallParts) == 0 {
			currCh <- ProcessEvents{Response: &content}
			return
		}

		var pending []*agentkit.ToolCallPart
		for _, toolCallPart := range toolCallParts {
			if _, done := processedToolCallIDs[toolCallPart.ToolCallID]; !done {
				pending = append(pending, toolCallPart)
			}
		}

		// Tool calls belonging to the same turn run concurrently; results
		// are reassembled below into call-emission order so callers see a
		// deterministic item sequence regardless of completion order.
		items := make([]AgentItem, len(pending))
		g, gctx := errgroup.WithContext(ctx)
		for i, toolCallPart := range pending {
			i, toolCallPart := i, toolCallPart

			var agentTool AgentTool[C]
			for _, tool := range tools {
				if tool.Name() == toolCallPart.ToolName {
					agentTool = tool
					break
				}
			}
			if agentTool == nil {
				errCh <- NewInvariantError(fmt.Sprintf("tool %s not found for tool call", toolCallPart.ToolName))
				return
			}

			g.Go(func() error {
				res, err := agentTool.Execute(gctx, toolCallPart.Args, s.contextVal, runState)
				if err != nil {
					return NewToolExecutionError(err)
				}
				items[i] = NewAgentItemTool(toolCallPart.ToolCallID, toolCallPart.ToolName, toolCallPart.Args, res.Content, res.IsError)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			errCh <- err
			return
		}

		for _, item := range items {
			item := item
			currCh <- ProcessEvents{Item: &item}
		}

		currCh <- ProcessEvents{Next: &struct{}{}}
	}()

	return stream.New(currCh, errCh)
}

// Run executes the agent to completion and returns its final response.
func (s *RunSession[C]) Run(ctx context.Context, request RunSessionRequest) (*AgentResponse, error) {
	if !s.initialized {
		return nil, NewInvariantError("run session not initialized")
	}

	state := NewRunState(request.Input, s.params.MaxTurns)
	tools, err := s.getTools()
	if err != nil {
		return nil, err
	}

	for {
		processStream := s.process(ctx, state, tools)
		for processStream.Next() {
			event := processStream.Current()
			if event.Response != nil {
				return state.createResponse(*event.Response), nil
			}
			if event.Item != nil {
				state.appendItem(*event.Item)
			}
			if event.Next != nil {
				if err := state.turn(); err != nil {
					return nil, err
				}
				break
			}
		}
		if err := processStream.Err(); err != nil {
			return nil, err
		}

		input, nextTools, err := s.getTurnParams(state)
		if err != nil {
			return nil, err
		}
		tools = nextTools
		modelResponse, err := s.params.Model.Generate(ctx, input)
		if err != nil {
			return nil, NewLanguageModelError(err)
		}

		state.appendModelResponse(*modelResponse)
	}
}

// RunStream executes the agent, emitting every intermediate partial, item,
// and the final response over the returned stream.
func (s *RunSession[C]) RunStream(ctx context.Context, request RunSessionRequest) (*AgentStream, error) {
	if !s.initialized {
		return nil, NewInvariantError("run session not initialized")
	}

	state := NewRunState(request.Input, s.params.MaxTurns)

	eventChan := make(chan *AgentStreamEvent)
	errChan := make(chan error, 1)

	go func() {
		defer close(eventChan)
		defer close(errChan)

		tools, err := s.getTools()
		if err != nil {
			errChan <- err
			return
		}

		for {
			processStream := s.process(ctx, state, tools)

			for processStream.Next() {
				event := processStream.Current()
				if event.Response != nil {
					eventChan <- &AgentStreamEvent{Response: state.createResponse(*event.Response)}
					return
				}
				if event.Item != nil {
					index := state.appendItem(*event.Item)
					eventChan <- NewAgentStreamItemEvent(index, *event.Item)
				}
				if event.Next != nil {
					if err := state.turn(); err != nil {
						errChan <- err
						return
					}
					break
				}
			}
			if err := processStream.Err(); err != nil {
				errChan <- err
				return
			}

			input, nextTools, err := s.getTurnParams(state)
			if err != nil {
				errChan <- err
				return
			}
			tools = nextTools

			modelStream, err := s.params.Model.Stream(ctx, input)
			if err != nil {
				errChan <- NewLanguageModelError(err)
				return
			}

			accumulator := agentkit.NewStreamAccumulator()

			for modelStream.Next() {
				partial := modelStream.Current()

				if err := accumulator.AddPartial(*partial); err != nil {
					errChan <- NewInvariantError(fmt.Sprintf("failed to accumulate stream: %v", err))
					return
				}

				eventChan <- &AgentStreamEvent{Partial: partial}
			}

			if err := modelStream.Err(); err != nil {
				errChan <- NewLanguageModelError(err)
				return
			}

			modelResponse, err := accumulator.ComputeResponse()
			if err != nil {
				errChan <- err
				return
			}

			item, index := state.appendModelResponse(modelResponse)
			eventChan <- NewAgentStreamItemEvent(index, item)
		}
	}()

	return stream.New(eventChan, errChan), nil
}

// Close releases every toolkit session concurrently and marks the session
// unusable for further runs.
func (s *RunSession[C]) Close(ctx context.Context) error {
	if !s.initialized {
		return nil
	}
	s.staticSystemPrompt = nil
	s.staticTools = nil

	g, gctx := errgroup.WithContext(ctx)
	for _, toolkitSession := range s.toolkitSessions {
		if toolkitSession == nil {
			continue
		}
		toolkitSession := toolkitSession
		g.Go(func() error {
			return toolkitSession.Close(gctx)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.toolkitSessions = nil
	s.initialized = false
	return nil
}

func (s *RunSession[C]) getTurnParams(state *RunState) (*agentkit.LanguageModelInput, []AgentTool[C], error) {
	input := &agentkit.LanguageModelInput{
		Messages:         state.getTurnMessages(),
		ResponseFormat:   s.params.ResponseFormat,
		Temperature:      s.params.Temperature,
		TopP:             s.params.TopP,
		TopK:             s.params.TopK,
		PresencePenalty:  s.params.PresencePenalty,
		FrequencyPenalty: s.params.FrequencyPenalty,
		Modalities:       s.params.Modalities,
		Audio:            s.params.Audio,
		Reasoning:        s.params.Reasoning,
	}

	var systemPrompts []string
	if s.staticSystemPrompt != nil && *s.staticSystemPrompt != "" {
		systemPrompts = append(systemPrompts, *s.staticSystemPrompt)
	}
	for _, toolkitSession := range s.toolkitSessions {
		if toolkitSession == nil {
			continue
		}
		if prompt := toolkitSession.SystemPrompt(); prompt != nil && *prompt != "" {
			systemPrompts = append(systemPrompts, *prompt)
		}
	}
	if len(systemPrompts) > 0 {
		input.SystemPrompt = ptr.To(strings.Join(systemPrompts, "\n"))
	}

	tools, err := s.getTools()
	if err != nil {
		return nil, nil, err
	}
	if len(tools) > 0 {
		sdkTools := make([]agentkit.Tool, 0, len(tools))
		for _, tool := range tools {
			sdkTools = append(sdkTools, agentkit.Tool{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters:  tool.Parameters(),
			})
		}
		input.Tools = sdkTools
	}

	return input, tools, nil
}

// getTools gathers the static tools with every toolkit session's current
// tools. A toolkit session whose last background discovery failed
// surfaces that failure here as an Invariant, rather than panicking.
func (s *RunSession[C]) getTools() ([]AgentTool[C], error) {
	tools := make([]AgentTool[C], len(s.staticTools))
	copy(tools, s.staticTools)
	for _, toolkitSession := range s.toolkitSessions {
		if toolkitSession == nil {
			continue
		}
		toolkitTools, err := toolkitSession.Tools()
		if err != nil {
			return nil, NewInvariantError(fmt.Sprintf("toolkit tool discovery failed: %v", err))
		}
		if len(toolkitTools) > 0 {
			tools = append(tools, toolkitTools...)
		}
	}
	return tools, nil
}

// RunSessionRequest is the input to one RunSession.Run / RunStream call.
type RunSessionRequest struct {
	Input []AgentItem
}

// ProcessEvents is the sum type of events process() emits: exactly one
// field is non-nil.
type ProcessEvents struct {
	Item     *AgentItem
	Response *[]agentkit.Part
	Next     *struct{}
}

// RunState tracks one run's turn count and its growing list of output
// items. Its mutating methods are safe for concurrent use, since tool
// executions within a turn run concurrently and may read it. Tools receive
// it by reference and must only read it; CurrentTurn is exported for
// reading and is advanced by the run loop alone.
type RunState struct {
	maxTurns uint
	input    []AgentItem

	CurrentTurn uint
	output      []AgentItem

	mu sync.RWMutex
}

func NewRunState(input []AgentItem, maxTurns uint) *RunState {
	return &RunState{
		maxTurns: maxTurns,
		input:    input,
		output:   []AgentItem{},
	}
}

func (s *RunState) turn() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.CurrentTurn++
	if s.CurrentTurn > s.maxTurns {
		return NewMaxTurnsExceededError(int(s.maxTurns))
	}
	return nil
}

func (s *RunState) appendItem(item AgentItem) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.output = append(s.output, item)
	return len(s.output) - 1
}

func (s *RunState) appendModelResponse(resp agentkit.ModelResponse) (AgentItem, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := NewAgentItemModelResponse(resp)
	s.output = append(s.output, item)
	return item, len(s.output) - 1
}

// Items returns the run's full item history: seed input followed by
// everything generated so far.
func (s *RunState) Items() []AgentItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Concat(s.input, s.output)
}

// getTurnMessages flattens the run's items back into the Message sequence
// sent to the model, coalescing consecutive tool results into a single
// ToolMessage the way a hand-written conversation would.
func (s *RunState) getTurnMessages() []agentkit.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var messages []agentkit.Message
	items := slices.Concat(s.input, s.output)

	for _, it := range items {
		switch {
		case it.Message != nil:
			messages = append(messages, *it.Message)
		case it.Model != nil:
			messages = append(messages, agentkit.NewAssistantMessage(it.Model.Content...))
		case it.Tool != nil:
			toolResultPart := agentkit.NewToolResultPart(it.Tool.ToolCallID, it.Tool.ToolName, it.Tool.Output, it.Tool.IsError)

			if len(messages) == 0 || messages[len(messages)-1].ToolMessage == nil {
				messages = append(messages, agentkit.NewToolMessage(toolResultPart))
			} else {
				last := messages[len(messages)-1]
				last.ToolMessage.Content = append(last.ToolMessage.Content, toolResultPart)
				messages[len(messages)-1] = last
			}
		}
	}

	return messages
}

func (s *RunState) createResponse(finalContent []agentkit.Part) *AgentResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &AgentResponse{Content: finalContent, Output: s.output}
}
