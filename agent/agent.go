// Package agent implements the turn-taking run loop on top of package
// agentkit's model-facing types: it resolves instructions and toolkits
// into a session, drives the model across turns, dispatches tool calls
// concurrently, and assembles the final response.
package agent

import (
	"context"

	agentkit "github.com/agentkit-go/agentkit"
	"github.com/agentkit-go/agentkit/utils/stream"
)

// Agent is an immutable configuration — a model, instructions, tools, and
// toolkits — that sessions and runs are created from.
type Agent[C any] struct {
	Name   string
	params *AgentParams[C]
}

// NewAgent constructs an Agent. Defaults: no instructions, no tools, text
// response format, and a max of 10 turns per run.
func NewAgent[C any](name string, model agentkit.LanguageModel, options ...AgentParamsOption[C]) *Agent[C] {
	params := &AgentParams[C]{
		Name:           name,
		Model:          model,
		Instructions:   []InstructionParam[C]{},
		Tools:          []AgentTool[C]{},
		Toolkits:       []Toolkit[C]{},
		ResponseFormat: agentkit.NewResponseFormatText(),
		MaxTurns:       10,
	}
	for _, option := range options {
		option(params)
	}
	return &Agent[C]{Name: name, params: params}
}

// Run creates a session, runs it to completion, and closes it.
func (a *Agent[C]) Run(ctx context.Context, request AgentRequest[C]) (*AgentResponse, error) {
	session, err := a.CreateSession(ctx, request.Context)
	if err != nil {
		return nil, err
	}

	result, runErr := session.Run(ctx, RunSessionRequest{Input: request.Input})
	closeErr := session.Close(ctx)
	if runErr != nil {
		return nil, runErr
	}
	if closeErr != nil {
		return nil, closeErr
	}
	return result, nil
}

// RunStream creates a session, streams it to completion, and closes it
// once the returned stream has been read to its end, or once ctx is
// cancelled while an event is waiting to be read. A stream that is left
// unread with ctx still live keeps the session open.
func (a *Agent[C]) RunStream(ctx context.Context, request AgentRequest[C]) (*AgentStream, error) {
	session, err := a.CreateSession(ctx, request.Context)
	if err != nil {
		return nil, err
	}

	sessionStream, err := session.RunStream(ctx, RunSessionRequest{Input: request.Input})
	if err != nil {
		_ = session.Close(ctx)
		return nil, err
	}

	eventChan := make(chan *AgentStreamEvent)
	errChan := make(chan error, 1)

	go func() {
		defer close(eventChan)
		defer close(errChan)

		var streamErr error
		defer func() {
			if closeErr := session.Close(ctx); closeErr != nil && streamErr == nil {
				errChan <- closeErr
			}
		}()

		for sessionStream.Next() {
			select {
			case eventChan <- sessionStream.Current():
			case <-ctx.Done():
				streamErr = ctx.Err()
				errChan <- streamErr
				return
			}
		}
		if streamErr = sessionStream.Err(); streamErr != nil {
			errChan <- streamErr
			return
		}
	}()

	return stream.New(eventChan, errChan), nil
}

// CreateSession creates an initialized session for running the agent
// multiple times against the same bound context value.
func (a *Agent[C]) CreateSession(ctx context.Context, contextVal C) (*RunSession[C], error) {
	return NewRunSession(ctx, a.params, contextVal)
}
