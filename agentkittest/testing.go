// Package agentkittest provides a scriptable LanguageModel test double so
// callers can exercise the run loop and stream accumulator without a real
// model provider.
package agentkittest

import (
	"context"
	"errors"

	agentkit "github.com/agentkit-go/agentkit"
	"github.com/agentkit-go/agentkit/utils/stream"
)

// MockGenerateResult is one scripted reply to a Generate call: either a
// response or an error.
type MockGenerateResult struct {
	Response *agentkit.ModelResponse
	Error    error
}

func NewMockGenerateResultResponse(response agentkit.ModelResponse) MockGenerateResult {
	return MockGenerateResult{Response: &response}
}

func NewMockGenerateResultError(err error) MockGenerateResult {
	return MockGenerateResult{Error: err}
}

// MockStreamResult is one scripted reply to a Stream call: either a
// sequence of partials or an error.
type MockStreamResult struct {
	Partials []agentkit.PartialModelResponse
	Error    error
}

func NewMockStreamResultPartials(partials []agentkit.PartialModelResponse) MockStreamResult {
	return MockStreamResult{Partials: partials}
}

func NewMockStreamResultError(err error) MockStreamResult {
	return MockStreamResult{Error: err}
}

// MockLanguageModel is a LanguageModel that replays a queue of scripted
// results and records every input it was called with, in order.
type MockLanguageModel struct {
	mockedGenerateResults []MockGenerateResult
	mockedStreamResults   []MockStreamResult

	trackedGenerateInputs []agentkit.LanguageModelInput
	trackedStreamInputs   []agentkit.LanguageModelInput

	provider agentkit.ProviderName
	modelID  string
	metadata *agentkit.LanguageModelMetadata
}

// NewMockLanguageModel constructs an empty mock; enqueue results with
// EnqueueGenerateResult / EnqueueStreamResult before using it.
func NewMockLanguageModel() *MockLanguageModel {
	return &MockLanguageModel{
		provider: "mock",
		modelID:  "mock-model",
	}
}

func (m *MockLanguageModel) Provider() agentkit.ProviderName { return m.provider }

func (m *MockLanguageModel) SetProvider(provider agentkit.ProviderName) { m.provider = provider }

func (m *MockLanguageModel) ModelID() string { return m.modelID }

func (m *MockLanguageModel) SetModelID(modelID string) { m.modelID = modelID }

func (m *MockLanguageModel) Metadata() *agentkit.LanguageModelMetadata { return m.metadata }

func (m *MockLanguageModel) SetMetadata(metadata *agentkit.LanguageModelMetadata) {
	m.metadata = metadata
}

// Generate pops and returns the next enqueued generate result, recording
// input. It errors if nothing is enqueued, so an over-eager caller fails
// loudly instead of hanging.
func (m *MockLanguageModel) Generate(_ context.Context, input *agentkit.LanguageModelInput) (*agentkit.ModelResponse, error) {
	if len(m.mockedGenerateResults) == 0 {
		return nil, errors.New("agentkittest: no mocked generate results available")
	}

	result := m.mockedGenerateResults[0]
	m.mockedGenerateResults = m.mockedGenerateResults[1:]
	m.trackedGenerateInputs = append(m.trackedGenerateInputs, *input)

	if result.Error != nil {
		return nil, result.Error
	}
	return result.Response, nil
}

// Stream pops the next enqueued stream result and replays its partials
// over a channel-backed Stream, recording input.
func (m *MockLanguageModel) Stream(_ context.Context, input *agentkit.LanguageModelInput) (*agentkit.LanguageModelStream, error) {
	if len(m.mockedStreamResults) == 0 {
		return nil, errors.New("agentkittest: no mocked stream results available")
	}

	result := m.mockedStreamResults[0]
	m.mockedStreamResults = m.mockedStreamResults[1:]
	m.trackedStreamInputs = append(m.trackedStreamInputs, *input)

	if result.Error != nil {
		return nil, result.Error
	}

	eventChan := make(chan *agentkit.PartialModelResponse)
	errChan := make(chan error)

	partials := result.Partials
	go func() {
		defer close(eventChan)
		defer close(errChan)
		for _, partial := range partials {
			p := partial
			eventChan <- &p
		}
	}()

	return stream.New(eventChan, errChan), nil
}

func (m *MockLanguageModel) EnqueueGenerateResult(results ...MockGenerateResult) {
	m.mockedGenerateResults = append(m.mockedGenerateResults, results...)
}

func (m *MockLanguageModel) EnqueueStreamResult(results ...MockStreamResult) {
	m.mockedStreamResults = append(m.mockedStreamResults, results...)
}

func (m *MockLanguageModel) TrackedGenerateInputs() []agentkit.LanguageModelInput {
	return m.trackedGenerateInputs
}

func (m *MockLanguageModel) TrackedStreamInputs() []agentkit.LanguageModelInput {
	return m.trackedStreamInputs
}

// Reset clears tracked inputs without touching enqueued results.
func (m *MockLanguageModel) Reset() {
	m.trackedGenerateInputs = nil
	m.trackedStreamInputs = nil
}

// Restore clears enqueued results and tracked inputs, returning the mock
// to its initial state.
func (m *MockLanguageModel) Restore() {
	m.mockedGenerateResults = nil
	m.mockedStreamResults = nil
	m.Reset()
}

var _ agentkit.LanguageModel = (*MockLanguageModel)(nil)
