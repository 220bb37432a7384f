package agentkit

import (
	"context"

	"github.com/agentkit-go/agentkit/utils/stream"
)

// ProviderName identifies a LanguageModel implementation's backing
// provider, e.g. "openai" or "anthropic".
type ProviderName string

// LanguageModelStream is the stream of partial responses a LanguageModel's
// Stream method produces.
type LanguageModelStream = stream.Stream[*PartialModelResponse]

// LanguageModel is the contract every model provider adapter implements.
// It is intentionally minimal: provider identity, a blocking Generate, and
// a streaming Stream. Everything else (tool orchestration, turn state,
// instructions) lives one layer up in package agent.
type LanguageModel interface {
	Provider() ProviderName
	ModelID() string
	Metadata() *LanguageModelMetadata
	Generate(ctx context.Context, input *LanguageModelInput) (*ModelResponse, error)
	Stream(ctx context.Context, input *LanguageModelInput) (*LanguageModelStream, error)
}
