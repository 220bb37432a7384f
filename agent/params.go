package agent

import agentkit "github.com/agentkit-go/agentkit"

// AgentParams holds the configuration used to construct an Agent.
type AgentParams[C any] struct {
	Name string
	// Model is the language model the agent generates turns with.
	Model agentkit.LanguageModel
	// Instructions are resolved once, at session creation, into the
	// session's static system prompt.
	Instructions []InstructionParam[C]
	// Tools are available in every run of the agent.
	Tools []AgentTool[C]
	// Toolkits supply additional tools and system prompt fragments,
	// re-resolved every turn, for each session created from this agent.
	Toolkits []Toolkit[C]
	// ResponseFormat is the format the model must respond in.
	ResponseFormat *agentkit.ResponseFormatOption
	// MaxTurns caps the number of turns a run may take before failing with
	// AgentErrorKindMaxTurnsExceeded.
	MaxTurns         uint
	Temperature      *float64
	TopP             *float64
	TopK             *int32
	PresencePenalty  *float64
	FrequencyPenalty *float64
	Modalities       []agentkit.Modality
	Audio            *agentkit.AudioOptions
	Reasoning        *agentkit.ReasoningOptions
}

// AgentParamsOption customizes an AgentParams built by NewAgent.
type AgentParamsOption[C any] func(*AgentParams[C])

func WithInstructions[C any](instructions ...InstructionParam[C]) AgentParamsOption[C] {
	return func(p *AgentParams[C]) { p.Instructions = instructions }
}

func WithTools[C any](tools ...AgentTool[C]) AgentParamsOption[C] {
	return func(p *AgentParams[C]) { p.Tools = tools }
}

func WithToolkits[C any](toolkits ...Toolkit[C]) AgentParamsOption[C] {
	return func(p *AgentParams[C]) { p.Toolkits = toolkits }
}

func WithResponseFormat[C any](format agentkit.ResponseFormatOption) AgentParamsOption[C] {
	return func(p *AgentParams[C]) { p.ResponseFormat = &format }
}

func WithMaxTurns[C any](maxTurns uint) AgentParamsOption[C] {
	return func(p *AgentParams[C]) { p.MaxTurns = maxTurns }
}

func WithTemperature[C any](temperature float64) AgentParamsOption[C] {
	return func(p *AgentParams[C]) { p.Temperature = &temperature }
}

func WithTopP[C any](topP float64) AgentParamsOption[C] {
	return func(p *AgentParams[C]) { p.TopP = &topP }
}

func WithTopK[C any](topK int32) AgentParamsOption[C] {
	return func(p *AgentParams[C]) { p.TopK = &topK }
}

func WithPresencePenalty[C any](presencePenalty float64) AgentParamsOption[C] {
	return func(p *AgentParams[C]) { p.PresencePenalty = &presencePenalty }
}

func WithFrequencyPenalty[C any](frequencyPenalty float64) AgentParamsOption[C] {
	return func(p *AgentParams[C]) { p.FrequencyPenalty = &frequencyPenalty }
}

func WithModalities[C any](modalities ...agentkit.Modality) AgentParamsOption[C] {
	return func(p *AgentParams[C]) { p.Modalities = modalities }
}

func WithAudio[C any](audioOptions agentkit.AudioOptions) AgentParamsOption[C] {
	return func(p *AgentParams[C]) { p.Audio = &audioOptions }
}

func WithReasoning[C any](reasoningOptions agentkit.ReasoningOptions) AgentParamsOption[C] {
	return func(p *AgentParams[C]) { p.Reasoning = &reasoningOptions }
}
