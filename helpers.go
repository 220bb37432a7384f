package agentkit

import "github.com/agentkit-go/agentkit/utils/ptr"

// NewTextPart constructs a Part wrapping a TextPart.
func NewTextPart(text string, citations ...Citation) Part {
	return Part{TextPart: &TextPart{Text: text, Citations: citations}}
}

// ImagePartOption customizes an ImagePart built by NewImagePart.
type ImagePartOption func(*ImagePart)

func WithImageSize(width, height int) ImagePartOption {
	return func(p *ImagePart) {
		p.Width = ptr.To(width)
		p.Height = ptr.To(height)
	}
}

func WithImageID(id string) ImagePartOption {
	return func(p *ImagePart) {
		p.ID = ptr.To(id)
	}
}

func NewImagePart(mimeType, data string, opts ...ImagePartOption) Part {
	v := &ImagePart{MimeType: mimeType, Data: data}
	for _, opt := range opts {
		opt(v)
	}
	return Part{ImagePart: v}
}

// AudioPartOption customizes an AudioPart built by NewAudioPart.
type AudioPartOption func(*AudioPart)

func WithAudioSampleRate(rate int) AudioPartOption {
	return func(p *AudioPart) { p.SampleRate = ptr.To(rate) }
}

func WithAudioChannels(channels int) AudioPartOption {
	return func(p *AudioPart) { p.Channels = ptr.To(channels) }
}

func WithAudioTranscript(transcript string) AudioPartOption {
	return func(p *AudioPart) { p.Transcript = ptr.To(transcript) }
}

func WithAudioID(id string) AudioPartOption {
	return func(p *AudioPart) { p.ID = ptr.To(id) }
}

func NewAudioPart(format AudioFormat, data string, opts ...AudioPartOption) Part {
	v := &AudioPart{Format: format, Data: data}
	for _, opt := range opts {
		opt(v)
	}
	return Part{AudioPart: v}
}

// NewSourcePart constructs a Part wrapping a SourcePart.
func NewSourcePart(title, sourceID string, content ...Part) Part {
	return Part{SourcePart: &SourcePart{Title: title, SourceID: sourceID, Content: content}}
}

// NewDocumentPart constructs a Part wrapping a DocumentPart. content, when
// given, is a provider-agnostic pre-extracted rendering of the document
// for models that cannot consume the raw document data directly.
func NewDocumentPart(title, mimeType, data string, content ...Part) Part {
	return Part{DocumentPart: &DocumentPart{Title: title, MimeType: mimeType, Data: data, Content: content}}
}

// ToolCallPartOption customizes a ToolCallPart built by NewToolCallPart.
type ToolCallPartOption func(*ToolCallPart)

func WithToolCallPartID(id string) ToolCallPartOption {
	return func(p *ToolCallPart) { p.ID = ptr.To(id) }
}

// NewToolCallPart constructs a Part wrapping a ToolCallPart.
func NewToolCallPart(toolCallID, toolName string, args []byte, opts ...ToolCallPartOption) Part {
	v := &ToolCallPart{ToolCallID: toolCallID, ToolName: toolName, Args: args}
	for _, opt := range opts {
		opt(v)
	}
	return Part{ToolCallPart: v}
}

// NewToolResultPart constructs a Part wrapping a ToolResultPart.
func NewToolResultPart(toolCallID, toolName string, content []Part, isError bool) Part {
	return Part{ToolResultPart: &ToolResultPart{ToolCallID: toolCallID, ToolName: toolName, Content: content, IsError: isError}}
}

// ReasoningPartOption customizes a ReasoningPart built by NewReasoningPart.
type ReasoningPartOption func(*ReasoningPart)

func WithReasoningSignature(sig string) ReasoningPartOption {
	return func(p *ReasoningPart) { p.Signature = ptr.To(sig) }
}

func WithReasoningID(id string) ReasoningPartOption {
	return func(p *ReasoningPart) { p.ID = ptr.To(id) }
}

func NewReasoningPart(text string, opts ...ReasoningPartOption) Part {
	v := &ReasoningPart{Text: text}
	for _, opt := range opts {
		opt(v)
	}
	return Part{ReasoningPart: v}
}

// NewUserMessage constructs a Message wrapping a UserMessage.
func NewUserMessage(content ...Part) Message {
	return Message{UserMessage: &UserMessage{Content: content}}
}

// NewAssistantMessage constructs a Message wrapping an AssistantMessage.
func NewAssistantMessage(content ...Part) Message {
	return Message{AssistantMessage: &AssistantMessage{Content: content}}
}

// NewToolMessage constructs a Message wrapping a ToolMessage.
func NewToolMessage(content ...Part) Message {
	return Message{ToolMessage: &ToolMessage{Content: content}}
}

func NewToolChoiceAuto() *ToolChoiceOption     { return &ToolChoiceOption{Auto: &ToolChoiceAuto{}} }
func NewToolChoiceNone() *ToolChoiceOption     { return &ToolChoiceOption{None: &ToolChoiceNone{}} }
func NewToolChoiceRequired() *ToolChoiceOption { return &ToolChoiceOption{Required: &ToolChoiceRequired{}} }

func NewToolChoiceTool(toolName string) *ToolChoiceOption {
	return &ToolChoiceOption{Tool: &ToolChoiceTool{ToolName: toolName}}
}

func NewResponseFormatText() *ResponseFormatOption {
	return &ResponseFormatOption{Text: &ResponseFormatText{}}
}

func NewResponseFormatJSON(name string, schema *JSONSchema, description ...string) *ResponseFormatOption {
	v := &ResponseFormatJSON{Name: name, Schema: schema}
	if len(description) > 0 {
		v.Description = ptr.To(description[0])
	}
	return &ResponseFormatOption{JSON: v}
}
