// Package agentkit defines the provider-agnostic data model, stream
// accumulator, and LanguageModel capability contract that the agent run
// loop (package agent) is built on. It never speaks a model vendor's wire
// format itself; that is left to whatever LanguageModel implementation the
// caller supplies.
package agentkit

import (
	"encoding/json"
	"fmt"
)

// AudioFormat loosely describes an audio encoding. Some values ("wav")
// denote containers; others ("linear16") specify raw encoding only. It
// cannot describe a container that may hold more than one encoding.
type AudioFormat string

const (
	AudioFormatWav      AudioFormat = "wav"
	AudioFormatMP3      AudioFormat = "mp3"
	AudioFormatLinear16 AudioFormat = "linear16"
	AudioFormatFLAC     AudioFormat = "flac"
	AudioFormatMulaw    AudioFormat = "mulaw"
	AudioFormatAlaw     AudioFormat = "alaw"
	AudioFormatAAC      AudioFormat = "aac"
	AudioFormatOpus     AudioFormat = "opus"
)

// PartType discriminates the Part union.
type PartType string

const (
	PartTypeText       PartType = "text"
	PartTypeImage      PartType = "image"
	PartTypeAudio      PartType = "audio"
	PartTypeSource     PartType = "source"
	PartTypeDocument   PartType = "document"
	PartTypeToolCall   PartType = "tool-call"
	PartTypeToolResult PartType = "tool-result"
	PartTypeReasoning  PartType = "reasoning"
)

// Part is a tagged union of the content fragments a Message or
// ModelResponse may carry. Exactly one field is non-nil.
type Part struct {
	TextPart       *TextPart       `json:"-"`
	ImagePart      *ImagePart      `json:"-"`
	AudioPart      *AudioPart      `json:"-"`
	SourcePart     *SourcePart     `json:"-"`
	DocumentPart   *DocumentPart   `json:"-"`
	ToolCallPart   *ToolCallPart   `json:"-"`
	ToolResultPart *ToolResultPart `json:"-"`
	ReasoningPart  *ReasoningPart  `json:"-"`
}

// Type reports which variant of the union is populated, or "" if none is.
func (p Part) Type() PartType {
	switch {
	case p.TextPart != nil:
		return PartTypeText
	case p.ImagePart != nil:
		return PartTypeImage
	case p.AudioPart != nil:
		return PartTypeAudio
	case p.SourcePart != nil:
		return PartTypeSource
	case p.DocumentPart != nil:
		return PartTypeDocument
	case p.ToolCallPart != nil:
		return PartTypeToolCall
	case p.ToolResultPart != nil:
		return PartTypeToolResult
	case p.ReasoningPart != nil:
		return PartTypeReasoning
	default:
		return ""
	}
}

// TextPart is a plain text content fragment, optionally annotated with
// citations into source documents.
type TextPart struct {
	Text      string     `json:"text"`
	Citations []Citation `json:"citations,omitempty"`
}

// Citation anchors a span of a TextPart's text to a cited source.
type Citation struct {
	Source     string  `json:"source"`
	Title      *string `json:"title,omitempty"`
	CitedText  *string `json:"cited_text,omitempty"`
	StartIndex int     `json:"start_index"`
	EndIndex   int     `json:"end_index"`
}

// ImagePart is a base64-encoded image content fragment.
type ImagePart struct {
	// MimeType is the image MIME type, e.g. "image/png".
	MimeType string `json:"mime_type"`
	// Data is the base64-encoded image payload.
	Data   string  `json:"data"`
	Width  *int    `json:"width,omitempty"`
	Height *int    `json:"height,omitempty"`
	ID     *string `json:"id,omitempty"`
}

// AudioPart is a base64-encoded audio content fragment.
type AudioPart struct {
	// Data is the base64-encoded audio payload.
	Data       string      `json:"data"`
	Format     AudioFormat `json:"format"`
	SampleRate *int        `json:"sample_rate,omitempty"`
	Channels   *int        `json:"channels,omitempty"`
	Transcript *string     `json:"transcript,omitempty"`
	ID         *string     `json:"id,omitempty"`
}

// SourcePart attributes a nested list of (text-only) Parts to a titled
// source, used for citation by providers that support it natively.
type SourcePart struct {
	Title    string `json:"title"`
	SourceID string `json:"source_id"`
	Content  []Part `json:"content"`
}

// DocumentPart carries a whole document (e.g. a PDF) as base64 data, with
// an optional pre-extracted nested representation for providers that
// cannot accept documents natively.
type DocumentPart struct {
	Title    string `json:"title"`
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
	Content  []Part `json:"content,omitempty"`
}

// ToolCallPart represents the model's request to invoke a tool.
type ToolCallPart struct {
	// ToolCallID uniquely identifies this call within the response it
	// appears in; it links the call to its ToolResultPart.
	ToolCallID string `json:"tool_call_id"`
	ToolName   string `json:"tool_name"`
	// Args is the tool's arguments as a JSON object.
	Args json.RawMessage `json:"args"`
	// ID is a provider-specific identifier some providers require echoed
	// back verbatim (distinct from ToolCallID).
	ID *string `json:"id,omitempty"`
}

// ToolResultPart represents the completion of a tool call.
type ToolResultPart struct {
	ToolCallID string `json:"tool_call_id"`
	ToolName   string `json:"tool_name"`
	Content    []Part `json:"content"`
	IsError    bool   `json:"is_error,omitempty"`
}

// ReasoningPart carries a model's internal reasoning trace.
type ReasoningPart struct {
	Text string `json:"text"`
	// Signature is an opaque, provider-specific signature over the
	// reasoning trace that some providers require to be echoed back.
	Signature *string `json:"signature,omitempty"`
	ID        *string `json:"id,omitempty"`
}

// MarshalJSON implements a discriminated-union encoding for Part.
func (p Part) MarshalJSON() ([]byte, error) {
	switch {
	case p.TextPart != nil:
		return marshalTagged(PartTypeText, p.TextPart)
	case p.ImagePart != nil:
		return marshalTagged(PartTypeImage, p.ImagePart)
	case p.AudioPart != nil:
		return marshalTagged(PartTypeAudio, p.AudioPart)
	case p.SourcePart != nil:
		return marshalTagged(PartTypeSource, p.SourcePart)
	case p.DocumentPart != nil:
		return marshalTagged(PartTypeDocument, p.DocumentPart)
	case p.ToolCallPart != nil:
		return marshalTagged(PartTypeToolCall, p.ToolCallPart)
	case p.ToolResultPart != nil:
		return marshalTagged(PartTypeToolResult, p.ToolResultPart)
	case p.ReasoningPart != nil:
		return marshalTagged(PartTypeReasoning, p.ReasoningPart)
	default:
		return nil, fmt.Errorf("part has no content")
	}
}

func marshalTagged[T any](typ PartType, v *T) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	fields["type"], _ = json.Marshal(typ)
	return json.Marshal(fields)
}

// UnmarshalJSON implements a discriminated-union decoding for Part.
func (p *Part) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type PartType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	switch probe.Type {
	case PartTypeText:
		var v TextPart
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		p.TextPart = &v
	case PartTypeImage:
		var v ImagePart
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		p.ImagePart = &v
	case PartTypeAudio:
		var v AudioPart
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		p.AudioPart = &v
	case PartTypeSource:
		var v SourcePart
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		p.SourcePart = &v
	case PartTypeDocument:
		var v DocumentPart
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		p.DocumentPart = &v
	case PartTypeToolCall:
		var v ToolCallPart
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		p.ToolCallPart = &v
	case PartTypeToolResult:
		var v ToolResultPart
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		p.ToolResultPart = &v
	case PartTypeReasoning:
		var v ReasoningPart
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		p.ReasoningPart = &v
	default:
		return fmt.Errorf("unknown part type: %s", probe.Type)
	}
	return nil
}

// PartDelta mirrors Part as a union of streaming fragments. Exactly one
// field is non-nil.
type PartDelta struct {
	TextPartDelta      *TextPartDelta      `json:"-"`
	ImagePartDelta     *ImagePartDelta     `json:"-"`
	AudioPartDelta     *AudioPartDelta     `json:"-"`
	ToolCallPartDelta  *ToolCallPartDelta  `json:"-"`
	ReasoningPartDelta *ReasoningPartDelta `json:"-"`
}

// TextPartDelta is a streaming fragment of a TextPart.
type TextPartDelta struct {
	Text string `json:"text"`
	// Citation, when present, adds one citation to the accumulating text
	// part; citations accumulate in arrival order, not by overwrite.
	Citation *CitationDelta `json:"citation,omitempty"`
}

// CitationDelta is a streaming fragment of a Citation. All fields are
// optional because a provider may emit a citation's fields across more
// than one delta.
type CitationDelta struct {
	Source     *string `json:"source,omitempty"`
	Title      *string `json:"title,omitempty"`
	CitedText  *string `json:"cited_text,omitempty"`
	StartIndex *int    `json:"start_index,omitempty"`
	EndIndex   *int    `json:"end_index,omitempty"`
}

// ImagePartDelta is a streaming fragment of an ImagePart.
type ImagePartDelta struct {
	MimeType *string `json:"mime_type,omitempty"`
	Data     *string `json:"data,omitempty"`
	Width    *int    `json:"width,omitempty"`
	Height   *int    `json:"height,omitempty"`
	ID       *string `json:"id,omitempty"`
}

// AudioPartDelta is a streaming fragment of an AudioPart.
type AudioPartDelta struct {
	Data       *string      `json:"data,omitempty"`
	Format     *AudioFormat `json:"format,omitempty"`
	SampleRate *int         `json:"sample_rate,omitempty"`
	Channels   *int         `json:"channels,omitempty"`
	Transcript *string      `json:"transcript,omitempty"`
	ID         *string      `json:"id,omitempty"`
}

// ToolCallPartDelta is a streaming fragment of a ToolCallPart. Args
// concatenates to a valid JSON value across the deltas sharing an index.
type ToolCallPartDelta struct {
	ToolCallID *string `json:"tool_call_id,omitempty"`
	ToolName   *string `json:"tool_name,omitempty"`
	Args       *string `json:"args,omitempty"`
	ID         *string `json:"id,omitempty"`
}

// ReasoningPartDelta is a streaming fragment of a ReasoningPart.
type ReasoningPartDelta struct {
	Text      string  `json:"text,omitempty"`
	Signature *string `json:"signature,omitempty"`
	ID        *string `json:"id,omitempty"`
}

// MarshalJSON implements a discriminated-union encoding for PartDelta.
func (p PartDelta) MarshalJSON() ([]byte, error) {
	switch {
	case p.TextPartDelta != nil:
		return marshalTaggedStr("text", p.TextPartDelta)
	case p.ImagePartDelta != nil:
		return marshalTaggedStr("image", p.ImagePartDelta)
	case p.AudioPartDelta != nil:
		return marshalTaggedStr("audio", p.AudioPartDelta)
	case p.ToolCallPartDelta != nil:
		return marshalTaggedStr("tool-call", p.ToolCallPartDelta)
	case p.ReasoningPartDelta != nil:
		return marshalTaggedStr("reasoning", p.ReasoningPartDelta)
	default:
		return nil, fmt.Errorf("part delta has no content")
	}
}

func marshalTaggedStr[T any](typ string, v *T) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	fields["type"], _ = json.Marshal(typ)
	return json.Marshal(fields)
}

// UnmarshalJSON implements a discriminated-union decoding for PartDelta.
func (p *PartDelta) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	switch probe.Type {
	case "text":
		var v TextPartDelta
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		p.TextPartDelta = &v
	case "image":
		var v ImagePartDelta
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		p.ImagePartDelta = &v
	case "audio":
		var v AudioPartDelta
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		p.AudioPartDelta = &v
	case "tool-call":
		var v ToolCallPartDelta
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		p.ToolCallPartDelta = &v
	case "reasoning":
		var v ReasoningPartDelta
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		p.ReasoningPartDelta = &v
	default:
		return fmt.Errorf("unknown part delta type: %s", probe.Type)
	}
	return nil
}

// Role discriminates the Message union.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one entry in a conversation's message history. Exactly one
// field is non-nil.
type Message struct {
	UserMessage      *UserMessage      `json:"-"`
	AssistantMessage *AssistantMessage `json:"-"`
	ToolMessage      *ToolMessage      `json:"-"`
}

// Role reports which variant of the union is populated, or "" if none is.
func (m Message) Role() Role {
	switch {
	case m.UserMessage != nil:
		return RoleUser
	case m.AssistantMessage != nil:
		return RoleAssistant
	case m.ToolMessage != nil:
		return RoleTool
	default:
		return ""
	}
}

// UserMessage is sent by the end user; its content is text/image/audio/
// document parts.
type UserMessage struct {
	Content []Part `json:"content"`
}

// AssistantMessage is generated by the model; its content may include
// text, reasoning, tool calls, audio, and source parts.
type AssistantMessage struct {
	Content []Part `json:"content"`
}

// ToolMessage carries the results of one or more tool calls. Every Part in
// its Content must be a ToolResultPart.
type ToolMessage struct {
	Content []Part `json:"content"`
}

// MarshalJSON implements a discriminated-union encoding for Message.
func (m Message) MarshalJSON() ([]byte, error) {
	switch {
	case m.UserMessage != nil:
		return marshalRole(RoleUser, m.UserMessage)
	case m.AssistantMessage != nil:
		return marshalRole(RoleAssistant, m.AssistantMessage)
	case m.ToolMessage != nil:
		return marshalRole(RoleTool, m.ToolMessage)
	default:
		return nil, fmt.Errorf("message has no content")
	}
}

func marshalRole[T any](role Role, v *T) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	fields["role"], _ = json.Marshal(role)
	return json.Marshal(fields)
}

// UnmarshalJSON implements a discriminated-union decoding for Message.
func (m *Message) UnmarshalJSON(data []byte) error {
	var probe struct {
		Role    Role   `json:"role"`
		Content []Part `json:"content"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	switch probe.Role {
	case RoleUser:
		m.UserMessage = &UserMessage{Content: probe.Content}
	case RoleAssistant:
		m.AssistantMessage = &AssistantMessage{Content: probe.Content}
	case RoleTool:
		m.ToolMessage = &ToolMessage{Content: probe.Content}
	default:
		return fmt.Errorf("unknown message role: %s", probe.Role)
	}
	return nil
}

// Modality is a content modality a model may support for input or output.
type Modality string

const (
	ModalityText  Modality = "text"
	ModalityImage Modality = "image"
	ModalityAudio Modality = "audio"
)

// ToolChoiceOption determines how the model should choose which tool to
// call, if any. Exactly one field is non-nil.
type ToolChoiceOption struct {
	Auto     *ToolChoiceAuto     `json:"-"`
	None     *ToolChoiceNone     `json:"-"`
	Required *ToolChoiceRequired `json:"-"`
	Tool     *ToolChoiceTool     `json:"-"`
}

type ToolChoiceAuto struct{}
type ToolChoiceNone struct{}
type ToolChoiceRequired struct{}

// ToolChoiceTool forces the model to call the named tool.
type ToolChoiceTool struct {
	ToolName string `json:"tool_name"`
}

func (t ToolChoiceOption) MarshalJSON() ([]byte, error) {
	switch {
	case t.Auto != nil:
		return json.Marshal(map[string]string{"type": "auto"})
	case t.None != nil:
		return json.Marshal(map[string]string{"type": "none"})
	case t.Required != nil:
		return json.Marshal(map[string]string{"type": "required"})
	case t.Tool != nil:
		return json.Marshal(struct {
			Type     string `json:"type"`
			ToolName string `json:"tool_name"`
		}{Type: "tool", ToolName: t.Tool.ToolName})
	default:
		return nil, fmt.Errorf("tool choice has no content")
	}
}

func (t *ToolChoiceOption) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type     string `json:"type"`
		ToolName string `json:"tool_name,omitempty"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	switch probe.Type {
	case "auto":
		t.Auto = &ToolChoiceAuto{}
	case "none":
		t.None = &ToolChoiceNone{}
	case "required":
		t.Required = &ToolChoiceRequired{}
	case "tool":
		t.Tool = &ToolChoiceTool{ToolName: probe.ToolName}
	default:
		return fmt.Errorf("unknown tool choice type: %s", probe.Type)
	}
	return nil
}

// ResponseFormatOption is the format the model must respond in. Exactly
// one field is non-nil.
type ResponseFormatOption struct {
	Text *ResponseFormatText `json:"-"`
	JSON *ResponseFormatJSON `json:"-"`
}

type ResponseFormatText struct{}

// ResponseFormatJSON requires the model's response to be JSON conforming
// to an (optional) schema.
type ResponseFormatJSON struct {
	Name        string      `json:"name"`
	Description *string     `json:"description,omitempty"`
	Schema      *JSONSchema `json:"schema,omitempty"`
}

func (r ResponseFormatOption) MarshalJSON() ([]byte, error) {
	switch {
	case r.Text != nil:
		return json.Marshal(map[string]string{"type": "text"})
	case r.JSON != nil:
		return json.Marshal(struct {
			Type string `json:"type"`
			*ResponseFormatJSON
		}{Type: "json", ResponseFormatJSON: r.JSON})
	default:
		return nil, fmt.Errorf("response format has no content")
	}
}

func (r *ResponseFormatOption) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type        string      `json:"type"`
		Name        string      `json:"name,omitempty"`
		Description *string     `json:"description,omitempty"`
		Schema      *JSONSchema `json:"schema,omitempty"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	switch probe.Type {
	case "text":
		r.Text = &ResponseFormatText{}
	case "json":
		r.JSON = &ResponseFormatJSON{Name: probe.Name, Description: probe.Description, Schema: probe.Schema}
	default:
		return fmt.Errorf("unknown response format type: %s", probe.Type)
	}
	return nil
}

// AudioOptions configures audio output generation.
type AudioOptions struct {
	Format       *AudioFormat `json:"format,omitempty"`
	Voice        *string      `json:"voice,omitempty"`
	LanguageCode *string      `json:"language_code,omitempty"`
}

// ReasoningOptions configures reasoning output generation.
type ReasoningOptions struct {
	Enabled      bool    `json:"enabled"`
	BudgetTokens *uint32 `json:"budget_tokens,omitempty"`
}

// LanguageModelCapability describes one capability a LanguageModel may
// advertise via its Metadata.
type LanguageModelCapability string

const (
	CapabilityTextInput        LanguageModelCapability = "text-input"
	CapabilityTextOutput       LanguageModelCapability = "text-output"
	CapabilityImageInput       LanguageModelCapability = "image-input"
	CapabilityImageOutput      LanguageModelCapability = "image-output"
	CapabilityAudioInput       LanguageModelCapability = "audio-input"
	CapabilityAudioOutput      LanguageModelCapability = "audio-output"
	CapabilityFunctionCalling  LanguageModelCapability = "function-calling"
	CapabilityStructuredOutput LanguageModelCapability = "structured-output"
	CapabilityCitation         LanguageModelCapability = "citation"
)

// LanguageModelMetadata describes static properties of a LanguageModel.
type LanguageModelMetadata struct {
	Capabilities []LanguageModelCapability `json:"capabilities,omitempty"`
}

// ContentDelta pairs a streaming PartDelta with the stable index of the
// content stream it belongs to.
type ContentDelta struct {
	Index int       `json:"index"`
	Part  PartDelta `json:"part"`
}

// JSONSchema is an arbitrary JSON Schema document describing a tool's
// parameters or a structured response format.
type JSONSchema map[string]any

// Tool describes a tool definition as surfaced to a LanguageModel.
type Tool struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Parameters  JSONSchema `json:"parameters"`
}

// ModelTokensDetails breaks down token usage by content modality.
type ModelTokensDetails struct {
	TextTokens        *int `json:"text_tokens,omitempty"`
	CachedTextTokens  *int `json:"cached_text_tokens,omitempty"`
	AudioTokens       *int `json:"audio_tokens,omitempty"`
	CachedAudioTokens *int `json:"cached_audio_tokens,omitempty"`
	ImageTokens       *int `json:"image_tokens,omitempty"`
	CachedImageTokens *int `json:"cached_image_tokens,omitempty"`
}

// ModelUsage reports the token usage of one model call.
type ModelUsage struct {
	InputTokens         int                 `json:"input_tokens"`
	OutputTokens        int                 `json:"output_tokens"`
	InputTokensDetails  *ModelTokensDetails `json:"input_tokens_details,omitempty"`
	OutputTokensDetails *ModelTokensDetails `json:"output_tokens_details,omitempty"`
}

// ModelResponse is the complete output of one model turn.
type ModelResponse struct {
	Content []Part      `json:"content"`
	Usage   *ModelUsage `json:"usage,omitempty"`
	// Cost, when populated by a LanguageModel implementation, is passed
	// through untouched; this module does not compute it (cost arithmetic
	// is out of scope for the core).
	Cost *float64 `json:"cost,omitempty"`
}

// PartialModelResponse is one chunk of a streamed model response: either a
// content delta, a usage/cost update, or both.
type PartialModelResponse struct {
	Delta *ContentDelta `json:"delta,omitempty"`
	Usage *ModelUsage   `json:"usage,omitempty"`
	Cost  *float64      `json:"cost,omitempty"`
}

// LanguageModelInput is the full set of parameters a LanguageModel
// implementation's Generate/Stream accepts.
type LanguageModelInput struct {
	SystemPrompt     *string               `json:"system_prompt,omitempty"`
	Messages         []Message             `json:"messages"`
	Tools            []Tool                `json:"tools,omitempty"`
	ToolChoice       *ToolChoiceOption     `json:"tool_choice,omitempty"`
	ResponseFormat   *ResponseFormatOption `json:"response_format,omitempty"`
	MaxTokens        *uint32               `json:"max_tokens,omitempty"`
	Temperature      *float64              `json:"temperature,omitempty"`
	TopP             *float64              `json:"top_p,omitempty"`
	TopK             *int32                `json:"top_k,omitempty"`
	PresencePenalty  *float64              `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64              `json:"frequency_penalty,omitempty"`
	Seed             *int64                `json:"seed,omitempty"`
	Modalities       []Modality            `json:"modalities,omitempty"`
	Metadata         map[string]string     `json:"metadata,omitempty"`
	Audio            *AudioOptions         `json:"audio,omitempty"`
	Reasoning        *ReasoningOptions     `json:"reasoning,omitempty"`
	Extra            map[string]any        `json:"extra,omitempty"`
}
