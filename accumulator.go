package agentkit

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/agentkit-go/agentkit/utils/audioutil"
	"github.com/agentkit-go/agentkit/utils/ptr"
)

type accumulatedTextData struct {
	Text      string
	Citations map[int]CitationDelta
}

type accumulatedImageData struct {
	MimeType *string
	Data     string
	Width    *int
	Height   *int
	ID       *string
}

type accumulatedAudioData struct {
	DataChunks []string
	Format     *AudioFormat
	SampleRate *int
	Channels   *int
	Transcript string
	ID         *string
}

// accumulatedData holds the in-progress state for one content index.
// Exactly one field is non-nil, mirroring which PartDelta variant first
// opened the index.
type accumulatedData struct {
	Text      *accumulatedTextData
	ToolCall  *ToolCallPartDelta
	Image     *accumulatedImageData
	Audio     *accumulatedAudioData
	Reasoning *ReasoningPartDelta
}

func newDelta(delta ContentDelta) *accumulatedData {
	switch {
	case delta.Part.TextPartDelta != nil:
		d := delta.Part.TextPartDelta
		textData := &accumulatedTextData{Text: d.Text}
		if d.Citation != nil {
			textData.Citations = map[int]CitationDelta{0: *d.Citation}
		}
		return &accumulatedData{Text: textData}
	case delta.Part.ToolCallPartDelta != nil:
		cp := *delta.Part.ToolCallPartDelta
		return &accumulatedData{ToolCall: &cp}
	case delta.Part.ImagePartDelta != nil:
		d := delta.Part.ImagePartDelta
		data := ""
		if d.Data != nil {
			data = *d.Data
		}
		return &accumulatedData{Image: &accumulatedImageData{
			Data:     data,
			Width:    d.Width,
			Height:   d.Height,
			MimeType: d.MimeType,
			ID:       d.ID,
		}}
	case delta.Part.AudioPartDelta != nil:
		d := delta.Part.AudioPartDelta
		var chunks []string
		if d.Data != nil {
			chunks = []string{*d.Data}
		}
		transcript := ""
		if d.Transcript != nil {
			transcript = *d.Transcript
		}
		return &accumulatedData{Audio: &accumulatedAudioData{
			DataChunks: chunks,
			Format:     d.Format,
			SampleRate: d.SampleRate,
			Channels:   d.Channels,
			Transcript: transcript,
			ID:         d.ID,
		}}
	case delta.Part.ReasoningPartDelta != nil:
		rp := *delta.Part.ReasoningPartDelta
		return &accumulatedData{Reasoning: &rp}
	default:
		return nil
	}
}

func mergeDelta(existing accumulatedData, delta ContentDelta) error {
	switch {
	case existing.Text != nil:
		d := delta.Part.TextPartDelta
		if d == nil {
			return NewInvariantError("", fmt.Sprintf("type mismatch at index %d: existing type is text, incoming type is not text", delta.Index))
		}
		existingData := existing.Text
		existingData.Text += d.Text
		if d.Citation != nil {
			if existingData.Citations == nil {
				existingData.Citations = make(map[int]CitationDelta)
			}
			existingData.Citations[len(existingData.Citations)] = *d.Citation
		}
	case existing.ToolCall != nil:
		d := delta.Part.ToolCallPartDelta
		if d == nil {
			return NewInvariantError("", fmt.Sprintf("type mismatch at index %d: existing type is tool-call, incoming type is not tool-call", delta.Index))
		}
		existingData := existing.ToolCall
		if d.ToolName != nil {
			if existingData.ToolName == nil {
				existingData.ToolName = ptr.To("")
			}
			*existingData.ToolName += *d.ToolName
		}
		if d.ToolCallID != nil {
			existingData.ToolCallID = d.ToolCallID
		}
		if d.Args != nil {
			if existingData.Args == nil {
				existingData.Args = ptr.To("")
			}
			*existingData.Args += *d.Args
		}
		if d.ID != nil {
			existingData.ID = d.ID
		}
	case existing.Image != nil:
		d := delta.Part.ImagePartDelta
		if d == nil {
			return NewInvariantError("", fmt.Sprintf("type mismatch at index %d: existing type is image, incoming type is not image", delta.Index))
		}
		existingData := existing.Image
		if d.Data != nil {
			existingData.Data += *d.Data
		}
		if d.Width != nil {
			existingData.Width = d.Width
		}
		if d.Height != nil {
			existingData.Height = d.Height
		}
		if d.MimeType != nil {
			existingData.MimeType = d.MimeType
		}
		if d.ID != nil {
			existingData.ID = d.ID
		}
	case existing.Audio != nil:
		d := delta.Part.AudioPartDelta
		if d == nil {
			return NewInvariantError("", fmt.Sprintf("type mismatch at index %d: existing type is audio, incoming type is not audio", delta.Index))
		}
		existingData := existing.Audio
		if d.Data != nil {
			existingData.DataChunks = append(existingData.DataChunks, *d.Data)
		}
		if d.Format != nil {
			existingData.Format = d.Format
		}
		if d.SampleRate != nil {
			existingData.SampleRate = d.SampleRate
		}
		if d.Channels != nil {
			existingData.Channels = d.Channels
		}
		if d.Transcript != nil {
			existingData.Transcript += *d.Transcript
		}
		if d.ID != nil {
			existingData.ID = d.ID
		}
	case existing.Reasoning != nil:
		d := delta.Part.ReasoningPartDelta
		if d == nil {
			return NewInvariantError("", fmt.Sprintf("type mismatch at index %d: existing type is reasoning, incoming type is not reasoning", delta.Index))
		}
		existingData := existing.Reasoning
		existingData.Text += d.Text
		if d.Signature != nil {
			existingData.Signature = d.Signature
		}
		if d.ID != nil {
			existingData.ID = d.ID
		}
	default:
		return fmt.Errorf("unknown accumulated data type at index %d", delta.Index)
	}
	return nil
}

func createTextPart(data *accumulatedTextData, index int) (Part, error) {
	var citations []Citation

	if len(data.Citations) > 0 {
		indices := make([]int, 0, len(data.Citations))
		for i := range data.Citations {
			indices = append(indices, i)
		}
		sort.Ints(indices)

		for _, i := range indices {
			cd := data.Citations[i]
			if cd.Source == nil || cd.StartIndex == nil || cd.EndIndex == nil {
				return Part{}, NewInvariantError("", fmt.Sprintf(
					"incomplete citation data for text part at index %d: source=%v, start_index=%v, end_index=%v",
					index, cd.Source, cd.StartIndex, cd.EndIndex,
				))
			}
			citations = append(citations, Citation{
				Source:     *cd.Source,
				Title:      cd.Title,
				CitedText:  cd.CitedText,
				StartIndex: *cd.StartIndex,
				EndIndex:   *cd.EndIndex,
			})
		}
	}

	return NewTextPart(data.Text, citations...), nil
}

func createToolCallPart(data *ToolCallPartDelta, index int) (Part, error) {
	if data.ToolCallID == nil {
		return Part{}, NewInvariantError("", fmt.Sprintf("missing required field tool_call_id at index %d", index))
	}
	if data.ToolName == nil {
		return Part{}, NewInvariantError("", fmt.Sprintf("missing required field tool_name at index %d", index))
	}

	strArgs := "{}"
	if data.Args != nil && *data.Args != "" {
		strArgs = *data.Args
	}
	if !json.Valid([]byte(strArgs)) {
		return Part{}, NewInvariantError("", fmt.Sprintf("invalid tool call arguments at index %d: %s", index, strArgs))
	}

	var opts []ToolCallPartOption
	if data.ID != nil {
		opts = append(opts, WithToolCallPartID(*data.ID))
	}

	return NewToolCallPart(*data.ToolCallID, *data.ToolName, []byte(strArgs), opts...), nil
}

func createImagePart(data *accumulatedImageData, index int) (Part, error) {
	if data.MimeType == nil || data.Data == "" {
		return Part{}, NewInvariantError("", fmt.Sprintf("missing required fields at index %d: data=%v, mime_type=%v", index, data.Data != "", data.MimeType))
	}

	var opts []ImagePartOption
	if data.Width != nil && data.Height != nil {
		opts = append(opts, WithImageSize(*data.Width, *data.Height))
	}
	if data.ID != nil {
		opts = append(opts, WithImageID(*data.ID))
	}

	return NewImagePart(*data.MimeType, data.Data, opts...), nil
}

func createAudioPart(data *accumulatedAudioData) (Part, error) {
	if data.Format == nil {
		return Part{}, NewInvariantError("", "missing required field format for audio part")
	}
	if *data.Format != AudioFormatLinear16 {
		return Part{}, NewNotImplementedError("", fmt.Sprintf("only linear16 format is supported for audio concatenation, received: %s", *data.Format))
	}

	concatenated, err := audioutil.ConcatenateB64AudioChunks(data.DataChunks)
	if err != nil {
		return Part{}, err
	}

	var opts []AudioPartOption
	if data.SampleRate != nil {
		opts = append(opts, WithAudioSampleRate(*data.SampleRate))
	}
	if data.Channels != nil {
		opts = append(opts, WithAudioChannels(*data.Channels))
	}
	if data.Transcript != "" {
		opts = append(opts, WithAudioTranscript(data.Transcript))
	}
	if data.ID != nil {
		opts = append(opts, WithAudioID(*data.ID))
	}

	return NewAudioPart(*data.Format, concatenated, opts...), nil
}

func createReasoningPart(data *ReasoningPartDelta) Part {
	var opts []ReasoningPartOption
	if data.Signature != nil {
		opts = append(opts, WithReasoningSignature(*data.Signature))
	}
	if data.ID != nil {
		opts = append(opts, WithReasoningID(*data.ID))
	}
	return NewReasoningPart(data.Text, opts...)
}

func createPart(data accumulatedData, index int) (Part, error) {
	switch {
	case data.Text != nil:
		return createTextPart(data.Text, index)
	case data.ToolCall != nil:
		return createToolCallPart(data.ToolCall, index)
	case data.Image != nil:
		return createImagePart(data.Image, index)
	case data.Audio != nil:
		return createAudioPart(data.Audio)
	case data.Reasoning != nil:
		return createReasoningPart(data.Reasoning), nil
	default:
		return Part{}, fmt.Errorf("unknown accumulated data type at index %d", index)
	}
}

// StreamAccumulator folds a sequence of PartialModelResponse chunks,
// indexed by ContentDelta.Index, into a single complete ModelResponse. It
// is the only place that understands how a provider's interleaved,
// index-addressed delta stream maps back onto whole Parts.
type StreamAccumulator struct {
	accumulatedParts map[int]accumulatedData
	accumulatedUsage *ModelUsage
	cost             float64
}

func NewStreamAccumulator() *StreamAccumulator {
	return &StreamAccumulator{
		accumulatedParts: make(map[int]accumulatedData),
	}
}

// AddPartial folds one streamed chunk into the accumulator.
func (s *StreamAccumulator) AddPartial(partial PartialModelResponse) error {
	if partial.Delta != nil {
		if err := s.processDelta(*partial.Delta); err != nil {
			return err
		}
	}
	if partial.Usage != nil || partial.Cost != nil {
		s.processUsage(partial.Usage, partial.Cost)
	}
	return nil
}

// ComputeResponse assembles the final ModelResponse from everything
// accumulated so far, in index order.
func (s *StreamAccumulator) ComputeResponse() (ModelResponse, error) {
	var indices []int
	for index := range s.accumulatedParts {
		indices = append(indices, index)
	}
	sort.Ints(indices)

	var content []Part
	for _, index := range indices {
		part, err := createPart(s.accumulatedParts[index], index)
		if err != nil {
			return ModelResponse{}, err
		}
		content = append(content, part)
	}

	r := ModelResponse{Content: content, Usage: s.accumulatedUsage}
	if s.cost > 0 {
		r.Cost = &s.cost
	}
	return r, nil
}

// Size reports the number of distinct content indices accumulated so far.
func (s *StreamAccumulator) Size() int {
	return len(s.accumulatedParts)
}

func (s *StreamAccumulator) IsEmpty() bool {
	return len(s.accumulatedParts) == 0
}

func (s *StreamAccumulator) Clear() {
	s.accumulatedParts = make(map[int]accumulatedData)
	s.accumulatedUsage = nil
	s.cost = 0
}

func (s *StreamAccumulator) processDelta(delta ContentDelta) error {
	if existing, ok := s.accumulatedParts[delta.Index]; ok {
		return mergeDelta(existing, delta)
	}

	accumulated := newDelta(delta)
	if accumulated == nil {
		return fmt.Errorf("unable to initialize accumulated data for delta at index %d", delta.Index)
	}
	s.accumulatedParts[delta.Index] = *accumulated
	return nil
}

func (s *StreamAccumulator) processUsage(usage *ModelUsage, cost *float64) {
	if usage != nil {
		if s.accumulatedUsage == nil {
			s.accumulatedUsage = &ModelUsage{}
		}
		s.accumulatedUsage.Add(usage)
	}
	if cost != nil {
		s.cost += *cost
	}
}
