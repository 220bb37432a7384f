package agentkit

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPartJSONRoundTrip(t *testing.T) {
	parts := []Part{
		NewTextPart("hello", Citation{Source: "doc-1", StartIndex: 0, EndIndex: 5}),
		NewImagePart("image/png", "aGVsbG8=", WithImageSize(4, 4), WithImageID("img-1")),
		NewAudioPart(AudioFormatLinear16, "AAA=", WithAudioSampleRate(16000), WithAudioTranscript("hi")),
		NewToolCallPart("call-1", "get_weather", []byte(`{"city":"NYC"}`), WithToolCallPartID("provider-1")),
		NewToolResultPart("call-1", "get_weather", []Part{NewTextPart("sunny")}, false),
		NewReasoningPart("because", WithReasoningSignature("sig-1")),
	}

	for _, part := range parts {
		data, err := json.Marshal(part)
		if err != nil {
			t.Fatalf("marshal %s: %v", part.Type(), err)
		}

		var roundTripped Part
		if err := json.Unmarshal(data, &roundTripped); err != nil {
			t.Fatalf("unmarshal %s: %v", part.Type(), err)
		}

		if diff := cmp.Diff(part, roundTripped); diff != "" {
			t.Errorf("%s round trip mismatch (-want +got):\n%s", part.Type(), diff)
		}
	}
}

func TestPartUnmarshalUnknownTypeErrors(t *testing.T) {
	var p Part
	if err := json.Unmarshal([]byte(`{"type":"bogus"}`), &p); err == nil {
		t.Fatal("expected error for unknown part type, got nil")
	}
}

func TestMessageJSONRoundTrip(t *testing.T) {
	messages := []Message{
		NewUserMessage(NewTextPart("hi")),
		NewAssistantMessage(NewTextPart("hello"), NewToolCallPart("call-1", "tool", []byte(`{}`))),
		NewToolMessage(NewToolResultPart("call-1", "tool", []Part{NewTextPart("done")}, false)),
	}

	for _, msg := range messages {
		data, err := json.Marshal(msg)
		if err != nil {
			t.Fatalf("marshal %s: %v", msg.Role(), err)
		}

		var roundTripped Message
		if err := json.Unmarshal(data, &roundTripped); err != nil {
			t.Fatalf("unmarshal %s: %v", msg.Role(), err)
		}

		if diff := cmp.Diff(msg, roundTripped); diff != "" {
			t.Errorf("%s round trip mismatch (-want +got):\n%s", msg.Role(), diff)
		}
	}
}

func TestToolChoiceOptionJSONRoundTrip(t *testing.T) {
	options := []*ToolChoiceOption{
		NewToolChoiceAuto(),
		NewToolChoiceNone(),
		NewToolChoiceRequired(),
		NewToolChoiceTool("get_weather"),
	}

	for _, opt := range options {
		data, err := json.Marshal(opt)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var roundTripped ToolChoiceOption
		if err := json.Unmarshal(data, &roundTripped); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if diff := cmp.Diff(*opt, roundTripped); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestResponseFormatOptionJSONRoundTrip(t *testing.T) {
	schema := JSONSchema{"type": "object"}
	options := []*ResponseFormatOption{
		NewResponseFormatText(),
		NewResponseFormatJSON("weather", &schema, "weather report"),
	}

	for _, opt := range options {
		data, err := json.Marshal(opt)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var roundTripped ResponseFormatOption
		if err := json.Unmarshal(data, &roundTripped); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if diff := cmp.Diff(*opt, roundTripped); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestModelUsageAdd(t *testing.T) {
	u := &ModelUsage{
		InputTokens:  100,
		OutputTokens: 10,
		InputTokensDetails: &ModelTokensDetails{
			TextTokens: ptrToInt(80),
		},
	}
	u.Add(&ModelUsage{
		InputTokens:  50,
		OutputTokens: 5,
		InputTokensDetails: &ModelTokensDetails{
			TextTokens:       ptrToInt(40),
			CachedTextTokens: ptrToInt(10),
		},
	})

	if u.InputTokens != 150 || u.OutputTokens != 15 {
		t.Fatalf("unexpected totals: %+v", u)
	}
	if u.InputTokensDetails == nil || *u.InputTokensDetails.TextTokens != 120 {
		t.Fatalf("unexpected text tokens: %+v", u.InputTokensDetails)
	}
	if *u.InputTokensDetails.CachedTextTokens != 10 {
		t.Fatalf("unexpected cached text tokens: %+v", u.InputTokensDetails)
	}
}

func TestModelUsageAddNilIsNoop(t *testing.T) {
	u := &ModelUsage{InputTokens: 1, OutputTokens: 2}
	u.Add(nil)
	if u.InputTokens != 1 || u.OutputTokens != 2 {
		t.Fatalf("expected unchanged usage, got %+v", u)
	}
}
