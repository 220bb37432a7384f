package partutil

import (
	"testing"

	agentkit "github.com/agentkit-go/agentkit"
)

func TestMapMimeTypeToAudioFormat(t *testing.T) {
	format, err := MapMimeTypeToAudioFormat("audio/mpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if format != agentkit.AudioFormatMP3 {
		t.Fatalf("expected mp3, got %s", format)
	}

	format, err = MapMimeTypeToAudioFormat(`audio/ogg; codecs="opus"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if format != agentkit.AudioFormatOpus {
		t.Fatalf("expected opus, got %s", format)
	}

	if _, err := MapMimeTypeToAudioFormat("application/json"); err == nil {
		t.Fatal("expected error for unsupported mime type, got nil")
	}
}
