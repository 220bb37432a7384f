// Package partutil maps MIME types to agentkit.AudioFormat values, used to
// interpret audio content arriving from a tool or toolkit.
package partutil

import (
	"fmt"
	"strings"

	agentkit "github.com/agentkit-go/agentkit"
)

var audioFormatToMimeTypeMap = map[agentkit.AudioFormat]string{
	agentkit.AudioFormatWav:      "audio/wav",
	agentkit.AudioFormatLinear16: "audio/L16",
	agentkit.AudioFormatFLAC:     "audio/flac",
	agentkit.AudioFormatMulaw:    "audio/basic",
	agentkit.AudioFormatAlaw:     "audio/basic",
	agentkit.AudioFormatMP3:      "audio/mpeg",
	agentkit.AudioFormatOpus:     `audio/ogg; codecs="opus"`,
	agentkit.AudioFormatAAC:      "audio/aac",
}

func MapMimeTypeToAudioFormat(mimeType string) (agentkit.AudioFormat, error) {
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	for format, mt := range audioFormatToMimeTypeMap {
		if idx := strings.Index(mt, ";"); idx != -1 {
			mt = strings.TrimSpace(mt[:idx])
		}
		if mimeType == mt {
			return format, nil
		}
	}
	return "", fmt.Errorf("unsupported audio format for mime type: %s", mimeType)
}
