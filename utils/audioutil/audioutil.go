// Package audioutil implements byte-level concatenation of base64-encoded
// raw PCM audio chunks, the one audio encoding the accumulator can splice
// losslessly without a container-aware decoder.
package audioutil

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

func base64ToInt16Samples(b64 string) ([]int16, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decode base64 audio chunk: %w", err)
	}
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("audio chunk length %d is not a multiple of 2", len(raw))
	}

	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}
	return samples, nil
}

func int16SamplesToBase64(samples []int16) string {
	raw := make([]byte, len(samples)*2)
	for i, sample := range samples {
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(sample))
	}
	return base64.StdEncoding.EncodeToString(raw)
}

// ConcatenateB64AudioChunks decodes each base64 chunk as little-endian
// 16-bit PCM samples, concatenates the samples in order, and re-encodes the
// result as a single base64 string.
func ConcatenateB64AudioChunks(chunks []string) (string, error) {
	if len(chunks) == 0 {
		return "", nil
	}

	var all []int16
	for i, chunk := range chunks {
		samples, err := base64ToInt16Samples(chunk)
		if err != nil {
			return "", fmt.Errorf("audio chunk %d: %w", i, err)
		}
		all = append(all, samples...)
	}

	return int16SamplesToBase64(all), nil
}
