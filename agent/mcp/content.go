package mcp

import (
	"encoding/base64"
	"fmt"

	agentkit "github.com/agentkit-go/agentkit"
	"github.com/agentkit-go/agentkit/utils/partutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// convertMCPContentToParts maps MCP content blocks to agentkit Parts.
// Content kinds with no Part counterpart (resource links, embedded
// resources) are skipped so a partial result still reaches the model.
// Audio whose MIME type maps to no AudioFormat is an error.
func convertMCPContentToParts(contents []mcp.Content) ([]agentkit.Part, error) {
	parts := make([]agentkit.Part, 0, len(contents))

	for _, content := range contents {
		switch c := content.(type) {
		case *mcp.TextContent:
			parts = append(parts, agentkit.NewTextPart(c.Text))
		case *mcp.ImageContent:
			encoded := base64.StdEncoding.EncodeToString(c.Data)
			parts = append(parts, agentkit.NewImagePart(c.MIMEType, encoded))
		case *mcp.AudioContent:
			format, err := partutil.MapMimeTypeToAudioFormat(c.MIMEType)
			if err != nil {
				return nil, fmt.Errorf("unsupported MCP audio format %q: %w", c.MIMEType, err)
			}
			encoded := base64.StdEncoding.EncodeToString(c.Data)
			parts = append(parts, agentkit.NewAudioPart(format, encoded))
		}
	}

	return parts, nil
}
