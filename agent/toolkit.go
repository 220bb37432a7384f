package agent

import "context"

// Toolkit produces a per-session ToolkitSession that can supply dynamic
// tools and a system prompt fragment, e.g. one backed by a Model Context
// Protocol server.
type Toolkit[C any] interface {
	// CreateSession creates and initializes a new toolkit session bound to
	// contextVal.
	CreateSession(ctx context.Context, contextVal C) (ToolkitSession[C], error)
}

// ToolkitSession exposes a toolkit's dynamically resolved tools and system
// prompt fragment for the lifetime of one run session. Tools() and
// SystemPrompt() are re-read every turn, so an implementation backed by a
// live connection may refresh them between calls.
//
// Tools returns an error instead of panicking when the session's last
// background discovery attempt failed; the run loop surfaces that error
// as an Invariant on the next turn rather than crashing the run.
type ToolkitSession[C any] interface {
	SystemPrompt() *string
	Tools() ([]AgentTool[C], error)
	Close(ctx context.Context) error
}
