package agent

import "strings"

// InstructionParam is one fragment of an agent's system prompt: either a
// fixed string or a function of the bound context value, resolved once
// when the run session is created.
type InstructionParam[C any] struct {
	String *string
	Func   func(contextVal C) string
}

func getPrompt[C any](instructions []InstructionParam[C], contextVal C) string {
	prompts := make([]string, 0, len(instructions))
	for _, param := range instructions {
		var prompt string
		switch {
		case param.String != nil:
			prompt = *param.String
		case param.Func != nil:
			prompt = param.Func(contextVal)
		}
		if prompt != "" {
			prompts = append(prompts, prompt)
		}
	}
	return strings.Join(prompts, "\n")
}
