package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"pantryassistant/interpreter"
)

type CommandProcess struct{ commands interpreter.Processor }

func NewCommandProcess(p interpreter.Processor) *CommandProcess {
	return &CommandProcess{commands: p}
}

func (t *CommandProcess) Name() string  { return "command_process" }
func (t *CommandProcess) Title() string { return "Process Command" }
func (t *CommandProcess) Description() string {
	return "Interprets a plain-language household command such as 'add 2 cups of flour' and returns the spoken reply."
}

func (t *CommandProcess) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"text": {Type: "string"},
		},
		Required: []string{"text"},
	}
}

func (t *CommandProcess) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"text":   {Type: "string"},
			"action": {Types: []string{"string", "null"}},
			"data":   {},
		},
		Required: []string{"text", "action"},
	}
}

func (t *CommandProcess) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	text, err := requiredString(input, "text")
	if err != nil {
		return nil, err
	}
	return toMap(t.commands.Process(ctx, text))
}
