// Package tools holds the function-calling tool declarations handed to the
// chat model.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

// Tool is one callable function: its schema in the provider wire format plus
// the Go function behind it.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
	Run         func(ctx context.Context, args map[string]any) (string, error)
}

// Spec renders the OpenAI function-calling declaration.
func (t *Tool) Spec() map[string]any {
	return map[string]any{
		"type": "function",
		"function": map[string]any{
			"name":        t.Name,
			"description": t.Description,
			"parameters":  t.Parameters,
		},
	}
}

// Execute decodes raw JSON arguments and runs the tool. Arguments come from a
// model and may be malformed; an undecodable payload runs the tool with no
// arguments rather than failing the turn.
func (t *Tool) Execute(ctx context.Context, argsJSON string) (string, error) {
	args := map[string]any{}
	if argsJSON != "" {
		if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
			args = map[string]any{}
		}
	}
	out, err := t.Run(ctx, args)
	if err != nil {
		return "", fmt.Errorf("tool %s: %w", t.Name, err)
	}
	return out, nil
}

func Specs(ts []*Tool) []map[string]any {
	out := make([]map[string]any, len(ts))
	for i, t := range ts {
		out[i] = t.Spec()
	}
	return out
}

func Find(ts []*Tool, name string) *Tool {
	for _, t := range ts {
		if t.Name == name {
			return t
		}
	}
	return nil
}
