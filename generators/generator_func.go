package generators

import (
	"context"
	"strings"
)

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, state State) (State, error)

var _ Generator = GeneratorFunc(nil)

func (g GeneratorFunc) Args() GeneratorArgs {
	return GeneratorArgs{
		Model: "func",
	}
}

func (g GeneratorFunc) CountTokens(text string) (int, error) {
	return len(strings.Fields(text)), nil
}

func (g GeneratorFunc) Generate(ctx context.Context, state State) (State, error) {
	return g(ctx, state)
}

// Reply appends a model reply with text.
func Reply(state State, text string) (State, error) {
	return state.AppendContent(&Content{
		Role: RoleModel,
		Parts: []Part{
			Text(text),
		},
	})
}
