package generators

import (
	"context"
	"fmt"
	"strings"

	"github.com/reusee/armplan/vars"
)

type Generator interface {
	Args() GeneratorArgs
	CountTokens(string) (int, error)
	Generate(ctx context.Context, state State) (State, error)
}

type GetGenerator func(name string) (Generator, error)

const (
	K = 1 << 10
	M = 1 << 20
)

type builtin struct {
	provider string
	args     GeneratorArgs
}

func lowTemperature(model string, contextTokens int) GeneratorArgs {
	return GeneratorArgs{
		Model:             model,
		ContextTokens:     contextTokens,
		MaxGenerateTokens: vars.PtrTo(8 * K),
		Temperature:       vars.PtrTo(float32(0.1)),
	}
}

var builtins = map[string]builtin{
	"flash":         {"gemini", lowTemperature("models/gemini-flash-latest", 1*M)},
	"gemini-flash":  {"gemini", lowTemperature("models/gemini-flash-latest", 1*M)},
	"pro":           {"gemini", lowTemperature("models/gemini-pro-latest", 2*M)},
	"gemini-pro":    {"gemini", lowTemperature("models/gemini-pro-latest", 2*M)},
	"deepseek":      {"deepseek", lowTemperature("deepseek-chat", 64*K)},
	"deepseek-chat": {"deepseek", lowTemperature("deepseek-chat", 64*K)},
}

// GetGenerator resolves a model name. Lookup order: generators from config,
// "<provider>:<model>" names, then built-in names.
func (Module) GetGenerator(
	newGemini NewGemini,
	newDeepseek NewDeepseek,
	newOpenRouter NewOpenRouter,
	newOllama NewOllama,
	newOpenAI NewOpenAICompatible,
	getSpecs GetGeneratorSpecs,
) GetGenerator {

	byProvider := func(provider string, args GeneratorArgs) (Generator, error) {
		switch strings.ToLower(provider) {
		case "open-router", "open_router", "openrouter":
			return newOpenRouter(args), nil
		case "deepseek":
			return newDeepseek(args), nil
		case "openai", "open-ai", "open_ai":
			return newOpenAI(args), nil
		case "gemini":
			return newGemini(args), nil
		case "ollama":
			return newOllama(args), nil
		}
		return nil, fmt.Errorf("unknown generator type: %q", provider)
	}

	return func(name string) (Generator, error) {
		specs, err := getSpecs()
		if err != nil {
			return nil, err
		}
		for _, spec := range specs {
			if spec.Name == name {
				return byProvider(spec.Type, spec.GeneratorArgs)
			}
		}

		if provider, model, ok := strings.Cut(name, ":"); ok && model != "" {
			return byProvider(provider, GeneratorArgs{
				Model: model,
			})
		}

		if b, ok := builtins[name]; ok {
			return byProvider(b.provider, b.args)
		}

		return nil, fmt.Errorf("invalid model: %s", name)
	}
}
