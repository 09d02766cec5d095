package generators

import (
	"github.com/reusee/armplan/configs"
	"github.com/reusee/armplan/vars"
)

const (
	openRouterEndpoint = "https://openrouter.ai/api/v1"
	deepseekEndpoint   = "https://api.deepseek.com"
	ollamaEndpoint     = "http://127.0.0.1:11434/v1"
	openAIEndpoint     = "https://api.openai.com/v1"
)

// at points args at baseURL unless it already names one, and fills in defaultKey when args has no key.
func (args GeneratorArgs) at(baseURL string, defaultKey string) (GeneratorArgs, string) {
	args.BaseURL = vars.FirstNonZero(args.BaseURL, baseURL)
	return args, vars.FirstNonZero(args.APIKey, defaultKey)
}

type NewOpenRouter func(args GeneratorArgs) *OpenAI

func (Module) NewOpenRouter(
	newOpenAI NewOpenAI,
	apiKey OpenRouterAPIKey,
	loader configs.Loader,
) NewOpenRouter {
	endpoint := vars.FirstNonZero(
		configs.First[string](loader, "openrouter_endpoint"),
		openRouterEndpoint,
	)
	return func(args GeneratorArgs) *OpenAI {
		args.IsOpenRouter = true
		args.BaseURL = ""
		return newOpenAI(args.at(endpoint, string(apiKey)))
	}
}

type NewDeepseek func(args GeneratorArgs) *OpenAI

func (Module) NewDeepseek(
	apiKey DeepseekAPIKey,
	newOpenAI NewOpenAI,
) NewDeepseek {
	return func(args GeneratorArgs) *OpenAI {
		args.BaseURL = ""
		return newOpenAI(args.at(deepseekEndpoint, string(apiKey)))
	}
}

type NewOllama func(args GeneratorArgs) *OpenAI

func (Module) NewOllama(
	newOpenAI NewOpenAI,
) NewOllama {
	return func(args GeneratorArgs) *OpenAI {
		return newOpenAI(args.at(ollamaEndpoint, ""))
	}
}

type NewOpenAICompatible func(args GeneratorArgs) *OpenAI

// NewOpenAICompatible uses args.BaseURL as is, defaulting to the OpenAI endpoint.
func (Module) NewOpenAICompatible(
	apiKey OpenAIAPIKey,
	newOpenAI NewOpenAI,
) NewOpenAICompatible {
	return func(args GeneratorArgs) *OpenAI {
		return newOpenAI(args.at(openAIEndpoint, string(apiKey)))
	}
}
