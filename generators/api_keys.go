package generators

import (
	"os"

	"github.com/reusee/armplan/configs"
)

type (
	GoogleAPIKey     string
	OpenRouterAPIKey string
	DeepseekAPIKey   string
	OpenAIAPIKey     string
)

// lookupKey returns the first key found in config under paths, then in the environment under envs.
func lookupKey[T ~string](loader configs.Loader, paths []string, envs ...string) T {
	if key := configs.First[T](loader, paths...); key != "" {
		return key
	}
	for _, env := range envs {
		if key := os.Getenv(env); key != "" {
			return T(key)
		}
	}
	return ""
}

func (Module) GoogleAPIKey(loader configs.Loader) GoogleAPIKey {
	return lookupKey[GoogleAPIKey](loader,
		[]string{"google_api_key", "gemini_api_key"},
		"GOOGLE_API_KEY", "GEMINI_API_KEY",
	)
}

func (Module) OpenRouterAPIKey(loader configs.Loader) OpenRouterAPIKey {
	return lookupKey[OpenRouterAPIKey](loader,
		[]string{"open_router_api_key", "openrouter_api_key"},
		"OPEN_ROUTER_API_KEY", "OPENROUTER_API_KEY",
	)
}

func (Module) DeepseekAPIKey(loader configs.Loader) DeepseekAPIKey {
	return lookupKey[DeepseekAPIKey](loader,
		[]string{"deepseek_api_key"},
		"DEEPSEEK_API_KEY",
	)
}

func (Module) OpenAIAPIKey(loader configs.Loader) OpenAIAPIKey {
	return lookupKey[OpenAIAPIKey](loader,
		[]string{"openai_api_key"},
		"OPENAI_API_KEY",
	)
}
