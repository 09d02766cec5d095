package generators

// GeneratorArgs configures one provider endpoint and model.
type GeneratorArgs struct {
	BaseURL           string         `json:"base_url"`
	APIKey            string         `json:"api_key"`
	Model             string         `json:"model"`
	ContextTokens     int            `json:"context_tokens"`
	MaxGenerateTokens *int           `json:"max_generate_tokens"`
	Temperature       *float32       `json:"temperature"`
	ExtraArguments    map[string]any `json:"extra_arguments"`
	IsOpenRouter      bool           `json:"is_open_router"`
}

// temperature returns the sampling temperature, with the -temperature flag taking precedence when set.
func (a GeneratorArgs) temperature() *float32 {
	if *temperatureFlag != 0 {
		t := *temperatureFlag
		return &t
	}
	return a.Temperature
}
