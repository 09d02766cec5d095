package parsers

import (
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/reusee/armplan/generators"
	"github.com/reusee/armplan/logs"
	"github.com/reusee/armplan/prompts"
)

// Parse turns a free-text instruction into ordered motion primitive names.
type Parse func(ctx context.Context, prompt string) ([]string, error)

var promptTemplate = template.Must(template.New("parser").Parse(prompts.MotionParser))

const outputSchema = `
motionPrimitives!: [...string]
`

var outputVar = &generators.Var{
	Name: "motion_primitives",
	Type: generators.TypeObject,
	Properties: generators.Vars{
		{
			Name:        "motionPrimitives",
			Type:        generators.TypeArray,
			Description: "A list of motion primitives parsed from the prompt.",
			ItemType: &generators.Var{
				Type: generators.TypeString,
			},
		},
	},
}

type output struct {
	MotionPrimitives []string `json:"motionPrimitives"`
}

func (Module) Parse(
	getGenerator generators.GetDefaultGenerator,
	safety Safety,
	logger logs.Logger,
) Parse {
	return func(ctx context.Context, prompt string) ([]string, error) {
		generator, err := getGenerator()
		if err != nil {
			return nil, err
		}

		buf := new(strings.Builder)
		if err := promptTemplate.Execute(buf, map[string]any{
			"Prompt": prompt,
		}); err != nil {
			return nil, fmt.Errorf("render parser prompt: %w", err)
		}

		state := generators.WithConstraints(
			generators.NewUserPrompt("", buf.String()),
			outputVar,
			generators.SafetySettings(safety),
		)

		t0 := time.Now()
		var out output
		result, err := generators.GenerateJSON(ctx, generator, state, outputSchema, &out)
		if err != nil {
			return nil, err
		}

		var ret []string
		for _, name := range out.MotionPrimitives {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			ret = append(ret, name)
		}

		usage := generators.UsageOf(result)
		logger.InfoContext(ctx, "parsed",
			"primitives", ret,
			"duration", time.Since(t0),
			"prompt_tokens", usage.PromptTokens,
			"output_tokens", usage.OutputTokens,
		)

		return ret, nil
	}
}
