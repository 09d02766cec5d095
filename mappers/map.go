package mappers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/reusee/armplan/generators"
	"github.com/reusee/armplan/logs"
	"github.com/reusee/armplan/motions"
	"github.com/reusee/armplan/prompts"
)

// Map resolves primitives to joint angle sequences, one mapping per primitive in input order.
// An empty model result is returned as an empty slice without error.
type Map func(ctx context.Context, primitives []string) ([]motions.Mapping, error)

var promptTemplate = template.Must(template.New("mapper").Funcs(template.FuncMap{
	"json": func(v any) (string, error) {
		bs, err := json.Marshal(v)
		return string(bs), err
	},
}).Parse(prompts.TemplateMapper))

const outputSchema = `
motionPlan!: [...{
	motionPrimitive!: string
	jointAngles!: {
		joint1!: [...number]
		joint2!: [...number]
		[string]: [...number]
	}
}]
`

var numbersVar = &generators.Var{
	Type: generators.TypeArray,
	ItemType: &generators.Var{
		Type: generators.TypeNumber,
	},
}

var outputVar = &generators.Var{
	Name: "motion_plan",
	Type: generators.TypeObject,
	Properties: generators.Vars{
		{
			Name:        "motionPlan",
			Type:        generators.TypeArray,
			Description: "The motion plan containing motion primitives and their corresponding joint angles.",
			ItemType: &generators.Var{
				Type: generators.TypeObject,
				Properties: generators.Vars{
					{
						Name:        "motionPrimitive",
						Type:        generators.TypeString,
						Description: "The motion primitive name.",
					},
					{
						Name:        "jointAngles",
						Type:        generators.TypeObject,
						Description: "The joint angles for the motion primitive.",
						Properties: generators.Vars{
							withDescription(numbersVar, motions.Joint1, "The angle sequence for joint1."),
							withDescription(numbersVar, motions.Joint2, "The angle sequence for joint2."),
						},
					},
				},
			},
		},
	},
}

func withDescription(v *generators.Var, name string, description string) generators.Var {
	ret := *v
	ret.Name = name
	ret.Description = description
	return ret
}

type output struct {
	MotionPlan []motions.Mapping `json:"motionPlan"`
}

func (Module) Map(
	getGenerator generators.GetDefaultGenerator,
	templates Templates,
	safety Safety,
	logger logs.Logger,
) Map {
	return func(ctx context.Context, primitives []string) ([]motions.Mapping, error) {
		generator, err := getGenerator()
		if err != nil {
			return nil, err
		}

		buf := new(strings.Builder)
		if err := promptTemplate.Execute(buf, map[string]any{
			"Templates":  templates,
			"Primitives": primitives,
		}); err != nil {
			return nil, fmt.Errorf("render mapper prompt: %w", err)
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
		text := generators.ModelText(result, 1)

		if err := checkMappings(primitives, out.MotionPlan, text); err != nil {
			return nil, err
		}

		usage := generators.UsageOf(result)
		logger.InfoContext(ctx, "mapped",
			"steps", len(out.MotionPlan),
			"duration", time.Since(t0),
			"prompt_tokens", usage.PromptTokens,
			"output_tokens", usage.OutputTokens,
		)

		return out.MotionPlan, nil
	}
}

// checkMappings enforces one mapping per primitive in order, and equal-length angle sequences.
// Mapping names are normalized to the input spelling.
func checkMappings(primitives []string, mappings []motions.Mapping, text string) error {
	if len(mappings) == 0 {
		return nil
	}
	if len(mappings) != len(primitives) {
		return generators.NewFormatError(
			fmt.Sprintf("got %d steps for %d primitives", len(mappings), len(primitives)),
			text,
			nil,
		)
	}
	for i, mapping := range mappings {
		if !strings.EqualFold(strings.TrimSpace(mapping.MotionPrimitive), primitives[i]) {
			return generators.NewFormatError(
				fmt.Sprintf("step %d is %q, expected %q", i, mapping.MotionPrimitive, primitives[i]),
				text,
				nil,
			)
		}
		mappings[i].MotionPrimitive = primitives[i]
		if err := mapping.JointAngles.Validate(); err != nil {
			return generators.NewFormatError(
				fmt.Sprintf("step %d (%s)", i, primitives[i]),
				text,
				err,
			)
		}
	}
	return nil
}
