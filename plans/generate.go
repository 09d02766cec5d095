package plans

import (
	"context"
	"strings"
	"time"

	"github.com/reusee/armplan/configs"
	"github.com/reusee/armplan/generators"
	"github.com/reusee/armplan/logs"
	"github.com/reusee/armplan/mappers"
	"github.com/reusee/armplan/motions"
	"github.com/reusee/armplan/parsers"
)

// MaxPromptTokens rejects longer prompts before any model call. Zero disables the check.
type MaxPromptTokens int

func (Module) MaxPromptTokens(
	loader configs.Loader,
) MaxPromptTokens {
	return configs.First[MaxPromptTokens](loader, "max_prompt_tokens")
}

// Generate turns a prompt into a plan. Errors are always *Error.
type Generate func(ctx context.Context, prompt string) (motions.Plan, error)

type generation struct {
	prompt     string
	primitives []string
	mappings   []motions.Mapping
	plan       motions.Plan
}

type phase func(ctx context.Context, g *generation) (phase, error)

func (Module) Generate(
	parse parsers.Parse,
	mapPrimitives mappers.Map,
	newID NewID,
	maxTokens MaxPromptTokens,
	getGenerator generators.GetDefaultGenerator,
	newSpan logs.NewSpan,
	logger logs.Logger,
) Generate {

	var checkPrompt, parsePrompt, mapSteps, assignIDs phase

	checkPrompt = func(ctx context.Context, g *generation) (phase, error) {
		if strings.TrimSpace(g.prompt) == "" {
			return nil, &Error{Kind: KindEmptyInput}
		}
		if maxTokens > 0 {
			generator, err := getGenerator()
			if err != nil {
				return nil, err
			}
			n, err := generator.CountTokens(g.prompt)
			if err != nil {
				return nil, err
			}
			if n > int(maxTokens) {
				logger.WarnContext(ctx, "prompt too long",
					"tokens", n,
					"max", int(maxTokens),
				)
				return nil, &Error{Kind: KindPromptTooLong}
			}
		}
		return parsePrompt, nil
	}

	parsePrompt = func(ctx context.Context, g *generation) (phase, error) {
		primitives, err := parse(ctx, g.prompt)
		if err != nil {
			return nil, err
		}
		if len(primitives) == 0 {
			return nil, &Error{Kind: KindParseYieldedNothing}
		}
		g.primitives = primitives
		return mapSteps, nil
	}

	mapSteps = func(ctx context.Context, g *generation) (phase, error) {
		mappings, err := mapPrimitives(ctx, g.primitives)
		if err != nil {
			return nil, err
		}
		if len(mappings) == 0 {
			return nil, &Error{Kind: KindMappingYieldedNothing}
		}
		g.mappings = mappings
		return assignIDs, nil
	}

	assignIDs = func(ctx context.Context, g *generation) (phase, error) {
		g.plan = make(motions.Plan, 0, len(g.mappings))
		for _, mapping := range g.mappings {
			g.plan = append(g.plan, motions.Step{
				ID:              newID(),
				MotionPrimitive: mapping.MotionPrimitive,
				JointAngles:     mapping.JointAngles,
			})
		}
		return nil, nil
	}

	return func(ctx context.Context, prompt string) (motions.Plan, error) {
		ctx, _ = newSpan(ctx, "", "prompt_bytes", len(prompt))
		t0 := time.Now()

		g := &generation{
			prompt: prompt,
		}
		for p := checkPrompt; p != nil; {
			var err error
			p, err = p(ctx, g)
			if err != nil {
				planErr := Classify(err)
				logger.ErrorContext(ctx, "generate plan",
					"kind", planErr.Kind,
					"error", err,
					"duration", time.Since(t0),
				)
				return nil, planErr
			}
		}

		logger.InfoContext(ctx, "plan generated",
			"steps", len(g.plan),
			"primitives", g.primitives,
			"duration", time.Since(t0),
		)
		return g.plan, nil
	}
}

// GenerateResult wraps Generate in a Result envelope.
type GenerateResult func(ctx context.Context, prompt string) Result

func (Module) GenerateResult(
	generate Generate,
) GenerateResult {
	return func(ctx context.Context, prompt string) Result {
		return NewResult(generate(ctx, prompt))
	}
}
