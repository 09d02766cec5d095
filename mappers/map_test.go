package mappers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/reusee/armplan/configs"
	"github.com/reusee/armplan/generators"
	"github.com/reusee/armplan/modes"
	"github.com/reusee/armplan/motions"
	"github.com/reusee/dscope"
)

func testScope(t *testing.T, loader configs.Loader, reply func(prompt string) string) dscope.Scope {
	generator := generators.GeneratorFunc(func(_ context.Context, state generators.State) (generators.State, error) {
		if _, ok := generators.As[generators.Constraints](state); !ok {
			t.Fatal("no constraints")
		}
		prompt := string(state.Contents()[0].Parts[0].(generators.Text))
		return generators.Reply(state, reply(prompt))
	})
	return dscope.New(
		modes.ForTest(t),
		dscope.Provide(loader),
		new(Module),
	).Fork(
		func() generators.GetDefaultGenerator {
			return func() (generators.Generator, error) {
				return generator, nil
			}
		},
	)
}

func TestMapTemplates(t *testing.T) {
	testScope(t, configs.NewLoader(nil, ""), func(prompt string) string {
		for _, line := range []string{
			"wave: {joint1: [0,0.5,0], joint2: [0,0.5,0]}",
			"point: {joint1: [0.5,0,0], joint2: [0.5,0,0]}",
			"rest: {joint1: [0,0,0], joint2: [0,0,0]}",
			`Motion Primitives: ["wave","point","rest"]`,
		} {
			if !strings.Contains(prompt, line) {
				t.Fatalf("%q not in prompt:\n%s", line, prompt)
			}
		}
		return `{"motionPlan": [
			{"motionPrimitive": "wave", "jointAngles": {"joint1": [0, 0.5, 0], "joint2": [0, 0.5, 0]}},
			{"motionPrimitive": "Point", "jointAngles": {"joint1": [0.5, 0, 0], "joint2": [0.5, 0, 0]}},
			{"motionPrimitive": "rest", "jointAngles": {"joint1": [0, 0, 0], "joint2": [0, 0, 0]}}
		]}`
	}).Call(func(
		mapPrimitives Map,
	) {
		mappings, err := mapPrimitives(t.Context(), []string{"wave", "point", "rest"})
		if err != nil {
			t.Fatal(err)
		}
		expected := []motions.Mapping{
			{MotionPrimitive: "wave", JointAngles: motions.JointAngles{"joint1": {0, 0.5, 0}, "joint2": {0, 0.5, 0}}},
			{MotionPrimitive: "point", JointAngles: motions.JointAngles{"joint1": {0.5, 0, 0}, "joint2": {0.5, 0, 0}}},
			{MotionPrimitive: "rest", JointAngles: motions.JointAngles{"joint1": {0, 0, 0}, "joint2": {0, 0, 0}}},
		}
		if diff := cmp.Diff(expected, mappings); diff != "" {
			t.Fatal(diff)
		}
	})
}

func TestMapPreservesOrder(t *testing.T) {
	primitives := []string{"nod", "rest", "spin", "wave", "point", "reach", "bow"}
	testScope(t, configs.NewLoader(nil, ""), func(string) string {
		var steps []string
		for i, name := range primitives {
			v := float64(i) / 10
			steps = append(steps, fmt.Sprintf(
				`{"motionPrimitive": %q, "jointAngles": {"joint1": [%v], "joint2": [%v], "joint3": [0]}}`,
				name, v, -v,
			))
		}
		return `{"motionPlan": [` + strings.Join(steps, ",") + `]}`
	}).Call(func(
		mapPrimitives Map,
	) {
		mappings, err := mapPrimitives(t.Context(), primitives)
		if err != nil {
			t.Fatal(err)
		}
		if len(mappings) != len(primitives) {
			t.Fatalf("got %d", len(mappings))
		}
		for i, mapping := range mappings {
			if mapping.MotionPrimitive != primitives[i] {
				t.Fatalf("%d: got %s", i, mapping.MotionPrimitive)
			}
			if mapping.JointAngles["joint1"][0] != float64(i)/10 {
				t.Fatalf("%d: got %v", i, mapping.JointAngles)
			}
		}
	})
}

func TestMapEmpty(t *testing.T) {
	testScope(t, configs.NewLoader(nil, ""), func(string) string {
		return `{"motionPlan": []}`
	}).Call(func(
		mapPrimitives Map,
	) {
		mappings, err := mapPrimitives(t.Context(), []string{"wave"})
		if err != nil {
			t.Fatal(err)
		}
		if len(mappings) != 0 {
			t.Fatalf("got %v", mappings)
		}
	})
}

func TestMapFormatErrors(t *testing.T) {
	for _, reply := range []string{
		// not json
		`I cannot do that`,
		// missing joint2
		`{"motionPlan": [{"motionPrimitive": "wave", "jointAngles": {"joint1": [0]}}]}`,
		// string angle
		`{"motionPlan": [{"motionPrimitive": "wave", "jointAngles": {"joint1": ["0"], "joint2": [0]}}]}`,
		// ragged
		`{"motionPlan": [{"motionPrimitive": "wave", "jointAngles": {"joint1": [0, 1], "joint2": [0]}}]}`,
		// wrong count
		`{"motionPlan": [
			{"motionPrimitive": "wave", "jointAngles": {"joint1": [0], "joint2": [0]}},
			{"motionPrimitive": "rest", "jointAngles": {"joint1": [0], "joint2": [0]}}
		]}`,
		// wrong name
		`{"motionPlan": [{"motionPrimitive": "rest", "jointAngles": {"joint1": [0], "joint2": [0]}}]}`,
	} {
		testScope(t, configs.NewLoader(nil, ""), func(string) string {
			return reply
		}).Call(func(
			mapPrimitives Map,
		) {
			_, err := mapPrimitives(t.Context(), []string{"wave"})
			var formatErr *generators.FormatError
			if !errors.As(err, &formatErr) {
				t.Fatalf("%s: got %v", reply, err)
			}
		})
	}
}

func TestConfiguredTemplates(t *testing.T) {
	loader := configs.NewSourcesLoader([]configs.Source{
		{
			Name: "test.cue",
			Content: []byte(`
motion_templates: [
	{name: "nod", joint1: [0, 0, 0], joint2: [0, 0.25, 0]},
	{name: "rest", joint1: [0.1, 0.1], joint2: [0, 0]},
]
mapper_safety: dangerous_content: "block_only_high"
`),
		},
	}, "")
	testScope(t, loader, func(prompt string) string {
		if !strings.Contains(prompt, "nod: {joint1: [0,0,0], joint2: [0,0.25,0]}") {
			t.Fatalf("got %s", prompt)
		}
		if !strings.Contains(prompt, "rest: {joint1: [0.1,0.1], joint2: [0,0]}") {
			t.Fatalf("got %s", prompt)
		}
		return `{"motionPlan": []}`
	}).Call(func(
		mapPrimitives Map,
		templates Templates,
		safety Safety,
	) {
		if len(templates) != 4 {
			t.Fatalf("got %+v", templates)
		}
		if safety[generators.HarmDangerousContent] != generators.BlockOnlyHigh {
			t.Fatalf("got %v", safety)
		}
		if _, err := mapPrimitives(t.Context(), []string{"nod"}); err != nil {
			t.Fatal(err)
		}
	})
}
