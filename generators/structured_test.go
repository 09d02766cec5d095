package generators

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testSchema = `
motionPrimitives!: [...string]
`

type testPrimitives struct {
	MotionPrimitives []string `json:"motionPrimitives"`
}

func TestDecodeJSON(t *testing.T) {
	for text, expected := range map[string][]string{
		`{"motionPrimitives": ["wave", "point"]}`:                   {"wave", "point"},
		"```json\n{\"motionPrimitives\": [\"rest\"]}\n```":          {"rest"},
		"Here you go:\n{\"motionPrimitives\": []}\nHope it helps.": {},
	} {
		var v testPrimitives
		if err := DecodeJSON(text, testSchema, &v); err != nil {
			t.Fatalf("%s: %v", text, err)
		}
		if diff := cmp.Diff(expected, v.MotionPrimitives); diff != "" {
			t.Fatalf("%s: %s", text, diff)
		}
	}
}

func TestDecodeJSONFormatError(t *testing.T) {
	for _, text := range []string{
		"",
		"no json here",
		`{"motionPrimitives": [1, 2]}`,
		`{"motionPrimitives": "wave"}`,
		`{"motionPrimitives": ["wave"]`,
	} {
		var v testPrimitives
		err := DecodeJSON(text, testSchema, &v)
		var formatErr *FormatError
		if !errors.As(err, &formatErr) {
			t.Fatalf("%q: got %v", text, err)
		}
	}
}

func TestDecodeJSONMissingField(t *testing.T) {
	var v struct {
		Plan []any `json:"motionPlan"`
	}
	err := DecodeJSON(`{"foo": 1}`, `motionPlan!: [...]`, &v)
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("got %v", err)
	}
}

func TestGenerateJSON(t *testing.T) {
	generator := GeneratorFunc(func(_ context.Context, state State) (State, error) {
		if _, ok := As[Constraints](state); !ok {
			t.Fatal("no constraints")
		}
		return Reply(state, `{"motionPrimitives": ["wave"]}`)
	})

	state := WithConstraints(
		NewPrompts("system", []*Content{
			{
				Role:  RoleUser,
				Parts: []Part{Text("wave")},
			},
		}),
		&Var{
			Type: TypeObject,
			Properties: Vars{
				{
					Name:     "motionPrimitives",
					Type:     TypeArray,
					ItemType: &Var{Type: TypeString},
				},
			},
		},
		nil,
	)

	var v testPrimitives
	state2, err := GenerateJSON(t.Context(), generator, state, testSchema, &v)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"wave"}, v.MotionPrimitives); diff != "" {
		t.Fatal(diff)
	}
	if len(state2.Contents()) != 2 {
		t.Fatalf("got %+v", state2.Contents())
	}
}

func TestModelText(t *testing.T) {
	state := NewPrompts("", []*Content{
		{Role: RoleUser, Parts: []Part{Text("ignored")}},
		{Role: RoleModel, Parts: []Part{Thought("hmm"), Text("foo")}},
		{Role: RoleLog, Parts: []Part{FinishReason("STOP")}},
		{Role: RoleAssistant, Parts: []Part{Text("bar")}},
	})
	if got := ModelText(state, 0); got != "foobar" {
		t.Fatalf("got %q", got)
	}
	if got := ModelText(state, 3); got != "bar" {
		t.Fatalf("got %q", got)
	}
	if got := ModelText(state, 10); got != "" {
		t.Fatalf("got %q", got)
	}
}
