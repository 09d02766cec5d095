package generators

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestContentMerge(t *testing.T) {
	for _, c := range []struct {
		name     string
		a, b     Content
		expected []Part
		ok       bool
	}{
		{
			name: "different roles",
			a:    Content{Role: RoleUser},
			b:    Content{Role: RoleModel},
		},
		{
			name: "empty",
			a:    Content{Role: RoleUser},
			b:    Content{Role: RoleUser},
			ok:   true,
		},
		{
			name:     "reply chunks",
			a:        Content{Role: RoleModel, Parts: []Part{Text(`{"motionPrimitives": `)}},
			b:        Content{Role: RoleModel, Parts: []Part{Text(`["wave"]}`)}},
			expected: []Part{Text(`{"motionPrimitives": ["wave"]}`)},
			ok:       true,
		},
		{
			name:     "thoughts",
			a:        Content{Role: RoleModel, Parts: []Part{Thought("the user ")}},
			b:        Content{Role: RoleModel, Parts: []Part{Thought("wants a wave")}},
			expected: []Part{Thought("the user wants a wave")},
			ok:       true,
		},
		{
			name: "text after thought",
			a:    Content{Role: RoleModel, Parts: []Part{Thought("plan"), Text("{")}},
			b:    Content{Role: RoleModel, Parts: []Part{Text("}"), FinishReason("STOP"), Text("trailing")}},
			expected: []Part{
				Thought("plan"),
				Text("{}"),
				FinishReason("STOP"),
				Text("trailing"),
			},
			ok: true,
		},
	} {
		t.Run(c.name, func(t *testing.T) {
			merged, ok := c.a.Merge(&c.b)
			if ok != c.ok {
				t.Fatalf("got ok %v", ok)
			}
			if !ok {
				if merged != nil {
					t.Fatal("expected nil content")
				}
				return
			}
			if merged.Role != c.a.Role {
				t.Fatalf("got role %v", merged.Role)
			}
			if diff := cmp.Diff(c.expected, merged.Parts); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestContentText(t *testing.T) {
	content := &Content{
		Role: RoleModel,
		Parts: []Part{
			Thought("hmm"),
			Text("foo"),
			FinishReason("STOP"),
			Text("bar"),
		},
	}
	if got := content.Text(); got != "foobar" {
		t.Fatalf("got %q", got)
	}
}

func TestPromptsAppendContent(t *testing.T) {
	state := NewUserPrompt("sys", "wave")
	next, err := state.AppendContent(&Content{Role: RoleModel, Parts: []Part{Text("{")}})
	if err != nil {
		t.Fatal(err)
	}
	next, err = next.AppendContent(&Content{Role: RoleModel, Parts: []Part{Text("}")}})
	if err != nil {
		t.Fatal(err)
	}
	if len(next.Contents()) != 2 || next.Contents()[1].Text() != "{}" {
		t.Fatalf("got %+v", next.Contents())
	}
	// the original state is untouched
	if len(state.Contents()) != 1 {
		t.Fatalf("got %+v", state.Contents())
	}

	if _, err := state.AppendContent(&Content{}); !errors.Is(err, ErrEmptyRole) {
		t.Fatalf("got %v", err)
	}
}
