package configs

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testSchema = `
str?: string
list?: [...int]
link1_length?: number
`

func TestLoaderAssignFirst(t *testing.T) {
	loader := NewLoader([]string{"testdata/test.cue"}, testSchema)

	var str string
	if err := loader.AssignFirst("str", &str); err != nil {
		t.Fatal(err)
	}
	if str != "bar" {
		t.Fatalf("got %q", str)
	}

	var list []int
	if err := loader.AssignFirst("list", &list); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, list); diff != "" {
		t.Fatal(diff)
	}

	if err := loader.AssignFirst("not", &list); !errors.Is(err, ErrValueNotFound) {
		t.Fatalf("got %v", err)
	}
	if err := loader.AssignFirst("str", &list); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestLoaderPrecedence(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/test.cue",
		"testdata/test2.cue",
	}, testSchema)

	var strs []string
	for value, err := range loader.IterCueValues("str") {
		if err != nil {
			t.Fatal(err)
		}
		var s string
		if err := value.Decode(&s); err != nil {
			t.Fatal(err)
		}
		strs = append(strs, s)
	}
	if diff := cmp.Diff([]string{"bar", "foo"}, strs); diff != "" {
		t.Fatal(diff)
	}

	if diff := cmp.Diff(strs, slices.Collect(All[string](loader, "str"))); diff != "" {
		t.Fatal(diff)
	}
	if got := slices.Collect(All[string](loader, "nope")); len(got) != 0 {
		t.Fatalf("got %v", got)
	}
}

func TestLoaderErrors(t *testing.T) {
	for name, loader := range map[string]Loader{
		"unknown field": NewLoader([]string{"testdata/bad.cue"}, testSchema),
		"missing file":  NewLoader([]string{"testdata/not-exists.cue"}, ""),
		"bad schema":    NewSourcesLoader(nil, "str: "),
		"bad source":    NewSourcesLoader([]Source{{Name: "x.cue", Content: []byte("a: {")}}, ""),
	} {
		t.Run(name, func(t *testing.T) {
			if loader.Err() == nil {
				t.Fatal("should error")
			}
			var s string
			if err := loader.AssignFirst("str", &s); err == nil || errors.Is(err, ErrValueNotFound) {
				t.Fatalf("got %v", err)
			}
		})
	}
}

func TestSourcesLoader(t *testing.T) {
	loader := NewSourcesLoader([]Source{
		{Name: "a.cue", Content: []byte(`link1_length: 42`)},
		{Name: "b.cue", Content: []byte("link1_length: 7\nstr: \"b\"")},
	}, testSchema)
	if err := loader.Err(); err != nil {
		t.Fatal(err)
	}
	if v := First[float64](loader, "link1_length"); v != 42 {
		t.Fatalf("got %v", v)
	}
	if v := First[string](loader, "str"); v != "b" {
		t.Fatalf("got %v", v)
	}
}
