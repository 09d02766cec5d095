package generators

import (
	"testing"

	"github.com/reusee/armplan/configs"
	"github.com/reusee/armplan/modes"
	"github.com/reusee/dscope"
)

func TestGetDefaultGenerator(t *testing.T) {
	loader := configs.NewLoader([]string{}, "")
	dscope.New(
		new(Module),
		&loader,
		modes.ForTest(t),
	).Call(func(
		get GetDefaultGenerator,
	) {
		generator, err := get()
		if err != nil {
			t.Fatal(err)
		}
		if generator.Args().Model != "models/gemini-flash-latest" {
			t.Fatalf("got %+v", generator.Args())
		}
	})
}

func TestDefaultModelNameFromConfig(t *testing.T) {
	dscope.New(
		new(Module),
		modes.ForTest(t),
		dscope.Provide(configs.NewSourcesLoader([]configs.Source{
			{Name: "test.cue", Content: []byte(`model: "deepseek"`)},
		}, "")),
	).Call(func(
		name DefaultModelName,
		get GetDefaultGenerator,
	) {
		if name != "deepseek" {
			t.Fatalf("got %v", name)
		}
		generator, err := get()
		if err != nil {
			t.Fatal(err)
		}
		if generator.Args().BaseURL != "https://api.deepseek.com" {
			t.Fatalf("got %+v", generator.Args())
		}
	})
}
