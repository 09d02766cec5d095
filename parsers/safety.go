package parsers

import (
	"maps"
	"slices"

	"github.com/reusee/armplan/configs"
	"github.com/reusee/armplan/generators"
)

// Safety is the content filter applied to parse requests.
type Safety generators.SafetySettings

func (Module) Safety(
	loader configs.Loader,
) Safety {
	ret := generators.SafetySettings{
		generators.HarmHateSpeech:       generators.BlockOnlyHigh,
		generators.HarmDangerousContent: generators.BlockNone,
		generators.HarmHarassment:       generators.BlockMediumAndAbove,
		generators.HarmSexuallyExplicit: generators.BlockLowAndAbove,
	}
	for _, settings := range slices.Backward(slices.Collect(configs.All[generators.SafetySettings](loader, "parser_safety"))) {
		maps.Copy(ret, settings)
	}
	return Safety(ret)
}
