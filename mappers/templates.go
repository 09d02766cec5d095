package mappers

import (
	"maps"
	"slices"

	"github.com/reusee/armplan/configs"
	"github.com/reusee/armplan/generators"
	"github.com/reusee/armplan/motions"
)

// Template is a reference mapping shown to the model.
type Template struct {
	Name   string    `json:"name"`
	Joint1 []float64 `json:"joint1"`
	Joint2 []float64 `json:"joint2"`
}

func (t Template) JointAngles() motions.JointAngles {
	return motions.JointAngles{
		motions.Joint1: slices.Clone(t.Joint1),
		motions.Joint2: slices.Clone(t.Joint2),
	}
}

var DefaultTemplates = []Template{
	{Name: "wave", Joint1: []float64{0, 0.5, 0}, Joint2: []float64{0, 0.5, 0}},
	{Name: "point", Joint1: []float64{0.5, 0, 0}, Joint2: []float64{0.5, 0, 0}},
	{Name: "rest", Joint1: []float64{0, 0, 0}, Joint2: []float64{0, 0, 0}},
}

type Templates []Template

// Templates returns the built-in templates followed by those in the motion_templates config. A configured template replaces a built-in one with the same name.
func (Module) Templates(
	loader configs.Loader,
) (ret Templates) {
	ret = slices.Clone(DefaultTemplates)
	for _, templates := range slices.Backward(slices.Collect(configs.All[[]Template](loader, "motion_templates"))) {
		for _, template := range templates {
			i := slices.IndexFunc(ret, func(t Template) bool {
				return t.Name == template.Name
			})
			if i >= 0 {
				ret[i] = template
			} else {
				ret = append(ret, template)
			}
		}
	}
	return
}

// Safety is the content filter applied to map requests. Empty means provider defaults.
type Safety generators.SafetySettings

func (Module) Safety(
	loader configs.Loader,
) Safety {
	ret := generators.SafetySettings{}
	for _, settings := range slices.Backward(slices.Collect(configs.All[generators.SafetySettings](loader, "mapper_safety"))) {
		maps.Copy(ret, settings)
	}
	return Safety(ret)
}
