package generators

import (
	"fmt"
	"sync"

	"github.com/reusee/armplan/configs"
)

// GeneratorSpec is a named generator declared in the generators config list.
type GeneratorSpec struct {
	Name string `json:"name"`
	Type string `json:"type"`
	GeneratorArgs
}

type GetGeneratorSpecs func() ([]GeneratorSpec, error)

// GetGeneratorSpecs collects specs from all config sources. A name declared
// in a higher precedence source hides later declarations.
func (Module) GetGeneratorSpecs(
	loader configs.Loader,
) GetGeneratorSpecs {
	return sync.OnceValues(func() (ret []GeneratorSpec, err error) {
		seen := make(map[string]bool)
		for value, err := range loader.IterCueValues("generators") {
			if err != nil {
				return nil, err
			}
			var specs []GeneratorSpec
			if err := value.Decode(&specs); err != nil {
				return nil, fmt.Errorf("decode generators: %w", err)
			}
			for _, spec := range specs {
				if spec.Name == "" {
					return nil, fmt.Errorf("generator without name: %+v", spec)
				}
				if seen[spec.Name] {
					continue
				}
				seen[spec.Name] = true
				ret = append(ret, spec)
			}
		}
		return
	})
}
