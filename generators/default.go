package generators

import (
	"fmt"
	"sync"

	"github.com/reusee/armplan/cmds"
	"github.com/reusee/armplan/configs"
	"github.com/reusee/armplan/logs"
	"github.com/reusee/armplan/vars"
)

type GetDefaultGenerator func() (Generator, error)

func (Module) GetDefaultGenerator(
	name DefaultModelName,
	get GetGenerator,
) GetDefaultGenerator {
	return sync.OnceValues(func() (Generator, error) {
		generator, err := get(string(name))
		if err != nil {
			return nil, fmt.Errorf("default generator %q: %w", name, err)
		}
		return generator, nil
	})
}

var (
	defaultModelName = cmds.Var[string]("-model", "model or generator name")
)

type DefaultModelName string

func (Module) DefaultModelName(
	loader configs.Loader,
	fallback FallbackModelName,
	logger logs.Logger,
) (ret DefaultModelName) {
	defer func() {
		logger.Info("default model", "name", ret)
	}()
	return vars.FirstNonZero(
		DefaultModelName(*defaultModelName),
		configs.First[DefaultModelName](loader, "model", "model_name"),
		DefaultModelName(fallback),
	)
}

type FallbackModelName string

func (Module) FallbackModelName() FallbackModelName {
	return "gemini-flash"
}
