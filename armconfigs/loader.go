package armconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/armplan/cmds"
	"github.com/reusee/armplan/configs"
	"github.com/reusee/armplan/logs"
)

//go:embed schema.cue
var Schema string

var configFlag = cmds.Var[string]("-config", "extra config file, highest precedence")

var fileNames = []string{
	"armplan.cue",
	".armplan.cue",
}

// SearchPaths lists existing config files under dirs, in precedence order.
func SearchPaths(dirs ...string) (paths []string) {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		for _, filename := range fileNames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	return
}

// DefaultDirs are the working directory, the user config directory and /etc.
func DefaultDirs() []string {
	var dirs []string
	if workingDir, err := os.Getwd(); err == nil {
		dirs = append(dirs, workingDir)
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, configDir, filepath.Join(configDir, "armplan"))
	}
	dirs = append(dirs, "/etc")
	return dirs
}

func (Module) ConfigsLoader(
	logger logs.Logger,
) configs.Loader {
	var paths []string
	if *configFlag != "" {
		paths = append(paths, *configFlag)
	}
	paths = append(paths, SearchPaths(DefaultDirs()...)...)
	if len(paths) > 0 {
		logger.Info("config file",
			"paths", paths,
		)
	}
	return configs.NewLoader(paths, Schema)
}
