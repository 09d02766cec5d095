package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/armplan/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Tap opens a Starlark REPL on stdin with globals bound. It returns at EOF.
type Tap func(ctx context.Context, what string, globals map[string]any)

var tapFileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		names := slices.Sorted(maps.Keys(globals))
		dict := make(starlark.StringDict, len(names))
		for _, name := range names {
			dict[name] = ToStarlarkValue(globals[name])
		}

		logger.InfoContext(ctx, "tap", "what", what, "globals", names)
		thread := &starlark.Thread{
			Name: "tap " + what,
		}
		thread.SetLocal("context", ctx)
		repl.REPLOptions(tapFileOptions, thread, dict)
		logger.InfoContext(ctx, "tap closed", "what", what)
	}
}
