package generators

import (
	"errors"

	"github.com/reusee/armplan/cmds"
	"github.com/reusee/e5"
)

var wrap = e5.Wrap.With(e5.WrapStacktrace)

var (
	debugGemini     = cmds.Switch("-debug-gemini", "log gemini requests and responses")
	debugOpenAI     = cmds.Switch("-debug-openai", "log openai-compatible requests and responses")
	tapOpenAI       = cmds.Switch("-tap-openai", "open a starlark repl on each openai-compatible response")
	temperatureFlag = cmds.Var[float32]("-temperature", "sampling temperature")
)

// ErrRetryable marks provider errors that may succeed on another attempt.
var ErrRetryable = errors.New("retryable")
