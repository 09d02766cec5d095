package editors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/reusee/armplan/debugs"
	"github.com/reusee/armplan/logs"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// RunScript executes a Starlark edit script against session.
//
// Builtins:
//
//	plan()                              the current plan as a list of dicts
//	generate(prompt)                    replace the plan, returns the error message or None
//	set_angle(step, joint, frame, value) step is an id or a 0-based index
//	set_plan(steps)                     replace the plan with a list of step dicts
type RunScript func(ctx context.Context, session *Session, name string, src []byte, out io.Writer) error

func (Module) RunScript(
	logger logs.Logger,
) RunScript {
	return func(ctx context.Context, session *Session, name string, src []byte, out io.Writer) error {

		globals := starlark.StringDict{

			"plan": starlark.NewBuiltin("plan", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
					return nil, err
				}
				return debugs.ToStarlarkValue(session.Plan()), nil
			}),

			"generate": starlark.NewBuiltin("generate", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var prompt string
				if err := starlark.UnpackArgs(b.Name(), args, kwargs, "prompt", &prompt); err != nil {
					return nil, err
				}
				result := session.Generate(ctx, prompt)
				if result.Error != nil {
					return starlark.String(*result.Error), nil
				}
				return starlark.None, nil
			}),

			"set_angle": starlark.NewBuiltin("set_angle", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var step starlark.Value
				var joint string
				var frame int
				var value starlark.Value
				if err := starlark.UnpackArgs(b.Name(), args, kwargs,
					"step", &step,
					"joint", &joint,
					"frame", &frame,
					"value", &value,
				); err != nil {
					return nil, err
				}
				f, ok := starlark.AsFloat(value)
				if !ok {
					return nil, fmt.Errorf("%s: value must be a number, got %s", b.Name(), value.Type())
				}
				id, err := scriptStepID(session, step)
				if err != nil {
					return nil, err
				}
				if err := session.SetAngle(id, joint, frame, f); err != nil {
					return nil, err
				}
				return starlark.None, nil
			}),

			"set_plan": starlark.NewBuiltin("set_plan", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var steps *starlark.List
				if err := starlark.UnpackArgs(b.Name(), args, kwargs, "steps", &steps); err != nil {
					return nil, err
				}
				v, err := debugs.FromStarlarkValue(steps)
				if err != nil {
					return nil, err
				}
				data, err := json.Marshal(v)
				if err != nil {
					return nil, err
				}
				if err := session.Load(data); err != nil {
					return nil, err
				}
				return starlark.None, nil
			}),
		}

		thread := &starlark.Thread{
			Name: name,
			Print: func(_ *starlark.Thread, msg string) {
				fmt.Fprintln(out, msg)
			},
		}
		thread.SetLocal("context", ctx)

		_, err := starlark.ExecFileOptions(&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
		}, thread, name, src, globals)
		if err != nil {
			logger.WarnContext(ctx, "script error", "script", name, "err", err)
			return err
		}
		return nil
	}
}

func scriptStepID(session *Session, step starlark.Value) (string, error) {
	switch step := step.(type) {
	case starlark.String:
		return string(step), nil
	case starlark.Int:
		i, ok := step.Int64()
		if !ok {
			return "", fmt.Errorf("step index out of range: %s", step)
		}
		plan := session.Plan()
		if len(plan) == 0 {
			return "", ErrNoPlan
		}
		if i < 0 || i >= int64(len(plan)) {
			return "", fmt.Errorf("step index %d not in [0, %d)", i, len(plan))
		}
		return plan[i].ID, nil
	}
	return "", fmt.Errorf("step must be an id or an index, got %s", step.Type())
}
