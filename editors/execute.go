package editors

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/reusee/armplan/debugs"
	"github.com/reusee/armplan/exports"
	"github.com/reusee/armplan/poses"
)

var (
	okColor    = color.New(color.FgGreen).SprintFunc()
	errColor   = color.New(color.FgRed).SprintFunc()
	labelColor = color.New(color.FgCyan).SprintFunc()
)

const helpText = `commands:
  <prompt>                             generate a new plan
  /show                                print the current plan
  /set <step> <joint> <frame> <value>  edit one angle
  /pose <step> <frame>                 print the arm pose of a frame
  /export json|yaml [file]             export the plan
  /load <file>                         load an exported plan
  /tap                                 open a starlark repl on the session
  /quit                                leave`

// Execute runs one editor command against session. quit reports that the editor should exit.
type Execute func(ctx context.Context, session *Session, out io.Writer, input string) (quit bool, err error)

func (Module) Execute(
	tap debugs.Tap,
	arm poses.Arm,
) Execute {
	return func(ctx context.Context, session *Session, out io.Writer, input string) (bool, error) {
		input = strings.TrimSpace(input)
		if input == "" {
			return false, nil
		}

		if !strings.HasPrefix(input, "/") {
			result := session.Generate(ctx, input)
			if result.Error != nil {
				fmt.Fprintln(out, errColor(*result.Error))
				return false, nil
			}
			fmt.Fprintln(out, RenderPlan(result.Plan))
			return false, nil
		}

		fields := strings.Fields(input)
		args := fields[1:]
		switch fields[0] {

		case "/quit", "/exit":
			return true, nil

		case "/help":
			fmt.Fprintln(out, helpText)

		case "/show":
			plan := session.Plan()
			if len(plan) == 0 {
				return false, ErrNoPlan
			}
			fmt.Fprintln(out, RenderPlan(plan))

		case "/set":
			if len(args) != 4 {
				return false, fmt.Errorf("usage: /set <step> <joint> <frame> <value>")
			}
			id, err := session.Resolve(args[0])
			if err != nil {
				return false, err
			}
			frame, err := strconv.Atoi(args[2])
			if err != nil {
				return false, fmt.Errorf("bad frame: %w", err)
			}
			value, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return false, fmt.Errorf("bad value: %w", err)
			}
			if err := session.SetAngle(id, args[1], frame, value); err != nil {
				return false, err
			}
			fmt.Fprintln(out, okColor("ok"))

		case "/pose":
			if len(args) != 2 {
				return false, fmt.Errorf("usage: /pose <step> <frame>")
			}
			id, err := session.Resolve(args[0])
			if err != nil {
				return false, err
			}
			frame, err := strconv.Atoi(args[1])
			if err != nil {
				return false, fmt.Errorf("bad frame: %w", err)
			}
			plan := session.Plan()
			i, _ := plan.Find(id)
			frames := poses.Frames(plan[i].JointAngles, arm)
			if frame < 0 || frame >= len(frames) {
				return false, fmt.Errorf("frame %d not in [0, %d)", frame, len(frames))
			}
			pose := frames[frame]
			fmt.Fprintf(out, "%s (%.1f, %.1f)  %s (%.1f, %.1f)  %s %.1f\n",
				labelColor("elbow"), pose.Elbow.X, pose.Elbow.Y,
				labelColor("end"), pose.End.X, pose.End.Y,
				labelColor("reach"), pose.Reach(),
			)

		case "/export":
			if len(args) < 1 || len(args) > 2 {
				return false, fmt.Errorf("usage: /export json|yaml [file]")
			}
			format, err := exports.ParseFormat(args[0])
			if err != nil {
				return false, err
			}
			buf := new(bytes.Buffer)
			if err := session.Export(buf, format); err != nil {
				return false, err
			}
			if len(args) == 1 {
				_, err := out.Write(buf.Bytes())
				return false, err
			}
			if err := os.WriteFile(args[1], buf.Bytes(), 0644); err != nil {
				return false, err
			}
			fmt.Fprintln(out, okColor("wrote "+args[1]))

		case "/load":
			if len(args) != 1 {
				return false, fmt.Errorf("usage: /load <file>")
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return false, err
			}
			if err := session.Load(data); err != nil {
				return false, err
			}
			fmt.Fprintln(out, RenderPlan(session.Plan()))

		case "/tap":
			tap(ctx, "editor session", map[string]any{
				"plan": session.Plan(),
				"arm":  arm,
			})

		default:
			return false, fmt.Errorf("unknown command: %s", fields[0])
		}

		return false, nil
	}
}
