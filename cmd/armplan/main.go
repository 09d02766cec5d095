package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/reusee/armplan/cmds"
	"github.com/reusee/armplan/editors"
	"github.com/reusee/armplan/exports"
	"github.com/reusee/armplan/logs"
	"github.com/reusee/armplan/modes"
	"github.com/reusee/armplan/motions"
	"github.com/reusee/armplan/plans"
	"github.com/reusee/armplan/poses"
	"github.com/reusee/armplan/servers"
	"github.com/reusee/dscope"
	"github.com/reusee/e5"
	"golang.org/x/term"
)

var wrap = e5.Wrap.With(e5.WrapStacktrace)

type action func(ctx context.Context, scope dscope.Scope) error

var (
	formatFlag = cmds.Var[string]("-format", "json|yaml, png for preview")
	outputFlag = cmds.Var[string]("-o", "output file, stdout by default")

	run action
)

func init() {
	cmds.Define("generate", cmds.Func(func(prompt string) {
		run = generateAction(prompt)
	}).Desc("generate a motion plan from a prompt, - reads stdin"))

	cmds.Define("edit", cmds.Func(func() {
		run = editAction
	}).Desc("edit plans interactively"))

	cmds.Define("script", cmds.Func(func(path string) {
		run = scriptAction(path)
	}).Desc("run a starlark edit script"))

	cmds.Define("preview", cmds.Func(func(joint1, joint2 float64) {
		run = previewAction(joint1, joint2)
	}).Desc("render the arm pose for two normalized joint angles"))

	cmds.Define("serve", cmds.Func(func() {
		run = serveAction
	}).Desc("serve the HTTP API"))
}

func main() {
	cmds.Execute(os.Args[1:])
	if run == nil {
		cmds.GlobalExecutor.PrintUsage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	var err error
	scope.Call(func(
		logger logs.Logger,
	) {
		err = run(ctx, scope)
		if err != nil {
			logger.Debug("command error", "err", wrap(err))
		}
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// output opens the -o file, or stdout when unset.
func output() (io.Writer, func() error, error) {
	if *outputFlag == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(*outputFlag)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func getStdinContent() ([]byte, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, nil
	}
	return io.ReadAll(os.Stdin)
}

func generateAction(prompt string) action {
	return func(ctx context.Context, scope dscope.Scope) (err error) {
		if prompt == "-" {
			stdin, err := getStdinContent()
			if err != nil {
				return err
			}
			prompt = string(stdin)
		}
		format, err := exports.ParseFormat(*formatFlag)
		if err != nil {
			return err
		}

		var plan motions.Plan
		scope.Call(func(
			generate plans.Generate,
		) {
			plan, err = generate(ctx, strings.TrimSpace(prompt))
		})
		if err != nil {
			return err
		}

		w, closeOutput, err := output()
		if err != nil {
			return err
		}
		defer func() {
			if e := closeOutput(); e != nil && err == nil {
				err = e
			}
		}()
		return exports.Export(w, plan, format)
	}
}

func editAction(ctx context.Context, scope dscope.Scope) (err error) {
	scope.Call(func(
		newSession editors.NewSession,
		edit editors.Edit,
	) {
		err = edit(ctx, newSession(), os.Stdout)
	})
	return
}

func scriptAction(path string) action {
	return func(ctx context.Context, scope dscope.Scope) (err error) {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var session *editors.Session
		scope.Call(func(
			newSession editors.NewSession,
			runScript editors.RunScript,
		) {
			session = newSession()
			err = runScript(ctx, session, path, src, os.Stderr)
		})
		if err != nil {
			return err
		}
		if len(session.Plan()) == 0 {
			return nil
		}

		format, err := exports.ParseFormat(*formatFlag)
		if err != nil {
			return err
		}
		w, closeOutput, err := output()
		if err != nil {
			return err
		}
		defer func() {
			if e := closeOutput(); e != nil && err == nil {
				err = e
			}
		}()
		return session.Export(w, format)
	}
}

func previewAction(joint1, joint2 float64) action {
	return func(ctx context.Context, scope dscope.Scope) (err error) {
		var arm poses.Arm
		scope.Call(func(a poses.Arm) {
			arm = a
		})
		pose := poses.Project(map[string]float64{
			motions.Joint1: joint1,
			motions.Joint2: joint2,
		}, arm)

		w, closeOutput, err := output()
		if err != nil {
			return err
		}
		defer func() {
			if e := closeOutput(); e != nil && err == nil {
				err = e
			}
		}()

		if strings.HasSuffix(*outputFlag, ".png") || *formatFlag == "png" {
			return poses.RenderPNG(w, pose, arm)
		}
		poses.RenderSVG(w, pose, arm)
		return nil
	}
}

func serveAction(ctx context.Context, scope dscope.Scope) (err error) {
	scope.Call(func(
		serve servers.Serve,
	) {
		err = serve(ctx)
	})
	return
}
