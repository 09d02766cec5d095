package cmds

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestExecutor(t *testing.T) {
	executor := NewExecutor()
	var steps []string
	var size int
	executor.Define("add", Func(func(name string) {
		steps = append(steps, name)
	}))
	executor.Define("-size", Func(func(n int) {
		size = n
	}).Alias("-s"))

	if err := executor.Execute([]string{"add", "wave", "-s", "200", "add", "rest"}); err != nil {
		t.Fatal(err)
	}
	if strings.Join(steps, ",") != "wave,rest" || size != 200 {
		t.Fatalf("got %v %d", steps, size)
	}

	for args, want := range map[string]string{
		"foo":       "unknown command: foo",
		"add":       "add: missing <string> argument",
		"-size x":   "-size: convert x to int",
		"-size 1e3": "-size: convert 1e3 to int",
	} {
		err := executor.Execute(strings.Fields(args))
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Fatalf("%s: got %v", args, err)
		}
	}
}

func TestDuplicatedCommand(t *testing.T) {
	executor := NewExecutor()
	defer func() {
		if recover() == nil {
			t.Fatal("should panic")
		}
	}()
	executor.Define("--help", Func(func() {}))
}

func TestInvalidFunc(t *testing.T) {
	for _, fn := range []any{
		42,
		func() int { return 0 },
		func() (error, error) { return nil, nil },
		func(chan int) {},
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("%T should panic", fn)
				}
			}()
			Func(fn)
		}()
	}
}

func TestOptionalArgument(t *testing.T) {
	executor := NewExecutor()
	var n int
	var s string
	executor.Define("foo", Func(func(arg *int, arg2 *string) {
		n = *arg
		s = *arg2
	}))

	for _, c := range []struct {
		args []string
		n    int
		s    string
	}{
		{[]string{"foo", "42", "bar"}, 42, "bar"},
		{[]string{"foo", "99"}, 99, ""},
		{[]string{"foo"}, 0, ""},
	} {
		if err := executor.Execute(c.args); err != nil {
			t.Fatal(err)
		}
		if n != c.n || s != c.s {
			t.Fatalf("%v: got %d %q", c.args, n, s)
		}
	}
}

func TestFloatArgument(t *testing.T) {
	executor := NewExecutor()
	var joint1, joint2 float64
	executor.Define("preview", Func(func(a, b float64) {
		joint1 = a
		joint2 = b
	}))
	if err := executor.Execute([]string{"preview", "0.5", "-0.25"}); err != nil {
		t.Fatal(err)
	}
	if joint1 != 0.5 || joint2 != -0.25 {
		t.Fatalf("got %v %v", joint1, joint2)
	}
	err := executor.Execute([]string{"preview", "x", "1"})
	if err == nil || !strings.Contains(err.Error(), "convert x to float") {
		t.Fatalf("got %v", err)
	}
}

var errFail = errors.New("fail")

func TestCommandError(t *testing.T) {
	executor := NewExecutor()
	executor.Define("fail", Func(func() error {
		return errFail
	}))
	executor.Define("ok", Func(func() error {
		return nil
	}))
	if err := executor.Execute([]string{"ok"}); err != nil {
		t.Fatal(err)
	}
	if err := executor.Execute([]string{"ok", "fail"}); !errors.Is(err, errFail) {
		t.Fatalf("got %v", err)
	}
}

func TestUsage(t *testing.T) {
	executor := NewExecutor()
	buf := new(bytes.Buffer)
	executor.usageOut = buf
	executor.Define("generate", Func(func(prompt string) {}).Desc("generate a plan"))
	executor.Define("-o", Func(func(path *string) {}).Desc("output file"))
	executor.PrintUsage()
	out := buf.String()
	for _, want := range []string{
		"generate", "<string>", "generate a plan",
		"[string]", "output file",
		"help, -h, -help, --help",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in\n%s", want, out)
		}
	}
	if strings.Count(out, "print this usage") != 1 {
		t.Fatalf("aliases listed twice:\n%s", out)
	}
}
