package cmds

import (
	"fmt"
	"io"
	"maps"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/reusee/armplan/vars"
)

// Executor dispatches command-line words to commands in order.
type Executor struct {
	commands map[string]*Command
	usageOut io.Writer
}

func NewExecutor() *Executor {
	e := &Executor{
		commands: make(map[string]*Command),
		usageOut: os.Stdout,
	}
	e.Define("help", Func(func() {
		e.PrintUsage()
		os.Exit(0)
	}).Desc("print this usage").Alias("-h", "-help", "--help"))
	return e
}

func (e *Executor) Define(name string, command *Command) {
	for _, n := range append([]string{name}, command.Aliases...) {
		if _, ok := e.commands[n]; ok {
			panic(fmt.Errorf("duplicated command %s", n))
		}
		e.commands[n] = command
	}
}

func (e *Executor) Execute(args []string) (err error) {
	for len(args) > 0 {
		name := strings.TrimSpace(args[0])
		cmd, ok := e.commands[name]
		if !ok {
			return fmt.Errorf("unknown command: %s", name)
		}
		args, err = cmd.call(args[1:])
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// PrintUsage lists commands sorted by name, one row per command with its aliases.
func (e *Executor) PrintUsage() {
	t := table.NewWriter()
	t.SetOutputMirror(e.usageOut)
	t.Style().Options = table.OptionsNoBordersAndSeparators
	for _, name := range slices.Sorted(maps.Keys(e.commands)) {
		cmd := e.commands[name]
		if slices.Contains(cmd.Aliases, name) {
			continue
		}
		t.AppendRow(table.Row{
			strings.Join(append([]string{name}, cmd.Aliases...), ", "),
			cmd.signature(),
			cmd.Description,
		})
	}
	t.Render()
}

var parsers = map[reflect.Kind]func(string, reflect.Value) error{
	reflect.String: func(s string, v reflect.Value) error {
		v.SetString(s)
		return nil
	},
	reflect.Bool: func(s string, v reflect.Value) error {
		v.SetBool(vars.StrToBool(s))
		return nil
	},
	reflect.Int:     parseInt,
	reflect.Int8:    parseInt,
	reflect.Int16:   parseInt,
	reflect.Int32:   parseInt,
	reflect.Int64:   parseInt,
	reflect.Uint:    parseUint,
	reflect.Uint8:   parseUint,
	reflect.Uint16:  parseUint,
	reflect.Uint32:  parseUint,
	reflect.Uint64:  parseUint,
	reflect.Float32: parseFloat,
	reflect.Float64: parseFloat,
}

func parseInt(s string, v reflect.Value) error {
	n, err := strconv.ParseInt(s, 10, v.Type().Bits())
	if err != nil {
		return fmt.Errorf("convert %s to int: %w", s, err)
	}
	v.SetInt(n)
	return nil
}

func parseUint(s string, v reflect.Value) error {
	n, err := strconv.ParseUint(s, 10, v.Type().Bits())
	if err != nil {
		return fmt.Errorf("convert %s to unsigned int: %w", s, err)
	}
	v.SetUint(n)
	return nil
}

func parseFloat(s string, v reflect.Value) error {
	f, err := strconv.ParseFloat(s, v.Type().Bits())
	if err != nil {
		return fmt.Errorf("convert %s to float: %w", s, err)
	}
	v.SetFloat(f)
	return nil
}

func parseArg(t reflect.Type, s string) (reflect.Value, error) {
	v := reflect.New(t).Elem()
	if err := parsers[t.Kind()](s, v); err != nil {
		return v, err
	}
	return v, nil
}
