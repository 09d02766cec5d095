package cmds

import (
	"fmt"
	"reflect"
	"strings"
)

// Command is a function bound to a command-line word. Its parameters consume the words that follow.
// Pointer parameters are optional and receive a zero value when the words run out.
type Command struct {
	fn          reflect.Value
	params      []reflect.Type
	Description string
	Aliases     []string
}

func (c *Command) Desc(desc string) *Command {
	c.Description = desc
	return c
}

func (c *Command) Alias(names ...string) *Command {
	c.Aliases = append(c.Aliases, names...)
	return c
}

var errorType = reflect.TypeFor[error]()

// Func wraps fn, which must return nothing or an error.
func Func(fn any) *Command {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		panic(fmt.Errorf("command must be a function, got %T", fn))
	}
	t := v.Type()
	switch {
	case t.NumOut() > 1,
		t.NumOut() == 1 && t.Out(0) != errorType:
		panic(fmt.Errorf("command must return nothing or an error, got %s", t))
	}
	cmd := &Command{
		fn: v,
	}
	for i := range t.NumIn() {
		param := t.In(i)
		base := param
		if base.Kind() == reflect.Pointer {
			base = base.Elem()
		}
		if _, ok := parsers[base.Kind()]; !ok {
			panic(fmt.Errorf("unsupported parameter type %s", param))
		}
		cmd.params = append(cmd.params, param)
	}
	return cmd
}

// call consumes arguments for the command and runs it, returning the unconsumed rest.
func (c *Command) call(args []string) ([]string, error) {
	in := make([]reflect.Value, 0, len(c.params))
	for _, param := range c.params {
		optional := param.Kind() == reflect.Pointer
		if len(args) == 0 {
			if !optional {
				return nil, fmt.Errorf("missing <%s> argument", param.Kind())
			}
			in = append(in, reflect.New(param.Elem()))
			continue
		}
		base := param
		if optional {
			base = param.Elem()
		}
		value, err := parseArg(base, args[0])
		if err != nil {
			return nil, err
		}
		args = args[1:]
		if optional {
			value = value.Addr()
		}
		in = append(in, value)
	}
	out := c.fn.Call(in)
	if len(out) == 1 && !out[0].IsNil() {
		return nil, out[0].Interface().(error)
	}
	return args, nil
}

func (c *Command) signature() string {
	var b strings.Builder
	for i, param := range c.params {
		if i > 0 {
			b.WriteByte(' ')
		}
		if param.Kind() == reflect.Pointer {
			fmt.Fprintf(&b, "[%s]", param.Elem().Kind())
		} else {
			fmt.Fprintf(&b, "<%s>", param.Kind())
		}
	}
	return b.String()
}
