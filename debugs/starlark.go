package debugs

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

// ToStarlarkValue converts Go values to Starlark values.
// Structs become dicts keyed by their json names, so plans look the same in scripts as in exported files.
func ToStarlarkValue(v any) starlark.Value {
	if v == nil {
		return starlark.None
	}
	return toStarlark(reflect.ValueOf(v))
}

var starlarkValueType = reflect.TypeFor[starlark.Value]()

func toStarlark(value reflect.Value) starlark.Value {
	if !value.IsValid() {
		return starlark.None
	}
	if value.Type().Implements(starlarkValueType) && value.CanInterface() {
		if k := value.Kind(); (k == reflect.Pointer || k == reflect.Interface) && value.IsNil() {
			return starlark.None
		}
		return value.Interface().(starlark.Value)
	}

	switch value.Kind() {

	case reflect.Bool:
		return starlark.Bool(value.Bool())

	case reflect.String:
		return starlark.String(value.String())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(value.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return starlark.MakeUint64(value.Uint())

	case reflect.Float32, reflect.Float64:
		return starlark.Float(value.Float())

	case reflect.Slice:
		if value.Type().Elem().Kind() == reflect.Uint8 {
			return starlark.Bytes(value.Bytes())
		}
		fallthrough
	case reflect.Array:
		elems := make([]starlark.Value, value.Len())
		for i := range elems {
			elems[i] = toStarlark(value.Index(i))
		}
		return starlark.NewList(elems)

	case reflect.Map:
		d := starlark.NewDict(value.Len())
		for iter := value.MapRange(); iter.Next(); {
			d.SetKey(toStarlark(iter.Key()), toStarlark(iter.Value()))
		}
		return d

	case reflect.Struct:
		typ := value.Type()
		d := starlark.NewDict(typ.NumField())
		for i := range typ.NumField() {
			field := typ.Field(i)
			name, ok := fieldName(field)
			if !ok {
				continue
			}
			d.SetKey(starlark.String(name), toStarlark(value.Field(i)))
		}
		return d

	case reflect.Pointer, reflect.Interface:
		if value.IsNil() {
			return starlark.None
		}
		return toStarlark(value.Elem())

	case reflect.Func:
		return starlarkutil.MakeFunc("", value.Interface())

	}

	panic(fmt.Errorf("unsupported type for starlark: %s", value.Type()))
}

func fieldName(field reflect.StructField) (string, bool) {
	if !field.IsExported() {
		return "", false
	}
	tag, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	switch tag {
	case "-":
		return "", false
	case "":
		return field.Name, true
	}
	return tag, true
}

// FromStarlarkValue converts Starlark values produced by scripts back to JSON-shaped Go values.
func FromStarlarkValue(v starlark.Value) (any, error) {
	switch v := v.(type) {

	case starlark.NoneType:
		return nil, nil

	case starlark.Bool:
		return bool(v), nil

	case starlark.String:
		return string(v), nil

	case starlark.Bytes:
		return []byte(v), nil

	case starlark.Int:
		if i, ok := v.Int64(); ok {
			return i, nil
		}
		if u, ok := v.Uint64(); ok {
			return u, nil
		}
		return nil, fmt.Errorf("int out of range: %s", v)

	case starlark.Float:
		return float64(v), nil

	case *starlark.List:
		return fromSequence(v)

	case starlark.Tuple:
		return fromSequence(v)

	case *starlark.Dict:
		ret := make(map[string]any, v.Len())
		for _, item := range v.Items() {
			key, ok := starlark.AsString(item[0])
			if !ok {
				return nil, fmt.Errorf("non-string dict key: %s", item[0])
			}
			value, err := FromStarlarkValue(item[1])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			ret[key] = value
		}
		return ret, nil

	}

	return nil, fmt.Errorf("unsupported starlark type: %s", v.Type())
}

func fromSequence(seq starlark.Indexable) ([]any, error) {
	ret := make([]any, seq.Len())
	for i := range ret {
		elem, err := FromStarlarkValue(seq.Index(i))
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		ret[i] = elem
	}
	return ret, nil
}
