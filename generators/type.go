package generators

import (
	"fmt"

	"cloud.google.com/go/ai/generativelanguage/apiv1beta/generativelanguagepb"
)

// Type is the value type of a response schema variable.
type Type uint8

const (
	TypeNone Type = iota
	TypeString
	TypeNumber
	TypeInteger
	TypeBoolean
	TypeArray
	TypeObject
)

var typeNames = [...]string{
	TypeNone:    "none",
	TypeString:  "string",
	TypeNumber:  "number",
	TypeInteger: "integer",
	TypeBoolean: "boolean",
	TypeArray:   "array",
	TypeObject:  "object",
}

// String is also the JSON Schema type name.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", t)
}

func (t Type) gemini() (generativelanguagepb.Type, error) {
	switch t {
	case TypeString:
		return generativelanguagepb.Type_STRING, nil
	case TypeNumber:
		return generativelanguagepb.Type_NUMBER, nil
	case TypeInteger:
		return generativelanguagepb.Type_INTEGER, nil
	case TypeBoolean:
		return generativelanguagepb.Type_BOOLEAN, nil
	case TypeArray:
		return generativelanguagepb.Type_ARRAY, nil
	case TypeObject:
		return generativelanguagepb.Type_OBJECT, nil
	}
	return generativelanguagepb.Type_TYPE_UNSPECIFIED, fmt.Errorf("unknown type: %v", t)
}
