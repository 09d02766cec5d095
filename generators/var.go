package generators

import (
	"cloud.google.com/go/ai/generativelanguage/apiv1beta/generativelanguagepb"
)

// Var describes one value of a response schema.
type Var struct {
	Name        string
	Type        Type
	Optional    bool
	Description string
	ItemType    *Var // for TypeArray
	Properties  Vars // for TypeObject
}

type Vars []Var

func (v Vars) required() (ret []string) {
	for _, variable := range v {
		if !variable.Optional {
			ret = append(ret, variable.Name)
		}
	}
	return
}

func (v Vars) ToGemini() *generativelanguagepb.Schema {
	props := make(map[string]*generativelanguagepb.Schema)
	for _, variable := range v {
		props[variable.Name] = variable.ToGemini()
	}
	return &generativelanguagepb.Schema{
		Type:       generativelanguagepb.Type_OBJECT,
		Properties: props,
		Required:   v.required(),
	}
}

// ToGemini panics on TypeNone, which only appears in malformed schema literals.
func (v Var) ToGemini() *generativelanguagepb.Schema {
	if v.Type == TypeObject {
		ret := v.Properties.ToGemini()
		ret.Nullable = v.Optional
		ret.Description = v.Description
		return ret
	}
	typ, err := v.Type.gemini()
	if err != nil {
		panic(err)
	}
	ret := &generativelanguagepb.Schema{
		Type:        typ,
		Nullable:    v.Optional,
		Description: v.Description,
	}
	if v.Type == TypeArray {
		ret.Items = v.ItemType.ToGemini()
	}
	return ret
}

func (v Vars) ToOpenAI() map[string]any {
	props := make(map[string]any)
	for _, variable := range v {
		props[variable.Name] = variable.ToOpenAI()
	}
	return map[string]any{
		"type":       TypeObject.String(),
		"properties": props,
		"required":   v.required(),
	}
}

func (v Var) ToOpenAI() map[string]any {
	var ret map[string]any
	switch v.Type {
	case TypeObject:
		ret = v.Properties.ToOpenAI()
	case TypeArray:
		ret = map[string]any{
			"type":  v.Type.String(),
			"items": v.ItemType.ToOpenAI(),
		}
	default:
		if _, err := v.Type.gemini(); err != nil {
			panic(err)
		}
		ret = map[string]any{
			"type": v.Type.String(),
		}
	}
	if v.Description != "" {
		ret["description"] = v.Description
	}
	return ret
}
