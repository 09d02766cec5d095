package generators

import (
	"testing"

	"cloud.google.com/go/ai/generativelanguage/apiv1beta/generativelanguagepb"
	"github.com/google/go-cmp/cmp"
)

var testPlanVar = &Var{
	Type: TypeObject,
	Properties: Vars{
		{
			Name: "motionPlan",
			Type: TypeArray,
			ItemType: &Var{
				Type: TypeObject,
				Properties: Vars{
					{Name: "motionPrimitive", Type: TypeString},
					{Name: "note", Type: TypeString, Optional: true},
				},
			},
		},
	},
}

func TestVarToOpenAI(t *testing.T) {
	expected := map[string]any{
		"type":     "object",
		"required": []string{"motionPlan"},
		"properties": map[string]any{
			"motionPlan": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{"motionPrimitive"},
					"properties": map[string]any{
						"motionPrimitive": map[string]any{
							"type": "string",
						},
						"note": map[string]any{
							"type": "string",
						},
					},
				},
			},
		},
	}
	if diff := cmp.Diff(expected, testPlanVar.ToOpenAI()); diff != "" {
		t.Fatal(diff)
	}
}

func TestVarToGemini(t *testing.T) {
	schema := testPlanVar.ToGemini()
	item := schema.Properties["motionPlan"].Items
	if item.Type != generativelanguagepb.Type_OBJECT {
		t.Fatalf("got %v", item)
	}
	if diff := cmp.Diff([]string{"motionPrimitive"}, item.Required); diff != "" {
		t.Fatal(diff)
	}
	if !item.Properties["note"].Nullable {
		t.Fatalf("got %v", item.Properties["note"])
	}
}

func TestTypeString(t *testing.T) {
	if TypeInteger.String() != "integer" {
		t.Fatal()
	}
	if Type(42).String() != "Type(42)" {
		t.Fatal()
	}
	if _, err := TypeNone.gemini(); err == nil {
		t.Fatal("expected error")
	}
}
