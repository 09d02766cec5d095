package generators

import (
	"fmt"

	"cloud.google.com/go/ai/generativelanguage/apiv1beta/generativelanguagepb"
)

type Part interface {
	isPart()
	ToGemini() (*generativelanguagepb.Part, error)
}

type Text string

func (Text) isPart() {}

func (t Text) ToGemini() (*generativelanguagepb.Part, error) {
	return &generativelanguagepb.Part{
		Data: &generativelanguagepb.Part_Text{
			Text: string(t),
		},
	}, nil
}

type Thought string

func (Thought) isPart() {}

// thoughts are not sent back to the model
func (Thought) ToGemini() (*generativelanguagepb.Part, error) {
	return nil, nil
}

type FinishReason string

func (FinishReason) isPart() {}

func (FinishReason) ToGemini() (*generativelanguagepb.Part, error) {
	return nil, nil
}

// Usage is the token accounting of one generation. It is stored in RoleLog contents.
type Usage struct {
	PromptTokens  int
	CachedTokens  int
	OutputTokens  int
	ThoughtTokens int
}

// Add sums usages of successive generations.
func (u Usage) Add(u2 Usage) Usage {
	return Usage{
		PromptTokens:  u.PromptTokens + u2.PromptTokens,
		CachedTokens:  u.CachedTokens + u2.CachedTokens,
		OutputTokens:  u.OutputTokens + u2.OutputTokens,
		ThoughtTokens: u.ThoughtTokens + u2.ThoughtTokens,
	}
}

// UsageOf sums the usage parts recorded in state.
func UsageOf(state State) (ret Usage) {
	for _, content := range state.Contents() {
		for _, part := range content.Parts {
			if usage, ok := part.(Usage); ok {
				ret = ret.Add(usage)
			}
		}
	}
	return
}

func (Usage) isPart() {}

func (Usage) ToGemini() (*generativelanguagepb.Part, error) {
	return nil, nil
}

func PartFromGemini(part *generativelanguagepb.Part) (Part, error) {
	switch data := part.Data.(type) {

	case *generativelanguagepb.Part_Text:
		return Text(data.Text), nil

	case *generativelanguagepb.Part_CodeExecutionResult:
		return Text(data.CodeExecutionResult.GetOutput()), nil

	case *generativelanguagepb.Part_ExecutableCode:
		return Text(data.ExecutableCode.GetCode()), nil

	}

	return nil, fmt.Errorf("unsupported part type: %T", part.Data)
}
