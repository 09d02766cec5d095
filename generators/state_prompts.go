package generators

import (
	"errors"
	"fmt"
	"slices"
)

var ErrEmptyRole = errors.New("content without role")

// Prompts is the innermost State: a system prompt and the conversation so far.
type Prompts struct {
	systemPrompt string
	contents     []*Content
}

func NewPrompts(systemPrompt string, contents []*Content) Prompts {
	return Prompts{
		systemPrompt: systemPrompt,
		contents:     contents,
	}
}

// NewUserPrompt starts a conversation with a single user message.
func NewUserPrompt(systemPrompt string, text string) Prompts {
	return NewPrompts(systemPrompt, []*Content{
		{
			Role:  RoleUser,
			Parts: []Part{Text(text)},
		},
	})
}

var _ State = Prompts{}

// AppendContent merges content into the last turn when the roles match.
func (p Prompts) AppendContent(content *Content) (State, error) {
	if content.Role == "" {
		return nil, fmt.Errorf("%w: %d parts", ErrEmptyRole, len(content.Parts))
	}

	ret := p
	ret.contents = slices.Clone(p.contents)
	if n := len(ret.contents); n > 0 {
		if merged, ok := ret.contents[n-1].Merge(content); ok {
			ret.contents[n-1] = merged
			return ret, nil
		}
	}
	ret.contents = append(ret.contents, content)
	return ret, nil
}

func (p Prompts) Contents() []*Content {
	return p.contents
}

func (p Prompts) SystemPrompt() string {
	return p.systemPrompt
}

func (p Prompts) Flush() (State, error) {
	return p, nil
}

func (p Prompts) Unwrap() State {
	return nil
}
