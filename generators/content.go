package generators

import "strings"

// Content is one turn of a conversation.
type Content struct {
	Role  Role
	Parts []Part
}

// Text concatenates the text parts. Thoughts and metadata parts are skipped.
func (c *Content) Text() string {
	var b strings.Builder
	for _, part := range c.Parts {
		if text, ok := part.(Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}

// joinParts appends part to parts, concatenating adjacent texts and adjacent thoughts.
func joinParts(parts []Part, part Part) []Part {
	if len(parts) > 0 {
		switch prev := parts[len(parts)-1].(type) {
		case Text:
			if text, ok := part.(Text); ok {
				parts[len(parts)-1] = prev + text
				return parts
			}
		case Thought:
			if thought, ok := part.(Thought); ok {
				parts[len(parts)-1] = prev + thought
				return parts
			}
		}
	}
	return append(parts, part)
}

// Merge joins two contents of the same role. ok is false for different roles.
func (c Content) Merge(c2 *Content) (merged *Content, ok bool) {
	if c.Role != c2.Role {
		return nil, false
	}
	var parts []Part
	for _, part := range c.Parts {
		parts = joinParts(parts, part)
	}
	for _, part := range c2.Parts {
		parts = joinParts(parts, part)
	}
	return &Content{
		Role:  c.Role,
		Parts: parts,
	}, true
}
