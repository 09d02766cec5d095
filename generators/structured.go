package generators

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// FormatError reports model output that does not match the requested structure.
type FormatError struct {
	Reason string
	Output string
	Err    error
}

var _ error = new(FormatError)

func (f *FormatError) Error() string {
	if f.Err != nil {
		return "invalid model output: " + f.Reason + ": " + f.Err.Error()
	}
	return "invalid model output: " + f.Reason
}

func (f *FormatError) Unwrap() error {
	return f.Err
}

func NewFormatError(reason string, output string, err error) *FormatError {
	return &FormatError{
		Reason: reason,
		Output: output,
		Err:    err,
	}
}

// ExtractJSON returns the JSON object embedded in model output, tolerating code fences and surrounding prose.
func ExtractJSON(text string) ([]byte, bool) {
	text = strings.TrimSpace(text)
	if rest, ok := strings.CutPrefix(text, "```"); ok {
		// drop language tag
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			rest = rest[i+1:]
		}
		rest, _, _ = strings.Cut(rest, "```")
		text = strings.TrimSpace(rest)
	}
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return nil, false
	}
	return []byte(text[start : end+1]), true
}

// DecodeJSON validates model output against a CUE schema and decodes it into target.
// Any mismatch is a *FormatError.
func DecodeJSON(text string, schema string, target any) error {
	data, ok := ExtractJSON(text)
	if !ok {
		return NewFormatError("no json object", text, nil)
	}
	if !json.Valid(data) {
		return NewFormatError("malformed json", text, nil)
	}

	ctx := cuecontext.New()
	schemaValue := ctx.CompileString(schema)
	if err := schemaValue.Err(); err != nil {
		// programming error, not a model error
		return fmt.Errorf("compile schema: %w", err)
	}
	value := ctx.CompileBytes(data)
	if err := value.Err(); err != nil {
		return NewFormatError("malformed json", text, err)
	}
	unified := schemaValue.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return NewFormatError("schema mismatch", text, err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(target); err != nil {
		return NewFormatError("decode", text, err)
	}

	return nil
}

// ModelText concatenates the text parts produced after the first skip contents.
func ModelText(state State, skip int) string {
	var b strings.Builder
	contents := state.Contents()
	if skip > len(contents) {
		skip = len(contents)
	}
	for _, content := range contents[skip:] {
		if content.Role == RoleModel || content.Role == RoleAssistant {
			b.WriteString(content.Text())
		}
	}
	return b.String()
}

// GenerateJSON runs one generation under constraints and decodes the reply.
func GenerateJSON[T any](
	ctx context.Context,
	generator Generator,
	state State,
	schema string,
	target *T,
) (State, error) {
	skip := len(state.Contents())
	state, err := generator.Generate(ctx, state)
	if err != nil {
		return state, err
	}
	text := ModelText(state, skip)
	if err := DecodeJSON(text, schema, target); err != nil {
		return state, err
	}
	return state, nil
}
