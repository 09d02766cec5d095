package plans

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reusee/armplan/generators"
	"github.com/reusee/e5"
)

type Kind uint8

const (
	KindEmptyInput Kind = iota + 1
	KindPromptTooLong
	KindParseYieldedNothing
	KindMappingYieldedNothing
	KindFormat
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindEmptyInput:
		return "empty input"
	case KindPromptTooLong:
		return "prompt too long"
	case KindParseYieldedNothing:
		return "parse yielded nothing"
	case KindMappingYieldedNothing:
		return "mapping yielded nothing"
	case KindFormat:
		return "format"
	case KindUnknown:
		return "unknown"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

const (
	MessageEmptyInput            = "Prompt cannot be empty."
	MessagePromptTooLong         = "Prompt is too long."
	MessageParseYieldedNothing   = "Could not parse any motion steps from the prompt. Try being more specific."
	MessageMappingYieldedNothing = "Could not map the parsed steps to motion templates."
	MessageFormat                = "The AI returned an invalid format. Please try rephrasing your prompt."
	MessageUnknown               = "An unexpected error occurred. Please try again."
)

// Error is a terminal plan generation failure. Error() is the message shown to users.
type Error struct {
	Kind Kind
	Err  error
}

var _ error = new(Error)

func (e *Error) Error() string {
	switch e.Kind {
	case KindEmptyInput:
		return MessageEmptyInput
	case KindPromptTooLong:
		return MessagePromptTooLong
	case KindParseYieldedNothing:
		return MessageParseYieldedNothing
	case KindMappingYieldedNothing:
		return MessageMappingYieldedNothing
	case KindFormat:
		return MessageFormat
	}
	if msg := withoutStacktrace(e.Err); msg != "" {
		return msg
	}
	return MessageUnknown
}

// withoutStacktrace renders err with the e5 stack frames removed.
// The frames stay in the logged error.
func withoutStacktrace(err error) string {
	switch err := err.(type) {
	case nil, *e5.Stacktrace:
		return ""
	case interface{ Unwrap() []error }:
		var lines []string
		for _, e := range err.Unwrap() {
			if msg := withoutStacktrace(e); msg != "" {
				lines = append(lines, msg)
			}
		}
		return strings.Join(lines, "\n")
	}
	msg := err.Error()
	if inner := errors.Unwrap(err); inner != nil {
		if raw := inner.Error(); raw != "" {
			msg = strings.Replace(msg, raw, withoutStacktrace(inner), 1)
		}
	}
	return strings.TrimSpace(msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Classify maps errors from the pipeline stages to an *Error by type.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var planErr *Error
	if errors.As(err, &planErr) {
		return planErr
	}
	var formatErr *generators.FormatError
	if errors.As(err, &formatErr) {
		return &Error{
			Kind: KindFormat,
			Err:  err,
		}
	}
	return &Error{
		Kind: KindUnknown,
		Err:  err,
	}
}
