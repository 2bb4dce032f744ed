package errors

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks. A *ReasoningError unwraps to one of these.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingField    = errors.New("missing field")
	ErrUnknownTaskType = errors.New("unknown task type")
)

type ErrorKind string

const (
	KindInvalidInput    ErrorKind = "InvalidInput"
	KindMissingField    ErrorKind = "MissingField"
	KindUnknownTaskType ErrorKind = "UnknownTaskType"
)

// ReasoningError is returned by the reasoning strategies and the task dispatcher.
type ReasoningError struct {
	Kind   ErrorKind
	Detail string
}

func (e *ReasoningError) Error() string {
	switch e.Kind {
	case KindUnknownTaskType:
		return fmt.Sprintf("unknown task type: %s", e.Detail)
	case KindMissingField:
		return fmt.Sprintf("missing field: %s", e.Detail)
	default:
		return fmt.Sprintf("invalid input: %s", e.Detail)
	}
}

func (e *ReasoningError) Unwrap() error {
	switch e.Kind {
	case KindUnknownTaskType:
		return ErrUnknownTaskType
	case KindMissingField:
		return ErrMissingField
	default:
		return ErrInvalidInput
	}
}

func NewInvalidInput(detail string) error {
	return &ReasoningError{Kind: KindInvalidInput, Detail: detail}
}

func NewMissingField(field string) error {
	return &ReasoningError{Kind: KindMissingField, Detail: field}
}

func NewUnknownTaskType(taskType string) error {
	return &ReasoningError{Kind: KindUnknownTaskType, Detail: taskType}
}

// KindOf reports the kind of a reasoning error anywhere in the chain, or "" if there is none.
func KindOf(err error) ErrorKind {
	var reasoningErr *ReasoningError
	if errors.As(err, &reasoningErr) {
		return reasoningErr.Kind
	}
	return ""
}
