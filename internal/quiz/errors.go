package quiz

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a generation failure.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidRequest
	KindUnsupportedProvider
	KindConfiguration
	KindTransport
	KindAuth
	KindQuotaExceeded
	KindModelNotFound
	KindMalformedResponse
	KindUnexpectedShape
	KindInvalidQuestion
)

var kindNames = map[ErrorKind]string{
	KindUnknown:             "unknown",
	KindInvalidRequest:      "invalid_request",
	KindUnsupportedProvider: "unsupported_provider",
	KindConfiguration:       "configuration",
	KindTransport:           "transport",
	KindAuth:                "auth",
	KindQuotaExceeded:       "quota_exceeded",
	KindModelNotFound:       "model_not_found",
	KindMalformedResponse:   "malformed_response",
	KindUnexpectedShape:     "unexpected_shape",
	KindInvalidQuestion:     "invalid_question",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the single error type returned by the generation pipeline.
type Error struct {
	Kind ErrorKind

	// Provider is the display name of the provider involved, if any.
	Provider string

	// Index is the 0-based record index for KindInvalidQuestion, else -1.
	Index int

	// Detail is extra context appended to the summary.
	Detail string

	Err error
}

// Message is the user-facing summary for the error kind.
func (e *Error) Message() string {
	p := e.Provider
	if p == "" {
		p = "AI"
	}
	switch e.Kind {
	case KindInvalidRequest:
		return "Invalid quiz request"
	case KindUnsupportedProvider:
		return "Unsupported AI provider"
	case KindConfiguration:
		return fmt.Sprintf("%s provider is not configured correctly", p)
	case KindAuth:
		return fmt.Sprintf("Invalid %s API key. Please check your configuration.", p)
	case KindQuotaExceeded:
		return fmt.Sprintf("%s API quota exceeded. Please check your API key and billing.", p)
	case KindModelNotFound:
		return fmt.Sprintf("Model not found. Please check your %s model configuration.", p)
	case KindMalformedResponse:
		return "Failed to parse AI response as JSON"
	case KindUnexpectedShape:
		return "Unexpected response structure from AI"
	case KindInvalidQuestion:
		return fmt.Sprintf("Invalid question structure at index %d", e.Index)
	case KindTransport:
		return fmt.Sprintf("Failed to generate questions: %s request failed", p)
	default:
		return "Failed to generate questions"
	}
}

func (e *Error) Error() string {
	msg := e.Message()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of a pipeline error, or KindUnknown.
func KindOf(err error) ErrorKind {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Kind
	}
	return KindUnknown
}

func newError(kind ErrorKind, provider string, err error) *Error {
	return &Error{Kind: kind, Provider: provider, Index: -1, Err: err}
}

func invalidRequest(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidRequest, Index: -1, Detail: fmt.Sprintf(format, args...)}
}

func malformed(detail string, err error) *Error {
	return &Error{Kind: KindMalformedResponse, Index: -1, Detail: detail, Err: err}
}

func invalidQuestion(index int, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidQuestion, Index: index, Detail: fmt.Sprintf(format, args...)}
}
