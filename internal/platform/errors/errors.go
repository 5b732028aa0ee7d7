// Package errors defines typed application errors and their HTTP mapping.
package errors

import (
	stderrors "errors"
	"net/http"
	"strings"
)

// Kind classifies application failures for consistent HTTP mapping.
type Kind string

const (
	// KindUnknown covers failures with no better classification.
	KindUnknown Kind = "unknown"
	// KindInvalidInput marks malformed or unparseable caller input.
	KindInvalidInput Kind = "invalid_input"
	// KindUnavailable marks transport failures reaching the gateway
	// (connection refused, timeout, DNS).
	KindUnavailable Kind = "unavailable"
	// KindUpstream marks a non-success response from the gateway.
	KindUpstream Kind = "upstream"
	// KindPrecondition marks an operation whose gating state is missing.
	KindPrecondition Kind = "precondition"
	// KindNotFound marks a missing resource.
	KindNotFound Kind = "not_found"
)

// Error is a typed application failure.
type Error struct {
	Kind    Kind
	Message string
}

// Error renders the human-readable message.
func (e Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// E builds a typed Error.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: strings.TrimSpace(message)}
}

// KindOf returns the kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return KindUnknown
	}
	return appErr.Kind
}

// HTTPStatus maps an error to an HTTP status code.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindPrecondition:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
