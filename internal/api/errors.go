package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind classifies how a request failed. Callers only ever need Message; Kind
// exists for logging and for tests.
type Kind int

const (
	// KindTransport means no HTTP response was received
	KindTransport Kind = iota + 1
	// KindAPI means the server answered with a status outside 2xx
	KindAPI
	// KindDecode means a 2xx response lacked a payload the operation requires
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAPI:
		return "api"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

const (
	msgUnreachable = "Could not reach the server"
	msgCancelled   = "Request cancelled"
	msgUnexpected  = "Unexpected response from server"
)

// RequestError is the single error shape returned by every Client operation
type RequestError struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	return e.Message
}

// UserMessage returns the message to show in a notification
func (e *RequestError) UserMessage() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a RequestError of the given kind
func IsKind(err error, kind Kind) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Kind == kind
}

func transportError(err error) *RequestError {
	msg := msgUnreachable
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		msg = msgCancelled
	}
	return &RequestError{Kind: KindTransport, Message: msg, Err: err}
}

func decodeError(what string) *RequestError {
	return &RequestError{Kind: KindDecode, Message: msgUnexpected, Err: fmt.Errorf("response missing %s", what)}
}

// statusError builds the error for a non-2xx response. The message comes from
// the body's "message" field, then its "error" field, then a generic fallback.
// An absent or malformed body is treated the same as a body without either field.
func statusError(status int, body []byte) *RequestError {
	msg := messageFromBody(body)
	if msg == "" {
		msg = fmt.Sprintf("Request failed with status %d", status)
	}
	return &RequestError{Kind: KindAPI, Status: status, Message: msg}
}

func messageFromBody(body []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if len(body) == 0 || json.Unmarshal(body, &payload) != nil {
		return ""
	}
	if s := rawString(payload.Message); s != "" {
		return s
	}
	return rawString(payload.Error)
}

// rawString returns the value of a JSON string, or "" for anything else
func rawString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return strings.TrimSpace(s)
}
