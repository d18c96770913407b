package api

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failure categories surfaced by the gateway
// and the components built on it.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidURL
	KindTokenNotFound
	KindEncoding
	KindRequestFailed
	KindInvalidResponse
	KindDecoding
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindInvalidURL:
		return "invalid_url"
	case KindTokenNotFound:
		return "token_not_found"
	case KindEncoding:
		return "encoding_error"
	case KindRequestFailed:
		return "request_failed"
	case KindInvalidResponse:
		return "invalid_response"
	case KindDecoding:
		return "decoding_error"
	case KindValidation:
		return "validation_error"
	default:
		return "unknown"
	}
}

// ErrInvalidURL indicates the endpoint could not be turned into a request URL.
type ErrInvalidURL struct {
	URL string
	Err error
}

func (e *ErrInvalidURL) Error() string {
	return fmt.Sprintf("invalid URL %q: %v", e.URL, e.Err)
}

func (e *ErrInvalidURL) Unwrap() error { return e.Err }

// ErrTokenNotFound indicates a protected call was attempted with no stored
// credential. No request is sent.
type ErrTokenNotFound struct {
	Err error
}

func (e *ErrTokenNotFound) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth token not found: %v", e.Err)
	}
	return "auth token not found"
}

func (e *ErrTokenNotFound) Unwrap() error { return e.Err }

// ErrEncoding indicates the request payload could not be serialized.
type ErrEncoding struct {
	Err error
}

func (e *ErrEncoding) Error() string {
	return fmt.Sprintf("encode request body: %v", e.Err)
}

func (e *ErrEncoding) Unwrap() error { return e.Err }

// ErrRequestFailed indicates a transport failure, including timeouts.
type ErrRequestFailed struct {
	Err error
}

func (e *ErrRequestFailed) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *ErrRequestFailed) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates a non-2xx status or a missing body.
type ErrInvalidResponse struct {
	StatusCode int
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid response: status %d", e.StatusCode)
}

// ErrDecoding indicates the response body did not match the expected shape.
type ErrDecoding struct {
	Err error
}

func (e *ErrDecoding) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *ErrDecoding) Unwrap() error { return e.Err }

// ValidationError is produced locally, before any request, when user input
// is incomplete. Message is suitable for display.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// KindOf classifies err. Errors outside the taxonomy are KindUnknown.
func KindOf(err error) Kind {
	var (
		invalidURL *ErrInvalidURL
		noToken    *ErrTokenNotFound
		encoding   *ErrEncoding
		failed     *ErrRequestFailed
		invalid    *ErrInvalidResponse
		decoding   *ErrDecoding
		validation *ValidationError
	)
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &invalidURL):
		return KindInvalidURL
	case errors.As(err, &noToken):
		return KindTokenNotFound
	case errors.As(err, &encoding):
		return KindEncoding
	case errors.As(err, &failed):
		return KindRequestFailed
	case errors.As(err, &invalid):
		return KindInvalidResponse
	case errors.As(err, &decoding):
		return KindDecoding
	case errors.As(err, &validation):
		return KindValidation
	default:
		return KindUnknown
	}
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		return invalid.StatusCode
	}
	return 0
}

// Display messages shared by the auth and dashboard flows.
const (
	MsgConnectivity = "Não foi possível conectar ao servidor."
	MsgGeneric      = "Ocorreu um erro. Tente novamente."
)

// UserMessage maps err to display text. Validation errors keep their own
// message; invalid responses get the connectivity message; everything else
// collapses to the generic retry message.
func UserMessage(err error) string {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Message
	}
	if KindOf(err) == KindInvalidResponse {
		return MsgConnectivity
	}
	return MsgGeneric
}
