package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/padelmixer/padelmixer-admin/internal/model"
)

// Sentinel errors a normalized *Error unwraps to
var (
	ErrTransport = errors.New("transport failure")
	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not found")
	ErrServer    = errors.New("internal error")
	ErrRequest   = errors.New("request failed")
)

// Kind tells whether a failure happened before or after reaching the server
type Kind int

const (
	// KindClient covers network failures and anything raised before a response arrived
	KindClient Kind = iota
	// KindServer covers responses with an error status
	KindServer
)

func (k Kind) String() string {
	if k == KindServer {
		return "server"
	}
	return "client"
}

// Error is the single normalized error every failed request produces
type Error struct {
	Kind       Kind
	Status     int
	StatusText string
	Code       string
	Message    string
	Body       []byte
	cause      error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the sentinel for the error class and, for client errors, the cause
func (e *Error) Unwrap() []error {
	if e.Kind == KindClient {
		if e.cause != nil {
			return []error{ErrTransport, e.cause}
		}
		return []error{ErrTransport}
	}
	switch {
	case e.Status == http.StatusUnauthorized:
		return []error{model.ErrSessionExpired}
	case e.Status == http.StatusForbidden:
		return []error{ErrForbidden}
	case e.Status == http.StatusNotFound:
		return []error{ErrNotFound}
	case e.Status >= http.StatusInternalServerError:
		return []error{ErrServer}
	}
	return []error{ErrRequest}
}

// envelope matches both {"error":{"code","message"}} and {"message"} bodies
type envelope struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

func newClientError(cause error) *Error {
	return &Error{
		Kind:    KindClient,
		Message: "client error: " + cause.Error(),
		cause:   cause,
	}
}

func newServerError(status int, body []byte) *Error {
	e := &Error{
		Kind:       KindServer,
		Status:     status,
		StatusText: http.StatusText(status),
		Body:       body,
	}

	var env envelope
	serverMessage := ""
	if len(body) > 0 && json.Unmarshal(body, &env) == nil {
		if env.Error != nil {
			e.Code = env.Error.Code
			serverMessage = env.Error.Message
		} else {
			serverMessage = env.Message
		}
	}

	switch status {
	case http.StatusUnauthorized:
		e.Message = model.ErrSessionExpired.Error()
	case http.StatusForbidden:
		e.Message = "forbidden"
	case http.StatusNotFound:
		e.Message = "not found"
	case http.StatusInternalServerError:
		e.Message = "internal error"
	default:
		if serverMessage != "" {
			e.Message = serverMessage
		} else {
			e.Message = fmt.Sprintf("error %d: %s", status, e.StatusText)
		}
	}
	return e
}
