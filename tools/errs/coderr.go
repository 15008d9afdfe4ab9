package errs

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// CodeError is the one error shape that crosses operation boundaries.
// Code picks the HTTP status / frame mapping, Msg is the client-facing
// text, Detail stays server-side context.
type CodeError struct {
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
	Detail string `json:"detail,omitempty"`
}

func NewCodeError(code int, msg string) *CodeError {
	return &CodeError{Code: code, Msg: msg}
}

func (e *CodeError) Error() string {
	v := make([]string, 0, 3)
	v = append(v, strconv.Itoa(e.Code), e.Msg)
	if e.Detail != "" {
		v = append(v, e.Detail)
	}
	return strings.Join(v, " ")
}

func (e *CodeError) clone() *CodeError {
	return &CodeError{Code: e.Code, Msg: e.Msg, Detail: e.Detail}
}

// WithMsg keeps the code but swaps the client-facing text. Used where a
// taxonomy class carries an endpoint-specific message, e.g. the gateway's
// "Recipient does not exist".
func (e *CodeError) WithMsg(msg string) *CodeError {
	c := e.clone()
	c.Msg = msg
	return c
}

// WithDetail appends server-side context without touching the client text.
func (e *CodeError) WithDetail(detail string) *CodeError {
	c := e.clone()
	if c.Detail == "" {
		c.Detail = detail
	} else {
		c.Detail += ", " + detail
	}
	return c
}

// Wrap attaches a cause, keeping the code and message.
func (e *CodeError) Wrap(err error) *CodeError {
	if err == nil {
		return e
	}
	return e.WithDetail(err.Error())
}

// Is matches by code so errors.Is works across WithMsg/WithDetail copies.
func (e *CodeError) Is(target error) bool {
	var ce *CodeError
	if !errors.As(target, &ce) {
		return false
	}
	return e.Code == ce.Code
}

// Error codes. Values double as the HTTP statuses they map to, except
// ErrConflict which the REST layer reports as 400 to match the original
// backend's behaviour.
const (
	CodeInvalidInput    = 400
	CodeUnauthenticated = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeConflict        = 409
	CodeStorage         = 503
)

var (
	ErrInvalidInput    = NewCodeError(CodeInvalidInput, "invalid input")
	ErrUnauthenticated = NewCodeError(CodeUnauthenticated, "unauthenticated")
	ErrForbidden       = NewCodeError(CodeForbidden, "forbidden")
	ErrNotFound        = NewCodeError(CodeNotFound, "not found")
	ErrConflict        = NewCodeError(CodeConflict, "conflict")
	ErrStorage         = NewCodeError(CodeStorage, "storage unavailable")
)

// HTTPStatus maps any error to the status the REST surface returns.
func HTTPStatus(err error) int {
	var ce *CodeError
	if !errors.As(err, &ce) {
		return http.StatusInternalServerError
	}
	switch ce.Code {
	case CodeInvalidInput, CodeConflict, CodeNotFound:
		// The original backend reports unknown users and duplicate
		// records as plain bad requests.
		return http.StatusBadRequest
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeStorage:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ClientMsg returns the text safe to put in a response body.
func ClientMsg(err error) string {
	var ce *CodeError
	if errors.As(err, &ce) {
		return ce.Msg
	}
	return "internal error"
}
