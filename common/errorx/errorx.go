package errorx

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	Internal Kind = iota
	Validation
	NotFound
	Unauthorized
	// Forbidden 已登录但无权操作他人的数据，属于Unauthorized的一种
	Forbidden
	Conflict
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case Conflict:
		return "conflict"
	default:
		return "internal"
	}
}

type Error struct {
	Kind Kind
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, code string, err error) *Error {
	return &Error{Kind: kind, Code: code, Err: err}
}

func Newf(kind Kind, code string, format string, args ...any) *Error {
	return New(kind, code, fmt.Errorf(format, args...))
}

func NewValidation(format string, args ...any) *Error {
	return Newf(Validation, "invalid_argument", format, args...)
}

func NewNotFound(format string, args ...any) *Error {
	return Newf(NotFound, "not_found", format, args...)
}

func NewConflict(format string, args ...any) *Error {
	return Newf(Conflict, "conflict", format, args...)
}

func NewForbidden(format string, args ...any) *Error {
	return Newf(Forbidden, "forbidden", format, args...)
}

// ErrUnauthorized 未登录用户调用写接口
var ErrUnauthorized = New(Unauthorized, "unauthorized", errors.New("sign in required"))

// KindOf 非*Error按Internal处理
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is Forbidden同样满足Is(err, Unauthorized)
func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	k := KindOf(err)
	if k == kind {
		return true
	}
	return kind == Unauthorized && k == Forbidden
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf 返回给调用方的错误码
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Code != "" {
		return e.Code
	}
	return "internal"
}
