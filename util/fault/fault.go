// Package fault carries the error kinds services raise and the single
// kind-to-HTTP-status table controllers dispatch on.
package fault

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	NotFound         Kind = "NOT_FOUND"
	Ownership        Kind = "OWNERSHIP_VIOLATION"
	InvalidInput     Kind = "INVALID_INPUT"
	DuplicateEmail   Kind = "DUPLICATE_EMAIL"
	UnsupportedState Kind = "UNSUPPORTED_STATE"
	AlreadyApproved  Kind = "ALREADY_APPROVED"
)

type kindError struct {
	kind Kind
	msg  string
}

func (e kindError) Error() string { return e.msg }
func (e kindError) Kind() Kind    { return e.kind }

func New(kind Kind, msg string) error {
	return kindError{kind: kind, msg: msg}
}

func Newf(kind Kind, format string, args ...any) error {
	return kindError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind, or "" for errors raised outside the taxonomy.
func KindOf(err error) Kind {
	var ke interface{ Kind() Kind }
	if errors.As(err, &ke) {
		return ke.Kind()
	}
	return ""
}

var statusByKind = map[Kind]int{
	NotFound:         http.StatusNotFound,
	Ownership:        http.StatusNotFound,
	InvalidInput:     http.StatusBadRequest,
	DuplicateEmail:   http.StatusConflict,
	UnsupportedState: http.StatusBadRequest,
	AlreadyApproved:  http.StatusBadRequest,
}

// HTTPStatus maps a kind to its external status. Unknown kinds are
// treated as internal failures.
func HTTPStatus(kind Kind) int {
	if s, ok := statusByKind[kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}
