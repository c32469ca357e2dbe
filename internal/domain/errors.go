package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a business failure. The HTTP boundary maps each kind to a status code.
type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindBadRequest Kind = "bad_request"
	KindConflict   Kind = "conflict"
	KindForbidden  Kind = "forbidden"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrBadRequest = errors.New("bad request")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")

	ErrEditConflict        = &Error{Kind: KindConflict, Message: "edit conflict"}
	ErrSeatAlreadyReserved = &Error{Kind: KindConflict, Message: "seat(s) are already reserved"}
	ErrSessionCodeTaken    = &Error{Kind: KindConflict, Message: "session code is already in use"}
	ErrActiveCartExists    = &Error{Kind: KindConflict, Message: "an active cart already exists"}
)

var kindSentinels = map[Kind]error{
	KindNotFound:   ErrNotFound,
	KindBadRequest: ErrBadRequest,
	KindConflict:   ErrConflict,
	KindForbidden:  ErrForbidden,
}

// Error is a typed business error raised where a rule is violated and propagated unchanged.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return kindSentinels[e.Kind]
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...any) error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of err, or "" for infrastructure failures.
func KindOf(err error) Kind {
	for kind, sentinel := range kindSentinels {
		if errors.Is(err, sentinel) {
			return kind
		}
	}

	return ""
}

// SeatValidationError aggregates every violation found while validating a seat selection,
// so a client can fix all of them in a single round trip.
type SeatValidationError struct {
	Missing         []string
	OutsideLocation []string
	Unavailable     []string
}

func (e *SeatValidationError) HasViolations() bool {
	return len(e.Missing) > 0 || len(e.OutsideLocation) > 0 || len(e.Unavailable) > 0
}

func (e *SeatValidationError) Error() string {
	var parts []string

	if len(e.Missing) > 0 {
		parts = append(parts, "seats not found: "+strings.Join(e.Missing, ", "))
	}
	if len(e.OutsideLocation) > 0 {
		parts = append(parts, "seats outside the event location: "+strings.Join(e.OutsideLocation, ", "))
	}
	if len(e.Unavailable) > 0 {
		parts = append(parts, "seats already reserved: "+strings.Join(e.Unavailable, ", "))
	}

	return strings.Join(parts, "; ")
}

// Unwrap classifies the report: a selection that only collides with existing reservations is a
// conflict, anything structurally wrong with it is a bad request.
func (e *SeatValidationError) Unwrap() error {
	if len(e.Missing) == 0 && len(e.OutsideLocation) == 0 {
		return ErrConflict
	}

	return ErrBadRequest
}
