// Copyright (C) 2024 Temporalith, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package tserr defines the uniform error taxonomy used across the
// temporal engine: InvalidArgument, DivisionByZero, NotSupported,
// Cancelled, and Internal. Local functions return these through the
// normal (T, error) result carrier; dispatch and aggregation layers
// propagate them upward without translation.
package tserr

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies an *Error.
type Kind int

const (
	// InvalidArgument covers bad period bounds, non-normalized input
	// with normalization disabled, a wrong base type for an operator,
	// mismatched SRID/dimensionality, or an empty geometry argument.
	InvalidArgument Kind = iota
	// DivisionByZero is returned when a lifted division's denominator
	// is ever exactly zero on the synchronized domain.
	DivisionByZero
	// NotSupported is returned for combinations the engine declines to
	// define, e.g. a continuous float sum over linear sequences.
	NotSupported
	// Cancelled is returned when a caller-supplied context is done
	// during a long-running splice or restriction.
	Cancelled
	// Internal marks an invariant violation caught by a debug assert.
	Internal
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case DivisionByZero:
		return "division by zero"
	case NotSupported:
		return "not supported"
	case Cancelled:
		return "cancelled"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by the engine. It carries a
// Kind, a human-readable message, and an optional wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, tserr.DivisionByZero-like sentinels) work
// against the Kind rather than requiring identical *Error pointers.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// InvalidArg builds an InvalidArgument error.
func InvalidArg(format string, args ...any) *Error {
	return newf(InvalidArgument, format, args...)
}

// DivByZero builds a DivisionByZero error.
func DivByZero(format string, args ...any) *Error {
	return newf(DivisionByZero, format, args...)
}

// Unsupported builds a NotSupported error.
func Unsupported(format string, args ...any) *Error {
	return newf(NotSupported, format, args...)
}

// Internalf builds an Internal error, for invariant violations.
func Internalf(format string, args ...any) *Error {
	return newf(Internal, format, args...)
}

// Cancelledf builds a Cancelled error, optionally wrapping the
// context's own error.
func Cancelledf(cause error, format string, args ...any) *Error {
	e := newf(Cancelled, format, args...)
	e.Err = cause
	return e
}

// sentinels usable with errors.Is for callers that only care about kind.
var (
	ErrInvalidArgument = &Error{Kind: InvalidArgument}
	ErrDivisionByZero  = &Error{Kind: DivisionByZero}
	ErrNotSupported    = &Error{Kind: NotSupported}
	ErrCancelled       = &Error{Kind: Cancelled}
	ErrInternal        = &Error{Kind: Internal}
)

// KindOf extracts the Kind of err if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// CheckContext returns a Cancelled error if ctx is done, else nil.
// Long-running operators (splice over large batches, restriction of a
// large sequence-set by a large period-set) call this periodically so
// cancellation is cooperative rather than forced.
func CheckContext(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return Cancelledf(ctx.Err(), "operation cancelled")
	default:
		return nil
	}
}
