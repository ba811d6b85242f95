// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package apperrors carries the error taxonomy shared by all services.
// Services raise the most specific kind they can determine and wrap causes
// without changing the kind; only the HTTP boundary maps kinds to status
// codes and user-visible messages.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
)

type Error struct {
	kind    Kind
	message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}
	return e.message
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) Kind() Kind {
	return e.kind
}

// Message is the user-visible message. The wrapped cause is never part of it.
func (e *Error) Message() string {
	return e.message
}

func newError(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

func NewValidationError(message string) *Error {
	return newError(KindValidation, message)
}

func NewAuthenticationError(message string) *Error {
	return newError(KindAuthentication, message)
}

func NewAuthorizationError(message string) *Error {
	return newError(KindAuthorization, message)
}

func NewNotFoundError(message string) *Error {
	return newError(KindNotFound, message)
}

func NewConflictError(message string) *Error {
	return newError(KindConflict, message)
}

// Wrap attaches a cause to e, preserving its kind and message.
func Wrap(e *Error, cause error) *Error {
	return &Error{kind: e.kind, message: e.message, err: cause}
}

// KindOf returns the kind of err, or KindUnknown when err does not carry one.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
