// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package apperr defines the error taxonomy shared by every layer of the
// system: the kind travels on the wire so that a client can branch on it
// without matching message text.
package apperr

import (
	"errors"
	"fmt"
)

// Kind names one of the stable error categories.
type Kind string

const (
	KindInterface    Kind = "interface"
	KindProgramming  Kind = "programming"
	KindNotSupported Kind = "not-supported"
	KindData         Kind = "data"
	KindIntegrity    Kind = "integrity"
	KindOperational  Kind = "operational"
	KindInternal     Kind = "internal"
	KindDatabase     Kind = "database"
)

// Error is a taxonomy-tagged error carrying a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func new(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Interface(format string, args ...interface{}) *Error {
	return new(KindInterface, format, args...)
}

func Programming(format string, args ...interface{}) *Error {
	return new(KindProgramming, format, args...)
}

func NotSupported(format string, args ...interface{}) *Error {
	return new(KindNotSupported, format, args...)
}

func Data(format string, args ...interface{}) *Error {
	return new(KindData, format, args...)
}

func Integrity(format string, args ...interface{}) *Error {
	return new(KindIntegrity, format, args...)
}

func Operational(format string, args ...interface{}) *Error {
	return new(KindOperational, format, args...)
}

func Internal(format string, args ...interface{}) *Error {
	return new(KindInternal, format, args...)
}

// Database reports a database-binding failure: an unknown database, a
// user already bound elsewhere, or a disconnect with no binding.
func Database(format string, args ...interface{}) *Error {
	return new(KindDatabase, format, args...)
}

// Wrap tags an existing error with a kind, preserving it as the cause.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	e := new(kind, format, args...)
	e.cause = cause
	return e
}

// As reports whether err is (or wraps) an *Error, returning it.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// KindOf returns the taxonomy kind of err, or KindInternal if err is not
// a tagged *Error.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}
