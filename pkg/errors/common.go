// Golang port of Overleaf
// Copyright (C) 2026 Jakob Ackermann <das7pad@outlook.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package errors

import (
	"errors"
)

// UserFacingError marks errors whose message is safe to show to clients.
type UserFacingError interface {
	IsUserFacing()
}

type Causer interface {
	Cause() error
}

func IsUserFacingError(err error) bool {
	_, ok := GetCause(err).(UserFacingError)
	return ok
}

func GetPublicMessage(err error, fallback string) string {
	if IsUserFacingError(err) {
		// Include tags
		return err.Error()
	}
	return fallback
}

type TaggedError struct {
	msg   string
	cause error
}

func (t *TaggedError) Error() string {
	return t.msg + ": " + t.cause.Error()
}

func (t *TaggedError) Cause() error {
	return t.cause
}

func (t *TaggedError) Unwrap() error {
	return t.cause
}

func Tag(err error, msg string) *TaggedError {
	return &TaggedError{msg: msg, cause: err}
}

func GetCause(err error) error {
	if causer, ok := err.(Causer); ok {
		return GetCause(causer.Cause())
	}
	return err
}

type ValidationError struct {
	Msg string
}

func (v *ValidationError) Error() string {
	return v.Msg
}

func (v *ValidationError) IsUserFacing() {}

func IsValidationError(err error) bool {
	_, ok := GetCause(err).(*ValidationError)
	return ok
}

type NotFoundError struct{}

func (e *NotFoundError) Error() string {
	return "not found"
}

func (e *NotFoundError) IsUserFacing() {}

func IsNotFoundError(err error) bool {
	_, ok := GetCause(err).(*NotFoundError)
	return ok
}

type BodyTooLargeError struct{}

func (e *BodyTooLargeError) Error() string {
	return "source body too large"
}

func (e *BodyTooLargeError) IsUserFacing() {}

func IsBodyTooLargeError(err error) bool {
	_, ok := GetCause(err).(*BodyTooLargeError)
	return ok
}

// New is a re-export of the built-in errors.New function.
var New = errors.New

// As is a re-export of the built-in errors.As function.
var As = errors.As

// Is is a re-export of the built-in errors.Is function.
var Is = errors.Is
