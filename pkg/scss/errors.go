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

package scss

import (
	"fmt"

	"github.com/das7pad/scss-go/pkg/errors"
)

type ErrorKind int8

const (
	UnterminatedDelimiter ErrorKind = iota
	SyntaxError
	MissingArgument
	SurplusArgument
	NamedArgumentNotAllowed
	InvalidSplatTarget
	TypeMismatch
	ImportNotFound
	UndefinedVariable
	UndefinedCallable
	ImportCycle
	UserError
)

var errorKindNames = [...]string{
	UnterminatedDelimiter:   "UnterminatedDelimiter",
	SyntaxError:             "SyntaxError",
	MissingArgument:         "MissingArgument",
	SurplusArgument:         "SurplusArgument",
	NamedArgumentNotAllowed: "NamedArgumentNotAllowed",
	InvalidSplatTarget:      "InvalidSplatTarget",
	TypeMismatch:            "TypeMismatch",
	ImportNotFound:          "ImportNotFound",
	UndefinedVariable:       "UndefinedVariable",
	UndefinedCallable:       "UndefinedCallable",
	ImportCycle:             "ImportCycle",
	UserError:               "UserError",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(errorKindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return errorKindNames[k]
}

func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ErrorKind) UnmarshalText(b []byte) error {
	for i, s := range errorKindNames {
		if s == string(b) {
			*k = ErrorKind(i)
			return nil
		}
	}
	return &errors.ValidationError{Msg: "unknown error kind " + string(b)}
}

type Span struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// Error is a compile error pointing at the offending source location.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Span    Span      `json:"span"`

	f int32
}

func (e *Error) Error() string {
	if e.Span.Line == 0 {
		return "Error: " + e.Message
	}
	return "Error: " + e.Message + "\n --> " + e.Span.String()
}

func (e *Error) IsUserFacing() {}

func newError(k ErrorKind, t token, msg string) *Error {
	return &Error{
		Kind:    k,
		Message: msg,
		Span:    Span{Line: int(t.line), Column: int(t.column)},
		f:       t.f,
	}
}

func errorf(k ErrorKind, t token, format string, a ...interface{}) *Error {
	return newError(k, t, fmt.Sprintf(format, a...))
}

// IsKind reports whether err is a compile error of kind k.
func IsKind(err error, k ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func (c *compilation) annotate(err error) error {
	var e *Error
	if !errors.As(err, &e) || e.f == 0 || e.Span.File != "" {
		return err
	}
	if e.f == inMemoryFile {
		e.Span.File = c.imports[0]
	} else {
		e.Span.File = c.r.ResolveFile(e.f)
	}
	return err
}
