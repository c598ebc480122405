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
	"strings"
)

// Param is one entry of a @mixin or @function signature.
type Param struct {
	Name       string
	Default    tokens
	HasDefault bool
	Variadic   bool
}

type Params []Param

func (pp Params) String() string {
	b := strings.Builder{}
	b.WriteString("(")
	for i, p := range pp {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("$")
		b.WriteString(p.Name)
		switch {
		case p.Variadic:
			b.WriteString("...")
		case p.HasDefault:
			b.WriteString(": ")
			p.Default.WriteString(&b)
		}
	}
	b.WriteString(")")
	return b.String()
}

func expectedAt(k kind, s *stream, open token) *Error {
	if s.eof() {
		return expected(k, open)
	}
	t := s.peek()
	return errorf(SyntaxError, t, "expected %q.", closers[k])
}

// parseParams reads a parameter list. s is positioned just inside the
// opening parenthesis open. The closing parenthesis is consumed, anything
// following it is left to the caller.
func parseParams(s *stream, open token) (Params, error) {
	var params Params
	seen := make(map[string]bool)
	for {
		s.skipSpace()
		if s.eof() {
			return nil, expected(tokenParensClose, open)
		}
		if s.peekKind() == tokenParensClose {
			s.next()
			return params, nil
		}
		if s.peekKind() != tokenDollar || s.peekN(1) != tokenIdentifier {
			return nil, expectedAt(tokenParensClose, s, open)
		}
		nameToken := s.next()
		p := Param{Name: normalizeName(s.next().v)}
		if seen[p.Name] {
			return nil, newError(SyntaxError, nameToken, "Duplicate argument.")
		}
		seen[p.Name] = true

		s.skipSpace()
		switch s.peekKind() {
		case tokenColon:
			s.next()
			s.skipSpace()
			def, err := readUntilTopLevel(s, tokenComma, tokenParensClose)
			if err != nil {
				return nil, err
			}
			def = trimSpace(def)
			if len(def) == 0 {
				return nil, newError(SyntaxError, s.peek(), "Expected expression.")
			}
			p.Default = def
			p.HasDefault = true
		case tokenDot:
			s.next()
			for j := 0; j < 2; j++ {
				if s.peekKind() != tokenDot {
					return nil, newError(SyntaxError, s.peek(), `expected ".".`)
				}
				s.next()
			}
			s.skipSpace()
			if s.peekKind() != tokenParensClose {
				return nil, expectedAt(tokenParensClose, s, open)
			}
			p.Variadic = true
		}
		params = append(params, p)

		s.skipSpace()
		switch s.peekKind() {
		case tokenComma:
			s.next()
		case tokenParensClose:
		case -1:
			return nil, expected(tokenParensClose, open)
		default:
			return nil, expectedAt(tokenParensClose, s, open)
		}
	}
}

// mustParseSignature parses the "($a, $b: 1)" signature of a builtin.
func mustParseSignature(sig string) Params {
	s := newStream(tokenize(sig, 0))
	s.skipSpace()
	open := s.next()
	if open.kind != tokenParensOpen {
		panic("signature must start with '(': " + sig)
	}
	params, err := parseParams(s, open)
	if err != nil {
		panic("bad signature " + sig + ": " + err.Error())
	}
	return params
}
