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
	"strings"
)

//go:generate stringer -type=kind

type kind int8

const (
	space kind = iota
	tokenNewline
	tokenAmp
	tokenAt
	tokenBackslash
	tokenBracketClose
	tokenBracketOpen
	tokenColon
	tokenComma
	tokenCurlyClose
	tokenCurlyOpen
	tokenDollar
	tokenDot
	tokenDoubleQuote
	tokenEq
	tokenExclamation
	tokenGt
	tokenHash
	tokenIdentifier
	tokenLt
	tokenMinus
	tokenNum
	tokenParensClose
	tokenParensOpen
	tokenPercent
	tokenPlus
	tokenSemi
	tokenSingleQuote
	tokenSlash
	tokenStar
	tokenTilde
	tokenOther
)

type token struct {
	kind
	f      int32
	line   int32
	column int32
	v      string
}

func (t token) String() string {
	return fmt.Sprintf("%s@%d:%d:%d: %q", t.kind, t.f, t.line, t.column, t.v)
}

func (t token) IsSpace() bool {
	return t.kind == space || t.kind == tokenNewline
}

func (t token) isQuote() bool {
	return t.kind == tokenSingleQuote || t.kind == tokenDoubleQuote
}

func (t token) isIdent(v string) bool {
	return t.kind == tokenIdentifier && t.v == v
}

type tokens []token

func (tt tokens) String() string {
	if len(tt) == 0 {
		return ""
	}
	if len(tt) == 1 {
		return tt[0].v
	}
	n := 0
	for _, t := range tt {
		n += len(t.v)
	}
	b := strings.Builder{}
	b.Grow(n)
	for _, t := range tt {
		b.WriteString(t.v)
	}
	return b.String()
}

func (tt tokens) WriteString(b *strings.Builder) {
	for _, t := range tt {
		b.WriteString(t.v)
	}
}

func (tt tokens) Eq(other tokens) bool {
	if len(tt) != len(other) {
		return false
	}
	for i, t := range tt {
		if t.kind != other[i].kind || t.v != other[i].v {
			return false
		}
	}
	return true
}

func consumeSpace(s tokens) int {
	for i, t := range s {
		if t.IsSpace() {
			continue
		}
		return i
	}
	return len(s)
}

func trimSpace(s tokens) tokens {
	s = s[consumeSpace(s):]
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].IsSpace() {
			continue
		}
		return s[:i+1]
	}
	return s
}
