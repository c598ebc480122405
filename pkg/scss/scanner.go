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
)

// stream is a cursor over a token slice.
type stream struct {
	tt tokens
	i  int
}

func newStream(tt tokens) *stream {
	return &stream{tt: tt}
}

func (s *stream) eof() bool {
	return s.i >= len(s.tt)
}

// peekKind returns the kind of the next token, or -1 at the end.
func (s *stream) peekKind() kind {
	if s.eof() {
		return -1
	}
	return s.tt[s.i].kind
}

func (s *stream) peek() token {
	if s.eof() {
		return s.last()
	}
	return s.tt[s.i]
}

// peekN returns the kind of the token n positions ahead, or -1.
func (s *stream) peekN(n int) kind {
	if s.i+n >= len(s.tt) {
		return -1
	}
	return s.tt[s.i+n].kind
}

func (s *stream) next() token {
	t := s.peek()
	if !s.eof() {
		s.i++
	}
	return t
}

func (s *stream) skipSpace() {
	s.i += consumeSpace(s.tt[min(s.i, len(s.tt)):])
}

// last returns the final token for errors at the end of input.
func (s *stream) last() token {
	if len(s.tt) == 0 {
		return token{}
	}
	t := s.tt[len(s.tt)-1]
	t.column += int32(len(t.v))
	t.v = ""
	return t
}

func (s *stream) rest() tokens {
	return s.tt[min(s.i, len(s.tt)):]
}

var closers = map[kind]string{
	tokenParensClose:  ")",
	tokenBracketClose: "]",
	tokenCurlyClose:   "}",
	tokenDoubleQuote:  "\"",
	tokenSingleQuote:  "'",
}

func expected(k kind, t token) *Error {
	return newError(UnterminatedDelimiter, t, fmt.Sprintf("expected %q.", closers[k]))
}

// readUntilClosingParen consumes up to and including the ")" matching open.
func readUntilClosingParen(s *stream, open token) (tokens, error) {
	return readUntilClosing(s, open, tokenParensOpen, tokenParensClose)
}

func readUntilClosingSquare(s *stream, open token) (tokens, error) {
	return readUntilClosing(s, open, tokenBracketOpen, tokenBracketClose)
}

func readUntilClosingCurly(s *stream, open token) (tokens, error) {
	return readUntilClosing(s, open, tokenCurlyOpen, tokenCurlyClose)
}

func readUntilClosing(s *stream, open token, openK, closeK kind) (tokens, error) {
	start := s.i
	depth := 1
	for !s.eof() {
		t := s.next()
		switch t.kind {
		case tokenBackslash:
			s.next()
		case tokenSingleQuote, tokenDoubleQuote:
			if _, err := readUntilClosingQuote(s, t); err != nil {
				return nil, err
			}
		case openK:
			depth++
		case closeK:
			depth--
			if depth == 0 {
				return s.tt[start:s.i], nil
			}
		}
	}
	return nil, expected(closeK, open)
}

// readUntilClosingQuote consumes a quoted string body and its closing quote.
// Only an unescaped quote of the same kind ends the string.
func readUntilClosingQuote(s *stream, open token) (tokens, error) {
	start := s.i
	for !s.eof() {
		t := s.next()
		switch {
		case t.kind == tokenBackslash:
			s.next()
		case t.kind == open.kind:
			return s.tt[start:s.i], nil
		case t.kind == tokenNewline:
			return nil, expected(open.kind, open)
		case t.kind == tokenHash && s.peekKind() == tokenCurlyOpen:
			if _, err := readUntilClosingCurly(s, s.next()); err != nil {
				return nil, err
			}
		}
	}
	return nil, expected(open.kind, open)
}

// skipNested consumes the remainder of the nested construct opened by t.
// It is a no-op for tokens that do not open a construct.
func skipNested(s *stream, t token) error {
	var err error
	switch t.kind {
	case tokenBackslash:
		s.next()
	case tokenSingleQuote, tokenDoubleQuote:
		_, err = readUntilClosingQuote(s, t)
	case tokenParensOpen:
		_, err = readUntilClosingParen(s, t)
	case tokenBracketOpen:
		_, err = readUntilClosingSquare(s, t)
	case tokenCurlyOpen:
		_, err = readUntilClosingCurly(s, t)
	}
	return err
}

// readUntilTopLevel consumes tokens up to, but excluding, the first token of
// one of the given kinds that is not nested in brackets or quotes.
func readUntilTopLevel(s *stream, stops ...kind) (tokens, error) {
	start := s.i
	for !s.eof() {
		k := s.peekKind()
		if k == tokenHash && s.peekN(1) == tokenCurlyOpen {
			s.next()
			if _, err := readUntilClosingCurly(s, s.next()); err != nil {
				return nil, err
			}
			continue
		}
		for _, stop := range stops {
			if k == stop {
				return s.tt[start:s.i], nil
			}
		}
		if err := skipNested(s, s.next()); err != nil {
			return nil, err
		}
	}
	return s.tt[start:s.i], nil
}

// splitTopLevel cuts s at every k that is not nested in brackets, quotes or
// interpolation.
func splitTopLevel(s tokens, k kind) []tokens {
	var parts []tokens
	st := stream{tt: s}
	start := 0
	for !st.eof() {
		t := st.next()
		if t.kind == k {
			parts = append(parts, s[start:st.i-1])
			start = st.i
			continue
		}
		if err := skipNested(&st, t); err != nil {
			break
		}
	}
	return append(parts, s[start:])
}

// indexTopLevel returns the position of the first k outside of brackets,
// quotes and interpolation, or -1.
func indexTopLevel(s tokens, k kind) int {
	parts := splitTopLevel(s, k)
	if len(parts) == 1 {
		return -1
	}
	return len(parts[0])
}
