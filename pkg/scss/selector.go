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

// splitSelectorList cuts s at commas outside of brackets, parentheses and
// quotes.
func splitSelectorList(s string) []string {
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
		case c == ',' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

func isCombinator(c byte) bool {
	return c == '>' || c == '+' || c == '~'
}

// normalizeSelector collapses whitespace and puts single spaces around
// combinators.
func normalizeSelector(s string) string {
	b := strings.Builder{}
	b.Grow(len(s))
	depth := 0
	var quote byte
	pendingSpace := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			b.WriteByte(c)
			if c == '\\' && i+1 < len(s) {
				i++
				b.WriteByte(s[i])
			} else if c == quote {
				quote = 0
			}
			continue
		}
		if depth == 0 && (isSpaceByte(c) || c == '\n') {
			pendingSpace = b.Len() > 0
			continue
		}
		if depth == 0 && isCombinator(c) {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte(c)
			b.WriteByte(' ')
			pendingSpace = false
			for i+1 < len(s) && (isSpaceByte(s[i+1]) || s[i+1] == '\n') {
				i++
			}
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		switch c {
		case '"', '\'':
			quote = c
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		}
		b.WriteByte(c)
	}
	return b.String()
}

// hasParentRef reports whether s references the parent selector outside of
// quotes.
func hasParentRef(s string) bool {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '&':
			return true
		}
	}
	return false
}

func replaceParentRef(s, parent string) string {
	b := strings.Builder{}
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' && i+1 < len(s) {
				b.WriteByte(c)
				i++
				c = s[i]
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '&':
			b.WriteString(parent)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// resolveSelector expands a selector written below parents. Without an
// explicit "&" each selector is nested as a descendant of every parent.
// implicitParent is false for @at-root selectors.
func (e *evalContext) resolveSelector(head tokens, parents []string, implicitParent bool) ([]string, error) {
	t := head[0]
	text, err := e.substitute(head)
	if err != nil {
		return nil, err
	}
	var out []string
	var children []string
	for _, part := range splitSelectorList(text) {
		sel := normalizeSelector(part)
		if sel == "" {
			return nil, newError(SyntaxError, t, "expected selector.")
		}
		children = append(children, sel)
	}
	if len(parents) == 0 {
		for _, sel := range children {
			if hasParentRef(sel) {
				return nil, newError(
					SyntaxError, t,
					"Top-level selectors may not contain the parent selector \"&\".",
				)
			}
		}
		return children, nil
	}
	for _, parent := range parents {
		for _, sel := range children {
			switch {
			case hasParentRef(sel):
				out = append(out, replaceParentRef(sel, parent))
			case implicitParent:
				out = append(out, parent+" "+sel)
			default:
				out = append(out, sel)
			}
		}
	}
	return dedupe(out), nil
}

func dedupe(s []string) []string {
	seen := make(map[string]bool, len(s))
	out := s[:0]
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// visibleSelectors drops placeholder selectors, they only exist for @extend.
func visibleSelectors(s []string) []string {
	out := make([]string, 0, len(s))
	for _, sel := range s {
		if !isPlaceholder(sel) {
			out = append(out, sel)
		}
	}
	return out
}

func isPlaceholder(sel string) bool {
	for i := strings.IndexByte(sel, '%'); i != -1 && i+1 < len(sel); {
		if isNameStart(sel[i+1]) {
			return true
		}
		j := strings.IndexByte(sel[i+1:], '%')
		if j == -1 {
			break
		}
		i += j + 1
	}
	return false
}
