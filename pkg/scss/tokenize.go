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
	"sync"
	"unicode/utf8"

	"github.com/hashicorp/golang-lru/v2"

	"github.com/das7pad/scss-go/pkg/errors"
)

type cachedTokens struct {
	s  string
	tt tokens
}

// inMemoryFile is the file id of a source that was passed in directly.
const inMemoryFile int32 = -1

func newTokenizer(cacheSize int) (*tokenizer, error) {
	r := &tokenizer{
		files: make(map[string]int32),
	}
	if cacheSize > 0 {
		c, err := lru.New[int32, cachedTokens](cacheSize)
		if err != nil {
			return nil, errors.Tag(err, "init token cache")
		}
		r.cache = c
	}
	return r, nil
}

// tokenizer owns the file registry of one or more compilations. Token
// positions reference files by id, ResolveFile maps them back to a path.
type tokenizer struct {
	mu    sync.RWMutex
	files map[string]int32
	names []string
	cache *lru.Cache[int32, cachedTokens]
}

func (r *tokenizer) ResolveFile(f int32) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f < 1 || int(f) > len(r.names) {
		return ""
	}
	return r.names[f-1]
}

// Len returns the number of registered files.
func (r *tokenizer) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}

func (r *tokenizer) fileId(name string) int32 {
	r.mu.RLock()
	fId, ok := r.files[name]
	r.mu.RUnlock()
	if ok {
		return fId
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if fId, ok = r.files[name]; !ok {
		r.names = append(r.names, name)
		fId = int32(len(r.names))
		r.files[name] = fId
	}
	return fId
}

// Tokenize returns the tokens of s. Returned tokens are shared with other
// compilations and must not be modified.
func (r *tokenizer) Tokenize(s, name string) (tokens, int32) {
	fId := r.fileId(name)
	if r.cache == nil {
		return tokenize(s, fId), fId
	}
	if cached, ok := r.cache.Get(fId); ok && cached.s == s {
		return cached.tt, fId
	}
	tt := tokenize(s, fId)
	r.cache.Add(fId, cachedTokens{s: s, tt: tt})
	return tt, fId
}

type lexMode struct {
	quote byte
	url   bool
	depth int
}

type lexer struct {
	s        string
	i        int
	f        int32
	line     int32
	column   int32
	out      tokens
	modes    []lexMode
	afterNum bool
}

func tokenize(s string, f int32) tokens {
	if len(s) == 0 {
		return nil
	}
	l := lexer{s: s, f: f, line: 1, column: 1}
	for l.i < len(l.s) {
		m := l.mode()
		switch {
		case m.quote != 0:
			l.lexQuoted(m.quote)
		case m.url:
			l.lexURL()
		default:
			l.lexCode()
		}
	}
	return l.out
}

func (l *lexer) mode() lexMode {
	if len(l.modes) == 0 {
		return lexMode{}
	}
	return l.modes[len(l.modes)-1]
}

func (l *lexer) push(m lexMode) {
	l.modes = append(l.modes, m)
}

func (l *lexer) pop() {
	if len(l.modes) > 0 {
		l.modes = l.modes[:len(l.modes)-1]
	}
}

func (l *lexer) peekAt(off int) byte {
	if l.i+off >= len(l.s) {
		return 0
	}
	return l.s[l.i+off]
}

func (l *lexer) advance(n int) {
	for ; n > 0 && l.i < len(l.s); n-- {
		if l.s[l.i] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.i++
	}
}

// emitN consumes n bytes into a token of kind k.
func (l *lexer) emitN(k kind, n int) {
	start, line, column := l.i, l.line, l.column
	l.advance(n)
	l.out = append(l.out, token{
		kind:   k,
		f:      l.f,
		line:   line,
		column: column,
		v:      l.s[start:l.i],
	})
	l.afterNum = k == tokenNum
}

func (l *lexer) emitWhile(k kind, ok func(c byte) bool) {
	n := 0
	for l.i+n < len(l.s) && ok(l.s[l.i+n]) {
		n++
	}
	if n == 0 {
		n = 1
	}
	l.emitN(k, n)
}

func (l *lexer) startInterpolation() {
	l.emitN(tokenHash, 1)
	l.emitN(tokenCurlyOpen, 1)
	l.push(lexMode{depth: 1})
}

func (l *lexer) lexQuoted(q byte) {
	c := l.s[l.i]
	switch {
	case c == '\\':
		l.emitN(tokenBackslash, 1)
		if l.i < len(l.s) {
			_, n := utf8.DecodeRuneInString(l.s[l.i:])
			l.emitN(tokenIdentifier, n)
		}
	case c == q:
		l.pop()
		if q == '"' {
			l.emitN(tokenDoubleQuote, 1)
		} else {
			l.emitN(tokenSingleQuote, 1)
		}
	case c == '#' && l.peekAt(1) == '{':
		l.startInterpolation()
	case c == '\n':
		l.pop()
		l.emitN(tokenNewline, 1)
	default:
		n := 0
		for l.i+n < len(l.s) {
			d := l.s[l.i+n]
			if d == '\\' || d == q || d == '\n' ||
				(d == '#' && l.i+n+1 < len(l.s) && l.s[l.i+n+1] == '{') {
				break
			}
			n++
		}
		l.emitN(tokenIdentifier, n)
	}
}

func (l *lexer) lexURL() {
	c := l.s[l.i]
	switch {
	case c == ')':
		l.pop()
		l.emitN(tokenParensClose, 1)
	case c == '#' && l.peekAt(1) == '{':
		l.startInterpolation()
	default:
		n := 0
		for l.i+n < len(l.s) {
			d := l.s[l.i+n]
			if d == ')' ||
				(d == '#' && l.i+n+1 < len(l.s) && l.s[l.i+n+1] == '{') {
				break
			}
			n++
		}
		l.emitN(tokenIdentifier, n)
	}
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\f'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c >= 0x80
}

func isNameStart(c byte) bool {
	return isLetter(c) || c == '_'
}

func isNameByte(c byte) bool {
	return isNameStart(c) || isDigit(c) || c == '-'
}

var punctuation = map[byte]kind{
	'&':  tokenAmp,
	'@':  tokenAt,
	'\\': tokenBackslash,
	']':  tokenBracketClose,
	'[':  tokenBracketOpen,
	':':  tokenColon,
	',':  tokenComma,
	'$':  tokenDollar,
	'.':  tokenDot,
	'=':  tokenEq,
	'!':  tokenExclamation,
	'>':  tokenGt,
	'#':  tokenHash,
	'<':  tokenLt,
	'-':  tokenMinus,
	')':  tokenParensClose,
	'(':  tokenParensOpen,
	'%':  tokenPercent,
	'+':  tokenPlus,
	';':  tokenSemi,
	'/':  tokenSlash,
	'*':  tokenStar,
	'~':  tokenTilde,
}

func (l *lexer) lexCode() {
	c := l.s[l.i]
	switch {
	case isSpaceByte(c):
		l.emitWhile(space, isSpaceByte)
	case c == '\n':
		l.emitWhile(tokenNewline, func(c byte) bool { return c == '\n' })
	case c == '/' && l.peekAt(1) == '/':
		n := strings.IndexByte(l.s[l.i:], '\n')
		if n == -1 {
			n = len(l.s) - l.i
		}
		l.advance(n)
	case c == '/' && l.peekAt(1) == '*':
		n := strings.Index(l.s[l.i+2:], "*/")
		if n == -1 {
			n = len(l.s) - l.i
		} else {
			n += 4
		}
		l.advance(n)
	case isDigit(c) || (c == '.' && isDigit(l.peekAt(1))):
		n := 0
		for l.i+n < len(l.s) && isDigit(l.s[l.i+n]) {
			n++
		}
		if l.i+n+1 < len(l.s) && l.s[l.i+n] == '.' && isDigit(l.s[l.i+n+1]) {
			n++
			for l.i+n < len(l.s) && isDigit(l.s[l.i+n]) {
				n++
			}
		}
		l.emitN(tokenNum, n)
	case isNameStart(c) || (c == '-' && (isNameStart(l.peekAt(1)) ||
		(l.peekAt(1) == '-' && !l.afterNum))):
		l.lexName()
	case c == '"' || c == '\'':
		if c == '"' {
			l.emitN(tokenDoubleQuote, 1)
		} else {
			l.emitN(tokenSingleQuote, 1)
		}
		l.push(lexMode{quote: c})
	case c == '#' && l.peekAt(1) == '{':
		l.startInterpolation()
	case c == '{':
		if m := l.mode(); m.depth > 0 {
			l.modes[len(l.modes)-1].depth++
		}
		l.emitN(tokenCurlyOpen, 1)
	case c == '}':
		if m := l.mode(); m.depth > 0 {
			l.modes[len(l.modes)-1].depth--
			if m.depth == 1 {
				l.pop()
			}
		}
		l.emitN(tokenCurlyClose, 1)
	default:
		if k, ok := punctuation[c]; ok {
			l.emitN(k, 1)
			return
		}
		_, n := utf8.DecodeRuneInString(l.s[l.i:])
		l.emitN(tokenOther, n)
	}
}

func (l *lexer) lexName() {
	unit := l.afterNum
	n := 1
	for l.i+n < len(l.s) {
		d := l.s[l.i+n]
		if d == '-' {
			next := byte(0)
			if l.i+n+1 < len(l.s) {
				next = l.s[l.i+n+1]
			}
			if unit && !isLetter(next) {
				break
			}
			if !unit && !isNameByte(next) {
				break
			}
		} else if !isNameByte(d) {
			break
		}
		if unit && isDigit(d) {
			break
		}
		n++
	}
	name := l.s[l.i : l.i+n]
	l.emitN(tokenIdentifier, n)
	if l.peekAt(0) == '(' && strings.EqualFold(name, "url") {
		l.emitN(tokenParensOpen, 1)
		if isRawURL(l.s[l.i:]) {
			l.push(lexMode{url: true})
		}
	}
}

// isRawURL reports whether the url( arguments starting at s are a plain URL
// rather than an expression.
func isRawURL(s string) bool {
	s = strings.TrimLeft(s, " \t\r\n\f")
	if s == "" || s[0] == '"' || s[0] == '\'' || s[0] == ')' {
		return false
	}
	end := strings.IndexByte(s, ')')
	if end == -1 {
		return false
	}
	body := s[:end]
	if strings.Contains(body, "#{") {
		return true
	}
	return !strings.ContainsAny(body, "$(\n")
}
