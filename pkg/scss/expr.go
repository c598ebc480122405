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

type expr interface {
	eval(e *evalContext) (Value, error)
}

type valueExpr struct {
	v Value
}

type varExpr struct {
	name string
	t    token
}

type parentExpr struct {
	t token
}

// interpPart is either literal text or an interpolated expression.
type interpPart struct {
	text string
	x    expr
}

type interpExpr struct {
	parts  []interpPart
	quoted bool
}

type listExpr struct {
	items     []expr
	sep       separator
	bracketed bool
}

type mapExpr struct {
	keys   []expr
	values []expr
	t      token
}

type parenExpr struct {
	x expr
}

type binaryExpr struct {
	op string
	l  expr
	r  expr
	t  token
}

type unaryExpr struct {
	op string
	x  expr
	t  token
}

type callExpr struct {
	name string
	open token
	args tokens
	t    token
}

// rawCallExpr is a CSS function that is passed through with only
// interpolation and variables substituted, like calc() and url().
type rawCallExpr struct {
	name string
	args tokens
}

type exprParser struct {
	s *stream
}

func parseExpression(tt tokens) (expr, error) {
	p := exprParser{s: newStream(tt)}
	x, err := p.parseCommaList()
	if err != nil {
		return nil, err
	}
	p.s.skipSpace()
	if !p.s.eof() {
		return nil, errorf(SyntaxError, p.s.peek(), "expected %q.", ";")
	}
	return x, nil
}

func (p *exprParser) errExpected() error {
	return newError(SyntaxError, p.s.peek(), "Expected expression.")
}

func (p *exprParser) parseCommaList() (expr, error) {
	var items []expr
	sawComma := false
	for {
		p.s.skipSpace()
		if p.s.eof() && sawComma {
			break
		}
		x, err := p.parseSpaceList()
		if err != nil {
			return nil, err
		}
		items = append(items, x)
		p.s.skipSpace()
		if p.s.peekKind() != tokenComma {
			break
		}
		p.s.next()
		sawComma = true
	}
	if len(items) == 1 && !sawComma {
		return items[0], nil
	}
	return &listExpr{items: items, sep: sepComma}, nil
}

func (p *exprParser) parseSpaceList() (expr, error) {
	var items []expr
	for {
		p.s.skipSpace()
		switch p.s.peekKind() {
		case -1, tokenComma, tokenColon:
			if len(items) == 0 {
				return nil, p.errExpected()
			}
			if len(items) == 1 {
				return items[0], nil
			}
			return &listExpr{items: items, sep: sepSpace}, nil
		}
		x, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		items = append(items, x)
	}
}

// keyword consumes the operator keyword w when it follows after space.
func (p *exprParser) keyword(w string) (token, bool) {
	start := p.s.i
	p.s.skipSpace()
	if p.s.i == start || p.s.peekKind() != tokenIdentifier || p.s.peek().v != w {
		p.s.i = start
		return token{}, false
	}
	t := p.s.next()
	if k := p.s.peekKind(); k != -1 && k != space && k != tokenNewline &&
		k != tokenParensOpen && k != tokenDollar {
		p.s.i = start
		return token{}, false
	}
	return t, true
}

func (p *exprParser) parseOr() (expr, error) {
	l, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.keyword("or")
		if !ok {
			return l, nil
		}
		r, err2 := p.parseAnd()
		if err2 != nil {
			return nil, err2
		}
		l = &binaryExpr{op: "or", l: l, r: r, t: t}
	}
}

func (p *exprParser) parseAnd() (expr, error) {
	l, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.keyword("and")
		if !ok {
			return l, nil
		}
		r, err2 := p.parseEquality()
		if err2 != nil {
			return nil, err2
		}
		l = &binaryExpr{op: "and", l: l, r: r, t: t}
	}
}

// operator consumes one of the operators ops, each given as token kinds.
func (p *exprParser) operator(ops map[string][]kind) (string, token, bool) {
	start := p.s.i
	p.s.skipSpace()
	best := ""
	for op, kinds := range ops {
		if len(op) <= len(best) {
			continue
		}
		match := true
		for j, k := range kinds {
			if p.s.peekN(j) != k {
				match = false
				break
			}
		}
		if match {
			best = op
		}
	}
	if best == "" {
		p.s.i = start
		return "", token{}, false
	}
	t := p.s.peek()
	p.s.i += len(ops[best])
	return best, t, true
}

var (
	equalityOps = map[string][]kind{
		"==": {tokenEq, tokenEq},
		"!=": {tokenExclamation, tokenEq},
	}
	relationalOps = map[string][]kind{
		"<":  {tokenLt},
		"<=": {tokenLt, tokenEq},
		">":  {tokenGt},
		">=": {tokenGt, tokenEq},
	}
	multiplicativeOps = map[string][]kind{
		"*": {tokenStar},
		"/": {tokenSlash},
		"%": {tokenPercent},
	}
)

func (p *exprParser) parseEquality() (expr, error) {
	l, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for {
		op, t, ok := p.operator(equalityOps)
		if !ok {
			return l, nil
		}
		r, err2 := p.parseRelational()
		if err2 != nil {
			return nil, err2
		}
		l = &binaryExpr{op: op, l: l, r: r, t: t}
	}
}

func (p *exprParser) parseRelational() (expr, error) {
	l, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		op, t, ok := p.operator(relationalOps)
		if !ok {
			return l, nil
		}
		r, err2 := p.parseAdditive()
		if err2 != nil {
			return nil, err2
		}
		l = &binaryExpr{op: op, l: l, r: r, t: t}
	}
}

func (p *exprParser) parseAdditive() (expr, error) {
	l, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		start := p.s.i
		p.s.skipSpace()
		spaceBefore := p.s.i > start
		k := p.s.peekKind()
		if k != tokenPlus && k != tokenMinus {
			p.s.i = start
			return l, nil
		}
		if spaceBefore {
			// "1 -2" is a list of two numbers, "1 - 2" a subtraction.
			if n := p.s.peekN(1); n != space && n != tokenNewline {
				p.s.i = start
				return l, nil
			}
		}
		t := p.s.next()
		r, err2 := p.parseMultiplicative()
		if err2 != nil {
			return nil, err2
		}
		l = &binaryExpr{op: t.v, l: l, r: r, t: t}
	}
}

func (p *exprParser) parseMultiplicative() (expr, error) {
	l, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, t, ok := p.operator(multiplicativeOps)
		if !ok {
			return l, nil
		}
		r, err2 := p.parseUnary()
		if err2 != nil {
			return nil, err2
		}
		l = &binaryExpr{op: op, l: l, r: r, t: t}
	}
}

func (p *exprParser) parseUnary() (expr, error) {
	p.s.skipSpace()
	t := p.s.peek()
	switch {
	case t.kind == tokenMinus || t.kind == tokenPlus:
		switch p.s.peekN(1) {
		case tokenNum, tokenDollar, tokenParensOpen, tokenMinus, tokenPlus,
			tokenIdentifier:
			p.s.next()
			x, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return &unaryExpr{op: t.v, x: x, t: t}, nil
		}
	case t.kind == tokenSlash:
		p.s.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &unaryExpr{op: "/", x: x, t: t}, nil
	case t.isIdent("not"):
		if k := p.s.peekN(1); k == space || k == tokenParensOpen {
			p.s.next()
			x, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return &unaryExpr{op: "not", x: x, t: t}, nil
		}
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (expr, error) {
	p.s.skipSpace()
	if p.s.eof() {
		return nil, p.errExpected()
	}
	t := p.s.peek()
	switch t.kind {
	case tokenNum:
		return p.parseNumber()
	case tokenDot:
		if p.s.peekN(1) == tokenNum {
			return p.parseNumber()
		}
	case tokenDollar:
		if p.s.peekN(1) != tokenIdentifier {
			break
		}
		p.s.next()
		name := p.s.next().v
		return &varExpr{name: normalizeName(name), t: t}, nil
	case tokenAmp:
		p.s.next()
		return &parentExpr{t: t}, nil
	case tokenSingleQuote, tokenDoubleQuote:
		return p.parseQuoted()
	case tokenHash:
		if p.s.peekN(1) == tokenCurlyOpen {
			return p.parseIdentifierLike()
		}
		return p.parseHash()
	case tokenParensOpen:
		return p.parseParens()
	case tokenBracketOpen:
		return p.parseBrackets()
	case tokenExclamation:
		if p.s.peekN(1) == tokenIdentifier {
			p.s.next()
			name := p.s.next().v
			return &valueExpr{v: ident("!" + name)}, nil
		}
	case tokenIdentifier, tokenMinus:
		return p.parseIdentifierLike()
	case tokenPercent, tokenOther, tokenTilde, tokenGt, tokenPlus, tokenStar,
		tokenSlash:
		p.s.next()
		return &valueExpr{v: ident(t.v)}, nil
	}
	return nil, p.errExpected()
}

func (p *exprParser) parseNumber() (expr, error) {
	t := p.s.next()
	n, err := parseNumber(t.v)
	if err != nil {
		return nil, errorf(SyntaxError, t, "Invalid number %q.", t.v)
	}
	d := Dimension{Num: n}
	switch p.s.peekKind() {
	case tokenIdentifier:
		d.Unit = unitOf(p.s.next().v)
	case tokenPercent:
		p.s.next()
		d.Unit = unitOf("%")
	}
	return &valueExpr{v: d}, nil
}

func isHexDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isDigit(c) && !('a' <= c && c <= 'f') && !('A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

func (p *exprParser) parseHash() (expr, error) {
	t := p.s.next()
	b := strings.Builder{}
	for k := p.s.peekKind(); k == tokenNum || k == tokenIdentifier; k = p.s.peekKind() {
		b.WriteString(p.s.next().v)
	}
	digits := b.String()
	if digits == "" {
		return nil, newError(SyntaxError, t, "Expected identifier.")
	}
	if isHexDigits(digits) {
		if c, ok := parseHexColor(digits); ok {
			c.repr = "#" + digits
			return &valueExpr{v: c}, nil
		}
	}
	return &valueExpr{v: ident("#" + digits)}, nil
}

// parseInterpolation consumes "#{...}" and returns the inner expression.
func (p *exprParser) parseInterpolation() (expr, error) {
	p.s.next()
	open := p.s.next()
	inner, err := readUntilClosingCurly(p.s, open)
	if err != nil {
		return nil, err
	}
	inner = inner[:len(inner)-1]
	if len(trimSpace(inner)) == 0 {
		return nil, newError(SyntaxError, open, "Expected expression.")
	}
	return parseExpression(inner)
}

func (p *exprParser) parseQuoted() (expr, error) {
	open := p.s.next()
	x := &interpExpr{quoted: true}
	b := strings.Builder{}
	flush := func() {
		if b.Len() > 0 {
			x.parts = append(x.parts, interpPart{text: b.String()})
			b.Reset()
		}
	}
	for {
		if p.s.eof() {
			return nil, expected(open.kind, open)
		}
		t := p.s.peek()
		switch {
		case t.kind == open.kind:
			p.s.next()
			flush()
			return x, nil
		case t.kind == tokenNewline:
			return nil, expected(open.kind, open)
		case t.kind == tokenBackslash:
			p.s.next()
			if p.s.eof() {
				return nil, expected(open.kind, open)
			}
			escaped := p.s.next().v
			if escaped == "\"" || escaped == "'" {
				b.WriteString(escaped)
			} else {
				b.WriteString("\\")
				b.WriteString(escaped)
			}
		case t.kind == tokenHash && p.s.peekN(1) == tokenCurlyOpen:
			flush()
			inner, err := p.parseInterpolation()
			if err != nil {
				return nil, err
			}
			x.parts = append(x.parts, interpPart{x: inner})
		default:
			b.WriteString(p.s.next().v)
		}
	}
}

func (p *exprParser) parseParens() (expr, error) {
	open := p.s.next()
	inner, err := readUntilClosingParen(p.s, open)
	if err != nil {
		return nil, err
	}
	inner = inner[:len(inner)-1]
	if len(trimSpace(inner)) == 0 {
		return &valueExpr{v: List{}}, nil
	}
	sub := exprParser{s: newStream(inner)}
	first, err := sub.parseSpaceList()
	if err != nil {
		return nil, err
	}
	sub.s.skipSpace()
	if sub.s.peekKind() == tokenColon {
		return sub.parseMap(first, open)
	}
	items := []expr{first}
	sawComma := false
	for sub.s.peekKind() == tokenComma {
		sub.s.next()
		sawComma = true
		sub.s.skipSpace()
		if sub.s.eof() {
			break
		}
		x, err2 := sub.parseSpaceList()
		if err2 != nil {
			return nil, err2
		}
		items = append(items, x)
		sub.s.skipSpace()
	}
	if !sub.s.eof() {
		return nil, errorf(SyntaxError, sub.s.peek(), "expected %q.", ")")
	}
	if !sawComma {
		return &parenExpr{x: first}, nil
	}
	return &parenExpr{x: &listExpr{items: items, sep: sepComma}}, nil
}

func (p *exprParser) parseMap(firstKey expr, open token) (expr, error) {
	m := &mapExpr{t: open}
	key := firstKey
	for {
		p.s.next()
		v, err := p.parseSpaceList()
		if err != nil {
			return nil, err
		}
		m.keys = append(m.keys, key)
		m.values = append(m.values, v)
		p.s.skipSpace()
		if p.s.eof() {
			return m, nil
		}
		if p.s.peekKind() != tokenComma {
			return nil, errorf(SyntaxError, p.s.peek(), "expected %q.", ")")
		}
		p.s.next()
		p.s.skipSpace()
		if p.s.eof() {
			return m, nil
		}
		if key, err = p.parseSpaceList(); err != nil {
			return nil, err
		}
		p.s.skipSpace()
		if p.s.peekKind() != tokenColon {
			return nil, errorf(SyntaxError, p.s.peek(), "expected %q.", ":")
		}
	}
}

func (p *exprParser) parseBrackets() (expr, error) {
	open := p.s.next()
	inner, err := readUntilClosingSquare(p.s, open)
	if err != nil {
		return nil, err
	}
	inner = inner[:len(inner)-1]
	if len(trimSpace(inner)) == 0 {
		return &valueExpr{v: List{Bracketed: true}}, nil
	}
	x, err := parseExpression(inner)
	if err != nil {
		return nil, err
	}
	if l, ok := x.(*listExpr); ok {
		return &listExpr{items: l.items, sep: l.sep, bracketed: true}, nil
	}
	return &listExpr{items: []expr{x}, sep: sepSpace, bracketed: true}, nil
}

var rawFunctions = map[string]bool{
	"calc":         true,
	"-webkit-calc": true,
	"-moz-calc":    true,
	"clamp":        true,
	"element":      true,
	"expression":   true,
}

func isRawURLArgs(args tokens) bool {
	for i := 0; i < len(args)-1; i++ {
		switch args[i].kind {
		case tokenIdentifier, space, tokenNewline:
		case tokenHash:
			if args[i+1].kind != tokenCurlyOpen {
				return false
			}
			st := stream{tt: args, i: i + 2}
			if _, err := readUntilClosingCurly(&st, args[i+1]); err != nil {
				return false
			}
			i = st.i - 1
		default:
			return false
		}
	}
	return true
}

// parseIdentifierLike handles keywords, named colors, function calls and
// unquoted strings with interpolation.
func (p *exprParser) parseIdentifierLike() (expr, error) {
	t := p.s.peek()
	if t.kind == tokenIdentifier && p.s.peekN(1) == tokenParensOpen {
		p.s.next()
		open := p.s.next()
		args, err := readUntilClosingParen(p.s, open)
		if err != nil {
			return nil, err
		}
		lower := strings.ToLower(t.v)
		if rawFunctions[lower] || (lower == "url" && isRawURLArgs(args)) {
			return &rawCallExpr{name: t.v, args: args[:len(args)-1]}, nil
		}
		return &callExpr{name: t.v, open: open, args: args, t: t}, nil
	}

	x := &interpExpr{}
	for !p.s.eof() {
		k := p.s.peekKind()
		switch {
		case k == tokenIdentifier:
			x.parts = append(x.parts, interpPart{text: p.s.next().v})
		case k == tokenHash && p.s.peekN(1) == tokenCurlyOpen:
			inner, err := p.parseInterpolation()
			if err != nil {
				return nil, err
			}
			x.parts = append(x.parts, interpPart{x: inner})
		case k == tokenMinus && (len(x.parts) > 0 ||
			p.s.peekN(1) == tokenHash || p.s.peekN(1) == tokenMinus):
			x.parts = append(x.parts, interpPart{text: p.s.next().v})
		case k == tokenNum && len(x.parts) > 0:
			x.parts = append(x.parts, interpPart{text: p.s.next().v})
		default:
			return x.simplify(t)
		}
	}
	return x.simplify(t)
}

func (x *interpExpr) simplify(t token) (expr, error) {
	if len(x.parts) == 0 {
		return nil, newError(SyntaxError, t, "Expected expression.")
	}
	if len(x.parts) != 1 || x.parts[0].x != nil {
		return x, nil
	}
	text := x.parts[0].text
	switch text {
	case "true":
		return &valueExpr{v: Bool(true)}, nil
	case "false":
		return &valueExpr{v: Bool(false)}, nil
	case "null":
		return &valueExpr{v: null}, nil
	}
	if c, ok := lookupNamedColor(text); ok {
		c.repr = text
		return &valueExpr{v: c}, nil
	}
	return &valueExpr{v: ident(text)}, nil
}
