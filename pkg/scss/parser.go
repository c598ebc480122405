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

// evalContext is the state of one block being executed.
type evalContext struct {
	c      *compilation
	scopes *scopes
	file   string

	selector  []string
	container *cssBlock
	rule      *cssRule
	content   *contentBlock

	inFunction  bool
	inKeyframes bool
	media       string
	mediaOuter  *cssBlock
	propPrefix  string

	inDeclaration bool
}

// contentBlock is the block passed to a mixin by @include.
type contentBlock struct {
	body   tokens
	scopes *scopes
	file   string
	outer  *contentBlock
}

func (e *evalContext) withScopes(s *scopes) *evalContext {
	o := *e
	o.scopes = s
	return &o
}

func (e *evalContext) compressed() bool {
	return e.c.o.Style == Compressed
}

// execBody runs the statements of a block. The returned bool reports
// whether a @return was executed.
func (e *evalContext) execBody(body tokens) (Value, bool, error) {
	s := newStream(body)
	for {
		s.skipSpace()
		if s.eof() {
			return nil, false, nil
		}
		t := s.peek()
		switch {
		case t.kind == tokenSemi:
			s.next()
		case t.kind == tokenAt && s.peekN(1) == tokenIdentifier:
			v, returned, err := e.execAtRule(s)
			if err != nil || returned {
				return v, returned, err
			}
		case t.kind == tokenDollar && s.peekN(1) == tokenIdentifier:
			if err := e.execAssignment(s); err != nil {
				return nil, false, err
			}
		case t.kind == tokenCurlyClose:
			return nil, false, newError(SyntaxError, t, "unmatched \"}\".")
		default:
			if e.inFunction {
				return nil, false, newError(
					SyntaxError, t,
					"Functions can only contain variable declarations and control directives.",
				)
			}
			if err := e.execRuleOrDeclaration(s); err != nil {
				return nil, false, err
			}
		}
	}
}

// readStatement consumes the remainder of a statement and its ";".
func readStatement(s *stream) (tokens, error) {
	tt, err := readUntilTopLevel(s, tokenSemi, tokenCurlyOpen)
	if err != nil {
		return nil, err
	}
	if s.peekKind() == tokenCurlyOpen {
		return nil, errorf(SyntaxError, s.peek(), "expected %q.", ";")
	}
	if s.peekKind() == tokenSemi {
		s.next()
	}
	return trimSpace(tt), nil
}

// readBlock consumes "<head> { <body> }" and returns head and body without
// the braces.
func readBlock(s *stream) (tokens, tokens, error) {
	head, err := readUntilTopLevel(s, tokenCurlyOpen, tokenSemi)
	if err != nil {
		return nil, nil, err
	}
	if s.peekKind() != tokenCurlyOpen {
		return nil, nil, errorf(SyntaxError, s.peek(), "expected %q.", "{")
	}
	open := s.next()
	body, err := readUntilClosingCurly(s, open)
	if err != nil {
		return nil, nil, err
	}
	return trimSpace(head), body[:len(body)-1], nil
}

func (e *evalContext) execAssignment(s *stream) error {
	t := s.next()
	name := normalizeName(s.next().v)
	s.skipSpace()
	if s.peekKind() != tokenColon {
		return errorf(SyntaxError, s.peek(), "expected %q.", ":")
	}
	s.next()
	value, err := readStatement(s)
	if err != nil {
		return err
	}
	global, isDefault := false, false
	for len(value) >= 2 {
		n := len(value)
		if value[n-2].kind != tokenExclamation || value[n-1].kind != tokenIdentifier {
			break
		}
		switch value[n-1].v {
		case "global":
			global = true
		case "default":
			isDefault = true
		default:
			return errorf(SyntaxError, value[n-1], "Invalid flag name.")
		}
		value = trimSpace(value[:n-2])
	}
	if len(value) == 0 {
		return newError(SyntaxError, t, "Expected expression.")
	}
	if isDefault {
		if old, ok := e.scopes.lookupFor(name, global); ok && !isNull(old) {
			return nil
		}
	}
	v, err := e.evalTokens(value)
	if err != nil {
		return err
	}
	e.scopes.assign(name, v, global, isDefault)
	return nil
}

// execRuleOrDeclaration handles everything that does not start with "@" or
// "$": declarations, nested properties and style rules.
func (e *evalContext) execRuleOrDeclaration(s *stream) error {
	head, err := readUntilTopLevel(s, tokenSemi, tokenCurlyOpen, tokenCurlyClose)
	if err != nil {
		return err
	}
	head = trimSpace(head)
	if s.peekKind() != tokenCurlyOpen {
		if s.peekKind() == tokenSemi {
			s.next()
		}
		return e.execDeclaration(head)
	}

	if colon := indexTopLevel(head, tokenColon); colon != -1 &&
		(colon == len(head)-1 || head[colon+1].IsSpace()) &&
		!e.inKeyframes {
		open := s.next()
		body, err2 := readUntilClosingCurly(s, open)
		if err2 != nil {
			return err2
		}
		return e.execNestedProperty(head, colon, body[:len(body)-1])
	}

	open := s.next()
	body, err := readUntilClosingCurly(s, open)
	if err != nil {
		return err
	}
	if len(head) == 0 {
		return newError(SyntaxError, open, "expected selector.")
	}
	return e.execStyleRule(head, body[:len(body)-1], true)
}

func (e *evalContext) execStyleRule(head, body tokens, implicitParent bool) error {
	var selectors []string
	if e.inKeyframes {
		text, err := e.substitute(head)
		if err != nil {
			return err
		}
		for _, sel := range splitSelectorList(text) {
			selectors = append(selectors, normalizeSelector(sel))
		}
	} else {
		var err error
		selectors, err = e.resolveSelector(head, e.selector, implicitParent)
		if err != nil {
			return err
		}
	}

	r := &cssRule{selectors: selectors}
	if !e.inKeyframes {
		r.selectors = visibleSelectors(selectors)
	}
	e.container.append(r)

	ctx := *e
	ctx.selector = selectors
	ctx.rule = r
	ctx.propPrefix = ""
	return ctx.execScoped(body, false)
}

// execScoped runs body in a new frame.
func (e *evalContext) execScoped(body tokens, flow bool) error {
	f := newFrame()
	f.flow = flow
	e.scopes.enter(f)
	defer e.scopes.exit()
	_, _, err := e.execBody(body)
	return err
}

// execFlow runs the body of a control flow block. Its frame only holds the
// loop variables, assignments to outer variables go through.
func (e *evalContext) execFlow(body tokens, vars map[string]Value) (Value, bool, error) {
	f := newFrame()
	f.flow = true
	for k, v := range vars {
		f.vars[k] = v
	}
	e.scopes.enter(f)
	defer e.scopes.exit()
	return e.execBody(body)
}

func (e *evalContext) execDeclaration(head tokens) error {
	if len(head) == 0 {
		return nil
	}
	colon := indexTopLevel(head, tokenColon)
	if colon == -1 {
		return errorf(SyntaxError, head[len(head)-1], "expected %q.", "{")
	}
	name, err := e.propertyName(head[:colon])
	if err != nil {
		return err
	}
	raw := trimSpace(head[colon+1:])
	if len(raw) == 0 {
		return newError(SyntaxError, head[colon], "Expected expression.")
	}
	if e.rule == nil && e.container == e.c.root {
		return newError(
			SyntaxError, head[0],
			"Declarations may only be used within style rules.",
		)
	}

	var value string
	if strings.HasPrefix(name, "--") {
		value, err = e.substitute(raw)
		if err != nil {
			return err
		}
		value = strings.TrimSpace(value)
	} else {
		v, err2 := e.evalDeclaration(raw)
		if err2 != nil {
			return err2
		}
		if isNull(v) {
			return nil
		}
		value, err = toCSS(v, e.compressed())
		if err != nil {
			return newError(TypeMismatch, raw[0], err.Error())
		}
		if value == "" {
			return nil
		}
	}
	e.emitDeclaration(cssDecl{name: name, value: value})
	return nil
}

func (e *evalContext) emitDeclaration(d cssDecl) {
	if e.rule != nil {
		e.rule.decls = append(e.rule.decls, d)
		return
	}
	e.container.append(d)
}

func (e *evalContext) propertyName(tt tokens) (string, error) {
	name, err := e.substitute(trimSpace(tt))
	if err != nil {
		return "", err
	}
	if e.propPrefix != "" {
		name = e.propPrefix + "-" + name
	}
	return name, nil
}

// execNestedProperty handles "font: { family: x; }" and the shorthand form
// "font: bold { family: x; }".
func (e *evalContext) execNestedProperty(head tokens, colon int, body tokens) error {
	name, err := e.propertyName(head[:colon])
	if err != nil {
		return err
	}
	if value := trimSpace(head[colon+1:]); len(value) > 0 {
		if err = e.execDeclaration(head); err != nil {
			return err
		}
	}
	ctx := *e
	ctx.propPrefix = name
	return ctx.execScoped(body, false)
}

func (e *evalContext) execAtRule(s *stream) (Value, bool, error) {
	at := s.next()
	nameToken := s.next()
	name := strings.ToLower(nameToken.v)
	s.skipSpace()

	if e.inFunction {
		switch name {
		case "return", "if", "each", "for", "while", "debug", "warn", "error":
		default:
			return nil, false, newError(SyntaxError, at, "This at-rule is not allowed here.")
		}
	}

	var err error
	switch name {
	case "return":
		return e.execReturn(s, at)
	case "if":
		return e.execIf(s)
	case "each":
		return e.execEach(s, at)
	case "for":
		return e.execFor(s, at)
	case "while":
		return e.execWhile(s)
	case "else":
		err = newError(SyntaxError, at, "This at-rule is not allowed here.")
	case "import":
		err = e.execImport(s, at)
	case "mixin", "function":
		err = e.execDefinition(s, name)
	case "include":
		err = e.execInclude(s, at)
	case "content":
		err = e.execContent(s, at)
	case "debug", "warn", "error":
		err = e.execMessage(s, at, name)
	case "charset":
		_, err = readStatement(s)
	case "extend", "use", "forward":
		err = errorf(SyntaxError, at, "@%s is not supported.", name)
	case "at-root":
		err = e.execAtRoot(s)
	case "media":
		err = e.execMedia(s, at)
	default:
		err = e.execGenericAtRule(s, nameToken.v)
	}
	return nil, false, err
}

func (e *evalContext) execReturn(s *stream, at token) (Value, bool, error) {
	if !e.inFunction {
		return nil, false, newError(SyntaxError, at, "This at-rule is not allowed here.")
	}
	tt, err := readStatement(s)
	if err != nil {
		return nil, false, err
	}
	if len(tt) == 0 {
		return nil, false, newError(SyntaxError, at, "Expected expression.")
	}
	v, err := e.evalTokens(tt)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (e *evalContext) execIf(s *stream) (Value, bool, error) {
	var chosen tokens
	found := false
	for {
		cond, body, err := readBlock(s)
		if err != nil {
			return nil, false, err
		}
		if len(cond) == 0 {
			return nil, false, newError(SyntaxError, s.peek(), "Expected expression.")
		}
		if !found {
			v, err2 := e.evalTokens(cond)
			if err2 != nil {
				return nil, false, err2
			}
			if isTruthy(v) {
				found = true
				chosen = body
			}
		}

		mark := s.i
		s.skipSpace()
		if s.peekKind() != tokenAt || s.peekN(1) != tokenIdentifier ||
			s.tt[s.i+1].v != "else" {
			s.i = mark
			break
		}
		s.next()
		s.next()
		s.skipSpace()
		if s.peek().isIdent("if") {
			s.next()
			s.skipSpace()
			continue
		}
		_, body, err = readBlock(s)
		if err != nil {
			return nil, false, err
		}
		if !found {
			found = true
			chosen = body
		}
		break
	}
	if !found {
		return nil, false, nil
	}
	return e.execFlow(chosen, nil)
}

// readVariable consumes "$name".
func readVariable(s *stream) (string, error) {
	s.skipSpace()
	if s.peekKind() != tokenDollar || s.peekN(1) != tokenIdentifier {
		return "", errorf(SyntaxError, s.peek(), "expected %q.", "$")
	}
	s.next()
	return normalizeName(s.next().v), nil
}

func (e *evalContext) execEach(s *stream, at token) (Value, bool, error) {
	var names []string
	for {
		name, err := readVariable(s)
		if err != nil {
			return nil, false, err
		}
		names = append(names, name)
		s.skipSpace()
		if s.peekKind() != tokenComma {
			break
		}
		s.next()
	}
	if !s.peek().isIdent("in") {
		return nil, false, errorf(SyntaxError, s.peek(), "Expected \"in\".")
	}
	s.next()
	head, body, err := readBlock(s)
	if err != nil {
		return nil, false, err
	}
	if len(head) == 0 {
		return nil, false, newError(SyntaxError, at, "Expected expression.")
	}
	list, err := e.evalTokens(head)
	if err != nil {
		return nil, false, err
	}
	for _, item := range listItems(list) {
		vars := make(map[string]Value, len(names))
		if len(names) == 1 {
			vars[names[0]] = item
		} else {
			parts := listItems(item)
			for i, name := range names {
				if i < len(parts) {
					vars[name] = parts[i]
				} else {
					vars[name] = null
				}
			}
		}
		v, returned, err2 := e.execFlow(body, vars)
		if err2 != nil || returned {
			return v, returned, err2
		}
	}
	return nil, false, nil
}

// splitAtKeyword cuts tt at the first top-level identifier in words.
func splitAtKeyword(tt tokens, words ...string) (tokens, string, tokens, bool) {
	s := newStream(tt)
	for !s.eof() {
		t := s.next()
		if t.kind == tokenIdentifier {
			for _, w := range words {
				if t.v == w {
					return tt[:s.i-1], w, tt[s.i:], true
				}
			}
		}
		if err := skipNested(s, t); err != nil {
			break
		}
	}
	return tt, "", nil, false
}

func (e *evalContext) forBound(tt tokens, at token) (Dimension, int, error) {
	tt = trimSpace(tt)
	if len(tt) == 0 {
		return Dimension{}, 0, newError(SyntaxError, at, "Expected expression.")
	}
	v, err := e.evalTokens(tt)
	if err != nil {
		return Dimension{}, 0, err
	}
	d, ok := v.(Dimension)
	if !ok {
		return Dimension{}, 0, errorf(TypeMismatch, tt[0], "%s is not a number.", inspect(v))
	}
	i, ok := d.Num.Int()
	if !ok {
		return Dimension{}, 0, errorf(TypeMismatch, tt[0], "%s is not an int.", inspect(v))
	}
	return d, i, nil
}

func (e *evalContext) execFor(s *stream, at token) (Value, bool, error) {
	name, err := readVariable(s)
	if err != nil {
		return nil, false, err
	}
	s.skipSpace()
	if !s.peek().isIdent("from") {
		return nil, false, errorf(SyntaxError, s.peek(), "Expected \"from\".")
	}
	s.next()
	head, body, err := readBlock(s)
	if err != nil {
		return nil, false, err
	}
	from, word, to, ok := splitAtKeyword(head, "through", "to")
	if !ok {
		return nil, false, errorf(SyntaxError, at, "Expected \"to\" or \"through\".")
	}
	start, lo, err := e.forBound(from, at)
	if err != nil {
		return nil, false, err
	}
	_, hi, err := e.forBound(to, at)
	if err != nil {
		return nil, false, err
	}
	step := 1
	if hi < lo {
		step = -1
	}
	if word == "through" {
		hi += step
	}
	for i := lo; i != hi; i += step {
		vars := map[string]Value{
			name: Dimension{Num: newNumber(int64(i)), Unit: start.Unit},
		}
		v, returned, err2 := e.execFlow(body, vars)
		if err2 != nil || returned {
			return v, returned, err2
		}
	}
	return nil, false, nil
}

const maxWhileIterations = 1 << 20

func (e *evalContext) execWhile(s *stream) (Value, bool, error) {
	cond, body, err := readBlock(s)
	if err != nil {
		return nil, false, err
	}
	if len(cond) == 0 {
		return nil, false, newError(SyntaxError, s.peek(), "Expected expression.")
	}
	for n := 0; ; n++ {
		if n == maxWhileIterations {
			return nil, false, newError(SyntaxError, cond[0], "@while exceeded the iteration limit.")
		}
		v, err2 := e.evalTokens(cond)
		if err2 != nil {
			return nil, false, err2
		}
		if !isTruthy(v) {
			return nil, false, nil
		}
		v, returned, err2 := e.execFlow(body, nil)
		if err2 != nil || returned {
			return v, returned, err2
		}
	}
}

// execDefinition handles @mixin and @function.
func (e *evalContext) execDefinition(s *stream, kind string) error {
	if s.peekKind() != tokenIdentifier {
		return errorf(SyntaxError, s.peek(), "Expected identifier.")
	}
	nameToken := s.next()
	s.skipSpace()
	var params Params
	if s.peekKind() == tokenParensOpen {
		var err error
		if params, err = parseParams(s, s.next()); err != nil {
			return err
		}
	} else if kind == "function" {
		return errorf(SyntaxError, s.peek(), "expected %q.", "(")
	}
	_, body, err := readBlock(s)
	if err != nil {
		return err
	}
	c := &callable{
		name:    nameToken.v,
		params:  params,
		body:    body,
		closure: e.scopes.snapshot(),
		file:    e.file,
	}
	f := e.scopes.definitionFrame()
	if kind == "mixin" {
		f.setMixin(normalizeName(c.name), c)
	} else {
		f.setFunction(normalizeName(c.name), c)
	}
	return nil
}

func (e *evalContext) execInclude(s *stream, at token) error {
	if s.peekKind() != tokenIdentifier {
		return errorf(SyntaxError, s.peek(), "Expected identifier.")
	}
	nameToken := s.next()
	s.skipSpace()
	args := newCallArgs(nameToken)
	if s.peekKind() == tokenParensOpen {
		var err error
		if args, err = parseCallArgs(s, s.next(), e); err != nil {
			return err
		}
		s.skipSpace()
	}
	var content *contentBlock
	switch s.peekKind() {
	case tokenCurlyOpen:
		open := s.next()
		body, err := readUntilClosingCurly(s, open)
		if err != nil {
			return err
		}
		content = &contentBlock{
			body:   body[:len(body)-1],
			scopes: e.scopes.snapshot(),
			file:   e.file,
			outer:  e.content,
		}
	case tokenSemi:
		s.next()
	case -1:
	default:
		return errorf(SyntaxError, s.peek(), "expected %q.", ";")
	}

	mixin, ok := e.scopes.lookupMixin(normalizeName(nameToken.v))
	if !ok {
		return newError(UndefinedCallable, nameToken, "Undefined mixin.")
	}
	if err := e.c.enterCall(at); err != nil {
		return err
	}
	defer e.c.exitCall()

	callee := mixin.closure.snapshot()
	f, err := bind(mixin.params, args, e, callee)
	if err != nil {
		return err
	}
	callee.enter(f)
	defer callee.exit()

	ctx := *e
	ctx.scopes = callee
	ctx.file = mixin.file
	ctx.content = content
	ctx.inDeclaration = false
	_, _, err = ctx.execBody(mixin.body)
	return err
}

func (e *evalContext) execContent(s *stream, at token) error {
	if _, err := readStatement(s); err != nil {
		return err
	}
	if e.content == nil {
		return nil
	}
	ctx := *e
	ctx.scopes = e.content.scopes.snapshot()
	ctx.file = e.content.file
	ctx.content = e.content.outer
	return ctx.execScoped(e.content.body, false)
}

func (e *evalContext) execMessage(s *stream, at token, kind string) error {
	tt, err := readStatement(s)
	if err != nil {
		return err
	}
	if len(tt) == 0 {
		return newError(SyntaxError, at, "Expected expression.")
	}
	v, err := e.evalTokens(tt)
	if err != nil {
		return err
	}
	switch kind {
	case "debug":
		e.c.logf("%s:%d DEBUG: %s", e.file, at.line, inspect(v))
	case "warn":
		msg, err2 := textOf(v)
		if err2 != nil {
			msg = inspect(v)
		}
		e.c.logf("WARNING: %s\n    %s:%d", msg, e.file, at.line)
	default:
		msg, err2 := textOf(v)
		if err2 != nil {
			msg = inspect(v)
		}
		return newError(UserError, at, msg)
	}
	return nil
}

func (e *evalContext) execAtRoot(s *stream) error {
	head, body, err := readBlock(s)
	if err != nil {
		return err
	}
	ctx := *e
	ctx.container = e.c.root
	ctx.rule = nil
	ctx.media = ""
	ctx.mediaOuter = nil
	if len(head) == 0 {
		ctx.selector = nil
		return ctx.execScoped(body, false)
	}
	return ctx.execStyleRule(head, body, false)
}

// normalizeParams collapses whitespace of at-rule parameters.
func normalizeParams(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (e *evalContext) execMedia(s *stream, at token) error {
	head, body, err := readBlock(s)
	if err != nil {
		return err
	}
	if len(head) == 0 {
		return newError(SyntaxError, at, "Expected media query.")
	}
	query, err := e.substitute(head)
	if err != nil {
		return err
	}
	query = normalizeParams(query)

	ctx := *e
	outer := e.container
	if e.media != "" {
		query = e.media + " and " + query
		outer = e.mediaOuter
	}
	a := &cssAtRule{name: "media", params: query, block: &cssBlock{}}
	outer.append(a)
	ctx.media = query
	ctx.mediaOuter = outer
	ctx.container = a.block
	ctx.rule = nil
	if len(e.selector) > 0 {
		ctx.rule = &cssRule{selectors: visibleSelectors(e.selector)}
		a.block.append(ctx.rule)
	}
	return ctx.execScoped(body, false)
}

func isKeyframes(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), "keyframes")
}

// execGenericAtRule emits unknown at-rules as written, with nested style
// rules and declarations.
func (e *evalContext) execGenericAtRule(s *stream, name string) error {
	head, err := readUntilTopLevel(s, tokenSemi, tokenCurlyOpen)
	if err != nil {
		return err
	}
	params, err := e.substitute(trimSpace(head))
	if err != nil {
		return err
	}
	params = normalizeParams(params)
	a := &cssAtRule{name: name, params: params}
	if s.peekKind() != tokenCurlyOpen {
		if s.peekKind() == tokenSemi {
			s.next()
		}
		e.container.append(a)
		return nil
	}
	open := s.next()
	body, err := readUntilClosingCurly(s, open)
	if err != nil {
		return err
	}
	a.block = &cssBlock{}
	e.container.append(a)

	ctx := *e
	ctx.container = a.block
	ctx.rule = nil
	switch lower := strings.ToLower(name); {
	case isKeyframes(lower):
		ctx.inKeyframes = true
		ctx.selector = nil
	case lower == "font-face" || lower == "page":
		ctx.selector = nil
	case len(e.selector) > 0:
		ctx.rule = &cssRule{selectors: visibleSelectors(e.selector)}
		a.block.append(ctx.rule)
	}
	return ctx.execScoped(body[:len(body)-1], false)
}
