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

type builtinFunc func(e *evalContext, a *frame, t token) (Value, error)

// callable is a @function, @mixin or builtin function.
type callable struct {
	name    string
	params  Params
	body    tokens
	closure *scopes
	file    string
	builtin builtinFunc
}

const maxCallDepth = 512

func (c *compilation) enterCall(t token) error {
	c.callDepth++
	if c.callDepth > maxCallDepth {
		c.callDepth--
		return newError(SyntaxError, t, "Stack depth exceeded max of 512.")
	}
	return nil
}

func (c *compilation) exitCall() {
	c.callDepth--
}

func (e *evalContext) call(x *callExpr) (Value, error) {
	name := normalizeName(x.name)
	if fn, ok := e.scopes.lookupFunction(name); ok {
		return e.invoke(fn, x)
	}
	if name == "if" {
		return e.callIf(x)
	}
	if fn, ok := builtins[name]; ok {
		return e.invoke(fn, x)
	}
	return e.callPlainCSS(x)
}

func (e *evalContext) invoke(fn *callable, x *callExpr) (Value, error) {
	args, err := parseCallArgs(newStream(x.args), x.open, e)
	if err != nil {
		return nil, err
	}
	return e.apply(fn, args, x.t)
}

// apply binds args and runs fn.
func (e *evalContext) apply(fn *callable, args *CallArgs, t token) (Value, error) {
	if err := e.c.enterCall(t); err != nil {
		return nil, err
	}
	defer e.c.exitCall()

	var callee *scopes
	if fn.closure != nil {
		callee = fn.closure.snapshot()
	} else {
		callee = newScopes()
	}
	f, err := bind(fn.params, args, e, callee)
	if err != nil {
		return nil, err
	}
	if fn.builtin != nil {
		return fn.builtin(e, f, t)
	}

	callee.enter(f)
	defer callee.exit()
	fe := &evalContext{
		c:          e.c,
		scopes:     callee,
		file:       fn.file,
		selector:   e.selector,
		inFunction: true,
	}
	v, returned, err := fe.execBody(fn.body)
	if err != nil {
		return nil, err
	}
	if !returned {
		return nil, newError(SyntaxError, t, "Function finished without @return.")
	}
	return v, nil
}

var ifParams = mustParseSignature("($condition, $if-true, $if-false)")

// callIf only evaluates the selected branch.
func (e *evalContext) callIf(x *callExpr) (Value, error) {
	args, err := parseCallArgs(newStream(x.args), x.open, e)
	if err != nil {
		return nil, err
	}
	var picked [3]callArg
	for i, p := range ifParams {
		arg, ok, err2 := args.take(i, p.Name)
		if err2 != nil {
			return nil, err2
		}
		if !ok {
			return nil, errorf(MissingArgument, x.t, "Missing argument $%s.", p.Name)
		}
		picked[i] = arg
	}
	if n := args.Len(); n > 0 {
		return nil, errorf(
			SurplusArgument, x.t,
			"Only 3 arguments allowed, but %d were passed.", n+3,
		)
	}
	cond, err := picked[0].evaluate(e)
	if err != nil {
		return nil, err
	}
	if isTruthy(cond) {
		return picked[1].evaluate(e)
	}
	return picked[2].evaluate(e)
}

// callPlainCSS renders an unknown function as CSS with evaluated arguments.
func (e *evalContext) callPlainCSS(x *callExpr) (Value, error) {
	args, err := parseCallArgs(newStream(x.args), x.open, e)
	if err != nil {
		return nil, err
	}
	if arg, ok := args.hasNamed(); ok {
		return nil, newError(
			NamedArgumentNotAllowed, arg.span,
			"Plain CSS functions don't support keyword arguments.",
		)
	}
	rest, _ := args.drain()
	parts := make([]string, 0, len(rest))
	for _, arg := range rest {
		v, err2 := arg.evaluate(e)
		if err2 != nil {
			return nil, err2
		}
		s, err2 := toCSS(v, e.compressed())
		if err2 != nil {
			return nil, newError(TypeMismatch, arg.span, err2.Error())
		}
		parts = append(parts, s)
	}
	sep := ", "
	if e.compressed() {
		sep = ","
	}
	return ident(x.name + "(" + strings.Join(parts, sep) + ")"), nil
}
