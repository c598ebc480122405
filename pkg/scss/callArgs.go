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
	"sort"
)

// callArgKey is either a positional index or a name.
type callArgKey struct {
	position int
	name     string
}

func positional(i int) callArgKey {
	return callArgKey{position: i}
}

func named(name string) callArgKey {
	return callArgKey{position: -1, name: name}
}

func (k callArgKey) isNamed() bool {
	return k.position == -1
}

// callArg is deferred until binding, unless it came from a splat.
type callArg struct {
	raw   tokens
	value Value
	span  token
	seq   int
}

// CallArgs holds the arguments of one call site. It is drained by bind.
type CallArgs struct {
	args        map[callArgKey]callArg
	span        token
	seq         int
	positionals int

	duplicate     string
	duplicateSpan token
}

func newCallArgs(span token) *CallArgs {
	return &CallArgs{
		args: make(map[callArgKey]callArg),
		span: span,
	}
}

func (a *CallArgs) Len() int {
	return len(a.args)
}

func (a *CallArgs) insert(k callArgKey, arg callArg) {
	if _, exists := a.args[k]; exists && k.isNamed() && a.duplicate == "" {
		a.duplicate = k.name
		a.duplicateSpan = arg.span
	}
	arg.seq = a.seq
	a.seq++
	a.args[k] = arg
}

func (a *CallArgs) addPositional(arg callArg) {
	a.insert(positional(a.positionals), arg)
	a.positionals++
}

func (a *CallArgs) hasNamed() (callArg, bool) {
	for k, arg := range a.args {
		if k.isNamed() {
			return arg, true
		}
	}
	return callArg{}, false
}

// take removes and returns the argument for the parameter at idx with the
// given name. Named arguments win over positional ones.
func (a *CallArgs) take(idx int, name string) (callArg, bool, error) {
	byName, okName := a.args[named(name)]
	byPos, okPos := a.args[positional(idx)]
	if okName && okPos {
		return callArg{}, false, errorf(
			SurplusArgument, byName.span,
			"Argument $%s was passed both by position and by name.", name,
		)
	}
	if okName {
		delete(a.args, named(name))
		return byName, true, nil
	}
	if okPos {
		delete(a.args, positional(idx))
		return byPos, true, nil
	}
	return callArg{}, false, nil
}

// drain removes all remaining arguments and returns them in call order.
func (a *CallArgs) drain() ([]callArg, []callArgKey) {
	keys := make([]callArgKey, 0, len(a.args))
	for k := range a.args {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return a.args[keys[i]].seq < a.args[keys[j]].seq
	})
	out := make([]callArg, len(keys))
	for i, k := range keys {
		out[i] = a.args[k]
		delete(a.args, k)
	}
	return out, keys
}

// parseCallArgs reads the arguments of a call. s is positioned just inside
// the opening parenthesis open, the closing parenthesis is consumed.
// Splats are evaluated in e right away, everything else stays raw.
func parseCallArgs(s *stream, open token, e *evalContext) (*CallArgs, error) {
	a := newCallArgs(open)
	for {
		s.skipSpace()
		if s.eof() {
			return nil, expected(tokenParensClose, open)
		}
		if s.peekKind() == tokenParensClose {
			s.next()
			return a, nil
		}
		start := s.peek()
		name := ""
		if s.peekKind() == tokenDollar && s.peekN(1) == tokenIdentifier {
			j := s.i + 2
			j += consumeSpace(s.tt[j:])
			if j < len(s.tt) && s.tt[j].kind == tokenColon {
				name = normalizeName(s.tt[s.i+1].v)
				s.i = j + 1
				s.skipSpace()
			}
		}
		raw, err := readUntilTopLevel(s, tokenComma, tokenParensClose)
		if err != nil {
			return nil, err
		}
		if s.eof() {
			return nil, expected(tokenParensClose, open)
		}
		raw = trimSpace(raw)

		dots := 0
		for n := len(raw); dots < n && dots < 3 && raw[n-1-dots].kind == tokenDot; {
			dots++
		}
		if dots > 0 {
			first := raw[len(raw)-dots]
			if name != "" {
				return nil, errorf(SyntaxError, first, "expected %q.", ")")
			}
			if dots != 3 {
				return nil, newError(SyntaxError, first, `expected ".".`)
			}
			raw = trimSpace(raw[:len(raw)-dots])
		}
		if len(raw) == 0 {
			return nil, newError(SyntaxError, s.peek(), "Expected expression.")
		}

		if dots == 3 {
			v, err2 := e.evalTokens(raw)
			if err2 != nil {
				return nil, err2
			}
			if err2 = a.splat(v, start); err2 != nil {
				return nil, err2
			}
		} else if name != "" {
			a.insert(named(name), callArg{raw: raw, span: start})
		} else {
			a.addPositional(callArg{raw: raw, span: start})
		}

		if s.peekKind() == tokenComma {
			s.next()
		}
	}
}

// splat expands a collection into separate arguments.
func (a *CallArgs) splat(v Value, span token) error {
	switch v := v.(type) {
	case *ArgList:
		for i, item := range v.Items {
			if name := v.name(i); name != "" {
				a.insert(named(name), callArg{value: item, span: span})
			} else {
				a.addPositional(callArg{value: item, span: span})
			}
		}
	case List:
		for _, item := range v.Items {
			a.addPositional(callArg{value: item, span: span})
		}
	case *Map:
		for i, k := range v.Keys {
			key, ok := k.(String)
			if !ok {
				return errorf(
					InvalidSplatTarget, span,
					"%s is not a string in %s.", inspect(k), inspect(v),
				)
			}
			a.insert(
				named(normalizeName(key.Text)),
				callArg{value: v.Values[i], span: span},
			)
		}
	default:
		a.addPositional(callArg{value: v, span: span})
	}
	return nil
}
