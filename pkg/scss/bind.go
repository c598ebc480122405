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
	"strconv"
)

// evaluate resolves a deferred argument in the scope of the caller.
func (a callArg) evaluate(caller *evalContext) (Value, error) {
	if a.value != nil {
		return a.value, nil
	}
	return caller.evalTokens(a.raw)
}

func pluralArguments(n int) string {
	if n == 1 {
		return "1 argument"
	}
	return strconv.Itoa(n) + " arguments"
}

// bind matches args against params and returns the frame for the
// invocation. Defaults are evaluated in callee with the frame entered, so
// they can refer to parameters bound before them.
func bind(params Params, args *CallArgs, caller *evalContext, callee *scopes) (*frame, error) {
	f := newFrame()
	if args.duplicate != "" {
		return nil, errorf(
			SurplusArgument, args.duplicateSpan,
			"Duplicate argument $%s.", args.duplicate,
		)
	}
	if len(params) == 0 {
		if n := args.Len(); n > 0 {
			return nil, errorf(
				SurplusArgument, args.span,
				"Only 0 arguments allowed, but %d %s passed.", n, wasWere(n),
			)
		}
		return f, nil
	}

	callee.enter(f)
	defer callee.exit()
	calleeCtx := caller.withScopes(callee)

	supplied := args.Len()
	for idx, p := range params {
		if p.Variadic {
			rest, keys := args.drain()
			list := &ArgList{Sep: sepComma}
			for i, arg := range rest {
				v, err := arg.evaluate(caller)
				if err != nil {
					return nil, err
				}
				list.append(keys[i].name, v)
			}
			f.vars[p.Name] = list
			return f, nil
		}
		arg, ok, err := args.take(idx, p.Name)
		if err != nil {
			return nil, err
		}
		var v Value
		switch {
		case ok:
			v, err = arg.evaluate(caller)
		case p.HasDefault:
			v, err = calleeCtx.evalTokens(p.Default)
		default:
			return nil, errorf(
				MissingArgument, args.span, "Missing argument $%s.", p.Name,
			)
		}
		if err != nil {
			return nil, err
		}
		f.vars[p.Name] = v
	}

	if args.Len() == 0 {
		return f, nil
	}
	rest, keys := args.drain()
	for i, k := range keys {
		if k.isNamed() {
			return nil, errorf(
				SurplusArgument, rest[i].span, "No argument named $%s.", k.name,
			)
		}
	}
	return nil, errorf(
		SurplusArgument, args.span,
		"Only %s allowed, but %d %s passed.",
		pluralArguments(len(params)), supplied, wasWere(supplied),
	)
}

func wasWere(n int) string {
	if n == 1 {
		return "was"
	}
	return "were"
}
