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

var builtins = make(map[string]*callable)

func declare(name, signature string, fn builtinFunc) {
	builtins[name] = &callable{
		name:    name,
		params:  mustParseSignature(signature),
		builtin: fn,
	}
}

func init() {
	declareColorFunctions()
	declareNumberFunctions()
	declareListFunctions()
	declareMapFunctions()
	declareStringFunctions()
	declareIntrospectionFunctions()
}

func typeError(t token, param, fn, want string, v Value) *Error {
	return errorf(
		TypeMismatch, t, "$%s: %s is not a %s for `%s'.",
		param, inspect(v), want, fn,
	)
}

func argNumber(a *frame, param, fn string, t token) (Dimension, error) {
	v := a.vars[param]
	d, ok := v.(Dimension)
	if !ok {
		return Dimension{}, typeError(t, param, fn, "number", v)
	}
	return d, nil
}

func argUnitless(a *frame, param, fn string, t token) (Number, error) {
	d, err := argNumber(a, param, fn, t)
	if err != nil {
		return Number{}, err
	}
	if !d.Unit.IsEmpty() {
		return Number{}, errorf(
			TypeMismatch, t, "$%s: Expected %s to have no units for `%s'.",
			param, inspect(d), fn,
		)
	}
	return d.Num, nil
}

func argInt(a *frame, param, fn string, t token) (int, error) {
	d, err := argNumber(a, param, fn, t)
	if err != nil {
		return 0, err
	}
	i, ok := d.Num.Int()
	if !ok {
		return 0, errorf(
			TypeMismatch, t, "$%s: %s is not an int for `%s'.",
			param, inspect(d), fn,
		)
	}
	return i, nil
}

func argColor(a *frame, param, fn string, t token) (*Color, error) {
	v := a.vars[param]
	c, ok := v.(*Color)
	if !ok {
		return nil, typeError(t, param, fn, "color", v)
	}
	return c, nil
}

func argString(a *frame, param, fn string, t token) (String, error) {
	v := a.vars[param]
	s, ok := v.(String)
	if !ok {
		return String{}, typeError(t, param, fn, "string", v)
	}
	return s, nil
}

func argMap(a *frame, param, fn string, t token) (*Map, error) {
	switch v := a.vars[param].(type) {
	case *Map:
		return v, nil
	case List:
		if len(v.Items) == 0 {
			return &Map{}, nil
		}
	case *ArgList:
		if v.positionalCount() == 0 {
			return v.keywordMap(), nil
		}
	}
	return nil, typeError(t, param, fn, "map", a.vars[param])
}

// argPercentage reads an amount in [0,100], with or without "%".
func argPercentage(a *frame, param, fn string, t token) (Number, error) {
	d, err := argNumber(a, param, fn, t)
	if err != nil {
		return Number{}, err
	}
	if !d.Unit.IsEmpty() && !d.Unit.Is("%") {
		return Number{}, errorf(
			TypeMismatch, t, "$%s: Expected %s to have unit \"%%\" for `%s'.",
			param, inspect(d), fn,
		)
	}
	return checkRange(d.Num, newNumber(0), newNumber(100), param, d, fn, t)
}

func checkRange(n, lo, hi Number, param string, d Value, fn string, t token) (Number, error) {
	if n.Cmp(lo) < 0 || n.Cmp(hi) > 0 {
		return Number{}, errorf(
			TypeMismatch, t, "$%s: Expected %s to be within %s and %s for `%s'.",
			param, inspect(d), lo, hi, fn,
		)
	}
	return n, nil
}

func declareNumberFunctions() {
	declare("percentage", "($number)", func(e *evalContext, a *frame, t token) (Value, error) {
		n, err := argUnitless(a, "number", "percentage", t)
		if err != nil {
			return nil, err
		}
		return Dimension{Num: n.Mul(newNumber(100)), Unit: unitOf("%")}, nil
	})
	rounding := func(name string, fn func(Number) Number) {
		declare(name, "($number)", func(e *evalContext, a *frame, t token) (Value, error) {
			d, err := argNumber(a, "number", name, t)
			if err != nil {
				return nil, err
			}
			return Dimension{Num: fn(d.Num), Unit: d.Unit}, nil
		})
	}
	rounding("round", Number.Round)
	rounding("ceil", Number.Ceil)
	rounding("floor", Number.Floor)
	rounding("abs", Number.Abs)

	extremum := func(name string, wantSign int) {
		declare(name, "($numbers...)", func(e *evalContext, a *frame, t token) (Value, error) {
			items := listItems(a.vars["numbers"])
			if len(items) == 0 {
				return nil, errorf(MissingArgument, t, "At least one argument must be passed.")
			}
			var best Dimension
			for i, item := range items {
				d, ok := item.(Dimension)
				if !ok {
					return e.plainCSS(name, items)
				}
				if i == 0 {
					best = d
					continue
				}
				n, ok := convertTo(d.Num, d.Unit, best.Unit)
				if !ok {
					return e.plainCSS(name, items)
				}
				if n.Cmp(best.Num) == wantSign {
					best = d
				}
			}
			return best, nil
		})
	}
	extremum("min", -1)
	extremum("max", 1)

	declare("unit", "($number)", func(e *evalContext, a *frame, t token) (Value, error) {
		d, err := argNumber(a, "number", "unit", t)
		if err != nil {
			return nil, err
		}
		return quoted(d.Unit.String()), nil
	})
	declare("unitless", "($number)", func(e *evalContext, a *frame, t token) (Value, error) {
		d, err := argNumber(a, "number", "unitless", t)
		if err != nil {
			return nil, err
		}
		return Bool(d.Unit.IsEmpty()), nil
	})
	declare("comparable", "($number1, $number2)", func(e *evalContext, a *frame, t token) (Value, error) {
		d1, err := argNumber(a, "number1", "comparable", t)
		if err != nil {
			return nil, err
		}
		d2, err := argNumber(a, "number2", "comparable", t)
		if err != nil {
			return nil, err
		}
		if d1.Unit.IsEmpty() || d2.Unit.IsEmpty() {
			return Bool(true), nil
		}
		_, ok := convertTo(d2.Num, d2.Unit, d1.Unit)
		return Bool(ok), nil
	})
}

// plainCSS renders a function call that is left to the browser.
func (e *evalContext) plainCSS(name string, args []Value) (Value, error) {
	parts := make([]string, len(args))
	for i, v := range args {
		s, err := toCSS(v, e.compressed())
		if err != nil {
			return nil, err
		}
		parts[i] = s
	}
	sep := ", "
	if e.compressed() {
		sep = ","
	}
	return ident(name + "(" + strings.Join(parts, sep) + ")"), nil
}

func declareIntrospectionFunctions() {
	declare("type-of", "($value)", func(e *evalContext, a *frame, t token) (Value, error) {
		return ident(a.vars["value"].typeName()), nil
	})
	declare("inspect", "($value)", func(e *evalContext, a *frame, t token) (Value, error) {
		return ident(inspect(a.vars["value"])), nil
	})
	exists := func(name string, lookup func(e *evalContext, n string) bool) {
		declare(name, "($name)", func(e *evalContext, a *frame, t token) (Value, error) {
			s, err := argString(a, "name", name, t)
			if err != nil {
				return nil, err
			}
			return Bool(lookup(e, normalizeName(s.Text))), nil
		})
	}
	exists("variable-exists", func(e *evalContext, n string) bool {
		_, ok := e.scopes.lookup(n)
		return ok
	})
	exists("global-variable-exists", func(e *evalContext, n string) bool {
		_, ok := e.scopes.global().vars[n]
		return ok
	})
	exists("function-exists", func(e *evalContext, n string) bool {
		if _, ok := e.scopes.lookupFunction(n); ok {
			return true
		}
		_, ok := builtins[n]
		return ok || n == "if"
	})
	exists("mixin-exists", func(e *evalContext, n string) bool {
		_, ok := e.scopes.lookupMixin(n)
		return ok
	})
	declare("content-exists", "()", func(e *evalContext, a *frame, t token) (Value, error) {
		return Bool(e.content != nil), nil
	})
	declare("keywords", "($args)", func(e *evalContext, a *frame, t token) (Value, error) {
		l, ok := a.vars["args"].(*ArgList)
		if !ok {
			return nil, typeError(t, "args", "keywords", "argument list", a.vars["args"])
		}
		return l.keywordMap(), nil
	})
}
