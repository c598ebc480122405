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

func (x *valueExpr) eval(*evalContext) (Value, error) {
	return x.v, nil
}

func (x *varExpr) eval(e *evalContext) (Value, error) {
	v, ok := e.scopes.lookup(x.name)
	if !ok {
		return nil, newError(UndefinedVariable, x.t, "Undefined variable.")
	}
	return v, nil
}

func (x *parentExpr) eval(e *evalContext) (Value, error) {
	if len(e.selector) == 0 {
		return null, nil
	}
	items := make([]Value, len(e.selector))
	for i, sel := range e.selector {
		items[i] = ident(sel)
	}
	return List{Items: items, Sep: sepComma}, nil
}

// interpolationText renders v as it appears inside #{}.
func interpolationText(v Value) (string, error) {
	switch v := v.(type) {
	case Null:
		return "", nil
	case String:
		return v.Text, nil
	}
	return toCSS(v, false)
}

func (x *interpExpr) eval(e *evalContext) (Value, error) {
	b := strings.Builder{}
	for _, p := range x.parts {
		if p.x == nil {
			b.WriteString(p.text)
			continue
		}
		v, err := p.x.eval(e)
		if err != nil {
			return nil, err
		}
		s, err := interpolationText(v)
		if err != nil {
			return nil, err
		}
		b.WriteString(s)
	}
	return String{Text: b.String(), Quoted: x.quoted}, nil
}

func (x *listExpr) eval(e *evalContext) (Value, error) {
	items := make([]Value, len(x.items))
	for i, item := range x.items {
		v, err := e.evalItem(item)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return List{Items: items, Sep: x.sep, Bracketed: x.bracketed}, nil
}

// evalItem keeps "12px/1.5" as written in declaration values.
func (e *evalContext) evalItem(x expr) (Value, error) {
	if b, ok := x.(*binaryExpr); ok && e.inDeclaration && b.isLiteralSlash() {
		l, _ := b.l.eval(e)
		r, _ := b.r.eval(e)
		ls, _ := toCSS(l, e.compressed())
		rs, _ := toCSS(r, e.compressed())
		return ident(ls + "/" + rs), nil
	}
	return x.eval(e)
}

func (b *binaryExpr) isLiteralSlash() bool {
	if b.op != "/" {
		return false
	}
	isLiteral := func(x expr) bool {
		switch x := x.(type) {
		case *valueExpr:
			_, ok := x.v.(Dimension)
			return ok
		case *binaryExpr:
			return x.isLiteralSlash()
		}
		return false
	}
	return isLiteral(b.l) && isLiteral(b.r)
}

func (x *mapExpr) eval(e *evalContext) (Value, error) {
	m := &Map{}
	for i := range x.keys {
		k, err := x.keys[i].eval(e)
		if err != nil {
			return nil, err
		}
		if _, exists := m.Get(k); exists {
			return nil, newError(SyntaxError, x.t, "Duplicate key.")
		}
		v, err := x.values[i].eval(e)
		if err != nil {
			return nil, err
		}
		m.Keys = append(m.Keys, k)
		m.Values = append(m.Values, v)
	}
	return m, nil
}

func (x *parenExpr) eval(e *evalContext) (Value, error) {
	inner := *e
	inner.inDeclaration = false
	return x.x.eval(&inner)
}

func (x *unaryExpr) eval(e *evalContext) (Value, error) {
	v, err := x.x.eval(e)
	if err != nil {
		return nil, err
	}
	switch x.op {
	case "not":
		return Bool(!isTruthy(v)), nil
	case "-":
		if d, ok := v.(Dimension); ok {
			return Dimension{Num: d.Num.Neg(), Unit: d.Unit}, nil
		}
	case "+":
		if d, ok := v.(Dimension); ok {
			return d, nil
		}
	}
	s, err := toCSS(v, e.compressed())
	if err != nil {
		return nil, newError(TypeMismatch, x.t, err.Error())
	}
	return ident(x.op + s), nil
}

func (x *binaryExpr) eval(e *evalContext) (Value, error) {
	operand := *e
	operand.inDeclaration = false
	l, err := x.l.eval(&operand)
	if err != nil {
		return nil, err
	}
	switch x.op {
	case "and":
		if !isTruthy(l) {
			return l, nil
		}
		return x.r.eval(&operand)
	case "or":
		if isTruthy(l) {
			return l, nil
		}
		return x.r.eval(&operand)
	}
	r, err := x.r.eval(&operand)
	if err != nil {
		return nil, err
	}
	return e.operate(x.op, l, r, x.t)
}

func (e *evalContext) operate(op string, l, r Value, t token) (Value, error) {
	switch op {
	case "==":
		return Bool(Equals(l, r)), nil
	case "!=":
		return Bool(!Equals(l, r)), nil
	}
	ld, lIsNum := l.(Dimension)
	rd, rIsNum := r.(Dimension)
	if lIsNum && rIsNum {
		return numberOp(op, ld, rd, t)
	}
	switch op {
	case "<", "<=", ">", ">=":
		bad := l
		if lIsNum {
			bad = r
		}
		return nil, errorf(TypeMismatch, t, "%s is not a number.", inspect(bad))
	case "+":
		return e.concat(l, r, "", t)
	case "-", "/":
		if _, isColor := l.(*Color); isColor && rIsNum {
			break
		}
		return e.concat(l, r, op, t)
	}
	return nil, errorf(
		TypeMismatch, t, "Undefined operation \"%s %s %s\".",
		inspect(l), op, inspect(r),
	)
}

// concat implements the string fallbacks of "+", "-" and "/".
func (e *evalContext) concat(l, r Value, sep string, t token) (Value, error) {
	ls, lIsStr := l.(String)
	rs, rIsStr := r.(String)
	lText, err := textOfOperand(l, lIsStr, ls)
	if err != nil {
		return nil, newError(TypeMismatch, t, err.Error())
	}
	rText, err := textOfOperand(r, rIsStr, rs)
	if err != nil {
		return nil, newError(TypeMismatch, t, err.Error())
	}
	quoted := false
	switch {
	case sep != "":
	case lIsStr:
		quoted = ls.Quoted
	case rIsStr:
		quoted = rs.Quoted
	}
	if sep != "" && lIsStr && ls.Quoted {
		lText = quoteString(lText)
	}
	if sep != "" && rIsStr && rs.Quoted {
		rText = quoteString(rText)
	}
	return String{Text: lText + sep + rText, Quoted: quoted}, nil
}

func textOfOperand(v Value, isStr bool, s String) (string, error) {
	if isStr {
		return s.Text, nil
	}
	return toCSS(v, false)
}

func numberOp(op string, l, r Dimension, t token) (Value, error) {
	switch op {
	case "*":
		u, factor := mulUnits(l.Unit, r.Unit)
		return Dimension{Num: l.Num.Mul(r.Num).Mul(factor), Unit: u}, nil
	case "/":
		u, factor := mulUnits(l.Unit, r.Unit.invert())
		q, ok := l.Num.Quo(r.Num)
		if !ok {
			return ident("Infinity"), nil
		}
		return Dimension{Num: q.Mul(factor), Unit: u}, nil
	}

	// The remaining operations need matching units.
	unit := l.Unit
	rn := r.Num
	switch {
	case l.Unit.IsEmpty():
		unit = r.Unit
	case r.Unit.IsEmpty():
	default:
		n, ok := convertTo(r.Num, r.Unit, l.Unit)
		if !ok {
			return nil, errorf(
				TypeMismatch, t, "Incompatible units %s and %s.",
				r.Unit, l.Unit,
			)
		}
		rn = n
	}
	switch op {
	case "+":
		return Dimension{Num: l.Num.Add(rn), Unit: unit}, nil
	case "-":
		return Dimension{Num: l.Num.Sub(rn), Unit: unit}, nil
	case "%":
		m, ok := l.Num.Mod(rn)
		if !ok {
			return ident("NaN"), nil
		}
		return Dimension{Num: m, Unit: unit}, nil
	case "<":
		return Bool(l.Num.Cmp(rn) < 0), nil
	case "<=":
		return Bool(l.Num.Cmp(rn) <= 0), nil
	case ">":
		return Bool(l.Num.Cmp(rn) > 0), nil
	case ">=":
		return Bool(l.Num.Cmp(rn) >= 0), nil
	}
	return nil, errorf(SyntaxError, t, "Unknown operator %q.", op)
}

func (x *rawCallExpr) eval(e *evalContext) (Value, error) {
	s, err := e.substitute(x.args)
	if err != nil {
		return nil, err
	}
	return ident(x.name + "(" + s + ")"), nil
}

// substitute renders raw tokens with interpolation and variables replaced.
func (e *evalContext) substitute(tt tokens) (string, error) {
	b := strings.Builder{}
	s := newStream(tt)
	for !s.eof() {
		t := s.next()
		switch {
		case t.kind == tokenHash && s.peekKind() == tokenCurlyOpen:
			open := s.next()
			inner, err := readUntilClosingCurly(s, open)
			if err != nil {
				return "", err
			}
			v, err := e.evalTokens(inner[:len(inner)-1])
			if err != nil {
				return "", err
			}
			text, err := interpolationText(v)
			if err != nil {
				return "", newError(TypeMismatch, t, err.Error())
			}
			b.WriteString(text)
		case t.kind == tokenDollar && s.peekKind() == tokenIdentifier:
			name := s.next()
			v, ok := e.scopes.lookup(normalizeName(name.v))
			if !ok {
				return "", newError(UndefinedVariable, t, "Undefined variable.")
			}
			text, err := toCSS(v, e.compressed())
			if err != nil {
				return "", newError(TypeMismatch, t, err.Error())
			}
			b.WriteString(text)
		case t.kind == tokenNewline:
			b.WriteString(" ")
		default:
			b.WriteString(t.v)
		}
	}
	return b.String(), nil
}

func (x *callExpr) eval(e *evalContext) (Value, error) {
	return e.call(x)
}

// evalTokens evaluates a raw expression.
func (e *evalContext) evalTokens(tt tokens) (Value, error) {
	x, err := parseExpression(tt)
	if err != nil {
		return nil, err
	}
	return x.eval(e)
}

// evalDeclaration evaluates a declaration value, keeping literal slashes.
func (e *evalContext) evalDeclaration(tt tokens) (Value, error) {
	x, err := parseExpression(tt)
	if err != nil {
		return nil, err
	}
	d := *e
	d.inDeclaration = true
	return d.evalItem(x)
}
