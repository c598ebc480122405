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

// Value is the closed set of SassScript values.
type Value interface {
	typeName() string
}

type Null struct{}

type Bool bool

type Dimension struct {
	Num  Number
	Unit Unit
}

type String struct {
	Text   string
	Quoted bool
}

type separator int8

const (
	sepUndecided separator = iota
	sepSpace
	sepComma
	sepSlash
)

func (s separator) String() string {
	switch s {
	case sepComma:
		return "comma"
	case sepSlash:
		return "slash"
	default:
		return "space"
	}
}

type List struct {
	Items     []Value
	Sep       separator
	Bracketed bool
}

// Map keeps insertion order, keys are compared by value.
type Map struct {
	Keys   []Value
	Values []Value
}

// ArgList is the value of a variadic parameter. Items holds every argument
// in call order, Names[i] is the name Items[i] was passed by or empty.
type ArgList struct {
	Items []Value
	Names []string
	Sep   separator
}

func (Null) typeName() string      { return "null" }
func (Bool) typeName() string      { return "bool" }
func (Dimension) typeName() string { return "number" }
func (*Color) typeName() string    { return "color" }
func (String) typeName() string    { return "string" }
func (List) typeName() string      { return "list" }
func (*Map) typeName() string      { return "map" }
func (*ArgList) typeName() string  { return "arglist" }

var (
	null      = Null{}
	trueValue = Bool(true)
)

func unitless(n Number) Dimension {
	return Dimension{Num: n}
}

func ident(s string) String {
	return String{Text: s}
}

func quoted(s string) String {
	return String{Text: s, Quoted: true}
}

func isTruthy(v Value) bool {
	switch v := v.(type) {
	case Null:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}

func isNull(v Value) bool {
	_, ok := v.(Null)
	return ok
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Keys)
}

func (m *Map) Get(k Value) (Value, bool) {
	if m == nil {
		return nil, false
	}
	for i, key := range m.Keys {
		if Equals(key, k) {
			return m.Values[i], true
		}
	}
	return nil, false
}

// With returns a copy of m with k set to v.
func (m *Map) With(k, v Value) *Map {
	o := &Map{}
	if m != nil {
		o.Keys = append(o.Keys, m.Keys...)
		o.Values = append(o.Values, m.Values...)
	}
	for i, key := range o.Keys {
		if Equals(key, k) {
			o.Values[i] = v
			return o
		}
	}
	o.Keys = append(o.Keys, k)
	o.Values = append(o.Values, v)
	return o
}

func (a *ArgList) append(name string, v Value) {
	a.Items = append(a.Items, v)
	a.Names = append(a.Names, name)
}

func (a *ArgList) name(i int) string {
	if i < len(a.Names) {
		return a.Names[i]
	}
	return ""
}

func (a *ArgList) positionalCount() int {
	n := 0
	for i := range a.Items {
		if a.name(i) == "" {
			n++
		}
	}
	return n
}

func (a *ArgList) keywordMap() *Map {
	m := &Map{}
	for i, v := range a.Items {
		if name := a.name(i); name != "" {
			m = m.With(ident(name), v)
		}
	}
	return m
}

// listItems views any value as a list.
func listItems(v Value) []Value {
	switch v := v.(type) {
	case List:
		return v.Items
	case *ArgList:
		return v.Items
	case *Map:
		items := make([]Value, v.Len())
		for i := range v.Keys {
			items[i] = List{Items: []Value{v.Keys[i], v.Values[i]}, Sep: sepSpace}
		}
		return items
	default:
		return []Value{v}
	}
}

func listSeparator(v Value) separator {
	switch v := v.(type) {
	case List:
		return v.Sep
	case *ArgList:
		return sepComma
	case *Map:
		return sepComma
	default:
		return sepSpace
	}
}

// Equals compares values structurally.
func Equals(a, b Value) bool {
	switch a := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		o, ok := b.(Bool)
		return ok && a == o
	case Dimension:
		o, ok := b.(Dimension)
		if !ok {
			return false
		}
		if a.Unit.IsEmpty() != o.Unit.IsEmpty() {
			return false
		}
		n, ok := convertTo(o.Num, o.Unit, a.Unit)
		return ok && a.Num.Eq(n)
	case *Color:
		o, ok := b.(*Color)
		return ok && a.r.Eq(o.r) && a.g.Eq(o.g) && a.b.Eq(o.b) && a.a.Eq(o.a)
	case String:
		o, ok := b.(String)
		return ok && a.Text == o.Text
	case *Map:
		o, ok := b.(*Map)
		if !ok {
			if l, isList := b.(List); isList && len(l.Items) == 0 {
				return a.Len() == 0
			}
			return false
		}
		if a.Len() != o.Len() {
			return false
		}
		for i, k := range a.Keys {
			v, found := o.Get(k)
			if !found || !Equals(a.Values[i], v) {
				return false
			}
		}
		return true
	case List, *ArgList:
		if m, ok := b.(*Map); ok {
			return m.Len() == 0 && len(listItems(a)) == 0
		}
		if _, ok := b.(List); !ok {
			if _, ok = b.(*ArgList); !ok {
				return false
			}
		}
		x, y := listItems(a), listItems(b)
		if len(x) != len(y) {
			return false
		}
		if isBracketed(a) != isBracketed(b) {
			return false
		}
		if len(x) > 1 && listSeparator(a) != listSeparator(b) {
			return false
		}
		for i := range x {
			if !Equals(x[i], y[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func isBracketed(v Value) bool {
	l, ok := v.(List)
	return ok && l.Bracketed
}

func quoteString(s string) string {
	q := byte('"')
	if strings.IndexByte(s, '"') != -1 && strings.IndexByte(s, '\'') == -1 {
		q = '\''
	}
	b := strings.Builder{}
	b.Grow(len(s) + 2)
	b.WriteByte(q)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			b.WriteByte(c)
			i++
			b.WriteByte(s[i])
			continue
		case c == q:
			b.WriteByte('\\')
		case c == '\n':
			b.WriteString("\\a ")
			continue
		}
		b.WriteByte(c)
	}
	b.WriteByte(q)
	return b.String()
}

// inspect renders v for diagnostics and the inspect() function.
func inspect(v Value) string {
	switch v := v.(type) {
	case Null:
		return "null"
	case String:
		if v.Quoted {
			return quoteString(v.Text)
		}
		return v.Text
	case Dimension:
		return v.Num.format(false) + v.Unit.String()
	case *Map:
		if v.Len() == 0 {
			return "()"
		}
		b := strings.Builder{}
		b.WriteString("(")
		for i := range v.Keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(inspectNested(v.Keys[i], sepSpace))
			b.WriteString(": ")
			b.WriteString(inspectNested(v.Values[i], sepSpace))
		}
		b.WriteString(")")
		return b.String()
	case List, *ArgList:
		items := listItems(v)
		sep := listSeparator(v)
		if len(items) == 0 {
			if isBracketed(v) {
				return "[]"
			}
			return "()"
		}
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = inspectNested(item, sep)
		}
		s := strings.Join(parts, joiner(sep, false))
		switch {
		case isBracketed(v):
			return "[" + s + "]"
		case len(items) == 1 && sep == sepComma:
			return "(" + s + ",)"
		}
		return s
	default:
		s, _ := toCSS(v, false)
		return s
	}
}

func inspectNested(v Value, outer separator) string {
	s := inspect(v)
	if l, ok := v.(List); ok && !l.Bracketed && len(l.Items) > 1 {
		if l.Sep == sepComma || (l.Sep == sepSpace && outer == sepSpace) {
			return "(" + s + ")"
		}
	}
	return s
}

func joiner(sep separator, compressed bool) string {
	switch sep {
	case sepComma:
		if compressed {
			return ","
		}
		return ", "
	case sepSlash:
		return "/"
	default:
		return " "
	}
}

type cssValueError struct {
	v Value
}

func (e *cssValueError) Error() string {
	return inspect(e.v) + " isn't a valid CSS value."
}

// toCSS renders v for output.
func toCSS(v Value, compressed bool) (string, error) {
	switch v := v.(type) {
	case Null:
		return "", nil
	case Bool:
		if v {
			return "true", nil
		}
		return "false", nil
	case Dimension:
		if !v.Unit.isCSS() {
			return "", &cssValueError{v: v}
		}
		return v.Num.format(compressed) + v.Unit.String(), nil
	case *Color:
		return v.format(compressed), nil
	case String:
		if v.Quoted {
			return quoteString(v.Text), nil
		}
		return v.Text, nil
	case *Map:
		return "", &cssValueError{v: v}
	case List, *ArgList:
		items := listItems(v)
		if len(items) == 0 && !isBracketed(v) {
			return "", &cssValueError{v: v}
		}
		parts := make([]string, 0, len(items))
		for _, item := range items {
			if isNull(item) {
				continue
			}
			s, err := toCSS(item, compressed)
			if err != nil {
				return "", err
			}
			if s == "" {
				continue
			}
			parts = append(parts, s)
		}
		s := strings.Join(parts, joiner(listSeparator(v), compressed))
		if isBracketed(v) {
			return "[" + s + "]", nil
		}
		return s, nil
	}
	return "", &cssValueError{v: v}
}

// textOf returns the unquoted content of a string, or the CSS text otherwise.
func textOf(v Value) (string, error) {
	if s, ok := v.(String); ok {
		return s.Text, nil
	}
	return toCSS(v, false)
}
