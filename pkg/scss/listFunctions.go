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
	"unicode/utf8"
)

func listIndex(a *frame, list Value, param, fn string, t token) (int, error) {
	n, err := argInt(a, param, fn, t)
	if err != nil {
		return 0, err
	}
	size := len(listItems(list))
	if n == 0 || n > size || -n > size {
		return 0, errorf(
			TypeMismatch, t, "$%s: Invalid index %d for a list with %d elements.",
			param, n, size,
		)
	}
	if n < 0 {
		return size + n, nil
	}
	return n - 1, nil
}

func argSeparator(a *frame, fn string, t token, auto separator) (separator, error) {
	s, err := argString(a, "separator", fn, t)
	if err != nil {
		return 0, err
	}
	switch s.Text {
	case "auto":
		return auto, nil
	case "space":
		return sepSpace, nil
	case "comma":
		return sepComma, nil
	case "slash":
		return sepSlash, nil
	}
	return 0, errorf(
		TypeMismatch, t,
		"$separator: Must be \"space\", \"comma\", \"slash\", or \"auto\".",
	)
}

func definedSeparator(v Value) separator {
	sep := listSeparator(v)
	if sep == sepUndecided {
		return sepSpace
	}
	return sep
}

func declareListFunctions() {
	declare("length", "($list)", func(e *evalContext, a *frame, t token) (Value, error) {
		return unitless(newNumber(int64(len(listItems(a.vars["list"]))))), nil
	})
	declare("nth", "($list, $n)", func(e *evalContext, a *frame, t token) (Value, error) {
		list := a.vars["list"]
		i, err := listIndex(a, list, "n", "nth", t)
		if err != nil {
			return nil, err
		}
		return listItems(list)[i], nil
	})
	declare("set-nth", "($list, $n, $value)", func(e *evalContext, a *frame, t token) (Value, error) {
		list := a.vars["list"]
		i, err := listIndex(a, list, "n", "set-nth", t)
		if err != nil {
			return nil, err
		}
		items := append([]Value(nil), listItems(list)...)
		items[i] = a.vars["value"]
		return List{
			Items:     items,
			Sep:       definedSeparator(list),
			Bracketed: isBracketed(list),
		}, nil
	})
	declare("join", "($list1, $list2, $separator: auto, $bracketed: auto)", func(e *evalContext, a *frame, t token) (Value, error) {
		l1, l2 := a.vars["list1"], a.vars["list2"]
		auto := sepSpace
		switch {
		case len(listItems(l1)) > 1 || listSeparator(l1) != sepUndecided:
			auto = definedSeparator(l1)
		case len(listItems(l2)) > 1 || listSeparator(l2) != sepUndecided:
			auto = definedSeparator(l2)
		}
		sep, err := argSeparator(a, "join", t, auto)
		if err != nil {
			return nil, err
		}
		bracketed := isBracketed(l1)
		if b := a.vars["bracketed"]; !isString(b, "auto") {
			bracketed = isTruthy(b)
		}
		items := append([]Value(nil), listItems(l1)...)
		items = append(items, listItems(l2)...)
		return List{Items: items, Sep: sep, Bracketed: bracketed}, nil
	})
	declare("append", "($list, $val, $separator: auto)", func(e *evalContext, a *frame, t token) (Value, error) {
		list := a.vars["list"]
		sep, err := argSeparator(a, "append", t, definedSeparator(list))
		if err != nil {
			return nil, err
		}
		items := append([]Value(nil), listItems(list)...)
		items = append(items, a.vars["val"])
		return List{Items: items, Sep: sep, Bracketed: isBracketed(list)}, nil
	})
	declare("zip", "($lists...)", func(e *evalContext, a *frame, t token) (Value, error) {
		lists := listItems(a.vars["lists"])
		size := -1
		for _, l := range lists {
			if n := len(listItems(l)); size == -1 || n < size {
				size = n
			}
		}
		out := make([]Value, 0, size)
		for i := 0; i < size; i++ {
			row := make([]Value, len(lists))
			for j, l := range lists {
				row[j] = listItems(l)[i]
			}
			out = append(out, List{Items: row, Sep: sepSpace})
		}
		return List{Items: out, Sep: sepComma}, nil
	})
	declare("index", "($list, $value)", func(e *evalContext, a *frame, t token) (Value, error) {
		for i, item := range listItems(a.vars["list"]) {
			if Equals(item, a.vars["value"]) {
				return unitless(newNumber(int64(i + 1))), nil
			}
		}
		return null, nil
	})
	declare("list-separator", "($list)", func(e *evalContext, a *frame, t token) (Value, error) {
		return ident(definedSeparator(a.vars["list"]).String()), nil
	})
	declare("is-bracketed", "($list)", func(e *evalContext, a *frame, t token) (Value, error) {
		return Bool(isBracketed(a.vars["list"])), nil
	})
}

func isString(v Value, text string) bool {
	s, ok := v.(String)
	return ok && s.Text == text
}

func declareMapFunctions() {
	declare("map-get", "($map, $key)", func(e *evalContext, a *frame, t token) (Value, error) {
		m, err := argMap(a, "map", "map-get", t)
		if err != nil {
			return nil, err
		}
		if v, ok := m.Get(a.vars["key"]); ok {
			return v, nil
		}
		return null, nil
	})
	declare("map-has-key", "($map, $key)", func(e *evalContext, a *frame, t token) (Value, error) {
		m, err := argMap(a, "map", "map-has-key", t)
		if err != nil {
			return nil, err
		}
		_, ok := m.Get(a.vars["key"])
		return Bool(ok), nil
	})
	declare("map-merge", "($map1, $map2)", func(e *evalContext, a *frame, t token) (Value, error) {
		m1, err := argMap(a, "map1", "map-merge", t)
		if err != nil {
			return nil, err
		}
		m2, err := argMap(a, "map2", "map-merge", t)
		if err != nil {
			return nil, err
		}
		out := m1
		for i, k := range m2.Keys {
			out = out.With(k, m2.Values[i])
		}
		return out, nil
	})
	declare("map-remove", "($map, $keys...)", func(e *evalContext, a *frame, t token) (Value, error) {
		m, err := argMap(a, "map", "map-remove", t)
		if err != nil {
			return nil, err
		}
		keys := listItems(a.vars["keys"])
		out := &Map{}
	entries:
		for i, k := range m.Keys {
			for _, removed := range keys {
				if Equals(k, removed) {
					continue entries
				}
			}
			out.Keys = append(out.Keys, k)
			out.Values = append(out.Values, m.Values[i])
		}
		return out, nil
	})
	declare("map-keys", "($map)", func(e *evalContext, a *frame, t token) (Value, error) {
		m, err := argMap(a, "map", "map-keys", t)
		if err != nil {
			return nil, err
		}
		return List{Items: append([]Value(nil), m.Keys...), Sep: sepComma}, nil
	})
	declare("map-values", "($map)", func(e *evalContext, a *frame, t token) (Value, error) {
		m, err := argMap(a, "map", "map-values", t)
		if err != nil {
			return nil, err
		}
		return List{Items: append([]Value(nil), m.Values...), Sep: sepComma}, nil
	})
}

// codepoint maps a 1-based, possibly negative, string index to an offset.
func codepoint(i, size int, allowNegative bool) int {
	switch {
	case i == 0:
		return 0
	case i > 0:
		return min(i-1, size)
	}
	if r := size + i; r >= 0 || allowNegative {
		return r
	}
	return 0
}

func declareStringFunctions() {
	declare("quote", "($string)", func(e *evalContext, a *frame, t token) (Value, error) {
		s, err := argString(a, "string", "quote", t)
		if err != nil {
			return nil, err
		}
		return quoted(s.Text), nil
	})
	declare("unquote", "($string)", func(e *evalContext, a *frame, t token) (Value, error) {
		s, err := argString(a, "string", "unquote", t)
		if err != nil {
			return nil, err
		}
		return ident(s.Text), nil
	})
	declare("str-length", "($string)", func(e *evalContext, a *frame, t token) (Value, error) {
		s, err := argString(a, "string", "str-length", t)
		if err != nil {
			return nil, err
		}
		return unitless(newNumber(int64(utf8.RuneCountInString(s.Text)))), nil
	})
	declare("str-index", "($string, $substring)", func(e *evalContext, a *frame, t token) (Value, error) {
		s, err := argString(a, "string", "str-index", t)
		if err != nil {
			return nil, err
		}
		sub, err := argString(a, "substring", "str-index", t)
		if err != nil {
			return nil, err
		}
		i := strings.Index(s.Text, sub.Text)
		if i == -1 {
			return null, nil
		}
		return unitless(newNumber(int64(utf8.RuneCountInString(s.Text[:i]) + 1))), nil
	})
	declare("str-insert", "($string, $insert, $index)", func(e *evalContext, a *frame, t token) (Value, error) {
		s, err := argString(a, "string", "str-insert", t)
		if err != nil {
			return nil, err
		}
		ins, err := argString(a, "insert", "str-insert", t)
		if err != nil {
			return nil, err
		}
		idx, err := argInt(a, "index", "str-insert", t)
		if err != nil {
			return nil, err
		}
		runes := []rune(s.Text)
		var at int
		if idx > 0 {
			at = min(idx-1, len(runes))
		} else {
			at = max(len(runes)+idx+1, 0)
		}
		text := string(runes[:at]) + ins.Text + string(runes[at:])
		return String{Text: text, Quoted: s.Quoted}, nil
	})
	declare("str-slice", "($string, $start-at, $end-at: -1)", func(e *evalContext, a *frame, t token) (Value, error) {
		s, err := argString(a, "string", "str-slice", t)
		if err != nil {
			return nil, err
		}
		start, err := argInt(a, "start-at", "str-slice", t)
		if err != nil {
			return nil, err
		}
		end, err := argInt(a, "end-at", "str-slice", t)
		if err != nil {
			return nil, err
		}
		runes := []rune(s.Text)
		size := len(runes)
		if size == 0 {
			return String{Quoted: s.Quoted}, nil
		}
		from := codepoint(start, size, false)
		to := codepoint(end, size, true)
		if to == size {
			to--
		}
		if to < from {
			return String{Quoted: s.Quoted}, nil
		}
		return String{Text: string(runes[from : to+1]), Quoted: s.Quoted}, nil
	})
	caseFunction := func(name string, fn func(string) string) {
		declare(name, "($string)", func(e *evalContext, a *frame, t token) (Value, error) {
			s, err := argString(a, "string", name, t)
			if err != nil {
				return nil, err
			}
			return String{Text: fn(s.Text), Quoted: s.Quoted}, nil
		})
	}
	caseFunction("to-upper-case", strings.ToUpper)
	caseFunction("to-lower-case", strings.ToLower)
}
