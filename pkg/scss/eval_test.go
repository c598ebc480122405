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
	"testing"
)

func newTestContext(t *testing.T) *evalContext {
	t.Helper()
	r, err := newTokenizer(0)
	if err != nil {
		t.Fatalf("newTokenizer() error = %v", err)
	}
	c := &compilation{
		o:       Options{FS: fakeFS{}}.withDefaults(),
		r:       r,
		root:    &cssBlock{},
		imports: []string{"test.scss"},
		stack:   []string{"test.scss"},
	}
	return &evalContext{
		c:         c,
		scopes:    newScopes(),
		file:      "test.scss",
		container: c.root,
	}
}

func evalString(e *evalContext, s string) (Value, error) {
	return e.evalTokens(tokenize(s, 0))
}

func TestEvalExpression(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    string
		wantErr bool
	}{
		{name: "add", src: "1 + 2", want: "3"},
		{name: "multiply unit", src: "10px * 2", want: "20px"},
		{name: "divide", src: "10px / 4", want: "2.5px"},
		{name: "repeating fraction", src: "1 / 3", want: "0.3333333333"},
		{name: "exact fractions", src: "1 / 3 * 3", want: "1"},
		{name: "modulo", src: "10 % 3", want: "1"},
		{name: "convert units", src: "1in + 72pt", want: "2in"},
		{name: "cancel units", src: "10px / 2px", want: "5"},
		{name: "negate", src: "-(2px)", want: "-2px"},
		{name: "equal after conversion", src: "1in == 96px", want: "true"},
		{name: "compare", src: "1 < 2 and 2 < 3", want: "true"},
		{name: "or", src: "null or 3", want: "3"},
		{name: "not", src: "not true", want: "false"},
		{name: "quoted concat", src: "\"a\" + b", want: "\"ab\""},
		{name: "unquoted concat", src: "a + 1", want: "a1"},
		{name: "hyphen concat", src: "a - b", want: "a-b"},
		{name: "space list", src: "1 2 3", want: "1 2 3"},
		{name: "comma list", src: "1 2, 3", want: "1 2, 3"},
		{name: "bracketed", src: "[1, 2]", want: "[1, 2]"},
		{name: "map", src: "(a: 1, b: 2)", want: "(a: 1, b: 2)"},
		{name: "single element list", src: "(1,)", want: "(1,)"},
		{name: "interpolation", src: "#{1 + 1}px", want: "2px"},
		{name: "hex color", src: "#fff", want: "#fff"},
		{name: "named color", src: "red", want: "red"},
		{name: "incompatible units", src: "1px + 1s", wantErr: true},
		{name: "undefined variable", src: "$nope", wantErr: true},
		{name: "duplicate map key", src: "(a: 1, a: 2)", wantErr: true},
		{name: "compare string", src: "a < 1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := evalString(newTestContext(t), tt.src)
			if (err != nil) != tt.wantErr {
				t.Errorf("eval(%q) error = %v, wantErr %v", tt.src, err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if s := inspect(got); s != tt.want {
				t.Errorf("eval(%q) = %s, want %s", tt.src, s, tt.want)
			}
		})
	}
}

func TestEvalVariables(t *testing.T) {
	e := newTestContext(t)
	e.scopes.insert("w", Dimension{Num: newNumber(10), Unit: unitOf("px")})
	e.scopes.insert("list", List{
		Items: []Value{unitless(newNumber(1)), unitless(newNumber(2))},
		Sep:   sepComma,
	})
	tests := []struct {
		src  string
		want string
	}{
		{src: "$w * 2", want: "20px"},
		{src: "-$w", want: "-10px"},
		{src: "$list", want: "1, 2"},
		{src: "length($list)", want: "2"},
		{src: "\"#{$w}\"", want: "\"10px\""},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := evalString(e, tt.src)
			if err != nil {
				t.Fatalf("eval(%q) error = %v", tt.src, err)
			}
			if s := inspect(got); s != tt.want {
				t.Errorf("eval(%q) = %s, want %s", tt.src, s, tt.want)
			}
		})
	}
}
