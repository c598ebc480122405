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

func TestBuiltinFunctions(t *testing.T) {
	tests := []struct {
		src     string
		want    string
		wantErr bool
	}{
		{src: "percentage(0.5)", want: "50%"},
		{src: "round(1.5px)", want: "2px"},
		{src: "round(-1.5)", want: "-2"},
		{src: "ceil(1.2)", want: "2"},
		{src: "floor(-1.2)", want: "-2"},
		{src: "abs(-3em)", want: "3em"},
		{src: "min(1px, 3px, 2px)", want: "1px"},
		{src: "max(1in, 95px)", want: "1in"},
		{src: "max(1px, 2em)", want: "max(1px, 2em)"},
		{src: "unit(1px)", want: "\"px\""},
		{src: "unitless(1)", want: "true"},
		{src: "comparable(1px, 1in)", want: "true"},
		{src: "comparable(1px, 1s)", want: "false"},
		{src: "percentage(1px)", wantErr: true},
		{src: "min()", wantErr: true},

		{src: "length(1 2 3)", want: "3"},
		{src: "length((a: 1, b: 2))", want: "2"},
		{src: "nth(a b c, 2)", want: "b"},
		{src: "nth(a b c, -1)", want: "c"},
		{src: "set-nth(a b c, 1, x)", want: "x b c"},
		{src: "join(a b, c d)", want: "a b c d"},
		{src: "join((a, b), c)", want: "a, b, c"},
		{src: "join(a, b, $separator: comma)", want: "a, b"},
		{src: "join(a, b, $bracketed: true)", want: "[a b]"},
		{src: "append(a b, c)", want: "a b c"},
		{src: "append((a, b), c)", want: "a, b, c"},
		{src: "zip(1 2 3, a b)", want: "1 a, 2 b"},
		{src: "index(a b c, c)", want: "3"},
		{src: "index(a b c, d)", want: "null"},
		{src: "list-separator((a, b))", want: "comma"},
		{src: "list-separator(a)", want: "space"},
		{src: "is-bracketed([a])", want: "true"},
		{src: "nth(a b c, 4)", wantErr: true},
		{src: "nth(a b c, 0)", wantErr: true},
		{src: "join(a, b, $separator: dash)", wantErr: true},

		{src: "map-get((a: 1, b: 2), b)", want: "2"},
		{src: "map-get((a: 1), c)", want: "null"},
		{src: "map-has-key((a: 1), a)", want: "true"},
		{src: "map-merge((a: 1, b: 2), (b: 3, c: 4))", want: "(a: 1, b: 3, c: 4)"},
		{src: "map-remove((a: 1, b: 2, c: 3), a, c)", want: "(b: 2)"},
		{src: "map-keys((a: 1, b: 2))", want: "a, b"},
		{src: "map-values((a: 1, b: 2))", want: "1, 2"},
		{src: "map-get((), a)", want: "null"},
		{src: "map-get(1, a)", wantErr: true},

		{src: "quote(a)", want: "\"a\""},
		{src: "unquote(\"a b\")", want: "a b"},
		{src: "str-length(\"héllo\")", want: "5"},
		{src: "str-index(\"abcd\", \"cd\")", want: "3"},
		{src: "str-index(\"abcd\", \"x\")", want: "null"},
		{src: "str-insert(\"abcd\", \"X\", 2)", want: "\"aXbcd\""},
		{src: "str-insert(\"abcd\", \"X\", -1)", want: "\"abcdX\""},
		{src: "str-slice(\"abcd\", 2, 3)", want: "\"bc\""},
		{src: "str-slice(\"abcd\", 2)", want: "\"bcd\""},
		{src: "str-slice(\"abcd\", -2)", want: "\"cd\""},
		{src: "str-slice(\"abc\", 10)", want: "\"\""},
		{src: "to-upper-case(abc)", want: "ABC"},
		{src: "to-lower-case(\"ABC\")", want: "\"abc\""},
		{src: "str-length(1)", wantErr: true},

		{src: "type-of(1px)", want: "number"},
		{src: "type-of(\"a\")", want: "string"},
		{src: "type-of(a b)", want: "list"},
		{src: "type-of((a: 1))", want: "map"},
		{src: "type-of(#fff)", want: "color"},
		{src: "type-of(null)", want: "null"},
		{src: "type-of(true)", want: "bool"},
		{src: "inspect((a: 1))", want: "(a: 1)"},
		{src: "function-exists(darken)", want: "true"},
		{src: "function-exists(nope)", want: "false"},
		{src: "variable-exists(nope)", want: "false"},
		{src: "mixin-exists(nope)", want: "false"},
		{src: "if(true, 1, 2)", want: "1"},
		{src: "if(false, 1, 2)", want: "2"},
		{src: "if(null, $nope, 2)", want: "2"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
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

func TestKeywords(t *testing.T) {
	files := fakeFS{
		"in.scss": `@mixin m($args...) {
  x: inspect(keywords($args));
  y: length($args);
}
a {
  @include m(1, 2, $c-d: 3);
}`,
	}
	got, err := Compile("in.scss", Options{FS: files})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	want := "a {\n  x: (c-d: 3);\n  y: 3;\n}\n"
	if got.CSS != want {
		t.Errorf("Compile() diff:\n%s", diffCSS(want, got.CSS))
	}
}
