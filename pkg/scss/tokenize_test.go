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
	"reflect"
	"testing"
)

type lexed struct {
	k kind
	v string
}

func lex(s string) []lexed {
	var out []lexed
	for _, t := range tokenize(s, 1) {
		out = append(out, lexed{k: t.kind, v: t.v})
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []lexed
	}{
		{
			name: "declaration",
			src:  "a:10px;",
			want: []lexed{
				{tokenIdentifier, "a"},
				{tokenColon, ":"},
				{tokenNum, "10"},
				{tokenIdentifier, "px"},
				{tokenSemi, ";"},
			},
		},
		{
			name: "variable",
			src:  "$a-b",
			want: []lexed{
				{tokenDollar, "$"},
				{tokenIdentifier, "a-b"},
			},
		},
		{
			name: "unit followed by minus",
			src:  "1px-2",
			want: []lexed{
				{tokenNum, "1"},
				{tokenIdentifier, "px"},
				{tokenMinus, "-"},
				{tokenNum, "2"},
			},
		},
		{
			name: "vendor prefix",
			src:  "-moz-box",
			want: []lexed{{tokenIdentifier, "-moz-box"}},
		},
		{
			name: "decimal without leading zero",
			src:  ".5em",
			want: []lexed{
				{tokenNum, ".5"},
				{tokenIdentifier, "em"},
			},
		},
		{
			name: "raw url",
			src:  "url(a/b.png)",
			want: []lexed{
				{tokenIdentifier, "url"},
				{tokenParensOpen, "("},
				{tokenIdentifier, "a/b.png"},
				{tokenParensClose, ")"},
			},
		},
		{
			name: "quoted with interpolation",
			src:  "\"a#{b}c\"",
			want: []lexed{
				{tokenDoubleQuote, "\""},
				{tokenIdentifier, "a"},
				{tokenHash, "#"},
				{tokenCurlyOpen, "{"},
				{tokenIdentifier, "b"},
				{tokenCurlyClose, "}"},
				{tokenIdentifier, "c"},
				{tokenDoubleQuote, "\""},
			},
		},
		{
			name: "escaped quote",
			src:  `'a\'b'`,
			want: []lexed{
				{tokenSingleQuote, "'"},
				{tokenIdentifier, "a"},
				{tokenBackslash, "\\"},
				{tokenIdentifier, "'"},
				{tokenIdentifier, "b"},
				{tokenSingleQuote, "'"},
			},
		},
		{
			name: "line comment",
			src:  "a // c\nb",
			want: []lexed{
				{tokenIdentifier, "a"},
				{space, " "},
				{tokenNewline, "\n"},
				{tokenIdentifier, "b"},
			},
		},
		{
			name: "block comment",
			src:  "a/* c */b",
			want: []lexed{
				{tokenIdentifier, "a"},
				{tokenIdentifier, "b"},
			},
		},
		{
			name: "empty",
			src:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lex(tt.src); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokenize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTokenizePositions(t *testing.T) {
	tt := tokenize("a\n  b", 3)
	last := tt[len(tt)-1]
	if last.v != "b" || last.f != 3 || last.line != 2 || last.column != 3 {
		t.Errorf("position of b = %s, want file 3 line 2 column 3", last)
	}
}

func TestTokenizerCache(t *testing.T) {
	r, err := newTokenizer(2)
	if err != nil {
		t.Fatalf("newTokenizer() error = %v", err)
	}
	a1, f1 := r.Tokenize("a {}", "a.scss")
	a2, f2 := r.Tokenize("a {}", "a.scss")
	if f1 != f2 {
		t.Errorf("file ids differ: %d != %d", f1, f2)
	}
	if &a1[0] != &a2[0] {
		t.Errorf("Tokenize() did not reuse cached tokens")
	}
	b, _ := r.Tokenize("b {}", "a.scss")
	if b[0].v != "b" {
		t.Errorf("Tokenize() returned stale tokens %v", b)
	}
	_, f3 := r.Tokenize("c {}", "c.scss")
	if f3 == f1 {
		t.Errorf("distinct files share id %d", f3)
	}
	if got := r.ResolveFile(f3); got != "c.scss" {
		t.Errorf("ResolveFile() = %q, want c.scss", got)
	}
	if got := r.ResolveFile(0); got != "" {
		t.Errorf("ResolveFile(0) = %q, want empty", got)
	}
}
