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

func TestReadUntilClosingParen(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		want     string
		wantRest string
		wantErr  string
	}{
		{
			name:     "nested",
			src:      "(a (b) c) d",
			want:     "a (b) c)",
			wantRest: " d",
		},
		{
			name:     "closer in quotes",
			src:      `(a ")" c) d`,
			want:     `a ")" c)`,
			wantRest: " d",
		},
		{
			name:     "escaped closer",
			src:      `(a \) c) d`,
			want:     `a \) c)`,
			wantRest: " d",
		},
		{
			name:     "interpolation in quotes",
			src:      `("#{")"}") d`,
			want:     `"#{")"}")`,
			wantRest: " d",
		},
		{
			name:    "unterminated",
			src:     "(a (b)",
			wantErr: "expected \")\".",
		},
		{
			name:    "unterminated quote",
			src:     "(a \"b)",
			wantErr: "expected \"\\\"\".",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStream(tokenize(tt.src, 1))
			open := s.next()
			got, err := readUntilClosingParen(s, open)
			if tt.wantErr != "" {
				e, ok := err.(*Error)
				if !ok || e.Kind != UnterminatedDelimiter || e.Message != tt.wantErr {
					t.Errorf("readUntilClosingParen() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("readUntilClosingParen() error = %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("readUntilClosingParen() = %q, want %q", got.String(), tt.want)
			}
			if rest := s.rest().String(); rest != tt.wantRest {
				t.Errorf("rest = %q, want %q", rest, tt.wantRest)
			}
		})
	}
}

func TestReadUntilClosingSquare(t *testing.T) {
	s := newStream(tokenize("[a {b} (c)] x", 1))
	open := s.next()
	got, err := readUntilClosingSquare(s, open)
	if err != nil {
		t.Fatalf("readUntilClosingSquare() error = %v", err)
	}
	if got.String() != "a {b} (c)]" {
		t.Errorf("readUntilClosingSquare() = %q", got.String())
	}
}

func TestReadUntilTopLevel(t *testing.T) {
	s := newStream(tokenize(`a: f(1;2) "x;y" #{1;2}; b`, 1))
	got, err := readUntilTopLevel(s, tokenSemi)
	if err != nil {
		t.Fatalf("readUntilTopLevel() error = %v", err)
	}
	if want := `a: f(1;2) "x;y" #{1;2}`; got.String() != want {
		t.Errorf("readUntilTopLevel() = %q, want %q", got.String(), want)
	}
	if s.peekKind() != tokenSemi {
		t.Errorf("readUntilTopLevel() consumed the stop token")
	}

	s = newStream(tokenize("a b", 1))
	got, err = readUntilTopLevel(s, tokenSemi)
	if err != nil {
		t.Fatalf("readUntilTopLevel() error = %v", err)
	}
	if got.String() != "a b" || !s.eof() {
		t.Errorf("readUntilTopLevel() = %q, want all input", got.String())
	}
}

func TestSplitTopLevel(t *testing.T) {
	parts := splitTopLevel(tokenize(`a, (b, c), [d, e], "f, g", #{h, i}`, 1), tokenComma)
	want := []string{"a", " (b, c)", " [d, e]", ` "f, g"`, " #{h, i}"}
	if len(parts) != len(want) {
		t.Fatalf("splitTopLevel() = %d parts, want %d", len(parts), len(want))
	}
	for i, p := range parts {
		if p.String() != want[i] {
			t.Errorf("part %d = %q, want %q", i, p.String(), want[i])
		}
	}

	if i := indexTopLevel(tokenize("a(b:c):d", 1), tokenColon); i != 6 {
		t.Errorf("indexTopLevel() = %d, want 6", i)
	}
	if i := indexTopLevel(tokenize("a(b:c)", 1), tokenColon); i != -1 {
		t.Errorf("indexTopLevel() = %d, want -1", i)
	}
}
