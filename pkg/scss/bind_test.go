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

	"github.com/das7pad/scss-go/pkg/errors"
)

func bindString(e *evalContext, signature, call string) (*frame, error) {
	params := mustParseSignature(signature)
	s := newStream(tokenize(call, 0))
	s.skipSpace()
	open := s.next()
	args, err := parseCallArgs(s, open, e)
	if err != nil {
		return nil, err
	}
	return bind(params, args, e, e.scopes.snapshot())
}

func TestBind(t *testing.T) {
	tests := []struct {
		name      string
		signature string
		call      string
		want      map[string]string
	}{
		{
			name:      "positional",
			signature: "($a, $b)",
			call:      "(1, 2)",
			want:      map[string]string{"a": "1", "b": "2"},
		},
		{
			name:      "default",
			signature: "($a, $b: 2)",
			call:      "(1)",
			want:      map[string]string{"a": "1", "b": "2"},
		},
		{
			name:      "named in any order",
			signature: "($a, $b: 2)",
			call:      "($b: 3, $a: 1)",
			want:      map[string]string{"a": "1", "b": "3"},
		},
		{
			name:      "named with underscore",
			signature: "($a-b)",
			call:      "($a_b: 1)",
			want:      map[string]string{"a-b": "1"},
		},
		{
			name:      "default sees earlier parameters",
			signature: "($a, $b: $a * 2)",
			call:      "(5px)",
			want:      map[string]string{"a": "5px", "b": "10px"},
		},
		{
			name:      "rest",
			signature: "($a, $rest...)",
			call:      "(1, 2, 3)",
			want:      map[string]string{"a": "1", "rest": "2, 3"},
		},
		{
			name:      "empty rest",
			signature: "($a, $rest...)",
			call:      "(1)",
			want:      map[string]string{"a": "1", "rest": "()"},
		},
		{
			name:      "rest keeps call order",
			signature: "($rest...)",
			call:      "(1, $x: 2, 3)",
			want:      map[string]string{"rest": "1, 2, 3"},
		},
		{
			name:      "list splat",
			signature: "($a, $b, $c)",
			call:      "(1, (2, 3)...)",
			want:      map[string]string{"a": "1", "b": "2", "c": "3"},
		},
		{
			name:      "space list splat",
			signature: "($a, $b)",
			call:      "(1 2...)",
			want:      map[string]string{"a": "1", "b": "2"},
		},
		{
			name:      "map splat",
			signature: "($a, $b)",
			call:      "((b: 2, a: 1)...)",
			want:      map[string]string{"a": "1", "b": "2"},
		},
		{
			name:      "comma list value",
			signature: "($a)",
			call:      "((1, 2))",
			want:      map[string]string{"a": "1, 2"},
		},
		{
			name:      "no arguments",
			signature: "()",
			call:      "()",
			want:      map[string]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := bindString(newTestContext(t), tt.signature, tt.call)
			if err != nil {
				t.Fatalf("bind() error = %v", err)
			}
			if len(f.vars) != len(tt.want) {
				t.Errorf("bind() bound %d parameters, want %d", len(f.vars), len(tt.want))
			}
			for name, want := range tt.want {
				v, ok := f.vars[name]
				if !ok {
					t.Errorf("bind() did not bind $%s", name)
					continue
				}
				if got := inspect(v); got != want {
					t.Errorf("bind() $%s = %s, want %s", name, got, want)
				}
			}
		})
	}
}

func TestBindRestKeywords(t *testing.T) {
	f, err := bindString(newTestContext(t), "($a, $rest...)", "(1, 2, $c: 3, $d: 4)")
	if err != nil {
		t.Fatalf("bind() error = %v", err)
	}
	rest, ok := f.vars["rest"].(*ArgList)
	if !ok {
		t.Fatalf("bind() $rest = %T, want *ArgList", f.vars["rest"])
	}
	if got := inspect(rest); got != "2, 3, 4" {
		t.Errorf("bind() $rest = %s, want 2, 3, 4", got)
	}
	if got := rest.positionalCount(); got != 1 {
		t.Errorf("bind() $rest positional count = %d, want 1", got)
	}
	if got := inspect(rest.keywordMap()); got != "(c: 3, d: 4)" {
		t.Errorf("bind() $rest keywords = %s, want (c: 3, d: 4)", got)
	}
}

func TestBindErrors(t *testing.T) {
	tests := []struct {
		name      string
		signature string
		call      string
		wantKind  ErrorKind
		wantMsg   string
	}{
		{
			name:      "missing",
			signature: "($a, $b)",
			call:      "(1)",
			wantKind:  MissingArgument,
			wantMsg:   "Missing argument $b.",
		},
		{
			name:      "surplus",
			signature: "($a, $b)",
			call:      "(1, 2, 3)",
			wantKind:  SurplusArgument,
			wantMsg:   "Only 2 arguments allowed, but 3 were passed.",
		},
		{
			name:      "surplus single",
			signature: "($a)",
			call:      "(1, 2)",
			wantKind:  SurplusArgument,
			wantMsg:   "Only 1 argument allowed, but 2 were passed.",
		},
		{
			name:      "surplus without parameters",
			signature: "()",
			call:      "(1)",
			wantKind:  SurplusArgument,
			wantMsg:   "Only 0 arguments allowed, but 1 was passed.",
		},
		{
			name:      "unknown name",
			signature: "($a: 0)",
			call:      "($c: 1)",
			wantKind:  SurplusArgument,
			wantMsg:   "No argument named $c.",
		},
		{
			name:      "position and name",
			signature: "($a, $b)",
			call:      "(1, $a: 2)",
			wantKind:  SurplusArgument,
			wantMsg:   "Argument $a was passed both by position and by name.",
		},
		{
			name:      "duplicate name",
			signature: "($a)",
			call:      "($a: 1, $a: 2)",
			wantKind:  SurplusArgument,
			wantMsg:   "Duplicate argument $a.",
		},
		{
			name:      "splat of non string key",
			signature: "($a)",
			call:      "((1: 2)...)",
			wantKind:  InvalidSplatTarget,
			wantMsg:   "1 is not a string in (1: 2).",
		},
		{
			name:      "named splat",
			signature: "($a)",
			call:      "($a: 1...)",
			wantKind:  SyntaxError,
			wantMsg:   "expected \")\".",
		},
		{
			name:      "two dots",
			signature: "($a)",
			call:      "(1..)",
			wantKind:  SyntaxError,
			wantMsg:   "expected \".\".",
		},
		{
			name:      "unterminated",
			signature: "($a)",
			call:      "(1, 2",
			wantKind:  UnterminatedDelimiter,
			wantMsg:   "expected \")\".",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bindString(newTestContext(t), tt.signature, tt.call)
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("bind() error = %v, want *Error", err)
			}
			if e.Kind != tt.wantKind || e.Message != tt.wantMsg {
				t.Errorf(
					"bind() error = %s %q, want %s %q",
					e.Kind, e.Message, tt.wantKind, tt.wantMsg,
				)
			}
		})
	}
}
