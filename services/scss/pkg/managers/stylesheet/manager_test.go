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

package stylesheet

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/das7pad/scss-go/pkg/errors"
	"github.com/das7pad/scss-go/pkg/scss"
	"github.com/das7pad/scss-go/services/scss/pkg/types"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, s := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(s), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func newTestManager(t *testing.T, files map[string]string) (*manager, string) {
	root := t.TempDir()
	writeFiles(t, root, files)
	m, err := New(&types.Options{
		Root:      root,
		LoadPaths: []string{"vendor"},
		LRUSize:   10,
	})
	if err != nil {
		t.Fatal(err)
	}
	return m.(*manager), root
}

func TestCompileFile(t *testing.T) {
	m, root := newTestManager(t, map[string]string{
		"app/main.scss":          "@import 'vars', 'lib';\na { color: $c; }\n",
		"app/_vars.scss":         "$c: red;\n",
		"vendor/lib.scss":        "b { top: 0; }\n",
		"app/broken.scss":        "a { color: $nope; }\n",
		"app/missing.scss":       "@import 'nope';\n",
		"app/not-a-stylesheet.x": "",
	})
	ctx := context.Background()

	r, err := m.CompileFile(ctx, "app/main.scss", scss.Compressed)
	if err != nil {
		t.Fatal(err)
	}
	if want := "b{top:0}a{color:red}"; r.CSS != want {
		t.Errorf("CompileFile() = %q, want %q", r.CSS, want)
	}
	if got := strings.Join(r.Imports, ","); got != "app/_vars.scss,vendor/lib.scss" {
		t.Errorf("CompileFile() imports = %s", got)
	}

	t.Run("cached", func(t *testing.T) {
		if m.cache.Len() != 1 {
			t.Fatalf("cache size = %d", m.cache.Len())
		}
		r2, err2 := m.CompileFile(ctx, "app/main.scss", scss.Compressed)
		if err2 != nil || r2.CSS != r.CSS {
			t.Errorf("CompileFile() = %v, %v", r2, err2)
		}
	})

	t.Run("invalidated", func(t *testing.T) {
		writeFiles(t, root, map[string]string{"app/_vars.scss": "$c: blue;\n"})
		r2, err2 := m.CompileFile(ctx, "app/main.scss", scss.Compressed)
		if err2 != nil {
			t.Fatal(err2)
		}
		if want := "b{top:0}a{color:blue}"; r2.CSS != want {
			t.Errorf("CompileFile() = %q, want %q", r2.CSS, want)
		}
	})

	t.Run("style", func(t *testing.T) {
		r2, err2 := m.CompileFile(ctx, "app/main.scss", scss.Expanded)
		if err2 != nil {
			t.Fatal(err2)
		}
		if want := "b {\n  top: 0;\n}\n\na {\n  color: blue;\n}\n"; r2.CSS != want {
			t.Errorf("CompileFile() = %q, want %q", r2.CSS, want)
		}
	})

	errorTests := []struct {
		name  string
		p     types.StylesheetPath
		check func(err error) bool
	}{
		{"missing entry", "app/nope.scss", errors.IsNotFoundError},
		{"escape", "../etc/x.scss", errors.IsValidationError},
		{"absolute", "/etc/x.scss", errors.IsValidationError},
		{"unclean", "app/./main.scss", errors.IsValidationError},
		{"extension", "app/not-a-stylesheet.x", errors.IsValidationError},
		{"compile error", "app/broken.scss", func(err error) bool {
			return scss.IsKind(err, scss.UndefinedVariable)
		}},
		{"missing import", "app/missing.scss", func(err error) bool {
			return scss.IsKind(err, scss.ImportNotFound)
		}},
	}
	for _, tt := range errorTests {
		t.Run(tt.name, func(t *testing.T) {
			_, err2 := m.CompileFile(ctx, tt.p, scss.Expanded)
			if !tt.check(err2) {
				t.Errorf("CompileFile() error = %v", err2)
			}
		})
	}
}

func TestCompile(t *testing.T) {
	m, _ := newTestManager(t, map[string]string{
		"theme/_colors.scss": "$c: red;\n",
	})
	ctx := context.Background()
	tests := []struct {
		name    string
		request types.CompileRequest
		want    string
		wantErr func(err error) bool
	}{
		{
			name: "plain",
			request: types.CompileRequest{
				Source: "a { b: 1 + 2; }",
			},
			want: "a {\n  b: 3;\n}\n",
		},
		{
			name: "import relative to path",
			request: types.CompileRequest{
				Source: "@import 'colors';\na { color: $c; }",
				Path:   "theme/in.scss",
				Style:  scss.Compressed,
			},
			want: "a{color:red}",
		},
		{
			name:    "empty",
			request: types.CompileRequest{},
			wantErr: errors.IsValidationError,
		},
		{
			name: "bad path",
			request: types.CompileRequest{
				Source: "a { b: c; }",
				Path:   "../in.scss",
			},
			wantErr: errors.IsValidationError,
		},
		{
			name: "too large",
			request: types.CompileRequest{
				Source: strings.Repeat(" ", types.MaxSourceSize+1),
			},
			wantErr: errors.IsBodyTooLargeError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := m.Compile(ctx, &tt.request)
			if tt.wantErr != nil {
				if !tt.wantErr(err) {
					t.Errorf("Compile() error = %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if r.CSS != tt.want {
				t.Errorf("Compile() = %q, want %q", r.CSS, tt.want)
			}
		})
	}
}

func TestCompileFileCanceled(t *testing.T) {
	m, _ := newTestManager(t, map[string]string{"a.scss": "a { b: c; }"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Either the compile wins the race or the canceled context does.
	r, err := m.CompileFile(ctx, "a.scss", scss.Expanded)
	if err != nil && err != context.Canceled {
		t.Errorf("CompileFile() error = %v", err)
	}
	if err == nil && r.CSS != "a {\n  b: c;\n}\n" {
		t.Errorf("CompileFile() = %q", r.CSS)
	}
}
