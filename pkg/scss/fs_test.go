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
	"os"
	"path"
	"testing"
	"testing/fstest"
)

func TestIOFS(t *testing.T) {
	f := IOFS{FS: fstest.MapFS{
		"lib/_a.scss": {Data: []byte("$c: red;")},
		"in.scss":     {Data: []byte("@import \"a\";\na { color: $c; }")},
	}}
	if !f.IsDir("lib") || f.IsFile("lib") {
		t.Errorf("lib is not reported as a directory")
	}
	if !f.IsFile("lib/_a.scss") {
		t.Errorf("lib/_a.scss is not reported as a file")
	}
	got, err := Compile("in.scss", Options{FS: f, LoadPaths: []string{"lib"}})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if want := "a {\n  color: red;\n}\n"; got.CSS != want {
		t.Errorf("Compile() diff:\n%s", diffCSS(want, got.CSS))
	}
}

func TestOSFS(t *testing.T) {
	dir := t.TempDir()
	p := path.Join(dir, "a.scss")
	if err := os.WriteFile(p, []byte("a { b: c; }"), 0o600); err != nil {
		t.Fatal(err)
	}
	f := OSFS{}
	if !f.IsFile(p) || f.IsDir(p) {
		t.Errorf("%s is not reported as a file", p)
	}
	if !f.IsDir(dir) || f.IsFile(dir) {
		t.Errorf("%s is not reported as a directory", dir)
	}
	got, err := Compile(p, Options{})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if want := "a {\n  b: c;\n}\n"; got.CSS != want {
		t.Errorf("Compile() diff:\n%s", diffCSS(want, got.CSS))
	}
	if _, err = Compile(path.Join(dir, "missing.scss"), Options{}); err == nil {
		t.Errorf("Compile() of a missing file error = nil")
	}
}

func TestCompileUsing(t *testing.T) {
	files := fakeFS{
		"in.scss": "@import \"b\";",
		"b.scss":  ".b { x: y; }",
	}
	got, err := CompileUsing(files.ReadFile, "in.scss", Options{})
	if err != nil {
		t.Fatalf("CompileUsing() error = %v", err)
	}
	if want := ".b {\n  x: y;\n}\n"; got.CSS != want {
		t.Errorf("CompileUsing() diff:\n%s", diffCSS(want, got.CSS))
	}
}
