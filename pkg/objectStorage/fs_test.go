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

package objectStorage

import (
	"context"
	"io"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/das7pad/scss-go/pkg/errors"
	"github.com/das7pad/scss-go/pkg/scss"
)

type fakeBackend struct {
	mu      sync.Mutex
	objects map[string]string
	types   map[string]string
}

func newFakeBackend(objects map[string]string) *fakeBackend {
	return &fakeBackend{objects: objects, types: make(map[string]string)}
}

func (b *fakeBackend) SendFromStream(_ context.Context, bucket string, key string, reader io.Reader, options SendOptions) error {
	blob, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if int64(len(blob)) != options.ContentSize {
		return errors.New("size mismatch")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[bucket+"/"+key] = string(blob)
	b.types[bucket+"/"+key] = options.ContentType
	return nil
}

func (b *fakeBackend) GetReadStream(_ context.Context, bucket string, key string) (int64, io.ReadCloser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.objects[bucket+"/"+key]
	if !ok {
		return 0, nil, &errors.NotFoundError{}
	}
	return int64(len(s)), io.NopCloser(strings.NewReader(s)), nil
}

func (b *fakeBackend) GetObjectSize(_ context.Context, bucket string, key string) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.objects[bucket+"/"+key]
	if !ok {
		return 0, &errors.NotFoundError{}
	}
	return int64(len(s)), nil
}

func (b *fakeBackend) HasPrefix(_ context.Context, bucket string, prefix string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for k := range b.objects {
		if strings.HasPrefix(k, bucket+"/"+prefix) {
			return true, nil
		}
	}
	return false, nil
}

func TestFS(t *testing.T) {
	f := NewFS(newFakeBackend(map[string]string{
		"b/styles/a.scss":           "a",
		"b/styles/lib/_index.scss":  "index",
		"b/other/styles/a.scss":     "other",
		"c/styles/not-in-bucket.sc": "",
	}), "b", "/styles/")

	if got, err := f.ReadFile("a.scss"); err != nil || string(got) != "a" {
		t.Errorf("ReadFile() = %q, %v", got, err)
	}
	if _, err := f.ReadFile("nope.scss"); !errors.IsNotFoundError(err) {
		t.Errorf("ReadFile() error = %v, want not found", err)
	}
	tests := []struct {
		name   string
		isFile bool
		isDir  bool
	}{
		{name: "a.scss", isFile: true},
		{name: "./lib/../a.scss", isFile: true},
		{name: "lib", isDir: true},
		{name: "lib/_index.scss", isFile: true},
		{name: "li"},
		{name: "not-in-bucket.sc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.IsFile(tt.name); got != tt.isFile {
				t.Errorf("IsFile() = %v, want %v", got, tt.isFile)
			}
			if got := f.IsDir(tt.name); got != tt.isDir {
				t.Errorf("IsDir() = %v, want %v", got, tt.isDir)
			}
		})
	}
}

func TestFSCompile(t *testing.T) {
	b := newFakeBackend(map[string]string{
		"b/in.scss":               "@import 'theme';\na { color: $c; }\n",
		"b/theme/_index.scss":     "@import 'colors';\n",
		"b/theme/_colors.scss":    "$c: #00f;\n",
		"b/out/unrelated.css.txt": "",
	})
	f := NewFS(b, "b", "")
	res, err := scss.Compile("in.scss", scss.Options{FS: f})
	if err != nil {
		t.Fatal(err)
	}
	if want := "a {\n  color: #00f;\n}\n"; res.CSS != want {
		t.Errorf("Compile() = %q, want %q", res.CSS, want)
	}
	wantImports := []string{"in.scss", "theme/_index.scss", "theme/_colors.scss"}
	if !reflect.DeepEqual(res.Imports, wantImports) {
		t.Errorf("Compile() imports = %v, want %v", res.Imports, wantImports)
	}

	if err = f.Upload(context.Background(), "out/in.css", res.CSS); err != nil {
		t.Fatal(err)
	}
	if got := b.objects["b/out/in.css"]; got != res.CSS {
		t.Errorf("Upload() stored %q", got)
	}
	if got := b.types["b/out/in.css"]; got != "text/css; charset=utf-8" {
		t.Errorf("Upload() content type %q", got)
	}
}

func TestFromOptions(t *testing.T) {
	tests := []struct {
		name string
		o    Options
	}{
		{name: "missing provider", o: Options{Endpoint: "s3", Bucket: "b"}},
		{name: "missing endpoint", o: Options{Provider: "minio", Bucket: "b"}},
		{name: "missing bucket", o: Options{Provider: "minio", Endpoint: "s3"}},
		{name: "unknown provider", o: Options{Provider: "gcs", Endpoint: "s3", Bucket: "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromOptions(tt.o); !errors.IsValidationError(err) {
				t.Errorf("FromOptions() error = %v, want validation error", err)
			}
		})
	}
}
