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

package main

import (
	"context"
	"io"
	"reflect"
	"sort"
	"sync"
	"testing"

	"github.com/das7pad/scss-go/pkg/objectStorage"
	"github.com/das7pad/scss-go/pkg/scss"
)

type uploadRecorder struct {
	mu      sync.Mutex
	objects map[string]string
}

func (r *uploadRecorder) SendFromStream(_ context.Context, bucket string, key string, reader io.Reader, _ objectStorage.SendOptions) error {
	blob, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.objects[bucket+"/"+key] = string(blob)
	return nil
}

func (r *uploadRecorder) GetReadStream(context.Context, string, string) (int64, io.ReadCloser, error) {
	panic("not implemented")
}

func (r *uploadRecorder) GetObjectSize(context.Context, string, string) (int64, error) {
	panic("not implemented")
}

func (r *uploadRecorder) HasPrefix(context.Context, string, string) (bool, error) {
	panic("not implemented")
}

func TestUploadKey(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    string
		wantErr bool
	}{
		{name: "file", out: "site.css", want: "site.css"},
		{name: "nested", out: "a/site.css", want: "a/site.css"},
		{name: "cleaned", out: "./a/../b/site.css", want: "b/site.css"},
		{name: "parent", out: "../site.css", wantErr: true},
		{name: "absolute", out: "/tmp/site.css", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uploadKey(tt.out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("uploadKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("uploadKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseTargetsDuplicateOutput(t *testing.T) {
	_, err := parseTargets([]string{"a.scss:out/site.css", "b.scss:./out/site.css"})
	if err == nil {
		t.Error("parseTargets() expected error")
	}
}

func TestBuildUploadsNestedOutputs(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFiles(t, map[string]string{
		"a/site.scss": "a { b: 1; }",
		"b/site.scss": "b { c: 2; }",
	})
	recorder := &uploadRecorder{objects: make(map[string]string)}
	c, err := scss.NewCompiler(scss.Options{Style: scss.Compressed})
	if err != nil {
		t.Fatalf("NewCompiler() error = %v", err)
	}
	b := &builder{
		c:      c,
		upload: objectStorage.NewFS(recorder, "assets", "css"),
		quiet:  true,
	}
	targets, err := parseTargets([]string{
		"a/site.scss:a/site.css", "b/site.scss:b/site.css",
	})
	if err != nil {
		t.Fatalf("parseTargets() error = %v", err)
	}
	for _, tgt := range targets {
		if _, err = b.build(context.Background(), tgt); err != nil {
			t.Fatalf("build(%s) error = %v", tgt, err)
		}
	}
	keys := make([]string, 0, len(recorder.objects))
	for k := range recorder.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	want := []string{"assets/css/a/site.css", "assets/css/b/site.css"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("uploaded %v, want %v", keys, want)
	}
	if got := recorder.objects["assets/css/b/site.css"]; got != "b{c:2}" {
		t.Errorf("uploaded css = %q, want b{c:2}", got)
	}
}
