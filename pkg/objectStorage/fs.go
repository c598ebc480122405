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
	"bytes"
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/das7pad/scss-go/pkg/errors"
)

const defaultTimeout = 10 * time.Second

// NewFS exposes the objects below prefix in bucket as a stylesheet file
// system. Paths are object keys relative to prefix.
func NewFS(b Backend, bucket, prefix string) *FS {
	return &FS{
		b:       b,
		bucket:  bucket,
		prefix:  strings.Trim(prefix, "/"),
		Timeout: defaultTimeout,
	}
}

type FS struct {
	b       Backend
	bucket  string
	prefix  string
	Timeout time.Duration
}

func (f *FS) key(name string) string {
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	if f.prefix == "" {
		return name
	}
	return f.prefix + "/" + name
}

func (f *FS) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), f.Timeout)
}

func (f *FS) ReadFile(name string) ([]byte, error) {
	ctx, done := f.ctx()
	defer done()
	size, r, err := f.b.GetReadStream(ctx, f.bucket, f.key(name))
	if err != nil {
		return nil, errors.Tag(err, name)
	}
	defer func() { _ = r.Close() }()
	buf := bytes.NewBuffer(make([]byte, 0, size))
	if _, err = io.Copy(buf, r); err != nil {
		return nil, errors.Tag(err, "read "+name)
	}
	return buf.Bytes(), nil
}

func (f *FS) IsFile(name string) bool {
	ctx, done := f.ctx()
	defer done()
	_, err := f.b.GetObjectSize(ctx, f.bucket, f.key(name))
	return err == nil
}

func (f *FS) IsDir(name string) bool {
	ctx, done := f.ctx()
	defer done()
	p := f.key(name)
	if p != "" {
		p += "/"
	}
	ok, err := f.b.HasPrefix(ctx, f.bucket, p)
	return err == nil && ok
}

// Upload stores compiled css below the prefix of the file system.
func (f *FS) Upload(ctx context.Context, name, css string) error {
	err := f.b.SendFromStream(
		ctx, f.bucket, f.key(name), strings.NewReader(css), SendOptions{
			ContentSize: int64(len(css)),
			ContentType: "text/css; charset=utf-8",
		},
	)
	if err != nil {
		return errors.Tag(err, "upload "+name)
	}
	return nil
}
