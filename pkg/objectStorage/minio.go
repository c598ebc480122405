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

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/das7pad/scss-go/pkg/errors"
)

func initMinioBackend(o Options) (Backend, error) {
	mc, err := minio.New(o.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(o.Key, o.Secret, ""),
		Secure: o.Secure,
	})
	if err != nil {
		return nil, errors.Tag(err, "init minio client")
	}
	return &minioBackend{mc: mc}, nil
}

type minioBackend struct {
	mc *minio.Client
}

func rewriteError(err error) error {
	if err == nil {
		return nil
	}
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return &errors.NotFoundError{}
	}
	return err
}

func (m *minioBackend) SendFromStream(ctx context.Context, bucket string, key string, reader io.Reader, options SendOptions) error {
	_, err := m.mc.PutObject(ctx, bucket, key, reader, options.ContentSize, minio.PutObjectOptions{
		ContentType:     options.ContentType,
		ContentEncoding: options.ContentEncoding,
		SendContentMd5:  true,
	})
	return rewriteError(err)
}

func (m *minioBackend) GetReadStream(ctx context.Context, bucket string, key string) (int64, io.ReadCloser, error) {
	r, err := m.mc.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return 0, nil, errors.Tag(rewriteError(err), "get")
	}
	// Stat issues the request and surfaces a missing key.
	s, err := r.Stat()
	if err != nil {
		_ = r.Close()
		return 0, nil, errors.Tag(rewriteError(err), "stat")
	}
	return s.Size, r, nil
}

func (m *minioBackend) GetObjectSize(ctx context.Context, bucket string, key string) (int64, error) {
	o, err := m.mc.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return 0, rewriteError(err)
	}
	return o.Size, nil
}

func (m *minioBackend) HasPrefix(ctx context.Context, bucket string, prefix string) (bool, error) {
	ctx, done := context.WithCancel(ctx)
	defer done()
	c := m.mc.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
		MaxKeys:   1,
	})
	for info := range c {
		if err := info.Err; err != nil {
			return false, rewriteError(err)
		}
		return true, nil
	}
	return false, nil
}
