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

	"github.com/das7pad/scss-go/pkg/errors"
)

type Options struct {
	Provider string `json:"provider"`
	Endpoint string `json:"endpoint"`
	Secure   bool   `json:"secure"`
	Key      string `json:"key"`
	Secret   string `json:"secret"`
	Bucket   string `json:"bucket"`
	Prefix   string `json:"prefix"`
}

func (o Options) Validate() error {
	if o.Provider == "" {
		return &errors.ValidationError{Msg: "missing provider"}
	}
	if o.Endpoint == "" {
		return &errors.ValidationError{Msg: "missing endpoint"}
	}
	if o.Bucket == "" {
		return &errors.ValidationError{Msg: "missing bucket"}
	}
	return nil
}

type SendOptions struct {
	ContentSize     int64
	ContentType     string
	ContentEncoding string
}

type Backend interface {
	SendFromStream(
		ctx context.Context,
		bucket string,
		key string,
		reader io.Reader,
		options SendOptions,
	) error

	GetReadStream(
		ctx context.Context,
		bucket string,
		key string,
	) (int64, io.ReadCloser, error)

	GetObjectSize(
		ctx context.Context,
		bucket string,
		key string,
	) (int64, error)

	HasPrefix(
		ctx context.Context,
		bucket string,
		prefix string,
	) (bool, error)
}

func FromOptions(options Options) (Backend, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	switch options.Provider {
	case "minio":
		return initMinioBackend(options)
	}
	return nil, &errors.ValidationError{
		Msg: "unknown provider: " + options.Provider,
	}
}
