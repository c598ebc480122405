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

package types

import (
	"github.com/das7pad/scss-go/pkg/errors"
	"github.com/das7pad/scss-go/pkg/objectStorage"
	"github.com/das7pad/scss-go/pkg/options/env"
)

type Options struct {
	LRUSize        int `json:"lru_size"`
	MaxImportDepth int `json:"max_import_depth"`

	// Root is the directory below which stylesheets are served.
	Root      string   `json:"root"`
	LoadPaths []string `json:"load_paths"`

	// ObjectStorage replaces Root with a bucket when set.
	ObjectStorage *objectStorage.Options `json:"object_storage,omitempty"`
}

func (o *Options) FillFromEnv(key string) {
	if env.GetString(key, "") != "" {
		env.MustParseJSON(o, key)
	}
	if o.Root == "" {
		o.Root = env.GetString("SCSS_ROOT", ".")
	}
	if len(o.LoadPaths) == 0 {
		o.LoadPaths = env.GetStringSlice("SCSS_LOAD_PATHS", nil)
	}
	if o.ObjectStorage == nil && env.GetString("OBJECT_STORAGE", "") != "" {
		o.ObjectStorage = &objectStorage.Options{}
		env.MustParseJSON(o.ObjectStorage, "OBJECT_STORAGE")
	}
}

func (o *Options) Validate() error {
	if o.LRUSize < 0 {
		return &errors.ValidationError{
			Msg: "lru_size must not be negative",
		}
	}
	if o.MaxImportDepth < 0 {
		return &errors.ValidationError{
			Msg: "max_import_depth must not be negative",
		}
	}
	if o.ObjectStorage != nil {
		if err := o.ObjectStorage.Validate(); err != nil {
			return errors.Tag(err, "object_storage")
		}
	} else if o.Root == "" {
		return &errors.ValidationError{Msg: "missing root"}
	}
	return nil
}
