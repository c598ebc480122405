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
	"log"
	"strings"

	"github.com/das7pad/scss-go/pkg/errors"
)

type Style int8

const (
	Expanded Style = iota
	Compressed
)

func (s Style) String() string {
	if s == Compressed {
		return "compressed"
	}
	return "expanded"
}

func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(s) {
	case "", "expanded":
		return Expanded, nil
	case "compressed":
		return Compressed, nil
	}
	return Expanded, &errors.ValidationError{
		Msg: "unknown style " + s + ", expected expanded or compressed",
	}
}

func (s *Style) UnmarshalText(b []byte) error {
	v, err := ParseStyle(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

const (
	DefaultMaxImportDepth = 64
	DefaultCacheSize      = 1000
)

type Options struct {
	// LoadPaths are searched after the directory of the importing file.
	LoadPaths []string
	Style     Style
	FS        FS

	// Path of the entry stylesheet for CompileString.
	Path string

	MaxImportDepth int
	Logger         *log.Logger

	// CacheSize is the number of files NewCompiler keeps tokenized.
	CacheSize int
}

func (o Options) withDefaults() Options {
	if o.FS == nil {
		o.FS = OSFS{}
	}
	if o.MaxImportDepth <= 0 {
		o.MaxImportDepth = DefaultMaxImportDepth
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.Path == "" {
		o.Path = "stdin.scss"
	}
	return o
}

type Result struct {
	CSS string `json:"css"`

	// Imports lists the entry stylesheet and all imported ones in load order.
	Imports []string `json:"imports"`
}
