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
	"path"
	"strings"

	"github.com/das7pad/scss-go/pkg/errors"
	"github.com/das7pad/scss-go/pkg/scss"
)

const MaxSourceSize = 2 * 1024 * 1024

// StylesheetPath is a slash separated path below the root.
type StylesheetPath string

func (p StylesheetPath) Validate() error {
	s := string(p)
	if s == "" {
		return &errors.ValidationError{Msg: "missing path"}
	}
	if strings.HasPrefix(s, "/") || path.Clean(s) != s ||
		s == ".." || strings.HasPrefix(s, "../") {
		return &errors.ValidationError{Msg: "path must be clean and relative"}
	}
	if !strings.HasSuffix(s, ".scss") {
		return &errors.ValidationError{Msg: "path must end in .scss"}
	}
	return nil
}

type CompileRequest struct {
	Source string         `json:"source"`
	Path   StylesheetPath `json:"path"`
	Style  scss.Style     `json:"style"`
}

func (r *CompileRequest) Validate() error {
	if r.Source == "" {
		return &errors.ValidationError{Msg: "missing source"}
	}
	if len(r.Source) > MaxSourceSize {
		return &errors.BodyTooLargeError{}
	}
	if r.Path == "" {
		r.Path = "stdin.scss"
	}
	return r.Path.Validate()
}

type CompileResponse struct {
	CSS     string   `json:"css"`
	Imports []string `json:"imports,omitempty"`
}
