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

package httpUtils

import (
	"encoding/json"
	"net/http"

	"github.com/das7pad/scss-go/pkg/errors"
)

const maxJSONBodySize = 10 * 1024 * 1024

// MustParseJSON decodes the request body into target. It responds with an
// error and returns false on failure.
func MustParseJSON(target interface{}, c *Context) bool {
	if err := validateContentLength(c); err != nil {
		RespondErr(c, err)
		return false
	}
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxJSONBodySize)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		RespondErr(c, &errors.ValidationError{Msg: "invalid json body"})
		return false
	}
	return true
}

func validateContentLength(c *Context) error {
	if cl := c.Request.ContentLength; cl > maxJSONBodySize {
		return &errors.BodyTooLargeError{}
	}
	return nil
}
