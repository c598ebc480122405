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
	"log"
	"net/http"
	"strconv"

	"github.com/das7pad/scss-go/pkg/errors"
)

func RespondPlain(c *Context, status int, body string) {
	EndTotalTimer(c)
	c.Writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.Writer.Header().Set(
		"Content-Length", strconv.FormatInt(int64(len(body)), 10),
	)
	c.Writer.WriteHeader(status)
	_, _ = c.Writer.Write([]byte(body))
}

// RespondCSS sends a stylesheet. HEAD requests get the headers only.
func RespondCSS(c *Context, body string) {
	EndTotalTimer(c)
	h := c.Writer.Header()
	h.Set("Content-Type", "text/css; charset=utf-8")
	h.Set("Content-Length", strconv.FormatInt(int64(len(body)), 10))
	h.Set("Cache-Control", "no-cache")
	c.Writer.WriteHeader(http.StatusOK)
	if c.Request.Method == http.MethodHead {
		return
	}
	_, _ = c.Writer.Write([]byte(body))
}

func RespondErr(c *Context, err error) {
	Respond(c, 0, nil, err)
}

func Respond(
	c *Context,
	code int,
	body interface{},
	err error,
) {
	respondJSON(c, code, body, err, false)
}

func RespondWithIndent(
	c *Context,
	code int,
	body interface{},
	err error,
) {
	respondJSON(c, code, body, err, true)
}

var fatalSerializeError []byte

func respondJSON(
	c *Context,
	code int,
	body interface{},
	err error,
	indent bool,
) {
	if err != nil {
		var errMessage string
		code, errMessage = GetAndLogErrResponseDetails(c, err)
		body = map[string]string{"message": errMessage}
	}
	EndTotalTimer(c)
	if body == nil {
		if code != http.StatusNoContent {
			c.Writer.Header().Set("Content-Length", "0")
		}
		c.Writer.WriteHeader(code)
		return
	}
	var blob []byte
	if indent {
		blob, err = json.MarshalIndent(body, "", "  ")
	} else {
		blob, err = json.Marshal(body)
	}
	if err != nil {
		GetAndLogErrResponseDetails(
			c, errors.Tag(err, "cannot serialize body"),
		)
		code = http.StatusInternalServerError
		blob = fatalSerializeError
	}
	c.Writer.Header().Set(
		"Content-Length", strconv.FormatInt(int64(len(blob)), 10),
	)
	c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.Writer.WriteHeader(code)
	_, _ = c.Writer.Write(blob)
}

func GetAndLogErrResponseDetails(c *Context, err error) (int, string) {
	code := http.StatusInternalServerError
	errMessage := errors.GetPublicMessage(err, "internal server error")
	switch {
	case errors.IsBodyTooLargeError(err):
		code = http.StatusRequestEntityTooLarge
	case errors.IsNotFoundError(err):
		code = http.StatusNotFound
	case errors.IsUserFacingError(err):
		code = http.StatusBadRequest
	default:
		log.Printf(
			"%s %s: %s",
			c.Request.Method, c.Request.URL.Path, err.Error(),
		)
	}
	return code, errMessage
}

func init() {
	var err error
	fatalSerializeError, err = json.Marshal(
		map[string]string{"message": "internal server error"},
	)
	if err != nil {
		panic(errors.Tag(err, "cannot build fatalSerializeError"))
	}
}
