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
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Context carries the request state through handlers and middlewares. It
// doubles as the context.Context of the request.
type Context struct {
	context.Context
	Writer  http.ResponseWriter
	Request *http.Request
	t0      time.Time
}

func newContext(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{
		Context: r.Context(),
		Writer:  w,
		Request: r,
		t0:      time.Now(),
	}
}

func (c *Context) Param(name string) string {
	return mux.Vars(c.Request)[name]
}

func (c *Context) GetHeader(name string) string {
	return c.Request.Header.Get(name)
}

type HandlerFunc func(c *Context)

type MiddlewareFunc func(next HandlerFunc) HandlerFunc
