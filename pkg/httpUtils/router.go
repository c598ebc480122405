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
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

type RouterOptions struct {
	StatusMessage string
}

type Router struct {
	*mux.Router
	middlewares []MiddlewareFunc
}

func NewRouter(options *RouterOptions) *Router {
	r := &Router{Router: mux.NewRouter()}
	r.Use(recovery)

	status := func(c *Context) {
		RespondPlain(c, http.StatusOK, options.StatusMessage)
	}
	r.GET("/status", status)
	r.HEAD("/status", status)
	return r
}

func recovery(next HandlerFunc) HandlerFunc {
	return func(c *Context) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				log.Printf(
					"%s %s: panic: %v", c.Request.Method, c.Request.URL.Path, err,
				)
				RespondPlain(
					c, http.StatusInternalServerError, "internal server error",
				)
			}
		}()
		next(c)
	}
}

// Group returns a sub-router for the path prefix. It inherits all the
// middlewares registered so far.
func (r *Router) Group(prefix string) *Router {
	m := make([]MiddlewareFunc, len(r.middlewares))
	copy(m, r.middlewares)
	return &Router{
		Router:      r.PathPrefix(prefix).Subrouter(),
		middlewares: m,
	}
}

func (r *Router) Use(middlewares ...MiddlewareFunc) {
	r.middlewares = append(r.middlewares, middlewares...)
}

func (r *Router) handle(method, path string, fn HandlerFunc) {
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		fn = r.middlewares[i](fn)
	}
	r.NewRoute().
		Methods(method).
		Path(path).
		HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			fn(newContext(w, req))
		})
}

func (r *Router) GET(path string, fn HandlerFunc) {
	r.handle(http.MethodGet, path, fn)
}

func (r *Router) HEAD(path string, fn HandlerFunc) {
	r.handle(http.MethodHead, path, fn)
}

func (r *Router) POST(path string, fn HandlerFunc) {
	r.handle(http.MethodPost, path, fn)
}

func (r *Router) OPTIONS(path string, fn HandlerFunc) {
	r.handle(http.MethodOptions, path, fn)
}
