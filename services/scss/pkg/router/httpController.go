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

package router

import (
	"net/http"

	"github.com/das7pad/scss-go/pkg/errors"
	"github.com/das7pad/scss-go/pkg/httpUtils"
	"github.com/das7pad/scss-go/pkg/scss"
	"github.com/das7pad/scss-go/services/scss/pkg/managers/stylesheet"
	"github.com/das7pad/scss-go/services/scss/pkg/types"
)

func New(sm stylesheet.Manager, corsOptions httpUtils.CORSOptions) *httpUtils.Router {
	router := httpUtils.NewRouter(&httpUtils.RouterOptions{
		StatusMessage: "scss is alive (go)\n",
	})
	Add(router, sm, corsOptions)
	return router
}

func Add(r *httpUtils.Router, sm stylesheet.Manager, corsOptions httpUtils.CORSOptions) {
	(&httpController{sm: sm}).addRoutes(r, corsOptions)
}

type httpController struct {
	sm stylesheet.Manager
}

func (h *httpController) addRoutes(router *httpUtils.Router, corsOptions httpUtils.CORSOptions) {
	r := router.Group("")
	r.Use(httpUtils.CORS(corsOptions))
	r.OPTIONS("/compile", noContent)
	r.POST("/compile", h.compile)
	r.GET("/css/{path:.+}", h.getCSS)
	r.HEAD("/css/{path:.+}", h.getCSS)
}

func noContent(c *httpUtils.Context) {
	httpUtils.Respond(c, http.StatusNoContent, nil, nil)
}

type compileErrorResponseBody struct {
	Message string      `json:"message"`
	Error   *scss.Error `json:"error"`
}

func respondCompileErr(c *httpUtils.Context, err error) {
	var e *scss.Error
	if !errors.As(err, &e) {
		httpUtils.RespondErr(c, err)
		return
	}
	code := http.StatusBadRequest
	if e.Kind == scss.ImportNotFound {
		code = http.StatusNotFound
	}
	body := compileErrorResponseBody{Message: e.Error(), Error: e}
	httpUtils.Respond(c, code, body, nil)
}

func (h *httpController) compile(c *httpUtils.Context) {
	request := &types.CompileRequest{}
	if !httpUtils.MustParseJSON(request, c) {
		return
	}
	done := httpUtils.TimeStage(c, "compile")
	response, err := h.sm.Compile(c, request)
	done()
	if err != nil {
		respondCompileErr(c, err)
		return
	}
	httpUtils.Respond(c, http.StatusOK, response, nil)
}

func (h *httpController) getCSS(c *httpUtils.Context) {
	style, err := scss.ParseStyle(c.Request.URL.Query().Get("style"))
	if err != nil {
		httpUtils.RespondErr(c, err)
		return
	}
	p := types.StylesheetPath(c.Param("path"))
	done := httpUtils.TimeStage(c, "compile")
	response, err := h.sm.CompileFile(c, p, style)
	done()
	if err != nil {
		respondCompileErr(c, err)
		return
	}
	httpUtils.RespondCSS(c, response.CSS)
}
