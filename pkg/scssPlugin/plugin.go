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

package scssPlugin

import (
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/das7pad/scss-go/pkg/errors"
	"github.com/das7pad/scss-go/pkg/scss"
)

// New returns an esbuild plugin that compiles .scss files into css. Tokens
// of shared partials are cached across entrypoints and rebuilds.
func New(o scss.Options) (api.Plugin, error) {
	if o.FS == nil {
		o.FS = scss.OSFS{}
	}
	c, err := scss.NewCompiler(o)
	if err != nil {
		return api.Plugin{}, err
	}
	p := &plugin{c: c, fs: o.FS}
	return api.Plugin{
		Name: "scssLoader",
		Setup: func(build api.PluginBuild) {
			build.OnLoad(api.OnLoadOptions{
				Filter: "\\.scss$",
			}, func(args api.OnLoadArgs) (api.OnLoadResult, error) {
				return p.render(args)
			})
		},
	}, nil
}

type plugin struct {
	c  *scss.Compiler
	fs scss.FS
}

func (p *plugin) render(args api.OnLoadArgs) (api.OnLoadResult, error) {
	entry := filepath.ToSlash(args.Path)
	res, err := p.c.Compile(entry)
	if err != nil {
		r := api.OnLoadResult{}
		var e *scss.Error
		if errors.As(err, &e) {
			r.Errors = []api.Message{p.toMessage(e)}
			return r, nil
		}
		return r, errors.Tag(err, args.Path)
	}
	watch := make([]string, 0, len(res.Imports))
	for _, f := range res.Imports {
		if f == entry {
			continue
		}
		watch = append(watch, filepath.FromSlash(f))
	}
	s := res.CSS
	return api.OnLoadResult{
		Contents:   &s,
		Loader:     api.LoaderCSS,
		ResolveDir: filepath.Dir(args.Path),
		WatchFiles: watch,
	}, nil
}

func (p *plugin) toMessage(e *scss.Error) api.Message {
	m := api.Message{Text: e.Kind.String() + ": " + e.Message}
	if e.Span.File == "" {
		return m
	}
	l := &api.Location{
		File:   e.Span.File,
		Line:   e.Span.Line,
		Column: max(e.Span.Column-1, 0),
	}
	if blob, err := p.fs.ReadFile(e.Span.File); err == nil {
		lines := strings.Split(string(blob), "\n")
		if e.Span.Line >= 1 && e.Span.Line <= len(lines) {
			l.LineText = strings.TrimSuffix(lines[e.Span.Line-1], "\r")
		}
	}
	m.Location = l
	return m
}
