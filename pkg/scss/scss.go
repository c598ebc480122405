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
	"github.com/das7pad/scss-go/pkg/errors"
)

// compilation is the state shared by the entry file and all its imports.
type compilation struct {
	o         Options
	r         *tokenizer
	root      *cssBlock
	imports   []string
	stack     []string
	callDepth int
}

func (c *compilation) logf(format string, a ...interface{}) {
	c.o.Logger.Printf(format, a...)
}

// Compiler compiles stylesheets with a shared token cache. It is safe for
// concurrent use.
type Compiler struct {
	o Options
	r *tokenizer
}

func NewCompiler(o Options) (*Compiler, error) {
	o = o.withDefaults()
	if o.CacheSize <= 0 {
		o.CacheSize = DefaultCacheSize
	}
	r, err := newTokenizer(o.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Compiler{o: o, r: r}, nil
}

// Compile compiles the stylesheet f, read from o.FS.
func Compile(f string, o Options) (*Result, error) {
	o = o.withDefaults()
	r, err := newTokenizer(o.CacheSize)
	if err != nil {
		return nil, err
	}
	return compileFile(r, f, o)
}

// CompileString compiles src as if it was stored at o.Path.
func CompileString(src string, o Options) (*Result, error) {
	o = o.withDefaults()
	r, err := newTokenizer(o.CacheSize)
	if err != nil {
		return nil, err
	}
	return compileSource(r, src, o.Path, true, o)
}

// CompileUsing compiles f and its imports with files from read.
func CompileUsing(read func(name string) ([]byte, error), f string, o Options) (*Result, error) {
	o.FS = readFS{read: read}
	return Compile(f, o)
}

func (c *Compiler) Compile(f string) (*Result, error) {
	return compileFile(c.r, f, c.o)
}

func (c *Compiler) CompileString(src, path string) (*Result, error) {
	if path == "" {
		path = c.o.Path
	}
	return compileSource(c.r, src, path, true, c.o)
}

func compileFile(r *tokenizer, f string, o Options) (*Result, error) {
	blob, err := o.FS.ReadFile(f)
	if err != nil {
		return nil, errors.Tag(err, "read "+f)
	}
	return compileSource(r, string(blob), f, false, o)
}

// compileSource compiles src stored at f. In memory sources bypass the file
// registry, their path is only known to this compilation.
func compileSource(r *tokenizer, src, f string, inMemory bool, o Options) (*Result, error) {
	c := &compilation{
		o:       o,
		r:       r,
		root:    &cssBlock{},
		imports: []string{f},
		stack:   []string{f},
	}
	var tt tokens
	if inMemory {
		tt = tokenize(src, inMemoryFile)
	} else {
		tt, _ = r.Tokenize(src, f)
	}
	e := &evalContext{
		c:         c,
		scopes:    newScopes(),
		file:      f,
		container: c.root,
	}
	if _, _, err := e.execBody(tt); err != nil {
		return nil, c.annotate(err)
	}
	return &Result{
		CSS:     render(c.root, o.Style),
		Imports: c.imports,
	}, nil
}
