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
	"path"
	"strings"
)

// isPassthroughImport reports whether a quoted specifier is left to the
// browser.
func isPassthroughImport(s string) bool {
	return strings.HasSuffix(s, ".css") ||
		strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://")
}

func isURLImport(tt tokens) bool {
	return len(tt) >= 2 && tt[0].kind == tokenIdentifier &&
		strings.EqualFold(tt[0].v, "url") && tt[1].kind == tokenParensOpen
}

func (e *evalContext) execImport(s *stream, at token) error {
	if s.eof() || s.peekKind() == tokenSemi {
		return newError(SyntaxError, s.peek(), "expected more input.")
	}
	tt, err := readStatement(s)
	if err != nil {
		return err
	}
	for _, part := range splitTopLevel(tt, tokenComma) {
		part = trimSpace(part)
		if len(part) == 0 {
			return newError(SyntaxError, at, "Expected string.")
		}
		if err = e.importOne(part); err != nil {
			return err
		}
	}
	return nil
}

func (e *evalContext) importOne(tt tokens) error {
	t := tt[0]
	if isURLImport(tt) {
		v, err := e.evalTokens(tt)
		if err != nil {
			return err
		}
		s, err := toCSS(v, e.compressed())
		if err != nil {
			return newError(TypeMismatch, t, err.Error())
		}
		e.container.append(&cssAtRule{name: "import", params: s})
		return nil
	}
	if !t.isQuote() {
		return newError(SyntaxError, t, "Expected string.")
	}
	v, err := e.evalTokens(tt)
	if err != nil {
		return err
	}
	spec, ok := v.(String)
	if !ok {
		return newError(SyntaxError, t, "Expected string.")
	}
	if isPassthroughImport(spec.Text) {
		e.container.append(&cssAtRule{
			name:   "import",
			params: `"` + spec.Text + `"`,
		})
		return nil
	}
	return e.importFile(spec.Text, t)
}

// importCandidates lists the files spec may refer to, in lookup order.
func importCandidates(spec, importer string, loadPaths []string, fs FS) []string {
	base := spec
	if !path.IsAbs(spec) {
		base = path.Join(path.Dir(importer), spec)
	}
	candidates := nameVariants(base, path.Base(spec))
	for _, lp := range loadPaths {
		if fs.IsDir(lp) {
			candidates = append(candidates, dirVariants(path.Join(lp, spec))...)
		} else {
			candidates = append(candidates, lp)
			candidates = append(candidates, nameVariants(
				path.Join(path.Dir(lp), spec), path.Base(spec),
			)[1:]...)
		}
	}
	return candidates
}

// nameVariants returns p, p.scss, _p.scss, p/index.scss and p/_index.scss.
func nameVariants(p, name string) []string {
	out := []string{p}
	if name != "." && name != ".." && name != "/" {
		dir := path.Dir(p)
		out = append(out,
			p+".scss",
			path.Join(dir, "_"+path.Base(p)+".scss"),
		)
	}
	return append(out,
		path.Join(p, "index.scss"),
		path.Join(p, "_index.scss"),
	)
}

// dirVariants returns the candidates below a load path directory.
func dirVariants(p string) []string {
	return nameVariants(p, path.Base(p))[1:]
}

func (e *evalContext) importFile(spec string, t token) error {
	c := e.c
	importer := c.stack[len(c.stack)-1]
	found := ""
	for _, candidate := range importCandidates(spec, importer, c.o.LoadPaths, c.o.FS) {
		if c.o.FS.IsFile(candidate) {
			found = candidate
			break
		}
	}
	if found == "" {
		return newError(ImportNotFound, t, "Can't find stylesheet to import.")
	}
	for _, open := range c.stack {
		if open == found {
			return errorf(ImportCycle, t, "This file is already being loaded: %s.", found)
		}
	}
	if len(c.stack) > c.o.MaxImportDepth {
		return errorf(
			ImportCycle, t, "Import depth exceeded max of %d.", c.o.MaxImportDepth,
		)
	}
	blob, err := c.o.FS.ReadFile(found)
	if err != nil {
		return errorf(ImportNotFound, t, "Can't read stylesheet %s.", found)
	}
	c.imports = append(c.imports, found)

	c.stack = append(c.stack, found)
	defer func() { c.stack = c.stack[:len(c.stack)-1] }()

	tt, _ := c.r.Tokenize(string(blob), found)
	ctx := *e
	ctx.file = found
	_, _, err = ctx.execBody(tt)
	return err
}
