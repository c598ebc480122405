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
	"strings"
)

type cssNode interface {
	isEmpty() bool
}

type cssBlock struct {
	nodes []cssNode
}

func (b *cssBlock) append(n cssNode) {
	b.nodes = append(b.nodes, n)
}

func (b *cssBlock) isEmpty() bool {
	for _, n := range b.nodes {
		if !n.isEmpty() {
			return false
		}
	}
	return true
}

type cssDecl struct {
	name  string
	value string
}

func (cssDecl) isEmpty() bool {
	return false
}

type cssRule struct {
	selectors []string
	decls     []cssDecl
}

func (r *cssRule) isEmpty() bool {
	return len(r.decls) == 0 || len(r.selectors) == 0
}

type cssAtRule struct {
	name   string
	params string
	block  *cssBlock
}

func (a *cssAtRule) isEmpty() bool {
	if a.block == nil {
		return false
	}
	switch a.name {
	case "media", "supports":
		return a.block.isEmpty()
	}
	return false
}

type printer struct {
	b          strings.Builder
	compressed bool
}

func render(root *cssBlock, style Style) string {
	p := printer{compressed: style == Compressed}
	printed := false
	for _, n := range root.nodes {
		if n.isEmpty() {
			continue
		}
		if a, ok := n.(*cssAtRule); ok && a.block == nil {
			p.atRule(a, 0)
			printed = true
			continue
		}
		if printed && !p.compressed {
			p.b.WriteByte('\n')
		}
		p.node(n, 0)
		printed = true
	}
	return p.b.String()
}

func (p *printer) indent(depth int) {
	if p.compressed {
		return
	}
	for i := 0; i < depth; i++ {
		p.b.WriteString("  ")
	}
}

func (p *printer) newline() {
	if !p.compressed {
		p.b.WriteByte('\n')
	}
}

func (p *printer) node(n cssNode, depth int) {
	switch n := n.(type) {
	case *cssRule:
		p.rule(n, depth)
	case *cssAtRule:
		p.atRule(n, depth)
	case cssDecl:
		p.decl(n, depth, true)
	}
}

func (p *printer) open(head string, depth int) {
	p.indent(depth)
	p.b.WriteString(head)
	if p.compressed {
		p.b.WriteByte('{')
	} else {
		p.b.WriteString(" {\n")
	}
}

func (p *printer) close(depth int) {
	p.indent(depth)
	p.b.WriteByte('}')
	p.newline()
}

func (p *printer) decl(d cssDecl, depth int, last bool) {
	p.indent(depth)
	p.b.WriteString(d.name)
	if p.compressed {
		p.b.WriteByte(':')
		p.b.WriteString(d.value)
		if !last {
			p.b.WriteByte(';')
		}
		return
	}
	p.b.WriteString(": ")
	p.b.WriteString(d.value)
	p.b.WriteString(";\n")
}

func (p *printer) rule(r *cssRule, depth int) {
	sep := ", "
	if p.compressed {
		sep = ","
	}
	p.open(strings.Join(r.selectors, sep), depth)
	for i, d := range r.decls {
		p.decl(d, depth+1, i == len(r.decls)-1)
	}
	p.close(depth)
}

func (p *printer) atRule(a *cssAtRule, depth int) {
	head := "@" + a.name
	if a.params != "" {
		head += " " + a.params
	}
	if a.block == nil {
		p.indent(depth)
		p.b.WriteString(head)
		p.b.WriteByte(';')
		p.newline()
		return
	}
	p.open(head, depth)
	nodes := make([]cssNode, 0, len(a.block.nodes))
	for _, n := range a.block.nodes {
		if !n.isEmpty() {
			nodes = append(nodes, n)
		}
	}
	for i, n := range nodes {
		if d, ok := n.(cssDecl); ok {
			p.decl(d, depth+1, i == len(nodes)-1)
			continue
		}
		p.node(n, depth+1)
	}
	p.close(depth)
}
