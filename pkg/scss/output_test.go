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
	"testing"
)

func TestRender(t *testing.T) {
	rule := func(sel string, decls ...cssDecl) *cssRule {
		return &cssRule{selectors: []string{sel}, decls: decls}
	}
	color := cssDecl{name: "color", value: "red"}
	top := cssDecl{name: "top", value: "0"}
	tests := []struct {
		name  string
		root  *cssBlock
		style Style
		want  string
	}{
		{
			name: "empty",
			root: &cssBlock{},
			want: "",
		},
		{
			name: "rules are separated by a blank line",
			root: &cssBlock{nodes: []cssNode{rule("a", color), rule("b", top)}},
			want: "a {\n  color: red;\n}\n\nb {\n  top: 0;\n}\n",
		},
		{
			name: "empty rules are omitted",
			root: &cssBlock{nodes: []cssNode{rule("a"), rule("b", top)}},
			want: "b {\n  top: 0;\n}\n",
		},
		{
			name: "selector list",
			root: &cssBlock{nodes: []cssNode{
				&cssRule{selectors: []string{"a", "b"}, decls: []cssDecl{color}},
			}},
			want: "a, b {\n  color: red;\n}\n",
		},
		{
			name: "statements",
			root: &cssBlock{nodes: []cssNode{
				&cssAtRule{name: "import", params: "url(x)"},
				&cssAtRule{name: "import", params: "\"y.css\""},
				rule("a", color),
			}},
			want: "@import url(x);\n@import \"y.css\";\n\na {\n  color: red;\n}\n",
		},
		{
			name: "media",
			root: &cssBlock{nodes: []cssNode{
				&cssAtRule{
					name:   "media",
					params: "print",
					block:  &cssBlock{nodes: []cssNode{rule("a", color, top)}},
				},
			}},
			want: "@media print {\n  a {\n    color: red;\n    top: 0;\n  }\n}\n",
		},
		{
			name: "empty media is omitted",
			root: &cssBlock{nodes: []cssNode{
				&cssAtRule{
					name:   "media",
					params: "print",
					block:  &cssBlock{nodes: []cssNode{rule("a")}},
				},
			}},
			want: "",
		},
		{
			name: "declarations in at-rule",
			root: &cssBlock{nodes: []cssNode{
				&cssAtRule{
					name:  "font-face",
					block: &cssBlock{nodes: []cssNode{color}},
				},
			}},
			want: "@font-face {\n  color: red;\n}\n",
		},
		{
			name: "compressed",
			root: &cssBlock{nodes: []cssNode{
				rule("a", color, top),
				&cssAtRule{
					name:   "media",
					params: "print",
					block:  &cssBlock{nodes: []cssNode{rule("b", color)}},
				},
			}},
			style: Compressed,
			want:  "a{color:red;top:0}@media print{b{color:red}}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render(tt.root, tt.style); got != tt.want {
				t.Errorf("render() diff:\n%s", diffCSS(tt.want, got))
			}
		})
	}
}
