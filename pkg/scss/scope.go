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

type frame struct {
	vars      map[string]Value
	mixins    map[string]*callable
	functions map[string]*callable

	// flow marks the frame of a control flow block.
	flow bool
}

func newFrame() *frame {
	return &frame{vars: make(map[string]Value)}
}

func (f *frame) setMixin(name string, c *callable) {
	if f.mixins == nil {
		f.mixins = make(map[string]*callable)
	}
	f.mixins[name] = c
}

func (f *frame) setFunction(name string, c *callable) {
	if f.functions == nil {
		f.functions = make(map[string]*callable)
	}
	f.functions[name] = c
}

// scopes is the lexical scope chain, frames[0] is the global frame.
type scopes struct {
	frames []*frame
}

func newScopes() *scopes {
	return &scopes{frames: []*frame{newFrame()}}
}

func normalizeName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

func (s *scopes) enter(f *frame) {
	s.frames = append(s.frames, f)
}

func (s *scopes) exit() {
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *scopes) global() *frame {
	return s.frames[0]
}

// snapshot returns a scope chain that shares the frames of s. Frames entered
// later on either chain are not visible to the other one.
func (s *scopes) snapshot() *scopes {
	return &scopes{frames: append([]*frame(nil), s.frames...)}
}

func (s *scopes) insert(name string, v Value) {
	s.frames[len(s.frames)-1].vars[name] = v
}

func (s *scopes) lookup(name string) (Value, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i].vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (s *scopes) lookupMixin(name string) (*callable, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if c, ok := s.frames[i].mixins[name]; ok {
			return c, true
		}
	}
	return nil, false
}

func (s *scopes) lookupFunction(name string) (*callable, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if c, ok := s.frames[i].functions[name]; ok {
			return c, true
		}
	}
	return nil, false
}

// assign implements "$name: v [!default] [!global]". Existing local
// variables are updated in place. Control flow blocks at the top level
// update globals.
func (s *scopes) assign(name string, v Value, global, isDefault bool) {
	if isDefault {
		if old, ok := s.lookupFor(name, global); ok && !isNull(old) {
			return
		}
	}
	if global || len(s.frames) == 1 {
		s.global().vars[name] = v
		return
	}
	for i := len(s.frames) - 1; i >= 1; i-- {
		if _, ok := s.frames[i].vars[name]; ok {
			s.frames[i].vars[name] = v
			return
		}
	}
	if _, ok := s.global().vars[name]; ok && s.onlyFlowFrames() {
		s.global().vars[name] = v
		return
	}
	s.insert(name, v)
}

func (s *scopes) lookupFor(name string, global bool) (Value, bool) {
	if global {
		v, ok := s.global().vars[name]
		return v, ok
	}
	return s.lookup(name)
}

func (s *scopes) onlyFlowFrames() bool {
	for _, f := range s.frames[1:] {
		if !f.flow {
			return false
		}
	}
	return true
}

// definitionFrame is the innermost frame that is not a control flow block.
func (s *scopes) definitionFrame() *frame {
	for i := len(s.frames) - 1; i > 0; i-- {
		if !s.frames[i].flow {
			return s.frames[i]
		}
	}
	return s.frames[0]
}
