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
	"io/fs"
	"os"
	"path/filepath"
)

// FS is the file system imports are resolved against. Names use forward
// slashes.
type FS interface {
	ReadFile(name string) ([]byte, error)
	IsFile(name string) bool
	IsDir(name string) bool
}

// OSFS reads from the local disk.
type OSFS struct{}

func (OSFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.FromSlash(name))
}

func (OSFS) IsFile(name string) bool {
	s, err := os.Stat(filepath.FromSlash(name))
	return err == nil && s.Mode().IsRegular()
}

func (OSFS) IsDir(name string) bool {
	s, err := os.Stat(filepath.FromSlash(name))
	return err == nil && s.IsDir()
}

// readFS adapts a plain read function. Every readable name is a file.
type readFS struct {
	read func(name string) ([]byte, error)
}

func (r readFS) ReadFile(name string) ([]byte, error) {
	return r.read(name)
}

func (r readFS) IsFile(name string) bool {
	_, err := r.read(name)
	return err == nil
}

func (readFS) IsDir(string) bool {
	return false
}

// IOFS adapts an io/fs.FS, e.g. an embed.FS.
type IOFS struct {
	FS fs.FS
}

func (i IOFS) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(i.FS, name)
}

func (i IOFS) IsFile(name string) bool {
	s, err := fs.Stat(i.FS, name)
	return err == nil && s.Mode().IsRegular()
}

func (i IOFS) IsDir(name string) bool {
	s, err := fs.Stat(i.FS, name)
	return err == nil && s.IsDir()
}
