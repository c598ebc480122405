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

package stylesheet

import (
	"context"
	"crypto/sha256"
	"log"
	"path"
	"time"

	"github.com/docker/go-units"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/das7pad/scss-go/pkg/errors"
	"github.com/das7pad/scss-go/pkg/objectStorage"
	"github.com/das7pad/scss-go/pkg/scss"
	"github.com/das7pad/scss-go/services/scss/pkg/types"
)

type Manager interface {
	Compile(
		ctx context.Context,
		request *types.CompileRequest,
	) (*types.CompileResponse, error)

	CompileFile(
		ctx context.Context,
		p types.StylesheetPath,
		style scss.Style,
	) (*types.CompileResponse, error)
}

func New(options *types.Options) (Manager, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	fs, err := getFS(options)
	if err != nil {
		return nil, err
	}
	return newManager(fs, options)
}

func getFS(options *types.Options) (scss.FS, error) {
	if options.ObjectStorage == nil {
		return rootFS{root: options.Root}, nil
	}
	b, err := objectStorage.FromOptions(*options.ObjectStorage)
	if err != nil {
		return nil, errors.Tag(err, "init object storage")
	}
	return objectStorage.NewFS(
		b, options.ObjectStorage.Bucket, options.ObjectStorage.Prefix,
	), nil
}

func newManager(fs scss.FS, options *types.Options) (Manager, error) {
	lruSize := options.LRUSize
	if lruSize <= 0 {
		lruSize = 1000
	}
	cache, err := lru.New[cacheKey, *cachedResult](lruSize)
	if err != nil {
		return nil, errors.Tag(err, "init result cache")
	}
	m := &manager{
		fs:       fs,
		cache:    cache,
		compiler: make(map[scss.Style]*scss.Compiler, 2),
	}
	for _, style := range []scss.Style{scss.Expanded, scss.Compressed} {
		c, err2 := scss.NewCompiler(scss.Options{
			LoadPaths:      options.LoadPaths,
			Style:          style,
			FS:             fs,
			MaxImportDepth: options.MaxImportDepth,
		})
		if err2 != nil {
			return nil, err2
		}
		m.compiler[style] = c
	}
	return m, nil
}

type cacheKey struct {
	p     types.StylesheetPath
	style scss.Style
}

type cachedResult struct {
	res  *scss.Result
	sums map[string][sha256.Size]byte
}

type manager struct {
	fs       scss.FS
	cache    *lru.Cache[cacheKey, *cachedResult]
	compiler map[scss.Style]*scss.Compiler
	sf       singleflight.Group
}

func (m *manager) getCompiler(style scss.Style) (*scss.Compiler, error) {
	c, ok := m.compiler[style]
	if !ok {
		return nil, &errors.ValidationError{Msg: "unknown style"}
	}
	return c, nil
}

func (m *manager) Compile(ctx context.Context, request *types.CompileRequest) (*types.CompileResponse, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	c, err := m.getCompiler(request.Style)
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	res, err := c.CompileString(request.Source, string(request.Path))
	if err != nil {
		return nil, err
	}
	return toResponse(res), nil
}

func (m *manager) CompileFile(ctx context.Context, p types.StylesheetPath, style scss.Style) (*types.CompileResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	c, err := m.getCompiler(style)
	if err != nil {
		return nil, err
	}
	if !m.fs.IsFile(string(p)) {
		return nil, &errors.NotFoundError{}
	}
	k := cacheKey{p: p, style: style}
	if r, ok := m.cache.Get(k); ok && m.isFresh(r) {
		return toResponse(r.res), nil
	}

	ch := m.sf.DoChan(style.String()+":"+string(p), func() (interface{}, error) {
		return m.compileFile(c, k)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return toResponse(r.Val.(*scss.Result)), nil
	}
}

func (m *manager) compileFile(c *scss.Compiler, k cacheKey) (*scss.Result, error) {
	t0 := time.Now()
	res, err := c.Compile(string(k.p))
	if err != nil {
		return nil, err
	}
	sums := make(map[string][sha256.Size]byte, len(res.Imports))
	for _, f := range res.Imports {
		blob, err2 := m.fs.ReadFile(f)
		if err2 != nil {
			return nil, errors.Tag(err2, "hash "+f)
		}
		sums[f] = sha256.Sum256(blob)
	}
	m.cache.Add(k, &cachedResult{res: res, sums: sums})
	log.Printf(
		"compiled %s (%s, %s, %d imports) in %s",
		k.p, k.style, units.HumanSize(float64(len(res.CSS))),
		len(res.Imports)-1, time.Since(t0).Round(time.Microsecond),
	)
	return res, nil
}

// isFresh reports whether none of the inputs of r changed.
func (m *manager) isFresh(r *cachedResult) bool {
	for f, sum := range r.sums {
		blob, err := m.fs.ReadFile(f)
		if err != nil || sha256.Sum256(blob) != sum {
			return false
		}
	}
	return true
}

func toResponse(res *scss.Result) *types.CompileResponse {
	return &types.CompileResponse{CSS: res.CSS, Imports: res.Imports[1:]}
}

type rootFS struct {
	root string
}

func (r rootFS) join(name string) string {
	return path.Join(r.root, path.Clean("/"+name))
}

func (r rootFS) ReadFile(name string) ([]byte, error) {
	return scss.OSFS{}.ReadFile(r.join(name))
}

func (r rootFS) IsFile(name string) bool {
	return scss.OSFS{}.IsFile(r.join(name))
}

func (r rootFS) IsDir(name string) bool {
	return scss.OSFS{}.IsDir(r.join(name))
}
