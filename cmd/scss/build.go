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

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/evanw/esbuild/pkg/api"

	"github.com/das7pad/scss-go/pkg/copyFile"
	"github.com/das7pad/scss-go/pkg/errors"
	"github.com/das7pad/scss-go/pkg/objectStorage"
	"github.com/das7pad/scss-go/pkg/scss"
)

const stdio = "-"

type target struct {
	in  string
	out string
}

func (t target) String() string {
	if t.out == "" {
		return t.in
	}
	return t.in + ":" + t.out
}

func parseTarget(s string) (target, error) {
	in, out, _ := strings.Cut(s, ":")
	if in == "" {
		return target{}, &errors.ValidationError{Msg: "missing input in " + s}
	}
	if out == stdio {
		out = ""
	}
	if out != "" && filepath.Clean(out) == filepath.Clean(in) {
		return target{}, &errors.ValidationError{
			Msg: "output would overwrite input in " + s,
		}
	}
	return target{in: in, out: out}, nil
}

func parseTargets(raw []string) ([]target, error) {
	targets := make([]target, 0, len(raw))
	stdin := false
	outputs := make(map[string]bool, len(raw))
	for _, s := range raw {
		t, err := parseTarget(s)
		if err != nil {
			return nil, err
		}
		if t.out != "" {
			out := filepath.Clean(t.out)
			if outputs[out] {
				return nil, &errors.ValidationError{
					Msg: "duplicate output " + t.out,
				}
			}
			outputs[out] = true
		}
		if t.in == stdio {
			if stdin {
				return nil, &errors.ValidationError{
					Msg: "stdin can only be read once",
				}
			}
			stdin = true
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// uploadKey maps an output path to its object key. Keys keep the directory
// structure below the working directory.
func uploadKey(out string) (string, error) {
	p := path.Clean(filepath.ToSlash(out))
	if path.IsAbs(p) || p == ".." || strings.HasPrefix(p, "../") {
		return "", &errors.ValidationError{
			Msg: "upload needs an output below the working directory: " + out,
		}
	}
	return p, nil
}

var errCheckFailed = errors.New("output is out of date")

type builder struct {
	c      *scss.Compiler
	minify bool
	check  bool
	upload *objectStorage.FS
	stdin  io.Reader
	stderr io.Writer
	color  bool
	quiet  bool
}

// build compiles t and returns the css destined for stdout, if any.
func (b *builder) build(ctx context.Context, t target) (string, error) {
	t0 := time.Now()
	var res *scss.Result
	var err error
	if t.in == stdio {
		blob, readErr := io.ReadAll(b.stdin)
		if readErr != nil {
			return "", errors.Tag(readErr, "read stdin")
		}
		res, err = b.c.CompileString(string(blob), "stdin.scss")
	} else {
		res, err = b.c.Compile(filepath.ToSlash(t.in))
	}
	if err != nil {
		return "", err
	}
	css := res.CSS
	if b.minify {
		if css, err = minify(css); err != nil {
			return "", errors.Tag(err, t.in)
		}
	}
	if !b.quiet {
		log.Printf(
			"%s: %s from %d files in %s",
			t, units.HumanSize(float64(len(css))), len(res.Imports),
			time.Since(t0).Round(time.Microsecond),
		)
	}

	if b.check {
		return "", b.checkOutput(t, css)
	}
	if t.out == "" {
		return css, nil
	}
	key := ""
	if b.upload != nil {
		if key, err = uploadKey(t.out); err != nil {
			return "", err
		}
	}
	if err = os.MkdirAll(filepath.Dir(t.out), 0o755); err != nil {
		return "", errors.Tag(err, "create output dir")
	}
	err = copyFile.Atomic(t.out, strings.NewReader(css), 0o644)
	if err != nil {
		return "", errors.Tag(err, "write "+t.out)
	}
	if b.upload != nil {
		if err = b.upload.Upload(ctx, key, css); err != nil {
			return "", err
		}
	}
	return "", nil
}

func (b *builder) checkOutput(t target, css string) error {
	if t.out == "" {
		return &errors.ValidationError{Msg: "-check needs an output in " + t.String()}
	}
	blob, err := os.ReadFile(t.out)
	if err != nil && !os.IsNotExist(err) {
		return errors.Tag(err, "read "+t.out)
	}
	if string(blob) == css {
		return nil
	}
	_, _ = fmt.Fprintf(
		b.stderr, "--- %s\n+++ %s\n%s", t.out, t.in,
		lineDiff(string(blob), css, b.color),
	)
	return errors.Tag(errCheckFailed, t.out)
}

func minify(css string) (string, error) {
	r := api.Transform(css, api.TransformOptions{
		Loader:            api.LoaderCSS,
		MinifyWhitespace:  true,
		MinifySyntax:      true,
		MinifyIdentifiers: true,
	})
	if len(r.Errors) > 0 {
		return "", errors.New("minify: " + r.Errors[0].Text)
	}
	return string(r.Code), nil
}
