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
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/das7pad/scss-go/pkg/errors"
	"github.com/das7pad/scss-go/pkg/objectStorage"
	"github.com/das7pad/scss-go/pkg/options/env"
	"github.com/das7pad/scss-go/pkg/scss"
)

func main() {
	ctx, triggerExit := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer triggerExit()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type flags struct {
	loadPaths    stringList
	style        string
	minify       bool
	configFile   string
	check        bool
	concurrency  int
	uploadBucket string
	uploadPrefix string
	quiet        bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, []string, error) {
	f := &flags{}
	fs := flag.NewFlagSet("scss", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprintln(stderr, "Usage: scss [flags] <in.scss>[:<out.css>] ...")
		_, _ = fmt.Fprintln(stderr, "Use - as input to read from stdin.")
		fs.PrintDefaults()
	}
	fs.Var(&f.loadPaths, "I", "load path for imports, can be repeated")
	fs.StringVar(&f.style, "style", "", "output style: expanded or compressed")
	fs.BoolVar(&f.minify, "minify", false, "minify the css with esbuild")
	fs.StringVar(&f.configFile, "config", "", "yaml file with options and targets")
	fs.BoolVar(&f.check, "check", false, "compare with existing outputs instead of writing them")
	fs.IntVar(&f.concurrency, "concurrency", 0, "number of parallel builds (default: number of CPUs)")
	fs.StringVar(&f.uploadBucket, "upload-bucket", "", "bucket for publishing outputs, see OBJECT_STORAGE")
	fs.StringVar(&f.uploadPrefix, "upload-prefix", "", "key prefix for published outputs")
	fs.BoolVar(&f.quiet, "q", false, "do not log build stats")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// merge combines the config file with flags. Flags take precedence.
func merge(f *flags, targets []string) (*config, error) {
	c, err := loadConfig(f.configFile)
	if err != nil {
		return nil, err
	}
	if len(f.loadPaths) > 0 {
		c.LoadPaths = f.loadPaths
	}
	if f.style != "" {
		if c.Style, err = scss.ParseStyle(f.style); err != nil {
			return nil, err
		}
	}
	if f.minify {
		c.Minify = true
	}
	if f.concurrency > 0 {
		c.Concurrency = f.concurrency
	}
	if c.Concurrency <= 0 {
		c.Concurrency = runtime.NumCPU()
	}
	if f.uploadBucket != "" {
		c.Upload.Bucket = f.uploadBucket
	}
	if f.uploadPrefix != "" {
		c.Upload.Prefix = f.uploadPrefix
	}
	if len(targets) > 0 {
		c.Targets = targets
	}
	if len(c.Targets) == 0 {
		return nil, &errors.ValidationError{Msg: "missing input"}
	}
	if err = c.fillFromEnv(); err != nil {
		return nil, err
	}
	return c, nil
}

func getUploadFS(c *config) (*objectStorage.FS, error) {
	if c.Upload.Bucket == "" {
		return nil, nil
	}
	if env.GetString("OBJECT_STORAGE", "") == "" {
		return nil, &errors.ValidationError{
			Msg: "uploading needs OBJECT_STORAGE options",
		}
	}
	o := objectStorage.Options{}
	env.MustParseJSON(&o, "OBJECT_STORAGE")
	o.Bucket = c.Upload.Bucket
	b, err := objectStorage.FromOptions(o)
	if err != nil {
		return nil, errors.Tag(err, "init object storage")
	}
	return objectStorage.NewFS(b, c.Upload.Bucket, c.Upload.Prefix), nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	log.SetOutput(stderr)
	f, rawTargets, err := parseFlags(args, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	c, err := merge(f, rawTargets)
	if err == nil {
		err = build(ctx, c, f, stdin, stdout, stderr)
	}
	if err != nil {
		if !errors.Is(err, errCheckFailed) {
			_, _ = fmt.Fprintln(stderr, err)
		}
		return 1
	}
	return 0
}

func build(ctx context.Context, c *config, f *flags, stdin io.Reader, stdout, stderr io.Writer) error {
	targets, err := parseTargets(c.Targets)
	if err != nil {
		return err
	}
	compiler, err := scss.NewCompiler(scss.Options{
		LoadPaths:      c.LoadPaths,
		Style:          c.Style,
		MaxImportDepth: c.MaxImportDepth,
		Logger:         log.New(stderr, "", 0),
	})
	if err != nil {
		return err
	}
	upload, err := getUploadFS(c)
	if err != nil {
		return err
	}
	b := &builder{
		c:      compiler,
		minify: c.Minify,
		check:  f.check,
		upload: upload,
		stdin:  stdin,
		stderr: stderr,
		color:  isTerminal(stderr),
		quiet:  f.quiet,
	}

	out := make([]string, len(targets))
	eg := &errgroup.Group{}
	eg.SetLimit(c.Concurrency)
	for i, t := range targets {
		eg.Go(func() error {
			if err2 := ctx.Err(); err2 != nil {
				return err2
			}
			css, err2 := b.build(ctx, t)
			out[i] = css
			return err2
		})
	}
	if err = eg.Wait(); err != nil {
		return err
	}
	for _, css := range out {
		if _, err = io.WriteString(stdout, css); err != nil {
			return errors.Tag(err, "write stdout")
		}
	}
	return nil
}
