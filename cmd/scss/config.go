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
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/das7pad/scss-go/pkg/errors"
	"github.com/das7pad/scss-go/pkg/options/env"
	"github.com/das7pad/scss-go/pkg/scss"
)

type config struct {
	LoadPaths      []string   `yaml:"load_paths"`
	Style          scss.Style `yaml:"style"`
	Minify         bool       `yaml:"minify"`
	MaxImportDepth int        `yaml:"max_import_depth"`
	Concurrency    int        `yaml:"concurrency"`
	Targets        []string   `yaml:"targets"`
	Upload         struct {
		Bucket string `yaml:"bucket"`
		Prefix string `yaml:"prefix"`
	} `yaml:"upload"`
}

func loadConfig(p string) (*config, error) {
	c := &config{}
	if p == "" {
		return c, nil
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, errors.Tag(err, "open config")
	}
	defer func() { _ = f.Close() }()
	d := yaml.NewDecoder(f)
	d.KnownFields(true)
	if err = d.Decode(c); err != nil && err != io.EOF {
		return nil, &errors.ValidationError{
			Msg: "invalid config " + p + ": " + err.Error(),
		}
	}
	return c, nil
}

// fillFromEnv applies SCSS_LOAD_PATHS and SCSS_STYLE where the config file
// left the setting empty.
func (c *config) fillFromEnv() error {
	if len(c.LoadPaths) == 0 {
		c.LoadPaths = env.GetStringSlice("SCSS_LOAD_PATHS", nil)
	}
	if raw := env.GetString("SCSS_STYLE", ""); raw != "" && c.Style == scss.Expanded {
		s, err := scss.ParseStyle(raw)
		if err != nil {
			return errors.Tag(err, "SCSS_STYLE")
		}
		c.Style = s
	}
	return nil
}

type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(s string) error {
	*l = append(*l, s)
	return nil
}
