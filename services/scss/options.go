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
	"github.com/das7pad/scss-go/pkg/httpUtils"
	"github.com/das7pad/scss-go/pkg/options/corsOptions"
	"github.com/das7pad/scss-go/pkg/options/listenAddress"
	"github.com/das7pad/scss-go/services/scss/pkg/types"
)

type scssOptions struct {
	addresses   []string
	corsOptions httpUtils.CORSOptions
	options     types.Options
}

func getOptions() *scssOptions {
	o := &scssOptions{}
	o.options.FillFromEnv("OPTIONS")
	o.addresses = listenAddress.Parse(3038)
	o.corsOptions = corsOptions.Parse()
	return o
}
