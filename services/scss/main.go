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
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/das7pad/scss-go/pkg/httpUtils"
	"github.com/das7pad/scss-go/services/scss/pkg/managers/stylesheet"
	"github.com/das7pad/scss-go/services/scss/pkg/router"
)

func main() {
	o := getOptions()
	sm, err := stylesheet.New(&o.options)
	if err != nil {
		panic(err)
	}

	server := &http.Server{
		Handler:           router.New(sm, o.corsOptions),
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)
	httpUtils.ListenAndServeEach(eg.Go, server, o.addresses)
	eg.Go(func() error {
		<-ctx.Done()
		sCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()
		return server.Shutdown(sCtx)
	})
	log.Printf("listening on %v", o.addresses)
	if err = eg.Wait(); err != nil && err != http.ErrServerClosed {
		panic(err)
	}
}
