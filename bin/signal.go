/*
Velociraptor - Dig Deeper
Copyright (C) 2019-2025 Rapid7 Inc.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published
by the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	config_proto "www.velocidex.com/golang/rbdump/config/proto"
	"www.velocidex.com/golang/rbdump/logging"
)

// Cancel the returned context on the first interrupt. The dumper
// checks it between entries so partial output is still flushed.
func InstallSignalHandler(
	ctx context.Context,
	config_obj *config_proto.Config) (context.Context, func()) {
	subctx, cancel := context.WithCancel(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(quit)

		select {
		case <-quit:
			logging.GetLogger(config_obj, &logging.ToolComponent).
				Info("Interrupted! Stopping.")
			cancel()

		case <-subctx.Done():
		}
	}()

	return subctx, cancel
}
