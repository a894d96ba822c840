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
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"www.velocidex.com/golang/rbdump/accessors"
	"www.velocidex.com/golang/rbdump/accessors/file"
	config_proto "www.velocidex.com/golang/rbdump/config/proto"
	"www.velocidex.com/golang/rbdump/logging"
	"www.velocidex.com/golang/rbdump/recyclebin"
	"www.velocidex.com/golang/rbdump/rows"
)

var (
	dump_command = app.Command("dump",
		"Dump every entry of the recycle bin roots as rows.").Default()

	dump_roots = dump_command.Arg("roots",
		`Recycle bin directories, e.g. C:\$Recycle.Bin\<SID>`).
		Required().Strings()

	dump_format = dump_command.Flag("format", "Output format.").
			Enum("csv", "jsonl", "table", "sqlite")

	dump_output = dump_command.Flag("output",
		"Write to this file instead of stdout (required for sqlite).").
		Short('o').String()

	dump_single_header = dump_command.Flag("single_header",
		"Write one header for all roots.").Bool()

	dump_deleted_after = dump_command.Flag("deleted_after",
		"Only show items deleted at or after this time.").String()

	dump_deleted_before = dump_command.Flag("deleted_before",
		"Only show items deleted before this time.").String()

	dump_marker_glob = dump_command.Flag("marker_glob",
		"Glob selecting the $I files at each root.").String()
)

// Command line flags override the config file.
func applyDumpFlags(config_obj *config_proto.Config) error {
	if *dump_format != "" {
		config_obj.Output.Format = *dump_format
	}

	if *dump_output != "" {
		config_obj.Output.Filename = *dump_output
	}

	if *dump_single_header {
		config_obj.Output.SingleHeader = true
	}

	if *dump_deleted_after != "" {
		config_obj.Dumper.DeletedAfter = *dump_deleted_after
	}

	if *dump_deleted_before != "" {
		config_obj.Dumper.DeletedBefore = *dump_deleted_before
	}

	if *dump_marker_glob != "" {
		config_obj.Dumper.InfoGlob = *dump_marker_glob
	}

	return nil
}

// Text formats go to the output file or stdout. The sqlite sink
// opens its own file.
func openOutput(config_obj *config_proto.Config) (io.WriteCloser, error) {
	if config_obj.Output.Format == "sqlite" ||
		config_obj.Output.Filename == "" {
		return nopCloser{os.Stdout}, nil
	}

	fd, err := os.OpenFile(config_obj.Output.Filename,
		os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return fd, nil
}

type nopCloser struct {
	io.Writer
}

func (self nopCloser) Close() error {
	return nil
}

func dumpRoots(
	ctx context.Context,
	config_obj *config_proto.Config,
	accessor accessors.FileSystemAccessor,
	out io.Writer, roots []string) (recyclebin.Stats, error) {

	sink, err := rows.NewSink(config_obj, out)
	if err != nil {
		return recyclebin.Stats{}, err
	}

	options, err := recyclebin.OptionsFromConfig(config_obj)
	if err != nil {
		sink.Close()
		return recyclebin.Stats{}, err
	}

	dumper, err := recyclebin.NewDumper(config_obj, accessor, sink, options)
	if err != nil {
		sink.Close()
		return recyclebin.Stats{}, err
	}

	logger := logging.GetLogger(config_obj, &logging.ToolComponent)

	for _, root := range roots {
		err = dumper.DumpRoot(ctx, root)
		if err == nil {
			continue
		}

		// An unreadable root does not stop the others.
		rd_err := &recyclebin.ReadDirError{}
		if errors.As(err, &rd_err) {
			logger.Error("%v", rd_err)
			continue
		}

		sink.Close()
		return dumper.Stats(), err
	}

	return dumper.Stats(), sink.Close()
}

func logSummary(config_obj *config_proto.Config, stats recyclebin.Stats) {
	logger := logging.GetLogger(config_obj, &logging.ToolComponent)
	logger.Info("Processed %v roots: %v records declaring %v, %v rows, %v missing payloads",
		stats.Roots, humanize.Comma(int64(stats.Records)),
		humanize.Bytes(stats.DeclaredBytes),
		humanize.Comma(int64(stats.Rows)), stats.MissingPayloads)

	if stats.DecodeErrors > 0 || stats.ReadDirErrors > 0 {
		logger.Warn("%v records could not be decoded and %v directories could not be listed",
			stats.DecodeErrors, stats.ReadDirErrors)
	}
}

func doDump() error {
	config_obj, err := makeDefaultConfigLoader().
		WithConfigMutator("DumpFlags", applyDumpFlags).
		LoadAndValidate()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	ctx, cancel := InstallSignalHandler(context.Background(), config_obj)
	defer cancel()

	out, err := openOutput(config_obj)
	if err != nil {
		return err
	}
	defer out.Close()

	stats, err := dumpRoots(ctx, config_obj,
		file.NewOSFileSystemAccessor(), out, *dump_roots)
	logSummary(config_obj, stats)

	return err
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		if command == dump_command.FullCommand() {
			err := doDump()
			kingpin.FatalIfError(err, "dump")
			return true
		}
		return false
	})
}
