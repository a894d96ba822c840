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
package recyclebin

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
	"www.velocidex.com/golang/rbdump/accessors"
	config_proto "www.velocidex.com/golang/rbdump/config/proto"
	"www.velocidex.com/golang/rbdump/constants"
	"www.velocidex.com/golang/rbdump/logging"
	"www.velocidex.com/golang/rbdump/rows"
	"www.velocidex.com/golang/rbdump/utils"
)

type Options struct {
	// Names at the root matching this glob (case insensitive) are
	// treated as $I records.
	InfoGlob string

	// Write one header for the whole run instead of one per root.
	SingleHeader bool

	// Zero means unbounded.
	DeletedAfter  time.Time
	DeletedBefore time.Time
}

func OptionsFromConfig(config_obj *config_proto.Config) (Options, error) {
	result := Options{
		InfoGlob: constants.INFO_FILE_GLOB,
	}

	if config_obj.Output != nil {
		result.SingleHeader = config_obj.Output.SingleHeader
	}

	if config_obj.Dumper == nil {
		return result, nil
	}

	if config_obj.Dumper.InfoGlob != "" {
		result.InfoGlob = config_obj.Dumper.InfoGlob
	}

	var err error
	if config_obj.Dumper.DeletedAfter != "" {
		result.DeletedAfter, err = dateparse.ParseIn(
			config_obj.Dumper.DeletedAfter, time.UTC)
		if err != nil {
			return result, errors.Wrap(err, "deleted_after")
		}
	}

	if config_obj.Dumper.DeletedBefore != "" {
		result.DeletedBefore, err = dateparse.ParseIn(
			config_obj.Dumper.DeletedBefore, time.UTC)
		if err != nil {
			return result, errors.Wrap(err, "deleted_before")
		}
	}

	return result, nil
}

func (self Options) inWindow(t time.Time) bool {
	if !self.DeletedAfter.IsZero() && t.Before(self.DeletedAfter) {
		return false
	}
	if !self.DeletedBefore.IsZero() && !t.Before(self.DeletedBefore) {
		return false
	}
	return true
}

// Diagnostics for a run. Decode failures and unreadable directories
// do not stop the run but are counted here.
type Stats struct {
	Roots           int
	Records         int
	Filtered        int
	Rows            int
	MissingPayloads int
	DecodeErrors    int
	ReadDirErrors   int

	// Sum of the sizes declared by the decoded records.
	DeclaredBytes uint64
}

// Returned when a directory can not be listed.
type ReadDirError struct {
	Path string
	Err  error
}

func (self *ReadDirError) Error() string {
	return fmt.Sprintf("Unable to list %v: %v", self.Path, self.Err)
}

func (self *ReadDirError) Unwrap() error {
	return self.Err
}

// The Dumper walks recycle bin roots and writes one row per entry to
// the sink. It is not safe for concurrent use.
type Dumper struct {
	accessor accessors.FileSystemAccessor
	builder  *rows.Builder
	logger   *logging.LogContext
	options  Options

	headers int
	stats   Stats
}

func NewDumper(
	config_obj *config_proto.Config,
	accessor accessors.FileSystemAccessor,
	sink rows.Sink,
	options Options) (*Dumper, error) {

	if options.InfoGlob == "" {
		options.InfoGlob = constants.INFO_FILE_GLOB
	}

	_, err := path.Match(options.InfoGlob, "")
	if err != nil {
		return nil, errors.Wrapf(err, "info glob %q", options.InfoGlob)
	}

	return &Dumper{
		accessor: accessor,
		builder:  rows.NewBuilder(sink, constants.COLUMNS),
		logger:   logging.GetLogger(config_obj, &logging.DumperComponent),
		options:  options,
	}, nil
}

func (self *Dumper) Stats() Stats {
	return self.stats
}

// The $R payload has the same name as the $I file with the marker
// character swapped. This is a pure string transform.
func PayloadPath(info_path string) string {
	idx := strings.LastIndexAny(info_path, `/\`) + 1
	name := info_path[idx:]
	if len(name) < 2 {
		return info_path
	}

	return info_path[:idx] + name[:1] + string(constants.PAYLOAD_MARKER) + name[2:]
}

func matchName(pattern, name string) bool {
	matched, err := path.Match(strings.ToUpper(pattern), strings.ToUpper(name))
	return err == nil && matched
}

// Process all the $I records at the root of one recycle bin. Only a
// failure to list the root itself or to write output is returned.
func (self *Dumper) DumpRoot(ctx context.Context, root string) error {
	self.stats.Roots++

	if !self.options.SingleHeader || self.headers == 0 {
		err := self.builder.Header()
		if err != nil {
			return err
		}
		self.headers++
	}

	self.logger.Info("Processing recycle bin %v", root)

	return self.forEach(ctx, root, self.options.InfoGlob, self.correlateEntry)
}

// Call the handler on every entry of dir whose name matches the
// pattern (empty pattern matches everything). The builder is
// restored to its state on entry before each call.
func (self *Dumper) forEach(
	ctx context.Context, dir, pattern string,
	handler func(ctx context.Context, info accessors.FileInfo) error) error {

	children, err := self.accessor.ReadDir(dir)
	if err != nil {
		self.stats.ReadDirErrors++
		metricReadDirErrors.Inc()
		return &ReadDirError{Path: dir, Err: err}
	}

	checkpoint := self.builder.Checkpoint()
	defer self.builder.Restore(checkpoint)

	for _, child := range children {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		name := child.Name()
		if name == "." || name == ".." {
			continue
		}

		if pattern != "" && !matchName(pattern, name) {
			continue
		}

		self.builder.Restore(checkpoint)
		err := handler(ctx, child)
		if err != nil {
			return err
		}
	}

	return nil
}

func decodeErrorReason(err error) string {
	switch {
	case errors.Is(err, ErrTruncated):
		return "truncated"
	case errors.Is(err, ErrCorrupt):
		return "corrupt"
	case errors.Is(err, ErrUnsupportedVersion):
		return "unsupported_version"
	default:
		return "io"
	}
}

func (self *Dumper) correlateEntry(
	ctx context.Context, info accessors.FileInfo) error {

	// Only files can be $I records.
	if info.IsDir() {
		return nil
	}

	record, err := ParseFile(self.accessor, info.FullPath())
	if err != nil {
		self.stats.DecodeErrors++
		metricDecodeErrors.WithLabelValues(decodeErrorReason(err)).Inc()
		self.logger.Warn("Skipping %v: %v", info.FullPath(), err)
		return nil
	}

	self.stats.Records++
	self.stats.DeclaredBytes += record.Size
	metricRecords.Inc()

	if !self.options.inWindow(record.DeletedAt.Time()) {
		self.stats.Filtered++
		return nil
	}

	return self.Correlate(ctx, record, info)
}

// Emit the rows for one record. The first block of fields describes
// the record and its $I file and is repeated on every row produced
// for the record. The second block describes the payload.
func (self *Dumper) Correlate(ctx context.Context,
	record *Record, info accessors.FileInfo) error {

	self.builder.Add(
		record.OriginalPath,
		record.DeletedAt.String(),
		strconv.FormatUint(record.Size, 10),
		info.FullPath(),
		utils.FormatTime(info.Btime()),
		utils.FormatTime(info.Mtime()),
		utils.FormatTime(info.Atime()))

	checkpoint := self.builder.Checkpoint()

	payload := Probe(self.accessor, PayloadPath(info.FullPath()))
	self.addPayload(payload)

	err := self.emit()
	if err != nil {
		return err
	}

	if !payload.Exists {
		self.stats.MissingPayloads++
		metricMissingPayloads.Inc()

		if errors.Is(payload.Err, ErrPathMissing) {
			self.logger.Debug("%v", payload.Err)
		} else {
			self.logger.Warn("Unable to access payload for %v: %v",
				info.FullPath(), payload.Err)
		}
		return nil
	}

	if payload.IsDir {
		self.builder.Restore(checkpoint)
		return self.Flatten(ctx, payload.Path)
	}

	return nil
}

// Emit a row for every entry below dir, recursively. The fields
// already in the builder are repeated on every row.
func (self *Dumper) Flatten(ctx context.Context, dir string) error {
	err := self.forEach(ctx, dir, "", self.flattenEntry)

	// A directory we can not list does not stop its siblings.
	rd_err := &ReadDirError{}
	if errors.As(err, &rd_err) && rd_err.Path == dir {
		self.logger.Warn("%v", rd_err)
		return nil
	}
	return err
}

func (self *Dumper) flattenEntry(
	ctx context.Context, info accessors.FileInfo) error {
	checkpoint := self.builder.Checkpoint()

	self.addPayload(AttributesFromFileInfo(info))
	err := self.emit()
	if err != nil {
		return err
	}

	if info.IsDir() {
		self.builder.Restore(checkpoint)
		return self.Flatten(ctx, info.FullPath())
	}
	return nil
}

func (self *Dumper) addPayload(payload PayloadAttributes) {
	if !payload.Exists {
		self.builder.Add(constants.MISSING_PLACEHOLDER, "", "", "", "")
		return
	}

	self.builder.Add(
		payload.Path,
		utils.FormatTime(payload.Created),
		utils.FormatTime(payload.Modified),
		utils.FormatTime(payload.Accessed),
		strconv.FormatUint(payload.Size, 10))
}

func (self *Dumper) emit() error {
	err := self.builder.Emit()
	if err != nil {
		return err
	}
	self.stats.Rows++
	metricRows.Inc()
	return nil
}
