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
package constants

var (
	VERSION = "0.1.0"

	// Name of the tool as reported by version and logs.
	NAME = "rbdump"
)

const (
	// Every file in a $Recycle.Bin\<SID> directory starts with "$"
	// followed by a marker character. The $I file holds the metadata
	// record, the $R file is the relocated payload. Both share the
	// same random suffix.
	RECYCLE_PREFIX = "$"
	INFO_MARKER    = 'I'
	PAYLOAD_MARKER = 'R'
	INFO_FILE_GLOB = RECYCLE_PREFIX + string(INFO_MARKER) + "*"

	// Rendered in place of the payload name when the $R file is gone.
	MISSING_PLACEHOLDER = "Missing"

	TIME_FORMAT = "2006-01-02 15:04:05"
)

// Output columns in the order they are emitted.
var (
	COLUMN_ORIGINAL_FULL_PATH          = "OriginalFullPath"
	COLUMN_DELETED_DATE_TIME           = "DeletedDateTime"
	COLUMN_DELETED_FILE_SIZE           = "DeletedFileSize"
	COLUMN_RECYCLE_INFO_FILE           = "RecycleInfoFile"
	COLUMN_RECYCLE_INFO_CREATED        = "RecycleInfoCreated"
	COLUMN_RECYCLE_INFO_LAST_MODIFIED  = "RecycleInfoLastModified"
	COLUMN_RECYCLE_INFO_LAST_ACCESSED  = "RecycleInfoLastAccessed"
	COLUMN_ORIGINAL_FILE               = "OriginalFile"
	COLUMN_ORIGINAL_FILE_CREATED       = "OriginalFileCreated"
	COLUMN_ORIGINAL_FILE_LAST_MODIFIED = "OriginalFileLastModified"
	COLUMN_ORIGINAL_FILE_LAST_ACCESSED = "OriginalFileLastAccessed"
	COLUMN_ORIGINAL_FILE_SIZE          = "OriginalFileSize"

	COLUMNS = []string{
		COLUMN_ORIGINAL_FULL_PATH,
		COLUMN_DELETED_DATE_TIME,
		COLUMN_DELETED_FILE_SIZE,
		COLUMN_RECYCLE_INFO_FILE,
		COLUMN_RECYCLE_INFO_CREATED,
		COLUMN_RECYCLE_INFO_LAST_MODIFIED,
		COLUMN_RECYCLE_INFO_LAST_ACCESSED,
		COLUMN_ORIGINAL_FILE,
		COLUMN_ORIGINAL_FILE_CREATED,
		COLUMN_ORIGINAL_FILE_LAST_MODIFIED,
		COLUMN_ORIGINAL_FILE_LAST_ACCESSED,
		COLUMN_ORIGINAL_FILE_SIZE,
	}

	// The first INHERITED_COLUMNS columns describe the $I record and
	// are repeated on every row produced from the same record.
	INHERITED_COLUMNS = 7
)
