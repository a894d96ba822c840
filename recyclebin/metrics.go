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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recyclebin_records_total",
		Help: "Number of $I records successfully decoded.",
	})

	metricRows = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recyclebin_rows_total",
		Help: "Number of rows emitted.",
	})

	metricMissingPayloads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recyclebin_missing_payloads_total",
		Help: "Number of $I records whose $R payload is gone.",
	})

	metricDecodeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recyclebin_decode_errors_total",
		Help: "Number of $I records that could not be decoded.",
	}, []string{"reason"})

	metricReadDirErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recyclebin_readdir_errors_total",
		Help: "Number of directories that could not be listed.",
	})
)
