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
package file

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fileAccessorCurrentOpened = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "accessor_file_current_open",
		Help: "Number of currently opened files with the file accessor.",
	})

	fileAccessorStatErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "accessor_file_stat_errors_total",
		Help: "Directory entries dropped because they could not be stat'ed.",
	})

	FileHistorgram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "file_accessor",
			Help:    "Latency of file accessor operations.",
			Buckets: prometheus.LinearBuckets(0.01, 0.05, 10),
		},
		[]string{"action"},
	)
)

func Instrument(access_type string) func() time.Duration {
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		FileHistorgram.WithLabelValues(access_type).Observe(v)
	}))

	return timer.ObserveDuration
}
