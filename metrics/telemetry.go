// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"sync"
)

// backend stays a no-op until InitializePrometheusMetrics.
var backend Backend = noopBackend{}

// Backend creates the labelled meters of the process.
type Backend interface {
	CounterVec(name string, labels []string) CountVecMeter
	GaugeVec(name string, labels []string) GaugeVecMeter
	HistogramVec(name string, labels []string, buckets []int64) HistogramVecMeter
	Handler() http.Handler
}

// CountVecMeter only goes up.
type CountVecMeter interface {
	AddWithLabel(int64, map[string]string)
}

type GaugeVecMeter interface {
	AddWithLabel(int64, map[string]string)
	SetWithLabel(int64, map[string]string)
}

// HistogramVecMeter buckets observations.
type HistogramVecMeter interface {
	ObserveWithLabels(int64, map[string]string)
}

// Bucket boundaries in milliseconds.
var (
	BucketOperation = []int64{0, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}
	BucketHTTPReqs  = []int64{0, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}
)

// HTTPHandler serves the scrape endpoint, nil while metrics are disabled.
func HTTPHandler() http.Handler {
	return backend.Handler()
}

func Enabled() bool {
	_, ok := backend.(*promBackend)
	return ok
}

// lazy resolves a meter on first use, after the backend has been chosen.
func lazy[T any](create func() T) func() T {
	return sync.OnceValue(create)
}

func LazyLoadCounterVec(name string, labels []string) func() CountVecMeter {
	return lazy(func() CountVecMeter { return backend.CounterVec(name, labels) })
}

func LazyLoadGaugeVec(name string, labels []string) func() GaugeVecMeter {
	return lazy(func() GaugeVecMeter { return backend.GaugeVec(name, labels) })
}

func LazyLoadHistogramVec(name string, labels []string, buckets []int64) func() HistogramVecMeter {
	return lazy(func() HistogramVecMeter { return backend.HistogramVec(name, labels, buckets) })
}
