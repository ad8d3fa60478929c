// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vechain/rewardpool/log"
)

const namespace = "rewardpool"

var logger = log.WithContext("pkg", "metrics")

// InitializePrometheusMetrics switches to the prometheus default registry.
// Calling it again keeps the meters already created.
func InitializePrometheusMetrics() {
	if !Enabled() {
		backend = &promBackend{}
	}
}

type promBackend struct {
	meters sync.Map // name => meter
}

func meter[T any](b *promBackend, name string, create func() (T, prometheus.Collector)) T {
	if m, ok := b.meters.Load(name); ok {
		return m.(T)
	}
	m, c := create()
	actual, loaded := b.meters.LoadOrStore(name, m)
	if !loaded {
		register(c)
	}
	return actual.(T)
}

func register(c prometheus.Collector) {
	if err := prometheus.Register(c); err != nil {
		logger.Warn("unable to register metric", "err", err)
	}
}

func (b *promBackend) Handler() http.Handler {
	return promhttp.Handler()
}

func (b *promBackend) CounterVec(name string, labels []string) CountVecMeter {
	return meter(b, name, func() (CountVecMeter, prometheus.Collector) {
		c := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name}, labels)
		return promCounter{c}, c
	})
}

func (b *promBackend) GaugeVec(name string, labels []string) GaugeVecMeter {
	return meter(b, name, func() (GaugeVecMeter, prometheus.Collector) {
		g := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: namespace, Name: name}, labels)
		return promGauge{g}, g
	})
}

func (b *promBackend) HistogramVec(name string, labels []string, buckets []int64) HistogramVecMeter {
	return meter(b, name, func() (HistogramVecMeter, prometheus.Collector) {
		bounds := make([]float64, len(buckets))
		for i, v := range buckets {
			bounds[i] = float64(v)
		}
		h := prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Buckets:   bounds,
		}, labels)
		return promHistogram{h}, h
	})
}

type promCounter struct{ vec *prometheus.CounterVec }

func (c promCounter) AddWithLabel(n int64, labels map[string]string) {
	c.vec.With(labels).Add(float64(n))
}

type promGauge struct{ vec *prometheus.GaugeVec }

func (g promGauge) AddWithLabel(n int64, labels map[string]string) {
	g.vec.With(labels).Add(float64(n))
}

func (g promGauge) SetWithLabel(n int64, labels map[string]string) {
	g.vec.With(labels).Set(float64(n))
}

type promHistogram struct{ vec *prometheus.HistogramVec }

func (h promHistogram) ObserveWithLabels(n int64, labels map[string]string) {
	h.vec.With(labels).Observe(float64(n))
}
