/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package supervisor

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the supervisor's Prometheus instrumentation: counters for
// accepted/closed connections and a gauge tracking the live set, so an
// operator can watch accept/reap behaviour (spec.md §8 property 4, "reap
// completeness") from outside the process.
type Metrics struct {
	accepted prometheus.Counter
	closed   prometheus.Counter
	active   prometheus.Gauge
}

// NewMetrics builds a Metrics registered against reg. A nil reg uses
// prometheus.DefaultRegisterer. Registration failures (e.g. a second
// Supervisor in the same process) are swallowed — metrics are an
// observability aid, not load-bearing.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		accepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jayc_supervisor_connections_accepted_total",
			Help: "Total connections accepted by the control supervisor.",
		}),
		closed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jayc_supervisor_connections_closed_total",
			Help: "Total connections reaped or torn down by the control supervisor.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "jayc_supervisor_connections_active",
			Help: "Connections currently tracked by the control supervisor.",
		}),
	}

	for _, c := range []prometheus.Collector{m.accepted, m.closed, m.active} {
		_ = reg.Register(c)
	}
	return m
}

func (m *Metrics) connAccepted() {
	if m == nil {
		return
	}
	m.accepted.Inc()
	m.active.Inc()
}

func (m *Metrics) connClosed() {
	if m == nil {
		return
	}
	m.closed.Inc()
	m.active.Dec()
}
