package serve

import (
	"github.com/cldimg/cldimg/lib/cldurl"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts the URLs built by the server
type Metrics struct {
	Builds      *prometheus.CounterVec
	BuildErrors *prometheus.CounterVec
}

// NewMetrics creates a new metrics instance
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		Builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "url_builds_total",
			Help:      "Number of delivery URLs built.",
		}, []string{"resource_type", "type"}),
		BuildErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "url_build_errors_total",
			Help:      "Number of requests which failed to build a URL.",
		}, []string{"reason"}),
	}
}

// Collectors returns all prometheus metrics as collectors for registration.
func (m *Metrics) Collectors() []prometheus.Collector {
	if m == nil {
		return nil
	}
	return []prometheus.Collector{
		m.Builds,
		m.BuildErrors,
	}
}

// onBuild counts a URL made for the resource and delivery type it
// addresses. URLs passed through as given aren't counted.
func (m *Metrics) onBuild(result cldurl.Result) {
	if m == nil || !result.Delivered {
		return
	}
	m.Builds.WithLabelValues(result.ResourceType, result.Type).Inc()
}

func (m *Metrics) onError(err error) {
	if m == nil {
		return
	}
	m.BuildErrors.WithLabelValues(errorReason(err)).Inc()
}

// errorReason returns a short label for err
func errorReason(err error) string {
	switch errors.Cause(err) {
	case cldurl.ErrURLSuffixNotSupported:
		return "url_suffix_not_supported"
	case cldurl.ErrRootPathNotSupported:
		return "root_path_not_supported"
	case cldurl.ErrInvalidURLSuffix:
		return "invalid_url_suffix"
	}
	return "bad_options"
}
