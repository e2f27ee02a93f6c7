package observability

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rinex-ng/internal/rinex"
)

// ParseCollector bundles Prometheus counters for parse sessions and
// provides an HTTP handler to expose them. Recoverable parse conditions
// are observed here in aggregate; they never abort a parse.
type ParseCollector struct {
	gatherer prometheus.Gatherer

	FilesParsed       prometheus.Counter
	EpochsRead        prometheus.Counter
	SatellitesRead    prometheus.Counter
	EventsSkipped     prometheus.Counter
	MissingFields     prometheus.Counter
	InvalidSatellites prometheus.Counter
}

// NewParseCollector registers the parse metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewParseCollector(reg prometheus.Registerer) (*ParseCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &ParseCollector{gatherer: gatherer}
	for _, def := range []struct {
		dst  *prometheus.Counter
		name string
		help string
	}{
		{&c.FilesParsed, "rinex_files_parsed_total", "Total observation files parsed to completion."},
		{&c.EpochsRead, "rinex_epochs_read_total", "Total data-carrying epochs read."},
		{&c.SatellitesRead, "rinex_satellite_observations_total", "Total satellite observations kept."},
		{&c.EventsSkipped, "rinex_event_blocks_total", "Total non-data event blocks skipped."},
		{&c.MissingFields, "rinex_missing_fields_total", "Total blank observation fields recovered as NaN."},
		{&c.InvalidSatellites, "rinex_invalid_satellites_total", "Total observations dropped for unparseable or non-positive satellite numbers."},
	} {
		ctr, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Name: def.name,
			Help: def.help,
		}), def.name)
		if err != nil {
			return nil, err
		}
		*def.dst = ctr
	}
	return c, nil
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("metric %s already registered with a different type", name)
		}
		return nil, err
	}
	return c, nil
}

// Observe records the aggregated stats of one completed parse session.
func (c *ParseCollector) Observe(stats rinex.ParseStats) {
	c.FilesParsed.Inc()
	c.EpochsRead.Add(float64(stats.Epochs))
	c.SatellitesRead.Add(float64(stats.Satellites))
	c.EventsSkipped.Add(float64(stats.Events))
	c.MissingFields.Add(float64(stats.MissingFields))
	c.InvalidSatellites.Add(float64(stats.InvalidSatellites))
}

// Handler exposes the collector's registry in the Prometheus text format.
func (c *ParseCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
