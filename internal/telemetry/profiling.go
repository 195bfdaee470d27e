// Package telemetry wires the optional continuous-profiling hook around
// the media cache service. It is off by default; nothing in the stream
// cache core depends on it.
package telemetry

import (
	"fmt"

	"github.com/grafana/pyroscope-go"

	"brm/pkg/config"
)

// StartProfiling reads the "profiling" sub-config and, if enabled, starts
// a Pyroscope continuous profiler tagged with serviceVersion. The
// returned shutdown func is a no-op when profiling was disabled.
func StartProfiling(cfg *config.Config, serviceVersion string) (shutdown func() error, err error) {
	if !cfg.GetBoolWithDefault("enabled", false) {
		return func() error { return nil }, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.GetStringWithDefault("serviceName", "media-stream-cache"),
		ServerAddress:   cfg.GetStringWithDefault("endpoint", "http://localhost:4040"),
		Tags: map[string]string{
			"version": serviceVersion,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileInuseObjects,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("telemetry: start profiler: %w", err)
	}

	return profiler.Stop, nil
}
