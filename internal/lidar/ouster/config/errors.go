package config

import "fmt"

// InvalidConfig is returned for config-time violations such as a
// profile/L/C mismatch, an azimuth window too wide for the signal
// multiplier, or an unparseable profile string (ousterconfigio.Load wraps
// profile.ParseString's error in one). Config errors are fatal
// at construction and prevent aggregator creation; the core has no
// config-time fallback behavior.
type InvalidConfig struct {
	Reason string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("ouster/config: invalid configuration: %s", e.Reason)
}

func invalidf(format string, args ...any) *InvalidConfig {
	return &InvalidConfig{Reason: fmt.Sprintf(format, args...)}
}
