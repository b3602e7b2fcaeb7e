package config

// MetricsConfig holds metrics collection configuration. The CLI is short
// lived, so metrics are written in the Prometheus text format for the
// node_exporter textfile collector instead of being served over HTTP.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active
	Enabled bool `mapstructure:"enabled"`

	// File the registry is written to after every command
	TextfilePath string `mapstructure:"textfile_path" validate:"required_if=Enabled true"`
}
