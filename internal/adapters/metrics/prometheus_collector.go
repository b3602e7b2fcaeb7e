package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/spacecolony-go/internal/domain/simulation"
)

const (
	// Namespace for all metrics
	namespace = "spacecolony"
	// Subsystem for game engine metrics
	subsystem = "game"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalColonyCollector is set by SetGlobalColonyCollector when metrics are enabled
	globalColonyCollector ColonyMetricsRecorder
)

// ColonyMetricsRecorder records gameplay events
type ColonyMetricsRecorder interface {
	RecordTurn(report *simulation.TurnReport)
	RecordTravel(result *simulation.TravelResult)
	RecordBuild(result *simulation.BuildResult)
	RecordDemolish(owner simulation.Owner)
	RecordTransfer(result *simulation.TransferResult)
	RecordState(status simulation.StatusView, ship simulation.ShipView)
}

// InitRegistry initializes the Prometheus registry.
// Call once at startup when metrics are enabled.
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text format, for the node_exporter textfile collector
func WriteTextfile(path string) error {
	if Registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

// SetGlobalColonyCollector sets the global gameplay metrics collector
func SetGlobalColonyCollector(collector ColonyMetricsRecorder) {
	globalColonyCollector = collector
}

// RecordTurn records a resolved turn globally
func RecordTurn(report *simulation.TurnReport) {
	if globalColonyCollector != nil && report != nil {
		globalColonyCollector.RecordTurn(report)
	}
}

// RecordTravel records a journey globally
func RecordTravel(result *simulation.TravelResult) {
	if globalColonyCollector != nil && result != nil {
		globalColonyCollector.RecordTravel(result)
	}
}

// RecordBuild records a construction globally
func RecordBuild(result *simulation.BuildResult) {
	if globalColonyCollector != nil && result != nil {
		globalColonyCollector.RecordBuild(result)
	}
}

// RecordDemolish records a demolition globally
func RecordDemolish(owner simulation.Owner) {
	if globalColonyCollector != nil {
		globalColonyCollector.RecordDemolish(owner)
	}
}

// RecordTransfer records a cargo transfer globally
func RecordTransfer(result *simulation.TransferResult) {
	if globalColonyCollector != nil && result != nil {
		globalColonyCollector.RecordTransfer(result)
	}
}

// RecordState records the current game state gauges globally
func RecordState(status simulation.StatusView, ship simulation.ShipView) {
	if globalColonyCollector != nil {
		globalColonyCollector.RecordState(status, ship)
	}
}
