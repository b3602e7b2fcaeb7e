package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
	"github.com/andrescamacho/spacecolony-go/internal/domain/simulation"
)

// Request outcomes
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// CommandMetricsCollector tracks every request sent through the mediator.
// A rejected request broke a game rule and left the save untouched; a failed
// one hit storage, configuration or a programming error.
type CommandMetricsCollector struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	rejections      *prometheus.CounterVec
}

func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Time spent handling a colony command or query, including load and save",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.25, 1.0},
			},
			[]string{"request", "outcome"},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Colony commands and queries handled, by outcome",
			},
			[]string{"request", "outcome"},
		),
		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "rule_rejections_total",
				Help:      "Requests rejected by a game rule, by reason",
			},
			[]string{"request", "reason"},
		),
	}
}

func (c *CommandMetricsCollector) Collectors() []prometheus.Collector {
	return []prometheus.Collector{c.requestDuration, c.requestsTotal, c.rejections}
}

// Register is a no-op while metrics are disabled
func (c *CommandMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}
	for _, collector := range c.Collectors() {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// RecordRequest classifies err and records the request under its outcome
func (c *CommandMetricsCollector) RecordRequest(request string, seconds float64, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeFailed
		if reason, ok := RejectionReason(err); ok {
			outcome = OutcomeRejected
			c.rejections.WithLabelValues(request, reason).Inc()
		}
	}

	c.requestDuration.WithLabelValues(request, outcome).Observe(seconds)
	c.requestsTotal.WithLabelValues(request, outcome).Inc()
}

// RejectionReason maps a game-rule error to a stable label. ok is false for
// errors that are not rule violations.
func RejectionReason(err error) (string, bool) {
	var (
		insufficient *shared.InsufficientResourceError
		slotFull     *shared.SlotFullError
		placement    *shared.PlacementNotAllowedError
		noRoute      *shared.NoRouteError
		notFound     *shared.BuildingNotFoundError
		notPresent   *shared.ShipNotPresentError
		gameOver     *shared.GameOverError
		unknownKind  *shared.UnknownBuildingKindError
		unknownNode  *shared.UnknownNodeError
		validation   *shared.ValidationError
		missingSave  *simulation.ErrSaveNotFound
	)
	switch {
	case errors.As(err, &insufficient):
		return "insufficient_resource", true
	case errors.As(err, &slotFull):
		return "slot_full", true
	case errors.As(err, &placement):
		return "placement_not_allowed", true
	case errors.As(err, &noRoute):
		return "no_route", true
	case errors.As(err, &notFound):
		return "building_not_found", true
	case errors.As(err, &notPresent):
		return "ship_not_present", true
	case errors.As(err, &gameOver):
		return "game_over", true
	case errors.As(err, &unknownKind):
		return "unknown_building_kind", true
	case errors.As(err, &unknownNode):
		return "unknown_node", true
	case errors.As(err, &validation):
		return "invalid_input", true
	case errors.As(err, &missingSave):
		return "save_not_found", true
	}
	return "", false
}
