package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
	"github.com/andrescamacho/spacecolony-go/internal/domain/simulation"
)

// ColonyMetricsCollector handles turn, travel, construction and stock metrics
type ColonyMetricsCollector struct {
	// Turn metrics
	turnsTotal      prometheus.Counter
	shortfallsTotal *prometheus.CounterVec
	expiredTotal    *prometheus.CounterVec
	overflowTotal   *prometheus.CounterVec

	// Travel metrics
	journeysTotal *prometheus.CounterVec
	journeyTurns  prometheus.Histogram

	// Construction and cargo metrics
	buildingsBuilt      *prometheus.CounterVec
	buildingsDemolished *prometheus.CounterVec
	rocketsSpent        prometheus.Counter
	transferredUnits    *prometheus.CounterVec

	// State gauges
	currentTurn      prometheus.Gauge
	outcome          *prometheus.GaugeVec
	starvationStreak prometheus.Gauge
	shipStock        *prometheus.GaugeVec
}

// NewColonyMetricsCollector creates a new gameplay metrics collector
func NewColonyMetricsCollector() *ColonyMetricsCollector {
	return &ColonyMetricsCollector{
		turnsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "turns_total",
			Help:      "Total number of turns resolved",
		}),
		shortfallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "shortfalls_total",
				Help:      "Turn batches rejected for a missing resource, by owner type and resource",
			},
			[]string{"owner_type", "resource"},
		),
		expiredTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "buildings_expired_total",
				Help:      "Buildings removed by decay",
			},
			[]string{"owner_type"},
		),
		overflowTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "overflow_units_total",
				Help:      "Production discarded at stockpile caps",
			},
			[]string{"resource"},
		),
		journeysTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "journeys_total",
				Help:      "Journeys started, by destination and whether the ship arrived",
			},
			[]string{"destination", "arrived"},
		),
		journeyTurns: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "journey_turns",
			Help:      "Turns spent in transit per journey",
			Buckets:   []float64{1, 2, 3, 5, 8, 13},
		}),
		buildingsBuilt: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "buildings_built_total",
				Help:      "Buildings installed, by kind and owner type",
			},
			[]string{"kind", "owner_type"},
		),
		buildingsDemolished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "buildings_demolished_total",
				Help:      "Buildings demolished by the player",
			},
			[]string{"owner_type"},
		),
		rocketsSpent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rockets_spent_total",
			Help:      "Rocket shuttles spent on planet-side actions",
		}),
		transferredUnits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transferred_units_total",
				Help:      "Units moved between the ship and nodes",
			},
			[]string{"resource", "direction"},
		),
		currentTurn: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "turn",
			Help:      "Current turn number",
		}),
		outcome: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "outcome",
				Help:      "1 for the current outcome, 0 otherwise",
			},
			[]string{"outcome"},
		),
		starvationStreak: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "starvation_streak",
			Help:      "Consecutive turns the crew went hungry",
		}),
		shipStock: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "ship_stock",
				Help:      "Ship ledger amount per resource",
			},
			[]string{"resource"},
		),
	}
}

// Register registers all gameplay metrics with the Prometheus registry
func (c *ColonyMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.turnsTotal,
		c.shortfallsTotal,
		c.expiredTotal,
		c.overflowTotal,
		c.journeysTotal,
		c.journeyTurns,
		c.buildingsBuilt,
		c.buildingsDemolished,
		c.rocketsSpent,
		c.transferredUnits,
		c.currentTurn,
		c.outcome,
		c.starvationStreak,
		c.shipStock,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

func ownerType(owner string) string {
	if simulation.ParseOwner(owner).IsShip() {
		return "ship"
	}
	return "node"
}

// RecordTurn records one resolved turn
func (c *ColonyMetricsCollector) RecordTurn(report *simulation.TurnReport) {
	c.turnsTotal.Inc()

	for _, s := range report.Shortfalls {
		for _, r := range s.Resources() {
			c.shortfallsTotal.WithLabelValues(ownerType(s.Owner), r.String()).Inc()
		}
	}
	for _, e := range report.Expired {
		c.expiredTotal.WithLabelValues(ownerType(e.Owner)).Inc()
	}
	for _, overflow := range report.Overflow {
		for r, amount := range overflow {
			c.overflowTotal.WithLabelValues(r.String()).Add(float64(amount))
		}
	}
}

// RecordTravel records a journey and every turn spent in transit
func (c *ColonyMetricsCollector) RecordTravel(result *simulation.TravelResult) {
	c.journeysTotal.WithLabelValues(result.To, strconv.FormatBool(result.Arrived)).Inc()
	c.journeyTurns.Observe(float64(len(result.Turns)))
	for _, report := range result.Turns {
		c.RecordTurn(report)
	}
}

// RecordBuild records a construction
func (c *ColonyMetricsCollector) RecordBuild(result *simulation.BuildResult) {
	c.buildingsBuilt.WithLabelValues(result.Instance.Kind, ownerType(result.Owner)).Inc()
	c.rocketsSpent.Add(float64(result.RocketsSpent))
}

// RecordDemolish records a demolition
func (c *ColonyMetricsCollector) RecordDemolish(owner simulation.Owner) {
	c.buildingsDemolished.WithLabelValues(ownerType(owner.String())).Inc()
}

// RecordTransfer records a cargo transfer
func (c *ColonyMetricsCollector) RecordTransfer(result *simulation.TransferResult) {
	c.transferredUnits.WithLabelValues(result.Resource.String(), string(result.Direction)).Add(float64(result.Moved))
	c.rocketsSpent.Add(float64(result.RocketsSpent))
}

// RecordState sets the state gauges from the current game
func (c *ColonyMetricsCollector) RecordState(status simulation.StatusView, ship simulation.ShipView) {
	c.currentTurn.Set(float64(status.Turn))
	c.starvationStreak.Set(float64(status.StarvationStreak))
	for _, o := range []simulation.Outcome{simulation.OutcomeOngoing, simulation.OutcomeWon, simulation.OutcomeLost} {
		value := 0.0
		if o == status.Outcome {
			value = 1
		}
		c.outcome.WithLabelValues(o.String()).Set(value)
	}
	for _, r := range shared.AllResources() {
		c.shipStock.WithLabelValues(r.String()).Set(float64(ship.Ledger[r]))
	}
}
