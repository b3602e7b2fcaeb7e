package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacecolony-go/internal/adapters/metrics"
	"github.com/andrescamacho/spacecolony-go/internal/application/colony"
	"github.com/andrescamacho/spacecolony-go/internal/application/common"
	"github.com/andrescamacho/spacecolony-go/internal/application/mediator"
	"github.com/andrescamacho/spacecolony-go/internal/domain/simulation"
)

// PassTurnCommand advances the game by Turns turns (at least one). Passing
// stops early once the game is won or lost.
type PassTurnCommand struct {
	SaveID simulation.SaveID
	Turns  int
}

// PassTurnResponse holds one report per resolved turn
type PassTurnResponse struct {
	Reports []*simulation.TurnReport
	Status  simulation.StatusView
}

// PassTurnHandler handles the PassTurn command
type PassTurnHandler struct {
	store *colony.GameStore
}

// NewPassTurnHandler creates a new PassTurnHandler
func NewPassTurnHandler(store *colony.GameStore) *PassTurnHandler {
	return &PassTurnHandler{store: store}
}

// Handle executes the PassTurn command
func (h *PassTurnHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*PassTurnCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *PassTurnCommand")
	}
	turns := cmd.Turns
	if turns < 1 {
		turns = 1
	}

	var reports []*simulation.TurnReport
	session, err := h.store.Update(ctx, cmd.SaveID, func(s *colony.Session) error {
		for i := 0; i < turns; i++ {
			report, err := s.Game.PassTurn()
			if err != nil {
				if len(reports) > 0 {
					return nil
				}
				return err
			}
			reports = append(reports, report)
			if report.Outcome.IsTerminal() {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	status := session.Game.Status()
	metrics.RecordState(status, session.Game.ShipView())
	logger := common.LoggerFromContext(ctx)
	for _, report := range reports {
		metrics.RecordTurn(report)
		logTurn(logger, cmd.SaveID, report)
	}

	return &PassTurnResponse{Reports: reports, Status: status}, nil
}

// logTurn writes one turn report, warning on shortfalls and terminal outcomes
func logTurn(logger common.ContainerLogger, id simulation.SaveID, report *simulation.TurnReport) {
	metadata := map[string]interface{}{
		"save_id":           id.String(),
		"turn":              report.Turn,
		"outcome":           report.Outcome.String(),
		"starvation_streak": report.StarvationStreak,
	}
	if len(report.Expired) > 0 {
		metadata["expired"] = len(report.Expired)
	}
	for _, shortfall := range report.Shortfalls {
		logger.Log("WARN", "Shortfall", map[string]interface{}{
			"save_id": id.String(),
			"turn":    report.Turn,
			"owner":   shortfall.Owner,
			"missing": shortfall.Missing.String(),
		})
	}
	if report.Outcome.IsTerminal() {
		logger.Log("WARN", "Game over", metadata)
		return
	}
	logger.Log("DEBUG", "Turn resolved", metadata)
}
