package executor

import (
	"log/slog"

	"github.com/cockroachdb/errors"

	"tomyframe/pkg/engine/planner"
	"tomyframe/pkg/engine/types"
)

type Executor struct {
	chunkSize      int
	rechunkWorkers int
	logger         *slog.Logger
}

// NewExecutor returns an executor that streams sources in batches of
// chunkSize rows and merges results with up to rechunkWorkers goroutines.
func NewExecutor(chunkSize int, rechunkWorkers int, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		chunkSize:      chunkSize,
		rechunkWorkers: rechunkWorkers,
		logger:         logger,
	}
}

func (e *Executor) Execute(plan planner.QueryPlan) (*types.Frame, error) {
	switch p := plan.(type) {
	case *planner.SelectPlan:
		return e.executeSelect(p)

	default:
		return nil, errors.Newf("unknown plan type %T", plan)
	}
}
