package operations

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tabula/internal/dataprocessing"
	"tabula/internal/infrastructure"
	"tabula/pkg/contracts/domain"
)

// Manager executes the analysis pipeline and reports progress.
type Manager struct {
	logger  *slog.Logger
	tracker *ProgressTracker
	metrics *infrastructure.BusinessMetrics
	steps   []Step
}

// NewManager creates a manager with the standard pipeline steps.
// metrics may be nil when observability is disabled.
func NewManager(logger *slog.Logger, tracker *ProgressTracker, metrics *infrastructure.BusinessMetrics) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if tracker == nil {
		tracker = NewProgressTracker()
	}
	return &Manager{
		logger:  logger,
		tracker: tracker,
		metrics: metrics,
		steps:   NewPipelineSteps(),
	}
}

// Tracker returns the progress tracker snapshots are published to.
func (m *Manager) Tracker() *ProgressTracker {
	return m.tracker
}

// Run executes the pipeline over table and returns the Analysis. The
// context is consulted between steps only; a step that has started is
// always run to completion. Structural table problems surface as
// UnsupportedInput errors before any step runs.
func (m *Manager) Run(ctx context.Context, id string, table *domain.Table) (*domain.Analysis, error) {
	if err := dataprocessing.ValidateTable(table); err != nil {
		return nil, err
	}

	state := NewOperationState(id, table, m.steps)
	state.Start()
	m.publish(state)

	start := time.Now()
	m.logger.InfoContext(ctx, "operation started",
		slog.String("operation_id", id),
		slog.Int("rows", table.NumRows()),
		slog.Int("columns", table.NumColumns()))

	for i, step := range m.steps {
		if err := ctx.Err(); err != nil {
			state.Cancel()
			m.publish(state)
			m.logger.WarnContext(ctx, "operation cancelled",
				slog.String("operation_id", id),
				slog.String("before_step", step.ID()))
			return nil, err
		}

		stepState := state.StepStates()[i]
		stepState.Start()
		m.publish(state)

		if err := step.Execute(ctx, state); err != nil {
			stepState.Fail(err)
			state.Fail(err)
			m.publish(state)
			m.recordMetrics(ctx, state, time.Since(start), err)
			m.logger.ErrorContext(ctx, "operation step failed",
				slog.String("operation_id", id),
				slog.String("step", step.ID()),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("step %s: %w", step.ID(), err)
		}

		stepState.Complete()
		m.publish(state)
	}

	state.Complete()
	m.publish(state)
	m.recordMetrics(ctx, state, time.Since(start), nil)

	m.logger.InfoContext(ctx, "operation completed",
		slog.String("operation_id", id),
		slog.String("duration", state.Duration().String()))
	return state.Data.Analysis, nil
}

func (m *Manager) publish(state *OperationState) {
	m.tracker.Publish(state.Snapshot())
}

func (m *Manager) recordMetrics(ctx context.Context, state *OperationState, duration time.Duration, err error) {
	if m.metrics == nil {
		return
	}

	var imputed, capped int
	for _, action := range state.Data.Actions {
		switch action.Action {
		case domain.ActionImputedMissing:
			imputed++
		case domain.ActionHandledOutlier:
			capped++
		}
	}
	infrastructure.RecordAnalysisMetrics(ctx, m.metrics, state.Data.Table.NumRows(), imputed, capped, duration, err)
}
