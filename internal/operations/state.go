package operations

import (
	"sync"
	"time"

	"tabula/pkg/contracts/domain"
)

// OperationStatus represents the overall operation status.
type OperationStatus string

const (
	OperationStatusPending   OperationStatus = "pending"
	OperationStatusRunning   OperationStatus = "running"
	OperationStatusCompleted OperationStatus = "completed"
	OperationStatusFailed    OperationStatus = "failed"
	OperationStatusCancelled OperationStatus = "cancelled"
)

// PipelineData carries the intermediate products between steps. The
// classify step fills Types, clean fills CleanedRows and Actions,
// statistics fills Statistics, and assemble produces the Analysis.
type PipelineData struct {
	Table       *domain.Table
	Types       map[string]domain.ColumnType
	CleanedRows []domain.Row
	Actions     []domain.CleaningAction
	Statistics  map[string]domain.ColumnStatistics
	Analysis    *domain.Analysis
}

// OperationState is the complete state of one pipeline execution.
type OperationState struct {
	mu        sync.RWMutex
	id        string
	status    OperationStatus
	startTime time.Time
	endTime   *time.Time
	steps     []*StepState
	err       error

	// Data is owned by the single goroutine executing the steps.
	Data PipelineData
}

// NewOperationState creates a pending operation over the given table.
func NewOperationState(id string, table *domain.Table, steps []Step) *OperationState {
	states := make([]*StepState, len(steps))
	for i, step := range steps {
		states[i] = NewStepState(step.ID(), step.Name())
	}
	return &OperationState{
		id:        id,
		status:    OperationStatusPending,
		startTime: time.Now(),
		steps:     states,
		Data:      PipelineData{Table: table},
	}
}

// ID returns the operation's identifier.
func (o *OperationState) ID() string {
	return o.id
}

// Status returns the current operation status.
func (o *OperationState) Status() OperationStatus {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.status
}

// Err returns the operation's failure error, if any.
func (o *OperationState) Err() error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.err
}

// StepStates returns the ordered step states.
func (o *OperationState) StepStates() []*StepState {
	return o.steps
}

// Start marks the operation running.
func (o *OperationState) Start() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.status = OperationStatusRunning
	o.startTime = time.Now()
}

// Complete marks the operation completed.
func (o *OperationState) Complete() {
	o.mu.Lock()
	defer o.mu.Unlock()
	now := time.Now()
	o.endTime = &now
	o.status = OperationStatusCompleted
}

// Fail marks the operation failed.
func (o *OperationState) Fail(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	now := time.Now()
	o.endTime = &now
	o.status = OperationStatusFailed
	o.err = err
}

// Cancel marks the operation cancelled.
func (o *OperationState) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	now := time.Now()
	o.endTime = &now
	o.status = OperationStatusCancelled
}

// Duration returns how long the operation has run, or ran.
func (o *OperationState) Duration() time.Duration {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.endTime != nil {
		return o.endTime.Sub(o.startTime)
	}
	return time.Since(o.startTime)
}

// OperationSnapshot is an immutable view of the operation for
// broadcasting to progress subscribers.
type OperationSnapshot struct {
	ID       string          `json:"id"`
	Status   OperationStatus `json:"status"`
	Steps    []StepSnapshot  `json:"steps"`
	Error    string          `json:"error,omitempty"`
	Duration string          `json:"duration"`
}

// Snapshot captures the operation state at this instant.
func (o *OperationState) Snapshot() OperationSnapshot {
	o.mu.RLock()
	status := o.status
	err := o.err
	o.mu.RUnlock()

	snap := OperationSnapshot{
		ID:       o.id,
		Status:   status,
		Steps:    make([]StepSnapshot, len(o.steps)),
		Duration: o.Duration().String(),
	}
	for i, step := range o.steps {
		snap.Steps[i] = step.Snapshot()
	}
	if err != nil {
		snap.Error = err.Error()
	}
	return snap
}
