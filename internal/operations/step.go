package operations

import (
	"context"
	"sync"
	"time"
)

// Step is a single stage of the analysis pipeline.
type Step interface {
	// ID returns the unique identifier for this step.
	ID() string

	// Name returns the human-readable name for this step.
	Name() string

	// Execute runs the step against the shared operation state.
	Execute(ctx context.Context, state *OperationState) error
}

// StepStatus represents the current status of a step.
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusActive    StepStatus = "active"
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
)

// StepState is the runtime state of one step.
type StepState struct {
	mu        sync.RWMutex
	id        string
	name      string
	status    StepStatus
	startTime *time.Time
	endTime   *time.Time
	message   string
	err       error
}

// NewStepState creates a pending step state.
func NewStepState(id, name string) *StepState {
	return &StepState{
		id:     id,
		name:   name,
		status: StepStatusPending,
	}
}

// Start marks the step active.
func (s *StepState) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.startTime = &now
	s.status = StepStatusActive
}

// Complete marks the step completed.
func (s *StepState) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.endTime = &now
	s.status = StepStatusCompleted
}

// Fail marks the step failed with err.
func (s *StepState) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.endTime = &now
	s.status = StepStatusFailed
	s.err = err
}

// Status returns the current step status.
func (s *StepState) Status() StepStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Duration returns how long the step has run, or ran.
func (s *StepState) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.startTime == nil {
		return 0
	}
	if s.endTime != nil {
		return s.endTime.Sub(*s.startTime)
	}
	return time.Since(*s.startTime)
}

// StepSnapshot is an immutable copy of a step state for broadcasting.
type StepSnapshot struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Status   StepStatus `json:"status"`
	Message  string     `json:"message,omitempty"`
	Error    string     `json:"error,omitempty"`
	Duration string     `json:"duration,omitempty"`
}

// Snapshot captures the step state at this instant.
func (s *StepState) Snapshot() StepSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := StepSnapshot{
		ID:      s.id,
		Name:    s.name,
		Status:  s.status,
		Message: s.message,
	}
	if s.err != nil {
		snap.Error = s.err.Error()
	}
	if s.startTime != nil {
		end := time.Now()
		if s.endTime != nil {
			end = *s.endTime
		}
		snap.Duration = end.Sub(*s.startTime).String()
	}
	return snap
}
