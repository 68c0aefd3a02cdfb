package operations

import (
	"context"
	"fmt"

	"tabula/internal/dataprocessing"
	"tabula/pkg/contracts/domain"
)

// Step IDs in execution order.
const (
	StepIDClassify   = "classify"
	StepIDClean      = "clean"
	StepIDStatistics = "statistics"
	StepIDAssemble   = "assemble"
)

// NewPipelineSteps returns the four pipeline steps in execution order.
func NewPipelineSteps() []Step {
	return []Step{
		classifyStep{},
		cleanStep{},
		statisticsStep{},
		assembleStep{},
	}
}

type classifyStep struct{}

func (classifyStep) ID() string   { return StepIDClassify }
func (classifyStep) Name() string { return "Classify column types" }

func (classifyStep) Execute(ctx context.Context, state *OperationState) error {
	state.Data.Types = dataprocessing.ClassifyColumns(state.Data.Table)
	return nil
}

type cleanStep struct{}

func (cleanStep) ID() string   { return StepIDClean }
func (cleanStep) Name() string { return "Clean rows" }

func (cleanStep) Execute(ctx context.Context, state *OperationState) error {
	if state.Data.Types == nil {
		return fmt.Errorf("clean step requires column types")
	}
	state.Data.CleanedRows, state.Data.Actions = dataprocessing.CleanTable(state.Data.Table, state.Data.Types)
	return nil
}

type statisticsStep struct{}

func (statisticsStep) ID() string   { return StepIDStatistics }
func (statisticsStep) Name() string { return "Compute statistics" }

func (statisticsStep) Execute(ctx context.Context, state *OperationState) error {
	state.Data.Statistics = dataprocessing.ComputeStatistics(state.Data.Table)
	return nil
}

type assembleStep struct{}

func (assembleStep) ID() string   { return StepIDAssemble }
func (assembleStep) Name() string { return "Assemble analysis" }

func (assembleStep) Execute(ctx context.Context, state *OperationState) error {
	data := &state.Data
	if data.Types == nil || data.CleanedRows == nil || data.Statistics == nil {
		return fmt.Errorf("assemble step requires all prior step outputs")
	}

	data.Analysis = &domain.Analysis{
		OriginalData: domain.CloneRows(data.Table.Rows),
		CleanedData:  data.CleanedRows,
		Summary:      dataprocessing.BuildSummary(data.Table, data.Types, data.Actions),
		Statistics:   data.Statistics,
	}
	return nil
}
