package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"tabula/internal/errors"
	"tabula/internal/loader"
	"tabula/internal/operations"
	"tabula/pkg/contracts/domain"
)

// StoredAnalysis pairs a completed analysis with its metadata.
type StoredAnalysis struct {
	ID        string           `json:"id"`
	Filename  string           `json:"filename"`
	Columns   []string         `json:"columns,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	Analysis  *domain.Analysis `json:"analysis"`
}

// AnalysisService loads datasets, runs the pipeline and stores results.
type AnalysisService struct {
	manager *operations.Manager
	logger  *slog.Logger

	mu    sync.RWMutex
	store map[string]*StoredAnalysis
}

// NewAnalysisService creates the service around an operation manager.
func NewAnalysisService(manager *operations.Manager, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{
		manager: manager,
		logger:  logger,
		store:   make(map[string]*StoredAnalysis),
	}
}

// AnalyzeUpload loads the uploaded file, runs the pipeline, and stores
// the result under a fresh ID.
func (s *AnalysisService) AnalyzeUpload(ctx context.Context, r io.Reader, filename string) (*StoredAnalysis, error) {
	table, err := loader.Load(r, filename)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeTable(ctx, table, filename)
}

// AnalyzeTable runs the pipeline over an already-parsed table and
// stores the result.
func (s *AnalysisService) AnalyzeTable(ctx context.Context, table *domain.Table, filename string) (*StoredAnalysis, error) {
	id := uuid.New().String()

	analysis, err := s.manager.Run(ctx, id, table)
	if err != nil {
		return nil, err
	}

	stored := &StoredAnalysis{
		ID:        id,
		Filename:  filename,
		Columns:   append([]string(nil), table.Columns...),
		CreatedAt: time.Now(),
		Analysis:  analysis,
	}

	s.mu.Lock()
	s.store[id] = stored
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "analysis stored",
		slog.String("analysis_id", id),
		slog.String("filename", filename),
		slog.Int("rows", analysis.Summary.TotalRows))
	return stored, nil
}

// Get returns a stored analysis by ID.
func (s *AnalysisService) Get(ctx context.Context, id string) (*StoredAnalysis, error) {
	s.mu.RLock()
	stored, ok := s.store[id]
	s.mu.RUnlock()

	if !ok {
		return nil, errors.NewNotFoundError("analysis " + id)
	}
	return stored, nil
}

// List returns metadata for all stored analyses, newest first. The
// Analysis payloads are omitted.
func (s *AnalysisService) List(ctx context.Context) []*StoredAnalysis {
	s.mu.RLock()
	items := make([]*StoredAnalysis, 0, len(s.store))
	for _, stored := range s.store {
		items = append(items, &StoredAnalysis{
			ID:        stored.ID,
			Filename:  stored.Filename,
			CreatedAt: stored.CreatedAt,
		})
	}
	s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}

// Delete removes a stored analysis.
func (s *AnalysisService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store[id]; !ok {
		return errors.NewNotFoundError("analysis " + id)
	}
	delete(s.store, id)
	return nil
}
