package services

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome of analyzing one file in a batch.
type BatchResult struct {
	Path   string
	Stored *StoredAnalysis
}

// AnalyzeFiles analyzes several data files concurrently, at most limit
// at a time. The first failure cancels the remaining work and is
// returned; results arrive in input order.
func (s *AnalysisService) AnalyzeFiles(ctx context.Context, paths []string, limit int) ([]BatchResult, error) {
	if limit <= 0 {
		limit = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	results := make([]BatchResult, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			file, err := os.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()

			stored, err := s.AnalyzeUpload(ctx, file, filepath.Base(path))
			if err != nil {
				s.logger.ErrorContext(ctx, "batch analysis failed",
					slog.String("path", path),
					slog.String("error", err.Error()))
				return err
			}

			results[i] = BatchResult{Path: path, Stored: stored}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
