package exporter

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"tabula/pkg/contracts/domain"
)

// Envelope wraps an Analysis with export metadata.
type Envelope struct {
	GeneratedAt string           `json:"generated_at"`
	Analysis    *domain.Analysis `json:"analysis"`
}

// WriteJSON writes the analysis to w as an indented JSON document with
// a generated_at timestamp envelope.
func WriteJSON(w io.Writer, analysis *domain.Analysis) error {
	envelope := Envelope{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Analysis:    analysis,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(envelope); err != nil {
		return fmt.Errorf("failed to encode analysis JSON: %w", err)
	}
	return nil
}

// WriteJSONFile writes the analysis JSON document to path, creating
// parent directories as needed.
func WriteJSONFile(path string, analysis *domain.Analysis) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	slog.Info("writing analysis JSON",
		slog.String("path", path),
		slog.Int("rows", len(analysis.CleanedData)))
	return WriteJSON(file, analysis)
}
