package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tabula/internal/config"
	"tabula/internal/exporter"
	"tabula/internal/infrastructure"
	"tabula/internal/operations"
	"tabula/internal/services"
)

func main() {
	outDir := flag.String("out", "data/reports", "output directory for analysis results")
	workers := flag.Int("workers", 4, "maximum files analyzed concurrently")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall processing deadline")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: analyze [-out dir] [-workers n] [-timeout d] file.csv [file.xlsx ...]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = &config.Config{
			Logging: config.LoggingConfig{
				Level:  "info",
				Format: "text",
				Output: "console",
			},
		}
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	logger.Info("Starting dataset analysis",
		slog.Int("file_count", flag.NArg()),
		slog.String("output_dir", *outDir),
		slog.Int("workers", *workers))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	manager := operations.NewManager(logger, nil, nil)
	service := services.NewAnalysisService(manager, logger)

	results, err := service.AnalyzeFiles(ctx, flag.Args(), *workers)
	if err != nil {
		logger.Error("Analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, result := range results {
		base := strings.TrimSuffix(filepath.Base(result.Path), filepath.Ext(result.Path))
		jsonPath := filepath.Join(*outDir, base+"_analysis.json")
		csvPath := filepath.Join(*outDir, base+"_cleaned.csv")

		if err := exporter.WriteJSONFile(jsonPath, result.Stored.Analysis); err != nil {
			logger.Error("Failed to write analysis JSON",
				slog.String("path", jsonPath),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := exporter.WriteCleanedCSVFile(csvPath, result.Stored.Columns, result.Stored.Analysis.CleanedData); err != nil {
			logger.Error("Failed to write cleaned CSV",
				slog.String("path", csvPath),
				slog.String("error", err.Error()))
			os.Exit(1)
		}

		summary := result.Stored.Analysis.Summary
		logger.Info("Analyzed file",
			slog.String("path", result.Path),
			slog.Int("rows", summary.TotalRows),
			slog.Int("columns", summary.TotalColumns),
			slog.Int("cleaning_actions", len(summary.CleaningLog)))
	}

	logger.Info("Analysis complete", slog.Int("file_count", len(results)))
}
