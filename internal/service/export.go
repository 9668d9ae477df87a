package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"steamripper/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Exporter writes scrape results as JSON artifacts
type Exporter struct {
	outputDir string
	filename  string
	logger    *zap.Logger
}

// NewExporter creates a new artifact exporter
func NewExporter(outputDir, filename string, logger *zap.Logger) *Exporter {
	return &Exporter{
		outputDir: outputDir,
		filename:  filename,
		logger:    logger,
	}
}

// Write serializes the result to outputPath, or to the configured
// output directory under the run-id filename when outputPath is empty
func (e *Exporter) Write(result *model.Result, outputPath, runID string) (string, error) {
	path := outputPath
	if path == "" {
		path = filepath.Join(e.outputDir, strings.ReplaceAll(e.filename, "{run_id}", runID))
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write artifact %s: %w", path, err)
	}

	e.logger.Info("Wrote scrape artifact",
		zap.String("path", path),
		zap.Int("total_games", result.TotalGames),
		zap.Int("size", len(data)))

	return path, nil
}

// ResolveRunID picks the identifier used in artifact filenames.
// CI run numbers take precedence so artifacts line up with workflow runs.
func ResolveRunID() string {
	if id := os.Getenv("GITHUB_RUN_ID"); id != "" {
		return id
	}
	if id := os.Getenv("RUN_ID"); id != "" {
		return id
	}
	return time.Now().Format("20060102_150405")
}

// NewRunID generates a unique identifier for scheduled runs,
// which have no CI run number to borrow
func NewRunID() string {
	return uuid.NewString()
}
