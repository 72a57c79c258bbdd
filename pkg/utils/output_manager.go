package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputManager organizes export files under a per-analysis directory.
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{
		BaseOutputDir: baseOutputDir,
	}
}

// CreateAnalysisOutputDir creates a UUID-based directory for an analysis run's outputs
func (om *OutputManager) CreateAnalysisOutputDir(analysisID string) (string, error) {
	dir := filepath.Join(om.BaseOutputDir, analysisID)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create analysis output directory: %w", err)
	}

	return dir, nil
}

// GetOutputFilePath generates a full path for an output file
func (om *OutputManager) GetOutputFilePath(analysisID, fileName string) (string, error) {
	dir, err := om.CreateAnalysisOutputDir(analysisID)
	if err != nil {
		return "", err
	}

	// Clean the filename to remove any path separators
	return filepath.Join(dir, filepath.Base(fileName)), nil
}

// GetDownloadURL generates a download URL for a file
func (om *OutputManager) GetDownloadURL(analysisID, fileName string) string {
	return fmt.Sprintf("/api/v1/download/%s/%s", analysisID, filepath.Base(fileName))
}

// GetFileType determines the file type based on extension
func (om *OutputManager) GetFileType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return "csv"
	case ".json":
		return "json"
	case ".txt":
		return "text"
	default:
		return "unknown"
	}
}
