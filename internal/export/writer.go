package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer saves rendered exports to a directory.
type Writer struct {
	OutputDir string
}

// NewWriter creates a Writer targeting outputDir, defaulting to the working directory.
func NewWriter(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data under the name derived from userName and returns the path.
func (w *Writer) Write(userName string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, Filename(userName, ext))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}
