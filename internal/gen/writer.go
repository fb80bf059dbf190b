package gen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// ErrNoDirectory is returned when a file has no destination directory.
var ErrNoDirectory = errors.New("no output directory")

// WriteFiles writes all generated files and returns the paths written.
// Files go to outputDir when it is set, and next to their package otherwise.
func WriteFiles(files []GeneratedFile, outputDir string) ([]string, error) {
	written := make([]string, 0, len(files))

	for _, file := range files {
		dir := outputDir
		if dir == "" {
			dir = file.Dir
		}

		if dir == "" {
			return written, fmt.Errorf("writing %s: %w", file.Filename, ErrNoDirectory)
		}

		// Create output directory if it doesn't exist
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return written, fmt.Errorf("creating output directory: %w", err)
		}

		outputPath := filepath.Join(dir, file.Filename)

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return written, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		written = append(written, outputPath)
	}

	return written, nil
}
