// Package validation checks input and output paths before the pipeline
// touches them, so load failures surface as clear configuration errors
// instead of mid-run parser faults.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// maxInputSize caps the metadata file at 512 MiB. The loader reads the
// whole file into memory, so anything larger is almost certainly the
// wrong file.
const maxInputSize = 512 << 20

// supportedExtensions are the dataset formats the loader understands.
var supportedExtensions = []string{".csv", ".xlsx"}

// FileValidator validates dataset inputs and report outputs.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator.
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// ValidateInputFile checks that path names a readable dataset file in a
// supported format.
func (v *FileValidator) ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("input file does not exist",
			slog.String("file", path))
		return fmt.Errorf("input file %s does not exist", path)
	}
	if err != nil {
		v.logger.Error("failed to stat input file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("stat input file %s: %w", path, err)
	}
	if info.IsDir() {
		v.logger.Error("input path is a directory",
			slog.String("path", path))
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	if info.Size() == 0 {
		v.logger.Error("input file is empty",
			slog.String("file", path))
		return fmt.Errorf("input file %s is empty", path)
	}
	if info.Size() > maxInputSize {
		v.logger.Error("input file exceeds the size cap",
			slog.String("file", path),
			slog.Int64("size", info.Size()))
		return fmt.Errorf("input file %s is too large (%d bytes)", path, info.Size())
	}

	ext := strings.ToLower(filepath.Ext(path))
	supported := false
	for _, s := range supportedExtensions {
		if ext == s {
			supported = true
			break
		}
	}
	if !supported {
		v.logger.Error("unsupported input file format",
			slog.String("file", path),
			slog.String("extension", ext))
		return fmt.Errorf("unsupported input format %q, expected one of %v", ext, supportedExtensions)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("input file is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("input file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Info("input file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputDirectory ensures dir exists, creating it if needed, and
// verifies it is writable.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		v.logger.Error("failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)

	return nil
}
