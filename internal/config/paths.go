package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths resolves the data, reports, and logs directories relative to a
// base directory (the working directory by default) and creates them on
// demand.
type Paths struct {
	BaseDir    string
	DataDir    string
	ReportsDir string
	LogsDir    string
}

// NewPaths builds the path set for the given data configuration. An
// empty baseDir means the current working directory.
func NewPaths(baseDir string, data DataConfig) (*Paths, error) {
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		baseDir = wd
	}
	return &Paths{
		BaseDir:    baseDir,
		DataDir:    resolve(baseDir, filepath.Dir(data.InputFile)),
		ReportsDir: resolve(baseDir, data.ReportsDir),
		LogsDir:    resolve(baseDir, data.LogsDir),
	}, nil
}

// EnsureDirectories creates every managed directory that does not exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ReportPath returns the full path for a report artifact.
func (p *Paths) ReportPath(name string) string {
	return filepath.Join(p.ReportsDir, name)
}

// LogPath returns the full path for a log file.
func (p *Paths) LogPath(name string) string {
	return filepath.Join(p.LogsDir, name)
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
