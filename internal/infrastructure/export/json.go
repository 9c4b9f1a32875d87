// Package export writes run reports to disk.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sbs-ecosystem/ecocheck/internal/domain"
	"github.com/sbs-ecosystem/ecocheck/internal/ports"
)

// JSONExporter writes reports as indented JSON documents.
type JSONExporter struct {
	// Dir receives reports written under their default name.
	Dir string
}

// NewJSONExporter writes default-named reports into the working directory.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// DefaultFilename names a report after the time it was produced.
func DefaultFilename(t time.Time) string {
	return fmt.Sprintf("sbs_health_check_%s.json", t.Format(domain.ExportFileTimeFormat))
}

// Export implements ports.ReportExporter.
func (e *JSONExporter) Export(report domain.Report, path string) (string, error) {
	if path == "" {
		path = filepath.Join(e.Dir, DefaultFilename(report.Timestamp))
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
			return "", fmt.Errorf("create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, domain.ReportFilePermissions); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// Read decodes a report previously written by Export.
func Read(path string) (domain.Report, error) {
	var report domain.Report
	data, err := os.ReadFile(path)
	if err != nil {
		return report, err
	}
	if err := json.Unmarshal(data, &report); err != nil {
		return report, fmt.Errorf("decode report %s: %w", path, err)
	}
	return report, nil
}

var _ ports.ReportExporter = (*JSONExporter)(nil)
