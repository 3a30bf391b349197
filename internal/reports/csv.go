package reports

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// WriteCSV serializes a report. The path "-" is the no-file convention:
// the CSV text is returned instead of written, for callers that stream
// or print it themselves.
func WriteCSV(path string, report Report) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(report.Headers); err != nil {
		return "", fmt.Errorf("reports: write header: %w", err)
	}
	for _, row := range report.Rows {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("reports: write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("reports: flush csv: %w", err)
	}

	if path == "-" {
		return sb.String(), nil
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("reports: write %s: %w", path, err)
	}
	return "", nil
}
