package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	m "htprobe.dev/pkg/htprobe/internal/model"
)

// ReportStore persists run reports so independent runs can be compared.
type ReportStore interface {
	Save(dir m.Path, report m.Report) (m.Path, error)
	LoadLatest(dir m.Path) (m.Report, error)
}

// LocalReportStore writes reports as timestamped YAML files.
type LocalReportStore struct {
	now func() time.Time
}

// NewReportStore constructs a LocalReportStore.
func NewReportStore() *LocalReportStore {
	return &LocalReportStore{now: time.Now}
}

const reportNameFormat = "20060102-150405.000"

// Save writes the report into dir, creating it if needed.
func (s *LocalReportStore) Save(dir m.Path, report m.Report) (m.Path, error) {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	name := fmt.Sprintf("report-%s.yaml", s.now().UTC().Format(reportNameFormat))
	path := filepath.Join(string(dir), name)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	return m.Path(path), nil
}

// LoadLatest reads the most recently saved report in dir.
func (s *LocalReportStore) LoadLatest(dir m.Path) (m.Report, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return m.Report{}, fmt.Errorf("read reports dir: %w", err)
	}

	var names []string

	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && strings.HasPrefix(name, "report-") && strings.HasSuffix(name, ".yaml") {
			names = append(names, name)
		}
	}

	if len(names) == 0 {
		return m.Report{}, fmt.Errorf("no reports found in %s", dir)
	}

	// Timestamped names sort chronologically.
	sort.Strings(names)

	data, err := os.ReadFile(filepath.Join(string(dir), names[len(names)-1]))
	if err != nil {
		return m.Report{}, fmt.Errorf("read report: %w", err)
	}

	var report m.Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.Report{}, fmt.Errorf("decode report: %w", err)
	}

	return report, nil
}
