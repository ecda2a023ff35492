package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// SaveCSV writes the CSV export to path, creating its directory.
func SaveCSV(path string, s Snapshot) error {
	return saveFile(path, func(f *os.File) error { return WriteCSV(f, s) })
}

// SaveReport writes the HTML report to path, creating its directory.
func SaveReport(path string, d ReportData) error {
	return saveFile(path, func(f *os.File) error { return WriteReport(f, d) })
}

// Resolve returns where an export lands: an explicit path wins, then the
// configured directory joined with the default name, then the working
// directory.
func Resolve(explicit, dir, name string) string {
	if explicit != "" {
		return explicit
	}
	if dir != "" {
		return filepath.Join(dir, name)
	}
	return name
}

func saveFile(path string, write func(*os.File) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export dir: %w", err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", filepath.Base(path), err)
	}
	return nil
}
