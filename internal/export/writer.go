package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes data to dir/name and returns the path written.
func WriteFile(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &ExportError{Op: OpDownload, Err: fmt.Errorf("write %s: %w", path, err)}
	}
	return path, nil
}
