package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// WriteFile saves rows to path in format and returns the written path.
// The format's extension is appended when path has none.
func WriteFile[T Row](path, format string, rows []T) (string, error) {
	saver, err := NewSaver[T](format)
	if err != nil {
		return "", err
	}
	if filepath.Ext(path) == "" {
		path += "." + saver.Extension()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := saver.Save(rows, f); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	slog.Info("export written", "path", path, "format", saver.Extension(), "rows", len(rows))
	return path, nil
}
