package book

import (
	"log"
	"os"
	"path/filepath"
)

// WriteIfMissing writes content to path unless the file already exists.
// Presence of the file suppresses the write, so every artifact producer that
// goes through here is safe to re-run.
func WriteIfMissing(path, content string, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	if _, err := os.Stat(path); err == nil {
		logger.Printf("[SKIP] %s (already exists)", path)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return err
	}
	logger.Printf("[OK]   created %s", path)
	return nil
}
