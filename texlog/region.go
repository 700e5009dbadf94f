package texlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Region is a contiguous line range in a source file flagged as faulty,
// plus surrounding context. File is relative to the project root; line
// numbers are 1-based and inclusive, with StartLine <= ErrorLine <= EndLine.
type Region struct {
	File            string   `json:"file"`
	ErrorLine       int      `json:"error_line"`
	StartLine       int      `json:"start_line"`
	EndLine         int      `json:"end_line"`
	SnippetRaw      []string `json:"snippet_raw"`
	SnippetNumbered string   `json:"snippet_numbered"`
}

// Snippet returns the raw snippet lines joined back into text.
func (r Region) Snippet() string {
	return strings.Join(r.SnippetRaw, "\n")
}

// WriteRegions serializes regions to a line-delimited JSON store, one object
// per line, so the fix pass can run decoupled from the scan.
func WriteRegions(path string, regions []Region) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	for _, r := range regions {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return f.Close()
}

// LoadRegions reads a region store written by WriteRegions. Blank lines are
// ignored; a malformed line is an error since the store is machine-written.
func LoadRegions(path string) ([]Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var regions []Region
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var r Region
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			return nil, fmt.Errorf("parse region store %s: %w", path, err)
		}
		regions = append(regions, r)
	}
	return regions, sc.Err()
}
