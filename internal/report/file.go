package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultDir is where text reports go when REPORTS_DIR is unset.
const DefaultDir = "reports"

// maxNameAttempts bounds the _2, _3, ... suffixes tried when a report name is taken.
const maxNameAttempts = 100

// FileWriter stores each report as a text file in Dir.
type FileWriter struct {
	Dir string
}

// NewFileWriter returns a writer for dir, falling back to DefaultDir.
func NewFileWriter(dir string) *FileWriter {
	if dir == "" {
		dir = DefaultDir
	}
	return &FileWriter{Dir: dir}
}

// Write renders r into <Dir>/<FileName(r)>. An existing report is never
// overwritten; a numeric suffix is added instead.
func (fw *FileWriter) Write(_ context.Context, r Report) error {
	if err := os.MkdirAll(fw.Dir, 0755); err != nil {
		return fmt.Errorf("create reports directory: %w", err)
	}

	var buf bytes.Buffer
	if err := Render(&buf, r); err != nil {
		return err
	}

	path, err := createExclusive(fw.Dir, FileName(r), buf.Bytes())
	if err != nil {
		return err
	}
	log.Info().Str("path", path).Str("player", r.PlayerName).Msg("saved mistake report")
	return nil
}

// createExclusive writes data to dir/name, or to name_2, name_3, ... when taken,
// and returns the path used.
func createExclusive(dir, name string, data []byte) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; i <= maxNameAttempts; i++ {
		candidate := name
		if i > 1 {
			candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
		}
		path := filepath.Join(dir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create report %s: %w", path, err)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", fmt.Errorf("write report %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("close report %s: %w", path, err)
		}
		return path, nil
	}
	return "", fmt.Errorf("report name %s: %d files already exist", name, maxNameAttempts)
}
