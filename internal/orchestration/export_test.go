package orchestration

import (
	"io"
	"os"
	"path/filepath"

	"github.com/agbru/primecheck/internal/metrics"
)

// writeGathered dumps a recorder's registry in the text format.
func writeGathered(rec *metrics.Recorder, w io.Writer) error {
	dir, err := os.MkdirTemp("", "primecheck-metrics")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "metrics.prom")
	if err := rec.WriteTextfile(path); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
