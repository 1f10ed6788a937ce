package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
)

// JSONReporter writes each report as one JSON object per line.
type JSONReporter struct {
	bw *bufio.Writer
}

// NewJSONReporter creates a JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{bw: bufio.NewWriterSize(opts.Writer, bufWriterSize)}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, report *Report) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if err := json.NewEncoder(r.bw).Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
