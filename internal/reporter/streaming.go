package reporter

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/Nomadcxx/jellyparse/internal/batch"
)

// StreamingReporter writes one JSON object per result as results arrive,
// so large batches never hold the whole report in memory.
type StreamingReporter struct {
	w       *bufio.Writer
	enc     *json.Encoder
	summary Summary
}

// NewStreamingReporter creates a reporter writing JSON Lines to w.
func NewStreamingReporter(w io.Writer) *StreamingReporter {
	bw := bufio.NewWriter(w)
	return &StreamingReporter{w: bw, enc: json.NewEncoder(bw)}
}

// Add writes one result.
func (sr *StreamingReporter) Add(r batch.Result) error {
	sr.summary.Inputs++
	sr.summary = tally(sr.summary, r)
	if err := sr.enc.Encode(r); err != nil {
		return errors.Wrapf(err, "failed to write result %d", r.Index)
	}
	return nil
}

// Close flushes buffered output and returns the running summary.
func (sr *StreamingReporter) Close() (Summary, error) {
	if err := sr.w.Flush(); err != nil {
		return sr.summary, errors.Wrap(err, "failed to flush results")
	}
	return sr.summary, nil
}
