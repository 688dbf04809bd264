package reporter

import (
	"encoding/json"
	"io"
)

// JSONReporter writes all reports as a single indented JSON array.
type JSONReporter struct {
	out io.Writer
}

func NewJSONReporter(out io.Writer) *JSONReporter {
	return &JSONReporter{out: out}
}

func (j *JSONReporter) ProduceReport(reports []*Report) error {
	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")

	return enc.Encode(reports)
}
