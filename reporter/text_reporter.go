package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TextReporter prints a human-readable report with en-locale digit grouping.
type TextReporter struct {
	out io.Writer
	p   *message.Printer
}

func NewTextReporter(out io.Writer) *TextReporter {
	return &TextReporter{
		out: out,
		p:   message.NewPrinter(language.English),
	}
}

func (t *TextReporter) ProduceReport(reports []*Report) error {
	for i, r := range reports {
		if err := t.produce(i, r); err != nil {
			return err
		}
	}

	return nil
}

func (t *TextReporter) produce(i int, r *Report) error {
	lines := []string{
		fmt.Sprintf("Engine %v (run %v, levels %v)", r.Engine, r.RunID, joinInts(r.Levels())),
		fmt.Sprintf("raw data size: %v", t.p.Sprintf("%d", r.RawDataBytes)),
		fmt.Sprintf("bytes on disk: %v (%v)", t.p.Sprintf("%d", r.Resources.DiskBytes), humanize.IBytes(r.Resources.DiskBytes)),
		fmt.Sprintf("bytes allocated: %v", t.p.Sprintf("%d", r.Resources.AllocatedBytes)),
		fmt.Sprintf("bytes freed: %v", t.p.Sprintf("%d", r.Resources.FreedBytes)),
		fmt.Sprintf("bytes in memory: %v (%v)", t.p.Sprintf("%d", r.Resources.ResidentBytes), humanize.IBytes(r.Resources.ResidentBytes)),
		fmt.Sprintf("final flush took %v", r.FinalFlush),
	}

	for _, s := range r.Inserts {
		lines = append(lines, fmt.Sprintf("%v threads %v inserts per second over %v, then %v to flush",
			s.Threads, t.p.Sprintf("%d", s.OpsPerSecond), s.Elapsed, s.Flush,
		))
	}

	for _, s := range r.Reads {
		lines = append(lines, fmt.Sprintf("%v threads %v gets per second over %v (%v misses)",
			s.Threads, t.p.Sprintf("%d", s.OpsPerSecond), s.Elapsed, t.p.Sprintf("%d", s.Misses),
		))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintf(t.out, "[%02d] %v\n", i, line); err != nil {
			return err
		}
	}

	return nil
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))

	for _, v := range values {
		parts = append(parts, fmt.Sprint(v))
	}

	return strings.Join(parts, ",")
}
