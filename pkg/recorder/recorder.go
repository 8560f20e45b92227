// Package recorder is the sink for measurement rows. The monitor loop hands
// one row per reading to a Recorder without knowing its format, the shipped
// implementation appends to a csv file.
package recorder

import (
	"encoding/csv"
	"os"
	"sync"
)

// Recorder appends one row of values to an external sink.
type Recorder interface {
	AppendRow(values []string) error
}

// Discard drops all rows. Used when no datafile is configured.
type Discard struct{}

func (Discard) AppendRow([]string) error { return nil }

// CSV appends rows to a csv file. The header row is written once, when the
// file is created or still empty.
type CSV struct {
	mu     sync.Mutex
	path   string
	header []string
}

// NewCSV returns a csv recorder writing to path. The file is opened per
// append, so log rotation of the datafile needs no coordination.
func NewCSV(path string, header []string) *CSV {
	return &CSV{
		path:   path,
		header: header,
	}
}

// AppendRow appends values as one csv record, preceded by the header row if
// the file is empty.
func (c *CSV) AppendRow(values []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.OpenFile(c.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)

	if st, err := f.Stat(); err == nil && st.Size() == 0 && len(c.header) > 0 {
		if err := w.Write(c.header); err != nil {
			return err
		}
	}

	if err := w.Write(values); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}
