// writer.go - CSV encoding of the final account summary.
package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/warp/payment-engine/ledger"
)

var outputHeader = []string{"client", "available", "held", "total", "locked"}

// Writer encodes account reports as CSV. The header row is written
// ahead of the first report.
type Writer struct {
	cw     *csv.Writer
	header bool
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{cw: csv.NewWriter(w)}
}

// Write appends one summary row.
func (w *Writer) Write(r ledger.Report) error {
	if !w.header {
		if err := w.cw.Write(outputHeader); err != nil {
			return err
		}
		w.header = true
	}
	return w.cw.Write([]string{
		strconv.FormatUint(uint64(r.Client), 10),
		r.Available.String(),
		r.Held.String(),
		r.Total.String(),
		strconv.FormatBool(r.Locked),
	})
}

// Flush writes buffered rows to the underlying writer and reports any
// error seen during writing.
func (w *Writer) Flush() error {
	w.cw.Flush()
	return w.cw.Error()
}
