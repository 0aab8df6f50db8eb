/*
reader.go - CSV record stream decoding

PURPOSE:
  Decodes the external CSV representation into ledger.Event values.
  One malformed row never poisons the stream: Read reports it as a
  *RowError and the next call continues with the following row. The
  host decides whether to skip or abort.

FORMAT:
  type,client,tx,amount
    type    deposit | withdrawal | dispute | resolve | chargeback
    client  decimal 0..65535
    tx      decimal 0..2^32-1
    amount  up to four fractional digits; required for deposit and
            withdrawal, ignored for the dispute lifecycle kinds

  Whitespace around fields is tolerated. Rows may carry trailing empty
  fields (a bare comma after the amount is accepted).

SEE ALSO:
  - writer.go: The output side
  - ledger/event.go: The decoded form
*/
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/warp/payment-engine/ledger"
)

// Decode error sentinels. Use with errors.Is against *RowError.
var (
	ErrMissingHeader = errors.New("missing or malformed header row")
	ErrFieldCount    = errors.New("too few fields")
	ErrUnknownType   = errors.New("unknown record type")
	ErrMissingAmount = errors.New("missing amount")
)

// RowError reports a decode failure for a single input row.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Reader decodes events from a CSV stream. The first row must be the
// header.
type Reader struct {
	cr     *csv.Reader
	line   int
	header bool
}

// NewReader wraps r. The CSV reader trims leading whitespace and
// accepts a variable number of fields per record.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	return &Reader{cr: cr}
}

// Read returns the next event. Per-row failures are *RowError; the
// stream stays usable after one. Errors from the underlying io.Reader
// are returned as they are. io.EOF marks the end of input.
func (r *Reader) Read() (ledger.Event, error) {
	if !r.header {
		if err := r.readHeader(); err != nil {
			return ledger.Event{}, err
		}
	}

	record, err := r.cr.Read()
	if err != nil {
		if err == io.EOF {
			return ledger.Event{}, io.EOF
		}
		var parseErr *csv.ParseError
		if !errors.As(err, &parseErr) {
			return ledger.Event{}, err
		}
		r.line++
		return ledger.Event{}, &RowError{Line: r.line, Err: err}
	}
	r.line++

	ev, err := decodeRecord(record)
	if err != nil {
		return ledger.Event{}, &RowError{Line: r.line, Err: err}
	}
	return ev, nil
}

// readHeader consumes and validates the header row.
func (r *Reader) readHeader() error {
	record, err := r.cr.Read()
	if err != nil {
		if err == io.EOF {
			return io.EOF
		}
		var parseErr *csv.ParseError
		if !errors.As(err, &parseErr) {
			return err
		}
		return &RowError{Line: 1, Err: err}
	}
	r.line = 1
	r.header = true

	if len(record) < 3 ||
		field(record, 0) != "type" ||
		field(record, 1) != "client" ||
		field(record, 2) != "tx" {
		return &RowError{Line: 1, Err: ErrMissingHeader}
	}
	return nil
}

// field returns the trimmed, lowercased field at i, or "" if absent.
func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(record[i]))
}

func decodeRecord(record []string) (ledger.Event, error) {
	if len(record) < 3 {
		return ledger.Event{}, ErrFieldCount
	}

	kind := ledger.Kind(field(record, 0))
	if !kind.Valid() {
		return ledger.Event{}, fmt.Errorf("%w %q", ErrUnknownType, strings.TrimSpace(record[0]))
	}

	client, err := strconv.ParseUint(strings.TrimSpace(record[1]), 10, 16)
	if err != nil {
		return ledger.Event{}, fmt.Errorf("client: %w", err)
	}
	tx, err := strconv.ParseUint(strings.TrimSpace(record[2]), 10, 32)
	if err != nil {
		return ledger.Event{}, fmt.Errorf("tx: %w", err)
	}

	ev := ledger.Event{
		Kind:   kind,
		Client: ledger.ClientID(client),
		Tx:     ledger.TxID(tx),
	}

	// Amounts on dispute/resolve/chargeback rows are ignored.
	if kind == ledger.KindDeposit || kind == ledger.KindWithdrawal {
		raw := ""
		if len(record) > 3 {
			raw = strings.TrimSpace(record[3])
		}
		if raw == "" {
			return ledger.Event{}, ErrMissingAmount
		}
		amount, err := ledger.ParseAmount(raw)
		if err != nil {
			return ledger.Event{}, fmt.Errorf("amount: %w", err)
		}
		ev.Amount = amount
	}

	return ev, nil
}
