// Package csvio reads and writes the transaction CSV interchange format.
// The column set deliberately excludes record and user identifiers so a
// file exported from one account can be imported into another.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/core"
)

var header = []string{"date", "description", "amount", "category", "paymentMethod"}

const dateLayout = "2006-01-02"

// Encode writes transactions as CSV with a header row.
func Encode(w io.Writer, transactions []core.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, t := range transactions {
		row := []string{
			t.Date.Format(dateLayout),
			t.Description,
			core.FormatAmount(t.Amount),
			t.Category,
			t.PaymentMethod,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Decode parses a transaction CSV. The header row is required and column
// order must match Encode's. Dates accept either the date-only layout or
// full RFC 3339 timestamps.
func Decode(r io.Reader) ([]core.Transaction, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(head); err != nil {
		return nil, err
	}

	var out []core.Transaction
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++

		t, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func checkHeader(head []string) error {
	if len(head) != len(header) {
		return fmt.Errorf("expected %d columns, got %d", len(header), len(head))
	}
	for i, want := range header {
		if !strings.EqualFold(strings.TrimSpace(head[i]), want) {
			return fmt.Errorf("column %d: expected %q, got %q", i+1, want, head[i])
		}
	}
	return nil
}

func parseRow(row []string) (core.Transaction, error) {
	if len(row) != len(header) {
		return core.Transaction{}, fmt.Errorf("expected %d fields, got %d", len(header), len(row))
	}

	date, err := parseDate(row[0])
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("invalid amount %q", row[2])
	}

	return core.Transaction{
		Date:          date,
		Description:   strings.TrimSpace(row[1]),
		Amount:        amount,
		Category:      strings.TrimSpace(row[3]),
		PaymentMethod: strings.TrimSpace(row[4]),
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
