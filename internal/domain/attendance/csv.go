package attendance

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// ExportFilename is the download name for ledger exports.
const ExportFilename = "indvend_attendance.csv"

// ExportContentType is the media type of ledger exports.
const ExportContentType = "text/csv;charset=utf-8"

// ExportHeader is the fixed column header of a ledger export.
var ExportHeader = []string{"id", "user", "role", "gym", "timestamp", "chainHash"}

// ErrBadHeader is returned when an export does not start with ExportHeader.
var ErrBadHeader = errors.New("export header does not match id,user,role,gym,timestamp,chainHash")

// EncodeCSV writes the ledger as comma-separated text. Every field is
// double-quoted with embedded quotes doubled, and lines are joined by a
// single newline with none after the last row.
// PRE: w is writable
// POST: header plus one line per record written in ledger order
func EncodeCSV(w io.Writer, l Ledger) error {
	var b strings.Builder
	writeRow(&b, ExportHeader)
	for _, r := range l {
		b.WriteByte('\n')
		writeRow(&b, []string{r.ID, r.User, r.Role, r.Gym, FormatTimestamp(r.Timestamp), r.ChainHash})
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
}

// DecodeCSV parses text produced by EncodeCSV back into a ledger.
// PRE: r yields an export with the fixed header
// POST: returns records in file order, or an error naming the bad line
func DecodeCSV(r io.Reader) (Ledger, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(ExportHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read export header: %w", err)
	}
	if !slices.Equal(header, ExportHeader) {
		return nil, ErrBadHeader
	}

	out := Ledger{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read export row: %w", err)
		}
		ts, err := ParseTimestamp(row[4])
		if err != nil {
			line, _ := cr.FieldPos(4)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, Record{
			ID:        row[0],
			User:      row[1],
			Role:      row[2],
			Gym:       row[3],
			Timestamp: ts,
			ChainHash: row[5],
		})
	}
	return out, nil
}
