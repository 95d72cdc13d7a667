package vitals

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/etnz/vitals/date"
	"github.com/rs/zerolog/log"
)

// this file contains the flat file import/export format: a CSV table with a header row.

// DecodeCSV reads a flat export into a Table.
//
// The key column is 'date' if the header has one, otherwise the first column. Rows whose key is
// not a date are skipped, and when a date appears twice the last row wins. Every other column is
// imported verbatim if all its non-empty cells are numbers, empty cells are null. Non-numeric
// columns are listed by Table.Dropped.
//
// Flat exports are trusted as already reconciled: they are neither normalized nor merged.
// An empty input, or a header without rows, is an empty table.
func DecodeCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate short rows, missing cells are null.
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return newTable(nil, nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	key := slices.Index(header, DateColumn)
	if key < 0 {
		key = 0
	}
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		if i == key {
			continue
		}
		if name == "" {
			return nil, fmt.Errorf("csv column %d has no name", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate csv column %q", name)
		}
		seen[name] = true
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot read csv: %w", err)
	}

	// Keep numeric columns only.
	var columns []string
	var indexes []int
	var dropped []string
	for i, name := range header {
		if i == key {
			continue
		}
		if numeric(records, i) {
			columns = append(columns, name)
			indexes = append(indexes, i)
		} else {
			dropped = append(dropped, name)
		}
	}

	rows := new(date.History[[]Value])
	for n, record := range records {
		on, err := date.Parse(strings.TrimSpace(cell(record, key)))
		if err != nil {
			log.Warn().Err(err).Int("line", n+2).Msg("skipping csv row")
			continue
		}
		values := make([]Value, len(indexes))
		for j, i := range indexes {
			// error has been checked by numeric()
			values[j], _ = ParseValue(cell(record, i))
		}
		rows.Append(on, values)
	}

	t := newTable(rows.Days(), columns)
	t.dropped = dropped
	i := 0
	for _, values := range rows.Values() {
		for j, col := range columns {
			t.values[col][i] = values[j]
		}
		i++
	}
	return t, nil
}

// cell returns the i-th cell of record, or "" if the record is too short.
func cell(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}

// numeric reports whether every non-empty cell of column i is a number.
func numeric(records [][]string, i int) bool {
	for _, record := range records {
		if _, err := ParseValue(cell(record, i)); err != nil {
			return false
		}
	}
	return true
}

// EncodeCSV writes t as a flat export: a 'date' column then every table column. Null values are
// empty cells.
func EncodeCSV(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)
	columns := t.Columns()
	if err := writer.Write(append([]string{DateColumn}, columns...)); err != nil {
		return fmt.Errorf("cannot write csv header: %w", err)
	}
	record := make([]string, len(columns)+1)
	for i, on := range t.Dates() {
		record[0] = on.String()
		for j, col := range columns {
			record[j+1] = ""
			if v, ok := t.column(col)[i].Float64(); ok {
				record[j+1] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write csv row %s: %w", on, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
