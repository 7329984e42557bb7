// Package dataset loads, filters and exports the passenger table.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ds124wfegd/insight-analyzer/internal/entity"
)

const utf8BOM = "\ufeff"

// missingTokens are read as absent values, the way pandas reads them.
var missingTokens = map[string]bool{
	"":     true,
	"NaN":  true,
	"nan":  true,
	"NA":   true,
	"N/A":  true,
	"null": true,
}

// IsMissing reports whether a cell holds no value.
func IsMissing(s string) bool {
	return missingTokens[strings.TrimSpace(s)]
}

// ParseNumber parses a numeric cell. Missing cells and non-finite values are not numbers.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if missingTokens[s] {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseCSV reads a header-first CSV into a Frame. Rows whose Age, Fare, Pclass or
// Survived cell is missing or not a finite number are left out; their number is returned as skipped.
func ParseCSV(r io.Reader) (frame *entity.Frame, skipped int, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[h] = i
	}
	for _, col := range entity.RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, 0, fmt.Errorf("%w: %s", entity.ErrMissingColumn, col)
		}
	}

	frame = &entity.Frame{Header: append([]string(nil), header...)}
	numeric := make([]bool, len(header))
	seen := make([]bool, len(header))
	for i := range numeric {
		numeric[i] = true
	}

	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		values := make([]string, len(header))
		copy(values, record)

		p, ok := parsePassenger(values, index)
		if !ok {
			skipped++
			continue
		}

		for i, v := range values {
			if IsMissing(v) {
				continue
			}
			if numeric[i] {
				f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
				switch {
				case err != nil:
					numeric[i] = false
				case math.IsNaN(f) || math.IsInf(f, 0):
					continue
				}
			}
			seen[i] = true
		}
		frame.Rows = append(frame.Rows, p)
	}

	for i, h := range header {
		if numeric[i] && seen[i] {
			frame.Numeric = append(frame.Numeric, h)
		}
	}

	return frame, skipped, nil
}

func parsePassenger(values []string, index map[string]int) (entity.Passenger, bool) {
	age, ok := ParseNumber(values[index[entity.ColumnAge]])
	if !ok {
		return entity.Passenger{}, false
	}
	fare, ok := ParseNumber(values[index[entity.ColumnFare]])
	if !ok {
		return entity.Passenger{}, false
	}
	pclass, ok := parseInt(values[index[entity.ColumnPclass]])
	if !ok {
		return entity.Passenger{}, false
	}
	survived, ok := parseInt(values[index[entity.ColumnSurvived]])
	if !ok {
		return entity.Passenger{}, false
	}

	return entity.Passenger{
		Sex:      values[index[entity.ColumnSex]],
		Age:      age,
		Pclass:   pclass,
		Survived: survived,
		Fare:     fare,
		Embarked: values[index[entity.ColumnEmbarked]],
		Values:   values,
	}, true
}

// parseInt accepts "3" as well as "3.0", which is how float-typed exports write integers.
func parseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, ok := ParseNumber(s)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// WriteCSV writes the frame with its header and without any index column.
func WriteCSV(w io.Writer, frame *entity.Frame) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(frame.Header); err != nil {
		return err
	}
	for _, row := range frame.Rows {
		if err := writer.Write(row.Values); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Records renders rows as header-keyed maps for JSON previews.
func Records(frame *entity.Frame, limit int) []map[string]string {
	n := frame.Len()
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]map[string]string, 0, n)
	for _, row := range frame.Rows[:n] {
		rec := make(map[string]string, len(frame.Header))
		for i, h := range frame.Header {
			rec[h] = row.Values[i]
		}
		out = append(out, rec)
	}
	return out
}
