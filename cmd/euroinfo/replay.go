package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-tremor/measure/jitter"
)

var errBadRow = errors.New("malformed row")

// readTrace parses "t,x,y" rows. A first record with no numeric field is
// treated as a header. Blank lines and lines starting with '#' are skipped.
func readTrace(r io.Reader) (jitter.Trace, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var tr jitter.Trace
	for first := true; ; first = false {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return jitter.Trace{}, fmt.Errorf("read trace: %w", err)
		}

		vals, err := parseRow(rec)
		if err != nil {
			if first && !anyNumeric(rec) {
				continue
			}
			line, _ := cr.FieldPos(0)
			return jitter.Trace{}, fmt.Errorf("read trace: line %d: %w", line, err)
		}

		tr.T = append(tr.T, vals[0])
		tr.X = append(tr.X, vals[1])
		tr.Y = append(tr.Y, vals[2])
	}

	return tr, nil
}

func anyNumeric(rec []string) bool {
	for _, f := range rec {
		if _, err := strconv.ParseFloat(strings.TrimSpace(f), 64); err == nil {
			return true
		}
	}
	return false
}

func parseRow(rec []string) ([3]float64, error) {
	var out [3]float64
	if len(rec) < 3 {
		return out, fmt.Errorf("%w: want 3 fields, got %d", errBadRow, len(rec))
	}
	for i := range out {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
		if err != nil {
			return out, fmt.Errorf("%w: field %d: %w", errBadRow, i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

// writeTrace emits tr as "t,x,y" CSV with a header row.
func writeTrace(w io.Writer, tr jitter.Trace) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"t", "x", "y"}); err != nil {
		return err
	}

	for i := 0; i < tr.Len(); i++ {
		rec := []string{
			strconv.FormatFloat(tr.T[i], 'g', -1, 64),
			strconv.FormatFloat(tr.X[i], 'f', 4, 64),
			strconv.FormatFloat(tr.Y[i], 'f', 4, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
