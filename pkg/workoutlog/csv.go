package workoutlog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	derrors "github.com/ripixel/fitglue-diary/pkg/errors"
)

const utf8BOM = "\ufeff"

// Encode writes the header followed by one row per record.
func Encode(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Marshal is Encode into a byte slice.
func Marshal(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a log file. Columns are matched by header name, so files
// written by other tools with reordered columns still load.
func Decode(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, derrors.ErrValidation.WithMessage("read header").WithCause(err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimPrefix(strings.TrimSpace(h), utf8BOM)] = i
	}
	idx := make([]int, len(Header))
	for i, name := range Header {
		c, ok := cols[name]
		if !ok {
			return nil, derrors.ErrValidation.WithMessage(fmt.Sprintf("missing column %q", name))
		}
		idx[i] = c
	}

	var records []Record
	for row := 2; ; row++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, derrors.ErrValidation.WithMessage(fmt.Sprintf("row %d", row)).WithCause(err)
		}

		get := func(i int) string {
			if idx[i] >= len(fields) {
				return ""
			}
			return strings.TrimSpace(fields[idx[i]])
		}

		rec, perr := parseRow(get)
		if perr != nil {
			return nil, perr.WithMetadata("row", strconv.Itoa(row))
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(get func(int) string) (Record, *derrors.DiaryError) {
	ts, err := time.Parse(TimeLayout, get(0))
	if err != nil {
		return Record{}, derrors.ErrValidation.WithMessage(fmt.Sprintf("bad 时刻 %q", get(0))).WithCause(err)
	}

	reps, err := parseReps(get(5))
	if err != nil {
		return Record{}, derrors.ErrValidation.WithMessage(fmt.Sprintf("bad 每组次数 %q", get(5))).WithCause(err)
	}

	var primary bool
	switch get(6) {
	case Yes:
		primary = true
	case No:
	default:
		return Record{}, derrors.ErrValidation.WithMessage(fmt.Sprintf("bad 是否主训 %q", get(6)))
	}

	return Record{
		Time:      ts,
		Primary:   get(1),
		Secondary: get(2),
		Exercise:  get(3),
		Weight:    get(4),
		Reps:      reps,
		IsPrimary: primary,
	}, nil
}

// parseReps accepts "8" and the "8.0" a dataframe round trip produces.
func parseReps(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("not a whole number")
	}
	return int(f), nil
}
