package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
)

const readBatch = 1000

// julianUnixEpoch is the Julian day number of 1970-01-01, used by INT96 timestamps.
const julianUnixEpoch = 2440588

// parquetHandle wraps parquet.File + underlying os.File for proper cleanup.
type parquetHandle struct {
	pf   *parquet.File
	file *os.File
}

func (h *parquetHandle) Close() {
	_ = h.file.Close()
}

func openParquet(path string) (*parquetHandle, error) {
	cleanPath := filepath.Clean(path)
	f, err := os.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	return &parquetHandle{pf: pf, file: f}, nil
}

// column is a top-level field resolved to its leaf index, with the time
// unit of INT64 timestamps and whether INT32 values are calendar dates.
type column struct {
	index    int
	unit     time.Duration
	daysOnly bool
}

func (c column) found() bool { return c.index >= 0 }

// resolveColumns finds leaf-level indexes of the named top-level fields.
// Names that are absent map to index -1.
func resolveColumns(pf *parquet.File, names ...string) map[string]column {
	schema := pf.Schema()
	cols := make(map[string]column, len(names))
	for _, name := range names {
		cols[name] = column{index: -1}
	}
	for i, path := range schema.Columns() {
		if len(path) == 0 {
			continue
		}
		if _, wanted := cols[path[0]]; !wanted {
			continue
		}
		c := column{index: i, unit: time.Nanosecond}
		if leaf, ok := schema.Lookup(path...); ok {
			c.unit, c.daysOnly = temporalUnit(leaf.Node.Type())
		}
		cols[path[0]] = c
	}
	return cols
}

// temporalUnit reads the logical type annotation. Unannotated INT64
// columns are treated as nanoseconds since the epoch.
func temporalUnit(t parquet.Type) (time.Duration, bool) {
	lt := t.LogicalType()
	if lt == nil {
		return time.Nanosecond, false
	}
	if lt.Date != nil {
		return 24 * time.Hour, true
	}
	if ts := lt.Timestamp; ts != nil {
		switch {
		case ts.Unit.Millis != nil:
			return time.Millisecond, false
		case ts.Unit.Micros != nil:
			return time.Microsecond, false
		}
	}
	return time.Nanosecond, false
}

// forEachRow streams every row of every row group.
func forEachRow(ctx context.Context, pf *parquet.File, fn func(parquet.Row)) error {
	buf := make([]parquet.Row, readBatch)
	for _, rg := range pf.RowGroups() {
		if err := ctx.Err(); err != nil {
			return err
		}
		rows := parquet.NewRowGroupReader(rg)
		for {
			n, readErr := rows.ReadRows(buf)
			for i := 0; i < n; i++ {
				fn(buf[i])
			}
			if readErr != nil {
				if errors.Is(readErr, io.EOF) {
					break
				}
				return fmt.Errorf("read rows: %w", readErr)
			}
		}
	}
	return nil
}

func stringValue(v parquet.Value) string {
	if v.IsNull() {
		return ""
	}
	return v.String()
}

// floatValue decodes any numeric physical type. Nulls, NaN and infinities
// decode as 0.
func floatValue(v parquet.Value) float64 {
	if v.IsNull() {
		return 0
	}
	var f float64
	switch v.Kind() {
	case parquet.Int32:
		f = float64(v.Int32())
	case parquet.Int64:
		f = float64(v.Int64())
	case parquet.Float:
		f = float64(v.Float())
	case parquet.Double:
		f = v.Double()
	case parquet.Boolean:
		if v.Boolean() {
			f = 1
		}
	case parquet.ByteArray, parquet.FixedLenByteArray:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func intValue(v parquet.Value) int {
	return int(math.Round(floatValue(v)))
}

var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"2006/01/02",
}

// timeValue decodes timestamps, dates and date strings. The zero time
// means the value is missing or unparseable.
func timeValue(v parquet.Value, c column) time.Time {
	if v.IsNull() {
		return time.Time{}
	}
	switch v.Kind() {
	case parquet.Int32:
		if c.daysOnly {
			return time.Unix(0, 0).UTC().AddDate(0, 0, int(v.Int32()))
		}
		return time.Unix(int64(v.Int32()), 0).UTC()
	case parquet.Int64:
		return time.Unix(0, v.Int64()*int64(c.unit)).UTC()
	case parquet.Int96:
		i96 := v.Int96()
		nanosOfDay := int64(uint64(i96[1])<<32 | uint64(i96[0])) //nolint:gosec // fits in a day
		days := int64(i96[2]) - julianUnixEpoch
		return time.Unix(days*86400, nanosOfDay).UTC()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		s := strings.TrimSpace(v.String())
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC()
			}
		}
	}
	return time.Time{}
}
