// Package csvexport writes dashboard records as CSV: a header row followed
// by one row per record.
package csvexport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
)

// DefaultFilename is used by [WriteFile] when no path is given.
const DefaultFilename = "data.csv"

// ErrNoData is returned when there are no records to export.
var ErrNoData = errors.New("no data to export")

// Write encodes rows to w. The header gives the column order; when it is
// nil the sorted keys of the first row are used. Values are stringified,
// nil becoming the empty string.
func Write(w io.Writer, header []string, rows []map[string]any) error {
	if len(rows) == 0 {
		return ErrNoData
	}

	if header == nil {
		header = make([]string, 0, len(rows[0]))
		for k := range rows[0] {
			header = append(header, k)
		}
		slices.Sort(header)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, len(header))
	for i, row := range rows {
		for j, col := range header {
			record[j] = stringify(row[col])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

// WriteFile writes rows to path atomically: the CSV is written to a temp
// file in the same directory and renamed on success.
func WriteFile(path string, header []string, rows []map[string]any, logger *slog.Logger) (err error) {
	if len(rows) == 0 {
		return ErrNoData
	}
	if path == "" {
		path = DefaultFilename
	}
	if logger == nil {
		logger = slog.Default()
	}

	file, err := os.CreateTemp(filepath.Dir(path), ".jobdash-csv-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	var successful bool
	defer func() {
		if err := file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			logger.Error("defer closing temp file", "error", err)
		}
		if !successful {
			if err := os.Remove(file.Name()); err != nil {
				logger.Error("failed to remove temp file", "error", err)
			}
		}
	}()

	if err := Write(file, header, rows); err != nil {
		return err
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(file.Name(), path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	successful = true
	logger.Info("csv exported", "path", path, "rows", len(rows))

	return nil
}

// Records flattens structs into rows keyed by their json tag names.
// The returned header follows the struct's field order.
func Records[T any](items []T) ([]string, []map[string]any, error) {
	header := columns(reflect.TypeOf((*T)(nil)).Elem())

	rows := make([]map[string]any, 0, len(items))
	for i, item := range items {
		row := make(map[string]any, len(header))

		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName: "json",
			Result:  &row,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("building decoder: %w", err)
		}
		if err := dec.Decode(item); err != nil {
			return nil, nil, fmt.Errorf("flattening record %d: %w", i, err)
		}

		rows = append(rows, row)
	}

	return header, rows, nil
}

func columns(t reflect.Type) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var cols []string
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		cols = append(cols, name)
	}

	return cols
}

func stringify(v any) string {
	if v == nil {
		return ""
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}

	return s
}
