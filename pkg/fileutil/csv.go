package fileutil

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Row is one CSV record with its fields trimmed of surrounding whitespace
type Row struct {
	Line   int
	Fields []string
}

// CSVReader provides a helper/utility to stream CSV input row by row
type CSVReader struct {
	FilePath string
	src      io.Reader
}

// NewCSVReader returns a CSVReader instance for a specified CSV file
func NewCSVReader(fp string) *CSVReader {
	return &CSVReader{
		FilePath: fp,
	}
}

// NewCSVReaderFrom returns a CSVReader reading from src instead of a file
func NewCSVReaderFrom(src io.Reader) *CSVReader {
	return &CSVReader{
		src: src,
	}
}

// ReadAndProcessByRow reads the header, hands it to headerFn, then processes the
// remaining rows one at a time in file order. Rows may have fewer fields than the header.
func (r *CSVReader) ReadAndProcessByRow(ctx context.Context, headerFn func([]string) error, rowFn func(Row) error) error {
	src := r.src
	if src == nil {
		f, err := os.Open(r.FilePath)
		if err != nil {
			return fmt.Errorf("opening a csv file: %w", err)
		}
		defer f.Close()
		src = f
	}

	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("reading CSV header: empty input")
		}
		return fmt.Errorf("reading CSV header: %w", err)
	}

	if err := headerFn(trimFields(header)); err != nil {
		return err
	}

	// read and process row by row
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break // end of file, stop
		}
		if err != nil {
			return fmt.Errorf("reading CSV row: %w", err)
		}

		line, _ := reader.FieldPos(0)
		if err = rowFn(Row{Line: line, Fields: trimFields(record)}); err != nil {
			return err
		}
	}

	return nil
}

func trimFields(fields []string) []string {
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}
