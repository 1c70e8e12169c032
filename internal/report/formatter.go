package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tirasundara/payments-engine/internal/domain"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// OutputFormatter defines the interface for formatting processing results
type OutputFormatter interface {
	Format(result domain.ProcessingResult) ([]byte, error)
	FileExtension() string
}

// NewFormatter returns the formatter registered under name. An empty name selects CSV.
func NewFormatter(name string, prettyPrint bool) (OutputFormatter, error) {
	switch name {
	case "", FormatCSV:
		return NewCSVFormatter(), nil
	case FormatJSON:
		return NewJSONFormatter(prettyPrint), nil

	// Can add other formatters later: txt, etc
	default:
		return nil, fmt.Errorf("unsupported output format: %s", name)
	}
}

// CSVFormatter writes one row per client account
type CSVFormatter struct{}

var csvHeader = []string{"client", "available", "held", "total", "locked"}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

// Format implements the OutputFormatter interface for CSV. Rejections are not part of the CSV report.
func (f *CSVFormatter) Format(result domain.ProcessingResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}

	for _, account := range result.Accounts {
		record := []string{
			strconv.FormatUint(uint64(account.Client), 10),
			account.Available.String(),
			account.Held.String(),
			account.Total.String(),
			strconv.FormatBool(account.Locked),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("writing CSV row for client %d: %w", account.Client, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}

	return buf.Bytes(), nil
}

func (f *CSVFormatter) FileExtension() string {
	return "csv"
}

// JSONFormatter formats processing results as JSON
type JSONFormatter struct {
	PrettyPrint bool
}

func NewJSONFormatter(prettyPrint bool) *JSONFormatter {
	return &JSONFormatter{
		PrettyPrint: prettyPrint,
	}
}

// Format implements the OutputFormatter interface for JSON
func (f *JSONFormatter) Format(result domain.ProcessingResult) ([]byte, error) {
	if f.PrettyPrint {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}

func (f *JSONFormatter) FileExtension() string {
	return "json"
}
