package repository

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/tirasundara/payments-engine/internal/domain"
	"github.com/tirasundara/payments-engine/pkg/fileutil"
)

const (
	typeField   = "type"
	clientField = "client"
	txField     = "tx"
	amountField = "amount"
)

var transactionHeaderFields = []string{typeField, clientField, txField}

// CSVTransactionRepository implements the TransactionSource interface for CSV input
type CSVTransactionRepository struct {
	reader *fileutil.CSVReader
}

var _ domain.TransactionSource = (*CSVTransactionRepository)(nil)

// NewCSVTransactionRepository creates a repository reading the CSV file at fp
func NewCSVTransactionRepository(fp string) *CSVTransactionRepository {
	return &CSVTransactionRepository{reader: fileutil.NewCSVReader(fp)}
}

// NewCSVTransactionRepositoryFrom creates a repository reading CSV from src
func NewCSVTransactionRepositoryFrom(src io.Reader) *CSVTransactionRepository {
	return &CSVTransactionRepository{reader: fileutil.NewCSVReaderFrom(src)}
}

// ForEach converts every row into a domain.Transaction and passes it to fn, in file order.
// A row that cannot be converted stops the iteration with a *RowError.
func (r *CSVTransactionRepository) ForEach(ctx context.Context, fn func(line int, tx domain.Transaction) error) error {
	var columnMap map[string]int

	headerFn := func(header []string) error {
		var err error
		columnMap, err = createHeaderMap(header, transactionHeaderFields, amountField)
		if err != nil {
			return fmt.Errorf("mapping CSV column: %w", err)
		}
		return nil
	}

	rowFn := func(row fileutil.Row) error {
		tx, err := convertRow(columnMap, row.Fields)
		if err != nil {
			return &RowError{Line: row.Line, Row: row.Fields, Err: err}
		}
		return fn(row.Line, tx)
	}

	if err := r.reader.ReadAndProcessByRow(ctx, headerFn, rowFn); err != nil {
		return fmt.Errorf("reading transactions: %w", err)
	}

	return nil
}

// convertRow turns the fields of one row into a transaction.
// Deposits and withdrawals need a non-negative amount; any amount on other rows is ignored.
func convertRow(columnMap map[string]int, fields []string) (domain.Transaction, error) {
	field := func(name string) string {
		idx, ok := columnMap[name]
		if !ok || idx >= len(fields) {
			return ""
		}
		return fields[idx]
	}

	kind, err := domain.ParseKind(field(typeField))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, field(typeField))
	}

	client, err := strconv.ParseUint(field(clientField), 10, 16)
	if err != nil {
		return nil, fmt.Errorf("%w: client %q", ErrInvalidID, field(clientField))
	}

	tx, err := strconv.ParseUint(field(txField), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: tx %q", ErrInvalidID, field(txField))
	}

	data := domain.TransactionData{Client: uint16(client), Tx: uint32(tx)}

	switch kind {
	case domain.KindDispute:
		return domain.Dispute{TransactionData: data}, nil
	case domain.KindResolve:
		return domain.Resolve{TransactionData: data}, nil
	case domain.KindChargeback:
		return domain.Chargeback{TransactionData: data}, nil
	}

	raw := field(amountField)
	if raw == "" {
		return nil, fmt.Errorf("%w for %s", ErrMissingAmount, kind)
	}

	amount, err := domain.ParseMoney(raw)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidAmount, raw, err)
	}

	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: %s", ErrNegativeAmount, amount)
	}

	if kind == domain.KindDeposit {
		return domain.Deposit{TransactionData: data, Amount: amount}, nil
	}
	return domain.Withdrawal{TransactionData: data, Amount: amount}, nil
}
