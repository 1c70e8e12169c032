package service

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/tirasundara/payments-engine/internal/domain"
	"github.com/tirasundara/payments-engine/internal/ledger"
	"go.uber.org/zap"
)

// TransactionProcessor folds an ordered transaction stream into client accounts
type TransactionProcessor struct {
	source  domain.TransactionSource
	logger  *zap.Logger
	workers int
}

// Option configures a TransactionProcessor
type Option func(*TransactionProcessor)

// WithWorkers splits processing across n workers, each owning the clients whose
// id modulo n equals its index. Values below 2 keep processing sequential.
func WithWorkers(n int) Option {
	return func(p *TransactionProcessor) {
		if n > 1 {
			p.workers = n
		}
	}
}

// NewTransactionProcessor creates a new TransactionProcessor
func NewTransactionProcessor(source domain.TransactionSource, logger *zap.Logger, opts ...Option) *TransactionProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &TransactionProcessor{
		source:  source,
		logger:  logger,
		workers: 1,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Process applies every transaction of the source to fresh accounts.
func (p *TransactionProcessor) Process(ctx context.Context) (domain.ProcessingResult, error) {
	return p.ProcessInto(ctx, make(map[uint16]*ledger.Account))
}

// ProcessInto applies every transaction of the source to accounts, creating an
// account the first time a client is seen. Rejected transactions are logged and
// reported in the result; any other error aborts the run.
func (p *TransactionProcessor) ProcessInto(ctx context.Context, accounts map[uint16]*ledger.Account) (domain.ProcessingResult, error) {
	p.logger.Debug("Processing transactions", zap.Int("workers", p.workers), zap.Int("known_clients", len(accounts)))

	var (
		rejections []domain.Rejection
		processed  int
		err        error
	)
	if p.workers > 1 {
		rejections, processed, err = p.processPartitioned(ctx, accounts)
	} else {
		part := newPartition(accounts, p.logger)
		err = p.source.ForEach(ctx, part.apply)
		rejections, processed = part.rejections, part.processed
	}
	if err != nil {
		return domain.ProcessingResult{}, fmt.Errorf("processing transactions: %w", err)
	}

	result, err := buildResult(accounts, rejections, processed)
	if err != nil {
		return domain.ProcessingResult{}, err
	}

	p.logger.Debug("Processed transactions",
		zap.Int("transactions", result.TotalTxnsProcessed),
		zap.Int("clients", len(result.Accounts)),
		zap.Int("rejected", len(result.Rejections)),
	)

	return result, nil
}

// partition owns a set of accounts and applies transactions to them in order
type partition struct {
	accounts   map[uint16]*ledger.Account
	rejections []domain.Rejection
	processed  int
	logger     *zap.Logger
}

func newPartition(accounts map[uint16]*ledger.Account, logger *zap.Logger) *partition {
	return &partition{
		accounts: accounts,
		logger:   logger,
	}
}

func (p *partition) apply(line int, tx domain.Transaction) error {
	p.processed++

	data := tx.Data()
	account, ok := p.accounts[data.Client]
	if !ok {
		account = ledger.NewAccount(data.Client)
		p.accounts[data.Client] = account
	}

	err := account.Apply(tx)
	if err == nil {
		return nil
	}
	if !ledger.IsRecoverable(err) {
		return fmt.Errorf("line %d: %w", line, err)
	}

	p.logger.Info("Error applying transaction. Continuing.",
		zap.Int("line", line),
		zap.Stringer("action", tx.Kind()),
		zap.Uint16("client", data.Client),
		zap.Uint32("tx", data.Tx),
		zap.Error(err),
	)
	p.rejections = append(p.rejections, domain.Rejection{
		Line:        line,
		Transaction: tx,
		Action:      tx.Kind().String(),
		Client:      data.Client,
		Tx:          data.Tx,
		Reason:      err.Error(),
	})

	return nil
}

func buildResult(accounts map[uint16]*ledger.Account, rejections []domain.Rejection, processed int) (domain.ProcessingResult, error) {
	snapshots := make([]domain.AccountSnapshot, 0, len(accounts))
	for _, id := range slices.Sorted(maps.Keys(accounts)) {
		snapshot, err := accounts[id].Snapshot()
		if err != nil {
			return domain.ProcessingResult{}, fmt.Errorf("reporting accounts: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if rejections == nil {
		rejections = []domain.Rejection{}
	}

	return domain.ProcessingResult{
		TotalTxnsProcessed: processed,
		Accounts:           snapshots,
		Rejections:         rejections,
	}, nil
}
