package service

import (
	"context"
	"slices"

	"github.com/tirasundara/payments-engine/internal/domain"
	"github.com/tirasundara/payments-engine/internal/ledger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const jobBufferSize = 256

type job struct {
	line int
	tx   domain.Transaction
}

// processPartitioned reads the source once and routes each transaction to the
// worker owning its client. Every worker sees its clients' transactions in input
// order, so the outcome matches sequential processing.
func (p *TransactionProcessor) processPartitioned(ctx context.Context, accounts map[uint16]*ledger.Account) ([]domain.Rejection, int, error) {
	g, gctx := errgroup.WithContext(ctx)

	parts := make([]*partition, p.workers)
	jobs := make([]chan job, p.workers)
	for i := range parts {
		parts[i] = newPartition(make(map[uint16]*ledger.Account), p.logger.With(zap.Int("worker", i)))
		jobs[i] = make(chan job, jobBufferSize)
	}
	for id, account := range accounts {
		parts[p.owner(id)].accounts[id] = account
	}

	// Start the worker pool
	for i := range parts {
		part, in := parts[i], jobs[i]
		g.Go(func() error {
			for j := range in {
				if err := part.apply(j.line, j.tx); err != nil {
					return err
				}
			}
			return nil
		})
	}

	// Read and distribute transactions to workers
	g.Go(func() error {
		defer func() {
			for _, in := range jobs {
				close(in)
			}
		}()

		return p.source.ForEach(gctx, func(line int, tx domain.Transaction) error {
			select {
			case jobs[p.owner(tx.Data().Client)] <- job{line: line, tx: tx}:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	// Merge the partitions; their client sets are disjoint
	var rejections []domain.Rejection
	processed := 0
	for _, part := range parts {
		for id, account := range part.accounts {
			accounts[id] = account
		}
		rejections = append(rejections, part.rejections...)
		processed += part.processed
	}

	slices.SortFunc(rejections, func(a, b domain.Rejection) int { return a.Line - b.Line })

	return rejections, processed, nil
}

func (p *TransactionProcessor) owner(client uint16) int {
	return int(client) % p.workers
}
