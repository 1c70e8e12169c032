package domain

import "context"

// TransactionSource defines the interface for reading an ordered transaction stream
type TransactionSource interface {
	// ForEach calls fn for every transaction in input order, with the line it was read from.
	// It stops at the first error returned by fn or met while reading.
	ForEach(ctx context.Context, fn func(line int, tx Transaction) error) error
}
