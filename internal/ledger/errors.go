package ledger

import (
	"errors"
	"fmt"

	"github.com/tirasundara/payments-engine/internal/domain"
)

var (
	ErrClientLocked            = errors.New("client locked")
	ErrNegativeBalance         = errors.New("negative balance")
	ErrMissingTransaction      = errors.New("missing transaction")
	ErrInvalidTransactionState = errors.New("invalid transaction state")
	ErrClientMismatch          = errors.New("transaction routed to the wrong client")
)

// ClientLockedError is returned for any transaction applied to a locked account.
type ClientLockedError struct {
	Transaction domain.Transaction
}

func (e *ClientLockedError) Error() string {
	return fmt.Sprintf("locked clients can't process transactions %s", domain.Describe(e.Transaction))
}

func (e *ClientLockedError) Is(target error) bool { return target == ErrClientLocked }

// NegativeBalanceError is returned for a withdrawal larger than the available funds.
type NegativeBalanceError struct {
	Transaction domain.Transaction
	Available   domain.Money
}

func (e *NegativeBalanceError) Error() string {
	return fmt.Sprintf("negative balance not allowed, tx <%s>, current available balance: %s",
		domain.Describe(e.Transaction), e.Available)
}

func (e *NegativeBalanceError) Is(target error) bool { return target == ErrNegativeBalance }

// MissingTransactionError is returned when a dispute, resolve or chargeback
// references a deposit the client never made.
type MissingTransactionError struct {
	Action string
	Client uint16
	Tx     uint32
}

func (e *MissingTransactionError) Error() string {
	return fmt.Sprintf("attempted %s on missing transaction: client %d doesn't have transaction %d",
		e.Action, e.Client, e.Tx)
}

func (e *MissingTransactionError) Is(target error) bool { return target == ErrMissingTransaction }

// InvalidTransactionStateError is returned when the referenced deposit is not
// in the state the action requires.
type InvalidTransactionStateError struct {
	Action   string
	Client   uint16
	Tx       uint32
	Current  domain.TransactionState
	Expected domain.TransactionState
}

func (e *InvalidTransactionStateError) Error() string {
	return fmt.Sprintf("invalid transaction state for %s: transaction %d for client %d state is %s but should be %s",
		e.Action, e.Tx, e.Client, e.Current, e.Expected)
}

func (e *InvalidTransactionStateError) Is(target error) bool {
	return target == ErrInvalidTransactionState
}

// IsRecoverable reports whether err only rejects a single transaction,
// leaving the account usable for the ones that follow.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrClientLocked) ||
		errors.Is(err, ErrNegativeBalance) ||
		errors.Is(err, ErrMissingTransaction) ||
		errors.Is(err, ErrInvalidTransactionState)
}
