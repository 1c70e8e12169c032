// Package ledger keeps the balances of a single client and applies
// transactions to them.
package ledger

import (
	"fmt"

	"github.com/tirasundara/payments-engine/internal/domain"
)

type depositEntry struct {
	amount domain.Money
	state  domain.TransactionState
}

// balances is the mutable part of an Account, computed in full before being committed.
type balances struct {
	available domain.Money
	held      domain.Money
	locked    bool
}

// Account is the ledger of one client.
//
// Available may go negative through a dispute on funds that were already
// withdrawn. Held never goes negative. Once Locked, the account is frozen.
type Account struct {
	ID        uint16
	Available domain.Money
	Held      domain.Money
	Locked    bool

	deposits map[uint32]*depositEntry
}

// NewAccount creates an empty, unlocked account.
func NewAccount(id uint16) *Account {
	return &Account{
		ID:        id,
		Available: domain.ZeroMoney(),
		Held:      domain.ZeroMoney(),
		deposits:  make(map[uint32]*depositEntry),
	}
}

// Apply applies tx to the account. On error the account is left unchanged.
//
// Errors matching IsRecoverable reject only this transaction. Any other error,
// such as an amount overflow, means the input cannot be processed safely.
func (a *Account) Apply(tx domain.Transaction) error {
	if tx.Data().Client != a.ID {
		return fmt.Errorf("%w: account %d got %s", ErrClientMismatch, a.ID, domain.Describe(tx))
	}
	if a.Locked {
		return &ClientLockedError{Transaction: tx}
	}

	switch v := tx.(type) {
	case domain.Deposit:
		available, err := a.Available.Add(v.Amount)
		if err != nil {
			return fmt.Errorf("applying %s: %w", domain.Describe(tx), err)
		}
		a.Available = available
		a.deposits[v.Tx] = &depositEntry{amount: v.Amount, state: domain.Valid}

	case domain.Withdrawal:
		if !v.Amount.LessThanOrEqual(a.Available) {
			return &NegativeBalanceError{Transaction: tx, Available: a.Available}
		}
		available, err := a.Available.Sub(v.Amount)
		if err != nil {
			return fmt.Errorf("applying %s: %w", domain.Describe(tx), err)
		}
		a.Available = available

	case domain.Dispute:
		return a.amend(tx, domain.Valid, domain.Disputed, func(b balances, amount domain.Money) (balances, error) {
			return b.hold(amount)
		})

	case domain.Resolve:
		return a.amend(tx, domain.Disputed, domain.Valid, func(b balances, amount domain.Money) (balances, error) {
			return b.release(amount)
		})

	case domain.Chargeback:
		return a.amend(tx, domain.Disputed, domain.ChargedBack, func(b balances, amount domain.Money) (balances, error) {
			held, err := b.held.Sub(amount)
			if err != nil {
				return b, err
			}
			return balances{available: b.available, held: held, locked: true}, nil
		})

	default:
		return fmt.Errorf("unsupported transaction %T", tx)
	}

	return nil
}

// hold moves amount from available to held.
func (b balances) hold(amount domain.Money) (balances, error) {
	available, err := b.available.Sub(amount)
	if err != nil {
		return b, err
	}
	held, err := b.held.Add(amount)
	if err != nil {
		return b, err
	}
	return balances{available: available, held: held, locked: b.locked}, nil
}

// release moves amount from held back to available.
func (b balances) release(amount domain.Money) (balances, error) {
	available, err := b.available.Add(amount)
	if err != nil {
		return b, err
	}
	held, err := b.held.Sub(amount)
	if err != nil {
		return b, err
	}
	return balances{available: available, held: held, locked: b.locked}, nil
}

// amend moves the deposit referenced by tx from expected to final state and
// commits the balances computed by move. Nothing changes on error.
func (a *Account) amend(
	tx domain.Transaction,
	expected, final domain.TransactionState,
	move func(b balances, amount domain.Money) (balances, error),
) error {
	action := tx.Kind().String()
	ref := tx.Data().Tx

	entry, ok := a.deposits[ref]
	if !ok {
		return &MissingTransactionError{Action: action, Client: a.ID, Tx: ref}
	}
	if entry.state != expected {
		return &InvalidTransactionStateError{
			Action:   action,
			Client:   a.ID,
			Tx:       ref,
			Current:  entry.state,
			Expected: expected,
		}
	}

	next, err := move(balances{available: a.Available, held: a.Held, locked: a.Locked}, entry.amount)
	if err != nil {
		return fmt.Errorf("applying %s: %w", domain.Describe(tx), err)
	}

	entry.state = final
	a.Available, a.Held, a.Locked = next.available, next.held, next.locked
	return nil
}

// DepositState returns the dispute state of deposit tx, if the account holds it.
func (a *Account) DepositState(tx uint32) (domain.TransactionState, bool) {
	entry, ok := a.deposits[tx]
	if !ok {
		return 0, false
	}
	return entry.state, true
}

// Snapshot projects the account into its reported form. Total is Available + Held.
func (a *Account) Snapshot() (domain.AccountSnapshot, error) {
	total, err := a.Held.Add(a.Available)
	if err != nil {
		return domain.AccountSnapshot{}, fmt.Errorf("computing total for client %d: %w", a.ID, err)
	}

	return domain.AccountSnapshot{
		Client:    a.ID,
		Available: a.Available,
		Held:      a.Held,
		Total:     total,
		Locked:    a.Locked,
	}, nil
}
