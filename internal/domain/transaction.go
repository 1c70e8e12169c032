package domain

import (
	"fmt"
	"strings"
)

// Kind represents the type of transaction
type Kind int

// Transaction kinds
const (
	KindDeposit Kind = iota
	KindWithdrawal
	KindDispute
	KindResolve
	KindChargeback
)

func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindWithdrawal:
		return "withdrawal"
	case KindDispute:
		return "dispute"
	case KindResolve:
		return "resolve"
	case KindChargeback:
		return "chargeback"
	default:
		return "unknown"
	}
}

// RequiresAmount reports whether transactions of this kind carry an amount.
func (k Kind) RequiresAmount() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// ParseKind parses a transaction type, ignoring case and surrounding whitespace.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deposit":
		return KindDeposit, nil
	case "withdrawal":
		return KindWithdrawal, nil
	case "dispute":
		return KindDispute, nil
	case "resolve":
		return KindResolve, nil
	case "chargeback":
		return KindChargeback, nil
	default:
		return 0, fmt.Errorf("unknown transaction type: %q", s)
	}
}

// TransactionData identifies the client and transaction a record refers to
type TransactionData struct {
	Client uint16
	Tx     uint32
}

// Transaction is one of Deposit, Withdrawal, Dispute, Resolve or Chargeback.
// The set is closed: no other type can implement it.
type Transaction interface {
	Kind() Kind
	Data() TransactionData
	isTransaction()
}

// Deposit credits Amount to the client's available funds.
type Deposit struct {
	TransactionData
	Amount Money
}

// Withdrawal debits Amount from the client's available funds.
type Withdrawal struct {
	TransactionData
	Amount Money
}

// Dispute holds the funds of a previous deposit.
type Dispute struct{ TransactionData }

// Resolve releases the funds held by a dispute.
type Resolve struct{ TransactionData }

// Chargeback reverses a disputed deposit and locks the client.
type Chargeback struct{ TransactionData }

func (d TransactionData) Data() TransactionData { return d }

func (Deposit) Kind() Kind    { return KindDeposit }
func (Withdrawal) Kind() Kind { return KindWithdrawal }
func (Dispute) Kind() Kind    { return KindDispute }
func (Resolve) Kind() Kind    { return KindResolve }
func (Chargeback) Kind() Kind { return KindChargeback }

func (Deposit) isTransaction()    {}
func (Withdrawal) isTransaction() {}
func (Dispute) isTransaction()    {}
func (Resolve) isTransaction()    {}
func (Chargeback) isTransaction() {}

// Describe renders tx for logs and error messages,
// e.g. "withdrawal{client: 1, tx: 4, amount: 1.5000}".
func Describe(tx Transaction) string {
	if tx == nil {
		return "<nil>"
	}

	data := tx.Data()
	switch v := tx.(type) {
	case Deposit:
		return fmt.Sprintf("%s{client: %d, tx: %d, amount: %s}", tx.Kind(), data.Client, data.Tx, v.Amount)
	case Withdrawal:
		return fmt.Sprintf("%s{client: %d, tx: %d, amount: %s}", tx.Kind(), data.Client, data.Tx, v.Amount)
	default:
		return fmt.Sprintf("%s{client: %d, tx: %d}", tx.Kind(), data.Client, data.Tx)
	}
}
