package domain

// TransactionState is the dispute lifecycle state of a recorded deposit.
//
//	Valid --dispute--> Disputed --resolve--> Valid
//	Disputed --chargeback--> ChargedBack (terminal)
type TransactionState int

// Transaction states
const (
	Valid TransactionState = iota
	Disputed
	ChargedBack
)

func (s TransactionState) String() string {
	switch s {
	case Valid:
		return "Valid"
	case Disputed:
		return "Disputed"
	case ChargedBack:
		return "ChargedBack"
	default:
		return "Unknown"
	}
}
