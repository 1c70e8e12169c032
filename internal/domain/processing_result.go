package domain

// AccountSnapshot is the reported state of one client account
type AccountSnapshot struct {
	Client    uint16 `json:"client"`
	Available Money  `json:"available"`
	Held      Money  `json:"held"`
	Total     Money  `json:"total"`
	Locked    bool   `json:"locked"`
}

// Rejection records a transaction that was refused and skipped
type Rejection struct {
	Line        int         `json:"line"`
	Transaction Transaction `json:"-"`
	Action      string      `json:"action"`
	Client      uint16      `json:"client"`
	Tx          uint32      `json:"tx"`
	Reason      string      `json:"reason"`
}

// ProcessingResult contains the result of processing a transaction stream
type ProcessingResult struct {
	TotalTxnsProcessed int               `json:"totalTxnsProcessed"`
	Accounts           []AccountSnapshot `json:"accounts"`
	Rejections         []Rejection       `json:"rejections"`
}
