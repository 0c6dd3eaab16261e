package models

// Transaction types. A transaction is immutable once written; there is no
// update or delete endpoint for the transactions table.
const (
	TransactionExpense = "expense"
	TransactionRevenue = "revenue"
)

// Transaction represents one financial entry, expense or revenue.
type Transaction struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	EvidenceURL string  `json:"evidenceUrl,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}
