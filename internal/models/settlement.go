package models

// Settlement represents a direct payment between two users to clear debt.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `json:"id"`

	// Amount is the payment amount. Always positive.
	Amount float64 `json:"amount"`

	// PaidBy is the user who paid (debtor settling up).
	PaidBy string `json:"paidBy"`

	// PaidTo is the user who received the payment (creditor being paid).
	PaidTo string `json:"paidTo"`

	// GroupID scopes the settlement to a group. Empty means it applies to the
	// personal (non-group) relationship between the two users.
	GroupID string `json:"groupId"`

	// Date is the Unix millisecond timestamp of the payment.
	Date int64 `json:"date"`

	// Note is an optional free-form description.
	Note string `json:"note"`

	// RelatedExpenseIDs optionally links the settlement to the expenses it
	// pays off. Informational only.
	RelatedExpenseIDs []string `json:"relatedExpenseIds"`

	// CreatedBy is the user id who recorded the settlement.
	CreatedBy string `json:"createdBy"`

	// CreatedAt is the Unix timestamp when the record was created.
	CreatedAt int64 `json:"createdAt"`
}

// IsPersonal reports whether the settlement belongs to no group.
func (s *Settlement) IsPersonal() bool {
	return s.GroupID == ""
}
