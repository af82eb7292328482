package models

// SplitTolerance is the maximum allowed difference between an expense amount
// and the sum of its split amounts, in currency units. Splits are produced by
// dividing a float total across participants, so exact equality cannot be
// required.
const SplitTolerance = 0.01

// Expense represents one spending event split among participants.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Description is the human-readable label for the expense.
	Description string `json:"description"`

	// Amount is the total expense amount. Always positive.
	Amount float64 `json:"amount"`

	// Date is the Unix millisecond timestamp of when the expense occurred.
	Date int64 `json:"date"`

	// Category is a free-form tag; defaults to CategoryOther when unset.
	Category string `json:"category"`

	// PaidBy is the user id of the payer.
	PaidBy string `json:"paidBy"`

	// SplitType records how the splits were produced (equal, exact,
	// percentage). Informational only; the engine reads the split amounts.
	SplitType string `json:"splitType"`

	// Splits is the per-participant share breakdown. The payer may or may not
	// appear; a payer's own split is self-owed and never counted as debt.
	Splits []Split `json:"splits"`

	// GroupID is the group this expense belongs to. Empty means a personal
	// (non-group) expense.
	GroupID string `json:"groupId"`

	// CreatedBy is the user id of whoever recorded the expense. May differ
	// from the payer.
	CreatedBy string `json:"createdBy"`

	// CreatedAt is the Unix timestamp when the record was created.
	CreatedAt int64 `json:"createdAt"`
}

// Split is one participant's assigned share of an expense.
type Split struct {
	// UserID is the participant this share belongs to.
	UserID string `json:"userId"`

	// Amount is the share owed by the participant. Non-negative.
	Amount float64 `json:"amount"`

	// Paid reports whether this share was already settled out-of-band. Paid
	// splits contribute nothing to balances.
	Paid bool `json:"paid"`
}

// SplitFor returns the split belonging to userID, or nil if the user has no
// share of this expense.
func (e *Expense) SplitFor(userID string) *Split {
	for i := range e.Splits {
		if e.Splits[i].UserID == userID {
			return &e.Splits[i]
		}
	}
	return nil
}

// Involves reports whether the user participates in this expense, either as
// the payer or through a split entry.
func (e *Expense) Involves(userID string) bool {
	return e.PaidBy == userID || e.SplitFor(userID) != nil
}

// IsPersonal reports whether the expense belongs to no group.
func (e *Expense) IsPersonal() bool {
	return e.GroupID == ""
}
