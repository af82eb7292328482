package ledger

import "github.com/splitq/splitq/internal/models"

// ExpenseContribution returns the signed amount one expense adds to
// "x is owed by y".
//
// An expense counts only when both x and y are involved (payer or split
// participant); anything else would manufacture phantom debt from expenses
// one side never took part in. The payer's counterparty split must exist and
// be unpaid to contribute. A malformed expense (missing split) contributes
// zero rather than failing the read path.
func ExpenseContribution(e *models.Expense, x, y string) float64 {
	if !e.Involves(x) || !e.Involves(y) {
		return 0
	}

	switch {
	case e.PaidBy == x:
		if split := e.SplitFor(y); split != nil && !split.Paid {
			return split.Amount // y owes x
		}
	case e.PaidBy == y:
		if split := e.SplitFor(x); split != nil && !split.Paid {
			return -split.Amount // x owes y
		}
	}
	return 0
}

// SettlementContribution returns the signed amount one settlement adds to
// "x is owed by y". A payment from x to y pays x's debt down, which moves the
// net in x's favor, so it carries the same sign as x being owed.
func SettlementContribution(s *models.Settlement, x, y string) float64 {
	switch {
	case s.PaidBy == x && s.PaidTo == y:
		return s.Amount
	case s.PaidBy == y && s.PaidTo == x:
		return -s.Amount
	}
	return 0
}
