package ledger

import (
	"sort"

	"github.com/splitq/splitq/internal/models"
)

// OutstandingDebt is one counterparty a user still owes money to, with the
// earliest unpaid expense date for "you've owed X since <date>" phrasing.
type OutstandingDebt struct {
	CreditorID string
	Amount     float64
	Since      int64 // Unix millisecond timestamp of the earliest unpaid expense
}

// OutstandingDebts lists the counterparties userID currently owes across the
// personal (non-group) record history, strictly positive amounts only.
// Counterparties who owe the user, or who net to zero, produce no entry.
//
// Entries are created by expenses; settlements only adjust counterparties the
// user already has expense history with. A stray settlement between users who
// never shared an expense cannot create reminder debt.
func OutstandingDebts(userID string, expenses []*models.Expense, settlements []*models.Settlement) []OutstandingDebt {
	type entry struct {
		amount float64
		since  int64
	}
	balances := make(map[string]*entry)
	touch := func(id string, date int64) *entry {
		e, ok := balances[id]
		if !ok {
			e = &entry{since: date}
			balances[id] = e
		}
		if date < e.since {
			e.since = date
		}
		return e
	}

	for _, exp := range expenses {
		if !exp.IsPersonal() {
			continue
		}
		if exp.PaidBy != userID {
			split := exp.SplitFor(userID)
			if split == nil || split.Paid {
				continue
			}
			touch(exp.PaidBy, exp.Date).amount += split.Amount
		} else {
			for _, split := range exp.Splits {
				if split.UserID == userID || split.Paid {
					continue
				}
				touch(split.UserID, exp.Date).amount -= split.Amount
			}
		}
	}

	for _, s := range settlements {
		if !s.IsPersonal() {
			continue
		}
		switch userID {
		case s.PaidBy:
			if e, ok := balances[s.PaidTo]; ok {
				e.amount -= s.Amount
				if e.amount == 0 {
					delete(balances, s.PaidTo)
				}
			}
		case s.PaidTo:
			if e, ok := balances[s.PaidBy]; ok {
				e.amount += s.Amount
				if e.amount == 0 {
					delete(balances, s.PaidBy)
				}
			}
		}
	}

	var debts []OutstandingDebt
	for id, e := range balances {
		if e.amount > 0 {
			debts = append(debts, OutstandingDebt{CreditorID: id, Amount: e.amount, Since: e.since})
		}
	}
	sort.Slice(debts, func(i, j int) bool { return debts[i].CreditorID < debts[j].CreditorID })
	return debts
}
