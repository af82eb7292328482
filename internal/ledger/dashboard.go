package ledger

import (
	"sort"

	"github.com/splitq/splitq/internal/models"
)

// CounterpartyNet is the signed net against one counterparty on the personal
// dashboard: positive means they owe the user, negative means the user owes.
type CounterpartyNet struct {
	UserID string
	Net    float64
}

// DashboardSummary aggregates a user's personal (non-group) position across
// all counterparties. Group debts are surfaced separately per group and are
// deliberately not folded into these totals.
type DashboardSummary struct {
	YouOwe         float64 // gross amount the user owes others
	YouAreOwed     float64 // gross amount others owe the user
	TotalBalance   float64 // YouAreOwed - YouOwe
	ByCounterparty []CounterpartyNet
}

// ComputeDashboard builds the personal dashboard summary for a user. Records
// with a group id and records the user is not involved in are ignored;
// counterparties whose net comes out to exactly zero are omitted.
//
// Settlement amounts are not validated against outstanding debt, so an
// over-settled relationship shows up on the opposite side rather than being
// clamped at zero.
func ComputeDashboard(userID string, expenses []*models.Expense, settlements []*models.Settlement) DashboardSummary {
	type tally struct {
		owed float64 // they owe the user
		owe  float64 // the user owes them
	}
	byUser := make(map[string]*tally)
	get := func(id string) *tally {
		t, ok := byUser[id]
		if !ok {
			t = &tally{}
			byUser[id] = t
		}
		return t
	}

	var summary DashboardSummary

	for _, e := range expenses {
		if !e.IsPersonal() || !e.Involves(userID) {
			continue
		}
		if e.PaidBy == userID {
			for _, split := range e.Splits {
				if split.UserID == userID || split.Paid {
					continue
				}
				summary.YouAreOwed += split.Amount
				get(split.UserID).owed += split.Amount
			}
		} else if split := e.SplitFor(userID); split != nil && !split.Paid {
			summary.YouOwe += split.Amount
			get(e.PaidBy).owe += split.Amount
		}
	}

	for _, s := range settlements {
		if !s.IsPersonal() {
			continue
		}
		switch userID {
		case s.PaidBy:
			summary.YouOwe -= s.Amount
			get(s.PaidTo).owe -= s.Amount
		case s.PaidTo:
			summary.YouAreOwed -= s.Amount
			get(s.PaidBy).owed -= s.Amount
		}
	}

	summary.TotalBalance = summary.YouAreOwed - summary.YouOwe

	for id, t := range byUser {
		net := t.owed - t.owe
		if net == 0 {
			continue
		}
		summary.ByCounterparty = append(summary.ByCounterparty, CounterpartyNet{UserID: id, Net: net})
	}
	sort.Slice(summary.ByCounterparty, func(i, j int) bool {
		return summary.ByCounterparty[i].UserID < summary.ByCounterparty[j].UserID
	})

	return summary
}
