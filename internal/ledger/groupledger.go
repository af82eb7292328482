package ledger

import (
	"sort"

	"github.com/splitq/splitq/internal/models"
)

// DebtEntry is one directional debt toward or from a group member.
type DebtEntry struct {
	UserID string  `json:"userId"`
	Amount float64 `json:"amount"`
}

// MemberBalance summarizes one group member's position: the overall credit or
// debit, plus the per-counterparty direction lists with zero entries omitted.
type MemberBalance struct {
	UserID       string      `json:"userId"`
	TotalBalance float64     `json:"totalBalance"` // credits minus debits across the whole group
	Owes         []DebtEntry `json:"owes"`         // what this member owes others
	OwedBy       []DebtEntry `json:"owedBy"`       // what others owe this member
}

// GroupLedger is the normalized owed-matrix among a group's members. For each
// unordered member pair at most one direction carries a positive amount; the
// opposite cell is zero. Normalization is strictly pairwise: debt cycles
// through three or more members are left as-is.
type GroupLedger struct {
	memberIDs []string
	cells     map[string]map[string]float64 // cells[debtor][creditor]
	totals    map[string]float64
}

// ComputeGroupLedger accumulates the full owed-matrix for a group from its
// expenses and settlements and normalizes each pair to a single direction.
//
// Every member's row is initialized up front, so accumulation order cannot
// change the result. Records referencing users outside memberIDs are skipped
// defensively; stale splits must not crash a read path.
func ComputeGroupLedger(memberIDs []string, expenses []*models.Expense, settlements []*models.Settlement) *GroupLedger {
	members := append([]string(nil), memberIDs...)
	sort.Strings(members)

	l := &GroupLedger{
		memberIDs: members,
		cells:     make(map[string]map[string]float64, len(members)),
		totals:    make(map[string]float64, len(members)),
	}
	for _, a := range members {
		l.totals[a] = 0
		l.cells[a] = make(map[string]float64, len(members)-1)
		for _, b := range members {
			if a != b {
				l.cells[a][b] = 0
			}
		}
	}

	for _, e := range expenses {
		payer := e.PaidBy
		if _, ok := l.cells[payer]; !ok {
			continue
		}
		for _, split := range e.Splits {
			if split.UserID == payer || split.Paid {
				continue
			}
			if _, ok := l.cells[split.UserID]; !ok {
				continue
			}
			l.totals[payer] += split.Amount
			l.totals[split.UserID] -= split.Amount
			l.cells[split.UserID][payer] += split.Amount
		}
	}

	for _, s := range settlements {
		if _, ok := l.cells[s.PaidBy]; !ok {
			continue
		}
		if _, ok := l.cells[s.PaidTo]; !ok {
			continue
		}
		l.totals[s.PaidBy] += s.Amount
		l.totals[s.PaidTo] -= s.Amount
		// Paying back shrinks the payer's owed cell. No floor: over-settlement
		// flips direction during normalization instead of being clamped.
		l.cells[s.PaidBy][s.PaidTo] -= s.Amount
	}

	l.normalize()
	return l
}

// normalize resolves each unordered pair to one direction: the side with the
// larger accumulated claim keeps the surplus, the other cell is zeroed.
func (l *GroupLedger) normalize() {
	for i, a := range l.memberIDs {
		for _, b := range l.memberIDs[i+1:] {
			diff := l.cells[a][b] - l.cells[b][a]
			switch {
			case diff > 0:
				l.cells[a][b] = diff
				l.cells[b][a] = 0
			case diff < 0:
				l.cells[a][b] = 0
				l.cells[b][a] = -diff
			default:
				l.cells[a][b] = 0
				l.cells[b][a] = 0
			}
		}
	}
}

// MemberIDs returns the group members in sorted order.
func (l *GroupLedger) MemberIDs() []string {
	return l.memberIDs
}

// Owed returns the normalized amount debtor owes creditor. Zero for unknown
// users and for pairs whose net runs the other way.
func (l *GroupLedger) Owed(debtor, creditor string) float64 {
	return l.cells[debtor][creditor]
}

// TotalBalance returns the member's overall position: positive means the
// group owes them on net, negative means they owe the group.
func (l *GroupLedger) TotalBalance(member string) float64 {
	return l.totals[member]
}

// MemberBalances returns the per-member summaries in sorted member order,
// omitting zero amounts from the direction lists.
func (l *GroupLedger) MemberBalances() []MemberBalance {
	balances := make([]MemberBalance, 0, len(l.memberIDs))
	for _, m := range l.memberIDs {
		mb := MemberBalance{UserID: m, TotalBalance: l.totals[m]}
		for _, other := range l.memberIDs {
			if other == m {
				continue
			}
			if amt := l.cells[m][other]; amt > 0 {
				mb.Owes = append(mb.Owes, DebtEntry{UserID: other, Amount: amt})
			}
			if amt := l.cells[other][m]; amt > 0 {
				mb.OwedBy = append(mb.OwedBy, DebtEntry{UserID: other, Amount: amt})
			}
		}
		balances = append(balances, mb)
	}
	return balances
}
