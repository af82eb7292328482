package ledger

import "github.com/splitq/splitq/internal/models"

// PairBalance computes the signed net balance between two users from the
// given records: positive means the counterparty owes the perspective user,
// negative means the perspective user owes the counterparty.
//
// The caller is expected to pass records already filtered to the wanted
// scope (see Scope.FilterExpenses / Scope.FilterSettlements). Users with no
// shared history net to zero. Self-pairs are excluded by construction
// everywhere in the service layer; if one slips through, it nets to zero
// rather than double counting the payer's own split.
func PairBalance(perspective, counterparty string, expenses []*models.Expense, settlements []*models.Settlement) float64 {
	if perspective == counterparty {
		return 0
	}

	var balance float64
	for _, e := range expenses {
		balance += ExpenseContribution(e, perspective, counterparty)
	}
	for _, s := range settlements {
		balance += SettlementContribution(s, perspective, counterparty)
	}
	return balance
}
