package ledger

import "github.com/splitq/splitq/internal/models"

// Scope selects which slice of the record history a balance computation reads:
// the personal (non-group) relationship, or a single group.
type Scope struct {
	group   bool
	groupID string
}

// PersonalScope scopes a computation to records with no group.
func PersonalScope() Scope {
	return Scope{}
}

// GroupScope scopes a computation to records of one group.
func GroupScope(groupID string) Scope {
	return Scope{group: true, groupID: groupID}
}

// IsGroup reports whether the scope targets a group.
func (s Scope) IsGroup() bool {
	return s.group
}

// GroupID returns the target group id. Empty for the personal scope.
func (s Scope) GroupID() string {
	return s.groupID
}

// Matches reports whether a record carrying groupID falls inside the scope.
func (s Scope) Matches(groupID string) bool {
	if s.group {
		return groupID == s.groupID
	}
	return groupID == ""
}

// FilterExpenses returns the expenses inside the scope, preserving order.
func (s Scope) FilterExpenses(expenses []*models.Expense) []*models.Expense {
	var out []*models.Expense
	for _, e := range expenses {
		if s.Matches(e.GroupID) {
			out = append(out, e)
		}
	}
	return out
}

// FilterSettlements returns the settlements inside the scope, preserving order.
func (s Scope) FilterSettlements(settlements []*models.Settlement) []*models.Settlement {
	var out []*models.Settlement
	for _, st := range settlements {
		if s.Matches(st.GroupID) {
			out = append(out, st)
		}
	}
	return out
}
