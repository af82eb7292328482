package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/splitq/splitq/internal/ledger"
	"github.com/splitq/splitq/internal/models"
	"github.com/splitq/splitq/internal/storage"
)

// BalanceService exposes the three read projections built on the balance
// engine: pairwise, group, and dashboard. All methods are read-only and take
// the acting user's id explicitly; there is no ambient "current user".
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a BalanceService with the given storage backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// PairwiseView is the balance against one counterparty plus the records that
// produced it, for audit-style display.
type PairwiseView struct {
	Counterpart UserProfile          `json:"counterpart"`
	Balance     float64              `json:"balance"` // positive: counterpart owes the user
	Expenses    []*models.Expense    `json:"expenses"`
	Settlements []*models.Settlement `json:"settlements"`
}

// GetPairBalance computes the net balance between userID and otherID inside
// the given scope and returns it with the contributing records.
func (s *BalanceService) GetPairBalance(ctx context.Context, userID, otherID string, scope ledger.Scope) (*PairwiseView, error) {
	if userID == otherID {
		return nil, fmt.Errorf("%w: cannot compute a balance against yourself", ErrInvalidArgument)
	}

	other, err := s.store.GetUserByID(ctx, otherID)
	if err != nil {
		return nil, err
	}

	expenses, settlements, err := s.pairRecords(ctx, userID, otherID, scope)
	if err != nil {
		return nil, err
	}

	view := &PairwiseView{
		Counterpart: profileOf(other),
		Balance:     ledger.PairBalance(userID, otherID, expenses, settlements),
		Expenses:    expenses,
		Settlements: settlements,
	}
	slog.Debug("Pair balance computed",
		"user", userID, "counterpart", otherID,
		"group", scope.GroupID(), "balance", view.Balance,
	)
	return view, nil
}

// pairRecords fetches the expenses and settlements relevant to one user pair
// in a scope. An expense counts only when one of the pair paid it and both
// are involved; anything else is irrelevant to the relationship.
func (s *BalanceService) pairRecords(ctx context.Context, userID, otherID string, scope ledger.Scope) ([]*models.Expense, []*models.Settlement, error) {
	var (
		candidates  []*models.Expense
		settlements []*models.Settlement
		err         error
	)
	if scope.IsGroup() {
		if candidates, err = s.store.ListExpensesByGroup(ctx, scope.GroupID()); err != nil {
			return nil, nil, err
		}
		raw, err := s.store.ListSettlementsByGroup(ctx, scope.GroupID())
		if err != nil {
			return nil, nil, err
		}
		for _, st := range raw {
			if ledger.SettlementContribution(st, userID, otherID) != 0 {
				settlements = append(settlements, st)
			}
		}
	} else {
		if candidates, err = s.store.ListPersonalExpensesByUser(ctx, userID); err != nil {
			return nil, nil, err
		}
		if settlements, err = s.store.ListSettlementsBetween(ctx, userID, otherID); err != nil {
			return nil, nil, err
		}
	}

	var expenses []*models.Expense
	for _, e := range candidates {
		if e.PaidBy != userID && e.PaidBy != otherID {
			continue
		}
		if e.Involves(userID) && e.Involves(otherID) {
			expenses = append(expenses, e)
		}
	}
	return expenses, settlements, nil
}

// GroupView is a group's statement: metadata, member profiles, the normalized
// ledger, and the raw record lists behind it.
type GroupView struct {
	Group       *models.Group          `json:"group"`
	Members     []UserProfile          `json:"members"`
	Balances    []ledger.MemberBalance `json:"balances"`
	Expenses    []*models.Expense      `json:"expenses"`
	Settlements []*models.Settlement   `json:"settlements"`
}

// GetGroupView builds the full balance sheet for a group. The acting user
// must be a member.
func (s *BalanceService) GetGroupView(ctx context.Context, userID, groupID string) (*GroupView, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, fmt.Errorf("%w: not a member of group %s", ErrPermissionDenied, groupID)
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	users, err := s.store.GetUsersByIDs(ctx, group.Members)
	if err != nil {
		return nil, err
	}
	members := make([]UserProfile, 0, len(group.Members))
	for _, id := range group.Members {
		if u, ok := users[id]; ok {
			members = append(members, profileOf(u))
		}
	}

	l := ledger.ComputeGroupLedger(group.Members, expenses, settlements)
	return &GroupView{
		Group:       group,
		Members:     members,
		Balances:    l.MemberBalances(),
		Expenses:    expenses,
		Settlements: settlements,
	}, nil
}

// CounterpartySummary is one entry of the dashboard's who-owes-whom lists.
type CounterpartySummary struct {
	UserProfile
	Amount float64 `json:"amount"`
}

// GroupSummary is one entry of the dashboard's per-group glance list.
type GroupSummary struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"` // the user's net position in the group
}

// DashboardView aggregates a user's personal position plus a per-group
// glance. Group balances are listed separately and never folded into the
// personal totals; a caller wanting one global number must sum them itself.
type DashboardView struct {
	YouOwe       float64               `json:"youOwe"`
	YouAreOwed   float64               `json:"youAreOwed"`
	TotalBalance float64               `json:"totalBalance"`
	OweList      []CounterpartySummary `json:"oweList"`
	OwedList     []CounterpartySummary `json:"owedList"`
	Groups       []GroupSummary        `json:"groups"`
}

// GetDashboard builds the dashboard for a user.
func (s *BalanceService) GetDashboard(ctx context.Context, userID string) (*DashboardView, error) {
	expenses, err := s.store.ListPersonalExpensesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.store.ListPersonalSettlementsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := ledger.ComputeDashboard(userID, expenses, settlements)

	ids := make([]string, 0, len(summary.ByCounterparty))
	for _, c := range summary.ByCounterparty {
		ids = append(ids, c.UserID)
	}
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	view := &DashboardView{
		YouOwe:       summary.YouOwe,
		YouAreOwed:   summary.YouAreOwed,
		TotalBalance: summary.TotalBalance,
	}
	for _, c := range summary.ByCounterparty {
		u, ok := users[c.UserID]
		if !ok {
			// A counterparty id that no longer resolves is a data-integrity
			// problem, not a zero balance.
			return nil, fmt.Errorf("counterparty %s: %w", c.UserID, storage.ErrNotFound)
		}
		entry := CounterpartySummary{UserProfile: profileOf(u)}
		if c.Net > 0 {
			entry.Amount = c.Net
			view.OwedList = append(view.OwedList, entry)
		} else {
			entry.Amount = -c.Net
			view.OweList = append(view.OweList, entry)
		}
	}

	groups, err := s.store.ListGroupsByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		groupExpenses, err := s.store.ListExpensesByGroup(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		groupSettlements, err := s.store.ListSettlementsByGroup(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		l := ledger.ComputeGroupLedger(g.Members, groupExpenses, groupSettlements)
		view.Groups = append(view.Groups, GroupSummary{
			ID:      g.ID,
			Name:    g.Name,
			Balance: l.TotalBalance(userID),
		})
	}

	return view, nil
}
