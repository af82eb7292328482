package service

import (
	"context"
	"log/slog"

	"github.com/splitq/splitq/internal/ledger"
	"github.com/splitq/splitq/internal/storage"
)

// DebtService is the read path behind the payment reminder job: for every
// user, the counterparties they still owe and since when.
type DebtService struct {
	store storage.Store
}

// NewDebtService creates a DebtService with the given storage backend.
func NewDebtService(store storage.Store) *DebtService {
	return &DebtService{store: store}
}

// Debt is one outstanding obligation toward a named creditor.
type Debt struct {
	CreditorID   string  `json:"creditorId"`
	CreditorName string  `json:"creditorName"`
	Amount       float64 `json:"amount"`
	Since        int64   `json:"since"` // Unix ms of the earliest unpaid expense
}

// UserDebts lists one user's outstanding personal debts.
type UserDebts struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Debts  []Debt `json:"debts"`
}

// UsersWithOutstandingDebts walks every user's personal ledger and returns an
// entry per user who owes money, omitting users who owe nothing. Group debts
// are out of reminder scope.
func (s *DebtService) UsersWithOutstandingDebts(ctx context.Context) ([]UserDebts, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.ListPersonalExpenses(ctx)
	if err != nil {
		return nil, err
	}
	settlements, err := s.store.ListPersonalSettlements(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.DisplayName
	}

	var result []UserDebts
	for _, u := range users {
		outstanding := ledger.OutstandingDebts(u.ID, expenses, settlements)
		if len(outstanding) == 0 {
			continue
		}

		entry := UserDebts{UserID: u.ID, Name: u.DisplayName, Email: u.Email}
		for _, d := range outstanding {
			entry.Debts = append(entry.Debts, Debt{
				CreditorID:   d.CreditorID,
				CreditorName: names[d.CreditorID],
				Amount:       d.Amount,
				Since:        d.Since,
			})
		}
		result = append(result, entry)
	}

	slog.Debug("Outstanding debts computed", "users_total", len(users), "users_in_debt", len(result))
	return result, nil
}
