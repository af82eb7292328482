package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/splitq/splitq/internal/models"
	"github.com/splitq/splitq/internal/storage"
)

// ExpenseService handles the expense mutation boundary. Validation happens
// here, before records reach storage; the balance engine trusts stored data.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates an ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpenseInput carries the fields of a new expense. ActorID is the
// authenticated user recording it, which may differ from the payer.
type CreateExpenseInput struct {
	Description string         `json:"description"`
	Amount      float64        `json:"amount"`
	Date        int64          `json:"date"`
	Category    string         `json:"category"`
	PaidBy      string         `json:"paidBy"`
	SplitType   string         `json:"splitType"`
	Splits      []models.Split `json:"splits"`
	GroupID     string         `json:"groupId"`
}

// CreateExpense validates and persists a new expense.
//
// The split amounts must add up to the expense amount within
// models.SplitTolerance; group expenses require the actor to be a member.
func (s *ExpenseService) CreateExpense(ctx context.Context, actorID string, in CreateExpenseInput) (*models.Expense, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidArgument)
	}
	if in.PaidBy == "" {
		return nil, fmt.Errorf("%w: payer required", ErrInvalidArgument)
	}

	var splitTotal float64
	for _, split := range in.Splits {
		if split.Amount < 0 {
			return nil, fmt.Errorf("%w: split amounts cannot be negative", ErrInvalidArgument)
		}
		splitTotal += split.Amount
	}
	if math.Abs(splitTotal-in.Amount) > models.SplitTolerance {
		return nil, fmt.Errorf("%w: split amounts must add up to the expense amount", ErrInvalidArgument)
	}

	if in.GroupID != "" {
		group, err := s.store.GetGroup(ctx, in.GroupID)
		if err != nil {
			return nil, err
		}
		if !group.HasMember(actorID) {
			return nil, fmt.Errorf("%w: not a member of group %s", ErrPermissionDenied, in.GroupID)
		}
	}

	expense := &models.Expense{
		Description: in.Description,
		Amount:      in.Amount,
		Date:        in.Date,
		Category:    models.DefaultCategory(in.Category),
		PaidBy:      in.PaidBy,
		SplitType:   in.SplitType,
		Splits:      in.Splits,
		GroupID:     in.GroupID,
		CreatedBy:   actorID,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}

	slog.Info("Expense created",
		"expense_id", expense.ID, "amount", expense.Amount,
		"paid_by", expense.PaidBy, "group_id", expense.GroupID,
	)
	return expense, nil
}

// DeleteExpense removes an expense. Only its creator or its payer may delete
// it; the linked settlements keep their history.
func (s *ExpenseService) DeleteExpense(ctx context.Context, actorID, expenseID string) error {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense.CreatedBy != actorID && expense.PaidBy != actorID {
		return fmt.Errorf("%w: only the creator or payer can delete an expense", ErrPermissionDenied)
	}

	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		return err
	}
	slog.Info("Expense deleted", "expense_id", expenseID, "actor", actorID)
	return nil
}
