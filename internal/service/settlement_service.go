package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/splitq/splitq/internal/models"
	"github.com/splitq/splitq/internal/storage"
)

// SettlementService handles the settlement mutation boundary.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a SettlementService with the given storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// CreateSettlementInput carries the fields of a new settlement.
type CreateSettlementInput struct {
	Amount            float64  `json:"amount"`
	PaidBy            string   `json:"paidBy"`
	PaidTo            string   `json:"paidTo"`
	GroupID           string   `json:"groupId"`
	Note              string   `json:"note"`
	RelatedExpenseIDs []string `json:"relatedExpenseIds"`
}

// CreateSettlement validates and persists a direct payment between two users.
//
// The amount is deliberately NOT checked against the outstanding balance:
// over-settlement is allowed and simply moves the net to the other side.
func (s *SettlementService) CreateSettlement(ctx context.Context, actorID string, in CreateSettlementInput) (*models.Settlement, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidArgument)
	}
	if in.PaidBy == in.PaidTo {
		return nil, fmt.Errorf("%w: payer and receiver cannot be the same user", ErrInvalidArgument)
	}
	if actorID != in.PaidBy && actorID != in.PaidTo {
		return nil, fmt.Errorf("%w: must be either the payer or the receiver", ErrPermissionDenied)
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

	settlement := &models.Settlement{
		Amount:            in.Amount,
		PaidBy:            in.PaidBy,
		PaidTo:            in.PaidTo,
		GroupID:           in.GroupID,
		Note:              in.Note,
		RelatedExpenseIDs: in.RelatedExpenseIDs,
		CreatedBy:         actorID,
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, err
	}

	slog.Info("Settlement created",
		"settlement_id", settlement.ID, "amount", settlement.Amount,
		"paid_by", settlement.PaidBy, "paid_to", settlement.PaidTo,
	)
	return settlement, nil
}

// DeleteSettlement removes a settlement. Only its creator or its payer may
// delete it.
func (s *SettlementService) DeleteSettlement(ctx context.Context, actorID, settlementID string) error {
	settlement, err := s.store.GetSettlement(ctx, settlementID)
	if err != nil {
		return err
	}
	if settlement.CreatedBy != actorID && settlement.PaidBy != actorID {
		return fmt.Errorf("%w: only the creator or payer can delete a settlement", ErrPermissionDenied)
	}

	if err := s.store.DeleteSettlement(ctx, settlementID); err != nil {
		return err
	}
	slog.Info("Settlement deleted", "settlement_id", settlementID, "actor", actorID)
	return nil
}
