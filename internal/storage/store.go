// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/splitq/splitq/internal/models"
)

// ErrNotFound is returned when a referenced record does not exist. Callers
// must treat it as distinct from an empty result: a missing financial
// identity is an error, never a zero balance.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence operations Splitq needs. The balance engine
// only ever reads through this interface; a consistent read of the listed
// collections is the storage implementation's responsibility.
//
// "Personal" list operations return records with no group id; group-scoped
// operations filter on one group id. The two sets never overlap.
type Store interface {
	// CreateUser persists a new user record.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by id. Returns ErrNotFound when missing.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail retrieves a user by email. Returns ErrNotFound when missing.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUsersByIDs retrieves users keyed by id; missing ids are omitted.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// ListUsers returns every registered user.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// CreateExpense persists a new expense with its splits, assigning an id
	// and creation timestamp when unset.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by id. Returns ErrNotFound when missing.
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// DeleteExpense removes an expense and its splits.
	DeleteExpense(ctx context.Context, id string) error

	// ListPersonalExpenses returns all non-group expenses.
	ListPersonalExpenses(ctx context.Context) ([]*models.Expense, error)

	// ListPersonalExpensesByUser returns non-group expenses the user is
	// involved in, as payer or split participant.
	ListPersonalExpensesByUser(ctx context.Context, userID string) ([]*models.Expense, error)

	// ListExpensesByGroup returns the expenses of one group.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// ListExpensesByParticipant returns every expense, across all scopes,
	// that the user is involved in and that falls on or after the given
	// Unix millisecond timestamp.
	ListExpensesByParticipant(ctx context.Context, userID string, since int64) ([]*models.Expense, error)

	// CreateSettlement persists a new settlement, assigning an id and
	// creation timestamp when unset.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// GetSettlement retrieves a settlement by id. Returns ErrNotFound when missing.
	GetSettlement(ctx context.Context, id string) (*models.Settlement, error)

	// DeleteSettlement removes a settlement.
	DeleteSettlement(ctx context.Context, id string) error

	// ListPersonalSettlements returns all non-group settlements.
	ListPersonalSettlements(ctx context.Context) ([]*models.Settlement, error)

	// ListSettlementsBetween returns non-group settlements between two users,
	// in either direction.
	ListSettlementsBetween(ctx context.Context, userA, userB string) ([]*models.Settlement, error)

	// ListPersonalSettlementsByUser returns non-group settlements where the
	// user is payer or payee.
	ListPersonalSettlementsByUser(ctx context.Context, userID string) ([]*models.Settlement, error)

	// ListSettlementsByGroup returns the settlements of one group.
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// CreateGroup persists a new group with its member set.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by id. Returns ErrNotFound when missing.
	GetGroup(ctx context.Context, id string) (*models.Group, error)

	// ListGroupsByMember returns every group the user belongs to.
	ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)

	// Close releases any resources held by the store.
	Close() error
}
