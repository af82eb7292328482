package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitq/splitq/internal/ledger"
	"github.com/splitq/splitq/internal/models"
	"github.com/splitq/splitq/internal/storage"
	"github.com/splitq/splitq/internal/storage/sqlite"
)

type fixture struct {
	store       *sqlite.SQLiteStore
	balances    *BalanceService
	debts       *DebtService
	expenses    *ExpenseService
	settlements *SettlementService
	groups      *GroupService
	contacts    *ContactService
	spending    *SpendingService

	alice, bob, carol *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitq-service-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	f := &fixture{
		store:       store,
		balances:    NewBalanceService(store),
		debts:       NewDebtService(store),
		expenses:    NewExpenseService(store),
		settlements: NewSettlementService(store),
		groups:      NewGroupService(store),
		contacts:    NewContactService(store),
		spending:    NewSpendingService(store),
	}

	ctx := context.Background()
	f.alice = models.NewUser("alice@example.com", "Alice", "hash")
	f.bob = models.NewUser("bob@example.com", "Bob", "hash")
	f.carol = models.NewUser("carol@example.com", "Carol", "hash")
	for _, u := range []*models.User{f.alice, f.bob, f.carol} {
		require.NoError(t, store.CreateUser(ctx, u))
	}
	return f
}

func (f *fixture) addExpense(t *testing.T, payer *models.User, groupID string, date int64, splits ...models.Split) *models.Expense {
	t.Helper()
	var total float64
	for _, s := range splits {
		total += s.Amount
	}
	expense, err := f.expenses.CreateExpense(context.Background(), payer.ID, CreateExpenseInput{
		Description: "test expense",
		Amount:      total,
		Date:        date,
		PaidBy:      payer.ID,
		SplitType:   "exact",
		Splits:      splits,
		GroupID:     groupID,
	})
	require.NoError(t, err)
	return expense
}

func TestPairBalanceLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Alice pays $30 for a meal split equally with Bob.
	f.addExpense(t, f.alice, "", 1000,
		models.Split{UserID: f.alice.ID, Amount: 15},
		models.Split{UserID: f.bob.ID, Amount: 15},
	)

	view, err := f.balances.GetPairBalance(ctx, f.alice.ID, f.bob.ID, ledger.PersonalScope())
	require.NoError(t, err)
	assert.InDelta(t, 15, view.Balance, 1e-9)
	assert.Equal(t, "Bob", view.Counterpart.Name)
	assert.Len(t, view.Expenses, 1)

	// Antisymmetry from Bob's perspective.
	flipped, err := f.balances.GetPairBalance(ctx, f.bob.ID, f.alice.ID, ledger.PersonalScope())
	require.NoError(t, err)
	assert.InDelta(t, -15, flipped.Balance, 1e-9)

	// Bob settles in full; the pair nets to zero.
	_, err = f.settlements.CreateSettlement(ctx, f.bob.ID, CreateSettlementInput{
		Amount: 15,
		PaidBy: f.bob.ID,
		PaidTo: f.alice.ID,
	})
	require.NoError(t, err)

	view, err = f.balances.GetPairBalance(ctx, f.alice.ID, f.bob.ID, ledger.PersonalScope())
	require.NoError(t, err)
	assert.InDelta(t, 0, view.Balance, 1e-9)
	assert.Len(t, view.Settlements, 1)
}

func TestPairBalanceErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.balances.GetPairBalance(ctx, f.alice.ID, f.alice.ID, ledger.PersonalScope())
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.balances.GetPairBalance(ctx, f.alice.ID, "ghost", ledger.PersonalScope())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPairBalanceExcludesUninvolvedExpense(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Alice pays but only Carol has a split; the pair (Alice, Bob) must not
	// see this expense at all.
	f.addExpense(t, f.alice, "", 1000,
		models.Split{UserID: f.carol.ID, Amount: 40},
	)

	view, err := f.balances.GetPairBalance(ctx, f.alice.ID, f.bob.ID, ledger.PersonalScope())
	require.NoError(t, err)
	assert.Zero(t, view.Balance)
	assert.Empty(t, view.Expenses)
}

func TestGroupView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	group, err := f.groups.CreateGroup(ctx, f.alice.ID, CreateGroupInput{
		Name:    "Trip",
		Members: []string{f.bob.ID},
	})
	require.NoError(t, err)

	// Bob owes Alice 20 and Alice owes Bob 5; the ledger normalizes to one
	// direction carrying 15.
	f.addExpense(t, f.alice, group.ID, 1000, models.Split{UserID: f.bob.ID, Amount: 20})
	f.addExpense(t, f.bob, group.ID, 2000, models.Split{UserID: f.alice.ID, Amount: 5})

	view, err := f.balances.GetGroupView(ctx, f.alice.ID, group.ID)
	require.NoError(t, err)
	assert.Len(t, view.Members, 2)
	assert.Len(t, view.Expenses, 2)

	byID := make(map[string]ledger.MemberBalance)
	for _, b := range view.Balances {
		byID[b.UserID] = b
	}
	require.Len(t, byID[f.bob.ID].Owes, 1)
	assert.InDelta(t, 15, byID[f.bob.ID].Owes[0].Amount, 1e-9)
	assert.Empty(t, byID[f.alice.ID].Owes)
	assert.InDelta(t, 15, byID[f.alice.ID].TotalBalance, 1e-9)

	// Zero-sum across all members.
	var sum float64
	for _, b := range view.Balances {
		sum += b.TotalBalance
	}
	assert.InDelta(t, 0, sum, 1e-9)

	// Carol is not a member.
	_, err = f.balances.GetGroupView(ctx, f.carol.ID, group.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Personal: Bob owes Alice 10, Alice owes Carol 7.
	f.addExpense(t, f.alice, "", 1000,
		models.Split{UserID: f.alice.ID, Amount: 10},
		models.Split{UserID: f.bob.ID, Amount: 10},
	)
	f.addExpense(t, f.carol, "", 2000,
		models.Split{UserID: f.carol.ID, Amount: 7},
		models.Split{UserID: f.alice.ID, Amount: 7},
	)

	// Group records must not leak into the personal totals.
	group, err := f.groups.CreateGroup(ctx, f.alice.ID, CreateGroupInput{
		Name:    "Trip",
		Members: []string{f.bob.ID},
	})
	require.NoError(t, err)
	f.addExpense(t, f.alice, group.ID, 3000, models.Split{UserID: f.bob.ID, Amount: 100})

	view, err := f.balances.GetDashboard(ctx, f.alice.ID)
	require.NoError(t, err)
	assert.InDelta(t, 10, view.YouAreOwed, 1e-9)
	assert.InDelta(t, 7, view.YouOwe, 1e-9)
	assert.InDelta(t, 3, view.TotalBalance, 1e-9)

	require.Len(t, view.OwedList, 1)
	assert.Equal(t, "Bob", view.OwedList[0].Name)
	assert.InDelta(t, 10, view.OwedList[0].Amount, 1e-9)
	require.Len(t, view.OweList, 1)
	assert.Equal(t, "Carol", view.OweList[0].Name)

	// The group surfaces separately with Alice's net position.
	require.Len(t, view.Groups, 1)
	assert.Equal(t, "Trip", view.Groups[0].Name)
	assert.InDelta(t, 100, view.Groups[0].Balance, 1e-9)
}

func TestCreateExpenseValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.expenses.CreateExpense(ctx, f.alice.ID, CreateExpenseInput{
		Amount: 30,
		PaidBy: f.alice.ID,
		Splits: []models.Split{
			{UserID: f.alice.ID, Amount: 15},
			{UserID: f.bob.ID, Amount: 10},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidArgument, "splits off by 5 must be rejected")

	// Within tolerance: 5.004 + 4.996 = 10.00.
	expense, err := f.expenses.CreateExpense(ctx, f.alice.ID, CreateExpenseInput{
		Amount: 10.00,
		PaidBy: f.alice.ID,
		Splits: []models.Split{
			{UserID: f.alice.ID, Amount: 5.004},
			{UserID: f.bob.ID, Amount: 4.996},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryOther, expense.Category, "category defaults")

	_, err = f.expenses.CreateExpense(ctx, f.alice.ID, CreateExpenseInput{
		Amount: -5,
		PaidBy: f.alice.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.expenses.CreateExpense(ctx, f.alice.ID, CreateExpenseInput{
		Amount:  10,
		PaidBy:  f.alice.ID,
		GroupID: "ghost",
		Splits:  []models.Split{{UserID: f.bob.ID, Amount: 10}},
	})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteExpenseAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	expense := f.addExpense(t, f.alice, "", 1000,
		models.Split{UserID: f.bob.ID, Amount: 20},
	)

	err := f.expenses.DeleteExpense(ctx, f.carol.ID, expense.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, f.expenses.DeleteExpense(ctx, f.alice.ID, expense.ID))

	err = f.expenses.DeleteExpense(ctx, f.alice.ID, expense.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreateSettlementValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.settlements.CreateSettlement(ctx, f.alice.ID, CreateSettlementInput{
		Amount: 10, PaidBy: f.alice.ID, PaidTo: f.alice.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidArgument, "self-settlement")

	_, err = f.settlements.CreateSettlement(ctx, f.alice.ID, CreateSettlementInput{
		Amount: 0, PaidBy: f.alice.ID, PaidTo: f.bob.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidArgument, "non-positive amount")

	_, err = f.settlements.CreateSettlement(ctx, f.carol.ID, CreateSettlementInput{
		Amount: 10, PaidBy: f.alice.ID, PaidTo: f.bob.ID,
	})
	assert.ErrorIs(t, err, ErrPermissionDenied, "actor must be a party")
}

func TestCreateGroupMembers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	group, err := f.groups.CreateGroup(ctx, f.alice.ID, CreateGroupInput{
		Name: "Roommates",
		// Duplicates and the creator herself; both must collapse.
		Members: []string{f.bob.ID, f.bob.ID, f.alice.ID},
	})
	require.NoError(t, err)
	assert.Len(t, group.Members, 2)
	assert.True(t, group.HasMember(f.alice.ID))
	assert.True(t, group.HasMember(f.bob.ID))

	_, err = f.groups.CreateGroup(ctx, f.alice.ID, CreateGroupInput{
		Name:    "Ghosts",
		Members: []string{"no-such-user"},
	})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = f.groups.CreateGroup(ctx, f.alice.ID, CreateGroupInput{Name: ""})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestOutstandingDebtReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Bob owes Alice 12 since t=1000; Carol owes nobody.
	f.addExpense(t, f.alice, "", 1000,
		models.Split{UserID: f.bob.ID, Amount: 12},
	)
	f.addExpense(t, f.alice, "", 2000,
		models.Split{UserID: f.carol.ID, Amount: 5},
	)
	_, err := f.settlements.CreateSettlement(ctx, f.carol.ID, CreateSettlementInput{
		Amount: 5, PaidBy: f.carol.ID, PaidTo: f.alice.ID,
	})
	require.NoError(t, err)

	report, err := f.debts.UsersWithOutstandingDebts(ctx)
	require.NoError(t, err)
	require.Len(t, report, 1, "only Bob still owes")

	assert.Equal(t, f.bob.ID, report[0].UserID)
	require.Len(t, report[0].Debts, 1)
	assert.Equal(t, "Alice", report[0].Debts[0].CreditorName)
	assert.InDelta(t, 12, report[0].Debts[0].Amount, 1e-9)
	assert.EqualValues(t, 1000, report[0].Debts[0].Since)
}

func TestContacts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addExpense(t, f.alice, "", 1000,
		models.Split{UserID: f.bob.ID, Amount: 10},
	)
	f.addExpense(t, f.carol, "", 2000,
		models.Split{UserID: f.alice.ID, Amount: 5},
	)
	group, err := f.groups.CreateGroup(ctx, f.alice.ID, CreateGroupInput{Name: "Trip"})
	require.NoError(t, err)

	contacts, err := f.contacts.GetContacts(ctx, f.alice.ID)
	require.NoError(t, err)

	require.Len(t, contacts.Users, 2)
	assert.Equal(t, "Bob", contacts.Users[0].Name)
	assert.Equal(t, "Carol", contacts.Users[1].Name)
	require.Len(t, contacts.Groups, 1)
	assert.Equal(t, group.ID, contacts.Groups[0].ID)
}

func TestSpendingCurrentYear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	f.spending.now = func() time.Time { return now }

	march := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC).UnixMilli()
	june := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	lastYear := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC).UnixMilli()

	f.addExpense(t, f.alice, "", march,
		models.Split{UserID: f.alice.ID, Amount: 20},
		models.Split{UserID: f.bob.ID, Amount: 20},
	)
	f.addExpense(t, f.bob, "", june,
		models.Split{UserID: f.alice.ID, Amount: 8},
		models.Split{UserID: f.bob.ID, Amount: 8},
	)
	f.addExpense(t, f.alice, "", lastYear,
		models.Split{UserID: f.alice.ID, Amount: 100},
	)

	summary, err := f.spending.CurrentYear(ctx, f.alice.ID)
	require.NoError(t, err)

	assert.InDelta(t, 28, summary.TotalSpent, 1e-9, "own shares only, current year only")
	require.Len(t, summary.Monthly, 12)
	assert.InDelta(t, 20, summary.Monthly[2].Total, 1e-9, "March")
	assert.InDelta(t, 8, summary.Monthly[5].Total, 1e-9, "June")
	assert.Zero(t, summary.Monthly[0].Total, "January untouched")
}
