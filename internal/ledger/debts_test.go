package ledger

import (
	"math"
	"testing"

	"github.com/splitq/splitq/internal/models"
)

func datedExpense(payer string, date int64, splits ...models.Split) *models.Expense {
	var total float64
	for _, s := range splits {
		total += s.Amount
	}
	e := expense(payer, total, "", splits...)
	e.Date = date
	return e
}

func TestOutstandingDebts(t *testing.T) {
	tests := []struct {
		name        string
		expenses    []*models.Expense
		settlements []*models.Settlement
		want        []OutstandingDebt
	}{
		{
			name: "owes one counterparty with earliest date",
			expenses: []*models.Expense{
				datedExpense("bob", 2000, models.Split{UserID: "me", Amount: 10}),
				datedExpense("bob", 1000, models.Split{UserID: "me", Amount: 5}),
			},
			want: []OutstandingDebt{{CreditorID: "bob", Amount: 15, Since: 1000}},
		},
		{
			name: "fully settled user emits nothing",
			expenses: []*models.Expense{
				datedExpense("bob", 1000, models.Split{UserID: "me", Amount: 10}),
			},
			settlements: []*models.Settlement{
				settlement("me", "bob", 10, ""),
			},
			want: nil,
		},
		{
			name: "counterparty the user is owed by emits nothing",
			expenses: []*models.Expense{
				datedExpense("me", 1000, models.Split{UserID: "bob", Amount: 25}),
			},
			want: nil,
		},
		{
			name: "credits offset debts per counterparty",
			expenses: []*models.Expense{
				datedExpense("bob", 1000, models.Split{UserID: "me", Amount: 20}),
				datedExpense("me", 2000, models.Split{UserID: "bob", Amount: 8}),
			},
			want: []OutstandingDebt{{CreditorID: "bob", Amount: 12, Since: 1000}},
		},
		{
			name: "paid splits never become reminder debt",
			expenses: []*models.Expense{
				datedExpense("bob", 1000, models.Split{UserID: "me", Amount: 10, Paid: true}),
			},
			want: nil,
		},
		{
			name: "group records are out of reminder scope",
			expenses: []*models.Expense{
				func() *models.Expense {
					e := datedExpense("bob", 1000, models.Split{UserID: "me", Amount: 10})
					e.GroupID = "trip"
					return e
				}(),
			},
			want: nil,
		},
		{
			name: "settlement without expense history creates no entry",
			settlements: []*models.Settlement{
				settlement("bob", "me", 30, ""),
			},
			want: nil,
		},
		{
			name: "incoming settlement revives a debt",
			expenses: []*models.Expense{
				datedExpense("bob", 1000, models.Split{UserID: "me", Amount: 10}),
			},
			settlements: []*models.Settlement{
				settlement("me", "bob", 10, ""),
				settlement("bob", "me", 4, ""),
			},
			want: nil, // the first settlement zeroed and dropped the entry
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OutstandingDebts("me", tt.expenses, tt.settlements)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d debts (%+v), want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i].CreditorID != tt.want[i].CreditorID ||
					math.Abs(got[i].Amount-tt.want[i].Amount) > 1e-9 ||
					got[i].Since != tt.want[i].Since {
					t.Errorf("debt %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestOutstandingDebtsMultipleCreditors(t *testing.T) {
	expenses := []*models.Expense{
		datedExpense("bob", 3000, models.Split{UserID: "me", Amount: 12}),
		datedExpense("carol", 1500, models.Split{UserID: "me", Amount: 7}),
	}

	debts := OutstandingDebts("me", expenses, nil)
	if len(debts) != 2 {
		t.Fatalf("got %d debts, want 2", len(debts))
	}
	// Sorted by creditor id for deterministic reminder output.
	if debts[0].CreditorID != "bob" || debts[1].CreditorID != "carol" {
		t.Errorf("unexpected order: %+v", debts)
	}
	if debts[1].Since != 1500 {
		t.Errorf("carol since = %d, want 1500", debts[1].Since)
	}
}
