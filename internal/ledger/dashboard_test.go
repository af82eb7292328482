package ledger

import (
	"math"
	"testing"

	"github.com/splitq/splitq/internal/models"
)

func TestComputeDashboard(t *testing.T) {
	tests := []struct {
		name        string
		expenses    []*models.Expense
		settlements []*models.Settlement
		validate    func(t *testing.T, s DashboardSummary)
	}{
		{
			name: "owed and owing across two counterparties",
			expenses: []*models.Expense{
				expense("me", 30, "",
					models.Split{UserID: "me", Amount: 10},
					models.Split{UserID: "bob", Amount: 10},
					models.Split{UserID: "carol", Amount: 10},
				),
				expense("bob", 16, "",
					models.Split{UserID: "me", Amount: 8},
					models.Split{UserID: "bob", Amount: 8},
				),
			},
			validate: func(t *testing.T, s DashboardSummary) {
				if math.Abs(s.YouAreOwed-20) > 1e-9 {
					t.Errorf("YouAreOwed = %v, want 20", s.YouAreOwed)
				}
				if math.Abs(s.YouOwe-8) > 1e-9 {
					t.Errorf("YouOwe = %v, want 8", s.YouOwe)
				}
				if math.Abs(s.TotalBalance-12) > 1e-9 {
					t.Errorf("TotalBalance = %v, want 12", s.TotalBalance)
				}
				if len(s.ByCounterparty) != 2 {
					t.Fatalf("got %d counterparties, want 2", len(s.ByCounterparty))
				}
				// Sorted by user id: bob before carol.
				if s.ByCounterparty[0].UserID != "bob" || math.Abs(s.ByCounterparty[0].Net-2) > 1e-9 {
					t.Errorf("bob net = %+v, want +2", s.ByCounterparty[0])
				}
				if s.ByCounterparty[1].UserID != "carol" || math.Abs(s.ByCounterparty[1].Net-10) > 1e-9 {
					t.Errorf("carol net = %+v, want +10", s.ByCounterparty[1])
				}
			},
		},
		{
			name: "group records are excluded from the personal dashboard",
			expenses: []*models.Expense{
				expense("me", 100, "trip",
					models.Split{UserID: "bob", Amount: 100},
				),
			},
			settlements: []*models.Settlement{
				settlement("bob", "me", 40, "trip"),
			},
			validate: func(t *testing.T, s DashboardSummary) {
				if s.YouAreOwed != 0 || s.YouOwe != 0 || len(s.ByCounterparty) != 0 {
					t.Errorf("group records leaked into personal summary: %+v", s)
				}
			},
		},
		{
			name: "settled counterparty is omitted",
			expenses: []*models.Expense{
				expense("me", 20, "",
					models.Split{UserID: "me", Amount: 10},
					models.Split{UserID: "bob", Amount: 10},
				),
			},
			settlements: []*models.Settlement{
				settlement("bob", "me", 10, ""),
			},
			validate: func(t *testing.T, s DashboardSummary) {
				if s.TotalBalance != 0 {
					t.Errorf("TotalBalance = %v, want 0", s.TotalBalance)
				}
				if len(s.ByCounterparty) != 0 {
					t.Errorf("settled counterparty still listed: %+v", s.ByCounterparty)
				}
			},
		},
		{
			name: "paid splits do not inflate what the user is owed",
			expenses: []*models.Expense{
				expense("me", 30, "",
					models.Split{UserID: "bob", Amount: 15, Paid: true},
					models.Split{UserID: "carol", Amount: 15},
				),
			},
			validate: func(t *testing.T, s DashboardSummary) {
				if math.Abs(s.YouAreOwed-15) > 1e-9 {
					t.Errorf("YouAreOwed = %v, want 15", s.YouAreOwed)
				}
				if len(s.ByCounterparty) != 1 || s.ByCounterparty[0].UserID != "carol" {
					t.Errorf("ByCounterparty = %+v, want only carol", s.ByCounterparty)
				}
			},
		},
		{
			name: "expenses not involving the user are ignored",
			expenses: []*models.Expense{
				expense("bob", 60, "",
					models.Split{UserID: "carol", Amount: 30},
					models.Split{UserID: "dave", Amount: 30},
				),
			},
			validate: func(t *testing.T, s DashboardSummary) {
				if s.TotalBalance != 0 || len(s.ByCounterparty) != 0 {
					t.Errorf("uninvolved expense counted: %+v", s)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, ComputeDashboard("me", tt.expenses, tt.settlements))
		})
	}
}

func TestComputeDashboardIdempotent(t *testing.T) {
	expenses := []*models.Expense{
		expense("me", 30, "",
			models.Split{UserID: "bob", Amount: 15},
			models.Split{UserID: "me", Amount: 15},
		),
	}
	settlements := []*models.Settlement{settlement("bob", "me", 5, "")}

	first := ComputeDashboard("me", expenses, settlements)
	second := ComputeDashboard("me", expenses, settlements)

	if first.TotalBalance != second.TotalBalance || len(first.ByCounterparty) != len(second.ByCounterparty) {
		t.Errorf("recomputation diverged: %+v vs %+v", first, second)
	}
	for i := range first.ByCounterparty {
		if first.ByCounterparty[i] != second.ByCounterparty[i] {
			t.Errorf("counterparty %d diverged: %+v vs %+v", i, first.ByCounterparty[i], second.ByCounterparty[i])
		}
	}
}
