package service

import (
	"context"
	"time"

	"github.com/splitq/splitq/internal/storage"
)

// SpendingService summarizes what a user personally spent, meaning their own
// share of each expense they participated in, across all scopes. This is a
// spending report, not a debt view: paid and unpaid shares both count.
type SpendingService struct {
	store storage.Store
	now   func() time.Time
}

// NewSpendingService creates a SpendingService with the given storage backend.
func NewSpendingService(store storage.Store) *SpendingService {
	return &SpendingService{store: store, now: time.Now}
}

// MonthlyTotal is one month's spending, keyed by the month's first instant.
type MonthlyTotal struct {
	Month int64   `json:"month"` // Unix ms of the first day of the month
	Total float64 `json:"total"`
}

// YearSummary is the current year's spending breakdown for one user.
type YearSummary struct {
	TotalSpent float64        `json:"totalSpent"`
	Monthly    []MonthlyTotal `json:"monthly"`
}

// CurrentYear computes the user's share totals since January 1 of the current
// year, with one bucket per month. Months with no spending appear as zero so
// charts don't have holes.
func (s *SpendingService) CurrentYear(ctx context.Context, userID string) (*YearSummary, error) {
	year := s.now().Year()
	startOfYear := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

	expenses, err := s.store.ListExpensesByParticipant(ctx, userID, startOfYear.UnixMilli())
	if err != nil {
		return nil, err
	}

	summary := &YearSummary{Monthly: make([]MonthlyTotal, 12)}
	for i := range summary.Monthly {
		summary.Monthly[i].Month = time.Date(year, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	}

	for _, e := range expenses {
		split := e.SplitFor(userID)
		if split == nil {
			continue
		}
		month := time.UnixMilli(e.Date).UTC().Month()
		summary.Monthly[int(month)-1].Total += split.Amount
		summary.TotalSpent += split.Amount
	}

	return summary, nil
}
