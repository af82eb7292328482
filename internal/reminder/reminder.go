// Package reminder sends periodic payment reminder emails to users with
// outstanding debts.
package reminder

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/splitq/splitq/internal/service"
)

// EmailSender delivers one rendered email. Implementations decide transport.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Result records the delivery outcome for one user. Err is nil on success.
type Result struct {
	UserID string
	Email  string
	Err    error
}

// Job builds and sends one round of payment reminders.
type Job struct {
	debts  *service.DebtService
	sender EmailSender
}

// NewJob creates a reminder job over the given debt source and sender.
func NewJob(debts *service.DebtService, sender EmailSender) *Job {
	return &Job{debts: debts, sender: sender}
}

// Run sends a reminder to every user who owes money and returns one result
// per user. A delivery failure for one user never blocks the rest; the error
// lands in that user's result.
func (j *Job) Run(ctx context.Context) ([]Result, error) {
	users, err := j.debts.UsersWithOutstandingDebts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load outstanding debts: %w", err)
	}

	results := make([]Result, 0, len(users))
	for _, u := range users {
		res := Result{UserID: u.UserID, Email: u.Email}
		res.Err = j.sender.Send(ctx, u.Email, "Payment reminder", renderBody(u))
		if res.Err != nil {
			slog.Warn("Reminder delivery failed", "user_id", u.UserID, "error", res.Err)
		}
		results = append(results, res)
	}

	sent := 0
	for _, r := range results {
		if r.Err == nil {
			sent++
		}
	}
	slog.Info("Reminder round finished", "reminded", len(results), "sent", sent)
	return results, nil
}

// renderBody renders the debt table for one user's reminder email.
func renderBody(u service.UserDebts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", html.EscapeString(u.Name))
	b.WriteString("<p>You have outstanding balances with:</p>")
	b.WriteString("<table><tr><th>Who</th><th>Amount</th><th>Since</th></tr>")
	for _, d := range u.Debts {
		since := time.UnixMilli(d.Since).UTC().Format("Jan 2, 2006")
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%.2f</td><td>%s</td></tr>",
			html.EscapeString(d.CreditorName), d.Amount, since)
	}
	b.WriteString("</table>")
	b.WriteString("<p>Settle up when you get a chance.</p>")
	return b.String()
}
