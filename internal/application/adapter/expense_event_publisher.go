// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCommittedEvent is published after an expense is committed to the
// ledger so that budget evaluation can recompute spend against limits.
type ExpenseCommittedEvent struct {
	ExpenseID          string          `json:"expense_id"`
	UserID             string          `json:"user_id"`
	RecurringExpenseID string          `json:"recurring_expense_id,omitempty"`
	Source             string          `json:"source"`
	Category           string          `json:"category,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	Date               string          `json:"date"`
	OccurredAt         time.Time       `json:"occurred_at"`
}

// ExpenseEventPublisher publishes ledger events.
type ExpenseEventPublisher interface {
	// PublishExpenseCommitted publishes a committed expense event.
	PublishExpenseCommitted(ctx context.Context, event ExpenseCommittedEvent) error
}
