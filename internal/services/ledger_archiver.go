package services

import (
	"context"
	"fmt"

	"rms_backend/internal/events"
	"rms_backend/internal/models"
	"rms_backend/internal/repositories"
)

// LedgerArchiver is an event sink that copies settled orders and expenses
// into PostgreSQL. Nothing reads the archive back into the state.
type LedgerArchiver struct {
	repo repositories.LedgerRepository
}

func NewLedgerArchiver(repo repositories.LedgerRepository) *LedgerArchiver {
	return &LedgerArchiver{repo: repo}
}

func (a *LedgerArchiver) Name() string { return "postgres-ledger" }

func (a *LedgerArchiver) Handle(ctx context.Context, e events.Event) error {
	tx, err := a.repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback() // Rollback if not committed

	switch e.Type {
	case events.OrderFinalized, events.OrderCredited:
		if e.Order == nil {
			return fmt.Errorf("event %s carries no order", e.ID)
		}
		ledger := models.LedgerCompleted
		if e.Type == events.OrderCredited {
			ledger = models.LedgerCredit
		}
		if err := a.repo.InsertSettledOrder(ctx, tx, ledger, *e.Order, e.OccurredAt); err != nil {
			return err
		}
		for _, item := range e.Order.Items {
			if err := a.repo.InsertSettledOrderItem(ctx, tx, e.Order.ID, item); err != nil {
				return err
			}
		}
	case events.ExpenseRecorded:
		if e.Expense == nil {
			return fmt.Errorf("event %s carries no expense", e.ID)
		}
		if err := a.repo.InsertExpense(ctx, tx, *e.Expense); err != nil {
			return err
		}
	default:
		return nil
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit archive of %s: %v", repositories.ErrDatabaseError, e.ID, err)
	}
	return nil
}
