package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rms_backend/internal/models"
	"rms_backend/pkg/utils"
)

// LedgerRepository archives settled orders and expenses. It only writes;
// the in-memory state is never rebuilt from it.
type LedgerRepository interface {
	BeginTx(ctx context.Context) (*sql.Tx, error)
	InsertSettledOrder(ctx context.Context, executor SQLExecutor, ledger models.Ledger, order models.Order, settledAt time.Time) error
	InsertSettledOrderItem(ctx context.Context, executor SQLExecutor, orderID string, item models.OrderItem) error
	InsertExpense(ctx context.Context, executor SQLExecutor, expense models.Expense) error
	CountSettledOrders(ctx context.Context, ledger models.Ledger) (int, error)
}

type ledgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository creates a new instance of LedgerRepository.
func NewLedgerRepository(db *sql.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin transaction: %v", ErrDatabaseError, err)
	}
	return tx, nil
}

func (r *ledgerRepository) InsertSettledOrder(ctx context.Context, executor SQLExecutor, ledger models.Ledger, order models.Order, settledAt time.Time) error {
	query := `INSERT INTO settled_orders
	            (id, ledger, table_id, subtotal, tax, total, customer_name, customer_phone, created_at, settled_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := executor.ExecContext(ctx, query,
		order.ID, string(ledger), order.TableID, order.Subtotal, order.Tax, order.Total,
		utils.NewNullString(order.CustomerName), utils.NewNullString(order.CustomerPhone),
		order.CreatedAt, settledAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: settled order %s", ErrDuplicateKey, order.ID)
		}
		return fmt.Errorf("%w: inserting settled order %s: %v", ErrDatabaseError, order.ID, err)
	}
	return nil
}

func (r *ledgerRepository) InsertSettledOrderItem(ctx context.Context, executor SQLExecutor, orderID string, item models.OrderItem) error {
	query := `INSERT INTO settled_order_items (order_id, menu_item_id, name, category, price, quantity)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := executor.ExecContext(ctx, query, orderID, item.ID, item.Name, item.Category, item.Price, item.Quantity)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: item %s of order %s", ErrDuplicateKey, item.ID, orderID)
		}
		return fmt.Errorf("%w: inserting item %s of order %s: %v", ErrDatabaseError, item.ID, orderID, err)
	}
	return nil
}

func (r *ledgerRepository) InsertExpense(ctx context.Context, executor SQLExecutor, expense models.Expense) error {
	query := `INSERT INTO expenses_archive (id, description, amount, category, expense_date)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := executor.ExecContext(ctx, query,
		expense.ID, expense.Description, expense.Amount, string(expense.Category), expense.Date)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: expense %s", ErrDuplicateKey, expense.ID)
		}
		return fmt.Errorf("%w: inserting expense %s: %v", ErrDatabaseError, expense.ID, err)
	}
	return nil
}

func (r *ledgerRepository) CountSettledOrders(ctx context.Context, ledger models.Ledger) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM settled_orders WHERE ledger = $1`, string(ledger)).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: counting %s orders: %v", ErrDatabaseError, ledger, err)
	}
	return count, nil
}
