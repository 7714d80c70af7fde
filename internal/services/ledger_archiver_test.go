package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"rms_backend/internal/events"
	"rms_backend/internal/models"
	"rms_backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArchiver(t *testing.T) (*LedgerArchiver, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewLedgerArchiver(repositories.NewLedgerRepository(db)), mock
}

func TestLedgerArchiverOrder(t *testing.T) {
	archiver, mock := newTestArchiver(t)
	order := models.Order{
		ID: "order-1", TableID: 2, Subtotal: 458, Tax: 82.44, Total: 540.44,
		Items: []models.OrderItem{
			{MenuItem: models.MenuItem{ID: "app002", Name: "Garlic Bread", Category: "Appetizers", Price: 229}, Quantity: 2},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO settled_orders")).
		WithArgs("order-1", "credit", int64(2), 458.0, 82.44, 540.44, nil, nil, sqlmock.AnyArg(), testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO settled_order_items")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := archiver.Handle(context.Background(), events.Event{ID: "e1", Type: events.OrderCredited, OccurredAt: testNow, Order: &order})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerArchiverRollsBackOnFailure(t *testing.T) {
	archiver, mock := newTestArchiver(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO expenses_archive")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := archiver.Handle(context.Background(), events.Event{
		ID: "e2", Type: events.ExpenseRecorded,
		Expense: &models.Expense{ID: "exp-3", Description: "Gas", Amount: 900, Category: models.ExpenseCategoryUtilities, Date: testNow},
	})
	assert.ErrorIs(t, err, repositories.ErrDatabaseError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerArchiverRejectsEmptyEvent(t *testing.T) {
	archiver, mock := newTestArchiver(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := archiver.Handle(context.Background(), events.Event{ID: "e3", Type: events.OrderFinalized})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
