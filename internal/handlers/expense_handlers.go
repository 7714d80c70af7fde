package handlers

import (
	"net/http"

	"rms_backend/internal/services"
	"rms_backend/internal/state"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler serves the expense book.
type ExpenseHandler struct {
	dispatcher services.DispatcherService
}

func NewExpenseHandler(d services.DispatcherService) *ExpenseHandler {
	return &ExpenseHandler{dispatcher: d}
}

// GetExpenses lists expenses, newest first.
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	c.JSON(http.StatusOK, h.dispatcher.Snapshot().Expenses)
}

func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var cmd state.AddExpense
	if err := c.ShouldBindJSON(&cmd); err != nil {
		respondBadPayload(c, err)
		return
	}
	next, ok := dispatch(c, h.dispatcher, cmd, "Failed to record expense")
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, next.Expenses[0])
}
