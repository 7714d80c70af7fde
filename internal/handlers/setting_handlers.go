package handlers

import (
	"net/http"

	"rms_backend/internal/services"
	"rms_backend/internal/state"

	"github.com/gin-gonic/gin"
)

// SettingsHandler manages the restaurant setup: menu categories, taxes and
// the tables on the floor.
type SettingsHandler struct {
	dispatcher services.DispatcherService
}

func NewSettingsHandler(d services.DispatcherService) *SettingsHandler {
	return &SettingsHandler{dispatcher: d}
}

func (h *SettingsHandler) CreateCategory(c *gin.Context) {
	var cmd state.AddCategory
	if err := c.ShouldBindJSON(&cmd); err != nil {
		respondBadPayload(c, err)
		return
	}
	next, ok := dispatch(c, h.dispatcher, cmd, "Failed to add category")
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, next.Categories)
}

// DeleteCategory removes a category no menu item uses.
func (h *SettingsHandler) DeleteCategory(c *gin.Context) {
	next, ok := dispatch(c, h.dispatcher, state.DeleteCategory{Name: c.Param("name")}, "Failed to delete category")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, next.Categories)
}

func (h *SettingsHandler) GetTaxes(c *gin.Context) {
	c.JSON(http.StatusOK, h.dispatcher.Snapshot().Taxes)
}

func (h *SettingsHandler) CreateTax(c *gin.Context) {
	var cmd state.AddTax
	if err := c.ShouldBindJSON(&cmd); err != nil {
		respondBadPayload(c, err)
		return
	}
	next, ok := dispatch(c, h.dispatcher, cmd, "Failed to add tax")
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, next.Taxes[len(next.Taxes)-1])
}

func (h *SettingsHandler) DeleteTax(c *gin.Context) {
	if _, ok := dispatch(c, h.dispatcher, state.DeleteTax{TaxID: c.Param("id")}, "Failed to delete tax"); !ok {
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleTax enables or disables a tax for bills computed from now on.
func (h *SettingsHandler) ToggleTax(c *gin.Context) {
	id := c.Param("id")
	next, ok := dispatch(c, h.dispatcher, state.ToggleTaxStatus{TaxID: id}, "Failed to toggle tax")
	if !ok {
		return
	}
	for _, t := range next.Taxes {
		if t.ID == id {
			c.JSON(http.StatusOK, t)
			return
		}
	}
	c.Status(http.StatusNoContent)
}

// CreateTable adds a table to the floor.
func (h *SettingsHandler) CreateTable(c *gin.Context) {
	var cmd state.AddTable
	if err := c.ShouldBindJSON(&cmd); err != nil {
		respondBadPayload(c, err)
		return
	}
	next, ok := dispatch(c, h.dispatcher, cmd, "Failed to add table")
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, next.Tables[len(next.Tables)-1])
}

// DeleteTable removes a table that has no open order.
func (h *SettingsHandler) DeleteTable(c *gin.Context) {
	tableID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	if _, ok := dispatch(c, h.dispatcher, state.DeleteTable{TableID: tableID}, "Failed to delete table"); !ok {
		return
	}
	c.Status(http.StatusNoContent)
}
