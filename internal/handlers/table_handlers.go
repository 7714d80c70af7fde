package handlers

import (
	"net/http"

	"rms_backend/internal/models"
	"rms_backend/internal/services"
	"rms_backend/internal/state"
	"rms_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// TableHandler serves the floor plan: seating guests and table status.
type TableHandler struct {
	dispatcher  services.DispatcherService
	billService services.BillService
}

func NewTableHandler(d services.DispatcherService, bs services.BillService) *TableHandler {
	return &TableHandler{dispatcher: d, billService: bs}
}

type updateTableStatusRequest struct {
	Status models.TableStatus `json:"status" binding:"required"`
}

// GetTables lists every table with its current status.
func (h *TableHandler) GetTables(c *gin.Context) {
	c.JSON(http.StatusOK, h.dispatcher.Snapshot().Tables)
}

// OpenTable seats the table and returns the order that became active.
func (h *TableHandler) OpenTable(c *gin.Context) {
	tableID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	next, ok := dispatch(c, h.dispatcher, state.OpenTable{TableID: tableID}, "Failed to open table")
	if !ok {
		return
	}
	order, found := next.ActiveOrder().Get()
	if !found {
		utils.LogWarn("OpenTable: no active order after open", map[string]interface{}{"table_id": tableID})
		c.JSON(http.StatusOK, gin.H{"table_id": tableID})
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateTableStatus changes a table's status.
func (h *TableHandler) UpdateTableStatus(c *gin.Context) {
	tableID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req updateTableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadPayload(c, err)
		return
	}
	next, ok := dispatch(c, h.dispatcher, state.UpdateTableStatus{TableID: tableID, Status: req.Status}, "Failed to update table status")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, next.FindTable(tableID).OrEmpty())
}

// GetTableQRCode returns the public menu deep link of a table and its QR image.
func (h *TableHandler) GetTableQRCode(c *gin.Context) {
	tableID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	qr, err := h.billService.TableQRCode(tableID)
	if err != nil {
		respondError(c, err, "Table not found")
		return
	}
	c.JSON(http.StatusOK, qr)
}
