package handlers

import (
	"net/http"

	"rms_backend/internal/services"
	"rms_backend/internal/state"
	"rms_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MenuHandler serves the menu, its categories and the guest facing QR menu.
type MenuHandler struct {
	dispatcher services.DispatcherService
}

func NewMenuHandler(d services.DispatcherService) *MenuHandler {
	return &MenuHandler{dispatcher: d}
}

// GetMenu lists menu items, optionally filtered by ?category=.
func (h *MenuHandler) GetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, h.dispatcher.Snapshot().MenuByCategory(c.Query("category")))
}

// CreateMenuItem adds an item to the menu.
func (h *MenuHandler) CreateMenuItem(c *gin.Context) {
	var cmd state.AddMenuItem
	if err := c.ShouldBindJSON(&cmd); err != nil {
		respondBadPayload(c, err)
		return
	}
	next, ok := dispatch(c, h.dispatcher, cmd, "Failed to add menu item")
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, next.Menu[len(next.Menu)-1])
}

func (h *MenuHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.dispatcher.Snapshot().Categories)
}

// GetPublicMenu returns the in-stock menu for a guest at ?tableId=.
func (h *MenuHandler) GetPublicMenu(c *gin.Context) {
	tableID, err := utils.StrToInt64(c.Query("tableId"))
	if err != nil || tableID <= 0 {
		utils.RespondValidationFailed(c, "tableId must be a positive integer")
		return
	}
	menu, ok := h.dispatcher.Snapshot().PublicMenu(tableID).Get()
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found", utils.Int64ToStr(tableID)))
		return
	}
	c.JSON(http.StatusOK, menu)
}
