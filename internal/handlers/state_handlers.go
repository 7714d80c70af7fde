package handlers

import (
	"net/http"

	"rms_backend/internal/models"
	"rms_backend/internal/services"
	"rms_backend/internal/state"
	"rms_backend/internal/ws"
	"rms_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StateHandler exposes the whole front-of-house state and the generic
// command endpoint.
type StateHandler struct {
	dispatcher services.DispatcherService
	hub        *ws.Hub
}

func NewStateHandler(d services.DispatcherService, hub *ws.Hub) *StateHandler {
	return &StateHandler{dispatcher: d, hub: hub}
}

// GetState returns the current snapshot.
func (h *StateHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.dispatcher.Snapshot())
}

// ExecuteCommand decodes a {"type", "payload"} envelope and applies it.
func (h *StateHandler) ExecuteCommand(c *gin.Context) {
	var env state.Envelope
	if err := c.ShouldBindJSON(&env); err != nil {
		respondBadPayload(c, err)
		return
	}
	cmd, err := state.DecodeCommand(env.Type, env.Payload)
	if err != nil {
		respondError(c, err, "Invalid command")
		return
	}
	next, ok := dispatch(c, h.dispatcher, cmd, "Command rejected")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, next)
}

// SetPage navigates to the described page.
func (h *StateHandler) SetPage(c *gin.Context) {
	var d models.PageDescriptor
	if err := c.ShouldBindJSON(&d); err != nil {
		respondBadPayload(c, err)
		return
	}
	view, err := d.View()
	if err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	next, ok := dispatch(c, h.dispatcher, state.SetPage{View: view}, "Failed to change page")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": models.DescribeView(next.View), "active_order_id": next.ActiveOrderID})
}

// Live upgrades to a websocket that receives every committed state.
func (h *StateHandler) Live(c *gin.Context) {
	h.hub.ServeWS(c, func() any { return h.dispatcher.Snapshot() })
}
