package handlers

import (
	"net/http"

	"rms_backend/internal/models"
	"rms_backend/internal/services"
	"rms_backend/internal/state"
	"rms_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// StaffHandler serves staff members and payroll.
type StaffHandler struct {
	dispatcher services.DispatcherService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(d services.DispatcherService) *StaffHandler {
	return &StaffHandler{dispatcher: d}
}

func (h *StaffHandler) GetStaffMembers(c *gin.Context) {
	c.JSON(http.StatusOK, h.dispatcher.Snapshot().Staff)
}

// CreateStaffMember adds an active staff member.
func (h *StaffHandler) CreateStaffMember(c *gin.Context) {
	var cmd state.AddStaff
	if err := c.ShouldBindJSON(&cmd); err != nil {
		respondBadPayload(c, err)
		return
	}
	if cmd.Email != "" && !utils.IsValidEmail(cmd.Email) {
		utils.RespondValidationFailed(c, "invalid email format")
		return
	}
	next, ok := dispatch(c, h.dispatcher, cmd, "Failed to add staff member")
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, next.Staff[0])
}

// ToggleStaffStatus flips a member between Active and Inactive.
func (h *StaffHandler) ToggleStaffStatus(c *gin.Context) {
	id := c.Param("id")
	next, ok := dispatch(c, h.dispatcher, state.ToggleStaffStatus{StaffID: id}, "Failed to toggle staff status")
	if !ok {
		return
	}
	member, _ := lo.Find(next.Staff, func(s models.Staff) bool { return s.ID == id })
	c.JSON(http.StatusOK, member)
}

// PaySalaries books this month's salaries of all active staff as one expense.
func (h *StaffHandler) PaySalaries(c *gin.Context) {
	next, ok := dispatch(c, h.dispatcher, state.PaySalaries{}, "Failed to pay salaries")
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, next.Expenses[0])
}
