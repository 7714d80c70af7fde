package handlers

import (
	"net/http"

	"rms_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type SpecialsHandler struct {
	specialsService services.SpecialsService
}

func NewSpecialsHandler(ss services.SpecialsService) *SpecialsHandler {
	return &SpecialsHandler{specialsService: ss}
}

// GenerateSpecials asks the model for three specials built from in-stock items.
func (h *SpecialsHandler) GenerateSpecials(c *gin.Context) {
	specials, err := h.specialsService.GenerateSpecials(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to generate chef specials")
		return
	}
	c.JSON(http.StatusOK, gin.H{"specials": specials})
}
