package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"rms_backend/internal/billing"
	"rms_backend/internal/services"
	"rms_backend/internal/state"
	"rms_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// toAPIError maps domain errors onto the JSON error envelope.
func toAPIError(err error, message string) *utils.APIError {
	var apiErr *utils.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case state.IsNotFound(err),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrTableNotFound):
		return utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, message, detail(err))
	case state.IsConflict(err),
		errors.Is(err, services.ErrOrderNotOpen),
		errors.Is(err, services.ErrNoStockForSpecials):
		return utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, message, detail(err))
	case errors.Is(err, state.ErrValidation),
		errors.Is(err, services.ErrInvalidTimeFrame),
		errors.Is(err, billing.ErrInvalidSplit):
		return utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, message, detail(err))
	case errors.Is(err, state.ErrPrecondition):
		return utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, message, detail(err))
	case errors.Is(err, services.ErrSpecialsDisabled):
		return utils.NewAPIError(http.StatusServiceUnavailable, utils.ErrCodeServiceUnavailable, message, detail(err))
	case errors.Is(err, services.ErrSpecialsUpstream):
		return utils.NewAPIError(http.StatusBadGateway, utils.ErrCodeUpstreamFailed, message, "Upstream error")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return utils.NewAPIError(http.StatusServiceUnavailable, utils.ErrCodeServiceUnavailable, message, "Request cancelled")
	default:
		return utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, message, "Internal error")
	}
}

func respondError(c *gin.Context, err error, message string) {
	apiErr := toAPIError(err, message)
	if apiErr.StatusCode >= http.StatusInternalServerError {
		utils.LogError(err, message, map[string]interface{}{"path": c.FullPath()})
	}
	utils.RespondWithError(c, apiErr)
}

// detail strips the family prefix ("validation failed: ") from a domain error.
func detail(err error) string {
	msg := err.Error()
	for _, family := range []error{state.ErrValidation, state.ErrPrecondition} {
		msg = strings.TrimPrefix(msg, family.Error()+": ")
	}
	return msg
}

func respondBadPayload(c *gin.Context, err error) {
	utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload", err.Error()))
}

// dispatch applies cmd and reports whether it was committed; on rejection the
// error response has already been written.
func dispatch(c *gin.Context, d services.DispatcherService, cmd state.Command, message string) (state.State, bool) {
	next, err := d.Dispatch(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err, message)
		return next, false
	}
	return next, true
}

func int64Param(c *gin.Context, name string) (int64, bool) {
	id, err := utils.StrToInt64(c.Param(name))
	if err != nil || id <= 0 {
		utils.RespondValidationFailed(c, "invalid "+name)
		return 0, false
	}
	return id, true
}
