// controller/entitlement_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/oddsview/matchgate/errors"
	"github.com/oddsview/matchgate/model"
	"github.com/oddsview/matchgate/service"
	"github.com/oddsview/matchgate/util"
)

type EntitlementController struct {
	entitlementService service.IEntitlementService
}

func NewEntitlementController(entitlementService service.IEntitlementService) *EntitlementController {
	return &EntitlementController{
		entitlementService: entitlementService,
	}
}

// RegisterRoutes registers the API routes
func (ec *EntitlementController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/check-match-id", ec.CheckMatchID)
	r.GET("/health", ec.HealthCheck)
}

// httpStatusFor maps a resolved status to its response code. Domain outcomes
// are definitive answers, not failures, so they carry the status in the body
// rather than an error message.
func httpStatusFor(status model.Status) int {
	switch status {
	case model.StatusPaidActive:
		return http.StatusOK
	case model.StatusTrialActive:
		return http.StatusCreated
	case model.StatusKeyInvalid:
		return http.StatusNotFound
	case model.StatusRecordNotFound:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusGone
	}
}

// CheckMatchID endpoint
func (ec *EntitlementController) CheckMatchID(c *gin.Context) {
	apiKey := c.Query("api_key")
	matchID := c.Query("match_id")

	status, err := ec.entitlementService.Check(c, apiKey, matchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrMissingParameters) {
			util.RespondWithError(c, http.StatusBadRequest, "api_key and match_id are required", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to check match ID", err)
		}
		return
	}

	c.JSON(httpStatusFor(status), gin.H{"status": string(status)})
}

// HealthCheck endpoint
func (ec *EntitlementController) HealthCheck(c *gin.Context) {
	if err := ec.entitlementService.Health(c); err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Service unhealthy", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
