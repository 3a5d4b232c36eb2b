package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

type PlanController struct {
	planService services.PlanServiceInterface
}

func NewPlanController(planService services.PlanServiceInterface) *PlanController {
	return &PlanController{
		planService: planService,
	}
}

// GeneratePlanHandler always responds with a plan-shaped body when the
// agent invocation started; the only error shape it produces is the
// {error, details} object for invocations that fail before any events.
func (p *PlanController) GeneratePlanHandler(c *gin.Context) {
	var req request_models.TravelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response_models.AgentError{
			Error:   "invalid request",
			Details: err.Error(),
		})
		return
	}

	plan, err := p.planService.GeneratePlan(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		if errors.Is(err, utils.ErrAgentUnavailable) {
			c.JSON(http.StatusBadGateway, response_models.AgentError{
				Error:   "agent invocation failed",
				Details: err.Error(),
			})
			return
		}
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (p *PlanController) HistoryHandler(c *gin.Context) {
	accountID := c.GetString("user_id")
	if accountID == "" {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	saved, err := p.planService.ListHistory(c.Request.Context(), accountID, 0)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, saved, "Plan history")
}

func (p *PlanController) SimilarPlansHandler(c *gin.Context) {
	var req request_models.SimilarPlansRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "query is required")
		return
	}

	matches, err := p.planService.FindSimilarPlans(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, matches, "Similar plans")
}
