package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/pkg/utils"
)

type stubPlanService struct {
	plan response_models.PlanData
	err  error
}

func (s *stubPlanService) GeneratePlan(ctx context.Context, accountID string, request request_models.TravelRequest) (response_models.PlanData, error) {
	return s.plan, s.err
}

func (s *stubPlanService) ListHistory(ctx context.Context, accountID string, limit int) ([]response_models.SavedPlan, error) {
	return nil, nil
}

func (s *stubPlanService) FindSimilarPlans(ctx context.Context, query string, limit int) ([]response_models.SavedPlan, error) {
	return nil, nil
}

func newPlanRouter(service *stubPlanService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := NewPlanController(service)
	r.POST("/plans/generate", controller.GeneratePlanHandler)
	return r
}

func TestGeneratePlanHandlerReturnsPlanBody(t *testing.T) {
	service := &stubPlanService{plan: response_models.PlanData{
		Plans:        []response_models.PlanResult{{ModeName: "Balanced Flow", TotalBudget: "$480-720"}},
		SelectedMode: "Balanced Flow",
	}}
	router := newPlanRouter(service)

	body := `{"destination":"Lisbon","duration_days":4,"travelers":2,"budget":"moderate"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/plans/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var plan response_models.PlanData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	require.Len(t, plan.Plans, 1)
	assert.Equal(t, "Balanced Flow", plan.SelectedMode)
}

func TestGeneratePlanHandlerAgentFailure(t *testing.T) {
	service := &stubPlanService{err: fmt.Errorf("%w: connection refused", utils.ErrAgentUnavailable)}
	router := newPlanRouter(service)

	body := `{"destination":"Lisbon","duration_days":4,"travelers":2}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/plans/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadGateway, w.Code)

	var agentErr response_models.AgentError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &agentErr))
	assert.Equal(t, "agent invocation failed", agentErr.Error)
	assert.Contains(t, agentErr.Details, "connection refused")
}

func TestGeneratePlanHandlerRejectsInvalidPayload(t *testing.T) {
	router := newPlanRouter(&stubPlanService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/plans/generate", strings.NewReader(`{"destination":""}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
