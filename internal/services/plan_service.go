package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"wayfarer/internal/models/agent_models"
	"wayfarer/internal/models/db_models"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/internal/repositories"
	"wayfarer/pkg/utils"
)

type PlanServiceInterface interface {
	GeneratePlan(ctx context.Context, accountID string, request request_models.TravelRequest) (response_models.PlanData, error)
	ListHistory(ctx context.Context, accountID string, limit int) ([]response_models.SavedPlan, error)
	FindSimilarPlans(ctx context.Context, query string, limit int) ([]response_models.SavedPlan, error)
}

// PlanServiceConfig bounds the agent invocation. The upstream stream has
// no cancellation of its own, so the timeout here is the only limit on
// how long one request can wait.
type PlanServiceConfig struct {
	Model        string
	AgentTimeout time.Duration
}

type PlanService struct {
	agentClient utils.AgentClientInterface
	embedder    utils.EmbeddingClientInterface
	planRepo    repositories.IPlanRepository
	config      PlanServiceConfig
}

func NewPlanService(
	agentClient utils.AgentClientInterface,
	embedder utils.EmbeddingClientInterface,
	planRepo repositories.IPlanRepository,
	config PlanServiceConfig,
) PlanServiceInterface {
	if config.AgentTimeout <= 0 {
		config.AgentTimeout = 2 * time.Minute
	}
	return &PlanService{
		agentClient: agentClient,
		embedder:    embedder,
		planRepo:    planRepo,
		config:      config,
	}
}

// GeneratePlan runs one full reconciliation pass: compose the task,
// stream the agent response, and synthesize a plan. The only error it can
// return is the agent invocation failing before any events arrive;
// everything after that point degrades into the plan itself.
func (s *PlanService) GeneratePlan(ctx context.Context, accountID string, request request_models.TravelRequest) (response_models.PlanData, error) {
	startTime := time.Now()

	profile := ResolveModeProfile(request.Budget)
	task := ComposeTask(request, profile)

	agentCtx, cancel := context.WithTimeout(ctx, s.config.AgentTimeout)
	defer cancel()

	events, err := s.agentClient.StreamTask(agentCtx, task, s.config.Model)
	if err != nil {
		return response_models.PlanData{}, fmt.Errorf("%w: %v", utils.ErrAgentUnavailable, err)
	}

	text, stats := drainEventStream(events)
	log.Printf("agent response drained in %s: %d bytes, %d text / %d message / %d tool_use / %d unknown events",
		time.Since(startTime), len(text), stats.textEvents, stats.messageEvents, stats.toolUseEvents, stats.unknownEvents)

	plan := synthesizePlan(synthesisInput{
		request: request,
		profile: profile,
		task:    task,
		text:    text,
		stats:   stats,
	})

	s.savePlanRecord(accountID, request, plan)

	return plan, nil
}

// ComposeTask renders the natural-language instruction sent to the
// agent. Total: every request produces a task string.
func ComposeTask(request request_models.TravelRequest, profile ModeProfile) string {
	interests := "general sightseeing"
	if len(request.Interests) > 0 {
		interests = strings.Join(request.Interests, ", ")
	}
	food := request.FoodPreference
	if food == "" {
		food = "Any"
	}
	mobility := request.Mobility
	if mobility == "" {
		mobility = "mixed"
	}

	var task strings.Builder
	fmt.Fprintf(&task, "Plan a %d-day trip to %s for %d traveler(s). Budget tier: %s. ",
		request.DurationDays, request.Destination, request.Travelers, profile.TierName)
	fmt.Fprintf(&task, "Interests: %s. Food preference: %s. Getting around: %s. ",
		interests, food, mobility)
	if request.AllergyNote != "" {
		fmt.Fprintf(&task, "Allergies: %s. ", request.AllergyNote)
	}
	if request.SpecialRequirements != "" {
		fmt.Fprintf(&task, "Special requirements: %s. ", request.SpecialRequirements)
	}
	fmt.Fprintf(&task, "Aim for %s attractions per day at a %s pace. ",
		profile.AttractionsPerDay, strings.ToLower(profile.Pace))
	task.WriteString("Use the generate_travel_plan tool to produce the final structured plan, " +
		"and use the available research and save tools as needed.")

	return task.String()
}

// drainEventStream consumes the event sequence to exhaustion, appending
// textual contributions in arrival order. tool_use and unknown events are
// observed for logging only.
func drainEventStream(events <-chan agent_models.ResponseEvent) (string, streamStats) {
	var accumulated strings.Builder
	var stats streamStats

	for event := range events {
		switch event.Kind {
		case agent_models.EventText:
			stats.textEvents++
			accumulated.WriteString(event.Text)
		case agent_models.EventMessage:
			stats.messageEvents++
			if event.Message == nil {
				continue
			}
			if event.Message.Text != "" {
				accumulated.WriteString(event.Message.Text)
				continue
			}
			for _, item := range event.Message.Items {
				if item.Type == "text" {
					accumulated.WriteString(item.Text)
				}
			}
		case agent_models.EventToolUse:
			stats.toolUseEvents++
			if event.Tool != nil {
				log.Printf("agent stream: tool_use %q observed", event.Tool.Name)
			}
		default:
			stats.unknownEvents++
			log.Printf("agent stream: unrecognized event kind %q", event.Kind)
		}
	}

	return accumulated.String(), stats
}

// savePlanRecord persists the generated plan for history and similarity
// search. Best effort: failures are logged, never surfaced.
func (s *PlanService) savePlanRecord(accountID string, request request_models.TravelRequest, plan response_models.PlanData) {
	if s.planRepo == nil {
		return
	}

	payload, err := json.Marshal(plan)
	if err != nil {
		log.Printf("plan history: marshal failed: %v", err)
		return
	}

	record := &db_models.TravelPlanRecord{
		Destination:  request.Destination,
		DurationDays: request.DurationDays,
		Travelers:    request.Travelers,
		Budget:       request.Budget,
		Interests:    pq.StringArray(request.Interests),
		SelectedMode: plan.SelectedMode,
		TotalBudget:  firstTotalBudget(plan),
		Payload:      payload,
	}
	if id, err := uuid.Parse(accountID); err == nil {
		record.AccountID = &id
	}

	// The request context may already be exhausted by the agent call.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.embedder != nil {
		vector, err := s.embedder.GetEmbedding(ctx, embeddingText(request))
		if err != nil {
			log.Printf("plan history: embedding failed, skipping save: %v", err)
			return
		}
		record.Embedding = vector
	}

	if err := s.planRepo.SavePlan(ctx, record); err != nil {
		log.Printf("plan history: save failed: %v", err)
	}
}

func (s *PlanService) ListHistory(ctx context.Context, accountID string, limit int) ([]response_models.SavedPlan, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	records, err := s.planRepo.ListByAccount(ctx, accountID, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	saved := make([]response_models.SavedPlan, 0, len(records))
	for _, record := range records {
		saved = append(saved, toSavedPlan(record, 0))
	}
	return saved, nil
}

func (s *PlanService) FindSimilarPlans(ctx context.Context, query string, limit int) ([]response_models.SavedPlan, error) {
	if strings.TrimSpace(query) == "" {
		return nil, utils.ErrInvalidInput
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	vector, err := s.embedder.GetEmbedding(ctx, query)
	if err != nil {
		return nil, utils.ErrAgentUnavailable
	}

	matches, err := s.planRepo.FindSimilarByVector(ctx, vector, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	saved := make([]response_models.SavedPlan, 0, len(matches))
	for _, match := range matches {
		saved = append(saved, toSavedPlan(match.TravelPlanRecord, match.Similarity))
	}
	return saved, nil
}

func toSavedPlan(record db_models.TravelPlanRecord, similarity float64) response_models.SavedPlan {
	return response_models.SavedPlan{
		ID:           record.ID.String(),
		Destination:  record.Destination,
		DurationDays: record.DurationDays,
		Budget:       record.Budget,
		Interests:    []string(record.Interests),
		SelectedMode: record.SelectedMode,
		TotalBudget:  record.TotalBudget,
		Similarity:   similarity,
		CreatedAt:    record.CreatedAt,
	}
}

func firstTotalBudget(plan response_models.PlanData) string {
	if len(plan.Plans) == 0 {
		return ""
	}
	return plan.Plans[0].TotalBudget
}

func embeddingText(request request_models.TravelRequest) string {
	return fmt.Sprintf("%s %s %s", request.Destination, request.Budget,
		strings.Join(request.Interests, " "))
}
