package plan_fx

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"wayfarer/internal/api/controllers"
	"wayfarer/internal/repositories"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

var Module = fx.Provide(
	ProvideAgentClient,
	ProvideTextEmbedder,
	ProvidePlanRepository,
	ProvidePlanService,
	ProvidePlanController)

// AgentConfig holds configuration for the agent collaborator.
type AgentConfig struct {
	Provider  string
	APIKey    string
	Model     string
	Streaming bool
	Timeout   time.Duration
}

// ProvideAgentClient creates the agent client based on environment
// variables, mirroring the provider switch used by the embedder.
func ProvideAgentClient() (utils.AgentClientInterface, error) {
	config := getAgentConfig()

	log.Printf("Initializing %s agent client with model: %s (streaming=%t)",
		config.Provider, config.Model, config.Streaming)

	client, err := utils.NewAgentClient(config.Provider, config.APIKey, config.Model, config.Streaming)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent client: %w", err)
	}
	return client, nil
}

func ProvideTextEmbedder() utils.EmbeddingClientInterface {
	return utils.NewTextEmbedder(os.Getenv("OPENAI_API_KEY"),
		getEnvWithDefault("OPENAI_EMBEDDING_MODEL", ""))
}

func ProvidePlanRepository(db *gorm.DB) repositories.IPlanRepository {
	return repositories.NewPlanRepository(db)
}

func ProvidePlanService(
	agentClient utils.AgentClientInterface,
	embedder utils.EmbeddingClientInterface,
	planRepo repositories.IPlanRepository,
) services.PlanServiceInterface {
	config := getAgentConfig()
	return services.NewPlanService(agentClient, embedder, planRepo, services.PlanServiceConfig{
		Model:        config.Model,
		AgentTimeout: config.Timeout,
	})
}

func ProvidePlanController(planService services.PlanServiceInterface) *controllers.PlanController {
	return controllers.NewPlanController(planService)
}

func getAgentConfig() AgentConfig {
	provider := getEnvWithDefault("AGENT_PROVIDER", "openai")

	var apiKey, model string
	switch strings.ToLower(provider) {
	case "openai":
		apiKey = os.Getenv("OPENAI_API_KEY")
		model = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
		if apiKey == "" {
			log.Fatal("OPENAI_API_KEY is required when using OpenAI provider")
		}
	case "gemini":
		apiKey = os.Getenv("GEMINI_API_KEY")
		model = getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash")
		if apiKey == "" {
			log.Fatal("GEMINI_API_KEY is required when using Gemini provider")
		}
	}

	timeoutSeconds, err := strconv.Atoi(getEnvWithDefault("AGENT_TIMEOUT_SECONDS", "120"))
	if err != nil || timeoutSeconds <= 0 {
		timeoutSeconds = 120
	}

	return AgentConfig{
		Provider:  provider,
		APIKey:    apiKey,
		Model:     model,
		Streaming: getEnvWithDefault("AGENT_STREAMING", "true") != "false",
		Timeout:   time.Duration(timeoutSeconds) * time.Second,
	}
}

// getEnvWithDefault returns environment variable or default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
