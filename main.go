package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/smart-support-core/server/internal/agent/agents"
	"github.com/smart-support-core/server/internal/agent/classify"
	"github.com/smart-support-core/server/internal/agent/knowledge"
	"github.com/smart-support-core/server/internal/agent/llm"
	"github.com/smart-support-core/server/internal/agent/model"
	"github.com/smart-support-core/server/internal/agent/repo"
	"github.com/smart-support-core/server/internal/agent/session"
	"github.com/smart-support-core/server/internal/agent/workflow"
	"github.com/smart-support-core/server/internal/core"
	logx "github.com/smart-support-core/server/pkg/logger"
	pkgredis "github.com/smart-support-core/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the support workflow,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Workflow configs
	Classifier   model.ClassifierModelConfig
	Generator    model.GeneratorModelConfig
	Routing      model.RoutingConfig
	Retrieval    model.RetrievalConfig
	Conversation model.ConversationConfig
}

func main() {
	fmt.Println("Starting customer support workflow demo...")
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.EnvironmentFromEnv()})

	rdb, err := envCfg.Redis.New()
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()

	fmt.Println("Connected to Redis successfully")

	ttl, err := time.ParseDuration(envCfg.Conversation.TTL)
	if err != nil {
		log.Fatalf("Invalid CONVERSATION_TTL '%s': %v", envCfg.Conversation.TTL, err)
	}

	// Seed the knowledge collections so retrieval has something to rank.
	if err := knowledge.Seed(ctx, rdb, knowledge.CollectionProducts, knowledge.ProductCorpus()); err != nil {
		log.Fatalf("Failed to seed product knowledge: %v", err)
	}
	if err := knowledge.Seed(ctx, rdb, knowledge.CollectionFAQs, knowledge.FAQCorpus()); err != nil {
		log.Fatalf("Failed to seed FAQ knowledge: %v", err)
	}

	cms, err := llm.NewChatModels(ctx, llm.ChatModelConfig{
		APIKey:           envCfg.APIKey,
		BaseURL:          envCfg.BaseURL,
		ClassifierConfig: &envCfg.Classifier,
		GeneratorConfig:  &envCfg.Generator,
	})
	if err != nil {
		log.Fatalf("Failed to create chat models: %v", err)
	}

	retrievalTimeout := time.Duration(envCfg.Retrieval.TimeoutSeconds) * time.Second
	productIndex := knowledge.NewRedisIndex(rdb, knowledge.CollectionProducts, retrievalTimeout)
	faqIndex := knowledge.NewRedisIndex(rdb, knowledge.CollectionFAQs, retrievalTimeout)

	generator := llm.NewModelGenerator(cms.Generator, time.Duration(envCfg.Generator.TimeoutSeconds)*time.Second)
	classifier := classify.NewModelClassifier(cms.Classifier, time.Duration(envCfg.Classifier.TimeoutSeconds)*time.Second)

	registry := agents.NewRegistry(
		agents.NewProductResponder(productIndex, generator, envCfg.Retrieval.TopK),
		agents.NewRefundResponder(faqIndex, generator, envCfg.Retrieval.TopK),
		agents.NewTechnicalResponder(faqIndex, generator, envCfg.Retrieval.TopK),
	)

	engine, err := workflow.Build(ctx, &workflow.Config{
		Classifier: classifier,
		Labels:     classify.IntentLabels,
		Responders: registry,
		Routing:    envCfg.Routing,
	})
	if err != nil {
		log.Fatalf("Failed to build workflow: %v", err)
	}

	facade := session.NewFacade(engine, repo.NewRedisConversationStore(rdb, ttl), envCfg.Conversation)

	testQueries := []struct {
		description string
		query       string
	}{
		{
			description: "Product pricing inquiry",
			query:       "What is the price of your premium plan?",
		},
		{
			description: "Refund request",
			query:       "I want a refund for my last order",
		},
		{
			description: "Technical login issue",
			query:       "I cannot login to my account, it says access denied",
		},
		{
			description: "General question",
			query:       "Hello, can you help me?",
		},
	}

	userID := "demo-user"
	conversationID := ""

	for i, test := range testQueries {
		fmt.Printf("\nTest %d: %s\n", i+1, test.description)
		fmt.Printf("Query: %q\n", test.query)
		fmt.Println("Processing...")

		reply := facade.ProcessMessage(ctx, model.QueryInput{
			UserID:         userID,
			ConversationID: conversationID,
			Query:          test.query,
		})
		conversationID = reply.ConversationID

		fmt.Printf("Agent: %s (confidence %.2f, %.2fs)\n", reply.AgentUsed, reply.Confidence, reply.ResponseTime)
		fmt.Printf("Response: %s\n", reply.Response)
		if len(reply.Suggestions) > 0 {
			fmt.Printf("Suggestions: %v\n", reply.Suggestions)
		}
		fmt.Println("─────────────────────────────────────────────")

		time.Sleep(500 * time.Millisecond)
	}

	history, err := facade.History(ctx, conversationID, 0)
	if err != nil {
		log.Fatalf("Failed to load conversation history: %v", err)
	}
	fmt.Printf("\nConversation %s holds %d recent messages\n", conversationID, len(history))

	fmt.Println("All workflow tests completed successfully!")
}
