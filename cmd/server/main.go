package main

import (
	"log"
	"log/slog"

	"github.com/tickethub/ticket-resolver/internal/agent"
	"github.com/tickethub/ticket-resolver/internal/config"
	"github.com/tickethub/ticket-resolver/internal/llm"
	"github.com/tickethub/ticket-resolver/internal/resolver"
	"github.com/tickethub/ticket-resolver/internal/sentiment"
	"github.com/tickethub/ticket-resolver/internal/server"
	"github.com/tickethub/ticket-resolver/internal/similarity"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	llmProvider, err := llm.NewOpenAI(&cfg.OpenAI)
	if err != nil {
		log.Fatalf("failed to create LLM provider: %v", err)
	}

	similarityClient, err := similarity.NewClient(cfg.Similarity.Endpoint, cfg.Similarity.APIKey, cfg.Similarity.Timeout)
	if err != nil {
		log.Fatalf("failed to create similarity client: %v", err)
	}

	scorer := sentiment.NewChain(
		sentiment.NewSimilarityEstimator(similarityClient),
		sentiment.NewCompletionEstimator(llmProvider),
	)

	orch := resolver.New(
		agent.NewAnalysisAgent(llmProvider, scorer),
		agent.NewResponseAgent(llmProvider),
		resolver.WithBatchConcurrency(cfg.Resolver.BatchConcurrency),
	)

	srv := server.New(*cfg, orch)
	slog.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
