package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dupefinder/backend/config"
	httpDelivery "github.com/dupefinder/backend/internal/delivery/http"
	"github.com/dupefinder/backend/internal/infrastructure/fetch"
	"github.com/dupefinder/backend/internal/infrastructure/openai"
	"github.com/dupefinder/backend/internal/infrastructure/tavily"
	"github.com/dupefinder/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting DupeFinder Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	debug := cfg.Server.Environment == "development"

	// Initialize infrastructure dependencies
	searchClient := tavily.NewClient(cfg.Tavily.APIKey, cfg.Tavily.BaseURL)
	if debug {
		searchClient.SetDebug(true)
		log.Printf("Tavily client debug mode enabled")
	}

	fetcher := fetch.NewFetcher(cfg.Enrichment.FetchTimeout)
	resolver := usecase.NewImageResolverService(fetcher, usecase.ImageResolverConfig{
		Timeout:            cfg.Enrichment.FetchTimeout,
		EnableDebugLogging: debug,
	})

	var chatClient *openai.Client
	if cfg.OpenAI.APIKey != "" {
		chatClient = openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model)
		log.Printf("Chat demo configured with model %s", cfg.OpenAI.Model)
	} else {
		log.Printf("Chat demo disabled (no OpenAI API key)")
	}

	// Initialize usecase layer
	normalizer := usecase.NewNormalizer(usecase.NewClassifier(), debug)
	enricher := usecase.NewEnricher(resolver, usecase.EnrichmentConfig{
		Concurrency:        cfg.Enrichment.Concurrency,
		TaskTimeout:        cfg.Enrichment.TaskTimeout,
		EnableDebugLogging: debug,
	})
	scorer := usecase.NewDupeScorer(debug)

	dupeService := usecase.NewDupeService(
		searchClient,
		normalizer,
		enricher,
		scorer,
		usecase.DupeServiceConfig{
			MaxResults:         cfg.Search.MaxResults,
			ProviderMultiplier: cfg.Search.ProviderMultiplier,
			EnableDebugLogging: debug,
		},
	)

	log.Printf("Pipeline: maxResults=%d, enrichment concurrency=%d, task timeout=%s",
		cfg.Search.MaxResults, cfg.Enrichment.Concurrency, cfg.Enrichment.TaskTimeout)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(dupeService, chatClient)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
