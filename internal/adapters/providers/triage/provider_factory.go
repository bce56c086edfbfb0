package triage

import (
	"log"

	"github.com/resqlink/dispatch/internal/domain/providers"
	"github.com/resqlink/dispatch/internal/infrastructure/clients/gemini"
	"github.com/resqlink/dispatch/pkg/config"
)

// NewTriageProvider creates the configured classifier. Without an API key
// the deterministic mock is used, which keeps development sessions fully
// offline. Classifier failures at call time are handled by the triage
// service's degraded fallback, not here.
func NewTriageProvider(cfg *config.GeminiConfig) providers.TriageProvider {
	if cfg == nil || cfg.APIKey == "" {
		log.Println("No classifier API key configured; using mock triage provider")
		return NewMockTriageProvider()
	}

	client, err := gemini.NewClient(cfg)
	if err != nil {
		log.Printf("Failed to initialize Gemini client: %v. Using mock triage provider", err)
		return NewMockTriageProvider()
	}

	return client
}
