package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"google.golang.org/genai"

	"strivehub/config"
)

const defaultGeminiModel = "gemini-2.5-flash"

// Global Gemini client instance. Stays nil when no API key is configured; the
// evaluators then fall back to deterministic mock verdicts.
var geminiClient *genai.Client

// InitAIService initializes the Gemini client using the API key from the config
func InitAIService(cfg *config.Config) {
	if cfg.Gemini.ApiKey == "" {
		log.Println("No Gemini API key configured; AI evaluators will use mock results")
		return
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: cfg.Gemini.ApiKey})
	if err != nil {
		log.Printf("Failed to initialize Gemini client, falling back to mock results: %v", err)
		return
	}
	geminiClient = client
}

func generateModelText(ctx context.Context, modelName, prompt string) (string, error) {
	if geminiClient == nil {
		return "", errors.New("gemini client not initialized")
	}
	resp, err := geminiClient.Models.GenerateContent(ctx, modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return cleanModelOutput(resp.Text()), nil
}

func cleanModelOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

func generateDefaultModelText(ctx context.Context, prompt string) (string, error) {
	return generateModelText(ctx, defaultGeminiModel, prompt)
}
