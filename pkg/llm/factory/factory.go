package factory

import (
	"fmt"

	"wa-feedback-be/pkg/llm"
	"wa-feedback-be/pkg/llm/ollama"
	"wa-feedback-be/pkg/llm/openai"
)

// NewLLMProvider selects the analysis backend from config. OpenAI is the
// production default; Ollama covers local runs.
func NewLLMProvider(providerName, modelName, openAIKey, ollamaBaseURL string) (llm.LLMProvider, error) {
	switch providerName {
	case "openai":
		if openAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
		return openai.NewOpenAIProvider(openAIKey, modelName), nil
	case "ollama":
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", providerName)
	}
}
