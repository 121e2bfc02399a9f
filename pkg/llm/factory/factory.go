package factory

import (
	"fmt"

	"ai-notes-be/pkg/llm"
	"ai-notes-be/pkg/llm/nvidia"
)

func NewLLMProvider(providerType, apiKey, modelName string) (llm.LLMProvider, error) {
	switch providerType {
	case "nvidia", "":
		return nvidia.NewProvider(apiKey, nvidia.WithDefaultModel(modelName)), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
