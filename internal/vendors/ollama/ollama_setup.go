package ollama

import (
	"fmt"
	"os"
	"strings"

	pub_models "github.com/baalimago/toolloop/pkg/text/models"
)

const ChatURL = "http://localhost:11434/v1/chat/completions"

func (g *Ollama) Setup() error {
	if os.Getenv("OLLAMA_API_KEY") == "" {
		os.Setenv("OLLAMA_API_KEY", "ollama")
	}
	url := g.URL
	if url == "" {
		url = ChatURL
	}
	g.StreamCompleter.URL = url
	err := g.StreamCompleter.Setup("OLLAMA_API_KEY", url, "OLLAMA_DEBUG")
	if err != nil {
		return fmt.Errorf("failed to setup stream completer: %w", err)
	}
	g.StreamCompleter.Model = strings.TrimPrefix(g.Model, "ollama:")
	g.StreamCompleter.FrequencyPenalty = &g.FrequencyPenalty
	g.StreamCompleter.PresencePenalty = &g.PresencePenalty
	g.StreamCompleter.MaxTokens = g.MaxTokens
	g.StreamCompleter.Temperature = &g.Temperature
	g.StreamCompleter.TopP = &g.TopP
	toolChoice := "auto"
	g.StreamCompleter.ToolChoice = &toolChoice
	return nil
}

func (g *Ollama) RegisterTool(tool pub_models.LLMTool) {
	g.StreamCompleter.InternalRegisterTool(tool)
}
