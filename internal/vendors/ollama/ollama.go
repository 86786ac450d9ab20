package ollama

import (
	"github.com/baalimago/toolloop/internal/text/generic"
)

const DefaultModel = "llama3.2"

// Default is deterministic: temperature 0 makes the model pick the most
// likely token every time.
var Default = Ollama{
	Model:       DefaultModel,
	Temperature: 0,
	TopP:        1.0,
	URL:         ChatURL,
}

type Ollama struct {
	generic.StreamCompleter `json:"-"`
	Model                   string  `json:"model"`
	FrequencyPenalty        float64 `json:"frequency_penalty"`
	MaxTokens               *int    `json:"max_tokens"` // Use a pointer to allow null value
	PresencePenalty         float64 `json:"presence_penalty"`
	Temperature             float64 `json:"temperature"`
	TopP                    float64 `json:"top_p"`
	URL                     string  `json:"url"`
}
