package generic

import (
	"net/http"

	pub_models "github.com/baalimago/toolloop/pkg/text/models"
)

// StreamCompleter is a struct which follows the OpenAI chat completions api.
// Any vendor exposing such an endpoint, Ollama included, may embed it.
type StreamCompleter struct {
	Model            string
	FrequencyPenalty *float64
	MaxTokens        *int
	PresencePenalty  *float64
	Temperature      *float64
	TopP             *float64
	ToolChoice       *string
	URL              string
	tools            []ToolSuper
	toolsCallName    string
	// The arguments of a tool call are streamed as a stringified json, chunk
	// by chunk, so it's assembled here until it parses
	toolsCallArgsString string
	toolsCallID         string
	client              *http.Client
	apiKey              string
	debug               bool
}

type ToolSuper struct {
	Type     string `json:"type"`
	Function Tool   `json:"function"`
}

type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Inputs      pub_models.InputSchema `json:"parameters"`
}

type chatCompletionChunk struct {
	ID                string   `json:"id"`
	Object            string   `json:"object"`
	Created           int      `json:"created"`
	Model             string   `json:"model"`
	SystemFingerprint string   `json:"system_fingerprint"`
	Choices           []Choice `json:"choices"`
}

type Choice struct {
	Index        int    `json:"index"`
	Delta        Delta  `json:"delta"`
	FinishReason string `json:"finish_reason"`
}

type Delta struct {
	Content   any         `json:"content"`
	Role      string      `json:"role"`
	ToolCalls []ToolsCall `json:"tool_calls"`
}

type ToolsCall struct {
	Function Func   `json:"function"`
	ID       string `json:"id"`
	Index    int    `json:"index"`
	Type     string `json:"type"`
}

type Func struct {
	Arguments string `json:"arguments"`
	Name      string `json:"name"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type req struct {
	Model             string               `json:"model,omitempty"`
	ResponseFormat    responseFormat       `json:"response_format,omitempty"`
	Messages          []pub_models.Message `json:"messages,omitempty"`
	Stream            bool                 `json:"stream,omitempty"`
	FrequencyPenalty  *float64             `json:"frequency_penalty,omitempty"`
	MaxTokens         *int                 `json:"max_tokens,omitempty"`
	PresencePenalty   *float64             `json:"presence_penalty,omitempty"`
	Temperature       *float64             `json:"temperature,omitempty"`
	TopP              *float64             `json:"top_p,omitempty"`
	ToolChoice        *string              `json:"tool_choice,omitempty"`
	Tools             []ToolSuper          `json:"tools,omitempty"`
	ParallelToolCalls bool                 `json:"parallel_tool_calls"`
}
