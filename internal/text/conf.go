package text

import (
	pub_models "github.com/baalimago/toolloop/pkg/text/models"
)

// Configurations used to setup the requirements of text models
type Configurations struct {
	// Model to use, such as 'llama3.2', 'ollama:qwen3:8b' or 'test'
	Model string
	// URL of the chat completions endpoint. Empty means the vendor default,
	// or whatever is stored in the model config file
	URL       string
	ConfigDir string
	Tools     []pub_models.LLMTool
}
