package generic

import (
	"fmt"
	"net/http"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	pub_models "github.com/baalimago/toolloop/pkg/text/models"
)

func (s *StreamCompleter) Setup(apiKeyEnv, url, debugEnv string) error {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return fmt.Errorf("environment variable '%v' not set", apiKeyEnv)
	}
	s.client = &http.Client{}
	s.apiKey = apiKey
	if s.URL == "" {
		s.URL = url
	}

	if misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv(debugEnv)) {
		s.debug = true
	}

	return nil
}

// InternalRegisterTool adds the tool to the tools sent with each request.
// Tools with a schema which backends reject are skipped.
func (s *StreamCompleter) InternalRegisterTool(tool pub_models.LLMTool) {
	spec := tool.Specification()
	if spec.Inputs != nil && !spec.Inputs.IsOk() {
		ancli.PrintWarn(fmt.Sprintf("skipping tool: '%v', array parameters need items\n", spec.Name))
		return
	}
	s.tools = append(s.tools, ToolSuper{
		Type:     "function",
		Function: convertToGenericTool(spec),
	})
}

func convertToGenericTool(spec pub_models.Specification) Tool {
	inputs := pub_models.InputSchema{}
	if spec.Inputs != nil {
		inputs = *spec.Inputs
	}
	inputs.Patch()
	return Tool{
		Name:        spec.Name,
		Description: spec.Description,
		Inputs:      inputs,
	}
}
