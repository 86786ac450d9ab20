package tools

import (
	"fmt"
	"strings"

	pub_models "github.com/baalimago/toolloop/pkg/text/models"
	"github.com/spf13/cast"
)

const (
	SearchFoggy = "It's 60 degrees and foggy."
	SearchSunny = "It's 90 degrees and sunny."
)

type SearchTool pub_models.Specification

var Search = SearchTool{
	Name:        string(pub_models.SearchTool),
	Description: "Call to surf the web.",
	Inputs: &pub_models.InputSchema{
		Type: "object",
		Properties: map[string]pub_models.ParameterObject{
			"query": {
				Type:        "string",
				Description: "The free text search query.",
			},
		},
		Required: []string{"query"},
	},
}

func (s SearchTool) Call(input pub_models.Input) (string, error) {
	raw, exists := input["query"]
	if !exists {
		return "", pub_models.NewValidationError([]string{"query"})
	}
	query, err := cast.ToStringE(raw)
	if err != nil {
		return "", fmt.Errorf("query must be a string: %w", err)
	}
	return Weather(query), nil
}

func (s SearchTool) Specification() pub_models.Specification {
	return pub_models.Specification(Search)
}

// Weather is the canned search policy. San Francisco is foggy, everywhere
// else is sunny.
func Weather(query string) string {
	q := strings.ToLower(query)
	if strings.Contains(q, "sf") || strings.Contains(q, "san francisco") {
		return SearchFoggy
	}
	return SearchSunny
}
