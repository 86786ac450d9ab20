package models

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// ToolName is an enum-like type for available tools.
type ToolName string

const (
	SearchTool      ToolName = "search"
	WebsiteTextTool ToolName = "website_text"
)

// LLMTool is a function which the model may ask to have invoked on its behalf.
type LLMTool interface {
	// Call the tool with the given Input. Returns output from the tool or an
	// error if the call failed.
	Call(Input) (string, error)

	// Specification which is sent to the model so that it knows how and
	// when to call the tool.
	Specification() Specification
}

// ContextLLMTool is a tool whose calls may be cancelled, such as the ones
// doing network requests.
type ContextLLMTool interface {
	LLMTool
	CallContext(context.Context, Input) (string, error)
}

type Input map[string]any

type Call struct {
	ID       string        `json:"id,omitempty"`
	Name     string        `json:"name,omitempty"`
	Type     string        `json:"type,omitempty"`
	Inputs   *Input        `json:"inputs,omitempty"`
	Function Specification `json:"function,omitempty"`
}

// Patch the call, filling structs and initializing fields so that
// OpenAI-compatible backends accept it when it's sent back as part of
// the conversation
func (c *Call) Patch() {
	if c.Type == "" {
		c.Type = "function"
	}
	if c.Name == "" {
		c.Name = c.Function.Name
	}
	if c.Function.Name == "" {
		if c.Name == "" {
			c.Name = "EMPTY-STRING"
		}
		c.Function.Name = c.Name
	}
	if c.Function.Inputs != nil {
		c.Function.Inputs.Patch()
	}
	if c.Function.Arguments == "" {
		c.Function.Arguments = c.ArgumentsJSON()
	}
}

// PrettyPrint the call, showing name and what input params is used
// on a concise way
func (c Call) PrettyPrint() string {
	var inp Input
	if c.Inputs != nil {
		inp = *c.Inputs
	}
	keys := make([]string, 0, len(inp))
	for k := range inp {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	paramStr := ""
	for i, flag := range keys {
		paramStr += fmt.Sprintf("'%v': '%v'", flag, inp[flag])
		if i < len(keys)-1 {
			paramStr += ","
		}
	}

	return fmt.Sprintf("Call: '%s', inputs: [ %s ]", c.Name, paramStr)
}

// ArgumentsJSON returns the inputs as a json object string, the format
// which the chat completion api expects in function.arguments
func (c Call) ArgumentsJSON() string {
	inp := Input{}
	if c.Inputs != nil {
		inp = *c.Inputs
	}
	b, err := json.Marshal(inp)
	if err != nil {
		return "{}"
	}
	return string(b)
}

type Specification struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// Format is the same, but name of the field different. So this way, each
	// vendor can set their own field name
	Inputs *InputSchema `json:"input_schema,omitempty"`
	// Chatgpt wants this
	Arguments string `json:"arguments,omitempty"`
}

type InputSchema struct {
	Type       string                     `json:"type"`
	Required   []string                   `json:"required"`
	Properties map[string]ParameterObject `json:"properties"`
}

// Patch the input schema, filling in what strict json schema validators
// want to see
func (is *InputSchema) Patch() {
	if is.Required == nil {
		is.Required = make([]string, 0)
	}
	if is.Properties == nil {
		is.Properties = make(map[string]ParameterObject)
	}
	if is.Type == "" {
		is.Type = "object"
	}
}

// IsOk checks if the input schema is ok
func (is *InputSchema) IsOk() bool {
	for _, p := range is.Properties {
		if p.Type == "array" && p.Items == nil {
			return false
		}
	}
	return true
}

type ParameterObject struct {
	Type        string           `json:"type"`
	Description string           `json:"description"`
	Enum        *[]string        `json:"enum,omitempty"`
	Items       *ParameterObject `json:"items,omitempty"`
}

type ValidationError struct {
	fieldsMissing []string
}

func NewValidationError(fieldsMissing []string) error {
	// Sort for deterministic error print
	sort.Strings(fieldsMissing)
	return ValidationError{fieldsMissing: fieldsMissing}
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("validation error, fields missing: %v", v.fieldsMissing)
}
