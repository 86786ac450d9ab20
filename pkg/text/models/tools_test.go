package models

import "testing"

func TestCallPatchAndPretty(t *testing.T) {
	c := Call{}
	c.Patch()
	if c.Type != "function" {
		t.Fatalf("expected default type function, got %q", c.Type)
	}
	if c.Function.Name == "" {
		t.Fatalf("expected function name filled from Name or placeholder")
	}
	if c.Function.Arguments != "{}" {
		t.Fatalf("expected empty arguments object, got: %q", c.Function.Arguments)
	}

	inp := Input{"query": "sf", "flags": 2}
	c = Call{Name: "search", Inputs: &inp}
	c.Patch()
	if c.Function.Name != "search" || c.Type != "function" {
		t.Fatalf("unexpected patch results: %#v", c)
	}
	if c.Function.Arguments != `{"flags":2,"query":"sf"}` {
		t.Fatalf("unexpected arguments: %q", c.Function.Arguments)
	}
	want := "Call: 'search', inputs: [ 'flags': '2','query': 'sf' ]"
	if got := c.PrettyPrint(); got != want {
		t.Fatalf("got: %q, want: %q", got, want)
	}
}

func TestCallPatch_NameFromFunction(t *testing.T) {
	c := Call{Function: Specification{Name: "search", Arguments: `{"query":"x"}`}}
	c.Patch()
	if c.Name != "search" {
		t.Fatalf("expected name to be lifted from function, got %q", c.Name)
	}
	if c.Function.Arguments != `{"query":"x"}` {
		t.Fatalf("existing arguments should be kept, got %q", c.Function.Arguments)
	}
}

func TestInputSchemaPatchAndIsOk(t *testing.T) {
	is := &InputSchema{}
	is.Patch()
	if is.Type != "object" || is.Required == nil || is.Properties == nil {
		t.Fatalf("patch did not initialize fields: %#v", is)
	}

	is.Properties["arr"] = ParameterObject{Type: "array"}
	if is.IsOk() {
		t.Fatalf("expected IsOk to fail when array items are missing")
	}

	is.Properties["arr"] = ParameterObject{Type: "array", Items: &ParameterObject{Type: "string"}}
	if !is.IsOk() {
		t.Fatalf("expected IsOk to pass when array items are provided")
	}
}
