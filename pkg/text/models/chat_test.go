package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMessageJSON_ToolCallRoundtrip(t *testing.T) {
	inp := Input{"query": "sf weather"}
	msg := Message{
		Role: RoleAssistant,
		ToolCalls: []Call{{
			ID:       "call_1",
			Name:     "search",
			Type:     "function",
			Inputs:   &inp,
			Function: Specification{Name: "search", Arguments: `{"query":"sf weather"}`},
		}},
	}
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("failed to marshal message: %v", err)
	}
	var decoded Message
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal message: %v", err)
	}
	if !decoded.HasToolCall() {
		t.Fatalf("expected tool call to survive roundtrip, got: %+v", decoded)
	}
	got := decoded.ToolCalls[0]
	if got.Function.Arguments != `{"query":"sf weather"}` {
		t.Errorf("unexpected arguments: %q", got.Function.Arguments)
	}
	if (*got.Inputs)["query"] != "sf weather" {
		t.Errorf("unexpected inputs: %v", *got.Inputs)
	}
}

func TestMessageJSON_ToolResultKeepsCallID(t *testing.T) {
	data, err := json.Marshal(Message{Role: RoleTool, Content: "out", ToolCallID: "call_1"})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	want := `{"role":"tool","content":"out","tool_call_id":"call_1"}`
	if string(data) != want {
		t.Fatalf("got: %s, want: %s", data, want)
	}
}

func TestChatHelpers(t *testing.T) {
	c := Chat{
		Created: time.Now(),
		ID:      "id1",
		Messages: []Message{
			{Role: RoleSystem, Content: "sys"},
			{Role: RoleUser, Content: "u1"},
			{Role: RoleAssistant, Content: "a"},
			{Role: RoleUser, Content: "u2"},
		},
	}

	if m, err := c.FirstSystemMessage(); err != nil || m.Content != "sys" {
		t.Fatalf("FirstSystemMessage unexpected: %v, %v", m, err)
	}
	if m, err := c.FirstUserMessage(); err != nil || m.Content != "u1" {
		t.Fatalf("FirstUserMessage unexpected: %v, %v", m, err)
	}
	m, idx, err := c.LastOfRole(RoleUser)
	if err != nil || m.Content != "u2" || idx != 3 {
		t.Fatalf("LastOfRole unexpected: %v, %v, %d", m, err, idx)
	}
	if _, _, err := c.LastOfRole("none"); err == nil {
		t.Fatalf("expected error for missing role")
	}
	last, err := c.LastMessage()
	if err != nil || last.Content != "u2" {
		t.Fatalf("LastMessage unexpected: %v, %v", last, err)
	}
	empty := Chat{}
	if _, err := empty.LastMessage(); err == nil {
		t.Fatal("expected error on empty chat")
	}
}
