package vendors

import (
	"context"
	"strings"

	"github.com/baalimago/toolloop/internal/models"
	pub_models "github.com/baalimago/toolloop/pkg/text/models"
)

// Mock is a StreamCompleter with a scripted behaviour, suitable for running
// the agent without a model backend. For the latest user message it first
// asks for the search tool with the message as query. Once a tool result has
// been seen it answers with that result.
type Mock struct {
	tools []string
}

func (m *Mock) Setup() error {
	return nil
}

func (m *Mock) RegisterTool(t pub_models.LLMTool) {
	m.tools = append(m.tools, t.Specification().Name)
}

func (m *Mock) StreamCompletions(ctx context.Context, chat pub_models.Chat) (chan models.CompletionEvent, error) {
	ch := make(chan models.CompletionEvent, 3)
	go func() {
		defer close(ch)
		for _, ev := range m.script(chat) {
			select {
			case ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

func (m *Mock) script(chat pub_models.Chat) []models.CompletionEvent {
	uMsg, uIdx, err := chat.LastOfRole(pub_models.RoleUser)
	if err != nil {
		return []models.CompletionEvent{models.StopEvent{}}
	}
	tMsg, tIdx, err := chat.LastOfRole(pub_models.RoleTool)
	if err == nil && tIdx > uIdx {
		return []models.CompletionEvent{tMsg.Content, models.StopEvent{}}
	}
	if !m.hasTool(string(pub_models.SearchTool)) {
		return []models.CompletionEvent{uMsg.Content, models.StopEvent{}}
	}
	inp := pub_models.Input{"query": uMsg.Content}
	call := pub_models.Call{
		ID:     "call_mock_" + strings.ReplaceAll(strings.ToLower(uMsg.Content), " ", "_"),
		Name:   string(pub_models.SearchTool),
		Type:   "function",
		Inputs: &inp,
	}
	call.Patch()
	return []models.CompletionEvent{call, models.StopEvent{}}
}

func (m *Mock) hasTool(name string) bool {
	for _, t := range m.tools {
		if t == name {
			return true
		}
	}
	return false
}
