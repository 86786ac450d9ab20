package text

import (
	"context"
	"errors"
	"os"
	"path"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/baalimago/toolloop/internal/models"
	pub_models "github.com/baalimago/toolloop/pkg/text/models"
	"github.com/baalimago/toolloop/pkg/tools"
)

// scriptedCompleter streams the given events, then closes the channel
type scriptedCompleter struct {
	Name       string `json:"name"`
	events     []models.CompletionEvent
	streamErr  error
	setupCalls int
	registered []string
}

func (s *scriptedCompleter) Setup() error {
	s.setupCalls++
	return nil
}

func (s *scriptedCompleter) RegisterTool(t pub_models.LLMTool) {
	s.registered = append(s.registered, t.Specification().Name)
}

func (s *scriptedCompleter) StreamCompletions(ctx context.Context, chat pub_models.Chat) (chan models.CompletionEvent, error) {
	if s.streamErr != nil {
		return nil, s.streamErr
	}
	ch := make(chan models.CompletionEvent)
	go func() {
		defer close(ch)
		for _, ev := range s.events {
			select {
			case ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

func TestTextQuery_Answer(t *testing.T) {
	q := Querier[*scriptedCompleter]{Model: &scriptedCompleter{events: []models.CompletionEvent{
		models.NoopEvent{}, "It's 60 ", "degrees and foggy.", models.StopEvent{}, "ignored",
	}}}
	msg, err := q.TextQuery(context.Background(), pub_models.Chat{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testboil.FailTestIfDiff(t, msg.Role, pub_models.RoleAssistant)
	testboil.FailTestIfDiff(t, msg.Content, "It's 60 degrees and foggy.")
	if msg.HasToolCall() {
		t.Fatal("expected no tool call")
	}
}

func TestTextQuery_ClosedChannelIsAnswer(t *testing.T) {
	q := Querier[*scriptedCompleter]{Model: &scriptedCompleter{events: []models.CompletionEvent{"hello"}}}
	msg, err := q.TextQuery(context.Background(), pub_models.Chat{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testboil.FailTestIfDiff(t, msg.Content, "hello")
}

func TestTextQuery_ToolCall(t *testing.T) {
	inp := pub_models.Input{"query": "sf weather"}
	q := Querier[*scriptedCompleter]{Model: &scriptedCompleter{events: []models.CompletionEvent{
		"let me check",
		pub_models.Call{ID: "call_1", Name: "search", Inputs: &inp},
		"never read",
	}}}
	msg, err := q.TextQuery(context.Background(), pub_models.Chat{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !msg.HasToolCall() || len(msg.ToolCalls) != 1 {
		t.Fatalf("expected exactly one tool call, got: %+v", msg)
	}
	call := msg.ToolCalls[0]
	testboil.FailTestIfDiff(t, call.Type, "function")
	testboil.FailTestIfDiff(t, call.Function.Name, "search")
	testboil.FailTestIfDiff(t, call.Function.Arguments, `{"query":"sf weather"}`)
	testboil.FailTestIfDiff(t, msg.Role, pub_models.RoleAssistant)
}

func TestTextQuery_Errors(t *testing.T) {
	t.Run("stream error event", func(t *testing.T) {
		q := Querier[*scriptedCompleter]{Model: &scriptedCompleter{events: []models.CompletionEvent{
			"partial", errors.New("connection reset"),
		}}}
		_, err := q.TextQuery(context.Background(), pub_models.Chat{})
		if err == nil {
			t.Fatal("expected error")
		}
		testboil.AssertStringContains(t, err.Error(), "connection reset")
	})

	t.Run("failure to start stream", func(t *testing.T) {
		q := Querier[*scriptedCompleter]{Model: &scriptedCompleter{streamErr: errors.New("backend unreachable")}}
		_, err := q.TextQuery(context.Background(), pub_models.Chat{})
		if err == nil {
			t.Fatal("expected error")
		}
		testboil.AssertStringContains(t, err.Error(), "failed to stream completions")
	})

	t.Run("unknown event type", func(t *testing.T) {
		q := Querier[*scriptedCompleter]{Model: &scriptedCompleter{events: []models.CompletionEvent{42}}}
		_, err := q.TextQuery(context.Background(), pub_models.Chat{})
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

type blockingCompleter struct{}

func (b *blockingCompleter) Setup() error { return nil }

func (b *blockingCompleter) StreamCompletions(ctx context.Context, chat pub_models.Chat) (chan models.CompletionEvent, error) {
	return make(chan models.CompletionEvent), nil
}

func TestTextQuery_ReturnsOnContextCancel(t *testing.T) {
	models.ChatQuerier_Test(t, &Querier[*blockingCompleter]{Model: &blockingCompleter{}})
}

func TestNewQuerier_WritesDefaultConfig(t *testing.T) {
	confDir := t.TempDir()
	dfault := &scriptedCompleter{Name: "default"}
	q, err := NewQuerier(Configurations{
		Model:     "ollama:qwen3:8b",
		ConfigDir: confDir,
		Tools:     []pub_models.LLMTool{tools.Search},
	}, dfault)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path.Join(confDir, "ollama_qwen3_8b.json")); err != nil {
		t.Fatalf("expected default config to be written: %v", err)
	}
	testboil.FailTestIfDiff(t, q.Model.Name, "default")
	testboil.FailTestIfDiff(t, q.Model.setupCalls, 1)
	if len(q.Model.registered) != 1 || q.Model.registered[0] != "search" {
		t.Fatalf("expected search to be registered, got: %v", q.Model.registered)
	}
}

func TestNewQuerier_ReadsExistingConfigAndOverrides(t *testing.T) {
	confDir := t.TempDir()
	err := os.WriteFile(path.Join(confDir, "ollama_llama3.2.json"), []byte(`{"name":"from-file"}`), 0o644)
	if err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	q, err := NewQuerier(Configurations{Model: "llama3.2", ConfigDir: confDir}, &scriptedCompleter{Name: "default"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testboil.FailTestIfDiff(t, q.Model.Name, "from-file")

	q, err = NewQuerier(Configurations{Model: "llama3.2", ConfigDir: confDir}, &scriptedCompleter{},
		func(s *scriptedCompleter) { s.Name = "overridden" })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testboil.FailTestIfDiff(t, q.Model.Name, "overridden")
}

func TestNewQuerier_BrokenConfig(t *testing.T) {
	confDir := t.TempDir()
	err := os.WriteFile(path.Join(confDir, "ollama_llama3.2.json"), []byte(`{not json`), 0o644)
	if err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	_, err = NewQuerier(Configurations{Model: "llama3.2", ConfigDir: confDir}, &scriptedCompleter{})
	if err == nil {
		t.Fatal("expected error on broken config")
	}
}

func TestConfigFileName(t *testing.T) {
	tcs := map[string]string{
		"llama3.2":              "ollama_llama3.2.json",
		"ollama:deepseek-r1:8b": "ollama_deepseek-r1_8b.json",
		"test":                  "mock_mock.json",
	}
	for given, want := range tcs {
		testboil.FailTestIfDiff(t, configFileName(given), want)
	}
}
