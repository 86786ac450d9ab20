package internal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/baalimago/toolloop/internal/text"
	"github.com/baalimago/toolloop/internal/vendors"
	"github.com/baalimago/toolloop/internal/vendors/ollama"
	pub_models "github.com/baalimago/toolloop/pkg/text/models"
	"github.com/baalimago/toolloop/pkg/tools"
)

func TestCreateTextQuerier_Mock(t *testing.T) {
	q, err := CreateTextQuerier(context.Background(), text.Configurations{
		Model:     "test",
		ConfigDir: t.TempDir(),
		Tools:     []pub_models.LLMTool{tools.Search},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := q.(*text.Querier[*vendors.Mock]); !ok {
		t.Fatalf("expected mock querier, got: %T", q)
	}
}

func TestCreateTextQuerier_Ollama(t *testing.T) {
	cases := []struct {
		name      string
		model     string
		url       string
		wantModel string
		wantURL   string
	}{
		{
			name:      "default model",
			model:     ollama.DefaultModel,
			wantModel: "llama3.2",
			wantURL:   ollama.ChatURL,
		},
		{
			name:      "prefixed model with tag",
			model:     "ollama:deepseek-r1:8b",
			wantModel: "deepseek-r1:8b",
			wantURL:   ollama.ChatURL,
		},
		{
			name:      "url override",
			model:     "llama3.2",
			url:       "http://gpu-box:11434/v1/chat/completions",
			wantModel: "llama3.2",
			wantURL:   "http://gpu-box:11434/v1/chat/completions",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := CreateTextQuerier(context.Background(), text.Configurations{
				Model:     tc.model,
				URL:       tc.url,
				ConfigDir: t.TempDir(),
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			oq, ok := q.(*text.Querier[*ollama.Ollama])
			if !ok {
				t.Fatalf("expected ollama querier, got: %T", q)
			}
			testboil.FailTestIfDiff(t, oq.Model.StreamCompleter.Model, tc.wantModel)
			testboil.FailTestIfDiff(t, oq.Model.StreamCompleter.URL, tc.wantURL)
			testboil.FailTestIfDiff(t, *oq.Model.StreamCompleter.Temperature, 0.0)
		})
	}
}

func TestCreateTextQuerier_ConfigFileIsUsed(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "ollama_llama3.2.json"),
		[]byte(`{"model":"llama3.2","temperature":0.5,"url":"http://from-file/v1/chat/completions"}`), 0o644)
	if err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	q, err := CreateTextQuerier(context.Background(), text.Configurations{
		Model:     "llama3.2",
		ConfigDir: dir,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	oq := q.(*text.Querier[*ollama.Ollama])
	testboil.FailTestIfDiff(t, oq.Model.StreamCompleter.URL, "http://from-file/v1/chat/completions")
	testboil.FailTestIfDiff(t, *oq.Model.StreamCompleter.Temperature, 0.5)
}

func TestCreateTextQuerier_Errors(t *testing.T) {
	_, err := CreateTextQuerier(context.Background(), text.Configurations{ConfigDir: t.TempDir()})
	if !errors.Is(err, ErrNoModel) {
		t.Fatalf("expected ErrNoModel, got: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = CreateTextQuerier(ctx, text.Configurations{Model: "test", ConfigDir: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}
}
