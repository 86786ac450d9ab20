package generic

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/toolloop/internal/models"
	pub_models "github.com/baalimago/toolloop/pkg/text/models"
)

var dataPrefix = []byte("data: ")

// StreamCompletions taking the messages as prompt conversation. Returns the messages from the chat model.
func (s *StreamCompleter) StreamCompletions(ctx context.Context, chat pub_models.Chat) (chan models.CompletionEvent, error) {
	s.resetToolsCall()
	req, err := s.createRequest(ctx, chat)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		res.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %v, body: %v", res.Status, string(body))
	}
	return s.handleStreamResponse(ctx, res), nil
}

func (s *StreamCompleter) createRequest(ctx context.Context, chat pub_models.Chat) (*http.Request, error) {
	reqData := req{
		Model:            s.Model,
		FrequencyPenalty: s.FrequencyPenalty,
		MaxTokens:        s.MaxTokens,
		PresencePenalty:  s.PresencePenalty,
		Temperature:      s.Temperature,
		TopP:             s.TopP,
		ResponseFormat:   responseFormat{Type: "text"},
		Messages:         chat.Messages,
		Stream:           true,
		// Only the first tool call of a message is handled, so ask for one
		ParallelToolCalls: false,
	}
	if len(s.tools) > 0 {
		reqData.Tools = s.tools
		reqData.ToolChoice = s.ToolChoice
	}
	if s.debug {
		ancli.PrintOK(fmt.Sprintf("generic streamcompleter request: %v\n", debug.IndentedJsonFmt(reqData)))
	}
	jsonData, err := json.Marshal(reqData)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %v", s.apiKey))
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Connection", "keep-alive")
	return req, nil
}

// handleStreamResponse reads the server sent events line by line until EOF,
// [DONE] or context cancellation. The channel is always closed when the
// reader goroutine exits.
func (s *StreamCompleter) handleStreamResponse(ctx context.Context, res *http.Response) chan models.CompletionEvent {
	outChan := make(chan models.CompletionEvent)
	go func() {
		defer func() {
			res.Body.Close()
			close(outChan)
		}()
		send := func(ev models.CompletionEvent) bool {
			select {
			case outChan <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		}
		br := bufio.NewReader(res.Body)
		for {
			line, err := br.ReadBytes('\n')
			if len(bytes.TrimSpace(line)) > 0 {
				ev := s.handleStreamChunk(line)
				if _, isNoop := ev.(models.NoopEvent); !isNoop {
					if !send(ev) {
						return
					}
				}
				if _, isStop := ev.(models.StopEvent); isStop {
					return
				}
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					send(models.StopEvent{})
				} else if ctx.Err() == nil {
					send(fmt.Errorf("failed to read line: %w", err))
				}
				return
			}
		}
	}()

	return outChan
}

func (s *StreamCompleter) handleStreamChunk(line []byte) models.CompletionEvent {
	line = bytes.TrimPrefix(line, dataPrefix)
	line = bytes.TrimSpace(line)
	if string(line) == "[DONE]" {
		return models.StopEvent{}
	}

	if s.debug {
		ancli.PrintOK(fmt.Sprintf("token: %+v\n", string(line)))
	}
	var chunk chatCompletionChunk
	err := json.Unmarshal(line, &chunk)
	if err != nil {
		// Comments and event names are valid sse but not json, skip those
		if s.debug {
			ancli.PrintWarn(fmt.Sprintf("failed to unmarshal token: %v, err: %v\n", string(line), err))
		}
		return models.NoopEvent{}
	}

	var chosen models.CompletionEvent = models.NoopEvent{}
	for _, choice := range chunk.Choices {
		compEvent := s.handleChoice(choice)
		switch compEvent.(type) {
		case pub_models.Call:
			// Always prefer tools call, if possible
			chosen = compEvent
		case error, string:
			if _, isNoop := chosen.(models.NoopEvent); isNoop {
				chosen = compEvent
			}
		}
	}

	if s.debug {
		ancli.PrintOK(fmt.Sprintf("chosen: %T -  %+v\n", chosen, chosen))
	}
	return chosen
}

func (s *StreamCompleter) handleChoice(choice Choice) models.CompletionEvent {
	if len(choice.Delta.ToolCalls) == 0 {
		if content, isString := choice.Delta.Content.(string); isString && content != "" {
			return content
		}
		return models.NoopEvent{}
	}

	// Name and id are only present in the first chunk of a tool call
	first := choice.Delta.ToolCalls[0]
	if first.Function.Name != "" {
		s.toolsCallName = first.Function.Name
	}
	if first.ID != "" {
		s.toolsCallID = first.ID
	}
	s.toolsCallArgsString += first.Function.Arguments

	if s.debug {
		ancli.PrintOK(fmt.Sprintf("toolsCallArgsString: %v\n", s.toolsCallArgsString))
	}
	var input pub_models.Input
	if err := json.Unmarshal([]byte(s.toolsCallArgsString), &input); err != nil {
		return models.NoopEvent{}
	}
	return s.doToolsCall(input)
}

// doToolsCall with the fully assembled arguments
func (s *StreamCompleter) doToolsCall(input pub_models.Input) models.CompletionEvent {
	defer s.resetToolsCall()
	if input == nil {
		input = pub_models.Input{}
	}
	id := s.toolsCallID
	if id == "" {
		id = "call_" + s.toolsCallName
	}
	return pub_models.Call{
		ID:     id,
		Name:   s.toolsCallName,
		Inputs: &input,
		Type:   "function",
		Function: pub_models.Specification{
			Name:      s.toolsCallName,
			Arguments: s.toolsCallArgsString,
		},
	}
}

func (s *StreamCompleter) resetToolsCall() {
	s.toolsCallName = ""
	s.toolsCallArgsString = ""
	s.toolsCallID = ""
}
