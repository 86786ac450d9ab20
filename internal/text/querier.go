package text

import (
	"context"
	"fmt"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/toolloop/internal/models"
	pub_models "github.com/baalimago/toolloop/pkg/text/models"
)

// Querier adapts a StreamCompleter into a models.ChatQuerier by collecting
// the stream into a single assistant message.
type Querier[C models.StreamCompleter] struct {
	Model C
	debug bool
}

// TextQuery streams completions for the chat and returns the message the
// model produced. A tool call ends the message immediately, the rest of the
// stream is discarded. Blocking operation.
func (q *Querier[C]) TextQuery(ctx context.Context, chat pub_models.Chat) (pub_models.Message, error) {
	// The stream may outlive the message when a tool call arrives early,
	// cancelling the sub context stops it
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	completionsChan, err := q.Model.StreamCompletions(subCtx, chat)
	if err != nil {
		return pub_models.Message{}, fmt.Errorf("failed to stream completions: %w", err)
	}

	var fullMsg strings.Builder
	for {
		select {
		case completion, ok := <-completionsChan:
			// Channel most likely gracefully closed
			if !ok {
				return q.answer(fullMsg.String()), nil
			}
			switch cast := completion.(type) {
			case string:
				fullMsg.WriteString(cast)
			case pub_models.Call:
				return q.toolRequest(cast), nil
			case error:
				return pub_models.Message{}, fmt.Errorf("completion stream error: %w", cast)
			case models.StopEvent:
				return q.answer(fullMsg.String()), nil
			case models.NoopEvent:
			default:
				return pub_models.Message{}, fmt.Errorf("unknown completion type: %T", completion)
			}
		case <-ctx.Done():
			return pub_models.Message{}, ctx.Err()
		}
	}
}

func (q *Querier[C]) answer(content string) pub_models.Message {
	msg := pub_models.Message{
		Role:    pub_models.RoleAssistant,
		Content: content,
	}
	if q.debug {
		ancli.PrintOK(fmt.Sprintf("answer: %v\n", debug.IndentedJsonFmt(msg)))
	}
	return msg
}

func (q *Querier[C]) toolRequest(call pub_models.Call) pub_models.Message {
	// Patch the call to clean up any potential vendor-specific issues
	call.Patch()
	msg := pub_models.Message{
		Role:      pub_models.RoleAssistant,
		ToolCalls: []pub_models.Call{call},
	}
	if q.debug {
		ancli.PrintOK(fmt.Sprintf("tool request: %v\n", debug.IndentedJsonFmt(msg)))
	}
	return msg
}
