package agent

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"unicode/utf8"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/toolloop/pkg/text/models"
)

const (
	// NoMoreToolCalls is the tool output once the tool call cap is reached
	NoMoreToolCalls = "ERROR: No more tool calls allowed"
	// EmptyResponse replaces tool output which is empty, as some models
	// won't accept empty tool messages
	EmptyResponse = "<EMPTY-RESPONSE>"
)

var (
	// ErrToolCallLimit is returned when the model keeps requesting tools
	// after having been told that no more tool calls are allowed
	ErrToolCallLimit = errors.New("tool call limit reached")
	ErrNotSetup      = errors.New("agent has not been setup")
)

func limitToolOutput(out string, limit int) string {
	if limit <= 0 {
		return out
	}
	amRunes := utf8.RuneCountInString(out)
	if amRunes <= limit {
		return out
	}
	return fmt.Sprintf(
		"%v... and %v more characters. The tool's output has been restricted as it's too long. Please concentrate your tool calls to reduce the amount of tokens used!",
		string([]rune(out)[:limit]), amRunes-limit)
}

// loopState is the bookkeeping of one Loop invocation
type loopState struct {
	state       State
	amToolCalls int
	// toolTurn counts the tool requesting model messages
	toolTurn int
	// softBlockedTurn is the toolTurn in which the model was first told that
	// no more tool calls are allowed, 0 if it hasn't been
	softBlockedTurn int
}

func nextState(msg models.Message) State {
	if msg.HasToolCall() {
		return AwaitingTool
	}
	return Done
}

func (a *Agent) appendMessage(chat models.Chat, msg models.Message) models.Chat {
	chat.Messages = append(chat.Messages, msg)
	if a.observer != nil {
		a.observer(msg)
	}
	return chat
}

// dispatch the call, respecting the tool call cap. Every call over the cap
// within the turn of the soft block gets NoMoreToolCalls, calls in any later
// turn return ErrToolCallLimit.
func (a *Agent) dispatch(ctx context.Context, ls *loopState, call models.Call) (string, error) {
	if a.maxToolCalls != nil && ls.amToolCalls >= *a.maxToolCalls {
		if ls.softBlockedTurn != 0 && ls.softBlockedTurn != ls.toolTurn {
			return "", ErrToolCallLimit
		}
		ls.softBlockedTurn = ls.toolTurn
		return NoMoreToolCalls, nil
	}
	ls.amToolCalls++
	out := a.registry.InvokeContext(ctx, call)
	out = limitToolOutput(out, a.toolOutputRuneLimit)
	if out == "" {
		out = EmptyResponse
	}
	return out, nil
}

// Loop drives the chat until the model answers without requesting a tool.
// Every requested tool call is answered with exactly one tool message before
// the model is queried again. Messages are only ever appended. The returned
// chat holds all messages appended so far, also on error.
func (a *Agent) Loop(ctx context.Context, chat models.Chat) (models.Chat, error) {
	if a.querier == nil || a.registry == nil {
		return chat, ErrNotSetup
	}
	chat.Messages = slices.Clone(chat.Messages)
	debugLoop := a.debug || misc.Truthy(os.Getenv("DEBUG_AGENT"))
	ls := loopState{state: AwaitingModel}
	for {
		if debugLoop {
			ancli.Noticef("state: %v, messages: %v, tool calls: %v\n", ls.state, len(chat.Messages), ls.amToolCalls)
		}
		switch ls.state {
		case AwaitingModel:
			msg, err := a.querier.TextQuery(ctx, chat)
			if err != nil {
				return chat, fmt.Errorf("failed to query model: %w", err)
			}
			chat = a.appendMessage(chat, msg)
			ls.state = nextState(msg)
		case AwaitingTool:
			if err := ctx.Err(); err != nil {
				return chat, err
			}
			last, err := chat.LastMessage()
			if err != nil {
				return chat, fmt.Errorf("failed to find tool request: %w", err)
			}
			ls.toolTurn++
			for _, call := range last.ToolCalls {
				if debugLoop || misc.Truthy(os.Getenv("DEBUG_CALL")) {
					ancli.PrintOK(fmt.Sprintf("dispatching call: %v\n", debug.IndentedJsonFmt(call)))
				}
				out, err := a.dispatch(ctx, &ls, call)
				if err != nil {
					return chat, err
				}
				chat = a.appendMessage(chat, models.Message{
					Role:       models.RoleTool,
					Content:    out,
					ToolCallID: call.ID,
				})
			}
			ls.state = AwaitingModel
		case Done:
			return chat, nil
		default:
			return chat, fmt.Errorf("unknown state: %v", ls.state)
		}
	}
}
