package models

import (
	"context"

	pub_models "github.com/baalimago/toolloop/pkg/text/models"
)

// ChatQuerier is the model adapter. Given the whole conversation it produces
// exactly one new message: either a final answer, or a request to invoke one
// tool.
type ChatQuerier interface {
	TextQuery(context.Context, pub_models.Chat) (pub_models.Message, error)
}

type StreamCompleter interface {
	// Setup the stream completer, do things like init http.Client/websocket etc
	// Will be called synchronously. Should return error if setup fails
	Setup() error

	// StreamCompletions and return a channel which sends CompletionsEvents.
	// The CompletionEvents should be a string, a pub_models.Call or an error.
	// The channel is closed when the stream is over
	StreamCompletions(context.Context, pub_models.Chat) (chan CompletionEvent, error)
}

// ToolBox is a StreamCompleter which can advertise tools to the model.
type ToolBox interface {
	// RegisterTool registers a tool to the ToolBox
	RegisterTool(pub_models.LLMTool)
}

type CompletionEvent any

// NoopEvent is sent for chunks which carry nothing of interest, such as
// keep-alives or partial tool call arguments.
type NoopEvent struct{}

// StopEvent is sent once the model has finished its message.
type StopEvent struct{}
