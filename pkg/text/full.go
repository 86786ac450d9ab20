package text

import (
	"context"
	"fmt"

	"github.com/baalimago/toolloop/pkg/agent"
	"github.com/baalimago/toolloop/pkg/text/models"
)

// FullResponse text querier, as opposed to returning a stream or something
type FullResponse interface {
	Setup(context.Context) error

	// Query the underlying llm with the chat. Will cancel on context cancel.
	Query(context.Context, models.Chat) (models.Chat, error)
}

type publicQuerier struct {
	agent agent.Agent
}

// NewFullResponseQuerier constructs a FullResponse. The options are the same
// as for an agent, except that the prompt is taken from the queried chat.
func NewFullResponseQuerier(opts ...agent.Option) FullResponse {
	return &publicQuerier{agent: agent.New(opts...)}
}

func (pq *publicQuerier) Setup(ctx context.Context) error {
	err := pq.agent.Setup(ctx)
	if err != nil {
		return fmt.Errorf("failed to setup full response querier: %w", err)
	}
	return nil
}

func (pq *publicQuerier) Query(ctx context.Context, chat models.Chat) (models.Chat, error) {
	if len(chat.Messages) == 0 {
		return chat, fmt.Errorf("can't query empty chat")
	}
	return pq.agent.Loop(ctx, chat)
}
