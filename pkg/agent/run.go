package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/baalimago/toolloop/pkg/text/models"
	"github.com/google/uuid"
)

// Chat seeded with the system prompt, if any, and the prompt as the user
// message.
func (a *Agent) Chat() models.Chat {
	msgs := make([]models.Message, 0, 2)
	if a.systemPrompt != "" {
		msgs = append(msgs, models.Message{
			Role:    models.RoleSystem,
			Content: a.systemPrompt,
		})
	}
	msgs = append(msgs, models.Message{
		Role:    models.RoleUser,
		Content: a.prompt,
	})
	return models.Chat{
		Created:  time.Now(),
		ID:       uuid.NewString(),
		Messages: msgs,
	}
}

// Run the prompt through the loop and return the final answer.
func (a *Agent) Run(ctx context.Context) (string, error) {
	c := a.Chat()
	if a.observer != nil {
		for _, m := range c.Messages {
			a.observer(m)
		}
	}
	c, err := a.Loop(ctx, c)
	if err != nil {
		return "", fmt.Errorf("failed to run chat: '%v': %w", c.ID, err)
	}
	msg, err := c.LastMessage()
	if err != nil {
		return "", fmt.Errorf("failed to get final answer: %w", err)
	}
	return msg.Content, nil
}
