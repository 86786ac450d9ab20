package models

import (
	"errors"
	"fmt"
	"time"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

type Chat struct {
	Created  time.Time `json:"created,omitempty"`
	ID       string    `json:"id"`
	Messages []Message `json:"messages"`
}

type Message struct {
	Role       string `json:"role"`
	Content    string `json:"content"`
	ToolCalls  []Call `json:"tool_calls,omitempty"`
	ToolCallID string `json:"tool_call_id,omitempty"`
}

// HasToolCall reports if the message is a request to invoke a tool.
func (m Message) HasToolCall() bool {
	return len(m.ToolCalls) > 0
}

func (m Message) String() string {
	return m.Content
}

// FirstSystemMessage returns the first encountered Message with role 'system'
func (c *Chat) FirstSystemMessage() (Message, error) {
	for _, msg := range c.Messages {
		if msg.Role == RoleSystem {
			return msg, nil
		}
	}
	return Message{}, errors.New("failed to find any system message")
}

func (c *Chat) FirstUserMessage() (Message, error) {
	for _, msg := range c.Messages {
		if msg.Role == RoleUser {
			return msg, nil
		}
	}
	return Message{}, errors.New("failed to find any user message")
}

func (c *Chat) LastOfRole(role string) (Message, int, error) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		msg := c.Messages[i]
		if msg.Role == role {
			return msg, i, nil
		}
	}
	return Message{}, -1, fmt.Errorf("failed to find any %v message", role)
}

// LastMessage returns the most recently appended message.
func (c *Chat) LastMessage() (Message, error) {
	if len(c.Messages) == 0 {
		return Message{}, errors.New("chat has no messages")
	}
	return c.Messages[len(c.Messages)-1], nil
}
