package text

import (
	"context"
	"testing"

	"github.com/baalimago/toolloop/pkg/agent"
	"github.com/baalimago/toolloop/pkg/text/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullResponse_Query(t *testing.T) {
	q := NewFullResponseQuerier(agent.WithModel("test"), agent.WithConfigDir(t.TempDir()))
	require.NoError(t, q.Setup(context.Background()))

	chat := models.Chat{Messages: []models.Message{
		{Role: models.RoleSystem, Content: "be brief"},
		{Role: models.RoleUser, Content: "weather in san francisco?"},
	}}
	got, err := q.Query(context.Background(), chat)
	require.NoError(t, err)
	require.Len(t, got.Messages, 5)
	assert.Equal(t, chat.Messages, got.Messages[:2])
	assert.Equal(t, "It's 60 degrees and foggy.", got.Messages[4].Content)
}

func TestFullResponse_EmptyChat(t *testing.T) {
	q := NewFullResponseQuerier(agent.WithModel("test"), agent.WithConfigDir(t.TempDir()))
	require.NoError(t, q.Setup(context.Background()))
	_, err := q.Query(context.Background(), models.Chat{})
	require.Error(t, err)
}

func TestFullResponse_QueryBeforeSetup(t *testing.T) {
	q := NewFullResponseQuerier()
	_, err := q.Query(context.Background(), models.Chat{Messages: []models.Message{{Role: models.RoleUser, Content: "hi"}}})
	require.ErrorIs(t, err, agent.ErrNotSetup)
}
