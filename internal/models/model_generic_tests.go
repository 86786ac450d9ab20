// This file contains tests intended to be used by the implementations of the
// ChatQuerier and StreamCompleter interfaces
package models

import (
	"context"
	"testing"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	pub_models "github.com/baalimago/toolloop/pkg/text/models"
)

// These tests are used in other places of code, an attempt at generic testing
// to ensure implementation standards are kept
func ChatQuerier_Test(t *testing.T, q ChatQuerier) {
	testboil.ReturnsOnContextCancel(t, func(ctx context.Context) {
		q.TextQuery(ctx, pub_models.Chat{})
	}, time.Second)
}

func StreamCompleter_Test(t *testing.T, s StreamCompleter) {
	testboil.ReturnsOnContextCancel(t, func(ctx context.Context) {
		ch, err := s.StreamCompletions(ctx, pub_models.Chat{})
		if err != nil {
			return
		}
		for range ch {
		}
	}, time.Second)
}
