package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/toolloop/internal/models"
	"github.com/baalimago/toolloop/internal/text"
	"github.com/baalimago/toolloop/internal/vendors"
	"github.com/baalimago/toolloop/internal/vendors/ollama"
)

var ErrNoModel = errors.New("no model configured")

// CreateTextQuerier by checking the model for which vendor to use, then initiating
// a ChatQuerier
func CreateTextQuerier(ctx context.Context, conf text.Configurations) (models.ChatQuerier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	model := strings.TrimSpace(conf.Model)
	if model == "" {
		return nil, ErrNoModel
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("creating querier for model: '%v'\n", model))
	}

	if model == "test" || model == "mock" {
		q, err := text.NewQuerier(conf, &vendors.Mock{})
		if err != nil {
			return nil, fmt.Errorf("failed to create mock querier: %w", err)
		}
		return q, nil
	}

	defaultCpy := ollama.Default
	defaultCpy.Model = strings.TrimPrefix(model, "ollama:")
	q, err := text.NewQuerier(conf, &defaultCpy, func(o *ollama.Ollama) {
		if conf.URL != "" {
			o.URL = conf.URL
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama querier: %w", err)
	}
	return q, nil
}
