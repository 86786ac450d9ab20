package text

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/toolloop/internal/models"
	"github.com/baalimago/toolloop/internal/utils"
)

// vendorType returns vendor and model name, the model with any vendor
// prefix removed
func vendorType(fromModel string) (string, string) {
	if fromModel == "test" || fromModel == "mock" {
		return "mock", "mock"
	}
	return "ollama", strings.TrimPrefix(fromModel, "ollama:")
}

// configFileName for the model. Ollama tags contain ':' which is kept out of
// the file name.
func configFileName(model string) string {
	vendor, m := vendorType(model)
	m = strings.NewReplacer(":", "_", "/", "_").Replace(m)
	return fmt.Sprintf("%v_%v.json", vendor, m)
}

func setupTooling[C models.StreamCompleter](modelConf C, userConf Configurations) {
	toolBox, ok := any(modelConf).(models.ToolBox)
	if !ok {
		if len(userConf.Tools) > 0 {
			ancli.PrintWarn(fmt.Sprintf("model of type: %T can't use tools, skipping %v tools\n", modelConf, len(userConf.Tools)))
		}
		return
	}
	for _, tool := range userConf.Tools {
		if misc.Truthy(os.Getenv("DEBUG")) {
			ancli.PrintOK(fmt.Sprintf("\tadding tool: %v\n", tool.Specification().Name))
		}
		toolBox.RegisterTool(tool)
	}
}

// setupConfigFile by reading the model config at configPath. If there is
// none, the default is written and used
func setupConfigFile[C models.StreamCompleter](configPath string, dfault C) (C, error) {
	var modelConf C
	err := utils.ReadAndUnmarshal(configPath, &modelConf)
	if err == nil {
		return modelConf, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return modelConf, fmt.Errorf("failed to load model config: '%v', error: %w", configPath, err)
	}
	data, err := json.MarshalIndent(dfault, "", "  ")
	if err != nil {
		return modelConf, fmt.Errorf("failed to marshal default model: %v, error: %w", dfault, err)
	}
	err = os.WriteFile(configPath, data, 0o644)
	if err != nil {
		return modelConf, fmt.Errorf("failed to write default model config: %w", err)
	}
	err = utils.ReadAndUnmarshal(configPath, &modelConf)
	if err != nil {
		return modelConf, fmt.Errorf("failed to read default model config: %w", err)
	}
	return modelConf, nil
}

// NewQuerier loads the model config from the config dir, applies the
// overrides, registers the tools and finally sets up the model.
func NewQuerier[C models.StreamCompleter](userConf Configurations, dfault C, overrides ...func(C)) (*Querier[C], error) {
	configPath := path.Join(userConf.ConfigDir, configFileName(userConf.Model))
	modelConf, err := setupConfigFile(configPath, dfault)
	if err != nil {
		return nil, fmt.Errorf("failed to setup config file: %w", err)
	}
	for _, o := range overrides {
		o(modelConf)
	}

	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("userConf: %v\n", debug.IndentedJsonFmt(userConf)))
	}
	setupTooling(modelConf, userConf)

	err = modelConf.Setup()
	if err != nil {
		return nil, fmt.Errorf("failed to setup model: %w", err)
	}

	querier := &Querier[C]{Model: modelConf}
	if misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv("TEXT_QUERIER_DEBUG")) {
		querier.debug = true
	}
	return querier, nil
}
