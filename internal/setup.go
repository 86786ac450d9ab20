package internal

import (
	"fmt"
	"os"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/toolloop/internal/utils"
	"github.com/baalimago/toolloop/internal/vendors/ollama"
	"github.com/spf13/cast"
)

const ConfigFileName = "agentConfig.json"

// Configurations of one agent run, as resolved from defaults, the config
// file, the environment and the flags. Tools is a selection as understood by
// tools.Select.
type Configurations struct {
	Model        string `json:"model"`
	URL          string `json:"url"`
	Prompt       string `json:"prompt"`
	SystemPrompt string `json:"system-prompt"`
	Tools        string `json:"tools"`

	// MaxToolCalls caps the tool calls of a run, negative means unbounded
	MaxToolCalls        int    `json:"max-tool-calls"`
	ToolOutputRuneLimit int    `json:"tool-output-rune-limit"`
	Verbose             bool   `json:"-"`
	ConfigDir           string `json:"-"`
}

var DefaultConfig = Configurations{
	Model:        ollama.DefaultModel,
	Prompt:       "what is the weather in sf",
	Tools:        "search",
	MaxToolCalls: 10,
}

// MaxToolCallsPtr is nil when the amount of tool calls is unbounded.
func (c Configurations) MaxToolCallsPtr() *int {
	if c.MaxToolCalls < 0 {
		return nil
	}
	am := c.MaxToolCalls
	return &am
}

// applyEnvOverrides from TOOLLOOP_* variables. These may also be set by the
// .env file in the config dir.
func applyEnvOverrides(conf *Configurations) error {
	if m := os.Getenv("TOOLLOOP_MODEL"); m != "" {
		conf.Model = m
	}
	if u := os.Getenv("TOOLLOOP_URL"); u != "" {
		conf.URL = u
	}
	if t := os.Getenv("TOOLLOOP_TOOLS"); t != "" {
		conf.Tools = t
	}
	if mtc := os.Getenv("TOOLLOOP_MAX_TOOL_CALLS"); mtc != "" {
		am, err := cast.ToIntE(mtc)
		if err != nil {
			return fmt.Errorf("failed to parse TOOLLOOP_MAX_TOOL_CALLS: %w", err)
		}
		conf.MaxToolCalls = am
	}
	return nil
}

func isHelp(args []string) bool {
	if len(args) != 1 {
		return false
	}
	switch args[0] {
	case "h", "help":
		return true
	}
	return false
}

// Setup resolves the Configurations from args. The help text is printed and
// utils.ErrUserInitiatedExit returned if asked for.
func Setup(usage string, args []string) (Configurations, error) {
	flagSet, positional, err := parseFlags(defaultFlags, args)
	if err != nil {
		return Configurations{}, err
	}
	if isHelp(positional) {
		fmt.Print(usage)
		return Configurations{}, utils.ErrUserInitiatedExit
	}

	confDir, err := utils.GetConfigDir()
	if err != nil {
		return Configurations{}, fmt.Errorf("failed to find config dir: %w", err)
	}
	err = utils.CreateConfigDir(confDir)
	if err != nil {
		return Configurations{}, err
	}
	_, err = utils.LoadDotEnv(confDir)
	if err != nil {
		ancli.PrintWarn(fmt.Sprintf("failed to load .env, continuing without it: %v\n", err))
	}

	dfault := DefaultConfig
	conf, err := utils.LoadConfigFromFile(confDir, ConfigFileName, &dfault)
	if err != nil {
		return Configurations{}, fmt.Errorf("failed to load configs: %w", err)
	}
	err = applyEnvOverrides(&conf)
	if err != nil {
		return Configurations{}, err
	}
	applyFlagOverrides(&conf, flagSet, defaultFlags)
	if len(positional) > 0 {
		conf.Prompt = strings.Join(positional, " ")
	}
	conf.ConfigDir = confDir

	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("configurations: %v\n", debug.IndentedJsonFmt(conf)))
	}
	return conf, nil
}
