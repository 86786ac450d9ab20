package agent

import (
	"context"
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/toolloop/internal"
	priv_models "github.com/baalimago/toolloop/internal/models"
	"github.com/baalimago/toolloop/internal/text"
	"github.com/baalimago/toolloop/internal/tools"
	"github.com/baalimago/toolloop/internal/utils"
	"github.com/baalimago/toolloop/internal/vendors/ollama"
	"github.com/baalimago/toolloop/pkg/text/models"
)

const (
	DefaultPrompt       = "what is the weather in sf"
	DefaultMaxToolCalls = 10
)

type Agent struct {
	model               string
	prompt              string
	systemPrompt        string
	toolSelection       string
	tools               []models.LLMTool
	cfgDir              string
	url                 string
	maxToolCalls        *int
	toolOutputRuneLimit int
	observer            func(models.Message)

	querierCreator func(ctx context.Context, conf text.Configurations) (priv_models.ChatQuerier, error)

	registry *tools.Registry
	querier  priv_models.ChatQuerier
	debug    bool
}

func defaultConf() Agent {
	maxToolCalls := DefaultMaxToolCalls
	return Agent{
		model:          ollama.DefaultModel,
		prompt:         DefaultPrompt,
		maxToolCalls:   &maxToolCalls,
		querierCreator: internal.CreateTextQuerier,
	}
}

type Option func(*Agent)

func New(options ...Option) Agent {
	conf := defaultConf()
	for _, o := range options {
		o(&conf)
	}
	return conf
}

// WithConfigDir sets where model configurations are kept. Defaults to
// utils.GetConfigDir.
func WithConfigDir(cfgDir string) Option {
	return func(a *Agent) {
		a.cfgDir = cfgDir
	}
}

// WithMaxToolCalls caps the amount of tool calls of one run. Nil means
// unbounded.
func WithMaxToolCalls(am *int) Option {
	return func(a *Agent) {
		a.maxToolCalls = am
	}
}

// WithToolOutputRuneLimit restricts the tool output seen by the model. 0 or
// less means no limit.
func WithToolOutputRuneLimit(limit int) Option {
	return func(a *Agent) {
		a.toolOutputRuneLimit = limit
	}
}

func WithModel(model string) Option {
	return func(a *Agent) {
		a.model = model
	}
}

func WithPrompt(prompt string) Option {
	return func(a *Agent) {
		a.prompt = prompt
	}
}

func WithSystemPrompt(prompt string) Option {
	return func(a *Agent) {
		a.systemPrompt = prompt
	}
}

// WithTools makes exactly these tools available, instead of selecting from
// the builtin ones.
func WithTools(tools []models.LLMTool) Option {
	return func(a *Agent) {
		a.tools = tools
	}
}

// WithToolSelection selects builtin tools by name, see tools.Select.
func WithToolSelection(selection string) Option {
	return func(a *Agent) {
		a.toolSelection = selection
	}
}

func WithURL(url string) Option {
	return func(a *Agent) {
		a.url = url
	}
}

// WithObserver is called with every message appended to the chat.
func WithObserver(observer func(models.Message)) Option {
	return func(a *Agent) {
		a.observer = observer
	}
}

func (a *Agent) setupRegistry() error {
	if len(a.tools) == 0 {
		r, err := tools.Select(a.toolSelection)
		if err != nil {
			return fmt.Errorf("failed to select tools: %w", err)
		}
		a.registry = r
		return nil
	}
	r := tools.NewRegistry()
	for _, t := range a.tools {
		r.Register(t)
	}
	a.registry = r
	return nil
}

func (a *Agent) asInternalConfig() text.Configurations {
	return text.Configurations{
		Model:     a.model,
		URL:       a.url,
		ConfigDir: a.cfgDir,
		Tools:     a.registry.WildcardGet("*"),
	}
}

// Setup the tool registry and the model. Needs to be called before Run or
// Loop.
func (a *Agent) Setup(ctx context.Context) error {
	a.debug = misc.Truthy(os.Getenv("DEBUG"))
	if a.cfgDir == "" {
		cfgDir, err := utils.GetConfigDir()
		if err != nil {
			return fmt.Errorf("failed to find config dir: %w", err)
		}
		a.cfgDir = cfgDir
	}
	err := utils.CreateConfigDir(a.cfgDir)
	if err != nil {
		return err
	}
	err = a.setupRegistry()
	if err != nil {
		return err
	}
	if a.debug {
		ancli.Okf("agent tools: %v\n", debug.IndentedJsonFmt(a.registry.Specifications()))
	}
	querier, err := a.querierCreator(ctx, a.asInternalConfig())
	if err != nil {
		return fmt.Errorf("failed to create text querier: %w", err)
	}
	a.querier = querier
	return nil
}
