package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/go_away_boilerplate/pkg/shutdown"
	"github.com/baalimago/toolloop/internal"
	"github.com/baalimago/toolloop/internal/utils"
	"github.com/baalimago/toolloop/pkg/agent"
	"github.com/baalimago/toolloop/pkg/text/models"
)

const usage = `toolloop - a language model which may look things up before it answers

Prerequisites:
  - A running ollama instance, see https://ollama.com. The model is pulled with 'ollama pull llama3.2'
  - (Optional) Set OLLAMA_API_KEY if the endpoint requires one
  - (Optional) Set the NO_COLOR environment variable to disable ansi color output

Usage: toolloop [flags] [prompt]

Without a prompt, 'what is the weather in sf' is asked.

Flags:
  -cm, -chat-model string       Set the chat model to use. 'test' runs a scripted model. (default is found in agentConfig.json)
  -t, -tools string             Select tools. '*' for all, or a comma separated list such as 'search,website_text'. (default 'search')
  -mtc, -max-tool-calls int     Max amount of tool calls. Negative means unbounded. (default 10)
  -u, -url string               Set the chat completions endpoint. (default http://localhost:11434/v1/chat/completions)
  -sp, -system-prompt string    Set the system prompt. (default none)
  -v, -verbose bool             Print the whole conversation to stderr.

Commands:
  h|help                        Display this help message

Configuration:
  The config dir is $TOOLLOOP_CONFIG_HOME, or <user config dir>/toolloop. It contains
  agentConfig.json, one json file per model and optionally a .env file. Precedence is
  flags > environment (TOOLLOOP_MODEL, TOOLLOOP_URL, TOOLLOOP_TOOLS, TOOLLOOP_MAX_TOOL_CALLS)
  > config file > defaults.

Examples:
  - toolloop
  - toolloop -v what is the weather in san francisco
  - toolloop -cm qwen3:8b -t '*' summarize https://example.com
`

func printTranscript(msg models.Message) {
	err := utils.AttemptPrettyPrint(os.Stderr, msg, false)
	if err != nil {
		ancli.PrintWarn(fmt.Sprintf("failed to print message: %v\n", err))
	}
}

func run(args []string) int {
	ancli.SetupSlog()
	conf, err := internal.Setup(usage, args)
	if err != nil {
		if errors.Is(err, utils.ErrUserInitiatedExit) {
			return 0
		}
		ancli.PrintErr(fmt.Sprintf("failed to setup: %v\n", err))
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { shutdown.Monitor(cancel) }()

	opts := []agent.Option{
		agent.WithModel(conf.Model),
		agent.WithPrompt(conf.Prompt),
		agent.WithSystemPrompt(conf.SystemPrompt),
		agent.WithToolSelection(conf.Tools),
		agent.WithMaxToolCalls(conf.MaxToolCallsPtr()),
		agent.WithToolOutputRuneLimit(conf.ToolOutputRuneLimit),
		agent.WithConfigDir(conf.ConfigDir),
		agent.WithURL(conf.URL),
	}
	if conf.Verbose {
		opts = append(opts, agent.WithObserver(printTranscript))
	}
	a := agent.New(opts...)
	err = a.Setup(ctx)
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to setup agent: %v\n", err))
		return 1
	}

	answer, err := a.Run(ctx)
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to run: %v\n", err))
		return 1
	}
	fmt.Println(answer)
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK("things seems to have worked out. Bye bye!\n")
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:]))
}
