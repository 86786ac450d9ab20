package internal

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/baalimago/toolloop/internal/utils"
)

// Flags as given on the command line. Zero values mean "not set", so that
// they don't override the environment or the config file.
type Flags struct {
	ChatModel    string
	UseTools     string
	URL          string
	SystemPrompt string
	// MaxToolCalls of 0 is unset, negative means unbounded
	MaxToolCalls int
	Verbose      bool
}

var defaultFlags = Flags{}

var errMutuallyExclusive = errors.New("values are mutually exclusive")

func flagError(err error, shortFlag, longFlag string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("flags: '%v' and '%v' are %w", shortFlag, longFlag, errMutuallyExclusive)
}

// parseFlags parses args into Flags, returning the positional arguments.
//
//	-t=* or -tools=*          => UseTools="*" (all tools)
//	-t=a,b or -tools=a,b      => UseTools="a,b" (specific tools)
//	(flag omitted)            => UseTools="" (no override)
func parseFlags(defaults Flags, args []string) (Flags, []string, error) {
	fs := flag.NewFlagSet("toolloop", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cmShort := fs.String("cm", defaults.ChatModel, "Set the chat model to use. Mutually exclusive with chat-model flag.")
	cmLong := fs.String("chat-model", defaults.ChatModel, "Set the chat model to use. Mutually exclusive with cm flag.")

	useToolsShort := fs.String("t", defaults.UseTools, "Select tools. Use '*' for all tools or comma-separated list for specific tools.")
	useToolsLong := fs.String("tools", defaults.UseTools, "Select tools. Use '*' for all tools or comma-separated list for specific tools.")

	mtcShort := fs.Int("mtc", defaults.MaxToolCalls, "Max amount of tool calls. Negative means unbounded.")
	mtcLong := fs.Int("max-tool-calls", defaults.MaxToolCalls, "Max amount of tool calls. Negative means unbounded.")

	urlShort := fs.String("u", defaults.URL, "Set the chat completions endpoint.")
	urlLong := fs.String("url", defaults.URL, "Set the chat completions endpoint.")

	spShort := fs.String("sp", defaults.SystemPrompt, "Set the system prompt.")
	spLong := fs.String("system-prompt", defaults.SystemPrompt, "Set the system prompt.")

	verboseShort := fs.Bool("v", defaults.Verbose, "Print the whole conversation to stderr.")
	verboseLong := fs.Bool("verbose", defaults.Verbose, "Print the whole conversation to stderr.")

	err := fs.Parse(args)
	if err != nil {
		return Flags{}, nil, fmt.Errorf("failed to parse args: %w", err)
	}

	chatModel, err := utils.ReturnNonDefault(*cmShort, *cmLong, defaults.ChatModel)
	if err != nil {
		return Flags{}, nil, flagError(err, "cm", "chat-model")
	}
	useTools, err := utils.ReturnNonDefault(*useToolsShort, *useToolsLong, defaults.UseTools)
	if err != nil {
		return Flags{}, nil, flagError(err, "t", "tools")
	}
	maxToolCalls, err := utils.ReturnNonDefault(*mtcShort, *mtcLong, defaults.MaxToolCalls)
	if err != nil {
		return Flags{}, nil, flagError(err, "mtc", "max-tool-calls")
	}
	url, err := utils.ReturnNonDefault(*urlShort, *urlLong, defaults.URL)
	if err != nil {
		return Flags{}, nil, flagError(err, "u", "url")
	}
	systemPrompt, err := utils.ReturnNonDefault(*spShort, *spLong, defaults.SystemPrompt)
	if err != nil {
		return Flags{}, nil, flagError(err, "sp", "system-prompt")
	}

	return Flags{
		ChatModel:    chatModel,
		UseTools:     useTools,
		URL:          url,
		SystemPrompt: systemPrompt,
		MaxToolCalls: maxToolCalls,
		Verbose:      *verboseShort || *verboseLong,
	}, fs.Args(), nil
}

// applyFlagOverrides only sets the values of conf where the flag differs
// from its default, which keeps the convention flags > env > file > default.
func applyFlagOverrides(conf *Configurations, flagSet, defaults Flags) {
	if flagSet.ChatModel != defaults.ChatModel {
		conf.Model = flagSet.ChatModel
	}
	if flagSet.UseTools != defaults.UseTools {
		conf.Tools = flagSet.UseTools
	}
	if flagSet.URL != defaults.URL {
		conf.URL = flagSet.URL
	}
	if flagSet.SystemPrompt != defaults.SystemPrompt {
		conf.SystemPrompt = flagSet.SystemPrompt
	}
	if flagSet.MaxToolCalls != defaults.MaxToolCalls {
		conf.MaxToolCalls = flagSet.MaxToolCalls
	}
	if flagSet.Verbose != defaults.Verbose {
		conf.Verbose = flagSet.Verbose
	}
}
