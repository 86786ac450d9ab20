package tools

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	pub_models "github.com/baalimago/toolloop/pkg/text/models"
	"github.com/baalimago/toolloop/pkg/tools"
)

// UnknownToolPrefix is prepended to the name of a tool which the model asked
// for but which isn't registered. The run continues, the model gets to see
// the error as tool output.
const UnknownToolPrefix = "ERROR: unknown tool call: "

// Builtins are all the tools which may be selected by name.
func Builtins() []pub_models.LLMTool {
	return []pub_models.LLMTool{
		tools.Search,
		tools.WebsiteText,
	}
}

// Select builds a registry from the builtin tools.
//
//	""  or "search"    => only the search tool
//	"*"                => all builtin tools
//	"a,b"              => tools a and b, wildcards allowed per entry
func Select(selection string) (*Registry, error) {
	all := NewRegistry()
	for _, t := range Builtins() {
		all.Register(t)
	}

	selection = strings.TrimSpace(selection)
	if selection == "" {
		selection = string(pub_models.SearchTool)
	}

	r := NewRegistry()
	for _, pattern := range strings.Split(selection, ",") {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		matches := all.WildcardGet(pattern)
		if len(matches) == 0 {
			return nil, fmt.Errorf("no tool matches: '%v', available: %v", pattern, all.Names())
		}
		for _, t := range matches {
			r.Register(t)
		}
	}
	return r, nil
}

// Invoke the call, and gather both error and output in the same string
func (r *Registry) Invoke(call pub_models.Call) string {
	return r.InvokeContext(context.Background(), call)
}

// InvokeContext is Invoke where tools implementing
// pub_models.ContextLLMTool are stopped once ctx is done.
func (r *Registry) InvokeContext(ctx context.Context, call pub_models.Call) string {
	t, exists := r.Get(call.Name)
	if !exists {
		return UnknownToolPrefix + call.Name
	}
	if r.debug || misc.Truthy(os.Getenv("DEBUG_CALL")) {
		ancli.Noticef("invoke call: %v", debug.IndentedJsonFmt(call))
	}
	inp := pub_models.Input{}
	if call.Inputs != nil {
		inp = *call.Inputs
	}
	var out string
	var err error
	if ct, ok := t.(pub_models.ContextLLMTool); ok {
		out, err = ct.CallContext(ctx, inp)
	} else {
		out, err = t.Call(inp)
	}
	if err != nil {
		return fmt.Sprintf("ERROR: failed to run tool: %v, error: %v", call.Name, err)
	}
	return out
}

// Specifications of all registered tools, sorted by name.
func (r *Registry) Specifications() []pub_models.Specification {
	names := r.Names()
	specs := make([]pub_models.Specification, 0, len(names))
	for _, n := range names {
		t, _ := r.Get(n)
		specs = append(specs, t.Specification())
	}
	return specs
}
