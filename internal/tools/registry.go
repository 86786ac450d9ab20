package tools

import (
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	pub_models "github.com/baalimago/toolloop/pkg/text/models"
)

// Registry is a threadsafe storage for LLMTools, keyed by name.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]pub_models.LLMTool
	debug bool
}

// NewRegistry returns an empty tools registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]pub_models.LLMTool),
		debug: misc.Truthy(os.Getenv("DEBUG")),
	}
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (pub_models.LLMTool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// WildcardGet returns all tools with a name matching pattern.
func (r *Registry) WildcardGet(pattern string) []pub_models.LLMTool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []pub_models.LLMTool
	for _, name := range r.sortedNames() {
		if wildcardMatch(pattern, name) {
			matches = append(matches, r.tools[name])
		}
	}
	return matches
}

func wildcardMatch(pattern, name string) bool {
	if pattern == "*" {
		return true
	}

	switch {
	case len(pattern) > 1 && strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*"):
		return strings.Contains(name, pattern[1:len(pattern)-1])
	case strings.HasPrefix(pattern, "*"):
		return strings.HasSuffix(name, pattern[1:])
	case strings.HasSuffix(pattern, "*"):
		return strings.HasPrefix(name, pattern[:len(pattern)-1])
	}
	return pattern == name
}

// Set registers tool under the provided name.
func (r *Registry) Set(name string, t pub_models.LLMTool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.debug {
		ancli.Okf("adding tool to registry, name: %v\n", name)
	}
	r.tools[name] = t
}

// Register the tool under the name of its specification.
func (r *Registry) Register(t pub_models.LLMTool) {
	r.Set(t.Specification().Name, t)
}

// Names of all registered tools, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames()
}

// sortedNames expects the lock to be held.
func (r *Registry) sortedNames() []string {
	names := make([]string, 0, len(r.tools))
	for n := range r.tools {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
