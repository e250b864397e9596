// internal/component/registry.go
//
// Component registry (cycle-free).
//
// Each concrete component lives under components/<name> and calls
// component.Register() in an init() function.  The server mounts every
// component's Routes() at its Prefix() after the shared app aggregate is
// built.

package component

import (
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/nlplab/labsite/internal/core"
)

// Component contract.
//
// Routes() receives the app aggregate and should mount every page and
// form endpoint of the component, e.g:
//
//	r := chi.NewRouter()
//	r.Get("/login", getLogin)
//	r.Post("/login", postLogin)
//	return r
type Component interface {
	Name() string
	Prefix() string // mount point, "/" or "/admin"
	Routes(app *core.App) chi.Router
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register is invoked from component init() functions.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component sorted by name so mounting is
// deterministic.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
