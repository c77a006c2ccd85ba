package engine

import (
	"sort"
	"sync"

	"sessiond/pkg/types"
)

// Selection identifies one engine within a mode. It is chosen when a mode is
// entered and immutable for the lifetime of that session.
type Selection struct {
	Mode   types.Mode
	Engine string
}

// Factory builds a fresh adapter for one selection. A new adapter is
// constructed on every switch; adapters are never reused across sessions.
type Factory func(Deps) Adapter

// Registry maps selections to adapter factories. Concrete engines register
// themselves at wiring time; the coordinator constructs adapters only
// through Registry.New.
type Registry struct {
	mu        sync.RWMutex
	factories map[Selection]Factory
	infos     map[Selection]types.EngineInfo
	defaults  map[types.Mode]string
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[Selection]Factory),
		infos:     make(map[Selection]types.EngineInfo),
		defaults:  make(map[types.Mode]string),
	}
}

// Register adds a factory for sel. The first engine registered for a mode
// becomes that mode's default.
func (r *Registry) Register(info types.EngineInfo, f Factory) {
	sel := Selection{Mode: info.Mode, Engine: info.Engine}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[sel] = f
	r.infos[sel] = info
	if _, ok := r.defaults[info.Mode]; !ok {
		r.defaults[info.Mode] = info.Engine
	}
}

// Resolve fills in the mode's default engine when sel.Engine is empty and
// verifies the selection exists.
func (r *Registry) Resolve(sel Selection) (Selection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if sel.Engine == "" {
		sel.Engine = r.defaults[sel.Mode]
	}
	if _, ok := r.factories[sel]; !ok {
		return sel, ErrNotFound(sel)
	}
	return sel, nil
}

// New constructs a fresh adapter for sel.
func (r *Registry) New(sel Selection, deps Deps) (Adapter, error) {
	r.mu.RLock()
	f, ok := r.factories[sel]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound(sel)
	}
	return f(deps), nil
}

// List returns the registered engines, ordered by mode then engine id.
func (r *Registry) List() []types.EngineInfo {
	r.mu.RLock()
	out := make([]types.EngineInfo, 0, len(r.infos))
	for _, info := range r.infos {
		out = append(out, info)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mode != out[j].Mode {
			return out[i].Mode < out[j].Mode
		}
		return out[i].Engine < out[j].Engine
	})
	return out
}
