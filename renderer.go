package prism

import "reflect"

// Platform identifies a render target.
type Platform string

const (
	PlatformTerminal Platform = "terminal"
	PlatformDesktop  Platform = "desktop"
	PlatformWeb      Platform = "web"
)

// metaLastIUR is the state metadata key holding the last tree received,
// used for change detection on update.
const metaLastIUR = "last_iur"

// State is the value returned by Render and Update: the native output
// root, the merged option set, a monotonically increasing version, and
// auxiliary metadata. States are plain immutable values; every operation
// returns a new instance rather than mutating shared memory, which keeps
// concurrent fan-out safe.
type State struct {
	Platform Platform
	Root     any
	Config   map[string]any
	Version  int
	Meta     map[string]any
}

// Renderer is the uniform contract shared by all platform renderers.
// Convert is part of the contract, not an internal: test suites and the
// coordinator invoke it directly on sub-trees.
type Renderer interface {
	Platform() Platform
	Render(root Element, opts map[string]any) (*State, error)
	Update(root Element, st *State, opts map[string]any) (*State, error)
	Destroy(st *State) error
	Convert(node Element, st *State) any
}

// newState wraps a freshly converted root in a baseline state.
func newState(platform Platform, root any, iur Element, opts map[string]any) *State {
	return &State{
		Platform: platform,
		Root:     root,
		Config:   copyConfig(opts),
		Version:  0,
		Meta:     map[string]any{metaLastIUR: iur},
	}
}

// updateState implements the shared update semantics: merge opts into the
// existing config, and when neither the config nor the tree changed,
// return the input state untouched. Otherwise reconvert the full tree,
// replace Root only if the output differs, bump Version by exactly 1 if
// the root or config changed, and always refresh the stored tree.
func updateState(r Renderer, root Element, st *State, opts map[string]any) *State {
	merged := mergeConfig(st.Config, opts)
	cfgChanged := !reflect.DeepEqual(merged, st.Config)
	iurChanged := !reflect.DeepEqual(root, st.Meta[metaLastIUR])
	if !cfgChanged && !iurChanged {
		return st
	}

	next := &State{
		Platform: st.Platform,
		Root:     st.Root,
		Config:   merged,
		Version:  st.Version,
		Meta:     copyConfig(st.Meta),
	}
	converted := r.Convert(root, next)
	rootChanged := !reflect.DeepEqual(converted, st.Root)
	if rootChanged {
		next.Root = converted
	}
	if rootChanged || cfgChanged {
		next.Version = st.Version + 1
	}
	next.Meta[metaLastIUR] = root
	return next
}

// mergeConfig shallow-merges opts over base, opts winning.
func mergeConfig(base, opts map[string]any) map[string]any {
	out := copyConfig(base)
	for k, v := range opts {
		out[k] = v
	}
	return out
}

func copyConfig(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// configInt reads an integer option with a default.
func configInt(cfg map[string]any, key string, def int) int {
	if p := toIntPtr(cfg[key]); p != nil {
		return *p
	}
	return def
}
