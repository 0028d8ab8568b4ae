package prism

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sourcegraph/jsonrpc2"
)

var (
	ErrInvalidPlatform = errors.New("invalid_platform")
	ErrInvalidTarget   = errors.New("invalid_target")
	ErrRenderTimeout   = errors.New("render_timeout")
)

// defaultRenderTimeout bounds each platform's slot in ConcurrentRender.
const defaultRenderTimeout = 5 * time.Second

// Result is one platform's entry in a fan-out render: a state on success
// or the per-platform error. Failures on one platform never mask
// successes on another.
type Result struct {
	State *State
	Err   error
}

// RemoteTarget delivers signals to a JSON-RPC peer as notifications. The
// connection is supplied by the caller; the coordinator opens no sockets.
type RemoteTarget struct {
	Conn   *jsonrpc2.Conn
	Method string
}

// Coordinator selects renderers per platform and fans out rendering and
// event dispatch across them.
type Coordinator struct {
	renderers map[Platform]Renderer
}

// NewCoordinator creates a coordinator with all three platform renderers
// registered.
func NewCoordinator() *Coordinator {
	return &Coordinator{renderers: map[Platform]Renderer{
		PlatformTerminal: NewTerminalRenderer(),
		PlatformDesktop:  NewDesktopRenderer(),
		PlatformWeb:      NewWebRenderer(),
	}}
}

// Renderer returns the renderer registered for a platform.
func (c *Coordinator) Renderer(platform Platform) (Renderer, bool) {
	r, ok := c.renderers[platform]
	return r, ok
}

// DetectPlatforms reports which render targets the current process can
// plausibly reach: a terminal when stdout is a tty, desktop when a
// display server is advertised, web always (its output is a plain value).
func DetectPlatforms() []Platform {
	var out []Platform
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		out = append(out, PlatformTerminal)
	}
	if os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != "" {
		out = append(out, PlatformDesktop)
	}
	return append(out, PlatformWeb)
}

// RenderOn renders the tree on each requested platform sequentially. An
// unrecognized platform yields an ErrInvalidPlatform entry for that key
// only; the overall call still succeeds and the other platforms render.
func (c *Coordinator) RenderOn(root Element, platforms []Platform, opts map[string]any) (map[Platform]Result, error) {
	results := make(map[Platform]Result, len(platforms))
	for _, platform := range platforms {
		r, ok := c.renderers[platform]
		if !ok {
			results[platform] = Result{Err: fmt.Errorf("%w: %s", ErrInvalidPlatform, platform)}
			continue
		}
		st, err := r.Render(root, opts)
		results[platform] = Result{State: st, Err: err}
	}
	return results, nil
}

// ConcurrentRender renders the tree on all requested platforms in
// parallel, one task per platform. Tasks share no mutable state: each
// receives the same immutable tree and its own option copy. Results are
// combined only after every task completes or times out; a timeout or
// panic in one task is reported in that platform's slot and does not
// cancel siblings. The "timeout" option overrides the per-platform bound.
func (c *Coordinator) ConcurrentRender(ctx context.Context, root Element, platforms []Platform, opts map[string]any) (map[Platform]Result, error) {
	timeout := defaultRenderTimeout
	if d, ok := opts["timeout"].(time.Duration); ok && d > 0 {
		timeout = d
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	results := make(map[Platform]Result, len(platforms))
	put := func(p Platform, res Result) {
		mu.Lock()
		results[p] = res
		mu.Unlock()
	}

	for _, platform := range platforms {
		r, ok := c.renderers[platform]
		if !ok {
			put(platform, Result{Err: fmt.Errorf("%w: %s", ErrInvalidPlatform, platform)})
			continue
		}
		wg.Add(1)
		go func(platform Platform, r Renderer) {
			defer wg.Done()
			taskCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			done := make(chan Result, 1)
			go func() {
				defer func() {
					if rec := recover(); rec != nil {
						done <- Result{Err: fmt.Errorf("render panic: %v", rec)}
					}
				}()
				st, err := r.Render(root, copyConfig(opts))
				done <- Result{State: st, Err: err}
			}()

			select {
			case res := <-done:
				put(platform, res)
			case <-taskCtx.Done():
				put(platform, Result{Err: fmt.Errorf("%w: %s", ErrRenderTimeout, platform)})
			}
		}(platform, r)
	}
	wg.Wait()
	return results, nil
}

// MergeStates deep-merges keyed state maps in order. A key present in
// several states takes the last state's value for scalars and lists;
// nested maps under a shared key merge recursively, combining sibling
// keys instead of overwriting the whole map.
func MergeStates(states []map[string]any) map[string]any {
	merged := map[string]any{}
	for _, st := range states {
		merged = deepMerge(merged, st)
	}
	return merged
}

func deepMerge(base, over map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		if overMap, ok := v.(map[string]any); ok {
			if baseMap, ok := out[k].(map[string]any); ok {
				out[k] = deepMerge(baseMap, overMap)
				continue
			}
		}
		out[k] = v
	}
	return out
}

// DispatchEvent normalizes a raw platform event into a signal and
// delivers it to one target. The target may be a channel of signals, a
// callback taking the signal (with or without an error return), a
// zero-argument callback, or a RemoteTarget; any other shape is an
// ErrInvalidTarget.
func (c *Coordinator) DispatchEvent(platform Platform, eventType string, data map[string]any, target any) (*Signal, error) {
	sig, err := ToSignal(platform, eventType, data)
	if err != nil {
		return nil, err
	}
	if err := deliver(sig, target); err != nil {
		return nil, err
	}
	return sig, nil
}

// BroadcastEvent delivers one signal to every target, collecting per-
// target failures. A partial failure is still an error: callers must
// inspect it before assuming delivery to any subset. The individual
// delivery failures stay reachable through errors.Is and errors.As.
func (c *Coordinator) BroadcastEvent(platform Platform, eventType string, data map[string]any, targets []any) (*Signal, error) {
	sig, err := ToSignal(platform, eventType, data)
	if err != nil {
		return nil, err
	}
	var failures []error
	for _, target := range targets {
		if err := deliver(sig, target); err != nil {
			failures = append(failures, err)
		}
	}
	if len(failures) > 0 {
		return sig, fmt.Errorf("dispatch_failed: %d of %d targets: %w",
			len(failures), len(targets), errors.Join(failures...))
	}
	return sig, nil
}

// deliver sends a signal to one dispatch target.
func deliver(sig *Signal, target any) error {
	switch t := target.(type) {
	case chan *Signal:
		return sendSignal(t, sig)
	case chan<- *Signal:
		return sendSignal(t, sig)
	case func(*Signal):
		t(sig)
		return nil
	case func(*Signal) error:
		return t(sig)
	case func():
		t()
		return nil
	case *RemoteTarget:
		if t == nil || t.Conn == nil {
			return fmt.Errorf("%w: remote target without connection", ErrInvalidTarget)
		}
		method := t.Method
		if method == "" {
			method = "signal"
		}
		return t.Conn.Notify(context.Background(), method, sig)
	}
	return fmt.Errorf("%w: %T", ErrInvalidTarget, target)
}

// sendSignal delivers to a channel without blocking the dispatcher on a
// full or abandoned receiver.
func sendSignal(ch chan<- *Signal, sig *Signal) error {
	select {
	case ch <- sig:
		return nil
	default:
		return errors.New("target channel full")
	}
}
