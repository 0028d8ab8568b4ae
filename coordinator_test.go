package prism

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestRenderOnPartialFailure(t *testing.T) {
	c := NewCoordinator()
	results, err := c.RenderOn(sampleTree(), []Platform{PlatformTerminal, Platform("hologram")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d entries", len(results))
	}
	if res := results[PlatformTerminal]; res.Err != nil || res.State == nil {
		t.Errorf("terminal entry = %+v", res)
	}
	if res := results[Platform("hologram")]; !errors.Is(res.Err, ErrInvalidPlatform) {
		t.Errorf("bogus platform err = %v, want ErrInvalidPlatform", res.Err)
	}
}

func TestConcurrentRenderAllPlatforms(t *testing.T) {
	c := NewCoordinator()
	platforms := []Platform{PlatformTerminal, PlatformDesktop, PlatformWeb}
	results, err := c.ConcurrentRender(context.Background(), sampleTree(), platforms, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range platforms {
		res, ok := results[p]
		if !ok {
			t.Errorf("%s missing from results", p)
			continue
		}
		if res.Err != nil || res.State == nil {
			t.Errorf("%s = %+v", p, res)
			continue
		}
		if res.State.Platform != p {
			t.Errorf("%s state tagged %q", p, res.State.Platform)
		}
	}
}

func TestConcurrentRenderInvalidPlatform(t *testing.T) {
	c := NewCoordinator()
	results, err := c.ConcurrentRender(context.Background(), sampleTree(),
		[]Platform{PlatformWeb, Platform("bogus")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res := results[PlatformWeb]; res.Err != nil {
		t.Errorf("web entry = %+v", res)
	}
	if res := results[Platform("bogus")]; !errors.Is(res.Err, ErrInvalidPlatform) {
		t.Errorf("bogus entry err = %v", res.Err)
	}
}

func TestConcurrentRenderTimeout(t *testing.T) {
	c := NewCoordinator()
	opts := map[string]any{"timeout": time.Nanosecond}
	results, err := c.ConcurrentRender(context.Background(), sampleTree(), []Platform{PlatformWeb}, opts)
	if err != nil {
		t.Fatal(err)
	}
	res := results[PlatformWeb]
	// nanosecond budget: either the render slipped in first or it timed out
	if res.Err != nil && !errors.Is(res.Err, ErrRenderTimeout) {
		t.Errorf("err = %v, want nil or ErrRenderTimeout", res.Err)
	}
}

func TestMergeStates(t *testing.T) {
	tests := []struct {
		name   string
		states []map[string]any
		want   map[string]any
	}{
		{
			"empty input",
			nil,
			map[string]any{},
		},
		{
			"last scalar wins",
			[]map[string]any{{"count": 1}, {"count": 2}},
			map[string]any{"count": 2},
		},
		{
			"lists replace wholesale",
			[]map[string]any{{"tags": []any{"a", "b"}}, {"tags": []any{"c"}}},
			map[string]any{"tags": []any{"c"}},
		},
		{
			"nested maps combine",
			[]map[string]any{
				{"user": map[string]any{"name": "ada", "settings": map[string]any{"theme": "dark"}}},
				{"user": map[string]any{"settings": map[string]any{"notify": true}}},
			},
			map[string]any{"user": map[string]any{
				"name": "ada",
				"settings": map[string]any{"theme": "dark", "notify": true},
			}},
		},
		{
			"map replaces scalar",
			[]map[string]any{{"x": 1}, {"x": map[string]any{"y": 2}}},
			map[string]any{"x": map[string]any{"y": 2}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeStates(tt.states)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("MergeStates mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeStatesDoesNotMutateInputs(t *testing.T) {
	a := map[string]any{"user": map[string]any{"name": "ada"}}
	b := map[string]any{"user": map[string]any{"age": 36}}
	MergeStates([]map[string]any{a, b})
	if _, ok := a["user"].(map[string]any)["age"]; ok {
		t.Error("merge wrote into an input state")
	}
}

func TestDispatchEventTargets(t *testing.T) {
	c := NewCoordinator()
	data := map[string]any{"id": "b1"}

	t.Run("channel", func(t *testing.T) {
		ch := make(chan *Signal, 1)
		sig, err := c.DispatchEvent(PlatformTerminal, "click", data, ch)
		if err != nil {
			t.Fatal(err)
		}
		select {
		case got := <-ch:
			if got != sig {
				t.Error("channel received a different signal")
			}
		default:
			t.Fatal("nothing delivered")
		}
	})

	t.Run("callback", func(t *testing.T) {
		var got *Signal
		_, err := c.DispatchEvent(PlatformTerminal, "click", data, func(s *Signal) { got = s })
		if err != nil {
			t.Fatal(err)
		}
		if got == nil || got.Type != "ui.button.clicked" {
			t.Errorf("callback got %+v", got)
		}
	})

	t.Run("callback error propagates", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := c.DispatchEvent(PlatformTerminal, "click", data, func(*Signal) error { return boom })
		if !errors.Is(err, boom) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("zero-arg callback", func(t *testing.T) {
		ran := false
		_, err := c.DispatchEvent(PlatformTerminal, "click", data, func() { ran = true })
		if err != nil || !ran {
			t.Errorf("err = %v, ran = %v", err, ran)
		}
	})

	t.Run("invalid target", func(t *testing.T) {
		_, err := c.DispatchEvent(PlatformTerminal, "click", data, 42)
		if !errors.Is(err, ErrInvalidTarget) {
			t.Errorf("err = %v, want ErrInvalidTarget", err)
		}
	})

	t.Run("full channel", func(t *testing.T) {
		ch := make(chan *Signal) // unbuffered, no receiver
		if _, err := c.DispatchEvent(PlatformTerminal, "click", data, ch); err == nil {
			t.Error("send to a blocked channel should fail, not hang")
		}
	})

	t.Run("remote without connection", func(t *testing.T) {
		_, err := c.DispatchEvent(PlatformTerminal, "click", data, &RemoteTarget{})
		if !errors.Is(err, ErrInvalidTarget) {
			t.Errorf("err = %v, want ErrInvalidTarget", err)
		}
	})
}

func TestDispatchEventRejectsBadAction(t *testing.T) {
	c := NewCoordinator()
	ch := make(chan *Signal, 1)
	_, err := c.DispatchEvent(PlatformTerminal, "mouse", map[string]any{"action": "detonate"}, ch)
	if !errors.Is(err, ErrInvalidAction) {
		t.Errorf("err = %v, want ErrInvalidAction", err)
	}
	select {
	case sig := <-ch:
		t.Errorf("rejected event still delivered %v", sig)
	default:
	}
}

func TestBroadcastEventPartialFailure(t *testing.T) {
	c := NewCoordinator()
	okCh := make(chan *Signal, 1)
	targets := []any{okCh, 42, func(*Signal) error { return errors.New("down") }}

	sig, err := c.BroadcastEvent(PlatformWeb, "click", map[string]any{"id": "b"}, targets)
	if err == nil {
		t.Fatal("partial failure should surface an error")
	}
	if !strings.Contains(err.Error(), "2 of 3") {
		t.Errorf("err = %v", err)
	}
	if !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("individual failures should be reachable, err = %v", err)
	}
	if sig == nil {
		t.Error("signal should still be returned for inspection")
	}
	select {
	case <-okCh:
	default:
		t.Error("healthy target should have received the signal")
	}
}

func TestBroadcastEventAllHealthy(t *testing.T) {
	c := NewCoordinator()
	a := make(chan *Signal, 1)
	var b *Signal
	if _, err := c.BroadcastEvent(PlatformWeb, "click", nil, []any{a, func(s *Signal) { b = s }}); err != nil {
		t.Fatal(err)
	}
	if len(a) != 1 || b == nil {
		t.Error("all targets should receive the signal")
	}
}

func TestCoordinatorRendererLookup(t *testing.T) {
	c := NewCoordinator()
	if r, ok := c.Renderer(PlatformDesktop); !ok || r.Platform() != PlatformDesktop {
		t.Errorf("Renderer(desktop) = %v, %v", r, ok)
	}
	if _, ok := c.Renderer(Platform("nope")); ok {
		t.Error("unknown platform should not resolve")
	}
}

func TestDetectPlatformsAlwaysIncludesWeb(t *testing.T) {
	found := false
	for _, p := range DetectPlatforms() {
		if p == PlatformWeb {
			found = true
		}
	}
	if !found {
		t.Error("web must always be detectable")
	}
}
