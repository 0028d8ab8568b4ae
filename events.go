package prism

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// signalNS is the namespace prefix of every emitted signal type.
const signalNS = "ui"

// ErrInvalidAction rejects event actions outside the allowlist for their
// event family.
var ErrInvalidAction = errors.New("invalid_action")

// fixedSignalTypes is the standard vocabulary for event categories whose
// signal type is not built from caller input.
var fixedSignalTypes = map[string]string{
	"click":  signalNS + ".button.clicked",
	"change": signalNS + ".input.changed",
	"submit": signalNS + ".form.submitted",
	"focus":  signalNS + ".element.focused",
	"blur":   signalNS + ".element.blurred",
	"select": signalNS + ".item.selected",
}

// Allowlists for event families whose signal type interpolates a
// caller-supplied action token. The check runs before any string
// formatting: an unvalidated token never reaches a signal type.
var (
	mouseActions = map[string]bool{
		"pressed": true, "released": true, "clicked": true,
		"moved": true, "dragged": true, "scrolled": true,
		"entered": true, "exited": true,
	}
	windowActions = map[string]bool{
		"resized": true, "moved": true, "focused": true, "blurred": true,
		"minimized": true, "maximized": true, "restored": true, "closed": true,
	}
	keyActions = map[string]bool{
		"pressed": true, "released": true,
	}
	webHooks = map[string]bool{
		"mounted": true, "updated": true, "destroyed": true,
		"connected": true, "disconnected": true,
	}
)

// defaultSources maps each platform to its default signal source.
var defaultSources = map[Platform]string{
	PlatformTerminal: "/prism/renderers/terminal",
	PlatformDesktop:  "/prism/renderers/desktop",
	PlatformWeb:      "/prism/renderers/web",
}

// DefaultSource returns the namespaced signal source for a platform.
func DefaultSource(platform Platform) string {
	if src, ok := defaultSources[platform]; ok {
		return src
	}
	return "/prism/renderers/unknown"
}

// ValidateAction checks a caller-supplied action token against the
// allowlist of its event family. Event categories with a fixed signal
// type need no action and always pass.
func ValidateAction(eventType, action string) error {
	var allowed map[string]bool
	switch eventType {
	case "mouse":
		allowed = mouseActions
	case "window":
		allowed = windowActions
	case "key":
		allowed = keyActions
	case "web_hook":
		allowed = webHooks
	default:
		return nil
	}
	if !allowed[action] {
		return fmt.Errorf("%w: %s action %q", ErrInvalidAction, eventType, action)
	}
	return nil
}

// eventAction extracts the action token from an event payload. Non-string
// values fail validation downstream by producing an empty token.
func eventAction(data map[string]any) string {
	s, _ := data["action"].(string)
	return s
}

// ToSignal normalizes a raw (platform, event type, payload) triple into a
// signal. Interpolated families are action-validated first, then the
// payload runs the full security pipeline, then the signal type is
// assembled. The source defaults per platform and may be overridden via a
// "source" payload key.
func ToSignal(platform Platform, eventType string, data map[string]any) (*Signal, error) {
	if data == nil {
		data = map[string]any{}
	}

	var typ string
	switch eventType {
	case "mouse", "window":
		action := eventAction(data)
		if err := ValidateAction(eventType, action); err != nil {
			return nil, err
		}
		typ = fmt.Sprintf("%s.%s.%s", signalNS, eventType, action)
	case "key":
		action := eventAction(data)
		if action == "" {
			action = "pressed"
		}
		if err := ValidateAction(eventType, action); err != nil {
			return nil, err
		}
		typ = fmt.Sprintf("%s.key.%s", signalNS, action)
	case "web_hook":
		hook, _ := data["hook"].(string)
		if err := ValidateAction(eventType, hook); err != nil {
			return nil, err
		}
		typ = fmt.Sprintf("%s.web.%s", signalNS, hook)
	default:
		fixed, ok := fixedSignalTypes[eventType]
		if !ok {
			return nil, fmt.Errorf("unknown event type %q", eventType)
		}
		typ = fixed
	}

	source := DefaultSource(platform)
	if override, ok := data["source"].(string); ok && override != "" {
		source = override
		// drop the override from a copy; the caller's map stays untouched
		clean := make(map[string]any, len(data))
		for k, v := range data {
			if k != "source" {
				clean[k] = v
			}
		}
		data = clean
	}

	secured, err := Secure(data)
	if err != nil {
		return nil, err
	}
	return NewSignal(typ, source, secured)
}

// SignalFromMsg normalizes a raw bubbletea terminal message into a
// signal. Messages with no signal mapping yield (nil, nil).
func SignalFromMsg(msg tea.Msg) (*Signal, error) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		return ToSignal(PlatformTerminal, "key", map[string]any{
			"action": "pressed",
			"key":    m.String(),
		})
	case tea.MouseMsg:
		return ToSignal(PlatformTerminal, "mouse", map[string]any{
			"action": mouseActionName(tea.MouseEvent(m)),
			"x":      m.X,
			"y":      m.Y,
		})
	case tea.WindowSizeMsg:
		return ToSignal(PlatformTerminal, "window", map[string]any{
			"action": "resized",
			"width":  m.Width,
			"height": m.Height,
		})
	}
	return nil, nil
}

// mouseActionName maps bubbletea mouse events onto the allowlisted mouse
// action vocabulary.
func mouseActionName(ev tea.MouseEvent) string {
	if ev.Button == tea.MouseButtonWheelUp || ev.Button == tea.MouseButtonWheelDown ||
		ev.Button == tea.MouseButtonWheelLeft || ev.Button == tea.MouseButtonWheelRight {
		return "scrolled"
	}
	switch ev.Action {
	case tea.MouseActionPress:
		return "pressed"
	case tea.MouseActionRelease:
		return "released"
	default:
		return "moved"
	}
}
