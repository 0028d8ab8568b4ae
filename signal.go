package prism

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
)

// Signal is a typed, namespaced event record emitted in response to user
// interaction and consumed by an external agent runtime. Signals are
// immutable once constructed.
type Signal struct {
	Type    string         `json:"type"`
	Data    map[string]any `json:"data"`
	Source  string         `json:"source"`
	ID      string         `json:"id"`
	Subject string         `json:"subject,omitempty"`
}

// signalTypePattern: at least three dot-separated segments, each starting
// with a lowercase letter.
var signalTypePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*){2,}$`)

// ValidSignalType reports whether a type string matches the signal type
// grammar.
func ValidSignalType(typ string) bool {
	return signalTypePattern.MatchString(typ)
}

// NewSignal constructs a signal, rejecting malformed type strings.
func NewSignal(typ, source string, data map[string]any) (*Signal, error) {
	if !ValidSignalType(typ) {
		return nil, fmt.Errorf("invalid signal type %q", typ)
	}
	if data == nil {
		data = map[string]any{}
	}
	return &Signal{
		Type:   typ,
		Data:   data,
		Source: source,
		ID:     newSignalID(),
	}, nil
}

// newSignalID returns a random unique signal identifier.
func newSignalID() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// rand.Read only fails on a broken platform entropy source
		return "sig_00000000"
	}
	return "sig_" + hex.EncodeToString(buf[:])
}
