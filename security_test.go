package prism

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidatePayload(t *testing.T) {
	deep := map[string]any{}
	cur := deep
	for i := 0; i < 15; i++ {
		next := map[string]any{}
		cur["k"] = next
		cur = next
	}
	cur["leaf"] = 1

	tests := []struct {
		name string
		data map[string]any
		want error
	}{
		{"small payload passes", map[string]any{"x": 1, "note": "hi"}, nil},
		{"oversized payload", map[string]any{"pad": strings.Repeat("b", 9000)}, ErrPayloadTooLarge},
		{"string too long", map[string]any{"s": strings.Repeat("a", 2000)}, ErrStringTooLong},
		{"nested too deep", deep, ErrPayloadTooDeep},
		{"long string inside list", map[string]any{"items": []any{strings.Repeat("z", 1025)}}, ErrStringTooLong},
		{"string at the limit", map[string]any{"s": strings.Repeat("a", 1024)}, nil},
		{"unserializable value", map[string]any{"ch": make(chan int)}, ErrPayloadNotSerializable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayload(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("ValidatePayload = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	in := map[string]any{
		"note":  "<script>hi</script>",
		"count": 3,
		"inner": map[string]any{"html": "a<b>c"},
		"list":  []any{"<kept>"},
	}
	got := Sanitize(in)

	want := map[string]any{
		"note":  "scripthi/script",
		"count": 3,
		"inner": map[string]any{"html": "abc"},
		"list":  []any{"<kept>"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sanitize mismatch (-want +got):\n%s", diff)
	}
	if in["note"] != "<script>hi</script>" {
		t.Error("Sanitize mutated its input")
	}
}

func TestRedact(t *testing.T) {
	in := map[string]any{
		"username":   "ada",
		"password":   "hunter2",
		"api_key":    "k-123",
		"apikey":     "k-456",
		"AuthToken":  "t-789",
		"credential": map[string]any{"secret_phrase": "s", "host": "db"},
	}
	got := Redact(in)

	for _, k := range []string{"password", "api_key", "apikey", "AuthToken"} {
		if got[k] != RedactionMarker {
			t.Errorf("%s = %v, want marker", k, got[k])
		}
	}
	if got["username"] != "ada" {
		t.Errorf("username = %v", got["username"])
	}
	nested := got["credential"].(map[string]any)
	if nested["secret_phrase"] != RedactionMarker || nested["host"] != "db" {
		t.Errorf("nested = %v", nested)
	}
	if in["password"] != "hunter2" {
		t.Error("Redact mutated its input")
	}
}

func TestSecurePipeline(t *testing.T) {
	got, err := Secure(map[string]any{
		"comment": "see <b>this</b>",
		"token":   "t-1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got["comment"] != "see bthis/b" {
		t.Errorf("comment = %v", got["comment"])
	}
	if got["token"] != RedactionMarker {
		t.Errorf("token = %v", got["token"])
	}

	if _, err := Secure(map[string]any{"s": strings.Repeat("x", 2000)}); !errors.Is(err, ErrStringTooLong) {
		t.Errorf("Secure should reject before transforming, got %v", err)
	}
}
