package prism

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func idsOf(rows []any) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = rowValue(r, "id")
	}
	return out
}

func TestSortRowsNilPlacement(t *testing.T) {
	rows := []any{
		Row{"id": 1},
		Row{"id": nil},
		Row{"id": 2},
	}

	asc := SortRows(rows, "id", SortAsc)
	if diff := cmp.Diff([]any{nil, 1, 2}, idsOf(asc)); diff != "" {
		t.Errorf("ascending: nil must sort first (-want +got):\n%s", diff)
	}

	desc := SortRows(rows, "id", SortDesc)
	if diff := cmp.Diff([]any{2, 1, nil}, idsOf(desc)); diff != "" {
		t.Errorf("descending: nil must sort last (-want +got):\n%s", diff)
	}
}

func TestSortRowsNoOp(t *testing.T) {
	rows := []any{Row{"id": 2}, Row{"id": 1}}

	if got := SortRows(nil, "id", SortAsc); len(got) != 0 {
		t.Errorf("empty input should pass through, got %v", got)
	}
	got := SortRows(rows, "", SortAsc)
	if diff := cmp.Diff([]any{2, 1}, idsOf(got)); diff != "" {
		t.Errorf("empty key should pass through (-want +got):\n%s", diff)
	}
}

func TestSortRowsDoesNotMutate(t *testing.T) {
	rows := []any{Row{"id": 3}, Row{"id": 1}, Row{"id": 2}}
	SortRows(rows, "id", SortAsc)
	if diff := cmp.Diff([]any{3, 1, 2}, idsOf(rows)); diff != "" {
		t.Errorf("input was mutated (-want +got):\n%s", diff)
	}
}

func TestSortRowsStrings(t *testing.T) {
	rows := []any{
		Row{"name": "carol"},
		Row{"name": "alice"},
		Row{"name": "bob"},
	}
	got := SortRows(rows, "name", SortAsc)
	want := []any{"alice", "bob", "carol"}
	names := make([]any, len(got))
	for i, r := range got {
		names[i] = rowValue(r, "name")
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("string sort (-want +got):\n%s", diff)
	}
}

func TestSortRowsMixedKindsCompareTextually(t *testing.T) {
	rows := []any{
		Row{"v": "10"},
		Row{"v": 2},
		Row{"v": "1"},
	}
	got := SortRows(rows, "v", SortAsc)
	// mixed kinds coerce to text: "1" < "10" < "2"
	want := []any{"1", "10", 2}
	vals := make([]any, len(got))
	for i, r := range got {
		vals[i] = rowValue(r, "v")
	}
	if diff := cmp.Diff(want, vals); diff != "" {
		t.Errorf("mixed-kind sort (-want +got):\n%s", diff)
	}
}

func TestSortRowsPairs(t *testing.T) {
	rows := []any{
		Pairs{{Key: "id", Value: 2}},
		Pairs{{Key: "id", Value: 1}},
		Row{"id": 3},
	}
	got := SortRows(rows, "id", SortAsc)
	if diff := cmp.Diff([]any{1, 2, 3}, idsOf(got)); diff != "" {
		t.Errorf("mixed row representations (-want +got):\n%s", diff)
	}
}

func TestSortRowsNumericKindsCompareNatively(t *testing.T) {
	rows := []any{
		Row{"n": int64(20)},
		Row{"n": 3.5},
		Row{"n": 7},
	}
	got := SortRows(rows, "n", SortAsc)
	want := []any{3.5, 7, int64(20)}
	vals := make([]any, len(got))
	for i, r := range got {
		vals[i] = rowValue(r, "n")
	}
	if diff := cmp.Diff(want, vals); diff != "" {
		t.Errorf("numeric sort (-want +got):\n%s", diff)
	}
}
