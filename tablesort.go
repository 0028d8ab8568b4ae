package prism

import (
	"fmt"
	"sort"
)

// SortRows orders table rows by the value under key. Empty input or an
// empty key returns the input unchanged. Nil values sort first under
// ascending order and last under descending order regardless of the
// direction's natural ordering; this is an explicit placement rule, not
// generic nil handling. The sort is stable and never mutates the input.
func SortRows(rows []any, key string, dir SortDir) []any {
	if len(rows) == 0 || key == "" {
		return rows
	}
	out := make([]any, len(rows))
	copy(out, rows)
	desc := dir == SortDesc
	sort.SliceStable(out, func(i, j int) bool {
		a := rowValue(out[i], key)
		b := rowValue(out[j], key)
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return !desc
		case b == nil:
			return desc
		}
		cmp := compareCell(a, b)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

// rowValue extracts the value under key from either row representation.
func rowValue(row any, key string) any {
	switch r := row.(type) {
	case Row:
		return r[key]
	case Pairs:
		return r.Get(key)
	}
	return nil
}

// compareCell compares two non-nil cell values. Values sharing a
// comparable primitive kind compare natively; anything else compares by
// its textual form.
func compareCell(a, b any) int {
	if af, aok := cellFloat(a); aok {
		if bf, bok := cellFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}
	if as, aok := a.(string); aok {
		if bs, bok := b.(string); bok {
			switch {
			case as < bs:
				return -1
			case as > bs:
				return 1
			}
			return 0
		}
	}
	as := fmt.Sprint(a)
	bs := fmt.Sprint(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}

// cellFloat converts common numeric types to float64.
func cellFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
