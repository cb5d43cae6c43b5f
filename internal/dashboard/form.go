package dashboard

import (
	"strconv"
	"strings"
)

// FormState is the explicit, serializable value behind one open modal. The
// controller owns it for the open/close cycle and never reads state back
// out of a rendering surface.
type FormState map[string]string

func (f FormState) Get(key string) string {
	return f[key]
}

// Clone returns an independent copy so submits cannot mutate a caller's
// form after the fact.
func (f FormState) Clone() FormState {
	out := make(FormState, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// SplitList turns a comma-separated field into a clean list: items trimmed,
// blanks filtered. Empty or whitespace-only input yields an empty list.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// JoinList is the inverse used when populating an edit form.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}

// ParseFloat coerces a numeric field, falling back to 0 on garbage the same
// way the form layer always has.
func ParseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseInt coerces an integer field, 0 on garbage.
func ParseInt(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
