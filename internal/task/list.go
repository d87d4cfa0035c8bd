package task

import (
	"slices"
	"strings"
)

// List is the ordered set of pending tasks. Display order is list order and
// duplicates are allowed.
type List []string

// Len returns the number of tasks.
func (l List) Len() int {
	return len(l)
}

// Clone returns a copy of l that shares no backing array with it.
// The result is never nil, so it encodes as [] rather than null.
func Clone(l List) List {
	out := make(List, len(l), len(l)+1)
	copy(out, l)
	return out
}

// Equal reports whether a and b hold the same tasks in the same order.
// A nil list equals an empty one.
func Equal(a, b List) bool {
	return slices.Equal(a, b)
}

// IsBlank reports whether text is empty after trimming whitespace.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// CheckIndex returns an IndexOutOfRangeError if i is not in [0, len(l)).
func CheckIndex(l List, i int) error {
	if i < 0 || i >= len(l) {
		return &IndexOutOfRangeError{Index: i, Length: len(l)}
	}
	return nil
}

// Append returns a new list with text added at the end.
// Blank text is rejected: the input list is returned and ok is false.
// Non-blank text is stored exactly as given.
func Append(l List, text string) (out List, ok bool) {
	if IsBlank(text) {
		return l, false
	}
	out = Clone(l)
	out = append(out, text)
	return out, true
}

// Replace returns a new list with the task at i set to text.
// No blank check is applied, unlike Append.
func Replace(l List, i int, text string) (List, error) {
	if err := CheckIndex(l, i); err != nil {
		return l, err
	}
	out := Clone(l)
	out[i] = text
	return out, nil
}

// Remove returns a new list without the task at i. Remaining tasks keep
// their relative order.
func Remove(l List, i int) (List, error) {
	if err := CheckIndex(l, i); err != nil {
		return l, err
	}
	out := make(List, 0, len(l)-1)
	out = append(out, l[:i]...)
	out = append(out, l[i+1:]...)
	return out, nil
}
