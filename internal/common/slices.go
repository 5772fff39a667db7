package common

// Last returns the last element of the slice and true, or the zero value and false if empty.
func Last[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[len(s)-1], true
}

// AppendUnique appends v to s unless it is already present.
// It reports whether v was appended.
func AppendUnique[S ~[]E, E comparable](s S, v E) (S, bool) {
	for _, e := range s {
		if e == v {
			return s, false
		}
	}

	return append(s, v), true
}
