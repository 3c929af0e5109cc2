package common

// IsSingle returns true if the slice has exactly one element.
func IsSingle[S ~[]E, E any](s S) bool {
	return len(s) == 1
}

// IsPair returns true if the slice has exactly two elements.
func IsPair[S ~[]E, E any](s S) bool {
	return len(s) == 2
}

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// TakeUntil returns the prefix of s before the first element equal to stop.
func TakeUntil[S ~[]E, E comparable](s S, stop E) S {
	for i, e := range s {
		if e == stop {
			return s[:i]
		}
	}

	return s
}
