package utils

// Unpack2 returns the first two elements of s; missing ones are zero.
// Constraint operands use it to read optional second operands.
func Unpack2[Slice ~[]T, T any](s Slice) (first T, second T) {
	switch len(s) {
	default:
		return s[0], s[1]
	case 0:
		return
	case 1:
		first = s[0]
		return
	}
}
