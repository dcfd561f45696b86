package textutil

// Ternary returns whenTrue if cond holds and whenFalse otherwise.
func Ternary[T any](cond bool, whenTrue, whenFalse T) T {
	if cond {
		return whenTrue
	}
	return whenFalse
}
