package stopwatch

// FirstItem returns the first element of s. It panics when s is empty.
func FirstItem[T any](s []T) T {
	return s[0]
}

// LastItem returns the last element of s. It panics when s is empty.
func LastItem[T any](s []T) T {
	return s[len(s)-1]
}
