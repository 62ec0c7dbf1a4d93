package utils

// Abs returns the absolute value of an int.
func Abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
