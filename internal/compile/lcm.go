package compile

// gcd computes the greatest common divisor of two positive integers.
func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// lcm computes the least common multiple of two positive integers.
func lcm(a, b int) int {
	return a / gcd(a, b) * b
}

// lcmAll folds lcm over a list of positive integers. The lcm of an empty
// list is 1, so a program with no reactions still scales cleanly.
func lcmAll(vs []int) int {
	l := 1
	for _, v := range vs {
		l = lcm(l, v)
	}
	return l
}
