package sorting

// IsSorted reports whether s is non-decreasing.
func IsSorted(s []int) bool {
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return false
		}
	}
	return true
}

// SameMultiset reports whether a and b hold the same values with the same
// multiplicities.
func SameMultiset(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[int]int, len(a))
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		counts[v]--
		if counts[v] < 0 {
			return false
		}
	}
	return true
}

// Warmup runs sorter over a throwaway copy of at most the first 1024
// elements of s. The result is discarded.
func Warmup(s []int, sorter func([]int, *Metrics)) {
	n := min(len(s), warmupPrefixLimit)
	if n == 0 {
		return
	}
	scratch := make([]int, n)
	copy(scratch, s[:n])
	var discard Metrics
	sorter(scratch, &discard)
}
