package sorting

// InsertionSort sorts s in place. Each shifted element and each final
// placement that changes position counts as a move.
func InsertionSort(s []int, m *Metrics) {
	for i := 1; i < len(s); i++ {
		key := s[i]
		j := i
		for j > 0 && m.less(key, s[j-1]) {
			m.move(s, j, s[j-1])
			j--
		}
		if j != i {
			m.move(s, j, key)
		}
	}
}
