package sorting

// Metrics counts the work a single sort invocation performs. One instance is
// threaded through every comparison and data movement of that call.
type Metrics struct {
	Comparisons uint64
	Moves       uint64
}

func (m *Metrics) less(a, b int) bool {
	m.Comparisons++
	return a < b
}

func (m *Metrics) swap(s []int, i, j int) {
	m.Moves++
	s[i], s[j] = s[j], s[i]
}

func (m *Metrics) move(dst []int, i int, v int) {
	m.Moves++
	dst[i] = v
}

// Add folds other into m.
func (m *Metrics) Add(other Metrics) {
	m.Comparisons += other.Comparisons
	m.Moves += other.Moves
}

// Reset zeroes both counters.
func (m *Metrics) Reset() {
	m.Comparisons = 0
	m.Moves = 0
}
