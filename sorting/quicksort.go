package sorting

// Quicksort sorts s in place according to dna.
//
// Spans no longer than InsertionCutoff are insertion sorted. Each partition
// step consumes one unit of the depth budget (DepthCap, or DefaultDepthCap
// when zero); once the budget is exhausted the remaining span is insertion
// sorted. With TailRecursionElimination the smaller side is recursed into and
// the larger side is handled by the loop, bounding stack depth to O(log n).
func Quicksort(s []int, dna QuicksortDNA, m *Metrics) {
	depth := DefaultDepthCap
	if dna.DepthCap > 0 {
		depth = dna.DepthCap
	}
	quicksort(s, &dna, m, depth)
}

func quicksort(s []int, dna *QuicksortDNA, m *Metrics, depth int) {
	for {
		n := len(s)
		if n <= 1 {
			return
		}
		if n <= dna.InsertionCutoff || depth <= 0 {
			InsertionSort(s, m)
			return
		}
		depth--

		var left, right []int
		p := choosePivot(s, dna.Pivot, m)
		if dna.Scheme == Lomuto {
			m.swap(s, p, n-1)
			k := partitionLomuto(s, m)
			left, right = s[:k], s[k+1:]
		} else {
			// Hoare needs the pivot at the front so the split index stays
			// below n-1 and both sides shrink.
			m.swap(s, p, 0)
			j := partitionHoare(s, m)
			left, right = s[:j+1], s[j+1:]
		}

		if !dna.TailRecursionElimination {
			quicksort(left, dna, m, depth)
			quicksort(right, dna, m, depth)
			return
		}

		if len(left) < len(right) {
			quicksort(left, dna, m, depth)
			s = right
		} else {
			quicksort(right, dna, m, depth)
			s = left
		}
	}
}

// choosePivot returns the index of the pivot element.
func choosePivot(s []int, strategy Pivot, m *Metrics) int {
	hi := len(s) - 1
	switch strategy {
	case PivotFirst:
		return 0
	case PivotLast:
		return hi
	}

	mid := hi / 2
	a, b, c := s[0], s[mid], s[hi]
	ab := m.less(a, b)
	bc := m.less(b, c)
	ac := m.less(a, c)

	switch {
	case ab == bc:
		return mid
	case ab:
		// a < b, c <= b: the larger of a and c
		if ac {
			return hi
		}
		return 0
	default:
		// b <= a, b < c: the smaller of a and c
		if ac {
			return 0
		}
		return hi
	}
}

// partitionLomuto expects the pivot at the last index and returns its final
// position. Everything left of it is strictly less than the pivot.
func partitionLomuto(s []int, m *Metrics) int {
	hi := len(s) - 1
	pivot := s[hi]
	boundary := 0
	for i := 0; i < hi; i++ {
		if m.less(s[i], pivot) {
			m.swap(s, boundary, i)
			boundary++
		}
	}
	m.swap(s, boundary, hi)
	return boundary
}

// partitionHoare expects the pivot at index 0 and returns j such that
// s[:j+1] <= pivot <= s[j+1:], with 0 <= j < len(s)-1.
func partitionHoare(s []int, m *Metrics) int {
	pivot := s[0]
	i, j := -1, len(s)
	for {
		for {
			i++
			if !m.less(s[i], pivot) {
				break
			}
		}
		for {
			j--
			if !m.less(pivot, s[j]) {
				break
			}
		}
		if i >= j {
			return j
		}
		m.swap(s, i, j)
	}
}
