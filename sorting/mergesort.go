package sorting

// Mergesort sorts s in place according to dna using an auxiliary buffer.
//
// The recursive mode splits top-down and merges through a freshly allocated
// copy at every level. The iterative mode insertion sorts runs of
// RunThreshold elements, then merges adjacent runs bottom-up, doubling the
// width each pass. ReuseBuffer only changes allocation behaviour; the output
// and the counters are identical either way.
func Mergesort(s []int, dna MergesortDNA, m *Metrics) {
	if len(s) <= 1 {
		return
	}
	if !dna.Iterative {
		mergesortRecursive(s, dna.RunThreshold, m)
		return
	}
	mergesortIterative(s, dna, m)
}

func mergesortRecursive(s []int, threshold int, m *Metrics) {
	n := len(s)
	if n <= 1 {
		return
	}
	if n <= threshold {
		InsertionSort(s, m)
		return
	}
	mid := n / 2
	mergesortRecursive(s[:mid], threshold, m)
	mergesortRecursive(s[mid:], threshold, m)

	tmp := make([]int, n)
	copy(tmp, s)
	merge(s, tmp, 0, mid, n, m)
}

func mergesortIterative(s []int, dna MergesortDNA, m *Metrics) {
	n := len(s)
	if dna.RunThreshold > 0 {
		for i := 0; i < n; i += dna.RunThreshold {
			InsertionSort(s[i:min(n, i+dna.RunThreshold)], m)
		}
	}

	var buf []int
	if dna.ReuseBuffer {
		buf = make([]int, n)
	}

	for width := max(1, dna.RunThreshold); width < n; width *= 2 {
		if !dna.ReuseBuffer {
			buf = make([]int, n)
		}
		for i := 0; i < n; i++ {
			m.move(buf, i, s[i])
		}
		for left := 0; left < n; left += 2 * width {
			mid := min(left+width, n)
			right := min(left+2*width, n)
			merge(s, buf, left, mid, right, m)
		}
	}
}

// merge combines src[left:mid] and src[mid:right] into dst[left:right].
// Ties take the left run's element, which keeps the sort stable.
func merge(dst, src []int, left, mid, right int, m *Metrics) {
	i, j, k := left, mid, left
	for i < mid && j < right {
		if m.less(src[j], src[i]) {
			m.move(dst, k, src[j])
			j++
		} else {
			m.move(dst, k, src[i])
			i++
		}
		k++
	}
	for ; i < mid; i++ {
		m.move(dst, k, src[i])
		k++
	}
	for ; j < right; j++ {
		m.move(dst, k, src[j])
		k++
	}
}
