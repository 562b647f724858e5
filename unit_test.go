package algo_evolution

import (
	test "testing"

	"nickandperla.net/algo_evolution/sorting"
)

func checkQuicksortRanges(t *test.T, g QuicksortGenome) {
	t.Helper()
	if g.InsertionCutoff < sorting.MinInsertionCutoff || g.InsertionCutoff > sorting.MaxInsertionCutoff {
		t.Fatalf("Cutoff out of range: %d", g.InsertionCutoff)
	}
	if g.DepthCap != 0 && (g.DepthCap < sorting.MinDepthCap || g.DepthCap > sorting.MaxDepthCap) {
		t.Fatalf("Depth cap out of range: %d", g.DepthCap)
	}
	if g.Pivot > sorting.PivotMedianOfThree || g.Scheme > sorting.Hoare {
		t.Fatalf("Enum out of range: %+v", g)
	}
}

func TestMutationStaysInRange(t *test.T) {
	r := newRand(7)
	qs := DefaultQuicksortGenome()
	ms := DefaultMergesortGenome()
	for i := 0; i < 10000; i++ {
		qs = qs.Mutate(r)
		checkQuicksortRanges(t, qs)

		ms = ms.Mutate(r)
		if ms.RunThreshold < sorting.MinRunThreshold || ms.RunThreshold > sorting.MaxRunThreshold {
			t.Fatalf("Run threshold out of range: %d", ms.RunThreshold)
		}
	}
}

func TestMutationReachesBounds(t *test.T) {
	r := newRand(11)
	qs := DefaultQuicksortGenome()
	sawLow, sawHigh := false, false
	for i := 0; i < 20000; i++ {
		qs = qs.Mutate(r)
		sawLow = sawLow || qs.InsertionCutoff == sorting.MinInsertionCutoff
		sawHigh = sawHigh || qs.InsertionCutoff == sorting.MaxInsertionCutoff
	}
	if !sawLow || !sawHigh {
		t.Errorf("Random walk never hit the cutoff bounds (low=%t high=%t)", sawLow, sawHigh)
	}
}

func TestMutateLeavesReceiverAlone(t *test.T) {
	r := newRand(3)
	g := DefaultQuicksortGenome()
	for i := 0; i < 100; i++ {
		g.Mutate(r)
		g.Nudge(r)
	}
	if g != DefaultQuicksortGenome() {
		t.Errorf("Receiver was modified: %+v", g)
	}
}

func quicksortFieldsChanged(a, b QuicksortGenome) int {
	changed := 0
	if a.Pivot != b.Pivot {
		changed++
	}
	if a.Scheme != b.Scheme {
		changed++
	}
	if a.InsertionCutoff != b.InsertionCutoff {
		changed++
	}
	if a.DepthCap != b.DepthCap {
		changed++
	}
	if a.TailRecursionElimination != b.TailRecursionElimination {
		changed++
	}
	return changed
}

func TestNudgeChangesAtMostOneField(t *test.T) {
	r := newRand(5)
	qs := DefaultQuicksortGenome()
	ms := DefaultMergesortGenome()
	for i := 0; i < 5000; i++ {
		next := qs.Nudge(r)
		if c := quicksortFieldsChanged(qs, next); c > 1 {
			t.Fatalf("Nudge changed %d fields: %+v -> %+v", c, qs, next)
		}
		checkQuicksortRanges(t, next)
		qs = next

		nextMS := ms.Nudge(r)
		changed := 0
		if nextMS.RunThreshold != ms.RunThreshold {
			changed++
		}
		if nextMS.Iterative != ms.Iterative {
			changed++
		}
		if nextMS.ReuseBuffer != ms.ReuseBuffer {
			changed++
		}
		if changed > 1 {
			t.Fatalf("Nudge changed %d fields: %+v -> %+v", changed, ms, nextMS)
		}
		ms = nextMS
	}
}

func TestNudgeFavoursIntegerFields(t *test.T) {
	r := newRand(9)
	g := QuicksortGenome{InsertionCutoff: 32, DepthCap: 64}
	toggles := 0
	const samples = 20000
	for i := 0; i < samples; i++ {
		if g.Nudge(r).TailRecursionElimination {
			toggles++
		}
	}
	share := float64(toggles) / samples
	if share < 0.08 || share > 0.12 {
		t.Errorf("Expected about 10%% tail toggles, got %.3f", share)
	}
}

func TestCrossoverTakesFieldsFromParents(t *test.T) {
	r := newRand(13)
	a := QuicksortGenome{Pivot: sorting.PivotFirst, Scheme: sorting.Lomuto, InsertionCutoff: 4, DepthCap: 40}
	b := QuicksortGenome{Pivot: sorting.PivotLast, Scheme: sorting.Hoare, InsertionCutoff: 60, DepthCap: 120,
		TailRecursionElimination: true}

	fromB := 0
	for i := 0; i < 1000; i++ {
		c := a.Crossover(b, r)
		if c.Pivot != a.Pivot && c.Pivot != b.Pivot {
			t.Fatalf("Pivot from neither parent: %v", c.Pivot)
		}
		if c.InsertionCutoff != a.InsertionCutoff && c.InsertionCutoff != b.InsertionCutoff {
			t.Fatalf("Cutoff from neither parent: %d", c.InsertionCutoff)
		}
		if c.DepthCap != a.DepthCap && c.DepthCap != b.DepthCap {
			t.Fatalf("Depth from neither parent: %d", c.DepthCap)
		}
		if c.InsertionCutoff == b.InsertionCutoff {
			fromB++
		}
	}
	if fromB < 400 || fromB > 600 {
		t.Errorf("Expected a fair coin per field, cutoff came from b %d/1000 times", fromB)
	}

	ma := MergesortGenome{RunThreshold: 2}
	mb := MergesortGenome{RunThreshold: 50, Iterative: true, ReuseBuffer: true}
	for i := 0; i < 100; i++ {
		c := ma.Crossover(mb, r)
		if c.RunThreshold != ma.RunThreshold && c.RunThreshold != mb.RunThreshold {
			t.Fatalf("Run threshold from neither parent: %d", c.RunThreshold)
		}
	}
}

func TestGenomesSortCorrectly(t *test.T) {
	input := []int{9, 2, 7, 2, 0, -4, 11, 3}
	genomes := []Sorter{
		DefaultQuicksortGenome(),
		DefaultMergesortGenome(),
		QuicksortGenome{Pivot: sorting.PivotFirst, Scheme: sorting.Lomuto, DepthCap: 32},
		MergesortGenome{},
	}
	for _, g := range genomes {
		s := append([]int(nil), input...)
		var m sorting.Metrics
		g.Sort(s, &m)
		if !sorting.IsSorted(s) || !sorting.SameMultiset(input, s) {
			t.Errorf("%v produced %v", g, s)
		}
	}
}

func TestAnnotateFillsOwnColumns(t *test.T) {
	var qs RunRecord
	DefaultQuicksortGenome().Annotate(&qs)
	if qs.Algo != "QS" || qs.Pivot == nil || *qs.Pivot != "Median3" || qs.Cutoff == nil || *qs.Cutoff != 16 {
		t.Errorf("Unexpected quicksort columns: %+v", qs)
	}
	if qs.RunThreshold != nil || qs.Iterative != nil || qs.ReuseBuffer != nil {
		t.Errorf("Mergesort columns should stay nil")
	}

	var ms RunRecord
	DefaultMergesortGenome().Annotate(&ms)
	if ms.Algo != "MS" || ms.RunThreshold == nil || *ms.RunThreshold != 16 || !*ms.Iterative {
		t.Errorf("Unexpected mergesort columns: %+v", ms)
	}
	if ms.Pivot != nil || ms.Cutoff != nil {
		t.Errorf("Quicksort columns should stay nil")
	}
}
