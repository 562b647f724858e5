package sorting

import "fmt"

type Pivot byte

const (
	PivotFirst Pivot = iota
	PivotLast
	PivotMedianOfThree
)

var pivotNames = [...]string{"First", "Last", "Median3"}

func (p Pivot) String() string {
	if int(p) < len(pivotNames) {
		return pivotNames[p]
	}
	return fmt.Sprintf("Pivot(%d)", p)
}

type PartitionScheme byte

const (
	Lomuto PartitionScheme = iota
	Hoare
)

func (s PartitionScheme) String() string {
	switch s {
	case Lomuto:
		return "Lomuto"
	case Hoare:
		return "Hoare"
	}
	return fmt.Sprintf("PartitionScheme(%d)", s)
}

const (
	MinInsertionCutoff = 0
	MaxInsertionCutoff = 64
	MinDepthCap        = 32
	MaxDepthCap        = 128
	// DefaultDepthCap is used when QuicksortDNA.DepthCap is 0.
	DefaultDepthCap   = 64
	MinRunThreshold   = 0
	MaxRunThreshold   = 64
	warmupPrefixLimit = 1024
)

// QuicksortDNA configures Quicksort.
type QuicksortDNA struct {
	Pivot                    Pivot
	Scheme                   PartitionScheme
	InsertionCutoff          int
	DepthCap                 int
	TailRecursionElimination bool
}

// MergesortDNA configures Mergesort.
type MergesortDNA struct {
	RunThreshold int
	Iterative    bool
	ReuseBuffer  bool
}

// Clamp pulls the integer fields back into range. A DepthCap of 0 is kept
// since it selects DefaultDepthCap.
func (d QuicksortDNA) Clamp() QuicksortDNA {
	d.InsertionCutoff = Clamp(d.InsertionCutoff, MinInsertionCutoff, MaxInsertionCutoff)
	if d.DepthCap != 0 {
		d.DepthCap = Clamp(d.DepthCap, MinDepthCap, MaxDepthCap)
	}
	if d.Pivot > PivotMedianOfThree {
		d.Pivot = PivotMedianOfThree
	}
	if d.Scheme > Hoare {
		d.Scheme = Hoare
	}
	return d
}

func (d MergesortDNA) Clamp() MergesortDNA {
	d.RunThreshold = Clamp(d.RunThreshold, MinRunThreshold, MaxRunThreshold)
	return d
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
