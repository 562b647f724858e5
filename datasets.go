package algo_evolution

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

type Distribution int

const (
	Uniform Distribution = iota
	NearlySorted
	Reverse
	ManyDuplicates
	// Dataset reads a numeric column from an external CSV file.
	Dataset
)

const manyDuplicatesRange = 100

var distributionNames = map[Distribution]string{
	Uniform:        "uniform",
	NearlySorted:   "nearly_sorted",
	Reverse:        "reverse",
	ManyDuplicates: "many_duplicates",
	Dataset:        "dataset",
}

// SyntheticDistributions are the generated inputs used by default.
var SyntheticDistributions = []Distribution{Uniform, NearlySorted, Reverse, ManyDuplicates}

func (d Distribution) String() string {
	if name, ok := distributionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("distribution(%d)", int(d))
}

func (d Distribution) Valid() bool {
	_, ok := distributionNames[d]
	return ok
}

func ParseDistribution(name string) (Distribution, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for d, n := range distributionNames {
		if n == name {
			return d, nil
		}
	}
	switch name {
	case "dups", "duplicates", "manydup":
		return ManyDuplicates, nil
	case "kaggle":
		return Dataset, nil
	}
	return 0, fmt.Errorf("%w: unknown distribution %q", ErrInvalidConfig, name)
}

// UnmarshalText lets TOML configs name distributions.
func (d *Distribution) UnmarshalText(text []byte) error {
	parsed, err := ParseDistribution(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Distribution) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DistributionMask packs a distribution set into the bitmask written to logs.
func DistributionMask(dists []Distribution) uint {
	var mask uint
	for _, d := range dists {
		mask |= 1 << uint(d)
	}
	return mask
}

// MakeArray generates n values of a synthetic distribution. Dataset is not
// synthetic and falls through to Uniform.
func MakeArray(n int, d Distribution, seed uint64) []int {
	switch d {
	case NearlySorted:
		return nearlySorted(n, seed)
	case Reverse:
		return reverseSorted(n)
	case ManyDuplicates:
		return manyDuplicates(n, seed)
	}
	return uniformRandom(n, seed)
}

func uniformRandom(n int, seed uint64) []int {
	r := newRand(seed)
	a := make([]int, n)
	for i := range a {
		a[i] = int(r.Int31())
	}
	return a
}

// nearlySorted is the identity permutation with about 1% random swaps.
func nearlySorted(n int, seed uint64) []int {
	a := make([]int, n)
	for i := range a {
		a[i] = i
	}
	if n == 0 {
		return a
	}
	r := newRand(seed)
	swaps := max(1, n/100)
	for k := 0; k < swaps; k++ {
		i, j := r.Intn(n), r.Intn(n)
		a[i], a[j] = a[j], a[i]
	}
	return a
}

func reverseSorted(n int) []int {
	a := make([]int, n)
	for i := range a {
		a[i] = n - 1 - i
	}
	return a
}

func manyDuplicates(n int, seed uint64) []int {
	r := newRand(seed)
	a := make([]int, n)
	for i := range a {
		a[i] = r.Intn(manyDuplicatesRange)
	}
	return a
}

// LoadDatasetColumn reads the first numeric column of a CSV file with a
// header row, rounding values to ints. The result is truncated or cycled to
// exactly n values. Any failure, including a file with no numeric data,
// yields an empty slice so callers can fall back to synthetic input.
func LoadDatasetColumn(path string, n int) []int {
	vals, err := readNumericColumn(path, n)
	if err != nil || len(vals) == 0 {
		return nil
	}
	return cycleTo(vals, n)
}

func readNumericColumn(path string, limit int) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	column := -1
	vals := make([]int, 0, limit)
	for len(vals) < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Malformed rows are skipped, the rest of the file is still usable.
			continue
		}
		if column < 0 {
			column = firstNumericField(record)
			if column < 0 {
				continue
			}
		}
		if column >= len(record) {
			continue
		}
		if v, ok := parseNumber(record[column]); ok {
			vals = append(vals, v)
		}
	}
	return vals, nil
}

func firstNumericField(record []string) int {
	for i, cell := range record {
		if _, ok := parseNumber(cell); ok {
			return i
		}
	}
	return -1
}

func parseNumber(cell string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(math.Round(f)), true
}

// cycleTo repeats vals until it holds n values, or truncates it. An empty
// input stays empty.
func cycleTo(vals []int, n int) []int {
	if len(vals) == 0 || len(vals) == n {
		return vals
	}
	if len(vals) > n {
		return vals[:n]
	}
	out := make([]int, n)
	for i := range out {
		out[i] = vals[i%len(vals)]
	}
	return out
}
