package algo_evolution

import "github.com/xrash/smetrics"

// Diversity is the mean Wagner-Fischer distance over every pair of genome
// encodings. Populations with fewer than two members have zero diversity.
func Diversity[G Genome[G]](p Population[G]) float64 {
	if len(p) < 2 {
		return 0
	}
	enc := make([]string, len(p))
	for i, ind := range p {
		enc[i] = ind.Genome.String()
	}
	var total, pairs int
	for i := 0; i < len(enc); i++ {
		for j := i + 1; j < len(enc); j++ {
			total += smetrics.WagnerFischer(enc[i], enc[j], 1, 1, 1)
			pairs++
		}
	}
	return float64(total) / float64(pairs)
}
