package analysis

import (
	"math"
	"sort"

	"github.com/san-kum/rootlab/internal/solver"
)

// Cluster is one distinct root found by a set of runs.
type Cluster struct {
	Root  float64
	Count int
	// Runs indexes the results that converged to this root.
	Runs []int
}

// ClusterRoots groups the iterates of converged results whose sorted
// neighbours lie within tol of each other. Root is the cluster mean.
// Clusters are returned in increasing order of Root.
func ClusterRoots(results []*solver.Result, tol float64) []Cluster {
	type hit struct {
		x   float64
		idx int
	}
	hits := make([]hit, 0, len(results))
	for i, r := range results {
		if r != nil && r.Status == solver.Converged {
			hits = append(hits, hit{x: r.X, idx: i})
		}
	}
	if len(hits) == 0 {
		return nil
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].x < hits[j].x })

	var clusters []Cluster
	var sum float64
	cur := Cluster{}
	last := math.Inf(-1)
	for _, h := range hits {
		if cur.Count > 0 && h.x-last > tol {
			cur.Root = sum / float64(cur.Count)
			clusters = append(clusters, cur)
			cur, sum = Cluster{}, 0
		}
		cur.Count++
		cur.Runs = append(cur.Runs, h.idx)
		sum += h.x
		last = h.x
	}
	cur.Root = sum / float64(cur.Count)
	return append(clusters, cur)
}

// Nearest returns the index of the cluster whose root is closest to x.
func Nearest(clusters []Cluster, x float64) int {
	best, bestDist := -1, math.Inf(1)
	for i, c := range clusters {
		if d := math.Abs(c.Root - x); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
