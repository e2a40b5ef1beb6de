package ml

import (
	"sort"

	"golang.org/x/exp/rand"
)

// TreeNode is one node of a CART regression tree. A node with no children
// is a leaf and carries the mean target of its training subset.
type TreeNode struct {
	Feature   int
	Threshold float64
	Value     float64
	Left      *TreeNode
	Right     *TreeNode
}

func (n *TreeNode) predict(x []float64) float64 {
	node := n
	for node.Left != nil && node.Right != nil {
		if x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value
}

type treeConfig struct {
	maxDepth    int
	minLeaf     int
	maxFeatures int // 0 means consider every feature
}

// buildTree grows a regression tree on the rows named by idx, splitting by
// minimum residual sum of squares.
func buildTree(features [][]float64, targets []float64, idx []int, depth int, cfg treeConfig, rng *rand.Rand) *TreeNode {
	if depth >= cfg.maxDepth || len(idx) < 2*cfg.minLeaf {
		return leafNode(targets, idx)
	}

	feature, threshold, ok := bestSplit(features, targets, idx, cfg, rng)
	if !ok {
		return leafNode(targets, idx)
	}

	var left, right []int
	for _, i := range idx {
		if features[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < cfg.minLeaf || len(right) < cfg.minLeaf {
		return leafNode(targets, idx)
	}

	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      buildTree(features, targets, left, depth+1, cfg, rng),
		Right:     buildTree(features, targets, right, depth+1, cfg, rng),
	}
}

func leafNode(targets []float64, idx []int) *TreeNode {
	var sum float64
	for _, i := range idx {
		sum += targets[i]
	}
	return &TreeNode{Value: sum / float64(len(idx))}
}

// bestSplit scans candidate features for the threshold that minimizes the
// combined sum of squared errors of the two children.
func bestSplit(features [][]float64, targets []float64, idx []int, cfg treeConfig, rng *rand.Rand) (int, float64, bool) {
	n := len(idx)
	p := len(features[0])

	candidates := featureSubset(p, cfg.maxFeatures, rng)

	var (
		found         bool
		bestFeature   int
		bestThreshold float64
		bestCost      float64
	)

	sorted := make([]int, n)
	for _, f := range candidates {
		copy(sorted, idx)
		sort.Slice(sorted, func(a, b int) bool {
			return features[sorted[a]][f] < features[sorted[b]][f]
		})

		// Prefix sums over the sorted order let each split cost be
		// computed in constant time.
		prefixSum := make([]float64, n+1)
		prefixSumSq := make([]float64, n+1)
		for i, row := range sorted {
			y := targets[row]
			prefixSum[i+1] = prefixSum[i] + y
			prefixSumSq[i+1] = prefixSumSq[i] + y*y
		}

		for i := cfg.minLeaf; i <= n-cfg.minLeaf; i++ {
			lo := features[sorted[i-1]][f]
			hi := features[sorted[i]][f]
			if lo == hi {
				continue
			}

			nl, nr := float64(i), float64(n-i)
			sumL, sumR := prefixSum[i], prefixSum[n]-prefixSum[i]
			sqL, sqR := prefixSumSq[i], prefixSumSq[n]-prefixSumSq[i]
			cost := (sqL - sumL*sumL/nl) + (sqR - sumR*sumR/nr)

			if !found || cost < bestCost {
				found = true
				bestCost = cost
				bestFeature = f
				bestThreshold = (lo + hi) / 2
			}
		}
	}

	return bestFeature, bestThreshold, found
}

func featureSubset(p, maxFeatures int, rng *rand.Rand) []int {
	if maxFeatures <= 0 || maxFeatures >= p {
		all := make([]int, p)
		for i := range all {
			all[i] = i
		}
		return all
	}
	return rng.Perm(p)[:maxFeatures]
}
