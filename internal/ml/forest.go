package ml

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// ForestConfig configures a random forest regressor.
type ForestConfig struct {
	NumTrees    int
	MaxDepth    int
	MinLeaf     int
	MaxFeatures int // 0 selects p/3 at fit time
	Seed        uint64
}

// Forest is a random forest regressor: an ensemble of CART trees fit on
// bootstrap samples with per-split feature subsampling.
type Forest struct {
	Config ForestConfig
	Trees  []*TreeNode
}

// NewForest creates a random forest regressor with sane defaults.
func NewForest(cfg ForestConfig) *Forest {
	if cfg.NumTrees <= 0 {
		cfg.NumTrees = 100
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 10
	}
	if cfg.MinLeaf <= 0 {
		cfg.MinLeaf = 2
	}
	return &Forest{Config: cfg}
}

// Fit trains the ensemble. The same seed always produces the same forest.
func (f *Forest) Fit(features [][]float64, targets []float64) error {
	if len(features) == 0 {
		return fmt.Errorf("forest: empty training set")
	}
	if len(features) != len(targets) {
		return fmt.Errorf("forest: %d feature rows but %d targets", len(features), len(targets))
	}

	rng := rand.New(rand.NewSource(f.Config.Seed))

	maxFeatures := f.Config.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = len(features[0]) / 3
		if maxFeatures < 1 {
			maxFeatures = 1
		}
	}

	cfg := treeConfig{
		maxDepth:    f.Config.MaxDepth,
		minLeaf:     f.Config.MinLeaf,
		maxFeatures: maxFeatures,
	}

	n := len(features)
	f.Trees = make([]*TreeNode, 0, f.Config.NumTrees)
	for b := 0; b < f.Config.NumTrees; b++ {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = rng.Intn(n)
		}
		f.Trees = append(f.Trees, buildTree(features, targets, idx, 0, cfg, rng))
	}

	return nil
}

// Predict returns the mean prediction across all trees.
func (f *Forest) Predict(x []float64) float64 {
	if len(f.Trees) == 0 {
		return 0
	}
	var sum float64
	for _, tree := range f.Trees {
		sum += tree.predict(x)
	}
	return sum / float64(len(f.Trees))
}

// Name identifies the estimator kind.
func (f *Forest) Name() string {
	return "random_forest"
}
