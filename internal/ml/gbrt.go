package ml

import (
	"fmt"

	"golang.org/x/exp/rand"

	apperrors "github.com/carecost/predictor/pkg/errors"
)

// BoostConfig configures a gradient boosted trees regressor.
type BoostConfig struct {
	Rounds       int
	MaxDepth     int
	MinLeaf      int
	LearningRate float64
	Seed         uint64
}

// GradientBooster is a gradient boosted regression tree ensemble with a
// squared-error objective: shallow trees fit on residuals, shrunk by the
// learning rate.
type GradientBooster struct {
	Config    BoostConfig
	InitValue float64
	Trees     []*TreeNode
}

// NewGradientBooster constructs the boosted estimator. Construction fails
// when the configuration cannot yield a usable model; callers treat that
// as the capability being unavailable and fall back to the baseline.
func NewGradientBooster(cfg BoostConfig) (*GradientBooster, error) {
	if cfg.Rounds <= 0 {
		return nil, apperrors.NewUnavailableError("gradient boosting", fmt.Errorf("rounds must be positive, got %d", cfg.Rounds))
	}
	if cfg.LearningRate <= 0 || cfg.LearningRate > 1 {
		return nil, apperrors.NewUnavailableError("gradient boosting", fmt.Errorf("learning rate must be in (0, 1], got %g", cfg.LearningRate))
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 6
	}
	if cfg.MinLeaf <= 0 {
		cfg.MinLeaf = 5
	}
	return &GradientBooster{Config: cfg}, nil
}

// Fit trains the ensemble on squared-error residuals.
func (g *GradientBooster) Fit(features [][]float64, targets []float64) error {
	if len(features) == 0 {
		return fmt.Errorf("gbrt: empty training set")
	}
	if len(features) != len(targets) {
		return fmt.Errorf("gbrt: %d feature rows but %d targets", len(features), len(targets))
	}

	rng := rand.New(rand.NewSource(g.Config.Seed))
	cfg := treeConfig{
		maxDepth: g.Config.MaxDepth,
		minLeaf:  g.Config.MinLeaf,
	}

	n := len(features)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	g.InitValue = mean(targets)

	current := make([]float64, n)
	for i := range current {
		current[i] = g.InitValue
	}

	residuals := make([]float64, n)
	g.Trees = make([]*TreeNode, 0, g.Config.Rounds)
	for m := 0; m < g.Config.Rounds; m++ {
		for i := range residuals {
			residuals[i] = targets[i] - current[i]
		}

		tree := buildTree(features, residuals, idx, 0, cfg, rng)
		g.Trees = append(g.Trees, tree)

		for i := range current {
			current[i] += g.Config.LearningRate * tree.predict(features[i])
		}
	}

	return nil
}

// Predict returns the boosted prediction for one encoded record.
func (g *GradientBooster) Predict(x []float64) float64 {
	sum := g.InitValue
	for _, tree := range g.Trees {
		sum += g.Config.LearningRate * tree.predict(x)
	}
	return sum
}

// Name identifies the estimator kind.
func (g *GradientBooster) Name() string {
	return "gradient_boosting"
}
