package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRSquared_PerfectFit(t *testing.T) {
	actual := []float64{1, 2, 3, 4, 5}
	assert.InDelta(t, 1.0, RSquared(actual, actual), 1e-9)
}

func TestRSquared_MismatchedInputs(t *testing.T) {
	assert.Zero(t, RSquared([]float64{1, 2}, []float64{1}))
	assert.Zero(t, RSquared(nil, nil))
}

func TestRMSE(t *testing.T) {
	predicted := []float64{2, 4}
	actual := []float64{1, 3}
	assert.InDelta(t, 1.0, RMSE(predicted, actual), 1e-9)
}

func TestMAE(t *testing.T) {
	predicted := []float64{2, 2}
	actual := []float64{1, 5}
	assert.InDelta(t, 2.0, MAE(predicted, actual), 1e-9)
}

func TestMAPE_SkipsZeroActuals(t *testing.T) {
	predicted := []float64{110, 50}
	actual := []float64{100, 0}
	assert.InDelta(t, 10.0, MAPE(predicted, actual), 1e-9)
}
