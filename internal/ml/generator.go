package ml

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/carecost/predictor/internal/domain/entities"
)

// Charge formula constants. The base grows with age and BMI, a smoker
// multiplies the accumulated cost, and each region carries a fixed
// multiplier.
const (
	baseCharge     = 3000.0
	agePerYear     = 250.0
	bmiRateBelow   = 50.0
	bmiRateAbove   = 300.0
	bmiKink        = 30.0
	perChild       = 500.0
	smokerFactor   = 2.5
	minCharge      = 1000.0
	generatedBMILo = 15.0
	generatedBMIHi = 50.0
)

var regionFactors = map[string]float64{
	entities.RegionNortheast: 1.10,
	entities.RegionNorthwest: 0.95,
	entities.RegionSoutheast: 1.15,
	entities.RegionSouthwest: 0.90,
}

// childrenCumulative is the cumulative distribution over 0..5 children,
// skewed toward small families.
var childrenCumulative = []float64{0.40, 0.65, 0.85, 0.95, 0.99, 1.00}

// Generator produces reproducible synthetic insurance datasets. Two
// generators with the same seed emit bit-identical output.
type Generator struct {
	seed uint64
}

// NewGenerator creates a generator for the given seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{seed: seed}
}

// Generate produces n records with charges computed from the deterministic
// formula plus bounded noise.
func (g *Generator) Generate(n int) []entities.Record {
	rng := rand.New(rand.NewSource(g.seed))
	bmiDist := distuv.Normal{Mu: 30, Sigma: 6, Src: rand.NewSource(g.seed + 1)}

	records := make([]entities.Record, n)
	for i := range records {
		records[i].Age = entities.MinAge + rng.Intn(entities.MaxAge-entities.MinAge+1)
	}
	for i := range records {
		records[i].Sex = pick(rng, entities.Sexes())
	}
	for i := range records {
		records[i].BMI = round2(clamp(bmiDist.Rand(), generatedBMILo, generatedBMIHi))
	}
	for i := range records {
		records[i].Children = drawChildren(rng)
	}
	for i := range records {
		if rng.Float64() < 0.2 {
			records[i].Smoker = entities.SmokerYes
		} else {
			records[i].Smoker = entities.SmokerNo
		}
	}
	for i := range records {
		records[i].Region = pick(rng, entities.Regions())
	}
	for i := range records {
		noise := 0.85 + rng.Float64()*0.30
		charge := ExpectedCharge(records[i]) * noise
		records[i].Charges = round2(maxFloat(charge, minCharge))
	}

	return records
}

// ExpectedCharge computes the noise-free charge for a record. The BMI term
// is continuous at the kink and strictly steeper above it, so charges never
// decrease as age, BMI or the smoker flag increase.
func ExpectedCharge(rec entities.Record) float64 {
	cost := baseCharge + float64(rec.Age)*agePerYear

	bmi := clamp(rec.BMI, generatedBMILo, entities.MaxBMI)
	if bmi > bmiKink {
		cost += bmiKink*bmiRateBelow + (bmi-bmiKink)*bmiRateAbove
	} else {
		cost += bmi * bmiRateBelow
	}

	if rec.IsSmoker() {
		cost *= smokerFactor
	}

	cost += float64(rec.Children) * perChild

	if factor, ok := regionFactors[rec.Region]; ok {
		cost *= factor
	}

	return cost
}

func drawChildren(rng *rand.Rand) int {
	u := rng.Float64()
	for k, cum := range childrenCumulative {
		if u < cum {
			return k
		}
	}
	return len(childrenCumulative) - 1
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
