package dataset

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/smotesim/pkg/errors"
)

// Params are the fixed generative parameters of one simulated population.
type Params struct {
	Intercept float64 // true beta0
	Beta1     float64 // true slope on X1
	Beta2     float64 // true slope on X2
	RateX1    float64 // rate of the exponential X1 distribution
}

// Generator draws labeled datasets from the known generative model:
//
//	X1 ~ Exponential(RateX1)
//	X2 | X1 ~ Normal(X1, 1)
//	Y  | X  ~ Bernoulli(sigmoid(Intercept + Beta1*X1 + Beta2*X2))
//
// X2 is conditionally dependent on X1 by construction, which is what makes
// the correlation column of the metric schema informative.
type Generator struct {
	params Params
}

// NewGenerator validates params and returns a Generator.
func NewGenerator(params Params) (*Generator, error) {
	if params.RateX1 <= 0 {
		return nil, errors.NewValueError("NewGenerator", "RateX1 must be positive")
	}
	return &Generator{params: params}, nil
}

// Params returns the generative parameters.
func (g *Generator) Params() Params {
	return g.params
}

// Generate draws a Dataset of exactly n records from src. Two calls with
// sources seeded identically produce identical datasets, which is what makes
// per-repetition streams reproducible.
func (g *Generator) Generate(n int, src rand.Source) (*Dataset, error) {
	if n <= 0 {
		return nil, errors.NewValueError("Generator.Generate", "n must be positive")
	}

	expX1 := distuv.Exponential{Rate: g.params.RateX1, Src: src}
	stdNorm := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	X := mat.NewDense(n, NumFeatures, nil)
	Y := make([]int, n)
	for i := 0; i < n; i++ {
		x1 := expX1.Rand()
		x2 := x1 + stdNorm.Rand() // Normal(mean=x1, sd=1)
		X.Set(i, 0, x1)
		X.Set(i, 1, x2)

		logit := g.params.Intercept + g.params.Beta1*x1 + g.params.Beta2*x2
		bern := distuv.Bernoulli{P: Sigmoid(logit), Src: src}
		Y[i] = int(bern.Rand())
	}
	return &Dataset{X: X, Y: Y}, nil
}

// Sigmoid is the logistic function mapping a log-odds value to [0, 1].
func Sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
