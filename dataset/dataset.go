// Package dataset defines the labeled dataset used throughout the study and
// its synthetic generator.
package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/smotesim/pkg/errors"
)

// Dataset is an ordered collection of records with two real covariates
// (X1, X2) and a binary response. Y stays an int label end to end; no
// factor encoding happens anywhere in the pipeline.
type Dataset struct {
	X *mat.Dense // n×2 covariate matrix, column 0 = X1, column 1 = X2
	Y []int      // 0/1 labels, len n
}

// New constructs a Dataset and validates that X and Y agree in length.
func New(X *mat.Dense, Y []int) (*Dataset, error) {
	if X == nil || len(Y) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "dataset.New")
	}
	r, c := X.Dims()
	if r != len(Y) {
		return nil, errors.NewDimensionError("dataset.New", r, len(Y), 0)
	}
	if c != NumFeatures {
		return nil, errors.NewDimensionError("dataset.New", NumFeatures, c, 1)
	}
	return &Dataset{X: X, Y: Y}, nil
}

// NumFeatures is the fixed covariate count of the generative model.
const NumFeatures = 2

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Y)
}

// Row returns the covariates of record i.
func (d *Dataset) Row(i int) (x1, x2 float64) {
	return d.X.At(i, 0), d.X.At(i, 1)
}

// ClassCounts returns the number of negative and positive records.
func (d *Dataset) ClassCounts() (n0, n1 int) {
	for _, y := range d.Y {
		if y == 1 {
			n1++
		} else {
			n0++
		}
	}
	return n0, n1
}

// ClassIndices returns the record indices carrying the given label, in
// dataset order.
func (d *Dataset) ClassIndices(label int) []int {
	var idx []int
	for i, y := range d.Y {
		if y == label {
			idx = append(idx, i)
		}
	}
	return idx
}

// YVector returns the labels as an n×1 column vector for estimator Fit calls.
func (d *Dataset) YVector() *mat.VecDense {
	v := mat.NewVecDense(len(d.Y), nil)
	for i, y := range d.Y {
		v.SetVec(i, float64(y))
	}
	return v
}

// Col returns a copy of covariate column j (0 for X1, 1 for X2).
func (d *Dataset) Col(j int) []float64 {
	n := d.Len()
	out := make([]float64, n)
	mat.Col(out, j, d.X)
	return out
}

// Subset assembles a new Dataset from the given record indices, copying the
// selected rows. Indices may repeat (sampling with replacement).
func (d *Dataset) Subset(indices []int) *Dataset {
	if len(indices) == 0 {
		return &Dataset{}
	}
	X := mat.NewDense(len(indices), NumFeatures, nil)
	Y := make([]int, len(indices))
	for out, i := range indices {
		X.Set(out, 0, d.X.At(i, 0))
		X.Set(out, 1, d.X.At(i, 1))
		Y[out] = d.Y[i]
	}
	return &Dataset{X: X, Y: Y}
}

// Split partitions the dataset deterministically into a contiguous test
// prefix of floor(testFraction*n) records and the remaining train records.
// Generation order is preserved on both sides and the two parts never
// overlap.
func (d *Dataset) Split(testFraction float64) (test, train *Dataset, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, errors.NewValueError("Dataset.Split", "testFraction must be in (0, 1)")
	}
	n := d.Len()
	cut := int(testFraction * float64(n))
	if cut == 0 || cut == n {
		return nil, nil, errors.NewInsufficientDataError("Dataset.Split", 2, n, "both partitions must be non-empty")
	}

	testIdx := make([]int, cut)
	for i := range testIdx {
		testIdx[i] = i
	}
	trainIdx := make([]int, n-cut)
	for i := range trainIdx {
		trainIdx[i] = cut + i
	}
	return d.Subset(testIdx), d.Subset(trainIdx), nil
}

// Concat joins the given parts into one Dataset, preserving part order and
// record order within each part. Nil or empty parts are skipped.
func Concat(parts ...*Dataset) *Dataset {
	total := 0
	for _, p := range parts {
		if p != nil {
			total += p.Len()
		}
	}
	if total == 0 {
		return &Dataset{}
	}
	X := mat.NewDense(total, NumFeatures, nil)
	Y := make([]int, total)
	out := 0
	for _, p := range parts {
		if p == nil {
			continue
		}
		for i := 0; i < p.Len(); i++ {
			X.Set(out, 0, p.X.At(i, 0))
			X.Set(out, 1, p.X.At(i, 1))
			Y[out] = p.Y[i]
			out++
		}
	}
	return &Dataset{X: X, Y: Y}
}
