// Package smote implements Synthetic Minority Over-sampling Technique
// (SMOTE) with paired majority under-sampling, following Chawla et al.
// (2002). Synthetic minority records are interpolated between a record and
// one of its k nearest same-class neighbors; the majority class is then
// resampled down relative to the grown minority count.
package smote

import (
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/smotesim/dataset"
	"github.com/YuminosukeSato/smotesim/pkg/errors"
)

// SMOTE is a class-rebalancing resampler.
//
// OverPct is the oversampling percentage: 200 means two synthetic records
// per original minority record. UnderPct scales the retained majority count
// relative to the post-oversampling minority size: 100 keeps as many
// majority records as there are minority records (original plus synthetic).
type SMOTE struct {
	overPct  float64
	underPct float64
	k        int
	rng      *rand.Rand
}

// Option is a functional configuration option for SMOTE.
type Option func(*SMOTE)

// WithOverPercentage sets the oversampling percentage.
func WithOverPercentage(pct float64) Option {
	return func(s *SMOTE) { s.overPct = pct }
}

// WithUnderPercentage sets the majority under-sampling percentage.
func WithUnderPercentage(pct float64) Option {
	return func(s *SMOTE) { s.underPct = pct }
}

// WithKNeighbors sets the neighbor count used for interpolation.
func WithKNeighbors(k int) Option {
	return func(s *SMOTE) { s.k = k }
}

// WithRandomSource sets the random source, making the resample reproducible.
func WithRandomSource(src rand.Source) Option {
	return func(s *SMOTE) { s.rng = rand.New(src) }
}

// NewSMOTE creates a resampler with the conventional defaults
// (over 200%, under 200%, k = 5).
func NewSMOTE(options ...Option) *SMOTE {
	s := &SMOTE{
		overPct:  200,
		underPct: 200,
		k:        5,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return s
}

// Resample produces a class-rebalanced copy of train: original minority
// records, then synthetic minority records, then the sampled majority
// records. The output record count is exactly
// originalMinority + syntheticMinority + sampledMajority.
func (s *SMOTE) Resample(train *dataset.Dataset) (*dataset.Dataset, error) {
	const op = "SMOTE.Resample"

	if s.overPct < 0 {
		return nil, errors.NewValueError(op, "over percentage must be non-negative")
	}
	if s.underPct < 0 {
		return nil, errors.NewValueError(op, "under percentage must be non-negative")
	}
	if s.k < 1 {
		return nil, errors.NewValueError(op, "neighbor count must be at least 1")
	}
	if train == nil || train.Len() == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, op)
	}

	// The minority class is whichever label has fewer records at call time,
	// never assumed in advance. A tie makes label 1 the minority.
	minLabel := minorityLabel(train)
	minIdx := train.ClassIndices(minLabel)
	majIdx := train.ClassIndices(1 - minLabel)

	nMin := len(minIdx)
	if nMin < 2 {
		return nil, errors.NewInsufficientDataError(op, 2, nMin, "minority class too small")
	}

	k := s.k
	if k > nMin-1 {
		k = nMin - 1
	}

	minority := train.Subset(minIdx)
	synthetic := s.synthesize(minority, k)

	nSynth := 0
	if synthetic != nil {
		nSynth = synthetic.Len()
	}

	// Majority target scales with the grown minority size. When the target
	// exceeds the pool, sampling switches to with-replacement rather than
	// truncating, so the configured class ratio is honored.
	target := int(s.underPct / 100.0 * float64(nMin+nSynth))
	majority := s.sampleMajority(train, majIdx, target)

	return dataset.Concat(minority, synthetic, majority), nil
}

// synthesize generates the synthetic minority records. Each original record
// contributes floor(overPct/100) interpolations; the fractional remainder
// becomes one extra interpolation for a simple random sample of
// round(frac*nMin) records.
func (s *SMOTE) synthesize(minority *dataset.Dataset, k int) *dataset.Dataset {
	nMin := minority.Len()
	whole := int(s.overPct / 100.0)
	frac := s.overPct/100.0 - float64(whole)
	extra := int(math.Round(frac * float64(nMin)))

	total := whole*nMin + extra
	if total == 0 {
		return nil
	}

	neighbors := nearestNeighbors(minority, k)

	parents := make([]int, 0, total)
	for i := 0; i < nMin; i++ {
		for b := 0; b < whole; b++ {
			parents = append(parents, i)
		}
	}
	for _, i := range s.rng.Perm(nMin)[:extra] {
		parents = append(parents, i)
	}

	rows := make([]float64, 0, total*dataset.NumFeatures)
	labels := make([]int, total)
	minorityY := minority.Y[0]
	for out, i := range parents {
		nbr := neighbors[i][s.rng.IntN(k)]
		x1, x2 := minority.Row(i)
		n1, n2 := minority.Row(nbr)
		gamma := s.rng.Float64()
		rows = append(rows, x1+gamma*(n1-x1), x2+gamma*(n2-x2))
		labels[out] = minorityY
	}

	ds, _ := newFromRows(rows, labels)
	return ds
}

// sampleMajority draws target records from the majority pool: without
// replacement while the pool suffices, with replacement once the target
// exceeds it.
func (s *SMOTE) sampleMajority(train *dataset.Dataset, majIdx []int, target int) *dataset.Dataset {
	if target == 0 || len(majIdx) == 0 {
		return nil
	}
	picked := make([]int, 0, target)
	if target <= len(majIdx) {
		for _, i := range s.rng.Perm(len(majIdx))[:target] {
			picked = append(picked, majIdx[i])
		}
	} else {
		for j := 0; j < target; j++ {
			picked = append(picked, majIdx[s.rng.IntN(len(majIdx))])
		}
	}
	return train.Subset(picked)
}

// minorityLabel returns the label with the fewer records, taking 1 on ties.
func minorityLabel(ds *dataset.Dataset) int {
	n0, n1 := ds.ClassCounts()
	if n0 < n1 {
		return 0
	}
	return 1
}

// nearestNeighbors computes, for every record of ds, the indices of its k
// nearest neighbors within ds by Euclidean distance over the covariates.
// Brute force; the minority subsets this runs on are small.
func nearestNeighbors(ds *dataset.Dataset, k int) [][]int {
	n := ds.Len()
	out := make([][]int, n)
	for i := 0; i < n; i++ {
		cands := make([]int, 0, n-1)
		for j := 0; j < n; j++ {
			if j != i {
				cands = append(cands, j)
			}
		}
		xi1, xi2 := ds.Row(i)
		sort.Slice(cands, func(a, b int) bool {
			return squaredDistance(ds, cands[a], xi1, xi2) < squaredDistance(ds, cands[b], xi1, xi2)
		})
		out[i] = cands[:k]
	}
	return out
}

func squaredDistance(ds *dataset.Dataset, j int, x1, x2 float64) float64 {
	j1, j2 := ds.Row(j)
	d1 := j1 - x1
	d2 := j2 - x2
	return d1*d1 + d2*d2
}

func newFromRows(rows []float64, labels []int) (*dataset.Dataset, error) {
	X := mat.NewDense(len(labels), dataset.NumFeatures, rows)
	return dataset.New(X, labels)
}

// RequiredOversamplePercentage computes, from the observed class counts of
// y, the oversampling percentage that would bring the minority fraction to
// desiredRatio after oversampling (before any under-sampling):
//
//	100 * desiredRatio * nMajority / (nMinority * (1 - desiredRatio))
//
// This is the study's fixed algebraic form; it is monotonically increasing
// in desiredRatio and finite positive on (0, 1).
func RequiredOversamplePercentage(y []int, desiredRatio float64) (float64, error) {
	const op = "RequiredOversamplePercentage"

	if desiredRatio <= 0 || desiredRatio >= 1 {
		return 0, errors.NewValueError(op, "desiredRatio must be in (0, 1)")
	}
	nMin, nMaj := 0, 0
	for _, label := range y {
		if label == 1 {
			nMin++
		} else {
			nMaj++
		}
	}
	if nMin > nMaj {
		nMin, nMaj = nMaj, nMin
	}
	if nMin == 0 {
		return 0, errors.NewValueError(op, "minority class has no records")
	}
	return 100.0 * desiredRatio * float64(nMaj) / (float64(nMin) * (1.0 - desiredRatio)), nil
}
