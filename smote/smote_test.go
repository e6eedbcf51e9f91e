package smote

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/smotesim/dataset"
	"github.com/YuminosukeSato/smotesim/pkg/errors"
)

// imbalanced builds a deterministic training set with nMin positive and
// nMaj negative records.
func imbalanced(t *testing.T, nMin, nMaj int) *dataset.Dataset {
	t.Helper()
	n := nMin + nMaj
	X := mat.NewDense(n, 2, nil)
	Y := make([]int, n)
	for i := 0; i < nMin; i++ {
		X.Set(i, 0, 5.0+0.1*float64(i))
		X.Set(i, 1, 5.0-0.1*float64(i))
		Y[i] = 1
	}
	for i := nMin; i < n; i++ {
		X.Set(i, 0, 0.1*float64(i-nMin))
		X.Set(i, 1, 0.05*float64(i-nMin))
		Y[i] = 0
	}
	ds, err := dataset.New(X, Y)
	if err != nil {
		t.Fatalf("dataset.New() error = %v", err)
	}
	return ds
}

func TestSMOTE_Resample_Counts(t *testing.T) {
	tests := []struct {
		name      string
		nMin      int
		nMaj      int
		overPct   float64
		underPct  float64
		k         int
		wantSynth int
		wantMaj   int
	}{
		{
			name: "whole batches only",
			nMin: 10, nMaj: 100,
			overPct: 200, underPct: 100, k: 5,
			wantSynth: 20, // 2 per original
			wantMaj:   30, // 100% of 10+20
		},
		{
			name: "fractional batch",
			nMin: 10, nMaj: 100,
			overPct: 250, underPct: 100, k: 5,
			wantSynth: 25, // 2 per original + round(0.5*10) extras
			wantMaj:   35,
		},
		{
			name: "zero oversampling degenerates to identity minority",
			nMin: 10, nMaj: 100,
			overPct: 0, underPct: 100, k: 5,
			wantSynth: 0,
			wantMaj:   10,
		},
		{
			name: "zero undersampling drops the majority",
			nMin: 10, nMaj: 100,
			overPct: 100, underPct: 0, k: 5,
			wantSynth: 10,
			wantMaj:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			train := imbalanced(t, tt.nMin, tt.nMaj)
			s := NewSMOTE(
				WithOverPercentage(tt.overPct),
				WithUnderPercentage(tt.underPct),
				WithKNeighbors(tt.k),
				WithRandomSource(rand.NewPCG(1, 1)),
			)

			out, err := s.Resample(train)
			if err != nil {
				t.Fatalf("Resample() error = %v", err)
			}

			wantTotal := tt.nMin + tt.wantSynth + tt.wantMaj
			if out.Len() != wantTotal {
				t.Errorf("output size = %d, want %d (min %d + synth %d + maj %d)",
					out.Len(), wantTotal, tt.nMin, tt.wantSynth, tt.wantMaj)
			}

			n0, n1 := out.ClassCounts()
			if n1 != tt.nMin+tt.wantSynth {
				t.Errorf("minority count = %d, want %d", n1, tt.nMin+tt.wantSynth)
			}
			if n0 != tt.wantMaj {
				t.Errorf("majority count = %d, want %d", n0, tt.wantMaj)
			}

			// Minority strictly grows whenever overPct > 0, and the retained
			// majority never exceeds the original pool for these cases.
			if tt.overPct > 0 && n1 <= tt.nMin {
				t.Errorf("minority did not grow: %d <= %d", n1, tt.nMin)
			}
			if n0 > tt.nMaj {
				t.Errorf("majority grew without replacement: %d > %d", n0, tt.nMaj)
			}
		})
	}
}

func TestSMOTE_SyntheticInterpolation(t *testing.T) {
	// With all minority points on a line segment, every interpolated point
	// must stay within the segment's bounding box.
	train := imbalanced(t, 20, 40)
	s := NewSMOTE(
		WithOverPercentage(300),
		WithUnderPercentage(100),
		WithKNeighbors(3),
		WithRandomSource(rand.NewPCG(2, 7)),
	)

	out, err := s.Resample(train)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}

	for i := 0; i < out.Len(); i++ {
		if out.Y[i] != 1 {
			continue
		}
		x1, x2 := out.Row(i)
		if x1 < 5.0-1e-9 || x1 > 5.0+0.1*19+1e-9 {
			t.Errorf("synthetic X1 = %v escapes the minority hull", x1)
		}
		if x2 > 5.0+1e-9 || x2 < 5.0-0.1*19-1e-9 {
			t.Errorf("synthetic X2 = %v escapes the minority hull", x2)
		}
	}
}

func TestSMOTE_WithReplacementWhenPoolExhausted(t *testing.T) {
	// underPct 1800 of (10+10) minority records asks for 360 majority
	// records from a pool of 50: the draw must fall back to sampling with
	// replacement instead of truncating.
	train := imbalanced(t, 10, 50)
	s := NewSMOTE(
		WithOverPercentage(100),
		WithUnderPercentage(1800),
		WithKNeighbors(5),
		WithRandomSource(rand.NewPCG(3, 3)),
	)

	out, err := s.Resample(train)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}

	n0, _ := out.ClassCounts()
	if n0 != 360 {
		t.Errorf("majority count = %d, want 360 (with replacement)", n0)
	}
}

func TestSMOTE_KExceedsMinority(t *testing.T) {
	// k is capped at minorityCount-1 rather than failing.
	train := imbalanced(t, 3, 30)
	s := NewSMOTE(
		WithOverPercentage(100),
		WithUnderPercentage(100),
		WithKNeighbors(5),
		WithRandomSource(rand.NewPCG(4, 4)),
	)

	out, err := s.Resample(train)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}
	_, n1 := out.ClassCounts()
	if n1 != 6 {
		t.Errorf("minority count = %d, want 6", n1)
	}
}

func TestSMOTE_InsufficientData(t *testing.T) {
	train := imbalanced(t, 1, 30)
	s := NewSMOTE(WithRandomSource(rand.NewPCG(5, 5)))

	_, err := s.Resample(train)
	if err == nil {
		t.Fatal("Resample() with a single minority record should fail")
	}
	var insErr *errors.InsufficientDataError
	if !errors.As(err, &insErr) {
		t.Errorf("error = %v, want InsufficientDataError", err)
	}
}

func TestSMOTE_InvalidOptions(t *testing.T) {
	train := imbalanced(t, 10, 30)
	tests := []struct {
		name string
		s    *SMOTE
	}{
		{"negative over", NewSMOTE(WithOverPercentage(-10))},
		{"negative under", NewSMOTE(WithUnderPercentage(-1))},
		{"zero neighbors", NewSMOTE(WithKNeighbors(0))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.s.Resample(train); err == nil {
				t.Error("Resample() should fail")
			}
		})
	}
}

func TestSMOTE_Deterministic(t *testing.T) {
	train := imbalanced(t, 10, 60)
	run := func() *dataset.Dataset {
		s := NewSMOTE(
			WithOverPercentage(150),
			WithUnderPercentage(120),
			WithKNeighbors(4),
			WithRandomSource(rand.NewPCG(9, 9)),
		)
		out, err := s.Resample(train)
		if err != nil {
			t.Fatalf("Resample() error = %v", err)
		}
		return out
	}

	a, b := run(), run()
	if a.Len() != b.Len() {
		t.Fatalf("sizes differ: %d vs %d", a.Len(), b.Len())
	}
	for i := 0; i < a.Len(); i++ {
		ax1, ax2 := a.Row(i)
		bx1, bx2 := b.Row(i)
		if ax1 != bx1 || ax2 != bx2 || a.Y[i] != b.Y[i] {
			t.Fatalf("record %d differs between identically seeded runs", i)
		}
	}
}

func TestRequiredOversamplePercentage(t *testing.T) {
	// 20 minority / 180 majority
	y := make([]int, 200)
	for i := 0; i < 20; i++ {
		y[i] = 1
	}

	tests := []struct {
		name    string
		ratio   float64
		want    float64
		wantErr bool
	}{
		{name: "ratio 0.1", ratio: 0.1, want: 100.0 * 0.1 * 180.0 / (20.0 * 0.9)},
		{name: "ratio 0.5", ratio: 0.5, want: 100.0 * 0.5 * 180.0 / (20.0 * 0.5)},
		{name: "ratio zero", ratio: 0, wantErr: true},
		{name: "ratio one", ratio: 1, wantErr: true},
		{name: "ratio above one", ratio: 1.5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RequiredOversamplePercentage(y, tt.ratio)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if got <= 0 || math.IsInf(got, 0) {
				t.Errorf("got %v, want finite positive", got)
			}
		})
	}
}

func TestRequiredOversamplePercentage_Monotone(t *testing.T) {
	y := make([]int, 100)
	for i := 0; i < 10; i++ {
		y[i] = 1
	}
	prev := 0.0
	for _, ratio := range []float64{0.05, 0.1, 0.2, 0.35, 0.5, 0.7, 0.9} {
		got, err := RequiredOversamplePercentage(y, ratio)
		if err != nil {
			t.Fatalf("ratio %v: error = %v", ratio, err)
		}
		if got <= prev {
			t.Errorf("ratio %v: %v not greater than %v", ratio, got, prev)
		}
		prev = got
	}
}

func TestRequiredOversamplePercentage_NoMinority(t *testing.T) {
	if _, err := RequiredOversamplePercentage(make([]int, 50), 0.3); err == nil {
		t.Error("all-majority labels should fail")
	}
}
