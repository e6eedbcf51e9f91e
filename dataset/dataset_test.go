package dataset

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func smallDataset(t *testing.T) *Dataset {
	t.Helper()
	X := mat.NewDense(10, 2, []float64{
		0.1, 1.1,
		0.2, 1.2,
		0.3, 1.3,
		0.4, 1.4,
		0.5, 1.5,
		0.6, 1.6,
		0.7, 1.7,
		0.8, 1.8,
		0.9, 1.9,
		1.0, 2.0,
	})
	ds, err := New(X, []int{0, 1, 0, 0, 1, 0, 0, 0, 1, 0})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return ds
}

func TestDataset_Split(t *testing.T) {
	ds := smallDataset(t)

	test, train, err := ds.Split(0.2)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	if test.Len() != 2 {
		t.Errorf("test.Len() = %d, want 2", test.Len())
	}
	if train.Len() != 8 {
		t.Errorf("train.Len() = %d, want 8", train.Len())
	}

	// The test prefix and train remainder must keep generation order.
	if x1, _ := test.Row(0); x1 != 0.1 {
		t.Errorf("test record 0 X1 = %v, want 0.1", x1)
	}
	if x1, _ := train.Row(0); x1 != 0.3 {
		t.Errorf("train record 0 X1 = %v, want 0.3", x1)
	}
	if x1, _ := train.Row(train.Len() - 1); x1 != 1.0 {
		t.Errorf("last train record X1 = %v, want 1.0", x1)
	}
	if test.Len()+train.Len() != ds.Len() {
		t.Errorf("partition sizes %d+%d != %d", test.Len(), train.Len(), ds.Len())
	}
}

func TestDataset_SplitInvalidFraction(t *testing.T) {
	ds := smallDataset(t)
	for _, frac := range []float64{0, 1, -0.2, 1.5} {
		if _, _, err := ds.Split(frac); err == nil {
			t.Errorf("Split(%v) should fail", frac)
		}
	}
}

func TestDataset_ClassCounts(t *testing.T) {
	ds := smallDataset(t)
	n0, n1 := ds.ClassCounts()
	if n0 != 7 || n1 != 3 {
		t.Errorf("ClassCounts() = (%d, %d), want (7, 3)", n0, n1)
	}
}

func TestDataset_ClassIndices(t *testing.T) {
	ds := smallDataset(t)
	pos := ds.ClassIndices(1)
	want := []int{1, 4, 8}
	if len(pos) != len(want) {
		t.Fatalf("ClassIndices(1) = %v, want %v", pos, want)
	}
	for i := range want {
		if pos[i] != want[i] {
			t.Errorf("ClassIndices(1)[%d] = %d, want %d", i, pos[i], want[i])
		}
	}
}

func TestDataset_SubsetWithRepeats(t *testing.T) {
	ds := smallDataset(t)
	sub := ds.Subset([]int{0, 0, 9})
	if sub.Len() != 3 {
		t.Fatalf("Subset len = %d, want 3", sub.Len())
	}
	a, _ := sub.Row(0)
	b, _ := sub.Row(1)
	if a != b {
		t.Errorf("repeated index rows differ: %v vs %v", a, b)
	}
}

func TestConcat(t *testing.T) {
	ds := smallDataset(t)
	head := ds.Subset([]int{0, 1})
	tail := ds.Subset([]int{2})

	joined := Concat(head, nil, tail, &Dataset{})
	if joined.Len() != 3 {
		t.Fatalf("Concat len = %d, want 3", joined.Len())
	}
	if x1, _ := joined.Row(2); x1 != 0.3 {
		t.Errorf("Concat record 2 X1 = %v, want 0.3", x1)
	}
}
