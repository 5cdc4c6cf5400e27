package parallel

import "testing"

func TestForEachRangeCoversAllIndices(t *testing.T) {
	const n = 1000
	for _, workers := range []int{0, 1, 3, 8, 64} {
		hits := make([]int, n)
		ForEachRange(n, workers, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				hits[i]++
			}
		})
		for i, h := range hits {
			if h != 1 {
				t.Fatalf("workers=%d: index %d visited %d times", workers, i, h)
			}
		}
	}
}

func TestForEachRangeMoreWorkersThanItems(t *testing.T) {
	hits := make([]int, 3)
	ForEachRange(3, 16, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			hits[i]++
		}
	})
	for i, h := range hits {
		if h != 1 {
			t.Errorf("index %d visited %d times", i, h)
		}
	}
}

func TestForEachRangeEmpty(t *testing.T) {
	called := false
	ForEachRange(0, 4, func(lo, hi int) { called = true })
	if called {
		t.Error("fn called for empty range")
	}
}
