package pipeline

import (
	"sync/atomic"
	"testing"
)

func TestRunVisitsEveryIndexOnce(t *testing.T) {
	const n = 100
	counts := make([]int32, n)
	Run(n, 4, func(i int) {
		atomic.AddInt32(&counts[i], 1)
	})

	for i, c := range counts {
		if c != 1 {
			t.Fatalf("index %d visited %d times", i, c)
		}
	}
}

func TestRunDefaultsWorkers(t *testing.T) {
	var called int32
	Run(3, 0, func(i int) {
		atomic.AddInt32(&called, 1)
	})
	if called != 3 {
		t.Fatalf("expected 3 calls, got %d", called)
	}
}

func TestRunEmptyAndNil(t *testing.T) {
	Run(0, 2, func(i int) { t.Fatal("fn called for n=0") })
	Run(5, 2, nil)
}
