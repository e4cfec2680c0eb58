package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
}

func TestWorkerPool_CreateZeroWorkers(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	expected := runtime.GOMAXPROCS(0)
	if pool.Workers() != expected {
		t.Errorf("Workers() = %d, want %d (GOMAXPROCS)", pool.Workers(), expected)
	}
}

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	numTasks := 100

	work := make([]func(), numTasks)
	for i := range work {
		work[i] = func() {
			counter.Add(1)
		}
	}

	pool.ExecuteAll(work)

	if counter.Load() != int64(numTasks) {
		t.Errorf("counter = %d, want %d", counter.Load(), numTasks)
	}
}

func TestWorkerPool_ExecuteAll_IndependentSlots(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	// Each work item writes its own slot, the way the occlusion pass fills
	// per-shape results; no slot may be missed or written twice.
	results := make([]int, 50)
	work := make([]func(), len(results))
	for i := range work {
		idx := i
		work[i] = func() {
			results[idx] = idx + 1
		}
	}

	pool.ExecuteAll(work)

	for i, v := range results {
		if v != i+1 {
			t.Errorf("results[%d] = %d, want %d", i, v, i+1)
		}
	}
}

func TestWorkerPool_ExecuteAllEmpty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	pool.ExecuteAll(nil) // must not block or panic
}

func TestWorkerPool_CloseDuringExecuteAllLosesNoWork(t *testing.T) {
	pool := NewWorkerPool(1)

	var counter atomic.Int64
	started := make(chan struct{})
	release := make(chan struct{})

	// The first item parks the only worker, so the remaining submissions
	// fill its queue and then contend with the shutdown signal.
	const numTasks = 12
	work := make([]func(), numTasks)
	work[0] = func() {
		close(started)
		<-release
		counter.Add(1)
	}
	for i := 1; i < numTasks; i++ {
		work[i] = func() {
			counter.Add(1)
		}
	}

	finished := make(chan struct{})
	go func() {
		pool.ExecuteAll(work)
		close(finished)
	}()

	<-started
	go pool.Close()
	<-pool.done // shutdown signalled while submissions are in flight
	close(release)

	<-finished
	if counter.Load() != numTasks {
		t.Errorf("counter = %d, want %d", counter.Load(), numTasks)
	}
}

func TestWorkerPool_CloseTwice(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close() // must be safe

	var counter atomic.Int64
	pool.ExecuteAll([]func(){func() { counter.Add(1) }})
	if counter.Load() != 0 {
		t.Errorf("work executed after Close: counter = %d, want 0", counter.Load())
	}
}
