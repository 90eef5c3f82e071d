package keel

import (
	"errors"
	"sync"
)

const DEFAULT_WORKERS = 1

// RunBatch advances every solver by steps calls of Step(dt), spreading
// independent solvers across at most workersCount goroutines. Each
// solver is stepped by exactly one goroutine, so the per-body
// serialization requirement of Step holds. A solver that fails stops
// stepping; the errors of all failed solvers are joined.
func RunBatch(workersCount int, solvers []*Solver, steps int, dt float64) error {
	workersCount = max(DEFAULT_WORKERS, workersCount)
	errs := make([]error, len(solvers))

	var wg sync.WaitGroup
	chunkSize := (len(solvers) + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				for iter := 0; iter < steps; iter++ {
					if err := solvers[i].Step(dt); err != nil {
						errs[i] = err
						break
					}
				}
			}
		}(workerID*chunkSize, min((workerID+1)*chunkSize, len(solvers)))
	}
	wg.Wait()

	return errors.Join(errs...)
}
