package services

import (
	"context"
	"fmt"
	"sync"

	"fleet-routing-engine/internal/ports"
	"fleet-routing-engine/internal/vrp/model"
)

// pairwiseResult carries one origin's batch of distance lookups back to the
// collecting goroutine: a bounded semaphore, a WaitGroup, and
// first-error-wins via context cancellation.
type pairwiseResult struct {
	origin  string
	results map[string]ports.DistanceResult
	err     error
}

// Matrices holds the two cost tables the planning service needs: a
// duration-based model.Matrix for the solver (time windows and the descent's
// gain computation are both duration arithmetic) and a parallel
// meters-based table so route reports can carry total distance alongside
// total duration.
type Matrices struct {
	Duration model.Matrix
	Meters   []int // row-major n*n, same index order as Duration
	n        int
}

func (m Matrices) MetersAt(i, j int) int { return m.Meters[i*m.n+j] }

// BuildMatrices fetches a full pairwise distance/duration table over
// addresses using provider, preferring a batched DistanceMatrixProvider
// when available. addresses[i] becomes matrix index i.
func BuildMatrices(ctx context.Context, provider ports.DistanceProvider, addresses []string) (Matrices, error) {
	n := len(addresses)
	if n == 0 {
		m, err := model.NewMatrix(0, nil)
		return Matrices{Duration: m, Meters: nil, n: 0}, err
	}

	durations := make([]int, n*n)
	meters := make([]int, n*n)

	mp, hasMatrix := provider.(ports.DistanceMatrixProvider)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, 5)
	resultsCh := make(chan pairwiseResult, n)
	var wg sync.WaitGroup

	for i, origin := range addresses {
		targets := make([]string, 0, n-1)
		for j, a := range addresses {
			if j != i {
				targets = append(targets, a)
			}
		}

		wg.Add(1)
		go func(origin string, targets []string) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			var res map[string]ports.DistanceResult
			if hasMatrix {
				var e error
				res, e = mp.GetDistances(ctx, origin, targets)
				if e != nil {
					resultsCh <- pairwiseResult{origin: origin, err: fmt.Errorf("build matrix: get distances from %q: %w", origin, e)}
					cancel()
					return
				}
			} else {
				res = make(map[string]ports.DistanceResult, len(targets))
				for _, t := range targets {
					r, e := provider.GetDistance(ctx, origin, t)
					if e != nil {
						resultsCh <- pairwiseResult{origin: origin, err: fmt.Errorf("build matrix: get distance from %q to %q: %w", origin, t, e)}
						cancel()
						return
					}
					res[t] = r
				}
			}

			resultsCh <- pairwiseResult{origin: origin, results: res}
		}(origin, targets)
	}

	wg.Wait()
	close(resultsCh)

	index := make(map[string]int, n)
	for i, a := range addresses {
		index[a] = i
	}

	var firstErr error
	for res := range resultsCh {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		i := index[res.origin]
		for dest, r := range res.results {
			j, ok := index[dest]
			if !ok {
				continue
			}
			durations[i*n+j] = r.DurationSeconds
			meters[i*n+j] = r.DistanceMeters
		}
	}
	if firstErr != nil {
		return Matrices{}, firstErr
	}

	dm, err := model.NewMatrix(n, durations)
	if err != nil {
		return Matrices{}, fmt.Errorf("build matrix: %w", err)
	}

	return Matrices{Duration: dm, Meters: meters, n: n}, nil
}
