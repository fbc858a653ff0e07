package analysis

import (
	"context"
	"runtime"
	"sync"
)

// WorkItem is one queued pipeline run in a batch.
type WorkItem struct {
	Seq       int
	PatientID string
	VCF       string
	Drugs     []string
}

// WorkResult is the outcome of one batch run.
type WorkResult struct {
	Seq       int
	PatientID string
	Report    *Report
	Err       error
}

// ParallelRun executes work items using a pool of workers.
// Results are sent to the returned channel in arrival order (not sequence
// order); use OrderedCollect to consume them in sequence-number order.
// If workers is 0, runtime.NumCPU() is used.
func (p *Pipeline) ParallelRun(ctx context.Context, items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				report, err := p.Run(ctx, item.PatientID, item.VCF, item.Drugs)
				results <- WorkResult{
					Seq:       item.Seq,
					PatientID: item.PatientID,
					Report:    report,
					Err:       err,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order.
// It buffers out-of-order results in a pending map and emits them
// as soon as the next expected sequence number is available.
// Blocks until the results channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}
