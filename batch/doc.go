// Package batch runs many independent keyword extractions concurrently.
//
// Each job is extracted on a worker from an ants pool. A failing job never
// affects the others: its error is reported in its own Outcome, and outcomes
// come back in job order regardless of completion order.
//
//	runner, err := batch.NewRunner(extractor, batch.WithWorkers(4))
//	if err != nil {
//	    return err
//	}
//	defer runner.Release()
//
//	for _, outcome := range runner.Run(ctx, jobs) {
//	    if outcome.Err != nil {
//	        log.Printf("document %d: %v", outcome.Index, outcome.Err)
//	    }
//	}
package batch
