// Package async runs computations in goroutines and collects their results.
//
// Async starts a single function and returns a Future; Await blocks until it
// completes. Map fans a slice of items out to a bounded number of
// goroutines and returns one Outcome per item, in input order, so callers
// can merge results deterministically and treat failures per item.
//
// All helpers are context-aware: work that has not started when the context
// is canceled completes with the context error.
//
//	outcomes := async.Map(ctx, 4, paths, func(ctx context.Context, p string) (int, error) {
//		return extract(ctx, p)
//	})
//	for i, o := range outcomes {
//		if o.Err != nil {
//			log.Printf("%s: %v", paths[i], o.Err)
//		}
//	}
package async
