// Package workerpool bounds concurrent per-mod work.
//
// A Pool is created once per run and shared by every batch, so hashing,
// fetching and downloading together never exceed its width. Settle runs a
// function for each key and waits for all of them, returning one Result per
// key in input order; one failure never cancels the others.
//
// # Usage
//
//	pool := workerpool.New(0) // 2 x NumCPU
//	results := workerpool.Settle(ctx, pool, names, func(ctx context.Context, name string) (*models.Mod, error) {
//	    return fetcher.Fetch(ctx, name)
//	})
//	for _, r := range results {
//	    if r.Err != nil {
//	        log.Warn("fetch failed", zap.String("mod", r.Key), zap.Error(r.Err))
//	    }
//	}
package workerpool
