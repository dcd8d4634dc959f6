package worker

import (
	"context"
	"runtime"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/kcc/oerror"
	"golang.org/x/sync/errgroup"
)

// Run calls f for every index in [0, n), running at most limit calls at once. A limit of zero or less runs one
// call per CPU. Run returns the first error returned by f, after which no new calls are started. A panic in f is
// reported to sentry and returned as an error instead of crashing the process.
func Run(ctx context.Context, limit, n int, f func(ctx context.Context, i int) error) error {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() (err error) {
			hub := sentry.CurrentHub().Clone()
			defer func() {
				if r := recover(); r != nil {
					hub.Recover(r)
					err = oerror.New("job %d panicked: %v", i, r)
				}
			}()
			return f(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
