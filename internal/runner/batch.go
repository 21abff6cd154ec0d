package runner

import (
	"context"
	"sync/atomic"

	"github.com/backmassage/fetchmaster/internal/ytdlp"
	"golang.org/x/sync/errgroup"
)

// BatchStats aggregates per-item outcomes of one batch run.
type BatchStats struct {
	Total     int
	Succeeded int
	Failed    int
}

// RunBatch fans the requests out over a bounded worker pool and returns
// only after every item has settled (succeeded or exhausted its retries).
// Item failures are logged and counted, never propagated, so one failing
// download cannot cancel its siblings. The returned error is non-nil only
// for structural misuse: an empty request list.
func (o *Orchestrator) RunBatch(ctx context.Context, profile ytdlp.Profile, reqs []ytdlp.Request) (BatchStats, error) {
	if len(reqs) == 0 {
		return BatchStats{}, &ValidationError{Field: "requests", Reason: "batch must contain at least one request"}
	}

	var succeeded, failed atomic.Int32

	// Plain Group, not WithContext: an item error must not cancel siblings.
	g := new(errgroup.Group)
	g.SetLimit(o.cfg.Concurrency)

	for _, req := range reqs {
		req := req
		g.Go(func() error {
			if err := o.Run(ctx, profile, req); err != nil {
				failed.Add(1)
				o.log.Error("Download failed: %s: %v", req.URL, err)
				return nil
			}
			succeeded.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	return BatchStats{
		Total:     len(reqs),
		Succeeded: int(succeeded.Load()),
		Failed:    int(failed.Load()),
	}, nil
}
