package refresh

import (
	"context"
	"sync"
	"time"
)

// Job re-fetches one stale cache entry. Jobs are deduplicated by cache
// key while in flight and dropped when the queue is saturated.
type Job struct {
	CacheKey string
	Run      func(ctx context.Context)
}

type Refresher struct {
	ch    chan Job
	inFly sync.Map // cache key -> struct{}
}

func New(capacity int, workerCount int) *Refresher {
	if capacity <= 0 {
		capacity = 256
	}
	if workerCount <= 0 {
		workerCount = 2
	}
	r := &Refresher{ch: make(chan Job, capacity)}
	for i := 0; i < workerCount; i++ {
		go r.worker()
	}
	return r
}

func (r *Refresher) Enqueue(j Job) {
	if _, exists := r.inFly.LoadOrStore(j.CacheKey, struct{}{}); exists {
		return
	}
	select {
	case r.ch <- j:
	default:
		// drop if saturated
		r.inFly.Delete(j.CacheKey)
	}
}

func (r *Refresher) worker() {
	for j := range r.ch {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		func() {
			defer func() {
				r.inFly.Delete(j.CacheKey)
				cancel()
			}()
			if j.Run != nil {
				j.Run(ctx)
			}
		}()
	}
}
