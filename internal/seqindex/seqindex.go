// Package seqindex locates the companion sequence-file entry for an
// upload. The surrounding storage layer is eventually consistent, so the
// lookup is a bounded retry, not a single query.
package seqindex

import (
	"context"
	"time"
)

// Index is the external entry index queried for sequence files.
type Index interface {
	// FindSequenceFile returns the file ID of a sequence-file entry
	// belonging to the upload, or "" when none is indexed yet.
	FindSequenceFile(ctx context.Context, uploadID string) (string, error)
}

// Options bound the retry loop.
type Options struct {
	// Interval between attempts.
	Interval time.Duration
	// Budget is the wall-clock limit after which the lookup gives up.
	Budget time.Duration
}

// DefaultOptions matches the indexing latency of the storage layer.
func DefaultOptions() Options {
	return Options{
		Interval: 100 * time.Millisecond,
		Budget:   15 * time.Second,
	}
}

// WaitForSequenceFile polls the index until a sequence-file entry for the
// upload appears or the budget is spent. Giving up is not an error: the
// measurement is simply parsed without a sequence file.
func WaitForSequenceFile(ctx context.Context, idx Index, uploadID string, opts Options) (string, bool) {
	if opts.Interval <= 0 {
		opts.Interval = DefaultOptions().Interval
	}
	if opts.Budget <= 0 {
		opts.Budget = DefaultOptions().Budget
	}

	deadline := time.Now().Add(opts.Budget)
	for {
		id, err := idx.FindSequenceFile(ctx, uploadID)
		if err == nil && id != "" {
			return id, true
		}

		if time.Now().After(deadline) {
			return "", false
		}
		select {
		case <-ctx.Done():
			return "", false
		case <-time.After(opts.Interval):
		}
	}
}
