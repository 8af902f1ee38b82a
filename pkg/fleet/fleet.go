// Package fleet provides the bounded worker-pool orchestration helper
// SPEC_FULL.md §5.1 adds on top of the otherwise single-threaded decode
// pipeline: one decode per file, run across a fixed number of workers, with
// no state shared between files.
package fleet

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/alpinefleet/tachoscan/pkg/compliance"
	"github.com/alpinefleet/tachoscan/pkg/framing"
	"github.com/alpinefleet/tachoscan/pkg/result"
	"github.com/alpinefleet/tachoscan/pkg/timeline"
)

// Input is one file queued for decoding.
type Input struct {
	Name string
	Data []byte
}

// Outcome is one file's result: either a decoded TachographFile with its
// compliance evaluation, or the error that stopped it (a malformed file, or
// the context's error when ctx was cancelled before the file was started).
type Outcome struct {
	Name        string
	File        *result.TachographFile
	Infractions []compliance.Infraction
	WeekStats   []compliance.WeekStats
	Err         error
}

// DecodeAll runs framing.Decode + timeline.Build + compliance.Evaluate for
// every Input across workers goroutines. Each file's pipeline is
// self-contained and touches no state shared with any other file, so no
// locking is needed beyond the result collection itself (§5). Cancelling
// ctx stops workers from starting new files; in-flight decodes are not
// interrupted, since framing.Decode takes no context and does not observe
// cancellation.
//
// Results are returned in the same order as files, regardless of the order
// workers finish in. Concurrency is bounded with errgroup.Group.SetLimit
// rather than a hand-rolled channel-of-indices pool, following the
// golang.org/x/sync usage pattern present across the retrieval pack
// (uydev-fleetsustainability, the jessegersensonchess ETL pipeline, and
// pkordes-rv-logbook all reach for x/sync for bounded fan-out). A file's own
// decode error never aborts its siblings — it is recorded on that file's
// Outcome — so this intentionally uses errgroup.Group, not
// errgroup.WithContext, to avoid the group cancelling on a normal per-file
// decode failure.
func DecodeAll(ctx context.Context, files []Input, workers int, cfg framing.Config) []Outcome {
	if workers < 1 {
		workers = 1
	}
	outcomes := make([]Outcome, len(files))
	var g errgroup.Group
	g.SetLimit(workers)

	for i := range files {
		i := i
		g.Go(func() error {
			select {
			case <-ctx.Done():
				outcomes[i] = Outcome{Name: files[i].Name, Err: ctx.Err()}
			default:
				outcomes[i] = decodeOne(files[i], cfg)
			}
			return nil
		})
	}
	g.Wait()

	return outcomes
}

func decodeOne(in Input, cfg framing.Config) Outcome {
	file, err := framing.Decode(in.Data, cfg)
	if err != nil {
		return Outcome{Name: in.Name, Err: err}
	}
	acts := timeline.Build(file.Activities)
	infractions, weeks := compliance.Evaluate(acts, file.Activities)
	return Outcome{Name: in.Name, File: file, Infractions: infractions, WeekStats: weeks}
}
