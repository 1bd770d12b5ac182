// Package aggregate drives discovery, record building and table assembly
// over a whole directory tree.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/porekit/internal/extractor"
	"github.com/vvka-141/porekit/internal/files/scanner"
	"github.com/vvka-141/porekit/internal/logging"
	"github.com/vvka-141/porekit/internal/record"
	"github.com/vvka-141/porekit/pkg/porekit"
)

// Options configures one aggregation run.
type Options struct {
	// Root is the directory tree to search.
	Root string

	// Extractors selects catalog entries by base name, in column order.
	// Nil selects the whole catalog; an empty slice selects none.
	Extractors []string

	// Workers is the number of files processed concurrently. 1 runs
	// sequentially in discovery order; values below 1 are rejected.
	Workers int

	// Strict aborts the run on the first extraction failure.
	Strict bool

	// Progress, if set, receives (processed, total) counts.
	Progress porekit.ProgressFunc
}

// Stats summarizes what happened to the discovered files.
type Stats struct {
	Discovered int // files matching the extension
	Rows       int // rows in the table, degenerate rows included
	Skipped    int // files failing the sanity check
	Unopenable int // files that could not be opened
	Duration   time.Duration
}

// Result is the output of a run.
type Result struct {
	RunID uuid.UUID
	Root  string
	Table *porekit.Table
	Stats Stats
}

// Aggregator runs the pipeline. It holds no per-run state and may be reused.
type Aggregator struct {
	discoverer scanner.Discoverer
	opener     porekit.ContainerOpener
	catalog    *extractor.Catalog
	logger     porekit.Logger
}

// New creates an Aggregator. A nil logger discards messages.
// Panics if discoverer, opener or catalog is nil.
func New(discoverer scanner.Discoverer, opener porekit.ContainerOpener, catalog *extractor.Catalog, logger porekit.Logger) *Aggregator {
	if discoverer == nil {
		panic("discoverer cannot be nil")
	}
	if opener == nil {
		panic("opener cannot be nil")
	}
	if catalog == nil {
		panic("catalog cannot be nil")
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Aggregator{discoverer: discoverer, opener: opener, catalog: catalog, logger: logger}
}

type outcome struct {
	path string
	rec  porekit.Record
	err  error
}

// Run aggregates every valid file under opts.Root into one table.
//
// Configuration is validated before the tree is touched. Discovery failures
// and configuration errors abort the run, as do extraction failures when
// opts.Strict is set. Files failing the sanity check are left out; files that
// cannot be opened contribute an identity-only row.
func (a *Aggregator) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d: %w", opts.Workers, porekit.ErrInvalidConfig)
	}

	factories, err := a.catalog.Factories(opts.Extractors)
	if err != nil {
		return nil, err
	}
	extractors, err := extractor.Instantiate(factories)
	if err != nil {
		return nil, err
	}
	schema, err := porekit.SchemaFor(extractors)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	paths, err := scanner.Collect(a.discoverer, opts.Root)
	if err != nil {
		return nil, err
	}

	res := &Result{
		RunID: uuid.New(),
		Root:  opts.Root,
		Table: porekit.NewTable(schema),
		Stats: Stats{Discovered: len(paths)},
	}
	a.logger.Verbose("run %s: %d files under %s, %d workers", res.RunID, len(paths), opts.Root, opts.Workers)

	builder := record.NewFilteringBuilder(a.opener, record.WithStrict(opts.Strict), record.WithLogger(a.logger))
	progress := opts.Progress
	if progress == nil {
		progress = func(int, int) {}
	}

	if opts.Workers == 1 {
		err = a.runSequential(ctx, builder, extractors, paths, progress, res)
	} else {
		err = a.runParallel(ctx, builder, factories, paths, opts.Workers, progress, res)
	}
	if err != nil {
		return nil, err
	}

	res.Stats.Duration = time.Since(started)
	return res, nil
}

func (a *Aggregator) runSequential(ctx context.Context, builder *record.Builder, extractors []porekit.Extractor, paths []string, progress porekit.ProgressFunc, res *Result) error {
	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		progress(i, len(paths))
		rec, err := builder.Build(p, extractors)
		if err := a.accept(res, outcome{path: p, rec: rec, err: err}); err != nil {
			return err
		}
	}
	return nil
}

// runParallel fans paths out to workers. Each worker builds its own extractor
// instances; only paths go in and records come out.
func (a *Aggregator) runParallel(ctx context.Context, builder *record.Builder, factories []porekit.ExtractorFactory, paths []string, workers int, progress porekit.ProgressFunc, res *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan string)
	results := make(chan outcome)

	g.Go(func() error {
		defer close(jobs)
		for _, p := range paths {
			select {
			case jobs <- p:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			extractors, err := extractor.Instantiate(factories)
			if err != nil {
				return err
			}
			for p := range jobs {
				if err := gctx.Err(); err != nil {
					return err
				}
				rec, err := builder.Build(p, extractors)
				select {
				case results <- outcome{path: p, rec: rec, err: err}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var acceptErr error
	processed := 0
	for o := range results {
		if acceptErr != nil {
			continue
		}
		if err := a.accept(res, o); err != nil {
			acceptErr = err
			cancel()
			continue
		}
		processed++
		progress(processed, len(paths))
	}

	err := g.Wait()
	if acceptErr != nil {
		return acceptErr
	}
	return err
}

// accept applies one file's outcome to the result. Only errors that must
// abort the run are returned.
func (a *Aggregator) accept(res *Result, o outcome) error {
	switch {
	case o.err == nil:
	case errors.Is(o.err, porekit.ErrSanityCheck):
		a.logger.Verbose("skipping %v", o.err)
		res.Stats.Skipped++
		return nil
	case errors.Is(o.err, porekit.ErrUnopenableFile):
		a.logger.Warn("%v", o.err)
		res.Stats.Unopenable++
	default:
		return o.err
	}

	res.Table.Append(o.rec)
	res.Stats.Rows++
	return nil
}
