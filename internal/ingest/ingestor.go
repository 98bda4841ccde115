package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/codegraph/internal/chunker"
	"github.com/dshills/codegraph/internal/graph"
)

// Config contains configuration for an ingestion run.
type Config struct {
	Workers      int // concurrent file workers (default: runtime.NumCPU())
	ChunkMaxSize int // maximum chunk content length (default: chunker.DefaultMaxSize)
	ChunkOverlap int // characters shared between consecutive chunks (default: 0)
}

// ItemFailure records one non-fatal per-item failure during a run.
type ItemFailure struct {
	Path string
	Err  string
}

// Report aggregates the outcome of one ingestion run. A single item's
// failure never aborts the batch; it lands here instead.
type Report struct {
	RunID          string
	FilesFound     int
	FilesIngested  int
	FilesSkipped   int
	ChunksUpserted int
	ChunksRemoved  int
	EdgePairs      int64
	NodeCount      int64
	Duration       time.Duration
	Failures       []ItemFailure
}

// Ingestor coordinates the ingestion pipeline: discover -> chunk -> upsert,
// then a single relationship-derivation step behind a barrier.
type Ingestor struct {
	chunker *chunker.Chunker
	writer  *Writer
	workers int
}

// New creates an Ingestor writing to the given store.
func New(store graph.Store, cfg Config) *Ingestor {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Ingestor{
		chunker: chunker.New(chunker.Config{MaxSize: cfg.ChunkMaxSize, Overlap: cfg.ChunkOverlap}),
		writer:  NewWriter(store),
		workers: workers,
	}
}

// IngestDirectory ingests every eligible file under root. Files are
// processed concurrently; edge derivation runs strictly after all upserts in
// the run complete, since new nodes change the pairing set.
func (ing *Ingestor) IngestDirectory(ctx context.Context, root string) (*Report, error) {
	start := time.Now()
	report := &Report{RunID: uuid.NewString()}

	files, err := DiscoverFiles(root)
	if err != nil {
		return nil, fmt.Errorf("discover files: %w", err)
	}
	report.FilesFound = len(files)

	slog.Info("ingestion started", "run_id", report.RunID, "root", root, "files", len(files))

	var (
		ingested int32
		skipped  int32
		upserted int32
		removed  int32

		mu         sync.Mutex
		touchedIDs []string
	)

	recordFailure := func(path string, err error) {
		mu.Lock()
		report.Failures = append(report.Failures, ItemFailure{Path: path, Err: err.Error()})
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ing.workers)

	for _, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			file, err := ReadSourceFile(root, path)
			if err != nil {
				// Undecodable or unreadable file: skip and continue.
				atomic.AddInt32(&skipped, 1)
				recordFailure(path, err)
				slog.Warn("file skipped", "run_id", report.RunID, "path", path, "error", err)
				return nil
			}

			chunks := ing.chunker.ChunkFile(file)
			fileOK := true
			for i := range chunks {
				if err := ing.writer.UpsertChunk(gctx, &chunks[i]); err != nil {
					if gctx.Err() != nil {
						return gctx.Err()
					}
					fileOK = false
					recordFailure(chunks[i].ID, err)
					slog.Warn("chunk upsert failed", "run_id", report.RunID, "chunk", chunks[i].ID, "error", err)
					continue
				}
				atomic.AddInt32(&upserted, 1)
				mu.Lock()
				touchedIDs = append(touchedIDs, chunks[i].ID)
				mu.Unlock()
			}

			// A file that shrank since its last ingestion leaves trailing
			// chunks behind; drop everything at or beyond the new count.
			stale, err := ing.writer.DeleteStaleChunks(gctx, file.RelPath, len(chunks))
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				fileOK = false
				recordFailure(file.RelPath, err)
				slog.Warn("stale chunk cleanup failed", "run_id", report.RunID, "path", file.RelPath, "error", err)
			} else {
				atomic.AddInt32(&removed, int32(stale))
			}

			if fileOK {
				atomic.AddInt32(&ingested, 1)
			}
			return nil
		})
	}

	// Barrier: no edge derivation while node upserts are in flight.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.FilesIngested = int(ingested)
	report.FilesSkipped = int(skipped)
	report.ChunksUpserted = int(upserted)
	report.ChunksRemoved = int(removed)

	pairs, err := ing.writer.DeriveRelationships(ctx, touchedIDs)
	if err != nil {
		return nil, err
	}
	report.EdgePairs = pairs

	if count, err := ing.writer.CountNodes(ctx); err == nil {
		report.NodeCount = count
	}

	report.Duration = time.Since(start)
	slog.Info("ingestion finished",
		"run_id", report.RunID,
		"files_ingested", report.FilesIngested,
		"files_skipped", report.FilesSkipped,
		"chunks_upserted", report.ChunksUpserted,
		"chunks_removed", report.ChunksRemoved,
		"edge_pairs", report.EdgePairs,
		"duration", report.Duration)

	return report, nil
}
