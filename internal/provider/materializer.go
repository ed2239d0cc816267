// Package provider sits at the source-provider boundary: it lands subtitle
// payloads fetched by an external collaborator onto local storage, where the
// canonicalization pipeline takes over.
package provider

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/squash/subtidy/internal/subtitle"
	"github.com/squash/subtidy/pkg/file"
	"github.com/squash/subtidy/pkg/log"
)

// Download is one subtitle variant to materialize: the name its metadata
// suggests and the ordered raw segments making up its document.
type Download struct {
	DesiredName string
	Segments    [][]byte
}

// Materializer writes batches of downloads into a directory. Destination
// names are computed serially through one allocator before any write starts:
// the allocator's correctness requires serialized reservation, and once
// every target is a distinct pre-claimed path the writes themselves can run
// in parallel.
type Materializer struct {
	// Concurrency caps parallel writes; 0 means no limit.
	Concurrency int
}

// Materialize merges each download's segments and writes the result under
// dir. Returns the final paths in input order; a download whose segments
// merge to nothing yields an empty string at its position and is logged, not
// fatal.
func (m Materializer) Materialize(dir string, downloads []Download) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create target directory: %w", err)
	}

	// Serial pre-allocation of every destination name.
	alloc := file.NewAllocator()
	targets := make([]string, len(downloads))
	for i, d := range downloads {
		if d.DesiredName == "" {
			return nil, fmt.Errorf("download %d has no desired name", i)
		}
		targets[i] = alloc.Reserve(filepath.Join(dir, filepath.Base(d.DesiredName)))
	}

	var g errgroup.Group
	if m.Concurrency > 0 {
		g.SetLimit(m.Concurrency)
	}

	results := make([]string, len(downloads))
	for i := range downloads {
		i := i
		g.Go(func() error {
			merged := subtitle.MergeSegments(downloads[i].Segments)
			if len(merged) == 0 {
				log.Warn("No content in segments for %s, skipping", targets[i])
				alloc.Release(targets[i])
				return nil
			}
			if err := os.WriteFile(targets[i], merged, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", targets[i], err)
			}
			results[i] = targets[i]
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
