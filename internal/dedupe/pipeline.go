// Package dedupe reduces a directory of subtitle files, overlapping in
// content but differing in naming and container format, to a minimal,
// correctly labeled, non-redundant set.
package dedupe

import (
	"path/filepath"
	"strings"

	"github.com/squash/subtidy/internal/classify"
	"github.com/squash/subtidy/internal/subname"
	"github.com/squash/subtidy/internal/subtitle"
	"github.com/squash/subtidy/pkg/file"
	"github.com/squash/subtidy/pkg/log"
)

// Pipeline runs the ordered canonicalization passes over one directory.
// Single-threaded and directory-local: each pass completes its filesystem
// mutations before the next begins, and later passes observe the resulting
// state, not a snapshot taken at pipeline start.
type Pipeline struct {
	opts    Options
	dialect classify.DialectScorer
	sdh     classify.SDHScorer
	fixer   Fixer
}

// New builds a pipeline. fixer may be nil, in which case the final generic
// fixup pass is skipped.
func New(opts Options, fixer Fixer) *Pipeline {
	if opts.SimilarityThreshold <= 0 {
		opts.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if len(opts.AllowedForced) == 0 {
		opts.AllowedForced = subname.DefaultAllowedForced
	}
	return &Pipeline{
		opts:    opts,
		dialect: classify.DialectScorer{Ratio: opts.DialectRatio},
		sdh:     classify.SDHScorer{Threshold: opts.SDHThreshold},
		fixer:   fixer,
	}
}

// Run executes the passes in their fixed order. The ordering is
// load-bearing: hashing before and after conversion catches duplicates
// invisible in one format, forced-filtering before hashing avoids wasted
// work, and relabeling after dedup avoids tagging files about to be
// deleted. No per-file failure is fatal; a failure narrows to "this one
// file was not processed".
func (p *Pipeline) Run(dir string) (Outcome, error) {
	snapshot, err := NewSnapshot(dir)
	if err != nil {
		return Outcome{}, err
	}

	var outcome Outcome

	// 1. Forced-subtitle filter.
	outcome.ForcedRemoved = p.forcedPass(snapshot)
	if snapshot.Len() == 0 {
		log.Info("No subtitles left after forced filter in %s", dir)
		return outcome, nil
	}

	// 2. Exact duplicates on the original containers. Quicker than fuzzy
	// comparison, so it goes first.
	outcome.ExactRemoved = exactPass(snapshot)

	// 3. Convert segmented captions to the line-based container.
	if err := subtitle.ConvertVTTFiles(dir); err != nil {
		log.Warn("Conversion pass failed in %s: %v", dir, err)
	}
	if err := snapshot.Refresh(); err != nil {
		return outcome, err
	}

	// 4. Second exact pass: conversion can reveal byte-identity invisible
	// in the original container format.
	outcome.ExactRemoved = append(outcome.ExactRemoved, exactPass(snapshot)...)

	// 5. Near-duplicates within language groups.
	outcome.NearRemoved = fuzzyPass(snapshot, p.opts.SimilarityThreshold)

	// 6-8. Relabeling: English dialect, Spanish dialect, SDH.
	alloc := file.NewAllocator()
	englishRelabel(snapshot, p.dialect, alloc)
	spanishRelabel(snapshot, p.dialect, alloc)
	sdhRelabel(snapshot, p.sdh, alloc)

	// 9. Filename cleanup through a fresh reservation set.
	cleanupPass(snapshot, file.NewAllocator())

	// 10. Generic content fixups on the survivors.
	p.fixPass(snapshot)

	log.Info("Canonicalized %s: %d forced, %d exact, %d near-duplicate removals",
		dir, len(outcome.ForcedRemoved), len(outcome.ExactRemoved), len(outcome.NearRemoved))
	return outcome, nil
}

// forcedPass deletes forced subtitles outside the allow list.
func (p *Pipeline) forcedPass(s *Snapshot) []string {
	var deleted []string
	for _, id := range s.IDs() {
		path := s.Path(id)
		if !subname.IsForced(path) || subname.ForcedAllowed(path, p.opts.AllowedForced) {
			continue
		}
		if err := s.Delete(id); err != nil {
			log.Warn("Failed to delete forced subtitle %s: %v", path, err)
			continue
		}
		deleted = append(deleted, path)
	}
	return deleted
}

// fixPass hands every surviving SRT file to the external fixer.
func (p *Pipeline) fixPass(s *Snapshot) {
	if p.fixer == nil {
		return
	}
	for _, id := range s.IDs() {
		path := s.Path(id)
		if !strings.EqualFold(filepath.Ext(path), ".srt") {
			continue
		}
		changed, err := p.fixer.Fix(path)
		if err != nil {
			log.Warn("Fixer failed on %s: %v", path, err)
			continue
		}
		if changed {
			log.Debug("Fixed common issues in %s", path)
		}
	}
}
