// Package service wires the canonicalization pipeline to the configured
// media directories, either once or on a cron schedule.
package service

import (
	"context"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/squash/subtidy/internal/config"
	"github.com/squash/subtidy/internal/dedupe"
	"github.com/squash/subtidy/internal/fixer"
	"github.com/squash/subtidy/internal/persistence"
	"github.com/squash/subtidy/pkg/log"
)

// Recorder persists run outcomes. Satisfied by *persistence.SQLiteStore;
// nil disables recording.
type Recorder interface {
	RecordRun(ctx context.Context, run persistence.Run, outcome dedupe.Outcome) (string, error)
}

type SweepService struct {
	cfg      config.Config
	cronExpr string
	cron     *cron.Cron
	recorder Recorder
}

func NewSweepService(
	cfg config.Config,
	cron *cron.Cron,
	recorder Recorder,
) SweepService {
	return SweepService{
		cfg:      cfg,
		cronExpr: cfg.System.CronExpr,
		cron:     cron,
		recorder: recorder,
	}
}

var singleflightGroup singleflight.Group

// Schedule registers the sweep on the service's cron. Overlapping triggers
// collapse into one run via singleflight.
func (s SweepService) Schedule(ctx context.Context) error {
	log.Info("Scheduling subtitle sweeps: %s", s.cronExpr)

	runFunc := func() {
		_, _, _ = singleflightGroup.Do("sweep", func() (any, error) {
			s.SweepAll(ctx)
			return nil, nil
		})
	}
	_, err := s.cron.AddFunc(s.cronExpr, runFunc)
	return err
}

// SweepAll canonicalizes every configured media directory. A directory that
// fails is logged and the sweep continues.
func (s SweepService) SweepAll(ctx context.Context) {
	for _, dir := range s.cfg.Media.MediaPaths() {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			log.Debug("Skipping missing media dir %s", dir)
			continue
		}
		log.Info("Canonicalizing %s", dir)
		if _, err := s.RunDir(ctx, dir); err != nil {
			log.Error("Failed to canonicalize %s: %v", dir, err)
		}
	}
}

// RunDir canonicalizes one directory and records the outcome.
func (s SweepService) RunDir(ctx context.Context, dir string) (dedupe.Outcome, error) {
	pipeline := dedupe.New(dedupe.Options{
		SimilarityThreshold: s.cfg.Pipeline.SimilarityThreshold,
		SDHThreshold:        s.cfg.Pipeline.SDHThreshold,
		DialectRatio:        s.cfg.Pipeline.DialectRatio,
		AllowedForced:       s.cfg.Pipeline.AllowedForced,
	}, fixer.New())

	started := time.Now()
	outcome, err := pipeline.Run(dir)
	if err != nil {
		return outcome, err
	}

	if s.recorder != nil {
		run := persistence.Run{
			Directory:  dir,
			StartedAt:  started,
			FinishedAt: time.Now(),
		}
		if _, err := s.recorder.RecordRun(ctx, run, outcome); err != nil {
			log.Error("Failed to record run for %s: %v", dir, err)
		}
	}

	return outcome, nil
}
