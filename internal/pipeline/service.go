package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/docfmt/internal/config"
	"github.com/dgallion1/docfmt/internal/rewrite"
)

// Service processes uploads synchronously and keeps results for later
// export until they expire.
type Service struct {
	proc  *Processor
	store *ResultStore
	stats *Stats
	log   *slog.Logger

	cleanupEvery time.Duration
	cancel       context.CancelFunc
	wg           sync.WaitGroup
}

func NewService(cfg config.Config, proc *Processor, log *slog.Logger) *Service {
	return &Service{
		proc:         proc,
		store:        NewResultStore(cfg.ResultTTL),
		stats:        NewStats(cfg.StatsWindow),
		log:          log,
		cleanupEvery: cfg.CleanupInterval,
	}
}

// Start launches the result store cleanup loop.
func (s *Service) Start(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	every := s.cleanupEvery
	if every <= 0 {
		every = 5 * time.Minute
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				if n := s.store.Cleanup(); n > 0 {
					s.log.Debug("expired results removed", "count", n)
				}
			}
		}
	}()
}

// Stop ends the cleanup loop and waits for it to exit.
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// Format processes one document and stores the result.
func (s *Service) Format(ctx context.Context, data []byte, fileName string, opts rewrite.Options) (*Result, error) {
	start := time.Now()
	res, err := s.proc.Process(ctx, data, fileName, opts)
	elapsed := time.Since(start)

	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			s.stats.Record(OutcomeRejected, elapsed)
		} else {
			s.stats.Record(OutcomeFailed, elapsed)
		}
		return nil, err
	}

	s.stats.Record(OutcomeFormatted, elapsed)
	s.store.Put(res)
	return res, nil
}

// Validate runs the upload checks without processing.
func (s *Service) Validate(fileName string, size int64) error {
	return s.proc.Validate(fileName, size)
}

func (s *Service) Get(id string) *Result {
	return s.store.Get(id)
}

func (s *Service) Delete(id string) bool {
	return s.store.Delete(id)
}

// StoredResults returns the number of results currently held.
func (s *Service) StoredResults() int {
	return s.store.Len()
}

func (s *Service) Stats() StatsSnapshot {
	return s.stats.Snapshot()
}
