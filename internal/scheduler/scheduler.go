// Package scheduler keeps the month cache warm by periodically collecting
// the default window for every configured region and property type.
package scheduler

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"rentradar/server/config"
	"rentradar/server/internal/models"
	"rentradar/server/internal/molit"
)

// Collector is the slice of the registry client the scheduler drives.
type Collector interface {
	CollectWindow(ctx context.Context, propertyType models.PropertyType, regionCode string, monthsBack int) (models.FetchResult, error)
}

// Scheduler runs pre-warm sweeps on a fixed interval. Sweeps run
// sequentially; a slow sweep delays the next one rather than overlapping it.
type Scheduler struct {
	collector Collector
	regions   []config.Region
	interval  time.Duration
	logger    *logrus.Logger
	stopChan  chan struct{}
	wg        sync.WaitGroup
	sweepLock sync.Mutex
}

func NewScheduler(collector Collector, regions []config.Region, interval time.Duration, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{
		collector: collector,
		regions:   regions,
		interval:  interval,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}
}

// Start begins the pre-warm loop with an immediate first sweep.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Scheduler) sweep() {
	s.sweepLock.Lock()
	defer s.sweepLock.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	s.logger.Info("Starting cache pre-warm sweep")
	for _, r := range s.regions {
		for _, propertyType := range []models.PropertyType{models.PropertyOfficetel, models.PropertyVilla} {
			result, err := s.collector.CollectWindow(ctx, propertyType, r.Code, molit.DefaultWindowMonths)
			fields := logrus.Fields{
				"region":        r.Name,
				"region_code":   r.Code,
				"property_type": propertyType,
			}
			if err != nil {
				s.logger.WithError(err).WithFields(fields).Error("Pre-warm collection aborted")
				return
			}
			fields["records"] = len(result.Records)
			fields["degraded"] = result.Degraded
			s.logger.WithFields(fields).Info("Pre-warm collection completed")
		}
	}
	s.logger.Info("Cache pre-warm sweep completed")
}

// Stop halts the loop and waits for an in-flight sweep to finish.
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}
