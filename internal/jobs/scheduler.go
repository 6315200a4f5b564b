package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Task is a unit of background work. The context is cancelled on Stop.
type Task func(ctx context.Context) error

// Scheduler manages the service's recurring background jobs
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
	ctx       context.Context
	cancel    context.CancelFunc

	mu   sync.RWMutex
	jobs map[string]gocron.Job
}

func NewScheduler(logger *slog.Logger, opts ...gocron.SchedulerOption) (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		scheduler: scheduler,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
		jobs:      make(map[string]gocron.Job),
	}, nil
}

// Register adds a named job that runs every interval. A run that is still
// going when the next one is due pushes the next run back.
func (s *Scheduler) Register(name string, interval time.Duration, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %q already registered", name)
	}

	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.run, s.ctx, name, task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create job %q: %w", name, err)
	}
	s.jobs[name] = job
	s.logger.Info("registered background job", "job", name, "interval", interval.String())
	return nil
}

func (s *Scheduler) run(ctx context.Context, name string, task Task) {
	start := time.Now()
	if err := task(ctx); err != nil {
		s.logger.Error("background job failed", "job", name, "error", err, "duration_ms", time.Since(start).Milliseconds())
		return
	}
	s.logger.Info("background job finished", "job", name, "duration_ms", time.Since(start).Milliseconds())
}

// RunNow triggers a registered job outside its schedule.
func (s *Scheduler) RunNow(name string) error {
	s.mu.RLock()
	job, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("job %q not registered", name)
	}
	return job.RunNow()
}

// Jobs returns the registered job names in sorted order.
func (s *Scheduler) Jobs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Scheduler) Start() {
	s.logger.Info("starting background job scheduler", "jobs", len(s.jobs))
	s.scheduler.Start()
}

// Stop cancels running tasks and waits for them to return.
func (s *Scheduler) Stop() error {
	s.logger.Info("stopping background job scheduler")
	s.cancel()
	return s.scheduler.Shutdown()
}
