package scheduler

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vnykmshr/execflow/pkg/common/errors"
	"github.com/vnykmshr/execflow/pkg/execution"
	"github.com/vnykmshr/execflow/pkg/metrics"
)

// Job is the unit of scheduled work. The canceled flag turns true while the
// scheduler is stopping; long-running jobs should check it and return early.
type Job func(canceled *atomic.Bool)

// Entry describes a scheduled job.
type Entry struct {
	ID       string
	RunAt    time.Time
	Interval time.Duration // Zero for one-time and cron jobs
	Created  time.Time
}

// Scheduler fires jobs at scheduled times by pushing them into an execution
// queue, so all scheduled work flows through the shared worker pool.
type Scheduler interface {
	// Basic scheduling
	Schedule(id string, job Job, runAt time.Time) error
	ScheduleAfter(id string, job Job, delay time.Duration) error
	ScheduleRepeating(id string, job Job, interval time.Duration) error

	// Cron scheduling
	ScheduleCron(id string, cronExpr string, job Job) error

	// Job management
	Cancel(id string) bool
	CancelAll()
	List() []Entry

	// Lifecycle
	Start() error
	Stop() <-chan struct{}
}

// Config holds scheduler configuration.
type Config struct {
	// Delegate is the pool the firing queue binds to.
	// If nil, the scheduler creates and owns a pool of its own.
	Delegate execution.Delegate

	// Location is the time zone used for cron schedules (default: time.Local).
	Location *time.Location

	// TickInterval is how often the scheduler checks for ready jobs
	// (default: 50ms).
	TickInterval time.Duration

	// MaxJobs is the maximum number of scheduled jobs (default: 10000).
	MaxJobs int
}

type scheduledJob struct {
	id           string
	job          Job
	runAt        time.Time
	interval     time.Duration
	cronSchedule cron.Schedule
	created      time.Time
}

type scheduler struct {
	delegate     execution.Delegate
	ownPool      *execution.Pool
	queue        *execution.Queue[Job]
	location     *time.Location
	tickInterval time.Duration
	maxJobs      int
	cronParser   cron.Parser

	// metrics instrumentation; nil when disabled
	name     string
	registry *metrics.Registry

	mu      sync.RWMutex
	jobs    map[string]*scheduledJob
	ticker  *time.Ticker
	done    chan struct{}
	running bool
	stopped bool
}

// New creates a scheduler with default configuration, firing into a pool it
// owns.
func New() Scheduler {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a scheduler with custom configuration.
func NewWithConfig(cfg Config) Scheduler {
	delegate := cfg.Delegate
	var ownPool *execution.Pool
	if delegate == nil {
		ownPool = execution.NewPool()
		delegate = ownPool
	}

	location := cfg.Location
	if location == nil {
		location = time.Local
	}

	tickInterval := cfg.TickInterval
	if tickInterval <= 0 {
		tickInterval = 50 * time.Millisecond
	}

	maxJobs := cfg.MaxJobs
	if maxJobs <= 0 {
		maxJobs = 10000
	}

	s := &scheduler{
		delegate:     delegate,
		ownPool:      ownPool,
		location:     location,
		tickInterval: tickInterval,
		maxJobs:      maxJobs,
		cronParser:   cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
		jobs:         make(map[string]*scheduledJob),
		done:         make(chan struct{}),
	}
	s.queue = execution.NewQueue(delegate, func(canceled *atomic.Bool, job Job) {
		job(canceled)
	})
	return s
}

// validateJob checks the arguments shared by all Schedule variants.
func validateJob(id string, job Job) error {
	if id == "" {
		return fmt.Errorf("%w: job id cannot be empty", errors.ErrInvalidConfiguration)
	}
	if len(id) > 255 {
		return fmt.Errorf("%w: job id too long (max 255 characters)", errors.ErrInvalidConfiguration)
	}
	if job == nil {
		return fmt.Errorf("%w: job cannot be nil", errors.ErrInvalidConfiguration)
	}
	return nil
}

// insert adds the job under the lock, enforcing id uniqueness and the job
// limit.
func (s *scheduler) insert(job *scheduledJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return errors.ErrClosed
	}
	if _, exists := s.jobs[job.id]; exists {
		return fmt.Errorf("%w: %q", errors.ErrDuplicateID, job.id)
	}
	if len(s.jobs) >= s.maxJobs {
		return fmt.Errorf("%w: limit %d reached", errors.ErrTooManyJobs, s.maxJobs)
	}

	s.jobs[job.id] = job
	if s.registry != nil {
		s.registry.JobsScheduled.WithLabelValues(s.name).Inc()
	}
	return nil
}

func (s *scheduler) Schedule(id string, job Job, runAt time.Time) error {
	if err := validateJob(id, job); err != nil {
		return err
	}
	if runAt.IsZero() {
		return fmt.Errorf("%w: run time cannot be zero", errors.ErrInvalidConfiguration)
	}

	return s.insert(&scheduledJob{
		id:      id,
		job:     job,
		runAt:   runAt,
		created: time.Now(),
	})
}

func (s *scheduler) ScheduleAfter(id string, job Job, delay time.Duration) error {
	return s.Schedule(id, job, time.Now().Add(delay))
}

func (s *scheduler) ScheduleRepeating(id string, job Job, interval time.Duration) error {
	if err := validateJob(id, job); err != nil {
		return err
	}
	if interval <= 0 {
		return fmt.Errorf("%w: interval must be positive, got %v", errors.ErrInvalidConfiguration, interval)
	}

	return s.insert(&scheduledJob{
		id:       id,
		job:      job,
		runAt:    time.Now(),
		interval: interval,
		created:  time.Now(),
	})
}

func (s *scheduler) ScheduleCron(id string, cronExpr string, job Job) error {
	if err := validateJob(id, job); err != nil {
		return err
	}
	if cronExpr == "" {
		return fmt.Errorf("%w: cron expression cannot be empty", errors.ErrInvalidConfiguration)
	}

	schedule, err := s.cronParser.Parse(cronExpr)
	if err != nil {
		return fmt.Errorf("%w: invalid cron expression: %v", errors.ErrInvalidConfiguration, err)
	}

	now := time.Now().In(s.location)
	return s.insert(&scheduledJob{
		id:           id,
		job:          job,
		runAt:        schedule.Next(now),
		cronSchedule: schedule,
		created:      time.Now(),
	})
}

func (s *scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[id]; exists {
		delete(s.jobs, id)
		return true
	}
	return false
}

func (s *scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = make(map[string]*scheduledJob)
}

func (s *scheduler) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.jobs))
	for _, j := range s.jobs {
		entries = append(entries, Entry{
			ID:       j.id,
			RunAt:    j.runAt,
			Interval: j.interval,
			Created:  j.created,
		})
	}

	// Sort by run time
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RunAt.Before(entries[j].RunAt)
	})

	return entries
}

func (s *scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return errors.ErrClosed
	}
	if s.running {
		return fmt.Errorf("%w: scheduler already running", errors.ErrInvalidConfiguration)
	}

	s.running = true
	s.ticker = time.NewTicker(s.tickInterval)

	go s.run()
	return nil
}

// Stop stops the tick loop, closes the firing queue (waiting out in-flight
// jobs, whose canceled flag is raised), and shuts down the owned pool if
// any. The returned channel closes when shutdown is complete. Stop is
// terminal: the scheduler cannot be started again.
func (s *scheduler) Stop() <-chan struct{} {
	s.mu.Lock()
	wasRunning := s.running
	alreadyStopped := s.stopped
	s.running = false
	s.stopped = true
	if wasRunning {
		close(s.done)
		if s.ticker != nil {
			s.ticker.Stop()
		}
	}
	s.mu.Unlock()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		if alreadyStopped {
			return
		}
		s.queue.Close()
		if s.ownPool != nil {
			s.ownPool.Shutdown()
		}
	}()

	return stopped
}

func (s *scheduler) run() {
	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
			s.processReadyJobs()
		}
	}
}

// processReadyJobs pushes every due job into the firing queue, rescheduling
// repeating and cron jobs and dropping one-time jobs.
func (s *scheduler) processReadyJobs() {
	now := time.Now()

	s.mu.Lock()
	if len(s.jobs) == 0 {
		s.mu.Unlock()
		return
	}

	ready := make([]*scheduledJob, 0, len(s.jobs))
	for id, j := range s.jobs {
		if now.Before(j.runAt) {
			continue
		}
		ready = append(ready, j)

		switch {
		case j.interval > 0:
			j.runAt = now.Add(j.interval)
		case j.cronSchedule != nil:
			j.runAt = j.cronSchedule.Next(now.In(s.location))
		default:
			delete(s.jobs, id)
		}
	}
	s.mu.Unlock()

	for _, j := range ready {
		// Push only fails once the queue is closed, i.e. Stop won the
		// race with this tick; the firing is dropped with it.
		if err := s.queue.Push(j.job); err != nil {
			continue
		}
		if s.registry != nil {
			s.registry.JobsFired.WithLabelValues(s.name).Inc()
		}
	}
}
