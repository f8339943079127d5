package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"jobdash/internal/core"
	applog "jobdash/internal/log"
	"jobdash/internal/records"
)

// Snapshot is both summaries built from one fetch. It is never updated in
// place; callers take a new one to refresh.
type Snapshot struct {
	TakenAt    time.Time           `json:"takenAt"`
	HeaderDate string              `json:"headerDate"`
	Jobs       core.JobSummary     `json:"jobs"`
	Invoices   core.InvoiceSummary `json:"invoices"`
}

// JobCard is one row of a job tab.
type JobCard struct {
	Job      core.Job `json:"job"`
	Schedule string   `json:"schedule"`
}

// Tab is a job tab header.
type Tab struct {
	Status core.JobStatus `json:"status"`
	Count  int64          `json:"count"`
}

// DashboardService fetches record snapshots and turns them into dashboard
// views.
type DashboardService struct {
	jobs     records.JobLister
	invoices records.InvoiceLister
	agg      core.Aggregator
	dates    core.RangeFormatter
	now      func() time.Time
	logger   *applog.Logger
}

// Option configures a DashboardService.
type Option func(*DashboardService)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *DashboardService) { s.now = now }
}

func WithLogger(logger *applog.Logger) Option {
	return func(s *DashboardService) { s.logger = logger.WithComponent(applog.ComponentDashboard) }
}

func NewDashboardService(jobs records.JobLister, invoices records.InvoiceLister, agg core.Aggregator, dates core.RangeFormatter, opts ...Option) *DashboardService {
	s := &DashboardService{
		jobs:     jobs,
		invoices: invoices,
		agg:      agg,
		dates:    dates,
		now:      time.Now,
		logger:   applog.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot fetches jobs and invoices concurrently and aggregates both.
func (s *DashboardService) Snapshot(ctx context.Context) (Snapshot, error) {
	var (
		jobs     []core.Job
		invoices []core.Invoice
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if jobs, err = s.jobs.ListJobs(gctx); err != nil {
			return fmt.Errorf("list jobs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if invoices, err = s.invoices.ListInvoices(gctx); err != nil {
			return fmt.Errorf("list invoices: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "Snapshot fetch failed",
			applog.NewFields().WithOperation(applog.OpSnapshot).WithError(err).ToSlice()...)
		return Snapshot{}, err
	}

	now := s.now()
	snap := Snapshot{
		TakenAt:    now,
		HeaderDate: core.FormatHeaderDate(now, s.dates.Location()),
		Jobs:       s.agg.Jobs(jobs),
		Invoices:   s.agg.Invoices(invoices),
	}
	s.logger.DebugContext(ctx, "Snapshot built",
		applog.FieldOperation, applog.OpSnapshot,
		applog.FieldJobs, snap.Jobs.Total,
		applog.FieldInvoices, len(snap.Invoices.Items))
	return snap, nil
}

// JobTab returns the jobs with the given status, in source order, with
// their schedules rendered for now. A job whose timestamps do not parse
// gets an empty schedule and a warning in the log.
func (s *DashboardService) JobTab(ctx context.Context, status core.JobStatus) ([]JobCard, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("job tab %q: %w", status, core.ErrUnknownStatus)
	}
	jobs, err := s.jobs.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	group := s.agg.Jobs(jobs).ByStatus[status]

	now := s.now()
	cards := make([]JobCard, 0, len(group))
	for _, j := range group {
		cards = append(cards, JobCard{Job: j, Schedule: s.schedule(ctx, j, now)})
	}
	return cards, nil
}

// Tabs returns the tab headers in status display order.
func (s *DashboardService) Tabs(ctx context.Context) ([]Tab, error) {
	jobs, err := s.jobs.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	sum := s.agg.Jobs(jobs)

	tabs := make([]Tab, 0, len(core.JobStatuses()))
	for _, st := range core.JobStatuses() {
		tabs = append(tabs, Tab{Status: st, Count: sum.Count(st)})
	}
	return tabs, nil
}

func (s *DashboardService) schedule(ctx context.Context, j core.Job, now time.Time) string {
	out, err := s.dates.Format(j.StartTime, j.EndTime, now)
	if err != nil {
		s.logger.WarnContext(ctx, "Unparseable job schedule",
			applog.NewFields().
				WithOperation(applog.OpFormat).
				WithJob(j.ID, string(j.Status)).
				WithError(err).
				ToSlice()...)
		return ""
	}
	return out
}
