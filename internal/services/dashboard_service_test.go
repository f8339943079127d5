package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobdash/internal/core"
	applog "jobdash/internal/log"
	"jobdash/internal/records"
)

type fakeJobs struct {
	jobs []core.Job
	err  error
}

func (f *fakeJobs) ListJobs(ctx context.Context) ([]core.Job, error) {
	return f.jobs, f.err
}

type fakeInvoices struct {
	invoices []core.Invoice
	err      error
}

func (f *fakeInvoices) ListInvoices(ctx context.Context) ([]core.Invoice, error) {
	return f.invoices, f.err
}

// blockingInvoices waits for cancellation so a failing sibling fetch can
// be observed stopping it.
type blockingInvoices struct{}

func (blockingInvoices) ListInvoices(ctx context.Context) ([]core.Invoice, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

var fixedNow = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func newService(jobs *fakeJobs, invoices records.InvoiceLister, opts ...Option) *DashboardService {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewDashboardService(jobs, invoices, core.NewAggregator(core.DefaultColorTable()), core.NewRangeFormatter(time.UTC), opts...)
}

func TestSnapshot(t *testing.T) {
	jobs := &fakeJobs{jobs: []core.Job{
		{ID: 1, Title: "a", Status: core.Completed},
		{ID: 2, Title: "b", Status: core.Completed},
		{ID: 3, Title: "c", Status: core.Cancelled},
	}}
	invoices := &fakeInvoices{invoices: []core.Invoice{
		{ID: 9, CustomerName: "x", Total: 300, Status: core.Paid},
		{ID: 10, CustomerName: "y", Total: 100, Status: core.Draft},
	}}

	snap, err := newService(jobs, invoices).Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, fixedNow, snap.TakenAt)
	assert.Equal(t, "Tuesday, January 2nd 2024", snap.HeaderDate)
	assert.Equal(t, int64(3), snap.Jobs.Total)
	assert.Equal(t, int64(2), snap.Jobs.Count(core.Completed))
	assert.Equal(t, int64(400), snap.Invoices.Total)
	assert.Equal(t, []core.Portion{
		{Color: core.Green, Magnitude: 300},
		{Color: core.Yellow, Magnitude: 100},
	}, snap.Invoices.Portions)
}

func TestSnapshotPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")

	_, err := newService(&fakeJobs{err: boom}, &fakeInvoices{}).Snapshot(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "list jobs")

	_, err = newService(&fakeJobs{}, &fakeInvoices{err: boom}).Snapshot(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "list invoices")
}

func TestSnapshotCancelsSiblingFetch(t *testing.T) {
	boom := errors.New("jobs down")
	done := make(chan error, 1)
	go func() {
		_, err := newService(&fakeJobs{err: boom}, blockingInvoices{}).Snapshot(context.Background())
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, boom)
	case <-time.After(2 * time.Second):
		t.Fatal("snapshot did not return after a fetch failed")
	}
}

func TestJobTab(t *testing.T) {
	jobs := &fakeJobs{jobs: []core.Job{
		{ID: 1, Title: "late", StartTime: "2024-01-01T23:00:00.000Z", EndTime: "2024-01-02T01:00:00.000Z", Status: core.InProgress},
		{ID: 2, Title: "other", StartTime: "2024-01-01T09:00:00.000Z", EndTime: "2024-01-01T10:00:00.000Z", Status: core.Completed},
		{ID: 3, Title: "broken", StartTime: "yesterday", EndTime: "2024-01-02T01:00:00.000Z", Status: core.InProgress},
	}}
	var buf bytes.Buffer
	logger := applog.New(applog.Config{Level: slog.LevelDebug, Output: &buf})

	cards, err := newService(jobs, &fakeInvoices{}, WithLogger(logger)).JobTab(context.Background(), core.InProgress)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	assert.Equal(t, 1, cards[0].Job.ID)
	assert.Equal(t, "01/01/2024, 11:00 PM - Today, 01:00 AM", cards[0].Schedule)
	assert.Equal(t, 3, cards[1].Job.ID)
	assert.Empty(t, cards[1].Schedule)

	assert.Contains(t, buf.String(), "Unparseable job schedule")
	assert.Contains(t, buf.String(), "job_id=3")
	assert.Contains(t, buf.String(), "component=dashboard")
}

func TestJobTabEmptyAndUnknown(t *testing.T) {
	svc := newService(&fakeJobs{}, &fakeInvoices{})

	cards, err := svc.JobTab(context.Background(), core.Cancelled)
	require.NoError(t, err)
	assert.NotNil(t, cards)
	assert.Empty(t, cards)

	_, err = svc.JobTab(context.Background(), "Archived")
	assert.ErrorIs(t, err, core.ErrUnknownStatus)
}

func TestTabs(t *testing.T) {
	jobs := &fakeJobs{jobs: []core.Job{
		{ID: 1, Title: "a", Status: core.Incomplete},
		{ID: 2, Title: "b", Status: core.YetToStart},
		{ID: 3, Title: "c", Status: core.Incomplete},
	}}

	tabs, err := newService(jobs, &fakeInvoices{}).Tabs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Tab{
		{Status: core.YetToStart, Count: 1},
		{Status: core.InProgress, Count: 0},
		{Status: core.Cancelled, Count: 0},
		{Status: core.Completed, Count: 0},
		{Status: core.Incomplete, Count: 2},
	}, tabs)

	_, err = newService(&fakeJobs{err: errors.New("down")}, &fakeInvoices{}).Tabs(context.Background())
	assert.Error(t, err)
}
