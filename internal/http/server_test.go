package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobdash/internal/core"
	"jobdash/internal/middleware/trace"
	"jobdash/internal/records/memory"
	"jobdash/internal/services"
)

var fixedNow = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := memory.New(
		[]core.Job{
			{ID: 1, Title: "a", StartTime: "2024-01-01T23:00:00.000Z", EndTime: "2024-01-02T01:00:00.000Z", Status: core.Completed},
			{ID: 2, Title: "b", StartTime: "2024-01-01T09:00:00.000Z", EndTime: "2024-01-01T10:00:00.000Z", Status: core.Completed},
			{ID: 3, Title: "c", StartTime: "2024-01-01T09:00:00.000Z", EndTime: "2024-01-01T10:00:00.000Z", Status: core.Cancelled},
		},
		[]core.Invoice{
			{ID: 10, CustomerName: "x", Total: 1500, Status: core.Paid},
			{ID: 11, CustomerName: "y", Total: 500, Status: core.Pending},
		},
	)
	require.NoError(t, err)

	colors := core.DefaultColorTable()
	dash := services.NewDashboardService(store, store, core.NewAggregator(colors), core.NewRangeFormatter(time.UTC),
		services.WithClock(func() time.Time { return fixedNow }))
	return NewServer(":0", dash, WithColors(colors))
}

func do(t *testing.T, srv *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rr := do(t, srv, http.MethodGet, path)
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.NotEmpty(t, rr.Header().Get(trace.HeaderRequestID))
		assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
	}
}

func TestDashboard(t *testing.T) {
	srv := newTestServer(t)
	rr := do(t, srv, http.MethodGet, "/api/dashboard?width=300")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decode[dashboardResponse](t, rr)
	assert.Equal(t, "Tuesday, January 2nd 2024", resp.HeaderDate)

	assert.Equal(t, int64(3), resp.Jobs.Total)
	assert.Equal(t, int64(2), resp.Jobs.ByStatus[core.Completed])
	assert.Equal(t, int64(0), resp.Jobs.ByStatus[core.YetToStart])
	assert.Len(t, resp.Jobs.ByStatus, len(core.JobStatuses()))
	assert.Equal(t, []core.Segment{
		{Color: core.Green, Offset: 0, Width: 200},
		{Color: core.Yellow, Offset: 200, Width: 100},
	}, resp.Jobs.Segments)
	require.Len(t, resp.Jobs.Legend, 3)
	assert.Equal(t, legendEntry{Status: "Cancelled", Color: core.Yellow, Value: "1"}, resp.Jobs.Legend[1][0])

	assert.Equal(t, int64(2000), resp.Invoices.Total)
	assert.Equal(t, "$2,000", resp.Invoices.TotalLabel)
	assert.Equal(t, legendEntry{Status: "Paid", Color: core.Green, Value: "$1,500"}, resp.Invoices.Legend[1][0])
	assert.Equal(t, legendEntry{Status: "BadDebt", Color: core.Red, Value: "$0"}, resp.Invoices.Legend[1][1])
	require.Len(t, resp.Invoices.Segments, 2)
	assert.InDelta(t, 225, resp.Invoices.Segments[0].Width, 1e-9)
}

func TestDashboardDefaultAndBadWidth(t *testing.T) {
	srv := newTestServer(t)

	resp := decode[invoicesView](t, do(t, srv, http.MethodGet, "/api/invoices"))
	require.Len(t, resp.Segments, 2)
	assert.InDelta(t, 75, resp.Segments[0].Width, 1e-9)
	assert.InDelta(t, 25, resp.Segments[1].Width, 1e-9)

	for _, q := range []string{"abc", "0", "-5", "NaN", "1e9"} {
		rr := do(t, srv, http.MethodGet, "/api/dashboard?width="+q)
		assert.Equal(t, http.StatusBadRequest, rr.Code, q)
		assert.Contains(t, decode[errorResponse](t, rr).Error, "invalid width")
	}
}

func TestJobTab(t *testing.T) {
	srv := newTestServer(t)

	rr := do(t, srv, http.MethodGet, "/api/jobs?status=completed")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := decode[jobTabResponse](t, rr)
	assert.Equal(t, core.Completed, resp.Status)
	require.Len(t, resp.Jobs, 2)
	assert.Equal(t, "01/01/2024, 11:00 PM - Today, 01:00 AM", resp.Jobs[0].Schedule)
	assert.Equal(t, "01/01/2024, 09:00 AM - 10:00 AM", resp.Jobs[1].Schedule)

	rr = do(t, srv, http.MethodGet, "/api/jobs?status=InProgress")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[jobTabResponse](t, rr).Jobs)

	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/jobs").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/jobs?status=Done").Code)
}

func TestTabs(t *testing.T) {
	srv := newTestServer(t)
	rr := do(t, srv, http.MethodGet, "/api/jobs/tabs")
	require.Equal(t, http.StatusOK, rr.Code)

	tabs := decode[[]services.Tab](t, rr)
	require.Len(t, tabs, 5)
	assert.Equal(t, services.Tab{Status: core.YetToStart, Count: 0}, tabs[0])
	assert.Equal(t, services.Tab{Status: core.Completed, Count: 2}, tabs[3])
}

func TestRoutingErrors(t *testing.T) {
	srv := newTestServer(t)

	rr := do(t, srv, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "not found", decode[errorResponse](t, rr).Error)

	rr = do(t, srv, http.MethodPost, "/api/dashboard")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

type failingDashboard struct{ err error }

func (f failingDashboard) Snapshot(context.Context) (services.Snapshot, error) {
	return services.Snapshot{}, f.err
}
func (f failingDashboard) JobTab(context.Context, core.JobStatus) ([]services.JobCard, error) {
	return nil, f.err
}
func (f failingDashboard) Tabs(context.Context) ([]services.Tab, error) { return nil, f.err }

func TestFailureMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{errors.New("source down"), http.StatusInternalServerError},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
	}
	for _, tc := range cases {
		srv := NewServer(":0", failingDashboard{err: tc.err})
		for _, path := range []string{"/api/dashboard", "/api/invoices", "/api/jobs?status=Completed", "/api/jobs/tabs"} {
			rr := do(t, srv, http.MethodGet, path)
			assert.Equal(t, tc.code, rr.Code, path)
			assert.NotContains(t, rr.Body.String(), "source down", "internal errors are not leaked")
		}
	}
}

func TestMetricsCountRequests(t *testing.T) {
	srv := newTestServer(t)
	do(t, srv, http.MethodGet, "/healthz")
	do(t, srv, http.MethodGet, "/api/jobs/tabs")
	assert.Equal(t, int64(2), srv.Metrics().TotalRequests)
}
