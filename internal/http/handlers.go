package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"jobdash/internal/core"
	applog "jobdash/internal/log"
	"jobdash/internal/middleware/trace"
)

// handleDashboard returns both summaries with bars laid out for ?width=.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	width, err := parseWidth(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	snap, err := s.dashboard.Snapshot(ctx)
	if err != nil {
		s.fail(w, r, err, applog.OpSnapshot)
		return
	}

	render.JSON(w, r, dashboardResponse{
		HeaderDate: snap.HeaderDate,
		TakenAt:    snap.TakenAt,
		Jobs:       newJobsView(snap.Jobs, s.colors, width),
		Invoices:   newInvoicesView(snap.Invoices, s.colors, width),
	})
}

// handleInvoices returns the invoice summary on its own.
func (s *Server) handleInvoices(w http.ResponseWriter, r *http.Request) {
	width, err := parseWidth(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	snap, err := s.dashboard.Snapshot(ctx)
	if err != nil {
		s.fail(w, r, err, applog.OpSnapshot)
		return
	}
	render.JSON(w, r, newInvoicesView(snap.Invoices, s.colors, width))
}

// handleJobTab returns the jobs of one status with their schedules.
func (s *Server) handleJobTab(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		renderError(w, r, http.StatusBadRequest, "status is required")
		return
	}
	status, err := core.ParseJobStatus(raw)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	cards, err := s.dashboard.JobTab(ctx, status)
	if err != nil {
		s.fail(w, r, err, applog.OpJobTab)
		return
	}
	render.JSON(w, r, jobTabResponse{Status: status, Jobs: cards})
}

func (s *Server) handleTabs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	tabs, err := s.dashboard.Tabs(ctx)
	if err != nil {
		s.fail(w, r, err, applog.OpJobTab)
		return
	}
	render.JSON(w, r, tabs)
}

// fail logs err and maps it onto a status code.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, op string) {
	code := http.StatusInternalServerError
	msg := "internal error"
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		code, msg = http.StatusGatewayTimeout, "record source timed out"
	case errors.Is(err, core.ErrUnknownStatus):
		code, msg = http.StatusBadRequest, err.Error()
	}

	fields := applog.NewFields().
		WithOperation(op).
		WithRequestID(trace.GetRequestID(r.Context())).
		WithError(err)
	applog.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed", fields.ToSlice()...)

	renderError(w, r, code, msg)
}

type errorResponse struct {
	Error string `json:"error"`
}

func renderError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	render.Status(r, code)
	render.JSON(w, r, errorResponse{Error: msg})
}
