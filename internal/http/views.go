package http

import (
	"strconv"
	"time"

	"jobdash/internal/core"
	"jobdash/internal/services"
)

type dashboardResponse struct {
	HeaderDate string       `json:"headerDate"`
	TakenAt    time.Time    `json:"takenAt"`
	Jobs       jobsView     `json:"jobs"`
	Invoices   invoicesView `json:"invoices"`
}

type legendEntry struct {
	Status string     `json:"status"`
	Color  core.Color `json:"color"`
	Value  string     `json:"value"`
}

type barView struct {
	Portions []core.Portion  `json:"portions"`
	Segments []core.Segment  `json:"segments"`
	Legend   [][]legendEntry `json:"legend"`
}

type jobsView struct {
	Total    int64                    `json:"total"`
	ByStatus map[core.JobStatus]int64 `json:"byStatus"`
	barView
}

type invoicesView struct {
	Total      int64                        `json:"total"`
	TotalLabel string                       `json:"totalLabel"`
	ByStatus   map[core.InvoiceStatus]int64 `json:"byStatus"`
	barView
}

type jobTabResponse struct {
	Status core.JobStatus     `json:"status"`
	Jobs   []services.JobCard `json:"jobs"`
}

// newJobsView shapes a job summary for a bar of the given width. Legend
// values are job counts.
func newJobsView(sum core.JobSummary, colors core.ColorTable, width float64) jobsView {
	v := jobsView{
		Total:    sum.Total,
		ByStatus: make(map[core.JobStatus]int64, len(sum.ByStatus)),
		barView: barView{
			Portions: sum.Portions,
			Segments: core.Layout(sum.Portions, sum.Total, width),
		},
	}
	for _, st := range core.JobStatuses() {
		v.ByStatus[st] = sum.Count(st)
	}
	for _, row := range core.JobChartRows() {
		entries := make([]legendEntry, 0, len(row))
		for _, st := range row {
			entries = append(entries, legendEntry{
				Status: string(st),
				Color:  colors.Job(st),
				Value:  strconv.FormatInt(sum.Count(st), 10),
			})
		}
		v.Legend = append(v.Legend, entries)
	}
	return v
}

// newInvoicesView shapes an invoice summary; legend values are dollar
// amounts.
func newInvoicesView(sum core.InvoiceSummary, colors core.ColorTable, width float64) invoicesView {
	v := invoicesView{
		Total:      sum.Total,
		TotalLabel: core.FormatAmount(sum.Total),
		ByStatus:   sum.ByStatus,
		barView: barView{
			Portions: sum.Portions,
			Segments: core.Layout(sum.Portions, sum.Total, width),
		},
	}
	for _, row := range core.InvoiceChartRows() {
		entries := make([]legendEntry, 0, len(row))
		for _, st := range row {
			entries = append(entries, legendEntry{
				Status: string(st),
				Color:  colors.Invoice(st),
				Value:  core.FormatAmount(sum.ByStatus[st]),
			})
		}
		v.Legend = append(v.Legend, entries)
	}
	return v
}
