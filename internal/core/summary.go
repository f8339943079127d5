package core

import "sort"

// Portion is one segment of a proportional bar chart.
type Portion struct {
	Color     Color `json:"color"`
	Magnitude int64 `json:"magnitude"`
}

// JobSummary is a snapshot of jobs grouped by status.
type JobSummary struct {
	Items    []Job               `json:"items"`
	Total    int64               `json:"total"`
	ByStatus map[JobStatus][]Job `json:"byStatus"`
	Portions []Portion           `json:"portions"`
}

// InvoiceSummary is a snapshot of invoice totals grouped by status.
type InvoiceSummary struct {
	Items    []Invoice               `json:"items"`
	Total    int64                   `json:"total"`
	ByStatus map[InvoiceStatus]int64 `json:"byStatus"`
	Portions []Portion               `json:"portions"`
}

// Count returns the number of jobs with the given status.
func (s JobSummary) Count(status JobStatus) int64 {
	return int64(len(s.ByStatus[status]))
}

// Aggregator builds summaries from record snapshots. It holds no state
// beyond its color table and is safe for concurrent use.
type Aggregator struct {
	colors ColorTable
}

func NewAggregator(colors ColorTable) Aggregator {
	return Aggregator{colors: colors}
}

// Jobs groups jobs by status. Total is the job count and each portion's
// magnitude is the size of its group.
func (a Aggregator) Jobs(jobs []Job) JobSummary {
	sum := JobSummary{
		Items:    append([]Job{}, jobs...),
		Total:    int64(len(jobs)),
		ByStatus: make(map[JobStatus][]Job, len(JobStatuses())),
	}
	for _, st := range JobStatuses() {
		sum.ByStatus[st] = []Job{}
	}
	for _, j := range sum.Items {
		sum.ByStatus[j.Status] = append(sum.ByStatus[j.Status], j)
	}

	var portions []Portion
	for _, st := range JobStatuses() {
		portions = appendPortion(portions, a.colors.Job(st), int64(len(sum.ByStatus[st])))
	}
	sum.Portions = sortPortions(portions)
	return sum
}

// Invoices sums invoice totals by status. Total is the grand sum and each
// portion's magnitude is the sum of its group.
func (a Aggregator) Invoices(invoices []Invoice) InvoiceSummary {
	sum := InvoiceSummary{
		Items:    append([]Invoice{}, invoices...),
		ByStatus: make(map[InvoiceStatus]int64, len(InvoiceStatuses())),
	}
	for _, st := range InvoiceStatuses() {
		sum.ByStatus[st] = 0
	}
	for _, inv := range sum.Items {
		sum.Total += inv.Total
		sum.ByStatus[inv.Status] += inv.Total
	}

	var portions []Portion
	for _, st := range InvoiceStatuses() {
		portions = appendPortion(portions, a.colors.Invoice(st), sum.ByStatus[st])
	}
	sum.Portions = sortPortions(portions)
	return sum
}

// appendPortion skips non-positive magnitudes so no zero-width segment is
// ever produced.
func appendPortion(portions []Portion, c Color, magnitude int64) []Portion {
	if magnitude <= 0 {
		return portions
	}
	return append(portions, Portion{Color: c, Magnitude: magnitude})
}

// sortPortions orders by descending magnitude. The sort is stable so equal
// magnitudes keep status display order.
func sortPortions(portions []Portion) []Portion {
	if portions == nil {
		return []Portion{}
	}
	sort.SliceStable(portions, func(i, j int) bool {
		return portions[i].Magnitude > portions[j].Magnitude
	})
	return portions
}
