package memory

import (
	"fmt"
	"time"

	"jobdash/internal/core"
)

// sampleJobs spreads a few jobs around a fixed day so every status and
// every schedule shape shows up.
func sampleJobs() []core.Job {
	base := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	ts := func(d time.Duration) string { return base.Add(d).Format(core.TimestampLayout) }

	titles := []string{
		"Boiler service", "Roof inspection", "Window fitting", "Garden clearance",
		"Electrical audit", "Leak repair", "Kitchen install", "Gutter cleaning",
		"Fence repair", "Alarm check",
	}
	statuses := []core.JobStatus{
		core.Completed, core.Completed, core.InProgress, core.YetToStart, core.Cancelled,
		core.Incomplete, core.Completed, core.YetToStart, core.InProgress, core.Completed,
	}

	out := make([]core.Job, 0, len(titles))
	for i, title := range titles {
		start := time.Duration(i) * 20 * time.Hour
		length := time.Duration(2+i%3) * time.Hour
		if i%4 == 3 {
			length = 30 * time.Hour
		}
		out = append(out, core.Job{
			ID:        1001 + i,
			Title:     title,
			StartTime: ts(start),
			EndTime:   ts(start + length),
			Status:    statuses[i],
		})
	}
	return out
}

func sampleInvoices() []core.Invoice {
	statuses := []core.InvoiceStatus{core.Paid, core.Pending, core.Draft, core.Paid, core.BadDebt, core.Pending, core.Paid}
	totals := []int64{1200, 450, 300, 2750, 180, 990, 640}

	out := make([]core.Invoice, 0, len(statuses))
	for i := range statuses {
		out = append(out, core.Invoice{
			ID:           5001 + i,
			CustomerName: fmt.Sprintf("Customer %d", i+1),
			Total:        totals[i],
			Status:       statuses[i],
		})
	}
	return out
}
