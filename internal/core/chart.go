package core

import "sort"

// Segment is a laid-out portion of a bar of a given width.
type Segment struct {
	Color  Color   `json:"color"`
	Offset float64 `json:"offset"`
	Width  float64 `json:"width"`
}

// Layout places portions left to right as contiguous segments, widest
// first, each sized magnitude/total of width. A non-positive total or width
// yields an empty bar.
func Layout(portions []Portion, total int64, width float64) []Segment {
	if total <= 0 || width <= 0 {
		return []Segment{}
	}

	sorted := append([]Portion{}, portions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Magnitude > sorted[j].Magnitude
	})

	segments := make([]Segment, 0, len(sorted))
	offset := 0.0
	for _, p := range sorted {
		if p.Magnitude <= 0 {
			continue
		}
		w := width * float64(p.Magnitude) / float64(total)
		segments = append(segments, Segment{Color: p.Color, Offset: offset, Width: w})
		offset += w
	}
	return segments
}

// JobChartRows groups job statuses into the two-column legend rows shown
// under the jobs bar.
func JobChartRows() [][]JobStatus {
	return [][]JobStatus{
		{YetToStart, InProgress},
		{Cancelled, Completed},
		{Incomplete},
	}
}

// InvoiceChartRows groups invoice statuses into legend rows.
func InvoiceChartRows() [][]InvoiceStatus {
	return [][]InvoiceStatus{
		{Draft, Pending},
		{Paid, BadDebt},
	}
}
