package http

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
)

const (
	defaultBarWidth = 100.0
	maxBarWidth     = 10000.0
)

// parseWidth reads the bar width from ?width=, defaulting to 100 so
// segment widths double as percentages.
func parseWidth(r *http.Request) (float64, error) {
	v := strings.TrimSpace(r.URL.Query().Get("width"))
	if v == "" {
		return defaultBarWidth, nil
	}
	w, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(w) || w <= 0 || w > maxBarWidth {
		return 0, fmt.Errorf("invalid width %q: must be a number in (0, %g]", v, maxBarWidth)
	}
	return w, nil
}
