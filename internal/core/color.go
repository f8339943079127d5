package core

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Color is a display color in #RRGGBB form.
type Color string

const (
	Cyan   Color = "#00FFFF"
	Blue   Color = "#0000FF"
	Yellow Color = "#FFFF00"
	Green  Color = "#00FF00"
	Red    Color = "#FF0000"
	Gray   Color = "#888888"
)

var (
	ErrInvalidColor = errors.New("invalid color")

	hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// ColorTable maps every job and invoice status to a chart color. The zero
// value resolves everything to Gray. Values are copied on construction so a
// table never changes once built.
type ColorTable struct {
	jobs     map[JobStatus]Color
	invoices map[InvoiceStatus]Color
}

// DefaultColorTable returns the stock status palette.
func DefaultColorTable() ColorTable {
	return ColorTable{
		jobs: map[JobStatus]Color{
			YetToStart: Cyan,
			InProgress: Blue,
			Cancelled:  Yellow,
			Completed:  Green,
			Incomplete: Red,
		},
		invoices: map[InvoiceStatus]Color{
			BadDebt: Red,
			Draft:   Yellow,
			Paid:    Green,
			Pending: Blue,
		},
	}
}

func (t ColorTable) Job(s JobStatus) Color {
	if c, ok := t.jobs[s]; ok {
		return c
	}
	return Gray
}

func (t ColorTable) Invoice(s InvoiceStatus) Color {
	if c, ok := t.invoices[s]; ok {
		return c
	}
	return Gray
}

// colorOverrides is the on-disk shape of a color table file:
//
//	jobs:
//	  Completed: "#2E7D32"
//	invoices:
//	  BadDebt: "#B71C1C"
type colorOverrides struct {
	Jobs     map[string]string `yaml:"jobs"`
	Invoices map[string]string `yaml:"invoices"`
}

// WithOverrides returns a new table with the given entries replaced. Keys
// are status names; values must be #RRGGBB.
func (t ColorTable) WithOverrides(jobs, invoices map[string]string) (ColorTable, error) {
	out := ColorTable{
		jobs:     make(map[JobStatus]Color, len(t.jobs)+len(jobs)),
		invoices: make(map[InvoiceStatus]Color, len(t.invoices)+len(invoices)),
	}
	for k, v := range t.jobs {
		out.jobs[k] = v
	}
	for k, v := range t.invoices {
		out.invoices[k] = v
	}

	for name, value := range jobs {
		st, err := ParseJobStatus(name)
		if err != nil {
			return ColorTable{}, err
		}
		c, err := parseColor(value)
		if err != nil {
			return ColorTable{}, fmt.Errorf("job status %s: %w", st, err)
		}
		out.jobs[st] = c
	}
	for name, value := range invoices {
		st, err := ParseInvoiceStatus(name)
		if err != nil {
			return ColorTable{}, err
		}
		c, err := parseColor(value)
		if err != nil {
			return ColorTable{}, fmt.Errorf("invoice status %s: %w", st, err)
		}
		out.invoices[st] = c
	}
	return out, nil
}

// LoadColorTable reads YAML overrides from path on top of the defaults.
// An empty path returns the defaults.
func LoadColorTable(path string) (ColorTable, error) {
	if path == "" {
		return DefaultColorTable(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ColorTable{}, fmt.Errorf("read color table: %w", err)
	}
	var ov colorOverrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return ColorTable{}, fmt.Errorf("parse color table %s: %w", path, err)
	}
	return DefaultColorTable().WithOverrides(ov.Jobs, ov.Invoices)
}

func parseColor(s string) (Color, error) {
	if !hexColor.MatchString(s) {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidColor)
	}
	return Color(s), nil
}
