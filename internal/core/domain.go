package core

import (
	"errors"
	"fmt"
	"strings"
)

const (
	YetToStart JobStatus = "YetToStart"
	InProgress JobStatus = "InProgress"
	Cancelled  JobStatus = "Cancelled"
	Completed  JobStatus = "Completed"
	Incomplete JobStatus = "Incomplete"
)

const (
	Draft   InvoiceStatus = "Draft"
	Pending InvoiceStatus = "Pending"
	Paid    InvoiceStatus = "Paid"
	BadDebt InvoiceStatus = "BadDebt"
)

type (
	JobStatus     string
	InvoiceStatus string

	// Job is a scheduled unit of work. StartTime and EndTime are UTC
	// instants in TimestampLayout.
	Job struct {
		ID        int       `json:"id" yaml:"id"`
		Title     string    `json:"title" yaml:"title"`
		StartTime string    `json:"startTime" yaml:"startTime"`
		EndTime   string    `json:"endTime" yaml:"endTime"`
		Status    JobStatus `json:"status" yaml:"status"`
	}

	Invoice struct {
		ID           int           `json:"id" yaml:"id"`
		CustomerName string        `json:"customerName" yaml:"customerName"`
		Total        int64         `json:"total" yaml:"total"`
		Status       InvoiceStatus `json:"status" yaml:"status"`
	}
)

var (
	ErrUnknownStatus = errors.New("unknown status")
	ErrEmptyTitle    = errors.New("empty title")
	ErrEmptyCustomer = errors.New("empty customer name")
)

// JobStatuses returns every job status in display order.
func JobStatuses() []JobStatus {
	return []JobStatus{YetToStart, InProgress, Cancelled, Completed, Incomplete}
}

// InvoiceStatuses returns every invoice status in display order.
func InvoiceStatuses() []InvoiceStatus {
	return []InvoiceStatus{Draft, Pending, Paid, BadDebt}
}

func (s JobStatus) Valid() bool {
	switch s {
	case YetToStart, InProgress, Cancelled, Completed, Incomplete:
		return true
	}
	return false
}

func (s InvoiceStatus) Valid() bool {
	switch s {
	case Draft, Pending, Paid, BadDebt:
		return true
	}
	return false
}

// ParseJobStatus matches a status name case-insensitively.
func ParseJobStatus(s string) (JobStatus, error) {
	s = strings.TrimSpace(s)
	for _, st := range JobStatuses() {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("job status %q: %w", s, ErrUnknownStatus)
}

// ParseInvoiceStatus matches a status name case-insensitively.
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	s = strings.TrimSpace(s)
	for _, st := range InvoiceStatuses() {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("invoice status %q: %w", s, ErrUnknownStatus)
}

// Validate checks the fields a record source must supply. Timestamps are
// not checked here; malformed ones are handled where they are formatted.
func (j Job) Validate() error {
	if strings.TrimSpace(j.Title) == "" {
		return ErrEmptyTitle
	}
	if !j.Status.Valid() {
		return fmt.Errorf("job %d status %q: %w", j.ID, j.Status, ErrUnknownStatus)
	}
	return nil
}

func (i Invoice) Validate() error {
	if strings.TrimSpace(i.CustomerName) == "" {
		return ErrEmptyCustomer
	}
	if !i.Status.Valid() {
		return fmt.Errorf("invoice %d status %q: %w", i.ID, i.Status, ErrUnknownStatus)
	}
	return nil
}
