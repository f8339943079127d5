package memory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"jobdash/internal/core"
)

const (
	jobsFile     = "jobs.yaml"
	invoicesFile = "invoices.yaml"
)

// Store is an in-memory record source. It hands out copies so callers
// always get an independent snapshot.
type Store struct {
	mu       sync.Mutex
	jobs     []core.Job
	invoices []core.Invoice
}

// New validates and stores the given records.
func New(jobs []core.Job, invoices []core.Invoice) (*Store, error) {
	s := &Store{}
	for _, j := range jobs {
		if err := s.AddJob(j); err != nil {
			return nil, err
		}
	}
	for _, inv := range invoices {
		if err := s.AddInvoice(inv); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NewFromFiles seeds the store from jobs.yaml and invoices.yaml in base.
// A missing file falls back to the built-in sample records for that kind;
// a present but invalid file is an error.
func NewFromFiles(base string) (*Store, error) {
	jobs, err := readSeed[core.Job](filepath.Join(base, jobsFile))
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = sampleJobs()
	}
	invoices, err := readSeed[core.Invoice](filepath.Join(base, invoicesFile))
	if err != nil {
		return nil, err
	}
	if invoices == nil {
		invoices = sampleInvoices()
	}
	return New(jobs, invoices)
}

// AddJob validates and appends a job.
func (s *Store) AddJob(j core.Job) error {
	if err := j.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, j)
	return nil
}

// AddInvoice validates and appends an invoice.
func (s *Store) AddInvoice(inv core.Invoice) error {
	if err := inv.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices = append(s.invoices, inv)
	return nil
}

// ListJobs implements records.JobLister
func (s *Store) ListJobs(ctx context.Context) ([]core.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Job{}, s.jobs...), nil
}

// ListInvoices implements records.InvoiceLister
func (s *Store) ListInvoices(ctx context.Context) ([]core.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Invoice{}, s.invoices...), nil
}

// readSeed returns nil, nil when path does not exist.
func readSeed[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}
	out := []T{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}
	return out, nil
}
