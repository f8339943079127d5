package records

import (
	"context"

	"jobdash/internal/core"
)

// Ports for inbound record sources.
type (
	// JobLister returns the current job snapshot.
	JobLister interface {
		ListJobs(ctx context.Context) ([]core.Job, error)
	}

	// InvoiceLister returns the current invoice snapshot.
	InvoiceLister interface {
		ListInvoices(ctx context.Context) ([]core.Invoice, error)
	}
)
