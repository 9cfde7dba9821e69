package jobs

import (
	"context"
	"errors"
	"fmt"

	portssvc "github.com/SscSPs/mei_retail_app/internal/core/ports/services"
)

// ReportWarmer rebuilds the cached reports of every owner so the first
// dashboard load of the day is served from cache.
type ReportWarmer struct {
	owners    portssvc.OwnerSvc
	reporting portssvc.ReportingSvc
}

// NewReportWarmer creates the warm-up job.
func NewReportWarmer(owners portssvc.OwnerSvc, reporting portssvc.ReportingSvc) *ReportWarmer {
	return &ReportWarmer{owners: owners, reporting: reporting}
}

var _ Job = (*ReportWarmer)(nil)

func (w *ReportWarmer) Name() string {
	return "report-cache-warmer"
}

// Run warms every owner; one failing owner does not stop the others.
func (w *ReportWarmer) Run(ctx context.Context) error {
	users, err := w.owners.ListOwners(ctx)
	if err != nil {
		return fmt.Errorf("failed to list owners: %w", err)
	}

	var errs []error
	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.reporting.WarmOwner(ctx, u.Email); err != nil {
			errs = append(errs, fmt.Errorf("owner %s: %w", u.UserID, err))
		}
	}
	return errors.Join(errs...)
}
