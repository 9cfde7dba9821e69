package jobs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/SscSPs/mei_retail_app/internal/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOwners struct {
	users []domain.User
	err   error
}

func (f fakeOwners) ResolveOwner(context.Context, string) (*domain.OwnerContext, error) {
	return nil, errors.New("not used")
}

func (f fakeOwners) ListOwners(context.Context) ([]domain.User, error) {
	return f.users, f.err
}

type fakeReporting struct {
	warmed []string
	failOn string
}

func (f *fakeReporting) WarmOwner(_ context.Context, email string) error {
	f.warmed = append(f.warmed, email)
	if email == f.failOn {
		return errors.New("boom")
	}
	return nil
}

func TestReportWarmer_WarmsEveryOwner(t *testing.T) {
	owners := fakeOwners{users: []domain.User{
		{UserID: "1", Email: "a@shop.com"},
		{UserID: "2", Email: "b@shop.com"},
		{UserID: "3", Email: "c@shop.com"},
	}}
	reporting := &fakeReporting{failOn: "b@shop.com"}
	job := jobs.NewReportWarmer(owners, reportingSvc{reporting})

	err := job.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner 2")
	assert.Equal(t, []string{"a@shop.com", "b@shop.com", "c@shop.com"}, reporting.warmed)
	assert.Equal(t, "report-cache-warmer", job.Name())
}

func TestReportWarmer_ListFailure(t *testing.T) {
	job := jobs.NewReportWarmer(fakeOwners{err: errors.New("db down")}, reportingSvc{&fakeReporting{}})
	assert.ErrorContains(t, job.Run(context.Background()), "failed to list owners")
}
