//go:build unit

package service

import (
	"context"
	"fmt"
	"testing"

	"go-sites-app/internal/data"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJobFixture() (*JobService, *data.MemoryStore) {
	store := data.NewMemoryStore()
	svc := NewJobService(store.Jobs(), store.Links(), &stubRecorder{})
	return svc, store
}

func siteptr(code string) *string { return &code }

func TestListJobs_BrandFilterIsStrict(t *testing.T) {
	svc, _ := newJobFixture()
	ctx := context.Background()

	_, err := svc.CreateJob(ctx, &data.Job{Title: "Auditor", Language: "pt", Active: true, SiteCode: siteptr(data.SiteNess)}, 1)
	require.NoError(t, err)
	_, err = svc.CreateJob(ctx, &data.Job{Title: "Analyst", Language: "pt", Active: true}, 1)
	require.NoError(t, err)

	all, err := svc.ListJobs(ctx, "pt", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// The unlinked posting must not appear under a brand filter. There is
	// no fallback for collection reads.
	ness, err := svc.ListJobs(ctx, "pt", data.SiteNess)
	require.NoError(t, err)
	require.Len(t, ness, 1)
	assert.Equal(t, "Auditor", ness[0].Title)

	forense, err := svc.ListJobs(ctx, "pt", data.SiteForense)
	require.NoError(t, err)
	assert.Empty(t, forense)
}

func TestFeaturedJobs_ActiveOnlyCappedAtFour(t *testing.T) {
	svc, _ := newJobFixture()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.CreateJob(ctx, &data.Job{Title: fmt.Sprintf("Active %d", i), Language: "pt", Active: true}, 1)
		require.NoError(t, err)
	}
	_, err := svc.CreateJob(ctx, &data.Job{Title: "Closed", Language: "pt", Active: false}, 1)
	require.NoError(t, err)

	featured, err := svc.FeaturedJobs(ctx, "pt", "")
	require.NoError(t, err)
	require.Len(t, featured, 4)
	for _, job := range featured {
		assert.True(t, job.Active)
	}
}

func TestApply_RequiredFields(t *testing.T) {
	svc, _ := newJobFixture()
	ctx := context.Background()

	job, err := svc.CreateJob(ctx, &data.Job{Title: "Auditor", Language: "pt", Active: true}, 1)
	require.NoError(t, err)

	cases := []ApplicationInput{
		{Name: "Ana", Email: "ana@example.com", CoverLetter: "hi"},
		{JobID: job.ID, Email: "ana@example.com", CoverLetter: "hi"},
		{JobID: job.ID, Name: "Ana", CoverLetter: "hi"},
		{JobID: job.ID, Name: "Ana", Email: "ana@example.com"},
	}
	for _, input := range cases {
		_, err := svc.Apply(ctx, input)
		assert.True(t, IsValidationError(err), "input %+v should be rejected", input)
	}

	app, err := svc.Apply(ctx, ApplicationInput{
		JobID: job.ID, Name: "Ana", Email: "ana@example.com", CoverLetter: "hi",
	})
	require.NoError(t, err)
	assert.Equal(t, data.StatusPending, app.Status)

	got, err := svc.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ApplicationCount)
}

func TestUpdateApplicationStatus_InvalidValueLeavesStatus(t *testing.T) {
	svc, _ := newJobFixture()
	ctx := context.Background()

	job, err := svc.CreateJob(ctx, &data.Job{Title: "Auditor", Language: "pt", Active: true}, 1)
	require.NoError(t, err)
	app, err := svc.Apply(ctx, ApplicationInput{JobID: job.ID, Name: "Ana", Email: "a@b.c", CoverLetter: "hi"})
	require.NoError(t, err)

	_, err = svc.UpdateApplicationStatus(ctx, app.ID, data.ApplicationStatus("archived"), 1)
	assert.True(t, IsValidationError(err))

	apps, err := svc.Applications(ctx, &job.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, data.StatusPending, apps[0].Status)

	updated, err := svc.UpdateApplicationStatus(ctx, app.ID, data.StatusReviewing, 1)
	require.NoError(t, err)
	assert.Equal(t, data.StatusReviewing, updated.Status)
}

func TestDeleteJob_KeepsApplications(t *testing.T) {
	svc, store := newJobFixture()
	ctx := context.Background()

	job, err := svc.CreateJob(ctx, &data.Job{Title: "Auditor", Language: "pt", Active: true, SiteCode: siteptr(data.SiteNess)}, 1)
	require.NoError(t, err)
	app, err := svc.Apply(ctx, ApplicationInput{JobID: job.ID, Name: "Ana", Email: "a@b.c", CoverLetter: "hi"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteJob(ctx, job.ID, 1))

	_, err = svc.GetJob(ctx, job.ID)
	assert.True(t, data.IsNotFound(err))

	// Brand links are pruned but the submitted application is orphaned, not
	// deleted.
	links, err := store.Links().ListForEntity(ctx, job.ID, data.EntityJob)
	require.NoError(t, err)
	assert.Empty(t, links)

	apps, err := svc.Applications(ctx, nil)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, app.ID, apps[0].ID)
}

func TestCreateJob_Validation(t *testing.T) {
	svc, _ := newJobFixture()
	ctx := context.Background()

	_, err := svc.CreateJob(ctx, &data.Job{Language: "pt"}, 1)
	assert.True(t, IsValidationError(err))
	_, err = svc.CreateJob(ctx, &data.Job{Title: "Auditor"}, 1)
	assert.True(t, IsValidationError(err))
}
