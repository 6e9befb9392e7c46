package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skripsiku_backend/internals/constants"
	notifModel "skripsiku_backend/internals/features/home/notifications/model"
	"skripsiku_backend/internals/features/theses/theses/model"
)

var jobNow = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time { return jobNow.Add(-time.Duration(n) * 24 * time.Hour) }

func ptrTime(t time.Time) *time.Time { return &t }

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		created   time.Time
		milestone *time.Time
		want      string
	}{
		{"baru", daysAgo(10), nil, model.RatingOngoing},
		{"tepat 60 hari", daysAgo(60), nil, model.RatingOngoing},
		{"61 hari tanpa milestone", daysAgo(61), nil, model.RatingSlow},
		{"milestone 70 hari lalu", daysAgo(200), ptrTime(daysAgo(70)), model.RatingSlow},
		{"milestone 130 hari lalu", daysAgo(200), ptrTime(daysAgo(130)), model.RatingAtRisk},
		{"milestone baru", daysAgo(200), ptrTime(daysAgo(5)), model.RatingOngoing},
		{"lebih dari setahun walau aktif", daysAgo(366), ptrTime(daysAgo(1)), model.RatingFailed},
		{"milestone lebih lama dari createdAt diabaikan", daysAgo(30), ptrTime(daysAgo(300)), model.RatingOngoing},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(jobNow, tc.created, tc.milestone))
		})
	}
}

func addMilestone(repo *memRepo, thesisID uuid.UUID, updated time.Time) {
	id := uuid.New()
	repo.milestones[id] = &model.MilestoneModel{
		MilestoneID: id, MilestoneThesisID: thesisID, MilestoneTitle: "Bab",
		MilestoneProgress: 50, MilestoneUpdatedAt: updated,
	}
}

func addGuidance(repo *memRepo, thesisID, lecturer uuid.UUID, status string) uuid.UUID {
	id := uuid.New()
	repo.guidances[id] = &model.GuidanceModel{
		GuidanceID: id, GuidanceThesisID: thesisID, GuidanceSupervisorID: lecturer,
		GuidanceStatus: status, GuidanceTopic: "Bab 2", GuidanceRequestedAt: daysAgo(3),
	}
	return id
}

func newJob(repo *memRepo, heads []uuid.UUID, n *captureNotifier) *StatusJob {
	j := NewStatusJob(repo, usersByRole{constants.RoleKadep: heads}, n)
	j.Now = func() time.Time { return jobNow }
	return j
}

func TestStatusJobClassifiesAndAppliesFailedSideEffects(t *testing.T) {
	repo := newMemRepo()
	lecturer := repo.addUser(constants.RoleDosen)
	kadep1, kadep2 := repo.addUser(constants.RoleKadep), repo.addUser(constants.RoleKadep)

	studentA := repo.addUser(constants.RoleMahasiswa)
	a := repo.addThesis(studentA, model.StatusBimbingan, daysAgo(400), lecturer)
	gReq := addGuidance(repo, a.ThesisID, lecturer, model.GuidanceRequested)
	gAcc := addGuidance(repo, a.ThesisID, lecturer, model.GuidanceAccepted)
	gDone := addGuidance(repo, a.ThesisID, lecturer, model.GuidanceCompleted)

	b := repo.addThesis(repo.addUser(constants.RoleMahasiswa), model.StatusBimbingan, daysAgo(200))
	addMilestone(repo, b.ThesisID, daysAgo(70))
	c := repo.addThesis(repo.addUser(constants.RoleMahasiswa), model.StatusSeminar, daysAgo(200))
	addMilestone(repo, c.ThesisID, daysAgo(130))
	d := repo.addThesis(repo.addUser(constants.RoleMahasiswa), model.StatusBimbingan, daysAgo(10))

	// dilewati: status terminal & rating CANCELLED
	e := repo.addThesis(repo.addUser(constants.RoleMahasiswa), model.StatusLulus, daysAgo(500))
	f := repo.addThesis(repo.addUser(constants.RoleMahasiswa), model.StatusBimbingan, daysAgo(500))
	f.ThesisRating = model.RatingCancelled

	n := &captureNotifier{}
	sum, err := newJob(repo, []uuid.UUID{kadep1, kadep2}, n).Run(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 4, sum.Scanned)
	assert.EqualValues(t, 3, sum.Changed)
	assert.EqualValues(t, 1, sum.Failed)
	assert.EqualValues(t, 0, sum.Errors)

	assert.Equal(t, model.RatingFailed, repo.theses[a.ThesisID].ThesisRating)
	assert.Equal(t, repo.statusID(model.StatusGagal), *repo.theses[a.ThesisID].ThesisStatusID)
	assert.Equal(t, model.GuidanceCancelled, repo.guidances[gReq].GuidanceStatus)
	assert.Equal(t, model.GuidanceCancelled, repo.guidances[gAcc].GuidanceStatus)
	assert.Equal(t, model.GuidanceCompleted, repo.guidances[gDone].GuidanceStatus)

	assert.Equal(t, model.RatingSlow, repo.theses[b.ThesisID].ThesisRating)
	assert.Equal(t, model.RatingAtRisk, repo.theses[c.ThesisID].ThesisRating)
	assert.Equal(t, model.RatingOngoing, repo.theses[d.ThesisID].ThesisRating)
	assert.Equal(t, model.RatingOngoing, repo.theses[e.ThesisID].ThesisRating)
	assert.Equal(t, model.RatingCancelled, repo.theses[f.ThesisID].ThesisRating)

	for _, to := range []uuid.UUID{studentA, kadep1, kadep2} {
		msgs := n.to(to)
		require.Len(t, msgs, 1, "notifikasi untuk %s", to)
		assert.Equal(t, notifModel.NotificationTypeThesisFailed, msgs[0].Type)
		assert.Equal(t, a.ThesisID.String(), msgs[0].Data["thesis_id"])
	}
	assert.Len(t, n.msgs, 3)
}

func TestStatusJobSecondRunIsNoop(t *testing.T) {
	repo := newMemRepo()
	repo.addThesis(repo.addUser(constants.RoleMahasiswa), model.StatusBimbingan, daysAgo(400))
	repo.addThesis(repo.addUser(constants.RoleMahasiswa), model.StatusBimbingan, daysAgo(90))

	n := &captureNotifier{}
	job := newJob(repo, nil, n)
	_, err := job.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, n.msgs, 1)

	sum, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, sum.Scanned) // yang Gagal sudah terminal
	assert.EqualValues(t, 0, sum.Changed)
	assert.Len(t, n.msgs, 1)
}

func TestStatusJobNotificationFailureKeepsTransition(t *testing.T) {
	repo := newMemRepo()
	lecturer := repo.addUser(constants.RoleDosen)
	th := repo.addThesis(repo.addUser(constants.RoleMahasiswa), model.StatusBimbingan, daysAgo(400), lecturer)
	g := addGuidance(repo, th.ThesisID, lecturer, model.GuidanceRequested)

	sum, err := newJob(repo, []uuid.UUID{repo.addUser(constants.RoleKadep)}, &captureNotifier{fail: true}).Run(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, sum.Failed)
	assert.EqualValues(t, 0, sum.Errors)
	assert.Equal(t, model.RatingFailed, repo.theses[th.ThesisID].ThesisRating)
	assert.Equal(t, model.GuidanceCancelled, repo.guidances[g].GuidanceStatus)
}

func TestStatusJobPagesSequentially(t *testing.T) {
	repo := newMemRepo()
	for i := 0; i < 5; i++ {
		repo.addThesis(repo.addUser(constants.RoleMahasiswa), model.StatusBimbingan, daysAgo(70))
	}
	job := newJob(repo, nil, &captureNotifier{})
	job.PageSize = 2

	sum, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 5, sum.Scanned)
	assert.EqualValues(t, 5, sum.Changed)
	assert.Equal(t, 3, repo.scanCalls)
	for _, th := range repo.theses {
		assert.Equal(t, model.RatingSlow, th.ThesisRating)
	}
}

func TestStatusJobRowErrorContinues(t *testing.T) {
	repo := newMemRepo()
	bad := repo.addThesis(repo.addUser(constants.RoleMahasiswa), model.StatusBimbingan, daysAgo(70))
	good := repo.addThesis(repo.addUser(constants.RoleMahasiswa), model.StatusBimbingan, daysAgo(130))
	repo.failRatingFor[bad.ThesisID] = true

	sum, err := newJob(repo, nil, &captureNotifier{}).Run(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, sum.Scanned)
	assert.EqualValues(t, 1, sum.Changed)
	assert.EqualValues(t, 1, sum.Errors)
	assert.Equal(t, model.RatingAtRisk, repo.theses[good.ThesisID].ThesisRating)
	assert.Equal(t, model.RatingOngoing, repo.theses[bad.ThesisID].ThesisRating)
}

func TestStatusJobPageFetchFailureAborts(t *testing.T) {
	repo := newMemRepo()
	for i := 0; i < 3; i++ {
		repo.addThesis(repo.addUser(constants.RoleMahasiswa), model.StatusBimbingan, daysAgo(70))
	}
	repo.failScanAfter = 2
	job := newJob(repo, nil, &captureNotifier{})
	job.PageSize = 1

	sum, err := job.Run(context.Background())
	require.Error(t, err)
	assert.EqualValues(t, 1, sum.Scanned)
}

func TestStatusJobRequiresGagalStatus(t *testing.T) {
	repo := newMemRepo()
	delete(repo.statuses, repo.statusID(model.StatusGagal))
	_, err := newJob(repo, nil, &captureNotifier{}).Run(context.Background())
	assert.Error(t, err)
}
