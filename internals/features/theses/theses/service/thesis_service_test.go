package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skripsiku_backend/internals/constants"
	notifModel "skripsiku_backend/internals/features/home/notifications/model"
	"skripsiku_backend/internals/features/theses/theses/dto"
	"skripsiku_backend/internals/features/theses/theses/model"
	"skripsiku_backend/internals/helpers/apperr"
)

type fixture struct {
	repo     *memRepo
	svc      *ThesisService
	notifier *captureNotifier
	storage  *memStorage
	student  uuid.UUID
	other    uuid.UUID
	lect1    uuid.UUID
	lect2    uuid.UUID
	outsider uuid.UUID
	thesis   *model.ThesisModel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{repo: newMemRepo(), notifier: &captureNotifier{}, storage: newMemStorage()}
	f.student = f.repo.addUser(constants.RoleMahasiswa)
	f.other = f.repo.addUser(constants.RoleMahasiswa)
	f.lect1 = f.repo.addUser(constants.RoleDosen)
	f.lect2 = f.repo.addUser(constants.RoleKadep)
	f.outsider = f.repo.addUser(constants.RoleDosen)
	f.thesis = f.repo.addThesis(f.student, model.StatusBimbingan, jobNow.AddDate(0, -2, 0), f.lect1, f.lect2)

	f.svc = NewThesisService(f.repo, f.storage, f.notifier)
	f.svc.Now = func() time.Time { return jobNow }
	return f
}

func isKind(err error, target error) bool { return errors.Is(err, target) }

func strPtr(s string) *string { return &s }

/* ==========================
   Registrasi & akses
========================== */

func TestRegisterThesis(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	newStudent := f.repo.addUser(constants.RoleMahasiswa)

	req := dto.CreateThesisRequest{
		ThesisTitle:     "Sistem Informasi Bimbingan",
		ThesisStudentID: newStudent.String(),
		Supervisors:     []dto.SupervisorInput{{LecturerID: f.lect1.String(), Role: model.SupervisorRoleFirst}},
	}

	// belum ada tahun akademik aktif
	_, err := f.svc.Register(ctx, req)
	require.True(t, isKind(err, apperr.ErrValidation), "got %v", err)

	year := uuid.New()
	f.repo.activeYear = &year
	m, err := f.svc.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, year, *m.ThesisAcademicYearID)
	assert.Equal(t, model.StatusBimbingan, m.Status.ThesisStatusName)
	assert.Equal(t, model.RatingOngoing, m.ThesisRating)
	require.Len(t, m.Supervisors, 1)

	// masih punya skripsi berjalan
	_, err = f.svc.Register(ctx, req)
	assert.True(t, isKind(err, apperr.ErrConflict), "got %v", err)
}

func TestRegisterThesisValidatesSupervisors(t *testing.T) {
	f := newFixture(t)
	year := uuid.New()
	f.repo.activeYear = &year
	ctx := context.Background()

	base := func(sups ...dto.SupervisorInput) dto.CreateThesisRequest {
		return dto.CreateThesisRequest{
			ThesisTitle:     "Judul Skripsi Baru",
			ThesisStudentID: f.repo.addUser(constants.RoleMahasiswa).String(),
			Supervisors:     sups,
		}
	}

	cases := map[string]dto.CreateThesisRequest{
		"peran ganda": base(
			dto.SupervisorInput{LecturerID: f.lect1.String(), Role: model.SupervisorRoleFirst},
			dto.SupervisorInput{LecturerID: f.lect2.String(), Role: model.SupervisorRoleFirst},
		),
		"dosen sama": base(
			dto.SupervisorInput{LecturerID: f.lect1.String(), Role: model.SupervisorRoleFirst},
			dto.SupervisorInput{LecturerID: f.lect1.String(), Role: model.SupervisorRoleSecond},
		),
		"bukan dosen": base(
			dto.SupervisorInput{LecturerID: f.other.String(), Role: model.SupervisorRoleFirst},
		),
		"tanpa pembimbing 1": base(
			dto.SupervisorInput{LecturerID: f.lect1.String(), Role: model.SupervisorRoleSecond},
		),
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Register(ctx, req)
			assert.True(t, isKind(err, apperr.ErrValidation), "got %v", err)
		})
	}

	// topik nonaktif / tidak ada
	req := base(dto.SupervisorInput{LecturerID: f.lect1.String(), Role: model.SupervisorRoleFirst})
	req.ThesisTopicID = strPtr(uuid.NewString())
	_, err := f.svc.Register(ctx, req)
	assert.True(t, isKind(err, apperr.ErrValidation), "got %v", err)
}

func TestListScopesByRole(t *testing.T) {
	f := newFixture(t)
	f.repo.addThesis(f.other, model.StatusBimbingan, jobNow, f.outsider)
	ctx := context.Background()

	rows, pg, err := f.svc.List(ctx, Actor{ID: f.student, Role: constants.RoleMahasiswa}, dto.ListThesisQuery{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, f.thesis.ThesisID, rows[0].ThesisID)
	assert.EqualValues(t, 1, pg.Total)

	rows, _, err = f.svc.List(ctx, Actor{ID: f.outsider, Role: constants.RoleDosen}, dto.ListThesisQuery{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, f.other, rows[0].ThesisStudentID)

	rows, _, err = f.svc.List(ctx, Actor{ID: uuid.New(), Role: constants.RoleAdmin}, dto.ListThesisQuery{})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestGetForbiddenForStranger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Get(ctx, Actor{ID: f.other, Role: constants.RoleMahasiswa}, f.thesis.ThesisID)
	assert.True(t, isKind(err, apperr.ErrForbidden), "got %v", err)

	_, err = f.svc.Get(ctx, Actor{ID: f.outsider, Role: constants.RoleDosen}, f.thesis.ThesisID)
	assert.True(t, isKind(err, apperr.ErrForbidden), "got %v", err)

	_, err = f.svc.Get(ctx, Actor{ID: f.lect2, Role: constants.RoleKadep}, f.thesis.ThesisID)
	assert.NoError(t, err)
}

func TestChangeStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m, err := f.svc.ChangeStatus(ctx, f.thesis.ThesisID, dto.UpdateThesisStatusRequest{ThesisStatusID: f.repo.statusID(model.StatusSeminar).String()})
	require.NoError(t, err)
	assert.Equal(t, model.StatusSeminar, m.Status.ThesisStatusName)
	assert.Equal(t, model.RatingOngoing, m.ThesisRating)

	_, err = f.svc.ChangeStatus(ctx, f.thesis.ThesisID, dto.UpdateThesisStatusRequest{ThesisStatusID: uuid.NewString()})
	assert.True(t, isKind(err, apperr.ErrNotFound), "got %v", err)
}

/* ==========================
   Milestone
========================== */

func TestMilestoneOwnershipAndProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateMilestone(ctx, f.other, f.thesis.ThesisID, dto.CreateMilestoneRequest{MilestoneTitle: "Bab 1"})
	assert.True(t, isKind(err, apperr.ErrForbidden), "got %v", err)

	p := 40
	ms, err := f.svc.CreateMilestone(ctx, f.student, f.thesis.ThesisID, dto.CreateMilestoneRequest{MilestoneTitle: "Bab 1", MilestoneProgress: &p})
	require.NoError(t, err)
	assert.Equal(t, model.MilestoneInProgress, ms.MilestoneStatus)

	down := 20
	_, err = f.svc.UpdateMilestone(ctx, f.student, ms.MilestoneID, dto.UpdateMilestoneRequest{MilestoneProgress: &down})
	assert.True(t, isKind(err, apperr.ErrValidation), "got %v", err)

	_, err = f.svc.UpdateMilestone(ctx, f.other, ms.MilestoneID, dto.UpdateMilestoneRequest{})
	assert.True(t, isKind(err, apperr.ErrForbidden), "got %v", err)

	full := 100
	ms, err = f.svc.UpdateMilestone(ctx, f.student, ms.MilestoneID, dto.UpdateMilestoneRequest{MilestoneProgress: &full})
	require.NoError(t, err)
	assert.Equal(t, model.MilestoneDone, ms.MilestoneStatus)

	list, err := f.svc.ListMilestones(ctx, Actor{ID: f.lect1, Role: constants.RoleDosen}, f.thesis.ThesisID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTerminalThesisRejectsStudentWrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	gagal := f.repo.statusID(model.StatusGagal)
	f.repo.theses[f.thesis.ThesisID].ThesisStatusID = &gagal

	_, err := f.svc.CreateMilestone(ctx, f.student, f.thesis.ThesisID, dto.CreateMilestoneRequest{MilestoneTitle: "Bab 1"})
	assert.True(t, isKind(err, apperr.ErrValidation), "got %v", err)

	_, err = f.svc.RequestGuidance(ctx, f.student, f.thesis.ThesisID, dto.RequestGuidanceRequest{SupervisorID: f.lect1.String(), Topic: "Bab 1"})
	assert.True(t, isKind(err, apperr.ErrValidation), "got %v", err)
}

/* ==========================
   Bimbingan
========================== */

func TestGuidanceLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.RequestGuidance(ctx, f.student, f.thesis.ThesisID, dto.RequestGuidanceRequest{SupervisorID: f.outsider.String(), Topic: "Bab 2"})
	assert.True(t, isKind(err, apperr.ErrValidation), "got %v", err)

	_, err = f.svc.RequestGuidance(ctx, f.other, f.thesis.ThesisID, dto.RequestGuidanceRequest{SupervisorID: f.lect1.String(), Topic: "Bab 2"})
	assert.True(t, isKind(err, apperr.ErrForbidden), "got %v", err)

	g, err := f.svc.RequestGuidance(ctx, f.student, f.thesis.ThesisID, dto.RequestGuidanceRequest{SupervisorID: f.lect1.String(), Topic: "Bab 2"})
	require.NoError(t, err)
	assert.Equal(t, model.GuidanceRequested, g.GuidanceStatus)
	require.Len(t, f.notifier.to(f.lect1), 1)
	assert.Equal(t, notifModel.NotificationTypeGuidance, f.notifier.to(f.lect1)[0].Type)

	// complete sebelum accept tidak sah
	_, err = f.svc.CompleteGuidance(ctx, f.lect1, g.GuidanceID, dto.GuidanceNoteRequest{})
	assert.True(t, isKind(err, apperr.ErrValidation), "got %v", err)

	// pembimbing lain tidak boleh menerima
	_, err = f.svc.AcceptGuidance(ctx, f.lect2, g.GuidanceID, dto.AcceptGuidanceRequest{ScheduledAt: jobNow.Add(24 * time.Hour)})
	assert.True(t, isKind(err, apperr.ErrForbidden), "got %v", err)

	_, err = f.svc.AcceptGuidance(ctx, f.lect1, g.GuidanceID, dto.AcceptGuidanceRequest{ScheduledAt: jobNow.Add(-time.Hour)})
	assert.True(t, isKind(err, apperr.ErrValidation), "got %v", err)

	g, err = f.svc.AcceptGuidance(ctx, f.lect1, g.GuidanceID, dto.AcceptGuidanceRequest{ScheduledAt: jobNow.Add(24 * time.Hour), Note: "Ruang 3"})
	require.NoError(t, err)
	assert.Equal(t, model.GuidanceAccepted, g.GuidanceStatus)
	require.NotNil(t, g.GuidanceScheduledAt)
	require.Len(t, f.notifier.to(f.student), 1)

	g, err = f.svc.CompleteGuidance(ctx, f.lect1, g.GuidanceID, dto.GuidanceNoteRequest{Note: "Lanjut bab 3"})
	require.NoError(t, err)
	assert.Equal(t, model.GuidanceCompleted, g.GuidanceStatus)
	assert.Equal(t, jobNow, *g.GuidanceCompletedAt)

	_, err = f.svc.CancelGuidance(ctx, f.student, g.GuidanceID, dto.GuidanceNoteRequest{})
	assert.True(t, isKind(err, apperr.ErrValidation), "got %v", err)

	_, err = f.svc.RejectGuidance(ctx, f.lect1, g.GuidanceID, dto.GuidanceNoteRequest{})
	assert.True(t, isKind(err, apperr.ErrValidation), "got %v", err)
}

func TestCancelGuidance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := dto.RequestGuidanceRequest{SupervisorID: f.lect2.String(), Topic: "Revisi"}

	g1, err := f.svc.RequestGuidance(ctx, f.student, f.thesis.ThesisID, req)
	require.NoError(t, err)

	_, err = f.svc.CancelGuidance(ctx, f.outsider, g1.GuidanceID, dto.GuidanceNoteRequest{})
	assert.True(t, isKind(err, apperr.ErrForbidden), "got %v", err)
	_, err = f.svc.CancelGuidance(ctx, f.lect1, g1.GuidanceID, dto.GuidanceNoteRequest{})
	assert.True(t, isKind(err, apperr.ErrForbidden), "got %v", err)

	g1, err = f.svc.CancelGuidance(ctx, f.student, g1.GuidanceID, dto.GuidanceNoteRequest{})
	require.NoError(t, err)
	assert.Equal(t, model.GuidanceCancelled, g1.GuidanceStatus)

	// dibatalkan pembimbing → notifikasi ke mahasiswa
	g2, err := f.svc.RequestGuidance(ctx, f.student, f.thesis.ThesisID, req)
	require.NoError(t, err)
	g2, err = f.svc.CancelGuidance(ctx, f.lect2, g2.GuidanceID, dto.GuidanceNoteRequest{Note: "Sedang dinas"})
	require.NoError(t, err)
	assert.Equal(t, "Sedang dinas", g2.GuidanceLecturerNote)
	assert.Len(t, f.notifier.to(f.student), 1)

	list, err := f.svc.ListGuidances(ctx, Actor{ID: f.student, Role: constants.RoleMahasiswa}, f.thesis.ThesisID, dto.ListGuidanceQuery{Status: model.GuidanceCancelled})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestNotifierFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(t)
	f.notifier.fail = true
	_, err := f.svc.RequestGuidance(context.Background(), f.student, f.thesis.ThesisID,
		dto.RequestGuidanceRequest{SupervisorID: f.lect1.String(), Topic: "Bab 4"})
	assert.NoError(t, err)
}

/* ==========================
   Dokumen
========================== */

func TestUploadDocumentReplacesOldObject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.UploadDocument(ctx, f.other, f.thesis.ThesisID, []byte("%PDF-1.4"), "draft.pdf")
	assert.True(t, isKind(err, apperr.ErrForbidden), "got %v", err)

	url1, err := f.svc.UploadDocument(ctx, f.student, f.thesis.ThesisID, []byte("%PDF-1.4 a"), "draft.pdf")
	require.NoError(t, err)
	require.Len(t, f.storage.objects, 1)
	firstKey := *f.repo.theses[f.thesis.ThesisID].ThesisDocumentKey

	url2, err := f.svc.UploadDocument(ctx, f.student, f.thesis.ThesisID, []byte("%PDF-1.4 b"), "final.pdf")
	require.NoError(t, err)
	assert.NotEqual(t, url1, url2)
	assert.Len(t, f.storage.objects, 1)
	_, stillThere := f.storage.objects[firstKey]
	assert.False(t, stillThere)
	assert.Equal(t, url2, *f.repo.theses[f.thesis.ThesisID].ThesisDocumentURL)
}
