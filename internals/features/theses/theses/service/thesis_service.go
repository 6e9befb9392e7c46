// file: internals/features/theses/theses/service/thesis_service.go
package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"skripsiku_backend/internals/constants"
	notifModel "skripsiku_backend/internals/features/home/notifications/model"
	notifService "skripsiku_backend/internals/features/home/notifications/service"
	"skripsiku_backend/internals/features/theses/theses/dto"
	"skripsiku_backend/internals/features/theses/theses/model"
	"skripsiku_backend/internals/features/theses/theses/repository"
	helper "skripsiku_backend/internals/helpers"
	"skripsiku_backend/internals/helpers/apperr"
	"skripsiku_backend/internals/helpers/oss"
)

// Actor adalah user yang memanggil endpoint (dari klaim JWT).
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) isManager() bool {
	for _, r := range constants.ManagerRoles {
		if a.Role == r {
			return true
		}
	}
	return false
}

type ThesisService struct {
	Repo     repository.Repository
	Storage  oss.Storage
	Notifier notifService.Notifier
	Now      func() time.Time
}

func NewThesisService(repo repository.Repository, st oss.Storage, n notifService.Notifier) *ThesisService {
	return &ThesisService{Repo: repo, Storage: st, Notifier: n, Now: time.Now}
}

/* ==========================
   Theses
========================== */

// List membatasi hasil sesuai role: mahasiswa hanya miliknya, dosen hanya bimbingannya.
func (s *ThesisService) List(ctx context.Context, actor Actor, q dto.ListThesisQuery) ([]model.ThesisModel, helper.Pagination, error) {
	q.Normalize()
	switch {
	case actor.Role == constants.RoleMahasiswa:
		q.StudentID = &actor.ID
	case !actor.isManager():
		q.SupervisorID = &actor.ID
	}
	p := helper.NormalizePaging(q.Page, q.PerPage, 20, 100)
	rows, total, err := s.Repo.List(ctx, q, p.Limit, p.Offset)
	if err != nil {
		return nil, helper.Pagination{}, err
	}
	return rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage), nil
}

func (s *ThesisService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*model.ThesisModel, error) {
	t, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeView(actor, t); err != nil {
		return nil, err
	}
	return t, nil
}

func authorizeView(actor Actor, t *model.ThesisModel) error {
	if actor.isManager() || t.ThesisStudentID == actor.ID || t.HasSupervisor(actor.ID) {
		return nil
	}
	return apperr.Forbidden("Anda tidak memiliki akses ke skripsi ini")
}

func (s *ThesisService) ListStatuses(ctx context.Context) ([]model.ThesisStatusModel, error) {
	return s.Repo.ListStatuses(ctx)
}

// Register: admin/sekdep mendaftarkan skripsi beserta pembimbingnya.
func (s *ThesisService) Register(ctx context.Context, req dto.CreateThesisRequest) (*model.ThesisModel, error) {
	m := req.ToModel()

	ok, err := s.Repo.UserHasRole(ctx, m.ThesisStudentID, []string{constants.RoleMahasiswa})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Validation("Mahasiswa tidak ditemukan atau tidak aktif")
	}
	open, err := s.Repo.StudentHasOpenThesis(ctx, m.ThesisStudentID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, apperr.Conflict("Mahasiswa masih memiliki skripsi yang berjalan")
	}

	if err := s.checkSupervisors(ctx, m.Supervisors, m.ThesisStudentID); err != nil {
		return nil, err
	}

	if m.ThesisTopicID != nil {
		ok, err := s.Repo.TopicExists(ctx, *m.ThesisTopicID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.Validation("Topik tidak ditemukan atau nonaktif")
		}
	}

	if m.ThesisAcademicYearID == nil {
		id, err := s.Repo.ActiveAcademicYearID(ctx)
		if err != nil {
			return nil, err
		}
		if id == nil {
			return nil, apperr.Validation("Belum ada tahun akademik aktif, isi thesis_academic_year_id")
		}
		m.ThesisAcademicYearID = id
	} else {
		ok, err := s.Repo.AcademicYearExists(ctx, *m.ThesisAcademicYearID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.Validation("Tahun akademik tidak ditemukan")
		}
	}

	statusID, err := s.Repo.StatusIDByName(ctx, model.StatusBimbingan)
	if err != nil {
		return nil, err
	}
	m.ThesisStatusID = &statusID

	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(ctx, m.ThesisID)
}

func (s *ThesisService) checkSupervisors(ctx context.Context, sups []model.SupervisorModel, studentID uuid.UUID) error {
	seenRole := map[string]bool{}
	seenLecturer := map[uuid.UUID]bool{}
	for _, sp := range sups {
		if seenRole[sp.SupervisorRole] {
			return apperr.Validationf("Peran %s dipakai lebih dari sekali", sp.SupervisorRole)
		}
		if seenLecturer[sp.SupervisorLecturerID] {
			return apperr.Validation("Dosen yang sama tidak boleh menjadi dua pembimbing")
		}
		if sp.SupervisorLecturerID == studentID {
			return apperr.Validation("Pembimbing tidak boleh mahasiswa itu sendiri")
		}
		seenRole[sp.SupervisorRole] = true
		seenLecturer[sp.SupervisorLecturerID] = true

		ok, err := s.Repo.UserHasRole(ctx, sp.SupervisorLecturerID, constants.LecturerRoles)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Validationf("Dosen %s tidak ditemukan atau tidak aktif", sp.SupervisorLecturerID)
		}
	}
	if !seenRole[model.SupervisorRoleFirst] {
		return apperr.Validation("Pembimbing 1 wajib diisi")
	}
	return nil
}

// ChangeStatus mengubah status alur kerja. Rating tetap milik job.
func (s *ThesisService) ChangeStatus(ctx context.Context, id uuid.UUID, req dto.UpdateThesisStatusRequest) (*model.ThesisModel, error) {
	statusID, err := uuid.Parse(req.ThesisStatusID)
	if err != nil {
		return nil, apperr.Validation("thesis_status_id tidak valid")
	}
	if _, err := s.Repo.FindStatus(ctx, statusID); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateStatus(ctx, id, statusID); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(ctx, id)
}

/* ==========================
   Dokumen PDF
========================== */

func (s *ThesisService) UploadDocument(ctx context.Context, studentID, thesisID uuid.UUID, data []byte, filename string) (string, error) {
	t, err := s.ownedActiveThesis(ctx, studentID, thesisID)
	if err != nil {
		return "", err
	}

	key := oss.BuildKey("theses/"+t.ThesisID.String(), filename, ".pdf")
	url, err := s.Storage.Put(ctx, key, data, "application/pdf")
	if err != nil {
		return "", apperr.Upstream("Gagal menyimpan dokumen skripsi", err)
	}
	if err := s.Repo.UpdateDocument(ctx, t.ThesisID, url, key); err != nil {
		_ = s.Storage.Delete(ctx, key)
		return "", err
	}

	if t.ThesisDocumentKey != nil && *t.ThesisDocumentKey != "" && *t.ThesisDocumentKey != key {
		if err := s.Storage.Delete(ctx, *t.ThesisDocumentKey); err != nil {
			log.Printf("[WARN] gagal hapus dokumen lama %s: %v", *t.ThesisDocumentKey, err)
		}
	}
	return url, nil
}

// ownedActiveThesis: skripsi milik mahasiswa dan belum berstatus terminal.
func (s *ThesisService) ownedActiveThesis(ctx context.Context, studentID, thesisID uuid.UUID) (*model.ThesisModel, error) {
	t, err := s.Repo.FindByID(ctx, thesisID)
	if err != nil {
		return nil, err
	}
	if t.ThesisStudentID != studentID {
		return nil, apperr.Forbidden("Skripsi ini bukan milik Anda")
	}
	if t.Status != nil && model.IsTerminalStatus(t.Status.ThesisStatusName) {
		return nil, apperr.Validationf("Skripsi sudah berstatus %s", t.Status.ThesisStatusName)
	}
	return t, nil
}

/* ==========================
   Notifikasi (best effort)
========================== */

func (s *ThesisService) notify(ctx context.Context, msg notifService.Message) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Notify(ctx, msg); err != nil {
		log.Printf("[NOTIF] gagal kirim ke %s: %v", msg.UserID, err)
	}
}

func guidanceMessage(to uuid.UUID, title, body string, g *model.GuidanceModel) notifService.Message {
	return notifService.Message{
		UserID: to,
		Title:  title,
		Body:   body,
		Type:   notifModel.NotificationTypeGuidance,
		Data: map[string]any{
			"guidance_id": g.GuidanceID.String(),
			"thesis_id":   g.GuidanceThesisID.String(),
			"status":      g.GuidanceStatus,
		},
		Tags: []string{"guidance", g.GuidanceStatus},
	}
}
