package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skripsiku_backend/internals/features/theses/theses/dto"
	"skripsiku_backend/internals/features/theses/theses/model"
	"skripsiku_backend/internals/helpers/apperr"
)

const (
	notFoundMsg          = "Skripsi tidak ditemukan"
	milestoneNotFoundMsg = "Milestone tidak ditemukan"
	guidanceNotFoundMsg  = "Bimbingan tidak ditemukan"
	statusNotFoundMsg    = "Status skripsi tidak ditemukan"
)

type Repository interface {
	// theses
	List(ctx context.Context, q dto.ListThesisQuery, limit, offset int) ([]model.ThesisModel, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.ThesisModel, error)
	Create(ctx context.Context, m *model.ThesisModel) error
	UpdateStatus(ctx context.Context, thesisID, statusID uuid.UUID) error
	UpdateDocument(ctx context.Context, thesisID uuid.UUID, url, key string) error
	StudentHasOpenThesis(ctx context.Context, studentID uuid.UUID) (bool, error)

	// referensi tabel lain
	UserHasRole(ctx context.Context, userID uuid.UUID, roles []string) (bool, error)
	TopicExists(ctx context.Context, id uuid.UUID) (bool, error)
	AcademicYearExists(ctx context.Context, id uuid.UUID) (bool, error)
	ActiveAcademicYearID(ctx context.Context) (*uuid.UUID, error)

	// status
	ListStatuses(ctx context.Context) ([]model.ThesisStatusModel, error)
	FindStatus(ctx context.Context, id uuid.UUID) (*model.ThesisStatusModel, error)
	StatusIDByName(ctx context.Context, name string) (uuid.UUID, error)

	// milestones
	ListMilestones(ctx context.Context, thesisID uuid.UUID) ([]model.MilestoneModel, error)
	FindMilestone(ctx context.Context, id uuid.UUID) (*model.MilestoneModel, error)
	CreateMilestone(ctx context.Context, m *model.MilestoneModel) error
	SaveMilestone(ctx context.Context, m *model.MilestoneModel) error

	// guidances
	ListGuidances(ctx context.Context, thesisID uuid.UUID, status string) ([]model.GuidanceModel, error)
	FindGuidance(ctx context.Context, id uuid.UUID) (*model.GuidanceModel, error)
	CreateGuidance(ctx context.Context, g *model.GuidanceModel) error
	// TransitionGuidance menyimpan g hanya kalau status di DB masih `from`.
	TransitionGuidance(ctx context.Context, g *model.GuidanceModel, from string) error

	// job rating
	ScanPage(ctx context.Context, afterID uuid.UUID, limit int) ([]model.ThesisActivity, error)
	UpdateRating(ctx context.Context, thesisID uuid.UUID, rating string) error
	ApplyFailed(ctx context.Context, thesisID, failedStatusID uuid.UUID) error
	CancelOpenGuidances(ctx context.Context, thesisID uuid.UUID, note string) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

/* ==========================
   Theses
========================== */

func (r *gormRepository) List(ctx context.Context, q dto.ListThesisQuery, limit, offset int) ([]model.ThesisModel, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.ThesisModel{})
	if q.Rating != "" {
		tx = tx.Where("thesis_rating = ?", q.Rating)
	}
	if q.StatusID != "" {
		tx = tx.Where("thesis_status_id = ?", q.StatusID)
	}
	if q.AcademicYear != "" {
		tx = tx.Where("thesis_academic_year_id = ?", q.AcademicYear)
	}
	if q.Q != "" {
		tx = tx.Where("thesis_title ILIKE ?", "%"+q.Q+"%")
	}
	if q.StudentID != nil {
		tx = tx.Where("thesis_student_id = ?", *q.StudentID)
	}
	if q.SupervisorID != nil {
		tx = tx.Where(`EXISTS (SELECT 1 FROM thesis_supervisors s
			WHERE s.supervisor_thesis_id = theses.thesis_id AND s.supervisor_lecturer_id = ?)`, *q.SupervisorID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "")
	}
	var rows []model.ThesisModel
	err := tx.Preload("Status").Preload("Supervisors").
		Order("thesis_created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	return rows, total, apperr.FromDB(err, "")
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ThesisModel, error) {
	var m model.ThesisModel
	err := r.db.WithContext(ctx).
		Preload("Status").
		Preload("Supervisors", func(db *gorm.DB) *gorm.DB { return db.Order("supervisor_role ASC") }).
		Where("thesis_id = ?", id).
		Take(&m).Error
	if err != nil {
		return nil, apperr.FromDB(err, notFoundMsg)
	}
	return &m, nil
}

// Create ikut menyimpan Supervisors (association) dalam satu transaksi gorm.
func (r *gormRepository) Create(ctx context.Context, m *model.ThesisModel) error {
	return apperr.FromDB(r.db.WithContext(ctx).Omit("Status", "Milestones").Create(m).Error, "")
}

func (r *gormRepository) UpdateStatus(ctx context.Context, thesisID, statusID uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.ThesisModel{}).
		Where("thesis_id = ?", thesisID).
		Update("thesis_status_id", statusID)
	if res.Error != nil {
		return apperr.FromDB(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(notFoundMsg)
	}
	return nil
}

func (r *gormRepository) UpdateDocument(ctx context.Context, thesisID uuid.UUID, url, key string) error {
	res := r.db.WithContext(ctx).Model(&model.ThesisModel{}).
		Where("thesis_id = ?", thesisID).
		Updates(map[string]any{
			"thesis_document_url": url,
			"thesis_document_key": key,
		})
	if res.Error != nil {
		return apperr.FromDB(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(notFoundMsg)
	}
	return nil
}

func (r *gormRepository) StudentHasOpenThesis(ctx context.Context, studentID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("theses AS t").
		Joins("LEFT JOIN thesis_statuses s ON s.thesis_status_id = t.thesis_status_id").
		Where("t.thesis_student_id = ?", studentID).
		Where("s.thesis_status_id IS NULL OR s.thesis_status_name NOT IN ?", model.TerminalStatuses).
		Count(&n).Error
	return n > 0, apperr.FromDB(err, "")
}

/* ==========================
   Referensi
========================== */

func (r *gormRepository) UserHasRole(ctx context.Context, userID uuid.UUID, roles []string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("users").
		Where("id = ? AND role IN ? AND is_active = TRUE", userID, roles).
		Count(&n).Error
	return n > 0, apperr.FromDB(err, "")
}

func (r *gormRepository) TopicExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("thesis_topics").
		Where("topic_id = ? AND topic_is_active = TRUE", id).
		Count(&n).Error
	return n > 0, apperr.FromDB(err, "")
}

func (r *gormRepository) AcademicYearExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("academic_years").
		Where("academic_year_id = ?", id).
		Count(&n).Error
	return n > 0, apperr.FromDB(err, "")
}

func (r *gormRepository) ActiveAcademicYearID(ctx context.Context) (*uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Table("academic_years").
		Where("academic_year_is_active = TRUE").
		Limit(1).
		Pluck("academic_year_id", &ids).Error
	if err != nil {
		return nil, apperr.FromDB(err, "")
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return &ids[0], nil
}

/* ==========================
   Status
========================== */

func (r *gormRepository) ListStatuses(ctx context.Context) ([]model.ThesisStatusModel, error) {
	var rows []model.ThesisStatusModel
	err := r.db.WithContext(ctx).Order("thesis_status_order ASC, thesis_status_name ASC").Find(&rows).Error
	return rows, apperr.FromDB(err, "")
}

func (r *gormRepository) FindStatus(ctx context.Context, id uuid.UUID) (*model.ThesisStatusModel, error) {
	var m model.ThesisStatusModel
	if err := r.db.WithContext(ctx).Where("thesis_status_id = ?", id).Take(&m).Error; err != nil {
		return nil, apperr.FromDB(err, statusNotFoundMsg)
	}
	return &m, nil
}

func (r *gormRepository) StatusIDByName(ctx context.Context, name string) (uuid.UUID, error) {
	var m model.ThesisStatusModel
	err := r.db.WithContext(ctx).
		Where("LOWER(thesis_status_name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Take(&m).Error
	if err != nil {
		return uuid.Nil, apperr.FromDB(err, "Status skripsi '"+name+"' belum di-seed")
	}
	return m.ThesisStatusID, nil
}

/* ==========================
   Milestones
========================== */

func (r *gormRepository) ListMilestones(ctx context.Context, thesisID uuid.UUID) ([]model.MilestoneModel, error) {
	var rows []model.MilestoneModel
	err := r.db.WithContext(ctx).
		Where("milestone_thesis_id = ?", thesisID).
		Order("milestone_created_at ASC").
		Find(&rows).Error
	return rows, apperr.FromDB(err, "")
}

func (r *gormRepository) FindMilestone(ctx context.Context, id uuid.UUID) (*model.MilestoneModel, error) {
	var m model.MilestoneModel
	if err := r.db.WithContext(ctx).Where("milestone_id = ?", id).Take(&m).Error; err != nil {
		return nil, apperr.FromDB(err, milestoneNotFoundMsg)
	}
	return &m, nil
}

func (r *gormRepository) CreateMilestone(ctx context.Context, m *model.MilestoneModel) error {
	return apperr.FromDB(r.db.WithContext(ctx).Create(m).Error, "")
}

func (r *gormRepository) SaveMilestone(ctx context.Context, m *model.MilestoneModel) error {
	return apperr.FromDB(r.db.WithContext(ctx).Save(m).Error, "")
}

/* ==========================
   Guidances
========================== */

func (r *gormRepository) ListGuidances(ctx context.Context, thesisID uuid.UUID, status string) ([]model.GuidanceModel, error) {
	tx := r.db.WithContext(ctx).Where("guidance_thesis_id = ?", thesisID)
	if status != "" {
		tx = tx.Where("guidance_status = ?", status)
	}
	var rows []model.GuidanceModel
	err := tx.Order("guidance_requested_at DESC").Find(&rows).Error
	return rows, apperr.FromDB(err, "")
}

func (r *gormRepository) FindGuidance(ctx context.Context, id uuid.UUID) (*model.GuidanceModel, error) {
	var g model.GuidanceModel
	if err := r.db.WithContext(ctx).Where("guidance_id = ?", id).Take(&g).Error; err != nil {
		return nil, apperr.FromDB(err, guidanceNotFoundMsg)
	}
	return &g, nil
}

func (r *gormRepository) CreateGuidance(ctx context.Context, g *model.GuidanceModel) error {
	return apperr.FromDB(r.db.WithContext(ctx).Create(g).Error, "")
}

func (r *gormRepository) TransitionGuidance(ctx context.Context, g *model.GuidanceModel, from string) error {
	res := r.db.WithContext(ctx).Model(&model.GuidanceModel{}).
		Where("guidance_id = ? AND guidance_status = ?", g.GuidanceID, from).
		Updates(map[string]any{
			"guidance_status":        g.GuidanceStatus,
			"guidance_scheduled_at":  g.GuidanceScheduledAt,
			"guidance_completed_at":  g.GuidanceCompletedAt,
			"guidance_lecturer_note": g.GuidanceLecturerNote,
			"guidance_updated_at":    time.Now(),
		})
	if res.Error != nil {
		return apperr.FromDB(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return apperr.Conflict("Status bimbingan sudah berubah, muat ulang data")
	}
	return nil
}

/* ==========================
   Job rating
========================== */

// ScanPage: keyset by thesis_id, melewati status terminal & rating CANCELLED.
func (r *gormRepository) ScanPage(ctx context.Context, afterID uuid.UUID, limit int) ([]model.ThesisActivity, error) {
	var rows []model.ThesisActivity
	err := scanPageQuery(r.db.WithContext(ctx), afterID, limit).Scan(&rows).Error
	return rows, apperr.FromDB(err, "")
}

// Skripsi tanpa status (data lama / status belum di-set admin) tetap dinilai;
// hanya status terminal yang dikecualikan.
func scanPageQuery(db *gorm.DB, afterID uuid.UUID, limit int) *gorm.DB {
	return db.Table("theses AS t").
		Select(`t.thesis_id, t.thesis_student_id, t.thesis_title, t.thesis_rating, t.thesis_created_at,
			(SELECT MAX(m.milestone_updated_at) FROM thesis_milestones m
			  WHERE m.milestone_thesis_id = t.thesis_id) AS last_milestone_at`).
		Joins("LEFT JOIN thesis_statuses s ON s.thesis_status_id = t.thesis_status_id").
		Where("t.thesis_id > ?", afterID).
		Where("t.thesis_rating <> ?", model.RatingCancelled).
		Where("s.thesis_status_id IS NULL OR (s.thesis_status_is_terminal = FALSE AND s.thesis_status_name NOT IN ?)", model.TerminalStatuses).
		Order("t.thesis_id ASC").
		Limit(limit)
}

func (r *gormRepository) UpdateRating(ctx context.Context, thesisID uuid.UUID, rating string) error {
	err := r.db.WithContext(ctx).Model(&model.ThesisModel{}).
		Where("thesis_id = ?", thesisID).
		Update("thesis_rating", rating).Error
	return apperr.FromDB(err, "")
}

// ApplyFailed: rating FAILED + status Gagal dalam satu UPDATE.
func (r *gormRepository) ApplyFailed(ctx context.Context, thesisID, failedStatusID uuid.UUID) error {
	err := r.db.WithContext(ctx).Model(&model.ThesisModel{}).
		Where("thesis_id = ?", thesisID).
		Updates(map[string]any{
			"thesis_rating":    model.RatingFailed,
			"thesis_status_id": failedStatusID,
		}).Error
	return apperr.FromDB(err, "")
}

func (r *gormRepository) CancelOpenGuidances(ctx context.Context, thesisID uuid.UUID, note string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.GuidanceModel{}).
		Where("guidance_thesis_id = ? AND guidance_status IN ?", thesisID, model.OpenGuidanceStatuses).
		Updates(map[string]any{
			"guidance_status":        model.GuidanceCancelled,
			"guidance_lecturer_note": note,
			"guidance_updated_at":    time.Now(),
		})
	return res.RowsAffected, apperr.FromDB(res.Error, "")
}
