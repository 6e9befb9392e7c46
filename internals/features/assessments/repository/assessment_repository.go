// file: internals/features/assessments/repository/assessment_repository.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skripsiku_backend/internals/features/assessments/dto"
	"skripsiku_backend/internals/features/assessments/model"
	"skripsiku_backend/internals/helpers/apperr"
)

const (
	criteriaNotFound = "Kriteria penilaian tidak ditemukan"
	rubricNotFound   = "Rubrik tidak ditemukan"
)

type Repository interface {
	// Transaction menjalankan fn dengan repository yang terikat ke satu transaksi.
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// criteria
	ListCriteria(ctx context.Context, q dto.ListCriteriaQuery) ([]model.CriteriaModel, error)
	FindCriteria(ctx context.Context, id uuid.UUID) (*model.CriteriaModel, error)
	LockCriteria(ctx context.Context, id uuid.UUID) (*model.CriteriaModel, error)
	LockScope(ctx context.Context, scope model.Scope) error
	SumActiveMaxScore(ctx context.Context, scope model.Scope, excludeID uuid.UUID) (int, error)
	ActiveMaxScoreTotal(ctx context.Context, scope model.Scope) (int, error)
	NextCriteriaOrder(ctx context.Context, appliesTo, role string) (int, error)
	CriteriaIDsInScope(ctx context.Context, appliesTo, role string) ([]uuid.UUID, error)
	CpmkExists(ctx context.Context, id uuid.UUID) (bool, error)
	CreateCriteria(ctx context.Context, m *model.CriteriaModel) error
	SaveCriteria(ctx context.Context, m *model.CriteriaModel) error
	DeleteCriteria(ctx context.Context, id uuid.UUID) error
	SetCriteriaOrder(ctx context.Context, id uuid.UUID, order int) error
	CountScoresByCriteria(ctx context.Context, id uuid.UUID) (int64, error)

	// rubrics
	ListRubrics(ctx context.Context, criteriaID uuid.UUID) ([]model.RubricModel, error)
	FindRubric(ctx context.Context, id uuid.UUID) (*model.RubricModel, error)
	NextRubricOrder(ctx context.Context, criteriaID uuid.UUID) (int, error)
	CreateRubric(ctx context.Context, m *model.RubricModel) error
	SaveRubric(ctx context.Context, m *model.RubricModel) error
	DeleteRubric(ctx context.Context, id uuid.UUID) error
	SetRubricOrder(ctx context.Context, id uuid.UUID, order int) error
	CountScoresByRubric(ctx context.Context, id uuid.UUID) (int64, error)

	// scores
	ThesisExists(ctx context.Context, thesisID uuid.UUID) (bool, error)
	IsSupervisor(ctx context.Context, thesisID, lecturerID uuid.UUID) (bool, error)
	UpsertScore(ctx context.Context, m *model.ScoreModel) error
	ListScores(ctx context.Context, thesisID uuid.UUID, appliesTo string) ([]model.ScoreModel, error)
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Transaction(ctx context.Context, fn func(tx Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}

/* ===============================
   Criteria
=================================*/

func (r *gormRepository) ListCriteria(ctx context.Context, q dto.ListCriteriaQuery) ([]model.CriteriaModel, error) {
	tx := r.db.WithContext(ctx).Model(&model.CriteriaModel{})
	if q.AppliesTo != "" {
		tx = tx.Where("criteria_applies_to = ?", q.AppliesTo)
	}
	if q.Role != "" {
		tx = tx.Where("criteria_role = ?", q.Role)
	}
	if q.CpmkID != "" {
		tx = tx.Where("criteria_cpmk_id = ?", q.CpmkID)
	}
	if q.Active != nil {
		tx = tx.Where("criteria_is_active = ?", *q.Active)
	}
	var rows []model.CriteriaModel
	err := tx.
		Preload("Rubrics", func(db *gorm.DB) *gorm.DB {
			return db.Order("rubric_display_order ASC, rubric_min_score ASC")
		}).
		Order("criteria_applies_to ASC, criteria_role ASC, criteria_display_order ASC").
		Find(&rows).Error
	return rows, apperr.FromDB(err, "")
}

func (r *gormRepository) FindCriteria(ctx context.Context, id uuid.UUID) (*model.CriteriaModel, error) {
	var m model.CriteriaModel
	err := r.db.WithContext(ctx).
		Preload("Rubrics", func(db *gorm.DB) *gorm.DB {
			return db.Order("rubric_display_order ASC")
		}).
		Where("criteria_id = ?", id).
		Take(&m).Error
	if err != nil {
		return nil, apperr.FromDB(err, criteriaNotFound)
	}
	return &m, nil
}

// LockCriteria: SELECT ... FOR UPDATE, rubrik ikut dimuat (tanpa lock).
func (r *gormRepository) LockCriteria(ctx context.Context, id uuid.UUID) (*model.CriteriaModel, error) {
	var m model.CriteriaModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("criteria_id = ?", id).
		Take(&m).Error
	if err != nil {
		return nil, apperr.FromDB(err, criteriaNotFound)
	}
	if err := r.db.WithContext(ctx).
		Where("rubric_criteria_id = ?", id).
		Order("rubric_display_order ASC").
		Find(&m.Rubrics).Error; err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return &m, nil
}

// LockScope: advisory lock per scope supaya insert paralel di scope yang sama antre.
// Lock dilepas otomatis saat transaksi selesai.
func (r *gormRepository) LockScope(ctx context.Context, scope model.Scope) error {
	err := r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "assessment_criteria:"+scope.Key()).Error
	return apperr.FromDB(err, "")
}

// SumActiveMaxScore mengunci baris aktif di scope (FOR UPDATE) lalu menjumlah di aplikasi;
// Postgres tidak mengizinkan FOR UPDATE bersama agregat.
func (r *gormRepository) SumActiveMaxScore(ctx context.Context, scope model.Scope, excludeID uuid.UUID) (int, error) {
	var scores []int
	tx := r.db.WithContext(ctx).
		Model(&model.CriteriaModel{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("criteria_applies_to = ? AND criteria_role IN ? AND criteria_is_active = TRUE", scope.AppliesTo, scope.Roles)
	if excludeID != uuid.Nil {
		tx = tx.Where("criteria_id <> ?", excludeID)
	}
	if err := tx.Pluck("criteria_max_score", &scores).Error; err != nil {
		return 0, apperr.FromDB(err, "")
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return sum, nil
}

// ActiveMaxScoreTotal: jalur baca tanpa lock, dipakai endpoint budget.
func (r *gormRepository) ActiveMaxScoreTotal(ctx context.Context, scope model.Scope) (int, error) {
	var total int
	err := r.db.WithContext(ctx).
		Model(&model.CriteriaModel{}).
		Where("criteria_applies_to = ? AND criteria_role IN ? AND criteria_is_active = TRUE", scope.AppliesTo, scope.Roles).
		Select("COALESCE(SUM(criteria_max_score), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, apperr.FromDB(err, "")
	}
	return total, nil
}

func (r *gormRepository) NextCriteriaOrder(ctx context.Context, appliesTo, role string) (int, error) {
	var maxOrder *int
	err := r.db.WithContext(ctx).
		Model(&model.CriteriaModel{}).
		Where("criteria_applies_to = ? AND criteria_role = ?", appliesTo, role).
		Select("MAX(criteria_display_order)").
		Scan(&maxOrder).Error
	if err != nil {
		return 0, apperr.FromDB(err, "")
	}
	if maxOrder == nil {
		return 1, nil
	}
	return *maxOrder + 1, nil
}

func (r *gormRepository) CriteriaIDsInScope(ctx context.Context, appliesTo, role string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.CriteriaModel{}).
		Where("criteria_applies_to = ? AND criteria_role = ?", appliesTo, role).
		Pluck("criteria_id", &ids).Error
	return ids, apperr.FromDB(err, "")
}

func (r *gormRepository) CpmkExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Table("cpmk").Where("cpmk_id = ?", id).Count(&n).Error; err != nil {
		return false, apperr.FromDB(err, "")
	}
	return n > 0, nil
}

func (r *gormRepository) CreateCriteria(ctx context.Context, m *model.CriteriaModel) error {
	return apperr.FromDB(r.db.WithContext(ctx).Omit("Rubrics").Create(m).Error, "")
}

func (r *gormRepository) SaveCriteria(ctx context.Context, m *model.CriteriaModel) error {
	return apperr.FromDB(r.db.WithContext(ctx).Omit("Rubrics").Save(m).Error, "")
}

// DeleteCriteria menghapus rubrik lalu kriteria; FK juga ON DELETE CASCADE.
func (r *gormRepository) DeleteCriteria(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("rubric_criteria_id = ?", id).Delete(&model.RubricModel{}).Error; err != nil {
		return apperr.FromDB(err, "")
	}
	res := db.Where("criteria_id = ?", id).Delete(&model.CriteriaModel{})
	if res.Error != nil {
		return apperr.FromDB(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(criteriaNotFound)
	}
	return nil
}

func (r *gormRepository) SetCriteriaOrder(ctx context.Context, id uuid.UUID, order int) error {
	err := r.db.WithContext(ctx).
		Model(&model.CriteriaModel{}).
		Where("criteria_id = ?", id).
		Update("criteria_display_order", order).Error
	return apperr.FromDB(err, "")
}

func (r *gormRepository) CountScoresByCriteria(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ScoreModel{}).Where("score_criteria_id = ?", id).Count(&n).Error
	return n, apperr.FromDB(err, "")
}

/* ===============================
   Rubrics
=================================*/

func (r *gormRepository) ListRubrics(ctx context.Context, criteriaID uuid.UUID) ([]model.RubricModel, error) {
	var rows []model.RubricModel
	err := r.db.WithContext(ctx).
		Where("rubric_criteria_id = ?", criteriaID).
		Order("rubric_display_order ASC, rubric_min_score ASC").
		Find(&rows).Error
	return rows, apperr.FromDB(err, "")
}

func (r *gormRepository) FindRubric(ctx context.Context, id uuid.UUID) (*model.RubricModel, error) {
	var m model.RubricModel
	if err := r.db.WithContext(ctx).Where("rubric_id = ?", id).Take(&m).Error; err != nil {
		return nil, apperr.FromDB(err, rubricNotFound)
	}
	return &m, nil
}

func (r *gormRepository) NextRubricOrder(ctx context.Context, criteriaID uuid.UUID) (int, error) {
	var maxOrder *int
	err := r.db.WithContext(ctx).
		Model(&model.RubricModel{}).
		Where("rubric_criteria_id = ?", criteriaID).
		Select("MAX(rubric_display_order)").
		Scan(&maxOrder).Error
	if err != nil {
		return 0, apperr.FromDB(err, "")
	}
	if maxOrder == nil {
		return 1, nil
	}
	return *maxOrder + 1, nil
}

func (r *gormRepository) CreateRubric(ctx context.Context, m *model.RubricModel) error {
	return apperr.FromDB(r.db.WithContext(ctx).Create(m).Error, "")
}

func (r *gormRepository) SaveRubric(ctx context.Context, m *model.RubricModel) error {
	return apperr.FromDB(r.db.WithContext(ctx).Save(m).Error, "")
}

func (r *gormRepository) DeleteRubric(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("rubric_id = ?", id).Delete(&model.RubricModel{})
	if res.Error != nil {
		return apperr.FromDB(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(rubricNotFound)
	}
	return nil
}

func (r *gormRepository) SetRubricOrder(ctx context.Context, id uuid.UUID, order int) error {
	err := r.db.WithContext(ctx).
		Model(&model.RubricModel{}).
		Where("rubric_id = ?", id).
		Update("rubric_display_order", order).Error
	return apperr.FromDB(err, "")
}

func (r *gormRepository) CountScoresByRubric(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ScoreModel{}).Where("score_rubric_id = ?", id).Count(&n).Error
	return n, apperr.FromDB(err, "")
}

/* ===============================
   Scores
=================================*/

func (r *gormRepository) ThesisExists(ctx context.Context, thesisID uuid.UUID) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Table("theses").Where("thesis_id = ?", thesisID).Count(&n).Error; err != nil {
		return false, apperr.FromDB(err, "")
	}
	return n > 0, nil
}

func (r *gormRepository) IsSupervisor(ctx context.Context, thesisID, lecturerID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("thesis_supervisors").
		Where("supervisor_thesis_id = ? AND supervisor_lecturer_id = ?", thesisID, lecturerID).
		Count(&n).Error
	if err != nil {
		return false, apperr.FromDB(err, "")
	}
	return n > 0, nil
}

// UpsertScore: satu nilai per (skripsi, kriteria, penilai); kirim ulang = update.
func (r *gormRepository) UpsertScore(ctx context.Context, m *model.ScoreModel) error {
	err := r.db.WithContext(ctx).
		Omit("Criteria", "Rubric").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "score_thesis_id"},
				{Name: "score_criteria_id"},
				{Name: "score_assessor_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"score_rubric_id", "score_value", "score_note", "score_updated_at",
			}),
		}).
		Create(m).Error
	return apperr.FromDB(err, "")
}

func (r *gormRepository) ListScores(ctx context.Context, thesisID uuid.UUID, appliesTo string) ([]model.ScoreModel, error) {
	tx := r.db.WithContext(ctx).
		Joins("Criteria").
		Where("assessment_scores.score_thesis_id = ?", thesisID)
	if appliesTo != "" {
		tx = tx.Where("\"Criteria\".criteria_applies_to = ?", appliesTo)
	}
	var rows []model.ScoreModel
	err := tx.Order("\"Criteria\".criteria_display_order ASC").Find(&rows).Error
	return rows, apperr.FromDB(err, "")
}
