package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	academicYearModel "skripsiku_backend/internals/features/academics/academic_years/model"
	cplModel "skripsiku_backend/internals/features/academics/cpl/model"
	cpmkModel "skripsiku_backend/internals/features/academics/cpmk/model"
	assessmentModel "skripsiku_backend/internals/features/assessments/model"
	templateModel "skripsiku_backend/internals/features/documents/templates/model"
	notifModel "skripsiku_backend/internals/features/home/notifications/model"
	availabilityModel "skripsiku_backend/internals/features/lecturers/availabilities/model"
	thesisModel "skripsiku_backend/internals/features/theses/theses/model"
	topicModel "skripsiku_backend/internals/features/theses/topics/model"
	authModel "skripsiku_backend/internals/features/users/auth/model"
	userModel "skripsiku_backend/internals/features/users/user/model"
	requirementModel "skripsiku_backend/internals/features/yudisium/requirements/model"
)

// Urutan = urutan dependensi FK.
func models() []any {
	return []any{
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&notifModel.NotificationModel{},

		&academicYearModel.AcademicYearModel{},
		&cplModel.CplModel{},
		&cpmkModel.CpmkModel{},

		&assessmentModel.CriteriaModel{},
		&assessmentModel.RubricModel{},
		&assessmentModel.ScoreModel{},

		&availabilityModel.AvailabilityModel{},
		&topicModel.TopicModel{},

		&thesisModel.ThesisStatusModel{},
		&thesisModel.ThesisModel{},
		&thesisModel.SupervisorModel{},
		&thesisModel.MilestoneModel{},
		&thesisModel.GuidanceModel{},

		&requirementModel.RequirementModel{},
		&templateModel.TemplateModel{},
		&templateModel.GenerationModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	log.Println("🛠  Menjalankan AutoMigrate...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("extension pgcrypto: %w", err)
	}
	if err := db.AutoMigrate(models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	log.Println("✅ AutoMigrate selesai.")
	return nil
}
