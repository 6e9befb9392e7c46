package model

import (
	"time"

	"github.com/google/uuid"
)

// ThesisActivity adalah satu baris hasil scan job rating.
type ThesisActivity struct {
	ThesisID        uuid.UUID  `gorm:"column:thesis_id"`
	StudentID       uuid.UUID  `gorm:"column:thesis_student_id"`
	Title           string     `gorm:"column:thesis_title"`
	Rating          string     `gorm:"column:thesis_rating"`
	CreatedAt       time.Time  `gorm:"column:thesis_created_at"`
	LastMilestoneAt *time.Time `gorm:"column:last_milestone_at"`
}
