package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MilestonePending    = "pending"
	MilestoneInProgress = "in_progress"
	MilestoneDone       = "done"
)

// Milestone; updated_at terbaru dipakai sebagai "aktivitas terakhir" skripsi.
type MilestoneModel struct {
	MilestoneID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:milestone_id" json:"milestone_id"`
	MilestoneThesisID uuid.UUID `gorm:"type:uuid;not null;index:idx_milestone_thesis_updated,priority:1;column:milestone_thesis_id" json:"milestone_thesis_id"`
	MilestoneTitle    string    `gorm:"type:varchar(200);not null;column:milestone_title" json:"milestone_title"`
	MilestoneNote     string    `gorm:"type:text;column:milestone_note" json:"milestone_note,omitempty"`
	MilestoneProgress int       `gorm:"not null;default:0;column:milestone_progress;check:chk_milestone_progress,milestone_progress BETWEEN 0 AND 100" json:"milestone_progress"`
	MilestoneStatus   string    `gorm:"type:varchar(12);not null;default:'pending';column:milestone_status" json:"milestone_status"`

	MilestoneCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:milestone_created_at" json:"milestone_created_at"`
	MilestoneUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;index:idx_milestone_thesis_updated,priority:2;column:milestone_updated_at" json:"milestone_updated_at"`
}

func (MilestoneModel) TableName() string { return "thesis_milestones" }

func (m *MilestoneModel) BeforeSave(tx *gorm.DB) error {
	m.MilestoneTitle = strings.TrimSpace(m.MilestoneTitle)
	m.MilestoneStatus = StatusForProgress(m.MilestoneProgress)
	return nil
}

// StatusForProgress: 0 → pending, 100 → done, sisanya in_progress.
func StatusForProgress(p int) string {
	switch {
	case p <= 0:
		return MilestonePending
	case p >= 100:
		return MilestoneDone
	default:
		return MilestoneInProgress
	}
}
