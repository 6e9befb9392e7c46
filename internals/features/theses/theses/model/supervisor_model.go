package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	SupervisorRoleFirst  = "pembimbing_1"
	SupervisorRoleSecond = "pembimbing_2"
)

type SupervisorModel struct {
	SupervisorID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:supervisor_id" json:"supervisor_id"`
	SupervisorThesisID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_supervisor_role,priority:1;uniqueIndex:uq_supervisor_lecturer,priority:1;column:supervisor_thesis_id" json:"supervisor_thesis_id"`
	SupervisorLecturerID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_supervisor_lecturer,priority:2;column:supervisor_lecturer_id" json:"supervisor_lecturer_id"`
	SupervisorRole       string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_supervisor_role,priority:2;column:supervisor_role;check:chk_supervisor_role,supervisor_role IN ('pembimbing_1','pembimbing_2')" json:"supervisor_role"`
	SupervisorCreatedAt  time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:supervisor_created_at" json:"supervisor_created_at"`
}

func (SupervisorModel) TableName() string { return "thesis_supervisors" }
