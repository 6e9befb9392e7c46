package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Nama status alur kerja skripsi (tabel thesis_statuses, diisi seed).
const (
	StatusDiajukan   = "Diajukan"
	StatusBimbingan  = "Bimbingan"
	StatusSeminar    = "Seminar"
	StatusSidang     = "Sidang"
	StatusLulus      = "Lulus"
	StatusSelesai    = "Selesai"
	StatusDropOut    = "Drop Out"
	StatusDibatalkan = "Dibatalkan"
	StatusGagal      = "Gagal"
)

// TerminalStatuses tidak lagi diproses job rating.
var TerminalStatuses = []string{StatusLulus, StatusSelesai, StatusDropOut, StatusDibatalkan, StatusGagal}

func IsTerminalStatus(name string) bool {
	for _, s := range TerminalStatuses {
		if strings.EqualFold(s, strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

type ThesisStatusModel struct {
	ThesisStatusID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:thesis_status_id" json:"thesis_status_id"`
	ThesisStatusName       string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_thesis_status_name;column:thesis_status_name" json:"thesis_status_name"`
	ThesisStatusIsTerminal bool      `gorm:"not null;default:false;column:thesis_status_is_terminal" json:"thesis_status_is_terminal"`
	ThesisStatusOrder      int       `gorm:"not null;default:0;column:thesis_status_order" json:"thesis_status_order"`
	ThesisStatusCreatedAt  time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:thesis_status_created_at" json:"thesis_status_created_at"`
}

func (ThesisStatusModel) TableName() string { return "thesis_statuses" }
