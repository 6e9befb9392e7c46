package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel merepresentasikan tabel users di database
type UserModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	Name     string `gorm:"size:120;not null" json:"name"`
	UserName string `gorm:"size:50;not null;uniqueIndex:uq_users_user_name" json:"user_name"` // NIM / NIP / username admin
	Email    string `gorm:"size:255;not null;uniqueIndex:uq_users_email" json:"email"`
	Password string `gorm:"not null" json:"-"`
	GoogleID *string `gorm:"size:255;uniqueIndex:uq_users_google_id" json:"google_id,omitempty"`
	Role     string `gorm:"type:varchar(20);not null;default:'mahasiswa';index" json:"role"`

	AvatarURL *string `gorm:"type:text" json:"avatar_url,omitempty"`
	AvatarKey *string `gorm:"type:text" json:"-"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeSave(tx *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.UserName = strings.TrimSpace(u.UserName)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Role = strings.ToLower(strings.TrimSpace(u.Role))
	return nil
}
