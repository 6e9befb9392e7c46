package seeds

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skripsiku_backend/internals/constants"
	thesisModel "skripsiku_backend/internals/features/theses/theses/model"
	userModel "skripsiku_backend/internals/features/users/user/model"
	requirementModel "skripsiku_backend/internals/features/yudisium/requirements/model"
)

//go:embed seeds.yaml
var rawSeeds []byte

type StatusSeed struct {
	Name     string `yaml:"name"`
	Order    int    `yaml:"order"`
	Terminal bool   `yaml:"terminal"`
}

type RequirementSeed struct {
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	DocumentTypes []string `yaml:"document_types"`
}

type AdminSeed struct {
	Name     string `yaml:"name"`
	UserName string `yaml:"user_name"`
}

type Data struct {
	ThesisStatuses       []StatusSeed      `yaml:"thesis_statuses"`
	YudisiumRequirements []RequirementSeed `yaml:"yudisium_requirements"`
	Admin                AdminSeed         `yaml:"admin"`
}

func Load() (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(rawSeeds, &d); err != nil {
		return nil, fmt.Errorf("decode seeds.yaml: %w", err)
	}
	return &d, nil
}

// RunAllSeeds idempotent: baris yang sudah ada dilewati.
func RunAllSeeds(db *gorm.DB) error {
	data, err := Load()
	if err != nil {
		return err
	}
	if err := seedThesisStatuses(db, data.ThesisStatuses); err != nil {
		return err
	}
	if err := seedRequirements(db, data.YudisiumRequirements); err != nil {
		return err
	}
	return seedAdmin(db, data.Admin)
}

func seedThesisStatuses(db *gorm.DB, in []StatusSeed) error {
	rows := make([]thesisModel.ThesisStatusModel, 0, len(in))
	for _, s := range in {
		rows = append(rows, thesisModel.ThesisStatusModel{
			ThesisStatusName:       s.Name,
			ThesisStatusOrder:      s.Order,
			ThesisStatusIsTerminal: s.Terminal,
		})
	}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	if res.Error != nil {
		return fmt.Errorf("seed thesis_statuses: %w", res.Error)
	}
	log.Printf("✅ thesis_statuses: %d baru dari %d", res.RowsAffected, len(rows))
	return nil
}

func seedRequirements(db *gorm.DB, in []RequirementSeed) error {
	rows := make([]requirementModel.RequirementModel, 0, len(in))
	for i, r := range in {
		rows = append(rows, requirementModel.RequirementModel{
			RequirementName:          r.Name,
			RequirementDescription:   r.Description,
			RequirementDocumentTypes: r.DocumentTypes,
			RequirementDisplayOrder:  i + 1,
			RequirementIsActive:      true,
		})
	}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	if res.Error != nil {
		return fmt.Errorf("seed yudisium_requirements: %w", res.Error)
	}
	log.Printf("✅ yudisium_requirements: %d baru dari %d", res.RowsAffected, len(rows))
	return nil
}

// Admin awal dari ADMIN_EMAIL / ADMIN_PASSWORD; dilewati bila ENV kosong.
func seedAdmin(db *gorm.DB, a AdminSeed) error {
	email := strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))
	pass := os.Getenv("ADMIN_PASSWORD")
	if email == "" || pass == "" {
		log.Println("ℹ️ ADMIN_EMAIL/ADMIN_PASSWORD kosong, seed admin dilewati")
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password admin: %w", err)
	}
	u := userModel.UserModel{
		Name:     a.Name,
		UserName: a.UserName,
		Email:    email,
		Password: string(hash),
		Role:     constants.RoleAdmin,
		IsActive: true,
	}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&u)
	if res.Error != nil {
		return fmt.Errorf("seed admin: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		log.Printf("ℹ️ Admin '%s' sudah ada, dilewati.", email)
	} else {
		log.Printf("✅ Admin '%s' dibuat", email)
	}
	return nil
}
