package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"skripsiku_backend/internals/constants"
	"skripsiku_backend/internals/features/lecturers/availabilities/dto"
	"skripsiku_backend/internals/features/lecturers/availabilities/model"
	"skripsiku_backend/internals/features/lecturers/availabilities/repository"
	"skripsiku_backend/internals/helpers/apperr"
)

type AvailabilityService struct {
	Repo repository.Repository
}

func NewAvailabilityService(repo repository.Repository) *AvailabilityService {
	return &AvailabilityService{Repo: repo}
}

// ClockMinutes: "08:30" → 510. Output juga dinormalisasi ke "HH:MM".
func ClockMinutes(s string) (string, int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return "", 0, apperr.Validationf("Jam %q harus berformat HH:MM", s)
	}
	return t.Format("15:04"), t.Hour()*60 + t.Minute(), nil
}

// slotsOverlap: rentang setengah terbuka [aStart,aEnd) dan [bStart,bEnd).
func slotsOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// datesOverlap: nil = tanpa batas.
func datesOverlap(aFrom, aUntil, bFrom, bUntil *time.Time) bool {
	if aUntil != nil && bFrom != nil && aUntil.Before(*bFrom) {
		return false
	}
	if bUntil != nil && aFrom != nil && bUntil.Before(*aFrom) {
		return false
	}
	return true
}

// validate menormalkan jam lalu cek rentang & bentrok dengan slot aktif lain di hari yang sama.
func (s *AvailabilityService) validate(ctx context.Context, m *model.AvailabilityModel) error {
	start, startMin, err := ClockMinutes(m.AvailabilityStartTime)
	if err != nil {
		return err
	}
	end, endMin, err := ClockMinutes(m.AvailabilityEndTime)
	if err != nil {
		return err
	}
	if startMin >= endMin {
		return apperr.Validation("Jam mulai harus sebelum jam selesai")
	}
	m.AvailabilityStartTime, m.AvailabilityEndTime = start, end

	if m.AvailabilityValidFrom != nil && m.AvailabilityValidUntil != nil &&
		m.AvailabilityValidUntil.Before(*m.AvailabilityValidFrom) {
		return apperr.Validation("Tanggal berakhir tidak boleh sebelum tanggal mulai berlaku")
	}

	if !m.AvailabilityIsActive {
		return nil
	}
	others, err := s.Repo.ActiveOnDay(ctx, m.AvailabilityLecturerID, m.AvailabilityDayOfWeek, m.AvailabilityID)
	if err != nil {
		return err
	}
	for _, o := range others {
		_, oStart, err := ClockMinutes(o.AvailabilityStartTime)
		if err != nil {
			continue
		}
		_, oEnd, err := ClockMinutes(o.AvailabilityEndTime)
		if err != nil {
			continue
		}
		if slotsOverlap(startMin, endMin, oStart, oEnd) &&
			datesOverlap(m.AvailabilityValidFrom, m.AvailabilityValidUntil, o.AvailabilityValidFrom, o.AvailabilityValidUntil) {
			return apperr.Conflict(fmt.Sprintf("Jadwal bentrok dengan slot %s %s-%s",
				model.DayName(o.AvailabilityDayOfWeek), o.AvailabilityStartTime, o.AvailabilityEndTime))
		}
	}
	return nil
}

func (s *AvailabilityService) owned(ctx context.Context, lecturerID, id uuid.UUID) (*model.AvailabilityModel, error) {
	m, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.AvailabilityLecturerID != lecturerID {
		return nil, apperr.Forbidden("Jadwal ini milik dosen lain")
	}
	return m, nil
}

func (s *AvailabilityService) ListMine(ctx context.Context, lecturerID uuid.UUID, q dto.ListAvailabilityQuery) ([]model.AvailabilityModel, error) {
	return s.Repo.ListByLecturer(ctx, lecturerID, q)
}

// ListPublic: slot aktif seorang dosen, untuk mahasiswa.
func (s *AvailabilityService) ListPublic(ctx context.Context, lecturerID uuid.UUID, day int) ([]model.AvailabilityModel, error) {
	ok, err := s.Repo.LecturerExists(ctx, lecturerID, constants.LecturerRoles)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("Dosen tidak ditemukan")
	}
	active := true
	return s.Repo.ListByLecturer(ctx, lecturerID, dto.ListAvailabilityQuery{Day: day, Active: &active})
}

func (s *AvailabilityService) Create(ctx context.Context, lecturerID uuid.UUID, req dto.CreateAvailabilityRequest) (*model.AvailabilityModel, error) {
	m, err := req.ToModel()
	if err != nil {
		return nil, err
	}
	m.AvailabilityLecturerID = lecturerID
	if err := s.validate(ctx, m); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *AvailabilityService) Update(ctx context.Context, lecturerID, id uuid.UUID, req dto.UpdateAvailabilityRequest) (*model.AvailabilityModel, error) {
	m, err := s.owned(ctx, lecturerID, id)
	if err != nil {
		return nil, err
	}
	if err := req.Apply(m); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, m); err != nil {
		return nil, err
	}
	if err := s.Repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Toggle: mengaktifkan kembali ikut dicek bentrok.
func (s *AvailabilityService) Toggle(ctx context.Context, lecturerID, id uuid.UUID) (*model.AvailabilityModel, error) {
	m, err := s.owned(ctx, lecturerID, id)
	if err != nil {
		return nil, err
	}
	m.AvailabilityIsActive = !m.AvailabilityIsActive
	if err := s.validate(ctx, m); err != nil {
		return nil, err
	}
	if err := s.Repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *AvailabilityService) Delete(ctx context.Context, lecturerID, id uuid.UUID) error {
	if _, err := s.owned(ctx, lecturerID, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}
