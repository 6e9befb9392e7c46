package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skripsiku_backend/internals/features/lecturers/availabilities/dto"
	"skripsiku_backend/internals/features/lecturers/availabilities/model"
	"skripsiku_backend/internals/helpers/apperr"
)

type memRepo struct {
	rows      map[uuid.UUID]*model.AvailabilityModel
	lecturers map[uuid.UUID]bool
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[uuid.UUID]*model.AvailabilityModel{}, lecturers: map[uuid.UUID]bool{}}
}

func (m *memRepo) ListByLecturer(_ context.Context, lecturerID uuid.UUID, q dto.ListAvailabilityQuery) ([]model.AvailabilityModel, error) {
	var out []model.AvailabilityModel
	for _, r := range m.rows {
		if r.AvailabilityLecturerID != lecturerID {
			continue
		}
		if q.Day > 0 && r.AvailabilityDayOfWeek != q.Day {
			continue
		}
		if q.Active != nil && r.AvailabilityIsActive != *q.Active {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (m *memRepo) FindByID(_ context.Context, id uuid.UUID) (*model.AvailabilityModel, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, apperr.NotFound("tidak ada")
	}
	cp := *r
	return &cp, nil
}

func (m *memRepo) ActiveOnDay(_ context.Context, lecturerID uuid.UUID, day int, exclude uuid.UUID) ([]model.AvailabilityModel, error) {
	var out []model.AvailabilityModel
	for id, r := range m.rows {
		if id != exclude && r.AvailabilityLecturerID == lecturerID && r.AvailabilityDayOfWeek == day && r.AvailabilityIsActive {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memRepo) LecturerExists(_ context.Context, id uuid.UUID, _ []string) (bool, error) {
	return m.lecturers[id], nil
}

func (m *memRepo) Create(_ context.Context, r *model.AvailabilityModel) error {
	r.AvailabilityID = uuid.New()
	cp := *r
	m.rows[r.AvailabilityID] = &cp
	return nil
}

func (m *memRepo) Save(_ context.Context, r *model.AvailabilityModel) error {
	cp := *r
	m.rows[r.AvailabilityID] = &cp
	return nil
}

func (m *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.rows, id)
	return nil
}

func slot(day int, start, end string) dto.CreateAvailabilityRequest {
	return dto.CreateAvailabilityRequest{DayOfWeek: day, StartTime: start, EndTime: end, Location: "Ruang Dosen 2"}
}

func TestClockMinutesNormalizes(t *testing.T) {
	s, n, err := ClockMinutes("8:05")
	require.NoError(t, err)
	assert.Equal(t, "08:05", s)
	assert.Equal(t, 485, n)

	_, _, err = ClockMinutes("25:00")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCreateRejectsOverlapOnSameDay(t *testing.T) {
	svc := NewAvailabilityService(newMemRepo())
	ctx := context.Background()
	lecturer := uuid.New()

	_, err := svc.Create(ctx, lecturer, slot(1, "08:00", "10:00"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, lecturer, slot(1, "09:30", "11:00"))
	assert.ErrorIs(t, err, apperr.ErrConflict)

	// bersebelahan tidak bentrok (half-open)
	_, err = svc.Create(ctx, lecturer, slot(1, "10:00", "11:00"))
	require.NoError(t, err)

	// hari lain / dosen lain bebas
	_, err = svc.Create(ctx, lecturer, slot(2, "08:00", "10:00"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, uuid.New(), slot(1, "08:00", "10:00"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, lecturer, slot(3, "10:00", "09:00"))
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCreateAllowsOverlapWhenValidityWindowsDisjoint(t *testing.T) {
	svc := NewAvailabilityService(newMemRepo())
	ctx := context.Background()
	lecturer := uuid.New()

	until := "2025-01-31"
	from := "2025-02-01"
	a := slot(4, "13:00", "15:00")
	a.ValidUntil = &until
	_, err := svc.Create(ctx, lecturer, a)
	require.NoError(t, err)

	b := slot(4, "14:00", "16:00")
	b.ValidFrom = &from
	_, err = svc.Create(ctx, lecturer, b)
	require.NoError(t, err)

	bad := slot(5, "08:00", "09:00")
	bad.ValidFrom, bad.ValidUntil = &from, &until
	_, err = svc.Create(ctx, lecturer, bad)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestOwnershipAndToggle(t *testing.T) {
	repo := newMemRepo()
	svc := NewAvailabilityService(repo)
	ctx := context.Background()
	owner, other := uuid.New(), uuid.New()

	a, err := svc.Create(ctx, owner, slot(1, "08:00", "10:00"))
	require.NoError(t, err)

	loc := "Lab"
	_, err = svc.Update(ctx, other, a.AvailabilityID, dto.UpdateAvailabilityRequest{Location: &loc})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, other, a.AvailabilityID), apperr.ErrForbidden)

	off, err := svc.Toggle(ctx, owner, a.AvailabilityID)
	require.NoError(t, err)
	assert.False(t, off.AvailabilityIsActive)

	_, err = svc.Create(ctx, owner, slot(1, "09:00", "11:00"))
	require.NoError(t, err)

	_, err = svc.Toggle(ctx, owner, a.AvailabilityID)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	require.NoError(t, svc.Delete(ctx, owner, a.AvailabilityID))
}

func TestListPublicOnlyActiveSlots(t *testing.T) {
	repo := newMemRepo()
	svc := NewAvailabilityService(repo)
	ctx := context.Background()
	lecturer := uuid.New()
	repo.lecturers[lecturer] = true

	_, err := svc.Create(ctx, lecturer, slot(1, "08:00", "09:00"))
	require.NoError(t, err)
	inactive := slot(2, "08:00", "09:00")
	no := false
	inactive.IsActive = &no
	_, err = svc.Create(ctx, lecturer, inactive)
	require.NoError(t, err)

	rows, err := svc.ListPublic(ctx, lecturer, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = svc.ListPublic(ctx, uuid.New(), 0)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
