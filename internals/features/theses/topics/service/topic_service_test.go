package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skripsiku_backend/internals/features/theses/topics/dto"
	"skripsiku_backend/internals/features/theses/topics/model"
	"skripsiku_backend/internals/helpers/apperr"
)

type memRepo struct {
	rows map[uuid.UUID]*model.TopicModel
	refs map[uuid.UUID]int64
}

func (m *memRepo) List(_ context.Context, _ dto.ListTopicQuery, _, _ int) ([]model.TopicModel, int64, error) {
	var out []model.TopicModel
	for _, r := range m.rows {
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

func (m *memRepo) FindByID(_ context.Context, id uuid.UUID) (*model.TopicModel, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, apperr.NotFound("Topik tidak ditemukan")
	}
	cp := *r
	return &cp, nil
}

func (m *memRepo) NameExists(_ context.Context, name string, exclude uuid.UUID) (bool, error) {
	for id, r := range m.rows {
		if id != exclude && strings.EqualFold(r.TopicName, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) Create(_ context.Context, r *model.TopicModel) error {
	r.TopicID = uuid.New()
	cp := *r
	m.rows[r.TopicID] = &cp
	return nil
}

func (m *memRepo) Save(_ context.Context, r *model.TopicModel) error {
	cp := *r
	m.rows[r.TopicID] = &cp
	return nil
}

func (m *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.rows, id)
	return nil
}

func (m *memRepo) CountThesisRefs(_ context.Context, id uuid.UUID) (int64, error) { return m.refs[id], nil }

func TestTopicNameUniqueCaseInsensitive(t *testing.T) {
	repo := &memRepo{rows: map[uuid.UUID]*model.TopicModel{}, refs: map[uuid.UUID]int64{}}
	svc := NewTopicService(repo)
	ctx := context.Background()

	a, err := svc.Create(ctx, dto.CreateTopicRequest{TopicName: "  Sistem   Informasi "})
	require.NoError(t, err)
	assert.Equal(t, "Sistem Informasi", a.TopicName)
	assert.True(t, a.TopicIsActive)

	_, err = svc.Create(ctx, dto.CreateTopicRequest{TopicName: "sistem informasi"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	b, err := svc.Create(ctx, dto.CreateTopicRequest{TopicName: "Jaringan Komputer"})
	require.NoError(t, err)
	name := "SISTEM INFORMASI"
	_, err = svc.Update(ctx, b.TopicID, dto.UpdateTopicRequest{TopicName: &name})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	// rename ke nama sendiri tetap boleh
	name = "jaringan komputer"
	_, err = svc.Update(ctx, b.TopicID, dto.UpdateTopicRequest{TopicName: &name})
	require.NoError(t, err)
}

func TestTopicDeleteBlockedByTheses(t *testing.T) {
	repo := &memRepo{rows: map[uuid.UUID]*model.TopicModel{}, refs: map[uuid.UUID]int64{}}
	svc := NewTopicService(repo)
	ctx := context.Background()

	a, err := svc.Create(ctx, dto.CreateTopicRequest{TopicName: "Kecerdasan Buatan"})
	require.NoError(t, err)
	repo.refs[a.TopicID] = 2
	assert.ErrorIs(t, svc.Delete(ctx, a.TopicID), apperr.ErrConflict)

	off, err := svc.Toggle(ctx, a.TopicID)
	require.NoError(t, err)
	assert.False(t, off.TopicIsActive)

	repo.refs[a.TopicID] = 0
	require.NoError(t, svc.Delete(ctx, a.TopicID))
	assert.ErrorIs(t, svc.Delete(ctx, a.TopicID), apperr.ErrNotFound)
}
