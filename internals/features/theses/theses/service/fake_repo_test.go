package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	notifService "skripsiku_backend/internals/features/home/notifications/service"
	"skripsiku_backend/internals/features/theses/theses/dto"
	"skripsiku_backend/internals/features/theses/theses/model"
	"skripsiku_backend/internals/helpers/apperr"
)

type memRepo struct {
	mu         sync.Mutex
	theses     map[uuid.UUID]*model.ThesisModel
	statuses   map[uuid.UUID]*model.ThesisStatusModel
	milestones map[uuid.UUID]*model.MilestoneModel
	guidances  map[uuid.UUID]*model.GuidanceModel
	users      map[uuid.UUID]string // id → role
	topics     map[uuid.UUID]bool
	activeYear *uuid.UUID
	years      map[uuid.UUID]bool

	failScanAfter int // >0: ScanPage gagal pada panggilan ke-n
	scanCalls     int
	failRatingFor map[uuid.UUID]bool
}

func newMemRepo() *memRepo {
	m := &memRepo{
		theses:        map[uuid.UUID]*model.ThesisModel{},
		statuses:      map[uuid.UUID]*model.ThesisStatusModel{},
		milestones:    map[uuid.UUID]*model.MilestoneModel{},
		guidances:     map[uuid.UUID]*model.GuidanceModel{},
		users:         map[uuid.UUID]string{},
		topics:        map[uuid.UUID]bool{},
		years:         map[uuid.UUID]bool{},
		failRatingFor: map[uuid.UUID]bool{},
	}
	for i, name := range []string{model.StatusBimbingan, model.StatusSeminar, model.StatusLulus, model.StatusGagal, model.StatusDibatalkan} {
		id := uuid.New()
		m.statuses[id] = &model.ThesisStatusModel{
			ThesisStatusID:         id,
			ThesisStatusName:       name,
			ThesisStatusIsTerminal: model.IsTerminalStatus(name),
			ThesisStatusOrder:      i,
		}
	}
	return m
}

func (m *memRepo) statusID(name string) uuid.UUID {
	for id, s := range m.statuses {
		if s.ThesisStatusName == name {
			return id
		}
	}
	return uuid.Nil
}

func (m *memRepo) addUser(role string) uuid.UUID {
	id := uuid.New()
	m.users[id] = role
	return id
}

// addThesis menaruh skripsi langsung dengan status & createdAt tertentu.
func (m *memRepo) addThesis(student uuid.UUID, status string, createdAt time.Time, supervisors ...uuid.UUID) *model.ThesisModel {
	sid := m.statusID(status)
	t := &model.ThesisModel{
		ThesisID:        uuid.New(),
		ThesisTitle:     "Skripsi " + status,
		ThesisStudentID: student,
		ThesisStatusID:  &sid,
		ThesisRating:    model.RatingOngoing,
		ThesisCreatedAt: createdAt,
	}
	for i, l := range supervisors {
		role := model.SupervisorRoleFirst
		if i == 1 {
			role = model.SupervisorRoleSecond
		}
		t.Supervisors = append(t.Supervisors, model.SupervisorModel{
			SupervisorID: uuid.New(), SupervisorThesisID: t.ThesisID, SupervisorLecturerID: l, SupervisorRole: role,
		})
	}
	m.theses[t.ThesisID] = t
	return t
}

func (m *memRepo) withStatus(t model.ThesisModel) *model.ThesisModel {
	if t.ThesisStatusID != nil {
		if s, ok := m.statuses[*t.ThesisStatusID]; ok {
			cp := *s
			t.Status = &cp
		}
	}
	t.Supervisors = append([]model.SupervisorModel(nil), t.Supervisors...)
	return &t
}

func (m *memRepo) List(_ context.Context, q dto.ListThesisQuery, limit, offset int) ([]model.ThesisModel, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.ThesisModel
	for _, t := range m.theses {
		if q.Rating != "" && t.ThesisRating != q.Rating {
			continue
		}
		if q.StudentID != nil && t.ThesisStudentID != *q.StudentID {
			continue
		}
		if q.SupervisorID != nil && !t.HasSupervisor(*q.SupervisorID) {
			continue
		}
		out = append(out, *m.withStatus(*t))
	}
	total := int64(len(out))
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (m *memRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ThesisModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.theses[id]
	if !ok {
		return nil, apperr.NotFound("Skripsi tidak ditemukan")
	}
	return m.withStatus(*t), nil
}

func (m *memRepo) Create(_ context.Context, t *model.ThesisModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ThesisID = uuid.New()
	t.ThesisCreatedAt = time.Now()
	for i := range t.Supervisors {
		t.Supervisors[i].SupervisorID = uuid.New()
		t.Supervisors[i].SupervisorThesisID = t.ThesisID
	}
	cp := *t
	m.theses[t.ThesisID] = &cp
	return nil
}

func (m *memRepo) UpdateStatus(_ context.Context, thesisID, statusID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.theses[thesisID]
	if !ok {
		return apperr.NotFound("Skripsi tidak ditemukan")
	}
	t.ThesisStatusID = &statusID
	return nil
}

func (m *memRepo) UpdateDocument(_ context.Context, thesisID uuid.UUID, url, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.theses[thesisID]
	if !ok {
		return apperr.NotFound("Skripsi tidak ditemukan")
	}
	t.ThesisDocumentURL, t.ThesisDocumentKey = &url, &key
	return nil
}

func (m *memRepo) StudentHasOpenThesis(_ context.Context, studentID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.theses {
		if t.ThesisStudentID != studentID {
			continue
		}
		if t.ThesisStatusID == nil || !m.statuses[*t.ThesisStatusID].ThesisStatusIsTerminal {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) UserHasRole(_ context.Context, userID uuid.UUID, roles []string) (bool, error) {
	r, ok := m.users[userID]
	if !ok {
		return false, nil
	}
	for _, x := range roles {
		if x == r {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) TopicExists(_ context.Context, id uuid.UUID) (bool, error) { return m.topics[id], nil }
func (m *memRepo) AcademicYearExists(_ context.Context, id uuid.UUID) (bool, error) {
	return m.years[id], nil
}
func (m *memRepo) ActiveAcademicYearID(context.Context) (*uuid.UUID, error) { return m.activeYear, nil }

func (m *memRepo) ListStatuses(context.Context) ([]model.ThesisStatusModel, error) {
	var out []model.ThesisStatusModel
	for _, s := range m.statuses {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ThesisStatusOrder < out[j].ThesisStatusOrder })
	return out, nil
}

func (m *memRepo) FindStatus(_ context.Context, id uuid.UUID) (*model.ThesisStatusModel, error) {
	s, ok := m.statuses[id]
	if !ok {
		return nil, apperr.NotFound("Status skripsi tidak ditemukan")
	}
	return s, nil
}

func (m *memRepo) StatusIDByName(_ context.Context, name string) (uuid.UUID, error) {
	if id := m.statusID(name); id != uuid.Nil {
		return id, nil
	}
	return uuid.Nil, apperr.NotFound("Status skripsi '" + name + "' belum di-seed")
}

func (m *memRepo) ListMilestones(_ context.Context, thesisID uuid.UUID) ([]model.MilestoneModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.MilestoneModel
	for _, ms := range m.milestones {
		if ms.MilestoneThesisID == thesisID {
			out = append(out, *ms)
		}
	}
	return out, nil
}

func (m *memRepo) FindMilestone(_ context.Context, id uuid.UUID) (*model.MilestoneModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ms, ok := m.milestones[id]
	if !ok {
		return nil, apperr.NotFound("Milestone tidak ditemukan")
	}
	cp := *ms
	return &cp, nil
}

func (m *memRepo) CreateMilestone(_ context.Context, ms *model.MilestoneModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ms.MilestoneID = uuid.New()
	ms.MilestoneStatus = model.StatusForProgress(ms.MilestoneProgress)
	ms.MilestoneUpdatedAt = time.Now()
	cp := *ms
	m.milestones[ms.MilestoneID] = &cp
	return nil
}

func (m *memRepo) SaveMilestone(_ context.Context, ms *model.MilestoneModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ms.MilestoneUpdatedAt = time.Now()
	cp := *ms
	m.milestones[ms.MilestoneID] = &cp
	return nil
}

func (m *memRepo) ListGuidances(_ context.Context, thesisID uuid.UUID, status string) ([]model.GuidanceModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.GuidanceModel
	for _, g := range m.guidances {
		if g.GuidanceThesisID == thesisID && (status == "" || g.GuidanceStatus == status) {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (m *memRepo) FindGuidance(_ context.Context, id uuid.UUID) (*model.GuidanceModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.guidances[id]
	if !ok {
		return nil, apperr.NotFound("Bimbingan tidak ditemukan")
	}
	cp := *g
	return &cp, nil
}

func (m *memRepo) CreateGuidance(_ context.Context, g *model.GuidanceModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g.GuidanceID = uuid.New()
	cp := *g
	m.guidances[g.GuidanceID] = &cp
	return nil
}

func (m *memRepo) TransitionGuidance(_ context.Context, g *model.GuidanceModel, from string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.guidances[g.GuidanceID]
	if !ok || cur.GuidanceStatus != from {
		return apperr.Conflict("Status bimbingan sudah berubah, muat ulang data")
	}
	cp := *g
	m.guidances[g.GuidanceID] = &cp
	return nil
}

func (m *memRepo) ScanPage(_ context.Context, afterID uuid.UUID, limit int) ([]model.ThesisActivity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scanCalls++
	if m.failScanAfter > 0 && m.scanCalls >= m.failScanAfter {
		return nil, apperr.Internal("scan gagal", nil)
	}
	var ids []uuid.UUID
	for id, t := range m.theses {
		if t.ThesisRating == model.RatingCancelled {
			continue
		}
		if t.ThesisStatusID != nil && m.statuses[*t.ThesisStatusID].ThesisStatusIsTerminal {
			continue
		}
		if uuidLess(afterID, id) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return uuidLess(ids[i], ids[j]) })
	if len(ids) > limit {
		ids = ids[:limit]
	}
	out := make([]model.ThesisActivity, 0, len(ids))
	for _, id := range ids {
		t := m.theses[id]
		row := model.ThesisActivity{
			ThesisID: id, StudentID: t.ThesisStudentID, Title: t.ThesisTitle,
			Rating: t.ThesisRating, CreatedAt: t.ThesisCreatedAt,
		}
		for _, ms := range m.milestones {
			if ms.MilestoneThesisID == id && (row.LastMilestoneAt == nil || ms.MilestoneUpdatedAt.After(*row.LastMilestoneAt)) {
				at := ms.MilestoneUpdatedAt
				row.LastMilestoneAt = &at
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func uuidLess(a, b uuid.UUID) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func (m *memRepo) UpdateRating(_ context.Context, thesisID uuid.UUID, rating string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failRatingFor[thesisID] {
		return apperr.Internal("update gagal", nil)
	}
	m.theses[thesisID].ThesisRating = rating
	return nil
}

func (m *memRepo) ApplyFailed(_ context.Context, thesisID, statusID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.theses[thesisID]
	t.ThesisRating = model.RatingFailed
	t.ThesisStatusID = &statusID
	return nil
}

func (m *memRepo) CancelOpenGuidances(_ context.Context, thesisID uuid.UUID, note string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, g := range m.guidances {
		if g.GuidanceThesisID == thesisID && (g.GuidanceStatus == model.GuidanceRequested || g.GuidanceStatus == model.GuidanceAccepted) {
			g.GuidanceStatus = model.GuidanceCancelled
			g.GuidanceLecturerNote = note
			n++
		}
	}
	return n, nil
}

/* ==========================
   notifier & users
========================== */

type captureNotifier struct {
	mu   sync.Mutex
	msgs []notifService.Message
	fail bool
}

func (c *captureNotifier) Notify(_ context.Context, msg notifService.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
	if c.fail {
		return apperr.Upstream("push gagal", nil)
	}
	return nil
}

func (c *captureNotifier) to(id uuid.UUID) []notifService.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []notifService.Message
	for _, m := range c.msgs {
		if m.UserID == id {
			out = append(out, m)
		}
	}
	return out
}

type usersByRole map[string][]uuid.UUID

func (u usersByRole) ListIDsByRole(_ context.Context, role string) ([]uuid.UUID, error) {
	return u[role], nil
}

type memStorage struct {
	objects map[string][]byte
}

func newMemStorage() *memStorage { return &memStorage{objects: map[string][]byte{}} }

func (s *memStorage) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	s.objects[key] = data
	return "https://files.test/" + key, nil
}
func (s *memStorage) Get(_ context.Context, key string) ([]byte, error) { return s.objects[key], nil }
func (s *memStorage) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}
func (s *memStorage) PublicURL(key string) string { return "https://files.test/" + key }
