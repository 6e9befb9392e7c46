package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"skripsiku_backend/internals/features/home/notifications/dto"
	"skripsiku_backend/internals/features/home/notifications/model"
	"skripsiku_backend/internals/features/home/notifications/repository"
	helper "skripsiku_backend/internals/helpers"
)

type NotificationService struct {
	Repo repository.Repository
	Now  func() time.Time
}

func NewNotificationService(repo repository.Repository) *NotificationService {
	return &NotificationService{Repo: repo, Now: time.Now}
}

func (s *NotificationService) ListMine(ctx context.Context, userID uuid.UUID, q dto.ListNotificationQuery) ([]model.NotificationModel, helper.Pagination, error) {
	p := helper.NormalizePaging(q.Page, q.PerPage, 20, 100)
	rows, total, err := s.Repo.ListByUser(ctx, userID, q.Unread, p.Limit, p.Offset)
	if err != nil {
		return nil, helper.Pagination{}, err
	}
	return rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage), nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	return s.Repo.MarkRead(ctx, userID, id, s.Now().UTC())
}

// NewDefaultNotifier: simpan ke DB lalu push ke websocket.
func NewDefaultNotifier(repo repository.Repository, hub *Hub) Notifier {
	return MultiNotifier{&RecordNotifier{Repo: repo}, &PushNotifier{Hub: hub}}
}
