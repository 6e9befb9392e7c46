package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"skripsiku_backend/internals/features/home/notifications/model"
	"skripsiku_backend/internals/features/home/notifications/repository"
)

// Message adalah satu notifikasi untuk satu user.
type Message struct {
	UserID uuid.UUID      `json:"user_id"`
	Title  string         `json:"title"`
	Body   string         `json:"body"`
	Type   string         `json:"type"`
	Data   map[string]any `json:"data,omitempty"`
	Tags   []string       `json:"tags,omitempty"`
}

type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

/* ==========================
   RecordNotifier: simpan ke tabel notifications
========================== */

type RecordNotifier struct {
	Repo repository.Repository
}

func (n *RecordNotifier) Notify(ctx context.Context, msg Message) error {
	var data datatypes.JSON
	if len(msg.Data) > 0 {
		b, err := json.Marshal(msg.Data)
		if err != nil {
			return err
		}
		data = datatypes.JSON(b)
	}
	return n.Repo.Create(ctx, &model.NotificationModel{
		NotificationUserID: msg.UserID,
		NotificationTitle:  msg.Title,
		NotificationBody:   msg.Body,
		NotificationType:   msg.Type,
		NotificationData:   data,
		NotificationTags:   pq.StringArray(msg.Tags),
	})
}

/* ==========================
   PushNotifier: kirim ke websocket yang sedang terhubung
========================== */

type PushNotifier struct {
	Hub *Hub
}

// Notify tidak error kalau user sedang offline; catatan DB tetap jadi sumber utama.
func (n *PushNotifier) Notify(_ context.Context, msg Message) error {
	_, err := n.Hub.Send(msg.UserID, map[string]any{
		"type": "notification",
		"data": msg,
	})
	return err
}

/* ==========================
   MultiNotifier: fan-out, semua dicoba
========================== */

type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, msg Message) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
