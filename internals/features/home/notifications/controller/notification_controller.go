package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"skripsiku_backend/internals/features/home/notifications/dto"
	"skripsiku_backend/internals/features/home/notifications/service"
	helper "skripsiku_backend/internals/helpers"
)

type NotificationController struct {
	Svc       *service.NotificationService
	Hub       *service.Hub
	Validator *validator.Validate
}

func NewNotificationController(svc *service.NotificationService, hub *service.Hub) *NotificationController {
	return &NotificationController{Svc: svc, Hub: hub, Validator: helper.Validator()}
}

// 🟢 GET /api/u/notifications?unread=true
func (ctrl *NotificationController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var q dto.ListNotificationQuery
	if err := helper.BindQuery(c, ctrl.Validator, &q); err != nil {
		return err
	}
	rows, pg, err := ctrl.Svc.ListMine(c.UserContext(), userID, q)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "Berhasil mengambil notifikasi", rows, &pg)
}

// 🟢 PATCH /api/u/notifications/:id/read
func (ctrl *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := ctrl.Svc.MarkRead(c.UserContext(), userID, id); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Notifikasi ditandai sebagai dibaca", nil)
}

// UpgradeGuard: tolak request non-websocket di /ws/*
func UpgradeGuard(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// GET /ws/notifications?token=... (AuthMiddlewareWS sudah mengisi user_id)
func (ctrl *NotificationController) Stream() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		defer conn.Close()

		raw, _ := conn.Locals(helper.LocUserID).(string)
		userID, err := uuid.Parse(raw)
		if err != nil {
			_ = conn.WriteJSON(fiber.Map{"type": "error", "data": "unauthorized"})
			return
		}

		unregister := ctrl.Hub.Register(userID, conn)
		defer unregister()
		log.Printf("[WS] user %s terhubung (%d koneksi)", userID, ctrl.Hub.Online(userID))

		// klien tidak mengirim apa-apa; baca sampai koneksi putus
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		log.Printf("[WS] user %s terputus", userID)
	})
}
