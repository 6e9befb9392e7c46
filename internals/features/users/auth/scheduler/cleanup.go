package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"skripsiku_backend/internals/configs"
	authRepo "skripsiku_backend/internals/features/users/auth/repository"
	"skripsiku_backend/internals/features/users/auth/service"
)

// StartBlacklistCleanupScheduler: tiap hari 02:30 hapus token_blacklist yang exp-nya
// lebih tua dari TOKEN_BLACKLIST_TTL_DAYS (default 7 hari).
func StartBlacklistCleanupScheduler(c *cron.Cron, db *gorm.DB) error {
	svc := service.NewAuthService(authRepo.New(db))
	ttl := time.Duration(configs.GetInt("TOKEN_BLACKLIST_TTL_DAYS", 7)) * 24 * time.Hour

	_, err := c.AddFunc("30 2 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		n, err := svc.CleanupBlacklist(ctx, ttl)
		if err != nil {
			log.Printf("[CLEANUP ERROR] Gagal hapus token kadaluarsa: %v", err)
			return
		}
		log.Printf("[CLEANUP] %d token kadaluarsa dihapus", n)
	})
	return err
}
