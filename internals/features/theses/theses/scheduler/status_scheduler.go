package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"skripsiku_backend/internals/features/theses/theses/service"
)

// Runner dipenuhi *service.StatusJob.
type Runner interface {
	Run(ctx context.Context) (service.Summary, error)
}

// StartThesisStatusScheduler mendaftarkan job rating skripsi ke cron.
// Run yang masih berjalan membuat tick berikutnya dilewati.
func StartThesisStatusScheduler(c *cron.Cron, spec string, job Runner, timeout time.Duration) (cron.EntryID, error) {
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	logger := cron.PrintfLogger(log.Default())
	wrapped := cron.NewChain(
		cron.Recover(logger),
		cron.SkipIfStillRunning(logger),
	).Then(cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		log.Println("[THESIS JOB] ▶️ mulai klasifikasi rating skripsi")
		if _, err := job.Run(ctx); err != nil {
			log.Printf("[THESIS JOB ERROR] %v", err)
		}
	}))
	return c.AddJob(spec, wrapped)
}
