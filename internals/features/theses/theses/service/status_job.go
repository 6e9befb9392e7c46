// file: internals/features/theses/theses/service/status_job.go
package service

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"skripsiku_backend/internals/constants"
	notifModel "skripsiku_backend/internals/features/home/notifications/model"
	notifService "skripsiku_backend/internals/features/home/notifications/service"
	"skripsiku_backend/internals/features/theses/theses/model"
	"skripsiku_backend/internals/features/theses/theses/repository"
)

// Ambang klasifikasi rating.
const (
	FailedAfter = 365 * 24 * time.Hour
	AtRiskAfter = 120 * 24 * time.Hour
	SlowAfter   = 60 * 24 * time.Hour

	DefaultPageSize    = 100
	DefaultConcurrency = 8
)

// Classify: aturan pertama yang cocok menang.
func Classify(now, createdAt time.Time, lastMilestoneAt *time.Time) string {
	if now.Sub(createdAt) > FailedAfter {
		return model.RatingFailed
	}
	last := createdAt
	if lastMilestoneAt != nil && lastMilestoneAt.After(last) {
		last = *lastMilestoneAt
	}
	idle := now.Sub(last)
	switch {
	case idle > AtRiskAfter:
		return model.RatingAtRisk
	case idle > SlowAfter:
		return model.RatingSlow
	default:
		return model.RatingOngoing
	}
}

// UserLister dipenuhi users/user repository.
type UserLister interface {
	ListIDsByRole(ctx context.Context, role string) ([]uuid.UUID, error)
}

type StatusJob struct {
	Repo        repository.Repository
	Users       UserLister
	Notifier    notifService.Notifier
	Now         func() time.Time
	PageSize    int
	Concurrency int
}

func NewStatusJob(repo repository.Repository, users UserLister, n notifService.Notifier) *StatusJob {
	return &StatusJob{
		Repo:        repo,
		Users:       users,
		Notifier:    n,
		Now:         time.Now,
		PageSize:    DefaultPageSize,
		Concurrency: DefaultConcurrency,
	}
}

type Summary struct {
	Scanned  int64         `json:"scanned"`
	Changed  int64         `json:"changed"`
	Failed   int64         `json:"failed"`
	Errors   int64         `json:"errors"`
	Duration time.Duration `json:"duration"`
}

// Run memproses halaman secara berurutan, baris dalam satu halaman paralel.
// Error per baris dicatat lalu dilanjutkan; gagal ambil halaman menghentikan run.
func (j *StatusJob) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	var sum Summary
	var scanned, changed, failed, errs atomic.Int64

	now := j.Now()
	pageSize := j.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	gagalID, err := j.Repo.StatusIDByName(ctx, model.StatusGagal)
	if err != nil {
		log.Printf("[THESIS JOB] ❌ status %s tidak tersedia: %v", model.StatusGagal, err)
		return sum, err
	}
	heads, err := j.Users.ListIDsByRole(ctx, constants.RoleKadep)
	if err != nil {
		log.Printf("[THESIS JOB] gagal ambil daftar kadep, notifikasi hanya ke mahasiswa: %v", err)
		heads = nil
	}

	after := uuid.Nil
	for {
		if err := ctx.Err(); err != nil {
			return j.finish(&sum, start, &scanned, &changed, &failed, &errs), err
		}
		rows, err := j.Repo.ScanPage(ctx, after, pageSize)
		if err != nil {
			log.Printf("[THESIS JOB] ❌ gagal ambil halaman setelah %s: %v", after, err)
			return j.finish(&sum, start, &scanned, &changed, &failed, &errs), err
		}
		if len(rows) == 0 {
			break
		}

		var g errgroup.Group
		g.SetLimit(j.concurrency())
		for i := range rows {
			row := rows[i]
			g.Go(func() error {
				scanned.Add(1)
				ch, fl, err := j.process(ctx, now, row, gagalID, heads)
				if err != nil {
					errs.Add(1)
					log.Printf("[THESIS JOB] skripsi %s: %v", row.ThesisID, err)
				}
				if ch {
					changed.Add(1)
				}
				if fl {
					failed.Add(1)
				}
				return nil
			})
		}
		_ = g.Wait()

		after = rows[len(rows)-1].ThesisID
		if len(rows) < pageSize {
			break
		}
	}

	res := j.finish(&sum, start, &scanned, &changed, &failed, &errs)
	log.Printf("[THESIS JOB] ✅ selesai: scanned=%d changed=%d failed=%d errors=%d (%s)",
		res.Scanned, res.Changed, res.Failed, res.Errors, res.Duration)
	return res, nil
}

func (j *StatusJob) concurrency() int {
	if j.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return j.Concurrency
}

func (j *StatusJob) finish(sum *Summary, start time.Time, scanned, changed, failed, errs *atomic.Int64) Summary {
	sum.Scanned = scanned.Load()
	sum.Changed = changed.Load()
	sum.Failed = failed.Load()
	sum.Errors = errs.Load()
	sum.Duration = time.Since(start)
	return *sum
}

// process mengembalikan (rating berubah, baru masuk FAILED, error).
func (j *StatusJob) process(ctx context.Context, now time.Time, row model.ThesisActivity, gagalID uuid.UUID, heads []uuid.UUID) (bool, bool, error) {
	next := Classify(now, row.CreatedAt, row.LastMilestoneAt)
	if next == row.Rating {
		return false, false, nil
	}
	if next != model.RatingFailed {
		if err := j.Repo.UpdateRating(ctx, row.ThesisID, next); err != nil {
			return false, false, fmt.Errorf("update rating %s: %w", next, err)
		}
		return true, false, nil
	}

	if err := j.Repo.ApplyFailed(ctx, row.ThesisID, gagalID); err != nil {
		return false, false, fmt.Errorf("set FAILED: %w", err)
	}

	// efek samping berikut tidak membatalkan transisi
	var sideErr error
	if n, err := j.Repo.CancelOpenGuidances(ctx, row.ThesisID, "Dibatalkan otomatis: skripsi melewati batas waktu"); err != nil {
		sideErr = fmt.Errorf("batalkan bimbingan: %w", err)
	} else if n > 0 {
		log.Printf("[THESIS JOB] %d bimbingan skripsi %s dibatalkan", n, row.ThesisID)
	}
	j.notifyFailed(ctx, row, heads)
	return true, true, sideErr
}

func (j *StatusJob) notifyFailed(ctx context.Context, row model.ThesisActivity, heads []uuid.UUID) {
	if j.Notifier == nil {
		return
	}
	data := map[string]any{
		"thesis_id": row.ThesisID.String(),
		"rating":    model.RatingFailed,
		"status":    model.StatusGagal,
	}
	msgs := []notifService.Message{{
		UserID: row.StudentID,
		Title:  "Skripsi dinyatakan gagal",
		Body:   fmt.Sprintf("Skripsi \"%s\" melewati batas waktu 365 hari dan berstatus %s.", row.Title, model.StatusGagal),
		Type:   notifModel.NotificationTypeThesisFailed,
		Data:   data,
		Tags:   []string{"thesis", "failed"},
	}}
	for _, h := range heads {
		msgs = append(msgs, notifService.Message{
			UserID: h,
			Title:  "Skripsi mahasiswa gagal",
			Body:   fmt.Sprintf("Skripsi \"%s\" otomatis berstatus %s.", row.Title, model.StatusGagal),
			Type:   notifModel.NotificationTypeThesisFailed,
			Data:   data,
			Tags:   []string{"thesis", "failed", "kadep"},
		})
	}
	for _, m := range msgs {
		if err := j.Notifier.Notify(ctx, m); err != nil {
			log.Printf("[THESIS JOB] notifikasi ke %s gagal: %v", m.UserID, err)
		}
	}
}
