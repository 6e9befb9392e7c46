package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skripsiku_backend/internals/features/theses/theses/service"
)

type slowRunner struct {
	calls   atomic.Int32
	release chan struct{}
}

func (s *slowRunner) Run(ctx context.Context) (service.Summary, error) {
	s.calls.Add(1)
	<-s.release
	return service.Summary{}, nil
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	c := cron.New()
	_, err := StartThesisStatusScheduler(c, "bukan cron", &slowRunner{}, time.Minute)
	assert.Error(t, err)
}

func TestSchedulerSkipsWhileRunning(t *testing.T) {
	c := cron.New()
	r := &slowRunner{release: make(chan struct{})}
	id, err := StartThesisStatusScheduler(c, "@every 1h", r, time.Minute)
	require.NoError(t, err)

	job := c.Entry(id).WrappedJob
	go job.Run()
	require.Eventually(t, func() bool { return r.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	// tick kedua saat run pertama belum selesai harus dilewati
	job.Run()
	assert.Equal(t, int32(1), r.calls.Load())

	close(r.release)
}
