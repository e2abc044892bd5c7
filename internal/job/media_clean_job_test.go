package job

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubRetrier struct {
	cleaned int
	err     error
	calls   int
}

func (r *stubRetrier) Retry(_ context.Context) (int, error) {
	r.calls++
	return r.cleaned, r.err
}

type stubPending []string

func (p stubPending) Members(_ context.Context) ([]string, error) {
	return p, nil
}

func TestMediaCleanupJob_ReportsRemaining(t *testing.T) {
	retrier := &stubRetrier{cleaned: 2}
	var got []float64
	job := NewMediaCleanupJob(retrier, stubPending{"a"}, func(v float64) { got = append(got, v) })

	job.Run()

	assert.Equal(t, 1, retrier.calls)
	assert.Equal(t, []float64{1}, got)
}

func TestMediaCleanupJob_RetryFailureSkipsGauge(t *testing.T) {
	retrier := &stubRetrier{err: errors.New("storage down")}
	called := false
	job := NewMediaCleanupJob(retrier, stubPending{"a", "b"}, func(float64) { called = true })

	job.Run()

	assert.Equal(t, 1, retrier.calls)
	assert.False(t, called)
}

func TestMediaCleanupJob_WithoutGauge(t *testing.T) {
	retrier := &stubRetrier{}
	job := NewMediaCleanupJob(retrier, nil, nil)

	assert.NotPanics(t, job.Run)
}
