package health

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDB struct {
	mu  sync.Mutex
	err error
}

func (f *fakeDB) PingContext(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.err
}

func (f *fakeDB) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

type recordingStatus struct {
	mu     sync.Mutex
	states []bool
}

func (r *recordingStatus) SetServing(serving bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, serving)
}

func (r *recordingStatus) last() (bool, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.states) == 0 {
		return false, 0
	}

	return r.states[len(r.states)-1], len(r.states)
}

func TestWorker_ReportsPingResult(t *testing.T) {
	db := &fakeDB{}
	status := &recordingStatus{}
	w := NewWorker(db, status)
	w.interval = 10 * time.Millisecond

	done := make(chan struct{})
	go func() {
		w.Start(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool {
		serving, n := status.last()
		return n > 0 && serving
	}, time.Second, 5*time.Millisecond)

	db.setErr(errors.New("connection refused"))

	require.Eventually(t, func() bool {
		serving, _ := status.last()
		return !serving
	}, time.Second, 5*time.Millisecond)

	w.Stop()
	<-done
}

func TestWorker_StopsOnContextCancel(t *testing.T) {
	w := NewWorker(&fakeDB{}, &recordingStatus{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		assert.Fail(t, "worker did not stop")
	}
}
