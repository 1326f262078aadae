package runtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeProvider struct {
	initErr  error
	watchErr error
	watched  chan struct{}
}

func (p *fakeProvider) Initialize(context.Context) error { return p.initErr }

func (p *fakeProvider) Watch(ctx context.Context) error {
	close(p.watched)
	if p.watchErr != nil {
		return p.watchErr
	}
	<-ctx.Done()
	return nil
}

func (p *fakeProvider) Source() string { return "fake.json" }

type fakeWatcher struct {
	err error
}

func (w fakeWatcher) Watch(ctx context.Context) error {
	if w.err != nil {
		return w.err
	}
	<-ctx.Done()
	return nil
}

type fakeService struct{}

func (fakeService) Serve(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func TestStart_StopsWithContext(t *testing.T) {
	p := &fakeProvider{watched: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- Start(ctx, fakeService{}, p, fakeWatcher{}) }()

	<-p.watched
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("runtime did not stop")
	}
}

func TestStart_InitializeFailure(t *testing.T) {
	p := &fakeProvider{initErr: errors.New("boom"), watched: make(chan struct{})}

	err := Start(context.Background(), fakeService{}, p)

	assert.EqualError(t, err, "unable to load fake.json: boom")
}

func TestStart_WatchFailureStopsService(t *testing.T) {
	p := &fakeProvider{watchErr: errors.New("watch failed"), watched: make(chan struct{})}

	err := Start(context.Background(), fakeService{}, p)

	require.Error(t, err)
	assert.Equal(t, "watch failed", err.Error())
}

func TestStart_WatcherFailureStopsEverything(t *testing.T) {
	p := &fakeProvider{watched: make(chan struct{})}

	err := Start(context.Background(), fakeService{}, p, fakeWatcher{err: errors.New("publisher failed")})

	assert.EqualError(t, err, "publisher failed")
}
