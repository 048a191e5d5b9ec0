package tournamenthandlers

import (
	"context"
	"errors"
	"sync"

	tournamentmetrics "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/infrastructure/metrics"
	"github.com/nats-io/nats.go"
)

// ------------------------
// Fake Forwarder
// ------------------------

type FakeForwarder struct {
	mu   sync.Mutex
	Msgs []*nats.Msg
	Err  error
}

func (f *FakeForwarder) PublishMsg(m *nats.Msg) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Msgs = append(f.Msgs, m)
	return nil
}

var errNATSDown = errors.New("nats: connection closed")

// ------------------------
// Fake Metrics
// ------------------------

type FakeMetrics struct {
	tournamentmetrics.NoOpMetrics

	mu        sync.Mutex
	Holes     map[string]int
	Forwarded map[bool]int
}

func NewFakeMetrics() *FakeMetrics {
	return &FakeMetrics{Holes: map[string]int{}, Forwarded: map[bool]int{}}
}

func (f *FakeMetrics) RecordHolesEntered(_ context.Context, playerID string, holes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Holes[playerID] = holes
}

func (f *FakeMetrics) RecordEventForwarded(_ context.Context, _ string, success bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Forwarded[success]++
}
