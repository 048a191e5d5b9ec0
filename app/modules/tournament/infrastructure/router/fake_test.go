package tournamentrouter

import (
	"sync"

	tournamenthandlers "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/infrastructure/handlers"
	"github.com/ThreeDotsLabs/watermill/message"
)

// FakeHandlers overrides the event handlers; the HTTP side is never called
// by the router.
type FakeHandlers struct {
	tournamenthandlers.Handlers

	mu        sync.Mutex
	tracked   []string
	forwarded []string

	ForwardErr error
}

func (f *FakeHandlers) HandleScoreUpdated(msg *message.Message) ([]*message.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tracked = append(f.tracked, msg.UUID)
	return nil, nil
}

func (f *FakeHandlers) HandleForwardScoreUpdated(msg *message.Message) ([]*message.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ForwardErr != nil {
		return nil, f.ForwardErr
	}
	f.forwarded = append(f.forwarded, msg.UUID)
	return nil, nil
}

func (f *FakeHandlers) Tracked() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tracked...)
}

func (f *FakeHandlers) Forwarded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.forwarded...)
}
