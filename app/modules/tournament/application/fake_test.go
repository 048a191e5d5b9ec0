package tournamentservice

import (
	"context"
	"errors"
	"sync"

	tournamentdomain "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/domain"
	tournamentmetrics "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/infrastructure/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
)

// ------------------------
// Fake Publisher
// ------------------------

// FakePublisher records published messages and can be told to fail.
type FakePublisher struct {
	mu        sync.Mutex
	published map[string][]*message.Message

	PublishFunc func(topic string, messages ...*message.Message) error
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{published: map[string][]*message.Message{}}
}

func (f *FakePublisher) Publish(topic string, messages ...*message.Message) error {
	if f.PublishFunc != nil {
		if err := f.PublishFunc(topic, messages...); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published[topic] = append(f.published[topic], messages...)
	return nil
}

func (f *FakePublisher) Close() error { return nil }

// Messages returns what was published on topic.
func (f *FakePublisher) Messages(topic string) []*message.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*message.Message, len(f.published[topic]))
	copy(out, f.published[topic])
	return out
}

var _ message.Publisher = (*FakePublisher)(nil)

var errPublishDown = errors.New("publisher down")

// ------------------------
// Fixture
// ------------------------

func testCourse() tournamentdomain.Course {
	pars := [18]int{4, 4, 4, 4, 3, 4, 4, 4, 5, 4, 4, 3, 4, 5, 4, 3, 5, 4}
	indexes := [18]int{15, 13, 5, 9, 17, 1, 3, 7, 11, 2, 10, 16, 14, 4, 12, 18, 6, 8}
	c := tournamentdomain.Course{Name: "Recreation Park 18", Tees: "White"}
	for i := range c.Holes {
		c.Holes[i] = tournamentdomain.Hole{Number: i + 1, Par: pars[i], StrokeIndex: indexes[i], Yardage: 300}
	}
	return c
}

func testState() tournamentdomain.State {
	return tournamentdomain.State{
		Course: testCourse(),
		Teams: []tournamentdomain.Team{
			{
				ID: 1, Name: "Team 1", Group: tournamentdomain.GroupA,
				Players: []tournamentdomain.Player{
					{ID: 1, Name: "Andy Yang", HandicapIndex: 22.9, TeamID: 1},
					{ID: 2, Name: "Eugene Yum", HandicapIndex: 7, TeamID: 1},
					{ID: 3, Name: "John Wong", HandicapIndex: 38.7, TeamID: 1},
					{ID: 4, Name: "Jon Chen", HandicapIndex: 25, TeamID: 1},
				},
			},
			{
				ID: 2, Name: "Team 2", Group: tournamentdomain.GroupB,
				Players: []tournamentdomain.Player{
					{ID: 5, Name: "Eliot Cho", HandicapIndex: 25, TeamID: 2},
					{ID: 6, Name: "Steve Kang", HandicapIndex: 15, TeamID: 2},
					{ID: 7, Name: "Brandon Li", HandicapIndex: 29.9, TeamID: 2},
					{ID: 8, Name: "Derek Taing", HandicapIndex: 38, TeamID: 2},
				},
			},
		},
		Pairings: []tournamentdomain.Pairing{
			{ID: 1, Name: "Match 1", Team1PlayerIDs: [2]int{1, 2}, Team2PlayerIDs: [2]int{5, 6}},
			{ID: 2, Name: "Match 2", Team1PlayerIDs: [2]int{4, 3}, Team2PlayerIDs: [2]int{7, 8}},
		},
	}
}

// ------------------------
// Fake Metrics
// ------------------------

// FakeMetrics counts score outcomes and ignores the rest.
type FakeMetrics struct {
	tournamentmetrics.NoOpMetrics

	mu       sync.Mutex
	Updates  int
	Rejected map[string]int
	Failures map[string]int
}

func NewFakeMetrics() *FakeMetrics {
	return &FakeMetrics{Rejected: map[string]int{}, Failures: map[string]int{}}
}

func (f *FakeMetrics) RecordScoreUpdate(context.Context, string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Updates++
}

func (f *FakeMetrics) RecordScoreRejected(_ context.Context, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Rejected[reason]++
}

func (f *FakeMetrics) RecordOperationFailure(_ context.Context, operation string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Failures[operation]++
}
