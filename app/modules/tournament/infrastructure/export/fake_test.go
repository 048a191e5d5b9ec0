package export

import (
	"context"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	tournamentdomain "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/domain"
)

// FakeS3 keeps put objects in memory.
type FakeS3 struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Types   map[string]string
	Err     error
}

func NewFakeS3() *FakeS3 {
	return &FakeS3{Objects: map[string][]byte{}, Types: map[string]string{}}
}

func (f *FakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Objects[key] = data
	f.Types[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func intPtr(v int) *int { return &v }

func testState() tournamentdomain.State {
	var course tournamentdomain.Course
	course.Name = "Recreation Park 18"
	for i := range course.Holes {
		course.Holes[i] = tournamentdomain.Hole{Number: i + 1, Par: 4, StrokeIndex: i + 1}
	}

	andy := tournamentdomain.Player{ID: 1, Name: "Andy Yang", HandicapIndex: 22.9, TeamID: 1}
	andy.Scores[0] = intPtr(5)
	andy.Scores[9] = intPtr(6)
	steve := tournamentdomain.Player{ID: 6, Name: "Steve Kang", HandicapIndex: 15, TeamID: 2}
	steve.Scores[0] = intPtr(4)

	return tournamentdomain.State{
		Course: course,
		Teams: []tournamentdomain.Team{
			{ID: 1, Name: "Team 1", Group: tournamentdomain.GroupA, Players: []tournamentdomain.Player{
				andy,
				{ID: 2, Name: "Eugene Yum", HandicapIndex: 7, TeamID: 1},
			}},
			{ID: 2, Name: "Team 2", Group: tournamentdomain.GroupB, Players: []tournamentdomain.Player{
				steve,
				{ID: 5, Name: "Eliot Cho", HandicapIndex: 25, TeamID: 2},
			}},
		},
	}
}
