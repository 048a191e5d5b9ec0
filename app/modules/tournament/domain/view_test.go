package tournamentdomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewTransitions(t *testing.T) {
	t.Run("scorecard from a pairing goes back to it", func(t *testing.T) {
		detail := OpenPairing(2)
		card := OpenScorecard(detail, 7)

		sc, ok := card.(ScorecardView)
		require.True(t, ok)
		require.NotNil(t, sc.PairingID)
		assert.Equal(t, 2, *sc.PairingID)

		assert.Equal(t, PairingDetailView{PairingID: 2}, Back(card))
		assert.Equal(t, PairingsView{}, Back(Back(card)))
	})

	t.Run("scorecard from the leaderboard goes back to pairings", func(t *testing.T) {
		card := OpenScorecard(LeaderboardView{}, 3)
		assert.Equal(t, ViewScorecard, card.Kind())
		assert.Equal(t, PairingsView{}, Back(card))
	})

	t.Run("leaderboard toggle", func(t *testing.T) {
		var v View = PairingsView{}
		v = ToggleLeaderboard(v)
		assert.Equal(t, ViewLeaderboard, v.Kind())
		v = ToggleLeaderboard(v)
		assert.Equal(t, ViewPairings, v.Kind())
		assert.Equal(t, ViewLeaderboard, ToggleLeaderboard(OpenPairing(1)).Kind())
	})
}

func TestParseView(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		params  map[string]string
		want    View
		wantErr bool
	}{
		{name: "default", kind: "", want: PairingsView{}},
		{name: "pairings", kind: "pairings", want: PairingsView{}},
		{name: "leaderboard", kind: "leaderboard", want: LeaderboardView{}},
		{name: "pairing detail", kind: "pairing-detail", params: map[string]string{"pairing_id": "2"}, want: PairingDetailView{PairingID: 2}},
		{name: "pairing detail missing id", kind: "pairing-detail", wantErr: true},
		{name: "scorecard", kind: "scorecard", params: map[string]string{"player_id": "5"}, want: ScorecardView{PlayerID: 5}},
		{name: "scorecard bad id", kind: "scorecard", params: map[string]string{"player_id": "x"}, wantErr: true},
		{name: "unknown", kind: "settings", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseView(tt.kind, tt.params)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownView)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParams_RoundTrip(t *testing.T) {
	views := []View{
		PairingsView{},
		LeaderboardView{},
		OpenPairing(1),
		OpenScorecard(OpenPairing(2), 4),
		OpenScorecard(PairingsView{}, 6),
	}
	for _, v := range views {
		got, err := ParseView(string(v.Kind()), Params(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}
