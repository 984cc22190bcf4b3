package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/elite-card-game/internal/apperrors"
	"github.com/palemoky/elite-card-game/internal/game/card"
)

func TestDrawForDealer(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, 4)
	require.NoError(t, g.DrawForDealer())

	assert.Equal(t, PhaseDealerSelection, g.Phase())
	assert.Len(t, g.selections, 4)
	assert.Len(t, g.deck, 32)

	// 抽到的牌互不相同
	seen := make(map[string]bool)
	for _, sel := range g.selections {
		assert.False(t, seen[sel.Card.ID])
		seen[sel.Card.ID] = true
	}
}

func TestDrawForDealerWrongPhase(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, 4)
	require.NoError(t, g.DrawForDealer())
	assert.ErrorIs(t, g.DrawForDealer(), apperrors.ErrWrongPhase)
}

func TestResolveDealer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		selections []DealerDraw
		useHighest bool
		wantSeat   int
	}{
		{
			name: "Highest wins",
			selections: []DealerDraw{
				{Seat: 0, Card: card.New(card.Spade, card.Rank5)},
				{Seat: 1, Card: card.New(card.Heart, card.Rank9)},
				{Seat: 2, Card: card.New(card.Club, card.Rank7)},
			},
			useHighest: true,
			wantSeat:   1,
		},
		{
			name: "Lowest wins and ace is lowest",
			selections: []DealerDraw{
				{Seat: 0, Card: card.New(card.Spade, card.Rank3)},
				{Seat: 1, Card: card.New(card.Heart, card.RankA)},
				{Seat: 2, Card: card.New(card.Club, card.Rank10)},
			},
			useHighest: false,
			wantSeat:   1,
		},
		{
			name: "Tie goes to first drawn",
			selections: []DealerDraw{
				{Seat: 0, Card: card.New(card.Spade, card.Rank8)},
				{Seat: 1, Card: card.New(card.Heart, card.Rank8)},
				{Seat: 2, Card: card.New(card.Club, card.Rank4)},
			},
			useHighest: true,
			wantSeat:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := newTestGame(t, 3)
			g.phase = PhaseDealerSelection
			g.selections = tt.selections

			require.NoError(t, g.ResolveDealer(tt.useHighest))

			assert.Equal(t, PhaseDealing, g.Phase())
			assert.Equal(t, tt.wantSeat, g.dealerSeat())
			assert.Equal(t, tt.wantSeat, g.currentPlayer)

			// 只有一个庄家
			dealers := 0
			for _, p := range g.players {
				if p.IsDealer {
					dealers++
				}
			}
			assert.Equal(t, 1, dealers)

			// 回合开始时必须是完整的一副牌
			assert.Len(t, g.deck, 36)
		})
	}
}

func TestResolveDealerWrongPhase(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, 4)
	assert.ErrorIs(t, g.ResolveDealer(true), apperrors.ErrWrongPhase)
}
