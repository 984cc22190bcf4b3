package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/elite-card-game/internal/game/card"
)

// legalIndex 返回当前玩家一张合法可出的牌的下标：
// 有叫牌花色且手里有同花色时必须跟，否则随便出第一张。
func legalIndex(g *Game) int {
	p := g.players[g.currentPlayer]
	if g.callingCard != nil {
		for i, c := range p.Hand {
			if c.Suit == g.callingCard.Suit {
				return i
			}
		}
	}
	return 0
}

func handTotal(g *Game) int {
	total := 0
	for _, p := range g.players {
		total += len(p.Hand)
	}
	return total
}

// TestFullGameFlow 用固定种子完整跑一局游戏，
// 沿途校验牌数守恒和各阶段的衔接。
func TestFullGameFlow(t *testing.T) {
	t.Parallel()

	g, err := NewGame(Options{
		PlayerCount: 4,
		PlayerNames: []string{"东", "南", "西", "北"},
		Rand:        rand.New(rand.NewPCG(7, 11)),
	})
	require.NoError(t, err)

	require.NoError(t, g.DrawForDealer())
	require.Equal(t, PhaseDealerSelection, g.Phase())
	require.Len(t, g.selections, 4)

	require.NoError(t, g.ResolveDealer(true))
	require.Equal(t, PhaseDealing, g.Phase())

	for round := 1; round <= 200; round++ {
		// 洗入几张废牌后再发
		require.NoError(t, g.SetDealerChoice(DealFlush, 3))
		require.NoError(t, g.StartDealing())
		require.Len(t, g.flushed, 3)

		for g.Phase() == PhaseDealing {
			require.NoError(t, g.DealOneCard())
		}
		require.Equal(t, PhasePlaying, g.Phase())

		// 每个在局玩家 5 张，发牌结束时牌数守恒
		for _, p := range g.players {
			if !p.OptedOut {
				assert.Len(t, p.Hand, 5)
			}
		}
		assert.Equal(t, 36, len(g.deck)+handTotal(g)+len(g.flushed))

		// 出完整个回合，每一步都满足牌数守恒：
		// 手牌 + 牌堆 + 洗掉的 + 当前墩 + 已结算的 == 36
		played := 0
		for g.Phase() == PhasePlaying {
			p := g.players[g.currentPlayer]
			require.False(t, p.OptedOut, "轮到的玩家必须在局")
			before := len(p.Hand)
			require.NoError(t, g.PlayCard(p.ID, legalIndex(g)))
			require.Equal(t, before-1, len(p.Hand), "合法出牌不应被判犯规")
			assert.Equal(t, 36,
				len(g.deck)+handTotal(g)+len(g.flushed)+len(g.trick)+len(g.discards))
			played++
			require.Less(t, played, 36, "回合没有收敛")
		}

		if g.Phase() == PhaseGameEnd {
			// 恰好剩一名在局玩家
			assert.Equal(t, 1, g.activeCount())
			assert.Equal(t, EventGameEnd, g.LastEvent())
			return
		}

		require.Equal(t, PhaseRoundEnd, g.Phase())
		require.False(t, g.players[g.dealerSeat()].OptedOut, "庄家必须在局")
		require.NoError(t, g.StartNextRound())
		require.Equal(t, round+1, g.Round())
	}
	t.Fatal("200 个回合后游戏仍未结束")
}

// TestDeterministicGame 相同种子下两局游戏的发展完全一致
func TestDeterministicGame(t *testing.T) {
	t.Parallel()

	run := func() *Game {
		g, err := NewGame(Options{
			PlayerCount: 3,
			Rand:        rand.New(rand.NewPCG(42, 0)),
		})
		require.NoError(t, err)
		require.NoError(t, g.DrawForDealer())
		require.NoError(t, g.ResolveDealer(false))
		require.NoError(t, g.SetDealerChoice(DealStraight, 0))
		require.NoError(t, g.StartDealing())
		for g.Phase() == PhaseDealing {
			require.NoError(t, g.DealOneCard())
		}
		return g
	}

	a, b := run(), run()
	assert.Equal(t, a.dealerSeat(), b.dealerSeat())
	for i := range a.players {
		assert.Equal(t, a.players[i].Hand, b.players[i].Hand)
	}
}

// TestSnapshotIsolation 快照是深拷贝，改快照不影响引擎内部状态
func TestSnapshotIsolation(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, 4)
	setupPlaying(g, 0,
		[]card.Card{card.New(card.Spade, card.Rank5)},
		[]card.Card{card.New(card.Spade, card.Rank9)},
		[]card.Card{card.New(card.Heart, card.Rank7)},
		[]card.Card{card.New(card.Diamond, card.Rank4)},
	)
	require.NoError(t, g.PlayCard(g.players[1].ID, 0))

	snap := g.Snapshot()
	require.Len(t, snap.Trick, 1)
	require.NotNil(t, snap.CallingCard)

	snap.Players[0].Hand[0] = card.New(card.Club, card.Rank10)
	snap.Trick[0].Seat = 99
	assert.Equal(t, "5♠", g.players[0].Hand[0].ID)
	assert.Equal(t, 1, g.trick[0].Seat)
}
