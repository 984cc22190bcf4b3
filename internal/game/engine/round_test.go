package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/elite-card-game/internal/apperrors"
	"github.com/palemoky/elite-card-game/internal/game/card"
)

// playFinalTrick 给每人一张牌并出完，形成回合的最后一墩。
// seat 1 领出黑桃 3（攻击点数 12），并赢下这一墩。
func playFinalTrick(t *testing.T, g *Game) {
	t.Helper()
	setupPlaying(g, 0,
		[]card.Card{card.New(card.Heart, card.Rank5)},
		[]card.Card{card.New(card.Spade, card.Rank3)},
		[]card.Card{card.New(card.Heart, card.Rank7)},
		[]card.Card{card.New(card.Diamond, card.Rank9)},
	)
	require.NoError(t, g.PlayCard(g.players[1].ID, 0))
	require.NoError(t, g.PlayCard(g.players[2].ID, 0))
	require.NoError(t, g.PlayCard(g.players[3].ID, 0))
	require.NoError(t, g.PlayCard(g.players[0].ID, 0))
}

func TestRoundResolutionDamage(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, 4)
	playFinalTrick(t, g)

	// 赢家 seat 1 的下家 seat 2 承受 3♠ 的 12 点攻击并被淘汰
	assert.Equal(t, 12, g.players[2].Points)
	assert.True(t, g.players[2].OptedOut)
	assert.Contains(t, g.Message(), "knocked out")
	assert.Equal(t, EventKnockout, g.LastEvent())

	// 赢家坐庄
	assert.True(t, g.players[1].IsDealer)
	assert.False(t, g.players[0].IsDealer)

	// 还剩 3 人，进入回合间歇
	assert.Equal(t, PhaseRoundEnd, g.Phase())
}

func TestRoundResolutionUsesValueNotOrder(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, 4)
	setupPlaying(g, 0,
		[]card.Card{card.New(card.Heart, card.Rank5)},
		[]card.Card{card.New(card.Spade, card.Rank10)}, // 序号最大但点数只有 1
		[]card.Card{card.New(card.Spade, card.RankA)},
		[]card.Card{card.New(card.Diamond, card.Rank9)},
	)
	require.NoError(t, g.PlayCard(g.players[1].ID, 0))
	require.NoError(t, g.PlayCard(g.players[2].ID, 0))
	require.NoError(t, g.PlayCard(g.players[3].ID, 0))
	require.NoError(t, g.PlayCard(g.players[0].ID, 0))

	// 10♠ 赢墩（序号 10 > 1），伤害却只有它的攻击点数 1
	assert.Equal(t, 1, g.players[2].Points)
	assert.False(t, g.players[2].OptedOut)
}

func TestRingAwards(t *testing.T) {
	t.Parallel()

	t.Run("Gold with more than two active", func(t *testing.T) {
		t.Parallel()
		g := newTestGame(t, 4)
		playFinalTrick(t, g)
		assert.Equal(t, 1, g.players[1].Rings.Gold)
		assert.Zero(t, g.players[1].Rings.Platinum)
	})

	t.Run("Platinum with exactly two active", func(t *testing.T) {
		t.Parallel()
		g := newTestGame(t, 4)
		g.players[0].OptedOut = true
		g.players[3].OptedOut = true
		setupPlaying(g, 1,
			nil,
			[]card.Card{card.New(card.Spade, card.Rank9)},
			[]card.Card{card.New(card.Spade, card.Rank5)},
			nil,
		)
		// seat 2 领出 5♠，seat 1 用 9♠ 赢墩
		require.NoError(t, g.PlayCard(g.players[2].ID, 0))
		require.NoError(t, g.PlayCard(g.players[1].ID, 0))

		// seat 1 零失分赢下两人局的回合
		assert.Equal(t, 1, g.players[1].Rings.Platinum)
		assert.Equal(t, EventRing, g.LastEvent())
	})

	t.Run("No ring with nonzero points", func(t *testing.T) {
		t.Parallel()
		g := newTestGame(t, 4)
		g.players[1].Points = 2 // 比如之前犯过规
		playFinalTrick(t, g)
		assert.Zero(t, g.players[1].Rings)
	})
}

func TestGameEndWhenOnePlayerLeft(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, 4)
	g.players[0].OptedOut = true
	g.players[3].OptedOut = true
	setupPlaying(g, 2,
		nil,
		[]card.Card{card.New(card.Spade, card.RankA)},
		[]card.Card{card.New(card.Spade, card.Rank3)}, // 12 点，seat 1 将被淘汰
		nil,
	)
	require.NoError(t, g.PlayCard(g.players[1].ID, 0))
	require.NoError(t, g.PlayCard(g.players[2].ID, 0))

	// seat 2 的 3♠ 赢墩，seat 1 挨 12 点被淘汰，只剩 seat 2
	assert.True(t, g.players[1].OptedOut)
	assert.Equal(t, PhaseGameEnd, g.Phase())
	assert.Contains(t, g.Message(), g.players[2].Name)
}

func TestHistoryRecorded(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, 4)
	playFinalTrick(t, g)

	require.Len(t, g.history, 1)
	record := g.history[0]
	assert.Equal(t, 1, record.Round)
	assert.Equal(t, 1, record.WinnerSeat)
	assert.Equal(t, "3♠", record.WinningCard.ID)
	assert.Len(t, record.Plays, 4)
}

func TestStartNextRound(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, 4)
	playFinalTrick(t, g)
	require.Equal(t, PhaseRoundEnd, g.Phase())

	require.NoError(t, g.StartNextRound())

	assert.Equal(t, PhaseDealing, g.Phase())
	assert.Equal(t, 2, g.Round())
	assert.Len(t, g.deck, 36, "新回合用全新的一副牌")
	assert.Empty(t, g.flushed)
	assert.Nil(t, g.callingCard)
	assert.Equal(t, DealUnset, g.dealerChoice)
	for _, p := range g.players {
		assert.Empty(t, p.Hand)
	}
	assert.Equal(t, 1, g.currentPlayer, "新庄家选择发牌方式")

	// 上回合的罚分和淘汰状态保留
	assert.True(t, g.players[2].OptedOut)
	assert.Equal(t, 12, g.players[2].Points)
}

func TestOptedOutWinnerDealerRotation(t *testing.T) {
	t.Parallel()

	// 最后一墩的赢家在出完牌后退出：庄位顺延到他的下一位在局玩家，
	// 并且下一回合的发牌能正常走完，不会绕着空缺的庄位转不出来
	g := newTestGame(t, 4)
	setupPlaying(g, 0,
		[]card.Card{card.New(card.Diamond, card.Rank4)},
		[]card.Card{card.New(card.Spade, card.Rank9)},
		[]card.Card{card.New(card.Spade, card.Rank5)},
		[]card.Card{card.New(card.Heart, card.Rank7)},
	)
	g.players[1].Points = 2 // 此前犯过规，零失分指环不参与本用例

	require.NoError(t, g.PlayCard(g.players[1].ID, 0))
	require.NoError(t, g.PlayCard(g.players[2].ID, 0))
	require.NoError(t, g.OptOut(g.players[1].ID))
	require.NoError(t, g.PlayCard(g.players[3].ID, 0))
	require.NoError(t, g.PlayCard(g.players[0].ID, 0))

	// 9♠ 赢下回合，但 seat 1 已退出：seat 2 坐庄
	require.Equal(t, PhaseRoundEnd, g.Phase())
	assert.False(t, g.players[1].IsDealer)
	assert.True(t, g.players[2].IsDealer)
	assert.Contains(t, g.Message(), g.players[2].Name)

	// 下一回合发牌必须能收敛
	require.NoError(t, g.StartNextRound())
	assert.Equal(t, 2, g.currentPlayer, "新庄家选择发牌方式")
	require.NoError(t, g.SetDealerChoice(DealStraight, 0))
	require.NoError(t, g.StartDealing())
	for i := 0; g.Phase() == PhaseDealing; i++ {
		require.Less(t, i, 36, "发牌没有收敛")
		require.NoError(t, g.DealOneCard())
	}

	require.Equal(t, PhasePlaying, g.Phase())
	for _, p := range g.players {
		if p.OptedOut {
			assert.Empty(t, p.Hand, "退出的玩家不再收牌")
		} else {
			assert.Len(t, p.Hand, 5)
		}
	}
	assert.False(t, g.players[g.currentPlayer].OptedOut)
}

func TestStartNextRoundWrongPhase(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, 4)
	assert.ErrorIs(t, g.StartNextRound(), apperrors.ErrWrongPhase)
}
