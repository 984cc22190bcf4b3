package engine

import (
	"fmt"

	"github.com/palemoky/elite-card-game/internal/apperrors"
	"github.com/palemoky/elite-card-game/internal/game/card"
)

// resolveRound 回合结算：所有手牌出完后由最后一墩的赢家发起攻击。
// 伤害值用的是赢牌的攻击点数表，不是比大小用的序号。
func (g *Game) resolveRound(winner Play) {
	winnerPlayer := g.players[winner.Seat]

	// 记录回合史（只记最后一墩，与界面展示一致）
	plays := make([]Play, len(g.trick))
	copy(plays, g.trick)
	g.history = append(g.history, TrickRecord{
		Round:       g.round,
		Plays:       plays,
		WinnerSeat:  winner.Seat,
		WinningCard: winner.Card,
	})

	// 赢家的下家承受攻击
	attackValue := winner.Card.Value
	victim := g.players[g.nextActiveSeat(winner.Seat)]
	victim.Points += attackValue
	g.lastEvent = EventDamage

	// 零失分赢回合奖励指环：只剩两人时是铂金，否则是黄金。
	// 看的是赢家自己的累计点数，不是受击者的。
	if winnerPlayer.Points == 0 {
		if g.activeCount() == 2 {
			winnerPlayer.Rings.Platinum++
			g.message = fmt.Sprintf("🏆 PLATINUM RING! %s wins with 0 points!", winnerPlayer.Name)
		} else {
			winnerPlayer.Rings.Gold++
			g.message = fmt.Sprintf("🥇 GOLD RING! %s wins with 0 points!", winnerPlayer.Name)
		}
		g.lastEvent = EventRing
	}

	// 淘汰检查，先于庄位计算：庄位不能落在刚被淘汰的玩家身上
	knockedOut := victim.Points >= KnockoutThreshold
	if knockedOut {
		victim.OptedOut = true
	}

	// 赢家坐庄；赢家已中途退出时庄位顺延到他的下一位在局玩家
	nextDealer := winner.Seat
	if winnerPlayer.OptedOut {
		if seat := g.nextActiveSeat(winner.Seat); seat >= 0 {
			nextDealer = seat
		}
	}

	if knockedOut {
		g.lastEvent = EventKnockout
		g.message = fmt.Sprintf("Round over! %s is knocked out with %d points! %s deals next round.",
			victim.Name, victim.Points, g.players[nextDealer].Name)
	} else if g.lastEvent == EventDamage {
		g.message = fmt.Sprintf("Round over! %s takes %d damage (%d total points). %s deals next round.",
			victim.Name, attackValue, victim.Points, g.players[nextDealer].Name)
	}

	for _, p := range g.players {
		p.IsDealer = p.Seat == nextDealer
	}

	g.callingCard = nil
	g.trick = nil

	// 终局判断
	if g.activeCount() <= 1 {
		g.finishGame()
		return
	}

	// 引擎里不做任何延时，回合间的停顿由界面层负责，
	// 停顿结束后调用 StartNextRound 进入下一回合
	g.phase = PhaseRoundEnd
}

// StartNextRound 开始新回合：换一副新牌，清空手牌和回合状态，
// 新庄家（上回合赢家）继续选择发牌方式。
func (g *Game) StartNextRound() error {
	if g.phase != PhaseRoundEnd {
		return apperrors.ErrWrongPhase
	}

	g.deck = card.NewDeck(g.rng)
	for _, p := range g.players {
		p.Hand = nil
	}
	g.resetRoundState()
	g.round++
	g.phase = PhaseDealing
	g.currentPlayer = g.dealerSeat()
	g.message = fmt.Sprintf("Round %d. %s chooses how to deal.",
		g.round, g.players[g.currentPlayer].Name)
	return nil
}
