package engine

import (
	"fmt"

	"github.com/palemoky/elite-card-game/internal/apperrors"
	"github.com/palemoky/elite-card-game/internal/game/card"
)

// PlayCard 当前玩家从手牌中按位置打出一张牌。
// 不跟花色且手里有同花色牌时是一次犯规：罚 2 分、出牌被整体拒绝、
// 不换人，玩家必须重新选牌。犯规不作为 error 返回。
func (g *Game) PlayCard(playerID string, cardIndex int) error {
	if g.phase != PhasePlaying {
		return apperrors.ErrWrongPhase
	}

	p := g.playerByID(playerID)
	if p == nil {
		return apperrors.ErrInvalidPlayer
	}
	if p.OptedOut {
		return apperrors.ErrPlayerOptedOut
	}
	if p.Seat != g.currentPlayer {
		return apperrors.ErrNotYourTurn
	}
	if cardIndex < 0 || cardIndex >= len(p.Hand) {
		return apperrors.ErrInvalidCard
	}

	c := p.Hand[cardIndex]

	if g.callingCard != nil && c.Suit != g.callingCard.Suit &&
		card.HasSuit(p.Hand, g.callingCard.Suit) {
		g.applyFoul(p.Seat, "Must follow calling card suit when you have it!")
		return nil
	}

	// 按位置移除，保持其余手牌顺序
	p.Hand = append(p.Hand[:cardIndex], p.Hand[cardIndex+1:]...)
	g.trick = append(g.trick, Play{Card: c, Seat: p.Seat})
	if g.callingCard == nil {
		calling := c
		g.callingCard = &calling
	}
	g.lastEvent = EventCardPlayed
	g.message = fmt.Sprintf("%s plays %s.", p.Name, c)

	if !g.maybeResolveTrick() {
		g.currentPlayer = g.nextActiveSeat(p.Seat)
	}
	return nil
}

// maybeResolveTrick 每个未退出玩家都出过牌后结算这一墩，
// 返回是否发生了结算。
func (g *Game) maybeResolveTrick() bool {
	if g.callingCard == nil || !g.trickComplete() {
		return false
	}

	winner := g.trickWinner()

	// 赢家可能在出完牌后中途退出，领出权交给他的下一位在局玩家
	lead := winner.Seat
	if g.players[lead].OptedOut {
		lead = g.nextActiveSeat(lead)
	}
	g.currentPlayer = lead

	for _, play := range g.trick {
		g.discards = append(g.discards, play.Card)
	}

	if g.allHandsEmpty() {
		g.resolveRound(winner)
		return true
	}

	g.callingCard = nil
	g.trick = nil
	g.lastEvent = EventTrickWon
	if lead == winner.Seat {
		g.message = fmt.Sprintf("%s wins the trick and leads next!", g.players[winner.Seat].Name)
	} else {
		g.message = fmt.Sprintf("%s wins the trick! %s leads next.",
			g.players[winner.Seat].Name, g.players[lead].Name)
	}
	return true
}

// trickComplete 检查每个未退出玩家是否都已在这一墩出牌。
// 不能只比张数：有人中途退出时，墩里可能还留着他的牌。
func (g *Game) trickComplete() bool {
	played := make(map[int]bool, len(g.trick))
	for _, play := range g.trick {
		played[play.Seat] = true
	}
	for _, p := range g.players {
		if !p.OptedOut && !played[p.Seat] {
			return false
		}
	}
	return true
}

// trickWinner 在跟了首牌花色的出牌里取序号最大者，平局先出者赢。
// 没有任何人跟花色时（正常不会发生）由首出者赢。
func (g *Game) trickWinner() Play {
	winner := g.trick[0]
	found := winner.Card.Suit == g.callingCard.Suit
	for _, play := range g.trick[1:] {
		if play.Card.Suit != g.callingCard.Suit {
			continue
		}
		if !found || play.Card.Rank.Order() > winner.Card.Rank.Order() {
			winner = play
			found = true
		}
	}
	return winner
}

// allHandsEmpty 所有未退出玩家是否都已出完手牌
func (g *Game) allHandsEmpty() bool {
	for _, p := range g.players {
		if !p.OptedOut && len(p.Hand) > 0 {
			return false
		}
	}
	return true
}
