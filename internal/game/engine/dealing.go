package engine

import (
	"fmt"

	"github.com/palemoky/elite-card-game/internal/apperrors"
)

// SetDealerChoice 庄家选择直接发牌还是先弃牌。
// 弃牌张数限 1~5，直接发牌时忽略 flushCount。
func (g *Game) SetDealerChoice(choice DealChoice, flushCount int) error {
	if g.phase != PhaseDealing {
		return apperrors.ErrWrongPhase
	}
	if g.dealOrder != nil {
		// 已经开始发牌，不能再改
		return apperrors.ErrWrongPhase
	}

	switch choice {
	case DealStraight:
		g.dealerChoice = DealStraight
		g.flushCount = 0
	case DealFlush:
		if flushCount < 1 || flushCount > MaxFlushCount {
			return fmt.Errorf("flush count %d: %w", flushCount, apperrors.ErrInvalidConfig)
		}
		g.dealerChoice = DealFlush
		g.flushCount = flushCount
	default:
		return fmt.Errorf("deal choice %d: %w", choice, apperrors.ErrInvalidConfig)
	}
	return nil
}

// StartDealing 开始发牌。选了弃牌的话先从牌顶弃掉 flushCount 张，
// 这些牌本回合不再参与。
func (g *Game) StartDealing() error {
	if g.phase != PhaseDealing || g.dealerChoice == DealUnset || g.dealOrder != nil {
		return apperrors.ErrWrongPhase
	}

	if g.dealerChoice == DealFlush {
		for range g.flushCount {
			c, ok := g.deck.Draw()
			if !ok {
				return apperrors.ErrDeckExhausted
			}
			g.flushed = append(g.flushed, c)
		}
	}

	g.dealPhase = 0
	g.cardsDealt = 0
	g.dealOrder = g.buildDealOrder()
	g.dealPos = 0
	g.message = fmt.Sprintf(
		"Manual dealing started. Dealing %d cards in round 1. Deal cards one by one.",
		cardsPerPhase[0])
	return nil
}

// buildDealOrder 生成一个阶段的发牌顺序：
// 从庄家的下家起按方向排列所有未退出玩家，庄家固定排在最后。
// 两个阶段各自独立生成，避免原先特判庄家的下标运算。
// 步数由在局人数限定，即使庄位状态异常也不会循环不止。
func (g *Game) buildDealOrder() []int {
	dealer := g.dealerSeat()
	order := make([]int, 0, g.activeCount())
	seat := dealer
	for range g.activeCount() - 1 {
		seat = g.nextActiveSeat(seat)
		order = append(order, seat)
	}
	return append(order, dealer)
}

// DealOneCard 按正确顺序发一张牌
func (g *Game) DealOneCard() error {
	return g.dealOne(nil)
}

// DealOneCardTo 把一张牌发给指定玩家。发错人是一次犯规：
// 罚庄家 2 分，但牌仍归所指的玩家，发牌继续。
func (g *Game) DealOneCardTo(playerID string) error {
	p := g.playerByID(playerID)
	if p == nil {
		return apperrors.ErrInvalidPlayer
	}
	if p.OptedOut {
		return apperrors.ErrPlayerOptedOut
	}
	return g.dealOne(p)
}

func (g *Game) dealOne(target *Player) error {
	if g.phase != PhaseDealing || g.dealOrder == nil {
		return apperrors.ErrWrongPhase
	}

	expected := g.players[g.dealOrder[g.dealPos]]
	recipient := expected
	fouled := false
	if target != nil && target.Seat != expected.Seat {
		// 现实中的发错牌：被叫停、庄家受罚，但这张牌不收回
		g.applyFoul(g.dealerSeat(), "Dealing cards to wrong player!")
		recipient = target
		fouled = true
	}

	c, ok := g.deck.Draw()
	if !ok {
		return apperrors.ErrDeckExhausted
	}
	recipient.Hand = append(recipient.Hand, c)
	if !fouled {
		g.lastEvent = EventCardDealt
	}

	// 计数始终沿预期顺序推进，与牌实际落在谁手里无关
	g.cardsDealt++
	if g.cardsDealt < cardsPerPhase[g.dealPhase] {
		if !fouled {
			g.progressMessage(expected)
		}
		return nil
	}

	g.cardsDealt = 0
	g.dealPos++
	if g.dealPos < len(g.dealOrder) {
		if !fouled {
			g.progressMessage(g.players[g.dealOrder[g.dealPos]])
		}
		return nil
	}

	// 庄家收满，进入下一阶段或开始出牌
	g.dealPhase++
	if g.dealPhase < len(cardsPerPhase) {
		g.dealOrder = g.buildDealOrder()
		g.dealPos = 0
		if !fouled {
			g.progressMessage(g.players[g.dealOrder[0]])
		}
		return nil
	}

	g.phase = PhasePlaying
	g.currentPlayer = g.nextActiveSeat(g.dealerSeat())
	g.message = fmt.Sprintf("Cards dealt! %s starts the round by playing the calling card.",
		g.players[g.currentPlayer].Name)
	return nil
}

// progressMessage 发牌进度提示
func (g *Game) progressMessage(next *Player) {
	g.message = fmt.Sprintf("Dealing round %d/%d (%d cards). Next card to: %s (Card %d/%d)",
		g.dealPhase+1, len(cardsPerPhase), cardsPerPhase[g.dealPhase],
		next.Name, g.cardsDealt+1, cardsPerPhase[g.dealPhase])
}
